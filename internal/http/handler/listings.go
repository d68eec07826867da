package handler

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"realtyapi/internal/http/middleware"
	"realtyapi/internal/model"
	"realtyapi/internal/pipeline"
	"realtyapi/internal/service"
)

// ImagesField is the multipart field carrying listing photos.
const ImagesField = "images"

var errUploadTooLarge = errors.New("upload exceeds size limit")

// listingForm is the multipart body of POST /listings.
type listingForm struct {
	RealtorID   int64   `form:"realtor_id"`
	Title       string  `form:"title"`
	Address     string  `form:"address"`
	City        string  `form:"city"`
	State       string  `form:"state"`
	Zipcode     string  `form:"zipcode"`
	Description string  `form:"description"`
	Price       int     `form:"price"`
	Bedrooms    int     `form:"bedrooms"`
	Bathrooms   float64 `form:"bathrooms"`
	Garage      int     `form:"garage"`
	Sqft        int     `form:"sqft"`
	LotSize     float64 `form:"lot_size"`
	IsPublished bool    `form:"is_published"`
}

func (f listingForm) listing() *model.Listing {
	return &model.Listing{
		RealtorID:   f.RealtorID,
		Title:       f.Title,
		Address:     f.Address,
		City:        f.City,
		State:       f.State,
		Zipcode:     f.Zipcode,
		Description: f.Description,
		Price:       f.Price,
		Bedrooms:    f.Bedrooms,
		Bathrooms:   f.Bathrooms,
		Garage:      f.Garage,
		Sqft:        f.Sqft,
		LotSize:     f.LotSize,
		IsPublished: f.IsPublished,
	}
}

// createListingResponse is the body of a successful POST /listings.
// Warnings is set when the listing was stored but its photos were not.
type createListingResponse struct {
	*service.ListingResult
	Warnings []string `json:"warnings,omitempty"`
}

// CreateListing stores a listing and processes up to six photos from the "images" field.
//
// @Summary  Create a listing with photos
// @Tags     listings
// @Accept   multipart/form-data
// @Produce  json
// @Param    realtor_id formData int    true  "Owning realtor"
// @Param    title      formData string true  "Listing title"
// @Param    images     formData file   false "Up to 6 photos"
// @Success  201 {object} createListingResponse
// @Failure  400 {object} errorPayload
// @Failure  404 {object} errorPayload
// @Failure  413 {object} errorPayload
// @Router   /listings [post]
func CreateListing(svc service.ListingService, maxUploadBytes int, log *zap.Logger) fiber.Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return func(c *fiber.Ctx) error {
		var form listingForm
		if err := c.BodyParser(&form); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_FORM", "invalid listing form")
		}

		var files []*multipart.FileHeader
		if mf, err := c.MultipartForm(); err == nil {
			files = mf.File[ImagesField]
		}
		if len(files) > pipeline.MaxBatch {
			files = files[:pipeline.MaxBatch]
		}

		uploads := make([]pipeline.Upload, 0, len(files))
		for _, fh := range files {
			data, err := readUpload(fh, maxUploadBytes)
			if errors.Is(err, errUploadTooLarge) {
				return writeError(c, fiber.StatusRequestEntityTooLarge, "IMAGE_TOO_LARGE",
					fmt.Sprintf("%s exceeds %d bytes", fh.Filename, maxUploadBytes))
			}
			if err != nil {
				return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
			}
			uploads = append(uploads, pipeline.Upload{Filename: fh.Filename, Data: data})
		}

		res, err := svc.Create(c.UserContext(), form.listing(), uploads)
		switch {
		case err == nil:
			return c.Status(fiber.StatusCreated).JSON(createListingResponse{ListingResult: res})
		case errors.Is(err, service.ErrImageIngestion) && res != nil:
			log.Error("listing stored without images",
				zap.Int64("listing_id", res.Listing.ID),
				zap.String("request_id", middleware.RequestIDFrom(c)),
				zap.Error(err))
			return c.Status(fiber.StatusCreated).JSON(createListingResponse{
				ListingResult: res,
				Warnings:      []string{"images could not be processed; the listing was saved without photos"},
			})
		default:
			return writeServiceError(c, err)
		}
	}
}

func readUpload(fh *multipart.FileHeader, limit int) ([]byte, error) {
	if limit > 0 && fh.Size > int64(limit) {
		return nil, errUploadTooLarge
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := io.Reader(f)
	if limit > 0 {
		r = io.LimitReader(f, int64(limit)+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(data) > limit {
		return nil, errUploadTooLarge
	}
	return data, nil
}

// ListListings returns published listings, newest first.
//
// @Summary  Search published listings
// @Tags     listings
// @Produce  json
// @Param    keyword   query string false "Substring of the title (case-insensitive)"
// @Param    city      query string false "Substring of the city (case-insensitive)"
// @Param    bedrooms  query int    false "Minimum bedrooms"
// @Param    max_price query int    false "Maximum price"
// @Success  200 {array}  model.Listing
// @Failure  400 {object} errorPayload
// @Router   /listings [get]
func ListListings(svc service.ListingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		f := model.ListingFilter{
			Keyword: c.Query("keyword"),
			City:    c.Query("city"),
		}
		var err error
		if f.MinBedrooms, err = queryInt(c, "bedrooms"); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_FILTER", "invalid bedrooms")
		}
		if f.MaxPrice, err = queryInt(c, "max_price"); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_FILTER", "invalid max_price")
		}

		listings, err := svc.List(c.UserContext(), f)
		if err != nil {
			return writeServiceError(c, err)
		}
		if listings == nil {
			listings = []model.Listing{}
		}
		return c.JSON(listings)
	}
}

func queryInt(c *fiber.Ctx, key string) (int, error) {
	v := c.Query(key)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return n, nil
}

func paramID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	return id, err == nil && id > 0
}

// GetListing returns a single listing.
//
// @Summary  Get a listing
// @Tags     listings
// @Produce  json
// @Param    id  path int true "Listing ID"
// @Success  200 {object} model.Listing
// @Failure  400 {object} errorPayload
// @Failure  404 {object} errorPayload
// @Router   /listings/{id} [get]
func GetListing(svc service.ListingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		l, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(l)
	}
}

// ListingImages returns the gallery of a listing with download URLs.
//
// @Summary  List listing photos
// @Tags     listings
// @Produce  json
// @Param    id  path int true "Listing ID"
// @Success  200 {array}  model.PropertyImage
// @Failure  404 {object} errorPayload
// @Router   /listings/{id}/images [get]
func ListingImages(svc service.ListingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		imgs, err := svc.Images(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		if imgs == nil {
			imgs = []model.PropertyImage{}
		}
		return c.JSON(imgs)
	}
}
