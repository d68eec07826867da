package handler

import (
	"github.com/gofiber/fiber/v2"

	"realtyapi/internal/model"
	"realtyapi/internal/service"
)

type realtorRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	IsMVP       bool   `json:"is_mvp"`
}

// CreateRealtor registers a realtor.
//
// @Summary  Register a realtor
// @Tags     realtors
// @Accept   json
// @Produce  json
// @Param    body body realtorRequest true "Realtor"
// @Success  201 {object} model.Realtor
// @Failure  400 {object} errorPayload
// @Router   /realtors [post]
func CreateRealtor(svc service.RealtorService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req realtorRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		r, err := svc.Create(c.UserContext(), &model.Realtor{
			Name:        req.Name,
			Description: req.Description,
			Phone:       req.Phone,
			Email:       req.Email,
			IsMVP:       req.IsMVP,
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(r)
	}
}

// GetRealtor returns a single realtor.
//
// @Summary  Get a realtor
// @Tags     realtors
// @Produce  json
// @Param    id  path int true "Realtor ID"
// @Success  200 {object} model.Realtor
// @Failure  400 {object} errorPayload
// @Failure  404 {object} errorPayload
// @Router   /realtors/{id} [get]
func GetRealtor(svc service.RealtorService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		r, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(r)
	}
}

// RealtorListings returns all listings of a realtor, newest first, unpublished ones included.
//
// @Summary  List a realtor's listings
// @Tags     realtors
// @Produce  json
// @Param    id  path int true "Realtor ID"
// @Success  200 {array}  model.Listing
// @Failure  400 {object} errorPayload
// @Failure  404 {object} errorPayload
// @Router   /realtors/{id}/listings [get]
func RealtorListings(svc service.RealtorService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		listings, err := svc.Listings(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		if listings == nil {
			listings = []model.Listing{}
		}
		return c.JSON(listings)
	}
}
