package handler

import (
	"github.com/gofiber/fiber/v2"

	"realtyapi/internal/model"
	"realtyapi/internal/service"
)

type inquiryRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
	UserID  *int64 `json:"user_id,omitempty"`
}

// CreateInquiry records a buyer inquiry about a listing.
//
// @Summary  Send an inquiry
// @Tags     inquiries
// @Accept   json
// @Produce  json
// @Param    id   path int            true "Listing ID"
// @Param    body body inquiryRequest true "Inquiry"
// @Success  201 {object} model.Inquiry
// @Failure  400 {object} errorPayload
// @Failure  404 {object} errorPayload
// @Router   /listings/{id}/inquiries [post]
func CreateInquiry(svc service.InquiryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		var req inquiryRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		in, err := svc.Create(c.UserContext(), id, &model.Inquiry{
			Name:    req.Name,
			Email:   req.Email,
			Phone:   req.Phone,
			Message: req.Message,
			UserID:  req.UserID,
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(in)
	}
}
