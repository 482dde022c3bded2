package operations

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/scabridge/scabridge/internal/sca"
)

// Handler exposes OTP confirmation and journal listing.
type Handler struct {
	service *Service
}

// NewHandler constructs an operations handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type confirmRequest struct {
	OTP string `json:"otp"`
}

// Confirm submits the received OTP code for a pending operation.
func (h *Handler) Confirm(c *fiber.Ctx) error {
	var req confirmRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	if req.OTP == "" {
		return fiber.NewError(http.StatusBadRequest, "otp is required")
	}

	entry, err := h.service.Confirm(c.UserContext(), c.Params("operationId"), req.OTP)
	if err != nil {
		var sequence *sca.SequenceError
		switch {
		case errors.Is(err, ErrUnknownOperation):
			return fiber.NewError(http.StatusNotFound, err.Error())
		case errors.Is(err, sca.ErrOTPRejected):
			return c.Status(http.StatusUnprocessableEntity).JSON(fiber.Map{
				"operation_id": entry.ID,
				"status":       entry.Status,
			})
		case errors.As(err, &sequence):
			return fiber.NewError(http.StatusConflict, sequence.Error())
		default:
			return fiber.NewError(http.StatusBadGateway, err.Error())
		}
	}

	return c.JSON(fiber.Map{
		"operation_id": entry.ID,
		"action":       entry.Action,
		"status":       entry.Status,
		"recorded_at":  entry.RecordedAt,
	})
}

// List returns recent journal entries, newest first.
func (h *Handler) List(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	entries, err := h.service.List(c.UserContext(), limit)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(fiber.Map{"operations": entries})
}
