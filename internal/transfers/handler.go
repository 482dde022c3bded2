package transfers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/scabridge/scabridge/internal/bankapi"
	"github.com/scabridge/scabridge/internal/sca"
)

// Handler exposes transfer endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a transfer handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type transferRequest struct {
	FromAccount   string  `json:"from_account"`
	ToAccount     string  `json:"to_account"`
	Amount        float64 `json:"amount"`
	Label         string  `json:"label"`
	ExecutionDate string  `json:"execution_date"`
}

// Initiate starts an external transfer and returns the OTP ticket.
func (h *Handler) Initiate(c *fiber.Ctx) error {
	var req transferRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	ticket, err := h.service.Initiate(c.UserContext(), Input{
		FromAccount:   req.FromAccount,
		ToAccount:     req.ToAccount,
		Amount:        req.Amount,
		Label:         req.Label,
		ExecutionDate: req.ExecutionDate,
	})
	if err != nil {
		var business *bankapi.BusinessError
		var sequence *sca.SequenceError
		switch {
		case errors.Is(err, ErrInvalidTransfer):
			return fiber.NewError(http.StatusBadRequest, err.Error())
		case errors.As(err, &business):
			return fiber.NewError(http.StatusUnprocessableEntity, business.Error())
		case errors.As(err, &sequence):
			return fiber.NewError(http.StatusConflict, sequence.Error())
		default:
			return fiber.NewError(http.StatusBadGateway, err.Error())
		}
	}

	return c.Status(http.StatusAccepted).JSON(fiber.Map{
		"operation_id":  ticket.OperationID,
		"action":        ticket.Action,
		"channel_phone": ticket.ChannelPhone,
	})
}
