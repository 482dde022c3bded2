package accounts

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/scabridge/scabridge/internal/bankapi"
)

// Handler exposes account browsing endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs an accounts handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// List returns the customer's accounts.
func (h *Handler) List(c *fiber.Ctx) error {
	accts, err := h.service.List(c.UserContext())
	if err != nil {
		return upstreamError(err)
	}
	return c.JSON(fiber.Map{"accounts": accts})
}

// Transactions returns the recent movements of one account.
func (h *Handler) Transactions(c *fiber.Ctx) error {
	txs, err := h.service.Transactions(c.UserContext(), c.Params("accountId"))
	if err != nil {
		return upstreamError(err)
	}
	return c.JSON(fiber.Map{"transactions": txs})
}

// ExtendedHistory starts the DISPLAY_TRANSACTIONS flow for an account.
func (h *Handler) ExtendedHistory(c *fiber.Ctx) error {
	ticket, err := h.service.ExtendedHistory(c.UserContext(), c.Params("accountId"))
	if err != nil {
		return upstreamError(err)
	}
	return c.Status(http.StatusAccepted).JSON(fiber.Map{
		"operation_id":  ticket.OperationID,
		"action":        ticket.Action,
		"channel_phone": ticket.ChannelPhone,
	})
}

// InsuranceContracts returns the customer's life-insurance contracts.
func (h *Handler) InsuranceContracts(c *fiber.Ctx) error {
	contracts, err := h.service.InsuranceContracts(c.UserContext())
	if err != nil {
		return upstreamError(err)
	}
	return c.JSON(fiber.Map{"contracts": contracts})
}

func upstreamError(err error) error {
	var business *bankapi.BusinessError
	if errors.As(err, &business) {
		return fiber.NewError(http.StatusUnprocessableEntity, business.Error())
	}
	return fiber.NewError(http.StatusBadGateway, err.Error())
}
