package beneficiaries

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/scabridge/scabridge/internal/bankapi"
)

// Handler exposes beneficiary endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a beneficiary handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type beneficiaryRequest struct {
	AccountHolderName string `json:"account_holder_name"`
	BankName          string `json:"bank_name"`
	BIC               string `json:"bic"`
	IBAN              string `json:"iban"`
}

// Create validates and registers an external beneficiary, returning the OTP
// ticket. Bank-side validation rejections keep their code and message.
func (h *Handler) Create(c *fiber.Ctx) error {
	var req beneficiaryRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	ticket, err := h.service.Initiate(c.UserContext(), Input{
		AccountHolderName: req.AccountHolderName,
		BankName:          req.BankName,
		BIC:               req.BIC,
		IBAN:              req.IBAN,
	})
	if err != nil {
		var business *bankapi.BusinessError
		switch {
		case errors.Is(err, ErrInvalidBeneficiary):
			return fiber.NewError(http.StatusBadRequest, err.Error())
		case errors.As(err, &business):
			return c.Status(http.StatusUnprocessableEntity).JSON(fiber.Map{
				"code":    business.Code,
				"message": business.Message,
				"context": business.Context,
			})
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
