package login

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/scabridge/scabridge/internal/bankapi"
	"github.com/scabridge/scabridge/internal/keypad"
	"github.com/scabridge/scabridge/internal/sca"
)

// Handler drives the bank login flow on request. Credentials live in config;
// the endpoint takes no body.
type Handler struct {
	flows *sca.Controller
}

// NewHandler constructs a login handler.
func NewHandler(flows *sca.Controller) *Handler {
	return &Handler{flows: flows}
}

// Login runs the full authentication sequence against the bank. A failed
// step aborts the whole flow; the next call starts over from INIT.
func (h *Handler) Login(c *fiber.Ctx) error {
	flow := h.flows.NewLogin()
	if err := flow.Run(c.UserContext()); err != nil {
		var business *bankapi.BusinessError
		var duplicate *keypad.DuplicateDigitError
		switch {
		case errors.As(err, &business):
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{
				"code":    business.Code,
				"message": business.Message,
			})
		case errors.Is(err, sca.ErrNotAuthenticated):
			return fiber.NewError(http.StatusUnauthorized, err.Error())
		case errors.As(err, &duplicate):
			return fiber.NewError(http.StatusBadGateway, duplicate.Error())
		default:
			return fiber.NewError(http.StatusBadGateway, err.Error())
		}
	}

	return c.JSON(fiber.Map{
		"authenticated": true,
		"internal_id":   flow.InternalID(),
	})
}
