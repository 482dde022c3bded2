package routes

import (
    "github.com/gofiber/fiber/v2"

    "github.com/scabridge/scabridge/internal/beneficiaries"
)

// RegisterBeneficiaryRoutes wires the external beneficiary endpoint.
func RegisterBeneficiaryRoutes(r fiber.Router, h *beneficiaries.Handler) {
    r.Post("/beneficiaries", h.Create)
}
