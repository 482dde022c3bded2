package routes

import (
    "github.com/gofiber/fiber/v2"

    "github.com/scabridge/scabridge/internal/transfers"
)

// RegisterTransferRoutes wires the external transfer endpoint.
func RegisterTransferRoutes(r fiber.Router, h *transfers.Handler) {
    r.Post("/transfers", h.Initiate)
}
