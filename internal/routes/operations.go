package routes

import (
    "github.com/gofiber/fiber/v2"

    "github.com/scabridge/scabridge/internal/operations"
)

// RegisterOperationRoutes wires OTP confirmation and journal endpoints.
func RegisterOperationRoutes(r fiber.Router, h *operations.Handler) {
    r.Post("/operations/:operationId/confirm", h.Confirm)
    r.Get("/operations", h.List)
}
