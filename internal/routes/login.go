package routes

import (
    "github.com/gofiber/fiber/v2"

    "github.com/scabridge/scabridge/internal/login"
)

// RegisterLoginRoute wires the bank authentication endpoint.
func RegisterLoginRoute(r fiber.Router, h *login.Handler, rateLimiter fiber.Handler) {
    if rateLimiter != nil {
        r.Post("/login", rateLimiter, h.Login)
    } else {
        r.Post("/login", h.Login)
    }
}
