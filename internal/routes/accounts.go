package routes

import (
    "github.com/gofiber/fiber/v2"

    "github.com/scabridge/scabridge/internal/accounts"
)

// RegisterAccountRoutes wires account browsing endpoints.
func RegisterAccountRoutes(r fiber.Router, h *accounts.Handler) {
    r.Get("/accounts", h.List)
    r.Get("/accounts/:accountId/transactions", h.Transactions)
    r.Post("/accounts/:accountId/transactions/history", h.ExtendedHistory)
    r.Get("/insurance/contracts", h.InsuranceContracts)
}
