package server

import (
    "context"
    "log/slog"
    "time"

    "github.com/gofiber/fiber/v2"
    "github.com/jackc/pgx/v5/pgxpool"
    "github.com/redis/go-redis/v9"

    "github.com/scabridge/scabridge/internal/bankapi"
    "github.com/scabridge/scabridge/internal/config"
    "github.com/scabridge/scabridge/internal/keypad"
    "github.com/scabridge/scabridge/internal/routes"
    "github.com/scabridge/scabridge/internal/sca"
    "github.com/scabridge/scabridge/internal/session"
)

// Server wraps the Fiber application and shared dependencies.
type Server struct {
    app   *fiber.App
    cfg   config.Config
    db    *pgxpool.Pool
    cache *redis.Client
}

// New instantiates the HTTP server, builds the bank client and flow
// controller, and delegates route wiring to routes.Setup.
func New(cfg config.Config, db *pgxpool.Pool, cache *redis.Client, logger *slog.Logger) (*Server, error) {
    templates, err := keypad.LoadDir(cfg.TemplateDir)
    if err != nil {
        return nil, err
    }

    bank, err := bankapi.New(cfg.BankBaseURL, cfg.BankTimeout, session.New(), logger)
    if err != nil {
        return nil, err
    }

    flows := sca.NewController(bank, sca.Credentials{
        CIF:       cfg.BankCIF,
        BirthDate: cfg.BankBirthDate,
        Password:  cfg.BankPassword,
    }, templates, nil, logger)

    app := fiber.New(fiber.Config{
        AppName:      cfg.AppName,
        ReadTimeout:  30 * time.Second,
        WriteTimeout: 30 * time.Second,
    })

    deps := routes.Deps{Cfg: cfg, DB: db, Cache: cache, Bank: bank, Flows: flows, Logger: logger}
    if err := routes.Setup(app, deps); err != nil {
        return nil, err
    }

    return &Server{app: app, cfg: cfg, db: db, cache: cache}, nil
}

// Listen starts the HTTP server.
func (s *Server) Listen() error {
    return s.app.Listen(s.cfg.Address())
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
    return s.app.ShutdownWithContext(ctx)
}
