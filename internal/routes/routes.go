package routes

import (
    "fmt"
    "log/slog"
    "net/http"
    "strings"
    "time"

    "github.com/gofiber/fiber/v2"
    "github.com/gofiber/fiber/v2/middleware/logger"
    "github.com/gofiber/fiber/v2/middleware/recover"
    "github.com/jackc/pgx/v5/pgxpool"
    "github.com/redis/go-redis/v9"

    "github.com/scabridge/scabridge/internal/accounts"
    "github.com/scabridge/scabridge/internal/bankapi"
    "github.com/scabridge/scabridge/internal/beneficiaries"
    "github.com/scabridge/scabridge/internal/config"
    "github.com/scabridge/scabridge/internal/journal"
    "github.com/scabridge/scabridge/internal/login"
    "github.com/scabridge/scabridge/internal/middleware"
    "github.com/scabridge/scabridge/internal/notification"
    "github.com/scabridge/scabridge/internal/operations"
    "github.com/scabridge/scabridge/internal/sca"
    "github.com/scabridge/scabridge/internal/transfers"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
    Cfg    config.Config
    DB     *pgxpool.Pool
    Cache  *redis.Client
    Bank   *bankapi.Client
    Flows  *sca.Controller
    Logger *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
    if d.Bank == nil || d.Flows == nil {
        return fmt.Errorf("bank client and flow controller are required")
    }
    // Enforce DB/Redis presence outside of dev, even though main also checks.
    if !isDev(d.Cfg.AppEnv) {
        if d.DB == nil {
            return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
        }
        if d.Cache == nil {
            return fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.AppEnv)
        }
    }
    // Middlewares
    app.Use(recover.New())
    app.Use(middleware.RequestID())
    app.Use(logger.New(logger.Config{
        Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
        TimeFormat: "15:04:05",
        TimeZone:   "Local",
    }))
    app.Use(middleware.Audit(d.Logger))
    if d.Cache != nil {
        app.Use(middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger))
    }

    // Health
    RegisterHealthRoutes(app, d)

    // Services and handlers
    var journalBackend journal.Journal
    if d.DB != nil {
        journalBackend = journal.NewPostgres(d.DB)
    } else {
        journalBackend = journal.NewInMemory()
    }

    notifier := notification.NewLoggerNotifier(d.Logger)
    opsSvc := operations.NewService(journalBackend, notifier)
    accountsSvc := accounts.NewService(d.Bank, d.Flows, opsSvc)
    transferSvc := transfers.NewService(d.Flows, opsSvc)
    beneficiarySvc := beneficiaries.NewService(d.Bank, d.Flows, opsSvc)

    loginHandler := login.NewHandler(d.Flows)
    accountsHandler := accounts.NewHandler(accountsSvc)
    transferHandler := transfers.NewHandler(transferSvc)
    beneficiaryHandler := beneficiaries.NewHandler(beneficiarySvc)
    opsHandler := operations.NewHandler(opsSvc)

    // API routes
    api := app.Group("/api/v1", middleware.APIKeyAuth(d.Cfg.APIKeyHash))
    api.Get("/ping", func(c *fiber.Ctx) error {
        reqID, _ := c.Locals(middleware.RequestIDHeader).(string)
        return c.Status(http.StatusOK).JSON(fiber.Map{
            "status": "ok",
            "request_id": reqID,
            "timestamp": time.Now().UTC().Format(time.RFC3339Nano),
        })
    })

    rateLimiter := middleware.LoginRateLimit(d.Cache, 5)
    RegisterLoginRoute(api, loginHandler, rateLimiter)
    RegisterAccountRoutes(api, accountsHandler)
    RegisterTransferRoutes(api, transferHandler)
    RegisterBeneficiaryRoutes(api, beneficiaryHandler)
    RegisterOperationRoutes(api, opsHandler)

    return nil
}

func isDev(env string) bool {
    switch strings.ToLower(env) {
    case "dev", "development", "local":
        return true
    default:
        return false
    }
}
