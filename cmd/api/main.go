package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/tu-usuario/ledger-pro/internal/application/auth"
	"github.com/tu-usuario/ledger-pro/internal/application/billing"
	"github.com/tu-usuario/ledger-pro/internal/application/inventory"
	"github.com/tu-usuario/ledger-pro/internal/application/usecase"
	"github.com/tu-usuario/ledger-pro/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/ledger-pro/internal/interfaces/http"
	"github.com/tu-usuario/ledger-pro/pkg/config"
	"github.com/tu-usuario/ledger-pro/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: "api",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	movementRepo := postgres.NewInventoryTransactionRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	companyUC := usecase.NewCompanyUseCase(companyRepo)
	productUC := usecase.NewProductUseCase(productRepo)
	analyticsUC := usecase.NewAnalyticsUseCase(analyticsRepo)
	adjustStockUC := inventory.NewAdjustStockUseCase(txRunner, productRepo)
	movementQueryUC := inventory.NewMovementQueryUseCase(productRepo, movementRepo)
	customerUC := billing.NewCustomerUseCase(customerRepo, invoiceRepo)
	paymentQueryUC := billing.NewPaymentQueryUseCase(customerRepo, paymentRepo)
	issueInvoiceUC := billing.NewIssueInvoiceUseCase(txRunner, customerRepo, productRepo, invoiceRepo)
	recordPaymentUC := billing.NewRecordPaymentUseCase(txRunner, customerRepo, invoiceRepo)
	reversePaymentUC := billing.NewReversePaymentUseCase(txRunner, paymentRepo)
	authUC := auth.NewAuthUseCase(userRepo, companyRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Ledger Pro API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CompanyUC:      companyUC,
		ProductUC:      productUC,
		AnalyticsUC:    analyticsUC,
		AdjustStock:    adjustStockUC,
		MovementQuery:  movementQueryUC,
		CustomerUC:     customerUC,
		PaymentQuery:   paymentQueryUC,
		IssueInvoice:   issueInvoiceUC,
		RecordPayment:  recordPaymentUC,
		ReversePayment: reversePaymentUC,
		AuthUC:         authUC,
		JWTSecret:      cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
