// seed crea una empresa demo con usuario admin, productos con stock inicial
// y un cliente, para probar la API en local.
//
// Uso: go run ./cmd/seed
// Lee la misma configuración que cmd/api (DATABASE_URL o DB_HOST, etc.).
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/ledger-pro/internal/application/auth"
	"github.com/tu-usuario/ledger-pro/internal/application/billing"
	"github.com/tu-usuario/ledger-pro/internal/application/dto"
	"github.com/tu-usuario/ledger-pro/internal/application/inventory"
	"github.com/tu-usuario/ledger-pro/internal/application/usecase"
	"github.com/tu-usuario/ledger-pro/internal/domain/entity"
	"github.com/tu-usuario/ledger-pro/internal/infrastructure/postgres"
	"github.com/tu-usuario/ledger-pro/pkg/config"
	"github.com/tu-usuario/ledger-pro/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info", Service: "seed"})

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
	txRunner := postgres.NewTxRunner(pool)

	companyUC := usecase.NewCompanyUseCase(companyRepo)
	productUC := usecase.NewProductUseCase(productRepo)
	customerUC := billing.NewCustomerUseCase(customerRepo, invoiceRepo)
	adjustStockUC := inventory.NewAdjustStockUseCase(txRunner, productRepo)
	authUC := auth.NewAuthUseCase(userRepo, companyRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	company, err := companyUC.Create(dto.CreateCompanyRequest{
		Name:  "Comercializadora Demo SAS",
		TaxID: "900123456-7",
		Email: "demo@ledgerpro.local",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("crear empresa demo")
	}
	log.Info().Str("company_id", company.ID).Msg("empresa demo creada")

	admin, err := authUC.RegisterUser(dto.RegisterRequest{
		Email:     "admin@ledgerpro.local",
		Password:  "admin12345",
		CompanyID: company.ID,
		Name:      "Admin Demo",
		Role:      entity.RoleAdmin,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("crear usuario admin")
	}
	log.Info().Str("user_id", admin.ID).Msg("usuario admin creado")

	products := []dto.CreateProductRequest{
		{SKU: "CAF-001", Name: "Café de origen 500g", Price: decimal.RequireFromString("32000"), ReorderLevel: decimal.NewFromInt(20)},
		{SKU: "PAN-010", Name: "Panela orgánica 1kg", Price: decimal.RequireFromString("8500"), ReorderLevel: decimal.NewFromInt(50)},
		{SKU: "MIE-003", Name: "Miel de abejas 350g", Price: decimal.RequireFromString("18900"), ReorderLevel: decimal.NewFromInt(10)},
	}
	initialStock := []struct {
		qty  string
		cost string
	}{
		{"100", "21000"},
		{"200", "5200"},
		{"40", "12500"},
	}
	for i, in := range products {
		p, err := productUC.Create(company.ID, in)
		if err != nil {
			log.Fatal().Err(err).Str("sku", in.SKU).Msg("crear producto")
		}
		unitCost := decimal.RequireFromString(initialStock[i].cost)
		_, err = adjustStockUC.AdjustStockFromRequest(ctx, company.ID, admin.ID, dto.AdjustStockRequest{
			ProductID: p.ID,
			Type:      entity.MovementTypePurchase,
			Quantity:  decimal.RequireFromString(initialStock[i].qty),
			UnitCost:  &unitCost,
		})
		if err != nil {
			log.Fatal().Err(err).Str("sku", in.SKU).Msg("cargar stock inicial")
		}
		log.Info().Str("sku", in.SKU).Str("product_id", p.ID).Msg("producto creado con stock inicial")
	}

	customer, err := customerUC.Create(company.ID, dto.CreateCustomerRequest{
		Name:  "Tienda La Esquina",
		TaxID: "1032456789",
		Email: "laesquina@correo.local",
		Phone: "3001234567",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("crear cliente demo")
	}
	log.Info().Str("customer_id", customer.ID).Msg("cliente demo creado")

	log.Info().Msg("seed completado")
}
