package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/ledger-pro/internal/application/auth"
	"github.com/tu-usuario/ledger-pro/internal/application/billing"
	"github.com/tu-usuario/ledger-pro/internal/application/inventory"
	"github.com/tu-usuario/ledger-pro/internal/application/usecase"
	"github.com/tu-usuario/ledger-pro/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CompanyUC      *usecase.CompanyUseCase
	ProductUC      *usecase.ProductUseCase
	AnalyticsUC    *usecase.AnalyticsUseCase
	AdjustStock    *inventory.AdjustStockUseCase
	MovementQuery  *inventory.MovementQueryUseCase
	CustomerUC     *billing.CustomerUseCase
	PaymentQuery   *billing.PaymentQueryUseCase
	IssueInvoice   *billing.IssueInvoiceUseCase
	RecordPayment  *billing.RecordPaymentUseCase
	ReversePayment *billing.ReversePaymentUseCase
	AuthUC         *auth.AuthUseCase
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Companies (público por ahora; se puede proteger con AuthMiddleware(deps.JWTSecret))
	companies := api.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Get("/", companyHandler.List)
	companies.Post("/", companyHandler.Create)
	companies.Get("/:id", companyHandler.GetByID)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)

	// Inventory movements (protegido; los ajustes manuales requieren admin o cajero)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.AdjustStock, deps.MovementQuery)
	invGroup.Post("/movements", RequireRole(entity.RoleAdmin, entity.RoleCajero), inventoryHandler.AdjustStock)
	invGroup.Get("/movements", inventoryHandler.ListMovements)
	invGroup.Get("/replenishment-list", productHandler.GetReplenishmentList)

	// Customers (protegido, facturación)
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC, deps.PaymentQuery)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Get("/:id/open-invoices", customerHandler.OpenInvoices)
	customers.Get("/:id/payments", customerHandler.Payments)

	// Invoices (protegido)
	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.IssueInvoice)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/:id", invoiceHandler.GetByID)

	// Payments (protegido; la reversión requiere admin)
	payments := protected.Group("/payments")
	paymentHandler := NewPaymentHandler(deps.RecordPayment, deps.ReversePayment, deps.CustomerUC)
	payments.Post("/", paymentHandler.Record)
	payments.Post("/preview", paymentHandler.Preview)
	payments.Get("/:id", paymentHandler.GetByID)
	payments.Delete("/:id", RequireRole(entity.RoleAdmin), paymentHandler.Reverse)

	// Dashboard (protegido)
	dashboard := protected.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.AnalyticsUC)
	dashboard.Get("/summary", dashboardHandler.Summary)
}
