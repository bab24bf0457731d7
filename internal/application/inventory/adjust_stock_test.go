package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/ledger-pro/internal/application/dto"
	"github.com/tu-usuario/ledger-pro/internal/application/inventory"
	"github.com/tu-usuario/ledger-pro/internal/domain"
	"github.com/tu-usuario/ledger-pro/internal/domain/entity"
	"github.com/tu-usuario/ledger-pro/internal/domain/repository"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func dp(s string) *decimal.Decimal {
	v := decimal.RequireFromString(s)
	return &v
}

// Store en memoria para producto + movimientos; el runner restaura el
// snapshot si fn falla, imitando el Rollback.
type invStore struct {
	products  map[string]*entity.Product
	movements []*entity.InventoryTransaction
}

func (s *invStore) snapshot() invStore {
	snap := invStore{products: make(map[string]*entity.Product, len(s.products))}
	for id, p := range s.products {
		c := *p
		snap.products[id] = &c
	}
	snap.movements = append([]*entity.InventoryTransaction(nil), s.movements...)
	return snap
}

type invProductRepo struct{ s *invStore }

func (r *invProductRepo) Create(p *entity.Product) error {
	c := *p
	r.s.products[p.ID] = &c
	return nil
}

func (r *invProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	c := *p
	return &c, nil
}

func (r *invProductRepo) GetForUpdate(id string) (*entity.Product, error) { return r.GetByID(id) }

func (r *invProductRepo) GetByCompanyAndSKU(companyID, sku string) (*entity.Product, error) {
	for _, p := range r.s.products {
		if p.CompanyID == companyID && p.SKU == sku {
			c := *p
			return &c, nil
		}
	}
	return nil, nil
}

func (r *invProductRepo) Update(p *entity.Product) error {
	c := *p
	r.s.products[p.ID] = &c
	return nil
}

func (r *invProductRepo) UpdateStockAndCost(productID string, stock, averageCost, lastCost, totalValue decimal.Decimal, updatedAt time.Time) error {
	p, ok := r.s.products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	p.StockQuantity = stock
	p.AverageCost = averageCost
	p.LastCost = lastCost
	p.TotalValue = totalValue
	p.UpdatedAt = updatedAt
	return nil
}

func (r *invProductRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Product, error) {
	return nil, nil
}

func (r *invProductRepo) ListBelowReorder(companyID string) ([]*entity.Product, error) {
	return nil, nil
}

func (r *invProductRepo) Delete(id string) error {
	delete(r.s.products, id)
	return nil
}

type invMovementRepo struct{ s *invStore }

func (r *invMovementRepo) Create(tx *entity.InventoryTransaction) error {
	c := *tx
	r.s.movements = append(r.s.movements, &c)
	return nil
}

func (r *invMovementRepo) GetByID(id string) (*entity.InventoryTransaction, error) {
	for _, m := range r.s.movements {
		if m.ID == id {
			c := *m
			return &c, nil
		}
	}
	return nil, nil
}

func (r *invMovementRepo) ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.InventoryTransaction, error) {
	var out []*entity.InventoryTransaction
	for _, m := range r.s.movements {
		if m.ProductID == productID {
			c := *m
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *invMovementRepo) ListByReference(referenceType, referenceID string) ([]*entity.InventoryTransaction, error) {
	return nil, nil
}

type invTxRunner struct{ s *invStore }

func (t *invTxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	movRepo repository.InventoryTransactionRepository,
) error) error {
	snap := t.s.snapshot()
	err := fn(&invProductRepo{t.s}, &invMovementRepo{t.s})
	if err != nil {
		*t.s = snap
	}
	return err
}

func newFixture() (*invStore, *inventory.AdjustStockUseCase) {
	s := &invStore{products: make(map[string]*entity.Product)}
	s.products["prod-miel"] = &entity.Product{
		ID:            "prod-miel",
		CompanyID:     "empresa-1",
		SKU:           "MIE-003",
		Name:          "Miel de abejas 300g",
		Price:         d("15.00"),
		StockQuantity: d("10"),
		AverageCost:   d("5.00"),
		LastCost:      d("5.00"),
		TotalValue:    d("50.00"),
	}
	uc := inventory.NewAdjustStockUseCase(&invTxRunner{s}, &invProductRepo{s})
	return s, uc
}

// ──────────────────────────────────────────────────────────────────────────────
// AdjustStock — movimientos transaccionales de inventario
// ──────────────────────────────────────────────────────────────────────────────

// Compra: recalcula el promedio ponderado y deja el registro de auditoría.
func TestAdjustStock_CompraActualizaPromedio(t *testing.T) {
	s, uc := newFixture()

	resp, err := uc.AdjustStock(context.Background(), inventory.AdjustStockInput{
		CompanyID: "empresa-1",
		UserID:    "usuario-1",
		ProductID: "prod-miel",
		Type:      entity.MovementTypePurchase,
		Quantity:  d("10"),
		UnitCost:  dp("7.00"),
	})
	require.NoError(t, err)

	// (10*5 + 10*7) / 20 = 6.00
	p := s.products["prod-miel"]
	assert.True(t, d("20").Equal(p.StockQuantity))
	assert.True(t, d("6.00").Equal(p.AverageCost))
	assert.True(t, d("7.00").Equal(p.LastCost))
	assert.True(t, d("120.00").Equal(p.TotalValue))

	require.Len(t, s.movements, 1)
	mov := s.movements[0]
	assert.Equal(t, entity.MovementTypePurchase, mov.Type)
	assert.True(t, d("10").Equal(mov.StockBefore))
	assert.True(t, d("20").Equal(mov.StockAfter))
	assert.True(t, d("7.00").Equal(mov.UnitCost), "el registro guarda el costo de la entrada")
	assert.Equal(t, entity.ReferenceTypeManual, mov.ReferenceType, "referencia por defecto")
	assert.Equal(t, "usuario-1", mov.CreatedBy)
	assert.Equal(t, mov.ID, resp.ID)
}

// Ajuste negativo: consume al promedio vigente sin alterarlo.
func TestAdjustStock_AjusteNegativo(t *testing.T) {
	s, uc := newFixture()

	resp, err := uc.AdjustStock(context.Background(), inventory.AdjustStockInput{
		CompanyID: "empresa-1",
		UserID:    "usuario-1",
		ProductID: "prod-miel",
		Type:      entity.MovementTypeAdjustment,
		Quantity:  d("-4"),
	})
	require.NoError(t, err)

	p := s.products["prod-miel"]
	assert.True(t, d("6").Equal(p.StockQuantity))
	assert.True(t, d("5.00").Equal(p.AverageCost), "la salida no cambia el promedio")
	assert.True(t, d("30.00").Equal(p.TotalValue))
	assert.True(t, d("5.00").Equal(resp.UnitCost), "la salida se registra al promedio vigente")
}

// Daño que excede el stock: error tipado con detalle y sin efectos.
func TestAdjustStock_StockInsuficienteNoDejaRastro(t *testing.T) {
	s, uc := newFixture()

	_, err := uc.AdjustStock(context.Background(), inventory.AdjustStockInput{
		CompanyID: "empresa-1",
		UserID:    "usuario-1",
		ProductID: "prod-miel",
		Type:      entity.MovementTypeDamage,
		Quantity:  d("-15"),
	})

	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "Miel de abejas 300g", stockErr.ProductName)
	assert.True(t, d("10").Equal(stockErr.Available))
	assert.True(t, d("15").Equal(stockErr.Requested))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.True(t, d("10").Equal(s.products["prod-miel"].StockQuantity), "rollback: nada cambió")
	assert.Empty(t, s.movements)
}

func TestAdjustStock_ValidacionesPorTipo(t *testing.T) {
	_, uc := newFixture()
	ctx := context.Background()
	base := inventory.AdjustStockInput{CompanyID: "empresa-1", UserID: "usuario-1", ProductID: "prod-miel"}

	cases := []struct {
		name string
		mod  func(in *inventory.AdjustStockInput)
	}{
		{"venta directa no permitida", func(in *inventory.AdjustStockInput) {
			in.Type = entity.MovementTypeSale
			in.Quantity = d("-1")
		}},
		{"compra sin costo unitario", func(in *inventory.AdjustStockInput) {
			in.Type = entity.MovementTypePurchase
			in.Quantity = d("5")
		}},
		{"compra con cantidad negativa", func(in *inventory.AdjustStockInput) {
			in.Type = entity.MovementTypePurchase
			in.Quantity = d("-5")
			in.UnitCost = dp("3.00")
		}},
		{"producción sin costo unitario", func(in *inventory.AdjustStockInput) {
			in.Type = entity.MovementTypeProduction
			in.Quantity = d("5")
		}},
		{"devolución negativa", func(in *inventory.AdjustStockInput) {
			in.Type = entity.MovementTypeReturn
			in.Quantity = d("-2")
		}},
		{"daño positivo", func(in *inventory.AdjustStockInput) {
			in.Type = entity.MovementTypeDamage
			in.Quantity = d("2")
		}},
		{"tipo desconocido", func(in *inventory.AdjustStockInput) {
			in.Type = "transfer"
			in.Quantity = d("1")
		}},
		{"cantidad cero", func(in *inventory.AdjustStockInput) {
			in.Type = entity.MovementTypeAdjustment
			in.Quantity = decimal.Zero
		}},
		{"costo unitario negativo", func(in *inventory.AdjustStockInput) {
			in.Type = entity.MovementTypeAdjustment
			in.Quantity = d("1")
			in.UnitCost = dp("-1.00")
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := base
			tc.mod(&in)
			_, err := uc.AdjustStock(ctx, in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestAdjustStock_ProductoDeOtraEmpresa(t *testing.T) {
	_, uc := newFixture()

	_, err := uc.AdjustStock(context.Background(), inventory.AdjustStockInput{
		CompanyID: "empresa-2",
		UserID:    "usuario-1",
		ProductID: "prod-miel",
		Type:      entity.MovementTypeReturn,
		Quantity:  d("1"),
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// companySwapRunner cambia el tenant del producto justo antes de abrir la
// transacción, simulando una actualización concurrente entre la
// pre-validación y el bloqueo de fila.
type companySwapRunner struct {
	inner *invTxRunner
}

func (t *companySwapRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	movRepo repository.InventoryTransactionRepository,
) error) error {
	t.inner.s.products["prod-miel"].CompanyID = "empresa-2"
	return t.inner.Run(ctx, fn)
}

// La re-validación de tenant dentro de la transacción también distingue
// cross-tenant (ErrForbidden) de inexistente (ErrNotFound).
func TestAdjustStock_CambioDeTenantDuranteLaTransaccion(t *testing.T) {
	s := &invStore{products: make(map[string]*entity.Product)}
	s.products["prod-miel"] = &entity.Product{
		ID:            "prod-miel",
		CompanyID:     "empresa-1",
		Name:          "Miel de abejas 300g",
		StockQuantity: d("10"),
		AverageCost:   d("5.00"),
	}
	uc := inventory.NewAdjustStockUseCase(&companySwapRunner{&invTxRunner{s}}, &invProductRepo{s})

	_, err := uc.AdjustStock(context.Background(), inventory.AdjustStockInput{
		CompanyID: "empresa-1",
		UserID:    "usuario-1",
		ProductID: "prod-miel",
		Type:      entity.MovementTypeReturn,
		Quantity:  d("1"),
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Empty(t, s.movements)
}

func TestAdjustStock_ProductoInexistente(t *testing.T) {
	_, uc := newFixture()

	_, err := uc.AdjustStock(context.Background(), inventory.AdjustStockInput{
		CompanyID: "empresa-1",
		UserID:    "usuario-1",
		ProductID: "no-existe",
		Type:      entity.MovementTypeReturn,
		Quantity:  d("1"),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// El adaptador HTTP conserva referencia y tipo del request.
func TestAdjustStockFromRequest(t *testing.T) {
	s, uc := newFixture()

	_, err := uc.AdjustStockFromRequest(context.Background(), "empresa-1", "usuario-1", dto.AdjustStockRequest{
		ProductID:     "prod-miel",
		Type:          entity.MovementTypePurchase,
		Quantity:      d("5"),
		UnitCost:      dp("4.00"),
		ReferenceType: entity.ReferenceTypePurchase,
		ReferenceID:   "oc-001",
	})
	require.NoError(t, err)

	require.Len(t, s.movements, 1)
	assert.Equal(t, entity.ReferenceTypePurchase, s.movements[0].ReferenceType)
	assert.Equal(t, "oc-001", s.movements[0].ReferenceID)
}
