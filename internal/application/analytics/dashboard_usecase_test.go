package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalytics "github.com/jhoicas/inventario-negocios/internal/application/analytics"
	"github.com/jhoicas/inventario-negocios/internal/application/catalog"
	"github.com/jhoicas/inventario-negocios/internal/application/dto"
	"github.com/jhoicas/inventario-negocios/internal/domain"
	"github.com/jhoicas/inventario-negocios/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type memAccounts map[string]*entity.Account

func (m memAccounts) Create(_ context.Context, a *entity.Account) error { m[a.ID] = a; return nil }
func (m memAccounts) GetByID(_ context.Context, id string) (*entity.Account, error) {
	return m[id], nil
}
func (m memAccounts) GetByUsername(_ context.Context, u string) (*entity.Account, error) {
	for _, a := range m {
		if a.Username == u {
			return a, nil
		}
	}
	return nil, nil
}

type memProducts struct{ rows []*entity.Product }

func (m *memProducts) Create(_ context.Context, ownerID string, p *entity.Product) error {
	p.OwnerID = ownerID
	m.rows = append(m.rows, p)
	return nil
}
func (m *memProducts) ListByOwner(_ context.Context, ownerID string) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range m.rows {
		if p.OwnerID == ownerID {
			out = append(out, p)
		}
	}
	return out, nil
}
func (m *memProducts) GetByOwnerAndID(_ context.Context, ownerID, id string) (*entity.Product, error) {
	for _, p := range m.rows {
		if p.OwnerID == ownerID && p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}
func (m *memProducts) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	l, _ := m.ListByOwner(ctx, ownerID)
	return len(l), nil
}

type captureReports struct{ got appanalytics.ReportData }

func (c *captureReports) GenerateInventoryReport(_ context.Context, data appanalytics.ReportData) ([]byte, error) {
	c.got = data
	return []byte("%PDF-fake"), nil
}

const (
	shopA = "aaaaaaaa-0000-0000-0000-000000000001"
	shopB = "bbbbbbbb-0000-0000-0000-000000000002"
)

func setup(t *testing.T) (*appanalytics.DashboardUseCase, *catalog.Gateway, *captureReports) {
	t.Helper()
	accounts := memAccounts{
		shopA: {ID: shopA, Username: "shopA", BusinessName: "Shop A", Currency: "USD", CreatedAt: time.Now()},
		shopB: {ID: shopB, Username: "shopB", BusinessName: "Shop B", Currency: "EUR", CreatedAt: time.Now()},
	}
	gw := catalog.NewGateway(&memProducts{}, nil, nil)
	reports := &captureReports{}
	return appanalytics.NewDashboardUseCase(gw, accounts, reports), gw, reports
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestGetDashboard_Widget(t *testing.T) {
	uc, gw, _ := setup(t)
	ctx := context.Background()
	_, err := gw.AddProduct(ctx, shopA, dto.AddProductRequest{Name: "Widget", Price: "9.99", Quantity: "4", MinStock: "5"})
	require.NoError(t, err)

	out, err := uc.GetDashboard(ctx, shopA)
	require.NoError(t, err)

	assert.Equal(t, "Shop A", out.BusinessName)
	assert.Equal(t, "USD", out.Currency)
	require.Len(t, out.Products, 1)
	assert.True(t, out.TotalValue.Equal(decimal.RequireFromString("39.96")), "got %s", out.TotalValue)
	require.Len(t, out.LowStock, 1)
	assert.Equal(t, "Widget", out.LowStock[0].Name)
	assert.Equal(t, 1, out.Summary.LowStockCount)
	assert.Equal(t, 4, out.Summary.TotalUnits)
}

func TestGetDashboard_SinProductos(t *testing.T) {
	uc, _, _ := setup(t)

	out, err := uc.GetDashboard(context.Background(), shopA)
	require.NoError(t, err)
	assert.True(t, out.TotalValue.IsZero())
	assert.NotNil(t, out.Products)
	assert.NotNil(t, out.LowStock)
	assert.Empty(t, out.LowStock)
}

func TestGetDashboard_SoloProductosPropios(t *testing.T) {
	uc, gw, _ := setup(t)
	ctx := context.Background()
	_, err := gw.AddProduct(ctx, shopB, dto.AddProductRequest{Name: "Ajeno", Price: "100", Quantity: "1"})
	require.NoError(t, err)
	_, err = gw.AddProduct(ctx, shopA, dto.AddProductRequest{Name: "Propio", Price: "2", Quantity: "50"})
	require.NoError(t, err)

	out, err := uc.GetDashboard(ctx, shopA)
	require.NoError(t, err)
	require.Len(t, out.Products, 1)
	assert.Equal(t, "Propio", out.Products[0].Name)
	assert.Equal(t, "100", out.TotalValue.String())
	assert.Empty(t, out.LowStock)
}

func TestGetDashboard_CuentaInexistenteOVacia(t *testing.T) {
	uc, _, _ := setup(t)

	_, err := uc.GetDashboard(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	_, err = uc.GetDashboard(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestGetInventory(t *testing.T) {
	uc, gw, _ := setup(t)
	ctx := context.Background()
	_, err := gw.AddProduct(ctx, shopB, dto.AddProductRequest{Name: "Queso", Price: "3.5", Quantity: "10"})
	require.NoError(t, err)

	out, err := uc.GetInventory(ctx, shopB)
	require.NoError(t, err)
	assert.Equal(t, "EUR", out.Currency)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "Queso", out.Items[0].Name)
}

func TestRenderReport(t *testing.T) {
	uc, gw, reports := setup(t)
	ctx := context.Background()
	_, err := gw.AddProduct(ctx, shopA, dto.AddProductRequest{Name: "Widget", Price: "9.99", Quantity: "4"})
	require.NoError(t, err)

	pdf, err := uc.RenderReport(ctx, shopA)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-fake", string(pdf))
	assert.Equal(t, shopA, reports.got.Account.ID)
	assert.Len(t, reports.got.Products, 1)
	assert.Len(t, reports.got.LowStock, 1)
	assert.Equal(t, 1, reports.got.Summary.ProductCount)
}
