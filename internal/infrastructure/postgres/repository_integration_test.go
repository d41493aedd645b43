//go:build integration

package postgres_test

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-negocios/internal/domain"
	"github.com/jhoicas/inventario-negocios/internal/domain/entity"
	"github.com/jhoicas/inventario-negocios/internal/infrastructure/postgres"
	"github.com/jhoicas/inventario-negocios/pkg/config"
	"github.com/jhoicas/inventario-negocios/pkg/logger"
)

// Corre con: TEST_DATABASE_URL=postgres://... go test -tags integration ./internal/infrastructure/postgres/...

func newPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL no definido")
	}
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: dsn})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, postgres.NewMigrator(pool, logger.Nop()).Up(ctx))
	return pool
}

// newAccount crea una cuenta con username único y la borra (con sus productos) al terminar.
func newAccount(t *testing.T, pool *pgxpool.Pool) *entity.Account {
	t.Helper()
	ctx := context.Background()
	a := &entity.Account{
		ID:           uuid.NewString(),
		Username:     "it-" + uuid.NewString()[:8],
		PasswordHash: "x",
		BusinessName: "Integración",
		Currency:     entity.DefaultCurrency,
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, postgres.NewAccountRepository(pool).Create(ctx, a))
	t.Cleanup(func() {
		_, _ = pool.Exec(ctx, `DELETE FROM revoked_sessions WHERE account_id = $1`, a.ID)
		_, _ = pool.Exec(ctx, `DELETE FROM products WHERE owner_id = $1`, a.ID)
		_, _ = pool.Exec(ctx, `DELETE FROM accounts WHERE id = $1`, a.ID)
	})
	return a
}

func newProduct(name string, qty int) *entity.Product {
	return &entity.Product{
		ID:        uuid.NewString(),
		Name:      name,
		Price:     decimal.RequireFromString("9.99"),
		Quantity:  qty,
		MinStock:  entity.DefaultMinStock,
		Image:     entity.DefaultImage,
		CreatedAt: time.Now().UTC(),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Cuentas
// ──────────────────────────────────────────────────────────────────────────────

func TestAccountRepo_UsernameDuplicado(t *testing.T) {
	pool := newPool(t)
	a := newAccount(t, pool)

	dup := *a
	dup.ID = uuid.NewString()
	err := postgres.NewAccountRepository(pool).Create(context.Background(), &dup)
	assert.ErrorIs(t, err, domain.ErrDuplicateUsername)
}

// ──────────────────────────────────────────────────────────────────────────────
// Productos: filtro por cuenta
// ──────────────────────────────────────────────────────────────────────────────

func TestProductRepo_FiltraPorCuenta(t *testing.T) {
	pool := newPool(t)
	ctx := context.Background()
	repo := postgres.NewProductRepository(pool)
	a := newAccount(t, pool)
	b := newAccount(t, pool)

	pa1 := newProduct("Widget", 4)
	pa2 := newProduct("Tuerca", 10)
	pb := newProduct("Tornillo", 1)
	require.NoError(t, repo.Create(ctx, a.ID, pa1))
	require.NoError(t, repo.Create(ctx, a.ID, pa2))
	require.NoError(t, repo.Create(ctx, b.ID, pb))

	listA, err := repo.ListByOwner(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, listA, 2)
	assert.Equal(t, pa1.ID, listA[0].ID, "orden de inserción")
	assert.Equal(t, pa2.ID, listA[1].ID)
	assert.True(t, listA[0].Price.Equal(decimal.RequireFromString("9.99")))

	got, err := repo.GetByOwnerAndID(ctx, a.ID, pb.ID)
	require.NoError(t, err)
	assert.Nil(t, got, "un producto de otra cuenta no se devuelve")

	got, err = repo.GetByOwnerAndID(ctx, b.ID, pb.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, b.ID, got.OwnerID)

	n, err := repo.CountByOwner(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestProductRepo_IDsNoUUID(t *testing.T) {
	pool := newPool(t)
	ctx := context.Background()
	repo := postgres.NewProductRepository(pool)

	list, err := repo.ListByOwner(ctx, "no-es-uuid")
	require.NoError(t, err)
	assert.Empty(t, list)

	got, err := repo.GetByOwnerAndID(ctx, "no-es-uuid", "tampoco")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestProductRepo_CuentaInexistente(t *testing.T) {
	pool := newPool(t)
	err := postgres.NewProductRepository(pool).Create(context.Background(), uuid.NewString(), newProduct("Widget", 1))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductRepo_FueraDeRangoEsValidacion(t *testing.T) {
	pool := newPool(t)
	a := newAccount(t, pool)

	p := newProduct(strings.Repeat("x", 101), 1)
	err := postgres.NewProductRepository(pool).Create(context.Background(), a.ID, p)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

// ──────────────────────────────────────────────────────────────────────────────
// Sesiones revocadas
// ──────────────────────────────────────────────────────────────────────────────

func TestSessionRepo_RevokeYPurge(t *testing.T) {
	pool := newPool(t)
	ctx := context.Background()
	repo := postgres.NewSessionRepository(pool)
	a := newAccount(t, pool)

	expired := uuid.NewString()
	live := uuid.NewString()
	require.NoError(t, repo.Revoke(ctx, expired, a.ID, time.Now().Add(-time.Minute)))
	require.NoError(t, repo.Revoke(ctx, live, a.ID, time.Now().Add(time.Hour)))
	require.NoError(t, repo.Revoke(ctx, live, a.ID, time.Now().Add(time.Hour)), "revocar dos veces no falla")

	ok, err := repo.IsRevoked(ctx, live)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = repo.PurgeExpired(ctx, time.Now())
	require.NoError(t, err)

	ok, err = repo.IsRevoked(ctx, expired)
	require.NoError(t, err)
	assert.False(t, ok)
	ok, err = repo.IsRevoked(ctx, live)
	require.NoError(t, err)
	assert.True(t, ok)
}
