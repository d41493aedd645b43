package catalog_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-negocios/internal/application/catalog"
	"github.com/jhoicas/inventario-negocios/internal/application/dto"
	"github.com/jhoicas/inventario-negocios/internal/domain"
	"github.com/jhoicas/inventario-negocios/internal/domain/entity"
	"github.com/jhoicas/inventario-negocios/internal/infrastructure/storage"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	mu        sync.Mutex
	rows      []*entity.Product
	createErr error
}

func (r *fakeProductRepo) Create(_ context.Context, ownerID string, p *entity.Product) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	p.OwnerID = ownerID
	cp := *p
	r.rows = append(r.rows, &cp)
	return nil
}

func (r *fakeProductRepo) ListByOwner(_ context.Context, ownerID string) ([]*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Product
	for _, p := range r.rows {
		if p.OwnerID == ownerID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) GetByOwnerAndID(_ context.Context, ownerID, id string) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.rows {
		if p.OwnerID == ownerID && p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	list, _ := r.ListByOwner(ctx, ownerID)
	return len(list), nil
}

func (r *fakeProductRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rows)
}

type fakeImageStore struct {
	saved map[string][]byte
	err   error
}

func (s *fakeImageStore) Save(_ context.Context, filename string, r io.Reader) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	if s.saved == nil {
		s.saved = map[string][]byte{}
	}
	s.saved[filename] = b
	return filename, nil
}

func (s *fakeImageStore) Delete(_ context.Context, name string) error {
	delete(s.saved, name)
	return nil
}

const (
	accountA = "11111111-1111-1111-1111-111111111111"
	accountB = "22222222-2222-2222-2222-222222222222"
)

func widget() dto.AddProductRequest {
	return dto.AddProductRequest{Name: "Widget", Category: "Ferretería", Price: "9.99", Quantity: "4", MinStock: "5"}
}

// ──────────────────────────────────────────────────────────────────────────────
// Aislamiento entre cuentas
// ──────────────────────────────────────────────────────────────────────────────

func TestFor_SinCuenta_Unauthenticated(t *testing.T) {
	repo := &fakeProductRepo{}
	gw := catalog.NewGateway(repo, nil, nil)

	_, err := gw.For("")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	_, err = gw.ListOwned(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	_, err = gw.AddProduct(context.Background(), "", widget())
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	assert.Equal(t, 0, repo.count(), "no debe tocarse el store sin identidad")
}

func TestListOwned_NuncaIncluyeProductosDeOtraCuenta(t *testing.T) {
	ctx := context.Background()
	gw := catalog.NewGateway(&fakeProductRepo{}, nil, nil)

	pa, err := gw.AddProduct(ctx, accountA, widget())
	require.NoError(t, err)
	in := widget()
	in.Name = "Tuerca"
	pb, err := gw.AddProduct(ctx, accountB, in)
	require.NoError(t, err)

	listA, err := gw.ListOwned(ctx, accountA)
	require.NoError(t, err)
	require.Len(t, listA, 1)
	assert.Equal(t, pa.ID, listA[0].ID)

	listB, err := gw.ListOwned(ctx, accountB)
	require.NoError(t, err)
	require.Len(t, listB, 1)
	assert.Equal(t, pb.ID, listB[0].ID)
}

func TestListOwned_SinProductos_ListaVacia(t *testing.T) {
	gw := catalog.NewGateway(&fakeProductRepo{}, nil, nil)

	list, err := gw.ListOwned(context.Background(), accountA)
	require.NoError(t, err)
	require.NotNil(t, list)
	assert.Empty(t, list)
}

func TestGetOwned_ProductoDeOtraCuenta_NotFound(t *testing.T) {
	ctx := context.Background()
	gw := catalog.NewGateway(&fakeProductRepo{}, nil, nil)

	pb, err := gw.AddProduct(ctx, accountB, widget())
	require.NoError(t, err)

	_, err = gw.GetOwned(ctx, accountA, pb.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	got, err := gw.GetOwned(ctx, accountB, pb.ID)
	require.NoError(t, err)
	assert.Equal(t, "Widget", got.Name)
}

// ──────────────────────────────────────────────────────────────────────────────
// Alta de productos
// ──────────────────────────────────────────────────────────────────────────────

func TestAdd_AsignaIDDuenoYDefaults(t *testing.T) {
	gw := catalog.NewGateway(&fakeProductRepo{}, nil, nil)
	in := widget()
	in.MinStock = ""
	in.Name = "  Widget  "

	p, err := gw.AddProduct(context.Background(), accountA, in)
	require.NoError(t, err)

	assert.NotEmpty(t, p.ID)
	assert.Equal(t, accountA, p.OwnerID)
	assert.Equal(t, "Widget", p.Name)
	assert.Equal(t, "9.99", p.Price.String())
	assert.Equal(t, 4, p.Quantity)
	assert.Equal(t, entity.DefaultMinStock, p.MinStock)
	assert.Equal(t, entity.DefaultImage, p.Image)
	assert.False(t, p.CreatedAt.IsZero())
}

func TestAdd_Validacion_NoPersiste(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*dto.AddProductRequest)
		field string
	}{
		{"precio no numérico", func(in *dto.AddProductRequest) { in.Price = "abc" }, "price"},
		{"precio ausente", func(in *dto.AddProductRequest) { in.Price = "" }, "price"},
		{"precio negativo", func(in *dto.AddProductRequest) { in.Price = "-1" }, "price"},
		{"nombre vacío", func(in *dto.AddProductRequest) { in.Name = "   " }, "name"},
		{"cantidad decimal", func(in *dto.AddProductRequest) { in.Quantity = "1.5" }, "quantity"},
		{"cantidad ausente", func(in *dto.AddProductRequest) { in.Quantity = "" }, "quantity"},
		{"cantidad negativa", func(in *dto.AddProductRequest) { in.Quantity = "-3" }, "quantity"},
		{"min_stock no numérico", func(in *dto.AddProductRequest) { in.MinStock = "cinco" }, "min_stock"},
		{"min_stock negativo", func(in *dto.AddProductRequest) { in.MinStock = "-1" }, "min_stock"},
		{"nombre de 101 caracteres", func(in *dto.AddProductRequest) { in.Name = strings.Repeat("ñ", 101) }, "name"},
		{"categoría de 51 caracteres", func(in *dto.AddProductRequest) { in.Category = strings.Repeat("a", 51) }, "category"},
		{"cantidad mayor a int32", func(in *dto.AddProductRequest) { in.Quantity = "3000000000" }, "quantity"},
		{"min_stock mayor a int32", func(in *dto.AddProductRequest) { in.MinStock = "2147483648" }, "min_stock"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeProductRepo{}
			images := &fakeImageStore{}
			gw := catalog.NewGateway(repo, images, nil)
			in := widget()
			in.ImageName = "foto.png"
			in.Image = strings.NewReader("png")
			tt.edit(&in)

			_, err := gw.AddProduct(context.Background(), accountA, in)

			require.ErrorIs(t, err, domain.ErrValidation)
			var verr *domain.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
			assert.Equal(t, 0, repo.count(), "store sin cambios")
			assert.Empty(t, images.saved, "no se guarda la imagen si la validación falla")
		})
	}
}

func TestAdd_LimitesExactosSonValidos(t *testing.T) {
	gw := catalog.NewGateway(&fakeProductRepo{}, nil, nil)
	in := widget()
	in.Name = strings.Repeat("ñ", 100)
	in.Category = strings.Repeat("a", 50)
	in.Quantity = "2147483647"

	p, err := gw.AddProduct(context.Background(), accountA, in)
	require.NoError(t, err)
	assert.Equal(t, 2147483647, p.Quantity)
}

func TestAdd_ConImagen(t *testing.T) {
	images := &fakeImageStore{}
	gw := catalog.NewGateway(&fakeProductRepo{}, images, nil)
	in := widget()
	in.ImageName = "widget.png"
	in.Image = bytes.NewReader([]byte{0x89, 'P', 'N', 'G'})

	p, err := gw.AddProduct(context.Background(), accountA, in)
	require.NoError(t, err)

	assert.Equal(t, "widget.png", p.Image)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, images.saved["widget.png"])
}

func TestAdd_ImagenSinStore_Validation(t *testing.T) {
	repo := &fakeProductRepo{}
	gw := catalog.NewGateway(repo, nil, nil)
	in := widget()
	in.ImageName = "widget.png"
	in.Image = strings.NewReader("x")

	_, err := gw.AddProduct(context.Background(), accountA, in)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, 0, repo.count())
}

func TestAdd_ErrorDelStore(t *testing.T) {
	boom := errors.New("db caída")
	gw := catalog.NewGateway(&fakeProductRepo{createErr: boom}, nil, nil)

	_, err := gw.AddProduct(context.Background(), accountA, widget())
	assert.ErrorIs(t, err, boom)
}

func TestAdd_ErrorDelStore_BorraLaImagen(t *testing.T) {
	images := &fakeImageStore{}
	gw := catalog.NewGateway(&fakeProductRepo{createErr: errors.New("db caída")}, images, nil)
	in := widget()
	in.ImageName = "widget.png"
	in.Image = strings.NewReader("png")

	_, err := gw.AddProduct(context.Background(), accountA, in)
	require.Error(t, err)
	assert.Empty(t, images.saved)
}

func TestAdd_ErrorDelStore_DirectorioDeUploadsVacio(t *testing.T) {
	dir := t.TempDir()
	images, err := storage.NewLocalImageStore(dir)
	require.NoError(t, err)
	repo := &fakeProductRepo{createErr: domain.ErrNotFound}
	gw := catalog.NewGateway(repo, images, nil)
	in := widget()
	in.ImageName = "widget.png"
	in.Image = strings.NewReader("png")

	_, err = gw.AddProduct(context.Background(), accountA, in)
	require.ErrorIs(t, err, domain.ErrNotFound)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "el alta fallida no deja la imagen en uploads")
}

func TestToProductResponses(t *testing.T) {
	gw := catalog.NewGateway(&fakeProductRepo{}, nil, nil)
	p, err := gw.AddProduct(context.Background(), accountA, widget())
	require.NoError(t, err)

	out := catalog.ToProductResponses([]*entity.Product{p})
	require.Len(t, out, 1)
	assert.True(t, out[0].LowStock)
	assert.Equal(t, p.ID, out[0].ID)

	assert.NotNil(t, catalog.ToProductResponses(nil))
}
