// Package catalog es la frontera de aislamiento entre cuentas: toda lectura o escritura
// del catálogo pasa por un Scope atado a la cuenta autenticada.
package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventario-negocios/internal/application/dto"
	"github.com/jhoicas/inventario-negocios/internal/domain"
	"github.com/jhoicas/inventario-negocios/internal/domain/entity"
	"github.com/jhoicas/inventario-negocios/internal/domain/repository"
	"github.com/jhoicas/inventario-negocios/pkg/logger"
)

// Gateway construye accesos al catálogo acotados a una cuenta.
type Gateway struct {
	products repository.ProductRepository
	images   ImageStore
	log      *logger.Logger
	now      func() time.Time
}

// NewGateway construye el gateway. images puede ser nil si no se aceptan imágenes.
func NewGateway(products repository.ProductRepository, images ImageStore, log *logger.Logger) *Gateway {
	if log == nil {
		log = logger.Nop()
	}
	return &Gateway{products: products, images: images, log: log.Named("catalog"), now: time.Now}
}

// Scope acceso al catálogo de una única cuenta. Solo se obtiene vía Gateway.For.
type Scope struct {
	g         *Gateway
	accountID string
}

// For devuelve el Scope de la cuenta. Sin identidad no hay acceso: domain.ErrUnauthenticated.
func (g *Gateway) For(accountID string) (*Scope, error) {
	if accountID == "" {
		return nil, domain.ErrUnauthenticated
	}
	return &Scope{g: g, accountID: accountID}, nil
}

// ListOwned atajo de For(accountID).List.
func (g *Gateway) ListOwned(ctx context.Context, accountID string) ([]*entity.Product, error) {
	s, err := g.For(accountID)
	if err != nil {
		return nil, err
	}
	return s.List(ctx)
}

// AddProduct atajo de For(accountID).Add.
func (g *Gateway) AddProduct(ctx context.Context, accountID string, in dto.AddProductRequest) (*entity.Product, error) {
	s, err := g.For(accountID)
	if err != nil {
		return nil, err
	}
	return s.Add(ctx, in)
}

// GetOwned atajo de For(accountID).Get.
func (g *Gateway) GetOwned(ctx context.Context, accountID, productID string) (*entity.Product, error) {
	s, err := g.For(accountID)
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, productID)
}

// AccountID cuenta a la que está atado el Scope.
func (s *Scope) AccountID() string { return s.accountID }

// List devuelve los productos de la cuenta en orden de inserción; lista vacía si no hay.
func (s *Scope) List(ctx context.Context) ([]*entity.Product, error) {
	list, err := s.g.products.ListByOwner(ctx, s.accountID)
	if err != nil {
		return nil, fmt.Errorf("catalog: listar: %w", err)
	}
	if list == nil {
		list = []*entity.Product{}
	}
	return list, nil
}

// Get devuelve un producto de la cuenta. Un producto de otra cuenta es domain.ErrNotFound.
func (s *Scope) Get(ctx context.Context, productID string) (*entity.Product, error) {
	if productID == "" {
		return nil, domain.ErrNotFound
	}
	p, err := s.g.products.GetByOwnerAndID(ctx, s.accountID, productID)
	if err != nil {
		return nil, fmt.Errorf("catalog: obtener: %w", err)
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

// Add valida los campos, guarda la imagen (si viene) y persiste el producto bajo la cuenta.
// Si la validación o el insert fallan no queda nada escrito, tampoco la imagen.
func (s *Scope) Add(ctx context.Context, in dto.AddProductRequest) (*entity.Product, error) {
	f, err := parseProductFields(in)
	if err != nil {
		return nil, err
	}

	image := entity.DefaultImage
	stored := ""
	if in.Image != nil && in.ImageName != "" {
		if s.g.images == nil {
			return nil, domain.NewValidationError("image", "no se aceptan imágenes")
		}
		name, err := s.g.images.Save(ctx, in.ImageName, in.Image)
		if err != nil {
			return nil, err
		}
		stored, image = name, name
	}

	p := &entity.Product{
		ID:        uuid.New().String(),
		OwnerID:   s.accountID,
		Name:      f.name,
		Category:  f.category,
		Price:     f.price,
		Quantity:  f.quantity,
		MinStock:  f.minStock,
		Image:     image,
		CreatedAt: s.g.now().UTC(),
	}
	if err := s.g.products.Create(ctx, s.accountID, p); err != nil {
		if stored != "" {
			s.discardImage(ctx, stored)
		}
		return nil, fmt.Errorf("catalog: crear producto: %w", err)
	}

	s.g.log.Info().
		Str("account_id", s.accountID).
		Str("product_id", p.ID).
		Str("name", p.Name).
		Msg("producto agregado")
	return p, nil
}

// discardImage borra la imagen de un alta que no llegó al store.
// Usa un contexto sin cancelación: el request pudo haberse cancelado.
func (s *Scope) discardImage(ctx context.Context, name string) {
	if err := s.g.images.Delete(context.WithoutCancel(ctx), name); err != nil {
		s.g.log.Error().Err(err).Str("account_id", s.accountID).Str("image", name).Msg("no se pudo borrar imagen huérfana")
	}
}

// ToProductResponse mapea la entidad a su DTO.
func ToProductResponse(p *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		Category:  p.Category,
		Price:     p.Price,
		Quantity:  p.Quantity,
		MinStock:  p.MinStock,
		Image:     p.Image,
		LowStock:  p.IsLowStock(),
		CreatedAt: p.CreatedAt,
	}
}

// ToProductResponses mapea una lista; nunca devuelve nil.
func ToProductResponses(list []*entity.Product) []dto.ProductResponse {
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, ToProductResponse(p))
	}
	return out
}
