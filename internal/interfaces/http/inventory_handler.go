package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/inventario-negocios/internal/application/analytics"
	"github.com/jhoicas/inventario-negocios/internal/application/catalog"
	"github.com/jhoicas/inventario-negocios/internal/application/dto"
	"github.com/jhoicas/inventario-negocios/pkg/logger"
)

// InventoryHandler lista y da de alta productos de la cuenta en sesión.
type InventoryHandler struct {
	catalog   *catalog.Gateway
	dashboard *appanalytics.DashboardUseCase
	metrics   *Metrics
	log       *logger.Logger
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(gw *catalog.Gateway, dashboard *appanalytics.DashboardUseCase, metrics *Metrics, log *logger.Logger) *InventoryHandler {
	return &InventoryHandler{catalog: gw, dashboard: dashboard, metrics: metrics, log: log}
}

// List godoc
// @Summary      Inventario de la cuenta
// @Tags         inventory
// @Produce      json
// @Security     BearerAuth
// @Success      200   {object}  dto.InventoryResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/inventory [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	out, err := h.dashboard.GetInventory(c.Context(), GetAccountID(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Agregar producto
// @Description  multipart/form-data (con imagen opcional en "image"), form urlencoded o JSON.
// @Tags         inventory
// @Accept       mpfd,x-www-form-urlencoded,json
// @Produce      json
// @Security     BearerAuth
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/inventory [post]
func (h *InventoryHandler) Create(c *fiber.Ctx) error {
	in, closeImage, err := parseAddProduct(c)
	if err != nil {
		return invalidBody(c)
	}
	defer closeImage()

	p, err := h.catalog.AddProduct(c.Context(), GetAccountID(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	h.metrics.ProductAdded()
	return c.Status(fiber.StatusCreated).JSON(catalog.ToProductResponse(p))
}

// GetByID godoc
// @Summary      Producto de la cuenta
// @Tags         inventory
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID del producto"
// @Success      200   {object}  dto.ProductResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/{id} [get]
func (h *InventoryHandler) GetByID(c *fiber.Ctx) error {
	p, err := h.catalog.GetOwned(c.Context(), GetAccountID(c), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(catalog.ToProductResponse(p))
}

// parseAddProduct lee el alta según el Content-Type. closeImage libera la imagen subida.
func parseAddProduct(c *fiber.Ctx) (dto.AddProductRequest, func(), error) {
	noop := func() {}
	ct := strings.ToLower(string(c.Request().Header.ContentType()))

	if strings.HasPrefix(ct, fiber.MIMEApplicationJSON) {
		var body dto.AddProductJSON
		if err := c.BodyParser(&body); err != nil {
			return dto.AddProductRequest{}, noop, err
		}
		return body.ToRequest(), noop, nil
	}

	in := dto.AddProductRequest{
		Name:     c.FormValue("name"),
		Category: c.FormValue("category"),
		Price:    c.FormValue("price"),
		Quantity: c.FormValue("quantity"),
		MinStock: c.FormValue("min_stock"),
	}
	if !strings.HasPrefix(ct, fiber.MIMEMultipartForm) {
		return in, noop, nil
	}

	// Un campo "image" ausente o sin nombre equivale a no subir imagen.
	fh, err := c.FormFile("image")
	if err != nil || fh.Filename == "" {
		return in, noop, nil
	}
	f, err := fh.Open()
	if err != nil {
		return dto.AddProductRequest{}, noop, err
	}
	in.ImageName = fh.Filename
	in.Image = f
	return in, func() { _ = f.Close() }, nil
}
