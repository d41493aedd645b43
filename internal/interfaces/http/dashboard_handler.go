package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/inventario-negocios/internal/application/analytics"
	"github.com/jhoicas/inventario-negocios/pkg/logger"
)

// DashboardHandler maneja los endpoints del dashboard.
type DashboardHandler struct {
	uc  *appanalytics.DashboardUseCase
	log *logger.Logger
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{uc: uc, log: log}
}

// Get devuelve los productos de la cuenta, el valor total del inventario y los
// productos en o bajo su mínimo.
// GET /api/dashboard
func (h *DashboardHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.GetDashboard(c.Context(), GetAccountID(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Report descarga el inventario en PDF.
// GET /api/dashboard/report.pdf
func (h *DashboardHandler) Report(c *fiber.Ctx) error {
	pdf, err := h.uc.RenderReport(c.Context(), GetAccountID(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="inventario.pdf"`)
	return c.Send(pdf)
}
