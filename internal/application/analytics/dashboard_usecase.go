// Package analytics contiene los casos de uso del dashboard y del inventario de una cuenta.
package analytics

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/inventario-negocios/internal/application/catalog"
	"github.com/jhoicas/inventario-negocios/internal/application/dto"
	"github.com/jhoicas/inventario-negocios/internal/domain"
	domainanalytics "github.com/jhoicas/inventario-negocios/internal/domain/analytics"
	"github.com/jhoicas/inventario-negocios/internal/domain/entity"
	"github.com/jhoicas/inventario-negocios/internal/domain/repository"
)

// ReportData datos de entrada del reporte PDF.
type ReportData struct {
	Account  *entity.Account
	Products []*entity.Product
	LowStock []*entity.Product
	Summary  domainanalytics.Summary
}

// ReportGenerator puerto de salida para el reporte de inventario.
type ReportGenerator interface {
	GenerateInventoryReport(ctx context.Context, data ReportData) ([]byte, error)
}

// DashboardUseCase arma el dashboard, el inventario y el reporte de una cuenta.
//
// Los productos se leen siempre a través del catalog.Gateway (filtro por cuenta);
// las métricas salen de domain/analytics.
type DashboardUseCase struct {
	catalog  *catalog.Gateway
	accounts repository.AccountRepository
	reports  ReportGenerator
}

// NewDashboardUseCase construye el caso de uso. reports puede ser nil (sin reporte PDF).
func NewDashboardUseCase(gw *catalog.Gateway, accounts repository.AccountRepository, reports ReportGenerator) *DashboardUseCase {
	return &DashboardUseCase{catalog: gw, accounts: accounts, reports: reports}
}

// load obtiene en paralelo la cuenta y sus productos.
func (uc *DashboardUseCase) load(ctx context.Context, accountID string) (*entity.Account, []*entity.Product, error) {
	scope, err := uc.catalog.For(accountID)
	if err != nil {
		return nil, nil, err
	}

	var (
		account  *entity.Account
		products []*entity.Product
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a, err := uc.accounts.GetByID(gctx, accountID)
		if err != nil {
			return fmt.Errorf("dashboard: cuenta: %w", err)
		}
		account = a
		return nil
	})
	g.Go(func() error {
		list, err := scope.List(gctx)
		if err != nil {
			return fmt.Errorf("dashboard: productos: %w", err)
		}
		products = list
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	if account == nil {
		return nil, nil, domain.ErrUnauthenticated
	}
	return account, products, nil
}

// GetDashboard devuelve productos, valor total e inventario bajo de la cuenta.
func (uc *DashboardUseCase) GetDashboard(ctx context.Context, accountID string) (*dto.DashboardResponse, error) {
	account, products, err := uc.load(ctx, accountID)
	if err != nil {
		return nil, err
	}
	summary := domainanalytics.Summarize(products)
	return &dto.DashboardResponse{
		BusinessName: account.BusinessName,
		Currency:     account.Currency,
		Products:     catalog.ToProductResponses(products),
		TotalValue:   domainanalytics.TotalValue(products).Round(2),
		LowStock:     catalog.ToProductResponses(domainanalytics.LowStock(products)),
		Summary: dto.SummaryResponse{
			ProductCount:  summary.ProductCount,
			TotalUnits:    summary.TotalUnits,
			LowStockCount: summary.LowStockCount,
		},
	}, nil
}

// GetInventory devuelve los productos de la cuenta.
func (uc *DashboardUseCase) GetInventory(ctx context.Context, accountID string) (*dto.InventoryResponse, error) {
	account, products, err := uc.load(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return &dto.InventoryResponse{
		Currency: account.Currency,
		Items:    catalog.ToProductResponses(products),
	}, nil
}

// RenderReport genera el PDF del inventario de la cuenta.
func (uc *DashboardUseCase) RenderReport(ctx context.Context, accountID string) ([]byte, error) {
	if uc.reports == nil {
		return nil, fmt.Errorf("dashboard: generador de reportes no configurado")
	}
	account, products, err := uc.load(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return uc.reports.GenerateInventoryReport(ctx, ReportData{
		Account:  account,
		Products: products,
		LowStock: domainanalytics.LowStock(products),
		Summary:  domainanalytics.Summarize(products),
	})
}
