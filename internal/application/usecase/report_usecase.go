package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/StockWatch-api/internal/application/alerts"
	"github.com/jhoicas/StockWatch-api/internal/application/dto"
	"github.com/jhoicas/StockWatch-api/internal/application/ports"
	"github.com/jhoicas/StockWatch-api/internal/domain"
	"github.com/jhoicas/StockWatch-api/internal/domain/entity"
	"github.com/jhoicas/StockWatch-api/internal/domain/repository"
)

// ReportUseCase expone el reporte de stock bajo bajo demanda (JSON y PDF).
// Reutiliza la misma evaluación determinista del ciclo de notificación, así
// lo que el cliente ve en pantalla coincide con lo que recibe por correo.
type ReportUseCase struct {
	customers        repository.CustomerRepository
	evaluator        *alerts.UseCase
	pdf              ports.LowStockPDFGenerator
	defaultThreshold int
}

// NewReportUseCase construye el caso de uso de reportes.
func NewReportUseCase(
	customers repository.CustomerRepository,
	evaluator *alerts.UseCase,
	pdf ports.LowStockPDFGenerator,
	defaultThreshold int,
) *ReportUseCase {
	return &ReportUseCase{
		customers:        customers,
		evaluator:        evaluator,
		pdf:              pdf,
		defaultThreshold: defaultThreshold,
	}
}

// GetLowStockReport genera el reporte de stock bajo del cliente.
func (uc *ReportUseCase) GetLowStockReport(ctx context.Context, customerID string) (*dto.LowStockReportDTO, error) {
	customer, err := uc.customers.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}

	items, err := uc.evaluator.Evaluate(ctx, customerID)
	if err != nil {
		return nil, err
	}

	rows := make([]dto.LowStockRowDTO, 0, len(items))
	for _, it := range items {
		rows = append(rows, dto.LowStockRowDTO{
			ProductSKU:        it.ProductSKU,
			ProductName:       it.ProductName,
			LocationName:      it.LocationName,
			CurrentQuantity:   it.CurrentQuantity,
			ThresholdQuantity: it.ThresholdQuantity,
		})
	}
	return &dto.LowStockReportDTO{
		CustomerID:       customer.ID,
		CustomerName:     customer.Name,
		GeneratedAt:      time.Now().UTC().Format(time.RFC3339),
		DefaultThreshold: uc.defaultThreshold,
		Items:            rows,
	}, nil
}

// GetLowStockReportPDF genera la versión PDF del reporte. Requiere un plan
// con exportación PDF habilitada.
func (uc *ReportUseCase) GetLowStockReportPDF(ctx context.Context, customerID string) ([]byte, error) {
	customer, err := uc.customers.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	if !customer.HasFeature(entity.FeaturePDFReports) {
		return nil, domain.ErrPlanNotAllowed
	}

	items, err := uc.evaluator.Evaluate(ctx, customerID)
	if err != nil {
		return nil, err
	}
	pdfBytes, err := uc.pdf.GenerateLowStockPDF(ctx, customer, items, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("reporte PDF de %s: %w", customerID, err)
	}
	return pdfBytes, nil
}
