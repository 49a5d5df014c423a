package http

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/StockWatch-api/internal/application/dto"
	"github.com/jhoicas/StockWatch-api/internal/application/usecase"
	"github.com/jhoicas/StockWatch-api/internal/domain"
)

// ReportHandler expone el reporte de stock bajo del cliente autenticado.
type ReportHandler struct {
	uc *usecase.ReportUseCase
}

// NewReportHandler construye el handler de reportes.
func NewReportHandler(uc *usecase.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// LowStock godoc
// @Summary      Reporte de stock bajo (JSON)
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.LowStockReportDTO
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/reports/low-stock [get]
func (h *ReportHandler) LowStock(c *fiber.Ctx) error {
	customerID := GetCustomerID(c)
	report, err := h.uc.GetLowStockReport(c.Context(), customerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "CUSTOMER_NOT_FOUND", Message: "el cliente no existe"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(report)
}

// LowStockPDF godoc
// @Summary      Reporte de stock bajo (PDF)
// @Tags         reports
// @Produce      application/pdf
// @Security     BearerAuth
// @Success      200  {file}    binary
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/reports/low-stock/pdf [get]
func (h *ReportHandler) LowStockPDF(c *fiber.Ctx) error {
	customerID := GetCustomerID(c)
	pdfBytes, err := h.uc.GetLowStockReportPDF(c.Context(), customerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "CUSTOMER_NOT_FOUND", Message: "el cliente no existe"})
		}
		if errors.Is(err, domain.ErrPlanNotAllowed) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "PLAN_NOT_ALLOWED", Message: "la exportación PDF no está incluida en el plan contratado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	filename := fmt.Sprintf("stock-bajo-%s.pdf", time.Now().UTC().Format("20060102-1504"))
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}
