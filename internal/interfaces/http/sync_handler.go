package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/StockWatch-api/internal/application/dto"
	appsync "github.com/jhoicas/StockWatch-api/internal/application/sync"
	"github.com/jhoicas/StockWatch-api/internal/domain"
	"github.com/jhoicas/StockWatch-api/internal/domain/repository"
)

// SyncHandler dispara una sincronización bajo demanda para el cliente
// autenticado, fuera del ciclo periódico del worker.
type SyncHandler struct {
	uc        *appsync.UseCase
	customers repository.CustomerRepository
}

// NewSyncHandler construye el handler de sincronización.
func NewSyncHandler(uc *appsync.UseCase, customers repository.CustomerRepository) *SyncHandler {
	return &SyncHandler{uc: uc, customers: customers}
}

// Run godoc
// @Summary      Sincronizar ahora el inventario del cliente
// @Tags         sync
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]string
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/sync/run [post]
func (h *SyncHandler) Run(c *fiber.Ctx) error {
	customerID := GetCustomerID(c)
	customer, err := h.customers.GetByID(c.Context(), customerID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if customer == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "CUSTOMER_NOT_FOUND", Message: "el cliente no existe"})
	}

	if err := h.uc.SyncCustomer(c.Context(), customer); err != nil {
		if errors.Is(err, domain.ErrCustomerInactive) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CUSTOMER_INACTIVE", Message: "cliente inactivo"})
		}
		if errors.Is(err, domain.ErrTenantNotProvision) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "TENANT_NOT_PROVISIONED", Message: "tenant sin credenciales del WMS"})
		}
		// La sincronización es parcial: lo que llegó ya quedó persistido.
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "SYNC_PARTIAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"status": "synced", "customer_id": customer.ID})
}
