package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/StockWatch-api/internal/application/dto"
	"github.com/jhoicas/StockWatch-api/internal/application/usecase"
	"github.com/jhoicas/StockWatch-api/internal/domain"
	"github.com/jhoicas/StockWatch-api/internal/infrastructure/wms"
)

// TenantHandler aprovisiona las credenciales del WMS de un tenant.
type TenantHandler struct {
	uc *usecase.TenantUseCase
}

// NewTenantHandler construye el handler de tenants.
func NewTenantHandler(uc *usecase.TenantUseCase) *TenantHandler {
	return &TenantHandler{uc: uc}
}

// ProvisionCredentials godoc
// @Summary      Intercambiar y guardar credenciales del WMS
// @Tags         tenants
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.ProvisionCredentialsRequest  true  "tenant_id, email, password"
// @Success      200   {object}  map[string]string
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/tenants/credentials [post]
func (h *TenantHandler) ProvisionCredentials(c *fiber.Ctx) error {
	var in dto.ProvisionCredentialsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.TenantID == "" || in.Email == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "tenant_id, email y password son requeridos"})
	}

	if err := h.uc.ProvisionCredentials(c.Context(), in.TenantID, in.Email, in.Password); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "TENANT_NOT_FOUND", Message: "el tenant no existe"})
		case errors.Is(err, wms.ErrAuthenticationFailed):
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "WMS_AUTH_FAILED", Message: "el WMS rechazó las credenciales"})
		case errors.Is(err, wms.ErrUpstreamUnavailable), errors.Is(err, wms.ErrUpstreamError):
			return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "WMS_UNAVAILABLE", Message: err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
	}
	return c.JSON(fiber.Map{"status": "provisioned", "tenant_id": in.TenantID})
}
