package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/StockWatch-api/internal/application/ports"
	"github.com/jhoicas/StockWatch-api/internal/domain"
	"github.com/jhoicas/StockWatch-api/internal/domain/repository"
)

// TenantUseCase aprovisiona las credenciales del WMS para un tenant: el
// intercambio email+password → par de tokens se hace una sola vez y el par
// queda persistido; los ciclos lo usan desde ahí.
type TenantUseCase struct {
	tenants  repository.TenantRepository
	provider ports.InventoryProvider
}

// NewTenantUseCase construye el caso de uso de tenants.
func NewTenantUseCase(tenants repository.TenantRepository, provider ports.InventoryProvider) *TenantUseCase {
	return &TenantUseCase{tenants: tenants, provider: provider}
}

// ProvisionCredentials intercambia las credenciales del WMS y persiste el par
// de tokens del tenant. Sobrescribe un par anterior: es la vía de rotación.
func (uc *TenantUseCase) ProvisionCredentials(ctx context.Context, tenantID, email, password string) error {
	tenant, err := uc.tenants.GetByID(ctx, tenantID)
	if err != nil {
		return fmt.Errorf("tenant %s: %w", tenantID, err)
	}
	if tenant == nil {
		return domain.ErrNotFound
	}

	pair, err := uc.provider.ExchangeCredentials(ctx, email, password)
	if err != nil {
		return err
	}
	if err := uc.tenants.SaveCredentials(ctx, tenantID, pair.TenantToken, pair.UserToken); err != nil {
		return fmt.Errorf("persistir credenciales de %s: %w", tenantID, err)
	}
	return nil
}
