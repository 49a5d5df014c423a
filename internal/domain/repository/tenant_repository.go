package repository

import (
	"context"

	"github.com/jhoicas/StockWatch-api/internal/domain/entity"
)

// TenantRepository define el puerto de lectura de tenants (DIP).
// El almacenamiento/cifrado de los tokens es responsabilidad del colaborador
// de persistencia; el core solo los lee para autenticar contra el WMS.
type TenantRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Tenant, error)
	SaveCredentials(ctx context.Context, tenantID, tenantToken, userToken string) error
}
