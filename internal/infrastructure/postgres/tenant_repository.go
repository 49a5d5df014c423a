package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/StockWatch-api/internal/domain/entity"
	"github.com/jhoicas/StockWatch-api/internal/domain/repository"
)

var _ repository.TenantRepository = (*TenantRepo)(nil)

// TenantRepo implementación del puerto TenantRepository sobre PostgreSQL.
type TenantRepo struct {
	q Querier
}

// NewTenantRepository construye el adaptador de persistencia para tenants.
func NewTenantRepository(q Querier) *TenantRepo {
	return &TenantRepo{q: q}
}

// GetByID obtiene un tenant por ID. Devuelve nil sin error si no existe.
func (r *TenantRepo) GetByID(ctx context.Context, id string) (*entity.Tenant, error) {
	query := `
		SELECT id, name, COALESCE(tenant_token, ''), COALESCE(user_token, ''), created_at
		FROM tenants WHERE id = $1`
	var t entity.Tenant
	err := r.q.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.Name, &t.TenantToken, &t.UserToken, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tenant: %w", err)
	}
	return &t, nil
}

// SaveCredentials persiste el par de tokens obtenido vía intercambio de
// credenciales. Sobrescribe cualquier par anterior.
func (r *TenantRepo) SaveCredentials(ctx context.Context, tenantID, tenantToken, userToken string) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE tenants SET tenant_token = $2, user_token = $3 WHERE id = $1`,
		tenantID, tenantToken, userToken,
	)
	if err != nil {
		return fmt.Errorf("save tenant credentials: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("save tenant credentials: tenant %s no existe", tenantID)
	}
	return nil
}
