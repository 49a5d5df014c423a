package entity

import "time"

// Tenant es la frontera de facturación/credenciales: posee el par de tokens
// del sistema de inventario externo. Los tokens se obtienen una sola vez vía
// intercambio de credenciales y se tratan como inmutables; su rotación la
// gestiona la capa administrativa.
type Tenant struct {
	ID          string
	Name        string
	TenantToken string // token opaco de cuenta en el WMS
	UserToken   string // token opaco de usuario en el WMS
	CreatedAt   time.Time
}

// HasCredentials indica si el tenant ya tiene el par de tokens aprovisionado.
func (t Tenant) HasCredentials() bool {
	return t.TenantToken != "" && t.UserToken != ""
}
