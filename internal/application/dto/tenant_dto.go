package dto

// ProvisionCredentialsRequest credenciales del WMS a intercambiar por el par
// de tokens del tenant.
type ProvisionCredentialsRequest struct {
	TenantID string `json:"tenant_id"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
