package dto

// LoginRequest credenciales de acceso a la aplicación.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse token de sesión más los datos básicos del usuario.
type LoginResponse struct {
	Token      string `json:"token"`
	UserID     string `json:"user_id"`
	CustomerID string `json:"customer_id"`
	Name       string `json:"name"`
	Role       string `json:"role"`
}
