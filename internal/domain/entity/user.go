package entity

import "time"

// Roles de usuario de la aplicación.
const (
	RoleAdmin    = "admin"
	RoleOperador = "operador"
)

// User es un usuario de la aplicación, scoped a un cliente.
type User struct {
	ID           string
	CustomerID   string
	Email        string
	Name         string
	PasswordHash string // bcrypt
	Role         string
	CreatedAt    time.Time
}
