package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrPlanNotAllowed     = errors.New("función no incluida en el plan contratado")
	ErrCustomerInactive   = errors.New("cliente inactivo")
	ErrTenantNotProvision = errors.New("tenant sin credenciales del WMS")
)
