package entity

import "time"

// Location representa una ubicación física de inventario dentro de una bodega
// del WMS. Code es la clave natural dentro del scope del cliente.
// IsActive es true por defecto: el WMS no siempre devuelve el campo.
type Location struct {
	ID            string
	CustomerID    string
	Code          string
	Name          string
	WarehouseName string
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// DisplayName devuelve el nombre legible de la ubicación, con fallback al código.
func (l Location) DisplayName() string {
	if l.Name != "" {
		return l.Name
	}
	return l.Code
}
