package entity

import "time"

// ThresholdRule es una regla de umbral de stock bajo configurada por el
// cliente. LocationID vacío denota el umbral por defecto del producto para
// todo el cliente; una regla con LocationID presente lo sobreescribe para esa
// ubicación. Invariante (garantizado por la capa de administración): a lo
// sumo una regla activa por tripla (customer, product, location).
type ThresholdRule struct {
	ID         string
	CustomerID string
	ProductID  string
	LocationID string // vacío = default producto/cliente
	Threshold  int
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
