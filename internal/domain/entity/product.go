package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto/SKU sincronizado desde el WMS.
// SKU es la clave natural dentro del scope del cliente: el upsert de la
// ingesta deduplica por (customer_id, sku).
type Product struct {
	ID              string
	CustomerID      string
	SKU             string
	Description     string
	LongDescription string
	Classification  string
	Cost            decimal.Decimal // cero cuando el WMS no lo reporta
	RetailPrice     decimal.Decimal // cero cuando el WMS no lo reporta
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
