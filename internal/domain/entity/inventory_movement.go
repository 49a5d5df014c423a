package entity

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// InventoryMovement es un evento histórico de cambio de inventario traído del
// WMS para un rango de fechas acotado. Location llega como string compuesto
// (bodega + código) tal cual lo entrega el WMS; el parseo fino es
// responsabilidad de los reportes que lo consuman.
type InventoryMovement struct {
	ID             string
	CustomerID     string
	SKU            string
	Location       *string
	Quantity       int
	QuantityBefore int
	QuantityAfter  int
	Reason         *string
	Note           *string
	User           *string
	Type           *string
	Context        *string
	Date           time.Time
	CreatedAt      time.Time
}

// DedupKey devuelve el hash de deduplicación del movimiento: la ingesta
// repetida del mismo registro upstream no debe crear filas duplicadas.
// Clave natural: sku + fecha + usuario + contexto.
func (m InventoryMovement) DedupKey() string {
	h := sha256.New()
	h.Write([]byte(m.SKU))
	h.Write([]byte{0})
	h.Write([]byte(m.Date.UTC().Format(time.RFC3339)))
	h.Write([]byte{0})
	h.Write([]byte(deref(m.User)))
	h.Write([]byte{0})
	h.Write([]byte(deref(m.Context)))
	return hex.EncodeToString(h.Sum(nil))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
