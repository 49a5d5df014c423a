package entity

import "time"

// InventoryLevel es el stock actual de un SKU en una ubicación, materializado
// por el ciclo de sincronización. Se identifica por clave natural
// (customer_id, sku, location_code); cada pasada lo reemplaza completo.
//
// Available replica lo que reporta el WMS: su endpoint de inventario no
// distingue disponible de físico, así que Available == OnHand y Allocated
// llega siempre en 0. Los reportes dependen de esa semántica.
type InventoryLevel struct {
	CustomerID   string
	SKU          string
	LocationCode string
	OnHand       int
	Available    int
	Allocated    int
	UpdatedAt    time.Time
}
