// Package ports define los puertos de salida de la capa de aplicación hacia
// sistemas externos. Las implementaciones concretas viven en
// internal/infrastructure; para tests se inyectan fakes.
package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// TokenPair son las credenciales bearer opacas de la cuenta de un tenant en
// el sistema de inventario externo. Se obtienen una sola vez vía
// ExchangeCredentials; su persistencia y rotación corren por cuenta del caller.
type TokenPair struct {
	TenantToken string
	UserToken   string
}

// ProductRecord es un producto tal como lo entrega el WMS en una pasada de
// sincronización. SKU es la clave natural dentro del scope del cliente.
type ProductRecord struct {
	SKU             string
	Description     string
	LongDescription string
	Classification  string
	Cost            decimal.Decimal
	RetailPrice     decimal.Decimal
}

// LocationRecord es una ubicación del WMS. IsActive ya viene con el default
// true aplicado cuando el upstream omite el campo.
type LocationRecord struct {
	LocationCode  string
	LocationName  string
	WarehouseName string
	IsActive      bool
}

// InventoryRecord es una combinación (sku, ubicación) descubierta al aplanar
// la respuesta de inventario. El endpoint no distingue disponible de físico:
// Available == OnHand y Allocated llega siempre en 0.
type InventoryRecord struct {
	SKU          string
	LocationCode string
	OnHand       int
	Available    int
	Allocated    int
}

// MovementRecord es un evento histórico de cambio de inventario. Los campos
// puntero son nil cuando el upstream los omite o envía null. Location es el
// string compuesto crudo (bodega + código) del WMS.
type MovementRecord struct {
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
}

// InventoryProvider es el puerto hacia el sistema de inventario externo.
// Todas las operaciones de fetch requieren un TokenPair válido y son de solo
// lectura contra el upstream: abortar una llamada en curso no deja efectos.
type InventoryProvider interface {
	// ExchangeCredentials intercambia email/password por el par de tokens.
	ExchangeCredentials(ctx context.Context, email, password string) (TokenPair, error)
	FetchProducts(ctx context.Context, creds TokenPair) ([]ProductRecord, error)
	FetchLocations(ctx context.Context, creds TokenPair) ([]LocationRecord, error)
	FetchInventory(ctx context.Context, creds TokenPair) ([]InventoryRecord, error)
	// FetchMovements trae los movimientos del rango [from, to). Un rango cero
	// usa la ventana por defecto de los últimos 7 días.
	FetchMovements(ctx context.Context, creds TokenPair, from, to time.Time) ([]MovementRecord, error)
}
