package dto

// LowStockRowDTO una fila del reporte de stock bajo.
type LowStockRowDTO struct {
	ProductSKU        string `json:"product_sku"`
	ProductName       string `json:"product_name"`
	LocationName      string `json:"location_name"`
	CurrentQuantity   int    `json:"current_quantity"`
	ThresholdQuantity int    `json:"threshold_quantity"`
}

// LowStockReportDTO reporte completo de stock bajo de un cliente.
// Items llega en el orden determinista del evaluador (SKU, luego ubicación).
type LowStockReportDTO struct {
	CustomerID       string           `json:"customer_id"`
	CustomerName     string           `json:"customer_name"`
	GeneratedAt      string           `json:"generated_at"`
	DefaultThreshold int              `json:"default_threshold"`
	Items            []LowStockRowDTO `json:"items"`
}
