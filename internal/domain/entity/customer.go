package entity

import "time"

// Planes de suscripción. Gobiernan qué reportes/alertas recibe el cliente.
const (
	PlanBasic      = "basic"
	PlanPro        = "pro"
	PlanEnterprise = "enterprise"
)

// Funciones gateadas por plan.
const (
	FeatureLowStockAlerts = "low_stock_alerts"
	FeaturePDFReports     = "pdf_reports"
)

// planFeatures mapea plan -> funciones habilitadas.
var planFeatures = map[string]map[string]bool{
	PlanBasic: {
		FeatureLowStockAlerts: false,
		FeaturePDFReports:     false,
	},
	PlanPro: {
		FeatureLowStockAlerts: true,
		FeaturePDFReports:     false,
	},
	PlanEnterprise: {
		FeatureLowStockAlerts: true,
		FeaturePDFReports:     true,
	},
}

// Customer es un cliente final bajo un tenant: la unidad sobre la que operan
// la sincronización, la evaluación de stock bajo y los reportes.
type Customer struct {
	ID        string
	TenantID  string
	Name      string
	Email     string // destino de las alertas de stock bajo
	Plan      string // basic | pro | enterprise
	IsActive  bool
	CreatedAt time.Time
}

// HasFeature indica si el plan del cliente incluye la función.
// Un plan desconocido no habilita nada.
func (c Customer) HasFeature(feature string) bool {
	features, ok := planFeatures[c.Plan]
	if !ok {
		return false
	}
	return features[feature]
}
