package wms

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// ──────────────────────────────────────────────────────────────────────────────
// Rutas relativas alternativas
// ──────────────────────────────────────────────────────────────────────────────

// Orden fijo: variante capitalizada primero, luego sinónimos conocidos.
func TestRouterAlternates_OrdenYContenido(t *testing.T) {
	r := NewRouter("https://wms.example.com/api")

	got := r.Alternates("inventory/getLocations")

	assert.Equal(t, []string{
		"Inventory/GetLocations",
		"inventory/getWarehouses",
	}, got)
}

// Si la variante capitalizada coincide con la primaria, se descarta.
func TestRouterAlternates_PrimariaYaCapitalizada(t *testing.T) {
	r := NewRouter("https://wms.example.com/api")

	assert.Equal(t, []string{"GetTokens"}, r.Alternates("getTokens"))
	assert.Empty(t, r.Alternates("GetTokens"), "sin variantes nuevas ni sinónimos")
}

// La deduplicación es case-insensitive y conserva el primer visto.
func TestRouterAlternates_DedupCaseInsensitive(t *testing.T) {
	r := NewRouter("https://wms.example.com/api")

	got := r.Alternates("products/getProducts")

	assert.Equal(t, []string{"Products/GetProducts", "products/getAllProducts"}, got)
	// Dos llamadas devuelven lo mismo: el orden de reintento es reproducible.
	assert.Equal(t, got, r.Alternates("products/getProducts"))
}

// ──────────────────────────────────────────────────────────────────────────────
// Bases absolutas alternativas
// ──────────────────────────────────────────────────────────────────────────────

// Base configurada con /api: se prueba sin /api, con /v1 y por último la base
// pública conocida.
func TestRouterAlternateBases_ConSegmentoAPI(t *testing.T) {
	r := NewRouter("https://wms.example.com/api")

	assert.Equal(t, []string{
		"https://wms.example.com",
		"https://wms.example.com/api/v1",
		"https://app.skuvault.com/api",
	}, r.AlternateBases())
}

// Base configurada sin /api: se agrega /api y /v1 antes del último recurso.
func TestRouterAlternateBases_SinSegmentoAPI(t *testing.T) {
	r := NewRouter("https://wms.example.com")

	assert.Equal(t, []string{
		"https://wms.example.com/api",
		"https://wms.example.com/v1",
		"https://app.skuvault.com/api",
	}, r.AlternateBases())
}

// La base pública configurada no se repite como último recurso.
func TestRouterAlternateBases_BasePublicaNoSeDuplica(t *testing.T) {
	r := NewRouter("https://app.skuvault.com/api")

	got := r.AlternateBases()

	assert.Equal(t, []string{
		"https://app.skuvault.com",
		"https://app.skuvault.com/api/v1",
	}, got, "la base configurada ya es la pública: no se vuelve a intentar")
}
