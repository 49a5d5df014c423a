package wms

import "strings"

// publicBaseURL es la URL base pública conocida del WMS: último recurso
// cuando la base configurada no responde en ninguna variante.
const publicBaseURL = "https://app.skuvault.com/api"

// synonymRoutes son rutas alternativas conocidas por endpoint. La
// documentación y los despliegues del WMS han derivado en nombres distintos
// para la misma operación a lo largo del tiempo.
var synonymRoutes = map[string][]string{
	pathGetInventory:    {"inventory/getInventory"},
	pathGetLocations:    {"inventory/getWarehouses"},
	pathGetProducts:     {"products/getAllProducts"},
	pathGetTransactions: {"inventory/getItemTransactions"},
}

// Router construye los destinos candidatos a intentar cuando la petición
// primaria falla con 404. El orden de reintento es fijo y determinista para
// que los fallos sean reproducibles en tests.
type Router struct {
	baseURL string
}

// NewRouter construye el router sobre la URL base configurada del cliente.
func NewRouter(baseURL string) *Router {
	return &Router{baseURL: strings.TrimRight(baseURL, "/")}
}

// Alternates devuelve las rutas relativas alternativas para primary, en orden
// de prioridad: la variante con cada segmento capitalizado (si difiere) y
// luego las rutas sinónimas conocidas. Duplicados (case-insensitive, incluida
// la primaria) se eliminan conservando el primer visto.
func (r *Router) Alternates(primary string) []string {
	candidates := []string{capitalizeSegments(primary)}
	candidates = append(candidates, synonymRoutes[primary]...)

	seen := map[string]bool{strings.ToLower(primary): true}
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		key := strings.ToLower(c)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, c)
	}
	return out
}

// AlternateBases devuelve las URLs base absolutas alternativas, de la más
// específica (derivadas de la base configurada) a la genérica (base pública
// conocida). La base configurada no se incluye: ya falló.
func (r *Router) AlternateBases() []string {
	var candidates []string
	if strings.HasSuffix(r.baseURL, "/api") {
		candidates = append(candidates, strings.TrimSuffix(r.baseURL, "/api"))
	} else {
		candidates = append(candidates, r.baseURL+"/api")
	}
	candidates = append(candidates, r.baseURL+"/v1", publicBaseURL)

	seen := map[string]bool{strings.ToLower(r.baseURL): true}
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		key := strings.ToLower(c)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, c)
	}
	return out
}

// capitalizeSegments pone en mayúscula la primera letra de cada segmento del
// path: "inventory/getLocations" -> "Inventory/GetLocations".
func capitalizeSegments(path string) string {
	segments := strings.Split(path, "/")
	for i, s := range segments {
		if s == "" {
			continue
		}
		segments[i] = strings.ToUpper(s[:1]) + s[1:]
	}
	return strings.Join(segments, "/")
}
