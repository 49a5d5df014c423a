package wms

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Taxonomía de fallos del cliente WMS. Los callers clasifican con errors.Is;
// el detalle (status + preview acotado del body) viaja en *APIError.
var (
	// ErrInvalidCredential: tokens vacíos, detectado antes de cualquier I/O.
	ErrInvalidCredential = errors.New("wms: credenciales incompletas")
	// ErrAuthenticationFailed: el WMS rechazó el par de tokens (401).
	// No hay loop de refresh: los tokens son pre-aprovisionados.
	ErrAuthenticationFailed = errors.New("wms: autenticación rechazada")
	// ErrUpstreamUnavailable: rutas alternativas agotadas, red caída o timeout.
	ErrUpstreamUnavailable = errors.New("wms: upstream no disponible")
	// ErrUpstreamError: status no exitoso distinto de 401/404.
	ErrUpstreamError = errors.New("wms: error del upstream")
	// ErrMalformedResponse: body exitoso con forma estructural inesperada.
	ErrMalformedResponse = errors.New("wms: respuesta con forma inesperada")
)

// previewLimit acota los fragmentos de payload upstream que se incluyen en
// errores y logs: nunca se propaga un body sin límite.
const previewLimit = 500

// APIError es un fallo del WMS con su categoría, el status HTTP upstream y
// un fragmento acotado del body para diagnóstico.
type APIError struct {
	Kind   error  // una de las sentinelas de arriba
	Status int    // 0 si no hubo respuesta HTTP
	Detail string // mensajes de Errors[] unidos, o preview del body
}

func (e *APIError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%v (status %d): %s", e.Kind, e.Status, e.Detail)
	}
	return fmt.Sprintf("%v: %s", e.Kind, e.Detail)
}

func (e *APIError) Unwrap() error { return e.Kind }

// preview devuelve el body truncado a previewLimit caracteres, sin partir
// una secuencia UTF-8 a la mitad.
func preview(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) <= previewLimit {
		return s
	}
	cut := previewLimit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "…"
}
