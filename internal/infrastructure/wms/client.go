// Package wms implementa el cliente hacia el sistema de inventario externo
// (API JSON sobre HTTPS, solo POST, tokens en el body). El API upstream es
// inconsistente entre endpoints y despliegues: arrays bajo claves variables,
// diccionarios por SKU, envelopes, y convenciones de ruta que han derivado en
// el tiempo. Este paquete concentra toda esa tolerancia para que el resto del
// servicio vea registros tipados o un error clasificado.
package wms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jhoicas/StockWatch-api/internal/application/ports"
	"github.com/jhoicas/StockWatch-api/pkg/logger"
)

// Verificar en tiempo de compilación que Client implementa el puerto.
var _ ports.InventoryProvider = (*Client)(nil)

// Rutas canónicas y claves de array esperadas por endpoint.
const (
	pathGetTokens       = "getTokens"
	pathGetProducts     = "products/getProducts"
	pathGetLocations    = "inventory/getLocations"
	pathGetInventory    = "inventory/getInventoryByLocation"
	pathGetTransactions = "inventory/getTransactions"

	keyProducts  = "Products"
	keyLocations = "Locations"
)

// defaultMovementWindow es la ventana de movimientos cuando el caller no
// indica rango: los últimos 7 días.
const defaultMovementWindow = 7 * 24 * time.Hour

// maxResponseBytes acota la lectura del body de respuesta.
const maxResponseBytes = 8 << 20

// Client implementa ports.InventoryProvider contra el WMS.
// Usa net/http con un *http.Client inyectable; el caller aplica el timeout
// (vía http.Client o context) y un timeout equivale a ErrUpstreamUnavailable.
type Client struct {
	baseURL    string
	httpClient *http.Client
	router     *Router
	log        *logger.Logger
}

// NewClient construye el cliente. httpClient nil usa uno con timeout de 30 s.
func NewClient(baseURL string, httpClient *http.Client, log *logger.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	base := strings.TrimRight(baseURL, "/")
	return &Client{
		baseURL:    base,
		httpClient: httpClient,
		router:     NewRouter(base),
		log:        log,
	}
}

// ── Cuerpos de petición ───────────────────────────────────────────────────────

type tokenBody struct {
	TenantToken string `json:"TenantToken"`
	UserToken   string `json:"UserToken"`
}

type credentialsRequest struct {
	Email    string `json:"Email"`
	Password string `json:"Password"`
}

type movementsRequest struct {
	tokenBody
	FromDate string `json:"FromDate"`
	ToDate   string `json:"ToDate"`
}

type tokenResponse struct {
	TenantToken string `json:"TenantToken"`
	UserToken   string `json:"UserToken"`
}

type upstreamErrors struct {
	Errors []string `json:"Errors"`
}

// ── Operaciones ───────────────────────────────────────────────────────────────

// ExchangeCredentials intercambia email/password por el par de tokens del
// tenant. Tokens vacíos o ausentes en la respuesta nunca se aceptan en
// silencio.
func (c *Client) ExchangeCredentials(ctx context.Context, email, password string) (ports.TokenPair, error) {
	if email == "" || password == "" {
		return ports.TokenPair{}, fmt.Errorf("%w: email o password vacío", ErrInvalidCredential)
	}
	raw, err := c.post(ctx, pathGetTokens, credentialsRequest{Email: email, Password: password})
	if err != nil {
		return ports.TokenPair{}, err
	}
	var resp tokenResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return ports.TokenPair{}, &APIError{Kind: ErrUpstreamError, Detail: preview(raw)}
	}
	if resp.TenantToken == "" || resp.UserToken == "" {
		return ports.TokenPair{}, &APIError{Kind: ErrUpstreamError, Detail: "respuesta de getTokens sin TenantToken/UserToken: " + preview(raw)}
	}
	return ports.TokenPair{TenantToken: resp.TenantToken, UserToken: resp.UserToken}, nil
}

// FetchProducts trae el catálogo de productos del tenant.
func (c *Client) FetchProducts(ctx context.Context, creds ports.TokenPair) ([]ports.ProductRecord, error) {
	raw, err := c.fetch(ctx, creds, pathGetProducts)
	if err != nil {
		return nil, err
	}
	return decodeList[ports.ProductRecord](raw, keyProducts)
}

// locationWire es la forma upstream de una ubicación. IsActive es puntero
// porque el WMS no siempre devuelve el campo: ausente significa activa.
type locationWire struct {
	LocationCode  string `json:"LocationCode"`
	LocationName  string `json:"LocationName"`
	WarehouseName string `json:"WarehouseName"`
	IsActive      *bool  `json:"IsActive"`
}

// FetchLocations trae las ubicaciones del tenant.
func (c *Client) FetchLocations(ctx context.Context, creds ports.TokenPair) ([]ports.LocationRecord, error) {
	raw, err := c.fetch(ctx, creds, pathGetLocations)
	if err != nil {
		return nil, err
	}
	wires, err := decodeList[locationWire](raw, keyLocations)
	if err != nil {
		return nil, err
	}
	records := make([]ports.LocationRecord, 0, len(wires))
	for _, w := range wires {
		records = append(records, ports.LocationRecord{
			LocationCode:  w.LocationCode,
			LocationName:  w.LocationName,
			WarehouseName: w.WarehouseName,
			IsActive:      w.IsActive == nil || *w.IsActive,
		})
	}
	return records, nil
}

// FetchInventory trae los niveles de inventario por ubicación, aplanados a un
// registro por combinación (sku, ubicación).
func (c *Client) FetchInventory(ctx context.Context, creds ports.TokenPair) ([]ports.InventoryRecord, error) {
	raw, err := c.fetch(ctx, creds, pathGetInventory)
	if err != nil {
		return nil, err
	}
	return flattenInventory(raw, c.log)
}

// FetchMovements trae los movimientos históricos del rango [from, to).
// Un rango cero usa la ventana por defecto de los últimos 7 días.
func (c *Client) FetchMovements(ctx context.Context, creds ports.TokenPair, from, to time.Time) ([]ports.MovementRecord, error) {
	if err := requireTokens(creds); err != nil {
		return nil, err
	}
	if to.IsZero() {
		to = time.Now().UTC()
	}
	if from.IsZero() {
		from = to.Add(-defaultMovementWindow)
	}
	body := movementsRequest{
		tokenBody: tokenBody{TenantToken: creds.TenantToken, UserToken: creds.UserToken},
		FromDate:  from.Format(dateFormat),
		ToDate:    to.Format(dateFormat),
	}
	raw, err := c.post(ctx, pathGetTransactions, body)
	if err != nil {
		return nil, err
	}
	return flattenMovements(raw, c.log)
}

// ── Transporte ────────────────────────────────────────────────────────────────

// fetch valida credenciales (fail-fast, sin round-trip) y hace el POST con el
// par de tokens como body.
func (c *Client) fetch(ctx context.Context, creds ports.TokenPair, path string) ([]byte, error) {
	if err := requireTokens(creds); err != nil {
		return nil, err
	}
	return c.post(ctx, path, tokenBody{TenantToken: creds.TenantToken, UserToken: creds.UserToken})
}

func requireTokens(creds ports.TokenPair) error {
	if creds.TenantToken == "" || creds.UserToken == "" {
		return fmt.Errorf("%w: tenant token o user token vacío", ErrInvalidCredential)
	}
	return nil
}

// post ejecuta la petición primaria y aplica la política de fallos:
//
//   - 2xx: devuelve el body crudo;
//   - 401: ErrAuthenticationFailed sin reintento (no hay refresh de tokens);
//   - 404: recorre las rutas relativas alternativas del router y luego las
//     bases absolutas alternativas, en orden fijo, hasta el primer éxito;
//     agotadas todas, ErrUpstreamUnavailable con el último status/body;
//   - otro status: ErrUpstreamError con los mensajes de Errors[] si vienen.
func (c *Client) post(ctx context.Context, path string, body any) ([]byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("wms: serializar request: %w", err)
	}

	raw, status, err := c.doOnce(ctx, c.baseURL+"/"+path, payload)
	if err != nil {
		return nil, err
	}
	switch {
	case status >= 200 && status < 300:
		return raw, nil
	case status == http.StatusUnauthorized:
		return nil, &APIError{Kind: ErrAuthenticationFailed, Status: status, Detail: preview(raw)}
	case status == http.StatusNotFound:
		return c.postFallback(ctx, path, payload, raw, status)
	default:
		return nil, upstreamError(status, raw)
	}
}

// postFallback reintenta tras un 404 primario: rutas alternativas contra la
// base configurada, luego la ruta canónica contra cada base alternativa.
func (c *Client) postFallback(ctx context.Context, path string, payload, lastBody []byte, lastStatus int) ([]byte, error) {
	var targets []string
	for _, alt := range c.router.Alternates(path) {
		targets = append(targets, c.baseURL+"/"+alt)
	}
	for _, base := range c.router.AlternateBases() {
		targets = append(targets, base+"/"+path)
	}

	for _, target := range targets {
		c.log.Debug().Str("target", target).Msg("wms: reintentando ruta alternativa")
		raw, status, err := c.doOnce(ctx, target, payload)
		if err != nil {
			return nil, err
		}
		if status >= 200 && status < 300 {
			return raw, nil
		}
		lastBody, lastStatus = raw, status
	}
	return nil, &APIError{Kind: ErrUpstreamUnavailable, Status: lastStatus, Detail: preview(lastBody)}
}

// doOnce ejecuta un POST y devuelve body y status. Errores de transporte
// (red caída, timeout, cancelación) se clasifican como ErrUpstreamUnavailable;
// la operación es de solo lectura upstream, abortarla no deja efectos.
func (c *Client) doOnce(ctx context.Context, url string, payload []byte) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, 0, fmt.Errorf("wms: crear HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, 0, &APIError{Kind: ErrUpstreamUnavailable, Detail: ctx.Err().Error()}
		}
		return nil, 0, &APIError{Kind: ErrUpstreamUnavailable, Detail: err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, 0, &APIError{Kind: ErrUpstreamUnavailable, Status: resp.StatusCode, Detail: err.Error()}
	}
	return raw, resp.StatusCode, nil
}

// upstreamError construye el error para un status no exitoso: si el body trae
// un array Errors reconocible, une sus mensajes; si no, preview del body.
func upstreamError(status int, raw []byte) *APIError {
	var parsed upstreamErrors
	if err := json.Unmarshal(raw, &parsed); err == nil && len(parsed.Errors) > 0 {
		return &APIError{Kind: ErrUpstreamError, Status: status, Detail: strings.Join(parsed.Errors, "; ")}
	}
	return &APIError{Kind: ErrUpstreamError, Status: status, Detail: preview(raw)}
}
