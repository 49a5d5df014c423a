package wms_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/StockWatch-api/internal/application/ports"
	"github.com/jhoicas/StockWatch-api/internal/infrastructure/wms"
	"github.com/jhoicas/StockWatch-api/pkg/logger"
)

const wmsDateFormat = "2006-01-02T15:04:05"

var testCreds = ports.TokenPair{TenantToken: "tenant-tok", UserToken: "user-tok"}

// recordingServer es un servidor HTTP de prueba que registra cada path
// recibido y responde según la tabla de rutas.
type recordingServer struct {
	mu    sync.Mutex
	paths []string
	srv   *httptest.Server
}

func newRecordingServer(t *testing.T, handler func(path string, w http.ResponseWriter, r *http.Request)) *recordingServer {
	t.Helper()
	rs := &recordingServer{}
	rs.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rs.mu.Lock()
		rs.paths = append(rs.paths, r.URL.Path)
		rs.mu.Unlock()
		handler(r.URL.Path, w, r)
	}))
	t.Cleanup(rs.srv.Close)
	return rs
}

func (rs *recordingServer) seen() []string {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return append([]string(nil), rs.paths...)
}

// ──────────────────────────────────────────────────────────────────────────────
// Precondiciones de credenciales
// ──────────────────────────────────────────────────────────────────────────────

// Tokens vacíos fallan antes de cualquier llamada HTTP: el transporte no
// registra ni una petición.
func TestClient_TokensVaciosNoGeneranTrafico(t *testing.T) {
	rs := newRecordingServer(t, func(_ string, w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	client := wms.NewClient(rs.srv.URL, rs.srv.Client(), logger.Nop())

	cases := map[string]ports.TokenPair{
		"tenant vacío": {TenantToken: "", UserToken: "user-tok"},
		"user vacío":   {TenantToken: "tenant-tok", UserToken: ""},
		"ambos vacíos": {},
	}
	for name, creds := range cases {
		_, err := client.FetchProducts(context.Background(), creds)
		assert.ErrorIs(t, err, wms.ErrInvalidCredential, name)

		_, err = client.FetchInventory(context.Background(), creds)
		assert.ErrorIs(t, err, wms.ErrInvalidCredential, name)

		_, err = client.FetchMovements(context.Background(), creds, time.Time{}, time.Time{})
		assert.ErrorIs(t, err, wms.ErrInvalidCredential, name)
	}

	assert.Empty(t, rs.seen(), "no debe haberse intentado ninguna petición")
}

// ──────────────────────────────────────────────────────────────────────────────
// Clasificación de fallos HTTP
// ──────────────────────────────────────────────────────────────────────────────

// Un 401 no se reintenta: los tokens son pre-aprovisionados y no hay refresh.
func TestClient_401FallaSinReintentos(t *testing.T) {
	rs := newRecordingServer(t, func(_ string, w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"Errors": ["invalid tokens"]}`))
	})
	client := wms.NewClient(rs.srv.URL, rs.srv.Client(), logger.Nop())

	_, err := client.FetchProducts(context.Background(), testCreds)

	require.ErrorIs(t, err, wms.ErrAuthenticationFailed)
	assert.Len(t, rs.seen(), 1, "exactamente una petición: sin loop de refresh")

	var apiErr *wms.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
}

// Otro status no exitoso es ErrUpstreamError con los mensajes de Errors[].
func TestClient_ErroresUpstreamSeUnen(t *testing.T) {
	rs := newRecordingServer(t, func(_ string, w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"Errors": ["db down", "retry later"]}`))
	})
	client := wms.NewClient(rs.srv.URL, rs.srv.Client(), logger.Nop())

	_, err := client.FetchProducts(context.Background(), testCreds)

	require.ErrorIs(t, err, wms.ErrUpstreamError)
	var apiErr *wms.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Equal(t, "db down; retry later", apiErr.Detail)
}

// Un fallo de transporte (nada escuchando) equivale a upstream no disponible.
func TestClient_FalloDeRedEsUpstreamUnavailable(t *testing.T) {
	client := wms.NewClient("http://127.0.0.1:1", &http.Client{Timeout: time.Second}, logger.Nop())

	_, err := client.FetchProducts(context.Background(), testCreds)

	assert.ErrorIs(t, err, wms.ErrUpstreamUnavailable)
}

// ──────────────────────────────────────────────────────────────────────────────
// Enrutamiento alternativo tras 404
// ──────────────────────────────────────────────────────────────────────────────

// Un 404 primario seguido de éxito en la variante capitalizada se acepta de
// forma transparente; el reintento es observable como dos peticiones en el
// orden documentado.
func TestClient_404ReintentaRutaAlternativa(t *testing.T) {
	rs := newRecordingServer(t, func(path string, w http.ResponseWriter, _ *http.Request) {
		if path == "/Products/GetProducts" {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"Products": [{"Sku": "SKU1", "Description": "Tornillo"}]}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	})
	client := wms.NewClient(rs.srv.URL, rs.srv.Client(), logger.Nop())

	records, err := client.FetchProducts(context.Background(), testCreds)

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "SKU1", records[0].SKU)
	assert.Equal(t, []string{
		"/products/getProducts", // primaria
		"/Products/GetProducts", // variante capitalizada
	}, rs.seen(), "orden de reintento fijo y observable")
}

// Agotadas las rutas relativas, se prueban las bases alternativas: aquí la
// base configurada lleva /api y la alternativa sin /api responde.
func TestClient_404ReintentaBaseAlternativa(t *testing.T) {
	rs := newRecordingServer(t, func(path string, w http.ResponseWriter, _ *http.Request) {
		if path == "/inventory/getLocations" {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"Locations": [{"LocationCode": "L1", "WarehouseName": "Norte"}]}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	})
	client := wms.NewClient(rs.srv.URL+"/api", rs.srv.Client(), logger.Nop())

	records, err := client.FetchLocations(context.Background(), testCreds)

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "L1", records[0].LocationCode)
	assert.True(t, records[0].IsActive, "IsActive ausente debe quedar en true")

	seen := rs.seen()
	require.GreaterOrEqual(t, len(seen), 4)
	assert.Equal(t, "/api/inventory/getLocations", seen[0], "primaria contra la base configurada")
	assert.Equal(t, "/api/Inventory/GetLocations", seen[1], "variante de casing")
	assert.Equal(t, "/api/inventory/getWarehouses", seen[2], "ruta sinónima")
	assert.Equal(t, "/inventory/getLocations", seen[3], "ruta canónica contra la base sin /api")
}

// ──────────────────────────────────────────────────────────────────────────────
// Intercambio de credenciales
// ──────────────────────────────────────────────────────────────────────────────

func TestClient_ExchangeCredentials(t *testing.T) {
	rs := newRecordingServer(t, func(_ string, w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"TenantToken": "tt", "UserToken": "ut"}`))
	})
	client := wms.NewClient(rs.srv.URL, rs.srv.Client(), logger.Nop())

	pair, err := client.ExchangeCredentials(context.Background(), "ops@acme.co", "secreto")

	require.NoError(t, err)
	assert.Equal(t, ports.TokenPair{TenantToken: "tt", UserToken: "ut"}, pair)
	assert.Equal(t, []string{"/getTokens"}, rs.seen())
}

// Tokens vacíos o ausentes en la respuesta nunca se aceptan en silencio.
func TestClient_ExchangeCredentials_RespuestaSinTokens(t *testing.T) {
	rs := newRecordingServer(t, func(_ string, w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"TenantToken": "", "UserToken": "ut"}`))
	})
	client := wms.NewClient(rs.srv.URL, rs.srv.Client(), logger.Nop())

	_, err := client.ExchangeCredentials(context.Background(), "ops@acme.co", "secreto")

	assert.ErrorIs(t, err, wms.ErrUpstreamError)
}

func TestClient_ExchangeCredentials_CredencialesVacias(t *testing.T) {
	rs := newRecordingServer(t, func(_ string, w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	client := wms.NewClient(rs.srv.URL, rs.srv.Client(), logger.Nop())

	_, err := client.ExchangeCredentials(context.Background(), "", "secreto")

	assert.ErrorIs(t, err, wms.ErrInvalidCredential)
	assert.Empty(t, rs.seen())
}

// ──────────────────────────────────────────────────────────────────────────────
// Movimientos: ventana por defecto
// ──────────────────────────────────────────────────────────────────────────────

// Sin rango explícito, el cliente pide los últimos 7 días en el formato de
// fecha exacto del WMS (sin zona horaria).
func TestClient_FetchMovements_VentanaPorDefecto(t *testing.T) {
	var (
		mu   sync.Mutex
		body struct {
			TenantToken string `json:"TenantToken"`
			FromDate    string `json:"FromDate"`
			ToDate      string `json:"ToDate"`
		}
	)
	rs := newRecordingServer(t, func(_ string, w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		_ = jsonDecode(r, &body)
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"Transactions": []}`))
	})
	client := wms.NewClient(rs.srv.URL, rs.srv.Client(), logger.Nop())

	records, err := client.FetchMovements(context.Background(), testCreds, time.Time{}, time.Time{})

	require.NoError(t, err)
	assert.Empty(t, records)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, "tenant-tok", body.TenantToken, "los tokens van en el body")
	from, err := time.Parse(wmsDateFormat, body.FromDate)
	require.NoError(t, err, "FromDate debe ir en el formato del WMS")
	to, err := time.Parse(wmsDateFormat, body.ToDate)
	require.NoError(t, err, "ToDate debe ir en el formato del WMS")
	assert.InDelta(t, (7 * 24 * time.Hour).Seconds(), to.Sub(from).Seconds(), 60, "ventana por defecto de 7 días")
}

func jsonDecode(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}
