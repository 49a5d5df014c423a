package wms

import (
	"bytes"
	"encoding/json"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/StockWatch-api/internal/application/ports"
	"github.com/jhoicas/StockWatch-api/pkg/logger"
)

// dateFormat es el formato de fecha del WMS: sin sufijo de zona horaria.
const dateFormat = "2006-01-02T15:04:05"

// ──────────────────────────────────────────────────────────────────────────────
// Normalizador genérico
// ──────────────────────────────────────────────────────────────────────────────

// decodeList normaliza un body cuya forma varía entre despliegues del WMS.
// Intentos puros en orden fijo, cortocircuitando en el primer éxito:
//
//  1. objeto con expectedKey (match case-insensitive) conteniendo el array;
//  2. envelope {"Data": [...]};
//  3. el body completo como array de T.
//
// Si ninguno aplica, ErrMalformedResponse con preview acotado del body.
func decodeList[T any](raw []byte, expectedKey string) ([]T, error) {
	attempts := []func([]byte) ([]T, bool){
		func(b []byte) ([]T, bool) { return decodeUnderKey[T](b, expectedKey) },
		func(b []byte) ([]T, bool) { return decodeUnderKey[T](b, "Data") },
		decodeBareArray[T],
	}
	for _, attempt := range attempts {
		if list, ok := attempt(raw); ok {
			return list, nil
		}
	}
	return nil, &APIError{Kind: ErrMalformedResponse, Detail: preview(raw)}
}

func decodeUnderKey[T any](raw []byte, key string) ([]T, bool) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, false
	}
	for k, v := range obj {
		if !strings.EqualFold(k, key) {
			continue
		}
		var list []T
		if err := json.Unmarshal(v, &list); err != nil {
			return nil, false
		}
		if list == nil {
			list = []T{}
		}
		return list, true
	}
	return nil, false
}

func decodeBareArray[T any](raw []byte) ([]T, bool) {
	var list []T
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, false
	}
	if list == nil {
		list = []T{}
	}
	return list, true
}

// ──────────────────────────────────────────────────────────────────────────────
// Flattener de inventario
// ──────────────────────────────────────────────────────────────────────────────

type inventoryEntry struct {
	WarehouseCode string `json:"WarehouseCode"`
	LocationCode  string `json:"LocationCode"`
	Quantity      int    `json:"Quantity"`
}

// flattenInventory aplana la respuesta de inventario: un objeto "Items" cuyas
// claves son SKUs y cuyos valores son arrays de entradas por ubicación.
// Produce un registro por combinación (sku, entrada). El endpoint no
// distingue disponible de físico: Available se copia de OnHand y Allocated
// queda en 0.
//
// Un SKU cuyo valor no es un array se salta con un log (resultado parcial
// mejor que fallo total en esta lectura masiva); la ausencia estructural de
// "Items" sí es ErrMalformedResponse.
func flattenInventory(raw []byte, log *logger.Logger) ([]ports.InventoryRecord, error) {
	items, ok := rawField(raw, "Items")
	if !ok {
		return nil, &APIError{Kind: ErrMalformedResponse, Detail: preview(raw)}
	}
	var bySKU map[string]json.RawMessage
	if err := json.Unmarshal(items, &bySKU); err != nil {
		return nil, &APIError{Kind: ErrMalformedResponse, Detail: preview(raw)}
	}

	records := make([]ports.InventoryRecord, 0, len(bySKU))
	for sku, rawEntries := range bySKU {
		var entries []inventoryEntry
		if err := json.Unmarshal(rawEntries, &entries); err != nil {
			log.Warn().Str("sku", sku).Msg("inventario: valor de SKU no es un array, se omite")
			continue
		}
		for _, e := range entries {
			records = append(records, ports.InventoryRecord{
				SKU:          sku,
				LocationCode: e.LocationCode,
				OnHand:       e.Quantity,
				Available:    e.Quantity,
				Allocated:    0,
			})
		}
	}

	// El orden de iteración del mapa es aleatorio; se fija para que la
	// ingesta sea repetible.
	sort.Slice(records, func(i, j int) bool {
		if records[i].SKU != records[j].SKU {
			return records[i].SKU < records[j].SKU
		}
		return records[i].LocationCode < records[j].LocationCode
	})
	return records, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Flattener de movimientos
// ──────────────────────────────────────────────────────────────────────────────

// flattenMovements aplana la respuesta de transacciones: un array
// "Transactions" cuyos elementos se mapean campo a campo con coerción
// defensiva de tipos (la calidad del dato upstream varía por registro).
// Un elemento malformado se salta con un log; la ausencia del array es
// ErrMalformedResponse para toda la respuesta.
func flattenMovements(raw []byte, log *logger.Logger) ([]ports.MovementRecord, error) {
	transactions, ok := rawField(raw, "Transactions")
	if !ok {
		return nil, &APIError{Kind: ErrMalformedResponse, Detail: preview(raw)}
	}
	var elements []json.RawMessage
	if err := json.Unmarshal(transactions, &elements); err != nil {
		return nil, &APIError{Kind: ErrMalformedResponse, Detail: preview(raw)}
	}

	records := make([]ports.MovementRecord, 0, len(elements))
	for i, el := range elements {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(el, &fields); err != nil {
			log.Warn().Int("index", i).Msg("transacciones: elemento malformado, se omite")
			continue
		}
		rec := ports.MovementRecord{
			SKU:            stringOrEmpty(fields["Sku"]),
			Location:       coerceString(fields["Location"]),
			Quantity:       coerceInt(fields["Quantity"]),
			QuantityBefore: coerceInt(fields["QuantityBefore"]),
			QuantityAfter:  coerceInt(fields["QuantityAfter"]),
			Reason:         coerceString(fields["TransactionReason"]),
			Note:           coerceString(fields["TransactionNote"]),
			User:           coerceString(fields["User"]),
			Type:           coerceString(fields["TransactionType"]),
			Context:        coerceString(fields["Context"]),
			Date:           coerceDate(fields["TransactionDate"]),
		}
		records = append(records, rec)
	}
	return records, nil
}

// rawField busca una clave de primer nivel con match case-insensitive.
func rawField(raw []byte, key string) (json.RawMessage, bool) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, false
	}
	for k, v := range obj {
		if strings.EqualFold(k, key) {
			return v, true
		}
	}
	return nil, false
}

// ──────────────────────────────────────────────────────────────────────────────
// Coerción de tipos por campo
// ──────────────────────────────────────────────────────────────────────────────

// coerceString acepta string, número (stringificado) o booleano
// (stringificado); null o ausente devuelve nil.
func coerceString(raw json.RawMessage) *string {
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return &s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		v := n.String()
		return &v
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		v := strconv.FormatBool(b)
		return &v
	}
	return nil
}

func stringOrEmpty(raw json.RawMessage) string {
	if s := coerceString(raw); s != nil {
		return *s
	}
	return ""
}

// coerceInt acepta número JSON o string numérico; cualquier otra cosa es 0.
func coerceInt(raw json.RawMessage) int {
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		if i, err := n.Int64(); err == nil {
			return int(i)
		}
		if f, err := n.Float64(); err == nil {
			return int(f)
		}
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		s = strings.TrimSpace(s)
		if i, err := strconv.Atoi(s); err == nil {
			return i
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return int(f)
		}
	}
	return 0
}

// coerceDate parsea la fecha en el formato del WMS (con fallback RFC 3339).
// Una fecha ausente o imparseable cae al instante actual en lugar de fallar
// el registro: decisión de producto heredada del comportamiento upstream.
func coerceDate(raw json.RawMessage) time.Time {
	s := coerceString(raw)
	if s == nil {
		return time.Now().UTC()
	}
	if t, err := time.Parse(dateFormat, *s); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, *s); err == nil {
		return t
	}
	return time.Now().UTC()
}
