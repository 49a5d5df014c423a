package sync_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/StockWatch-api/internal/application/ports"
	appsync "github.com/jhoicas/StockWatch-api/internal/application/sync"
	"github.com/jhoicas/StockWatch-api/internal/domain"
	"github.com/jhoicas/StockWatch-api/internal/domain/entity"
	"github.com/jhoicas/StockWatch-api/internal/domain/repository"
	"github.com/jhoicas/StockWatch-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeProvider struct {
	failFor   map[string]bool // TenantToken -> fallo total
	failMoves bool
	products  []ports.ProductRecord
	inventory []ports.InventoryRecord
	lastFrom  time.Time
	lastTo    time.Time
}

func (f *fakeProvider) ExchangeCredentials(context.Context, string, string) (ports.TokenPair, error) {
	return ports.TokenPair{}, errors.New("no usado en estos tests")
}

func (f *fakeProvider) FetchProducts(_ context.Context, creds ports.TokenPair) ([]ports.ProductRecord, error) {
	if f.failFor[creds.TenantToken] {
		return nil, errors.New("wms caído")
	}
	return f.products, nil
}

func (f *fakeProvider) FetchLocations(_ context.Context, creds ports.TokenPair) ([]ports.LocationRecord, error) {
	if f.failFor[creds.TenantToken] {
		return nil, errors.New("wms caído")
	}
	return []ports.LocationRecord{{LocationCode: "L1", LocationName: "Norte", IsActive: true}}, nil
}

func (f *fakeProvider) FetchInventory(_ context.Context, creds ports.TokenPair) ([]ports.InventoryRecord, error) {
	if f.failFor[creds.TenantToken] {
		return nil, errors.New("wms caído")
	}
	return f.inventory, nil
}

func (f *fakeProvider) FetchMovements(_ context.Context, creds ports.TokenPair, from, to time.Time) ([]ports.MovementRecord, error) {
	if f.failFor[creds.TenantToken] || f.failMoves {
		return nil, errors.New("wms caído")
	}
	f.lastFrom, f.lastTo = from, to
	return nil, nil
}

type fakeTenants struct{ byID map[string]*entity.Tenant }

func (f *fakeTenants) GetByID(_ context.Context, id string) (*entity.Tenant, error) {
	return f.byID[id], nil
}
func (f *fakeTenants) SaveCredentials(context.Context, string, string, string) error { return nil }

type fakeCustomers struct{ list []*entity.Customer }

func (f *fakeCustomers) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	for _, c := range f.list {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}
func (f *fakeCustomers) ListActive(context.Context) ([]*entity.Customer, error) {
	return f.list, nil
}

type recordingStore struct {
	products  []*entity.Product
	locations []*entity.Location
	levels    []*entity.InventoryLevel
	movements []*entity.InventoryMovement
}

func (s *recordingStore) UpsertBySKU(_ context.Context, p *entity.Product) error {
	s.products = append(s.products, p)
	return nil
}
func (s *recordingStore) GetByCustomerAndSKU(context.Context, string, string) (*entity.Product, error) {
	return nil, nil
}
func (s *recordingStore) ListByCustomer(context.Context, string, int, int) ([]*entity.Product, error) {
	return nil, nil
}
func (s *recordingStore) UpsertByCode(_ context.Context, l *entity.Location) error {
	s.locations = append(s.locations, l)
	return nil
}
func (s *recordingStore) ListByCustomerLocations(context.Context, string) ([]*entity.Location, error) {
	return nil, nil
}
func (s *recordingStore) Upsert(_ context.Context, l *entity.InventoryLevel) error {
	s.levels = append(s.levels, l)
	return nil
}
func (s *recordingStore) ListForEvaluation(context.Context, string) ([]repository.StockSnapshot, error) {
	return nil, nil
}
func (s *recordingStore) UpsertByDedupKey(_ context.Context, m *entity.InventoryMovement) error {
	s.movements = append(s.movements, m)
	return nil
}
func (s *recordingStore) ListByCustomer2(context.Context, string, int, int) ([]*entity.InventoryMovement, error) {
	return nil, nil
}

// Adaptadores finos para cumplir las interfaces con métodos homónimos.
type locationStore struct{ *recordingStore }

func (s locationStore) ListByCustomer(ctx context.Context, id string) ([]*entity.Location, error) {
	return s.ListByCustomerLocations(ctx, id)
}

type movementStore struct{ *recordingStore }

func (s movementStore) ListByCustomer(ctx context.Context, id string, limit, offset int) ([]*entity.InventoryMovement, error) {
	return s.ListByCustomer2(ctx, id, limit, offset)
}

func buildUseCase(provider ports.InventoryProvider, tenants *fakeTenants, customers *fakeCustomers, store *recordingStore) *appsync.UseCase {
	return appsync.New(
		provider, tenants, customers,
		store, locationStore{store}, store, movementStore{store},
		7, logger.Nop(),
	)
}

func customer(id, tenantID string) *entity.Customer {
	return &entity.Customer{ID: id, TenantID: tenantID, Name: "Cliente " + id, Plan: entity.PlanPro, IsActive: true}
}

func tenantWithCreds(id, token string) *entity.Tenant {
	return &entity.Tenant{ID: id, TenantToken: token, UserToken: "ut-" + token}
}

// ──────────────────────────────────────────────────────────────────────────────
// Política de fallo parcial
// ──────────────────────────────────────────────────────────────────────────────

// El fallo de un cliente no aborta el ciclo: los clientes restantes se
// sincronizan igual.
func TestRunCycle_FalloDeUnClienteNoAbortaElLote(t *testing.T) {
	store := &recordingStore{}
	provider := &fakeProvider{
		failFor:  map[string]bool{"tok-a": true},
		products: []ports.ProductRecord{{SKU: "SKU1", Description: "Tornillo"}},
	}
	tenants := &fakeTenants{byID: map[string]*entity.Tenant{
		"t-a": tenantWithCreds("t-a", "tok-a"),
		"t-b": tenantWithCreds("t-b", "tok-b"),
	}}
	customers := &fakeCustomers{list: []*entity.Customer{
		customer("c-a", "t-a"),
		customer("c-b", "t-b"),
	}}
	uc := buildUseCase(provider, tenants, customers, store)

	err := uc.RunCycle(context.Background())

	require.NoError(t, err, "el ciclo completo no reporta error: el fallo por cliente solo se loguea")
	require.Len(t, store.products, 1, "el cliente sano sí debe reconciliarse")
	assert.Equal(t, "c-b", store.products[0].CustomerID)
	assert.Equal(t, "SKU1", store.products[0].SKU)
}

// El fallo de un endpoint no impide los endpoints restantes del mismo
// cliente, pero sí se reporta al driver.
func TestSyncCustomer_FalloDeEndpointNoImpideLosDemas(t *testing.T) {
	store := &recordingStore{}
	provider := &fakeProvider{
		failMoves: true,
		products:  []ports.ProductRecord{{SKU: "SKU1"}},
		inventory: []ports.InventoryRecord{{SKU: "SKU1", LocationCode: "L1", OnHand: 2, Available: 2}},
	}
	tenants := &fakeTenants{byID: map[string]*entity.Tenant{"t-a": tenantWithCreds("t-a", "tok-a")}}
	customers := &fakeCustomers{list: []*entity.Customer{customer("c-a", "t-a")}}
	uc := buildUseCase(provider, tenants, customers, store)

	err := uc.SyncCustomer(context.Background(), customers.list[0])

	require.Error(t, err, "el fallo de movimientos debe surfear al driver")
	assert.Len(t, store.products, 1)
	assert.Len(t, store.locations, 1)
	assert.Len(t, store.levels, 1)
	assert.Empty(t, store.movements)
}

// ──────────────────────────────────────────────────────────────────────────────
// Precondiciones y mapeos
// ──────────────────────────────────────────────────────────────────────────────

func TestSyncCustomer_TenantSinCredenciales(t *testing.T) {
	store := &recordingStore{}
	tenants := &fakeTenants{byID: map[string]*entity.Tenant{"t-a": {ID: "t-a"}}}
	customers := &fakeCustomers{list: []*entity.Customer{customer("c-a", "t-a")}}
	uc := buildUseCase(&fakeProvider{}, tenants, customers, store)

	err := uc.SyncCustomer(context.Background(), customers.list[0])

	assert.ErrorIs(t, err, domain.ErrTenantNotProvision)
	assert.Empty(t, store.products)
}

func TestSyncCustomer_ClienteInactivo(t *testing.T) {
	uc := buildUseCase(&fakeProvider{}, &fakeTenants{}, &fakeCustomers{}, &recordingStore{})

	inactive := customer("c-x", "t-x")
	inactive.IsActive = false

	assert.ErrorIs(t, uc.SyncCustomer(context.Background(), inactive), domain.ErrCustomerInactive)
}

// La ventana de movimientos de la pasada cubre los últimos 7 días.
func TestSyncCustomer_VentanaDeMovimientos(t *testing.T) {
	store := &recordingStore{}
	provider := &fakeProvider{}
	tenants := &fakeTenants{byID: map[string]*entity.Tenant{"t-a": tenantWithCreds("t-a", "tok-a")}}
	customers := &fakeCustomers{list: []*entity.Customer{customer("c-a", "t-a")}}
	uc := buildUseCase(provider, tenants, customers, store)

	require.NoError(t, uc.SyncCustomer(context.Background(), customers.list[0]))

	assert.Equal(t, 7*24*time.Hour, provider.lastTo.Sub(provider.lastFrom))
	assert.WithinDuration(t, time.Now().UTC(), provider.lastTo, time.Minute)
}

// Cada nivel reconciliado queda scoped al cliente y conserva la semántica
// Available == OnHand del upstream.
func TestSyncCustomer_MapeoDeNiveles(t *testing.T) {
	store := &recordingStore{}
	provider := &fakeProvider{
		inventory: []ports.InventoryRecord{{SKU: "SKU9", LocationCode: "L3", OnHand: 4, Available: 4, Allocated: 0}},
	}
	tenants := &fakeTenants{byID: map[string]*entity.Tenant{"t-a": tenantWithCreds("t-a", "tok-a")}}
	customers := &fakeCustomers{list: []*entity.Customer{customer("c-a", "t-a")}}
	uc := buildUseCase(provider, tenants, customers, store)

	require.NoError(t, uc.SyncCustomer(context.Background(), customers.list[0]))

	require.Len(t, store.levels, 1)
	level := store.levels[0]
	assert.Equal(t, "c-a", level.CustomerID)
	assert.Equal(t, "SKU9", level.SKU)
	assert.Equal(t, "L3", level.LocationCode)
	assert.Equal(t, level.OnHand, level.Available)
}
