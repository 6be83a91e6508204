package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matiiroda/mg/internal/core"
	"github.com/matiiroda/mg/internal/dto"
	"github.com/matiiroda/mg/internal/infra"
	"github.com/matiiroda/mg/internal/model"
)

// ── Stubs ────────────────────────────────────────────────────────────────────

type stubCatalogRepo struct {
	replaced   []model.Product
	replaceErr error
}

func (s *stubCatalogRepo) LoadProducts(context.Context) ([]model.Product, error) { return nil, nil }
func (s *stubCatalogRepo) LoadServices(context.Context) ([]model.Service, error) { return nil, nil }
func (s *stubCatalogRepo) SaveProduct(context.Context, *model.Product) error     { return nil }
func (s *stubCatalogRepo) DeleteProduct(context.Context, string) error           { return nil }
func (s *stubCatalogRepo) SaveService(context.Context, *model.Service) error     { return nil }
func (s *stubCatalogRepo) DeleteService(context.Context, string) error           { return nil }

func (s *stubCatalogRepo) ReplaceProducts(_ context.Context, products []model.Product) error {
	if s.replaceErr != nil {
		return s.replaceErr
	}
	s.replaced = products
	return nil
}

type stubSettingsRepo struct {
	syncCfg model.SyncConfig
	saved   *model.SyncConfig
}

func (s *stubSettingsRepo) GetTicketConfig(context.Context) (*model.TicketConfig, error) {
	c := model.DefaultTicketConfig()
	return &c, nil
}
func (s *stubSettingsRepo) SaveTicketConfig(context.Context, *model.TicketConfig) error { return nil }

func (s *stubSettingsRepo) GetSyncConfig(context.Context) (*model.SyncConfig, error) {
	c := s.syncCfg
	return &c, nil
}

func (s *stubSettingsRepo) SaveSyncConfig(_ context.Context, c *model.SyncConfig) error {
	s.saved = c
	s.syncCfg = *c
	return nil
}

func newSheetServer(t *testing.T, csv string) (*httptest.Server, *int) {
	t.Helper()
	hits := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write([]byte(csv))
	}))
	t.Cleanup(ts.Close)
	return ts, &hits
}

func newSyncFixture(t *testing.T, baseURL string, cfg model.SyncConfig) (SyncService, *core.CatalogStore, *stubCatalogRepo, *stubSettingsRepo) {
	t.Helper()
	store := core.NewCatalogStore()
	catalog := &stubCatalogRepo{}
	settings := &stubSettingsRepo{syncCfg: cfg}
	svc := NewSyncService(store, catalog, settings,
		infra.NewSheetClient(baseURL),
		infra.NewCircuitBreaker(infra.DefaultCBConfig()),
		nil, 10*time.Minute)
	return svc, store, catalog, settings
}

// ── Pull ─────────────────────────────────────────────────────────────────────

func TestPullReplacesCatalog(t *testing.T) {
	csv := "id,name,price,stock,min_stock,category\n" +
		"p1,Crema Hidratante,1200,15,5,Insumos\n" +
		"p2,Shampoo,950.50,8,3,Insumos\n" +
		"px,Ejemplo,100,1,1,\n" +
		"p3,Esmalte,abc,-4,2,Esmaltes\n"
	ts, _ := newSheetServer(t, csv)
	svc, store, catalog, settings := newSyncFixture(t, ts.URL, model.SyncConfig{SheetID: "sheet-1"})

	res, err := svc.Pull(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, res.Products)
	assert.Equal(t, 2, res.Skipped) // header + placeholder row

	p1, ok := store.Product("p1")
	require.True(t, ok)
	assert.Equal(t, "Crema Hidratante", p1.Name)
	assert.True(t, p1.Price.Equal(decimal.NewFromInt(1200)))
	assert.Equal(t, 15, p1.Stock)
	assert.Equal(t, 5, p1.MinStock)

	p2, ok := store.Product("p2")
	require.True(t, ok)
	assert.True(t, p2.Price.Equal(decimal.RequireFromString("950.50")))

	// Malformed numbers coerce instead of dropping the row.
	p3, ok := store.Product("p3")
	require.True(t, ok)
	assert.True(t, p3.Price.IsZero())
	assert.Equal(t, 0, p3.Stock)

	_, ok = store.Product("px")
	assert.False(t, ok)

	assert.Len(t, catalog.replaced, 3)
	require.NotNil(t, settings.saved)
	assert.NotNil(t, settings.saved.LastPull)
}

func TestPullRemovesStaleProducts(t *testing.T) {
	ts, _ := newSheetServer(t, "p1,Crema,1200,15,5,Insumos\n")
	svc, store, _, _ := newSyncFixture(t, ts.URL, model.SyncConfig{SheetID: "sheet-1"})

	require.NoError(t, store.UpsertProduct(model.Product{
		ID: "old", Name: "Descontinuado", Price: decimal.NewFromInt(500), Stock: 3,
	}))

	_, err := svc.Pull(context.Background())
	require.NoError(t, err)

	_, ok := store.Product("old")
	assert.False(t, ok)
	_, ok = store.Product("p1")
	assert.True(t, ok)
}

func TestPullEmptySheetLeavesCatalogUntouched(t *testing.T) {
	ts, _ := newSheetServer(t, "id,name,price\nx,Ejemplo,10\n")
	svc, store, catalog, _ := newSyncFixture(t, ts.URL, model.SyncConfig{SheetID: "sheet-1"})

	require.NoError(t, store.UpsertProduct(model.Product{
		ID: "p1", Name: "Crema", Price: decimal.NewFromInt(1200), Stock: 15,
	}))

	_, err := svc.Pull(context.Background())
	assert.ErrorIs(t, err, ErrSheetEmpty)

	_, ok := store.Product("p1")
	assert.True(t, ok)
	assert.Nil(t, catalog.replaced)
}

func TestPullWithoutSheetID(t *testing.T) {
	svc, _, _, _ := newSyncFixture(t, "http://127.0.0.1:0", model.SyncConfig{})

	_, err := svc.Pull(context.Background())
	assert.ErrorIs(t, err, ErrSheetNotConfigured)
}

func TestPullTripsBreakerAfterRepeatedFailures(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(ts.Close)

	store := core.NewCatalogStore()
	settings := &stubSettingsRepo{syncCfg: model.SyncConfig{SheetID: "sheet-1"}}
	breaker := infra.NewCircuitBreaker(infra.CircuitBreakerConfig{
		FailureThreshold: 2,
		SuccessThreshold: 1,
		OpenTimeout:      time.Minute,
	})
	svc := NewSyncService(store, &stubCatalogRepo{}, settings,
		infra.NewSheetClient(ts.URL), breaker, nil, 10*time.Minute)

	ctx := context.Background()
	_, err := svc.Pull(ctx)
	require.Error(t, err)
	_, err = svc.Pull(ctx)
	require.Error(t, err)

	// Breaker open: fails fast without hitting the server.
	_, err = svc.Pull(ctx)
	assert.ErrorIs(t, err, infra.ErrCircuitOpen)
}

// ── Auto-pull ────────────────────────────────────────────────────────────────

func TestMaybeAutoPullRespectsInterval(t *testing.T) {
	ts, hits := newSheetServer(t, "p1,Crema,1200,15,5,Insumos\n")
	recent := time.Now().Add(-time.Minute)
	svc, _, _, _ := newSyncFixture(t, ts.URL, model.SyncConfig{
		SheetID: "sheet-1", AutoPull: true, LastPull: &recent,
	})

	svc.MaybeAutoPull(context.Background())
	assert.Equal(t, 0, *hits)
}

func TestMaybeAutoPullWhenStale(t *testing.T) {
	ts, hits := newSheetServer(t, "p1,Crema,1200,15,5,Insumos\n")
	old := time.Now().Add(-time.Hour)
	svc, store, _, _ := newSyncFixture(t, ts.URL, model.SyncConfig{
		SheetID: "sheet-1", AutoPull: true, LastPull: &old,
	})

	svc.MaybeAutoPull(context.Background())
	assert.Equal(t, 1, *hits)
	_, ok := store.Product("p1")
	assert.True(t, ok)
}

func TestMaybeAutoPullDisabled(t *testing.T) {
	ts, hits := newSheetServer(t, "p1,Crema,1200,15,5,Insumos\n")
	svc, _, _, _ := newSyncFixture(t, ts.URL, model.SyncConfig{
		SheetID: "sheet-1", AutoPull: false,
	})

	svc.MaybeAutoPull(context.Background())
	assert.Equal(t, 0, *hits)
}

// ── Push ─────────────────────────────────────────────────────────────────────

func TestPushSaleWithoutEndpointIsNoop(t *testing.T) {
	svc, _, _, _ := newSyncFixture(t, "http://127.0.0.1:0", model.SyncConfig{SheetID: "sheet-1"})

	// No push endpoint configured: must return without touching the queue.
	svc.PushSale(context.Background(), map[string]any{"total": "100"})
}

// ── Config ───────────────────────────────────────────────────────────────────

func TestUpdateConfigRoundTrip(t *testing.T) {
	svc, _, _, settings := newSyncFixture(t, "http://127.0.0.1:0", model.SyncConfig{})

	resp, err := svc.UpdateConfig(context.Background(), dto.SyncConfigRequest{
		SheetID:      "abc123",
		AutoPull:     true,
		PushEndpoint: "https://hooks.example.com/sales",
	})
	require.NoError(t, err)
	assert.Equal(t, "abc123", resp.SheetID)
	assert.True(t, resp.AutoPull)
	assert.Equal(t, "https://hooks.example.com/sales", resp.PushEndpoint)
	require.NotNil(t, settings.saved)

	got, err := svc.GetConfig(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "abc123", got.SheetID)
}

// ── Row parsing ──────────────────────────────────────────────────────────────

func TestParseProductRowsSkipsShortAndBlankRows(t *testing.T) {
	products, skipped := parseProductRows([][]string{
		{"solo-id"},
		{"", "Sin ID", "100"},
		{"p9", "", "100"},
		{"p1", "Crema", "1200", "15", "5", "Insumos"},
	})
	assert.Len(t, products, 1)
	assert.Equal(t, 3, skipped)
	assert.Equal(t, "p1", products[0].ID)
}

func TestParseProductRowsHeaderOnlySkippedOnFirstRow(t *testing.T) {
	// A non-numeric price in the middle of the sheet is a typo, not a header.
	products, skipped := parseProductRows([][]string{
		{"id", "name", "price", "stock", "min_stock", "category"},
		{"p1", "Crema", "12oo", "5", "1", ""},
	})
	require.Len(t, products, 1)
	assert.Equal(t, 1, skipped)
	assert.True(t, products[0].Price.IsZero())
}
