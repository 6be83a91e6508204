package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/matiiroda/mg/internal/core"
	"github.com/matiiroda/mg/internal/dto"
	"github.com/matiiroda/mg/internal/infra"
	"github.com/matiiroda/mg/internal/model"
	"github.com/matiiroda/mg/internal/repository"
	"github.com/matiiroda/mg/internal/worker"
)

// ErrSheetEmpty guards against wiping the catalog when the sheet comes back
// blank or unreadable: a pull that yields zero product rows is rejected.
var ErrSheetEmpty = errors.New("la planilla no contiene productos validos")

var ErrSheetNotConfigured = errors.New("sincronizacion no configurada: falta sheet_id")

type SyncService interface {
	Puller

	Pull(ctx context.Context) (*dto.PullResultResponse, error)
	PushSale(ctx context.Context, sale any)
	GetConfig(ctx context.Context) (*dto.SyncConfigResponse, error)
	UpdateConfig(ctx context.Context, req dto.SyncConfigRequest) (*dto.SyncConfigResponse, error)
}

type syncService struct {
	store      *core.CatalogStore
	catalog    repository.CatalogRepository
	settings   repository.SettingsRepository
	sheet      *infra.SheetClient
	breaker    *infra.CircuitBreaker
	dispatcher *worker.Dispatcher

	autoPullEvery time.Duration
	pullMu        sync.Mutex
}

func NewSyncService(
	store *core.CatalogStore,
	catalog repository.CatalogRepository,
	settings repository.SettingsRepository,
	sheet *infra.SheetClient,
	breaker *infra.CircuitBreaker,
	dispatcher *worker.Dispatcher,
	autoPullEvery time.Duration,
) SyncService {
	if autoPullEvery <= 0 {
		autoPullEvery = 10 * time.Minute
	}
	return &syncService{
		store:         store,
		catalog:       catalog,
		settings:      settings,
		sheet:         sheet,
		breaker:       breaker,
		dispatcher:    dispatcher,
		autoPullEvery: autoPullEvery,
	}
}

// Pull downloads the sheet and replaces the product catalog wholesale. The
// sheet is authoritative for products; a failed pull leaves the running
// catalog untouched.
func (s *syncService) Pull(ctx context.Context) (*dto.PullResultResponse, error) {
	s.pullMu.Lock()
	defer s.pullMu.Unlock()

	cfg, err := s.settings.GetSyncConfig(ctx)
	if err != nil {
		return nil, err
	}
	if cfg.SheetID == "" {
		return nil, ErrSheetNotConfigured
	}

	var rows [][]string
	err = s.breaker.Execute(func() error {
		var fetchErr error
		rows, fetchErr = s.sheet.FetchRows(ctx, cfg.SheetID)
		return fetchErr
	})
	if err != nil {
		return nil, err
	}

	products, skipped := parseProductRows(rows)
	if len(products) == 0 {
		return nil, ErrSheetEmpty
	}

	s.store.ReplaceAll(products)
	if err := s.catalog.ReplaceProducts(ctx, products); err != nil {
		log.Error().Err(err).Msg("sync: persist pulled catalog failed")
	}

	now := time.Now().UTC()
	cfg.LastPull = &now
	if err := s.settings.SaveSyncConfig(ctx, cfg); err != nil {
		log.Error().Err(err).Msg("sync: save last_pull failed")
	}

	log.Info().Int("products", len(products)).Int("skipped", skipped).Msg("sync: catalog pulled")
	return &dto.PullResultResponse{
		Products: len(products),
		Skipped:  skipped,
		PulledAt: now.Format(time.RFC3339),
	}, nil
}

// MaybeAutoPull pulls at most once per interval when auto-pull is on.
// Failures are logged, never surfaced: the caller only wanted a read.
func (s *syncService) MaybeAutoPull(ctx context.Context) {
	cfg, err := s.settings.GetSyncConfig(ctx)
	if err != nil || !cfg.AutoPull || cfg.SheetID == "" {
		return
	}
	if cfg.LastPull != nil && time.Since(*cfg.LastPull) < s.autoPullEvery {
		return
	}
	if _, err := s.Pull(ctx); err != nil {
		log.Warn().Err(err).Msg("sync: auto-pull failed")
	}
}

// PushSale queues the committed sale for webhook delivery. Best-effort: a
// missing endpoint or full queue never blocks the commit path.
func (s *syncService) PushSale(ctx context.Context, sale any) {
	cfg, err := s.settings.GetSyncConfig(ctx)
	if err != nil || cfg.PushEndpoint == "" {
		return
	}
	payload := map[string]any{
		"endpoint": cfg.PushEndpoint,
		"sale":     sale,
	}
	if err := s.dispatcher.EnqueuePush(ctx, payload); err != nil {
		log.Error().Err(err).Msg("sync: enqueue push failed")
	}
}

func (s *syncService) GetConfig(ctx context.Context) (*dto.SyncConfigResponse, error) {
	cfg, err := s.settings.GetSyncConfig(ctx)
	if err != nil {
		return nil, err
	}
	return syncConfigToResponse(cfg), nil
}

func (s *syncService) UpdateConfig(ctx context.Context, req dto.SyncConfigRequest) (*dto.SyncConfigResponse, error) {
	cfg, err := s.settings.GetSyncConfig(ctx)
	if err != nil {
		return nil, err
	}
	cfg.SheetID = req.SheetID
	cfg.AutoPull = req.AutoPull
	cfg.PushEndpoint = req.PushEndpoint
	if err := s.settings.SaveSyncConfig(ctx, cfg); err != nil {
		return nil, err
	}
	return syncConfigToResponse(cfg), nil
}

func syncConfigToResponse(cfg *model.SyncConfig) *dto.SyncConfigResponse {
	var lastPull *string
	if cfg.LastPull != nil {
		v := cfg.LastPull.UTC().Format(time.RFC3339)
		lastPull = &v
	}
	return &dto.SyncConfigResponse{
		SheetID:      cfg.SheetID,
		LastPull:     lastPull,
		AutoPull:     cfg.AutoPull,
		PushEndpoint: cfg.PushEndpoint,
	}
}

// parseProductRows maps raw CSV rows to products. Expected columns:
// id, name, price, stock, min_stock, category. A header row, rows without
// an id or a name, and placeholder rows the sheet template ships with are
// skipped; malformed numbers coerce to zero rather than dropping the row.
func parseProductRows(rows [][]string) ([]model.Product, int) {
	var products []model.Product
	skipped := 0
	for i, row := range rows {
		if len(row) < 2 {
			skipped++
			continue
		}
		id := strings.TrimSpace(row[0])
		name := strings.TrimSpace(cell(row, 1))
		if id == "" || name == "" || isPlaceholderName(name) {
			skipped++
			continue
		}
		price, err := decimal.NewFromString(strings.TrimSpace(cell(row, 2)))
		if err != nil {
			if i == 0 {
				// header row
				skipped++
				continue
			}
			price = decimal.Zero
		}
		products = append(products, model.Product{
			ID:       id,
			Name:     name,
			Price:    price,
			Stock:    atoiOrZero(cell(row, 3)),
			MinStock: atoiOrZero(cell(row, 4)),
			Category: strings.TrimSpace(cell(row, 5)),
		})
	}
	return products, skipped
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func isPlaceholderName(name string) bool {
	switch strings.ToLower(name) {
	case "nombre", "producto", "name", "ejemplo", "-", "--":
		return true
	}
	return false
}
