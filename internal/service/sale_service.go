package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/matiiroda/mg/internal/config"
	"github.com/matiiroda/mg/internal/core"
	"github.com/matiiroda/mg/internal/dto"
	"github.com/matiiroda/mg/internal/infra"
	"github.com/matiiroda/mg/internal/model"
	"github.com/matiiroda/mg/internal/repository"
)

type SaleService interface {
	Cart(ctx context.Context) *dto.CartResponse
	AddItem(ctx context.Context, req dto.AddCartItemRequest) (*dto.CartResponse, error)
	RemoveLine(ctx context.Context, idx int) (*dto.CartResponse, error)
	Commit(ctx context.Context, operatorID string, req dto.CommitSaleRequest) (*dto.SaleResponse, error)
	ListSales(ctx context.Context, filter dto.SaleFilter) (*dto.SaleListResponse, error)
	TicketPDF(ctx context.Context, saleID uuid.UUID) (string, error)
}

type saleService struct {
	cart         *core.CartBuilder
	caja         *core.CajaManager
	ledger       *core.SaleLedger
	store        *core.CatalogStore
	saleRepo     repository.SaleRepository
	cajaRepo     repository.CajaRepository
	catalogRepo  repository.CatalogRepository
	apptRepo     repository.AppointmentRepository
	settingsRepo repository.SettingsRepository
	sync         SyncService
	cfg          *config.Config
}

func NewSaleService(
	cart *core.CartBuilder,
	caja *core.CajaManager,
	ledger *core.SaleLedger,
	store *core.CatalogStore,
	saleRepo repository.SaleRepository,
	cajaRepo repository.CajaRepository,
	catalogRepo repository.CatalogRepository,
	apptRepo repository.AppointmentRepository,
	settingsRepo repository.SettingsRepository,
	sync SyncService,
	cfg *config.Config,
) SaleService {
	return &saleService{
		cart:         cart,
		caja:         caja,
		ledger:       ledger,
		store:        store,
		saleRepo:     saleRepo,
		cajaRepo:     cajaRepo,
		catalogRepo:  catalogRepo,
		apptRepo:     apptRepo,
		settingsRepo: settingsRepo,
		sync:         sync,
		cfg:          cfg,
	}
}

func (s *saleService) Cart(ctx context.Context) *dto.CartResponse {
	return cartToResponse(s.cart)
}

func (s *saleService) AddItem(ctx context.Context, req dto.AddCartItemRequest) (*dto.CartResponse, error) {
	if err := s.cart.AddItem(req.RefID, req.Kind); err != nil {
		return nil, err
	}
	return cartToResponse(s.cart), nil
}

func (s *saleService) RemoveLine(ctx context.Context, idx int) (*dto.CartResponse, error) {
	if err := s.cart.RemoveLine(idx); err != nil {
		return nil, err
	}
	return cartToResponse(s.cart), nil
}

// Commit finalizes the cart. The engine applies the atomic part (stock,
// session, ledger, cart clear); everything after is surrounding plumbing:
// sale row, stock rows, session row, webhook push. Persistence failures are
// logged but do not undo a committed sale — memory is the runtime authority.
func (s *saleService) Commit(ctx context.Context, operatorID string, req dto.CommitSaleRequest) (*dto.SaleResponse, error) {
	deposit := req.Deposit
	var appt *model.Appointment
	if req.AppointmentID != nil {
		id, err := uuid.Parse(*req.AppointmentID)
		if err != nil {
			return nil, errors.New("appointment_id invalido")
		}
		appt, err = s.apptRepo.FindByID(ctx, id)
		if err != nil {
			return nil, errors.New("turno no encontrado")
		}
		if appt.Status == model.AppointmentCancelled || appt.Status == model.AppointmentCompleted {
			return nil, errors.New("el turno no admite cobro en este estado")
		}
		// The deposit taken at booking time comes off the amount due.
		deposit = deposit.Add(appt.Deposit)
		if req.ClientLabel == "" {
			req.ClientLabel = appt.ClientName
		}
	}

	sale, err := s.cart.Commit(req.PaymentMethod, req.ClientLabel, deposit, operatorID)
	if err != nil {
		return nil, err
	}

	if err := s.saleRepo.Create(ctx, sale); err != nil {
		log.Error().Err(err).Str("sale_id", sale.ID.String()).Msg("sale: persist failed")
	}
	s.persistStock(ctx, sale)
	if session, ok := s.caja.Current(); ok {
		if err := s.cajaRepo.Save(ctx, &session); err != nil {
			log.Error().Err(err).Msg("sale: persist caja session failed")
		}
	}
	if appt != nil {
		appt.Status = model.AppointmentCompleted
		if err := s.apptRepo.Update(ctx, appt); err != nil {
			log.Error().Err(err).Str("appointment_id", appt.ID.String()).Msg("sale: complete appointment failed")
		}
	}

	resp := saleToResponse(sale)
	s.sync.PushSale(ctx, resp)
	return resp, nil
}

// persistStock writes the post-commit stock of every product line.
func (s *saleService) persistStock(ctx context.Context, sale *model.Sale) {
	seen := map[string]bool{}
	for _, item := range sale.Items {
		if item.Kind != model.KindProduct || seen[item.RefID] {
			continue
		}
		seen[item.RefID] = true
		if p, ok := s.store.Product(item.RefID); ok {
			if err := s.catalogRepo.SaveProduct(ctx, &p); err != nil {
				log.Error().Err(err).Str("product_id", p.ID).Msg("sale: persist stock failed")
			}
		}
	}
}

func (s *saleService) ListSales(ctx context.Context, filter dto.SaleFilter) (*dto.SaleListResponse, error) {
	from, to, err := parseDayRange(filter.From, filter.To)
	if err != nil {
		return nil, err
	}
	sales := s.ledger.Range(from, to)
	data := make([]dto.SaleResponse, len(sales))
	for i := range sales {
		data[i] = *saleToResponse(&sales[i])
	}
	return &dto.SaleListResponse{Data: data, Total: len(data)}, nil
}

// TicketPDF renders the sale as a PDF and returns the file path.
func (s *saleService) TicketPDF(ctx context.Context, saleID uuid.UUID) (string, error) {
	var sale *model.Sale
	for _, rec := range s.ledger.All() {
		if rec.ID == saleID {
			copied := rec
			sale = &copied
			break
		}
	}
	if sale == nil {
		return "", core.ErrNotFound
	}
	ticketCfg, err := s.settingsRepo.GetTicketConfig(ctx)
	if err != nil {
		return "", err
	}
	return infra.GenerateTicketPDF(sale, ticketCfg, s.cfg.PDFStoragePath)
}

// parseDayRange turns YYYY-MM-DD bounds into an inclusive UTC range.
// Empty from = today; empty to = same day as from.
func parseDayRange(fromStr, toStr string) (time.Time, time.Time, error) {
	now := time.Now().UTC()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if fromStr != "" {
		parsed, err := time.Parse("2006-01-02", fromStr)
		if err != nil {
			return time.Time{}, time.Time{}, errors.New("fecha 'from' invalida, use YYYY-MM-DD")
		}
		from = parsed
	}
	to := from
	if toStr != "" {
		parsed, err := time.Parse("2006-01-02", toStr)
		if err != nil {
			return time.Time{}, time.Time{}, errors.New("fecha 'to' invalida, use YYYY-MM-DD")
		}
		to = parsed
	}
	return from, to.AddDate(0, 0, 1).Add(-time.Nanosecond), nil
}

func cartToResponse(cart *core.CartBuilder) *dto.CartResponse {
	lines := cart.Lines()
	resp := &dto.CartResponse{
		Lines: make([]dto.CartLineResponse, len(lines)),
		Total: cart.Total(),
	}
	for i, line := range lines {
		resp.Lines[i] = dto.CartLineResponse{
			Index:    i,
			RefID:    line.RefID,
			Name:     line.Name,
			Kind:     line.Kind,
			Price:    line.Price,
			Quantity: line.Quantity,
			Subtotal: line.Subtotal(),
		}
	}
	return resp
}

func saleToResponse(sale *model.Sale) *dto.SaleResponse {
	items := make([]dto.SaleItemResponse, len(sale.Items))
	for i, item := range sale.Items {
		items[i] = dto.SaleItemResponse{
			RefID:    item.RefID,
			Name:     item.Name,
			Kind:     item.Kind,
			Price:    item.Price,
			Quantity: item.Quantity,
			Subtotal: item.Subtotal(),
		}
	}
	return &dto.SaleResponse{
		ID:            sale.ID.String(),
		Timestamp:     sale.Timestamp.Format(time.RFC3339),
		Items:         items,
		Total:         sale.Total,
		PaymentMethod: sale.PaymentMethod,
		OperatorID:    sale.OperatorID,
		ClientLabel:   sale.ClientLabel,
		Deposit:       sale.Deposit,
		AmountDue:     sale.AmountDue(),
	}
}
