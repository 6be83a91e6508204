package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/matiiroda/mg/internal/config"
	"github.com/matiiroda/mg/internal/core"
	"github.com/matiiroda/mg/internal/dto"
	"github.com/matiiroda/mg/internal/model"
	"github.com/matiiroda/mg/internal/repository"
	"github.com/matiiroda/mg/internal/worker"
)

type CajaService interface {
	Open(ctx context.Context, operator string, req dto.OpenCajaRequest) (*dto.CajaSessionResponse, error)
	Close(ctx context.Context) (*dto.CajaSessionResponse, error)
	Current(ctx context.Context) (*dto.CajaSessionResponse, error)
	History(ctx context.Context, limit int) (*dto.CajaHistoryResponse, error)
}

type cajaService struct {
	caja       *core.CajaManager
	repo       repository.CajaRepository
	dispatcher *worker.Dispatcher
	cfg        *config.Config
}

func NewCajaService(caja *core.CajaManager, repo repository.CajaRepository, dispatcher *worker.Dispatcher, cfg *config.Config) CajaService {
	return &cajaService{caja: caja, repo: repo, dispatcher: dispatcher, cfg: cfg}
}

func (s *cajaService) Open(ctx context.Context, operator string, req dto.OpenCajaRequest) (*dto.CajaSessionResponse, error) {
	session, err := s.caja.Open(req.OpeningBalance, operator)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, &session); err != nil {
		log.Error().Err(err).Msg("caja: persist open session failed")
	}
	return s.sessionToResponse(&session), nil
}

// Close stamps the session and, when a report address is configured, mails
// the shift summary asynchronously.
func (s *cajaService) Close(ctx context.Context) (*dto.CajaSessionResponse, error) {
	cashOnHand := s.caja.EstimatedCashOnHand()
	session, err := s.caja.Close()
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, &session); err != nil {
		log.Error().Err(err).Msg("caja: persist closed session failed")
	}

	if s.dispatcher != nil && s.cfg.ReportEmail != "" {
		payload := worker.EmailJobPayload{
			ToEmail: s.cfg.ReportEmail,
			Subject: fmt.Sprintf("Cierre de caja %s", session.ClosedAt.Format("02/01/2006")),
			Body:    shiftSummaryBody(&session, cashOnHand),
		}
		if err := s.dispatcher.EnqueueEmail(ctx, payload); err != nil {
			log.Error().Err(err).Msg("caja: enqueue shift email failed")
		}
	}
	return s.sessionToResponse(&session), nil
}

func (s *cajaService) Current(ctx context.Context) (*dto.CajaSessionResponse, error) {
	session, ok := s.caja.Current()
	if !ok {
		return nil, core.ErrNotFound
	}
	return s.sessionToResponse(&session), nil
}

func (s *cajaService) History(ctx context.Context, limit int) (*dto.CajaHistoryResponse, error) {
	sessions, err := s.repo.History(ctx, limit)
	if err != nil {
		return nil, err
	}
	resp := &dto.CajaHistoryResponse{Data: make([]dto.CajaSessionResponse, len(sessions))}
	for i := range sessions {
		resp.Data[i] = *sessionToDTO(&sessions[i])
	}
	return resp, nil
}

func (s *cajaService) sessionToResponse(session *model.CajaSession) *dto.CajaSessionResponse {
	r := sessionToDTO(session)
	if current, ok := s.caja.Current(); ok && current.ID == session.ID {
		r.EstimatedCashOnHand = s.caja.EstimatedCashOnHand()
	}
	return r
}

func sessionToDTO(session *model.CajaSession) *dto.CajaSessionResponse {
	var closedAt *string
	if session.ClosedAt != nil {
		v := session.ClosedAt.UTC().Format("2006-01-02T15:04:05Z")
		closedAt = &v
	}
	return &dto.CajaSessionResponse{
		ID:             session.ID.String(),
		IsOpen:         session.IsOpen,
		OpenedAt:       session.OpenedAt.UTC().Format("2006-01-02T15:04:05Z"),
		ClosedAt:       closedAt,
		OpenedBy:       session.OpenedBy,
		OpeningBalance: session.OpeningBalance,
		NetSales:       session.NetSales,
		SaleCount:      session.SaleCount,
	}
}

func shiftSummaryBody(session *model.CajaSession, cashOnHand decimal.Decimal) string {
	return fmt.Sprintf(
		"Caja abierta por %s el %s.\n\nVentas: %d\nNeto vendido: $%s\nFondo inicial: $%s\nEfectivo estimado en caja: $%s\n",
		session.OpenedBy,
		session.OpenedAt.Format("02/01/2006 15:04"),
		session.SaleCount,
		session.NetSales.StringFixed(2),
		session.OpeningBalance.StringFixed(2),
		cashOnHand.StringFixed(2),
	)
}
