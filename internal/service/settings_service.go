package service

import (
	"context"

	"github.com/matiiroda/mg/internal/dto"
	"github.com/matiiroda/mg/internal/model"
	"github.com/matiiroda/mg/internal/repository"
)

type SettingsService interface {
	GetTicketConfig(ctx context.Context) (*model.TicketConfig, error)
	UpdateTicketConfig(ctx context.Context, req dto.TicketConfigRequest) (*model.TicketConfig, error)
}

type settingsService struct {
	repo repository.SettingsRepository
}

func NewSettingsService(repo repository.SettingsRepository) SettingsService {
	return &settingsService{repo: repo}
}

func (s *settingsService) GetTicketConfig(ctx context.Context) (*model.TicketConfig, error) {
	return s.repo.GetTicketConfig(ctx)
}

func (s *settingsService) UpdateTicketConfig(ctx context.Context, req dto.TicketConfigRequest) (*model.TicketConfig, error) {
	cfg := &model.TicketConfig{
		ID:            1,
		BusinessName:  req.BusinessName,
		Slogan:        req.Slogan,
		Address:       req.Address,
		Location:      req.Location,
		Phone:         req.Phone,
		Website:       req.Website,
		FooterMessage: req.FooterMessage,
	}
	if err := s.repo.SaveTicketConfig(ctx, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
