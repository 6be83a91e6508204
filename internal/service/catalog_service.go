package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/matiiroda/mg/internal/core"
	"github.com/matiiroda/mg/internal/dto"
	"github.com/matiiroda/mg/internal/model"
	"github.com/matiiroda/mg/internal/repository"
)

// Puller lets catalog reads trigger an opportunistic sheet pull without a
// hard dependency on the sync service.
type Puller interface {
	MaybeAutoPull(ctx context.Context)
}

type CatalogService interface {
	ListProducts(ctx context.Context) ([]dto.ProductResponse, error)
	ListServices(ctx context.Context) ([]dto.ServiceResponse, error)
	UpsertProduct(ctx context.Context, req dto.UpsertProductRequest) (*dto.ProductResponse, error)
	DeleteProduct(ctx context.Context, id string) error
	UpsertService(ctx context.Context, req dto.UpsertServiceRequest) (*dto.ServiceResponse, error)
	DeleteService(ctx context.Context, id string) error
	LowStockAlerts(ctx context.Context) ([]dto.ProductResponse, error)
}

type catalogService struct {
	store  *core.CatalogStore
	repo   repository.CatalogRepository
	puller Puller
}

func NewCatalogService(store *core.CatalogStore, repo repository.CatalogRepository, puller Puller) CatalogService {
	return &catalogService{store: store, repo: repo, puller: puller}
}

func (s *catalogService) ListProducts(ctx context.Context) ([]dto.ProductResponse, error) {
	if s.puller != nil {
		s.puller.MaybeAutoPull(ctx)
	}
	products := s.store.Products()
	resp := make([]dto.ProductResponse, len(products))
	for i := range products {
		resp[i] = productToResponse(&products[i])
	}
	return resp, nil
}

func (s *catalogService) ListServices(ctx context.Context) ([]dto.ServiceResponse, error) {
	services := s.store.Services()
	resp := make([]dto.ServiceResponse, len(services))
	for i := range services {
		resp[i] = serviceToResponse(&services[i])
	}
	return resp, nil
}

func (s *catalogService) UpsertProduct(ctx context.Context, req dto.UpsertProductRequest) (*dto.ProductResponse, error) {
	p := model.Product{
		ID:       req.ID,
		Name:     req.Name,
		Price:    req.Price,
		Stock:    req.Stock,
		MinStock: req.MinStock,
		Category: req.Category,
	}
	if err := s.store.UpsertProduct(p); err != nil {
		return nil, err
	}
	if err := s.repo.SaveProduct(ctx, &p); err != nil {
		log.Error().Err(err).Str("product_id", p.ID).Msg("catalog: persist product failed")
		return nil, err
	}
	resp := productToResponse(&p)
	return &resp, nil
}

func (s *catalogService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.store.DeleteProduct(id); err != nil {
		return err
	}
	return s.repo.DeleteProduct(ctx, id)
}

func (s *catalogService) UpsertService(ctx context.Context, req dto.UpsertServiceRequest) (*dto.ServiceResponse, error) {
	svc := model.Service{
		ID:       req.ID,
		Name:     req.Name,
		Price:    req.Price,
		Duration: req.Duration,
		Category: req.Category,
	}
	if err := s.store.UpsertService(svc); err != nil {
		return nil, err
	}
	if err := s.repo.SaveService(ctx, &svc); err != nil {
		log.Error().Err(err).Str("service_id", svc.ID).Msg("catalog: persist service failed")
		return nil, err
	}
	resp := serviceToResponse(&svc)
	return &resp, nil
}

func (s *catalogService) DeleteService(ctx context.Context, id string) error {
	if err := s.store.DeleteService(id); err != nil {
		return err
	}
	return s.repo.DeleteService(ctx, id)
}

func (s *catalogService) LowStockAlerts(ctx context.Context) ([]dto.ProductResponse, error) {
	low := s.store.LowStock()
	resp := make([]dto.ProductResponse, len(low))
	for i := range low {
		resp[i] = productToResponse(&low[i])
	}
	return resp, nil
}

func productToResponse(p *model.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		Stock:    p.Stock,
		MinStock: p.MinStock,
		Category: p.Category,
		LowStock: p.LowStock(),
	}
}

func serviceToResponse(s *model.Service) dto.ServiceResponse {
	return dto.ServiceResponse{
		ID:       s.ID,
		Name:     s.Name,
		Price:    s.Price,
		Duration: s.Duration,
		Category: s.Category,
	}
}
