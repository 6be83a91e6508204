package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/matiiroda/mg/internal/model"
)

// CatalogRepository persists the product and service catalog behind the
// in-memory store. The engine mutates memory first; services call these
// methods afterwards so a restart reloads the same state.
type CatalogRepository interface {
	LoadProducts(ctx context.Context) ([]model.Product, error)
	LoadServices(ctx context.Context) ([]model.Service, error)
	SaveProduct(ctx context.Context, p *model.Product) error
	DeleteProduct(ctx context.Context, id string) error
	SaveService(ctx context.Context, s *model.Service) error
	DeleteService(ctx context.Context, id string) error

	// ReplaceProducts swaps the whole product table for the pulled rows in
	// one transaction, mirroring the wholesale in-memory replacement.
	ReplaceProducts(ctx context.Context, products []model.Product) error
}

type catalogRepo struct{ db *gorm.DB }

func NewCatalogRepository(db *gorm.DB) CatalogRepository { return &catalogRepo{db: db} }

func (r *catalogRepo) LoadProducts(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).Order("name ASC").Find(&products).Error
	return products, err
}

func (r *catalogRepo) LoadServices(ctx context.Context) ([]model.Service, error) {
	var services []model.Service
	err := r.db.WithContext(ctx).Order("name ASC").Find(&services).Error
	return services, err
}

func (r *catalogRepo) SaveProduct(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(p).Error
}

func (r *catalogRepo) DeleteProduct(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&model.Product{}, "id = ?", id).Error
}

func (r *catalogRepo) SaveService(ctx context.Context, s *model.Service) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(s).Error
}

func (r *catalogRepo) DeleteService(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&model.Service{}, "id = ?", id).Error
}

func (r *catalogRepo) ReplaceProducts(ctx context.Context, products []model.Product) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&model.Product{}).Error; err != nil {
			return err
		}
		if len(products) == 0 {
			return nil
		}
		return tx.Create(&products).Error
	})
}
