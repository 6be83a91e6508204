package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/matiiroda/mg/internal/model"
)

// CajaRepository archives register sessions. Save is an upsert: the open
// session row is written on open and rewritten on every sale and on close.
type CajaRepository interface {
	Save(ctx context.Context, s *model.CajaSession) error
	FindOpen(ctx context.Context) (*model.CajaSession, error)
	History(ctx context.Context, limit int) ([]model.CajaSession, error)
}

type cajaRepo struct{ db *gorm.DB }

func NewCajaRepository(db *gorm.DB) CajaRepository { return &cajaRepo{db: db} }

func (r *cajaRepo) Save(ctx context.Context, s *model.CajaSession) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(s).Error
}

// FindOpen returns the session left open by a previous run, or nil when every
// session is closed (a fresh database included).
func (r *cajaRepo) FindOpen(ctx context.Context) (*model.CajaSession, error) {
	var s model.CajaSession
	err := r.db.WithContext(ctx).Where("is_open = true").Order("opened_at DESC").First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *cajaRepo) History(ctx context.Context, limit int) ([]model.CajaSession, error) {
	if limit <= 0 {
		limit = 30
	}
	var sessions []model.CajaSession
	err := r.db.WithContext(ctx).Order("opened_at DESC").Limit(limit).Find(&sessions).Error
	return sessions, err
}
