package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/matiiroda/mg/internal/model"
)

// SettingsRepository holds the two singleton configuration rows: ticket
// layout and sheet sync. Both live at ID 1; Get returns defaults when the
// row has never been saved.
type SettingsRepository interface {
	GetTicketConfig(ctx context.Context) (*model.TicketConfig, error)
	SaveTicketConfig(ctx context.Context, c *model.TicketConfig) error
	GetSyncConfig(ctx context.Context) (*model.SyncConfig, error)
	SaveSyncConfig(ctx context.Context, c *model.SyncConfig) error
}

type settingsRepo struct{ db *gorm.DB }

func NewSettingsRepository(db *gorm.DB) SettingsRepository { return &settingsRepo{db: db} }

func (r *settingsRepo) GetTicketConfig(ctx context.Context) (*model.TicketConfig, error) {
	c := model.DefaultTicketConfig()
	err := r.db.WithContext(ctx).First(&c, "id = 1").Error
	if err == gorm.ErrRecordNotFound {
		return &c, nil
	}
	return &c, err
}

func (r *settingsRepo) SaveTicketConfig(ctx context.Context, c *model.TicketConfig) error {
	c.ID = 1
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(c).Error
}

func (r *settingsRepo) GetSyncConfig(ctx context.Context) (*model.SyncConfig, error) {
	var c model.SyncConfig
	err := r.db.WithContext(ctx).First(&c, "id = 1").Error
	if err == gorm.ErrRecordNotFound {
		return &model.SyncConfig{ID: 1, AutoPull: true}, nil
	}
	return &c, err
}

func (r *settingsRepo) SaveSyncConfig(ctx context.Context, c *model.SyncConfig) error {
	c.ID = 1
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(c).Error
}
