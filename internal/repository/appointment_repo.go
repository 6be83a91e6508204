package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/matiiroda/mg/internal/model"
)

type AppointmentRepository interface {
	Create(ctx context.Context, a *model.Appointment) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
	List(ctx context.Context, day *time.Time, status string) ([]model.Appointment, error)
	Update(ctx context.Context, a *model.Appointment) error
}

type appointmentRepo struct{ db *gorm.DB }

func NewAppointmentRepository(db *gorm.DB) AppointmentRepository { return &appointmentRepo{db: db} }

func (r *appointmentRepo) Create(ctx context.Context, a *model.Appointment) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *appointmentRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	var a model.Appointment
	err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error
	return &a, err
}

func (r *appointmentRepo) List(ctx context.Context, day *time.Time, status string) ([]model.Appointment, error) {
	q := r.db.WithContext(ctx).Model(&model.Appointment{})
	if day != nil {
		start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
		q = q.Where("date >= ? AND date < ?", start, start.AddDate(0, 0, 1))
	}
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var appts []model.Appointment
	err := q.Order("date ASC").Find(&appts).Error
	return appts, err
}

func (r *appointmentRepo) Update(ctx context.Context, a *model.Appointment) error {
	return r.db.WithContext(ctx).Save(a).Error
}
