package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/matiiroda/mg/internal/core"
	"github.com/matiiroda/mg/internal/dto"
	"github.com/matiiroda/mg/internal/model"
	"github.com/matiiroda/mg/internal/repository"
)

type AppointmentService interface {
	Create(ctx context.Context, req dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	List(ctx context.Context, filter dto.AppointmentFilter) ([]dto.AppointmentResponse, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*dto.AppointmentResponse, error)
}

type appointmentService struct {
	repo  repository.AppointmentRepository
	store *core.CatalogStore
}

func NewAppointmentService(repo repository.AppointmentRepository, store *core.CatalogStore) AppointmentService {
	return &appointmentService{repo: repo, store: store}
}

func (s *appointmentService) Create(ctx context.Context, req dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	svc, ok := s.store.Service(req.ServiceID)
	if !ok {
		return nil, errors.New("servicio no encontrado")
	}
	date, err := time.Parse(time.RFC3339, req.Date)
	if err != nil {
		return nil, errors.New("fecha invalida, use RFC 3339")
	}
	if req.Deposit.GreaterThan(svc.Price) {
		return nil, errors.New("la seña no puede superar el precio del servicio")
	}

	var staffID *uuid.UUID
	if req.StaffID != nil {
		id, err := uuid.Parse(*req.StaffID)
		if err != nil {
			return nil, errors.New("staff_id invalido")
		}
		staffID = &id
	}

	appt := &model.Appointment{
		ID:         uuid.New(),
		ClientName: req.ClientName,
		ServiceID:  svc.ID,
		StaffID:    staffID,
		Date:       date.UTC(),
		Deposit:    req.Deposit,
		Total:      svc.Price,
		Status:     model.AppointmentPending,
		Notes:      req.Notes,
	}
	if err := s.repo.Create(ctx, appt); err != nil {
		return nil, err
	}
	return s.toResponse(appt), nil
}

func (s *appointmentService) List(ctx context.Context, filter dto.AppointmentFilter) ([]dto.AppointmentResponse, error) {
	var day *time.Time
	if filter.Date != "" {
		parsed, err := time.Parse("2006-01-02", filter.Date)
		if err != nil {
			return nil, errors.New("fecha invalida, use YYYY-MM-DD")
		}
		day = &parsed
	}
	appts, err := s.repo.List(ctx, day, filter.Status)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.AppointmentResponse, len(appts))
	for i := range appts {
		resp[i] = *s.toResponse(&appts[i])
	}
	return resp, nil
}

func (s *appointmentService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*dto.AppointmentResponse, error) {
	appt, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("turno no encontrado")
	}
	if appt.Status == model.AppointmentCompleted {
		return nil, errors.New("un turno completado no puede cambiar de estado")
	}
	appt.Status = status
	if err := s.repo.Update(ctx, appt); err != nil {
		return nil, err
	}
	return s.toResponse(appt), nil
}

func (s *appointmentService) toResponse(a *model.Appointment) *dto.AppointmentResponse {
	serviceName := ""
	if svc, ok := s.store.Service(a.ServiceID); ok {
		serviceName = svc.Name
	}
	var staffID *string
	if a.StaffID != nil {
		v := a.StaffID.String()
		staffID = &v
	}
	return &dto.AppointmentResponse{
		ID:          a.ID.String(),
		ClientName:  a.ClientName,
		ServiceID:   a.ServiceID,
		ServiceName: serviceName,
		StaffID:     staffID,
		Date:        a.Date.UTC().Format(time.RFC3339),
		Deposit:     a.Deposit,
		Total:       a.Total,
		Status:      a.Status,
		Notes:       a.Notes,
	}
}
