package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/matiiroda/mg/internal/apierror"
	"github.com/matiiroda/mg/internal/dto"
	"github.com/matiiroda/mg/internal/service"
)

type AppointmentsHandler struct{ svc service.AppointmentService }

func NewAppointmentsHandler(svc service.AppointmentService) *AppointmentsHandler {
	return &AppointmentsHandler{svc: svc}
}

// Create godoc
// @Summary      Reservar turno
// @Description  Agenda un servicio para un cliente, con seña opcional.
// @Tags         turnos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CreateAppointmentRequest true "Turno"
// @Success      201  {object} dto.AppointmentResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/appointments [post]
func (h *AppointmentsHandler) Create(c *gin.Context) {
	var req dto.CreateAppointmentRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// List godoc
// @Summary      Listar turnos
// @Tags         turnos
// @Produce      json
// @Security     BearerAuth
// @Param        date   query string false "Día YYYY-MM-DD"
// @Param        status query string false "PENDING | CONFIRMED | CANCELLED | COMPLETED"
// @Success      200 {array} dto.AppointmentResponse
// @Router       /v1/appointments [get]
func (h *AppointmentsHandler) List(c *gin.Context) {
	var filter dto.AppointmentFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateStatus godoc
// @Summary      Cambiar estado de un turno
// @Tags         turnos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "UUID del turno"
// @Param        body body dto.UpdateAppointmentStatusRequest true "Nuevo estado"
// @Success      200  {object} dto.AppointmentResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/appointments/{id}/status [put]
func (h *AppointmentsHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.UpdateAppointmentStatusRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}
