package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/matiiroda/mg/internal/apierror"
	"github.com/matiiroda/mg/internal/dto"
	"github.com/matiiroda/mg/internal/service"
)

type SettingsHandler struct{ svc service.SettingsService }

func NewSettingsHandler(svc service.SettingsService) *SettingsHandler {
	return &SettingsHandler{svc: svc}
}

// GetTicketConfig godoc
// @Summary      Ver configuración del ticket
// @Tags         configuracion
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} model.TicketConfig
// @Router       /v1/ticket-config [get]
func (h *SettingsHandler) GetTicketConfig(c *gin.Context) {
	cfg, err := h.svc.GetTicketConfig(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al leer configuracion"))
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// UpdateTicketConfig godoc
// @Summary      Actualizar configuración del ticket
// @Tags         configuracion
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.TicketConfigRequest true "Encabezado y pie del ticket"
// @Success      200  {object} model.TicketConfig
// @Failure      422  {object} apierror.ValidationError
// @Router       /v1/ticket-config [put]
func (h *SettingsHandler) UpdateTicketConfig(c *gin.Context) {
	var req dto.TicketConfigRequest
	if !bindAndValidate(c, &req) {
		return
	}
	cfg, err := h.svc.UpdateTicketConfig(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, cfg)
}
