package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/matiiroda/mg/internal/apierror"
	"github.com/matiiroda/mg/internal/dto"
	"github.com/matiiroda/mg/internal/infra"
	"github.com/matiiroda/mg/internal/service"
)

type SyncHandler struct{ svc service.SyncService }

func NewSyncHandler(svc service.SyncService) *SyncHandler { return &SyncHandler{svc: svc} }

// Pull godoc
// @Summary      Sincronizar catálogo desde la planilla
// @Description  Descarga la planilla CSV y reemplaza el catálogo de productos completo. Un pull fallido no toca el catálogo en memoria.
// @Tags         sync
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.PullResultResponse
// @Failure      502 {object} apierror.APIError
// @Router       /v1/sync/pull [post]
func (h *SyncHandler) Pull(c *gin.Context) {
	resp, err := h.svc.Pull(c.Request.Context())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSheetNotConfigured):
			c.JSON(http.StatusConflict, apierror.New(err.Error()))
		case errors.Is(err, infra.ErrCircuitOpen):
			c.JSON(http.StatusServiceUnavailable, apierror.New("La planilla no responde, reintente en unos minutos"))
		case errors.Is(err, service.ErrSheetEmpty):
			c.JSON(http.StatusUnprocessableEntity, apierror.New(err.Error()))
		default:
			c.JSON(http.StatusBadGateway, apierror.New(err.Error()))
		}
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetConfig godoc
// @Summary      Ver configuración de sincronización
// @Tags         sync
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.SyncConfigResponse
// @Router       /v1/sync/config [get]
func (h *SyncHandler) GetConfig(c *gin.Context) {
	resp, err := h.svc.GetConfig(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al leer configuracion"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateConfig godoc
// @Summary      Actualizar configuración de sincronización
// @Tags         sync
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.SyncConfigRequest true "Configuración"
// @Success      200  {object} dto.SyncConfigResponse
// @Failure      422  {object} apierror.ValidationError
// @Router       /v1/sync/config [put]
func (h *SyncHandler) UpdateConfig(c *gin.Context) {
	var req dto.SyncConfigRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpdateConfig(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}
