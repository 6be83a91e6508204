package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/matiiroda/mg/internal/apierror"
	"github.com/matiiroda/mg/internal/dto"
	"github.com/matiiroda/mg/internal/middleware"
	"github.com/matiiroda/mg/internal/service"
)

type CajaHandler struct{ svc service.CajaService }

func NewCajaHandler(svc service.CajaService) *CajaHandler { return &CajaHandler{svc: svc} }

// Open godoc
// @Summary      Abrir caja
// @Description  Inicia una sesión de caja con el fondo inicial declarado.
// @Tags         caja
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.OpenCajaRequest true "Fondo inicial"
// @Success      201  {object} dto.CajaSessionResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/caja/open [post]
func (h *CajaHandler) Open(c *gin.Context) {
	var req dto.OpenCajaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.svc.Open(c.Request.Context(), claims.Username, req)
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Close godoc
// @Summary      Cerrar caja
// @Description  Cierra la sesión abierta. El resumen queda disponible hasta la próxima apertura.
// @Tags         caja
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.CajaSessionResponse
// @Failure      409 {object} apierror.APIError
// @Router       /v1/caja/close [post]
func (h *CajaHandler) Close(c *gin.Context) {
	resp, err := h.svc.Close(c.Request.Context())
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Current godoc
// @Summary      Estado de la caja
// @Tags         caja
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.CajaSessionResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/caja [get]
func (h *CajaHandler) Current(c *gin.Context) {
	resp, err := h.svc.Current(c.Request.Context())
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// History godoc
// @Summary      Historial de sesiones de caja
// @Tags         caja
// @Produce      json
// @Security     BearerAuth
// @Param        limit query int false "Cantidad máxima (default 30)"
// @Success      200 {object} dto.CajaHistoryResponse
// @Router       /v1/caja/history [get]
func (h *CajaHandler) History(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "30"))
	resp, err := h.svc.History(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar sesiones"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
