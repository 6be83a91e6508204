package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/matiiroda/mg/internal/dto"
	"github.com/matiiroda/mg/internal/service"
)

type CatalogHandler struct{ svc service.CatalogService }

func NewCatalogHandler(svc service.CatalogService) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

// ListProducts godoc
// @Summary      Listar productos
// @Description  Retorna el catálogo de productos. Puede disparar un pull automático de la planilla.
// @Tags         catalogo
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.ProductResponse
// @Router       /v1/products [get]
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	resp, _ := h.svc.ListProducts(c.Request.Context())
	c.JSON(http.StatusOK, resp)
}

// UpsertProduct godoc
// @Summary      Crear o actualizar producto
// @Tags         catalogo
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.UpsertProductRequest true "Producto"
// @Success      200  {object} dto.ProductResponse
// @Failure      422  {object} apierror.APIError
// @Router       /v1/products [put]
func (h *CatalogHandler) UpsertProduct(c *gin.Context) {
	var req dto.UpsertProductRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpsertProduct(c.Request.Context(), req)
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DeleteProduct godoc
// @Summary      Eliminar producto
// @Tags         catalogo
// @Security     BearerAuth
// @Param        id path string true "ID del producto"
// @Success      204
// @Failure      404 {object} apierror.APIError
// @Router       /v1/products/{id} [delete]
func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	if err := h.svc.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		respondEngineError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// LowStockAlerts godoc
// @Summary      Productos con stock bajo
// @Description  Productos cuyo stock está en o debajo de su mínimo.
// @Tags         catalogo
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.ProductResponse
// @Router       /v1/products/alerts [get]
func (h *CatalogHandler) LowStockAlerts(c *gin.Context) {
	resp, _ := h.svc.LowStockAlerts(c.Request.Context())
	c.JSON(http.StatusOK, resp)
}

// ListServices godoc
// @Summary      Listar servicios
// @Tags         catalogo
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.ServiceResponse
// @Router       /v1/services [get]
func (h *CatalogHandler) ListServices(c *gin.Context) {
	resp, _ := h.svc.ListServices(c.Request.Context())
	c.JSON(http.StatusOK, resp)
}

// UpsertService godoc
// @Summary      Crear o actualizar servicio
// @Tags         catalogo
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.UpsertServiceRequest true "Servicio"
// @Success      200  {object} dto.ServiceResponse
// @Failure      422  {object} apierror.APIError
// @Router       /v1/services [put]
func (h *CatalogHandler) UpsertService(c *gin.Context) {
	var req dto.UpsertServiceRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.UpsertService(c.Request.Context(), req)
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DeleteService godoc
// @Summary      Eliminar servicio
// @Tags         catalogo
// @Security     BearerAuth
// @Param        id path string true "ID del servicio"
// @Success      204
// @Failure      404 {object} apierror.APIError
// @Router       /v1/services/{id} [delete]
func (h *CatalogHandler) DeleteService(c *gin.Context) {
	if err := h.svc.DeleteService(c.Request.Context(), c.Param("id")); err != nil {
		respondEngineError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
