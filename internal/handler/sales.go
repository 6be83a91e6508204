package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/matiiroda/mg/internal/apierror"
	"github.com/matiiroda/mg/internal/dto"
	"github.com/matiiroda/mg/internal/middleware"
	"github.com/matiiroda/mg/internal/service"
)

type SalesHandler struct{ svc service.SaleService }

func NewSalesHandler(svc service.SaleService) *SalesHandler { return &SalesHandler{svc: svc} }

// GetCart godoc
// @Summary      Ver carrito actual
// @Tags         carrito
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.CartResponse
// @Router       /v1/cart [get]
func (h *SalesHandler) GetCart(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Cart(c.Request.Context()))
}

// AddCartItem godoc
// @Summary      Agregar item al carrito
// @Description  Agrega una unidad de un producto o servicio. Los productos se validan contra stock menos lo ya reservado en el carrito.
// @Tags         carrito
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.AddCartItemRequest true "Referencia"
// @Success      200  {object} dto.CartResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/cart/items [post]
func (h *SalesHandler) AddCartItem(c *gin.Context) {
	var req dto.AddCartItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AddItem(c.Request.Context(), req)
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RemoveCartLine godoc
// @Summary      Quitar línea del carrito
// @Tags         carrito
// @Produce      json
// @Security     BearerAuth
// @Param        index path int true "Índice de la línea"
// @Success      200  {object} dto.CartResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/cart/items/{index} [delete]
func (h *SalesHandler) RemoveCartLine(c *gin.Context) {
	idx, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Indice invalido"))
		return
	}
	resp, err := h.svc.RemoveLine(c.Request.Context(), idx)
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CommitSale godoc
// @Summary      Cobrar el carrito
// @Description  Finaliza el carrito como una venta: descuenta stock, acumula en la caja, registra en el historial y despacha el push asíncrono.
// @Tags         ventas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CommitSaleRequest true "Datos del cobro"
// @Success      201  {object} dto.SaleResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/sales [post]
func (h *SalesHandler) CommitSale(c *gin.Context) {
	var req dto.CommitSaleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	resp, err := h.svc.Commit(c.Request.Context(), claims.UserID, req)
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListSales godoc
// @Summary      Listar ventas
// @Tags         ventas
// @Produce      json
// @Security     BearerAuth
// @Param        from query string false "Fecha desde YYYY-MM-DD (default: hoy)"
// @Param        to   query string false "Fecha hasta YYYY-MM-DD"
// @Success      200 {object} dto.SaleListResponse
// @Router       /v1/sales [get]
func (h *SalesHandler) ListSales(c *gin.Context) {
	var filter dto.SaleFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.ListSales(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Ticket godoc
// @Summary      Descargar ticket PDF
// @Tags         ventas
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id path string true "UUID de la venta"
// @Success      200 {file} file
// @Failure      404 {object} apierror.APIError
// @Router       /v1/sales/{id}/ticket [get]
func (h *SalesHandler) Ticket(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	path, err := h.svc.TicketPDF(c.Request.Context(), id)
	if err != nil {
		respondEngineError(c, err)
		return
	}
	c.FileAttachment(path, "ticket.pdf")
}
