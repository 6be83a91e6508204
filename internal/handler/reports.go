package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/matiiroda/mg/internal/apierror"
	"github.com/matiiroda/mg/internal/dto"
	"github.com/matiiroda/mg/internal/service"
)

type ReportsHandler struct{ svc service.ReportService }

func NewReportsHandler(svc service.ReportService) *ReportsHandler {
	return &ReportsHandler{svc: svc}
}

// Summary godoc
// @Summary      Resumen de ventas
// @Description  Totales por método de pago para el rango pedido (default: hoy).
// @Tags         reportes
// @Produce      json
// @Security     BearerAuth
// @Param        from query string false "Fecha desde YYYY-MM-DD"
// @Param        to   query string false "Fecha hasta YYYY-MM-DD"
// @Success      200 {object} dto.SummaryResponse
// @Router       /v1/reports/summary [get]
func (h *ReportsHandler) Summary(c *gin.Context) {
	var filter dto.ReportFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.Summary(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Export godoc
// @Summary      Exportar ventas
// @Description  Descarga las ventas del rango como CSV o XLSX, una fila por item.
// @Tags         reportes
// @Produce      application/octet-stream
// @Security     BearerAuth
// @Param        from   query string false "Fecha desde YYYY-MM-DD"
// @Param        to     query string false "Fecha hasta YYYY-MM-DD"
// @Param        format query string false "csv | xlsx (default csv)"
// @Success      200 {file} file
// @Router       /v1/reports/export [get]
func (h *ReportsHandler) Export(c *gin.Context) {
	var filter dto.ReportFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	if filter.Format == "" {
		filter.Format = "csv"
	}
	name, contentType, data, err := h.svc.Export(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, contentType, data)
}
