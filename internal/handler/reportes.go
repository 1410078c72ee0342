package handler

import (
	"net/http"
	"strconv"

	"tiendapos/internal/apierror"
	"tiendapos/internal/dto"
	"tiendapos/internal/service"

	"github.com/gin-gonic/gin"
)

type ReporteHandler struct{ svc service.ReporteService }

func NewReporteHandler(svc service.ReporteService) *ReporteHandler {
	return &ReporteHandler{svc: svc}
}

func bindReporteFilter(c *gin.Context) (dto.ReporteFilter, bool) {
	var filter dto.ReporteFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Filtros inválidos"))
		return filter, false
	}
	if filter.Desde == "" || filter.Hasta == "" {
		c.JSON(http.StatusBadRequest, apierror.New("desde y hasta son obligatorios (YYYY-MM-DD)"))
		return filter, false
	}
	return filter, true
}

// ResumenVentas godoc
// @Summary Resumen de ventas del período: totales, ticket promedio, por método
// @Tags reportes
// @Produce json
// @Security BearerAuth
// @Param desde query string true "YYYY-MM-DD"
// @Param hasta query string true "YYYY-MM-DD"
// @Success 200 {object} dto.ResumenVentasResponse
// @Router /v1/reportes/ventas [get]
func (h *ReporteHandler) ResumenVentas(c *gin.Context) {
	filter, ok := bindReporteFilter(c)
	if !ok {
		return
	}
	resp, err := h.svc.ResumenVentas(c.Request.Context(), filter)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// TopProductos godoc
// @Summary Productos más vendidos del período
// @Tags reportes
// @Produce json
// @Security BearerAuth
// @Param desde query string true "YYYY-MM-DD"
// @Param hasta query string true "YYYY-MM-DD"
// @Success 200 {array} dto.TopProductoResponse
// @Router /v1/reportes/top-productos [get]
func (h *ReporteHandler) TopProductos(c *gin.Context) {
	filter, ok := bindReporteFilter(c)
	if !ok {
		return
	}
	resp, err := h.svc.TopProductos(c.Request.Context(), filter)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// MargenGanancia godoc
// @Summary Margen bruto estimado del período
// @Tags reportes
// @Produce json
// @Security BearerAuth
// @Param desde query string true "YYYY-MM-DD"
// @Param hasta query string true "YYYY-MM-DD"
// @Success 200 {object} dto.MargenGananciaResponse
// @Router /v1/reportes/margen [get]
func (h *ReporteHandler) MargenGanancia(c *gin.Context) {
	filter, ok := bindReporteFilter(c)
	if !ok {
		return
	}
	resp, err := h.svc.MargenGanancia(c.Request.Context(), filter)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ResumenCajas godoc
// @Summary Sesiones de caja recientes con su arqueo
// @Tags reportes
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.ResumenCajaResponse
// @Router /v1/reportes/cajas [get]
func (h *ReporteHandler) ResumenCajas(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	resp, err := h.svc.ResumenCajas(c.Request.Context(), c.Query("terminal"), limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
