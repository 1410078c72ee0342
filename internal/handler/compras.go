package handler

import (
	"net/http"

	"tiendapos/internal/apierror"
	"tiendapos/internal/dto"
	"tiendapos/internal/middleware"
	"tiendapos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CompraHandler struct{ svc service.CompraService }

func NewCompraHandler(svc service.CompraService) *CompraHandler { return &CompraHandler{svc: svc} }

// Crear godoc
// @Summary Crea una orden de compra en estado pendiente
// @Tags compras
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearOrdenCompraRequest true "Proveedor e items"
// @Success 201 {object} dto.OrdenCompraResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/compras [post]
func (h *CompraHandler) Crear(c *gin.Context) {
	var req dto.CrearOrdenCompraRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	usuarioID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.CrearOrden(c.Request.Context(), usuarioID, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// List godoc
// @Summary Lista órdenes de compra con filtros
// @Tags compras
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.OrdenCompraListResponse
// @Router /v1/compras [get]
func (h *CompraHandler) List(c *gin.Context) {
	var filter dto.OrdenCompraFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Filtros inválidos"))
		return
	}
	resp, err := h.svc.ListOrdenes(c.Request.Context(), filter)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary Obtiene una orden de compra por ID
// @Tags compras
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de orden"
// @Success 200 {object} dto.OrdenCompraResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/compras/{id} [get]
func (h *CompraHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.svc.GetOrden(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CambiarEstado godoc
// @Summary Transición manual de estado (ordenado / cancelado)
// @Tags compras
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de orden"
// @Param body body dto.CambiarEstadoOrdenRequest true "Nuevo estado"
// @Success 200 {object} dto.OrdenCompraResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/compras/{id}/estado [patch]
func (h *CompraHandler) CambiarEstado(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.CambiarEstadoOrdenRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CambiarEstado(c.Request.Context(), id, req.Estado)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Recepcion godoc
// @Summary Registra una recepción (parcial o total) e incrementa stock
// @Tags compras
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de orden"
// @Param body body dto.RegistrarRecepcionRequest true "Cantidades recibidas"
// @Success 200 {object} dto.OrdenCompraResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/compras/{id}/recepcion [post]
func (h *CompraHandler) Recepcion(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.RegistrarRecepcionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	usuarioID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.RegistrarRecepcion(c.Request.Context(), id, usuarioID, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RegistrarPago godoc
// @Summary Registra un pago parcial o total al proveedor
// @Tags compras
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de orden"
// @Param body body dto.RegistrarPagoRequest true "Monto y método"
// @Success 200 {object} dto.OrdenCompraResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/compras/{id}/pagos [post]
func (h *CompraHandler) RegistrarPago(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.RegistrarPagoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	usuarioID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.RegistrarPago(c.Request.Context(), id, usuarioID, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListPagos godoc
// @Summary Pagos registrados contra una orden
// @Tags compras
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de orden"
// @Success 200 {array} dto.PagoProveedorResponse
// @Router /v1/compras/{id}/pagos [get]
func (h *CompraHandler) ListPagos(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.svc.ListPagos(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
