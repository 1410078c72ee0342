package handler

import (
	"net/http"

	"tiendapos/internal/apierror"
	"tiendapos/internal/dto"
	"tiendapos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ProveedorHandler struct{ svc service.ProveedorService }

func NewProveedorHandler(svc service.ProveedorService) *ProveedorHandler {
	return &ProveedorHandler{svc: svc}
}

// Crear godoc
// @Summary Alta de proveedor
// @Tags proveedores
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearProveedorRequest true "Datos del proveedor"
// @Success 201 {object} dto.ProveedorResponse
// @Router /v1/proveedores [post]
func (h *ProveedorHandler) Crear(c *gin.Context) {
	var req dto.CrearProveedorRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// List godoc
// @Summary Lista proveedores activos, con búsqueda por razón social o RUC
// @Tags proveedores
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.ProveedorResponse
// @Router /v1/proveedores [get]
func (h *ProveedorHandler) List(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context(), c.Query("q"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary Obtiene un proveedor por ID
// @Tags proveedores
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de proveedor"
// @Success 200 {object} dto.ProveedorResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/proveedores/{id} [get]
func (h *ProveedorHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Actualizar godoc
// @Summary Actualiza los datos de un proveedor
// @Tags proveedores
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de proveedor"
// @Param body body dto.CrearProveedorRequest true "Datos actualizados"
// @Success 200 {object} dto.ProveedorResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/proveedores/{id} [put]
func (h *ProveedorHandler) Actualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.CrearProveedorRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Desactivar godoc
// @Summary Baja lógica de un proveedor
// @Tags proveedores
// @Security BearerAuth
// @Param id path string true "ID de proveedor"
// @Success 204
// @Router /v1/proveedores/{id} [delete]
func (h *ProveedorHandler) Desactivar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	if err := h.svc.Desactivar(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Productos godoc
// @Summary Productos activos abastecidos por el proveedor
// @Tags proveedores
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de proveedor"
// @Success 200 {array} dto.ProductoResponse
// @Router /v1/proveedores/{id}/productos [get]
func (h *ProveedorHandler) Productos(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.svc.Productos(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
