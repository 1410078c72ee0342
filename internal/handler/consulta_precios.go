package handler

import (
	"net/http"

	"tiendapos/internal/apierror"
	"tiendapos/internal/dto"
	"tiendapos/internal/infra"
	"tiendapos/internal/repository"

	"github.com/gin-gonic/gin"
)

// ConsultaPreciosHandler serves the public price check endpoint.
// No authentication required; read-only.
type ConsultaPreciosHandler struct {
	repo  repository.ProductoRepository
	cache *infra.PrecioCache
}

func NewConsultaPreciosHandler(repo repository.ProductoRepository, cache *infra.PrecioCache) *ConsultaPreciosHandler {
	return &ConsultaPreciosHandler{repo: repo, cache: cache}
}

// GetPrecioPorSKU godoc
// @Summary Consulta de precio por SKU (sin autenticacion)
// @Tags precio
// @Produce json
// @Param sku path string true "SKU del producto"
// @Success 200 {object} dto.ConsultaPreciosResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/precio/{sku} [get]
func (h *ConsultaPreciosHandler) GetPrecioPorSKU(c *gin.Context) {
	sku := c.Param("sku")
	ctx := c.Request.Context()

	var resp dto.ConsultaPreciosResponse
	if h.cache.Get(ctx, sku, &resp) {
		c.JSON(http.StatusOK, resp)
		return
	}

	producto, err := h.repo.FindBySKU(ctx, sku)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Producto no encontrado"))
		return
	}

	resp = dto.ConsultaPreciosResponse{
		Nombre:          producto.Nombre,
		PrecioVenta:     producto.PrecioVenta,
		StockDisponible: producto.Stock,
		Categoria:       producto.Categoria,
	}
	h.cache.Set(ctx, sku, resp)

	c.JSON(http.StatusOK, resp)
}
