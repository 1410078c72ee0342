package dto

import "github.com/shopspring/decimal"

// ─── Filter / List ──────────────────────────────────────────────────────────

// ProductoFilter is bound from the query string of GET /v1/productos.
type ProductoFilter struct {
	SKU         string `form:"sku"`
	Nombre      string `form:"nombre"`
	Categoria   string `form:"categoria"`
	ProveedorID string `form:"proveedor_id"`
	// Activo: "" (solo activos, default) | "false" (inactivos) | "all"
	Activo string `form:"activo"`
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type ProductoListResponse struct {
	Data  []ProductoResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearProductoRequest struct {
	SKU          string          `json:"sku"           validate:"required,min=2"`
	Nombre       string          `json:"nombre"        validate:"required,min=2"`
	Descripcion  *string         `json:"descripcion"`
	Categoria    *string         `json:"categoria"`
	Unidad       string          `json:"unidad"`
	PrecioCompra decimal.Decimal `json:"precio_compra" validate:"min=0"`
	PrecioVenta  decimal.Decimal `json:"precio_venta"  validate:"min=0"`
	Stock        int             `json:"stock"         validate:"min=0"`
	StockMinimo  int             `json:"stock_minimo"  validate:"min=0"`
	EsServicio   bool            `json:"es_servicio"`
	ProveedorID  *string         `json:"proveedor_id"  validate:"omitempty,uuid"`
}

type ActualizarProductoRequest struct {
	Nombre       *string          `json:"nombre"        validate:"omitempty,min=2"`
	Descripcion  *string          `json:"descripcion"`
	Categoria    *string          `json:"categoria"`
	Unidad       *string          `json:"unidad"`
	PrecioCompra *decimal.Decimal `json:"precio_compra" validate:"omitempty,min=0"`
	PrecioVenta  *decimal.Decimal `json:"precio_venta"  validate:"omitempty,min=0"`
	StockMinimo  *int             `json:"stock_minimo"  validate:"omitempty,min=0"`
	ProveedorID  *string          `json:"proveedor_id"  validate:"omitempty,uuid"`
}

// AjustarStockRequest adjusts stock by a signed delta. A delta that would
// leave the product negative is rejected whole.
type AjustarStockRequest struct {
	Delta  int    `json:"delta"  validate:"required"`
	Motivo string `json:"motivo" validate:"required,min=3"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductoResponse struct {
	ID           string          `json:"id"`
	SKU          string          `json:"sku"`
	Nombre       string          `json:"nombre"`
	Descripcion  *string         `json:"descripcion,omitempty"`
	Categoria    *string         `json:"categoria,omitempty"`
	Unidad       string          `json:"unidad"`
	PrecioCompra decimal.Decimal `json:"precio_compra"`
	PrecioVenta  decimal.Decimal `json:"precio_venta"`
	Stock        int             `json:"stock"`
	StockMinimo  int             `json:"stock_minimo"`
	EsServicio   bool            `json:"es_servicio"`
	ProveedorID  *string         `json:"proveedor_id,omitempty"`
	Activo       bool            `json:"activo"`
	BajoStock    bool            `json:"bajo_stock"`
}

// ConsultaPreciosResponse is served by the public price-check endpoint.
type ConsultaPreciosResponse struct {
	Nombre          string          `json:"nombre"`
	PrecioVenta     decimal.Decimal `json:"precio_venta"`
	StockDisponible int             `json:"stock_disponible"`
	Categoria       *string         `json:"categoria,omitempty"`
}

// AlertaStockResponse flags products at or below their reorder threshold.
type AlertaStockResponse struct {
	ProductoID  string `json:"producto_id"`
	SKU         string `json:"sku"`
	Nombre      string `json:"nombre"`
	Stock       int    `json:"stock"`
	StockMinimo int    `json:"stock_minimo"`
}

// MovimientoStockResponse is one entry of the stock audit trail.
type MovimientoStockResponse struct {
	ID            string `json:"id"`
	ProductoID    string `json:"producto_id"`
	Tipo          string `json:"tipo"`
	Cantidad      int    `json:"cantidad"`
	StockAnterior int    `json:"stock_anterior"`
	StockNuevo    int    `json:"stock_nuevo"`
	Motivo        string `json:"motivo"`
	CreatedAt     string `json:"created_at"`
}
