package dto

import "github.com/shopspring/decimal"

// ─── Filter / List ──────────────────────────────────────────────────────────

// VentaFilter is bound from the query string of GET /v1/ventas.
type VentaFilter struct {
	Desde  string `form:"desde"` // YYYY-MM-DD
	Hasta  string `form:"hasta"` // YYYY-MM-DD
	Estado string `form:"estado,default=pagada"` // pagada | pendiente | anulada | all
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type VentaListResponse struct {
	Data  []VentaResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

type ItemVentaRequest struct {
	ProductoID string `json:"producto_id" validate:"required,uuid"`
	Cantidad   int    `json:"cantidad"    validate:"required,min=1"`
}

type RegistrarVentaRequest struct {
	Items      []ItemVentaRequest `json:"items"       validate:"required,min=1,dive"`
	MetodoPago string             `json:"metodo_pago" validate:"required,oneof=efectivo tarjeta yape/plin transferencia otro"`
	// MontoRecibido is required for efectivo; vuelto = recibido - total.
	MontoRecibido *decimal.Decimal `json:"monto_recibido"`
	Descuento     decimal.Decimal  `json:"descuento"      validate:"min=0"`
	ClienteID     *string          `json:"cliente_id"     validate:"omitempty,uuid"`
	SesionCajaID  *string          `json:"sesion_caja_id" validate:"omitempty,uuid"`
	DetallePago   *string          `json:"detalle_pago"`
	// ClienteEmail: when present, the worker mails the ticket.
	ClienteEmail *string `json:"cliente_email" validate:"omitempty,email"`
	Notas        *string `json:"notas"`
}

type AnularVentaRequest struct {
	Motivo string `json:"motivo" validate:"required,min=5"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ItemVentaResponse struct {
	ProductoID     string          `json:"producto_id"`
	Producto       string          `json:"producto"`
	Cantidad       int             `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

type VentaResponse struct {
	ID            string              `json:"id"`
	NumeroTicket  int                 `json:"numero_ticket"`
	Items         []ItemVentaResponse `json:"items"`
	Subtotal      decimal.Decimal     `json:"subtotal"`
	Impuestos     decimal.Decimal     `json:"impuestos"`
	Descuento     decimal.Decimal     `json:"descuento"`
	Total         decimal.Decimal     `json:"total"`
	MetodoPago    string              `json:"metodo_pago"`
	MontoRecibido *decimal.Decimal    `json:"monto_recibido,omitempty"`
	Vuelto        *decimal.Decimal    `json:"vuelto,omitempty"`
	ClienteID     *string             `json:"cliente_id,omitempty"`
	ClienteNombre *string             `json:"cliente_nombre,omitempty"`
	SesionCajaID  *string             `json:"sesion_caja_id,omitempty"`
	Estado        string              `json:"estado"`
	CreatedAt     string              `json:"created_at"`
}

// CotizarVentaRequest asks for a price preview without committing anything.
type CotizarVentaRequest struct {
	Items     []ItemVentaRequest `json:"items"     validate:"required,min=1,dive"`
	Descuento decimal.Decimal    `json:"descuento" validate:"min=0"`
}

// CotizacionResponse is the pure calculator output: no stock is touched.
type CotizacionResponse struct {
	Items     []ItemVentaResponse `json:"items"`
	Subtotal  decimal.Decimal     `json:"subtotal"`
	Impuestos decimal.Decimal     `json:"impuestos"`
	Descuento decimal.Decimal     `json:"descuento"`
	Total     decimal.Decimal     `json:"total"`
}
