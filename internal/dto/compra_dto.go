package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type ItemOrdenCompraRequest struct {
	ProductoID     string          `json:"producto_id"     validate:"required,uuid"`
	CantidadPedida int             `json:"cantidad_pedida" validate:"required,gt=0"`
	CostoUnitario  decimal.Decimal `json:"costo_unitario"  validate:"min=0"`
}

type CrearOrdenCompraRequest struct {
	ProveedorID          string                   `json:"proveedor_id" validate:"required,uuid"`
	Items                []ItemOrdenCompraRequest `json:"items"        validate:"required,min=1,dive"`
	CostoEnvio           decimal.Decimal          `json:"costo_envio"  validate:"min=0"`
	FechaEntregaEstimada *string                  `json:"fecha_entrega_estimada"` // YYYY-MM-DD
	Notas                *string                  `json:"notas"`
}

// CambiarEstadoOrdenRequest only admits the manual transitions; recibido
// and parcial are reached through the reception endpoint.
type CambiarEstadoOrdenRequest struct {
	Estado string `json:"estado" validate:"required,oneof=ordenado cancelado"`
}

// ItemRecepcionRequest reports quantities received for one product in a
// partial delivery.
type ItemRecepcionRequest struct {
	ProductoID string `json:"producto_id" validate:"required,uuid"`
	Cantidad   int    `json:"cantidad"    validate:"required,gt=0"`
}

type RegistrarRecepcionRequest struct {
	Items []ItemRecepcionRequest `json:"items" validate:"required,min=1,dive"`
}

type RegistrarPagoRequest struct {
	Monto      decimal.Decimal `json:"monto"  validate:"required,gt=0"`
	Metodo     string          `json:"metodo" validate:"required,oneof='transferencia bancaria' efectivo cheque 'tarjeta de crédito (corporativa)' otro"`
	Referencia *string         `json:"referencia"`
	Notas      *string         `json:"notas"`
}

// ─── Filter / List ──────────────────────────────────────────────────────────

type OrdenCompraFilter struct {
	ProveedorID string `form:"proveedor_id"`
	Estado      string `form:"estado"`
	EstadoPago  string `form:"estado_pago"`
	Page        int    `form:"page,default=1"   validate:"min=1"`
	Limit       int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type OrdenCompraListResponse struct {
	Data  []OrdenCompraResponse `json:"data"`
	Total int64                 `json:"total"`
	Page  int                   `json:"page"`
	Limit int                   `json:"limit"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ItemOrdenCompraResponse struct {
	ProductoID       string          `json:"producto_id"`
	ProductoNombre   string          `json:"producto_nombre"`
	ProductoSKU      string          `json:"producto_sku"`
	CantidadPedida   int             `json:"cantidad_pedida"`
	CantidadRecibida int             `json:"cantidad_recibida"`
	CostoUnitario    decimal.Decimal `json:"costo_unitario"`
	Subtotal         decimal.Decimal `json:"subtotal"`
}

type OrdenCompraResponse struct {
	ID                   string                    `json:"id"`
	NumeroOrden          string                    `json:"numero_orden"`
	ProveedorID          string                    `json:"proveedor_id"`
	ProveedorNombre      string                    `json:"proveedor_nombre"`
	Items                []ItemOrdenCompraResponse `json:"items"`
	Subtotal             decimal.Decimal           `json:"subtotal"`
	Impuestos            decimal.Decimal           `json:"impuestos"`
	CostoEnvio           decimal.Decimal           `json:"costo_envio"`
	Total                decimal.Decimal           `json:"total"`
	Estado               string                    `json:"estado"`
	EstadoPago           string                    `json:"estado_pago"`
	MontoPagado          decimal.Decimal           `json:"monto_pagado"`
	Saldo                decimal.Decimal           `json:"saldo"`
	FechaOrden           string                    `json:"fecha_orden"`
	FechaEntregaEstimada *string                   `json:"fecha_entrega_estimada,omitempty"`
	FechaEntregaReal     *string                   `json:"fecha_entrega_real,omitempty"`
	Notas                *string                   `json:"notas,omitempty"`
}

type PagoProveedorResponse struct {
	ID            string          `json:"id"`
	OrdenCompraID string          `json:"orden_compra_id"`
	ProveedorID   string          `json:"proveedor_id"`
	Monto         decimal.Decimal `json:"monto"`
	Metodo        string          `json:"metodo"`
	Referencia    *string         `json:"referencia,omitempty"`
	Notas         *string         `json:"notas,omitempty"`
	CreatedAt     string          `json:"created_at"`
}
