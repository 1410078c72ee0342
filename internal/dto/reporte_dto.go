package dto

import "github.com/shopspring/decimal"

// ReporteFilter bounds every aggregation to a date range (inclusive).
type ReporteFilter struct {
	Desde string `form:"desde" validate:"required"` // YYYY-MM-DD
	Hasta string `form:"hasta" validate:"required"` // YYYY-MM-DD
	Limit int    `form:"limit,default=10" validate:"min=1,max=100"`
}

type ResumenVentasResponse struct {
	Desde          string                     `json:"desde"`
	Hasta          string                     `json:"hasta"`
	CantidadVentas int                        `json:"cantidad_ventas"`
	Ingresos       decimal.Decimal            `json:"ingresos"`
	TicketPromedio decimal.Decimal            `json:"ticket_promedio"`
	PorMetodoPago  map[string]decimal.Decimal `json:"por_metodo_pago"`
}

type TopProductoResponse struct {
	ProductoID      string          `json:"producto_id"`
	Nombre          string          `json:"nombre"`
	SKU             string          `json:"sku"`
	CantidadVendida int             `json:"cantidad_vendida"`
	ValorVendido    decimal.Decimal `json:"valor_vendido"`
}

type MargenGananciaResponse struct {
	Ingresos         decimal.Decimal `json:"ingresos"`
	CostoVentas      decimal.Decimal `json:"costo_ventas"`
	GananciaBruta    decimal.Decimal `json:"ganancia_bruta"`
	MargenPorcentaje decimal.Decimal `json:"margen_porcentaje"`
	VentasAnalizadas int             `json:"ventas_analizadas"`
}

type ResumenCajaResponse struct {
	SesionCajaID  string           `json:"sesion_caja_id"`
	Terminal      string           `json:"terminal"`
	MontoInicial  decimal.Decimal  `json:"monto_inicial"`
	MontoEsperado *decimal.Decimal `json:"monto_esperado,omitempty"`
	MontoContado  *decimal.Decimal `json:"monto_contado,omitempty"`
	Diferencia    *decimal.Decimal `json:"diferencia,omitempty"`
	Estado        string           `json:"estado"`
	OpenedAt      string           `json:"opened_at"`
	ClosedAt      *string          `json:"closed_at,omitempty"`
}
