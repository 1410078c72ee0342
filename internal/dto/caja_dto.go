package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type AbrirCajaRequest struct {
	Terminal     string          `json:"terminal"      validate:"required,min=1"`
	MontoInicial decimal.Decimal `json:"monto_inicial" validate:"required,gt=0"`
}

type TransaccionCajaRequest struct {
	SesionCajaID string          `json:"sesion_caja_id" validate:"required,uuid"`
	Tipo         string          `json:"tipo"           validate:"required,oneof=ingreso_manual egreso_manual"`
	Monto        decimal.Decimal `json:"monto"          validate:"required,gt=0"`
	Descripcion  string          `json:"descripcion"    validate:"required,min=3"`
}

type CerrarCajaRequest struct {
	SesionCajaID string          `json:"sesion_caja_id" validate:"required,uuid"`
	MontoContado decimal.Decimal `json:"monto_contado"  validate:"min=0"`
	Notas        *string         `json:"notas"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type MovimientoCajaResponse struct {
	ID          string          `json:"id"`
	Tipo        string          `json:"tipo"`
	Monto       decimal.Decimal `json:"monto"`
	Descripcion string          `json:"descripcion"`
	CreatedAt   string          `json:"created_at"`
}

type SesionCajaResponse struct {
	ID               string          `json:"id"`
	Terminal         string          `json:"terminal"`
	UsuarioID        string          `json:"usuario_id"`
	MontoInicial     decimal.Decimal `json:"monto_inicial"`
	VentasEfectivo   decimal.Decimal `json:"ventas_efectivo"`
	IngresosManuales decimal.Decimal `json:"ingresos_manuales"`
	EgresosManuales  decimal.Decimal `json:"egresos_manuales"`
	// MontoEsperado/Diferencia only populated once the session closes;
	// the count stays blind while the till is open.
	MontoEsperado *decimal.Decimal         `json:"monto_esperado,omitempty"`
	MontoContado  *decimal.Decimal         `json:"monto_contado,omitempty"`
	Diferencia    *decimal.Decimal         `json:"diferencia,omitempty"`
	Estado        string                   `json:"estado"`
	Notas         *string                  `json:"notas,omitempty"`
	OpenedAt      string                   `json:"opened_at"`
	ClosedAt      *string                  `json:"closed_at,omitempty"`
	Movimientos   []MovimientoCajaResponse `json:"movimientos,omitempty"`
}

type CierreCajaResponse struct {
	SesionCajaID  string          `json:"sesion_caja_id"`
	MontoEsperado decimal.Decimal `json:"monto_esperado"`
	MontoContado  decimal.Decimal `json:"monto_contado"`
	Diferencia    decimal.Decimal `json:"diferencia"`
	Estado        string          `json:"estado"`
}
