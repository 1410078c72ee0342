package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SesionCaja estados. Cerrada is terminal; reopening a till means a new
// session instance.
const (
	SesionAbierta = "abierta"
	SesionCerrada = "cerrada"
)

// SesionCaja tracks a terminal's open-to-close cash-handling period.
// Invariant: at most one sesión "abierta" per Terminal at any instant;
// enforced in CajaService and backed by a partial unique index
// (terminal, estado) WHERE estado = 'abierta'.
type SesionCaja struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Terminal     string          `gorm:"not null;index"`
	UsuarioID    uuid.UUID       `gorm:"type:uuid;not null"`
	MontoInicial decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// Running totals, updated as transactions post. On close:
	// esperado = inicial + ventas_efectivo + ingresos - egresos.
	VentasEfectivo   decimal.Decimal  `gorm:"type:decimal(12,2);not null;default:0"`
	IngresosManuales decimal.Decimal  `gorm:"type:decimal(12,2);not null;default:0"`
	EgresosManuales  decimal.Decimal  `gorm:"type:decimal(12,2);not null;default:0"`
	MontoEsperado    *decimal.Decimal `gorm:"type:decimal(12,2)"`
	MontoContado     *decimal.Decimal `gorm:"type:decimal(12,2)"`
	// Diferencia = contado - esperado. Informational: a mismatch never
	// blocks the close, reconciliation is a human step.
	Diferencia *decimal.Decimal `gorm:"type:decimal(12,2)"`
	Estado     string           `gorm:"type:varchar(20);not null;default:'abierta'"`
	Notas      *string
	OpenedAt   time.Time
	ClosedAt   *time.Time

	Movimientos []MovimientoCaja `gorm:"foreignKey:SesionCajaID"`
}

func (SesionCaja) TableName() string { return "sesiones_caja" }

// Tipos de movimiento de caja. Anulaciones get their own tipo so summing
// venta_efectivo minus anulacion_venta reconciles with VentasEfectivo.
const (
	MovFondoInicial   = "fondo_inicial"
	MovIngresoManual  = "ingreso_manual"
	MovEgresoManual   = "egreso_manual"
	MovVentaEfectivo  = "venta_efectivo"
	MovAnulacionVenta = "anulacion_venta"
)

// MovimientoCaja is an immutable entry in the session's append-only ledger.
// Monto is always stored positive; direction is implied by Tipo.
type MovimientoCaja struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SesionCajaID uuid.UUID       `gorm:"type:uuid;index;not null"`
	Tipo         string          `gorm:"type:varchar(20);not null"`
	Monto        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Descripcion  string          `gorm:"not null"`
	UsuarioID    uuid.UUID       `gorm:"type:uuid;not null"`
	// ReferenciaID links to the originating Venta for venta_efectivo and
	// anulacion_venta entries.
	ReferenciaID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt    time.Time
}

func (MovimientoCaja) TableName() string { return "movimientos_caja" }
