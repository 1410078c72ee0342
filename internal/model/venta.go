package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Venta sale statuses.
const (
	VentaPagada    = "pagada"
	VentaPendiente = "pendiente"
	VentaAnulada   = "anulada"
)

// Métodos de pago aceptados en el punto de venta.
const (
	PagoEfectivo      = "efectivo"
	PagoTarjeta       = "tarjeta"
	PagoYape          = "yape/plin"
	PagoTransferencia = "transferencia"
	PagoOtro          = "otro"
)

// Venta is created atomically at checkout and immutable afterwards except
// for the estado transition to "anulada". Totals are stored, never
// recomputed on read.
type Venta struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	NumeroTicket int        `gorm:"uniqueIndex;not null"`
	ClienteID    *uuid.UUID `gorm:"type:uuid;index"`
	// ClienteNombre is a read-only projection captured at write time;
	// the Cliente record stays authoritative.
	ClienteNombre  *string
	UsuarioID      uuid.UUID       `gorm:"type:uuid;not null"`
	SesionCajaID   *uuid.UUID      `gorm:"type:uuid;index"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Impuestos      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Descuento      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Total          decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	MetodoPago     string          `gorm:"type:varchar(20);not null"`
	MontoRecibido  *decimal.Decimal `gorm:"type:decimal(12,2)"`
	Vuelto         *decimal.Decimal `gorm:"type:decimal(12,2)"`
	DetallePago    *string
	Estado         string `gorm:"type:varchar(20);not null;default:'pagada'"`
	Notas          *string
	CreatedAt      time.Time

	Items   []VentaItem `gorm:"foreignKey:VentaID"`
	Cliente *Cliente    `gorm:"foreignKey:ClienteID"`
	Usuario *Usuario    `gorm:"foreignKey:UsuarioID"`
}

func (Venta) TableName() string { return "ventas" }

// VentaItem snapshots the unit price at add-to-cart time; a later catalog
// price change never alters an in-flight or committed sale.
type VentaItem struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VentaID        uuid.UUID       `gorm:"type:uuid;index;not null"`
	ProductoID     uuid.UUID       `gorm:"type:uuid;not null"`
	ProductoNombre string          `gorm:"not null"`
	Cantidad       int             `gorm:"not null"`
	PrecioUnitario decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}

func (VentaItem) TableName() string { return "venta_items" }
