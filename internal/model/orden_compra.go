package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrdenCompra estados. Cancelado is reachable from any non-recibido state;
// recibido and cancelado are terminal.
const (
	OrdenPendiente = "pendiente"
	OrdenOrdenada  = "ordenado"
	OrdenParcial   = "parcialmente recibido"
	OrdenRecibida  = "recibido"
	OrdenCancelada = "cancelado"
)

// Estados de pago, derived from MontoPagado vs Total.
const (
	PagoPendiente = "pendiente"
	PagoParcial   = "parcialmente pagado"
	PagoCompleto  = "pagado"
)

// OrdenCompra is a commitment to buy from a supplier. Receiving it is the
// only status transition with a side effect: stock increments for every
// item, atomically.
type OrdenCompra struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	NumeroOrden string    `gorm:"uniqueIndex;not null"`
	ProveedorID uuid.UUID `gorm:"type:uuid;index;not null"`
	// ProveedorNombre is a display projection captured at creation;
	// the Proveedor record stays authoritative.
	ProveedorNombre      string `gorm:"not null"`
	FechaOrden           time.Time
	FechaEntregaEstimada *time.Time
	FechaEntregaReal     *time.Time
	Subtotal             decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Impuestos            decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CostoEnvio           decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Total                decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Estado               string          `gorm:"type:varchar(30);not null;default:'pendiente'"`
	EstadoPago           string          `gorm:"type:varchar(30);not null;default:'pendiente'"`
	// MontoPagado is the running sum of PagoProveedor rows; never exceeds
	// Total beyond a 0.001 currency-rounding tolerance.
	MontoPagado decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Notas       *string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Items     []OrdenCompraItem `gorm:"foreignKey:OrdenCompraID"`
	Proveedor *Proveedor        `gorm:"foreignKey:ProveedorID"`
}

func (OrdenCompra) TableName() string { return "ordenes_compra" }

// OrdenCompraItem freezes the unit cost at order time.
type OrdenCompraItem struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrdenCompraID  uuid.UUID `gorm:"type:uuid;index;not null"`
	ProductoID     uuid.UUID `gorm:"type:uuid;not null"`
	ProductoNombre string    `gorm:"not null"`
	ProductoSKU    string    `gorm:"column:producto_sku;not null"`
	CantidadPedida int       `gorm:"not null"`
	// CantidadRecibida accumulates across partial receipts; completion is
	// CantidadRecibida >= CantidadPedida for every item.
	CantidadRecibida int             `gorm:"not null;default:0"`
	CostoUnitario    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Subtotal         decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}

func (OrdenCompraItem) TableName() string { return "orden_compra_items" }

// PagoProveedor is an append-only partial payment against one orden.
type PagoProveedor struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrdenCompraID uuid.UUID       `gorm:"type:uuid;index;not null"`
	ProveedorID   uuid.UUID       `gorm:"type:uuid;index;not null"`
	Monto         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// Metodo: "transferencia bancaria" | "efectivo" | "cheque" |
	// "tarjeta de crédito (corporativa)" | "otro"
	Metodo     string `gorm:"type:varchar(40);not null"`
	Referencia *string
	Notas      *string
	UsuarioID  uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt  time.Time
}

func (PagoProveedor) TableName() string { return "pagos_proveedor" }
