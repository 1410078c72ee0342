package model

import (
	"time"

	"github.com/google/uuid"
)

// Tipos de movimiento de stock.
const (
	MovStockVenta     = "venta"
	MovStockAjuste    = "ajuste_manual"
	MovStockRecepcion = "recepcion_compra"
	MovStockAnulacion = "restore_anulacion"
)

// MovimientoStock registra cada cambio de stock en un producto.
// Se crea automáticamente al vender, recibir una orden de compra, ajustar
// manualmente o anular una venta.
type MovimientoStock struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductoID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Tipo          string    `gorm:"not null"`
	Cantidad      int       `gorm:"not null"` // positive = entrada, negative = salida
	StockAnterior int       `gorm:"not null"`
	StockNuevo    int       `gorm:"not null"`
	Motivo        string
	// ReferenciaID points at the venta u orden de compra involved, if any.
	ReferenciaID *uuid.UUID `gorm:"type:uuid"`
	UsuarioID    uuid.UUID  `gorm:"type:uuid;not null"`
	CreatedAt    time.Time

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}

func (MovimientoStock) TableName() string { return "movimientos_stock" }
