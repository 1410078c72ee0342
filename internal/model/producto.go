package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Producto is the catalog entry. Stock is unit-denominated by Unidad and
// can never be negative: every mutation path (venta, recepción de compra,
// ajuste manual) goes through a guarded decrement/increment.
type Producto struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SKU         string    `gorm:"column:sku;uniqueIndex;not null"`
	Nombre      string    `gorm:"index;not null"`
	Descripcion *string
	Categoria   *string
	// Unidad: "unidad" | "kg" | "docena" | …
	Unidad       string          `gorm:"not null;default:'unidad'"`
	PrecioCompra decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PrecioVenta  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Stock        int             `gorm:"not null;default:0"`
	// StockMinimo is an advisory reorder threshold, never enforced on sales.
	StockMinimo int        `gorm:"not null;default:5"`
	EsServicio  bool       `gorm:"not null;default:false"`
	ProveedorID *uuid.UUID `gorm:"type:uuid;index"`
	Activo      bool       `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Proveedor *Proveedor `gorm:"foreignKey:ProveedorID"`
}

func (Producto) TableName() string { return "productos" }

// MargenUnitario is the per-unit gross margin at current prices.
func (p *Producto) MargenUnitario() decimal.Decimal {
	return p.PrecioVenta.Sub(p.PrecioCompra)
}

// BajoStock reports whether the product reached its reorder threshold.
func (p *Producto) BajoStock() bool {
	return !p.EsServicio && p.Stock <= p.StockMinimo
}
