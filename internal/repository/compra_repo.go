package repository

import (
	"context"
	"fmt"
	"time"

	"tiendapos/internal/dto"
	"tiendapos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CompraRepository interface {
	CreateOrden(ctx context.Context, o *model.OrdenCompra) error
	FindOrdenByID(ctx context.Context, id uuid.UUID) (*model.OrdenCompra, error)
	UpdateOrden(ctx context.Context, tx *gorm.DB, o *model.OrdenCompra) error
	UpdateItemTx(tx *gorm.DB, item *model.OrdenCompraItem) error
	ListOrdenes(ctx context.Context, filter dto.OrdenCompraFilter) ([]model.OrdenCompra, int64, error)
	NextNumeroOrden(ctx context.Context) (string, error)
	CreatePago(ctx context.Context, tx *gorm.DB, p *model.PagoProveedor) error
	ListPagos(ctx context.Context, ordenID uuid.UUID) ([]model.PagoProveedor, error)
	DB() *gorm.DB
}

type compraRepo struct{ db *gorm.DB }

func NewCompraRepository(db *gorm.DB) CompraRepository { return &compraRepo{db: db} }

func (r *compraRepo) DB() *gorm.DB { return r.db }

func (r *compraRepo) CreateOrden(ctx context.Context, o *model.OrdenCompra) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *compraRepo) FindOrdenByID(ctx context.Context, id uuid.UUID) (*model.OrdenCompra, error) {
	var o model.OrdenCompra
	err := r.db.WithContext(ctx).Preload("Items").First(&o, id).Error
	return &o, err
}

func (r *compraRepo) UpdateOrden(ctx context.Context, tx *gorm.DB, o *model.OrdenCompra) error {
	db := r.db
	if tx != nil {
		db = tx
	}
	return db.WithContext(ctx).Omit("Items").Save(o).Error
}

func (r *compraRepo) UpdateItemTx(tx *gorm.DB, item *model.OrdenCompraItem) error {
	return tx.Save(item).Error
}

func (r *compraRepo) ListOrdenes(ctx context.Context, filter dto.OrdenCompraFilter) ([]model.OrdenCompra, int64, error) {
	var ordenes []model.OrdenCompra
	var total int64

	q := r.db.WithContext(ctx).Model(&model.OrdenCompra{})

	if filter.ProveedorID != "" {
		q = q.Where("proveedor_id = ?", filter.ProveedorID)
	}
	if filter.Estado != "" {
		q = q.Where("estado = ?", filter.Estado)
	}
	if filter.EstadoPago != "" {
		q = q.Where("estado_pago = ?", filter.EstadoPago)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Items").
		Order("fecha_orden DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&ordenes).Error

	return ordenes, total, err
}

// NextNumeroOrden produces "OC-YYYY-NNN" where NNN restarts every year.
// The per-year counter rides on a sequence-backed count of existing orders.
func (r *compraRepo) NextNumeroOrden(ctx context.Context) (string, error) {
	year := time.Now().Year()
	var count int64
	err := r.db.WithContext(ctx).Model(&model.OrdenCompra{}).
		Where("numero_orden LIKE ?", fmt.Sprintf("OC-%d-%%", year)).
		Count(&count).Error
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("OC-%d-%03d", year, count+1), nil
}

func (r *compraRepo) CreatePago(ctx context.Context, tx *gorm.DB, p *model.PagoProveedor) error {
	db := r.db
	if tx != nil {
		db = tx
	}
	return db.WithContext(ctx).Create(p).Error
}

func (r *compraRepo) ListPagos(ctx context.Context, ordenID uuid.UUID) ([]model.PagoProveedor, error) {
	var pagos []model.PagoProveedor
	err := r.db.WithContext(ctx).Where("orden_compra_id = ?", ordenID).Order("created_at ASC").Find(&pagos).Error
	return pagos, err
}
