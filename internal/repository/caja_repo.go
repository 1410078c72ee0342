package repository

import (
	"context"

	"tiendapos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CajaRepository interface {
	CreateSesionTx(ctx context.Context, tx *gorm.DB, s *model.SesionCaja) error
	FindSesionAbiertaPorTerminal(ctx context.Context, tx *gorm.DB, terminal string) (*model.SesionCaja, error)
	FindSesionByID(ctx context.Context, id uuid.UUID) (*model.SesionCaja, error)
	UpdateSesion(ctx context.Context, s *model.SesionCaja) error
	CreateMovimiento(ctx context.Context, tx *gorm.DB, m *model.MovimientoCaja) error
	ListMovimientos(ctx context.Context, sesionCajaID uuid.UUID) ([]model.MovimientoCaja, error)
	SumarVentaEfectivoTx(tx *gorm.DB, sesionCajaID uuid.UUID, monto decimal.Decimal) error
	SumarMovimientoManual(ctx context.Context, sesionCajaID uuid.UUID, tipo string, monto decimal.Decimal) error
	ListSesiones(ctx context.Context, terminal string, limit int) ([]model.SesionCaja, error)
	DB() *gorm.DB
}

type cajaRepo struct{ db *gorm.DB }

func NewCajaRepository(db *gorm.DB) CajaRepository { return &cajaRepo{db: db} }

func (r *cajaRepo) DB() *gorm.DB { return r.db }

func (r *cajaRepo) CreateSesionTx(ctx context.Context, tx *gorm.DB, s *model.SesionCaja) error {
	return tx.WithContext(ctx).Create(s).Error
}

func (r *cajaRepo) FindSesionAbiertaPorTerminal(ctx context.Context, tx *gorm.DB, terminal string) (*model.SesionCaja, error) {
	db := r.db
	if tx != nil {
		db = tx
	}
	var s model.SesionCaja
	err := db.WithContext(ctx).Where("terminal = ? AND estado = ?", terminal, model.SesionAbierta).First(&s).Error
	return &s, err
}

func (r *cajaRepo) FindSesionByID(ctx context.Context, id uuid.UUID) (*model.SesionCaja, error) {
	var s model.SesionCaja
	err := r.db.WithContext(ctx).Preload("Movimientos").First(&s, id).Error
	return &s, err
}

func (r *cajaRepo) UpdateSesion(ctx context.Context, s *model.SesionCaja) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *cajaRepo) CreateMovimiento(ctx context.Context, tx *gorm.DB, m *model.MovimientoCaja) error {
	db := r.db
	if tx != nil {
		db = tx
	}
	return db.WithContext(ctx).Create(m).Error
}

func (r *cajaRepo) ListMovimientos(ctx context.Context, sesionCajaID uuid.UUID) ([]model.MovimientoCaja, error) {
	var movs []model.MovimientoCaja
	err := r.db.WithContext(ctx).Where("sesion_caja_id = ?", sesionCajaID).Order("created_at ASC").Find(&movs).Error
	return movs, err
}

// SumarVentaEfectivoTx accumulates a cash sale into the session's running
// total inside the sale transaction, so the expected amount at close never
// needs a scan over sales.
func (r *cajaRepo) SumarVentaEfectivoTx(tx *gorm.DB, sesionCajaID uuid.UUID, monto decimal.Decimal) error {
	return tx.Model(&model.SesionCaja{}).Where("id = ? AND estado = ?", sesionCajaID, model.SesionAbierta).
		Update("ventas_efectivo", gorm.Expr("ventas_efectivo + ?", monto)).Error
}

func (r *cajaRepo) SumarMovimientoManual(ctx context.Context, sesionCajaID uuid.UUID, tipo string, monto decimal.Decimal) error {
	col := "ingresos_manuales"
	if tipo == model.MovEgresoManual {
		col = "egresos_manuales"
	}
	return r.db.WithContext(ctx).Model(&model.SesionCaja{}).
		Where("id = ? AND estado = ?", sesionCajaID, model.SesionAbierta).
		Update(col, gorm.Expr(col+" + ?", monto)).Error
}

func (r *cajaRepo) ListSesiones(ctx context.Context, terminal string, limit int) ([]model.SesionCaja, error) {
	var sesiones []model.SesionCaja
	q := r.db.WithContext(ctx).Model(&model.SesionCaja{})
	if terminal != "" {
		q = q.Where("terminal = ?", terminal)
	}
	err := q.Order("opened_at DESC").Limit(limit).Find(&sesiones).Error
	return sesiones, err
}
