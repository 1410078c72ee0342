package service

import (
	"context"
	"fmt"
	"time"

	"tiendapos/internal/domain"
	"tiendapos/internal/dto"
	"tiendapos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// In-memory repository stubs. They run the services without a database:
// every DB() returns nil, so runTx calls the closure with a nil tx and the
// Tx-suffixed methods just mutate the maps.

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func nuevoProducto(sku, nombre, precioCompra, precioVenta string, stock int) *model.Producto {
	return &model.Producto{
		ID:           uuid.New(),
		SKU:          sku,
		Nombre:       nombre,
		Unidad:       "unidad",
		PrecioCompra: dec(precioCompra),
		PrecioVenta:  dec(precioVenta),
		Stock:        stock,
		StockMinimo:  5,
		Activo:       true,
	}
}

// ── ProductoRepository ────────────────────────────────────────────────────────

type stubProductoRepo struct {
	productos map[uuid.UUID]*model.Producto
}

func newStubProductoRepo(ps ...*model.Producto) *stubProductoRepo {
	r := &stubProductoRepo{productos: make(map[uuid.UUID]*model.Producto)}
	for _, p := range ps {
		r.productos[p.ID] = p
	}
	return r
}

func (r *stubProductoRepo) DB() *gorm.DB { return nil }

func (r *stubProductoRepo) Create(_ context.Context, p *model.Producto) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.productos[p.ID] = p
	return nil
}

// FindByID returns a detached copy, like a fresh GORM query: mutating the
// result never touches the stored row until an Update writes it back.
func (r *stubProductoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Producto, error) {
	p, ok := r.productos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *stubProductoRepo) FindBySKU(_ context.Context, sku string) (*model.Producto, error) {
	for _, p := range r.productos {
		if p.SKU == sku && p.Activo {
			cp := *p
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProductoRepo) List(_ context.Context, _ dto.ProductoFilter) ([]model.Producto, int64, error) {
	out := make([]model.Producto, 0, len(r.productos))
	for _, p := range r.productos {
		if p.Activo {
			out = append(out, *p)
		}
	}
	return out, int64(len(out)), nil
}

func (r *stubProductoRepo) Update(_ context.Context, p *model.Producto) error {
	r.productos[p.ID] = p
	return nil
}

func (r *stubProductoRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if p, ok := r.productos[id]; ok {
		p.Activo = false
	}
	return nil
}

func (r *stubProductoRepo) Reactivar(_ context.Context, id uuid.UUID) error {
	if p, ok := r.productos[id]; ok {
		p.Activo = true
	}
	return nil
}

func (r *stubProductoRepo) FindByProveedorID(_ context.Context, proveedorID uuid.UUID) ([]model.Producto, error) {
	var out []model.Producto
	for _, p := range r.productos {
		if p.ProveedorID != nil && *p.ProveedorID == proveedorID && p.Activo {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProductoRepo) ListBajoStock(_ context.Context) ([]model.Producto, error) {
	var out []model.Producto
	for _, p := range r.productos {
		if p.Activo && p.BajoStock() {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProductoRepo) DescontarStockTx(_ *gorm.DB, id uuid.UUID, cantidad int) error {
	p, ok := r.productos[id]
	if !ok || p.Stock < cantidad {
		return domain.ErrStockInsuficiente
	}
	p.Stock -= cantidad
	return nil
}

func (r *stubProductoRepo) IncrementarStockTx(_ *gorm.DB, id uuid.UUID, cantidad int) error {
	if p, ok := r.productos[id]; ok {
		p.Stock += cantidad
	}
	return nil
}

func (r *stubProductoRepo) AjustarStock(_ context.Context, id uuid.UUID, delta int) error {
	p, ok := r.productos[id]
	if !ok || p.Stock+delta < 0 {
		return domain.ErrStockInsuficiente
	}
	p.Stock += delta
	return nil
}

// ── VentaRepository ───────────────────────────────────────────────────────────

type stubVentaRepo struct {
	ventas map[uuid.UUID]*model.Venta
	ticket int
}

func newStubVentaRepo() *stubVentaRepo {
	return &stubVentaRepo{ventas: make(map[uuid.UUID]*model.Venta)}
}

func (r *stubVentaRepo) DB() *gorm.DB { return nil }

func (r *stubVentaRepo) Create(_ context.Context, _ *gorm.DB, v *model.Venta) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	if v.CreatedAt.IsZero() {
		v.CreatedAt = time.Now()
	}
	r.ventas[v.ID] = v
	return nil
}

func (r *stubVentaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Venta, error) {
	v, ok := r.ventas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return v, nil
}

func (r *stubVentaRepo) UpdateEstado(_ context.Context, _ *gorm.DB, id uuid.UUID, estado string) error {
	v, ok := r.ventas[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	v.Estado = estado
	return nil
}

func (r *stubVentaRepo) NextTicketNumber(_ context.Context, _ *gorm.DB) (int, error) {
	r.ticket++
	return r.ticket, nil
}

func (r *stubVentaRepo) List(_ context.Context, filter dto.VentaFilter) ([]model.Venta, int64, error) {
	var out []model.Venta
	for _, v := range r.ventas {
		if filter.Estado != "" && filter.Estado != "all" && v.Estado != filter.Estado {
			continue
		}
		out = append(out, *v)
	}
	return out, int64(len(out)), nil
}

func (r *stubVentaRepo) ListEntre(_ context.Context, desde, hasta time.Time) ([]model.Venta, error) {
	var out []model.Venta
	for _, v := range r.ventas {
		if v.Estado == model.VentaPagada && !v.CreatedAt.Before(desde) && v.CreatedAt.Before(hasta) {
			out = append(out, *v)
		}
	}
	return out, nil
}

// ── CajaRepository ────────────────────────────────────────────────────────────

type stubCajaRepo struct {
	sesiones    map[uuid.UUID]*model.SesionCaja
	movimientos []model.MovimientoCaja
}

func newStubCajaRepo() *stubCajaRepo {
	return &stubCajaRepo{sesiones: make(map[uuid.UUID]*model.SesionCaja)}
}

func (r *stubCajaRepo) DB() *gorm.DB { return nil }

func (r *stubCajaRepo) CreateSesionTx(_ context.Context, _ *gorm.DB, s *model.SesionCaja) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.sesiones[s.ID] = s
	return nil
}

func (r *stubCajaRepo) FindSesionAbiertaPorTerminal(_ context.Context, _ *gorm.DB, terminal string) (*model.SesionCaja, error) {
	for _, s := range r.sesiones {
		if s.Terminal == terminal && s.Estado == model.SesionAbierta {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCajaRepo) FindSesionByID(_ context.Context, id uuid.UUID) (*model.SesionCaja, error) {
	s, ok := r.sesiones[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (r *stubCajaRepo) UpdateSesion(_ context.Context, s *model.SesionCaja) error {
	r.sesiones[s.ID] = s
	return nil
}

func (r *stubCajaRepo) CreateMovimiento(_ context.Context, _ *gorm.DB, m *model.MovimientoCaja) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	m.CreatedAt = time.Now()
	r.movimientos = append(r.movimientos, *m)
	return nil
}

func (r *stubCajaRepo) ListMovimientos(_ context.Context, sesionCajaID uuid.UUID) ([]model.MovimientoCaja, error) {
	var out []model.MovimientoCaja
	for _, m := range r.movimientos {
		if m.SesionCajaID == sesionCajaID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *stubCajaRepo) SumarVentaEfectivoTx(_ *gorm.DB, sesionCajaID uuid.UUID, monto decimal.Decimal) error {
	if s, ok := r.sesiones[sesionCajaID]; ok && s.Estado == model.SesionAbierta {
		s.VentasEfectivo = s.VentasEfectivo.Add(monto)
	}
	return nil
}

func (r *stubCajaRepo) SumarMovimientoManual(_ context.Context, sesionCajaID uuid.UUID, tipo string, monto decimal.Decimal) error {
	s, ok := r.sesiones[sesionCajaID]
	if !ok || s.Estado != model.SesionAbierta {
		return nil
	}
	if tipo == model.MovEgresoManual {
		s.EgresosManuales = s.EgresosManuales.Add(monto)
	} else {
		s.IngresosManuales = s.IngresosManuales.Add(monto)
	}
	return nil
}

func (r *stubCajaRepo) ListSesiones(_ context.Context, terminal string, limit int) ([]model.SesionCaja, error) {
	var out []model.SesionCaja
	for _, s := range r.sesiones {
		if terminal != "" && s.Terminal != terminal {
			continue
		}
		out = append(out, *s)
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ── ClienteRepository ─────────────────────────────────────────────────────────

type stubClienteRepo struct {
	clientes map[uuid.UUID]*model.Cliente
}

func newStubClienteRepo(cs ...*model.Cliente) *stubClienteRepo {
	r := &stubClienteRepo{clientes: make(map[uuid.UUID]*model.Cliente)}
	for _, c := range cs {
		r.clientes[c.ID] = c
	}
	return r
}

func (r *stubClienteRepo) Create(_ context.Context, c *model.Cliente) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.clientes[c.ID] = c
	return nil
}

func (r *stubClienteRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Cliente, error) {
	c, ok := r.clientes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubClienteRepo) List(_ context.Context, _ string) ([]model.Cliente, error) {
	var out []model.Cliente
	for _, c := range r.clientes {
		if c.Activo {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *stubClienteRepo) Update(_ context.Context, c *model.Cliente) error {
	r.clientes[c.ID] = c
	return nil
}

func (r *stubClienteRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if c, ok := r.clientes[id]; ok {
		c.Activo = false
	}
	return nil
}

// ── ProveedorRepository ───────────────────────────────────────────────────────

type stubProveedorRepo struct {
	proveedores map[uuid.UUID]*model.Proveedor
}

func newStubProveedorRepo(ps ...*model.Proveedor) *stubProveedorRepo {
	r := &stubProveedorRepo{proveedores: make(map[uuid.UUID]*model.Proveedor)}
	for _, p := range ps {
		r.proveedores[p.ID] = p
	}
	return r
}

func (r *stubProveedorRepo) Create(_ context.Context, p *model.Proveedor) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.proveedores[p.ID] = p
	return nil
}

func (r *stubProveedorRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Proveedor, error) {
	p, ok := r.proveedores[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProveedorRepo) List(_ context.Context, _ string) ([]model.Proveedor, error) {
	var out []model.Proveedor
	for _, p := range r.proveedores {
		if p.Activo {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProveedorRepo) Update(_ context.Context, p *model.Proveedor) error {
	r.proveedores[p.ID] = p
	return nil
}

func (r *stubProveedorRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if p, ok := r.proveedores[id]; ok {
		p.Activo = false
	}
	return nil
}

// ── MovimientoStockRepository ─────────────────────────────────────────────────

type stubMovStockRepo struct {
	movimientos []model.MovimientoStock
}

func newStubMovStockRepo() *stubMovStockRepo { return &stubMovStockRepo{} }

func (r *stubMovStockRepo) Create(_ context.Context, _ *gorm.DB, m *model.MovimientoStock) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	m.CreatedAt = time.Now()
	r.movimientos = append(r.movimientos, *m)
	return nil
}

func (r *stubMovStockRepo) ListByProducto(_ context.Context, productoID uuid.UUID, limit int) ([]model.MovimientoStock, error) {
	var out []model.MovimientoStock
	for _, m := range r.movimientos {
		if m.ProductoID == productoID {
			out = append(out, m)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *stubMovStockRepo) porTipo(tipo string) []model.MovimientoStock {
	var out []model.MovimientoStock
	for _, m := range r.movimientos {
		if m.Tipo == tipo {
			out = append(out, m)
		}
	}
	return out
}

// ── CompraRepository ──────────────────────────────────────────────────────────

type stubCompraRepo struct {
	ordenes map[uuid.UUID]*model.OrdenCompra
	pagos   []model.PagoProveedor
}

func newStubCompraRepo() *stubCompraRepo {
	return &stubCompraRepo{ordenes: make(map[uuid.UUID]*model.OrdenCompra)}
}

func (r *stubCompraRepo) DB() *gorm.DB { return nil }

func (r *stubCompraRepo) CreateOrden(_ context.Context, o *model.OrdenCompra) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	for i := range o.Items {
		o.Items[i].ID = uuid.New()
		o.Items[i].OrdenCompraID = o.ID
	}
	r.ordenes[o.ID] = o
	return nil
}

func (r *stubCompraRepo) FindOrdenByID(_ context.Context, id uuid.UUID) (*model.OrdenCompra, error) {
	o, ok := r.ordenes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return o, nil
}

func (r *stubCompraRepo) UpdateOrden(_ context.Context, _ *gorm.DB, o *model.OrdenCompra) error {
	r.ordenes[o.ID] = o
	return nil
}

// Items are shared pointers into the stored orden, nothing to copy.
func (r *stubCompraRepo) UpdateItemTx(_ *gorm.DB, _ *model.OrdenCompraItem) error { return nil }

func (r *stubCompraRepo) ListOrdenes(_ context.Context, _ dto.OrdenCompraFilter) ([]model.OrdenCompra, int64, error) {
	out := make([]model.OrdenCompra, 0, len(r.ordenes))
	for _, o := range r.ordenes {
		out = append(out, *o)
	}
	return out, int64(len(out)), nil
}

func (r *stubCompraRepo) NextNumeroOrden(_ context.Context) (string, error) {
	return fmt.Sprintf("OC-%d-%03d", time.Now().Year(), len(r.ordenes)+1), nil
}

func (r *stubCompraRepo) CreatePago(_ context.Context, _ *gorm.DB, p *model.PagoProveedor) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.CreatedAt = time.Now()
	r.pagos = append(r.pagos, *p)
	return nil
}

func (r *stubCompraRepo) ListPagos(_ context.Context, ordenID uuid.UUID) ([]model.PagoProveedor, error) {
	var out []model.PagoProveedor
	for _, p := range r.pagos {
		if p.OrdenCompraID == ordenID {
			out = append(out, p)
		}
	}
	return out, nil
}

// ── UsuarioRepository ─────────────────────────────────────────────────────────

type stubUsuarioRepo struct {
	usuarios map[uuid.UUID]*model.Usuario
}

func newStubUsuarioRepo() *stubUsuarioRepo {
	return &stubUsuarioRepo{usuarios: make(map[uuid.UUID]*model.Usuario)}
}

func (r *stubUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.usuarios[u.ID] = u
	return nil
}

func (r *stubUsuarioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Usuario, error) {
	u, ok := r.usuarios[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *stubUsuarioRepo) FindByUsername(_ context.Context, username string) (*model.Usuario, error) {
	for _, u := range r.usuarios {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUsuarioRepo) List(_ context.Context) ([]model.Usuario, error) {
	out := make([]model.Usuario, 0, len(r.usuarios))
	for _, u := range r.usuarios {
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUsuarioRepo) Update(_ context.Context, u *model.Usuario) error {
	r.usuarios[u.ID] = u
	return nil
}

func (r *stubUsuarioRepo) Desactivar(_ context.Context, id uuid.UUID) error {
	if u, ok := r.usuarios[id]; ok {
		u.Activo = false
	}
	return nil
}

func (r *stubUsuarioRepo) TouchUltimoLogin(_ context.Context, id uuid.UUID) error {
	if u, ok := r.usuarios[id]; ok {
		now := time.Now()
		u.UltimoLogin = &now
	}
	return nil
}
