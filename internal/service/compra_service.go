package service

import (
	"context"
	"fmt"
	"time"

	"tiendapos/internal/config"
	"tiendapos/internal/domain"
	"tiendapos/internal/dto"
	"tiendapos/internal/model"
	"tiendapos/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// toleranciaPago absorbs rounding noise when comparing accumulated payments
// against the order total.
var toleranciaPago = decimal.NewFromFloat(0.001)

// transicionesOrden lists the manual transitions CambiarEstado accepts.
// parcial and recibido are deliberately absent: receptions are the only
// path into them, because reaching them implies stock was posted.
var transicionesOrden = map[string][]string{
	model.OrdenPendiente: {model.OrdenOrdenada, model.OrdenCancelada},
	model.OrdenOrdenada:  {model.OrdenCancelada},
	model.OrdenParcial:   {model.OrdenCancelada},
	model.OrdenRecibida:  {},
	model.OrdenCancelada: {},
}

func transicionValida(desde, hasta string) bool {
	for _, t := range transicionesOrden[desde] {
		if t == hasta {
			return true
		}
	}
	return false
}

type CompraService interface {
	CrearOrden(ctx context.Context, usuarioID uuid.UUID, req dto.CrearOrdenCompraRequest) (*dto.OrdenCompraResponse, error)
	GetOrden(ctx context.Context, id uuid.UUID) (*dto.OrdenCompraResponse, error)
	ListOrdenes(ctx context.Context, filter dto.OrdenCompraFilter) (*dto.OrdenCompraListResponse, error)
	CambiarEstado(ctx context.Context, id uuid.UUID, nuevoEstado string) (*dto.OrdenCompraResponse, error)
	RegistrarRecepcion(ctx context.Context, id, usuarioID uuid.UUID, req dto.RegistrarRecepcionRequest) (*dto.OrdenCompraResponse, error)
	RegistrarPago(ctx context.Context, id, usuarioID uuid.UUID, req dto.RegistrarPagoRequest) (*dto.OrdenCompraResponse, error)
	ListPagos(ctx context.Context, ordenID uuid.UUID) ([]dto.PagoProveedorResponse, error)
}

type compraService struct {
	repo          repository.CompraRepository
	proveedorRepo repository.ProveedorRepository
	productoRepo  repository.ProductoRepository
	movRepo       repository.MovimientoStockRepository
	cfg           *config.Config
}

func NewCompraService(
	repo repository.CompraRepository,
	proveedorRepo repository.ProveedorRepository,
	productoRepo repository.ProductoRepository,
	movRepo repository.MovimientoStockRepository,
	cfg *config.Config,
) CompraService {
	return &compraService{
		repo:          repo,
		proveedorRepo: proveedorRepo,
		productoRepo:  productoRepo,
		movRepo:       movRepo,
		cfg:           cfg,
	}
}

// CrearOrden registers a purchase order in estado pendiente. Costs are
// snapshotted per item; taxes apply over items subtotal, shipping rides on
// top untaxed.
func (s *compraService) CrearOrden(ctx context.Context, usuarioID uuid.UUID, req dto.CrearOrdenCompraRequest) (*dto.OrdenCompraResponse, error) {
	pid, err := uuid.Parse(req.ProveedorID)
	if err != nil {
		return nil, fmt.Errorf("%w: proveedor_id inválido", domain.ErrValidacion)
	}
	proveedor, err := s.proveedorRepo.FindByID(ctx, pid)
	if err != nil {
		return nil, fmt.Errorf("%w: proveedor %s", domain.ErrNoEncontrado, pid)
	}

	orden := model.OrdenCompra{
		ProveedorID:     pid,
		ProveedorNombre: proveedor.RazonSocial,
		FechaOrden:      time.Now(),
		CostoEnvio:      req.CostoEnvio,
		Estado:          model.OrdenPendiente,
		EstadoPago:      model.PagoPendiente,
		MontoPagado:     decimal.Zero,
		Notas:           req.Notas,
	}

	if req.FechaEntregaEstimada != nil {
		t, err := time.Parse("2006-01-02", *req.FechaEntregaEstimada)
		if err != nil {
			return nil, fmt.Errorf("%w: fecha_entrega_estimada inválida", domain.ErrValidacion)
		}
		orden.FechaEntregaEstimada = &t
	}

	subtotal := decimal.Zero
	for _, it := range req.Items {
		prodID, err := uuid.Parse(it.ProductoID)
		if err != nil {
			return nil, fmt.Errorf("%w: producto_id inválido", domain.ErrValidacion)
		}
		p, err := s.productoRepo.FindByID(ctx, prodID)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrProductoNoEncontrado, it.ProductoID)
		}
		lineSubtotal := it.CostoUnitario.Mul(decimal.NewFromInt(int64(it.CantidadPedida)))
		subtotal = subtotal.Add(lineSubtotal)
		orden.Items = append(orden.Items, model.OrdenCompraItem{
			ProductoID:     prodID,
			ProductoNombre: p.Nombre,
			ProductoSKU:    p.SKU,
			CantidadPedida: it.CantidadPedida,
			CostoUnitario:  it.CostoUnitario,
			Subtotal:       lineSubtotal.Round(2),
		})
	}

	orden.Subtotal = subtotal.Round(2)
	orden.Impuestos = subtotal.Mul(s.cfg.TasaImpuesto()).Round(2)
	orden.Total = orden.Subtotal.Add(orden.Impuestos).Add(orden.CostoEnvio).Round(2)

	numero, err := s.repo.NextNumeroOrden(ctx)
	if err != nil {
		return nil, err
	}
	orden.NumeroOrden = numero

	if err := s.repo.CreateOrden(ctx, &orden); err != nil {
		return nil, err
	}
	return ordenToResponse(&orden), nil
}

func (s *compraService) GetOrden(ctx context.Context, id uuid.UUID) (*dto.OrdenCompraResponse, error) {
	orden, err := s.repo.FindOrdenByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: orden %s", domain.ErrNoEncontrado, id)
	}
	return ordenToResponse(orden), nil
}

func (s *compraService) ListOrdenes(ctx context.Context, filter dto.OrdenCompraFilter) (*dto.OrdenCompraListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	ordenes, total, err := s.repo.ListOrdenes(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.OrdenCompraResponse, 0, len(ordenes))
	for _, o := range ordenes {
		data = append(data, *ordenToResponse(&o))
	}
	return &dto.OrdenCompraListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

// CambiarEstado applies a manual transition (ordenado or cancelado).
// parcial and recibido are unreachable here: goods only enter through
// RegistrarRecepcion, which posts the stock alongside the state change.
func (s *compraService) CambiarEstado(ctx context.Context, id uuid.UUID, nuevoEstado string) (*dto.OrdenCompraResponse, error) {
	orden, err := s.repo.FindOrdenByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: orden %s", domain.ErrNoEncontrado, id)
	}
	if !transicionValida(orden.Estado, nuevoEstado) {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrEstadoInvalido, orden.Estado, nuevoEstado)
	}

	orden.Estado = nuevoEstado
	if err := s.repo.UpdateOrden(ctx, nil, orden); err != nil {
		return nil, err
	}
	return ordenToResponse(orden), nil
}

// RegistrarRecepcion posts received quantities against the order's items,
// incrementing product stock atomically with the order update. Quantities
// accumulate across partial deliveries; over-receiving an item is rejected.
func (s *compraService) RegistrarRecepcion(ctx context.Context, id, usuarioID uuid.UUID, req dto.RegistrarRecepcionRequest) (*dto.OrdenCompraResponse, error) {
	orden, err := s.repo.FindOrdenByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: orden %s", domain.ErrNoEncontrado, id)
	}
	if orden.Estado == model.OrdenRecibida || orden.Estado == model.OrdenCancelada {
		return nil, fmt.Errorf("%w: la orden está %s", domain.ErrEstadoInvalido, orden.Estado)
	}

	// Validate against pending quantities before opening the transaction.
	// Requested amounts aggregate per product, so repeating a product across
	// lines cannot sneak past the cap.
	porItem := make(map[uuid.UUID]*model.OrdenCompraItem, len(orden.Items))
	for i := range orden.Items {
		porItem[orden.Items[i].ProductoID] = &orden.Items[i]
	}
	solicitado := make(map[uuid.UUID]int, len(req.Items))
	for _, rec := range req.Items {
		prodID, err := uuid.Parse(rec.ProductoID)
		if err != nil {
			return nil, fmt.Errorf("%w: producto_id inválido", domain.ErrValidacion)
		}
		item, ok := porItem[prodID]
		if !ok {
			return nil, fmt.Errorf("%w: el producto %s no pertenece a la orden", domain.ErrValidacion, prodID)
		}
		solicitado[prodID] += rec.Cantidad
		pendiente := item.CantidadPedida - item.CantidadRecibida
		if solicitado[prodID] > pendiente {
			return nil, fmt.Errorf("%w: %s tiene %d unidades pendientes, se intentó recibir %d",
				domain.ErrValidacion, item.ProductoNombre, pendiente, solicitado[prodID])
		}
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		for _, rec := range req.Items {
			prodID, _ := uuid.Parse(rec.ProductoID)
			item := porItem[prodID]

			p, err := s.productoRepo.FindByID(ctx, prodID)
			if err != nil {
				return err
			}
			if err := s.productoRepo.IncrementarStockTx(tx, prodID, rec.Cantidad); err != nil {
				return err
			}
			ordenRef := orden.ID
			mov := &model.MovimientoStock{
				ProductoID:    prodID,
				Tipo:          model.MovStockRecepcion,
				Cantidad:      rec.Cantidad,
				StockAnterior: p.Stock,
				StockNuevo:    p.Stock + rec.Cantidad,
				Motivo:        fmt.Sprintf("Recepción %s", orden.NumeroOrden),
				ReferenciaID:  &ordenRef,
				UsuarioID:     usuarioID,
			}
			if err := s.movRepo.Create(ctx, tx, mov); err != nil {
				return err
			}

			item.CantidadRecibida += rec.Cantidad
			if err := s.repo.UpdateItemTx(tx, item); err != nil {
				return err
			}
		}

		completa := true
		for i := range orden.Items {
			if orden.Items[i].CantidadRecibida < orden.Items[i].CantidadPedida {
				completa = false
				break
			}
		}
		if completa {
			orden.Estado = model.OrdenRecibida
			now := time.Now()
			orden.FechaEntregaReal = &now
		} else {
			orden.Estado = model.OrdenParcial
		}
		return s.repo.UpdateOrden(ctx, tx, orden)
	})
	if txErr != nil {
		return nil, txErr
	}
	return ordenToResponse(orden), nil
}

// RegistrarPago posts a supplier payment against the order. The payment
// status only moves forward: pendiente -> parcialmente pagado -> pagado.
// Paying more than the outstanding balance is rejected.
func (s *compraService) RegistrarPago(ctx context.Context, id, usuarioID uuid.UUID, req dto.RegistrarPagoRequest) (*dto.OrdenCompraResponse, error) {
	orden, err := s.repo.FindOrdenByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: orden %s", domain.ErrNoEncontrado, id)
	}
	if orden.Estado == model.OrdenCancelada {
		return nil, fmt.Errorf("%w: no se puede pagar una orden cancelada", domain.ErrEstadoInvalido)
	}
	if !req.Monto.IsPositive() {
		return nil, fmt.Errorf("%w: el monto debe ser mayor que cero", domain.ErrMontoInvalido)
	}

	saldo := orden.Total.Sub(orden.MontoPagado)
	if req.Monto.Sub(saldo).GreaterThan(toleranciaPago) {
		return nil, fmt.Errorf("%w: el pago (%s) excede el saldo pendiente (%s)",
			domain.ErrMontoInvalido, req.Monto.StringFixed(2), saldo.StringFixed(2))
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		pago := &model.PagoProveedor{
			OrdenCompraID: orden.ID,
			ProveedorID:   orden.ProveedorID,
			Monto:         req.Monto,
			Metodo:        req.Metodo,
			Referencia:    req.Referencia,
			Notas:         req.Notas,
			UsuarioID:     usuarioID,
		}
		if err := s.repo.CreatePago(ctx, tx, pago); err != nil {
			return err
		}

		orden.MontoPagado = orden.MontoPagado.Add(req.Monto)
		// Within tolerance of the total counts as fully paid.
		if orden.Total.Sub(orden.MontoPagado).LessThanOrEqual(toleranciaPago) {
			orden.EstadoPago = model.PagoCompleto
		} else {
			orden.EstadoPago = model.PagoParcial
		}
		return s.repo.UpdateOrden(ctx, tx, orden)
	})
	if txErr != nil {
		return nil, txErr
	}
	return ordenToResponse(orden), nil
}

func (s *compraService) ListPagos(ctx context.Context, ordenID uuid.UUID) ([]dto.PagoProveedorResponse, error) {
	pagos, err := s.repo.ListPagos(ctx, ordenID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PagoProveedorResponse, 0, len(pagos))
	for _, p := range pagos {
		out = append(out, dto.PagoProveedorResponse{
			ID:            p.ID.String(),
			OrdenCompraID: p.OrdenCompraID.String(),
			ProveedorID:   p.ProveedorID.String(),
			Monto:         p.Monto,
			Metodo:        p.Metodo,
			Referencia:    p.Referencia,
			Notas:         p.Notas,
			CreatedAt:     p.CreatedAt.Format("2006-01-02T15:04:05Z"),
		})
	}
	return out, nil
}

func ordenToResponse(o *model.OrdenCompra) *dto.OrdenCompraResponse {
	items := make([]dto.ItemOrdenCompraResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, dto.ItemOrdenCompraResponse{
			ProductoID:       it.ProductoID.String(),
			ProductoNombre:   it.ProductoNombre,
			ProductoSKU:      it.ProductoSKU,
			CantidadPedida:   it.CantidadPedida,
			CantidadRecibida: it.CantidadRecibida,
			CostoUnitario:    it.CostoUnitario,
			Subtotal:         it.Subtotal,
		})
	}
	resp := &dto.OrdenCompraResponse{
		ID:              o.ID.String(),
		NumeroOrden:     o.NumeroOrden,
		ProveedorID:     o.ProveedorID.String(),
		ProveedorNombre: o.ProveedorNombre,
		Items:           items,
		Subtotal:        o.Subtotal,
		Impuestos:       o.Impuestos,
		CostoEnvio:      o.CostoEnvio,
		Total:           o.Total,
		Estado:          o.Estado,
		EstadoPago:      o.EstadoPago,
		MontoPagado:     o.MontoPagado,
		Saldo:           o.Total.Sub(o.MontoPagado),
		FechaOrden:      o.FechaOrden.Format("2006-01-02"),
		Notas:           o.Notas,
	}
	if o.FechaEntregaEstimada != nil {
		f := o.FechaEntregaEstimada.Format("2006-01-02")
		resp.FechaEntregaEstimada = &f
	}
	if o.FechaEntregaReal != nil {
		f := o.FechaEntregaReal.Format("2006-01-02")
		resp.FechaEntregaReal = &f
	}
	return resp
}
