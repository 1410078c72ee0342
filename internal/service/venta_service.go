package service

import (
	"context"
	"errors"
	"fmt"

	"tiendapos/internal/config"
	"tiendapos/internal/domain"
	"tiendapos/internal/dto"
	"tiendapos/internal/model"
	"tiendapos/internal/repository"
	"tiendapos/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type VentaService interface {
	RegistrarVenta(ctx context.Context, usuarioID uuid.UUID, req dto.RegistrarVentaRequest) (*dto.VentaResponse, error)
	CotizarVenta(ctx context.Context, req dto.CotizarVentaRequest) (*dto.CotizacionResponse, error)
	AnularVenta(ctx context.Context, id, usuarioID uuid.UUID, motivo string) error
	GetVenta(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error)
	ListVentas(ctx context.Context, filter dto.VentaFilter) (*dto.VentaListResponse, error)
}

type ventaService struct {
	repo         repository.VentaRepository
	productoRepo repository.ProductoRepository
	cajaRepo     repository.CajaRepository
	clienteRepo  repository.ClienteRepository
	movRepo      repository.MovimientoStockRepository
	dispatcher   *worker.Dispatcher
	cfg          *config.Config
}

func NewVentaService(
	repo repository.VentaRepository,
	productoRepo repository.ProductoRepository,
	cajaRepo repository.CajaRepository,
	clienteRepo repository.ClienteRepository,
	movRepo repository.MovimientoStockRepository,
	dispatcher *worker.Dispatcher,
	cfg *config.Config,
) VentaService {
	return &ventaService{
		repo:         repo,
		productoRepo: productoRepo,
		cajaRepo:     cajaRepo,
		clienteRepo:  clienteRepo,
		movRepo:      movRepo,
		dispatcher:   dispatcher,
		cfg:          cfg,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// ── RegistrarVenta ────────────────────────────────────────────────────────────
// Full ACID flow:
//  1. Resolve products and compute totals (pre-flight, outside TX)
//  2. Cash rules: monto_recibido required and >= total, vuelto computed
//  3. Resolve open cash session when the config demands one
//  4. BEGIN TX: nextval ticket, create venta+items, conditional stock
//     decrement, stock movements, cash movement + session running total
//  5. COMMIT
//  6. (async) enqueue ticket email when the client left an address

func (s *ventaService) RegistrarVenta(ctx context.Context, usuarioID uuid.UUID, req dto.RegistrarVentaRequest) (*dto.VentaResponse, error) {
	items, err := s.resolverItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	totales, err := CalcularTotales(items, req.Descuento, s.cfg.TasaImpuesto())
	if err != nil {
		return nil, err
	}

	// Cash rules: the register needs to know what came in and what goes back.
	var montoRecibido, vuelto *decimal.Decimal
	if req.MetodoPago == model.PagoEfectivo {
		if req.MontoRecibido == nil {
			return nil, fmt.Errorf("%w: monto_recibido es obligatorio para pagos en efectivo", domain.ErrValidacion)
		}
		if req.MontoRecibido.LessThan(totales.Total) {
			return nil, domain.ErrPagoInsuficiente
		}
		v := req.MontoRecibido.Sub(totales.Total)
		montoRecibido = req.MontoRecibido
		vuelto = &v
	}

	// Customer attribution is optional.
	var clienteID *uuid.UUID
	var clienteNombre *string
	if req.ClienteID != nil {
		cid, err := uuid.Parse(*req.ClienteID)
		if err != nil {
			return nil, fmt.Errorf("%w: cliente_id inválido", domain.ErrValidacion)
		}
		cliente, err := s.clienteRepo.FindByID(ctx, cid)
		if err != nil {
			return nil, fmt.Errorf("%w: cliente %s", domain.ErrNoEncontrado, cid)
		}
		clienteID = &cid
		clienteNombre = &cliente.NombreCompleto
	}

	// Resolve cash session. An explicit session must be open; only cash
	// sales demand one, card and transfer sales never touch the till.
	var sesionID *uuid.UUID
	if req.SesionCajaID != nil {
		sid, err := uuid.Parse(*req.SesionCajaID)
		if err != nil {
			return nil, fmt.Errorf("%w: sesion_caja_id inválido", domain.ErrValidacion)
		}
		sesion, err := s.cajaRepo.FindSesionByID(ctx, sid)
		if err != nil || sesion.Estado != model.SesionAbierta {
			return nil, domain.ErrCajaNoAbierta
		}
		sesionID = &sid
	} else if req.MetodoPago == model.PagoEfectivo && s.cfg.RequireOpenSession {
		return nil, domain.ErrCajaNoAbierta
	}

	var venta model.Venta
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		ticketNum, err := s.repo.NextTicketNumber(ctx, tx)
		if err != nil {
			return err
		}

		venta = model.Venta{
			NumeroTicket:  ticketNum,
			ClienteID:     clienteID,
			ClienteNombre: clienteNombre,
			UsuarioID:     usuarioID,
			SesionCajaID:  sesionID,
			Subtotal:      totales.Subtotal,
			Impuestos:     totales.Impuestos,
			Descuento:     totales.Descuento,
			Total:         totales.Total,
			MetodoPago:    req.MetodoPago,
			MontoRecibido: montoRecibido,
			Vuelto:        vuelto,
			DetallePago:   req.DetallePago,
			Estado:        model.VentaPagada,
		}
		venta.Notas = req.Notas
		for _, l := range totales.Lineas {
			venta.Items = append(venta.Items, model.VentaItem{
				ProductoID:     l.ProductoID,
				ProductoNombre: l.Nombre,
				Cantidad:       l.Cantidad,
				PrecioUnitario: l.PrecioUnitario,
				Subtotal:       l.Subtotal.Round(2),
			})
		}

		if err := s.repo.Create(ctx, tx, &venta); err != nil {
			return err
		}

		// Conditional decrement: a concurrent sale that drained the stock
		// makes this fail and the whole transaction rolls back.
		for _, it := range items {
			if it.Producto.EsServicio {
				continue
			}
			if err := s.productoRepo.DescontarStockTx(tx, it.Producto.ID, it.Cantidad); err != nil {
				return fmt.Errorf("producto %s: %w", it.Producto.Nombre, err)
			}
			ventaRef := venta.ID
			mov := &model.MovimientoStock{
				ProductoID:    it.Producto.ID,
				Tipo:          model.MovStockVenta,
				Cantidad:      -it.Cantidad,
				StockAnterior: it.Producto.Stock,
				StockNuevo:    it.Producto.Stock - it.Cantidad,
				Motivo:        fmt.Sprintf("Venta #%d", ticketNum),
				ReferenciaID:  &ventaRef,
				UsuarioID:     usuarioID,
			}
			if err := s.movRepo.Create(ctx, tx, mov); err != nil {
				return err
			}
		}

		// Cash sales feed the session's running total and leave a movement.
		if sesionID != nil && req.MetodoPago == model.PagoEfectivo {
			if err := s.cajaRepo.SumarVentaEfectivoTx(tx, *sesionID, totales.Total); err != nil {
				return err
			}
			mov := &model.MovimientoCaja{
				SesionCajaID: *sesionID,
				Tipo:         model.MovVentaEfectivo,
				Monto:        totales.Total,
				Descripcion:  fmt.Sprintf("Venta #%d", ticketNum),
				UsuarioID:    usuarioID,
				ReferenciaID: &venta.ID,
			}
			if err := s.cajaRepo.CreateMovimiento(ctx, tx, mov); err != nil {
				return err
			}
		}

		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	// Ticket email is best-effort; fire & forget.
	if s.dispatcher != nil && req.ClienteEmail != nil && *req.ClienteEmail != "" {
		_ = s.dispatcher.EnqueueTicket(ctx, map[string]interface{}{
			"venta_id":      venta.ID.String(),
			"cliente_email": *req.ClienteEmail,
		})
	}

	return ventaToResponse(&venta), nil
}

// CotizarVenta previews the cart totals without committing anything: no
// ticket number, no stock decrement, no session.
func (s *ventaService) CotizarVenta(ctx context.Context, req dto.CotizarVentaRequest) (*dto.CotizacionResponse, error) {
	items, err := s.resolverItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}
	totales, err := CalcularTotales(items, req.Descuento, s.cfg.TasaImpuesto())
	if err != nil {
		return nil, err
	}
	lineas := make([]dto.ItemVentaResponse, 0, len(totales.Lineas))
	for _, l := range totales.Lineas {
		lineas = append(lineas, dto.ItemVentaResponse{
			ProductoID:     l.ProductoID.String(),
			Producto:       l.Nombre,
			Cantidad:       l.Cantidad,
			PrecioUnitario: l.PrecioUnitario,
			Subtotal:       l.Subtotal.Round(2),
		})
	}
	return &dto.CotizacionResponse{
		Items:     lineas,
		Subtotal:  totales.Subtotal,
		Impuestos: totales.Impuestos,
		Descuento: totales.Descuento,
		Total:     totales.Total,
	}, nil
}

func (s *ventaService) resolverItems(ctx context.Context, reqItems []dto.ItemVentaRequest) ([]ItemCarrito, error) {
	items := make([]ItemCarrito, 0, len(reqItems))
	for _, it := range reqItems {
		pid, err := uuid.Parse(it.ProductoID)
		if err != nil {
			return nil, fmt.Errorf("%w: producto_id inválido", domain.ErrValidacion)
		}
		p, err := s.productoRepo.FindByID(ctx, pid)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrProductoNoEncontrado, it.ProductoID)
		}
		items = append(items, ItemCarrito{Producto: p, Cantidad: it.Cantidad})
	}
	return items, nil
}

// ── AnularVenta ───────────────────────────────────────────────────────────────

func (s *ventaService) AnularVenta(ctx context.Context, id, usuarioID uuid.UUID, motivo string) error {
	venta, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("%w: venta %s", domain.ErrNoEncontrado, id)
	}
	if venta.Estado == model.VentaAnulada {
		return fmt.Errorf("%w: la venta ya está anulada", domain.ErrEstadoInvalido)
	}

	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		// Restore stock for each item and leave the inverse movement.
		for _, item := range venta.Items {
			p, err := s.productoRepo.FindByID(ctx, item.ProductoID)
			if err != nil {
				return err
			}
			if p.EsServicio {
				continue
			}
			if err := s.productoRepo.IncrementarStockTx(tx, item.ProductoID, item.Cantidad); err != nil {
				return err
			}
			ventaRef := venta.ID
			mov := &model.MovimientoStock{
				ProductoID:    item.ProductoID,
				Tipo:          model.MovStockAnulacion,
				Cantidad:      item.Cantidad,
				StockAnterior: p.Stock,
				StockNuevo:    p.Stock + item.Cantidad,
				Motivo:        fmt.Sprintf("Anulación venta #%d: %s", venta.NumeroTicket, motivo),
				ReferenciaID:  &ventaRef,
				UsuarioID:     usuarioID,
			}
			if err := s.movRepo.Create(ctx, tx, mov); err != nil {
				return err
			}
		}

		// Cash sales inside a still-open session also back out of the
		// running total.
		if venta.SesionCajaID != nil && venta.MetodoPago == model.PagoEfectivo {
			sesion, err := s.cajaRepo.FindSesionByID(ctx, *venta.SesionCajaID)
			if err == nil && sesion.Estado == model.SesionAbierta {
				if err := s.cajaRepo.SumarVentaEfectivoTx(tx, *venta.SesionCajaID, venta.Total.Neg()); err != nil {
					return err
				}
				mov := &model.MovimientoCaja{
					SesionCajaID: *venta.SesionCajaID,
					Tipo:         model.MovAnulacionVenta,
					Monto:        venta.Total,
					Descripcion:  fmt.Sprintf("Anulación venta #%d: %s", venta.NumeroTicket, motivo),
					UsuarioID:    usuarioID,
					ReferenciaID: &venta.ID,
				}
				if err := s.cajaRepo.CreateMovimiento(ctx, tx, mov); err != nil {
					return err
				}
			}
		}

		return s.repo.UpdateEstado(ctx, tx, id, model.VentaAnulada)
	})
}

func (s *ventaService) GetVenta(ctx context.Context, id uuid.UUID) (*dto.VentaResponse, error) {
	venta, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: venta %s", domain.ErrNoEncontrado, id)
		}
		return nil, err
	}
	return ventaToResponse(venta), nil
}

// ListVentas returns a paginated list of sales, filtered by date range and
// estado. Default filter: today's paid sales.
func (s *ventaService) ListVentas(ctx context.Context, filter dto.VentaFilter) (*dto.VentaListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	if filter.Estado == "" {
		filter.Estado = model.VentaPagada
	}
	ventas, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.VentaResponse, 0, len(ventas))
	for _, v := range ventas {
		data = append(data, *ventaToResponse(&v))
	}
	return &dto.VentaListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func ventaToResponse(v *model.Venta) *dto.VentaResponse {
	items := make([]dto.ItemVentaResponse, 0, len(v.Items))
	for _, item := range v.Items {
		items = append(items, dto.ItemVentaResponse{
			ProductoID:     item.ProductoID.String(),
			Producto:       item.ProductoNombre,
			Cantidad:       item.Cantidad,
			PrecioUnitario: item.PrecioUnitario,
			Subtotal:       item.Subtotal,
		})
	}
	resp := &dto.VentaResponse{
		ID:            v.ID.String(),
		NumeroTicket:  v.NumeroTicket,
		Items:         items,
		Subtotal:      v.Subtotal,
		Impuestos:     v.Impuestos,
		Descuento:     v.Descuento,
		Total:         v.Total,
		MetodoPago:    v.MetodoPago,
		MontoRecibido: v.MontoRecibido,
		Vuelto:        v.Vuelto,
		ClienteNombre: v.ClienteNombre,
		Estado:        v.Estado,
		CreatedAt:     v.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
	if v.ClienteID != nil {
		id := v.ClienteID.String()
		resp.ClienteID = &id
	}
	if v.SesionCajaID != nil {
		id := v.SesionCajaID.String()
		resp.SesionCajaID = &id
	}
	return resp
}
