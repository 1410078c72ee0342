package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"tiendapos/internal/domain"
	"tiendapos/internal/dto"
	"tiendapos/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var cien = decimal.NewFromInt(100)

type ReporteService interface {
	ResumenVentas(ctx context.Context, filter dto.ReporteFilter) (*dto.ResumenVentasResponse, error)
	TopProductos(ctx context.Context, filter dto.ReporteFilter) ([]dto.TopProductoResponse, error)
	MargenGanancia(ctx context.Context, filter dto.ReporteFilter) (*dto.MargenGananciaResponse, error)
	ResumenCajas(ctx context.Context, terminal string, limit int) ([]dto.ResumenCajaResponse, error)
}

type reporteService struct {
	ventaRepo    repository.VentaRepository
	productoRepo repository.ProductoRepository
	cajaRepo     repository.CajaRepository
}

func NewReporteService(
	ventaRepo repository.VentaRepository,
	productoRepo repository.ProductoRepository,
	cajaRepo repository.CajaRepository,
) ReporteService {
	return &reporteService{ventaRepo: ventaRepo, productoRepo: productoRepo, cajaRepo: cajaRepo}
}

// rangoFechas parses [desde, hasta] as inclusive local dates and returns the
// half-open [desde 00:00, hasta+1d 00:00) interval the queries use.
func rangoFechas(filter dto.ReporteFilter) (time.Time, time.Time, error) {
	desde, err := time.ParseInLocation("2006-01-02", filter.Desde, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: desde inválido", domain.ErrValidacion)
	}
	hasta, err := time.ParseInLocation("2006-01-02", filter.Hasta, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: hasta inválido", domain.ErrValidacion)
	}
	if hasta.Before(desde) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: hasta es anterior a desde", domain.ErrValidacion)
	}
	return desde, hasta.AddDate(0, 0, 1), nil
}

// ResumenVentas aggregates paid sales in the range: count, revenue, average
// ticket and revenue per payment method. Anulled sales never count.
func (s *reporteService) ResumenVentas(ctx context.Context, filter dto.ReporteFilter) (*dto.ResumenVentasResponse, error) {
	desde, hasta, err := rangoFechas(filter)
	if err != nil {
		return nil, err
	}
	ventas, err := s.ventaRepo.ListEntre(ctx, desde, hasta)
	if err != nil {
		return nil, err
	}

	ingresos := decimal.Zero
	porMetodo := make(map[string]decimal.Decimal)
	for _, v := range ventas {
		ingresos = ingresos.Add(v.Total)
		porMetodo[v.MetodoPago] = porMetodo[v.MetodoPago].Add(v.Total)
	}

	promedio := decimal.Zero
	if len(ventas) > 0 {
		promedio = ingresos.Div(decimal.NewFromInt(int64(len(ventas)))).Round(2)
	}

	return &dto.ResumenVentasResponse{
		Desde:          filter.Desde,
		Hasta:          filter.Hasta,
		CantidadVentas: len(ventas),
		Ingresos:       ingresos,
		TicketPromedio: promedio,
		PorMetodoPago:  porMetodo,
	}, nil
}

// TopProductos ranks products by units sold in the range.
func (s *reporteService) TopProductos(ctx context.Context, filter dto.ReporteFilter) ([]dto.TopProductoResponse, error) {
	desde, hasta, err := rangoFechas(filter)
	if err != nil {
		return nil, err
	}
	ventas, err := s.ventaRepo.ListEntre(ctx, desde, hasta)
	if err != nil {
		return nil, err
	}

	type acumulado struct {
		nombre   string
		cantidad int
		valor    decimal.Decimal
	}
	porProducto := make(map[uuid.UUID]*acumulado)
	for _, v := range ventas {
		for _, it := range v.Items {
			acc, ok := porProducto[it.ProductoID]
			if !ok {
				acc = &acumulado{nombre: it.ProductoNombre, valor: decimal.Zero}
				porProducto[it.ProductoID] = acc
			}
			acc.cantidad += it.Cantidad
			acc.valor = acc.valor.Add(it.Subtotal)
		}
	}

	top := make([]dto.TopProductoResponse, 0, len(porProducto))
	for id, acc := range porProducto {
		entry := dto.TopProductoResponse{
			ProductoID:      id.String(),
			Nombre:          acc.nombre,
			CantidadVendida: acc.cantidad,
			ValorVendido:    acc.valor,
		}
		if p, err := s.productoRepo.FindByID(ctx, id); err == nil {
			entry.SKU = p.SKU
		}
		top = append(top, entry)
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].CantidadVendida != top[j].CantidadVendida {
			return top[i].CantidadVendida > top[j].CantidadVendida
		}
		return top[i].Nombre < top[j].Nombre
	})

	limit := filter.Limit
	if limit < 1 {
		limit = 10
	}
	if len(top) > limit {
		top = top[:limit]
	}
	return top, nil
}

// MargenGanancia estimates gross profit over the range. Cost of goods uses
// the product's CURRENT precio_compra, not a historical snapshot; items whose
// product no longer exists count as zero cost.
func (s *reporteService) MargenGanancia(ctx context.Context, filter dto.ReporteFilter) (*dto.MargenGananciaResponse, error) {
	desde, hasta, err := rangoFechas(filter)
	if err != nil {
		return nil, err
	}
	ventas, err := s.ventaRepo.ListEntre(ctx, desde, hasta)
	if err != nil {
		return nil, err
	}

	ingresos := decimal.Zero
	costo := decimal.Zero
	costos := make(map[uuid.UUID]decimal.Decimal)
	for _, v := range ventas {
		ingresos = ingresos.Add(v.Total)
		for _, it := range v.Items {
			unitario, ok := costos[it.ProductoID]
			if !ok {
				if p, err := s.productoRepo.FindByID(ctx, it.ProductoID); err == nil {
					unitario = p.PrecioCompra
				}
				costos[it.ProductoID] = unitario
			}
			costo = costo.Add(unitario.Mul(decimal.NewFromInt(int64(it.Cantidad))))
		}
	}

	ganancia := ingresos.Sub(costo)
	margen := decimal.Zero
	if ingresos.IsPositive() {
		margen = ganancia.Div(ingresos).Mul(cien).Round(2)
	}

	return &dto.MargenGananciaResponse{
		Ingresos:         ingresos,
		CostoVentas:      costo.Round(2),
		GananciaBruta:    ganancia.Round(2),
		MargenPorcentaje: margen,
		VentasAnalizadas: len(ventas),
	}, nil
}

// ResumenCajas lists recent sessions with their reconciliation figures.
func (s *reporteService) ResumenCajas(ctx context.Context, terminal string, limit int) ([]dto.ResumenCajaResponse, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}
	sesiones, err := s.cajaRepo.ListSesiones(ctx, terminal, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ResumenCajaResponse, 0, len(sesiones))
	for _, ses := range sesiones {
		r := dto.ResumenCajaResponse{
			SesionCajaID:  ses.ID.String(),
			Terminal:      ses.Terminal,
			MontoInicial:  ses.MontoInicial,
			MontoEsperado: ses.MontoEsperado,
			MontoContado:  ses.MontoContado,
			Diferencia:    ses.Diferencia,
			Estado:        ses.Estado,
			OpenedAt:      ses.OpenedAt.Format("2006-01-02T15:04:05Z"),
		}
		if ses.ClosedAt != nil {
			t := ses.ClosedAt.Format("2006-01-02T15:04:05Z")
			r.ClosedAt = &t
		}
		out = append(out, r)
	}
	return out, nil
}
