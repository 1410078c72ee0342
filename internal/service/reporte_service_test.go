package service

import (
	"context"
	"testing"
	"time"

	"tiendapos/internal/domain"
	"tiendapos/internal/dto"
	"tiendapos/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedVenta drops a paid sale directly into the stub, dated inside the
// reporting range the tests use.
func seedVenta(r *stubVentaRepo, dia string, metodo string, total string, items ...model.VentaItem) {
	fecha, _ := time.ParseInLocation("2006-01-02", dia, time.Local)
	r.ticket++
	v := &model.Venta{
		ID:           uuid.New(),
		NumeroTicket: r.ticket,
		UsuarioID:    uuid.New(),
		Total:        dec(total),
		MetodoPago:   metodo,
		Estado:       model.VentaPagada,
		CreatedAt:    fecha.Add(12 * time.Hour),
		Items:        items,
	}
	r.ventas[v.ID] = v
}

func item(p *model.Producto, cantidad int, subtotal string) model.VentaItem {
	return model.VentaItem{
		ProductoID:     p.ID,
		ProductoNombre: p.Nombre,
		Cantidad:       cantidad,
		PrecioUnitario: p.PrecioVenta,
		Subtotal:       dec(subtotal),
	}
}

func TestResumenVentas(t *testing.T) {
	ventas := newStubVentaRepo()
	svc := NewReporteService(ventas, newStubProductoRepo(), newStubCajaRepo())

	seedVenta(ventas, "2026-03-10", model.PagoEfectivo, "100.00")
	seedVenta(ventas, "2026-03-11", model.PagoTarjeta, "50.00")
	seedVenta(ventas, "2026-04-01", model.PagoEfectivo, "999.00") // fuera de rango

	resp, err := svc.ResumenVentas(context.Background(), dto.ReporteFilter{Desde: "2026-03-01", Hasta: "2026-03-31"})
	require.NoError(t, err)

	assert.Equal(t, 2, resp.CantidadVentas)
	assert.True(t, resp.Ingresos.Equal(dec("150.00")), "ingresos = %s", resp.Ingresos)
	assert.True(t, resp.TicketPromedio.Equal(dec("75.00")))
	assert.True(t, resp.PorMetodoPago[model.PagoEfectivo].Equal(dec("100.00")))
	assert.True(t, resp.PorMetodoPago[model.PagoTarjeta].Equal(dec("50.00")))
}

func TestResumenVentasExcluyeAnuladas(t *testing.T) {
	ventas := newStubVentaRepo()
	svc := NewReporteService(ventas, newStubProductoRepo(), newStubCajaRepo())

	seedVenta(ventas, "2026-03-10", model.PagoEfectivo, "100.00")
	for _, v := range ventas.ventas {
		v.Estado = model.VentaAnulada
	}

	resp, err := svc.ResumenVentas(context.Background(), dto.ReporteFilter{Desde: "2026-03-01", Hasta: "2026-03-31"})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.CantidadVentas)
	assert.True(t, resp.TicketPromedio.IsZero())
}

func TestResumenVentasRangoInvalido(t *testing.T) {
	svc := NewReporteService(newStubVentaRepo(), newStubProductoRepo(), newStubCajaRepo())

	_, err := svc.ResumenVentas(context.Background(), dto.ReporteFilter{Desde: "2026-03-31", Hasta: "2026-03-01"})
	assert.ErrorIs(t, err, domain.ErrValidacion)

	_, err = svc.ResumenVentas(context.Background(), dto.ReporteFilter{Desde: "ayer", Hasta: "2026-03-01"})
	assert.ErrorIs(t, err, domain.ErrValidacion)
}

func TestTopProductos(t *testing.T) {
	gaseosa := nuevoProducto("GAS-001", "Gaseosa", "1.50", "3.50", 100)
	arroz := nuevoProducto("ARR-001", "Arroz 5kg", "18.00", "25.00", 40)
	pan := nuevoProducto("PAN-001", "Pan", "0.20", "0.50", 200)

	ventas := newStubVentaRepo()
	svc := NewReporteService(ventas, newStubProductoRepo(gaseosa, arroz, pan), newStubCajaRepo())

	seedVenta(ventas, "2026-03-10", model.PagoEfectivo, "24.50",
		item(gaseosa, 7, "24.50"))
	seedVenta(ventas, "2026-03-11", model.PagoEfectivo, "54.00",
		item(gaseosa, 4, "14.00"), item(pan, 30, "15.00"), item(arroz, 1, "25.00"))

	top, err := svc.TopProductos(context.Background(), dto.ReporteFilter{Desde: "2026-03-01", Hasta: "2026-03-31", Limit: 2})
	require.NoError(t, err)

	require.Len(t, top, 2)
	assert.Equal(t, "Pan", top[0].Nombre)
	assert.Equal(t, 30, top[0].CantidadVendida)
	assert.Equal(t, "Gaseosa", top[1].Nombre)
	assert.Equal(t, 11, top[1].CantidadVendida, "las líneas repetidas acumulan")
	assert.Equal(t, "GAS-001", top[1].SKU)
	assert.True(t, top[1].ValorVendido.Equal(dec("38.50")))
}

func TestMargenGanancia(t *testing.T) {
	gaseosa := nuevoProducto("GAS-001", "Gaseosa", "1.50", "3.50", 100)

	ventas := newStubVentaRepo()
	svc := NewReporteService(ventas, newStubProductoRepo(gaseosa), newStubCajaRepo())

	// 10 unidades a 3.50 = 35.00 de ingreso, costo 10 × 1.50 = 15.00
	seedVenta(ventas, "2026-03-10", model.PagoEfectivo, "35.00", item(gaseosa, 10, "35.00"))

	resp, err := svc.MargenGanancia(context.Background(), dto.ReporteFilter{Desde: "2026-03-01", Hasta: "2026-03-31"})
	require.NoError(t, err)

	assert.True(t, resp.Ingresos.Equal(dec("35.00")))
	assert.True(t, resp.CostoVentas.Equal(dec("15.00")))
	assert.True(t, resp.GananciaBruta.Equal(dec("20.00")))
	assert.True(t, resp.MargenPorcentaje.Equal(dec("57.14")), "margen = %s", resp.MargenPorcentaje)
	assert.Equal(t, 1, resp.VentasAnalizadas)
}

func TestMargenGananciaProductoEliminado(t *testing.T) {
	fantasma := nuevoProducto("DEL-001", "Descatalogado", "9.00", "12.00", 0)

	ventas := newStubVentaRepo()
	// El producto no está en el repo: su costo cuenta como cero
	svc := NewReporteService(ventas, newStubProductoRepo(), newStubCajaRepo())

	seedVenta(ventas, "2026-03-10", model.PagoEfectivo, "12.00", item(fantasma, 1, "12.00"))

	resp, err := svc.MargenGanancia(context.Background(), dto.ReporteFilter{Desde: "2026-03-01", Hasta: "2026-03-31"})
	require.NoError(t, err)
	assert.True(t, resp.CostoVentas.IsZero())
	assert.True(t, resp.GananciaBruta.Equal(dec("12.00")))
}

func TestResumenCajas(t *testing.T) {
	caja := newStubCajaRepo()
	svc := NewReporteService(newStubVentaRepo(), newStubProductoRepo(), caja)

	contado := dec("120.00")
	esperado := dec("123.60")
	diferencia := dec("-3.60")
	now := time.Now()
	caja.sesiones[uuid.New()] = &model.SesionCaja{
		ID:            uuid.New(),
		Terminal:      "caja-1",
		UsuarioID:     uuid.New(),
		MontoInicial:  dec("100.00"),
		MontoEsperado: &esperado,
		MontoContado:  &contado,
		Diferencia:    &diferencia,
		Estado:        model.SesionCerrada,
		OpenedAt:      now.Add(-8 * time.Hour),
		ClosedAt:      &now,
	}

	resp, err := svc.ResumenCajas(context.Background(), "caja-1", 10)
	require.NoError(t, err)
	require.Len(t, resp, 1)
	assert.Equal(t, model.SesionCerrada, resp[0].Estado)
	assert.True(t, resp[0].Diferencia.Equal(dec("-3.60")))
	assert.NotNil(t, resp[0].ClosedAt)
}
