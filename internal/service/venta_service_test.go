package service

import (
	"context"
	"testing"
	"time"

	"tiendapos/internal/config"
	"tiendapos/internal/domain"
	"tiendapos/internal/dto"
	"tiendapos/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ventaTestEnv struct {
	svc      VentaService
	ventas   *stubVentaRepo
	prods    *stubProductoRepo
	caja     *stubCajaRepo
	clientes *stubClienteRepo
	movs     *stubMovStockRepo
	sesion   *model.SesionCaja
	cajero   uuid.UUID
}

func newVentaTestEnv(t *testing.T, productos ...*model.Producto) *ventaTestEnv {
	t.Helper()
	env := &ventaTestEnv{
		ventas:   newStubVentaRepo(),
		prods:    newStubProductoRepo(productos...),
		caja:     newStubCajaRepo(),
		clientes: newStubClienteRepo(),
		movs:     newStubMovStockRepo(),
		cajero:   uuid.New(),
	}
	env.sesion = &model.SesionCaja{
		ID:           uuid.New(),
		Terminal:     "caja-1",
		UsuarioID:    env.cajero,
		MontoInicial: dec("100.00"),
		Estado:       model.SesionAbierta,
		OpenedAt:     time.Now(),
	}
	env.caja.sesiones[env.sesion.ID] = env.sesion

	cfg := &config.Config{TaxRate: "0.18", RequireOpenSession: true}
	env.svc = NewVentaService(env.ventas, env.prods, env.caja, env.clientes, env.movs, nil, cfg)
	return env
}

func (env *ventaTestEnv) requestEfectivo(p *model.Producto, cantidad int, recibido string) dto.RegistrarVentaRequest {
	sid := env.sesion.ID.String()
	monto := dec(recibido)
	return dto.RegistrarVentaRequest{
		Items:         []dto.ItemVentaRequest{{ProductoID: p.ID.String(), Cantidad: cantidad}},
		MetodoPago:    model.PagoEfectivo,
		MontoRecibido: &monto,
		SesionCajaID:  &sid,
	}
}

func TestRegistrarVentaEfectivo(t *testing.T) {
	p := nuevoProducto("GAS-001", "Gaseosa", "1.50", "10.00", 5)
	env := newVentaTestEnv(t, p)

	resp, err := env.svc.RegistrarVenta(context.Background(), env.cajero, env.requestEfectivo(p, 2, "30.00"))
	require.NoError(t, err)

	// 20.00 + 3.60 de IGV
	assert.True(t, resp.Total.Equal(dec("23.60")), "total = %s", resp.Total)
	require.NotNil(t, resp.Vuelto)
	assert.True(t, resp.Vuelto.Equal(dec("6.40")), "vuelto = %s", resp.Vuelto)
	assert.Equal(t, 1, resp.NumeroTicket)
	assert.Equal(t, model.VentaPagada, resp.Estado)

	// Stock decremented and the movement recorded
	assert.Equal(t, 3, p.Stock)
	movs := env.movs.porTipo(model.MovStockVenta)
	require.Len(t, movs, 1)
	assert.Equal(t, -2, movs[0].Cantidad)

	// Cash fed the session's running total
	assert.True(t, env.sesion.VentasEfectivo.Equal(dec("23.60")))
}

func TestRegistrarVentaEfectivoSinMontoRecibido(t *testing.T) {
	p := nuevoProducto("GAS-001", "Gaseosa", "1.50", "10.00", 5)
	env := newVentaTestEnv(t, p)

	req := env.requestEfectivo(p, 1, "50.00")
	req.MontoRecibido = nil

	_, err := env.svc.RegistrarVenta(context.Background(), env.cajero, req)
	assert.ErrorIs(t, err, domain.ErrValidacion)
}

func TestRegistrarVentaPagoInsuficiente(t *testing.T) {
	p := nuevoProducto("GAS-001", "Gaseosa", "1.50", "10.00", 5)
	env := newVentaTestEnv(t, p)

	_, err := env.svc.RegistrarVenta(context.Background(), env.cajero, env.requestEfectivo(p, 2, "20.00"))
	assert.ErrorIs(t, err, domain.ErrPagoInsuficiente)

	// Nothing was committed
	assert.Equal(t, 5, p.Stock)
	assert.Empty(t, env.ventas.ventas)
}

func TestRegistrarVentaSinSesionAbierta(t *testing.T) {
	p := nuevoProducto("GAS-001", "Gaseosa", "1.50", "10.00", 5)
	env := newVentaTestEnv(t, p)

	req := env.requestEfectivo(p, 1, "20.00")
	req.SesionCajaID = nil

	_, err := env.svc.RegistrarVenta(context.Background(), env.cajero, req)
	assert.ErrorIs(t, err, domain.ErrCajaNoAbierta)
}

func TestRegistrarVentaSesionCerrada(t *testing.T) {
	p := nuevoProducto("GAS-001", "Gaseosa", "1.50", "10.00", 5)
	env := newVentaTestEnv(t, p)
	env.sesion.Estado = model.SesionCerrada

	_, err := env.svc.RegistrarVenta(context.Background(), env.cajero, env.requestEfectivo(p, 1, "20.00"))
	assert.ErrorIs(t, err, domain.ErrCajaNoAbierta)
}

func TestRegistrarVentaTarjetaNoTocaCaja(t *testing.T) {
	p := nuevoProducto("GAS-001", "Gaseosa", "1.50", "10.00", 5)
	env := newVentaTestEnv(t, p)

	sid := env.sesion.ID.String()
	resp, err := env.svc.RegistrarVenta(context.Background(), env.cajero, dto.RegistrarVentaRequest{
		Items:        []dto.ItemVentaRequest{{ProductoID: p.ID.String(), Cantidad: 1}},
		MetodoPago:   model.PagoTarjeta,
		SesionCajaID: &sid,
	})
	require.NoError(t, err)

	assert.Nil(t, resp.Vuelto)
	assert.Equal(t, 4, p.Stock)
	assert.True(t, env.sesion.VentasEfectivo.IsZero(), "una venta con tarjeta no suma efectivo")
}

func TestRegistrarVentaTarjetaSinSesion(t *testing.T) {
	p := nuevoProducto("GAS-001", "Gaseosa", "1.50", "10.00", 5)
	env := newVentaTestEnv(t, p)
	env.sesion.Estado = model.SesionCerrada

	// The open-till gate only applies to cash: a card sale commits even
	// with every till closed, and stays unlinked from any session.
	resp, err := env.svc.RegistrarVenta(context.Background(), env.cajero, dto.RegistrarVentaRequest{
		Items:      []dto.ItemVentaRequest{{ProductoID: p.ID.String(), Cantidad: 1}},
		MetodoPago: model.PagoTarjeta,
	})
	require.NoError(t, err)

	assert.Nil(t, resp.SesionCajaID)
	assert.Equal(t, 4, p.Stock)
	assert.True(t, env.sesion.VentasEfectivo.IsZero())
}

func TestRegistrarVentaStockInsuficiente(t *testing.T) {
	p := nuevoProducto("GAS-001", "Gaseosa", "1.50", "10.00", 1)
	env := newVentaTestEnv(t, p)

	_, err := env.svc.RegistrarVenta(context.Background(), env.cajero, env.requestEfectivo(p, 2, "50.00"))
	assert.ErrorIs(t, err, domain.ErrStockInsuficiente)
	assert.Equal(t, 1, p.Stock)
}

func TestRegistrarVentaClienteInexistente(t *testing.T) {
	p := nuevoProducto("GAS-001", "Gaseosa", "1.50", "10.00", 5)
	env := newVentaTestEnv(t, p)

	req := env.requestEfectivo(p, 1, "20.00")
	cid := uuid.NewString()
	req.ClienteID = &cid

	_, err := env.svc.RegistrarVenta(context.Background(), env.cajero, req)
	assert.ErrorIs(t, err, domain.ErrNoEncontrado)
}

func TestCotizarVentaNoCompromete(t *testing.T) {
	p := nuevoProducto("GAS-001", "Gaseosa", "1.50", "10.00", 5)
	env := newVentaTestEnv(t, p)

	resp, err := env.svc.CotizarVenta(context.Background(), dto.CotizarVentaRequest{
		Items: []dto.ItemVentaRequest{{ProductoID: p.ID.String(), Cantidad: 3}},
	})
	require.NoError(t, err)

	assert.True(t, resp.Total.Equal(dec("35.40")), "total = %s", resp.Total)
	assert.Equal(t, 5, p.Stock, "cotizar nunca descuenta stock")
	assert.Empty(t, env.ventas.ventas, "cotizar no registra ventas")
}

func TestAnularVentaRestauraStockYCaja(t *testing.T) {
	p := nuevoProducto("GAS-001", "Gaseosa", "1.50", "10.00", 5)
	env := newVentaTestEnv(t, p)

	resp, err := env.svc.RegistrarVenta(context.Background(), env.cajero, env.requestEfectivo(p, 2, "30.00"))
	require.NoError(t, err)
	require.Equal(t, 3, p.Stock)

	ventaID := uuid.MustParse(resp.ID)
	err = env.svc.AnularVenta(context.Background(), ventaID, env.cajero, "cliente se arrepintió")
	require.NoError(t, err)

	assert.Equal(t, 5, p.Stock)
	assert.True(t, env.sesion.VentasEfectivo.IsZero(), "el efectivo de la venta se revierte")

	venta, err := env.ventas.FindByID(context.Background(), ventaID)
	require.NoError(t, err)
	assert.Equal(t, model.VentaAnulada, venta.Estado)

	restauraciones := env.movs.porTipo(model.MovStockAnulacion)
	require.Len(t, restauraciones, 1)
	assert.Equal(t, 2, restauraciones[0].Cantidad)

	// The ledger reconciles by tipo: one venta_efectivo in, one
	// anulacion_venta backing it out.
	var entradas, reversos []model.MovimientoCaja
	for _, m := range env.caja.movimientos {
		switch m.Tipo {
		case model.MovVentaEfectivo:
			entradas = append(entradas, m)
		case model.MovAnulacionVenta:
			reversos = append(reversos, m)
		}
	}
	require.Len(t, entradas, 1)
	require.Len(t, reversos, 1)
	assert.True(t, reversos[0].Monto.Equal(entradas[0].Monto))
}

func TestAnularVentaYaAnulada(t *testing.T) {
	p := nuevoProducto("GAS-001", "Gaseosa", "1.50", "10.00", 5)
	env := newVentaTestEnv(t, p)

	resp, err := env.svc.RegistrarVenta(context.Background(), env.cajero, env.requestEfectivo(p, 1, "20.00"))
	require.NoError(t, err)

	ventaID := uuid.MustParse(resp.ID)
	require.NoError(t, env.svc.AnularVenta(context.Background(), ventaID, env.cajero, "error de cobro"))

	err = env.svc.AnularVenta(context.Background(), ventaID, env.cajero, "error de cobro")
	assert.ErrorIs(t, err, domain.ErrEstadoInvalido)
	assert.Equal(t, 5, p.Stock, "el stock no se restaura dos veces")
}
