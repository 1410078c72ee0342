package service

import (
	"context"
	"testing"

	"tiendapos/internal/domain"
	"tiendapos/internal/dto"
	"tiendapos/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func abrirSesion(t *testing.T, svc CajaService, terminal, monto string) *dto.SesionCajaResponse {
	t.Helper()
	resp, err := svc.AbrirSesion(context.Background(), uuid.New(), dto.AbrirCajaRequest{
		Terminal:     terminal,
		MontoInicial: dec(monto),
	})
	require.NoError(t, err)
	return resp
}

func TestAbrirSesion(t *testing.T) {
	repo := newStubCajaRepo()
	svc := NewCajaService(repo)

	resp := abrirSesion(t, svc, "caja-1", "100.00")

	assert.Equal(t, model.SesionAbierta, resp.Estado)
	assert.True(t, resp.MontoInicial.Equal(dec("100.00")))
	assert.Nil(t, resp.MontoEsperado, "el esperado recién existe al cerrar")

	// The opening float leaves its movement
	movs, err := repo.ListMovimientos(context.Background(), uuid.MustParse(resp.ID))
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, model.MovFondoInicial, movs[0].Tipo)
}

func TestAbrirSesionDuplicada(t *testing.T) {
	svc := NewCajaService(newStubCajaRepo())

	abrirSesion(t, svc, "caja-1", "100.00")
	_, err := svc.AbrirSesion(context.Background(), uuid.New(), dto.AbrirCajaRequest{
		Terminal:     "caja-1",
		MontoInicial: dec("50.00"),
	})
	assert.ErrorIs(t, err, domain.ErrCajaYaAbierta)
}

func TestAbrirSesionOtroTerminal(t *testing.T) {
	svc := NewCajaService(newStubCajaRepo())

	abrirSesion(t, svc, "caja-1", "100.00")
	abrirSesion(t, svc, "caja-2", "80.00")
}

func TestAbrirSesionMontoInvalido(t *testing.T) {
	svc := NewCajaService(newStubCajaRepo())

	for _, monto := range []string{"0", "-10.00"} {
		_, err := svc.AbrirSesion(context.Background(), uuid.New(), dto.AbrirCajaRequest{
			Terminal:     "caja-1",
			MontoInicial: dec(monto),
		})
		assert.ErrorIs(t, err, domain.ErrMontoInvalido, "monto %s", monto)
	}
}

func TestRegistrarTransaccionManual(t *testing.T) {
	repo := newStubCajaRepo()
	svc := NewCajaService(repo)
	sesion := abrirSesion(t, svc, "caja-1", "100.00")

	_, err := svc.RegistrarTransaccion(context.Background(), uuid.New(), dto.TransaccionCajaRequest{
		SesionCajaID: sesion.ID,
		Tipo:         model.MovIngresoManual,
		Monto:        dec("50.00"),
		Descripcion:  "sencillo para vueltos",
	})
	require.NoError(t, err)

	_, err = svc.RegistrarTransaccion(context.Background(), uuid.New(), dto.TransaccionCajaRequest{
		SesionCajaID: sesion.ID,
		Tipo:         model.MovEgresoManual,
		Monto:        dec("20.00"),
		Descripcion:  "compra de bolsas",
	})
	require.NoError(t, err)

	s := repo.sesiones[uuid.MustParse(sesion.ID)]
	assert.True(t, s.IngresosManuales.Equal(dec("50.00")))
	assert.True(t, s.EgresosManuales.Equal(dec("20.00")))
}

func TestRegistrarTransaccionSesionCerrada(t *testing.T) {
	repo := newStubCajaRepo()
	svc := NewCajaService(repo)
	sesion := abrirSesion(t, svc, "caja-1", "100.00")
	repo.sesiones[uuid.MustParse(sesion.ID)].Estado = model.SesionCerrada

	_, err := svc.RegistrarTransaccion(context.Background(), uuid.New(), dto.TransaccionCajaRequest{
		SesionCajaID: sesion.ID,
		Tipo:         model.MovIngresoManual,
		Monto:        dec("10.00"),
		Descripcion:  "no debería entrar",
	})
	assert.ErrorIs(t, err, domain.ErrCajaNoAbierta)
}

func TestCerrarSesionConDiferencia(t *testing.T) {
	repo := newStubCajaRepo()
	svc := NewCajaService(repo)
	sesion := abrirSesion(t, svc, "caja-1", "100.00")

	// Simulate a day of movement: cash sales plus manual in/out
	s := repo.sesiones[uuid.MustParse(sesion.ID)]
	s.VentasEfectivo = dec("23.60")
	s.IngresosManuales = dec("50.00")
	s.EgresosManuales = dec("20.00")

	resp, err := svc.CerrarSesion(context.Background(), uuid.New(), dto.CerrarCajaRequest{
		SesionCajaID: sesion.ID,
		MontoContado: dec("150.00"),
	})
	require.NoError(t, err)

	// esperado = 100 + 23.60 + 50 - 20
	assert.True(t, resp.MontoEsperado.Equal(dec("153.60")), "esperado = %s", resp.MontoEsperado)
	assert.True(t, resp.Diferencia.Equal(dec("-3.60")), "diferencia = %s", resp.Diferencia)
	assert.Equal(t, model.SesionCerrada, resp.Estado)
	assert.Equal(t, model.SesionCerrada, s.Estado)
	assert.NotNil(t, s.ClosedAt)
}

func TestCerrarSesionSobrante(t *testing.T) {
	repo := newStubCajaRepo()
	svc := NewCajaService(repo)
	sesion := abrirSesion(t, svc, "caja-1", "100.00")

	resp, err := svc.CerrarSesion(context.Background(), uuid.New(), dto.CerrarCajaRequest{
		SesionCajaID: sesion.ID,
		MontoContado: dec("101.50"),
	})
	require.NoError(t, err)
	assert.True(t, resp.Diferencia.Equal(dec("1.50")), "el sobrante no bloquea el cierre")
}

func TestCerrarSesionDosVeces(t *testing.T) {
	svc := NewCajaService(newStubCajaRepo())
	sesion := abrirSesion(t, svc, "caja-1", "100.00")

	_, err := svc.CerrarSesion(context.Background(), uuid.New(), dto.CerrarCajaRequest{
		SesionCajaID: sesion.ID,
		MontoContado: dec("100.00"),
	})
	require.NoError(t, err)

	_, err = svc.CerrarSesion(context.Background(), uuid.New(), dto.CerrarCajaRequest{
		SesionCajaID: sesion.ID,
		MontoContado: dec("100.00"),
	})
	assert.ErrorIs(t, err, domain.ErrEstadoInvalido)
}

func TestCerrarSesionMontoNegativo(t *testing.T) {
	svc := NewCajaService(newStubCajaRepo())
	sesion := abrirSesion(t, svc, "caja-1", "100.00")

	_, err := svc.CerrarSesion(context.Background(), uuid.New(), dto.CerrarCajaRequest{
		SesionCajaID: sesion.ID,
		MontoContado: dec("-1.00"),
	})
	assert.ErrorIs(t, err, domain.ErrMontoInvalido)
}

func TestSesionActiva(t *testing.T) {
	svc := NewCajaService(newStubCajaRepo())
	abrirSesion(t, svc, "caja-1", "100.00")

	resp, err := svc.SesionActiva(context.Background(), "caja-1")
	require.NoError(t, err)
	assert.Equal(t, "caja-1", resp.Terminal)

	_, err = svc.SesionActiva(context.Background(), "caja-9")
	assert.ErrorIs(t, err, domain.ErrCajaNoAbierta)
}
