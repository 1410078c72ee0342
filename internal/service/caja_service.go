package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tiendapos/internal/domain"
	"tiendapos/internal/dto"
	"tiendapos/internal/model"
	"tiendapos/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CajaService interface {
	AbrirSesion(ctx context.Context, usuarioID uuid.UUID, req dto.AbrirCajaRequest) (*dto.SesionCajaResponse, error)
	RegistrarTransaccion(ctx context.Context, usuarioID uuid.UUID, req dto.TransaccionCajaRequest) (*dto.MovimientoCajaResponse, error)
	CerrarSesion(ctx context.Context, usuarioID uuid.UUID, req dto.CerrarCajaRequest) (*dto.CierreCajaResponse, error)
	SesionActiva(ctx context.Context, terminal string) (*dto.SesionCajaResponse, error)
	GetSesion(ctx context.Context, id uuid.UUID) (*dto.SesionCajaResponse, error)
	Historial(ctx context.Context, terminal string, limit int) ([]dto.SesionCajaResponse, error)
}

type cajaService struct {
	repo repository.CajaRepository
}

func NewCajaService(repo repository.CajaRepository) CajaService {
	return &cajaService{repo: repo}
}

// AbrirSesion opens a cash session for a terminal. The open-session check
// runs again inside the transaction so two simultaneous opens on the same
// terminal cannot both succeed; the partial unique index on sesiones_caja
// backs this at the database level.
func (s *cajaService) AbrirSesion(ctx context.Context, usuarioID uuid.UUID, req dto.AbrirCajaRequest) (*dto.SesionCajaResponse, error) {
	if !req.MontoInicial.IsPositive() {
		return nil, fmt.Errorf("%w: el monto inicial debe ser mayor que cero", domain.ErrMontoInvalido)
	}

	var sesion model.SesionCaja
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if _, err := s.repo.FindSesionAbiertaPorTerminal(ctx, tx, req.Terminal); err == nil {
			return fmt.Errorf("%w: terminal %s", domain.ErrCajaYaAbierta, req.Terminal)
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && !errors.Is(err, domain.ErrNoEncontrado) {
			return err
		}

		sesion = model.SesionCaja{
			Terminal:     req.Terminal,
			UsuarioID:    usuarioID,
			MontoInicial: req.MontoInicial,
			Estado:       model.SesionAbierta,
			OpenedAt:     time.Now(),
		}
		if err := s.repo.CreateSesionTx(ctx, tx, &sesion); err != nil {
			return err
		}

		// The opening float leaves a movement so the audit trail starts at
		// the first peso.
		mov := &model.MovimientoCaja{
			SesionCajaID: sesion.ID,
			Tipo:         model.MovFondoInicial,
			Monto:        req.MontoInicial,
			Descripcion:  "Fondo inicial de caja",
			UsuarioID:    usuarioID,
		}
		return s.repo.CreateMovimiento(ctx, tx, mov)
	})
	if txErr != nil {
		return nil, txErr
	}
	return sesionToResponse(&sesion, nil), nil
}

// RegistrarTransaccion records a manual cash in/out against an open session.
func (s *cajaService) RegistrarTransaccion(ctx context.Context, usuarioID uuid.UUID, req dto.TransaccionCajaRequest) (*dto.MovimientoCajaResponse, error) {
	sid, err := uuid.Parse(req.SesionCajaID)
	if err != nil {
		return nil, fmt.Errorf("%w: sesion_caja_id inválido", domain.ErrValidacion)
	}
	if !req.Monto.IsPositive() {
		return nil, fmt.Errorf("%w: el monto debe ser mayor que cero", domain.ErrMontoInvalido)
	}

	sesion, err := s.repo.FindSesionByID(ctx, sid)
	if err != nil {
		return nil, fmt.Errorf("%w: sesión %s", domain.ErrNoEncontrado, sid)
	}
	if sesion.Estado != model.SesionAbierta {
		return nil, domain.ErrCajaNoAbierta
	}

	mov := &model.MovimientoCaja{
		SesionCajaID: sid,
		Tipo:         req.Tipo,
		Monto:        req.Monto,
		Descripcion:  req.Descripcion,
		UsuarioID:    usuarioID,
	}
	if err := s.repo.CreateMovimiento(ctx, nil, mov); err != nil {
		return nil, err
	}
	if err := s.repo.SumarMovimientoManual(ctx, sid, req.Tipo, req.Monto); err != nil {
		return nil, err
	}
	return movimientoToResponse(mov), nil
}

// CerrarSesion closes a session with the counted amount. The difference is
// informational: the close succeeds whether the till is over or short.
//
//	esperado = inicial + ventas_efectivo + ingresos - egresos
//	diferencia = contado - esperado
func (s *cajaService) CerrarSesion(ctx context.Context, usuarioID uuid.UUID, req dto.CerrarCajaRequest) (*dto.CierreCajaResponse, error) {
	sid, err := uuid.Parse(req.SesionCajaID)
	if err != nil {
		return nil, fmt.Errorf("%w: sesion_caja_id inválido", domain.ErrValidacion)
	}
	if req.MontoContado.IsNegative() {
		return nil, fmt.Errorf("%w: el monto contado no puede ser negativo", domain.ErrMontoInvalido)
	}

	sesion, err := s.repo.FindSesionByID(ctx, sid)
	if err != nil {
		return nil, fmt.Errorf("%w: sesión %s", domain.ErrNoEncontrado, sid)
	}
	if sesion.Estado != model.SesionAbierta {
		return nil, fmt.Errorf("%w: la sesión ya está cerrada", domain.ErrEstadoInvalido)
	}

	esperado := sesion.MontoInicial.
		Add(sesion.VentasEfectivo).
		Add(sesion.IngresosManuales).
		Sub(sesion.EgresosManuales)
	diferencia := req.MontoContado.Sub(esperado)

	now := time.Now()
	sesion.MontoEsperado = &esperado
	sesion.MontoContado = &req.MontoContado
	sesion.Diferencia = &diferencia
	sesion.Estado = model.SesionCerrada
	sesion.ClosedAt = &now
	if req.Notas != nil {
		sesion.Notas = req.Notas
	}
	if err := s.repo.UpdateSesion(ctx, sesion); err != nil {
		return nil, err
	}

	return &dto.CierreCajaResponse{
		SesionCajaID:  sesion.ID.String(),
		MontoEsperado: esperado,
		MontoContado:  req.MontoContado,
		Diferencia:    diferencia,
		Estado:        model.SesionCerrada,
	}, nil
}

// SesionActiva returns the open session on a terminal, with its movements.
func (s *cajaService) SesionActiva(ctx context.Context, terminal string) (*dto.SesionCajaResponse, error) {
	sesion, err := s.repo.FindSesionAbiertaPorTerminal(ctx, nil, terminal)
	if err != nil {
		return nil, fmt.Errorf("%w: terminal %s", domain.ErrCajaNoAbierta, terminal)
	}
	movs, _ := s.repo.ListMovimientos(ctx, sesion.ID)
	return sesionToResponse(sesion, movs), nil
}

func (s *cajaService) GetSesion(ctx context.Context, id uuid.UUID) (*dto.SesionCajaResponse, error) {
	sesion, err := s.repo.FindSesionByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: sesión %s", domain.ErrNoEncontrado, id)
	}
	return sesionToResponse(sesion, sesion.Movimientos), nil
}

func (s *cajaService) Historial(ctx context.Context, terminal string, limit int) ([]dto.SesionCajaResponse, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}
	sesiones, err := s.repo.ListSesiones(ctx, terminal, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SesionCajaResponse, 0, len(sesiones))
	for _, ses := range sesiones {
		out = append(out, *sesionToResponse(&ses, nil))
	}
	return out, nil
}

func movimientoToResponse(m *model.MovimientoCaja) *dto.MovimientoCajaResponse {
	return &dto.MovimientoCajaResponse{
		ID:          m.ID.String(),
		Tipo:        m.Tipo,
		Monto:       m.Monto,
		Descripcion: m.Descripcion,
		CreatedAt:   m.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

func sesionToResponse(s *model.SesionCaja, movs []model.MovimientoCaja) *dto.SesionCajaResponse {
	resp := &dto.SesionCajaResponse{
		ID:               s.ID.String(),
		Terminal:         s.Terminal,
		UsuarioID:        s.UsuarioID.String(),
		MontoInicial:     s.MontoInicial,
		VentasEfectivo:   s.VentasEfectivo,
		IngresosManuales: s.IngresosManuales,
		EgresosManuales:  s.EgresosManuales,
		MontoEsperado:    s.MontoEsperado,
		MontoContado:     s.MontoContado,
		Diferencia:       s.Diferencia,
		Estado:           s.Estado,
		Notas:            s.Notas,
		OpenedAt:         s.OpenedAt.Format("2006-01-02T15:04:05Z"),
	}
	if s.ClosedAt != nil {
		t := s.ClosedAt.Format("2006-01-02T15:04:05Z")
		resp.ClosedAt = &t
	}
	for _, m := range movs {
		resp.Movimientos = append(resp.Movimientos, *movimientoToResponse(&m))
	}
	return resp
}
