package service

import (
	"context"
	"fmt"

	"tiendapos/internal/domain"
	"tiendapos/internal/dto"
	"tiendapos/internal/model"
	"tiendapos/internal/repository"

	"github.com/google/uuid"
)

type ClienteService interface {
	Crear(ctx context.Context, req dto.CrearClienteRequest) (*dto.ClienteResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.ClienteResponse, error)
	List(ctx context.Context, busqueda string) ([]dto.ClienteResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.CrearClienteRequest) (*dto.ClienteResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error
}

type clienteService struct {
	repo repository.ClienteRepository
}

func NewClienteService(repo repository.ClienteRepository) ClienteService {
	return &clienteService{repo: repo}
}

func (s *clienteService) Crear(ctx context.Context, req dto.CrearClienteRequest) (*dto.ClienteResponse, error) {
	c := model.Cliente{
		NombreCompleto: req.NombreCompleto,
		TipoDoc:        req.TipoDoc,
		NumeroDoc:      req.NumeroDoc,
		Telefono:       req.Telefono,
		Email:          req.Email,
		Direccion:      req.Direccion,
		TipoCliente:    req.TipoCliente,
		LimiteCredito:  req.LimiteCredito,
		Notas:          req.Notas,
		Activo:         true,
	}
	if err := s.repo.Create(ctx, &c); err != nil {
		return nil, err
	}
	return clienteToResponse(&c), nil
}

func (s *clienteService) Get(ctx context.Context, id uuid.UUID) (*dto.ClienteResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: cliente %s", domain.ErrNoEncontrado, id)
	}
	return clienteToResponse(c), nil
}

func (s *clienteService) List(ctx context.Context, busqueda string) ([]dto.ClienteResponse, error) {
	clientes, err := s.repo.List(ctx, busqueda)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ClienteResponse, 0, len(clientes))
	for _, c := range clientes {
		out = append(out, *clienteToResponse(&c))
	}
	return out, nil
}

func (s *clienteService) Actualizar(ctx context.Context, id uuid.UUID, req dto.CrearClienteRequest) (*dto.ClienteResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: cliente %s", domain.ErrNoEncontrado, id)
	}
	c.NombreCompleto = req.NombreCompleto
	c.TipoDoc = req.TipoDoc
	c.NumeroDoc = req.NumeroDoc
	c.Telefono = req.Telefono
	c.Email = req.Email
	c.Direccion = req.Direccion
	c.TipoCliente = req.TipoCliente
	c.LimiteCredito = req.LimiteCredito
	c.Notas = req.Notas
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return clienteToResponse(c), nil
}

func (s *clienteService) Desactivar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return fmt.Errorf("%w: cliente %s", domain.ErrNoEncontrado, id)
	}
	return s.repo.SoftDelete(ctx, id)
}

func clienteToResponse(c *model.Cliente) *dto.ClienteResponse {
	return &dto.ClienteResponse{
		ID:             c.ID.String(),
		NombreCompleto: c.NombreCompleto,
		TipoDoc:        c.TipoDoc,
		NumeroDoc:      c.NumeroDoc,
		Telefono:       c.Telefono,
		Email:          c.Email,
		Direccion:      c.Direccion,
		TipoCliente:    c.TipoCliente,
		LimiteCredito:  c.LimiteCredito,
		Notas:          c.Notas,
		Activo:         c.Activo,
		CreatedAt:      c.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
