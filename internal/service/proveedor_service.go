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

type ProveedorService interface {
	Crear(ctx context.Context, req dto.CrearProveedorRequest) (*dto.ProveedorResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.ProveedorResponse, error)
	List(ctx context.Context, busqueda string) ([]dto.ProveedorResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.CrearProveedorRequest) (*dto.ProveedorResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error
	Productos(ctx context.Context, id uuid.UUID) ([]dto.ProductoResponse, error)
}

type proveedorService struct {
	repo         repository.ProveedorRepository
	productoRepo repository.ProductoRepository
}

func NewProveedorService(repo repository.ProveedorRepository, productoRepo repository.ProductoRepository) ProveedorService {
	return &proveedorService{repo: repo, productoRepo: productoRepo}
}

func (s *proveedorService) Crear(ctx context.Context, req dto.CrearProveedorRequest) (*dto.ProveedorResponse, error) {
	p := model.Proveedor{
		RazonSocial: req.RazonSocial,
		RUC:         req.RUC,
		Contacto:    req.Contacto,
		Telefono:    req.Telefono,
		Email:       req.Email,
		Direccion:   req.Direccion,
		Notas:       req.Notas,
		Activo:      true,
	}
	if err := s.repo.Create(ctx, &p); err != nil {
		return nil, err
	}
	return proveedorToResponse(&p), nil
}

func (s *proveedorService) Get(ctx context.Context, id uuid.UUID) (*dto.ProveedorResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: proveedor %s", domain.ErrNoEncontrado, id)
	}
	return proveedorToResponse(p), nil
}

func (s *proveedorService) List(ctx context.Context, busqueda string) ([]dto.ProveedorResponse, error) {
	proveedores, err := s.repo.List(ctx, busqueda)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProveedorResponse, 0, len(proveedores))
	for _, p := range proveedores {
		out = append(out, *proveedorToResponse(&p))
	}
	return out, nil
}

func (s *proveedorService) Actualizar(ctx context.Context, id uuid.UUID, req dto.CrearProveedorRequest) (*dto.ProveedorResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: proveedor %s", domain.ErrNoEncontrado, id)
	}
	p.RazonSocial = req.RazonSocial
	p.RUC = req.RUC
	p.Contacto = req.Contacto
	p.Telefono = req.Telefono
	p.Email = req.Email
	p.Direccion = req.Direccion
	p.Notas = req.Notas
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return proveedorToResponse(p), nil
}

func (s *proveedorService) Desactivar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return fmt.Errorf("%w: proveedor %s", domain.ErrNoEncontrado, id)
	}
	return s.repo.SoftDelete(ctx, id)
}

// Productos lists the active catalog entries sourced from this supplier.
func (s *proveedorService) Productos(ctx context.Context, id uuid.UUID) ([]dto.ProductoResponse, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, fmt.Errorf("%w: proveedor %s", domain.ErrNoEncontrado, id)
	}
	productos, err := s.productoRepo.FindByProveedorID(ctx, id)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductoResponse, 0, len(productos))
	for _, p := range productos {
		out = append(out, *productoToResponse(&p))
	}
	return out, nil
}

func proveedorToResponse(p *model.Proveedor) *dto.ProveedorResponse {
	return &dto.ProveedorResponse{
		ID:          p.ID.String(),
		RazonSocial: p.RazonSocial,
		RUC:         p.RUC,
		Contacto:    p.Contacto,
		Telefono:    p.Telefono,
		Email:       p.Email,
		Direccion:   p.Direccion,
		Notas:       p.Notas,
		Activo:      p.Activo,
	}
}
