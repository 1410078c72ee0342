package service

import (
	"context"
	"errors"
	"fmt"

	"tiendapos/internal/domain"
	"tiendapos/internal/dto"
	"tiendapos/internal/model"
	"tiendapos/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductoService interface {
	Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error)
	GetBySKU(ctx context.Context, sku string) (*dto.ProductoResponse, error)
	List(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error
	Reactivar(ctx context.Context, id uuid.UUID) error
	AjustarStock(ctx context.Context, id, usuarioID uuid.UUID, req dto.AjustarStockRequest) (*dto.ProductoResponse, error)
	AlertasStock(ctx context.Context) ([]dto.AlertaStockResponse, error)
	Movimientos(ctx context.Context, id uuid.UUID, limit int) ([]dto.MovimientoStockResponse, error)
}

type productoService struct {
	repo    repository.ProductoRepository
	movRepo repository.MovimientoStockRepository
	cache   PrecioCache
}

// PrecioCache invalidates cached price lookups when a product changes.
// The Redis implementation lives in infra; tests pass nil.
type PrecioCache interface {
	Invalidate(ctx context.Context, sku string)
}

func NewProductoService(repo repository.ProductoRepository, movRepo repository.MovimientoStockRepository, cache PrecioCache) ProductoService {
	return &productoService{repo: repo, movRepo: movRepo, cache: cache}
}

func (s *productoService) Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error) {
	if _, err := s.repo.FindBySKU(ctx, req.SKU); err == nil {
		return nil, fmt.Errorf("%w: SKU %s ya existe", domain.ErrDuplicado, req.SKU)
	}

	p := model.Producto{
		SKU:          req.SKU,
		Nombre:       req.Nombre,
		Descripcion:  req.Descripcion,
		Categoria:    req.Categoria,
		Unidad:       req.Unidad,
		PrecioCompra: req.PrecioCompra,
		PrecioVenta:  req.PrecioVenta,
		Stock:        req.Stock,
		StockMinimo:  req.StockMinimo,
		EsServicio:   req.EsServicio,
		Activo:       true,
	}
	if p.Unidad == "" {
		p.Unidad = "unidad"
	}
	if req.ProveedorID != nil {
		pid, err := uuid.Parse(*req.ProveedorID)
		if err != nil {
			return nil, fmt.Errorf("%w: proveedor_id inválido", domain.ErrValidacion)
		}
		p.ProveedorID = &pid
	}

	if err := s.repo.Create(ctx, &p); err != nil {
		return nil, err
	}
	return productoToResponse(&p), nil
}

func (s *productoService) Get(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", domain.ErrProductoNoEncontrado, id)
		}
		return nil, err
	}
	return productoToResponse(p), nil
}

func (s *productoService) GetBySKU(ctx context.Context, sku string) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindBySKU(ctx, sku)
	if err != nil {
		return nil, fmt.Errorf("%w: SKU %s", domain.ErrProductoNoEncontrado, sku)
	}
	return productoToResponse(p), nil
}

func (s *productoService) List(ctx context.Context, filter dto.ProductoFilter) (*dto.ProductoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	productos, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.ProductoResponse, 0, len(productos))
	for _, p := range productos {
		data = append(data, *productoToResponse(&p))
	}
	return &dto.ProductoListResponse{
		Data:  data,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *productoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrProductoNoEncontrado, id)
	}

	if req.Nombre != nil {
		p.Nombre = *req.Nombre
	}
	if req.Descripcion != nil {
		p.Descripcion = req.Descripcion
	}
	if req.Categoria != nil {
		p.Categoria = req.Categoria
	}
	if req.Unidad != nil {
		p.Unidad = *req.Unidad
	}
	if req.PrecioCompra != nil {
		p.PrecioCompra = *req.PrecioCompra
	}
	if req.PrecioVenta != nil {
		p.PrecioVenta = *req.PrecioVenta
	}
	if req.StockMinimo != nil {
		p.StockMinimo = *req.StockMinimo
	}
	if req.ProveedorID != nil {
		pid, err := uuid.Parse(*req.ProveedorID)
		if err != nil {
			return nil, fmt.Errorf("%w: proveedor_id inválido", domain.ErrValidacion)
		}
		p.ProveedorID = &pid
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, p.SKU)
	}
	return productoToResponse(p), nil
}

func (s *productoService) Desactivar(ctx context.Context, id uuid.UUID) error {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("%w: %s", domain.ErrProductoNoEncontrado, id)
	}
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, p.SKU)
	}
	return nil
}

func (s *productoService) Reactivar(ctx context.Context, id uuid.UUID) error {
	return s.repo.Reactivar(ctx, id)
}

// AjustarStock applies a signed manual correction and records the movement.
// Adjustments that would leave negative stock are rejected whole.
func (s *productoService) AjustarStock(ctx context.Context, id, usuarioID uuid.UUID, req dto.AjustarStockRequest) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrProductoNoEncontrado, id)
	}
	if p.EsServicio {
		return nil, fmt.Errorf("%w: los servicios no llevan stock", domain.ErrValidacion)
	}

	if err := s.repo.AjustarStock(ctx, id, req.Delta); err != nil {
		return nil, err
	}

	mov := &model.MovimientoStock{
		ProductoID:    id,
		Tipo:          model.MovStockAjuste,
		Cantidad:      req.Delta,
		StockAnterior: p.Stock,
		StockNuevo:    p.Stock + req.Delta,
		Motivo:        req.Motivo,
		UsuarioID:     usuarioID,
	}
	if err := s.movRepo.Create(ctx, nil, mov); err != nil {
		return nil, err
	}

	p.Stock += req.Delta
	return productoToResponse(p), nil
}

func (s *productoService) AlertasStock(ctx context.Context) ([]dto.AlertaStockResponse, error) {
	productos, err := s.repo.ListBajoStock(ctx)
	if err != nil {
		return nil, err
	}
	alertas := make([]dto.AlertaStockResponse, 0, len(productos))
	for _, p := range productos {
		alertas = append(alertas, dto.AlertaStockResponse{
			ProductoID:  p.ID.String(),
			SKU:         p.SKU,
			Nombre:      p.Nombre,
			Stock:       p.Stock,
			StockMinimo: p.StockMinimo,
		})
	}
	return alertas, nil
}

func (s *productoService) Movimientos(ctx context.Context, id uuid.UUID, limit int) ([]dto.MovimientoStockResponse, error) {
	if limit < 1 || limit > 200 {
		limit = 50
	}
	movs, err := s.movRepo.ListByProducto(ctx, id, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovimientoStockResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, dto.MovimientoStockResponse{
			ID:            m.ID.String(),
			ProductoID:    m.ProductoID.String(),
			Tipo:          m.Tipo,
			Cantidad:      m.Cantidad,
			StockAnterior: m.StockAnterior,
			StockNuevo:    m.StockNuevo,
			Motivo:        m.Motivo,
			CreatedAt:     m.CreatedAt.Format("2006-01-02T15:04:05Z"),
		})
	}
	return out, nil
}

func productoToResponse(p *model.Producto) *dto.ProductoResponse {
	resp := &dto.ProductoResponse{
		ID:           p.ID.String(),
		SKU:          p.SKU,
		Nombre:       p.Nombre,
		Descripcion:  p.Descripcion,
		Categoria:    p.Categoria,
		Unidad:       p.Unidad,
		PrecioCompra: p.PrecioCompra,
		PrecioVenta:  p.PrecioVenta,
		Stock:        p.Stock,
		StockMinimo:  p.StockMinimo,
		EsServicio:   p.EsServicio,
		Activo:       p.Activo,
		BajoStock:    p.BajoStock(),
	}
	if p.ProveedorID != nil {
		id := p.ProveedorID.String()
		resp.ProveedorID = &id
	}
	return resp
}
