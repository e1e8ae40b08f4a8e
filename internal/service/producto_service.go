package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Omar25092001/Backend-Ofertas/internal/apierror"
	"github.com/Omar25092001/Backend-Ofertas/internal/dto"
	"github.com/Omar25092001/Backend-Ofertas/internal/model"
	"github.com/Omar25092001/Backend-Ofertas/internal/pricing"
	"github.com/Omar25092001/Backend-Ofertas/internal/repository"
)

type ProductoService interface {
	Listar(ctx context.Context, q dto.ProductoQuery) (*dto.ProductoListResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error)
	Buscar(ctx context.Context, q dto.ProductoQuery) (*dto.ProductoListResponse, error)
	ListarPorCategoria(ctx context.Context, categoriaID uuid.UUID, q dto.ProductoQuery) (*dto.ProductoListResponse, error)
	Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type productoService struct {
	repo          repository.ProductoRepository
	categoriaRepo repository.CategoriaRepository
}

func NewProductoService(repo repository.ProductoRepository, categoriaRepo repository.CategoriaRepository) ProductoService {
	return &productoService{repo: repo, categoriaRepo: categoriaRepo}
}

// productoConMejorPrecio builds the best-price view of a product from its
// preloaded valid offers.
func productoConMejorPrecio(p *model.Producto) dto.ProductoConMejorPrecio {
	out := dto.ProductoConMejorPrecio{
		ProductoResponse: productoToResponse(p),
		TieneOfertas:     len(p.Ofertas) > 0,
		TotalOfertas:     len(p.Ofertas),
	}
	if mejor := pricing.MejorOferta(p.Ofertas); mejor != nil {
		out.MejorPrecio = &dto.MejorPrecio{
			OfertaID:       mejor.ID,
			Precio:         mejor.PrecioOferta,
			PrecioOriginal: mejor.PrecioOriginal,
			Descuento:      pricing.DescuentoEntero(mejor.PrecioOriginal, mejor.PrecioOferta),
			Supermercado:   supermercadoResumen(mejor.Supermercado),
		}
	}
	return out
}

func (s *productoService) Listar(ctx context.Context, q dto.ProductoQuery) (*dto.ProductoListResponse, error) {
	productos, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, apierror.Internal("error al listar productos", err)
	}

	out := make([]dto.ProductoConMejorPrecio, len(productos))
	for i := range productos {
		out[i] = productoConMejorPrecio(&productos[i])
	}
	return &dto.ProductoListResponse{
		Productos:  out,
		Pagination: dto.NewPaginacion(total, q.Page, q.Limit),
	}, nil
}

func (s *productoService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("producto no encontrado")
		}
		return nil, apierror.Internal("error al obtener el producto", err)
	}
	resp := productoToResponse(p)
	return &resp, nil
}

func (s *productoService) Buscar(ctx context.Context, q dto.ProductoQuery) (*dto.ProductoListResponse, error) {
	if strings.TrimSpace(q.Termino) == "" {
		return nil, apierror.Validation("el parametro termino es obligatorio")
	}
	return s.Listar(ctx, q)
}

func (s *productoService) ListarPorCategoria(ctx context.Context, categoriaID uuid.UUID, q dto.ProductoQuery) (*dto.ProductoListResponse, error) {
	if _, err := s.categoriaRepo.FindByID(ctx, categoriaID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("categoria no encontrada")
		}
		return nil, apierror.Internal("error al obtener la categoria", err)
	}
	q.CategoriaID = &categoriaID
	return s.Listar(ctx, q)
}

func (s *productoService) resolverCategoria(ctx context.Context, raw *string) (*uuid.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := uuid.Parse(*raw)
	if err != nil {
		return nil, apierror.Validation("id_categoria invalido")
	}
	if _, err := s.categoriaRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.Validation("la categoria indicada no existe")
		}
		return nil, apierror.Internal("error al validar la categoria", err)
	}
	return &id, nil
}

func (s *productoService) Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error) {
	categoriaID, err := s.resolverCategoria(ctx, req.CategoriaID)
	if err != nil {
		return nil, err
	}

	p := &model.Producto{
		Nombre:      req.Nombre,
		Marca:       req.Marca,
		Descripcion: req.Descripcion,
		ImagenURL:   req.ImagenURL,
		CategoriaID: categoriaID,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, apierror.Internal("error al crear el producto", err)
	}
	return s.ObtenerPorID(ctx, p.ID)
}

func (s *productoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("producto no encontrado")
		}
		return nil, apierror.Internal("error al obtener el producto", err)
	}

	if req.Nombre != nil {
		p.Nombre = *req.Nombre
	}
	if req.Marca != nil {
		p.Marca = req.Marca
	}
	if req.Descripcion != nil {
		p.Descripcion = req.Descripcion
	}
	if req.ImagenURL != nil {
		p.ImagenURL = req.ImagenURL
	}
	if req.CategoriaID != nil {
		categoriaID, err := s.resolverCategoria(ctx, req.CategoriaID)
		if err != nil {
			return nil, err
		}
		p.CategoriaID = categoriaID
	}

	p.Categoria = nil
	p.Ofertas = nil
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, apierror.Internal("error al actualizar el producto", err)
	}
	return s.ObtenerPorID(ctx, id)
}

func (s *productoService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.NotFound("producto no encontrado")
		}
		return apierror.Internal("error al obtener el producto", err)
	}

	ofertas, err := s.repo.CountOfertas(ctx, id)
	if err != nil {
		return apierror.Internal("error al contar ofertas del producto", err)
	}
	if ofertas > 0 {
		return apierror.Constraint(
			fmt.Sprintf("no se puede eliminar: el producto tiene %d ofertas asociadas", ofertas),
			int(ofertas),
		)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return apierror.Internal("error al eliminar el producto", err)
	}
	return nil
}
