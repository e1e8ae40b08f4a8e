package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Omar25092001/Backend-Ofertas/internal/apierror"
	"github.com/Omar25092001/Backend-Ofertas/internal/dto"
	"github.com/Omar25092001/Backend-Ofertas/internal/model"
	"github.com/Omar25092001/Backend-Ofertas/internal/repository"
)

type CategoriaService interface {
	Listar(ctx context.Context) ([]dto.CategoriaConProductos, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.CategoriaResponse, error)
	Crear(ctx context.Context, req dto.CrearCategoriaRequest) (*dto.CategoriaResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarCategoriaRequest) (*dto.CategoriaResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type categoriaService struct {
	repo repository.CategoriaRepository
}

func NewCategoriaService(repo repository.CategoriaRepository) CategoriaService {
	return &categoriaService{repo: repo}
}

func (s *categoriaService) Listar(ctx context.Context) ([]dto.CategoriaConProductos, error) {
	categorias, err := s.repo.List(ctx)
	if err != nil {
		return nil, apierror.Internal("error al listar categorias", err)
	}

	out := make([]dto.CategoriaConProductos, len(categorias))
	for i := range categorias {
		total, err := s.repo.CountProductos(ctx, categorias[i].ID)
		if err != nil {
			return nil, apierror.Internal("error al contar productos", err)
		}
		out[i] = dto.CategoriaConProductos{
			CategoriaResponse: categoriaToResponse(&categorias[i]),
			TotalProductos:    total,
		}
	}
	return out, nil
}

func (s *categoriaService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.CategoriaResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("categoria no encontrada")
		}
		return nil, apierror.Internal("error al obtener la categoria", err)
	}
	resp := categoriaToResponse(c)
	return &resp, nil
}

func (s *categoriaService) Crear(ctx context.Context, req dto.CrearCategoriaRequest) (*dto.CategoriaResponse, error) {
	c := &model.Categoria{Nombre: req.Nombre, Descripcion: req.Descripcion}
	if err := s.repo.Create(ctx, c); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierror.Validation("ya existe una categoria con ese nombre")
		}
		return nil, apierror.Internal("error al crear la categoria", err)
	}
	resp := categoriaToResponse(c)
	return &resp, nil
}

func (s *categoriaService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarCategoriaRequest) (*dto.CategoriaResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("categoria no encontrada")
		}
		return nil, apierror.Internal("error al obtener la categoria", err)
	}

	if req.Nombre != nil {
		c.Nombre = *req.Nombre
	}
	if req.Descripcion != nil {
		c.Descripcion = req.Descripcion
	}

	if err := s.repo.Update(ctx, c); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierror.Validation("ya existe una categoria con ese nombre")
		}
		return nil, apierror.Internal("error al actualizar la categoria", err)
	}
	resp := categoriaToResponse(c)
	return &resp, nil
}

func (s *categoriaService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.NotFound("categoria no encontrada")
		}
		return apierror.Internal("error al obtener la categoria", err)
	}

	productos, err := s.repo.CountProductos(ctx, id)
	if err != nil {
		return apierror.Internal("error al contar productos de la categoria", err)
	}
	if productos > 0 {
		return apierror.Constraint(
			fmt.Sprintf("no se puede eliminar: la categoria tiene %d productos asociados", productos),
			int(productos),
		)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return apierror.Internal("error al eliminar la categoria", err)
	}
	return nil
}
