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
	"github.com/Omar25092001/Backend-Ofertas/internal/repository"
)

type SupermercadoService interface {
	Listar(ctx context.Context) ([]dto.SupermercadoConOfertas, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.SupermercadoResponse, error)
	Buscar(ctx context.Context, nombre string) ([]dto.SupermercadoConOfertas, error)
	Estadisticas(ctx context.Context) ([]dto.EstadisticasSupermercado, error)
	Crear(ctx context.Context, req dto.CrearSupermercadoRequest) (*dto.SupermercadoResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarSupermercadoRequest) (*dto.SupermercadoResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type supermercadoService struct {
	repo repository.SupermercadoRepository
}

func NewSupermercadoService(repo repository.SupermercadoRepository) SupermercadoService {
	return &supermercadoService{repo: repo}
}

func (s *supermercadoService) conOfertas(ctx context.Context, supermercados []model.Supermercado) ([]dto.SupermercadoConOfertas, error) {
	out := make([]dto.SupermercadoConOfertas, len(supermercados))
	for i := range supermercados {
		validas, err := s.repo.CountOfertasValidas(ctx, supermercados[i].ID)
		if err != nil {
			return nil, apierror.Internal("error al contar ofertas", err)
		}
		out[i] = dto.SupermercadoConOfertas{
			SupermercadoResponse: supermercadoToResponse(&supermercados[i]),
			TotalOfertasValidas:  validas,
		}
	}
	return out, nil
}

func (s *supermercadoService) Listar(ctx context.Context) ([]dto.SupermercadoConOfertas, error) {
	supermercados, err := s.repo.List(ctx)
	if err != nil {
		return nil, apierror.Internal("error al listar supermercados", err)
	}
	return s.conOfertas(ctx, supermercados)
}

func (s *supermercadoService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.SupermercadoResponse, error) {
	sup, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("supermercado no encontrado")
		}
		return nil, apierror.Internal("error al obtener el supermercado", err)
	}
	resp := supermercadoToResponse(sup)
	return &resp, nil
}

// Buscar filters the seller list by name, case-insensitive substring match.
// The list is small enough that filtering in memory beats another SQL path.
func (s *supermercadoService) Buscar(ctx context.Context, nombre string) ([]dto.SupermercadoConOfertas, error) {
	if strings.TrimSpace(nombre) == "" {
		return nil, apierror.Validation("el parametro nombre es obligatorio")
	}

	supermercados, err := s.repo.List(ctx)
	if err != nil {
		return nil, apierror.Internal("error al listar supermercados", err)
	}

	needle := strings.ToLower(nombre)
	var filtrados []model.Supermercado
	for _, sup := range supermercados {
		if strings.Contains(strings.ToLower(sup.Nombre), needle) {
			filtrados = append(filtrados, sup)
		}
	}
	return s.conOfertas(ctx, filtrados)
}

func (s *supermercadoService) Estadisticas(ctx context.Context) ([]dto.EstadisticasSupermercado, error) {
	rows, err := s.repo.Estadisticas(ctx)
	if err != nil {
		return nil, apierror.Internal("error al calcular estadisticas", err)
	}

	out := make([]dto.EstadisticasSupermercado, len(rows))
	for i, row := range rows {
		out[i] = dto.EstadisticasSupermercado{
			Supermercado: dto.SupermercadoResumen{
				ID:     row.SupermercadoID,
				Nombre: row.Nombre,
			},
			TotalOfertas:   row.TotalOfertas,
			OfertasValidas: row.OfertasValidas,
			PrecioPromedio: row.PrecioPromedio.Round(2),
		}
	}
	return out, nil
}

func (s *supermercadoService) Crear(ctx context.Context, req dto.CrearSupermercadoRequest) (*dto.SupermercadoResponse, error) {
	sup := &model.Supermercado{
		Nombre:    req.Nombre,
		Direccion: req.Direccion,
		SitioWeb:  req.SitioWeb,
	}
	if err := s.repo.Create(ctx, sup); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierror.Validation("ya existe un supermercado con ese nombre")
		}
		return nil, apierror.Internal("error al crear el supermercado", err)
	}
	resp := supermercadoToResponse(sup)
	return &resp, nil
}

func (s *supermercadoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarSupermercadoRequest) (*dto.SupermercadoResponse, error) {
	sup, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("supermercado no encontrado")
		}
		return nil, apierror.Internal("error al obtener el supermercado", err)
	}

	if req.Nombre != nil {
		sup.Nombre = *req.Nombre
	}
	if req.Direccion != nil {
		sup.Direccion = req.Direccion
	}
	if req.SitioWeb != nil {
		sup.SitioWeb = req.SitioWeb
	}

	if err := s.repo.Update(ctx, sup); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierror.Validation("ya existe un supermercado con ese nombre")
		}
		return nil, apierror.Internal("error al actualizar el supermercado", err)
	}
	resp := supermercadoToResponse(sup)
	return &resp, nil
}

func (s *supermercadoService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.NotFound("supermercado no encontrado")
		}
		return apierror.Internal("error al obtener el supermercado", err)
	}

	ofertas, err := s.repo.CountOfertas(ctx, id)
	if err != nil {
		return apierror.Internal("error al contar ofertas del supermercado", err)
	}
	if ofertas > 0 {
		return apierror.Constraint(
			fmt.Sprintf("no se puede eliminar: el supermercado tiene %d ofertas asociadas", ofertas),
			int(ofertas),
		)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return apierror.Internal("error al eliminar el supermercado", err)
	}
	return nil
}
