package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/Omar25092001/Backend-Ofertas/internal/apierror"
	"github.com/Omar25092001/Backend-Ofertas/internal/dto"
	"github.com/Omar25092001/Backend-Ofertas/internal/model"
	"github.com/Omar25092001/Backend-Ofertas/internal/pricing"
	"github.com/Omar25092001/Backend-Ofertas/internal/repository"
)

// Favoritos keeps the per-offer favourite counters. Backed by Redis in
// production (infra.FavoritosRedis); stubbed in unit tests.
type Favoritos interface {
	Count(ctx context.Context, ofertaID uuid.UUID) (int64, error)
	CountMany(ctx context.Context, ofertaIDs []uuid.UUID) (map[uuid.UUID]int64, error)
	Incr(ctx context.Context, ofertaID uuid.UUID) (int64, error)
	Decr(ctx context.Context, ofertaID uuid.UUID) (int64, error)
}

type OfertaService interface {
	Listar(ctx context.Context, q dto.OfertaQuery) (*dto.OfertaListResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.OfertaResponse, error)
	ListarPorProducto(ctx context.Context, productoID uuid.UUID, q dto.OfertaQuery) (*dto.OfertasPorProductoResponse, error)
	ListarPorSupermercado(ctx context.Context, supermercadoID uuid.UUID, q dto.OfertaQuery) (*dto.OfertasPorSupermercadoResponse, error)
	Buscar(ctx context.Context, q dto.OfertaQuery) (*dto.OfertaListResponse, error)
	Crear(ctx context.Context, req dto.CrearOfertaRequest) (*dto.OfertaResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarOfertaRequest) (*dto.OfertaResponse, error)
	Invalidar(ctx context.Context, id uuid.UUID) error
	Eliminar(ctx context.Context, id uuid.UUID) error
	Reportar(ctx context.Context, ofertaID, usuarioID uuid.UUID, req dto.ReportarOfertaRequest) (*dto.ReporteResponse, error)
	MarcarFavorito(ctx context.Context, ofertaID uuid.UUID) (*dto.FavoritoResponse, error)
	QuitarFavorito(ctx context.Context, ofertaID uuid.UUID) (*dto.FavoritoResponse, error)
}

type ofertaService struct {
	repo             repository.OfertaRepository
	productoRepo     repository.ProductoRepository
	supermercadoRepo repository.SupermercadoRepository
	favoritos        Favoritos
}

func NewOfertaService(
	repo repository.OfertaRepository,
	productoRepo repository.ProductoRepository,
	supermercadoRepo repository.SupermercadoRepository,
	favoritos Favoritos,
) OfertaService {
	return &ofertaService{
		repo:             repo,
		productoRepo:     productoRepo,
		supermercadoRepo: supermercadoRepo,
		favoritos:        favoritos,
	}
}

// attachFavoritos decorates a page of offers with their favourite counters.
// Counter reads are advisory: a Redis failure logs and serves zeroes rather
// than failing the listing.
func (s *ofertaService) attachFavoritos(ctx context.Context, ofertas []model.Oferta) []dto.OfertaResponse {
	ids := make([]uuid.UUID, len(ofertas))
	for i := range ofertas {
		ids[i] = ofertas[i].ID
	}

	counts, err := s.favoritos.CountMany(ctx, ids)
	if err != nil {
		log.Warn().Err(err).Msg("favoritos counters unavailable, serving zeroes")
		counts = nil
	}

	out := make([]dto.OfertaResponse, len(ofertas))
	for i := range ofertas {
		out[i] = ofertaToResponse(&ofertas[i], counts[ofertas[i].ID])
	}
	return out
}

func (s *ofertaService) Listar(ctx context.Context, q dto.OfertaQuery) (*dto.OfertaListResponse, error) {
	ofertas, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, apierror.Internal("error al listar ofertas", err)
	}
	return &dto.OfertaListResponse{
		Ofertas:    s.attachFavoritos(ctx, ofertas),
		Pagination: dto.NewPaginacion(total, q.Page, q.Limit),
	}, nil
}

func (s *ofertaService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.OfertaResponse, error) {
	o, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("oferta no encontrada")
		}
		return nil, apierror.Internal("error al obtener la oferta", err)
	}

	favoritos, err := s.favoritos.Count(ctx, o.ID)
	if err != nil {
		log.Warn().Err(err).Str("oferta_id", o.ID.String()).Msg("favoritos counter unavailable")
		favoritos = 0
	}
	resp := ofertaToResponse(o, favoritos)
	return &resp, nil
}

func (s *ofertaService) ListarPorProducto(ctx context.Context, productoID uuid.UUID, q dto.OfertaQuery) (*dto.OfertasPorProductoResponse, error) {
	p, err := s.productoRepo.FindByID(ctx, productoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("producto no encontrado")
		}
		return nil, apierror.Internal("error al obtener el producto", err)
	}

	q.ProductoID = &productoID
	ofertas, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, apierror.Internal("error al listar ofertas del producto", err)
	}

	resp := &dto.OfertasPorProductoResponse{
		Producto:   *productoResumen(p),
		Ofertas:    s.attachFavoritos(ctx, ofertas),
		Pagination: dto.NewPaginacion(total, q.Page, q.Limit),
	}

	// Statistics cover every valid offer of the product, not the current
	// page, and are omitted when the validity scope excludes valid offers.
	if q.Valida == nil || *q.Valida {
		validas, err := s.repo.FindValidasByProductoID(ctx, productoID)
		if err != nil {
			return nil, apierror.Internal("error al calcular estadisticas", err)
		}
		if stats, ok := pricing.Calcular(validas); ok {
			resp.Estadisticas = estadisticasToDTO(stats)
		}
	}
	return resp, nil
}

func (s *ofertaService) ListarPorSupermercado(ctx context.Context, supermercadoID uuid.UUID, q dto.OfertaQuery) (*dto.OfertasPorSupermercadoResponse, error) {
	sup, err := s.supermercadoRepo.FindByID(ctx, supermercadoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("supermercado no encontrado")
		}
		return nil, apierror.Internal("error al obtener el supermercado", err)
	}

	q.SupermercadoID = &supermercadoID
	ofertas, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, apierror.Internal("error al listar ofertas del supermercado", err)
	}

	return &dto.OfertasPorSupermercadoResponse{
		Supermercado: *supermercadoResumen(sup),
		Ofertas:      s.attachFavoritos(ctx, ofertas),
		Pagination:   dto.NewPaginacion(total, q.Page, q.Limit),
	}, nil
}

func (s *ofertaService) Buscar(ctx context.Context, q dto.OfertaQuery) (*dto.OfertaListResponse, error) {
	if strings.TrimSpace(q.Termino) == "" {
		return nil, apierror.Validation("el parametro termino es obligatorio")
	}
	return s.Listar(ctx, q)
}

func (s *ofertaService) Crear(ctx context.Context, req dto.CrearOfertaRequest) (*dto.OfertaResponse, error) {
	productoID, err := uuid.Parse(req.ProductoID)
	if err != nil {
		return nil, apierror.Validation("id_producto invalido")
	}
	supermercadoID, err := uuid.Parse(req.SupermercadoID)
	if err != nil {
		return nil, apierror.Validation("id_supermercado invalido")
	}
	if req.FechaInicio != nil && req.FechaFin != nil && req.FechaFin.Before(*req.FechaInicio) {
		return nil, apierror.Validation("fecha_fin_oferta anterior a fecha_inicio_oferta")
	}

	if _, err := s.productoRepo.FindByID(ctx, productoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.Validation("el producto indicado no existe")
		}
		return nil, apierror.Internal("error al validar el producto", err)
	}
	if _, err := s.supermercadoRepo.FindByID(ctx, supermercadoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.Validation("el supermercado indicado no existe")
		}
		return nil, apierror.Internal("error al validar el supermercado", err)
	}

	o := &model.Oferta{
		PrecioOriginal: req.PrecioOriginal,
		PrecioOferta:   req.PrecioOferta,
		FechaInicio:    req.FechaInicio,
		FechaFin:       req.FechaFin,
		Descripcion:    req.Descripcion,
		URLOrigen:      req.URLOrigen,
		Valida:         true,
		ProductoID:     productoID,
		SupermercadoID: supermercadoID,
	}
	if err := s.repo.Create(ctx, o); err != nil {
		return nil, apierror.Internal("error al crear la oferta", err)
	}
	return s.ObtenerPorID(ctx, o.ID)
}

func (s *ofertaService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarOfertaRequest) (*dto.OfertaResponse, error) {
	o, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("oferta no encontrada")
		}
		return nil, apierror.Internal("error al obtener la oferta", err)
	}

	if req.PrecioOriginal != nil {
		o.PrecioOriginal = req.PrecioOriginal
	}
	if req.PrecioOferta != nil {
		o.PrecioOferta = *req.PrecioOferta
	}
	if req.FechaInicio != nil {
		o.FechaInicio = req.FechaInicio
	}
	if req.FechaFin != nil {
		o.FechaFin = req.FechaFin
	}
	if req.Descripcion != nil {
		o.Descripcion = req.Descripcion
	}
	if req.URLOrigen != nil {
		o.URLOrigen = *req.URLOrigen
	}
	if req.Valida != nil {
		o.Valida = *req.Valida
	}
	if req.ProductoID != nil {
		pid, err := uuid.Parse(*req.ProductoID)
		if err != nil {
			return nil, apierror.Validation("id_producto invalido")
		}
		if _, err := s.productoRepo.FindByID(ctx, pid); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apierror.Validation("el producto indicado no existe")
			}
			return nil, apierror.Internal("error al validar el producto", err)
		}
		o.ProductoID = pid
	}
	if req.SupermercadoID != nil {
		sid, err := uuid.Parse(*req.SupermercadoID)
		if err != nil {
			return nil, apierror.Validation("id_supermercado invalido")
		}
		if _, err := s.supermercadoRepo.FindByID(ctx, sid); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apierror.Validation("el supermercado indicado no existe")
			}
			return nil, apierror.Internal("error al validar el supermercado", err)
		}
		o.SupermercadoID = sid
	}
	if o.FechaInicio != nil && o.FechaFin != nil && o.FechaFin.Before(*o.FechaInicio) {
		return nil, apierror.Validation("fecha_fin_oferta anterior a fecha_inicio_oferta")
	}

	// Save after clearing preloaded relations so GORM does not upsert them.
	o.Producto = nil
	o.Supermercado = nil
	if err := s.repo.Update(ctx, o); err != nil {
		return nil, apierror.Internal("error al actualizar la oferta", err)
	}
	return s.ObtenerPorID(ctx, id)
}

func (s *ofertaService) Invalidar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.NotFound("oferta no encontrada")
		}
		return apierror.Internal("error al obtener la oferta", err)
	}
	if err := s.repo.Invalidar(ctx, id); err != nil {
		return apierror.Internal("error al invalidar la oferta", err)
	}
	return nil
}

func (s *ofertaService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.NotFound("oferta no encontrada")
		}
		return apierror.Internal("error al obtener la oferta", err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return apierror.Internal("error al eliminar la oferta", err)
	}
	return nil
}

// MarcarFavorito bumps the favourite counter of an existing offer. Unlike the
// advisory reads, the mutation is the operation itself, so a Redis failure
// surfaces as an error.
func (s *ofertaService) MarcarFavorito(ctx context.Context, ofertaID uuid.UUID) (*dto.FavoritoResponse, error) {
	if _, err := s.repo.FindByID(ctx, ofertaID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("oferta no encontrada")
		}
		return nil, apierror.Internal("error al obtener la oferta", err)
	}
	total, err := s.favoritos.Incr(ctx, ofertaID)
	if err != nil {
		return nil, apierror.Internal("error al marcar favorito", err)
	}
	return &dto.FavoritoResponse{OfertaID: ofertaID, TotalFavoritos: total}, nil
}

func (s *ofertaService) QuitarFavorito(ctx context.Context, ofertaID uuid.UUID) (*dto.FavoritoResponse, error) {
	if _, err := s.repo.FindByID(ctx, ofertaID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("oferta no encontrada")
		}
		return nil, apierror.Internal("error al obtener la oferta", err)
	}
	total, err := s.favoritos.Decr(ctx, ofertaID)
	if err != nil {
		return nil, apierror.Internal("error al quitar favorito", err)
	}
	return &dto.FavoritoResponse{OfertaID: ofertaID, TotalFavoritos: total}, nil
}

// reportesParaInvalidar is the report count at which an offer stops being
// served as valid until a moderator reviews it.
const reportesParaInvalidar = 5

func (s *ofertaService) Reportar(ctx context.Context, ofertaID, usuarioID uuid.UUID, req dto.ReportarOfertaRequest) (*dto.ReporteResponse, error) {
	if _, err := s.repo.FindByID(ctx, ofertaID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("oferta no encontrada")
		}
		return nil, apierror.Internal("error al obtener la oferta", err)
	}

	rep := &model.ReporteOferta{
		Motivo:    req.Motivo,
		OfertaID:  ofertaID,
		UsuarioID: usuarioID,
	}
	if err := s.repo.CreateReporte(ctx, rep); err != nil {
		return nil, apierror.Internal("error al registrar el reporte", err)
	}

	total, err := s.repo.CountReportes(ctx, ofertaID)
	if err != nil {
		log.Warn().Err(err).Str("oferta_id", ofertaID.String()).Msg("no se pudo contar reportes")
	} else if total >= reportesParaInvalidar {
		if err := s.repo.Invalidar(ctx, ofertaID); err != nil {
			log.Error().Err(err).Str("oferta_id", ofertaID.String()).Msg("auto-invalidacion fallida")
		} else {
			log.Info().Str("oferta_id", ofertaID.String()).Int64("reportes", total).
				Msg("oferta invalidada por acumulacion de reportes")
		}
	}

	return &dto.ReporteResponse{
		ID:        rep.ID,
		Motivo:    rep.Motivo,
		OfertaID:  rep.OfertaID,
		UsuarioID: rep.UsuarioID,
		CreatedAt: rep.CreatedAt,
	}, nil
}
