package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Omar25092001/Backend-Ofertas/internal/dto"
	"github.com/Omar25092001/Backend-Ofertas/internal/model"
)

// OfertaRepository defines the data access contract for offers.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via mocks.
type OfertaRepository interface {
	Create(ctx context.Context, o *model.Oferta) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Oferta, error)
	List(ctx context.Context, q dto.OfertaQuery) ([]model.Oferta, int64, error)
	// FindValidasByProductoID returns every valid offer of a product,
	// cheapest first, without pagination. Used for price statistics.
	FindValidasByProductoID(ctx context.Context, productoID uuid.UUID) ([]model.Oferta, error)
	Update(ctx context.Context, o *model.Oferta) error
	Invalidar(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error

	CreateReporte(ctx context.Context, r *model.ReporteOferta) error
	CountReportes(ctx context.Context, ofertaID uuid.UUID) (int64, error)
}

type ofertaRepo struct{ db *gorm.DB }

func NewOfertaRepository(db *gorm.DB) OfertaRepository { return &ofertaRepo{db: db} }

func (r *ofertaRepo) Create(ctx context.Context, o *model.Oferta) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *ofertaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Oferta, error) {
	var o model.Oferta
	err := r.db.WithContext(ctx).
		Preload("Producto").
		Preload("Producto.Categoria").
		Preload("Supermercado").
		First(&o, "ofertas.id = ?", id).Error
	return &o, err
}

// List applies the normalized criteria as a single conjunctive WHERE clause,
// counts the full match and then pages it in the requested order. The join
// against productos is added only when a criterion needs it.
func (r *ofertaRepo) List(ctx context.Context, filtro dto.OfertaQuery) ([]model.Oferta, int64, error) {
	var (
		ofertas []model.Oferta
		total   int64
	)

	q := r.db.WithContext(ctx).Model(&model.Oferta{})

	if filtro.CategoriaID != nil || filtro.Termino != "" {
		q = q.Joins("JOIN productos ON productos.id = ofertas.producto_id")
	}

	if filtro.SupermercadoID != nil {
		q = q.Where("ofertas.supermercado_id = ?", *filtro.SupermercadoID)
	}
	if filtro.ProductoID != nil {
		q = q.Where("ofertas.producto_id = ?", *filtro.ProductoID)
	}
	if filtro.CategoriaID != nil {
		q = q.Where("productos.categoria_id = ?", *filtro.CategoriaID)
	}
	// Price bounds are inclusive on both ends.
	if filtro.PrecioMin != nil {
		q = q.Where("ofertas.precio_oferta >= ?", *filtro.PrecioMin)
	}
	if filtro.PrecioMax != nil {
		q = q.Where("ofertas.precio_oferta <= ?", *filtro.PrecioMax)
	}
	if filtro.Termino != "" {
		patron := "%" + filtro.Termino + "%"
		q = q.Where(
			"productos.nombre ILIKE ? OR productos.marca ILIKE ? OR ofertas.descripcion ILIKE ?",
			patron, patron, patron,
		)
	}
	if filtro.Valida != nil {
		q = q.Where("ofertas.valida = ?", *filtro.Valida)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	switch filtro.Orden {
	case dto.OrdenPrecioDesc:
		q = q.Order("ofertas.precio_oferta DESC")
	case dto.OrdenFechaDesc:
		q = q.Order("ofertas.fecha_extraccion DESC")
	case dto.OrdenSupermercado:
		q = q.Joins("JOIN supermercados ON supermercados.id = ofertas.supermercado_id").
			Order("supermercados.nombre ASC")
	default:
		q = q.Order("ofertas.precio_oferta ASC")
	}
	// Deterministic paging under equal sort keys.
	q = q.Order("ofertas.id ASC")

	err := q.
		Preload("Producto").
		Preload("Producto.Categoria").
		Preload("Supermercado").
		Limit(filtro.Limit).
		Offset(dto.Offset(filtro.Page, filtro.Limit)).
		Find(&ofertas).Error
	return ofertas, total, err
}

func (r *ofertaRepo) FindValidasByProductoID(ctx context.Context, productoID uuid.UUID) ([]model.Oferta, error) {
	var ofertas []model.Oferta
	err := r.db.WithContext(ctx).
		Where("producto_id = ? AND valida = true", productoID).
		Order("precio_oferta ASC, id ASC").
		Preload("Supermercado").
		Find(&ofertas).Error
	return ofertas, err
}

func (r *ofertaRepo) Update(ctx context.Context, o *model.Oferta) error {
	return r.db.WithContext(ctx).Save(o).Error
}

func (r *ofertaRepo) Invalidar(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Oferta{}).
		Where("id = ?", id).Update("valida", false).Error
}

func (r *ofertaRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Oferta{}, "id = ?", id).Error
}

func (r *ofertaRepo) CreateReporte(ctx context.Context, rep *model.ReporteOferta) error {
	return r.db.WithContext(ctx).Create(rep).Error
}

func (r *ofertaRepo) CountReportes(ctx context.Context, ofertaID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.ReporteOferta{}).
		Where("oferta_id = ?", ofertaID).Count(&n).Error
	return n, err
}
