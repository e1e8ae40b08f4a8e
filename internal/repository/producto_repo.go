package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Omar25092001/Backend-Ofertas/internal/dto"
	"github.com/Omar25092001/Backend-Ofertas/internal/model"
)

type ProductoRepository interface {
	Create(ctx context.Context, p *model.Producto) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Producto, error)
	// List pages products ordered by the requested sort key; price ordering
	// goes by the cheapest valid offer, computed in SQL so it holds across
	// pages. Valid offers come preloaded, cheapest first.
	List(ctx context.Context, q dto.ProductoQuery) ([]model.Producto, int64, error)
	Update(ctx context.Context, p *model.Producto) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountOfertas(ctx context.Context, productoID uuid.UUID) (int64, error)
}

type productoRepo struct{ db *gorm.DB }

func NewProductoRepository(db *gorm.DB) ProductoRepository { return &productoRepo{db: db} }

func (r *productoRepo) Create(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Producto, error) {
	var p model.Producto
	err := r.db.WithContext(ctx).
		Preload("Categoria").
		First(&p, "id = ?", id).Error
	return &p, err
}

func (r *productoRepo) List(ctx context.Context, filtro dto.ProductoQuery) ([]model.Producto, int64, error) {
	var (
		productos []model.Producto
		total     int64
	)

	q := r.db.WithContext(ctx).Model(&model.Producto{})

	if filtro.CategoriaID != nil {
		q = q.Where("categoria_id = ?", *filtro.CategoriaID)
	}
	if filtro.Marca != "" {
		q = q.Where("marca ILIKE ?", "%"+filtro.Marca+"%")
	}
	if filtro.Termino != "" {
		patron := "%" + filtro.Termino + "%"
		q = q.Where("nombre ILIKE ? OR marca ILIKE ? OR descripcion ILIKE ?", patron, patron, patron)
	}
	// Price bounds select products that have at least one valid offer in
	// range, not products whose every offer is in range.
	if filtro.PrecioMin != nil || filtro.PrecioMax != nil {
		rango := r.db.Model(&model.Oferta{}).
			Select("1").
			Where("ofertas.producto_id = productos.id AND ofertas.valida")
		if filtro.PrecioMin != nil {
			rango = rango.Where("ofertas.precio_oferta >= ?", *filtro.PrecioMin)
		}
		if filtro.PrecioMax != nil {
			rango = rango.Where("ofertas.precio_oferta <= ?", *filtro.PrecioMax)
		}
		q = q.Where("EXISTS (?)", rango)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Price ordering happens in SQL over the cheapest valid offer so it holds
	// across pages; products without valid offers sort last either direction.
	var orden string
	switch filtro.Ordenar {
	case dto.OrdenProductoPrecioAsc:
		orden = "(SELECT MIN(o.precio_oferta) FROM ofertas o WHERE o.producto_id = productos.id AND o.valida) ASC NULLS LAST, productos.nombre ASC"
	case dto.OrdenProductoPrecioDesc:
		orden = "(SELECT MIN(o.precio_oferta) FROM ofertas o WHERE o.producto_id = productos.id AND o.valida) DESC NULLS LAST, productos.nombre ASC"
	default:
		orden = "productos.nombre ASC"
	}
	err := q.
		Clauses(clause.OrderBy{Expression: clause.Expr{SQL: orden}}).
		Limit(filtro.Limit).
		Offset(dto.Offset(filtro.Page, filtro.Limit)).
		Preload("Categoria").
		Preload("Ofertas", func(db *gorm.DB) *gorm.DB {
			return db.Where("valida = true").
				Order("precio_oferta ASC, id ASC").
				Preload("Supermercado")
		}).
		Find(&productos).Error
	return productos, total, err
}

func (r *productoRepo) Update(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *productoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Producto{}, "id = ?", id).Error
}

func (r *productoRepo) CountOfertas(ctx context.Context, productoID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Oferta{}).
		Where("producto_id = ?", productoID).Count(&n).Error
	return n, err
}
