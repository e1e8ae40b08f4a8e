package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Omar25092001/Backend-Ofertas/internal/model"
)

// EstadisticasSupermercadoRow is the raw per-seller aggregate scanned from SQL.
type EstadisticasSupermercadoRow struct {
	SupermercadoID uuid.UUID
	Nombre         string
	TotalOfertas   int64
	OfertasValidas int64
	PrecioPromedio decimal.Decimal
}

type SupermercadoRepository interface {
	Create(ctx context.Context, s *model.Supermercado) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Supermercado, error)
	List(ctx context.Context) ([]model.Supermercado, error)
	Update(ctx context.Context, s *model.Supermercado) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountOfertas(ctx context.Context, supermercadoID uuid.UUID) (int64, error)
	CountOfertasValidas(ctx context.Context, supermercadoID uuid.UUID) (int64, error)
	// Estadisticas aggregates offer counts and the average valid price per
	// seller in a single grouped query.
	Estadisticas(ctx context.Context) ([]EstadisticasSupermercadoRow, error)
}

type supermercadoRepo struct{ db *gorm.DB }

func NewSupermercadoRepository(db *gorm.DB) SupermercadoRepository {
	return &supermercadoRepo{db: db}
}

func (r *supermercadoRepo) Create(ctx context.Context, s *model.Supermercado) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *supermercadoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Supermercado, error) {
	var s model.Supermercado
	err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error
	return &s, err
}

func (r *supermercadoRepo) List(ctx context.Context) ([]model.Supermercado, error) {
	var supermercados []model.Supermercado
	err := r.db.WithContext(ctx).Order("nombre ASC").Find(&supermercados).Error
	return supermercados, err
}

func (r *supermercadoRepo) Update(ctx context.Context, s *model.Supermercado) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *supermercadoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Supermercado{}, "id = ?", id).Error
}

func (r *supermercadoRepo) CountOfertas(ctx context.Context, supermercadoID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Oferta{}).
		Where("supermercado_id = ?", supermercadoID).Count(&n).Error
	return n, err
}

func (r *supermercadoRepo) CountOfertasValidas(ctx context.Context, supermercadoID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Oferta{}).
		Where("supermercado_id = ? AND valida = true", supermercadoID).Count(&n).Error
	return n, err
}

func (r *supermercadoRepo) Estadisticas(ctx context.Context) ([]EstadisticasSupermercadoRow, error) {
	var rows []EstadisticasSupermercadoRow
	err := r.db.WithContext(ctx).Model(&model.Supermercado{}).
		Select(`supermercados.id AS supermercado_id,
			supermercados.nombre AS nombre,
			COUNT(ofertas.id) AS total_ofertas,
			COUNT(ofertas.id) FILTER (WHERE ofertas.valida) AS ofertas_validas,
			COALESCE(AVG(ofertas.precio_oferta) FILTER (WHERE ofertas.valida), 0) AS precio_promedio`).
		Joins("LEFT JOIN ofertas ON ofertas.supermercado_id = supermercados.id").
		Group("supermercados.id, supermercados.nombre").
		Order("supermercados.nombre ASC").
		Scan(&rows).Error
	return rows, err
}
