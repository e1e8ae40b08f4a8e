package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ─── Sort keys ───────────────────────────────────────────────────────────────

const (
	OrdenPrecioAsc    = "precio_asc"
	OrdenPrecioDesc   = "precio_desc"
	OrdenFechaDesc    = "fecha_desc"
	OrdenSupermercado = "supermercado" // seller name ascending
)

// NormalizarOrden maps a raw ?ordenar= value onto a supported sort key.
// Unknown keys silently fall back to precio_asc, matching the query-string
// leniency applied across the whole API.
func NormalizarOrden(ordenar string) string {
	switch ordenar {
	case OrdenPrecioAsc, OrdenPrecioDesc, OrdenFechaDesc, OrdenSupermercado:
		return ordenar
	default:
		return OrdenPrecioAsc
	}
}

// ─── Filter / query criteria ─────────────────────────────────────────────────

// OfertaFilter binds the raw query string of the offer listing endpoints.
// Every criterion is optional; identifiers and prices arrive as strings so
// that malformed values can be dropped instead of failing the bind.
type OfertaFilter struct {
	Supermercado string `form:"supermercado"`
	Producto     string `form:"producto"`
	Categoria    string `form:"categoria"`
	PrecioMin    string `form:"precioMin"`
	PrecioMax    string `form:"precioMax"`
	Termino      string `form:"termino"`
	Validas      string `form:"validas"` // "true" (default) | "false" | "all"
	Ordenar      string `form:"ordenar"`
	Page         int    `form:"page,default=1"`
	Limit        int    `form:"limit,default=10"`
}

// OfertaQuery is the normalized criteria bag handed to the repository.
// nil pointers mean "no constraint" (open-world default).
type OfertaQuery struct {
	SupermercadoID *uuid.UUID
	ProductoID     *uuid.UUID
	CategoriaID    *uuid.UUID
	PrecioMin      *decimal.Decimal
	PrecioMax      *decimal.Decimal
	Termino        string
	Valida         *bool // nil = all
	Orden          string
	Page           int
	Limit          int
}

// ToQuery normalizes the raw filter leniently: criteria that fail to parse
// as a uuid or a decimal are treated as absent, never as errors. The same
// policy applies on every query endpoint of the API.
func (f OfertaFilter) ToQuery() OfertaQuery {
	page, limit := ClampPage(f.Page, f.Limit)
	return OfertaQuery{
		SupermercadoID: parseUUIDLenient(f.Supermercado),
		ProductoID:     parseUUIDLenient(f.Producto),
		CategoriaID:    parseUUIDLenient(f.Categoria),
		PrecioMin:      parseDecimalLenient(f.PrecioMin),
		PrecioMax:      parseDecimalLenient(f.PrecioMax),
		Termino:        f.Termino,
		Valida:         ParseValidas(f.Validas),
		Orden:          NormalizarOrden(f.Ordenar),
		Page:           page,
		Limit:          limit,
	}
}

// ParseValidas resolves the tri-state validity scope: "false" constrains to
// invalidated offers, "all" removes the constraint, anything else (including
// the empty default) constrains to valid offers.
func ParseValidas(v string) *bool {
	switch v {
	case "all":
		return nil
	case "false":
		f := false
		return &f
	default:
		t := true
		return &t
	}
}

func parseUUIDLenient(s string) *uuid.UUID {
	if s == "" {
		return nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil
	}
	return &id
}

func parseDecimalLenient(s string) *decimal.Decimal {
	if s == "" {
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}
	return &d
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearOfertaRequest struct {
	PrecioOriginal *decimal.Decimal `json:"precio_original" validate:"omitempty,min=0"`
	PrecioOferta   decimal.Decimal  `json:"precio_oferta"   validate:"required,min=0"`
	FechaInicio    *time.Time       `json:"fecha_inicio_oferta"`
	FechaFin       *time.Time       `json:"fecha_fin_oferta"`
	Descripcion    *string          `json:"descripcion_oferta"`
	URLOrigen      string           `json:"url_oferta_original" validate:"required,url"`
	ProductoID     string           `json:"id_producto"         validate:"required,uuid"`
	SupermercadoID string           `json:"id_supermercado"     validate:"required,uuid"`
}

// ActualizarOfertaRequest is a partial update: nil fields keep their stored
// value, present fields overwrite it.
type ActualizarOfertaRequest struct {
	PrecioOriginal *decimal.Decimal `json:"precio_original" validate:"omitempty,min=0"`
	PrecioOferta   *decimal.Decimal `json:"precio_oferta"   validate:"omitempty,min=0"`
	FechaInicio    *time.Time       `json:"fecha_inicio_oferta"`
	FechaFin       *time.Time       `json:"fecha_fin_oferta"`
	Descripcion    *string          `json:"descripcion_oferta"`
	URLOrigen      *string          `json:"url_oferta_original" validate:"omitempty,url"`
	ProductoID     *string          `json:"id_producto"         validate:"omitempty,uuid"`
	SupermercadoID *string          `json:"id_supermercado"     validate:"omitempty,uuid"`
	Valida         *bool            `json:"valida"`
}

type ReportarOfertaRequest struct {
	Motivo string `json:"motivo" validate:"required,min=3,max=500"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type OfertaResponse struct {
	ID              uuid.UUID        `json:"id_oferta"`
	PrecioOferta    decimal.Decimal  `json:"precio_oferta"`
	PrecioOriginal  *decimal.Decimal `json:"precio_original"`
	Descuento       *float64         `json:"descuento"`
	FechaInicio     *time.Time       `json:"fecha_inicio_oferta"`
	FechaFin        *time.Time       `json:"fecha_fin_oferta"`
	Descripcion     *string          `json:"descripcion_oferta"`
	URLOrigen       string           `json:"url_oferta_original"`
	FechaExtraccion time.Time        `json:"fecha_extraccion"`
	Valida          bool             `json:"valida"`
	TotalFavoritos  int64            `json:"total_favoritos"`

	Producto     *ProductoResumen     `json:"producto,omitempty"`
	Supermercado *SupermercadoResumen `json:"supermercado,omitempty"`
}

// EstadisticasPrecios summarizes the valid offers of a result set.
// DiferenciaPorcentaje is nil when the minimum price is zero.
type EstadisticasPrecios struct {
	PrecioMinimo         decimal.Decimal `json:"precio_minimo"`
	PrecioMaximo         decimal.Decimal `json:"precio_maximo"`
	PrecioPromedio       decimal.Decimal `json:"precio_promedio"`
	DiferenciaPorcentaje *int64          `json:"diferencia_porcentaje"`
	TotalOfertasValidas  int             `json:"total_ofertas_validas"`
}

type OfertaListResponse struct {
	Ofertas    []OfertaResponse `json:"ofertas"`
	Pagination Paginacion       `json:"pagination"`
}

type OfertasPorProductoResponse struct {
	Producto     ProductoResumen      `json:"producto"`
	Ofertas      []OfertaResponse     `json:"ofertas"`
	Estadisticas *EstadisticasPrecios `json:"estadisticas"`
	Pagination   Paginacion           `json:"pagination"`
}

type OfertasPorSupermercadoResponse struct {
	Supermercado SupermercadoResumen `json:"supermercado"`
	Ofertas      []OfertaResponse    `json:"ofertas"`
	Pagination   Paginacion          `json:"pagination"`
}

type ReporteResponse struct {
	ID        uuid.UUID `json:"id_reporte"`
	Motivo    string    `json:"motivo"`
	OfertaID  uuid.UUID `json:"id_oferta"`
	UsuarioID uuid.UUID `json:"id_usuario_reporta"`
	CreatedAt time.Time `json:"fecha_reporte"`
}

// FavoritoResponse echoes the counter value after marking or unmarking an
// offer as favourite.
type FavoritoResponse struct {
	OfertaID       uuid.UUID `json:"id_oferta"`
	TotalFavoritos int64     `json:"total_favoritos"`
}
