package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sort keys accepted by the product listing.
const (
	OrdenProductoNombre     = "nombre_asc"
	OrdenProductoPrecioAsc  = "precio_asc"
	OrdenProductoPrecioDesc = "precio_desc"
)

// NormalizarOrdenProducto maps an arbitrary ordenar value onto a supported
// product sort key, falling back to name order.
func NormalizarOrdenProducto(orden string) string {
	switch orden {
	case OrdenProductoPrecioAsc, OrdenProductoPrecioDesc:
		return orden
	default:
		return OrdenProductoNombre
	}
}

// ProductoFilter binds the query string of the product listing endpoint.
// Identifier parsing follows the same lenient policy as OfertaFilter.
type ProductoFilter struct {
	Categoria string `form:"categoria"`
	Marca     string `form:"marca"`
	Termino   string `form:"termino"`
	PrecioMin string `form:"precioMin"`
	PrecioMax string `form:"precioMax"`
	Ordenar   string `form:"ordenar"`
	Page      int    `form:"page,default=1"`
	Limit     int    `form:"limit,default=10"`
}

type ProductoQuery struct {
	CategoriaID *uuid.UUID
	Marca       string
	Termino     string
	PrecioMin   *decimal.Decimal
	PrecioMax   *decimal.Decimal
	Ordenar     string
	Page        int
	Limit       int
}

func (f ProductoFilter) ToQuery() ProductoQuery {
	page, limit := ClampPage(f.Page, f.Limit)
	return ProductoQuery{
		CategoriaID: parseUUIDLenient(f.Categoria),
		Marca:       f.Marca,
		Termino:     f.Termino,
		PrecioMin:   parseDecimalLenient(f.PrecioMin),
		PrecioMax:   parseDecimalLenient(f.PrecioMax),
		Ordenar:     NormalizarOrdenProducto(f.Ordenar),
		Page:        page,
		Limit:       limit,
	}
}

type CrearProductoRequest struct {
	Nombre      string  `json:"nombre_producto" validate:"required,min=2,max=200"`
	Marca       *string `json:"marca"           validate:"omitempty,max=100"`
	Descripcion *string `json:"descripcion"`
	ImagenURL   *string `json:"imagen_url"   validate:"omitempty,url"`
	CategoriaID *string `json:"id_categoria" validate:"omitempty,uuid"`
}

type ActualizarProductoRequest struct {
	Nombre      *string `json:"nombre_producto" validate:"omitempty,min=2,max=200"`
	Marca       *string `json:"marca"           validate:"omitempty,max=100"`
	Descripcion *string `json:"descripcion"`
	ImagenURL   *string `json:"imagen_url"   validate:"omitempty,url"`
	CategoriaID *string `json:"id_categoria" validate:"omitempty,uuid"`
}

type ProductoResumen struct {
	ID        uuid.UUID        `json:"id_producto"`
	Nombre    string           `json:"nombre_producto"`
	Marca     *string          `json:"marca"`
	ImagenURL *string          `json:"imagen_url"`
	Categoria *CategoriaResumen `json:"categoria,omitempty"`
}

type ProductoResponse struct {
	ID          uuid.UUID         `json:"id_producto"`
	Nombre      string            `json:"nombre_producto"`
	Marca       *string           `json:"marca"`
	Descripcion *string           `json:"descripcion"`
	ImagenURL   *string           `json:"imagen_url"`
	Categoria   *CategoriaResumen `json:"categoria"`
}

// MejorPrecio is the cheapest valid offer of a product. Descuento here is an
// integer percentage, unlike the one-decimal Descuento of OfertaResponse.
type MejorPrecio struct {
	OfertaID       uuid.UUID            `json:"id_oferta"`
	Precio         decimal.Decimal      `json:"precio"`
	PrecioOriginal *decimal.Decimal     `json:"precio_original"`
	Descuento      *int64               `json:"descuento"`
	Supermercado   *SupermercadoResumen `json:"supermercado"`
}

// ProductoConMejorPrecio decorates a product with its cheapest valid offer
// for the catalog listing.
type ProductoConMejorPrecio struct {
	ProductoResponse
	MejorPrecio  *MejorPrecio `json:"mejor_precio"`
	TieneOfertas bool         `json:"tiene_ofertas"`
	TotalOfertas int          `json:"total_ofertas"`
}

type ProductoListResponse struct {
	Productos  []ProductoConMejorPrecio `json:"productos"`
	Pagination Paginacion               `json:"pagination"`
}
