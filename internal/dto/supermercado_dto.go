package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CrearSupermercadoRequest struct {
	Nombre    string  `json:"nombre_supermercado" validate:"required,min=2,max=100"`
	Direccion *string `json:"direccion"`
	SitioWeb  *string `json:"sitio_web" validate:"omitempty,url"`
}

type ActualizarSupermercadoRequest struct {
	Nombre    *string `json:"nombre_supermercado" validate:"omitempty,min=2,max=100"`
	Direccion *string `json:"direccion"`
	SitioWeb  *string `json:"sitio_web" validate:"omitempty,url"`
}

type SupermercadoResumen struct {
	ID     uuid.UUID `json:"id_supermercado"`
	Nombre string    `json:"nombre_supermercado"`
}

type SupermercadoResponse struct {
	ID        uuid.UUID `json:"id_supermercado"`
	Nombre    string    `json:"nombre_supermercado"`
	Direccion *string   `json:"direccion"`
	SitioWeb  *string   `json:"sitio_web"`
}

// SupermercadoConOfertas includes the valid-offer count per seller.
type SupermercadoConOfertas struct {
	SupermercadoResponse
	TotalOfertasValidas int64 `json:"total_ofertas_validas"`
}

// EstadisticasSupermercado is one row of the per-seller aggregate report
// served to administrators.
type EstadisticasSupermercado struct {
	Supermercado   SupermercadoResumen `json:"supermercado"`
	TotalOfertas   int64               `json:"total_ofertas"`
	OfertasValidas int64               `json:"ofertas_validas"`
	PrecioPromedio decimal.Decimal     `json:"precio_promedio"`
}
