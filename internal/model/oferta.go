package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Oferta is a time-bounded price quotation for a product at a supermarket.
// Automated processes never hard-delete offers: invalidation flips Valida to
// false so stale prices stay queryable (validas=false / validas=all scopes).
type Oferta struct {
	ID              uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PrecioOriginal  *decimal.Decimal `gorm:"type:decimal(10,2)"`
	PrecioOferta    decimal.Decimal  `gorm:"type:decimal(10,2);not null;index"`
	FechaInicio     *time.Time
	FechaFin        *time.Time
	Descripcion     *string
	URLOrigen       string    `gorm:"not null"`
	FechaExtraccion time.Time `gorm:"autoCreateTime;index"`
	Valida          bool      `gorm:"not null;default:true;index"`

	ProductoID     uuid.UUID `gorm:"type:uuid;not null;index"`
	SupermercadoID uuid.UUID `gorm:"type:uuid;not null;index"`

	Producto     *Producto     `gorm:"foreignKey:ProductoID"`
	Supermercado *Supermercado `gorm:"foreignKey:SupermercadoID"`
}

func (Oferta) TableName() string { return "ofertas" }
