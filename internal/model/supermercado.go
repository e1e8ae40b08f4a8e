package model

import (
	"time"

	"github.com/google/uuid"
)

// Supermercado is an offer source (seller). Deletion is blocked at the
// service layer while it still has associated offers.
type Supermercado struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre     string    `gorm:"uniqueIndex;not null"`
	Direccion  *string
	SitioWeb   *string
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Ofertas []Oferta `gorm:"foreignKey:SupermercadoID"`
}

func (Supermercado) TableName() string { return "supermercados" }
