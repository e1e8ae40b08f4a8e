package model

import (
	"time"

	"github.com/google/uuid"
)

// Producto is a catalog entry that offers from competing supermarkets point at.
// CategoriaID is nullable: uncategorized products are allowed.
type Producto struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre      string    `gorm:"index;not null"`
	Marca       *string   `gorm:"index"`
	Descripcion *string
	ImagenURL   *string
	CategoriaID *uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Categoria *Categoria `gorm:"foreignKey:CategoriaID"`
	Ofertas   []Oferta   `gorm:"foreignKey:ProductoID"`
}

func (Producto) TableName() string { return "productos" }
