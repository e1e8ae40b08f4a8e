package model

import (
	"time"

	"github.com/google/uuid"
)

// Categoria classifies products. Deletion is blocked at the service layer
// while the category still has associated products.
type Categoria struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre      string    `gorm:"uniqueIndex;not null"`
	Descripcion *string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Productos []Producto `gorm:"foreignKey:CategoriaID"`
}

// TableName overrides GORM's default singular → plural logic for Spanish names.
func (Categoria) TableName() string { return "categorias" }
