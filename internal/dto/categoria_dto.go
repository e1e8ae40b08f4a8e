package dto

import "github.com/google/uuid"

type CrearCategoriaRequest struct {
	Nombre      string  `json:"nombre_categoria" validate:"required,min=2,max=100"`
	Descripcion *string `json:"descripcion"`
}

type ActualizarCategoriaRequest struct {
	Nombre      *string `json:"nombre_categoria" validate:"omitempty,min=2,max=100"`
	Descripcion *string `json:"descripcion"`
}

type CategoriaResumen struct {
	ID     uuid.UUID `json:"id_categoria"`
	Nombre string    `json:"nombre_categoria"`
}

type CategoriaResponse struct {
	ID          uuid.UUID `json:"id_categoria"`
	Nombre      string    `json:"nombre_categoria"`
	Descripcion *string   `json:"descripcion"`
}

// CategoriaConProductos includes the product count used by the catalog UI.
type CategoriaConProductos struct {
	CategoriaResponse
	TotalProductos int64 `json:"total_productos"`
}
