package dto

import (
	"time"

	"github.com/google/uuid"
)

type RegistrarUsuarioRequest struct {
	NombreCompleto string `json:"nombre_completo" validate:"required,min=2,max=150"`
	Email          string `json:"email"           validate:"required,email"`
	Password       string `json:"password"        validate:"required,min=8,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ActualizarUsuarioRequest struct {
	NombreCompleto *string `json:"nombre_completo" validate:"omitempty,min=2,max=150"`
	Email          *string `json:"email"           validate:"omitempty,email"`
	Password       *string `json:"password"        validate:"omitempty,min=8,max=72"`
}

type CambiarRolRequest struct {
	Rol string `json:"rol" validate:"required,oneof=USUARIO ADMINISTRADOR MODERADOR"`
}

// UsuarioResponse never carries the password hash.
type UsuarioResponse struct {
	ID             uuid.UUID `json:"id_usuario"`
	NombreCompleto string    `json:"nombre_completo"`
	Email          string    `json:"email"`
	Rol            string    `json:"rol"`
	FechaRegistro  time.Time `json:"fecha_registro"`
}

type LoginResponse struct {
	Usuario      UsuarioResponse `json:"usuario"`
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type UsuarioFilter struct {
	Rol   string `form:"rol"`
	Page  int    `form:"page,default=1"`
	Limit int    `form:"limit,default=10"`
}

type UsuarioListResponse struct {
	Usuarios   []UsuarioResponse `json:"usuarios"`
	Pagination Paginacion        `json:"pagination"`
}
