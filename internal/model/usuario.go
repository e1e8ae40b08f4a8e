package model

import (
	"time"

	"github.com/google/uuid"
)

// Roles disponibles para Usuario.Rol.
const (
	RolUsuario       = "USUARIO"
	RolAdministrador = "ADMINISTRADOR"
	RolModerador     = "MODERADOR"
)

// RolValido reports whether rol is one of the three known roles.
func RolValido(rol string) bool {
	return rol == RolUsuario || rol == RolAdministrador || rol == RolModerador
}

// Usuario stores registered users with role-based access.
// PasswordHash never leaves the persistence layer: every outward-facing read
// goes through dto.UsuarioResponse, which has no hash field.
type Usuario struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	NombreCompleto string    `gorm:"not null"`
	Email          string    `gorm:"uniqueIndex;not null"`
	PasswordHash   string    `gorm:"not null"`
	Rol            string    `gorm:"type:varchar(20);not null;default:'USUARIO'"`
	FechaRegistro  time.Time `gorm:"autoCreateTime"`
}

func (Usuario) TableName() string { return "usuarios" }
