package model

import (
	"time"

	"github.com/google/uuid"
)

// ReporteOferta records a user flagging an offer (wrong price, expired, spam).
// Append-only: there is no update or delete operation for reports.
type ReporteOferta struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Motivo    string    `gorm:"not null"`
	OfertaID  uuid.UUID `gorm:"type:uuid;not null;index"`
	UsuarioID uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt time.Time

	Oferta  *Oferta  `gorm:"foreignKey:OfertaID"`
	Usuario *Usuario `gorm:"foreignKey:UsuarioID"`
}

func (ReporteOferta) TableName() string { return "reportes_oferta" }
