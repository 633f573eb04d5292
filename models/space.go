package models

import "time"

// Space estados. These describe the physical espacio in the admin
// inventory; the selection catalog keeps its own mock occupancy.
const (
	SpaceLibre         = "libre"
	SpaceOcupado       = "ocupado"
	SpaceMantenimiento = "mantenimiento"
)

// Space is a numbered espacio inside an area.
type Space struct {
	SpaceID   int       `json:"space_id" gorm:"primaryKey;autoIncrement;type:INT"`
	AreaID    int       `json:"area_id" gorm:"index;not null;type:INT" binding:"required,gt=0"`
	Numero    int       `json:"numero" gorm:"not null;type:INT" binding:"required,gt=0"`
	Estado    string    `json:"estado" gorm:"type:enum('libre','ocupado','mantenimiento');default:'libre'" binding:"omitempty,oneof=libre ocupado mantenimiento"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (Space) TableName() string {
	return "espacios"
}

// UpdateSpaceRequest is the PUT payload; nil fields keep their value.
type UpdateSpaceRequest struct {
	AreaID *int    `json:"area_id" binding:"omitempty,gt=0"`
	Numero *int    `json:"numero" binding:"omitempty,gt=0"`
	Estado *string `json:"estado" binding:"omitempty,oneof=libre ocupado mantenimiento"`
}
