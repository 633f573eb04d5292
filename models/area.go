package models

import "time"

// Area is a zone inside an estacionamiento (piso, sector).
type Area struct {
	AreaID    int       `json:"area_id" gorm:"primaryKey;autoIncrement;type:INT"`
	LotID     int       `json:"lot_id" gorm:"index;not null;type:INT" binding:"required,gt=0"`
	Nombre    string    `json:"nombre" gorm:"type:varchar(100);not null" binding:"required,max=100"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	Spaces    []Space   `json:"-" gorm:"foreignKey:AreaID;references:AreaID"`
}

func (Area) TableName() string {
	return "areas"
}

// UpdateAreaRequest is the PUT payload; nil fields keep their value.
type UpdateAreaRequest struct {
	LotID  *int    `json:"lot_id" binding:"omitempty,gt=0"`
	Nombre *string `json:"nombre" binding:"omitempty,max=100"`
}
