package models

import "time"

// ParkingLot is an estacionamiento managed from the administrative area.
// CreatedAt is server-assigned on insert.
type ParkingLot struct {
	LotID     int       `json:"lot_id" gorm:"primaryKey;autoIncrement;type:INT"`
	Nombre    string    `json:"nombre" gorm:"type:varchar(100);not null" binding:"required,max=100"`
	Direccion string    `json:"direccion" gorm:"type:varchar(200);not null" binding:"required,max=200"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	Areas     []Area    `json:"-" gorm:"foreignKey:LotID;references:LotID"`
}

func (ParkingLot) TableName() string {
	return "estacionamientos"
}

// UpdateParkingLotRequest is the PUT payload; nil fields keep their value.
type UpdateParkingLotRequest struct {
	Nombre    *string `json:"nombre" binding:"omitempty,max=100"`
	Direccion *string `json:"direccion" binding:"omitempty,max=200"`
}
