package models

import "time"

// Roles recognized by the route guard.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

type User struct {
	UserID    int       `json:"user_id" gorm:"primaryKey;autoIncrement;type:INT"`
	Username  string    `json:"username" gorm:"type:varchar(50);not null"`
	Email     string    `json:"email" gorm:"type:varchar(100);not null;uniqueIndex"`
	Password  string    `json:"password" gorm:"type:varchar(100);not null"`
	Role      string    `json:"role" gorm:"type:enum('admin','user');default:'user'"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse omits the password hash.
type UserResponse struct {
	UserID    int       `json:"user_id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) ToResponse() UserResponse {
	return UserResponse{
		UserID:    u.UserID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
