package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Username     string    `json:"username" gorm:"type:varchar(255)"`
	Name         string    `json:"name" gorm:"type:varchar(255)"`
	Surname      string    `json:"surname" gorm:"type:varchar(255)"`
	Email        string    `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	PhoneNumber  string    `json:"phoneNumber" gorm:"column:phone_number;type:varchar(50)"`
	PasswordHash string    `json:"-" gorm:"column:password_hash;not null"`
	SelfCreated  bool      `json:"selfCreated" gorm:"column:self_created"`
	IsAdmin      bool      `json:"isAdmin" gorm:"column:is_admin"`
	CreatedAt    time.Time `json:"createdAt" gorm:"autoCreateTime;index"`
	UpdatedAt    time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.Must(uuid.NewV7())
	}
	return nil
}

// UserResponse is the public-facing user data
type UserResponse struct {
	ID          uuid.UUID `json:"_id"`
	Username    string    `json:"username"`
	Name        string    `json:"name"`
	Surname     string    `json:"surname"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phoneNumber"`
	SelfCreated bool      `json:"selfCreated"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ToResponse converts User to UserResponse
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Name:        u.Name,
		Surname:     u.Surname,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		SelfCreated: u.SelfCreated,
		CreatedAt:   u.CreatedAt,
	}
}

// SignupRequest for email/password registration
type SignupRequest struct {
	Username string `json:"username" binding:"required" example:"olena"`
	Email    string `json:"email" binding:"required,email" example:"olena@example.com"`
	Password string `json:"password" binding:"required,min=8" example:"s3cret-pass"`
}

// CreateClientRequest is used by admins to register a customer by hand
type CreateClientRequest struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Surname     string `json:"surname"`
	PhoneNumber string `json:"phoneNumber"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is returned after successful authentication
type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}
