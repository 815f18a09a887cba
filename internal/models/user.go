package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents a managed user account. The password is stored only as
// a bcrypt hash and never serialized into responses. Image holds the
// filesystem path of the last uploaded profile picture, if any.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FullName     string    `gorm:"not null" json:"fullName" validate:"required"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email" validate:"required,email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Image        *string   `json:"image,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// BeforeCreate assigns the generated identifier. Generating it here
// rather than with a database default keeps the model portable across
// the SQLite test store.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// UserSummary is the projection returned by the list endpoint. Password
// and image are deliberately not part of it.
type UserSummary struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}
