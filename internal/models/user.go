package models

import (
	"time"

	"gorm.io/gorm"
)

// DefaultAvatarColor is used when a user registers without picking one.
const DefaultAvatarColor = "#2D6DB5"

type User struct {
	ID           uint64         `gorm:"primarykey" json:"id"`
	Name         string         `gorm:"type:varchar(100);not null" json:"name"`
	Email        string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"type:varchar(255);not null" json:"-"`
	AvatarColor  string         `gorm:"type:varchar(20);not null;default:'#2D6DB5'" json:"avatar_color"`
	Timezone     string         `gorm:"type:varchar(64)" json:"timezone"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Memberships  []ProjectMember `gorm:"foreignKey:UserID" json:"-"`
	CreatedTasks []Task          `gorm:"foreignKey:CreatedByUserID" json:"-"`
}
