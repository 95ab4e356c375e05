package models

import (
	"time"

	"gorm.io/gorm"
)

type Project struct {
	ID            uint64         `gorm:"primarykey" json:"id"`
	Name          string         `gorm:"type:varchar(60);not null" json:"name"`
	Description   string         `gorm:"type:varchar(200)" json:"description"`
	OwnerUserID   uint64         `gorm:"not null" json:"owner_user_id"`
	InviteCode    string         `gorm:"type:varchar(8);uniqueIndex;not null" json:"invite_code"`
	SessionEndsAt *time.Time     `json:"session_ends_at"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Members   []ProjectMember `gorm:"foreignKey:ProjectID" json:"members,omitempty"`
	Tasks     []Task          `gorm:"foreignKey:ProjectID" json:"tasks,omitempty"`
	Resources []ResourceLink  `gorm:"foreignKey:ProjectID" json:"resources,omitempty"`
}

// SessionActive reports whether the project's live session window is open.
// A nil or past session_ends_at means no session is running.
func (p *Project) SessionActive(now time.Time) bool {
	return p.SessionEndsAt != nil && p.SessionEndsAt.After(now)
}
