package models

import (
	"time"

	"gorm.io/gorm"
)

type ResourceCategory string

const (
	ResourceCategoryScope  ResourceCategory = "Scope"
	ResourceCategoryDesign ResourceCategory = "Design"
	ResourceCategoryCode   ResourceCategory = "Code"
	ResourceCategoryDocs   ResourceCategory = "Docs"
	ResourceCategoryOther  ResourceCategory = "Other"
)

// ResourceLink is a shared link in a project's resource hub.
type ResourceLink struct {
	ID            uint64           `gorm:"primarykey" json:"id"`
	ProjectID     uint64           `gorm:"not null;index" json:"project_id"`
	Title         string           `gorm:"type:varchar(120);not null" json:"title"`
	URL           string           `gorm:"type:varchar(2048);not null" json:"url"`
	Description   string           `gorm:"type:varchar(300)" json:"description"`
	Category      ResourceCategory `gorm:"type:varchar(20);not null;default:'Other'" json:"category"`
	AddedByUserID uint64           `gorm:"not null" json:"added_by_user_id"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
	DeletedAt     gorm.DeletedAt   `gorm:"index" json:"-"`

	// Relations
	Project Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	AddedBy User    `gorm:"foreignKey:AddedByUserID" json:"added_by,omitempty"`
}
