package dto

import (
	"time"

	"github.com/crewtide/api/internal/models"
)

// ResourceLinkDTO represents a resource link in API responses
type ResourceLinkDTO struct {
	ID            uint64                  `json:"id"`
	ProjectID     uint64                  `json:"project_id"`
	Title         string                  `json:"title"`
	URL           string                  `json:"url"`
	Description   string                  `json:"description,omitempty"`
	Category      models.ResourceCategory `json:"category"`
	AddedByUserID uint64                  `json:"added_by_user_id"`
	CreatedAt     time.Time               `json:"created_at"`
	AddedBy       *UserDTO                `json:"added_by,omitempty"`
}

// ToResourceLinkDTO converts a ResourceLink model to DTO
func ToResourceLinkDTO(resource models.ResourceLink) ResourceLinkDTO {
	dto := ResourceLinkDTO{
		ID:            resource.ID,
		ProjectID:     resource.ProjectID,
		Title:         resource.Title,
		URL:           resource.URL,
		Description:   resource.Description,
		Category:      resource.Category,
		AddedByUserID: resource.AddedByUserID,
		CreatedAt:     resource.CreatedAt,
	}

	if resource.AddedBy.ID != 0 {
		addedBy := ToUserDTO(resource.AddedBy)
		dto.AddedBy = &addedBy
	}

	return dto
}
