package repository

import (
	"github.com/crewtide/api/internal/models"
	"gorm.io/gorm"
)

// GormResourceRepository is a GORM implementation of ResourceRepository
type GormResourceRepository struct {
	db *gorm.DB
}

// NewResourceRepository creates a new ResourceRepository
func NewResourceRepository(db *gorm.DB) ResourceRepository {
	return &GormResourceRepository{db: db}
}

// Create creates a new resource link
func (r *GormResourceRepository) Create(resource *models.ResourceLink) error {
	return r.db.Create(resource).Error
}

// FindByID finds a resource link by ID
func (r *GormResourceRepository) FindByID(id uint64) (*models.ResourceLink, error) {
	var resource models.ResourceLink
	if err := r.db.First(&resource, id).Error; err != nil {
		return nil, err
	}
	return &resource, nil
}

// ListByProject lists a project's resource links, newest first
func (r *GormResourceRepository) ListByProject(projectID uint64, category *models.ResourceCategory) ([]models.ResourceLink, error) {
	var resources []models.ResourceLink

	query := r.db.Preload("AddedBy").
		Where("project_id = ?", projectID).
		Order("created_at DESC")

	if category != nil {
		query = query.Where("category = ?", *category)
	}

	if err := query.Find(&resources).Error; err != nil {
		return nil, err
	}

	return resources, nil
}

// Delete soft deletes a resource link
func (r *GormResourceRepository) Delete(id uint64) error {
	return r.db.Delete(&models.ResourceLink{}, id).Error
}
