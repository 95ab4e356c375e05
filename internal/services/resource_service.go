package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/crewtide/api/internal/authz"
	"github.com/crewtide/api/internal/models"
	"github.com/crewtide/api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrResourceNotFound         = errors.New("resource not found")
	ErrResourceTitleRequired    = errors.New("resource title is required")
	ErrResourceURLRequired      = errors.New("resource url is required")
	ErrInvalidResourceCategory  = errors.New("invalid resource category")
	ErrResourcePermissionDenied = errors.New("user does not have permission to delete this resource")
)

// ResourceService handles the project resource hub.
type ResourceService struct {
	resourceRepo repository.ResourceRepository
	projectRepo  repository.ProjectRepository
}

// NewResourceService creates a new ResourceService
func NewResourceService(resourceRepo repository.ResourceRepository, projectRepo repository.ProjectRepository) *ResourceService {
	return &ResourceService{
		resourceRepo: resourceRepo,
		projectRepo:  projectRepo,
	}
}

// ListResources returns a project's resource links, newest first.
func (s *ResourceService) ListResources(projectID, userID uint64, category *models.ResourceCategory) ([]models.ResourceLink, error) {
	if _, err := s.requireMember(projectID, userID); err != nil {
		return nil, err
	}

	if category != nil && !authz.ValidResourceCategory(*category) {
		return nil, ErrInvalidResourceCategory
	}

	resources, err := s.resourceRepo.ListByProject(projectID, category)
	if err != nil {
		return nil, fmt.Errorf("failed to list resources: %w", err)
	}

	return resources, nil
}

// AddResourceInput represents input for adding a resource link.
type AddResourceInput struct {
	ProjectID   uint64
	ActorID     uint64
	Title       string
	URL         string
	Description string
	Category    models.ResourceCategory
}

// AddResource adds a resource link. Any project member may add one.
func (s *ResourceService) AddResource(input AddResourceInput) (*models.ResourceLink, error) {
	if _, err := s.requireMember(input.ProjectID, input.ActorID); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrResourceTitleRequired
	}

	url := strings.TrimSpace(input.URL)
	if url == "" {
		return nil, ErrResourceURLRequired
	}

	if input.Category == "" {
		input.Category = models.ResourceCategoryOther
	}
	if !authz.ValidResourceCategory(input.Category) {
		return nil, ErrInvalidResourceCategory
	}

	resource := &models.ResourceLink{
		ProjectID:     input.ProjectID,
		Title:         title,
		URL:           url,
		Description:   strings.TrimSpace(input.Description),
		Category:      input.Category,
		AddedByUserID: input.ActorID,
	}

	if err := s.resourceRepo.Create(resource); err != nil {
		return nil, fmt.Errorf("failed to add resource: %w", err)
	}

	return resource, nil
}

// DeleteResource removes a resource link. Owners may delete any link;
// members only their own.
func (s *ResourceService) DeleteResource(resourceID, actorID uint64) error {
	resource, err := s.resourceRepo.FindByID(resourceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrResourceNotFound
		}
		return fmt.Errorf("failed to find resource: %w", err)
	}

	member, err := s.requireMember(resource.ProjectID, actorID)
	if err != nil {
		return err
	}

	if !authz.CanDeleteResourceLink(member.Role, actorID, resource.AddedByUserID) {
		return ErrResourcePermissionDenied
	}

	if err := s.resourceRepo.Delete(resourceID); err != nil {
		return fmt.Errorf("failed to delete resource: %w", err)
	}

	return nil
}

func (s *ResourceService) requireMember(projectID, userID uint64) (*models.ProjectMember, error) {
	member, err := s.projectRepo.FindMember(projectID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotProjectMember
		}
		return nil, fmt.Errorf("failed to verify project membership: %w", err)
	}
	return member, nil
}
