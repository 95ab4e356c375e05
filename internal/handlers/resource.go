package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/crewtide/api/internal/dto"
	apierrors "github.com/crewtide/api/internal/errors"
	"github.com/crewtide/api/internal/middleware"
	"github.com/crewtide/api/internal/models"
	"github.com/crewtide/api/internal/services"
	"github.com/gin-gonic/gin"
)

// ResourceHandler coordinates resource hub HTTP handlers.
type ResourceHandler struct {
	resourceService *services.ResourceService
}

// NewResourceHandler creates a new ResourceHandler.
func NewResourceHandler(resourceService *services.ResourceService) *ResourceHandler {
	return &ResourceHandler{
		resourceService: resourceService,
	}
}

// ListResources returns a project's resource links, optionally filtered by
// category.
func (h *ResourceHandler) ListResources(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	projectID, err := strconv.ParseUint(c.Query("project_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid project_id")
		return
	}

	var category *models.ResourceCategory
	if raw := c.Query("category"); raw != "" {
		cat := models.ResourceCategory(raw)
		category = &cat
	}

	resources, err := h.resourceService.ListResources(projectID, userID, category)
	if err != nil {
		respondResourceError(c, err)
		return
	}

	resourceDTOs := make([]dto.ResourceLinkDTO, len(resources))
	for i, resource := range resources {
		resourceDTOs[i] = dto.ToResourceLinkDTO(resource)
	}

	c.JSON(http.StatusOK, gin.H{
		"resources": resourceDTOs,
	})
}

// CreateResource adds a resource link to a project.
func (h *ResourceHandler) CreateResource(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateResourceRequest struct {
		ProjectID   uint64                  `json:"project_id" binding:"required"`
		Title       string                  `json:"title" binding:"required,max=120"`
		URL         string                  `json:"url" binding:"required,url"`
		Description string                  `json:"description" binding:"max=300"`
		Category    models.ResourceCategory `json:"category"`
	}

	var req CreateResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	resource, err := h.resourceService.AddResource(services.AddResourceInput{
		ProjectID:   req.ProjectID,
		ActorID:     userID,
		Title:       req.Title,
		URL:         req.URL,
		Description: req.Description,
		Category:    req.Category,
	})
	if err != nil {
		respondResourceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToResourceLinkDTO(*resource))
}

// DeleteResource removes a resource link.
func (h *ResourceHandler) DeleteResource(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	resourceID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid resource ID")
		return
	}

	if err := h.resourceService.DeleteResource(resourceID, userID); err != nil {
		respondResourceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Resource deleted successfully",
	})
}

func respondResourceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrResourceTitleRequired),
		errors.Is(err, services.ErrResourceURLRequired),
		errors.Is(err, services.ErrInvalidResourceCategory):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrResourceNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNotProjectMember):
		apierrors.NotFound(c, "")
	case errors.Is(err, services.ErrResourcePermissionDenied):
		apierrors.Forbidden(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
