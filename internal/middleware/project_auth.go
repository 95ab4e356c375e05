package middleware

import (
	"strconv"

	"github.com/crewtide/api/internal/constants"
	apierrors "github.com/crewtide/api/internal/errors"
	"github.com/crewtide/api/internal/models"
	"github.com/crewtide/api/internal/repository"
	"github.com/gin-gonic/gin"
)

// RequireProjectAccess checks that the caller is a member of the project in
// the URL and stores the project and membership in the request context.
// Non-members get 404 rather than 403 so project existence does not leak.
func RequireProjectAccess(projects repository.ProjectRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectIDStr := c.Param("id")
		projectID, err := strconv.ParseUint(projectIDStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid project ID")
			c.Abort()
			return
		}

		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		project, err := projects.FindByID(projectID)
		if err != nil {
			apierrors.NotFound(c, "Project not found")
			c.Abort()
			return
		}

		member, err := projects.FindMember(projectID, userID)
		if err != nil {
			apierrors.NotFound(c, "Project not found")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyProject, *project)
		c.Set(constants.ContextKeyMembership, *member)
		c.Next()
	}
}

// RequireProjectOwner checks that the membership loaded by
// RequireProjectAccess carries the owner role.
func RequireProjectOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		member, ok := GetMembership(c)
		if !ok {
			apierrors.Forbidden(c, "Project access required")
			c.Abort()
			return
		}

		if member.Role != models.RoleOwner {
			apierrors.Forbidden(c, "Only project owners can perform this action")
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetProject retrieves the project loaded by RequireProjectAccess.
func GetProject(c *gin.Context) (models.Project, bool) {
	value, exists := c.Get(constants.ContextKeyProject)
	if !exists {
		return models.Project{}, false
	}
	project, ok := value.(models.Project)
	return project, ok
}

// GetMembership retrieves the membership loaded by RequireProjectAccess.
func GetMembership(c *gin.Context) (models.ProjectMember, bool) {
	value, exists := c.Get(constants.ContextKeyMembership)
	if !exists {
		return models.ProjectMember{}, false
	}
	member, ok := value.(models.ProjectMember)
	return member, ok
}
