package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/crewtide/api/internal/dto"
	apierrors "github.com/crewtide/api/internal/errors"
	"github.com/crewtide/api/internal/middleware"
	"github.com/crewtide/api/internal/services"
	"github.com/gin-gonic/gin"
)

// ProjectHandler coordinates project and membership HTTP handlers.
type ProjectHandler struct {
	projectService *services.ProjectService
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

// CreateProject creates a new project owned by the caller.
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateProjectRequest struct {
		Name        string `json:"name" binding:"required,max=60"`
		Description string `json:"description" binding:"max=200"`
	}

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	project, err := h.projectService.CreateProject(services.CreateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		OwnerID:     userID,
	})
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToProjectDTO(*project, true))
}

// ListProjects returns the caller's projects with dashboard statistics.
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	summaries, err := h.projectService.ListProjectsForUser(userID)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	projectDTOs := make([]dto.ProjectSummaryDTO, len(summaries))
	for i, summary := range summaries {
		projectDTOs[i] = dto.ToProjectSummaryDTO(summary)
	}

	c.JSON(http.StatusOK, gin.H{
		"projects": projectDTOs,
	})
}

// JoinProject adds the caller to a project via invite code.
func (h *ProjectHandler) JoinProject(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type JoinRequest struct {
		InviteCode string `json:"invite_code" binding:"required"`
	}

	var req JoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	project, err := h.projectService.JoinProjectByInvite(userID, req.InviteCode)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Successfully joined project",
		"project": dto.ToProjectDTO(*project, false),
	})
}

// GetProject returns project details with the member list.
func (h *ProjectHandler) GetProject(c *gin.Context) {
	project, ok := middleware.GetProject(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	member, ok := middleware.GetMembership(c)
	if !ok {
		apierrors.InternalError(c, "Membership not found in context")
		return
	}

	loaded, members, err := h.projectService.GetProjectWithMembers(project.ID)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDetailDTO(*loaded, members, member.Role))
}

// UpdateProject updates the project name and description.
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	project, ok := middleware.GetProject(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}
	member, _ := middleware.GetMembership(c)

	type UpdateProjectRequest struct {
		Name        string `json:"name" binding:"required,max=60"`
		Description string `json:"description" binding:"max=200"`
	}

	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	updated, err := h.projectService.UpdateProjectDetails(project.ID, member.Role, req.Name, req.Description)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTO(*updated, true))
}

// DeleteProject deletes the project and everything in it.
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	project, ok := middleware.GetProject(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}
	member, _ := middleware.GetMembership(c)

	if err := h.projectService.DeleteProject(project.ID, member.Role); err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Project deleted successfully",
	})
}

// AddMember adds a registered user to the project by email.
func (h *ProjectHandler) AddMember(c *gin.Context) {
	project, ok := middleware.GetProject(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}
	member, _ := middleware.GetMembership(c)

	type AddMemberRequest struct {
		Email string `json:"email" binding:"required,email"`
	}

	var req AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	added, err := h.projectService.AddMemberByEmail(project.ID, member.Role, req.Email)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToProjectMemberDTO(*added))
}

// RemoveMember removes a member from the project.
func (h *ProjectHandler) RemoveMember(c *gin.Context) {
	project, ok := middleware.GetProject(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}
	member, _ := middleware.GetMembership(c)

	userID, _ := middleware.GetUserID(c)

	targetID, err := strconv.ParseUint(c.Param("user_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	if err := h.projectService.RemoveMember(project.ID, member.Role, userID, targetID); err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Member removed successfully",
	})
}

// StartSession opens the project's live session window.
func (h *ProjectHandler) StartSession(c *gin.Context) {
	project, ok := middleware.GetProject(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}
	member, _ := middleware.GetMembership(c)

	type StartSessionRequest struct {
		DurationMinutes int `json:"duration_minutes" binding:"required"`
	}

	var req StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	updated, err := h.projectService.StartLiveSession(project.ID, member.Role, req.DurationMinutes)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTO(*updated, true))
}

// EndSession closes the project's live session window.
func (h *ProjectHandler) EndSession(c *gin.Context) {
	project, ok := middleware.GetProject(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}
	member, _ := middleware.GetMembership(c)

	updated, err := h.projectService.EndLiveSession(project.ID, member.Role)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTO(*updated, true))
}

func respondProjectError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidProjectName),
		errors.Is(err, services.ErrInvalidSessionDuration):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrInvalidInviteCode),
		errors.Is(err, services.ErrProjectNotFound),
		errors.Is(err, services.ErrProjectMemberNotFound),
		errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrAlreadyProjectMember):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrNotProjectOwner),
		errors.Is(err, services.ErrCannotRemoveYourself),
		errors.Is(err, services.ErrCannotRemoveOwner):
		apierrors.Forbidden(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
