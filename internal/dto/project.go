package dto

import (
	"time"

	"github.com/crewtide/api/internal/models"
	"github.com/crewtide/api/internal/services"
)

// ProjectDTO represents a project in API responses
type ProjectDTO struct {
	ID            uint64     `json:"id"`
	Name          string     `json:"name"`
	Description   string     `json:"description,omitempty"`
	OwnerUserID   uint64     `json:"owner_user_id"`
	InviteCode    string     `json:"invite_code,omitempty"`
	SessionEndsAt *time.Time `json:"session_ends_at,omitempty"`
	SessionActive bool       `json:"session_active"`
	CreatedAt     time.Time  `json:"created_at"`
}

// ProjectSummaryDTO is a dashboard entry: a project plus the caller's role
// and board statistics.
type ProjectSummaryDTO struct {
	ProjectDTO
	Role        models.ProjectRole `json:"role"`
	MemberCount int64              `json:"member_count"`
	TaskCount   int64              `json:"task_count"`
	DoneCount   int64              `json:"done_count"`
	Progress    int                `json:"progress"`
}

// ProjectMemberDTO represents a member in a project
type ProjectMemberDTO struct {
	User     UserDTO            `json:"user"`
	Role     models.ProjectRole `json:"role"`
	JoinedAt time.Time          `json:"joined_at"`
}

// ProjectDetailDTO represents detailed project information
type ProjectDetailDTO struct {
	ProjectDTO
	Members  []ProjectMemberDTO `json:"members"`
	YourRole models.ProjectRole `json:"your_role"`
}

// ToProjectDTO converts a Project model to ProjectDTO. The invite code is
// only included for members (every view that reaches it already is).
func ToProjectDTO(project models.Project, includeInviteCode bool) ProjectDTO {
	dto := ProjectDTO{
		ID:            project.ID,
		Name:          project.Name,
		Description:   project.Description,
		OwnerUserID:   project.OwnerUserID,
		SessionEndsAt: project.SessionEndsAt,
		SessionActive: project.SessionActive(time.Now()),
		CreatedAt:     project.CreatedAt,
	}
	if includeInviteCode {
		dto.InviteCode = project.InviteCode
	}
	return dto
}

// ToProjectSummaryDTO converts a service summary to its response shape
func ToProjectSummaryDTO(summary services.ProjectSummary) ProjectSummaryDTO {
	return ProjectSummaryDTO{
		ProjectDTO:  ToProjectDTO(summary.Project, true),
		Role:        summary.Role,
		MemberCount: summary.MemberCount,
		TaskCount:   summary.TaskCount,
		DoneCount:   summary.DoneCount,
		Progress:    summary.Progress,
	}
}

// ToProjectMemberDTO converts a member to DTO
func ToProjectMemberDTO(member models.ProjectMember) ProjectMemberDTO {
	return ProjectMemberDTO{
		User:     ToUserDTO(member.User),
		Role:     member.Role,
		JoinedAt: member.JoinedAt,
	}
}

// ToProjectDetailDTO converts a project with members to detailed DTO
func ToProjectDetailDTO(project models.Project, members []models.ProjectMember, yourRole models.ProjectRole) ProjectDetailDTO {
	memberDTOs := make([]ProjectMemberDTO, len(members))
	for i, member := range members {
		memberDTOs[i] = ToProjectMemberDTO(member)
	}

	return ProjectDetailDTO{
		ProjectDTO: ToProjectDTO(project, true),
		Members:    memberDTOs,
		YourRole:   yourRole,
	}
}
