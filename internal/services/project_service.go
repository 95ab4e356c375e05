package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/crewtide/api/internal/authz"
	"github.com/crewtide/api/internal/models"
	"github.com/crewtide/api/internal/repository"
	"github.com/crewtide/api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrProjectNotFound            = errors.New("project not found")
	ErrInvalidProjectName         = errors.New("project name cannot be empty")
	ErrInviteCodeGenerationFailed = errors.New("failed to generate invite code")
	ErrInvalidInviteCode          = errors.New("invalid invite code")
	ErrAlreadyProjectMember       = errors.New("user is already a member of this project")
	ErrNotProjectOwner            = errors.New("only the project owner can perform this action")
	ErrCannotRemoveYourself       = errors.New("cannot remove yourself from the project")
	ErrCannotRemoveOwner          = errors.New("cannot remove a project owner")
	ErrProjectMemberNotFound      = errors.New("project member not found")
	ErrInvalidSessionDuration     = errors.New("session duration must be positive")
)

// inviteCodeAttempts bounds the regeneration loop when a freshly generated
// code collides with an existing project.
const inviteCodeAttempts = 5

// ProjectService provides business logic for projects, memberships and the
// live session window.
type ProjectService struct {
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
	taskRepo    repository.TaskRepository
}

// NewProjectService creates a new ProjectService.
func NewProjectService(projectRepo repository.ProjectRepository, userRepo repository.UserRepository, taskRepo repository.TaskRepository) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		userRepo:    userRepo,
		taskRepo:    taskRepo,
	}
}

// CreateProjectInput represents parameters to create a new project.
type CreateProjectInput struct {
	Name        string
	Description string
	OwnerID     uint64
}

// CreateProject creates a new project with a fresh invite code and the
// creator as owner. Project and membership land in one transaction.
func (s *ProjectService) CreateProject(input CreateProjectInput) (*models.Project, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrInvalidProjectName
	}

	inviteCode, err := s.freshInviteCode()
	if err != nil {
		return nil, err
	}

	project := &models.Project{
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		OwnerUserID: input.OwnerID,
		InviteCode:  inviteCode,
	}

	member := &models.ProjectMember{
		UserID:   input.OwnerID,
		Role:     models.RoleOwner,
		JoinedAt: time.Now(),
	}

	if err := s.projectRepo.CreateWithOwner(project, member); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return project, nil
}

// freshInviteCode generates a code not currently held by any project.
// Collisions are vanishingly rare with a 32^8 space, but the unique index
// would fail the whole creation, so re-roll instead.
func (s *ProjectService) freshInviteCode() (string, error) {
	for i := 0; i < inviteCodeAttempts; i++ {
		code, err := utils.GenerateInviteCode()
		if err != nil {
			return "", ErrInviteCodeGenerationFailed
		}

		_, err = s.projectRepo.FindByInviteCode(code)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return code, nil
		}
		if err != nil {
			return "", fmt.Errorf("failed to check invite code: %w", err)
		}
	}
	return "", ErrInviteCodeGenerationFailed
}

// ProjectSummary is a project plus the caller's role and board statistics,
// as shown on the dashboard.
type ProjectSummary struct {
	Project     models.Project
	Role        models.ProjectRole
	MemberCount int64
	TaskCount   int64
	DoneCount   int64
	Progress    int
}

// ListProjectsForUser returns the projects the user belongs to, with
// dashboard statistics.
func (s *ProjectService) ListProjectsForUser(userID uint64) ([]ProjectSummary, error) {
	memberships, err := s.projectRepo.ListMembershipsByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	summaries := make([]ProjectSummary, 0, len(memberships))
	for _, m := range memberships {
		memberCount, err := s.projectRepo.CountMembers(m.ProjectID)
		if err != nil {
			return nil, fmt.Errorf("failed to count members: %w", err)
		}

		taskCount, doneCount, err := s.taskRepo.StatsByProject(m.ProjectID)
		if err != nil {
			return nil, fmt.Errorf("failed to count tasks: %w", err)
		}

		summaries = append(summaries, ProjectSummary{
			Project:     m.Project,
			Role:        m.Role,
			MemberCount: memberCount,
			TaskCount:   taskCount,
			DoneCount:   doneCount,
			Progress:    authz.ProjectProgress(taskCount, doneCount),
		})
	}

	return summaries, nil
}

// GetProjectWithMembers returns a project and all of its members.
func (s *ProjectService) GetProjectWithMembers(projectID uint64) (*models.Project, []models.ProjectMember, error) {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrProjectNotFound
		}
		return nil, nil, fmt.Errorf("failed to find project: %w", err)
	}

	members, err := s.projectRepo.ListMembers(projectID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list project members: %w", err)
	}

	return project, members, nil
}

// UpdateProjectDetails updates a project's name and description.
func (s *ProjectService) UpdateProjectDetails(projectID uint64, actorRole models.ProjectRole, name, description string) (*models.Project, error) {
	if !authz.CanUpdateProjectDetails(actorRole) {
		return nil, ErrNotProjectOwner
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidProjectName
	}

	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	project.Name = name
	project.Description = strings.TrimSpace(description)
	if err := s.projectRepo.Update(project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	return project, nil
}

// DeleteProject removes a project along with its tasks, resources and
// memberships.
func (s *ProjectService) DeleteProject(projectID uint64, actorRole models.ProjectRole) error {
	if !authz.CanDeleteProject(actorRole) {
		return ErrNotProjectOwner
	}

	if _, err := s.projectRepo.FindByID(projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to find project: %w", err)
	}

	if err := s.projectRepo.Delete(projectID); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	return nil
}

// JoinProjectByInvite adds a user to a project via invite code. The code is
// matched case-insensitively.
func (s *ProjectService) JoinProjectByInvite(userID uint64, inviteCode string) (*models.Project, error) {
	code := strings.ToUpper(strings.TrimSpace(inviteCode))

	project, err := s.projectRepo.FindByInviteCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidInviteCode
		}
		return nil, fmt.Errorf("failed to find project by invite code: %w", err)
	}

	if _, err := s.projectRepo.FindMember(project.ID, userID); err == nil {
		return nil, ErrAlreadyProjectMember
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to verify membership: %w", err)
	}

	member := &models.ProjectMember{
		ProjectID: project.ID,
		UserID:    userID,
		Role:      models.RoleMember,
		JoinedAt:  time.Now(),
	}

	if err := s.projectRepo.AddMember(member); err != nil {
		return nil, fmt.Errorf("failed to add member to project: %w", err)
	}

	return project, nil
}

// AddMemberByEmail adds a registered user to the project by their email.
func (s *ProjectService) AddMemberByEmail(projectID uint64, actorRole models.ProjectRole, email string) (*models.ProjectMember, error) {
	if !authz.CanAddMemberByEmail(actorRole) {
		return nil, ErrNotProjectOwner
	}

	user, err := s.userRepo.FindByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}

	if _, err := s.projectRepo.FindMember(projectID, user.ID); err == nil {
		return nil, ErrAlreadyProjectMember
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to verify membership: %w", err)
	}

	member := &models.ProjectMember{
		ProjectID: projectID,
		UserID:    user.ID,
		Role:      models.RoleMember,
		JoinedAt:  time.Now(),
	}

	if err := s.projectRepo.AddMember(member); err != nil {
		return nil, fmt.Errorf("failed to add member to project: %w", err)
	}

	member.User = *user
	return member, nil
}

// RemoveMember removes a member from the project. Owners cannot be removed
// and the requester cannot remove themselves through this path.
func (s *ProjectService) RemoveMember(projectID uint64, actorRole models.ProjectRole, actorID, targetID uint64) error {
	target, err := s.projectRepo.FindMember(projectID, targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectMemberNotFound
		}
		return fmt.Errorf("failed to find project member: %w", err)
	}

	if !authz.CanRemoveMember(actorRole, actorID, targetID, target.Role) {
		switch {
		case actorRole != models.RoleOwner:
			return ErrNotProjectOwner
		case targetID == actorID:
			return ErrCannotRemoveYourself
		default:
			return ErrCannotRemoveOwner
		}
	}

	if err := s.projectRepo.RemoveMember(projectID, targetID); err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}

	return nil
}

// StartLiveSession opens the project's availability window for the given
// number of minutes.
func (s *ProjectService) StartLiveSession(projectID uint64, actorRole models.ProjectRole, durationMinutes int) (*models.Project, error) {
	if !authz.CanManageLiveSession(actorRole) {
		return nil, ErrNotProjectOwner
	}
	if durationMinutes <= 0 {
		return nil, ErrInvalidSessionDuration
	}

	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	endsAt := time.Now().Add(time.Duration(durationMinutes) * time.Minute)
	project.SessionEndsAt = &endsAt

	if err := s.projectRepo.Update(project); err != nil {
		return nil, fmt.Errorf("failed to start session: %w", err)
	}

	return project, nil
}

// EndLiveSession closes the project's availability window.
func (s *ProjectService) EndLiveSession(projectID uint64, actorRole models.ProjectRole) (*models.Project, error) {
	if !authz.CanManageLiveSession(actorRole) {
		return nil, ErrNotProjectOwner
	}

	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	project.SessionEndsAt = nil

	if err := s.projectRepo.Update(project); err != nil {
		return nil, fmt.Errorf("failed to end session: %w", err)
	}

	return project, nil
}
