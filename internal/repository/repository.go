package repository

import (
	"github.com/crewtide/api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email (emails are stored lowercase)
	FindByEmail(email string) (*models.User, error)

	// Update updates a user's profile fields
	Update(user *models.User) error
}

// ProjectRepository defines the interface for project and membership data access
type ProjectRepository interface {
	// CreateWithOwner creates a project and its owner membership within a
	// single transaction
	CreateWithOwner(project *models.Project, member *models.ProjectMember) error

	// FindByID finds a project by ID
	FindByID(id uint64) (*models.Project, error)

	// FindByInviteCode finds a project by its invite code (callers pass the
	// code already uppercased)
	FindByInviteCode(code string) (*models.Project, error)

	// Update updates a project
	Update(project *models.Project) error

	// Delete deletes a project and all related tasks, resources and
	// memberships
	Delete(id uint64) error

	// AddMember adds a member to a project
	AddMember(member *models.ProjectMember) error

	// RemoveMember removes a member from a project
	RemoveMember(projectID, userID uint64) error

	// FindMember finds a specific project membership
	FindMember(projectID, userID uint64) (*models.ProjectMember, error)

	// ListMembershipsByUserID lists all projects a user is a member of
	ListMembershipsByUserID(userID uint64) ([]models.ProjectMember, error)

	// ListMembers lists all members of a project, oldest first
	ListMembers(projectID uint64) ([]models.ProjectMember, error)

	// CountMembers counts the members of a project
	CountMembers(projectID uint64) (int64, error)
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// ListByProject lists a project's tasks in board order (creation order)
	ListByProject(projectID uint64, page, pageSize int) ([]models.Task, int64, error)

	// Update updates a task
	Update(task *models.Task) error

	// Delete soft deletes a task
	Delete(id uint64) error

	// Claim atomically assigns an unassigned task to a user and moves it to
	// in_progress. Returns ErrTaskAlreadyClaimed when the task was assigned
	// in the meantime.
	Claim(taskID, userID uint64) error

	// StatsByProject returns the total and done task counts for a project
	StatsByProject(projectID uint64) (total, done int64, err error)
}

// ResourceRepository defines the interface for resource link data access
type ResourceRepository interface {
	// Create creates a new resource link
	Create(resource *models.ResourceLink) error

	// FindByID finds a resource link by ID
	FindByID(id uint64) (*models.ResourceLink, error)

	// ListByProject lists a project's resource links, newest first,
	// optionally filtered by category
	ListByProject(projectID uint64, category *models.ResourceCategory) ([]models.ResourceLink, error)

	// Delete soft deletes a resource link
	Delete(id uint64) error
}
