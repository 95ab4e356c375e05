package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/crewtide/api/internal/authz"
	"github.com/crewtide/api/internal/models"
	"github.com/crewtide/api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrNotProjectMember     = errors.New("user is not a member of the project")
	ErrTaskNotFound         = errors.New("task not found")
	ErrTaskPermissionDenied = errors.New("user does not have permission to modify this task")
	ErrTaskAlreadyAssigned  = errors.New("task is already assigned")
	ErrTitleRequired        = errors.New("title is required")
	ErrInvalidStatus        = errors.New("invalid task status")
	ErrInvalidPriority      = errors.New("invalid task priority")
)

// TaskService handles task board business logic.
type TaskService struct {
	taskRepo    repository.TaskRepository
	projectRepo repository.ProjectRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, projectRepo repository.ProjectRepository) *TaskService {
	return &TaskService{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
	}
}

// ListTasksInput represents parameters for listing a project's board.
type ListTasksInput struct {
	UserID    uint64
	ProjectID uint64
	Page      int
	PageSize  int
}

// ListTasks returns a project's tasks in board order.
func (s *TaskService) ListTasks(input ListTasksInput) ([]models.Task, int64, error) {
	if _, err := s.requireMember(input.ProjectID, input.UserID); err != nil {
		return nil, 0, err
	}

	tasks, total, err := s.taskRepo.ListByProject(input.ProjectID, input.Page, input.PageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, total, nil
}

// GetTask returns a task with related data, provided the caller belongs to
// its project.
func (s *TaskService) GetTask(taskID, userID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID, "Creator", "Assignee")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if _, err := s.requireMember(task.ProjectID, userID); err != nil {
		return nil, err
	}

	return task, nil
}

// CreateTaskInput represents input for creating a task.
type CreateTaskInput struct {
	ProjectID   uint64
	ActorID     uint64
	Title       string
	Description string
	Priority    models.TaskPriority
	Deadline    *time.Time
}

// CreateTask creates an unassigned todo task. Only project owners may
// create tasks.
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	member, err := s.requireMember(input.ProjectID, input.ActorID)
	if err != nil {
		return nil, err
	}
	if !authz.CanCreateTask(member.Role) {
		return nil, ErrNotProjectOwner
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	if input.Priority == "" {
		input.Priority = models.TaskPriorityMedium
	}
	if !authz.ValidTaskPriority(input.Priority) {
		return nil, ErrInvalidPriority
	}

	task := &models.Task{
		ProjectID:       input.ProjectID,
		Title:           title,
		Description:     strings.TrimSpace(input.Description),
		Priority:        input.Priority,
		Deadline:        input.Deadline,
		Status:          models.TaskStatusTodo,
		CreatedByUserID: input.ActorID,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return s.taskRepo.FindByID(task.ID, "Creator", "Assignee")
}

// UpdateTaskInput represents input for updating a task. Nil fields are left
// unchanged.
type UpdateTaskInput struct {
	Title         *string
	Description   *string
	Priority      *models.TaskPriority
	Deadline      *time.Time
	ClearDeadline bool
	Status        *models.TaskStatus
}

// UpdateTask updates a task. Status moves are allowed for the owner or the
// assignee; every other field is owner-only.
func (s *TaskService) UpdateTask(taskID, actorID uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	member, err := s.requireMember(task.ProjectID, actorID)
	if err != nil {
		return nil, err
	}

	editsDetails := input.Title != nil || input.Description != nil ||
		input.Priority != nil || input.Deadline != nil || input.ClearDeadline
	if editsDetails && !authz.CanEditTaskDetails(member.Role) {
		return nil, ErrTaskPermissionDenied
	}

	if input.Status != nil {
		if !authz.ValidTaskStatus(*input.Status) {
			return nil, ErrInvalidStatus
		}
		if !authz.CanChangeTaskStatus(task, actorID, member.Role) {
			return nil, ErrTaskPermissionDenied
		}
		task.Status = *input.Status
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, ErrTitleRequired
		}
		task.Title = title
	}
	if input.Description != nil {
		task.Description = strings.TrimSpace(*input.Description)
	}
	if input.Priority != nil {
		if !authz.ValidTaskPriority(*input.Priority) {
			return nil, ErrInvalidPriority
		}
		task.Priority = *input.Priority
	}
	if input.ClearDeadline {
		task.Deadline = nil
	} else if input.Deadline != nil {
		task.Deadline = input.Deadline
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return s.taskRepo.FindByID(task.ID, "Creator", "Assignee")
}

// ClaimTask assigns an unassigned task to the caller and moves it to
// in_progress. The first valid claim wins; a racing second claim gets
// ErrTaskAlreadyAssigned from the store-level guard.
func (s *TaskService) ClaimTask(taskID, actorID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	// Claiming requires membership in the task's project, which keeps the
	// assignee-is-a-member invariant.
	if _, err := s.requireMember(task.ProjectID, actorID); err != nil {
		return nil, err
	}

	if !authz.CanClaimTask(task) {
		return nil, ErrTaskAlreadyAssigned
	}

	if err := s.taskRepo.Claim(taskID, actorID); err != nil {
		if errors.Is(err, repository.ErrTaskAlreadyClaimed) {
			return nil, ErrTaskAlreadyAssigned
		}
		return nil, fmt.Errorf("failed to claim task: %w", err)
	}

	return s.taskRepo.FindByID(taskID, "Creator", "Assignee")
}

// DeleteTask deletes a task. Owner only.
func (s *TaskService) DeleteTask(taskID, actorID uint64) error {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to find task: %w", err)
	}

	member, err := s.requireMember(task.ProjectID, actorID)
	if err != nil {
		return err
	}
	if !authz.CanDeleteTask(member.Role) {
		return ErrNotProjectOwner
	}

	if err := s.taskRepo.Delete(taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

// requireMember verifies that a user belongs to a project and returns the
// membership.
func (s *TaskService) requireMember(projectID, userID uint64) (*models.ProjectMember, error) {
	member, err := s.projectRepo.FindMember(projectID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotProjectMember
		}
		return nil, fmt.Errorf("failed to verify project membership: %w", err)
	}
	return member, nil
}
