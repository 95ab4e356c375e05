package dto

import (
	"time"

	"github.com/crewtide/api/internal/models"
	"github.com/crewtide/api/internal/utils"
)

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID              uint64              `json:"id"`
	ProjectID       uint64              `json:"project_id"`
	Title           string              `json:"title"`
	Description     string              `json:"description,omitempty"`
	Priority        models.TaskPriority `json:"priority"`
	Deadline        *time.Time          `json:"deadline"`
	Status          models.TaskStatus   `json:"status"`
	Overdue         bool                `json:"overdue"`
	AssignedUserID  *uint64             `json:"assigned_user_id"`
	CreatedByUserID uint64              `json:"created_by_user_id"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
	Assignee        *UserDTO            `json:"assignee,omitempty"`
	Creator         *UserDTO            `json:"creator,omitempty"`
}

// TaskListResponse represents a project board page
type TaskListResponse struct {
	Tasks      []TaskDTO                `json:"tasks"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:              task.ID,
		ProjectID:       task.ProjectID,
		Title:           task.Title,
		Description:     task.Description,
		Priority:        task.Priority,
		Deadline:        task.Deadline,
		Status:          task.Status,
		Overdue:         task.Overdue(time.Now()),
		AssignedUserID:  task.AssignedUserID,
		CreatedByUserID: task.CreatedByUserID,
		CreatedAt:       task.CreatedAt,
		UpdatedAt:       task.UpdatedAt,
	}

	// Include assignee and creator if preloaded
	if task.Assignee != nil && task.Assignee.ID != 0 {
		assignee := ToUserDTO(*task.Assignee)
		dto.Assignee = &assignee
	}
	if task.Creator.ID != 0 {
		creator := ToUserDTO(task.Creator)
		dto.Creator = &creator
	}

	return dto
}

// ToTaskListResponse converts a slice of tasks to TaskListResponse
func ToTaskListResponse(tasks []models.Task, params utils.PaginationParams, total int64) TaskListResponse {
	items := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		items[i] = ToTaskDTO(task)
	}

	return TaskListResponse{
		Tasks: items,
		Pagination: utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	}
}
