package repository

import (
	"errors"

	"github.com/crewtide/api/internal/database"
	"github.com/crewtide/api/internal/models"
	"github.com/crewtide/api/internal/utils"
	"gorm.io/gorm"
)

// ErrTaskAlreadyClaimed is returned by Claim when the conditional update
// matched no rows, i.e. another member claimed the task first.
var ErrTaskAlreadyClaimed = errors.New("task repository: task already claimed")

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindByID finds a task by ID with optional preloading
func (r *GormTaskRepository) FindByID(id uint64, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&task, id).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// ListByProject lists a project's tasks in creation order, the order the
// board renders its columns from.
func (r *GormTaskRepository) ListByProject(projectID uint64, page, pageSize int) ([]models.Task, int64, error) {
	var tasks []models.Task

	query := r.db.Model(&models.Task{}).Where("project_id = ?", projectID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("created_at ASC")
	if page > 0 && pageSize > 0 {
		listQuery = listQuery.Scopes(database.Paginate(utils.PaginationParams{
			Page:   page,
			Limit:  pageSize,
			Offset: (page - 1) * pageSize,
		}))
	}

	if err := listQuery.Preload("Assignee").Preload("Creator").Find(&tasks).Error; err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// Update updates a task
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

// Delete soft deletes a task
func (r *GormTaskRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Task{}, id).Error
}

// Claim assigns the task to userID and moves it to in_progress, but only if
// it is still unassigned. The WHERE guard makes the first claim win when two
// members race; the loser's update matches zero rows.
func (r *GormTaskRepository) Claim(taskID, userID uint64) error {
	result := r.db.Model(&models.Task{}).
		Where("id = ? AND assigned_user_id IS NULL", taskID).
		Updates(map[string]interface{}{
			"assigned_user_id": userID,
			"status":           models.TaskStatusInProgress,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskAlreadyClaimed
	}

	return nil
}

// StatsByProject returns the total and done task counts for a project
func (r *GormTaskRepository) StatsByProject(projectID uint64) (int64, int64, error) {
	var total, done int64

	if err := r.db.Model(&models.Task{}).
		Where("project_id = ?", projectID).
		Count(&total).Error; err != nil {
		return 0, 0, err
	}

	if err := r.db.Model(&models.Task{}).
		Where("project_id = ? AND status = ?", projectID, models.TaskStatusDone).
		Count(&done).Error; err != nil {
		return 0, 0, err
	}

	return total, done, nil
}
