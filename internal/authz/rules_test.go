package authz

import (
	"testing"
	"time"

	"github.com/crewtide/api/internal/models"
	"github.com/stretchr/testify/require"
)

func TestCanCreateTask(t *testing.T) {
	require.True(t, CanCreateTask(models.RoleOwner))
	require.False(t, CanCreateTask(models.RoleMember))
}

func TestCanDeleteTask(t *testing.T) {
	require.True(t, CanDeleteTask(models.RoleOwner))
	require.False(t, CanDeleteTask(models.RoleMember))
}

func TestCanClaimTask(t *testing.T) {
	unassigned := &models.Task{Status: models.TaskStatusTodo}
	require.True(t, CanClaimTask(unassigned))

	assignee := uint64(42)
	assigned := &models.Task{Status: models.TaskStatusInProgress, AssignedUserID: &assignee}
	require.False(t, CanClaimTask(assigned))
}

func TestCanChangeTaskStatus(t *testing.T) {
	assignee := uint64(7)
	task := &models.Task{AssignedUserID: &assignee}

	tests := []struct {
		name   string
		userID uint64
		role   models.ProjectRole
		want   bool
	}{
		{"owner can always move tasks", 1, models.RoleOwner, true},
		{"assignee can move their task", 7, models.RoleMember, true},
		{"other members cannot", 8, models.RoleMember, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, CanChangeTaskStatus(task, tt.userID, tt.role))
		})
	}

	unassigned := &models.Task{}
	require.False(t, CanChangeTaskStatus(unassigned, 7, models.RoleMember))
	require.True(t, CanChangeTaskStatus(unassigned, 7, models.RoleOwner))
}

func TestCanRemoveMember(t *testing.T) {
	tests := []struct {
		name          string
		requesterRole models.ProjectRole
		requesterID   uint64
		targetID      uint64
		targetRole    models.ProjectRole
		want          bool
	}{
		{"owner removes a member", models.RoleOwner, 1, 2, models.RoleMember, true},
		{"member cannot remove anyone", models.RoleMember, 2, 3, models.RoleMember, false},
		{"owner cannot remove self", models.RoleOwner, 1, 1, models.RoleOwner, false},
		{"owner cannot remove another owner", models.RoleOwner, 1, 2, models.RoleOwner, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, CanRemoveMember(tt.requesterRole, tt.requesterID, tt.targetID, tt.targetRole))
		})
	}
}

func TestCanDeleteResourceLink(t *testing.T) {
	require.True(t, CanDeleteResourceLink(models.RoleOwner, 1, 2), "owner deletes anyone's link")
	require.True(t, CanDeleteResourceLink(models.RoleMember, 2, 2), "adder deletes their own link")
	require.False(t, CanDeleteResourceLink(models.RoleMember, 3, 2), "other members cannot delete")
}

func TestOwnerOnlyProjectActions(t *testing.T) {
	for _, role := range []models.ProjectRole{models.RoleOwner, models.RoleMember} {
		want := role == models.RoleOwner
		require.Equal(t, want, CanUpdateProjectDetails(role))
		require.Equal(t, want, CanDeleteProject(role))
		require.Equal(t, want, CanManageLiveSession(role))
		require.Equal(t, want, CanAddMemberByEmail(role))
		require.Equal(t, want, CanEditTaskDetails(role))
	}
}

func TestValidTaskStatus(t *testing.T) {
	require.True(t, ValidTaskStatus(models.TaskStatusTodo))
	require.True(t, ValidTaskStatus(models.TaskStatusInProgress))
	require.True(t, ValidTaskStatus(models.TaskStatusDone))
	require.False(t, ValidTaskStatus(models.TaskStatus("archived")))
	require.False(t, ValidTaskStatus(models.TaskStatus("")))
}

func TestProjectProgress(t *testing.T) {
	tests := []struct {
		taskCount int64
		doneCount int64
		want      int
	}{
		{0, 0, 0},
		{4, 2, 50},
		{3, 1, 33},
		{3, 2, 67},
		{5, 5, 100},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, ProjectProgress(tt.taskCount, tt.doneCount))
	}
}

func TestTaskOverdue(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	past := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	future := time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		task models.Task
		want bool
	}{
		{"todo past deadline", models.Task{Deadline: &past, Status: models.TaskStatusTodo}, true},
		{"in_progress past deadline", models.Task{Deadline: &past, Status: models.TaskStatusInProgress}, true},
		{"done past deadline is never overdue", models.Task{Deadline: &past, Status: models.TaskStatusDone}, false},
		{"future deadline", models.Task{Deadline: &future, Status: models.TaskStatusTodo}, false},
		{"no deadline", models.Task{Status: models.TaskStatusTodo}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.task.Overdue(now))
		})
	}
}

func TestProjectSessionActive(t *testing.T) {
	now := time.Now()

	require.False(t, (&models.Project{}).SessionActive(now), "no session window")

	past := now.Add(-time.Minute)
	require.False(t, (&models.Project{SessionEndsAt: &past}).SessionActive(now), "expired window")

	future := now.Add(30 * time.Minute)
	require.True(t, (&models.Project{SessionEndsAt: &future}).SessionActive(now))
}
