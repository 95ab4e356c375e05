// Package authz holds the permission rules and derived-state computations
// for projects, memberships, tasks and resource links. Everything here is a
// pure function of its arguments; handlers and services call these so that
// every mutating path is validated server-side, independent of what the
// client chose to render.
package authz

import (
	"math"

	"github.com/crewtide/api/internal/models"
)

// CanUpdateProjectDetails reports whether a member may edit the project's
// name and description.
func CanUpdateProjectDetails(role models.ProjectRole) bool {
	return role == models.RoleOwner
}

// CanDeleteProject reports whether a member may delete the project.
func CanDeleteProject(role models.ProjectRole) bool {
	return role == models.RoleOwner
}

// CanManageLiveSession reports whether a member may start or end the
// project's live session.
func CanManageLiveSession(role models.ProjectRole) bool {
	return role == models.RoleOwner
}

// CanAddMemberByEmail reports whether a member may add another user to the
// project directly by email.
func CanAddMemberByEmail(role models.ProjectRole) bool {
	return role == models.RoleOwner
}

// CanRemoveMember reports whether requester may remove target from the
// project. Owners may not be removed, and self-removal is not allowed
// through this path.
func CanRemoveMember(requesterRole models.ProjectRole, requesterID, targetID uint64, targetRole models.ProjectRole) bool {
	if requesterRole != models.RoleOwner {
		return false
	}
	if targetRole == models.RoleOwner {
		return false
	}
	return targetID != requesterID
}

// CanCreateTask reports whether a member may create tasks.
func CanCreateTask(role models.ProjectRole) bool {
	return role == models.RoleOwner
}

// CanEditTaskDetails reports whether a member may edit a task's title,
// description, priority or deadline. Status changes are governed by
// CanChangeTaskStatus instead.
func CanEditTaskDetails(role models.ProjectRole) bool {
	return role == models.RoleOwner
}

// CanDeleteTask reports whether a member may delete tasks.
func CanDeleteTask(role models.ProjectRole) bool {
	return role == models.RoleOwner
}

// CanClaimTask reports whether a task can be claimed. Only unassigned tasks
// are claimable; the store-level conditional update is the final arbiter
// when two claims race.
func CanClaimTask(task *models.Task) bool {
	return task.AssignedUserID == nil
}

// CanChangeTaskStatus reports whether a member may move a task between
// board columns. Owners always can; otherwise only the assignee.
func CanChangeTaskStatus(task *models.Task, userID uint64, role models.ProjectRole) bool {
	if role == models.RoleOwner {
		return true
	}
	return task.AssignedUserID != nil && *task.AssignedUserID == userID
}

// CanDeleteResourceLink reports whether a member may delete a resource
// link: owners, or the member who added it.
func CanDeleteResourceLink(role models.ProjectRole, userID, addedByUserID uint64) bool {
	return role == models.RoleOwner || userID == addedByUserID
}

// ValidTaskStatus reports whether s is one of the three board columns.
func ValidTaskStatus(s models.TaskStatus) bool {
	switch s {
	case models.TaskStatusTodo, models.TaskStatusInProgress, models.TaskStatusDone:
		return true
	}
	return false
}

// ValidTaskPriority reports whether p is a known priority level.
func ValidTaskPriority(p models.TaskPriority) bool {
	switch p {
	case models.TaskPriorityLow, models.TaskPriorityMedium, models.TaskPriorityHigh:
		return true
	}
	return false
}

// ValidResourceCategory reports whether c is a known resource category.
func ValidResourceCategory(c models.ResourceCategory) bool {
	switch c {
	case models.ResourceCategoryScope, models.ResourceCategoryDesign,
		models.ResourceCategoryCode, models.ResourceCategoryDocs,
		models.ResourceCategoryOther:
		return true
	}
	return false
}

// ProjectProgress returns the percentage of done tasks, rounded to the
// nearest integer. A project with no tasks is at 0%.
func ProjectProgress(taskCount, doneCount int64) int {
	if taskCount == 0 {
		return 0
	}
	return int(math.Round(100 * float64(doneCount) / float64(taskCount)))
}
