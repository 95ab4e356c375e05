package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/crewtide/api/internal/constants"
	"github.com/crewtide/api/internal/dto"
	"github.com/crewtide/api/internal/models"
	"github.com/crewtide/api/internal/repository"
	"github.com/crewtide/api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type projectTestEnv struct {
	db             *gorm.DB
	handler        *ProjectHandler
	projectService *services.ProjectService
	authService    *services.AuthService
}

func setupProjectTestEnv(t *testing.T) projectTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.ProjectMember{},
		&models.Task{},
		&models.ResourceLink{},
	)
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	authService := services.NewAuthService(userRepo)
	projectService := services.NewProjectService(projectRepo, userRepo, taskRepo)
	handler := NewProjectHandler(projectService)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return projectTestEnv{
		db:             db,
		handler:        handler,
		projectService: projectService,
		authService:    authService,
	}
}

func (env projectTestEnv) createUser(t *testing.T, name, email string) *models.User {
	t.Helper()
	user, err := env.authService.Signup(services.SignupInput{
		Name:     name,
		Email:    email,
		Password: "supersecret",
	})
	require.NoError(t, err)
	return user
}

func (env projectTestEnv) createProject(t *testing.T, ownerID uint64, name string) *models.Project {
	t.Helper()
	project, err := env.projectService.CreateProject(services.CreateProjectInput{
		Name:    name,
		OwnerID: ownerID,
	})
	require.NoError(t, err)
	return project
}

// jsonContext builds a test context with an authenticated user and a JSON body.
func jsonContext(t *testing.T, userID uint64, method string, payload interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	if payload != nil {
		body, err := json.Marshal(payload)
		require.NoError(t, err)
		c.Request = httptest.NewRequest(method, "/", bytes.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
	} else {
		c.Request = httptest.NewRequest(method, "/", nil)
	}
	c.Set(constants.ContextKeyUserID, userID)
	return c, w
}

// withProjectContext mimics RequireProjectAccess by loading the caller's
// membership into the context.
func (env projectTestEnv) withProjectContext(t *testing.T, c *gin.Context, project *models.Project, userID uint64) {
	t.Helper()

	var member models.ProjectMember
	err := env.db.Where("project_id = ? AND user_id = ?", project.ID, userID).First(&member).Error
	require.NoError(t, err)

	c.Set(constants.ContextKeyProject, *project)
	c.Set(constants.ContextKeyMembership, member)
}

func TestProjectHandler_CreateProject(t *testing.T) {
	env := setupProjectTestEnv(t)
	owner := env.createUser(t, "Owner", "owner@example.com")

	c, w := jsonContext(t, owner.ID, http.MethodPost, map[string]string{
		"name":        "Capstone",
		"description": "Semester project",
	})

	env.handler.CreateProject(c)

	require.Equal(t, http.StatusCreated, w.Code)

	var response dto.ProjectDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "Capstone", response.Name)
	require.Equal(t, owner.ID, response.OwnerUserID)
	require.Len(t, response.InviteCode, constants.InviteCodeLength)
	require.False(t, response.SessionActive)

	// Creator must land in the member table as owner
	var member models.ProjectMember
	err := env.db.Where("project_id = ? AND user_id = ?", response.ID, owner.ID).First(&member).Error
	require.NoError(t, err)
	require.Equal(t, models.RoleOwner, member.Role)
}

func TestProjectHandler_CreateProject_BlankName(t *testing.T) {
	env := setupProjectTestEnv(t)
	owner := env.createUser(t, "Owner", "owner@example.com")

	c, w := jsonContext(t, owner.ID, http.MethodPost, map[string]string{
		"name": "   ",
	})

	env.handler.CreateProject(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProjectHandler_JoinProject(t *testing.T) {
	env := setupProjectTestEnv(t)
	owner := env.createUser(t, "Owner", "owner@example.com")
	joiner := env.createUser(t, "Joiner", "joiner@example.com")
	project := env.createProject(t, owner.ID, "Capstone")

	// Codes are matched case-insensitively
	c, w := jsonContext(t, joiner.ID, http.MethodPost, map[string]string{
		"invite_code": "  " + strings.ToLower(project.InviteCode) + " ",
	})

	env.handler.JoinProject(c)

	require.Equal(t, http.StatusOK, w.Code)

	var member models.ProjectMember
	err := env.db.Where("project_id = ? AND user_id = ?", project.ID, joiner.ID).First(&member).Error
	require.NoError(t, err)
	require.Equal(t, models.RoleMember, member.Role)
}

func TestProjectHandler_JoinProject_AlreadyMember(t *testing.T) {
	env := setupProjectTestEnv(t)
	owner := env.createUser(t, "Owner", "owner@example.com")
	joiner := env.createUser(t, "Joiner", "joiner@example.com")
	project := env.createProject(t, owner.ID, "Capstone")

	_, err := env.projectService.JoinProjectByInvite(joiner.ID, project.InviteCode)
	require.NoError(t, err)

	c, w := jsonContext(t, joiner.ID, http.MethodPost, map[string]string{
		"invite_code": project.InviteCode,
	})

	env.handler.JoinProject(c)

	require.Equal(t, http.StatusConflict, w.Code)
}

func TestProjectHandler_JoinProject_InvalidCode(t *testing.T) {
	env := setupProjectTestEnv(t)
	joiner := env.createUser(t, "Joiner", "joiner@example.com")

	c, w := jsonContext(t, joiner.ID, http.MethodPost, map[string]string{
		"invite_code": "ZZZZZZZZ",
	})

	env.handler.JoinProject(c)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestProjectHandler_GetProject(t *testing.T) {
	env := setupProjectTestEnv(t)
	owner := env.createUser(t, "Owner", "owner@example.com")
	project := env.createProject(t, owner.ID, "Capstone")

	c, w := jsonContext(t, owner.ID, http.MethodGet, nil)
	env.withProjectContext(t, c, project, owner.ID)

	env.handler.GetProject(c)

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.ProjectDetailDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "Capstone", response.Name)
	require.Equal(t, models.RoleOwner, response.YourRole)
	require.Len(t, response.Members, 1)
	require.Equal(t, owner.Email, response.Members[0].User.Email)
}

func TestProjectHandler_AddMember(t *testing.T) {
	env := setupProjectTestEnv(t)
	owner := env.createUser(t, "Owner", "owner@example.com")
	invitee := env.createUser(t, "Invitee", "invitee@example.com")
	project := env.createProject(t, owner.ID, "Capstone")

	c, w := jsonContext(t, owner.ID, http.MethodPost, map[string]string{
		"email": "Invitee@Example.com",
	})
	env.withProjectContext(t, c, project, owner.ID)

	env.handler.AddMember(c)

	require.Equal(t, http.StatusCreated, w.Code)

	var member models.ProjectMember
	err := env.db.Where("project_id = ? AND user_id = ?", project.ID, invitee.ID).First(&member).Error
	require.NoError(t, err)
	require.Equal(t, models.RoleMember, member.Role)
}

func TestProjectHandler_AddMember_UnknownEmail(t *testing.T) {
	env := setupProjectTestEnv(t)
	owner := env.createUser(t, "Owner", "owner@example.com")
	project := env.createProject(t, owner.ID, "Capstone")

	c, w := jsonContext(t, owner.ID, http.MethodPost, map[string]string{
		"email": "ghost@example.com",
	})
	env.withProjectContext(t, c, project, owner.ID)

	env.handler.AddMember(c)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestProjectHandler_RemoveMember(t *testing.T) {
	env := setupProjectTestEnv(t)
	owner := env.createUser(t, "Owner", "owner@example.com")
	member := env.createUser(t, "Member", "member@example.com")
	project := env.createProject(t, owner.ID, "Capstone")

	_, err := env.projectService.JoinProjectByInvite(member.ID, project.InviteCode)
	require.NoError(t, err)

	c, w := jsonContext(t, owner.ID, http.MethodDelete, nil)
	env.withProjectContext(t, c, project, owner.ID)
	c.Params = gin.Params{{Key: "user_id", Value: strconv.FormatUint(member.ID, 10)}}

	env.handler.RemoveMember(c)

	require.Equal(t, http.StatusOK, w.Code)

	err = env.db.Where("project_id = ? AND user_id = ?", project.ID, member.ID).First(&models.ProjectMember{}).Error
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestProjectHandler_RemoveMember_Self(t *testing.T) {
	env := setupProjectTestEnv(t)
	owner := env.createUser(t, "Owner", "owner@example.com")
	project := env.createProject(t, owner.ID, "Capstone")

	c, w := jsonContext(t, owner.ID, http.MethodDelete, nil)
	env.withProjectContext(t, c, project, owner.ID)
	c.Params = gin.Params{{Key: "user_id", Value: strconv.FormatUint(owner.ID, 10)}}

	env.handler.RemoveMember(c)

	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestProjectHandler_StartAndEndSession(t *testing.T) {
	env := setupProjectTestEnv(t)
	owner := env.createUser(t, "Owner", "owner@example.com")
	project := env.createProject(t, owner.ID, "Capstone")

	c, w := jsonContext(t, owner.ID, http.MethodPost, map[string]int{
		"duration_minutes": 45,
	})
	env.withProjectContext(t, c, project, owner.ID)

	env.handler.StartSession(c)

	require.Equal(t, http.StatusOK, w.Code)

	var started dto.ProjectDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &started))
	require.True(t, started.SessionActive)
	require.NotNil(t, started.SessionEndsAt)

	c, w = jsonContext(t, owner.ID, http.MethodDelete, nil)
	env.withProjectContext(t, c, project, owner.ID)

	env.handler.EndSession(c)

	require.Equal(t, http.StatusOK, w.Code)

	var ended dto.ProjectDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ended))
	require.False(t, ended.SessionActive)
	require.Nil(t, ended.SessionEndsAt)
}

func TestProjectHandler_StartSession_InvalidDuration(t *testing.T) {
	env := setupProjectTestEnv(t)
	owner := env.createUser(t, "Owner", "owner@example.com")
	project := env.createProject(t, owner.ID, "Capstone")

	c, w := jsonContext(t, owner.ID, http.MethodPost, map[string]int{
		"duration_minutes": -5,
	})
	env.withProjectContext(t, c, project, owner.ID)

	env.handler.StartSession(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProjectHandler_ListProjects(t *testing.T) {
	env := setupProjectTestEnv(t)
	owner := env.createUser(t, "Owner", "owner@example.com")
	env.createProject(t, owner.ID, "Capstone")
	env.createProject(t, owner.ID, "Side Quest")

	c, w := jsonContext(t, owner.ID, http.MethodGet, nil)

	env.handler.ListProjects(c)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Projects []dto.ProjectSummaryDTO `json:"projects"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Projects, 2)
	for _, p := range response.Projects {
		require.Equal(t, models.RoleOwner, p.Role)
		require.Equal(t, int64(1), p.MemberCount)
		require.Equal(t, 0, p.Progress)
	}
}
