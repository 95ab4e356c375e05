package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

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

type resourceTestEnv struct {
	db      *gorm.DB
	handler *ResourceHandler

	owner   *models.User
	member  *models.User
	project *models.Project
}

func setupResourceTestEnv(t *testing.T) resourceTestEnv {
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

	resourceRepo := repository.NewResourceRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	resourceService := services.NewResourceService(resourceRepo, projectRepo)
	handler := NewResourceHandler(resourceService)

	owner := &models.User{Name: "Owner", Email: "owner@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(owner).Error)
	member := &models.User{Name: "Member", Email: "member@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(member).Error)

	project := &models.Project{Name: "Capstone", OwnerUserID: owner.ID, InviteCode: "TESTCODE"}
	require.NoError(t, db.Create(project).Error)

	for _, m := range []*models.ProjectMember{
		{ProjectID: project.ID, UserID: owner.ID, Role: models.RoleOwner, JoinedAt: time.Now()},
		{ProjectID: project.ID, UserID: member.ID, Role: models.RoleMember, JoinedAt: time.Now()},
	} {
		require.NoError(t, db.Create(m).Error)
	}

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return resourceTestEnv{
		db:      db,
		handler: handler,
		owner:   owner,
		member:  member,
		project: project,
	}
}

func (env resourceTestEnv) createResource(t *testing.T, addedBy uint64, title string, category models.ResourceCategory) *models.ResourceLink {
	t.Helper()
	resource := &models.ResourceLink{
		ProjectID:     env.project.ID,
		Title:         title,
		URL:           "https://example.com/doc",
		Category:      category,
		AddedByUserID: addedBy,
	}
	require.NoError(t, env.db.Create(resource).Error)
	return resource
}

func resourceContext(t *testing.T, userID uint64, method, target string, payload interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	if payload != nil {
		body, err := json.Marshal(payload)
		require.NoError(t, err)
		c.Request = httptest.NewRequest(method, target, bytes.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
	} else {
		c.Request = httptest.NewRequest(method, target, nil)
	}
	c.Set(constants.ContextKeyUserID, userID)
	return c, w
}

func TestResourceHandler_CreateResource(t *testing.T) {
	env := setupResourceTestEnv(t)

	c, w := resourceContext(t, env.member.ID, http.MethodPost, "/", gin.H{
		"project_id": env.project.ID,
		"title":      "API reference",
		"url":        "https://example.com/api",
	})

	env.handler.CreateResource(c)

	require.Equal(t, http.StatusCreated, w.Code)

	var response dto.ResourceLinkDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "API reference", response.Title)
	require.Equal(t, models.ResourceCategoryOther, response.Category, "category defaults to other")
	require.Equal(t, env.member.ID, response.AddedByUserID)
}

func TestResourceHandler_CreateResource_InvalidCategory(t *testing.T) {
	env := setupResourceTestEnv(t)

	c, w := resourceContext(t, env.member.ID, http.MethodPost, "/", gin.H{
		"project_id": env.project.ID,
		"title":      "Bad link",
		"url":        "https://example.com",
		"category":   "memes",
	})

	env.handler.CreateResource(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestResourceHandler_DeleteResource_ByAdder(t *testing.T) {
	env := setupResourceTestEnv(t)
	resource := env.createResource(t, env.member.ID, "Mine", models.ResourceCategoryDocs)

	c, w := resourceContext(t, env.member.ID, http.MethodDelete, "/", nil)
	c.Params = gin.Params{{Key: "id", Value: strconv.FormatUint(resource.ID, 10)}}

	env.handler.DeleteResource(c)

	require.Equal(t, http.StatusOK, w.Code)

	err := env.db.First(&models.ResourceLink{}, resource.ID).Error
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestResourceHandler_DeleteResource_ByOtherMember(t *testing.T) {
	env := setupResourceTestEnv(t)
	resource := env.createResource(t, env.owner.ID, "Owner's link", models.ResourceCategoryDesign)

	c, w := resourceContext(t, env.member.ID, http.MethodDelete, "/", nil)
	c.Params = gin.Params{{Key: "id", Value: strconv.FormatUint(resource.ID, 10)}}

	env.handler.DeleteResource(c)

	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestResourceHandler_DeleteResource_OwnerDeletesAny(t *testing.T) {
	env := setupResourceTestEnv(t)
	resource := env.createResource(t, env.member.ID, "Member's link", models.ResourceCategoryCode)

	c, w := resourceContext(t, env.owner.ID, http.MethodDelete, "/", nil)
	c.Params = gin.Params{{Key: "id", Value: strconv.FormatUint(resource.ID, 10)}}

	env.handler.DeleteResource(c)

	require.Equal(t, http.StatusOK, w.Code)
}

func TestResourceHandler_ListResources(t *testing.T) {
	env := setupResourceTestEnv(t)
	env.createResource(t, env.member.ID, "Scope notes", models.ResourceCategoryScope)
	env.createResource(t, env.owner.ID, "Mockups", models.ResourceCategoryDesign)

	target := "/?project_id=" + strconv.FormatUint(env.project.ID, 10)
	c, w := resourceContext(t, env.member.ID, http.MethodGet, target, nil)

	env.handler.ListResources(c)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Resources []dto.ResourceLinkDTO `json:"resources"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Resources, 2)
}

func TestResourceHandler_ListResources_CategoryFilter(t *testing.T) {
	env := setupResourceTestEnv(t)
	env.createResource(t, env.member.ID, "Scope notes", models.ResourceCategoryScope)
	env.createResource(t, env.owner.ID, "Mockups", models.ResourceCategoryDesign)

	target := "/?project_id=" + strconv.FormatUint(env.project.ID, 10) + "&category=Design"
	c, w := resourceContext(t, env.member.ID, http.MethodGet, target, nil)

	env.handler.ListResources(c)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Resources []dto.ResourceLinkDTO `json:"resources"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Resources, 1)
	require.Equal(t, "Mockups", response.Resources[0].Title)
}

func TestResourceHandler_ListResources_NonMember(t *testing.T) {
	env := setupResourceTestEnv(t)

	outsider := &models.User{Name: "Outsider", Email: "outsider@example.com", PasswordHash: "x"}
	require.NoError(t, env.db.Create(outsider).Error)

	target := "/?project_id=" + strconv.FormatUint(env.project.ID, 10)
	c, w := resourceContext(t, outsider.ID, http.MethodGet, target, nil)

	env.handler.ListResources(c)

	require.Equal(t, http.StatusNotFound, w.Code)
}
