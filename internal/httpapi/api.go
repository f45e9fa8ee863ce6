package httpapi

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mahamadoubmaiga/Koraprompt/internal/domain"
	"github.com/mahamadoubmaiga/Koraprompt/internal/service"
)

const sessionCookieName = "kora_session"

type API struct {
	auth       *service.AuthService
	projects   *service.ProjectService
	library    *service.LibraryService
	generation *service.GenerationService
	sessionTTL time.Duration
	logger     *slog.Logger
}

func NewAPI(
	auth *service.AuthService,
	projects *service.ProjectService,
	library *service.LibraryService,
	generation *service.GenerationService,
	sessionTTL time.Duration,
	logger *slog.Logger,
) *API {
	return &API{
		auth:       auth,
		projects:   projects,
		library:    library,
		generation: generation,
		sessionTTL: sessionTTL,
		logger:     logger,
	}
}

func (api *API) registerRoutes(r *gin.RouterGroup) {
	r.POST("/auth/signup", api.signup)
	r.POST("/auth/login", api.login)
	r.POST("/auth/logout", api.logout)
	r.GET("/auth/session", api.currentSession)

	r.GET("/projects", api.listProjects)
	r.POST("/projects", api.createProject)
	r.GET("/projects/:id", api.getProject)
	r.DELETE("/projects/:id", api.deleteProject)
	r.PUT("/projects/:id/name", api.renameProject)
	r.PUT("/projects/:id/folder", api.moveProject)
	r.POST("/projects/:id/regenerate", api.regenerateProject)
	r.POST("/projects/:id/restore", api.restoreVersion)
	r.POST("/projects/:id/publish", api.togglePublish)
	r.POST("/projects/:id/like", api.toggleLike)

	r.GET("/explore", api.listPublished)

	r.GET("/folders", api.listFolders)
	r.POST("/folders", api.createFolder)
	r.PUT("/folders/:id", api.renameFolder)
	r.DELETE("/folders/:id", api.deleteFolder)

	r.GET("/presets", api.listPresets)
	r.POST("/presets", api.createPreset)
	r.DELETE("/presets/:id", api.deletePreset)

	r.POST("/generate", api.generate)
	r.POST("/generate/image", api.generateImage)
	r.POST("/generate/from-image", api.generateFromImage)

	r.GET("/generators", api.listGenerators)
	r.GET("/categories", api.listCategories)
	r.GET("/templates", api.listTemplates)
}

// --- auth ---

type emailPayload struct {
	Email string `json:"email" binding:"required"`
}

func (api *API) signup(c *gin.Context) {
	var payload emailPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.validationError(c, "email is required")
		return
	}
	user, session, err := api.auth.Signup(c.Request.Context(), payload.Email)
	if err != nil {
		api.handleError(c, err)
		return
	}
	api.setSessionCookie(c, session.Token)
	c.JSON(http.StatusCreated, user)
}

func (api *API) login(c *gin.Context) {
	var payload emailPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.validationError(c, "email is required")
		return
	}
	user, session, err := api.auth.Login(c.Request.Context(), payload.Email)
	if err != nil {
		api.handleError(c, err)
		return
	}
	api.setSessionCookie(c, session.Token)
	c.JSON(http.StatusOK, user)
}

func (api *API) logout(c *gin.Context) {
	if token, err := c.Cookie(sessionCookieName); err == nil && token != "" {
		_ = api.auth.Logout(c.Request.Context(), token)
	}
	api.clearSessionCookie(c)
	c.Status(http.StatusNoContent)
}

func (api *API) currentSession(c *gin.Context) {
	user, ok := api.requireSessionUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, user)
}

// --- projects ---

func (api *API) listProjects(c *gin.Context) {
	user, ok := api.requireSessionUser(c)
	if !ok {
		return
	}

	projects, err := api.projects.ListOwned(c.Request.Context(), user.ID)
	if err != nil {
		api.handleError(c, err)
		return
	}

	projects = domain.FilterProjects(projects, domain.ProjectFilter{
		Query:     c.Query("q"),
		Kind:      c.Query("kind"),
		Generator: c.Query("generator"),
		Folder:    c.Query("folder"),
	})
	c.JSON(http.StatusOK, projects)
}

func (api *API) listPublished(c *gin.Context) {
	projects, err := api.projects.ListPublished(c.Request.Context())
	if err != nil {
		api.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, projects)
}

type createProjectPayload struct {
	Kind         string   `json:"kind" binding:"required"`
	Artifacts    []string `json:"artifacts"`
	GeneratorID  string   `json:"generator_id" binding:"required"`
	SourceIdea   string   `json:"source_idea"`
	PreviewImage *string  `json:"preview_image"`
	FolderID     *string  `json:"folder_id"`
}

func (api *API) createProject(c *gin.Context) {
	user, ok := api.requireSessionUser(c)
	if !ok {
		return
	}

	var payload createProjectPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.validationError(c, "kind and generator_id are required")
		return
	}

	project, err := api.projects.Create(c.Request.Context(), &user.ID, service.ProjectDraft{
		Kind:         domain.PromptKind(payload.Kind),
		Artifacts:    payload.Artifacts,
		GeneratorID:  payload.GeneratorID,
		SourceIdea:   payload.SourceIdea,
		PreviewImage: payload.PreviewImage,
		FolderID:     payload.FolderID,
	})
	if err != nil {
		api.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, project)
}

func (api *API) getProject(c *gin.Context) {
	user, ok := api.requireSessionUser(c)
	if !ok {
		return
	}
	project, ok := api.ownedProject(c, user)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, project)
}

func (api *API) deleteProject(c *gin.Context) {
	user, ok := api.requireSessionUser(c)
	if !ok {
		return
	}
	project, ok := api.ownedProject(c, user)
	if !ok {
		return
	}
	if err := api.projects.Delete(c.Request.Context(), project.ID); err != nil {
		api.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type renamePayload struct {
	Name string `json:"name" binding:"required"`
}

func (api *API) renameProject(c *gin.Context) {
	user, ok := api.requireSessionUser(c)
	if !ok {
		return
	}
	project, ok := api.ownedProject(c, user)
	if !ok {
		return
	}

	var payload renamePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.validationError(c, "name is required")
		return
	}

	updated, err := api.projects.Rename(c.Request.Context(), project.ID, payload.Name)
	if err != nil {
		api.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

type movePayload struct {
	FolderID *string `json:"folder_id"`
}

func (api *API) moveProject(c *gin.Context) {
	user, ok := api.requireSessionUser(c)
	if !ok {
		return
	}
	project, ok := api.ownedProject(c, user)
	if !ok {
		return
	}

	var payload movePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.validationError(c, "invalid JSON payload")
		return
	}

	updated, err := api.projects.Move(c.Request.Context(), project.ID, payload.FolderID)
	if err != nil {
		api.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

type regeneratePayload struct {
	Artifacts []string `json:"artifacts" binding:"required"`
}

func (api *API) regenerateProject(c *gin.Context) {
	user, ok := api.requireSessionUser(c)
	if !ok {
		return
	}
	project, ok := api.ownedProject(c, user)
	if !ok {
		return
	}

	var payload regeneratePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.validationError(c, "artifacts are required")
		return
	}

	updated, err := api.projects.Regenerate(c.Request.Context(), project.ID, payload.Artifacts)
	if err != nil {
		api.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

type restorePayload struct {
	CreatedAt time.Time `json:"created_at" binding:"required"`
}

func (api *API) restoreVersion(c *gin.Context) {
	user, ok := api.requireSessionUser(c)
	if !ok {
		return
	}
	project, ok := api.ownedProject(c, user)
	if !ok {
		return
	}

	var payload restorePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.validationError(c, "created_at is required")
		return
	}

	updated, err := api.projects.RestoreVersion(c.Request.Context(), project.ID, payload.CreatedAt)
	if err != nil {
		api.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (api *API) togglePublish(c *gin.Context) {
	user, ok := api.requireSessionUser(c)
	if !ok {
		return
	}
	project, ok := api.ownedProject(c, user)
	if !ok {
		return
	}

	updated, err := api.projects.TogglePublish(c.Request.Context(), project.ID)
	if err != nil {
		api.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (api *API) toggleLike(c *gin.Context) {
	user, ok := api.requireSessionUser(c)
	if !ok {
		return
	}

	updated, err := api.projects.ToggleLike(c.Request.Context(), c.Param("id"), user.ID)
	if err != nil {
		api.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// --- folders ---

func (api *API) listFolders(c *gin.Context) {
	user, ok := api.requireSessionUser(c)
	if !ok {
		return
	}
	folders, err := api.library.ListFolders(c.Request.Context(), user.ID)
	if err != nil {
		api.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, folders)
}

func (api *API) createFolder(c *gin.Context) {
	user, ok := api.requireSessionUser(c)
	if !ok {
		return
	}

	var payload renamePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.validationError(c, "name is required")
		return
	}

	folder, err := api.library.CreateFolder(c.Request.Context(), user.ID, payload.Name)
	if err != nil {
		api.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, folder)
}

func (api *API) renameFolder(c *gin.Context) {
	user, ok := api.requireSessionUser(c)
	if !ok {
		return
	}

	var payload renamePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.validationError(c, "name is required")
		return
	}

	folder, err := api.library.RenameFolder(c.Request.Context(), user.ID, c.Param("id"), payload.Name)
	if err != nil {
		api.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, folder)
}

func (api *API) deleteFolder(c *gin.Context) {
	user, ok := api.requireSessionUser(c)
	if !ok {
		return
	}
	if err := api.library.DeleteFolder(c.Request.Context(), user.ID, c.Param("id")); err != nil {
		api.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- presets ---

func (api *API) listPresets(c *gin.Context) {
	user, ok := api.requireSessionUser(c)
	if !ok {
		return
	}
	presets, err := api.library.ListPresets(c.Request.Context(), user.ID)
	if err != nil {
		api.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, presets)
}

type createPresetPayload struct {
	Name     string                `json:"name" binding:"required"`
	Settings domain.PresetSettings `json:"settings"`
}

func (api *API) createPreset(c *gin.Context) {
	user, ok := api.requireSessionUser(c)
	if !ok {
		return
	}

	var payload createPresetPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.validationError(c, "name is required")
		return
	}

	preset, err := api.library.CreatePreset(c.Request.Context(), user.ID, payload.Name, payload.Settings)
	if err != nil {
		api.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, preset)
}

func (api *API) deletePreset(c *gin.Context) {
	user, ok := api.requireSessionUser(c)
	if !ok {
		return
	}
	if err := api.library.DeletePreset(c.Request.Context(), user.ID, c.Param("id")); err != nil {
		api.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- generation ---

type generatePayload struct {
	Idea           string  `json:"idea" binding:"required"`
	Kind           string  `json:"kind" binding:"required"`
	GeneratorID    string  `json:"generator_id"`
	Category       string  `json:"category"`
	Language       string  `json:"language"`
	NegativePrompt string  `json:"negative_prompt"`
	Temperature    float32 `json:"temperature"`
	TopP           float32 `json:"top_p"`
	AspectRatio    string  `json:"aspect_ratio"`
	Count          int     `json:"count"`
}

func (api *API) generate(c *gin.Context) {
	var payload generatePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.validationError(c, "idea and kind are required")
		return
	}

	artifacts, err := api.generation.Generate(c.Request.Context(), service.GenerateInput{
		Idea:           payload.Idea,
		Kind:           domain.PromptKind(payload.Kind),
		GeneratorID:    payload.GeneratorID,
		Category:       payload.Category,
		Language:       payload.Language,
		NegativePrompt: payload.NegativePrompt,
		Temperature:    payload.Temperature,
		TopP:           payload.TopP,
		AspectRatio:    payload.AspectRatio,
		Count:          payload.Count,
	})
	if err != nil {
		api.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"artifacts": artifacts})
}

type generateImagePayload struct {
	Prompt      string `json:"prompt" binding:"required"`
	AspectRatio string `json:"aspect_ratio"`
}

func (api *API) generateImage(c *gin.Context) {
	var payload generateImagePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.validationError(c, "prompt is required")
		return
	}

	image, err := api.generation.GenerateImage(c.Request.Context(), payload.Prompt, payload.AspectRatio)
	if err != nil {
		api.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"image": image})
}

type generateFromImagePayload struct {
	Image    string `json:"image" binding:"required"`
	MimeType string `json:"mime_type"`
	Language string `json:"language"`
}

func (api *API) generateFromImage(c *gin.Context) {
	var payload generateFromImagePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.validationError(c, "image is required")
		return
	}

	prompt, err := api.generation.DescribeImage(c.Request.Context(), payload.Image, payload.MimeType, payload.Language)
	if err != nil {
		api.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"prompt": prompt})
}

// --- catalog ---

func (api *API) listGenerators(c *gin.Context) {
	c.JSON(http.StatusOK, domain.Generators)
}

func (api *API) listCategories(c *gin.Context) {
	c.JSON(http.StatusOK, domain.Categories)
}

func (api *API) listTemplates(c *gin.Context) {
	c.JSON(http.StatusOK, domain.Templates)
}

// --- helpers ---

// ownedProject loads the :id project and rejects callers that do not own it.
func (api *API) ownedProject(c *gin.Context, user domain.User) (domain.Project, bool) {
	project, err := api.projects.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		api.handleError(c, err)
		return domain.Project{}, false
	}
	if project.OwnerID == nil || *project.OwnerID != user.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "project belongs to another user"})
		return domain.Project{}, false
	}
	return project, true
}

func (api *API) requireSessionUser(c *gin.Context) (domain.User, bool) {
	token, err := c.Cookie(sessionCookieName)
	if err != nil || token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return domain.User{}, false
	}
	user, err := api.auth.Verify(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, service.ErrUnauthorized) {
			api.clearSessionCookie(c)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return domain.User{}, false
		}
		api.handleError(c, err)
		return domain.User{}, false
	}
	return user, true
}

// setSessionCookie keeps the cookie alive exactly as long as the session it
// carries.
func (api *API) setSessionCookie(c *gin.Context, token string) {
	c.SetCookie(sessionCookieName, token, int(api.sessionTTL.Seconds()), "/", "", false, true)
}

func (api *API) clearSessionCookie(c *gin.Context) {
	c.SetCookie(sessionCookieName, "", -1, "/", "", false, true)
}

func (api *API) validationError(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": message})
}

func (api *API) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrUpstream):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		api.logger.Error("internal error", slog.Any("error", err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
