package projects

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pathway-compass/survey-portal-backend/internal/auth"
	"pathway-compass/survey-portal-backend/internal/export"
	"pathway-compass/survey-portal-backend/internal/notifications"
	"pathway-compass/survey-portal-backend/internal/registry"
	"pathway-compass/survey-portal-backend/internal/survey"
)

// Handler handles HTTP requests for survey projects.
type Handler struct {
	service *Service
	ws      *notifications.Manager
	logger  *zap.Logger
}

// NewHandler creates a new projects handler. ws may be nil to disable
// the live progress endpoint.
func NewHandler(service *Service, ws *notifications.Manager, logger *zap.Logger) *Handler {
	return &Handler{service: service, ws: ws, logger: logger}
}

// RegisterRoutes registers all project routes behind the auth
// middleware, plus the open registry catalogue.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authService *auth.Service) {
	router.GET("/registry/sections", h.getCatalogue)

	group := router.Group("/projects", auth.Middleware(authService))
	{
		group.POST("", h.createProject)
		group.GET("", h.listProjects)
		group.GET("/:id", h.getProject)
		group.DELETE("/:id", h.deleteProject)

		group.PUT("/:id/sections/:section", h.saveSection)
		group.GET("/:id/wizard", h.getWizardState)
		group.POST("/:id/wizard/navigate", h.navigate)
		group.GET("/:id/projection", h.getProjection)
		group.POST("/:id/submit", h.submit)

		group.GET("/:id/export/pdf", h.exportPDF)
		group.GET("/:id/export/excel", h.exportExcel)
	}

	if h.ws != nil {
		router.GET("/ws", auth.Middleware(authService), h.handleWebSocket)
	}
}

// getCatalogue handles GET /api/v1/registry/sections
func (h *Handler) getCatalogue(c *gin.Context) {
	type sectionEntry struct {
		Key       registry.SectionKey `json:"key"`
		Step      int                 `json:"step"`
		Title     string              `json:"title"`
		Questions []registry.Question `json:"questions"`
	}

	var out []sectionEntry
	for _, key := range registry.SectionOrder() {
		out = append(out, sectionEntry{
			Key:       key,
			Step:      registry.StepFor(key),
			Title:     registry.PathwayTitle(key),
			Questions: registry.QuestionsFor(key),
		})
	}
	c.JSON(http.StatusOK, gin.H{"sections": out})
}

// createProject handles POST /api/v1/projects
func (h *Handler) createProject(c *gin.Context) {
	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project, err := h.service.CreateProject(c.Request.Context(), auth.UserID(c), req)
	if err != nil {
		h.logger.Error("Failed to create project", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, project)
}

// listProjects handles GET /api/v1/projects
func (h *Handler) listProjects(c *gin.Context) {
	projects, err := h.service.ListProjects(c.Request.Context(), auth.UserID(c))
	if err != nil {
		h.respondError(c, err, "Failed to list projects")
		return
	}
	c.JSON(http.StatusOK, gin.H{"projects": projects})
}

// getProject handles GET /api/v1/projects/:id
func (h *Handler) getProject(c *gin.Context) {
	project, err := h.service.GetProject(c.Request.Context(), auth.UserID(c), c.Param("id"))
	if err != nil {
		h.respondError(c, err, "Failed to load project")
		return
	}
	c.JSON(http.StatusOK, project)
}

// deleteProject handles DELETE /api/v1/projects/:id
func (h *Handler) deleteProject(c *gin.Context) {
	if err := h.service.DeleteProject(c.Request.Context(), auth.UserID(c), c.Param("id")); err != nil {
		h.respondError(c, err, "Failed to delete project")
		return
	}
	c.Status(http.StatusNoContent)
}

// saveSection handles PUT /api/v1/projects/:id/sections/:section
func (h *Handler) saveSection(c *gin.Context) {
	var req SaveSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	key := registry.SectionKey(c.Param("section"))
	result, err := h.service.SaveSection(c.Request.Context(), auth.UserID(c), c.Param("id"), key, req)
	if errors.Is(err, ErrUnknownSection) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		h.respondError(c, err, "Failed to save section")
		return
	}
	c.JSON(http.StatusOK, result)
}

// getWizardState handles GET /api/v1/projects/:id/wizard
func (h *Handler) getWizardState(c *gin.Context) {
	state, err := h.service.WizardState(c.Request.Context(), auth.UserID(c), c.Param("id"))
	if err != nil {
		h.respondError(c, err, "Failed to derive wizard state")
		return
	}
	c.JSON(http.StatusOK, state)
}

// navigate handles POST /api/v1/projects/:id/wizard/navigate
func (h *Handler) navigate(c *gin.Context) {
	var req NavigateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.service.Navigate(c.Request.Context(), auth.UserID(c), c.Param("id"), req)
	if err != nil {
		h.respondError(c, err, "Failed to navigate")
		return
	}
	c.JSON(http.StatusOK, result)
}

// getProjection handles GET /api/v1/projects/:id/projection
func (h *Handler) getProjection(c *gin.Context) {
	p, err := h.service.Projection(c.Request.Context(), auth.UserID(c), c.Param("id"))
	if err != nil {
		h.respondError(c, err, "Failed to build projection")
		return
	}
	c.JSON(http.StatusOK, p)
}

// submit handles POST /api/v1/projects/:id/submit
func (h *Handler) submit(c *gin.Context) {
	if err := h.service.Submit(c.Request.Context(), auth.UserID(c), c.Param("id")); err != nil {
		h.respondError(c, err, "Failed to submit project")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "submitted"})
}

// exportPDF handles GET /api/v1/projects/:id/export/pdf
func (h *Handler) exportPDF(c *gin.Context) {
	userID := auth.UserID(c)
	project, err := h.service.GetProject(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.respondError(c, err, "Failed to load project for export")
		return
	}
	p, err := h.service.Projection(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.respondError(c, err, "Failed to build projection for export")
		return
	}

	data, err := export.ProjectPDF(project, p, export.DefaultPDFOptions())
	if err != nil {
		h.logger.Error("Failed to render PDF", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.pdf", project.ID))
	c.Data(http.StatusOK, "application/pdf", data)
}

// exportExcel handles GET /api/v1/projects/:id/export/excel
func (h *Handler) exportExcel(c *gin.Context) {
	userID := auth.UserID(c)
	project, err := h.service.GetProject(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.respondError(c, err, "Failed to load project for export")
		return
	}
	p, err := h.service.Projection(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.respondError(c, err, "Failed to build projection for export")
		return
	}

	data, err := export.ProjectExcel(project, p)
	if err != nil {
		h.logger.Error("Failed to render workbook", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.xlsx", project.ID))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// handleWebSocket handles GET /api/v1/ws
func (h *Handler) handleWebSocket(c *gin.Context) {
	if err := h.ws.HandleConnection(c.Writer, c.Request, auth.UserID(c)); err != nil {
		h.logger.Error("Failed to upgrade websocket", zap.Error(err))
	}
}

// respondError maps service errors onto HTTP statuses: missing records
// to 404, incomplete required answers to 422, anything else to 500.
func (h *Handler) respondError(c *gin.Context, err error, logMessage string) {
	switch {
	case errors.Is(err, survey.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ErrValidationIncomplete):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		h.logger.Error(logMessage, zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
