package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"docflow/internal/domain"
	"docflow/internal/export"
	"docflow/internal/port"
	"docflow/internal/service"
)

// ProjectHandler handles project endpoints.
type ProjectHandler struct {
	projectService  service.ProjectService
	documentService service.DocumentService
	areaRepo        port.BusinessAreaRepository
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(
	projectService service.ProjectService,
	documentService service.DocumentService,
	areaRepo port.BusinessAreaRepository,
) *ProjectHandler {
	return &ProjectHandler{
		projectService:  projectService,
		documentService: documentService,
		areaRepo:        areaRepo,
	}
}

// GetByID handles GET /api/v1/projects/:id
// @Summary Get a project with its team and documents
// @Tags projects
// @Produce json
// @Param id path string true "Project ID (UUID)"
// @Success 200 {object} APIResponse{data=service.ProjectDetail} "Project details"
// @Failure 404 {object} APIResponse "Project not found"
// @Security BearerAuth
// @Router /projects/{id} [get]
func (h *ProjectHandler) GetByID(c *gin.Context) {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	detail, err := h.projectService.GetByID(c.Request.Context(), projectID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, detail)
}

// ListDocuments handles GET /api/v1/projects/:id/documents
// @Summary List a project's documents
// @Tags projects
// @Produce json
// @Param id path string true "Project ID (UUID)"
// @Success 200 {object} APIResponse{data=[]domain.Document} "Documents"
// @Security BearerAuth
// @Router /projects/{id}/documents [get]
func (h *ProjectHandler) ListDocuments(c *gin.Context) {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	docs, err := h.documentService.ListByProject(c.Request.Context(), projectID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, docs)
}

// SpawnDocumentRequest is the JSON body for creating an empty document.
type SpawnDocumentRequest struct {
	Kind string `json:"kind" binding:"required"`
	Year int    `json:"year"`
}

// SpawnDocument handles POST /api/v1/projects/:id/documents
// @Summary Create an empty document on a project
// @Tags projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID (UUID)"
// @Param request body SpawnDocumentRequest true "Document kind and reporting year"
// @Success 201 {object} APIResponse{data=domain.Document} "Spawned document"
// @Failure 409 {object} APIResponse "Document already exists"
// @Security BearerAuth
// @Router /projects/{id}/documents [post]
func (h *ProjectHandler) SpawnDocument(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req SpawnDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "kind is required")
		return
	}

	doc, err := h.documentService.Spawn(c.Request.Context(), service.SpawnDocumentInput{
		ProjectID: projectID,
		Kind:      domain.DocumentKind(req.Kind),
		Year:      req.Year,
		ActorID:   userID,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, doc)
}

// SetStatusRequest is the JSON body for the administrative status interface.
type SetStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// SetStatus handles PUT /api/v1/projects/:id/status
// @Summary Set a project's status directly (superuser)
// @Tags projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID (UUID)"
// @Param request body SetStatusRequest true "New status"
// @Success 200 {object} APIResponse "Status updated"
// @Failure 403 {object} APIResponse "Superuser required"
// @Security BearerAuth
// @Router /projects/{id}/status [put]
func (h *ProjectHandler) SetStatus(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "status is required")
		return
	}

	if err := h.projectService.SetStatus(c.Request.Context(), projectID, domain.ProjectStatus(req.Status), userID); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"project_id": projectID, "status": req.Status})
}

// Reconcile handles POST /api/v1/projects/:id/reconcile
// @Summary Replay lifecycle side effects for a project (superuser)
// @Description Repairs divergence between document approval state and project status after a lost side effect.
// @Tags projects
// @Produce json
// @Param id path string true "Project ID (UUID)"
// @Success 200 {object} APIResponse "Reconciled"
// @Failure 403 {object} APIResponse "Superuser required"
// @Security BearerAuth
// @Router /projects/{id}/reconcile [post]
func (h *ProjectHandler) Reconcile(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.projectService.Reconcile(c.Request.Context(), projectID, userID); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"project_id": projectID, "reconciled": true})
}

// Export handles GET /api/v1/projects/export
// @Summary Download the project register
// @Tags projects
// @Produce text/csv
// @Param format query string false "csv or xlsx" default(csv)
// @Success 200 {file} file "Project register"
// @Security BearerAuth
// @Router /projects/export [get]
func (h *ProjectHandler) Export(c *gin.Context) {
	format := c.DefaultQuery("format", "csv")
	if format != "csv" && format != "xlsx" {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "format must be csv or xlsx")
		return
	}

	projects, err := h.projectService.List(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	areas, err := h.areaRepo.List(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	areaNames := make(map[string]string, len(areas))
	for _, a := range areas {
		areaNames[a.ID.String()] = a.Name
	}

	filename := fmt.Sprintf("project-register-%s.%s", time.Now().UTC().Format("2006-01-02"), format)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))

	if format == "xlsx" {
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		if err := export.WriteXLSX(c.Writer, projects, areaNames); err != nil {
			HandleError(c, err)
		}
		return
	}

	c.Header("Content-Type", "text/csv")
	if err := export.WriteCSV(c.Writer, projects, areaNames); err != nil {
		HandleError(c, err)
	}
}
