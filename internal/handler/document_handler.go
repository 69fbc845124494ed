package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"docflow/internal/domain"
	"docflow/internal/service"
)

// DocumentHandler handles document and workflow action endpoints.
type DocumentHandler struct {
	documentService service.DocumentService
	workflowService service.WorkflowService
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(documentService service.DocumentService, workflowService service.WorkflowService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService, workflowService: workflowService}
}

// GetByID handles GET /api/v1/documents/:id
// @Summary Get document by ID
// @Tags documents
// @Produce json
// @Param id path string true "Document ID (UUID)"
// @Success 200 {object} APIResponse{data=domain.Document} "Document details"
// @Failure 404 {object} APIResponse "Document not found"
// @Security BearerAuth
// @Router /documents/{id} [get]
func (h *DocumentHandler) GetByID(c *gin.Context) {
	docID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	doc, err := h.documentService.GetByID(c.Request.Context(), docID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, doc)
}

// SubmitAction handles POST /api/v1/documents/:id/actions
// @Summary Submit a workflow action against a document
// @Description Apply approve, recall, send_back, or reopen at a stage. Conflicting concurrent writers receive STATE_CONFLICT and should re-read.
// @Tags documents
// @Accept json
// @Produce json
// @Param id path string true "Document ID (UUID)"
// @Param request body SubmitActionRequest true "Stage and action"
// @Success 200 {object} APIResponse{data=domain.Document} "Updated document"
// @Failure 400 {object} APIResponse "Unknown stage or action"
// @Failure 403 {object} APIResponse "Actor lacks stage authority"
// @Failure 409 {object} APIResponse "Precondition failed or state conflict"
// @Security BearerAuth
// @Router /documents/{id}/actions [post]
func (h *DocumentHandler) SubmitAction(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	docID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req SubmitActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "stage and action are required")
		return
	}

	doc, err := h.workflowService.SubmitAction(c.Request.Context(), service.SubmitActionInput{
		DocumentID: docID,
		Stage:      domain.ApprovalStage(req.Stage),
		Action:     domain.WorkflowAction(req.Action),
		ActorID:    userID,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, doc)
}

// SubmitActionRequest is the JSON body for submitting a workflow action.
type SubmitActionRequest struct {
	Stage  int    `json:"stage" binding:"required"`
	Action string `json:"action" binding:"required"`
}

// NextActions handles GET /api/v1/documents/:id/actions
// @Summary List permitted actions for the caller on a document
// @Tags documents
// @Produce json
// @Param id path string true "Document ID (UUID)"
// @Success 200 {object} APIResponse{data=workflow.ActionSet} "Permitted (stage, action) pairs and delete permission"
// @Security BearerAuth
// @Router /documents/{id}/actions [get]
func (h *DocumentHandler) NextActions(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	docID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	set, err := h.workflowService.NextActions(c.Request.Context(), docID, userID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, set)
}

// History handles GET /api/v1/documents/:id/history
// @Summary Get the audit trail of a document
// @Tags documents
// @Produce json
// @Param id path string true "Document ID (UUID)"
// @Success 200 {object} APIResponse{data=[]domain.DocumentAction} "Audit entries, newest first"
// @Security BearerAuth
// @Router /documents/{id}/history [get]
func (h *DocumentHandler) History(c *gin.Context) {
	docID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	entries, err := h.workflowService.History(c.Request.Context(), docID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, entries)
}

// Delete handles DELETE /api/v1/documents/:id
// @Summary Delete a document
// @Description Delete a document that has collected no approvals. Blocked with DELETION_BLOCKED otherwise.
// @Tags documents
// @Param id path string true "Document ID (UUID)"
// @Success 204 "Deleted"
// @Failure 409 {object} APIResponse "Deletion blocked"
// @Security BearerAuth
// @Router /documents/{id} [delete]
func (h *DocumentHandler) Delete(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	docID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.documentService.Delete(c.Request.Context(), docID, userID); err != nil {
		HandleError(c, err)
		return
	}
	RespondNoContent(c)
}
