package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "siteproof/internal/errors"
	"siteproof/internal/models"
	"siteproof/internal/services"
)

// VerificationHandler handles the QS review workflow.
type VerificationHandler struct {
	verificationService services.VerificationServicer
	auditService        services.AuditServicer
}

// NewVerificationHandler creates a new VerificationHandler
func NewVerificationHandler(verificationService services.VerificationServicer, auditService services.AuditServicer) *VerificationHandler {
	return &VerificationHandler{verificationService: verificationService, auditService: auditService}
}

// DecisionRequest is the body of a QS decision.
type DecisionRequest struct {
	Action  string `json:"action" binding:"required,decision_action"`
	Comment string `json:"comment" binding:"max=2000"`
}

// ListPending returns a project's undecided evidence
// @Summary     List pending evidence
// @Description Undecided submissions for a project, newest capture first,
// @Description capped at fifty rows
// @Tags        verification
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Project ID"
// @Success     200 {array} models.Evidence "Pending evidence"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /projects/{id}/evidence [get]
func (h *VerificationHandler) ListPending(c *gin.Context) {
	projectID, err := parsePathUUID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	pending, err := h.verificationService.ListPending(projectID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"evidence": pending})
}

// Decide records a QS decision on a pending submission
// @Summary     Decide on evidence
// @Description Apply verified, queried or rejected to a pending submission and
// @Description append the matching audit-trail entry in the same transaction
// @Tags        verification
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Evidence ID"
// @Param       request body DecisionRequest true "Decision"
// @Success     200 {object} services.Decision "Committed decision"
// @Failure     400 {object} ErrorResponse "Validation error"
// @Failure     404 {object} ErrorResponse "Evidence not found"
// @Failure     409 {object} ErrorResponse "Evidence already decided"
// @Router      /evidence/{id}/decision [post]
func (h *VerificationHandler) Decide(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	evidenceID, err := parsePathUUID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	action, ok := models.ParseDecisionAction(req.Action)
	if !ok {
		respondWithError(c, apperrors.ErrInvalidDecisionAction)
		return
	}

	decision, err := h.verificationService.Decide(evidenceID, action, req.Comment, userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "evidence.decide", "evidence", evidenceID, c.ClientIP(), map[string]interface{}{
		"action":  string(action),
		"comment": req.Comment,
	})

	c.JSON(http.StatusOK, decision)
}
