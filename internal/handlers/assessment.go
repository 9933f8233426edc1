package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/skilltrace/skilltrace-backend/internal/services"
)

type AssessmentHandler struct {
	assessmentService services.AssessmentService
}

func NewAssessmentHandler(assessmentService services.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{assessmentService: assessmentService}
}

type submitCompanyLevelRequest struct {
	SubmissionID   uuid.UUID `json:"submission_id"`
	CompanyLevel   int       `json:"company_level" binding:"required"`
	CompanyComment string    `json:"company_comment"`
}

func (h *AssessmentHandler) SubmitCompanyLevel(c *gin.Context) {
	assessmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_assessment_id", err)
		return
	}
	var req submitCompanyLevelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	assessment, err := h.assessmentService.SubmitCompanyLevel(c.Request.Context(), assessmentID, req.SubmissionID, req.CompanyLevel, req.CompanyComment)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"assessment": assessment})
}

func (h *AssessmentHandler) LockSubmission(c *gin.Context) {
	submissionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_submission_id", err)
		return
	}
	if err := h.assessmentService.LockSubmission(c.Request.Context(), submissionID); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"locked": true})
}

type finalizeRequest struct {
	FinalLevel   int    `json:"final_level" binding:"required"`
	FinalComment string `json:"final_comment"`
}

func (h *AssessmentHandler) Finalize(c *gin.Context) {
	assessmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_assessment_id", err)
		return
	}
	var req finalizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	assessment, err := h.assessmentService.FinalizeByCoordinator(c.Request.Context(), assessmentID, req.FinalLevel, req.FinalComment)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"assessment": assessment})
}
