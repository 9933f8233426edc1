package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/skilltrace/skilltrace-backend/internal/services"
)

type ImportHandler struct {
	importService services.ImportService
}

func NewImportHandler(importService services.ImportService) *ImportHandler {
	return &ImportHandler{importService: importService}
}

type importScoresRequest struct {
	CourseID  uuid.UUID           `json:"course_id" binding:"required"`
	OutcomeID uuid.UUID           `json:"outcome_id" binding:"required"`
	Rows      []services.ScoreRow `json:"rows" binding:"required"`
}

func (h *ImportHandler) ImportScores(c *gin.Context) {
	var req importScoresRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	report, err := h.importService.ImportScores(c.Request.Context(), req.CourseID, req.OutcomeID, req.Rows)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"report": report})
}
