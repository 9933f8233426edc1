package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/skilltrace/skilltrace-backend/internal/services"
	"github.com/skilltrace/skilltrace-backend/internal/types"
)

type ReportHandler struct {
	classifierService services.ClassifierService
}

func NewReportHandler(classifierService services.ClassifierService) *ReportHandler {
	return &ReportHandler{classifierService: classifierService}
}

func (h *ReportHandler) GetTranscript(c *gin.Context) {
	code := strings.TrimSpace(c.Param("code"))
	if code == "" {
		RespondError(c, http.StatusBadRequest, "invalid_student_code", nil)
		return
	}
	transcript, err := h.classifierService.GetTranscript(c.Request.Context(), code)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"transcript": transcript})
}

func (h *ReportHandler) GetSummary(c *gin.Context) {
	curriculumID, err := uuid.Parse(c.Query("curriculum_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_curriculum_id", err)
		return
	}
	target, ok := services.ParseCategory(c.Query("target"))
	if !ok {
		RespondError(c, http.StatusBadRequest, "invalid_target", nil)
		return
	}
	domains, ok := parseDomains(c.Query("domains"))
	if !ok {
		RespondError(c, http.StatusBadRequest, "invalid_domains", nil)
		return
	}
	summaries, err := h.classifierService.Summary(c.Request.Context(), curriculumID, c.Query("year"), domains, target)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"summary": summaries})
}

// parseDomains accepts a comma-separated domain list; empty means all
// domains. "specific" and "soft" expand to their domain pairs.
func parseDomains(raw string) ([]types.SkillDomain, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, true
	}
	var out []types.SkillDomain
	for _, part := range strings.Split(raw, ",") {
		switch strings.ToLower(strings.TrimSpace(part)) {
		case "specific", "hard":
			out = append(out, types.SkillDomainCognitive, types.SkillDomainPsychomotor)
		case "soft":
			out = append(out, types.SkillDomainAffective, types.SkillDomainEthics)
		default:
			d := types.SkillDomain(strings.ToLower(strings.TrimSpace(part)))
			if !d.Valid() {
				return nil, false
			}
			out = append(out, d)
		}
	}
	return out, true
}
