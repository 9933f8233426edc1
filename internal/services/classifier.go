package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/skilltrace/skilltrace-backend/internal/platform/apierr"
	"github.com/skilltrace/skilltrace-backend/internal/platform/logger"
	"github.com/skilltrace/skilltrace-backend/internal/repos"
	"github.com/skilltrace/skilltrace-backend/internal/skilltree"
	"github.com/skilltrace/skilltrace-backend/internal/types"
)

type Category string

const (
	CategoryBelow Category = "below"
	CategoryOn    Category = "on"
	CategoryAbove Category = "above"
	CategoryAll   Category = "all"
)

func ParseCategory(raw string) (Category, bool) {
	switch Category(strings.ToLower(strings.TrimSpace(raw))) {
	case CategoryBelow:
		return CategoryBelow, true
	case CategoryOn:
		return CategoryOn, true
	case CategoryAbove:
		return CategoryAbove, true
	case CategoryAll, "":
		return CategoryAll, true
	}
	return "", false
}

type RootSummary struct {
	RootSkillID   uuid.UUID                `json:"root_skill_id"`
	RootSkillName string                   `json:"root_skill_name"`
	Domain        types.SkillDomain        `json:"domain"`
	Counts        map[Category]int         `json:"counts"`
	Students      map[Category][]uuid.UUID `json:"students"`
}

type TranscriptEntry struct {
	RootSkillID     uuid.UUID         `json:"root_skill_id"`
	RootSkillName   string            `json:"root_skill_name"`
	Domain          types.SkillDomain `json:"domain"`
	Category        Category          `json:"category,omitempty"`
	CurriculumLevel int               `json:"curriculum_level"`
	CompanyLevel    int               `json:"company_level"`
	FinalLevel      int               `json:"final_level"`
}

type Transcript struct {
	StudentID   uuid.UUID         `json:"student_id"`
	StudentCode string            `json:"student_code"`
	Specific    []TranscriptEntry `json:"specific"`
	Soft        []TranscriptEntry `json:"soft"`
}

// ClassifierService is the reporting layer over observations and assessments.
// It never errors on empty populations; empty categories simply come back
// zero-counted.
type ClassifierService interface {
	Summary(ctx context.Context, curriculumID uuid.UUID, enrollmentYear string, domains []types.SkillDomain, target Category) ([]RootSummary, error)
	GetTranscript(ctx context.Context, studentCode string) (*Transcript, error)
}

type classifierService struct {
	db           *gorm.DB
	log          *logger.Logger
	skills       repos.SkillNodeRepo
	outcomes     repos.OutcomeRepo
	observations repos.LeafObservationRepo
	students     repos.StudentRepo
	assessments  repos.RootAssessmentRepo
}

func NewClassifierService(
	db *gorm.DB,
	log *logger.Logger,
	skills repos.SkillNodeRepo,
	outcomes repos.OutcomeRepo,
	observations repos.LeafObservationRepo,
	students repos.StudentRepo,
	assessments repos.RootAssessmentRepo,
) ClassifierService {
	return &classifierService{
		db:           db,
		log:          log.With("service", "ClassifierService"),
		skills:       skills,
		outcomes:     outcomes,
		observations: observations,
		students:     students,
		assessments:  assessments,
	}
}

func (s *classifierService) Summary(ctx context.Context, curriculumID uuid.UUID, enrollmentYear string, domains []types.SkillDomain, target Category) ([]RootSummary, error) {
	skills, err := s.skills.ListByCurriculum(ctx, nil, curriculumID)
	if err != nil {
		return nil, fmt.Errorf("load skill forest: %w", err)
	}
	ix := skilltree.NewIndex(skills)
	roots := ix.Roots(domains...)
	if len(roots) == 0 {
		return []RootSummary{}, nil
	}
	students, err := s.students.ListByCurriculumYear(ctx, nil, curriculumID, enrollmentYear)
	if err != nil {
		return nil, fmt.Errorf("load cohort: %w", err)
	}
	studentIDs := make([]uuid.UUID, 0, len(students))
	for _, st := range students {
		studentIDs = append(studentIDs, st.ID)
	}

	// Roots are independent of each other; classify them concurrently and
	// keep the output in root order via the slot slice.
	summaries := make([]RootSummary, len(roots))
	g, gctx := errgroup.WithContext(ctx)
	for i, rootID := range roots {
		g.Go(func() error {
			summary, err := s.summarizeRoot(gctx, ix, rootID, studentIDs)
			if err != nil {
				return err
			}
			summaries[i] = *summary
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if target != CategoryAll {
		for i := range summaries {
			filterSummary(&summaries[i], target)
		}
	}
	return summaries, nil
}

func (s *classifierService) summarizeRoot(ctx context.Context, ix *skilltree.Index, rootID uuid.UUID, studentIDs []uuid.UUID) (*RootSummary, error) {
	domain, _ := ix.Domain(rootID)
	out := &RootSummary{
		RootSkillID:   rootID,
		RootSkillName: ix.Name(rootID),
		Domain:        domain,
		Counts:        map[Category]int{CategoryBelow: 0, CategoryOn: 0, CategoryAbove: 0},
		Students:      map[Category][]uuid.UUID{},
	}
	leaves, err := ix.DescendantLeaves(rootID)
	if err != nil {
		return nil, taxonomyError(err)
	}
	outcomes, err := s.outcomes.ListByLeafSkillIDs(ctx, nil, leaves)
	if err != nil {
		return nil, fmt.Errorf("load outcomes: %w", err)
	}
	if len(outcomes) == 0 || len(studentIDs) == 0 {
		return out, nil
	}
	outcomeIDs := make([]uuid.UUID, 0, len(outcomes))
	expected := make(map[uuid.UUID]int, len(outcomes))
	for _, o := range outcomes {
		outcomeIDs = append(outcomeIDs, o.ID)
		expected[o.ID] = o.ExpectedLevel
	}
	observations, err := s.observations.ListForStudents(ctx, nil, outcomeIDs, studentIDs)
	if err != nil {
		return nil, fmt.Errorf("load observations: %w", err)
	}
	for studentID, category := range ClassifyStudents(observations, expected) {
		out.Counts[category]++
		out.Students[category] = append(out.Students[category], studentID)
	}
	return out, nil
}

func filterSummary(summary *RootSummary, target Category) {
	for _, cat := range []Category{CategoryBelow, CategoryOn, CategoryAbove} {
		if cat == target {
			continue
		}
		delete(summary.Counts, cat)
		delete(summary.Students, cat)
	}
}

// ClassifyStudents buckets each student once per root using worst-case-wins
// precedence: one observation under its outcome's expected level makes the
// student "below" no matter how the rest look; "on" beats "above" the same
// way. Students with no observation are not classified at all.
func ClassifyStudents(observations []types.LeafObservation, expectedByOutcome map[uuid.UUID]int) map[uuid.UUID]Category {
	out := make(map[uuid.UUID]Category)
	for _, obs := range observations {
		expected, ok := expectedByOutcome[obs.OutcomeID]
		if !ok {
			continue
		}
		var category Category
		switch {
		case obs.GainedLevel < expected:
			category = CategoryBelow
		case obs.GainedLevel == expected:
			category = CategoryOn
		default:
			category = CategoryAbove
		}
		current, seen := out[obs.StudentID]
		if !seen || worse(category, current) {
			out[obs.StudentID] = category
		}
	}
	return out
}

func worse(a, b Category) bool {
	return rank(a) > rank(b)
}

func rank(c Category) int {
	switch c {
	case CategoryBelow:
		return 2
	case CategoryOn:
		return 1
	default:
		return 0
	}
}

func (s *classifierService) GetTranscript(ctx context.Context, studentCode string) (*Transcript, error) {
	student, err := s.students.GetByCode(ctx, nil, studentCode)
	if err != nil {
		return nil, fmt.Errorf("load student: %w", err)
	}
	if student == nil {
		return nil, apierr.New(http.StatusNotFound, "student_not_found", fmt.Errorf("student %q does not exist", strings.TrimSpace(studentCode)))
	}
	skills, err := s.skills.ListByCurriculum(ctx, nil, student.CurriculumID)
	if err != nil {
		return nil, fmt.Errorf("load skill forest: %w", err)
	}
	ix := skilltree.NewIndex(skills)

	assessments, err := s.assessments.ListByStudent(ctx, nil, student.ID)
	if err != nil {
		return nil, fmt.Errorf("load assessments: %w", err)
	}
	byRoot := make(map[uuid.UUID]types.RootAssessment, len(assessments))
	for _, a := range assessments {
		byRoot[a.RootSkillID] = a
	}

	transcript := &Transcript{StudentID: student.ID, StudentCode: student.Code}
	for _, rootID := range ix.Roots() {
		entry, ok, err := s.transcriptEntry(ctx, ix, rootID, student.ID, byRoot)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		domain, _ := ix.Domain(rootID)
		if domain.Soft() {
			transcript.Soft = append(transcript.Soft, *entry)
		} else {
			transcript.Specific = append(transcript.Specific, *entry)
		}
	}
	return transcript, nil
}

// transcriptEntry reports ok=false for roots the student has no evidence on;
// those are left off the transcript rather than shown as zeros.
func (s *classifierService) transcriptEntry(ctx context.Context, ix *skilltree.Index, rootID, studentID uuid.UUID, byRoot map[uuid.UUID]types.RootAssessment) (*TranscriptEntry, bool, error) {
	entry := &TranscriptEntry{
		RootSkillID:   rootID,
		RootSkillName: ix.Name(rootID),
	}
	entry.Domain, _ = ix.Domain(rootID)

	hasEvidence := false
	if a, ok := byRoot[rootID]; ok {
		entry.CurriculumLevel = a.CurriculumLevel
		entry.CompanyLevel = a.CompanyLevel
		entry.FinalLevel = a.FinalLevel
		hasEvidence = true
	}

	leaves, err := ix.DescendantLeaves(rootID)
	if err != nil {
		return nil, false, taxonomyError(err)
	}
	outcomes, err := s.outcomes.ListByLeafSkillIDs(ctx, nil, leaves)
	if err != nil {
		return nil, false, fmt.Errorf("load outcomes: %w", err)
	}
	if len(outcomes) > 0 {
		outcomeIDs := make([]uuid.UUID, 0, len(outcomes))
		expected := make(map[uuid.UUID]int, len(outcomes))
		for _, o := range outcomes {
			outcomeIDs = append(outcomeIDs, o.ID)
			expected[o.ID] = o.ExpectedLevel
		}
		observations, err := s.observations.ListForStudents(ctx, nil, outcomeIDs, []uuid.UUID{studentID})
		if err != nil {
			return nil, false, fmt.Errorf("load observations: %w", err)
		}
		if category, ok := ClassifyStudents(observations, expected)[studentID]; ok {
			entry.Category = category
			hasEvidence = true
		}
	}
	return entry, hasEvidence, nil
}
