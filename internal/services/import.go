package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/skilltrace/skilltrace-backend/internal/platform/apierr"
	"github.com/skilltrace/skilltrace-backend/internal/platform/logger"
	"github.com/skilltrace/skilltrace-backend/internal/repos"
	"github.com/skilltrace/skilltrace-backend/internal/skilltree"
	"github.com/skilltrace/skilltrace-backend/internal/types"
)

const (
	// Levels run 1..5 across outcomes and attainment.
	MinLevel = 1
	MaxLevel = 5
)

type ScoreRow struct {
	StudentCode string `json:"student_code"`
	GainedLevel int    `json:"gained_level"`
}

type RowFailure struct {
	StudentCode string `json:"student_code"`
	Reason      string `json:"reason"`
}

// BatchReport is the per-row outcome of one import call. Structural failures
// (missing course/outcome, broken taxonomy) never produce a report, they fail
// the whole batch before any row is touched.
type BatchReport struct {
	Succeeded        int          `json:"succeeded"`
	SkippedUnchanged int          `json:"skipped_unchanged"`
	Failed           []RowFailure `json:"failed"`
}

type ImportService interface {
	ImportScores(ctx context.Context, courseID, outcomeID uuid.UUID, rows []ScoreRow) (*BatchReport, error)
}

type importService struct {
	db           *gorm.DB
	log          *logger.Logger
	courses      repos.CourseRepo
	outcomes     repos.OutcomeRepo
	students     repos.StudentRepo
	skills       repos.SkillNodeRepo
	observations repos.LeafObservationRepo
	assessments  repos.RootAssessmentRepo
	notifier     ImportNotifier
}

func NewImportService(
	db *gorm.DB,
	log *logger.Logger,
	courses repos.CourseRepo,
	outcomes repos.OutcomeRepo,
	students repos.StudentRepo,
	skills repos.SkillNodeRepo,
	observations repos.LeafObservationRepo,
	assessments repos.RootAssessmentRepo,
	notifier ImportNotifier,
) ImportService {
	if notifier == nil {
		notifier = NoopImportNotifier{}
	}
	return &importService{
		db:           db,
		log:          log.With("service", "ImportService"),
		courses:      courses,
		outcomes:     outcomes,
		students:     students,
		skills:       skills,
		observations: observations,
		assessments:  assessments,
		notifier:     notifier,
	}
}

func (s *importService) ImportScores(ctx context.Context, courseID, outcomeID uuid.UUID, rows []ScoreRow) (*BatchReport, error) {
	course, err := s.courses.GetByID(ctx, nil, courseID)
	if err != nil {
		return nil, fmt.Errorf("load course: %w", err)
	}
	if course == nil {
		return nil, apierr.New(http.StatusNotFound, "course_not_found", fmt.Errorf("course %s does not exist", courseID))
	}
	outcome, err := s.outcomes.GetByID(ctx, nil, outcomeID)
	if err != nil {
		return nil, fmt.Errorf("load outcome: %w", err)
	}
	if outcome == nil {
		return nil, apierr.New(http.StatusNotFound, "outcome_not_found", fmt.Errorf("outcome %s does not exist", outcomeID))
	}

	// The index is rebuilt for every batch; staleness across calls is not
	// possible and nothing is shared with concurrent importers.
	skills, err := s.skills.ListByCurriculum(ctx, nil, course.CurriculumID)
	if err != nil {
		return nil, fmt.Errorf("load skill forest: %w", err)
	}
	ix := skilltree.NewIndex(skills)
	rootID, err := ix.RootOf(outcome.LeafSkillID)
	if err != nil {
		return nil, taxonomyError(err)
	}
	leaves, err := ix.DescendantLeaves(rootID)
	if err != nil {
		return nil, taxonomyError(err)
	}

	codes := make([]string, 0, len(rows))
	for _, row := range rows {
		codes = append(codes, strings.TrimSpace(row.StudentCode))
	}
	if err := s.students.CreateIfMissing(ctx, nil, codes, course.CurriculumID, course.BranchID); err != nil {
		return nil, fmt.Errorf("create missing students: %w", err)
	}
	known, err := s.students.ListByCodes(ctx, nil, codes)
	if err != nil {
		return nil, fmt.Errorf("resolve students: %w", err)
	}
	byCode := make(map[string]types.Student, len(known))
	for _, st := range known {
		byCode[st.Code] = st
	}

	s.notifier.BatchStarted(courseID, outcomeID, len(rows))
	report := &BatchReport{}
	for _, row := range rows {
		status := s.processRow(ctx, ix, rootID, leaves, course, outcome, byCode, row, report)
		s.notifier.RowProcessed(courseID, strings.TrimSpace(row.StudentCode), status)
	}
	s.notifier.BatchFinished(courseID, report)
	s.log.Info("Score import finished",
		"course_id", courseID,
		"outcome_id", outcomeID,
		"succeeded", report.Succeeded,
		"skipped_unchanged", report.SkippedUnchanged,
		"failed", len(report.Failed),
	)
	return report, nil
}

// Row statuses reported over the realtime channel and in BatchReport reasons.
const (
	rowStatusSucceeded = "succeeded"
	rowStatusSkipped   = "skipped_unchanged"

	reasonEmptyCode       = "empty_student_code"
	reasonInvalidLevel    = "invalid_level"
	reasonStudentNotFound = "student_not_found"
	reasonPersistFailed   = "persist_failed"
)

func (s *importService) processRow(
	ctx context.Context,
	ix *skilltree.Index,
	rootID uuid.UUID,
	leaves []uuid.UUID,
	course *types.Course,
	outcome *types.Outcome,
	byCode map[string]types.Student,
	row ScoreRow,
	report *BatchReport,
) string {
	code := strings.TrimSpace(row.StudentCode)
	fail := func(reason string) string {
		report.Failed = append(report.Failed, RowFailure{StudentCode: code, Reason: reason})
		return reason
	}
	if code == "" {
		return fail(reasonEmptyCode)
	}
	if !ValidLevel(row.GainedLevel) {
		return fail(reasonInvalidLevel)
	}
	student, ok := byCode[code]
	if !ok {
		return fail(reasonStudentNotFound)
	}
	passed := Passed(row.GainedLevel, outcome.ExpectedLevel)

	existing, err := s.observations.Get(ctx, nil, student.ID, outcome.ID, course.ID)
	if err != nil {
		s.log.Warn("Observation pre-read failed", "student_code", code, "error", err)
		return fail(reasonPersistFailed)
	}
	if ObservationConverged(existing, row.GainedLevel, passed) {
		report.SkippedUnchanged++
		return rowStatusSkipped
	}

	// One transaction per student: a failure here is isolated to this row and
	// a concurrent importer run can interleave on disjoint students.
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := s.observations.Get(ctx, tx, student.ID, outcome.ID, course.ID)
		if err != nil {
			return err
		}
		if ObservationConverged(current, row.GainedLevel, passed) {
			// Another writer got here first with the same target state.
			return nil
		}
		if err := s.observations.Upsert(ctx, tx, student.ID, outcome.ID, course.ID, row.GainedLevel, passed); err != nil {
			return err
		}
		leafLevels, err := s.observations.MaxLevelsByLeaf(ctx, tx, student.ID, leaves)
		if err != nil {
			return err
		}
		level, ok, err := skilltree.AggregateRoot(ix, rootID, leafLevels)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		return s.assessments.UpsertCurriculumLevel(ctx, tx, rootID, student.ID, level, levelBreakdown(leafLevels))
	})
	if err != nil {
		s.log.Warn("Import row failed, continuing batch", "student_code", code, "error", err)
		return fail(reasonPersistFailed)
	}
	report.Succeeded++
	return rowStatusSucceeded
}

func ValidLevel(level int) bool {
	return level >= MinLevel && level <= MaxLevel
}

func Passed(gainedLevel, expectedLevel int) bool {
	return gainedLevel >= expectedLevel
}

// ObservationConverged reports whether the stored observation already matches
// the incoming row, in which case the importer skips all writes and the
// recomputation.
func ObservationConverged(existing *types.LeafObservation, gainedLevel int, passed bool) bool {
	return existing != nil && existing.GainedLevel == gainedLevel && existing.Passed == passed
}

// levelBreakdown snapshots how many observed leaves sit at each level, stored
// on the assessment for audit UIs.
func levelBreakdown(leafLevels map[uuid.UUID]int) datatypes.JSON {
	counts := make(map[string]int, MaxLevel)
	for _, lvl := range leafLevels {
		counts[strconv.Itoa(lvl)]++
	}
	raw, err := json.Marshal(counts)
	if err != nil {
		return nil
	}
	return datatypes.JSON(raw)
}

func taxonomyError(err error) error {
	switch err {
	case skilltree.ErrCycleDetected:
		return apierr.New(http.StatusInternalServerError, "cycle_detected", err)
	case skilltree.ErrNodeNotFound:
		return apierr.New(http.StatusNotFound, "skill_not_found", err)
	default:
		return err
	}
}
