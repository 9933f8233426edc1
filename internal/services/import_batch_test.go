package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/skilltrace/skilltrace-backend/internal/platform/logger"
	"github.com/skilltrace/skilltrace-backend/internal/types"
)

type stubCourseRepo struct{ course *types.Course }

func (r stubCourseRepo) GetByID(_ context.Context, _ *gorm.DB, id uuid.UUID) (*types.Course, error) {
	if r.course != nil && r.course.ID == id {
		return r.course, nil
	}
	return nil, nil
}

type stubOutcomeRepo struct{ outcome *types.Outcome }

func (r stubOutcomeRepo) GetByID(_ context.Context, _ *gorm.DB, id uuid.UUID) (*types.Outcome, error) {
	if r.outcome != nil && r.outcome.ID == id {
		return r.outcome, nil
	}
	return nil, nil
}

func (r stubOutcomeRepo) ListByLeafSkillIDs(context.Context, *gorm.DB, []uuid.UUID) ([]types.Outcome, error) {
	return nil, nil
}

type stubStudentRepo struct{ students []types.Student }

func (r stubStudentRepo) GetByCode(context.Context, *gorm.DB, string) (*types.Student, error) {
	return nil, nil
}

func (r stubStudentRepo) ListByCodes(_ context.Context, _ *gorm.DB, codes []string) ([]types.Student, error) {
	wanted := make(map[string]bool, len(codes))
	for _, code := range codes {
		wanted[code] = true
	}
	var out []types.Student
	for _, st := range r.students {
		if wanted[st.Code] {
			out = append(out, st)
		}
	}
	return out, nil
}

func (r stubStudentRepo) ListByCurriculumYear(context.Context, *gorm.DB, uuid.UUID, string) ([]types.Student, error) {
	return nil, nil
}

func (r stubStudentRepo) CreateIfMissing(context.Context, *gorm.DB, []string, uuid.UUID, uuid.UUID) error {
	return nil
}

type stubSkillNodeRepo struct{ nodes []types.SkillNode }

func (r stubSkillNodeRepo) ListByCurriculum(context.Context, *gorm.DB, uuid.UUID) ([]types.SkillNode, error) {
	return r.nodes, nil
}

type stubObservationRepo struct{ byStudent map[uuid.UUID]*types.LeafObservation }

func (r stubObservationRepo) Get(_ context.Context, _ *gorm.DB, studentID, _, _ uuid.UUID) (*types.LeafObservation, error) {
	return r.byStudent[studentID], nil
}

func (r stubObservationRepo) Upsert(context.Context, *gorm.DB, uuid.UUID, uuid.UUID, uuid.UUID, int, bool) error {
	return nil
}

func (r stubObservationRepo) MaxLevelsByLeaf(context.Context, *gorm.DB, uuid.UUID, []uuid.UUID) (map[uuid.UUID]int, error) {
	return nil, nil
}

func (r stubObservationRepo) ListForStudents(context.Context, *gorm.DB, []uuid.UUID, []uuid.UUID) ([]types.LeafObservation, error) {
	return nil, nil
}

type stubAssessmentRepo struct{}

func (stubAssessmentRepo) GetByID(context.Context, *gorm.DB, uuid.UUID) (*types.RootAssessment, error) {
	return nil, nil
}

func (stubAssessmentRepo) ListByStudent(context.Context, *gorm.DB, uuid.UUID) ([]types.RootAssessment, error) {
	return nil, nil
}

func (stubAssessmentRepo) UpsertCurriculumLevel(context.Context, *gorm.DB, uuid.UUID, uuid.UUID, int, datatypes.JSON) error {
	return nil
}

func (stubAssessmentRepo) SetCompanyLevel(context.Context, *gorm.DB, uuid.UUID, uuid.UUID, int, string) error {
	return nil
}

func (stubAssessmentRepo) SetFinalLevel(context.Context, *gorm.DB, uuid.UUID, int, string) error {
	return nil
}

func (stubAssessmentRepo) LockBySubmission(context.Context, *gorm.DB, uuid.UUID) (int64, error) {
	return 0, nil
}

type recordingNotifier struct {
	started  int
	finished int
	statuses []string
}

func (n *recordingNotifier) BatchStarted(uuid.UUID, uuid.UUID, int) { n.started++ }

func (n *recordingNotifier) RowProcessed(_ uuid.UUID, _ string, status string) {
	n.statuses = append(n.statuses, status)
}

func (n *recordingNotifier) BatchFinished(uuid.UUID, *BatchReport) { n.finished++ }

type importFixture struct {
	service  ImportService
	notifier *recordingNotifier
	course   *types.Course
	outcome  *types.Outcome
}

// A one-node taxonomy (the leaf is its own root) and a single known student
// whose stored observation already matches the incoming row. Rows that would
// need to persist are kept out of these batches.
func newImportFixture(t *testing.T) importFixture {
	t.Helper()
	log, err := logger.New("dev")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}

	leafID := uuid.New()
	course := &types.Course{ID: uuid.New(), CurriculumID: uuid.New(), BranchID: uuid.New()}
	outcome := &types.Outcome{ID: uuid.New(), LeafSkillID: leafID, ExpectedLevel: 3}
	student := types.Student{ID: uuid.New(), Code: "S-001", CurriculumID: course.CurriculumID}

	notifier := &recordingNotifier{}
	service := NewImportService(
		nil, log,
		stubCourseRepo{course: course},
		stubOutcomeRepo{outcome: outcome},
		stubStudentRepo{students: []types.Student{student}},
		stubSkillNodeRepo{nodes: []types.SkillNode{{ID: leafID, CurriculumID: course.CurriculumID, Domain: types.SkillDomainCognitive, Name: "root leaf"}}},
		stubObservationRepo{byStudent: map[uuid.UUID]*types.LeafObservation{
			student.ID: {StudentID: student.ID, OutcomeID: outcome.ID, CourseID: course.ID, GainedLevel: 4, Passed: true},
		}},
		stubAssessmentRepo{},
		notifier,
	)
	return importFixture{service: service, notifier: notifier, course: course, outcome: outcome}
}

func TestImportScores_ReportIsolatesRowFailures(t *testing.T) {
	fx := newImportFixture(t)

	report, err := fx.service.ImportScores(context.Background(), fx.course.ID, fx.outcome.ID, []ScoreRow{
		{StudentCode: "S-001", GainedLevel: 4},
		{StudentCode: "  ", GainedLevel: 3},
		{StudentCode: "S-002", GainedLevel: 9},
		{StudentCode: "S-003", GainedLevel: 3},
	})
	if err != nil {
		t.Fatalf("ImportScores: %v", err)
	}
	if report.Succeeded != 0 {
		t.Fatalf("got %d succeeded, want 0", report.Succeeded)
	}
	if report.SkippedUnchanged != 1 {
		t.Fatalf("got %d skipped, want 1", report.SkippedUnchanged)
	}
	wantFailed := []RowFailure{
		{StudentCode: "", Reason: "empty_student_code"},
		{StudentCode: "S-002", Reason: "invalid_level"},
		{StudentCode: "S-003", Reason: "student_not_found"},
	}
	if len(report.Failed) != len(wantFailed) {
		t.Fatalf("got %d failures, want %d: %+v", len(report.Failed), len(wantFailed), report.Failed)
	}
	for i, want := range wantFailed {
		if report.Failed[i] != want {
			t.Fatalf("failure %d: got %+v, want %+v", i, report.Failed[i], want)
		}
	}
}

func TestImportScores_NotifierSeesEveryRow(t *testing.T) {
	fx := newImportFixture(t)

	_, err := fx.service.ImportScores(context.Background(), fx.course.ID, fx.outcome.ID, []ScoreRow{
		{StudentCode: "S-001", GainedLevel: 4},
		{StudentCode: "", GainedLevel: 2},
	})
	if err != nil {
		t.Fatalf("ImportScores: %v", err)
	}
	if fx.notifier.started != 1 || fx.notifier.finished != 1 {
		t.Fatalf("got started=%d finished=%d, want 1/1", fx.notifier.started, fx.notifier.finished)
	}
	wantStatuses := []string{"skipped_unchanged", "empty_student_code"}
	if len(fx.notifier.statuses) != len(wantStatuses) {
		t.Fatalf("got statuses %v, want %v", fx.notifier.statuses, wantStatuses)
	}
	for i, want := range wantStatuses {
		if fx.notifier.statuses[i] != want {
			t.Fatalf("got statuses %v, want %v", fx.notifier.statuses, wantStatuses)
		}
	}
}

func TestImportScores_UnknownCourseFailsWholeBatch(t *testing.T) {
	fx := newImportFixture(t)

	_, err := fx.service.ImportScores(context.Background(), uuid.New(), fx.outcome.ID, []ScoreRow{{StudentCode: "S-001", GainedLevel: 4}})
	status, code := apiStatusCode(t, err)
	if status != http.StatusNotFound || code != "course_not_found" {
		t.Fatalf("got %d %q", status, code)
	}
	if fx.notifier.started != 0 {
		t.Fatalf("no row may be announced before the batch is validated")
	}
}

func TestImportScores_UnknownOutcomeFailsWholeBatch(t *testing.T) {
	fx := newImportFixture(t)

	_, err := fx.service.ImportScores(context.Background(), fx.course.ID, uuid.New(), []ScoreRow{{StudentCode: "S-001", GainedLevel: 4}})
	status, code := apiStatusCode(t, err)
	if status != http.StatusNotFound || code != "outcome_not_found" {
		t.Fatalf("got %d %q", status, code)
	}
	if fx.notifier.started != 0 {
		t.Fatalf("no row may be announced before the batch is validated")
	}
}
