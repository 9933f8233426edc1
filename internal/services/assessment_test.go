package services

import (
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"

	"github.com/skilltrace/skilltrace-backend/internal/platform/apierr"
	"github.com/skilltrace/skilltrace-backend/internal/types"
)

func apiStatusCode(t *testing.T, err error) (int, string) {
	t.Helper()
	var apiErr *apierr.Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *apierr.Error, got %T: %v", err, err)
	}
	return apiErr.Status, apiErr.Code
}

func TestAssessmentWriteError_LockedRefusesWrite(t *testing.T) {
	assessment := &types.RootAssessment{ID: uuid.New(), CompanyLevel: 3, Locked: true}

	err := AssessmentWriteError(assessment.ID, assessment)
	if err == nil {
		t.Fatalf("expected locked assessment to refuse the write")
	}
	status, code := apiStatusCode(t, err)
	if status != http.StatusConflict || code != "already_locked" {
		t.Fatalf("got %d %q, want %d %q", status, code, http.StatusConflict, "already_locked")
	}
	if assessment.CompanyLevel != 3 {
		t.Fatalf("guard must not touch the record, company level became %d", assessment.CompanyLevel)
	}
}

func TestAssessmentWriteError_MissingIs404(t *testing.T) {
	status, code := apiStatusCode(t, AssessmentWriteError(uuid.New(), nil))
	if status != http.StatusNotFound || code != "assessment_not_found" {
		t.Fatalf("got %d %q", status, code)
	}
}

func TestAssessmentWriteError_UnlockedProceeds(t *testing.T) {
	assessment := &types.RootAssessment{ID: uuid.New()}
	if err := AssessmentWriteError(assessment.ID, assessment); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSubmissionWriteError_LockedRefusesWrite(t *testing.T) {
	submission := &types.InternshipSubmission{ID: uuid.New(), Locked: true}
	status, code := apiStatusCode(t, SubmissionWriteError(submission.ID, submission))
	if status != http.StatusConflict || code != "already_locked" {
		t.Fatalf("got %d %q", status, code)
	}
}

func TestSubmissionWriteError_MissingIs404(t *testing.T) {
	status, code := apiStatusCode(t, SubmissionWriteError(uuid.New(), nil))
	if status != http.StatusNotFound || code != "submission_not_found" {
		t.Fatalf("got %d %q", status, code)
	}
}

func TestSubmissionWriteError_UnlockedProceeds(t *testing.T) {
	submission := &types.InternshipSubmission{ID: uuid.New()}
	if err := SubmissionWriteError(submission.ID, submission); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLockAlreadyApplied(t *testing.T) {
	if LockAlreadyApplied(nil) {
		t.Fatalf("nil submission is not locked")
	}
	if LockAlreadyApplied(&types.InternshipSubmission{ID: uuid.New()}) {
		t.Fatalf("unlocked submission reported as locked")
	}
	if !LockAlreadyApplied(&types.InternshipSubmission{ID: uuid.New(), Locked: true}) {
		t.Fatalf("locked submission must make the re-lock a no-op")
	}
}
