package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/skilltrace/skilltrace-backend/internal/platform/apierr"
	"github.com/skilltrace/skilltrace-backend/internal/platform/logger"
	"github.com/skilltrace/skilltrace-backend/internal/repos"
	"github.com/skilltrace/skilltrace-backend/internal/types"
)

// AssessmentService is the company overlay: an employer's independently
// submitted level sits next to the curriculum-derived one and never
// overwrites it. Locking a submission is the one irreversible operation in
// the system.
type AssessmentService interface {
	SubmitCompanyLevel(ctx context.Context, assessmentID, submissionID uuid.UUID, level int, comment string) (*types.RootAssessment, error)
	LockSubmission(ctx context.Context, submissionID uuid.UUID) error
	FinalizeByCoordinator(ctx context.Context, assessmentID uuid.UUID, level int, comment string) (*types.RootAssessment, error)
}

type assessmentService struct {
	db          *gorm.DB
	log         *logger.Logger
	assessments repos.RootAssessmentRepo
	submissions repos.InternshipSubmissionRepo
}

func NewAssessmentService(db *gorm.DB, log *logger.Logger, assessments repos.RootAssessmentRepo, submissions repos.InternshipSubmissionRepo) AssessmentService {
	return &assessmentService{
		db:          db,
		log:         log.With("service", "AssessmentService"),
		assessments: assessments,
		submissions: submissions,
	}
}

func (s *assessmentService) SubmitCompanyLevel(ctx context.Context, assessmentID, submissionID uuid.UUID, level int, comment string) (*types.RootAssessment, error) {
	if !ValidLevel(level) {
		return nil, apierr.New(http.StatusUnprocessableEntity, "invalid_level", fmt.Errorf("level %d outside %d..%d", level, MinLevel, MaxLevel))
	}
	var out *types.RootAssessment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		assessment, err := s.assessments.GetByID(ctx, tx, assessmentID)
		if err != nil {
			return err
		}
		if err := AssessmentWriteError(assessmentID, assessment); err != nil {
			return err
		}
		if submissionID != uuid.Nil {
			submission, err := s.submissions.GetByID(ctx, tx, submissionID)
			if err != nil {
				return err
			}
			if err := SubmissionWriteError(submissionID, submission); err != nil {
				return err
			}
		}
		if err := s.assessments.SetCompanyLevel(ctx, tx, assessmentID, submissionID, level, comment); err != nil {
			return err
		}
		out, err = s.assessments.GetByID(ctx, tx, assessmentID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// AssessmentWriteError reports why a company-side write against the
// assessment must be refused, nil when the write may proceed. A locked
// assessment stays exactly as it is.
func AssessmentWriteError(assessmentID uuid.UUID, assessment *types.RootAssessment) error {
	if assessment == nil {
		return apierr.New(http.StatusNotFound, "assessment_not_found", fmt.Errorf("assessment %s does not exist", assessmentID))
	}
	if assessment.Locked {
		return apierr.New(http.StatusConflict, "already_locked", fmt.Errorf("assessment %s is locked", assessmentID))
	}
	return nil
}

// SubmissionWriteError is the same gate for the referenced submission.
func SubmissionWriteError(submissionID uuid.UUID, submission *types.InternshipSubmission) error {
	if submission == nil {
		return apierr.New(http.StatusNotFound, "submission_not_found", fmt.Errorf("submission %s does not exist", submissionID))
	}
	if submission.Locked {
		return apierr.New(http.StatusConflict, "already_locked", fmt.Errorf("submission %s is locked", submissionID))
	}
	return nil
}

// LockAlreadyApplied reports whether locking the submission again would
// change nothing.
func LockAlreadyApplied(submission *types.InternshipSubmission) bool {
	return submission != nil && submission.Locked
}

// LockSubmission freezes the company-side fields of every assessment tied to
// the submission. Re-locking an already locked submission is a no-op, not an
// error.
func (s *assessmentService) LockSubmission(ctx context.Context, submissionID uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		submission, err := s.submissions.GetByID(ctx, tx, submissionID)
		if err != nil {
			return err
		}
		if submission == nil {
			return apierr.New(http.StatusNotFound, "submission_not_found", fmt.Errorf("submission %s does not exist", submissionID))
		}
		if LockAlreadyApplied(submission) {
			return nil
		}
		if err := s.submissions.Lock(ctx, tx, submissionID); err != nil {
			return err
		}
		locked, err := s.assessments.LockBySubmission(ctx, tx, submissionID)
		if err != nil {
			return err
		}
		s.log.Info("Submission locked", "submission_id", submissionID, "assessments_locked", locked)
		return nil
	})
}

// FinalizeByCoordinator is the administrative escape hatch: it sets the final
// level regardless of lock state and is the only path where finalLevel can
// diverge from both the curriculum and company levels.
func (s *assessmentService) FinalizeByCoordinator(ctx context.Context, assessmentID uuid.UUID, level int, comment string) (*types.RootAssessment, error) {
	if !ValidLevel(level) {
		return nil, apierr.New(http.StatusUnprocessableEntity, "invalid_level", fmt.Errorf("level %d outside %d..%d", level, MinLevel, MaxLevel))
	}
	var out *types.RootAssessment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		assessment, err := s.assessments.GetByID(ctx, tx, assessmentID)
		if err != nil {
			return err
		}
		if assessment == nil {
			return apierr.New(http.StatusNotFound, "assessment_not_found", fmt.Errorf("assessment %s does not exist", assessmentID))
		}
		if err := s.assessments.SetFinalLevel(ctx, tx, assessmentID, level, comment); err != nil {
			return err
		}
		out, err = s.assessments.GetByID(ctx, tx, assessmentID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
