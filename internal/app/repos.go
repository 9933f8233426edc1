package app

import (
	"gorm.io/gorm"

	"github.com/skilltrace/skilltrace-backend/internal/platform/logger"
	"github.com/skilltrace/skilltrace-backend/internal/repos"
)

type Repos struct {
	SkillNode            repos.SkillNodeRepo
	Outcome              repos.OutcomeRepo
	Course               repos.CourseRepo
	Student              repos.StudentRepo
	LeafObservation      repos.LeafObservationRepo
	RootAssessment       repos.RootAssessmentRepo
	InternshipSubmission repos.InternshipSubmissionRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		SkillNode:            repos.NewSkillNodeRepo(db, log),
		Outcome:              repos.NewOutcomeRepo(db, log),
		Course:               repos.NewCourseRepo(db, log),
		Student:              repos.NewStudentRepo(db, log),
		LeafObservation:      repos.NewLeafObservationRepo(db, log),
		RootAssessment:       repos.NewRootAssessmentRepo(db, log),
		InternshipSubmission: repos.NewInternshipSubmissionRepo(db, log),
	}
}
