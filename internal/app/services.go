package app

import (
	"gorm.io/gorm"

	"github.com/skilltrace/skilltrace-backend/internal/platform/logger"
	"github.com/skilltrace/skilltrace-backend/internal/realtime"
	"github.com/skilltrace/skilltrace-backend/internal/services"
)

type Services struct {
	Import     services.ImportService
	Assessment services.AssessmentService
	Classifier services.ClassifierService
}

func wireServices(db *gorm.DB, log *logger.Logger, reposet Repos, hub *realtime.Hub) Services {
	log.Info("Wiring services...")

	notifier := services.NewImportNotifier(hub)

	importService := services.NewImportService(
		db, log,
		reposet.Course,
		reposet.Outcome,
		reposet.Student,
		reposet.SkillNode,
		reposet.LeafObservation,
		reposet.RootAssessment,
		notifier,
	)
	assessmentService := services.NewAssessmentService(db, log, reposet.RootAssessment, reposet.InternshipSubmission)
	classifierService := services.NewClassifierService(
		db, log,
		reposet.SkillNode,
		reposet.Outcome,
		reposet.LeafObservation,
		reposet.Student,
		reposet.RootAssessment,
	)

	return Services{
		Import:     importService,
		Assessment: assessmentService,
		Classifier: classifierService,
	}
}
