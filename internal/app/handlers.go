package app

import (
	"github.com/skilltrace/skilltrace-backend/internal/handlers"
	"github.com/skilltrace/skilltrace-backend/internal/platform/logger"
	"github.com/skilltrace/skilltrace-backend/internal/realtime"
)

type Handlers struct {
	Healthcheck *handlers.HealthcheckHandler
	Import      *handlers.ImportHandler
	Assessment  *handlers.AssessmentHandler
	Report      *handlers.ReportHandler
	Events      *handlers.EventsHandler
}

func wireHandlers(log *logger.Logger, serviceset Services, hub *realtime.Hub) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Healthcheck: handlers.NewHealthcheckHandler(),
		Import:      handlers.NewImportHandler(serviceset.Import),
		Assessment:  handlers.NewAssessmentHandler(serviceset.Assessment),
		Report:      handlers.NewReportHandler(serviceset.Classifier),
		Events:      handlers.NewEventsHandler(hub),
	}
}
