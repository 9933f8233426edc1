package services

import (
	"github.com/google/uuid"

	"github.com/skilltrace/skilltrace-backend/internal/realtime"
)

// ImportChannel is the realtime channel admin clients subscribe to for batch
// import progress.
const ImportChannel = "imports"

type ImportNotifier interface {
	BatchStarted(courseID, outcomeID uuid.UUID, total int)
	RowProcessed(courseID uuid.UUID, studentCode, status string)
	BatchFinished(courseID uuid.UUID, report *BatchReport)
}

type hubImportNotifier struct {
	hub *realtime.Hub
}

func NewImportNotifier(hub *realtime.Hub) ImportNotifier {
	return &hubImportNotifier{hub: hub}
}

func (n *hubImportNotifier) BatchStarted(courseID, outcomeID uuid.UUID, total int) {
	n.hub.Broadcast(realtime.Message{
		Channel: ImportChannel,
		Event:   realtime.EventImportStarted,
		Data: map[string]any{
			"course_id":  courseID,
			"outcome_id": outcomeID,
			"total":      total,
		},
	})
}

func (n *hubImportNotifier) RowProcessed(courseID uuid.UUID, studentCode, status string) {
	n.hub.Broadcast(realtime.Message{
		Channel: ImportChannel,
		Event:   realtime.EventImportRow,
		Data: map[string]any{
			"course_id":    courseID,
			"student_code": studentCode,
			"status":       status,
		},
	})
}

func (n *hubImportNotifier) BatchFinished(courseID uuid.UUID, report *BatchReport) {
	n.hub.Broadcast(realtime.Message{
		Channel: ImportChannel,
		Event:   realtime.EventImportFinished,
		Data: map[string]any{
			"course_id": courseID,
			"report":    report,
		},
	})
}

// NoopImportNotifier keeps the importer usable without a hub, e.g. in tests.
type NoopImportNotifier struct{}

func (NoopImportNotifier) BatchStarted(uuid.UUID, uuid.UUID, int) {}
func (NoopImportNotifier) RowProcessed(uuid.UUID, string, string) {}
func (NoopImportNotifier) BatchFinished(uuid.UUID, *BatchReport)  {}
