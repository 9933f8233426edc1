package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/skilltrace/skilltrace-backend/internal/realtime"
	"github.com/skilltrace/skilltrace-backend/internal/services"
)

type EventsHandler struct {
	hub *realtime.Hub
}

func NewEventsHandler(hub *realtime.Hub) *EventsHandler {
	return &EventsHandler{hub: hub}
}

// Stream holds the connection open and relays import progress for admin UIs.
func (h *EventsHandler) Stream(c *gin.Context) {
	client := h.hub.NewClient()
	h.hub.Subscribe(client, services.ImportChannel)
	defer h.hub.CloseClient(client)
	h.hub.ServeHTTP(c.Writer, c.Request, client)
}
