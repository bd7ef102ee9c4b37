package handlers

import (
	"github.com/avivgl/schoolhub-api/internal/hub"
	"github.com/avivgl/schoolhub-api/internal/middleware"
	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
)

type EventsHandler struct {
	hub HubInterface
}

func NewEventsHandler(h HubInterface) *EventsHandler {
	return &EventsHandler{hub: h}
}

// Connect opens the own-profile watch stream. Every client of a user
// receives targeted events (approval granted, role changed) without any
// table subscription.
func (h *EventsHandler) Connect(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	client := &hub.Client{
		ID:     uuid.New().String(),
		UserID: userID,
		Tables: make(map[string]bool),
		Send:   make(chan []byte, 256),
	}

	h.serve(c, client)
}

// AdminConnect opens the change-feed stream for the profiles table, already
// subscribed. The admin list view refreshes off these events.
func (h *EventsHandler) AdminConnect(c *drift.Context) {
	userID := middleware.GetUserID(c)
	if userID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	client := &hub.Client{
		ID:     uuid.New().String(),
		UserID: userID,
		Tables: map[string]bool{hub.TableProfiles: true},
		Send:   make(chan []byte, 256),
	}

	h.serve(c, client)
}

// Subscribe adds a table subscription to an already connected client.
func (h *EventsHandler) Subscribe(c *drift.Context) {
	if !h.validTableRequest(c) {
		return
	}

	h.hub.SubscribeTable(c.Param("clientId"), c.Param("table"))
	_ = c.JSON(200, map[string]string{"message": "subscribed to " + c.Param("table")})
}

func (h *EventsHandler) Unsubscribe(c *drift.Context) {
	if !h.validTableRequest(c) {
		return
	}

	h.hub.UnsubscribeTable(c.Param("clientId"), c.Param("table"))
	_ = c.JSON(200, map[string]string{"message": "unsubscribed from " + c.Param("table")})
}

func (h *EventsHandler) validTableRequest(c *drift.Context) bool {
	if c.Param("clientId") == "" {
		c.BadRequest("client_id is required")
		return false
	}
	if c.Param("table") != hub.TableProfiles {
		c.BadRequest("unknown table: " + c.Param("table"))
		return false
	}
	return true
}

func (h *EventsHandler) serve(c *drift.Context, client *hub.Client) {
	sseCtx := c.SSE()

	h.hub.Register(client)
	defer h.hub.Unregister(client)

	if err := sseCtx.SendJSON(map[string]string{
		"type":      "connected",
		"client_id": client.ID,
	}, "system", ""); err != nil {
		return
	}

	done := make(chan struct{})
	go func() {
		<-c.Request.Context().Done()
		close(done)
	}()

	for {
		select {
		case msg, ok := <-client.Send:
			if !ok {
				return
			}
			if err := sseCtx.Send(string(msg), "message", ""); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
