// Package hub fans change-feed events out to connected SSE clients. Clients
// subscribe by table name; row-level mutations on watched tables and
// targeted per-user events (own-profile watch) are pushed through a bounded
// per-client channel.
package hub

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"
)

// TableProfiles is the only table exposed on the change feed.
const TableProfiles = "profiles"

type Event struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// ProfileChangeData describes one row-level mutation on the profiles table.
type ProfileChangeData struct {
	ProfileID uuid.UUID `json:"profile_id"`
	ChangedBy uuid.UUID `json:"changed_by"`
}

type Client struct {
	ID     string
	UserID uuid.UUID
	Tables map[string]bool
	Send   chan []byte
}

type Hub struct {
	clients    map[string]*Client
	register   chan *Client
	unregister chan *Client
	broadcast  chan *TableMessage
	mu         sync.RWMutex
}

type TableMessage struct {
	Table string
	Event Event
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *TableMessage, 256),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ID] = client
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.ID]; ok {
				delete(h.clients, client.ID)
				close(client.Send)
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.RLock()
			data, _ := json.Marshal(msg.Event)
			for _, client := range h.clients {
				if client.Tables[msg.Table] {
					select {
					case client.Send <- data:
					default:
						// Client buffer full, skip
					}
				}
			}
			h.mu.RUnlock()
		}
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

func (h *Hub) SubscribeTable(clientID, table string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if client, ok := h.clients[clientID]; ok {
		client.Tables[table] = true
	}
}

func (h *Hub) UnsubscribeTable(clientID, table string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if client, ok := h.clients[clientID]; ok {
		delete(client.Tables, table)
	}
}

// BroadcastProfileChange publishes a row-level event for the profiles
// table. op is one of "insert", "update" or "delete"; the event type is
// "<table>_<op>" so clients can dispatch without parsing the payload.
func (h *Hub) BroadcastProfileChange(op string, profileID, changedBy uuid.UUID) {
	h.broadcast <- &TableMessage{
		Table: TableProfiles,
		Event: Event{
			Type: TableProfiles + "_" + op,
			Data: ProfileChangeData{
				ProfileID: profileID,
				ChangedBy: changedBy,
			},
		},
	}
}

// BroadcastToUser pushes an event to every connected client belonging to one
// user, regardless of table subscriptions. Used for the own-profile watch so
// an approval made in another session lands without re-login.
func (h *Hub) BroadcastToUser(userID uuid.UUID, eventType string, payload any) {
	data, _ := json.Marshal(Event{Type: eventType, Data: payload})

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, client := range h.clients {
		if client.UserID == userID {
			select {
			case client.Send <- data:
			default:
			}
		}
	}
}
