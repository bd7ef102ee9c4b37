package hub

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(id string, userID uuid.UUID) *Client {
	return &Client{
		ID:     id,
		UserID: userID,
		Tables: make(map[string]bool),
		Send:   make(chan []byte, 256),
	}
}

func receiveEvent(t *testing.T, ch chan []byte) Event {
	t.Helper()
	select {
	case data := <-ch:
		var event Event
		require.NoError(t, json.Unmarshal(data, &event))
		return event
	case <-time.After(500 * time.Millisecond):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func assertNoEvent(t *testing.T, ch chan []byte) {
	t.Helper()
	select {
	case data := <-ch:
		t.Fatalf("expected no event, got %s", data)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestNewHub(t *testing.T) {
	h := NewHub()

	assert.NotNil(t, h)
	assert.NotNil(t, h.clients)
	assert.NotNil(t, h.register)
	assert.NotNil(t, h.unregister)
	assert.NotNil(t, h.broadcast)
}

func TestHub_RegisterAndUnregister(t *testing.T) {
	h := NewHub()
	go h.Run()

	client := newTestClient("client-1", uuid.New())

	h.Register(client)
	time.Sleep(10 * time.Millisecond)

	h.mu.RLock()
	_, exists := h.clients[client.ID]
	h.mu.RUnlock()
	assert.True(t, exists)

	h.Unregister(client)
	time.Sleep(10 * time.Millisecond)

	h.mu.RLock()
	_, exists = h.clients[client.ID]
	h.mu.RUnlock()
	assert.False(t, exists)

	// Send channel is closed on unregister so the SSE loop terminates.
	_, ok := <-client.Send
	assert.False(t, ok)
}

func TestHub_BroadcastProfileChange_ToSubscribedClient(t *testing.T) {
	h := NewHub()
	go h.Run()

	client := newTestClient("client-1", uuid.New())
	h.Register(client)
	time.Sleep(10 * time.Millisecond)

	h.SubscribeTable(client.ID, TableProfiles)

	profileID := uuid.New()
	changedBy := uuid.New()
	h.BroadcastProfileChange("update", profileID, changedBy)

	event := receiveEvent(t, client.Send)
	assert.Equal(t, "profiles_update", event.Type)

	data, ok := event.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, profileID.String(), data["profile_id"])
	assert.Equal(t, changedBy.String(), data["changed_by"])
}

func TestHub_BroadcastProfileChange_NotToUnsubscribedClient(t *testing.T) {
	h := NewHub()
	go h.Run()

	client := newTestClient("client-1", uuid.New())
	h.Register(client)
	time.Sleep(10 * time.Millisecond)

	h.BroadcastProfileChange("insert", uuid.New(), uuid.New())

	assertNoEvent(t, client.Send)
}

func TestHub_BroadcastProfileChange_DuplicateDeliveriesAreIndependent(t *testing.T) {
	h := NewHub()
	go h.Run()

	client := newTestClient("client-1", uuid.New())
	h.Register(client)
	time.Sleep(10 * time.Millisecond)
	h.SubscribeTable(client.ID, TableProfiles)

	profileID := uuid.New()
	h.BroadcastProfileChange("update", profileID, uuid.New())
	h.BroadcastProfileChange("update", profileID, uuid.New())

	first := receiveEvent(t, client.Send)
	second := receiveEvent(t, client.Send)
	assert.Equal(t, "profiles_update", first.Type)
	assert.Equal(t, "profiles_update", second.Type)
}

func TestHub_BroadcastProfileChange_FullBufferDropped(t *testing.T) {
	h := NewHub()
	go h.Run()

	client := &Client{
		ID:     "client-1",
		UserID: uuid.New(),
		Tables: map[string]bool{TableProfiles: true},
		Send:   make(chan []byte, 1),
	}
	h.Register(client)
	time.Sleep(10 * time.Millisecond)

	// Second event overflows the one-slot buffer and must be dropped
	// without blocking the hub loop.
	h.BroadcastProfileChange("update", uuid.New(), uuid.New())
	h.BroadcastProfileChange("update", uuid.New(), uuid.New())
	time.Sleep(20 * time.Millisecond)

	assert.Len(t, client.Send, 1)

	// The hub is still responsive afterwards.
	other := newTestClient("client-2", uuid.New())
	h.Register(other)
	time.Sleep(10 * time.Millisecond)
	h.SubscribeTable(other.ID, TableProfiles)
	h.BroadcastProfileChange("delete", uuid.New(), uuid.New())
	event := receiveEvent(t, other.Send)
	assert.Equal(t, "profiles_delete", event.Type)
}

func TestHub_BroadcastToUser(t *testing.T) {
	h := NewHub()
	go h.Run()

	userID := uuid.New()
	mine := newTestClient("client-1", userID)
	theirs := newTestClient("client-2", uuid.New())

	h.Register(mine)
	h.Register(theirs)
	time.Sleep(10 * time.Millisecond)

	h.BroadcastToUser(userID, "profile_updated", ProfileChangeData{ProfileID: userID})

	event := receiveEvent(t, mine.Send)
	assert.Equal(t, "profile_updated", event.Type)

	assertNoEvent(t, theirs.Send)
}

func TestHub_BroadcastToUser_ReachesAllSessionsOfUser(t *testing.T) {
	h := NewHub()
	go h.Run()

	userID := uuid.New()
	first := newTestClient("client-1", userID)
	second := newTestClient("client-2", userID)

	h.Register(first)
	h.Register(second)
	time.Sleep(10 * time.Millisecond)

	h.BroadcastToUser(userID, "profile_updated", nil)

	assert.Equal(t, "profile_updated", receiveEvent(t, first.Send).Type)
	assert.Equal(t, "profile_updated", receiveEvent(t, second.Send).Type)
}

func TestHub_SubscribeTable_NonexistentClient(t *testing.T) {
	h := NewHub()
	go h.Run()

	// Must not panic.
	h.SubscribeTable("missing", TableProfiles)
	h.UnsubscribeTable("missing", TableProfiles)
}

func TestHub_UnsubscribeStopsDelivery(t *testing.T) {
	h := NewHub()
	go h.Run()

	client := newTestClient("client-1", uuid.New())
	h.Register(client)
	time.Sleep(10 * time.Millisecond)

	h.SubscribeTable(client.ID, TableProfiles)
	h.UnsubscribeTable(client.ID, TableProfiles)

	h.BroadcastProfileChange("update", uuid.New(), uuid.New())
	assertNoEvent(t, client.Send)
}
