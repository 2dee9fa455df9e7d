package hub

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"werewolf-service/domain"
	"werewolf-service/internal/api/game"
)

type stubChatter struct{}

func (stubChatter) Generate(ctx context.Context, req game.ChatterRequest) (string, error) {
	return "", context.Canceled
}

func (stubChatter) Filler(language string) string { return "..." }

type recordingSessions struct {
	mu      sync.Mutex
	cleared []string
}

func (r *recordingSessions) ClearSession(ctx context.Context, playerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cleared = append(r.cleared, playerID)
	return nil
}

func (r *recordingSessions) clearedIDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.cleared...)
}

func newTestHub() (*Hub, *recordingSessions) {
	sessions := &recordingSessions{}
	return NewHub(stubChatter{}, sessions, "en"), sessions
}

func TestSendErrorIgnoresUnregisteredClient(t *testing.T) {
	h, _ := newTestHub()

	client := &domain.Client{
		ID:     "p1",
		RoomID: "gone",
		Send:   make(chan []byte, 1),
		Done:   make(chan struct{}),
	}
	close(client.Send)

	// A replaced connection already had its channel closed; the error
	// must be dropped, not pushed onto it.
	assert.NotPanics(t, func() {
		h.sendError(client, "Room not found")
	})
}

func TestSendErrorDeliversToRegisteredClient(t *testing.T) {
	h, _ := newTestHub()

	client := &domain.Client{
		ID:     "p1",
		RoomID: "r1",
		Send:   make(chan []byte, 1),
		Done:   make(chan struct{}),
	}
	h.roomsClients["r1"] = map[string]*domain.Client{"p1": client}

	h.sendError(client, "Room not found")

	require.Len(t, client.Send, 1)
	var msg OutboundMessage
	require.NoError(t, json.Unmarshal(<-client.Send, &msg))
	assert.Equal(t, "error", msg.Type)
	assert.Equal(t, "Room not found", msg.Content)
}

func TestKickClearsSessionBinding(t *testing.T) {
	h, sessions := newTestHub()

	room := h.Manager().CreateRoom("en")
	_, err := room.Join("host", "Alice")
	require.NoError(t, err)
	_, err = room.Join("guest", "Bob")
	require.NoError(t, err)

	content, err := json.Marshal(targetPayload{TargetID: "guest"})
	require.NoError(t, err)
	h.dispatch(
		&domain.Client{ID: "host", RoomID: room.ID},
		Message{Type: "kick_player", Content: content},
	)

	require.Eventually(t, func() bool {
		ids := sessions.clearedIDs()
		return len(ids) == 1 && ids[0] == "guest"
	}, time.Second, 10*time.Millisecond, "kicked player's session binding should be cleared")
}

func TestKickRejectedLeavesSessionAlone(t *testing.T) {
	h, sessions := newTestHub()

	room := h.Manager().CreateRoom("en")
	_, err := room.Join("host", "Alice")
	require.NoError(t, err)
	_, err = room.Join("guest", "Bob")
	require.NoError(t, err)

	content, err := json.Marshal(targetPayload{TargetID: "host"})
	require.NoError(t, err)
	h.dispatch(
		&domain.Client{ID: "guest", RoomID: room.ID},
		Message{Type: "kick_player", Content: content},
	)

	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, sessions.clearedIDs())
}
