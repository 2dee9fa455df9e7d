package game

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"werewolf-service/domain"
)

// RoomSummary is the public listing entry for a room.
type RoomSummary struct {
	ID          string       `json:"id"`
	Phase       domain.Phase `json:"phase"`
	PlayerCount int          `json:"player_count"`
	Language    string       `json:"language"`
}

// RoomManager owns every active room. It is the single access point to the
// room map; all per-room mutation goes through the Room's own lock.
type RoomManager struct {
	rooms map[string]*Room
	mu    sync.RWMutex

	notifier        Broadcaster
	chatter         Chatter
	defaultLanguage string
}

func NewRoomManager(notifier Broadcaster, chatter Chatter, defaultLanguage string) *RoomManager {
	return &RoomManager{
		rooms:           make(map[string]*Room),
		notifier:        notifier,
		chatter:         chatter,
		defaultLanguage: defaultLanguage,
	}
}

// CreateRoom allocates a fresh LOBBY room under an opaque short code.
func (rm *RoomManager) CreateRoom(language string) *Room {
	if language == "" {
		language = rm.defaultLanguage
	}
	roomID := uuid.NewString()[:6]
	room := NewRoom(roomID, language, rm.notifier, rm.chatter)

	rm.mu.Lock()
	defer rm.mu.Unlock()
	rm.rooms[roomID] = room
	zap.L().Info("room created", zap.String("room_id", roomID), zap.String("language", language))
	return room
}

// GetRoom returns the room for the given code, or nil.
func (rm *RoomManager) GetRoom(roomID string) *Room {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	return rm.rooms[roomID]
}

// DeleteRoom tears a room down and removes it from the registry.
func (rm *RoomManager) DeleteRoom(roomID string) {
	rm.mu.Lock()
	room := rm.rooms[roomID]
	delete(rm.rooms, roomID)
	rm.mu.Unlock()

	if room != nil {
		room.Close()
		zap.L().Info("room deleted", zap.String("room_id", roomID))
	}
}

// ReleaseIfIdle reclaims a room once its last connection is gone, but only
// when no match is in flight: mid-game rooms are kept so dropped players can
// resume.
func (rm *RoomManager) ReleaseIfIdle(roomID string) {
	rm.mu.RLock()
	room := rm.rooms[roomID]
	rm.mu.RUnlock()
	if room == nil {
		return
	}
	if phase := room.Phase(); phase == domain.PhaseLobby || phase == domain.PhaseGameOver {
		rm.DeleteRoom(roomID)
	}
}

// ListRooms returns a snapshot of all rooms for the lobby listing.
func (rm *RoomManager) ListRooms() []RoomSummary {
	rm.mu.RLock()
	defer rm.mu.RUnlock()

	out := make([]RoomSummary, 0, len(rm.rooms))
	for _, room := range rm.rooms {
		out = append(out, room.Summary())
	}
	return out
}
