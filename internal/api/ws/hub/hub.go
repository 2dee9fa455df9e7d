package hub

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/fasthttp/websocket"
	"go.uber.org/zap"

	"werewolf-service/domain"
	"werewolf-service/internal/api/game"
)

// Message is the inbound client frame.
type Message struct {
	Type    string          `json:"type"`
	Content json.RawMessage `json:"content,omitempty"`
}

// OutboundMessage is the frame pushed to clients.
type OutboundMessage struct {
	Type    string      `json:"type"`
	Content interface{} `json:"content,omitempty"`
}

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// SessionStore is the subset of the session manager the hub needs.
type SessionStore interface {
	ClearSession(ctx context.Context, playerID string) error
}

// Hub tracks every websocket connection per room and bridges the transport
// to the room engine. It is the engine's Broadcast Boundary: after any
// mutating event or tick the full GameState snapshot goes to every
// connection in the room.
type Hub struct {
	roomsClients map[string]map[string]*domain.Client

	register   chan *domain.Client
	unregister chan *domain.Client

	mutex    sync.RWMutex
	manager  *game.RoomManager
	sessions SessionStore
}

func NewHub(chatter game.Chatter, sessions SessionStore, defaultLanguage string) *Hub {
	h := &Hub{
		roomsClients: make(map[string]map[string]*domain.Client),
		register:     make(chan *domain.Client),
		unregister:   make(chan *domain.Client),
		sessions:     sessions,
	}
	h.manager = game.NewRoomManager(h, chatter, defaultLanguage)
	return h
}

// Manager exposes the room registry to the HTTP and WS use cases.
func (h *Hub) Manager() *game.RoomManager {
	return h.manager
}

func (h *Hub) Run(ctx context.Context) {
	go func() {
		for {
			select {
			case client := <-h.register:
				h.registerClient(client)
				go h.readPump(client)
				go h.writePump(client)
			case client := <-h.unregister:
				h.unregisterClient(client)
			case <-ctx.Done():
				return
			}
		}
	}()
}

func (h *Hub) RegisterClient(client *domain.Client) {
	h.register <- client
}

func (h *Hub) UnregisterClient(client *domain.Client) {
	h.unregister <- client
}

// registerClient binds the connection, replacing any previous connection of
// the same player id (reconnect). The new connection gets the current
// snapshot right away; it registered after the join broadcast fired.
func (h *Hub) registerClient(client *domain.Client) {
	h.mutex.Lock()

	roomClients, ok := h.roomsClients[client.RoomID]
	if !ok {
		roomClients = make(map[string]*domain.Client)
		h.roomsClients[client.RoomID] = roomClients
	}

	if existing, ok := roomClients[client.ID]; ok {
		zap.L().Info("replacing stale connection",
			zap.String("room_id", client.RoomID), zap.String("player_id", client.ID))
		existing.Conn.Close()
		close(existing.Send)
		close(existing.Done)
	}
	roomClients[client.ID] = client
	h.mutex.Unlock()

	if room := h.manager.GetRoom(client.RoomID); room != nil {
		room.PushState()
	}
}

// unregisterClient drops a connection. Only the currently registered
// instance counts: a replaced connection's late unregister is a no-op.
func (h *Hub) unregisterClient(client *domain.Client) {
	h.mutex.Lock()
	roomClients, ok := h.roomsClients[client.RoomID]
	if !ok || roomClients[client.ID] != client {
		h.mutex.Unlock()
		return
	}
	delete(roomClients, client.ID)
	close(client.Send)
	close(client.Done)

	empty := len(roomClients) == 0
	if empty {
		delete(h.roomsClients, client.RoomID)
	}
	h.mutex.Unlock()

	if room := h.manager.GetRoom(client.RoomID); room != nil {
		room.Disconnect(client.ID)
	}
	if empty {
		h.manager.ReleaseIfIdle(client.RoomID)
	}
	zap.L().Info("client unregistered",
		zap.String("room_id", client.RoomID), zap.String("player_id", client.ID))
}

// readPump decodes inbound frames and hands them to the room engine. Every
// event serializes on the room's own lock; rejected actions are dropped here
// with a debug log and produce no broadcast.
func (h *Hub) readPump(client *domain.Client) {
	defer func() {
		h.unregister <- client
		client.Conn.Close()
	}()

	client.Conn.SetReadLimit(maxMessageSize)
	client.Conn.SetReadDeadline(time.Now().Add(pongWait))
	client.Conn.SetPongHandler(func(string) error {
		client.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, payload, err := client.Conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				zap.L().Debug("client read error", zap.String("player_id", client.ID), zap.Error(err))
			}
			return
		}

		var msg Message
		if err := json.Unmarshal(payload, &msg); err != nil {
			zap.L().Debug("malformed frame", zap.String("player_id", client.ID), zap.Error(err))
			continue
		}
		h.dispatch(client, msg)
	}
}

type targetPayload struct {
	TargetID string `json:"target_id"`
}

type handoverPayload struct {
	TargetID *string `json:"target_id"`
}

type nominatePayload struct {
	Run bool `json:"run"`
}

type nightActionPayload struct {
	Action         string `json:"action"`
	TargetID       string `json:"target_id"`
	SecondTargetID string `json:"second_target_id,omitempty"`
}

type chatPayload struct {
	Text string `json:"text"`
}

func (h *Hub) dispatch(client *domain.Client, msg Message) {
	room := h.manager.GetRoom(client.RoomID)
	if room == nil {
		h.sendError(client, "Room not found")
		return
	}

	var err error
	switch msg.Type {
	case "start_game":
		err = room.StartGame(client.ID)
	case "add_bot":
		err = room.AddBot(client.ID)
	case "remove_bot":
		err = room.RemoveBot(client.ID)
	case "toggle_participation":
		err = room.ToggleParticipation(client.ID)
	case "update_role_counts":
		var counts map[domain.Role]int
		if err = json.Unmarshal(msg.Content, &counts); err == nil {
			err = room.UpdateRoleCounts(client.ID, counts)
		}
	case "kick_player":
		var p targetPayload
		if err = json.Unmarshal(msg.Content, &p); err == nil {
			if err = room.KickPlayer(client.ID, p.TargetID); err == nil {
				go h.clearSession(p.TargetID)
			}
		}
	case "interaction":
		var p targetPayload
		if err = json.Unmarshal(msg.Content, &p); err == nil {
			err = room.CastVote(client.ID, p.TargetID)
		}
	case "nominate":
		var p nominatePayload
		if err = json.Unmarshal(msg.Content, &p); err == nil {
			err = room.Nominate(client.ID, p.Run)
		}
	case "night_action":
		var p nightActionPayload
		if err = json.Unmarshal(msg.Content, &p); err == nil {
			err = room.NightAction(client.ID, p.Action, p.TargetID, p.SecondTargetID)
		}
	case "shoot":
		var p targetPayload
		if err = json.Unmarshal(msg.Content, &p); err == nil {
			err = room.Shoot(client.ID, p.TargetID)
		}
	case "sheriff_handover":
		var p handoverPayload
		if err = json.Unmarshal(msg.Content, &p); err == nil {
			err = room.SheriffHandover(client.ID, p.TargetID)
		}
	case "send_message":
		var p chatPayload
		if err = json.Unmarshal(msg.Content, &p); err == nil {
			err = room.SendMessage(client.ID, p.Text)
		}
	default:
		zap.L().Debug("unknown message type", zap.String("type", msg.Type))
		return
	}

	if err != nil {
		zap.L().Debug("action rejected",
			zap.String("room_id", client.RoomID),
			zap.String("player_id", client.ID),
			zap.String("type", msg.Type),
			zap.Error(err))
	}
}

func (h *Hub) writePump(client *domain.Client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		client.Conn.Close()
	}()

	for {
		select {
		case msg, ok := <-client.Send:
			if !ok {
				client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			client.WriteLock.Lock()
			client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			err := client.Conn.WriteMessage(websocket.TextMessage, msg)
			client.WriteLock.Unlock()
			if err != nil {
				zap.L().Debug("websocket write error", zap.String("player_id", client.ID), zap.Error(err))
				return
			}
		case <-ticker.C:
			client.WriteLock.Lock()
			client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			err := client.Conn.WriteMessage(websocket.PingMessage, nil)
			client.WriteLock.Unlock()
			if err != nil {
				return
			}
		case <-client.Done:
			return
		}
	}
}

// --- game.Broadcaster -------------------------------------------------------

// BroadcastState pushes the full snapshot to every connection in the room.
// The engine calls this inside its lock, so the marshal happens here,
// synchronously, before the bytes fan out.
func (h *Hub) BroadcastState(roomID string, state *domain.GameState) {
	payload, err := json.Marshal(&OutboundMessage{Type: "game_state_update", Content: state})
	if err != nil {
		zap.L().Error("failed to marshal state", zap.String("room_id", roomID), zap.Error(err))
		return
	}

	h.mutex.RLock()
	defer h.mutex.RUnlock()
	for _, client := range h.roomsClients[roomID] {
		select {
		case client.Send <- payload:
		default:
			zap.L().Warn("send channel full, dropping snapshot", zap.String("player_id", client.ID))
		}
	}
}

// SendToPlayer delivers a private frame, e.g. a seer inspection result.
func (h *Hub) SendToPlayer(roomID, playerID string, msgType string, content interface{}) {
	payload, err := json.Marshal(&OutboundMessage{Type: msgType, Content: content})
	if err != nil {
		zap.L().Error("failed to marshal private message", zap.Error(err))
		return
	}

	h.mutex.RLock()
	defer h.mutex.RUnlock()
	client, ok := h.roomsClients[roomID][playerID]
	if !ok {
		return
	}
	select {
	case client.Send <- payload:
	default:
		zap.L().Warn("send channel full, dropping message", zap.String("player_id", playerID))
	}
}

// sendError only targets a still-registered client: a reconnect may have
// replaced it and closed its channel.
func (h *Hub) sendError(client *domain.Client, message string) {
	payload, err := json.Marshal(&OutboundMessage{Type: "error", Content: message})
	if err != nil {
		return
	}

	h.mutex.RLock()
	defer h.mutex.RUnlock()
	if h.roomsClients[client.RoomID][client.ID] != client {
		return
	}
	select {
	case client.Send <- payload:
	default:
	}
}

// clearSession drops the kicked player's room binding.
func (h *Hub) clearSession(playerID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := h.sessions.ClearSession(ctx, playerID); err != nil {
		zap.L().Warn("failed to clear session", zap.String("player_id", playerID), zap.Error(err))
	}
}
