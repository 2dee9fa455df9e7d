package wsUsecase

import (
	"context"
	"errors"

	"github.com/gofiber/contrib/websocket"
	"go.uber.org/zap"

	"werewolf-service/domain"
)

type roomConnectUseCase struct {
	hub      Hub
	registry Registry
	sessions SessionBinder
}

func NewRoomConnectUseCase(hub Hub, registry Registry, sessions SessionBinder) RoomConnectUseCase {
	return &roomConnectUseCase{
		hub:      hub,
		registry: registry,
		sessions: sessions,
	}
}

type connectedInfo struct {
	PlayerID    string `json:"player_id"`
	RoomID      string `json:"room_id"`
	IsSpectator bool   `json:"is_spectator"`
}

// Execute joins the player into the room and hands the connection to the hub.
// It blocks until the hub releases the client, keeping the fiber websocket
// handler alive for the lifetime of the connection.
func (u *roomConnectUseCase) Execute(c *websocket.Conn, ctx context.Context, roomID, playerID, name string) {
	sendErrorAndClose := func(msg string) {
		errorMessage := domain.WebSocketErrorMessage{
			Type:    "error",
			Message: msg,
		}
		if err := c.WriteJSON(errorMessage); err != nil {
			zap.L().Debug("failed to send error to client", zap.Error(err))
		}
		c.Close()
	}

	room := u.registry.GetRoom(roomID)
	if room == nil {
		sendErrorAndClose(domain.ErrRoomNotFound.Error())
		return
	}

	player, err := room.Join(playerID, name)
	if err != nil {
		if !errors.Is(err, domain.ErrRoomFull) {
			zap.L().Warn("join failed", zap.String("room_id", roomID), zap.Error(err))
		}
		sendErrorAndClose(err.Error())
		return
	}

	if err := u.sessions.BindSession(ctx, playerID, roomID); err != nil {
		// A lost binding only affects re-routing after a restart.
		zap.L().Warn("failed to bind session", zap.String("player_id", playerID), zap.Error(err))
	}

	info := connectedInfo{
		PlayerID:    player.ID,
		RoomID:      roomID,
		IsSpectator: player.IsSpectator,
	}
	if err := c.WriteJSON(map[string]interface{}{"type": "connected_info", "content": info}); err != nil {
		zap.L().Debug("failed to send connected_info", zap.Error(err))
		c.Close()
		return
	}

	client := &domain.Client{
		ID:     playerID,
		RoomID: roomID,
		Conn:   c,
		Send:   make(chan []byte, 256),
		Done:   make(chan struct{}),
	}
	u.hub.RegisterClient(client)

	zap.L().Info("player connected",
		zap.String("room_id", roomID),
		zap.String("player_id", playerID),
		zap.Bool("spectator", player.IsSpectator))

	<-client.Done
}
