package wsHandler

import (
	"context"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"werewolf-service/domain"
	wsUsecase "werewolf-service/internal/api/ws/usecase"
)

// WebSocketRoomHandler upgrades the connection and resolves the player
// identity before handing off to the connect use case.
type WebSocketRoomHandler struct {
	usecase wsUsecase.RoomConnectUseCase
}

type WebSocketRoomRequest struct {
}

func NewWebSocketRoomHandler(usecase wsUsecase.RoomConnectUseCase) *WebSocketRoomHandler {
	return &WebSocketRoomHandler{
		usecase: usecase,
	}
}

func (h *WebSocketRoomHandler) HandleWS(c *websocket.Conn, ctx context.Context, req *WebSocketRoomRequest) {
	roomID := c.Params("room_id")
	if roomID == "" {
		errorMessage := domain.WebSocketErrorMessage{
			Type:    "error",
			Message: "room id is required",
		}
		if err := c.WriteJSON(errorMessage); err != nil {
			zap.L().Debug("failed to send error to client", zap.Error(err))
		}
		c.Close()
		return
	}

	// The player id is the stable identity used for reconnects. First-time
	// clients connect without one and get a fresh id assigned.
	playerID := c.Query("player_id")
	if playerID == "" {
		playerID = uuid.NewString()
	}
	name := c.Query("name")

	h.usecase.Execute(c, ctx, roomID, playerID, name)
}
