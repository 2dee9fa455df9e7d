package wsUsecase

import (
	"context"

	"github.com/gofiber/contrib/websocket"

	"werewolf-service/domain"
	"werewolf-service/internal/api/game"
)

type RoomConnectUseCase interface {
	Execute(c *websocket.Conn, ctx context.Context, roomID, playerID, name string)
}

type Hub interface {
	RegisterClient(client *domain.Client)
	UnregisterClient(client *domain.Client)
}

type Registry interface {
	GetRoom(roomID string) *game.Room
}

type SessionBinder interface {
	BindSession(ctx context.Context, playerID, roomID string) error
}
