package httpUsecase

import (
	"context"

	"werewolf-service/internal/api/game"
)

type RoomRegistry interface {
	CreateRoom(language string) *game.Room
	ListRooms() []game.RoomSummary
}

type SessionReader interface {
	GetSession(ctx context.Context, playerID string) (string, error)
}
