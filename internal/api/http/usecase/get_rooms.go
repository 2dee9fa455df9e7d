package httpUsecase

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"werewolf-service/internal/api/game"
)

type GetRoomsUseCase interface {
	Execute(ctx context.Context) (int, []game.RoomSummary, error)
}

type getRoomsUseCase struct {
	registry RoomRegistry
}

func NewGetRoomsUseCase(registry RoomRegistry) GetRoomsUseCase {
	return &getRoomsUseCase{
		registry: registry,
	}
}

func (u *getRoomsUseCase) Execute(ctx context.Context) (int, []game.RoomSummary, error) {
	return fiber.StatusOK, u.registry.ListRooms(), nil
}
