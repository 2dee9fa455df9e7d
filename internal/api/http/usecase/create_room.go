package httpUsecase

import (
	"context"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"werewolf-service/domain"
)

var supportedLanguages = map[string]bool{"": true, "en": true, "zh": true}

type CreateRoomUseCase interface {
	Execute(ctx context.Context, language string) (int, string, error)
}

type createRoomUseCase struct {
	registry RoomRegistry
}

func NewCreateRoomUseCase(registry RoomRegistry) CreateRoomUseCase {
	return &createRoomUseCase{
		registry: registry,
	}
}

func (u *createRoomUseCase) Execute(ctx context.Context, language string) (int, string, error) {
	if !supportedLanguages[language] {
		return http.StatusBadRequest, "", domain.ErrInvalidInput
	}
	room := u.registry.CreateRoom(language)
	return fiber.StatusCreated, room.ID, nil
}
