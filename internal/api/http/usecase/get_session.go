package httpUsecase

import (
	"context"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"werewolf-service/domain"
)

type GetSessionUseCase interface {
	Execute(ctx context.Context, playerID string) (int, string, error)
}

type getSessionUseCase struct {
	sessions SessionReader
}

func NewGetSessionUseCase(sessions SessionReader) GetSessionUseCase {
	return &getSessionUseCase{
		sessions: sessions,
	}
}

// Execute resolves the room a returning player was last bound to.
func (u *getSessionUseCase) Execute(ctx context.Context, playerID string) (int, string, error) {
	roomID, err := u.sessions.GetSession(ctx, playerID)
	if err != nil {
		return http.StatusInternalServerError, "", err
	}
	if roomID == "" {
		return http.StatusNotFound, "", domain.ErrRoomNotFound
	}
	return fiber.StatusOK, roomID, nil
}
