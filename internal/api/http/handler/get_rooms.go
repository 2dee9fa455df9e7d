package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"werewolf-service/internal/api/game"
	httpUsecase "werewolf-service/internal/api/http/usecase"
)

type GetRoomsRequest struct {
}

type GetRoomsResponse struct {
	Rooms []game.RoomSummary `json:"rooms"`
}

type GetRoomsHandler struct {
	usecase httpUsecase.GetRoomsUseCase
}

func NewGetRoomsHandler(usecase httpUsecase.GetRoomsUseCase) *GetRoomsHandler {
	return &GetRoomsHandler{
		usecase: usecase,
	}
}

func (h *GetRoomsHandler) Handle(fbrCtx *fiber.Ctx, ctx context.Context, req *GetRoomsRequest) (*GetRoomsResponse, int, error) {
	status, rooms, err := h.usecase.Execute(ctx)
	if err != nil {
		return nil, status, err
	}

	return &GetRoomsResponse{Rooms: rooms}, status, nil
}
