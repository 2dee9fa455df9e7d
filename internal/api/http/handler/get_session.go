package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"

	httpUsecase "werewolf-service/internal/api/http/usecase"
)

type GetSessionRequest struct {
	PlayerID string `params:"player_id" validate:"required"`
}

type GetSessionResponse struct {
	RoomID string `json:"room_id"`
}

type GetSessionHandler struct {
	usecase httpUsecase.GetSessionUseCase
}

func NewGetSessionHandler(usecase httpUsecase.GetSessionUseCase) *GetSessionHandler {
	return &GetSessionHandler{
		usecase: usecase,
	}
}

func (h *GetSessionHandler) Handle(fbrCtx *fiber.Ctx, ctx context.Context, req *GetSessionRequest) (*GetSessionResponse, int, error) {
	status, roomID, err := h.usecase.Execute(ctx, req.PlayerID)
	if err != nil {
		return nil, status, err
	}

	return &GetSessionResponse{RoomID: roomID}, status, nil
}
