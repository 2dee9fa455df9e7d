package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"

	httpUsecase "werewolf-service/internal/api/http/usecase"
)

type CreateRoomRequest struct {
	Language string `json:"language" validate:"omitempty,oneof=en zh"`
}

type CreateRoomResponse struct {
	RoomID string `json:"room_id"`
}

type CreateRoomHandler struct {
	usecase httpUsecase.CreateRoomUseCase
}

func NewCreateRoomHandler(usecase httpUsecase.CreateRoomUseCase) *CreateRoomHandler {
	return &CreateRoomHandler{
		usecase: usecase,
	}
}

func (h *CreateRoomHandler) Handle(fbrCtx *fiber.Ctx, ctx context.Context, req *CreateRoomRequest) (*CreateRoomResponse, int, error) {
	status, roomID, err := h.usecase.Execute(ctx, req.Language)
	if err != nil {
		return nil, status, err
	}

	return &CreateRoomResponse{RoomID: roomID}, status, nil
}
