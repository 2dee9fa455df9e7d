package bootstrap

import (
	httpHandler "werewolf-service/internal/api/http/handler"
	httpUsecase "werewolf-service/internal/api/http/usecase"
	wsHandler "werewolf-service/internal/api/ws/handler"
	wsUsecase "werewolf-service/internal/api/ws/usecase"

	"werewolf-service/infra/session"
	"werewolf-service/internal/api/ws/hub"
)

func SetupHTTPHandlers(wsHub *hub.Hub, sessions *session.SessionManager) map[string]interface{} {
	createRoomUseCase := httpUsecase.NewCreateRoomUseCase(wsHub.Manager())
	createRoomHandler := httpHandler.NewCreateRoomHandler(createRoomUseCase)

	getRoomsUseCase := httpUsecase.NewGetRoomsUseCase(wsHub.Manager())
	getRoomsHandler := httpHandler.NewGetRoomsHandler(getRoomsUseCase)

	getSessionUseCase := httpUsecase.NewGetSessionUseCase(sessions)
	getSessionHandler := httpHandler.NewGetSessionHandler(getSessionUseCase)

	return map[string]interface{}{
		"create-room": createRoomHandler,
		"get-rooms":   getRoomsHandler,
		"get-session": getSessionHandler,
	}
}

func SetupWSHandlers(wsHub *hub.Hub, sessions *session.SessionManager) map[string]interface{} {
	roomConnectUseCase := wsUsecase.NewRoomConnectUseCase(wsHub, wsHub.Manager(), sessions)
	roomConnectHandler := wsHandler.NewWebSocketRoomHandler(roomConnectUseCase)

	return map[string]interface{}{
		"room-connect": roomConnectHandler,
	}
}
