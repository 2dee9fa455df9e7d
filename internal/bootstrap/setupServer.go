package bootstrap

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"werewolf-service/config"
	httpHandler "werewolf-service/internal/api/http/handler"
	wsHandler "werewolf-service/internal/api/ws/handler"
	"werewolf-service/internal/handler"
	"werewolf-service/internal/server"
)

func SetupServer(config config.Config, httpHandlers map[string]interface{}, wsHandlers map[string]interface{}) *fiber.App {

	serverConfig := server.Config{
		Port:         config.Server.Port,
		IdleTimeout:  5 * time.Second,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	app := server.NewFiberApp(serverConfig)

	createRoomHandler := httpHandlers["create-room"].(*httpHandler.CreateRoomHandler)
	getRoomsHandler := httpHandlers["get-rooms"].(*httpHandler.GetRoomsHandler)
	getSessionHandler := httpHandlers["get-session"].(*httpHandler.GetSessionHandler)

	app.Post("/create-room", handler.HandleWithFiber[httpHandler.CreateRoomRequest, httpHandler.CreateRoomResponse](createRoomHandler))
	app.Get("/rooms", handler.HandleWithFiber[httpHandler.GetRoomsRequest, httpHandler.GetRoomsResponse](getRoomsHandler))
	app.Get("/session/:player_id", handler.HandleWithFiber[httpHandler.GetSessionRequest, httpHandler.GetSessionResponse](getSessionHandler))

	wsRoute := app.Group("/ws")
	roomConnectHandler := wsHandlers["room-connect"].(*wsHandler.WebSocketRoomHandler)
	wsRoute.Get("/game/:room_id", handler.HandleWithFiberWS[wsHandler.WebSocketRoomRequest](roomConnectHandler))

	return app
}
