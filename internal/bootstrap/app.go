package bootstrap

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"werewolf-service/config"
	"werewolf-service/infra/session"
	"werewolf-service/internal/api/ws/hub"
	"werewolf-service/pkg/graceful"
)

type App struct {
	config       config.Config
	sessions     *session.SessionManager
	wsHub        *hub.Hub
	fiberApp     *fiber.App
	httpHandlers map[string]interface{}
	wsHandlers   map[string]interface{}
	cancel       context.CancelFunc
}

func NewApp(config config.Config) *App {
	app := &App{
		config: config,
	}
	app.initDependencies()
	return app
}

func (a *App) initDependencies() {
	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel

	a.sessions = InitSessionRedis(a.config)
	chatter := InitBotChat(a.config)
	a.wsHub = InitWebsocket(ctx, chatter, a.sessions, a.config.Game.Language)
	a.httpHandlers = SetupHTTPHandlers(a.wsHub, a.sessions)
	a.wsHandlers = SetupWSHandlers(a.wsHub, a.sessions)
	a.fiberApp = SetupServer(a.config, a.httpHandlers, a.wsHandlers)
}

func (a *App) Start() {
	go func() {
		port := a.config.Server.Port
		if err := a.fiberApp.Listen(":" + port); err != nil {
			zap.L().Error("Failed to start server", zap.Error(err))
		}
	}()

	zap.L().Info("Server started on port", zap.String("port", a.config.Server.Port))

	defer func() {
		a.cancel()
		if err := a.sessions.Close(); err != nil {
			zap.L().Error("Failed to close session store", zap.Error(err))
		}
	}()

	graceful.WaitForShutdown(a.fiberApp, 5*time.Second, context.Background())
}
