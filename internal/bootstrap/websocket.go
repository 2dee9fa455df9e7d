package bootstrap

import (
	"context"

	"werewolf-service/internal/api/game"
	"werewolf-service/internal/api/ws/hub"
)

func InitWebsocket(ctx context.Context, chatter game.Chatter, sessions hub.SessionStore, defaultLanguage string) *hub.Hub {
	wsHub := hub.NewHub(chatter, sessions, defaultLanguage)
	wsHub.Run(ctx)
	return wsHub
}
