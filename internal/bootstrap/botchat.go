package bootstrap

import (
	"werewolf-service/config"
	"werewolf-service/internal/api/game"
	"werewolf-service/internal/botchat"
)

func InitBotChat(config config.Config) game.Chatter {
	return botchat.NewClient(
		config.BotChat.URL,
		config.BotChat.APIKey,
		config.BotChat.Model,
		config.BotChat.RequestsPerMinute,
	)
}
