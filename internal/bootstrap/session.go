package bootstrap

import (
	"fmt"

	"go.uber.org/zap"

	"werewolf-service/config"
	"werewolf-service/infra/session"
)

func InitSessionRedis(config config.Config) *session.SessionManager {
	addr := fmt.Sprintf("%s:%s", config.SessionRedis.Host, config.SessionRedis.Port)
	manager, err := session.NewSessionManager(addr, config.SessionRedis.Password, config.SessionRedis.DB)
	if err != nil {
		zap.L().Fatal("Failed to connect to session redis", zap.Error(err))
	}
	return manager
}
