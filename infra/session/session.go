package session

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const bindingTTL = 24 * time.Hour

// SessionManager keeps the player-to-room binding in Redis so a returning
// client can be routed back to its room even after a server restart. Game
// state itself is never persisted here.
type SessionManager struct {
	client *redis.Client
}

func NewSessionManager(redisAddr string, password string, db int) (*SessionManager, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: password,
		DB:       db,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	zap.L().Info("connected to session store", zap.String("addr", redisAddr))
	return &SessionManager{
		client: client,
	}, nil
}

func sessionKey(playerID string) string {
	return fmt.Sprintf("session:player:%s", playerID)
}

// BindSession records which room the player currently belongs to.
func (sm *SessionManager) BindSession(ctx context.Context, playerID, roomID string) error {
	return sm.client.Set(ctx, sessionKey(playerID), roomID, bindingTTL).Err()
}

// GetSession returns the room the player was last bound to, or "" when no
// binding exists.
func (sm *SessionManager) GetSession(ctx context.Context, playerID string) (string, error) {
	roomID, err := sm.client.Get(ctx, sessionKey(playerID)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return roomID, nil
}

// ClearSession removes the binding, e.g. after a kick.
func (sm *SessionManager) ClearSession(ctx context.Context, playerID string) error {
	return sm.client.Del(ctx, sessionKey(playerID)).Err()
}

func (sm *SessionManager) Close() error {
	return sm.client.Close()
}
