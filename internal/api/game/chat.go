package game

import (
	"time"

	"github.com/google/uuid"

	"werewolf-service/domain"
)

// CanChat is the gate policy for the send-message event: the host may always
// post, the dead and spectators share the dead chat, and every other alive
// player is muted while the game talks through the speech queue.
func CanChat(p *domain.Player) bool {
	return p.IsHost || !p.IsAlive || p.IsSpectator
}

// NewPlayerMessage builds a chat message with the host/dead tags computed
// from the sender's state at this instant. Tags are never recomputed.
func NewPlayerMessage(p *domain.Player, content string) domain.ChatMessage {
	return domain.ChatMessage{
		ID:         uuid.NewString(),
		SenderID:   p.ID,
		SenderName: p.Name,
		Content:    content,
		Timestamp:  time.Now().UnixMilli(),
		IsHostChat: p.IsHost,
		IsDeadChat: !p.IsAlive || p.IsSpectator,
	}
}

// systemMessage appends an engine announcement to the log. Caller holds r.mu.
func (r *Room) systemMessage(content string) {
	r.state.Messages = append(r.state.Messages, domain.ChatMessage{
		ID:         uuid.NewString(),
		SenderID:   "sys",
		SenderName: "System",
		Content:    content,
		Timestamp:  time.Now().UnixMilli(),
		IsSystem:   true,
	})
}
