package domain

import "fmt"

// Player is the per-room player record. Its ID is stable across reconnects;
// the websocket connection id lives on the Client, not here. Disconnects only
// flip Online, the record itself survives until a kick or room teardown.
type Player struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Role   Role   `json:"role"`
	Avatar string `json:"avatar"`
	IsBot  bool   `json:"is_bot"`

	IsAlive       bool     `json:"is_alive"`
	VotesReceived float64  `json:"votes_received"`
	VotedFor      *string  `json:"voted_for"`
	IsSheriff     bool     `json:"is_sheriff"`
	IsProtected   bool     `json:"is_protected"`
	IsPoisoned    bool     `json:"is_poisoned"`
	IsLinked      bool     `json:"is_linked"`
	LoverID       *string  `json:"lover_id"`
	IsExposed     bool     `json:"is_exposed"`
	HasActed      bool     `json:"has_acted"`

	IsHost      bool `json:"is_host"`
	IsOnline    bool `json:"is_online"`
	IsSpectator bool `json:"is_spectator"`
}

// AvatarURL derives a deterministic avatar reference from a seed.
func AvatarURL(seed string) string {
	return fmt.Sprintf("https://api.dicebear.com/7.x/adventurer/svg?seed=%s", seed)
}
