package domain

// ChatMessage is immutable once appended to the log. The host/dead tags are
// computed from the sender's state at creation time and never recomputed.
type ChatMessage struct {
	ID         string `json:"id"`
	SenderID   string `json:"sender_id"`
	SenderName string `json:"sender_name"`
	Content    string `json:"content"`
	Timestamp  int64  `json:"timestamp"`
	IsSystem   bool   `json:"is_system,omitempty"`
	IsHostChat bool   `json:"is_host_chat,omitempty"`
	IsDeadChat bool   `json:"is_dead_chat,omitempty"`
}
