package domain

import (
	"sync"

	"github.com/gofiber/contrib/websocket"
)

type WebSocketErrorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Code    int    `json:"code,omitempty"`
}

// Client is one websocket connection bound to a player id. The player record
// outlives the client; a reconnect produces a new Client for the same ID.
type Client struct {
	ID        string
	RoomID    string
	Send      chan []byte
	Conn      *websocket.Conn
	WriteLock sync.Mutex
	Done      chan struct{}
}
