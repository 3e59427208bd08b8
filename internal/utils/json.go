package utils

import (
	"encoding/json"
	"sync"

	"github.com/gofiber/websocket/v2"
	"golang.org/x/exp/slog"
)

// SafeJSONParse parses JSON safely
func SafeJSONParse(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

// Fiber's websocket conn does not allow concurrent writers, so writes to the
// same conn are serialized here.
var writeLocks sync.Map // *websocket.Conn -> *sync.Mutex

// SendJSON sends a JSON payload to a WebSocket connection safely
func SendJSON(c *websocket.Conn, payload interface{}) error {
	mu, _ := writeLocks.LoadOrStore(c, &sync.Mutex{})
	mu.(*sync.Mutex).Lock()
	defer mu.(*sync.Mutex).Unlock()
	return c.WriteJSON(payload)
}

// ForgetConn drops the write lock kept for a closed connection.
func ForgetConn(c *websocket.Conn) {
	writeLocks.Delete(c)
}

// LogError logs an error if it's not nil
func LogError(err error, context string) {
	if err != nil {
		slog.Error("operation failed", "context", context, "error", err)
	}
}
