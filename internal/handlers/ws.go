package handlers

import (
	"strings"

	"photoshare-backend/internal/services"
	"photoshare-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"golang.org/x/exp/slog"
)

const principalKey = "principal"

type wsSubscriber struct {
	conn *websocket.Conn
}

func (s wsSubscriber) Send(payload interface{}) error {
	return utils.SendJSON(s.conn, payload)
}

// WebSocketHandler subscribes the connection to galleries. The optional
// "gallery" query parameter joins one immediately.
func WebSocketHandler(hub *GalleryHub) fiber.Handler {
	return websocket.New(func(c *websocket.Conn) {
		principal, _ := c.Locals(principalKey).(*services.Principal)
		if !principal.Authenticated() {
			_ = c.Close()
			return
		}

		// Generate a unique ID for this connection
		connID := uuid.New().String()
		sub := wsSubscriber{conn: c}
		hub.Register(connID, principal.UserID, sub)

		defer func() {
			hub.Unregister(connID)
			utils.ForgetConn(c)
			c.Close()
		}()

		sendWelcome(sub)

		if gallery := c.Query("gallery"); gallery != "" {
			handleJoin(hub, sub, connID, gallery)
		}

		for {
			msgType, msg, err := c.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					slog.Warn("websocket closed unexpectedly", "conn_id", connID, "error", err)
				}
				break
			}
			if msgType != websocket.TextMessage {
				continue
			}
			HandleMessage(hub, sub, connID, msg)
		}
	})
}

// WSUpgradeMiddleware upgrades the connection to WebSocket
func WSUpgradeMiddleware(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		c.Locals("allowed", true)
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// AuthMiddleware verifies the bearer token and stores the principal in locals.
func AuthMiddleware(tokens *services.TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Get token from query param `access_token` or Authorization header
		token := c.Query("access_token")
		if token == "" {
			if auth := c.Get(fiber.HeaderAuthorization); strings.HasPrefix(auth, "Bearer ") {
				token = strings.TrimPrefix(auth, "Bearer ")
			}
		}

		if token == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Missing token")
		}

		principal, err := tokens.PrincipalFromToken(token)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid token")
		}

		c.Locals(principalKey, principal)
		return c.Next()
	}
}

func principalFrom(c *fiber.Ctx) *services.Principal {
	p, _ := c.Locals(principalKey).(*services.Principal)
	return p
}
