package handlers

import (
	"time"

	"photoshare-backend/internal/models"
	"photoshare-backend/internal/utils"

	"golang.org/x/exp/slog"
)

// HandleMessage dispatches one inbound websocket frame.
func HandleMessage(hub *GalleryHub, sub Subscriber, connID string, msg []byte) {
	var wsMsg models.WSMessage
	if err := utils.SafeJSONParse(msg, &wsMsg); err != nil {
		utils.LogError(err, "JSON Parse")
		return
	}

	switch wsMsg.Event {
	case "join":
		handleJoin(hub, sub, connID, wsMsg.Gallery)
	case "leave":
		handleLeave(hub, sub, connID, wsMsg.Gallery)
	default:
		slog.Debug("unknown websocket event", "event", wsMsg.Event, "conn_id", connID)
	}
}

func sendWelcome(sub Subscriber) {
	utils.LogError(sub.Send(map[string]string{
		"event":   "connected",
		"message": "Welcome to the gallery feed",
	}), "Welcome")
}

func handleJoin(hub *GalleryHub, sub Subscriber, connID, gallery string) {
	if gallery == "" || !hub.Join(gallery, connID) {
		return
	}
	utils.LogError(sub.Send(models.GalleryEvent{
		Event:     "joined",
		Gallery:   gallery,
		Timestamp: time.Now().UnixMilli(),
	}), "Join")
}

func handleLeave(hub *GalleryHub, sub Subscriber, connID, gallery string) {
	if gallery == "" {
		return
	}
	hub.Leave(gallery, connID)
	utils.LogError(sub.Send(models.GalleryEvent{
		Event:     "left",
		Gallery:   gallery,
		Timestamp: time.Now().UnixMilli(),
	}), "Leave")
}
