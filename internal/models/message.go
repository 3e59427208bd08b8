package models

// GalleryEvent is pushed to websocket subscribers of a user's gallery.
type GalleryEvent struct {
	Event     string           `json:"event"` // "connected", "joined", "left", "comment_added"
	Gallery   string           `json:"gallery,omitempty"`
	PhotoID   string           `json:"photo_id,omitempty"`
	Comment   *ResolvedComment `json:"comment,omitempty"`
	Message   string           `json:"message,omitempty"`
	Timestamp int64            `json:"timestamp,omitempty"`
}

// WSMessage is an inbound websocket frame.
type WSMessage struct {
	Event   string `json:"event"` // "join", "leave"
	Gallery string `json:"gallery,omitempty"`
}
