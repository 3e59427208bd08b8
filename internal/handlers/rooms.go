package handlers

import (
	"sync"
	"time"

	"photoshare-backend/internal/models"
	"photoshare-backend/internal/services"
	"photoshare-backend/internal/utils"
)

// Subscriber is one live connection watching galleries.
type Subscriber interface {
	Send(payload interface{}) error
}

type ConnMeta struct {
	UserID string
	Sub    Subscriber
}

// GalleryHub fans gallery events out to the websocket connections watching a
// user's photos. Galleries are keyed by the owner's user id.
type GalleryHub struct {
	// gallery -> connectionID -> subscriber
	galleries map[string]map[string]Subscriber
	mu        sync.RWMutex
	connMeta  map[string]ConnMeta
}

func NewGalleryHub() *GalleryHub {
	return &GalleryHub{
		galleries: make(map[string]map[string]Subscriber),
		connMeta:  make(map[string]ConnMeta),
	}
}

// Register records a connection before it joins any gallery.
func (h *GalleryHub) Register(connID, userID string, sub Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.connMeta[connID] = ConnMeta{UserID: userID, Sub: sub}
}

func (h *GalleryHub) Join(gallery, connID string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	meta, ok := h.connMeta[connID]
	if !ok {
		return false
	}
	if _, ok := h.galleries[gallery]; !ok {
		h.galleries[gallery] = make(map[string]Subscriber)
	}
	h.galleries[gallery][connID] = meta.Sub
	return true
}

func (h *GalleryHub) Leave(gallery, connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if conns, ok := h.galleries[gallery]; ok {
		delete(conns, connID)
		if len(conns) == 0 {
			delete(h.galleries, gallery)
		}
	}
}

// Unregister drops a connection from every gallery it joined.
func (h *GalleryHub) Unregister(connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for gallery, conns := range h.galleries {
		if _, ok := conns[connID]; ok {
			delete(conns, connID)
			if len(conns) == 0 {
				delete(h.galleries, gallery)
			}
		}
	}
	delete(h.connMeta, connID)
}

func (h *GalleryHub) Broadcast(gallery string, message interface{}, excludeConnID string) int {
	h.mu.RLock()
	targets := make([]Subscriber, 0, len(h.galleries[gallery]))
	for id, sub := range h.galleries[gallery] {
		if id != excludeConnID {
			targets = append(targets, sub)
		}
	}
	h.mu.RUnlock()

	sent := 0
	for _, sub := range targets {
		if err := sub.Send(message); err != nil {
			// the read loop notices the broken connection and unregisters it
			utils.LogError(err, "Broadcast")
			continue
		}
		sent++
	}
	return sent
}

// Subscribers returns how many connections watch gallery.
func (h *GalleryHub) Subscribers(gallery string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.galleries[gallery])
}

// CommentAdded pushes a new comment to everyone watching the photo owner's gallery.
func (h *GalleryHub) CommentAdded(ownerID, photoID string, c models.ResolvedComment) {
	h.Broadcast(ownerID, models.GalleryEvent{
		Event:     "comment_added",
		Gallery:   ownerID,
		PhotoID:   photoID,
		Comment:   &c,
		Timestamp: time.Now().UnixMilli(),
	}, "")
}

var _ services.CommentNotifier = (*GalleryHub)(nil)
