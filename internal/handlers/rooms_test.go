package handlers

import (
	"bytes"
	"errors"
	"sync"
	"testing"

	"photoshare-backend/internal/models"
	"photoshare-backend/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

type fakeSub struct {
	mu     sync.Mutex
	events []interface{}
	err    error
}

func (f *fakeSub) Send(payload interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, payload)
	return nil
}

func TestGalleryHubJoinBroadcastLeave(t *testing.T) {
	hub := NewGalleryHub()
	a, b := &fakeSub{}, &fakeSub{}
	hub.Register("a", "u1", a)
	hub.Register("b", "u2", b)

	assert.False(t, hub.Join("g1", "unknown"))
	require.True(t, hub.Join("g1", "a"))
	require.True(t, hub.Join("g1", "b"))
	assert.Equal(t, 2, hub.Subscribers("g1"))

	assert.Equal(t, 1, hub.Broadcast("g1", "hello", "a"))
	assert.Empty(t, a.events)
	assert.Equal(t, []interface{}{"hello"}, b.events)

	hub.Leave("g1", "b")
	assert.Equal(t, 1, hub.Subscribers("g1"))

	hub.Unregister("a")
	assert.Equal(t, 0, hub.Subscribers("g1"))
	assert.Equal(t, 0, hub.Broadcast("g1", "gone", ""))
}

func TestGalleryHubSkipsFailingSubscriber(t *testing.T) {
	hub := NewGalleryHub()
	bad, good := &fakeSub{err: errors.New("broken pipe")}, &fakeSub{}
	hub.Register("bad", "u1", bad)
	hub.Register("good", "u2", good)
	hub.Join("g", "bad")
	hub.Join("g", "good")

	hub.CommentAdded("g", "p1", models.ResolvedComment{ID: "c1", Comment: "hi"})
	require.Len(t, good.events, 1)
	ev := good.events[0].(models.GalleryEvent)
	assert.Equal(t, "comment_added", ev.Event)
	assert.Equal(t, "g", ev.Gallery)
	assert.Equal(t, "c1", ev.Comment.ID)
}

func TestHandleMessage(t *testing.T) {
	hub := NewGalleryHub()
	sub := &fakeSub{}
	hub.Register("c", "u1", sub)

	HandleMessage(hub, sub, "c", []byte(`{"event":"join","gallery":"u9"}`))
	assert.Equal(t, 1, hub.Subscribers("u9"))

	HandleMessage(hub, sub, "c", []byte(`not json`))
	HandleMessage(hub, sub, "c", []byte(`{"event":"dance"}`))

	HandleMessage(hub, sub, "c", []byte(`{"event":"leave","gallery":"u9"}`))
	assert.Equal(t, 0, hub.Subscribers("u9"))

	require.Len(t, sub.events, 2)
	assert.Equal(t, "joined", sub.events[0].(models.GalleryEvent).Event)
	assert.Equal(t, "left", sub.events[1].(models.GalleryEvent).Event)
}

func TestSendWelcomeLogsFailedWrite(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(utils.NewLogger(&buf, "debug"))
	t.Cleanup(func() { slog.SetDefault(prev) })

	ok := &fakeSub{}
	sendWelcome(ok)
	require.Len(t, ok.events, 1)
	assert.Equal(t, "connected", ok.events[0].(map[string]string)["event"])
	assert.Empty(t, buf.String())

	sendWelcome(&fakeSub{err: errors.New("broken pipe")})
	assert.Contains(t, buf.String(), "Welcome")
	assert.Contains(t, buf.String(), "broken pipe")
}
