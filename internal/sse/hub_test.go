package sse

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubBroadcastReachesAllClients(t *testing.T) {
	hub := NewHub()
	a := hub.Register("a")
	b := hub.Register("b")
	defer hub.Unregister("a")
	defer hub.Unregister("b")

	hub.Broadcast(&ActivityEvent{
		Event:     EventPageView,
		Path:      "/pricing",
		Timestamp: time.Now(),
	})

	for _, client := range []*Client{a, b} {
		select {
		case data := <-client.Events:
			var evt ActivityEvent
			require.NoError(t, json.Unmarshal(data, &evt))
			assert.Equal(t, EventPageView, evt.Event)
			assert.Equal(t, "/pricing", evt.Path)
		default:
			t.Fatalf("client %s received nothing", client.ID)
		}
	}
}

func TestHubBroadcastDropsWhenBufferFull(t *testing.T) {
	hub := NewHub()
	c := hub.Register("slow")
	defer hub.Unregister("slow")

	// Saturate the buffer plus one extra; Broadcast must not block.
	for i := 0; i < cap(c.Events)+1; i++ {
		hub.Broadcast(&ActivityEvent{Event: EventContact, Timestamp: time.Now()})
	}

	assert.Equal(t, cap(c.Events), len(c.Events))
}

func TestHubUnregisterClosesChannel(t *testing.T) {
	hub := NewHub()
	c := hub.Register("a")
	hub.Unregister("a")

	_, open := <-c.Events
	assert.False(t, open)
	assert.Equal(t, 0, hub.ClientCount())

	// Unregistering twice is a no-op.
	hub.Unregister("a")
}

func TestHubClientCount(t *testing.T) {
	hub := NewHub()
	assert.Equal(t, 0, hub.ClientCount())
	hub.Register("a")
	hub.Register("b")
	assert.Equal(t, 2, hub.ClientCount())
	hub.Unregister("a")
	assert.Equal(t, 1, hub.ClientCount())
}

func TestHubNotifierSkipsWithNoClients(t *testing.T) {
	hub := NewHub()
	n := NewHubNotifier(hub)

	// No clients connected: must not panic or block.
	n.NotifyPageView(nil)
	n.NotifyContact(nil)
}
