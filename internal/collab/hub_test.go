package collab

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(hub *Hub, userID, drawingID, clientID string) *Client {
	return NewClient(hub, nil, userID, userID+" name", drawingID, clientID)
}

// drain returns every message queued for c so far.
func drain(t *testing.T, c *Client) []Message {
	t.Helper()
	var out []Message
	for {
		select {
		case data, ok := <-c.send:
			if !ok {
				return out
			}
			var msg Message
			require.NoError(t, json.Unmarshal(data, &msg))
			out = append(out, msg)
		default:
			return out
		}
	}
}

func types(msgs []Message) []string {
	out := make([]string, len(msgs))
	for i, m := range msgs {
		out[i] = m.Type
	}
	return out
}

func TestJoinSendsSeedMarkup(t *testing.T) {
	hub := NewHub()

	a := newTestClient(hub, "user_a", "drawing_1", "c1")
	a.Seed("<svg>\n</svg>\n")
	hub.addClient(a)

	msgs := drain(t, a)
	assert.Equal(t, []string{TypeWelcome, TypeDrawingMarkup, TypePresenceState}, types(msgs))

	var markup MarkupPayload
	require.NoError(t, json.Unmarshal(msgs[1].Payload, &markup))
	assert.Equal(t, "<svg>\n</svg>\n", markup.Markup)

	// the room's markup wins over a later client's stale seed
	hub.Publish("drawing_1", "<svg/>")
	drain(t, a)
	b := newTestClient(hub, "user_b", "drawing_1", "c2")
	b.Seed("<svg>stale</svg>")
	hub.addClient(b)

	msgs = drain(t, b)
	require.Len(t, msgs, 3)
	require.NoError(t, json.Unmarshal(msgs[1].Payload, &markup))
	assert.Equal(t, "<svg/>", markup.Markup)
	assert.Equal(t, int64(1), msgs[1].Seq)
	assert.Equal(t, 2, hub.RoomSize("drawing_1"))

	assert.Equal(t, []string{TypePresenceJoin}, types(drain(t, a)))
}

func TestJoinWithoutSeed(t *testing.T) {
	hub := NewHub()

	a := newTestClient(hub, "user_a", "drawing_1", "c1")
	hub.addClient(a)

	assert.Equal(t, []string{TypeWelcome, TypePresenceState}, types(drain(t, a)))
}

func TestPublishReachesOnlyTheDrawingsRoom(t *testing.T) {
	hub := NewHub()
	a := newTestClient(hub, "user_a", "drawing_1", "c1")
	b := newTestClient(hub, "user_b", "drawing_2", "c2")
	hub.addClient(a)
	hub.addClient(b)
	drain(t, a)
	drain(t, b)

	hub.Publish("drawing_1", "<svg/>")
	hub.Publish("drawing_1", "<svg></svg>")
	hub.Publish("drawing_missing", "<svg/>")

	msgs := drain(t, a)
	require.Len(t, msgs, 2)
	assert.Equal(t, TypeDrawingMarkup, msgs[0].Type)
	assert.Equal(t, "drawing_1", msgs[0].DrawingID)
	assert.Equal(t, int64(1), msgs[0].Seq)
	assert.Equal(t, int64(2), msgs[1].Seq)

	assert.Empty(t, drain(t, b))
}

func TestPresenceUpdateAndLeave(t *testing.T) {
	hub := NewHub()
	a := newTestClient(hub, "user_a", "drawing_1", "c1")
	b := newTestClient(hub, "user_b", "drawing_1", "c2")
	hub.addClient(a)
	hub.addClient(b)
	drain(t, a)
	drain(t, b)

	payload, err := json.Marshal(PresencePayload{Cursor: &CursorPos{X: 3, Y: 4}, Selection: []string{"r1"}})
	require.NoError(t, err)
	hub.handleMessage(a, &Message{Type: TypePresenceUpdate, Payload: payload})

	assert.Empty(t, drain(t, a))
	msgs := drain(t, b)
	require.Len(t, msgs, 1)
	assert.Equal(t, TypePresenceUpdate, msgs[0].Type)

	var got PresencePayload
	require.NoError(t, json.Unmarshal(msgs[0].Payload, &got))
	assert.Equal(t, "user_a name", got.DisplayName)
	assert.Equal(t, []string{"r1"}, got.Selection)

	hub.removeClient(a)
	assert.Equal(t, 1, hub.RoomSize("drawing_1"))
	assert.Equal(t, []string{TypePresenceLeave}, types(drain(t, b)))

	// removing twice is a no-op
	hub.removeClient(a)

	hub.removeClient(b)
	assert.Equal(t, 0, hub.RoomSize("drawing_1"))
}

func TestUnknownMessageGetsError(t *testing.T) {
	hub := NewHub()
	a := newTestClient(hub, "user_a", "drawing_1", "c1")
	hub.addClient(a)
	drain(t, a)

	hub.handleMessage(a, &Message{Type: "op.submit"})

	msgs := drain(t, a)
	require.Len(t, msgs, 1)
	assert.Equal(t, TypeError, msgs[0].Type)
}

func TestRunStopsWithContext(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())

	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()

	a := newTestClient(hub, "user_a", "drawing_1", "c1")
	hub.Register(a)
	cancel()

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("hub did not stop")
	}

	// must not block once the hub is gone
	hub.Register(newTestClient(hub, "user_b", "drawing_1", "c2"))
	hub.Unregister(a)
}

func TestSendAfterLeaveIsDropped(t *testing.T) {
	hub := NewHub()
	a := newTestClient(hub, "user_a", "drawing_1", "c1")
	hub.addClient(a)
	hub.removeClient(a)

	assert.NotPanics(t, func() {
		a.Send(&Message{Type: TypeWelcome})
		a.close()
	})
}

func TestPublishWhileClientsLeave(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	keeper := newTestClient(hub, "keeper", "drawing_1", "keeper")
	hub.Register(keeper)
	go func() {
		for range keeper.send {
		}
	}()

	for i := range 500 {
		c := newTestClient(hub, "user", "drawing_1", fmt.Sprintf("c%d", i))
		hub.Register(c)

		var wg sync.WaitGroup
		for range 4 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for range 20 {
					hub.Publish("drawing_1", "<svg/>")
				}
			}()
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			hub.Unregister(c)
		}()
		wg.Wait()
	}

	assert.Eventually(t, func() bool { return hub.RoomSize("drawing_1") == 1 }, time.Second, 10*time.Millisecond)
}
