package collab

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
)

// Room is the set of clients watching one drawing.
type Room struct {
	drawingID string
	clients   map[string]*Client // clientID -> client
	presence  *PresenceManager
	seq       int64
	markup    string
}

func NewRoom(drawingID string) *Room {
	return &Room{
		drawingID: drawingID,
		clients:   make(map[string]*Client),
		presence:  NewPresenceManager(),
	}
}

// Hub fans out drawing renders and presence to every connected client.
type Hub struct {
	mu         sync.RWMutex
	rooms      map[string]*Room // drawingID -> room
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
}

// NewHub creates a hub. A room starts with the seed markup of its first
// client, or none until the first Publish.
func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[string]*Room),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run processes joins and leaves until ctx is done.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case <-ctx.Done():
			return
		}
	}
}

func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Publish broadcasts a fresh render of a drawing to everyone watching it.
// Drawings nobody is watching are ignored.
func (h *Hub) Publish(drawingID, markup string) {
	h.mu.Lock()
	room, ok := h.rooms[drawingID]
	if !ok {
		h.mu.Unlock()
		return
	}
	room.seq++
	room.markup = markup
	seq := room.seq
	h.mu.Unlock()

	msg, err := newMessage(TypeDrawingMarkup, MarkupPayload{Markup: markup})
	if err != nil {
		slog.Error("marshal markup", "error", err)
		return
	}
	msg.DrawingID = drawingID
	msg.Seq = seq
	h.broadcastToRoom(drawingID, msg, "")
}

// RoomSize returns the number of clients watching a drawing.
func (h *Hub) RoomSize(drawingID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	room, ok := h.rooms[drawingID]
	if !ok {
		return 0
	}
	return len(room.clients)
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	room, ok := h.rooms[client.DrawingID]
	if !ok {
		room = NewRoom(client.DrawingID)
		h.rooms[client.DrawingID] = room
	}
	room.clients[client.ClientID] = client
	if room.markup == "" {
		room.markup = client.seed
	}
	markup, seq := room.markup, room.seq
	h.mu.Unlock()

	if welcome, err := newMessage(TypeWelcome, WelcomePayload{ClientID: client.ClientID}); err == nil {
		welcome.DrawingID = client.DrawingID
		client.Send(welcome)
	}

	if markup != "" {
		if msg, err := newMessage(TypeDrawingMarkup, MarkupPayload{Markup: markup}); err == nil {
			msg.DrawingID = client.DrawingID
			msg.Seq = seq
			client.Send(msg)
		}
	}

	if stateMsg := room.presence.StateMessage(); stateMsg != nil {
		client.Send(stateMsg)
	}

	joinPayload, _ := json.Marshal(PresenceJoinPayload{
		UserID:      client.UserID,
		DisplayName: client.DisplayName,
	})
	joinMsg := &Message{
		Type:    TypePresenceJoin,
		UserID:  client.UserID,
		Payload: joinPayload,
	}
	h.broadcastToRoom(client.DrawingID, joinMsg, client.ClientID)

	slog.Info("client joined", "user", client.UserID, "drawing", client.DrawingID)
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	room, ok := h.rooms[client.DrawingID]
	if !ok {
		h.mu.Unlock()
		return
	}
	if _, ok := room.clients[client.ClientID]; !ok {
		h.mu.Unlock()
		return
	}

	delete(room.clients, client.ClientID)
	client.close()
	room.presence.Remove(client.UserID)

	if len(room.clients) == 0 {
		delete(h.rooms, client.DrawingID)
	}
	h.mu.Unlock()

	leavePayload, _ := json.Marshal(PresenceLeavePayload{
		UserID: client.UserID,
	})
	leaveMsg := &Message{
		Type:    TypePresenceLeave,
		UserID:  client.UserID,
		Payload: leavePayload,
	}
	h.broadcastToRoom(client.DrawingID, leaveMsg, "")

	slog.Info("client left", "user", client.UserID, "drawing", client.DrawingID)
}

func (h *Hub) handleMessage(sender *Client, msg *Message) {
	switch msg.Type {
	case TypePresenceUpdate:
		h.handlePresenceUpdate(sender, msg)
	default:
		slog.Warn("unknown message type", "type", msg.Type, "user", sender.UserID)
		if reply, err := newMessage(TypeError, ErrorPayload{Message: "unknown message type: " + msg.Type}); err == nil {
			sender.Send(reply)
		}
	}
}

func (h *Hub) handlePresenceUpdate(sender *Client, msg *Message) {
	var presence PresencePayload
	if err := json.Unmarshal(msg.Payload, &presence); err != nil {
		slog.Warn("invalid presence payload", "error", err)
		return
	}

	presence.DisplayName = sender.DisplayName

	h.mu.RLock()
	room, ok := h.rooms[sender.DrawingID]
	h.mu.RUnlock()
	if !ok {
		return
	}

	room.presence.Update(sender.UserID, &presence)

	outPayload, _ := json.Marshal(presence)
	outMsg := &Message{
		Type:    TypePresenceUpdate,
		UserID:  sender.UserID,
		Payload: outPayload,
	}
	h.broadcastToRoom(sender.DrawingID, outMsg, sender.ClientID)
}

func (h *Hub) broadcastToRoom(drawingID string, msg *Message, excludeClientID string) {
	h.mu.RLock()
	room, ok := h.rooms[drawingID]
	if !ok {
		h.mu.RUnlock()
		return
	}

	clients := make([]*Client, 0, len(room.clients))
	for _, c := range room.clients {
		if c.ClientID != excludeClientID {
			clients = append(clients, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range clients {
		c.Send(msg)
	}
}
