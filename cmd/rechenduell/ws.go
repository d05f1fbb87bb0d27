package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	INTENT_CREATE = "create" // open a new room
	INTENT_JOIN   = "join"   // join an existing room by code
	INTENT_READY  = "ready"  // ready signal for the pending barrier
	INTENT_ANSWER = "answer" // answer the current question
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second // under pongWait, and under common proxy timeouts
	sendBuffer = 256
)

// Intent is one inbound client message.
type Intent struct {
	Type     string `json:"type"`
	Code     string `json:"code,omitempty"`
	Selected int    `json:"selected,omitempty"`
}

// Gateway upgrades websocket connections, mints an opaque id per connection,
// forwards decoded intents to the RoomManager and pushes resulting events
// back out. A connection whose heartbeat lapses is torn down exactly like a
// voluntary disconnect.
type Gateway struct {
	manager  *RoomManager
	upgrader websocket.Upgrader
	conns    map[string]*playerConn
	mu       sync.RWMutex
}

// compile-time assertion that the gateway can serve as the manager's notifier
var _ Notifier = (*Gateway)(nil)

type playerConn struct {
	id   string
	ws   *websocket.Conn
	send chan []byte
	once sync.Once // the send channel is closed at most once
}

func (c *playerConn) close() {
	c.once.Do(func() {
		close(c.send)
	})
}

func NewGateway() *Gateway {
	return &Gateway{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The duel is anonymous and room codes are the only credential.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		conns: make(map[string]*playerConn),
	}
}

// Bind wires the manager in after construction; gateway and manager reference
// each other.
func (g *Gateway) Bind(m *RoomManager) {
	g.manager = m
}

// ServeWS upgrades an HTTP request to a websocket session.
func (g *Gateway) ServeWS(w http.ResponseWriter, r *http.Request) {
	ws, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("Failed to upgrade websocket", "error", err, "remote", r.RemoteAddr)
		return
	}

	conn := &playerConn{
		id:   uuid.NewString(),
		ws:   ws,
		send: make(chan []byte, sendBuffer),
	}
	g.register(conn)

	go g.writePump(conn)
	go g.readPump(conn)

	slog.Info("Connection established", "conn", conn.id, "remote", r.RemoteAddr)
}

// Unicast implements Notifier. The read lock is held across the send: every
// close of a send channel happens under the write lock, so a delivery can
// never race a concurrent disconnect onto a closed channel.
func (g *Gateway) Unicast(connID string, event Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		slog.Error("Failed to encode event", "event", event.Type, "error", err)
		return
	}

	g.mu.RLock()
	defer g.mu.RUnlock()

	if conn, ok := g.conns[connID]; ok {
		g.deliver(conn, event.Type, payload)
	}
}

// Broadcast implements Notifier. See Unicast for why the lock spans the
// deliveries; deliver never blocks, so neither does holding the lock here.
func (g *Gateway) Broadcast(connIDs []string, event Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		slog.Error("Failed to encode event", "event", event.Type, "error", err)
		return
	}

	g.mu.RLock()
	defer g.mu.RUnlock()

	for _, id := range connIDs {
		if conn, ok := g.conns[id]; ok {
			g.deliver(conn, event.Type, payload)
		}
	}
}

// ConnCount returns the number of live connections.
func (g *Gateway) ConnCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.conns)
}

// Shutdown closes every connection.
func (g *Gateway) Shutdown() {
	g.mu.Lock()
	defer g.mu.Unlock()

	for id, conn := range g.conns {
		conn.close()
		conn.ws.Close()
		delete(g.conns, id)
	}
}

func (g *Gateway) register(conn *playerConn) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.conns[conn.id] = conn
}

func (g *Gateway) unregister(conn *playerConn) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.conns[conn.id] == conn {
		delete(g.conns, conn.id)
		conn.close()
	}
}

// deliver enqueues a payload without blocking; a slow client loses events
// rather than stalling the room.
func (g *Gateway) deliver(conn *playerConn, eventType string, payload []byte) {
	select {
	case conn.send <- payload:
	default:
		slog.Warn("Send buffer full, dropping event", "conn", conn.id, "event", eventType)
	}
}

// readPump decodes intents off the socket until it dies, then reports the
// connection as disconnected. The manager deletes every room the connection
// was part of.
func (g *Gateway) readPump(conn *playerConn) {
	defer func() {
		g.unregister(conn)
		conn.ws.Close()
		g.manager.Disconnect(conn.id)
		slog.Info("Connection closed", "conn", conn.id)
	}()

	conn.ws.SetReadLimit(512)
	_ = conn.ws.SetReadDeadline(time.Now().Add(pongWait))
	conn.ws.SetPongHandler(func(string) error {
		return conn.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := conn.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Warn("Websocket read failed", "conn", conn.id, "error", err)
			}
			return
		}
		g.dispatch(conn.id, raw)
	}
}

// writePump drains the send channel and keeps the heartbeat alive.
func (g *Gateway) writePump(conn *playerConn) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.ws.Close()
	}()

	for {
		select {
		case payload, ok := <-conn.send:
			_ = conn.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.ws.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := conn.ws.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (g *Gateway) dispatch(connID string, raw []byte) {
	var intent Intent
	if err := json.Unmarshal(raw, &intent); err != nil {
		slog.Warn("Malformed intent", "conn", connID, "error", err)
		return
	}

	switch intent.Type {
	case INTENT_CREATE:
		g.manager.CreateRoom(connID)
	case INTENT_JOIN:
		// Registry errors are already delivered to the requester as events.
		_ = g.manager.JoinRoom(intent.Code, connID)
	case INTENT_READY:
		g.manager.SubmitReady(intent.Code, connID)
	case INTENT_ANSWER:
		g.manager.SubmitAnswer(intent.Code, connID, intent.Selected)
	default:
		slog.Warn("Unknown intent", "conn", connID, "type", intent.Type)
	}
}
