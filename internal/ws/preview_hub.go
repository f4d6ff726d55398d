package ws

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	sendBufferSize = 256
)

// SectionEvent is pushed to admin preview clients after a section is saved.
type SectionEvent struct {
	Type      string         `json:"type"`
	Section   string         `json:"section"`
	Fields    map[string]any `json:"fields"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

type previewMessage struct {
	section string
	payload []byte
}

// PreviewHub fans section updates out to connected dashboard previews.
type PreviewHub struct {
	register   chan *previewClient
	unregister chan *previewClient
	broadcast  chan previewMessage
	clients    map[*previewClient]struct{}
	done       chan struct{}
	logger     *zap.Logger
}

func NewPreviewHub(logger *zap.Logger) *PreviewHub {
	return &PreviewHub{
		register:   make(chan *previewClient),
		unregister: make(chan *previewClient),
		broadcast:  make(chan previewMessage, 256),
		clients:    make(map[*previewClient]struct{}),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run serves the hub until ctx is done, then disconnects every client.
// It must be called at most once.
func (h *PreviewHub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for client := range h.clients {
				h.drop(client)
			}
			return
		case client := <-h.register:
			h.clients[client] = struct{}{}
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				h.drop(client)
			}
		case msg := <-h.broadcast:
			for client := range h.clients {
				if !client.wants(msg.section) {
					continue
				}
				select {
				case client.send <- msg.payload:
				default:
					h.drop(client)
				}
			}
		}
	}
}

// join registers client. It reports false once the hub has stopped.
func (h *PreviewHub) join(client *previewClient) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

func (h *PreviewHub) leave(client *previewClient) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

func (h *PreviewHub) drop(client *previewClient) {
	delete(h.clients, client)
	close(client.send)
	client.conn.Close()
}

// Publish queues ev for delivery. It never blocks the caller; when the
// queue is full the event is dropped.
func (h *PreviewHub) Publish(ev SectionEvent) {
	if h == nil {
		return
	}
	data, err := json.Marshal(ev)
	if err != nil {
		h.logger.Warn("ws: failed to marshal section event", zap.Error(err))
		return
	}
	select {
	case h.broadcast <- previewMessage{section: ev.Section, payload: data}:
	default:
		h.logger.Warn("ws: preview queue full, event dropped", zap.String("section", ev.Section))
	}
}

type previewClient struct {
	hub      *PreviewHub
	conn     *websocket.Conn
	send     chan []byte
	sections map[string]struct{} // empty means every section
}

func newPreviewClient(hub *PreviewHub, conn *websocket.Conn, sections map[string]struct{}) *previewClient {
	return &previewClient{
		hub:      hub,
		conn:     conn,
		send:     make(chan []byte, sendBufferSize),
		sections: sections,
	}
}

func (c *previewClient) wants(section string) bool {
	if len(c.sections) == 0 {
		return true
	}
	_, ok := c.sections[section]
	return ok
}

func (c *previewClient) readPump() {
	defer c.hub.leave(c)
	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (c *previewClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			if _, err := w.Write(msg); err != nil {
				return
			}
			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
