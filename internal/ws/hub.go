package ws

import (
	"context"
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"store-ledger/internal/model"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Event types pushed to dashboards
const (
	EventEntryCreated = "entry_created"
	EventEntryUpdated = "entry_updated"
	EventEntryDeleted = "entry_deleted"
	EventStockUpdated = "stock_updated"
)

// Event is the payload of one change notification
type Event struct {
	ID        uuid.UUID     `json:"id"`
	Type      string        `json:"type"`
	Kind      string        `json:"kind"`
	StoreID   model.StoreID `json:"store_id"`
	EntryID   int64         `json:"entry_id"`
	Message   string        `json:"message"`
	Timestamp time.Time     `json:"timestamp"`
}

// NewEvent stamps an event with a fresh id
func NewEvent(eventType, kind string, store model.StoreID, entryID int64, message string) Event {
	return Event{
		ID:        uuid.New(),
		Type:      eventType,
		Kind:      kind,
		StoreID:   store,
		EntryID:   entryID,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
}

const broadcastBuffer = 64

type Hub struct {
	Clients    map[*websocket.Conn]bool
	Register   chan *websocket.Conn
	Unregister chan *websocket.Conn
	Broadcast  chan []byte
	mutex      sync.Mutex
	done       chan struct{}
	log        *zap.Logger
}

func NewHub(log *zap.Logger) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	return &Hub{
		Clients:    make(map[*websocket.Conn]bool),
		Register:   make(chan *websocket.Conn),
		Unregister: make(chan *websocket.Conn),
		Broadcast:  make(chan []byte, broadcastBuffer),
		done:       make(chan struct{}),
		log:        log.Named("ws"),
	}
}

// Publish queues an event for every connected client.
// It never blocks the caller; events are dropped when the queue is full.
func (h *Hub) Publish(event Event) {
	msg, err := json.Marshal(event)
	if err != nil {
		h.log.Error("failed to encode event", zap.String("type", event.Type), zap.Error(err))
		return
	}
	select {
	case h.Broadcast <- msg:
	default:
		h.log.Warn("broadcast queue full, dropping event",
			zap.String("type", event.Type),
			zap.String("event_id", event.ID.String()),
		)
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.Clients)
}

// Join hands a connection to the running hub.
// It reports false when the hub has already shut down.
func (h *Hub) Join(conn *websocket.Conn) bool {
	select {
	case h.Register <- conn:
		return true
	case <-h.done:
		return false
	}
}

// Leave removes a connection; it returns immediately after shutdown
func (h *Hub) Leave(conn *websocket.Conn) {
	select {
	case h.Unregister <- conn:
	case <-h.done:
	}
}

func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mutex.Lock()
			for conn := range h.Clients {
				conn.Close()
				delete(h.Clients, conn)
			}
			h.mutex.Unlock()
			return

		case conn := <-h.Register:
			h.mutex.Lock()
			h.Clients[conn] = true
			h.mutex.Unlock()
			h.log.Info("client connected", zap.Int("clients", h.ClientCount()))

		case conn := <-h.Unregister:
			h.mutex.Lock()
			if _, ok := h.Clients[conn]; ok {
				delete(h.Clients, conn)
				conn.Close()
			}
			h.mutex.Unlock()

		case message := <-h.Broadcast:
			h.mutex.Lock()
			for conn := range h.Clients {
				if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
					h.log.Debug("dropping client after write error", zap.Error(err))
					conn.Close()
					delete(h.Clients, conn)
				}
			}
			h.mutex.Unlock()
		}
	}
}
