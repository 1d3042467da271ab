package ws

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"clarityhire/internal/usecase"

	"github.com/google/uuid"
)

const EventApplicationSubmitted = "application_submitted"

type topicMessage struct {
	companyID uuid.UUID
	payload   []byte
}

// Hub fans events out to the recruiters connected for each company.
type Hub struct {
	clients    map[uuid.UUID]map[*Client]bool
	broadcast  chan topicMessage
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	stopOnce   sync.Once
	mutex      sync.RWMutex
	logger     *log.Logger
}

func NewHub(logger *log.Logger) *Hub {
	return &Hub{
		clients:    make(map[uuid.UUID]map[*Client]bool),
		broadcast:  make(chan topicMessage, 1024),
		register:   make(chan *Client, 128),
		unregister: make(chan *Client, 128),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.stopOnce.Do(func() { close(h.done) })
			h.closeAll()
			return

		case client := <-h.register:
			if client == nil {
				continue
			}
			h.mutex.Lock()
			set, ok := h.clients[client.companyID]
			if !ok {
				set = make(map[*Client]bool)
				h.clients[client.companyID] = set
			}
			set[client] = true
			total := len(set)
			h.mutex.Unlock()
			h.logf("WS connected | company_id=%s company_clients=%d", client.companyID, total)

		case client := <-h.unregister:
			if client == nil {
				continue
			}
			h.remove(client)

		case msg := <-h.broadcast:
			h.mutex.RLock()
			snapshot := make([]*Client, 0, len(h.clients[msg.companyID]))
			for c := range h.clients[msg.companyID] {
				snapshot = append(snapshot, c)
			}
			h.mutex.RUnlock()

			for _, client := range snapshot {
				select {
				case client.send <- msg.payload:
				default:
					h.remove(client)
				}
			}
			h.logf("WS broadcast | company_id=%s clients=%d", msg.companyID, len(snapshot))
		}
	}
}

func (h *Hub) remove(client *Client) {
	h.mutex.Lock()
	set := h.clients[client.companyID]
	if _, ok := set[client]; ok {
		delete(set, client)
		close(client.send)
		if len(set) == 0 {
			delete(h.clients, client.companyID)
		}
	}
	h.mutex.Unlock()
	h.logf("WS disconnected | company_id=%s", client.companyID)
}

// closeAll runs once Run has stopped. Clients still queued for registration
// never joined a topic, so their send channels are closed here as well.
func (h *Hub) closeAll() {
	h.mutex.Lock()
	for id, set := range h.clients {
		for c := range set {
			close(c.send)
		}
		delete(h.clients, id)
	}
	h.mutex.Unlock()

	for {
		select {
		case c := <-h.register:
			if c != nil {
				close(c.send)
			}
		case <-h.unregister:
		default:
			return
		}
	}
}

// Register queues client for its company topic. After the hub has stopped the
// client's send channel is closed instead so its write pump exits.
func (h *Hub) Register(client *Client) {
	if h == nil || client == nil {
		return
	}
	select {
	case <-h.done:
		close(client.send)
		return
	default:
	}
	select {
	case h.register <- client:
	case <-h.done:
		close(client.send)
	}
}

// Unregister is a no-op once the hub has stopped; shutdown already closed
// every registered client.
func (h *Hub) Unregister(client *Client) {
	if h == nil || client == nil {
		return
	}
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Broadcast queues payload for every client of the company. Messages are
// dropped when the queue is full.
func (h *Hub) Broadcast(companyID uuid.UUID, payload []byte) {
	if h == nil {
		return
	}
	select {
	case h.broadcast <- topicMessage{companyID: companyID, payload: payload}:
	default:
		h.logf("WS broadcast dropped | reason=buffer_full company_id=%s", companyID)
	}
}

type envelope struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// PublishApplication sends an application_submitted event to the company.
func (h *Hub) PublishApplication(companyID uuid.UUID, ev usecase.ApplicationEvent) {
	if h == nil {
		return
	}
	b, err := json.Marshal(envelope{Type: EventApplicationSubmitted, Data: ev})
	if err != nil {
		h.logf("WS encode failed | err=%v", err)
		return
	}
	h.Broadcast(companyID, b)
}

func (h *Hub) ClientCount(companyID uuid.UUID) int {
	if h == nil {
		return 0
	}
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients[companyID])
}

func (h *Hub) logf(format string, args ...any) {
	if h.logger != nil {
		h.logger.Printf(format, args...)
	}
}
