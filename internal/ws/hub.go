package ws

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/alexandria/journal-server/internal/domain"
	"github.com/google/uuid"
)

const (
	EventQuestionReceived = "question.received"
	EventQuestionAnswered = "question.answered"
)

type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// Hub tracks websocket clients per user and pushes journal events to them.
// Delivery is best effort: a slow or absent client never blocks the
// request that produced the event.
type Hub struct {
	clients    map[uuid.UUID]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	stop       chan struct{}
	done       chan struct{}

	mu sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[uuid.UUID]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	defer close(h.done)
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			conns := h.clients[client.userID]
			if conns == nil {
				conns = make(map[*Client]bool)
				h.clients[client.userID] = conns
			}
			conns[client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if conns, ok := h.clients[client.userID]; ok {
				if conns[client] {
					delete(conns, client)
					close(client.send)
					if len(conns) == 0 {
						delete(h.clients, client.userID)
					}
				}
			}
			h.mu.Unlock()

		case <-h.stop:
			h.mu.Lock()
			for _, conns := range h.clients {
				for client := range conns {
					close(client.send)
				}
			}
			h.clients = make(map[uuid.UUID]map[*Client]bool)
			h.mu.Unlock()
			return
		}
	}
}

func (h *Hub) Stop() {
	close(h.stop)
	<-h.done
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// QuestionAsked notifies the recipient that a new question arrived.
func (h *Hub) QuestionAsked(recipientID uuid.UUID, question *domain.Question) {
	h.sendToUser(recipientID, Event{Type: EventQuestionReceived, Payload: question})
}

// QuestionAnswered notifies the question's author that it was answered.
func (h *Hub) QuestionAnswered(authorID uuid.UUID, question *domain.Question, answer *domain.Answer) {
	h.sendToUser(authorID, Event{
		Type: EventQuestionAnswered,
		Payload: map[string]interface{}{
			"question": question,
			"answer":   answer,
		},
	})
}

func (h *Hub) sendToUser(userID uuid.UUID, event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("ERROR [ws.Hub] failed to marshal event: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients[userID] {
		select {
		case client.send <- data:
		default:
			// Client's buffer is full; drop the event rather than block.
		}
	}
}
