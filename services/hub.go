package services

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Hub fans leaderboard updates out to WebSocket subscribers. Each
// client watches a single quiz and receives a fresh snapshot on connect
// and after every finalized submission.
type Hub struct {
	clients      map[*Client]bool
	register     chan *Client
	unregister   chan *Client
	mutex        sync.RWMutex
	leaderboards *LeaderboardService
}

type Client struct {
	hub    *Hub
	id     string
	socket *websocket.Conn
	send   chan []byte
	quizID uint
}

type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

func NewHub(leaderboards *LeaderboardService) *Hub {
	return &Hub{
		clients:      make(map[*Client]bool),
		register:     make(chan *Client),
		unregister:   make(chan *Client),
		leaderboards: leaderboards,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			h.mutex.Unlock()
			log.Printf("Leaderboard client %s registered for quiz %d - total clients: %d", client.id, client.quizID, h.clientCount())

		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mutex.Unlock()
			log.Printf("Leaderboard client %s unregistered for quiz %d - total clients: %d", client.id, client.quizID, h.clientCount())
		}
	}
}

func (h *Hub) clientCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

// snapshotMessage builds a serialized leaderboard message for a quiz.
func (h *Hub) snapshotMessage(quizID uint, msgType string) ([]byte, error) {
	entries, err := h.leaderboards.GetLeaderboard(quizID)
	if err != nil {
		return nil, err
	}

	return json.Marshal(Message{
		Type: msgType,
		Payload: map[string]interface{}{
			"quiz_id":     quizID,
			"leaderboard": entries,
		},
	})
}

// BroadcastLeaderboard reads the current standings for a quiz and pushes
// them to every subscriber of that quiz.
func (h *Hub) BroadcastLeaderboard(quizID uint) {
	data, err := h.snapshotMessage(quizID, "leaderboard_update")
	if err != nil {
		log.Printf("Error building leaderboard update for quiz %d: %v", quizID, err)
		return
	}

	h.mutex.Lock()
	for client := range h.clients {
		if client.quizID != quizID {
			continue
		}
		select {
		case client.send <- data:
		default:
			close(client.send)
			delete(h.clients, client)
		}
	}
	h.mutex.Unlock()
}

// RegisterClient wires a fresh WebSocket connection into the hub and
// starts its read/write pumps. The initial snapshot is queued before
// the pumps start so subscribers never begin with a blank board.
func (h *Hub) RegisterClient(conn *websocket.Conn, quizID uint) *Client {
	client := &Client{
		hub:    h,
		id:     uuid.NewString(),
		socket: conn,
		send:   make(chan []byte, 256),
		quizID: quizID,
	}

	if data, err := h.snapshotMessage(quizID, "leaderboard_snapshot"); err == nil {
		client.send <- data
	}

	h.register <- client

	go client.writePump()
	go client.readPump()

	return client
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.socket.Close()
	}()

	for {
		_, message, err := c.socket.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket read error: %v", err)
			}
			break
		}

		var msg Message
		if err := json.Unmarshal(message, &msg); err != nil {
			log.Printf("Error unmarshaling message: %v", err)
			continue
		}

		c.handleMessage(msg)
	}
}

func (c *Client) writePump() {
	defer c.socket.Close()

	for message := range c.send {
		w, err := c.socket.NextWriter(websocket.TextMessage)
		if err != nil {
			return
		}

		w.Write(message)

		if err := w.Close(); err != nil {
			return
		}
	}

	c.socket.WriteMessage(websocket.CloseMessage, []byte{})
}

func (c *Client) handleMessage(msg Message) {
	switch msg.Type {
	case "ping":
		response := Message{Type: "pong", Payload: "pong"}
		data, _ := json.Marshal(response)
		c.send <- data

	case "refresh":
		// Only the requesting client gets the fresh snapshot.
		data, err := c.hub.snapshotMessage(c.quizID, "leaderboard_snapshot")
		if err != nil {
			log.Printf("Error building leaderboard snapshot for quiz %d: %v", c.quizID, err)
			return
		}
		c.send <- data

	default:
		log.Printf("Unknown message type %q from leaderboard client %s", msg.Type, c.id)
	}
}
