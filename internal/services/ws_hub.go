package services

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// WSMessage represents a WebSocket message
type WSMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

// wsClient pairs a connection with its write mutex; gorilla/websocket allows
// only one concurrent writer per connection.
type wsClient struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *wsClient) write(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// WSHub manages WebSocket connections. There is a single hub; domain events
// are broadcast to every connected client, without per-adventure rooms.
type WSHub struct {
	mu          sync.RWMutex
	connections map[string]*wsClient
}

// NewWSHub creates a new WebSocket hub
func NewWSHub() *WSHub {
	return &WSHub{
		connections: make(map[string]*wsClient),
	}
}

// Register registers a new WebSocket connection for a participant
func (h *WSHub) Register(participantID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	// Close existing connection if any
	if existing, exists := h.connections[participantID]; exists {
		existing.conn.Close()
	}
	h.connections[participantID] = &wsClient{conn: conn}

	log.Info().Str("participant_id", participantID).Msg("WebSocket connection registered")
}

// Unregister removes a WebSocket connection for a participant
func (h *WSHub) Unregister(participantID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if client, exists := h.connections[participantID]; exists {
		client.conn.Close()
		delete(h.connections, participantID)
		log.Info().Str("participant_id", participantID).Msg("WebSocket connection unregistered")
	}
}

// IsOnline checks if a participant has a live connection
func (h *WSHub) IsOnline(participantID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, exists := h.connections[participantID]
	return exists
}

// SendToParticipant sends a message to one participant
func (h *WSHub) SendToParticipant(participantID string, message WSMessage) error {
	h.mu.RLock()
	client, exists := h.connections[participantID]
	h.mu.RUnlock()

	if !exists {
		return fmt.Errorf("participant %s is not connected", participantID)
	}

	data, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}
	if err := client.write(data); err != nil {
		h.Unregister(participantID)
		return fmt.Errorf("failed to send message: %w", err)
	}
	return nil
}

// Broadcast sends a message to all connected clients. Write failures evict
// the broken connection and are otherwise ignored.
func (h *WSHub) Broadcast(message WSMessage) {
	data, err := json.Marshal(message)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal broadcast message")
		return
	}

	h.mu.RLock()
	clients := make(map[string]*wsClient, len(h.connections))
	for id, client := range h.connections {
		clients[id] = client
	}
	h.mu.RUnlock()

	for id, client := range clients {
		if err := client.write(data); err != nil {
			log.Error().Err(err).Str("participant_id", id).Msg("Failed to broadcast message")
			h.Unregister(id)
		}
	}
}
