// Daybreak - Shared Deadline To-Do Lists with Daily Rollover
// Copyright 2026 Daybreak Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/daybreak-labs/daybreak

// Package websocket pushes live list updates to connected clients.
//
// Each connection subscribes to exactly one list; a later subscribe
// replaces the earlier one. Handlers broadcast only after the store
// commit succeeds, so every event a subscriber sees is durable.
package websocket

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/daybreak-labs/daybreak/internal/logging"
	"github.com/daybreak-labs/daybreak/internal/metrics"
	"github.com/daybreak-labs/daybreak/internal/models"
)

// ShutdownReason identifies why the hub is shutting down.
type ShutdownReason string

const (
	// ShutdownReasonContextCanceled is the normal graceful shutdown
	// path (e.g. SIGTERM).
	ShutdownReasonContextCanceled ShutdownReason = "context_canceled"

	// ShutdownReasonContextDeadline may indicate a hung operation
	// during shutdown.
	ShutdownReasonContextDeadline ShutdownReason = "context_deadline"
)

// Message types exchanged with clients.
const (
	MessageTypeSubscribe   = "subscribe"
	MessageTypeSubscribed  = "subscribed"
	MessageTypePing        = "ping"
	MessageTypePong        = "pong"
	MessageTypeTodoAdded   = "todo-added"
	MessageTypeTodoUpdated = "todo-updated"
	MessageTypeTodoDeleted = "todo-deleted"
	MessageTypeRollover    = "rollover"
	MessageTypeAlert       = "alert"
)

// Message is a WebSocket frame in both directions.
type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

// SubscribeData is the payload of a client's subscribe message.
type SubscribeData struct {
	ListID string `json:"listId"`
}

// TodoDeletedData is the payload of a todo-deleted event.
type TodoDeletedData struct {
	ID     string `json:"id"`
	ListID string `json:"listId"`
}

// AlertData is the payload of a deadline alert pushed to a task's
// list subscribers.
type AlertData struct {
	TodoID           string `json:"todoId"`
	ListID           string `json:"listId"`
	Title            string `json:"title"`
	Kind             string `json:"kind"`
	RemainingSeconds int    `json:"remainingSeconds"`
	Message          string `json:"message"`
}

// RolloverData is the payload of a rollover event.
type RolloverData struct {
	ListID     string `json:"listId"`
	ResetCount int64  `json:"resetCount"`
	Timestamp  string `json:"timestamp"`
}

// subscription pairs a client with the list it wants events for.
type subscription struct {
	client *Client
	listID string
}

// listMessage is a broadcast targeted at one list's subscribers.
type listMessage struct {
	listID  string
	message Message
}

// Hub tracks connected clients, their list subscriptions, and fans
// out list events to the matching subscribers.
type Hub struct {
	// clients maps each connected client to its subscribed list ID.
	// The empty string means connected but not yet subscribed.
	clients map[*Client]string

	broadcast  chan listMessage
	subscribe  chan subscription
	Register   chan *Client
	Unregister chan *Client
	mu         sync.RWMutex
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		broadcast:  make(chan listMessage, 256),
		subscribe:  make(chan subscription, 64),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		clients:    make(map[*Client]string),
	}
}

// RunWithContext starts the hub with context support for graceful
// shutdown under suture supervision. When the context is canceled all
// connected clients are closed and ctx.Err() is returned, so a
// supervisor restart never leaves orphaned connections.
//
// Uses priority-based selection so behavior is predictable when
// multiple channels are ready:
//   - Priority 1: context cancellation
//   - Priority 2: client lifecycle (Register/Unregister/subscribe)
//   - Priority 3: broadcast messages
func (h *Hub) RunWithContext(ctx context.Context) error {
	for {
		// Priority 1: shutdown (non-blocking check).
		select {
		case <-ctx.Done():
			h.logGracefulShutdown(ctx)
			return ctx.Err()
		default:
		}

		// Priority 2: lifecycle events (non-blocking check).
		select {
		case client := <-h.Register:
			h.registerClient(client)
			continue
		case client := <-h.Unregister:
			h.unregisterClient(client)
			continue
		case sub := <-h.subscribe:
			h.subscribeClient(sub)
			continue
		default:
		}

		// Priority 3: broadcasts, or wait for any event.
		select {
		case <-ctx.Done():
			h.logGracefulShutdown(ctx)
			return ctx.Err()

		case client := <-h.Register:
			h.registerClient(client)

		case client := <-h.Unregister:
			h.unregisterClient(client)

		case sub := <-h.subscribe:
			h.subscribeClient(sub)

		case msg := <-h.broadcast:
			h.broadcastToSubscribers(msg)
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	h.clients[client] = ""
	total := len(h.clients)
	h.mu.Unlock()
	metrics.WSConnections.Set(float64(total))
	logging.Info().Int("total_clients", total).Msg("websocket client connected")
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
	}
	total := len(h.clients)
	h.mu.Unlock()
	metrics.WSConnections.Set(float64(total))
	logging.Info().Int("total_clients", total).Msg("websocket client disconnected")
}

// subscribeClient records the client's list. A later subscribe
// replaces the earlier one, so a client follows one list at a time.
func (h *Hub) subscribeClient(sub subscription) {
	h.mu.Lock()
	if _, ok := h.clients[sub.client]; !ok {
		h.mu.Unlock()
		return
	}
	h.clients[sub.client] = sub.listID
	h.mu.Unlock()

	ack := Message{
		Type: MessageTypeSubscribed,
		Data: SubscribeData{ListID: sub.listID},
	}
	select {
	case sub.client.send <- ack:
	default:
	}
	logging.Debug().Str("list_id", sub.listID).Msg("websocket client subscribed")
}

// broadcastToSubscribers sends a message to every client subscribed
// to the target list, in client ID order so delivery is deterministic
// within a process run.
func (h *Hub) broadcastToSubscribers(msg listMessage) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients := make([]*Client, 0, len(h.clients))
	for client, listID := range h.clients {
		if listID == msg.listID {
			clients = append(clients, client)
		}
	}
	sort.Slice(clients, func(i, j int) bool {
		return clients[i].id < clients[j].id
	})

	// Slow clients get dropped instead of blocking the hub.
	var toRemove []*Client
	for _, client := range clients {
		select {
		case client.send <- msg.message:
		default:
			toRemove = append(toRemove, client)
		}
	}

	for _, client := range toRemove {
		close(client.send)
		delete(h.clients, client)
	}
	if len(toRemove) > 0 {
		metrics.WSConnections.Set(float64(len(h.clients)))
	}
}

func (h *Hub) logGracefulShutdown(ctx context.Context) {
	clientCount := h.GetClientCount()
	h.closeAllClients()

	logging.Info().
		Str("component", "websocket-hub").
		Str("reason", string(getShutdownReason(ctx))).
		Int("clients_closed", clientCount).
		Msg("websocket hub stopped")
}

func getShutdownReason(ctx context.Context) ShutdownReason {
	switch ctx.Err() {
	case context.Canceled:
		return ShutdownReasonContextCanceled
	case context.DeadlineExceeded:
		return ShutdownReasonContextDeadline
	default:
		return ShutdownReasonContextCanceled
	}
}

// closeAllClients closes clients in ID order during shutdown.
func (h *Hub) closeAllClients() {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients := make([]*Client, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	sort.Slice(clients, func(i, j int) bool {
		return clients[i].id < clients[j].id
	})

	for _, client := range clients {
		close(client.send)
		delete(h.clients, client)
	}
	metrics.WSConnections.Set(0)
}

// enqueue hands a list-scoped message to the hub loop, dropping it
// when the channel is full rather than blocking a request handler.
func (h *Hub) enqueue(listID string, message Message) {
	select {
	case h.broadcast <- listMessage{listID: listID, message: message}:
		metrics.RecordBroadcast(message.Type)
	default:
		logging.Warn().
			Str("message_type", message.Type).
			Str("list_id", listID).
			Msg("broadcast channel full, dropping message")
	}
}

// BroadcastTodoAdded notifies a list's subscribers of a new todo.
func (h *Hub) BroadcastTodoAdded(todo *models.Todo) {
	h.enqueue(todo.ListID, Message{Type: MessageTypeTodoAdded, Data: todo})
}

// BroadcastTodoUpdated notifies a list's subscribers of a changed todo.
func (h *Hub) BroadcastTodoUpdated(todo *models.Todo) {
	h.enqueue(todo.ListID, Message{Type: MessageTypeTodoUpdated, Data: todo})
}

// BroadcastTodoDeleted notifies a list's subscribers of a removed todo.
func (h *Hub) BroadcastTodoDeleted(listID, todoID string) {
	h.enqueue(listID, Message{
		Type: MessageTypeTodoDeleted,
		Data: TodoDeletedData{ID: todoID, ListID: listID},
	})
}

// BroadcastAlert pushes a deadline alert to a task's list subscribers.
func (h *Hub) BroadcastAlert(alert AlertData) {
	h.enqueue(alert.ListID, Message{Type: MessageTypeAlert, Data: alert})
}

// BroadcastRollover notifies a list's subscribers that its completed
// todos were reset for the new day.
func (h *Hub) BroadcastRollover(listID string, resetCount int64) {
	h.enqueue(listID, Message{
		Type: MessageTypeRollover,
		Data: RolloverData{
			ListID:     listID,
			ResetCount: resetCount,
			Timestamp:  time.Now().UTC().Format(time.RFC3339),
		},
	})
}

// GetClientCount returns the number of connected clients.
func (h *Hub) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// SubscriberCount returns how many clients follow the given list.
func (h *Hub) SubscriberCount(listID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	count := 0
	for _, id := range h.clients {
		if id == listID {
			count++
		}
	}
	return count
}
