package main

import (
	"context"
	"log"
	"sync"
)

const (
	maxConnsPerIP = 5
	maxTotalConns = 64
)

// Hub tracks the renderer/controller connections attached to the bridge
type Hub struct {
	mu         sync.RWMutex
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	// Connection limiting (mutex-protected, accessed from HTTP handlers)
	connMu     sync.Mutex
	ipConns    map[string]int
	totalConns int

	keys *KeyState
	auth *Auth

	welcomeMu sync.RWMutex
	welcome   WelcomeMsg
}

// NewHub creates a Hub that feeds controller keys into keys
func NewHub(auth *Auth, keys *KeyState) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client, 16),
		unregister: make(chan *Client, 16),
		ipConns:    make(map[string]int),
		keys:       keys,
		auth:       auth,
	}
}

func (h *Hub) CanAccept(ip string) bool {
	h.connMu.Lock()
	defer h.connMu.Unlock()
	if h.totalConns >= maxTotalConns {
		return false
	}
	if h.ipConns[ip] >= maxConnsPerIP {
		return false
	}
	return true
}

func (h *Hub) TrackConnect(ip string) {
	h.connMu.Lock()
	defer h.connMu.Unlock()
	h.ipConns[ip]++
	h.totalConns++
}

func (h *Hub) TrackDisconnect(ip string) {
	h.connMu.Lock()
	defer h.connMu.Unlock()
	h.ipConns[ip]--
	if h.ipConns[ip] <= 0 {
		delete(h.ipConns, ip)
	}
	h.totalConns--
}

// Run processes register/unregister events until ctx is done
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			client.SendJSON(Envelope{T: BridgeWelcome, Data: h.Welcome(client.role)})

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			controllers := h.countRole(RoleController)
			h.mu.Unlock()
			if client.role == RoleController && controllers == 0 {
				h.keys.Release()
			}

		case <-ctx.Done():
			return
		}
	}
}

// countRole must be called with h.mu held
func (h *Hub) countRole(role string) int {
	n := 0
	for c := range h.clients {
		if c.role == role {
			n++
		}
	}
	return n
}

// SetWelcome replaces the attach message, e.g. after a reload regenerates the stars
func (h *Hub) SetWelcome(w WelcomeMsg) {
	h.welcomeMu.Lock()
	defer h.welcomeMu.Unlock()
	h.welcome = w
}

// Welcome returns the attach message for a role
func (h *Hub) Welcome(role string) WelcomeMsg {
	h.welcomeMu.RLock()
	defer h.welcomeMu.RUnlock()
	w := h.welcome
	w.Role = role
	return w
}

// PublishFrame encodes a frame once and queues it on every client. Slow
// clients drop frames; the next frame supersedes them.
func (h *Hub) PublishFrame(f *Frame) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if len(h.clients) == 0 {
		return
	}
	data, err := f.Encode()
	if err != nil {
		log.Printf("bridge: frame encode error: %v", err)
		return
	}
	for c := range h.clients {
		c.SendBinary(data)
	}
}

// ClientCount returns the number of attached clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
