package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ayusman/rockpaper/internal/detector"
)

// FeedBufferSize is how many landmark frames the feed holds before dropping
// the oldest.
const FeedBufferSize = 8

const writeWait = time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// LandmarkFeed accepts landmark frames pushed over WebSocket by an external
// tracker, such as a browser page running a hand-tracking model, and hands
// them to the game as a detector.Tracker.
type LandmarkFeed struct {
	frames    chan detector.Observation
	done      chan struct{}
	closeOnce sync.Once

	mu    sync.Mutex
	conns map[*websocket.Conn]bool
}

// NewLandmarkFeed creates an empty feed.
func NewLandmarkFeed() *LandmarkFeed {
	return &LandmarkFeed{
		frames: make(chan detector.Observation, FeedBufferSize),
		done:   make(chan struct{}),
		conns:  make(map[*websocket.Conn]bool),
	}
}

// ServeHTTP upgrades the connection and reads one JSON frame per message.
// Malformed messages are logged and skipped.
func (f *LandmarkFeed) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	select {
	case <-f.done:
		http.Error(w, "Feed closed", http.StatusServiceUnavailable)
		return
	default:
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	f.mu.Lock()
	f.conns[conn] = true
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		delete(f.conns, conn)
		f.mu.Unlock()
	}()

	log.Printf("Landmark feed connected from %s", r.RemoteAddr)
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}

		obs, err := detector.DecodeObservation(data)
		if err != nil {
			log.Printf("Landmark feed: %v", err)
			continue
		}
		f.push(obs)
	}
}

// push enqueues obs, dropping the oldest frame when the game lags.
func (f *LandmarkFeed) push(obs detector.Observation) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for {
		select {
		case f.frames <- obs:
			return
		default:
		}
		select {
		case <-f.frames:
		default:
		}
	}
}

// Next blocks until a frame arrives, ctx is done or the feed is closed.
func (f *LandmarkFeed) Next(ctx context.Context) (detector.Observation, error) {
	select {
	case <-ctx.Done():
		return detector.Observation{}, ctx.Err()
	case <-f.done:
		return detector.Observation{}, detector.ErrTrackerClosed
	case obs := <-f.frames:
		return obs, nil
	}
}

// Close disconnects every producer and ends the feed.
func (f *LandmarkFeed) Close() error {
	f.closeOnce.Do(func() {
		close(f.done)

		f.mu.Lock()
		defer f.mu.Unlock()
		for conn := range f.conns {
			conn.Close()
		}
	})
	return nil
}

// Connected returns the number of producers currently connected.
func (f *LandmarkFeed) Connected() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.conns)
}

// DisplayHub broadcasts published game frames to renderer clients.
type DisplayHub struct {
	mu      sync.RWMutex
	clients map[*displayClient]bool
	closed  bool
}

type displayClient struct {
	conn *websocket.Conn
	send chan []byte
}

// NewDisplayHub creates a hub with no clients.
func NewDisplayHub() *DisplayHub {
	return &DisplayHub{clients: make(map[*displayClient]bool)}
}

// ServeHTTP upgrades the connection and streams frames to it until the
// client disconnects.
func (h *DisplayHub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}

	c := &displayClient{conn: conn, send: make(chan []byte, 4)}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		conn.Close()
		return
	}
	h.clients[c] = true
	h.mu.Unlock()

	go c.writeLoop()

	// Keep connection alive by reading messages
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.remove(c)
}

func (h *DisplayHub) remove(c *displayClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[c] {
		delete(h.clients, c)
		close(c.send)
	}
}

func (c *displayClient) writeLoop() {
	defer c.conn.Close()
	for msg := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}

// Broadcast sends v as JSON to every client. Clients that are behind miss
// the message rather than stall the caller.
func (h *DisplayHub) Broadcast(v interface{}) error {
	msg, err := json.Marshal(v)
	if err != nil {
		return err
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
		}
	}
	return nil
}

// Clients returns the number of connected renderers.
func (h *DisplayHub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close disconnects every client.
func (h *DisplayHub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
}
