// Package remote lets a second device act as the touch screen. A phone page
// opens a websocket to the host and streams pointer samples as JSON; the
// bridge turns them into gamepad pointer events that the game loop drains
// once per frame.
package remote

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/Garsondee/Touch-Shooter/internal/gamepad"
	"github.com/gorilla/websocket"
	jsoniter "github.com/json-iterator/go"
	"github.com/kataras/golog"
)

var (
	logger = golog.Child("[remote]")
	json   = jsoniter.ConfigCompatibleWithStandardLibrary
)

const (
	// IDBase keeps remote pointer IDs clear of local touch IDs.
	IDBase = 1 << 16
	// idsPerConn is how many pointer IDs each connection may use.
	idsPerConn = 256

	// DefaultPath is where ListenAndServe mounts the bridge.
	DefaultPath = "/ws"

	writeWait = 5 * time.Second
)

// Message is one frame on the wire. Controllers send down, move and up
// samples; the host answers a new connection with a welcome carrying its
// screen size.
//
// When W and H are set on a sample, X and Y are in the controller's own
// screen space and get scaled to the host screen.
type Message struct {
	Type string  `json:"type"`
	ID   int     `json:"id,omitempty"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	W    float64 `json:"w,omitempty"`
	H    float64 `json:"h,omitempty"`
}

const (
	MessageDown    = "down"
	MessageMove    = "move"
	MessageUp      = "up"
	MessageWelcome = "welcome"
)

var messageKinds = map[string]gamepad.PointerKind{
	MessageDown: gamepad.PointerDown,
	MessageMove: gamepad.PointerMove,
	MessageUp:   gamepad.PointerUp,
}

// Bridge accepts controller connections and queues their pointer events.
type Bridge struct {
	screen   gamepad.Screen
	events   chan gamepad.PointerEvent
	done     chan struct{}
	upgrader websocket.Upgrader

	mu       sync.Mutex
	nextSlot int
	clients  map[*client]struct{}
	closed   bool
	dropped  int
}

type client struct {
	conn *websocket.Conn
	slot int
	down map[int]gamepad.Point
}

// NewBridge returns a bridge that maps remote coordinates onto screen and
// buffers up to buffer events between frames.
func NewBridge(screen gamepad.Screen, buffer int) *Bridge {
	if buffer <= 0 {
		buffer = 256
	}
	return &Bridge{
		screen: screen,
		events: make(chan gamepad.PointerEvent, buffer),
		done:   make(chan struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// Controllers are served from any LAN address.
				return true
			},
		},
		clients: make(map[*client]struct{}),
	}
}

// Events exposes the queue for callers that prefer to select on it.
func (b *Bridge) Events() <-chan gamepad.PointerEvent { return b.events }

// Drain hands every queued event to fn without blocking and returns how many
// it delivered.
func (b *Bridge) Drain(fn func(gamepad.PointerEvent)) int {
	n := 0
	for {
		select {
		case ev := <-b.events:
			fn(ev)
			n++
		default:
			return n
		}
	}
}

// Clients returns the number of open controller connections.
func (b *Bridge) Clients() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.clients)
}

// Dropped returns how many move samples were discarded because the queue was full.
func (b *Bridge) Dropped() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.dropped
}

// ServeHTTP upgrades the request and reads samples until the controller
// disconnects. Pointers still down at that point are released.
func (b *Bridge) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := b.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warnf("upgrade failed for %s: %v", r.RemoteAddr, err)
		return
	}
	c, err := b.register(conn)
	if err != nil {
		logger.Warnf("rejecting %s: %v", r.RemoteAddr, err)
		conn.Close()
		return
	}
	defer b.unregister(c)

	logger.Infof("controller %d connected from %s", c.slot, r.RemoteAddr)
	if err := b.welcome(c); err != nil {
		logger.Warnf("controller %d: %v", c.slot, err)
		return
	}
	b.readLoop(c)
}

func (b *Bridge) register(conn *websocket.Conn) (*client, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil, errors.New("bridge closed")
	}
	c := &client{conn: conn, slot: b.nextSlot, down: make(map[int]gamepad.Point)}
	b.nextSlot++
	b.clients[c] = struct{}{}
	return c, nil
}

func (b *Bridge) unregister(c *client) {
	for id, p := range c.down {
		b.push(gamepad.PointerEvent{Kind: gamepad.PointerUp, ID: b.pointerID(c, id), X: p.X, Y: p.Y})
	}
	b.mu.Lock()
	delete(b.clients, c)
	b.mu.Unlock()
	c.conn.Close()
	logger.Infof("controller %d disconnected", c.slot)
}

func (b *Bridge) welcome(c *client) error {
	w, h := b.screen.Size()
	data, err := json.Marshal(Message{Type: MessageWelcome, W: w, H: h})
	if err != nil {
		return fmt.Errorf("encode welcome: %w", err)
	}
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return fmt.Errorf("send welcome: %w", err)
	}
	return nil
}

func (b *Bridge) readLoop(c *client) {
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warnf("controller %d: %v", c.slot, err)
			}
			return
		}
		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			logger.Warnf("controller %d sent bad frame: %v", c.slot, err)
			continue
		}
		ev, err := b.translate(c, msg)
		if err != nil {
			logger.Warnf("controller %d: %v", c.slot, err)
			continue
		}
		switch ev.Kind {
		case gamepad.PointerDown:
			c.down[msg.ID] = ev.Position()
		case gamepad.PointerMove:
			if _, ok := c.down[msg.ID]; ok {
				c.down[msg.ID] = ev.Position()
			}
		case gamepad.PointerUp:
			delete(c.down, msg.ID)
		}
		b.push(ev)
	}
}

// translate maps a controller sample to a host pointer event.
func (b *Bridge) translate(c *client, msg Message) (gamepad.PointerEvent, error) {
	kind, ok := messageKinds[msg.Type]
	if !ok {
		return gamepad.PointerEvent{}, fmt.Errorf("unknown message type %q", msg.Type)
	}
	if msg.ID < 0 || msg.ID >= idsPerConn {
		return gamepad.PointerEvent{}, fmt.Errorf("pointer id %d out of range", msg.ID)
	}
	x, y := msg.X, msg.Y
	if msg.W > 0 && msg.H > 0 {
		w, h := b.screen.Size()
		x = x / msg.W * w
		y = y / msg.H * h
	}
	return gamepad.PointerEvent{Kind: kind, ID: b.pointerID(c, msg.ID), X: x, Y: y}, nil
}

func (b *Bridge) pointerID(c *client, id int) int {
	return IDBase + c.slot*idsPerConn + id
}

// push queues ev. Moves are dropped when the queue is full; downs and ups
// wait for the host to drain it.
func (b *Bridge) push(ev gamepad.PointerEvent) {
	if ev.Kind == gamepad.PointerMove {
		select {
		case b.events <- ev:
		default:
			b.mu.Lock()
			b.dropped++
			b.mu.Unlock()
		}
		return
	}
	select {
	case b.events <- ev:
	case <-b.done:
	}
}

// Close disconnects every controller and stops accepting new ones.
func (b *Bridge) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	close(b.done)
	conns := make([]*websocket.Conn, 0, len(b.clients))
	for c := range b.clients {
		conns = append(conns, c.conn)
	}
	b.mu.Unlock()

	var errs []error
	for _, conn := range conns {
		if err := conn.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ListenAndServe serves the bridge on addr at DefaultPath until ctx is done.
func ListenAndServe(ctx context.Context, addr string, b *Bridge) error {
	mux := http.NewServeMux()
	mux.Handle(DefaultPath, b)
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("remote controller bridge listening on %s%s", addr, DefaultPath)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("remote bridge: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), writeWait)
		defer cancel()
		b.Close()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown remote bridge: %w", err)
		}
		return nil
	}
}
