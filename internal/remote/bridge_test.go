package remote

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Garsondee/Touch-Shooter/internal/gamepad"
	"github.com/gorilla/websocket"
)

func startBridge(t *testing.T) (*Bridge, *websocket.Conn) {
	t.Helper()
	b := NewBridge(gamepad.FixedScreen{Width: 800, Height: 480}, 16)
	srv := httptest.NewServer(b)
	t.Cleanup(func() {
		b.Close()
		srv.Close()
	})

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	var hello Message
	if err := conn.ReadJSON(&hello); err != nil {
		t.Fatalf("read welcome: %v", err)
	}
	if hello.Type != MessageWelcome || hello.W != 800 || hello.H != 480 {
		t.Fatalf("welcome = %+v", hello)
	}
	return b, conn
}

func send(t *testing.T, conn *websocket.Conn, msg Message) {
	t.Helper()
	if err := conn.WriteJSON(msg); err != nil {
		t.Fatalf("write %+v: %v", msg, err)
	}
}

func next(t *testing.T, b *Bridge) gamepad.PointerEvent {
	t.Helper()
	select {
	case ev := <-b.Events():
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a pointer event")
	}
	return gamepad.PointerEvent{}
}

func TestBridge_DeliversEvents(t *testing.T) {
	b, conn := startBridge(t)
	send(t, conn, Message{Type: MessageDown, ID: 1, X: 100, Y: 200})
	send(t, conn, Message{Type: MessageMove, ID: 1, X: 150, Y: 200})
	send(t, conn, Message{Type: MessageUp, ID: 1, X: 150, Y: 200})

	want := []gamepad.PointerEvent{
		{Kind: gamepad.PointerDown, ID: IDBase + 1, X: 100, Y: 200},
		{Kind: gamepad.PointerMove, ID: IDBase + 1, X: 150, Y: 200},
		{Kind: gamepad.PointerUp, ID: IDBase + 1, X: 150, Y: 200},
	}
	for i, w := range want {
		if got := next(t, b); got != w {
			t.Fatalf("event %d = %v, want %v", i, got, w)
		}
	}
	if b.Clients() != 1 {
		t.Fatalf("clients = %d, want 1", b.Clients())
	}
}

func TestBridge_ScalesControllerCoordinates(t *testing.T) {
	b, conn := startBridge(t)
	send(t, conn, Message{Type: MessageDown, ID: 0, X: 200, Y: 120, W: 400, H: 240})

	ev := next(t, b)
	if ev.X != 400 || ev.Y != 240 {
		t.Fatalf("scaled position = (%v,%v), want (400,240)", ev.X, ev.Y)
	}
}

func TestBridge_SkipsBadFrames(t *testing.T) {
	b, conn := startBridge(t)
	if err := conn.WriteMessage(websocket.TextMessage, []byte("{not json")); err != nil {
		t.Fatalf("write: %v", err)
	}
	send(t, conn, Message{Type: "pinch", ID: 1})
	send(t, conn, Message{Type: MessageDown, ID: idsPerConn})
	send(t, conn, Message{Type: MessageDown, ID: 2, X: 10, Y: 10})

	if ev := next(t, b); ev.Kind != gamepad.PointerDown || ev.ID != IDBase+2 {
		t.Fatalf("first valid event = %v", ev)
	}
}

func TestBridge_DisconnectReleasesPointers(t *testing.T) {
	b, conn := startBridge(t)
	send(t, conn, Message{Type: MessageDown, ID: 3, X: 50, Y: 60})
	send(t, conn, Message{Type: MessageMove, ID: 3, X: 70, Y: 60})
	next(t, b)
	next(t, b)

	conn.Close()
	ev := next(t, b)
	if ev.Kind != gamepad.PointerUp || ev.ID != IDBase+3 || ev.X != 70 {
		t.Fatalf("disconnect event = %v, want up for pointer 3 at x=70", ev)
	}
}

func TestBridge_DrainIsNonBlocking(t *testing.T) {
	b := NewBridge(gamepad.FixedScreen{Width: 10, Height: 10}, 4)
	if n := b.Drain(func(gamepad.PointerEvent) {}); n != 0 {
		t.Fatalf("drained %d events from an empty bridge", n)
	}
	b.push(gamepad.PointerEvent{Kind: gamepad.PointerDown, ID: 1})
	b.push(gamepad.PointerEvent{Kind: gamepad.PointerMove, ID: 1})

	var got []gamepad.PointerKind
	b.Drain(func(ev gamepad.PointerEvent) { got = append(got, ev.Kind) })
	if len(got) != 2 || got[0] != gamepad.PointerDown || got[1] != gamepad.PointerMove {
		t.Fatalf("drained %v", got)
	}
}

func TestBridge_DropsMovesWhenFull(t *testing.T) {
	b := NewBridge(gamepad.FixedScreen{Width: 10, Height: 10}, 1)
	b.push(gamepad.PointerEvent{Kind: gamepad.PointerMove, ID: 1})
	b.push(gamepad.PointerEvent{Kind: gamepad.PointerMove, ID: 1})
	if b.Dropped() != 1 {
		t.Fatalf("dropped = %d, want 1", b.Dropped())
	}
}
