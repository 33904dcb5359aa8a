package relay

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

// newRelayServer starts an httptest server carrying the room endpoint
// and returns it with its registry so tests can observe occupancy.
func newRelayServer(t *testing.T) (*httptest.Server, *Registry) {
	t.Helper()
	reg := NewRegistry(nil)
	mux := http.NewServeMux()
	mux.HandleFunc("/room/{roomID}", ServeRoom(reg, nil))
	mux.HandleFunc("/health", HealthHandler)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, reg
}

func dialRoom(t *testing.T, srv *httptest.Server, roomID string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/room/" + roomID
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial(%s) error: %v", url, err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

// waitForOccupancy polls the registry until the room reaches the wanted
// occupancy; join and leave happen asynchronously to the dial.
func waitForOccupancy(t *testing.T, reg *Registry, roomID string, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if reg.Occupancy(roomID) == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("Occupancy(%s) = %d, want %d", roomID, reg.Occupancy(roomID), want)
}

func readMessageWithin(t *testing.T, conn *websocket.Conn, d time.Duration) (int, []byte) {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(d))
	mt, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage() error: %v", err)
	}
	return mt, data
}

func TestHealthEndpoint(t *testing.T) {
	srv, _ := newRelayServer(t)

	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "healthy") {
		t.Errorf("body = %q, want it to mention healthy", body)
	}
}

// TestChatRelayBetweenClients runs the basic two-member scenario over a
// real WebSocket connection: a text frame from one member reaches the
// other verbatim and never echoes back to the sender.
func TestChatRelayBetweenClients(t *testing.T) {
	srv, reg := newRelayServer(t)

	alice := dialRoom(t, srv, "ABCD12")
	bob := dialRoom(t, srv, "ABCD12")
	waitForOccupancy(t, reg, "ABCD12", 2)

	msg := []byte(`{"type":"msg","sender":"alice","text":"hello"}`)
	if err := alice.WriteMessage(websocket.TextMessage, msg); err != nil {
		t.Fatalf("WriteMessage() error: %v", err)
	}

	mt, data := readMessageWithin(t, bob, 2*time.Second)
	if mt != websocket.TextMessage {
		t.Errorf("message type = %d, want text", mt)
	}
	if !bytes.Equal(data, msg) {
		t.Errorf("relayed frame = %q, want %q", data, msg)
	}

	// The sender must not see its own frame.
	alice.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	if _, _, err := alice.ReadMessage(); err == nil {
		t.Error("sender received its own broadcast")
	}
}

// TestBinaryPassthrough verifies binary frames cross the relay without
// inspection or alteration.
func TestBinaryPassthrough(t *testing.T) {
	srv, reg := newRelayServer(t)

	alice := dialRoom(t, srv, "ABCD12")
	bob := dialRoom(t, srv, "ABCD12")
	waitForOccupancy(t, reg, "ABCD12", 2)

	chunk := bytes.Repeat([]byte{0x00, 0xff, 0x42}, 1000)
	if err := alice.WriteMessage(websocket.BinaryMessage, chunk); err != nil {
		t.Fatalf("WriteMessage() error: %v", err)
	}

	mt, data := readMessageWithin(t, bob, 2*time.Second)
	if mt != websocket.BinaryMessage {
		t.Errorf("message type = %d, want binary", mt)
	}
	if !bytes.Equal(data, chunk) {
		t.Errorf("relayed chunk differs: got %d bytes, want %d", len(data), len(chunk))
	}
}

// TestRoomsAreIsolated verifies a frame broadcast in one room never
// reaches members of another.
func TestRoomsAreIsolated(t *testing.T) {
	srv, reg := newRelayServer(t)

	alice := dialRoom(t, srv, "ROOM-A")
	eve := dialRoom(t, srv, "ROOM-B")
	waitForOccupancy(t, reg, "ROOM-A", 1)
	waitForOccupancy(t, reg, "ROOM-B", 1)

	if err := alice.WriteMessage(websocket.TextMessage, []byte("secret")); err != nil {
		t.Fatalf("WriteMessage() error: %v", err)
	}

	eve.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	if _, _, err := eve.ReadMessage(); err == nil {
		t.Error("frame leaked across rooms")
	}
}

// TestDisconnectLeavesRoom verifies that dropping a connection removes
// the member, the survivor keeps working, and the room disappears when
// the last member goes.
func TestDisconnectLeavesRoom(t *testing.T) {
	srv, reg := newRelayServer(t)

	alice := dialRoom(t, srv, "ABCD12")
	bob := dialRoom(t, srv, "ABCD12")
	waitForOccupancy(t, reg, "ABCD12", 2)

	bob.Close()
	waitForOccupancy(t, reg, "ABCD12", 1)

	// The survivor can still broadcast without error.
	if err := alice.WriteMessage(websocket.TextMessage, []byte("anyone there?")); err != nil {
		t.Fatalf("WriteMessage() after peer disconnect error: %v", err)
	}

	alice.Close()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if reg.RoomCount() == 0 {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("RoomCount() = %d after all members disconnected, want 0", reg.RoomCount())
}

func TestMissingRoomIDRejected(t *testing.T) {
	srv, _ := newRelayServer(t)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/room/"
	if _, _, err := websocket.DefaultDialer.Dial(url, nil); err == nil {
		t.Error("dial without a room id succeeded")
	}
}
