package relay

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a frame to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer. Must leave headroom over
	// the largest file chunk a client may send in one binary frame.
	maxMessageSize = 1 << 20 // 1 MiB

	// Outbound frames buffered per member before it is considered
	// unresponsive and evicted.
	sendQueueSize = 256
)

// Client is the server-side wrapper for one WebSocket connection. It
// implements Member: frames broadcast to it are queued on a buffered
// channel and drained by its write pump, so one slow member never
// blocks delivery to the rest of the room.
type Client struct {
	registry *Registry
	conn     *websocket.Conn
	roomID   string
	addr     string
	logger   *slog.Logger

	send chan Frame
	done chan struct{}
	once sync.Once
}

// NewClient wraps an upgraded connection for the given room. The caller
// must Join it to the registry and start both pumps.
func NewClient(registry *Registry, conn *websocket.Conn, roomID string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		registry: registry,
		conn:     conn,
		roomID:   roomID,
		addr:     conn.RemoteAddr().String(),
		logger:   logger,
		send:     make(chan Frame, sendQueueSize),
		done:     make(chan struct{}),
	}
}

// Deliver enqueues a frame for the write pump. It reports false when
// the queue is full or the client is closing.
func (c *Client) Deliver(f Frame) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.send <- f:
		return true
	default:
		return false
	}
}

// Close tears the connection down. Closing the underlying socket makes
// the read pump return, which runs the Leave path; Close is therefore
// the only cancellation primitive a client needs. Safe to call more
// than once.
func (c *Client) Close() {
	c.once.Do(func() {
		close(c.done)
		c.conn.Close()
	})
}

// ReadPump pumps frames from the connection into the registry's
// broadcast. It runs in a per-connection goroutine and owns all reads.
// Every exit path, graceful or not, leaves the room before returning.
func (c *Client) ReadPump() {
	defer func() {
		c.registry.Leave(c)
		c.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		mt, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Warn("read error", "room", c.roomID, "addr", c.addr, "err", err)
			}
			return
		}
		if mt != websocket.TextMessage && mt != websocket.BinaryMessage {
			continue
		}
		c.registry.Broadcast(c, Frame{Type: mt, Data: data})
	}
}

// WritePump drains the send queue to the connection and keeps it alive
// with periodic pings. It runs in a per-connection goroutine and owns
// all writes.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case f := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(f.Type, f.Data); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.done:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}
	}
}
