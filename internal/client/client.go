// Package client manages a client's WebSocket connection to a relay
// room: dialing, keepalive, and ordered delivery of outbound control
// and binary frames.
package client

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/shreyansh0727/datasync/internal/protocol"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1 << 20 // matches the relay's read limit

	outgoingQueueSize = 64
)

// ErrClosed is returned by sends after the connection has shut down.
var ErrClosed = errors.New("connection closed")

// Frame is one received WebSocket message; Type distinguishes text
// (control) from binary (chunk) payloads.
type Frame struct {
	Type int
	Data []byte
}

// Conn is a live room connection. All outbound frames funnel through
// one write pump, so the order of SendControl/SendBinary calls from a
// single goroutine is the order on the wire - the property the chunk
// protocol's header-then-payload pairing depends on.
type Conn struct {
	conn     *websocket.Conn
	incoming chan Frame
	outgoing chan Frame
	done     chan struct{}
	once     sync.Once
}

// Dial connects to a room URL (ws://host/room/id) and starts the
// connection's pumps.
func Dial(roomURL string) (*Conn, error) {
	wsConn, _, err := websocket.DefaultDialer.Dial(roomURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", roomURL, err)
	}

	c := &Conn{
		conn:     wsConn,
		incoming: make(chan Frame, outgoingQueueSize),
		outgoing: make(chan Frame, outgoingQueueSize),
		done:     make(chan struct{}),
	}

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	go c.readPump()
	go c.writePump()

	return c, nil
}

func (c *Conn) readPump() {
	defer func() {
		c.conn.Close()
		close(c.incoming)
	}()

	c.conn.SetReadDeadline(time.Now().Add(pongWait))

	for {
		mt, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		if mt != websocket.TextMessage && mt != websocket.BinaryMessage {
			continue
		}
		select {
		case c.incoming <- Frame{Type: mt, Data: data}:
		case <-c.done:
			return
		}
	}
}

func (c *Conn) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case f := <-c.outgoing:
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
			// Drain queued frames before the close handshake so a
			// transfer finished just before Close is not truncated.
			for {
				select {
				case f := <-c.outgoing:
					c.conn.SetWriteDeadline(time.Now().Add(writeWait))
					if err := c.conn.WriteMessage(f.Type, f.Data); err != nil {
						return
					}
				default:
					c.conn.SetWriteDeadline(time.Now().Add(writeWait))
					c.conn.WriteMessage(websocket.CloseMessage, []byte{})
					return
				}
			}
		}
	}
}

func (c *Conn) enqueue(f Frame) error {
	select {
	case <-c.done:
		return ErrClosed
	default:
	}
	select {
	case c.outgoing <- f:
		return nil
	case <-c.done:
		return ErrClosed
	}
}

// SendControl encodes and queues a control frame.
func (c *Conn) SendControl(frame protocol.ControlFrame) error {
	data, err := protocol.Encode(frame)
	if err != nil {
		return err
	}
	return c.enqueue(Frame{Type: websocket.TextMessage, Data: data})
}

// SendBinary queues a binary frame. The caller must not reuse data
// until the frame has been written.
func (c *Conn) SendBinary(data []byte) error {
	return c.enqueue(Frame{Type: websocket.BinaryMessage, Data: data})
}

// SendChat is a convenience for queueing a chat frame.
func (c *Conn) SendChat(sender, text string) error {
	return c.SendControl(protocol.NewChat(sender, text))
}

// Incoming returns the channel of received frames. It is closed when
// the connection drops.
func (c *Conn) Incoming() <-chan Frame {
	return c.incoming
}

// Close shuts the connection down. Closing is the only cancellation
// primitive: any in-flight incoming transfers are simply abandoned with
// the connection. Safe to call more than once.
func (c *Conn) Close() {
	c.once.Do(func() {
		close(c.done)
	})
}
