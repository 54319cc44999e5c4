package ws

import (
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 8192
	// lines written per frame at most
	maxBatch = 64
)

// Client is one websocket connection. It implements router.Outbox.
type Client struct {
	id   string
	conn *websocket.Conn
	send chan string
	once sync.Once
	done chan struct{}
}

func newClient(id string, conn *websocket.Conn, buffer int) *Client {
	return &Client{id: id, conn: conn, send: make(chan string, buffer), done: make(chan struct{})}
}

func (c *Client) ID() string {
	return c.id
}

// Send queues a line. A client that cannot keep up is disconnected rather
// than stalling the table that writes to it.
func (c *Client) Send(line string) bool {
	if safeSend(c.send, line) {
		return true
	}
	select {
	case <-c.done:
	default:
		slowClients.Add(1)
		log.Warn().Str("conn_id", c.id).Msg("ws_client_slow")
		c.close()
	}
	return false
}

func (c *Client) close() {
	c.once.Do(func() {
		close(c.done)
		safeClose(c.send)
	})
}

func (c *Client) writeLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()
	for {
		select {
		case line, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, []byte(c.batch(line))); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// batch joins line with whatever else is already queued into one frame.
func (c *Client) batch(first string) string {
	lines := []string{first}
	for len(lines) < maxBatch {
		select {
		case l, ok := <-c.send:
			if !ok {
				return strings.Join(lines, "\n")
			}
			lines = append(lines, l)
		default:
			return strings.Join(lines, "\n")
		}
	}
	return strings.Join(lines, "\n")
}

func safeClose(ch chan string) {
	defer func() {
		_ = recover()
	}()
	close(ch)
}

func safeSend(ch chan string, msg string) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	select {
	case ch <- msg:
		return true
	default:
		return false
	}
}
