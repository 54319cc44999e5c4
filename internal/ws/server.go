package ws

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"holdem-server/internal/router"
	"holdem-server/internal/store"
)

const (
	defaultSendBuffer = 256
	handleTimeout     = 5 * time.Second
)

// Server accepts websocket connections. Each connection is one identity;
// every text frame holds one or more newline separated protocol lines.
type Server struct {
	router     *router.Router
	upgrader   websocket.Upgrader
	sendBuffer int
}

func NewServer(rt *router.Router) *Server {
	return &Server{
		router:     rt,
		upgrader:   websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
		sendBuffer: defaultSendBuffer,
	}
}

func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	c := newClient(store.NewPrefixedID("c"), conn, s.sendBuffer)
	s.router.Attach(c.id, c)
	connectionsActive.Add(1)
	log.Info().Str("conn_id", c.id).Str("remote", r.RemoteAddr).Msg("ws_connected")

	go c.writeLoop()
	s.readLoop(c)
}

func (s *Server) readLoop(c *Client) {
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), handleTimeout)
		s.router.Detach(ctx, c.id)
		cancel()
		c.close()
		connectionsActive.Add(-1)
		log.Info().Str("conn_id", c.id).Msg("ws_disconnected")
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		typ, msg, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug().Err(err).Str("conn_id", c.id).Msg("ws_read_failed")
			}
			return
		}
		if typ != websocket.TextMessage {
			continue
		}
		for _, line := range router.SplitLines(string(msg)) {
			ctx, cancel := context.WithTimeout(context.Background(), handleTimeout)
			s.router.Handle(ctx, c.id, line)
			cancel()
		}
		select {
		case <-c.done:
			return
		default:
		}
	}
}
