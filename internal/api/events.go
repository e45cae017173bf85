package api

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rentcore/rentcore/internal/stats"
	"github.com/rentcore/rentcore/internal/types"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingInterval   = (pongWait * 9) / 10
	maxMessageSize = 512
)

// eventClient forwards the controller's event feed over a websocket. The
// feed is push-only: incoming frames are read for keepalive handling and
// discarded.
type eventClient struct {
	conn   *websocket.Conn
	log    *log.Logger
	stats  stats.Provider
	events <-chan types.Event
	cancel func()
}

func (s *RentcoreApp) serveWs(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				return true
			}
			for _, allowed := range s.allowedOrigins {
				if allowed == "*" || allowed == origin {
					return true
				}
			}
			return false
		},
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Println("upgrade:", err)
		return
	}

	events, cancel := s.session.Subscribe()
	client := &eventClient{
		conn:   conn,
		log:    s.log,
		stats:  s.stats,
		events: events,
		cancel: cancel,
	}

	s.stats.Incr(stats.ConnectedClients)

	go client.write()
	go client.read()
}

func (c *eventClient) write() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close()
		c.log.Println("event write exiting")
	}()

	for {
		select {
		case ev, ok := <-c.events:
			if !ok {
				c.conn.SetWriteDeadline(time.Now().Add(writeWait))
				c.conn.WriteMessage(websocket.CloseMessage, nil)
				return
			}

			bytes, err := json.Marshal(ev)
			if err != nil {
				c.log.Println("failed to serialize event:", err)
				continue
			}

			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, bytes); err != nil {
				c.log.Println("ws: write:", err)
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *eventClient) read() {
	defer func() {
		c.conn.Close()
		c.cancel()
		c.stats.Decr(stats.ConnectedClients)
		c.log.Println("event read exiting")
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error { c.conn.SetReadDeadline(time.Now().Add(pongWait)); return nil })
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				c.log.Printf("ws: read: %v", err)
			}
			break
		}
	}
}
