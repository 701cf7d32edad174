// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package devbackend

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/MKhiriev/go-task-desk/internal/logger"
	"github.com/MKhiriev/go-task-desk/internal/realtime"
	"github.com/MKhiriev/go-task-desk/models"
)

const (
	sendBuffer   = 64
	writeTimeout = 5 * time.Second
)

// Authenticator resolves an access token to the profile it was issued for.
type Authenticator interface {
	Authenticate(accessToken string) (models.Profile, error)
}

// RowChange is one committed row change offered to joined channels.
type RowChange struct {
	Table           string
	Type            realtime.ChangeType
	Record          any
	OldRecord       any
	CommitTimestamp time.Time

	// VisibleTo reports whether a viewer may receive the change.
	VisibleTo func(models.Profile) bool
}

// Hub serves realtime websocket connections and fans row changes out to
// the channels joined on them.
type Hub struct {
	auth     Authenticator
	upgrader websocket.Upgrader
	logger   *logger.Logger

	mu      sync.Mutex
	clients map[*hubClient]struct{}
}

// NewHub creates a hub that authorises joins with auth.
func NewHub(auth Authenticator, log *logger.Logger) *Hub {
	if log == nil {
		log = logger.Nop()
	}
	return &Hub{
		auth: auth,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		logger:  log.WithComponent("hub"),
		clients: make(map[*hubClient]struct{}),
	}
}

// ServeWS upgrades the request and serves the connection until it closes.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn().Err(err).Str("func", "Hub.ServeWS").Msg("websocket upgrade failed")
		return
	}

	c := &hubClient{
		hub:    h,
		conn:   conn,
		send:   make(chan realtime.Message, sendBuffer),
		done:   make(chan struct{}),
		topics: make(map[string]string),
	}

	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	go c.writeLoop()
	c.readLoop()
}

// Clients returns the number of open connections.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Publish offers change to every joined channel of its table whose viewer
// may see the row. It never blocks: a connection that cannot keep up is
// dropped.
func (h *Hub) Publish(change RowChange) {
	data := realtime.ChangeData{
		Type:            change.Type,
		Schema:          "public",
		Table:           change.Table,
		CommitTimestamp: change.CommitTimestamp,
	}
	var err error
	if change.Record != nil {
		if data.Record, err = json.Marshal(change.Record); err != nil {
			h.logger.Error().Err(err).Str("func", "Hub.Publish").Msg("encode record")
			return
		}
	}
	if change.OldRecord != nil {
		if data.OldRecord, err = json.Marshal(change.OldRecord); err != nil {
			h.logger.Error().Err(err).Str("func", "Hub.Publish").Msg("encode old record")
			return
		}
	}

	h.mu.Lock()
	clients := make([]*hubClient, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.Unlock()

	for _, c := range clients {
		for _, topic := range c.topicsFor(change.Table, change.VisibleTo) {
			msg, err := realtime.NewMessage(topic, realtime.EventChanges, "", realtime.ChangesPayload{Data: data})
			if err != nil {
				h.logger.Error().Err(err).Str("func", "Hub.Publish").Msg("encode change")
				return
			}
			c.enqueue(msg)
		}
	}
}

func (h *Hub) remove(c *hubClient) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
}

type hubClient struct {
	hub  *Hub
	conn *websocket.Conn
	send chan realtime.Message
	done chan struct{}

	closeOnce sync.Once

	mu      sync.Mutex
	profile models.Profile
	topics  map[string]string // topic -> table
}

func (c *hubClient) topicsFor(table string, visible func(models.Profile) bool) []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.profile.ID == "" || (visible != nil && !visible(c.profile)) {
		return nil
	}
	var out []string
	for topic, t := range c.topics {
		if t == table {
			out = append(out, topic)
		}
	}
	return out
}

func (c *hubClient) readLoop() {
	defer c.close()

	for {
		var msg realtime.Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.hub.logger.Debug().Err(err).Str("func", "hubClient.readLoop").Msg("connection closed")
			}
			return
		}

		switch msg.Event {
		case realtime.EventHeartbeat:
			c.reply(msg, realtime.StatusOK, nil)
		case realtime.EventJoin:
			c.join(msg)
		case realtime.EventAccessToken:
			c.rebind(msg)
		case realtime.EventLeave:
			c.mu.Lock()
			delete(c.topics, msg.Topic)
			c.mu.Unlock()
			c.reply(msg, realtime.StatusOK, nil)
		default:
			c.reply(msg, realtime.StatusError, realtime.ReplyError{Reason: "unknown event " + msg.Event})
		}
	}
}

func (c *hubClient) join(msg realtime.Message) {
	var payload realtime.JoinPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		c.reply(msg, realtime.StatusError, realtime.ReplyError{Reason: "malformed join"})
		return
	}
	if len(payload.Config.PostgresChanges) == 0 {
		c.reply(msg, realtime.StatusError, realtime.ReplyError{Reason: "no postgres_changes requested"})
		return
	}

	profile, err := c.hub.auth.Authenticate(payload.AccessToken)
	if err != nil {
		c.reply(msg, realtime.StatusError, realtime.ReplyError{Reason: "invalid access token"})
		return
	}

	c.mu.Lock()
	c.profile = profile
	c.topics[msg.Topic] = payload.Config.PostgresChanges[0].Table
	c.mu.Unlock()

	c.hub.logger.Debug().
		Str("func", "hubClient.join").
		Str("topic", msg.Topic).
		Str("user_id", profile.ID).
		Msg("channel joined")
	c.reply(msg, realtime.StatusOK, payload.Config)
}

func (c *hubClient) rebind(msg realtime.Message) {
	var payload realtime.AccessTokenPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		c.reply(msg, realtime.StatusError, realtime.ReplyError{Reason: "malformed access_token"})
		return
	}

	profile, err := c.hub.auth.Authenticate(payload.AccessToken)
	if err != nil {
		c.reply(msg, realtime.StatusError, realtime.ReplyError{Reason: "invalid access token"})
		return
	}

	c.mu.Lock()
	c.profile = profile
	c.mu.Unlock()
	c.reply(msg, realtime.StatusOK, nil)
}

func (c *hubClient) reply(to realtime.Message, status string, response any) {
	body := realtime.ReplyPayload{Status: status}
	if response != nil {
		raw, err := json.Marshal(response)
		if err != nil {
			return
		}
		body.Response = raw
	}

	msg, err := realtime.NewMessage(to.Topic, realtime.EventReply, to.Ref, body)
	if err != nil {
		return
	}
	c.enqueue(msg)
}

func (c *hubClient) enqueue(msg realtime.Message) {
	select {
	case <-c.done:
	case c.send <- msg:
	default:
		c.hub.logger.Warn().Str("func", "hubClient.enqueue").Msg("slow consumer, dropping connection")
		c.close()
	}
}

func (c *hubClient) writeLoop() {
	for {
		select {
		case <-c.done:
			return
		case msg := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.conn.WriteJSON(msg); err != nil {
				c.close()
				return
			}
		}
	}
}

func (c *hubClient) close() {
	c.closeOnce.Do(func() {
		close(c.done)
		_ = c.conn.Close()
		c.hub.remove(c)
	})
}
