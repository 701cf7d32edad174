// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/MKhiriev/go-task-desk/internal/logger"
)

const (
	defaultHeartbeatInterval = 25 * time.Second
	defaultJoinTimeout       = 10 * time.Second
	defaultWriteTimeout      = 5 * time.Second
	eventBuffer              = 256
)

// Settings configures a websocket Feed.
type Settings struct {
	// BaseURL is the backend address, e.g. "http://localhost:8090". The
	// websocket endpoint is derived from it.
	BaseURL string

	// APIKey is the public project key sent as a query parameter.
	APIKey string

	HeartbeatInterval time.Duration
	JoinTimeout       time.Duration
	WriteTimeout      time.Duration
}

func (s Settings) withDefaults() Settings {
	if s.HeartbeatInterval <= 0 {
		s.HeartbeatInterval = defaultHeartbeatInterval
	}
	if s.JoinTimeout <= 0 {
		s.JoinTimeout = defaultJoinTimeout
	}
	if s.WriteTimeout <= 0 {
		s.WriteTimeout = defaultWriteTimeout
	}
	return s
}

// SocketURL returns the websocket endpoint for baseURL.
func SocketURL(baseURL, apiKey string) (string, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return "", fmt.Errorf("parse realtime base url: %w", err)
	}
	switch u.Scheme {
	case "http", "ws":
		u.Scheme = "ws"
	case "https", "wss":
		u.Scheme = "wss"
	default:
		return "", fmt.Errorf("unsupported realtime url scheme %q", u.Scheme)
	}
	u.Path += "/realtime/v1/websocket"
	q := u.Query()
	q.Set("apikey", apiKey)
	q.Set("vsn", "1.0.0")
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// WebsocketFeed opens one websocket connection per channel.
type WebsocketFeed struct {
	settings Settings
	dialer   *websocket.Dialer
	log      *logger.Logger
}

// NewWebsocketFeed creates a Feed talking to settings.BaseURL.
func NewWebsocketFeed(settings Settings, log *logger.Logger) *WebsocketFeed {
	settings = settings.withDefaults()
	if log == nil {
		log = logger.Nop()
	}
	return &WebsocketFeed{
		settings: settings,
		dialer: &websocket.Dialer{
			HandshakeTimeout: settings.JoinTimeout,
		},
		log: log.WithComponent("realtime"),
	}
}

// Subscribe dials the server, joins sub.Topic with sub.Token attached and
// waits for the acknowledgement.
func (f *WebsocketFeed) Subscribe(ctx context.Context, sub Subscription) (Channel, error) {
	if sub.Token == "" {
		return nil, ErrNoToken
	}

	endpoint, err := SocketURL(f.settings.BaseURL, f.settings.APIKey)
	if err != nil {
		return nil, err
	}

	conn, _, err := f.dialer.DialContext(ctx, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("dial realtime: %w", err)
	}

	ch := &wsChannel{
		topic:    TopicPrefix + sub.Topic,
		conn:     conn,
		settings: f.settings,
		log:      &logger.Logger{Logger: f.log.With().Str("topic", sub.Topic).Logger()},
		events:   make(chan Change, eventBuffer),
		done:     make(chan struct{}),
	}

	if err = ch.join(ctx, sub); err != nil {
		_ = conn.Close()
		return nil, err
	}

	ch.wg.Add(2)
	go ch.readLoop()
	go ch.heartbeatLoop()

	ch.log.Debug().Str("func", "WebsocketFeed.Subscribe").Msg("channel joined")
	return ch, nil
}

type wsChannel struct {
	topic    string
	conn     *websocket.Conn
	settings Settings
	log      *logger.Logger

	writeMu sync.Mutex
	ref     atomic.Uint64

	events chan Change
	done   chan struct{}

	closeOnce sync.Once
	errMu     sync.Mutex
	err       error
	wg        sync.WaitGroup
}

func (c *wsChannel) Events() <-chan Change { return c.events }

func (c *wsChannel) Done() <-chan struct{} { return c.done }

func (c *wsChannel) Err() error {
	c.errMu.Lock()
	defer c.errMu.Unlock()
	return c.err
}

func (c *wsChannel) SetAuth(token string) error {
	if token == "" {
		return ErrNoToken
	}
	select {
	case <-c.done:
		return ErrChannelClosed
	default:
	}
	if err := c.send(c.topic, EventAccessToken, AccessTokenPayload{AccessToken: token}); err != nil {
		return fmt.Errorf("rebind channel credential: %w", err)
	}
	c.log.Debug().Str("func", "wsChannel.SetAuth").Msg("credential rebound")
	return nil
}

func (c *wsChannel) Close() error {
	select {
	case <-c.done:
	default:
		if err := c.send(c.topic, EventLeave, nil); err != nil {
			c.log.Debug().Err(err).Str("func", "wsChannel.Close").Msg("leave not delivered")
		}
	}
	c.terminate(nil)
	c.wg.Wait()
	return nil
}

func (c *wsChannel) join(ctx context.Context, sub Subscription) error {
	stop := context.AfterFunc(ctx, func() { _ = c.conn.Close() })
	defer stop()

	joinRef := c.nextRef()
	payload := JoinPayload{
		Config: JoinConfig{PostgresChanges: []ChangeFilter{{
			Event:  "*",
			Schema: "public",
			Table:  sub.Table,
		}}},
		AccessToken: sub.Token,
	}
	msg, err := NewMessage(c.topic, EventJoin, joinRef, payload)
	if err != nil {
		return err
	}
	if err = c.write(msg); err != nil {
		return fmt.Errorf("send join: %w", err)
	}

	deadline := time.Now().Add(c.settings.JoinTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	_ = c.conn.SetReadDeadline(deadline)
	defer func() { _ = c.conn.SetReadDeadline(time.Time{}) }()

	for {
		var reply Message
		if err = c.conn.ReadJSON(&reply); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			var netErr interface{ Timeout() bool }
			if errors.As(err, &netErr) && netErr.Timeout() {
				return ErrJoinTimeout
			}
			return fmt.Errorf("await join reply: %w", err)
		}
		if reply.Event != EventReply || reply.Ref != joinRef {
			continue
		}

		var body ReplyPayload
		if err = json.Unmarshal(reply.Payload, &body); err != nil {
			return fmt.Errorf("%w: join reply: %v", ErrMalformedMessage, err)
		}
		if body.Status != StatusOK {
			var reason ReplyError
			_ = json.Unmarshal(body.Response, &reason)
			return fmt.Errorf("%w: %s", ErrJoinRejected, reason.Reason)
		}
		return nil
	}
}

func (c *wsChannel) readLoop() {
	defer c.wg.Done()
	defer close(c.events)

	for {
		_ = c.conn.SetReadDeadline(time.Now().Add(2 * c.settings.HeartbeatInterval))

		var msg Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			c.terminate(fmt.Errorf("read realtime frame: %w", err))
			return
		}
		receivedAt := time.Now()

		switch {
		case msg.Topic == PhoenixTopic:
			// heartbeat replies only refresh the read deadline
		case msg.Event == EventChanges:
			var payload ChangesPayload
			if err := json.Unmarshal(msg.Payload, &payload); err != nil {
				c.log.Warn().Err(err).Str("func", "wsChannel.readLoop").Msg("dropping undecodable change")
				continue
			}
			change, err := changeFromData(payload.Data, receivedAt)
			if err != nil {
				c.log.Warn().Err(err).Str("func", "wsChannel.readLoop").Msg("dropping change")
				continue
			}
			select {
			case c.events <- change:
			case <-c.done:
				return
			}
		case msg.Event == EventReply:
			var body ReplyPayload
			if err := json.Unmarshal(msg.Payload, &body); err == nil && body.Status == StatusError {
				var reason ReplyError
				_ = json.Unmarshal(body.Response, &reason)
				c.log.Warn().Str("func", "wsChannel.readLoop").Str("reason", reason.Reason).Msg("server rejected request")
			}
		case msg.Event == EventError, msg.Event == EventClose:
			c.terminate(fmt.Errorf("%w: %s", ErrServerClosed, msg.Event))
			return
		default:
			c.log.Debug().Str("func", "wsChannel.readLoop").Str("event", msg.Event).Msg("ignoring frame")
		}
	}
}

func (c *wsChannel) heartbeatLoop() {
	defer c.wg.Done()

	ticker := time.NewTicker(c.settings.HeartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			if err := c.send(PhoenixTopic, EventHeartbeat, nil); err != nil {
				c.terminate(fmt.Errorf("send heartbeat: %w", err))
				return
			}
		}
	}
}

func (c *wsChannel) send(topic, event string, payload any) error {
	msg, err := NewMessage(topic, event, c.nextRef(), payload)
	if err != nil {
		return err
	}
	return c.write(msg)
}

func (c *wsChannel) write(msg Message) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	_ = c.conn.SetWriteDeadline(time.Now().Add(c.settings.WriteTimeout))
	return c.conn.WriteJSON(msg)
}

func (c *wsChannel) nextRef() string {
	return strconv.FormatUint(c.ref.Add(1), 10)
}

// terminate records cause (nil for a local Close) and releases the socket.
func (c *wsChannel) terminate(cause error) {
	c.closeOnce.Do(func() {
		c.errMu.Lock()
		c.err = cause
		c.errMu.Unlock()

		if cause != nil {
			c.log.Warn().Err(cause).Str("func", "wsChannel.terminate").Msg("channel terminated")
		}
		close(c.done)

		c.writeMu.Lock()
		_ = c.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		c.writeMu.Unlock()
		_ = c.conn.Close()
	})
}
