// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package realtime

import (
	"encoding/json"
	"fmt"
	"time"
)

// Protocol events.
const (
	EventJoin        = "phx_join"
	EventLeave       = "phx_leave"
	EventReply       = "phx_reply"
	EventError       = "phx_error"
	EventClose       = "phx_close"
	EventHeartbeat   = "heartbeat"
	EventAccessToken = "access_token"
	EventChanges     = "postgres_changes"
)

// PhoenixTopic is the reserved topic heartbeats are sent on.
const PhoenixTopic = "phoenix"

// TopicPrefix is prepended to subscription topics on the wire.
const TopicPrefix = "realtime:"

// Reply statuses.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Message is one frame of the protocol.
type Message struct {
	Topic   string          `json:"topic"`
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
	Ref     string          `json:"ref,omitempty"`
}

// NewMessage encodes payload into a Message.
func NewMessage(topic, event, ref string, payload any) (Message, error) {
	if payload == nil {
		payload = struct{}{}
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return Message{}, fmt.Errorf("encode %s payload: %w", event, err)
	}
	return Message{Topic: topic, Event: event, Payload: raw, Ref: ref}, nil
}

// ChangeFilter selects the row changes a join is interested in.
type ChangeFilter struct {
	Event  string `json:"event"`
	Schema string `json:"schema"`
	Table  string `json:"table"`
	Filter string `json:"filter,omitempty"`
}

// JoinConfig is the channel configuration sent with phx_join.
type JoinConfig struct {
	PostgresChanges []ChangeFilter `json:"postgres_changes"`
}

// JoinPayload is the phx_join payload. The access token is part of the join
// so a channel is authorised from its first frame.
type JoinPayload struct {
	Config      JoinConfig `json:"config"`
	AccessToken string     `json:"access_token"`
}

// AccessTokenPayload rebinds the credential of a joined channel.
type AccessTokenPayload struct {
	AccessToken string `json:"access_token"`
}

// ReplyPayload is the phx_reply payload.
type ReplyPayload struct {
	Status   string          `json:"status"`
	Response json.RawMessage `json:"response,omitempty"`
}

// ReplyError is the response body of a rejected request.
type ReplyError struct {
	Reason string `json:"reason"`
}

// ChangesPayload is the postgres_changes payload.
type ChangesPayload struct {
	Data ChangeData `json:"data"`
}

// ChangeData describes one row change as sent by the server.
type ChangeData struct {
	Type            ChangeType      `json:"type"`
	Schema          string          `json:"schema"`
	Table           string          `json:"table"`
	Record          json.RawMessage `json:"record,omitempty"`
	OldRecord       json.RawMessage `json:"old_record,omitempty"`
	CommitTimestamp time.Time       `json:"commit_timestamp"`
}

// ChangeType is the kind of row change.
type ChangeType string

const (
	Insert ChangeType = "INSERT"
	Update ChangeType = "UPDATE"
	Delete ChangeType = "DELETE"
)

// Valid reports whether t is a known change type.
func (t ChangeType) Valid() bool {
	return t == Insert || t == Update || t == Delete
}
