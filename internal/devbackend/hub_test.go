// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package devbackend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-task-desk/internal/realtime"
	"github.com/MKhiriev/go-task-desk/models"
)

func startHub(t *testing.T, b *Backend) *realtime.WebsocketFeed {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/realtime/v1/websocket", b.Hub().ServeWS)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return realtime.NewWebsocketFeed(realtime.Settings{
		BaseURL:           srv.URL,
		APIKey:            "test-key",
		HeartbeatInterval: time.Second,
		JoinTimeout:       2 * time.Second,
	}, nil)
}

func subscribe(t *testing.T, feed realtime.Feed, token string) realtime.Channel {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	ch, err := feed.Subscribe(ctx, realtime.Subscription{Topic: "tasks", Table: TasksTable, Token: token})
	require.NoError(t, err)
	t.Cleanup(func() { _ = ch.Close() })
	return ch
}

func nextChange(t *testing.T, ch realtime.Channel) realtime.Change {
	t.Helper()
	select {
	case c, ok := <-ch.Events():
		require.True(t, ok, "channel closed: %v", ch.Err())
		return c
	case <-time.After(3 * time.Second):
		t.Fatal("no change delivered")
		return realtime.Change{}
	}
}

func assertNoChange(t *testing.T, ch realtime.Channel) {
	t.Helper()
	select {
	case c := <-ch.Events():
		t.Fatalf("unexpected %s change", c.Type)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestHub_DeliversVisibleChanges(t *testing.T) {
	f := newTaskFixture(t)
	feed := startHub(t, f.backend)

	adminSession, err := f.backend.SignIn("admin@example.com", "secret")
	require.NoError(t, err)
	staffSession, err := f.backend.SignIn("staff@example.com", "secret")
	require.NoError(t, err)

	adminCh := subscribe(t, feed, adminSession.AccessToken)
	staffCh := subscribe(t, feed, staffSession.AccessToken)
	require.Eventually(t, func() bool { return f.backend.Hub().Clients() == 2 }, time.Second, 10*time.Millisecond)

	hidden, err := f.backend.CreateTask(f.admin, models.TaskDraft{Title: "Hidden", CompanyID: &f.company})
	require.NoError(t, err)

	c := nextChange(t, adminCh)
	assert.Equal(t, realtime.Insert, c.Type)
	assert.Equal(t, TasksTable, c.Table)
	var row models.Task
	require.NoError(t, c.DecodeRecord(&row))
	assert.Equal(t, hidden.ID, row.ID)
	// в change feed нет join-полей
	assert.Nil(t, row.Company)
	assertNoChange(t, staffCh)

	// назначение на staff: UPDATE приходит обоим
	_, err = f.backend.UpdateTask(f.admin, hidden.ID, rawFields(t, map[string]any{"assignee_id": f.staff.ID}))
	require.NoError(t, err)

	for _, ch := range []realtime.Channel{adminCh, staffCh} {
		c = nextChange(t, ch)
		assert.Equal(t, realtime.Update, c.Type)
		var old models.Task
		ok, err := c.DecodeOldRecord(&old)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Nil(t, old.AssigneeID)
	}

	require.NoError(t, f.backend.DeleteTask(f.admin, hidden.ID))
	for _, ch := range []realtime.Channel{adminCh, staffCh} {
		c = nextChange(t, ch)
		assert.Equal(t, realtime.Delete, c.Type)
		id, err := c.RecordID()
		require.NoError(t, err)
		assert.Equal(t, hidden.ID, id)
	}
}

func TestHub_RejectsInvalidToken(t *testing.T) {
	f := newTaskFixture(t)
	feed := startHub(t, f.backend)

	_, err := feed.Subscribe(context.Background(), realtime.Subscription{Topic: "tasks", Table: TasksTable, Token: "bogus"})
	assert.ErrorIs(t, err, realtime.ErrJoinRejected)
}

func TestHub_RebindUpdatesViewer(t *testing.T) {
	f := newTaskFixture(t)
	feed := startHub(t, f.backend)

	staffSession, err := f.backend.SignIn("staff@example.com", "secret")
	require.NoError(t, err)
	ch := subscribe(t, feed, staffSession.AccessToken)

	require.NoError(t, f.backend.SetRole(f.staff.ID, models.RoleManager))
	rotated, err := f.backend.Refresh(staffSession.RefreshToken)
	require.NoError(t, err)
	require.NoError(t, ch.SetAuth(rotated.AccessToken))

	require.Eventually(t, func() bool {
		if _, err := f.backend.CreateTask(f.admin, models.TaskDraft{Title: "Visible to managers"}); err != nil {
			return false
		}
		select {
		case c := <-ch.Events():
			return c.Type == realtime.Insert
		case <-time.After(100 * time.Millisecond):
			return false
		}
	}, 3*time.Second, 10*time.Millisecond)
}

func TestHub_PublishEncodesImages(t *testing.T) {
	h := NewHub(nil, nil)
	c := &hubClient{
		hub:     h,
		send:    make(chan realtime.Message, 1),
		done:    make(chan struct{}),
		profile: models.Profile{ID: "u1", Role: models.RoleStaff},
		topics:  map[string]string{"realtime:tasks": TasksTable, "realtime:other": "companies"},
	}
	h.clients[c] = struct{}{}

	h.Publish(RowChange{
		Table:     TasksTable,
		Type:      realtime.Delete,
		OldRecord: models.Task{ID: "t1"},
		VisibleTo: func(p models.Profile) bool { return p.ID == "u1" },
	})

	require.Len(t, c.send, 1)
	msg := <-c.send
	assert.Equal(t, "realtime:tasks", msg.Topic)
	assert.Equal(t, realtime.EventChanges, msg.Event)

	var payload realtime.ChangesPayload
	require.NoError(t, json.Unmarshal(msg.Payload, &payload))
	assert.Equal(t, realtime.Delete, payload.Data.Type)
	assert.Empty(t, payload.Data.Record)
	assert.JSONEq(t, `"t1"`, string(mustField(t, payload.Data.OldRecord, "id")))

	h.Publish(RowChange{Table: TasksTable, Type: realtime.Insert, Record: models.Task{ID: "t2"},
		VisibleTo: func(models.Profile) bool { return false }})
	assert.Empty(t, c.send)
}

func mustField(t *testing.T, raw json.RawMessage, name string) json.RawMessage {
	t.Helper()
	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &m))
	return m[name]
}
