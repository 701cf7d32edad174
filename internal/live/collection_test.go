// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package live

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID     string
	Title  string
	Status string
	Rank   int
}

func itemKey(i item) string { return i.ID }

func newItems(opts ...Option[item]) *Collection[item] {
	return New[item](itemKey, opts...)
}

func ids(items []item) []string {
	out := make([]string, 0, len(items))
	for _, i := range items {
		out = append(out, i.ID)
	}
	return out
}

// ── Initialize ──────────────────────────────────────────────────────────────

func TestInitialize_ReplacesContents(t *testing.T) {
	c := newItems()
	c.Initialize([]item{{ID: "1"}, {ID: "2"}}, time.Time{})
	c.Initialize([]item{{ID: "3"}}, time.Time{})

	assert.Equal(t, []string{"3"}, ids(c.Snapshot()))
	assert.True(t, c.Initialized())
}

func TestInitialize_DeduplicatesSnapshot(t *testing.T) {
	c := newItems()
	c.Initialize([]item{{ID: "1", Title: "old"}, {ID: "1", Title: "new"}, {ID: ""}}, time.Time{})

	require.Equal(t, 1, c.Len())
	got, ok := c.Get("1")
	require.True(t, ok)
	assert.Equal(t, "new", got.Title)
}

// TestInitialize_ReplaysBufferedCreate covers a Created event that arrives
// while the initial fetch is still in flight.
func TestInitialize_ReplaysBufferedCreate(t *testing.T) {
	c := newItems()
	asOf := time.Now()

	assert.True(t, c.Apply(CreatedEvent("tasks", item{ID: "7", Title: "X"}, asOf.Add(time.Millisecond))))
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, 1, c.Buffered())

	c.Initialize(nil, asOf)

	assert.Equal(t, []item{{ID: "7", Title: "X"}}, c.Snapshot())
	assert.Equal(t, 0, c.Buffered())
}

func TestInitialize_DropsEventsOlderThanSnapshot(t *testing.T) {
	c := newItems()
	asOf := time.Now()

	c.Apply(UpdatedEvent[item]("tasks", nil, item{ID: "1", Title: "stale"}, asOf.Add(-time.Second)))
	c.Apply(DeletedEvent[item]("tasks", "2", asOf.Add(-time.Second)))
	c.Apply(UpdatedEvent[item]("tasks", nil, item{ID: "3", Title: "fresh"}, asOf.Add(time.Second)))

	c.Initialize([]item{{ID: "1", Title: "snapshot"}, {ID: "2"}, {ID: "3", Title: "snapshot"}}, asOf)

	one, _ := c.Get("1")
	three, _ := c.Get("3")
	assert.Equal(t, "snapshot", one.Title)
	assert.Equal(t, "fresh", three.Title)
	assert.Equal(t, 3, c.Len())
}

// ── Event application ───────────────────────────────────────────────────────

func TestApplyCreated_DuplicateIsNoop(t *testing.T) {
	c := newItems()
	c.Initialize([]item{{ID: "1", Title: "a"}}, time.Time{})

	assert.False(t, c.ApplyCreated(item{ID: "1", Title: "b"}))

	got, _ := c.Get("1")
	assert.Equal(t, "a", got.Title)
	assert.Equal(t, 1, c.Len())
}

func TestApplyUpdated_MissingBehavesLikeCreate(t *testing.T) {
	created := newItems()
	created.Initialize([]item{{ID: "1"}}, time.Time{})
	created.ApplyCreated(item{ID: "2", Title: "x"})

	updated := newItems()
	updated.Initialize([]item{{ID: "1"}}, time.Time{})
	updated.ApplyUpdated(item{ID: "2", Title: "x"})

	assert.Equal(t, created.Snapshot(), updated.Snapshot())
}

func TestApplyUpdated_ReplacesWholeImage(t *testing.T) {
	c := newItems()
	c.Initialize([]item{{ID: "1", Title: "a", Status: "pending"}}, time.Time{})

	c.ApplyUpdated(item{ID: "1", Status: "completed"})

	got, _ := c.Get("1")
	assert.Equal(t, item{ID: "1", Status: "completed"}, got)
}

func TestApplyDeleted_Idempotent(t *testing.T) {
	c := newItems()
	c.Initialize([]item{{ID: "1"}, {ID: "2"}}, time.Time{})

	assert.True(t, c.ApplyDeleted("1"))
	after := c.Snapshot()
	version := c.Version()

	assert.False(t, c.ApplyDeleted("1"))
	assert.Equal(t, after, c.Snapshot())
	assert.Equal(t, version, c.Version())
}

func TestApply_DropsMalformedEvents(t *testing.T) {
	c := newItems()
	c.Initialize([]item{{ID: "1"}}, time.Time{})

	assert.False(t, c.Apply(Event[item]{Type: Created, New: item{}}))
	assert.False(t, c.Apply(Event[item]{Type: Deleted}))
	assert.False(t, c.Apply(Event[item]{Type: EventType(42), New: item{ID: "2"}}))
	assert.Equal(t, []string{"1"}, ids(c.Snapshot()))
}

// TestApply_NetOutcomeProperty feeds random event sequences and checks that
// the collection holds exactly one entry per identifier whose last event was
// not a delete.
func TestApply_NetOutcomeProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for round := 0; round < 200; round++ {
		c := newItems()
		c.Initialize(nil, time.Time{})
		alive := map[string]bool{}

		for step := 0; step < 50; step++ {
			id := fmt.Sprintf("%d", rng.Intn(8))
			switch rng.Intn(3) {
			case 0:
				c.ApplyCreated(item{ID: id})
				alive[id] = true
			case 1:
				c.ApplyUpdated(item{ID: id, Title: "u"})
				alive[id] = true
			case 2:
				c.ApplyDeleted(id)
				delete(alive, id)
			}
		}

		snap := c.Snapshot()
		require.Len(t, snap, len(alive), "round %d", round)
		seen := map[string]bool{}
		for _, it := range snap {
			assert.False(t, seen[it.ID], "duplicate id %s", it.ID)
			seen[it.ID] = true
			assert.True(t, alive[it.ID])
		}
	}
}

// ── Ordering ────────────────────────────────────────────────────────────────

func byRank(a, b item) bool { return a.Rank < b.Rank }

func TestWithOrder_SortsSnapshotAndInserts(t *testing.T) {
	c := newItems(WithOrder(byRank))
	c.Initialize([]item{{ID: "c", Rank: 3}, {ID: "a", Rank: 1}}, time.Time{})

	c.ApplyCreated(item{ID: "b", Rank: 2})
	c.ApplyCreated(item{ID: "a2", Rank: 1})

	assert.Equal(t, []string{"a", "a2", "b", "c"}, ids(c.Snapshot()))
}

func TestWithOrder_UpdateMovesEntity(t *testing.T) {
	c := newItems(WithOrder(byRank))
	c.Initialize([]item{{ID: "a", Rank: 1}, {ID: "b", Rank: 2}, {ID: "c", Rank: 3}}, time.Time{})

	c.ApplyUpdated(item{ID: "a", Rank: 9})
	assert.Equal(t, []string{"b", "c", "a"}, ids(c.Snapshot()))

	got, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 9, got.Rank)
}

func TestWithoutOrder_KeepsArrivalOrder(t *testing.T) {
	c := newItems()
	c.Initialize([]item{{ID: "2"}, {ID: "1"}}, time.Time{})
	c.ApplyCreated(item{ID: "0"})
	c.ApplyDeleted("2")

	assert.Equal(t, []string{"1", "0"}, ids(c.Snapshot()))
	_, ok := c.Get("0")
	assert.True(t, ok)
}

// ── Optimistic mutation ─────────────────────────────────────────────────────

func TestMutateLocal_ServerWins(t *testing.T) {
	c := newItems()
	c.Initialize([]item{{ID: "1", Status: "pending"}}, time.Time{})

	_, ok := c.MutateLocal("1", func(i item) item {
		i.Status = "completed"
		i.Title = "optimistic"
		return i
	})
	require.True(t, ok)

	c.ApplyUpdated(item{ID: "1", Status: "review", Title: "server"})

	got, _ := c.Get("1")
	assert.Equal(t, "review", got.Status)
	assert.Equal(t, "server", got.Title)
}

func TestMutateLocal_RollbackRestoresImage(t *testing.T) {
	c := newItems()
	c.Initialize([]item{{ID: "1", Status: "pending"}}, time.Time{})

	rollback, ok := c.MutateLocal("1", func(i item) item { i.Status = "completed"; return i })
	require.True(t, ok)

	got, _ := c.Get("1")
	assert.Equal(t, "completed", got.Status)

	assert.True(t, rollback())
	got, _ = c.Get("1")
	assert.Equal(t, "pending", got.Status)
}

func TestMutateLocal_RollbackAfterServerEventIsNoop(t *testing.T) {
	c := newItems()
	c.Initialize([]item{{ID: "1", Status: "pending"}}, time.Time{})

	rollback, ok := c.MutateLocal("1", func(i item) item { i.Status = "completed"; return i })
	require.True(t, ok)
	c.ApplyUpdated(item{ID: "1", Status: "review"})

	assert.False(t, rollback())
	got, _ := c.Get("1")
	assert.Equal(t, "review", got.Status)
}

func TestMutateLocal_UnknownOrRekeyed(t *testing.T) {
	c := newItems()
	c.Initialize([]item{{ID: "1"}}, time.Time{})

	_, ok := c.MutateLocal("missing", func(i item) item { return i })
	assert.False(t, ok)

	_, ok = c.MutateLocal("1", func(i item) item { i.ID = "2"; return i })
	assert.False(t, ok)
	assert.Equal(t, []string{"1"}, ids(c.Snapshot()))
}

// ── Reconcile / Reset ───────────────────────────────────────────────────────

func TestReconcile_UpsertsAndDeletes(t *testing.T) {
	c := newItems()
	c.Initialize([]item{{ID: "1", Title: "a"}, {ID: "2"}}, time.Time{})

	c.Reconcile([]item{{ID: "1", Title: "b"}, {ID: "3"}})

	assert.ElementsMatch(t, []string{"1", "3"}, ids(c.Snapshot()))
	got, _ := c.Get("1")
	assert.Equal(t, "b", got.Title)
}

func TestReconcile_UninitializedActsAsInitialize(t *testing.T) {
	c := newItems()
	c.Reconcile([]item{{ID: "1"}})

	assert.True(t, c.Initialized())
	assert.Equal(t, 1, c.Len())
}

func TestReset_ClearsEverything(t *testing.T) {
	c := newItems()
	c.Initialize([]item{{ID: "1"}}, time.Time{})
	c.Reset()

	assert.False(t, c.Initialized())
	assert.Equal(t, 0, c.Len())

	c.ApplyCreated(item{ID: "2"})
	assert.Equal(t, 0, c.Len(), "events after Reset are buffered again")
	assert.Equal(t, 1, c.Buffered())

	c.Reset()
	assert.Equal(t, 0, c.Buffered())
}

// ── Subscribe ───────────────────────────────────────────────────────────────

func TestSubscribe_CoalescesSignals(t *testing.T) {
	c := newItems()
	ch, cancel := c.Subscribe()
	defer cancel()

	c.Initialize(nil, time.Time{})
	c.ApplyCreated(item{ID: "1"})
	c.ApplyCreated(item{ID: "2"})

	select {
	case <-ch:
	default:
		t.Fatal("expected a change signal")
	}
	select {
	case <-ch:
		t.Fatal("signals should be coalesced")
	default:
	}
}

func TestSubscribe_CancelStopsSignals(t *testing.T) {
	c := newItems()
	ch, cancel := c.Subscribe()
	cancel()

	c.Initialize(nil, time.Time{})

	select {
	case <-ch:
		t.Fatal("unexpected signal after cancel")
	default:
	}
}
