// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package live

import (
	"sort"
	"sync"
	"time"

	"github.com/MKhiriev/go-task-desk/internal/logger"
)

// KeyFunc extracts the unique identifier of an entity.
type KeyFunc[T any] func(T) string

// Rollback reverts an optimistic local mutation. It returns false and leaves
// the collection untouched when a server event for the same identifier was
// applied after the mutation, or when the entity is gone.
type Rollback func() bool

// Option configures a Collection.
type Option[T any] func(*Collection[T])

// WithOrder keeps the collection sorted by less. Entities comparing equal
// keep their insertion order.
func WithOrder[T any](less func(a, b T) bool) Option[T] {
	return func(c *Collection[T]) {
		c.less = less
	}
}

// WithLogger sets the logger used to report dropped or recovered events.
func WithLogger[T any](log *logger.Logger) Option[T] {
	return func(c *Collection[T]) {
		if log != nil {
			c.log = log
		}
	}
}

// Collection is an ordered, identifier-unique, in-memory view of the server
// state of one entity kind.
//
// Writes are expected to come from a single owner (the subscription loop and
// the optimistic mutation path); reads through Snapshot, Get and Len are safe
// from any goroutine.
type Collection[T any] struct {
	key  KeyFunc[T]
	less func(a, b T) bool
	log  *logger.Logger

	mu          sync.RWMutex
	items       []T
	index       map[string]int
	initialized bool
	pending     []Event[T]
	// serverTouch counts server events applied per identifier; optimistic
	// rollbacks compare against it.
	serverTouch map[string]uint64
	version     uint64

	subMu   sync.Mutex
	subs    map[int]chan struct{}
	nextSub int
}

// New creates an empty, uninitialised Collection.
func New[T any](key KeyFunc[T], opts ...Option[T]) *Collection[T] {
	c := &Collection[T]{
		key:         key,
		log:         logger.Nop(),
		index:       make(map[string]int),
		serverTouch: make(map[string]uint64),
		subs:        make(map[int]chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Initialize replaces the collection wholesale with snapshot and replays the
// events buffered since the last Reset.
//
// asOf is the moment the snapshot was requested. Buffered events that
// arrived before asOf are already reflected in the snapshot and are dropped;
// the rest are applied in arrival order. A zero asOf replays everything.
func (c *Collection[T]) Initialize(snapshot []T, asOf time.Time) {
	c.mu.Lock()

	c.items = make([]T, 0, len(snapshot))
	c.index = make(map[string]int, len(snapshot))
	for _, e := range snapshot {
		id := c.key(e)
		if id == "" {
			c.log.Warn().Str("func", "Collection.Initialize").Msg("dropping snapshot row without identifier")
			continue
		}
		if pos, ok := c.index[id]; ok {
			c.log.Warn().Str("func", "Collection.Initialize").Str("id", id).Msg("duplicate identifier in snapshot, keeping latest image")
			c.items[pos] = e
			continue
		}
		c.index[id] = len(c.items)
		c.items = append(c.items, e)
	}
	if c.less != nil {
		sort.SliceStable(c.items, func(i, j int) bool { return c.less(c.items[i], c.items[j]) })
		c.reindexLocked(0)
	}

	c.initialized = true
	pending := c.pending
	c.pending = nil

	replayed := 0
	for _, ev := range pending {
		if !asOf.IsZero() && ev.ArrivedAt.Before(asOf) {
			continue
		}
		c.applyLocked(ev)
		replayed++
	}
	if len(pending) > 0 {
		c.log.Debug().
			Str("func", "Collection.Initialize").
			Int("buffered", len(pending)).
			Int("replayed", replayed).
			Msg("replayed events buffered before initial load")
	}

	c.version++
	c.mu.Unlock()
	c.notify()
}

// Initialized reports whether Initialize has run since the last Reset.
func (c *Collection[T]) Initialized() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.initialized
}

// Apply folds one event into the collection. Before Initialize the event is
// buffered. Malformed events are dropped and logged. It reports whether the
// event was accepted (applied with an effect, or buffered).
func (c *Collection[T]) Apply(ev Event[T]) bool {
	switch ev.Type {
	case Created, Updated:
		if id := c.key(ev.New); id == "" {
			c.log.Warn().Str("func", "Collection.Apply").Str("kind", ev.Kind).Str("type", ev.Type.String()).Msg("dropping event without identifier")
			return false
		}
	case Deleted:
		if ev.ID == "" {
			c.log.Warn().Str("func", "Collection.Apply").Str("kind", ev.Kind).Msg("dropping delete event without identifier")
			return false
		}
	default:
		c.log.Warn().Str("func", "Collection.Apply").Str("kind", ev.Kind).Int("type", int(ev.Type)).Msg("dropping event of unknown type")
		return false
	}

	c.mu.Lock()
	if !c.initialized {
		c.pending = append(c.pending, ev)
		c.mu.Unlock()
		return true
	}
	changed := c.applyLocked(ev)
	if changed {
		c.version++
	}
	c.mu.Unlock()

	if changed {
		c.notify()
	}
	return changed
}

// ApplyCreated inserts entity unless its identifier is already present.
func (c *Collection[T]) ApplyCreated(entity T) bool {
	return c.Apply(CreatedEvent("", entity, time.Now()))
}

// ApplyUpdated replaces the stored image of entity wholesale, inserting it
// when the identifier is unknown.
func (c *Collection[T]) ApplyUpdated(entity T) bool {
	return c.Apply(UpdatedEvent[T]("", nil, entity, time.Now()))
}

// ApplyDeleted removes the entity with identifier id if present.
func (c *Collection[T]) ApplyDeleted(id string) bool {
	return c.Apply(DeletedEvent[T]("", id, time.Now()))
}

func (c *Collection[T]) applyLocked(ev Event[T]) bool {
	switch ev.Type {
	case Created:
		id := c.key(ev.New)
		if _, ok := c.index[id]; ok {
			return false
		}
		c.insertLocked(ev.New)
		return true

	case Updated:
		id := c.key(ev.New)
		c.serverTouch[id]++
		if pos, ok := c.index[id]; ok {
			c.replaceLocked(pos, ev.New)
			return true
		}
		c.log.Debug().Str("func", "Collection.applyLocked").Str("kind", ev.Kind).Str("id", id).Msg("update for unknown identifier, inserting")
		c.insertLocked(ev.New)
		return true

	case Deleted:
		c.serverTouch[ev.ID]++
		pos, ok := c.index[ev.ID]
		if !ok {
			return false
		}
		c.removeLocked(pos)
		return true
	}
	return false
}

// MutateLocal applies patch to the entity with identifier id ahead of server
// confirmation. The next server event for id overwrites the result. The
// returned Rollback restores the pre-mutation image.
func (c *Collection[T]) MutateLocal(id string, patch func(T) T) (Rollback, bool) {
	c.mu.Lock()
	pos, ok := c.index[id]
	if !ok {
		c.mu.Unlock()
		return nil, false
	}

	prev := c.items[pos]
	next := patch(prev)
	if c.key(next) != id {
		c.mu.Unlock()
		c.log.Warn().Str("func", "Collection.MutateLocal").Str("id", id).Msg("patch changed the identifier, ignoring")
		return nil, false
	}
	c.replaceLocked(pos, next)
	mark := c.serverTouch[id]
	c.version++
	c.mu.Unlock()
	c.notify()

	rollback := func() bool {
		c.mu.Lock()
		if c.serverTouch[id] != mark {
			c.mu.Unlock()
			return false
		}
		pos, ok := c.index[id]
		if !ok {
			c.mu.Unlock()
			return false
		}
		c.replaceLocked(pos, prev)
		c.version++
		c.mu.Unlock()
		c.notify()
		return true
	}

	return rollback, true
}

// Reconcile merges a fresh server listing into an initialised collection:
// every row is applied as an update and identifiers missing from snapshot
// are deleted. Unlike Initialize it never discards buffered state. On an
// uninitialised collection it behaves like Initialize with a zero asOf.
func (c *Collection[T]) Reconcile(snapshot []T) {
	c.mu.Lock()
	if !c.initialized {
		c.mu.Unlock()
		c.Initialize(snapshot, time.Time{})
		return
	}

	seen := make(map[string]struct{}, len(snapshot))
	for _, e := range snapshot {
		id := c.key(e)
		if id == "" {
			continue
		}
		seen[id] = struct{}{}
		c.applyLocked(Event[T]{Type: Updated, New: e})
	}

	var gone []string
	for _, e := range c.items {
		if _, ok := seen[c.key(e)]; !ok {
			gone = append(gone, c.key(e))
		}
	}
	for _, id := range gone {
		c.applyLocked(Event[T]{Type: Deleted, ID: id})
	}

	c.version++
	c.mu.Unlock()
	c.notify()
}

// Reset clears the collection, drops buffered events and returns it to the
// uninitialised state.
func (c *Collection[T]) Reset() {
	c.mu.Lock()
	c.items = nil
	c.index = make(map[string]int)
	c.pending = nil
	c.serverTouch = make(map[string]uint64)
	c.initialized = false
	c.version++
	c.mu.Unlock()
	c.notify()
}

// Snapshot returns a copy of the current ordered contents.
func (c *Collection[T]) Snapshot() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Get returns the entity with identifier id.
func (c *Collection[T]) Get(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	pos, ok := c.index[id]
	if !ok {
		var zero T
		return zero, false
	}
	return c.items[pos], true
}

// Len returns the number of entities.
func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Buffered returns the number of events waiting for Initialize.
func (c *Collection[T]) Buffered() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.pending)
}

// Version increases on every change and can be used to skip redundant
// recomputation of derived values.
func (c *Collection[T]) Version() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.version
}

// Subscribe returns a channel that receives a signal after changes. Signals
// are coalesced: a slow reader sees at most one pending signal. The returned
// function unsubscribes.
func (c *Collection[T]) Subscribe() (<-chan struct{}, func()) {
	c.subMu.Lock()
	defer c.subMu.Unlock()

	id := c.nextSub
	c.nextSub++
	ch := make(chan struct{}, 1)
	c.subs[id] = ch

	return ch, func() {
		c.subMu.Lock()
		defer c.subMu.Unlock()
		delete(c.subs, id)
	}
}

func (c *Collection[T]) notify() {
	c.subMu.Lock()
	defer c.subMu.Unlock()

	for _, ch := range c.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

func (c *Collection[T]) insertLocked(e T) {
	pos := len(c.items)
	if c.less != nil {
		pos = sort.Search(len(c.items), func(i int) bool { return c.less(e, c.items[i]) })
	}

	var zero T
	c.items = append(c.items, zero)
	copy(c.items[pos+1:], c.items[pos:])
	c.items[pos] = e
	c.reindexLocked(pos)
}

func (c *Collection[T]) replaceLocked(pos int, e T) {
	if c.less == nil || c.inPlaceLocked(pos, e) {
		c.items[pos] = e
		return
	}
	c.removeLocked(pos)
	c.insertLocked(e)
}

// inPlaceLocked reports whether e may stay at pos without breaking the order.
func (c *Collection[T]) inPlaceLocked(pos int, e T) bool {
	if pos > 0 && c.less(e, c.items[pos-1]) {
		return false
	}
	if pos < len(c.items)-1 && c.less(c.items[pos+1], e) {
		return false
	}
	return true
}

func (c *Collection[T]) removeLocked(pos int) {
	delete(c.index, c.key(c.items[pos]))
	c.items = append(c.items[:pos], c.items[pos+1:]...)
	c.reindexLocked(pos)
}

func (c *Collection[T]) reindexLocked(from int) {
	for i := from; i < len(c.items); i++ {
		c.index[c.key(c.items[i])] = i
	}
}
