// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package subscription

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/MKhiriev/go-task-desk/internal/live"
	"github.com/MKhiriev/go-task-desk/internal/logger"
	"github.com/MKhiriev/go-task-desk/internal/realtime"
	"github.com/MKhiriev/go-task-desk/internal/session"
)

const (
	defaultRetryBase = 500 * time.Millisecond
	defaultRetryMax  = 30 * time.Second
	retryJitter      = 10
	inboxSize        = 64
)

// Settings tunes retry behaviour.
type Settings struct {
	// RetryBase is the first reconnect / refetch delay. It doubles on every
	// consecutive failure up to RetryMax.
	RetryBase time.Duration
	RetryMax  time.Duration
}

// Manager binds one live collection to the change channel of the current
// identity.
//
// All decisions are taken on a single loop goroutine. Async work (channel
// subscribe, fetches, decoding) runs in helper goroutines and reports back
// tagged with the generation it was started under; results of an older
// generation are discarded, so nothing bound to a previous identity can touch
// the collection once it was torn down.
type Manager[T any] struct {
	source    Source[T]
	resolver  Resolver[T]
	replayAll bool
	feed      realtime.Feed
	coll     *live.Collection[T]
	settings Settings
	log      *logger.Logger

	inbox     chan any
	done      chan struct{}
	closeDone sync.Once

	startOnce sync.Once
	stopOnce  sync.Once
	cancel    context.CancelFunc
	wg        sync.WaitGroup

	mu     sync.RWMutex
	status Status

	subMu   sync.Mutex
	subs    map[int]chan struct{}
	nextSub int
}

// New creates an idle Manager feeding coll from source over feed.
func New[T any](source Source[T], feed realtime.Feed, coll *live.Collection[T], settings Settings, log *logger.Logger) *Manager[T] {
	if settings.RetryBase <= 0 {
		settings.RetryBase = defaultRetryBase
	}
	if settings.RetryMax < settings.RetryBase {
		settings.RetryMax = defaultRetryMax
	}
	if log == nil {
		log = logger.Nop()
	}

	m := &Manager[T]{
		source:   source,
		feed:     feed,
		coll:     coll,
		settings: settings,
		log:      &logger.Logger{Logger: log.With().Str("component", "subscription").Str("topic", source.Topic()).Logger()},
		inbox:    make(chan any, inboxSize),
		done:     make(chan struct{}),
		subs:     make(map[int]chan struct{}),
	}
	if r, ok := source.(Resolver[T]); ok {
		m.resolver = r
	}
	if a, ok := source.(Authority); ok {
		m.replayAll = !a.FetchIsAuthoritative()
	}
	return m
}

// Start launches the loop. It is a no-op after the first call.
func (m *Manager[T]) Start(ctx context.Context) {
	m.startOnce.Do(func() {
		ctx, m.cancel = context.WithCancel(ctx)
		collChanged, unsubscribe := m.coll.Subscribe()

		m.wg.Add(1)
		go func() {
			defer m.wg.Done()
			defer m.closeDone.Do(func() { close(m.done) })
			defer unsubscribe()
			m.loop(ctx, collChanged)
		}()
	})
}

// Stop tears down the channel, clears the collection and waits for the loop
// to exit. Events posted afterwards are ignored.
func (m *Manager[T]) Stop() {
	m.stopOnce.Do(func() {
		if m.cancel != nil {
			m.cancel()
		}
		m.closeDone.Do(func() { close(m.done) })
		m.wg.Wait()
	})
}

// HandleSession feeds a session transition to the loop. It never blocks for
// long and is safe to register with session.Provider.Subscribe.
func (m *Manager[T]) HandleSession(ev session.Event) {
	m.post(sessionMsg{ev: ev})
}

// Collection returns the managed collection.
func (m *Manager[T]) Collection() *live.Collection[T] {
	return m.coll
}

// Snapshot returns the current contents of the collection.
func (m *Manager[T]) Snapshot() []T {
	return m.coll.Snapshot()
}

// Status returns the observable state.
func (m *Manager[T]) Status() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

func (m *Manager[T]) State() State  { return m.Status().State }
func (m *Manager[T]) Loading() bool { return m.Status().Loading }
func (m *Manager[T]) Err() error    { return m.Status().Err }
func (m *Manager[T]) Stale() bool   { return m.Status().Stale }

// Changes returns a channel signalled after collection or status changes.
// Signals are coalesced. The returned function unsubscribes.
func (m *Manager[T]) Changes() (<-chan struct{}, func()) {
	m.subMu.Lock()
	defer m.subMu.Unlock()

	id := m.nextSub
	m.nextSub++
	ch := make(chan struct{}, 1)
	m.subs[id] = ch

	return ch, func() {
		m.subMu.Lock()
		defer m.subMu.Unlock()
		delete(m.subs, id)
	}
}

func (m *Manager[T]) notify() {
	m.subMu.Lock()
	defer m.subMu.Unlock()

	for _, ch := range m.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

func (m *Manager[T]) setStatus(update func(*Status)) {
	m.mu.Lock()
	prev := m.status
	update(&m.status)
	changed := prev != m.status
	m.mu.Unlock()

	if changed {
		m.notify()
	}
}

func (m *Manager[T]) post(msg any) {
	select {
	case m.inbox <- msg:
	case <-m.done:
	}
}

// ── loop ────────────────────────────────────────────────────────────────────

type sessionMsg struct{ ev session.Event }

type subscribedMsg struct {
	gen, link uint64
	token     string
	ch        realtime.Channel
	err       error
}

type fetchedMsg[T any] struct {
	gen   uint64
	items []T
	asOf  time.Time
	err   error
}

type reconciledMsg[T any] struct {
	gen   uint64
	link  uint64
	items []T
	err   error
}

type eventMsg[T any] struct {
	gen, link uint64
	ev        live.Event[T]
}

type channelDownMsg struct {
	gen, link uint64
	err       error
}

type retryKind int

const (
	retrySubscribe retryKind = iota
	retryFetch
	retryReconcile
)

type retryMsg struct {
	gen, link uint64
	kind      retryKind
}

// binding is the loop-owned state of the current identity.
type binding[T any] struct {
	identity session.Identity
	gen      uint64
	ctx      context.Context
	cancel   context.CancelFunc

	link        uint64
	channel     realtime.Channel
	linkCancel  context.CancelFunc
	subscribing bool

	fetched  bool
	fetching bool

	reconciling    bool
	needsReconcile bool
	sinceReconcile []live.Event[T]

	subscribeBackoff retry.Backoff
	fetchBackoff     retry.Backoff
	timers           map[retryKind]*time.Timer
}

func (m *Manager[T]) loop(ctx context.Context, collChanged <-chan struct{}) {
	b := &binding[T]{}
	defer m.teardown(b)

	for {
		select {
		case <-ctx.Done():
			return
		case <-collChanged:
			m.notify()
		case msg := <-m.inbox:
			m.handle(ctx, b, msg)
		}
	}
}

func (m *Manager[T]) handle(ctx context.Context, b *binding[T], msg any) {
	switch msg := msg.(type) {
	case sessionMsg:
		m.onSession(ctx, b, msg.ev)

	case subscribedMsg:
		m.onSubscribed(b, msg)

	case fetchedMsg[T]:
		m.onFetched(b, msg)

	case reconciledMsg[T]:
		m.onReconciled(b, msg)

	case eventMsg[T]:
		if msg.gen != b.gen || msg.link != b.link || b.identity.IsZero() {
			return
		}
		m.coll.Apply(msg.ev)
		if b.reconciling {
			b.sinceReconcile = append(b.sinceReconcile, msg.ev)
		}

	case channelDownMsg:
		if msg.gen != b.gen || msg.link != b.link {
			return
		}
		m.log.Warn().Err(msg.err).Str("func", "Manager.handle").Msg("channel lost, reconnecting")
		m.dropChannel(b)
		b.needsReconcile = b.fetched || b.fetching
		m.setStatus(func(s *Status) {
			s.State = Connecting
			s.Stale = true
		})
		m.scheduleRetry(b, retrySubscribe, b.subscribeBackoff)

	case retryMsg:
		if msg.gen != b.gen || b.identity.IsZero() {
			return
		}
		switch msg.kind {
		case retrySubscribe:
			if msg.link == b.link && b.channel == nil && !b.subscribing {
				m.subscribe(b)
			}
		case retryFetch:
			if !b.fetched && !b.fetching && b.channel != nil {
				m.fetch(b)
			}
		case retryReconcile:
			if msg.link == b.link && b.needsReconcile && !b.reconciling && b.channel != nil {
				m.reconcile(b)
			}
		}
	}
}

func (m *Manager[T]) onSession(ctx context.Context, b *binding[T], ev session.Event) {
	switch ev := ev.(type) {
	case session.IdentityChanged:
		m.teardown(b)
		m.bind(ctx, b, ev.Next)

	case session.CredentialRotated:
		if !b.identity.SameUser(ev.Identity) {
			// the manager missed the identity change; rebuild from scratch
			m.teardown(b)
			m.bind(ctx, b, ev.Identity)
			return
		}
		b.identity = ev.Identity
		if b.channel == nil {
			// an in-flight subscribe compares tokens when it lands
			return
		}
		if err := b.channel.SetAuth(ev.Identity.Token()); err != nil {
			m.log.Warn().Err(err).Str("func", "Manager.onSession").Msg("credential rebind failed, reconnecting")
			m.handle(ctx, b, channelDownMsg{gen: b.gen, link: b.link, err: err})
			return
		}
		m.log.Debug().Str("func", "Manager.onSession").Msg("credential rebound on live channel")

	case session.SignedOut:
		m.teardown(b)
	}
}

// bind starts serving id: subscribe first, fetch once the channel is
// acknowledged.
func (m *Manager[T]) bind(ctx context.Context, b *binding[T], id session.Identity) {
	if id.IsZero() {
		return
	}

	b.identity = id
	b.gen++
	b.ctx, b.cancel = context.WithCancel(ctx)
	b.subscribeBackoff = m.newBackoff()
	b.fetchBackoff = m.newBackoff()

	m.setStatus(func(s *Status) {
		*s = Status{State: Connecting, Loading: true, UserID: id.UserID()}
	})
	m.log.Debug().Str("func", "Manager.bind").Str("user_id", id.UserID()).Uint64("gen", b.gen).Msg("binding identity")

	m.subscribe(b)
}

func (m *Manager[T]) subscribe(b *binding[T]) {
	b.link++
	b.subscribing = true

	gen, link := b.gen, b.link
	ctx := b.ctx
	sub := realtime.Subscription{
		Topic: m.source.Topic(),
		Table: m.source.Table(),
		Token: b.identity.Token(),
	}

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		ch, err := m.feed.Subscribe(ctx, sub)
		m.post(subscribedMsg{gen: gen, link: link, token: sub.Token, ch: ch, err: err})
	}()
}

func (m *Manager[T]) onSubscribed(b *binding[T], msg subscribedMsg) {
	if msg.gen != b.gen || msg.link != b.link || b.identity.IsZero() {
		if msg.ch != nil {
			_ = msg.ch.Close()
		}
		return
	}
	b.subscribing = false

	if msg.err != nil {
		m.log.Warn().Err(msg.err).Str("func", "Manager.onSubscribed").Msg("subscribe failed")
		m.setStatus(func(s *Status) { s.Stale = b.fetched })
		m.scheduleRetry(b, retrySubscribe, b.subscribeBackoff)
		return
	}

	if msg.token != b.identity.Token() {
		// the credential rotated while the join was in flight
		if err := msg.ch.SetAuth(b.identity.Token()); err != nil {
			m.log.Warn().Err(err).Str("func", "Manager.onSubscribed").Msg("rebinding rotated credential failed, resubscribing")
			if cerr := msg.ch.Close(); cerr != nil {
				m.log.Debug().Err(cerr).Str("func", "Manager.onSubscribed").Msg("channel close failed")
			}
			m.setStatus(func(s *Status) {
				s.State = Connecting
				s.Stale = b.fetched
			})
			m.scheduleRetry(b, retrySubscribe, b.subscribeBackoff)
			return
		}
	}

	b.channel = msg.ch
	b.subscribeBackoff = m.newBackoff()
	if !b.needsReconcile {
		m.setStatus(func(s *Status) { s.Stale = false })
	}

	linkCtx, cancel := context.WithCancel(b.ctx)
	b.linkCancel = cancel
	m.wg.Add(1)
	go m.pump(linkCtx, b.gen, b.link, msg.ch, b.identity)

	switch {
	case !b.fetched && !b.fetching:
		m.fetch(b)
	case b.fetched:
		m.setStatus(func(s *Status) { s.State = Live })
		if b.needsReconcile {
			m.reconcile(b)
		}
	}
}

func (m *Manager[T]) fetch(b *binding[T]) {
	b.fetching = true
	gen, ctx, id := b.gen, b.ctx, b.identity
	asOf := time.Now()
	if m.replayAll {
		asOf = time.Time{}
	}

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		items, err := m.source.FetchAll(ctx, id)
		m.post(fetchedMsg[T]{gen: gen, items: items, asOf: asOf, err: err})
	}()
}

func (m *Manager[T]) onFetched(b *binding[T], msg fetchedMsg[T]) {
	if msg.gen != b.gen || b.identity.IsZero() {
		return
	}
	b.fetching = false

	if msg.err != nil {
		m.log.Warn().Err(msg.err).Str("func", "Manager.onFetched").Msg("initial fetch failed")
		m.setStatus(func(s *Status) {
			s.Loading = false
			s.Err = msg.err
		})
		m.scheduleRetry(b, retryFetch, b.fetchBackoff)
		return
	}

	m.coll.Initialize(msg.items, msg.asOf)
	b.fetched = true
	b.fetchBackoff = m.newBackoff()

	m.setStatus(func(s *Status) {
		s.Loading = false
		s.Err = nil
		if b.channel != nil {
			s.State = Live
		}
	})
	m.log.Debug().Str("func", "Manager.onFetched").Int("rows", len(msg.items)).Msg("initial fetch applied")

	if b.needsReconcile && b.channel != nil && !b.reconciling {
		// the channel dropped while the fetch was in flight
		m.reconcile(b)
	}
}

// reconcile refetches the list after a reconnect. Events received while the
// refetch is in flight are re-applied on top of its result.
func (m *Manager[T]) reconcile(b *binding[T]) {
	b.reconciling = true
	b.sinceReconcile = nil
	gen, link, ctx, id := b.gen, b.link, b.ctx, b.identity

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		items, err := m.source.FetchAll(ctx, id)
		m.post(reconciledMsg[T]{gen: gen, link: link, items: items, err: err})
	}()
}

func (m *Manager[T]) onReconciled(b *binding[T], msg reconciledMsg[T]) {
	if msg.gen != b.gen || b.identity.IsZero() {
		return
	}
	replay := b.sinceReconcile
	b.reconciling = false
	b.sinceReconcile = nil

	if msg.link != b.link {
		// the channel dropped again; the next reconnect reconciles
		return
	}
	if msg.err != nil {
		m.log.Warn().Err(msg.err).Str("func", "Manager.onReconciled").Msg("reconcile fetch failed")
		m.scheduleRetry(b, retryReconcile, b.fetchBackoff)
		return
	}

	m.coll.Reconcile(msg.items)
	for _, ev := range replay {
		m.coll.Apply(ev)
	}
	b.needsReconcile = false
	b.fetchBackoff = m.newBackoff()
	m.setStatus(func(s *Status) { s.Stale = false })
	m.log.Debug().Str("func", "Manager.onReconciled").Int("rows", len(msg.items)).Int("replayed", len(replay)).Msg("collection reconciled")
}

// pump reads one channel until it ends, decoding and resolving changes in
// arrival order.
func (m *Manager[T]) pump(ctx context.Context, gen, link uint64, ch realtime.Channel, id session.Identity) {
	defer m.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case change, ok := <-ch.Events():
			if !ok {
				err := ch.Err()
				if err == nil {
					err = realtime.ErrChannelClosed
				}
				m.post(channelDownMsg{gen: gen, link: link, err: err})
				return
			}

			ev, err := m.source.Decode(change, id)
			if err != nil {
				if !errors.Is(err, ErrSkip) {
					m.log.Warn().Err(err).Str("func", "Manager.pump").Str("type", string(change.Type)).Msg("dropping malformed change")
				}
				continue
			}
			if ev.ArrivedAt.IsZero() {
				ev.ArrivedAt = change.ReceivedAt
			}

			if m.resolver != nil {
				resolved, err := m.resolver.Resolve(ctx, id, ev)
				switch {
				case errors.Is(err, ErrSkip):
					continue
				case err != nil:
					if ctx.Err() != nil {
						return
					}
					m.log.Debug().Err(err).Str("func", "Manager.pump").Str("id", ev.ID).Msg("resolve failed, applying payload image")
				default:
					ev = resolved
				}
			}

			m.post(eventMsg[T]{gen: gen, link: link, ev: ev})
		}
	}
}

func (m *Manager[T]) dropChannel(b *binding[T]) {
	if b.linkCancel != nil {
		b.linkCancel()
		b.linkCancel = nil
	}
	if b.channel != nil {
		if err := b.channel.Close(); err != nil {
			m.log.Debug().Err(err).Str("func", "Manager.dropChannel").Msg("channel close failed")
		}
		b.channel = nil
	}
	b.link++
	b.subscribing = false
	b.reconciling = false
	b.sinceReconcile = nil
}

// teardown releases everything bound to the current identity and clears the
// collection.
func (m *Manager[T]) teardown(b *binding[T]) {
	if b.identity.IsZero() && b.channel == nil {
		return
	}
	m.setStatus(func(s *Status) { s.State = Closing })

	m.dropChannel(b)
	if b.cancel != nil {
		b.cancel()
		b.cancel = nil
	}
	for kind, t := range b.timers {
		t.Stop()
		delete(b.timers, kind)
	}
	m.coll.Reset()

	m.log.Debug().Str("func", "Manager.teardown").Str("user_id", b.identity.UserID()).Uint64("gen", b.gen).Msg("identity released")

	b.gen++
	b.identity = session.Identity{}
	b.fetched = false
	b.fetching = false
	b.needsReconcile = false

	m.setStatus(func(s *Status) { *s = Status{State: Idle} })
}

func (m *Manager[T]) scheduleRetry(b *binding[T], kind retryKind, backoff retry.Backoff) {
	delay, _ := backoff.Next()
	msg := retryMsg{gen: b.gen, link: b.link, kind: kind}

	m.log.Debug().Str("func", "Manager.scheduleRetry").Dur("delay", delay).Int("kind", int(kind)).Msg("retry scheduled")

	if b.timers == nil {
		b.timers = make(map[retryKind]*time.Timer)
	}
	if prev, ok := b.timers[kind]; ok {
		prev.Stop()
	}
	b.timers[kind] = time.AfterFunc(delay, func() { m.post(msg) })
}

func (m *Manager[T]) newBackoff() retry.Backoff {
	b := retry.NewExponential(m.settings.RetryBase)
	b = retry.WithCappedDuration(m.settings.RetryMax, b)
	return retry.WithJitterPercent(retryJitter, b)
}
