package livequery

import (
	"context"
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"lista/internal/domain/item"
)

var (
	hubMeter           = otel.Meter("lista/livequery")
	snapshotsPushed, _ = hubMeter.Int64Counter("livequery.snapshots.pushed", metric.WithDescription("Full snapshots delivered to subscribers"))
	activeSubs, _      = hubMeter.Int64UpDownCounter("livequery.subscribers.active", metric.WithDescription("Currently active live-view subscribers"))
)

// Snapshot is the full current item set under one token. Subscribers always
// receive whole snapshots, never diffs.
type Snapshot struct {
	Token string
	Items []*item.Item
}

// Subscription is one standing live view over a single token.
type Subscription struct {
	hub   *Hub
	token string

	// Buffered to one entry; stale snapshots are dropped in favor of the
	// latest so a slow consumer never blocks the hub.
	ch chan Snapshot

	mu     sync.Mutex
	closed bool
}

// Snapshots delivers the initial item set and then a fresh snapshot after
// every mutation under the subscribed token.
func (s *Subscription) Snapshots() <-chan Snapshot {
	return s.ch
}

// Close tears the subscription down and closes the snapshot channel.
func (s *Subscription) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	close(s.ch)
	s.mu.Unlock()

	s.hub.remove(s)
}

func (s *Subscription) push(ctx context.Context, snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	// Drop the stale queued snapshot, keep the latest. Pushes are
	// serialized on s.mu, so after the drain the send cannot block.
	select {
	case <-s.ch:
	default:
	}
	s.ch <- snap
	snapshotsPushed.Add(ctx, 1, metric.WithAttributes(attribute.String("list.token", snap.Token)))
}

// Hub fans full list snapshots out to every subscriber of a token. It is
// fed by Invalidate, which the database change listener calls whenever any
// item under a token is mutated.
type Hub struct {
	repo item.Repository

	mu   sync.Mutex
	subs map[string]map[*Subscription]struct{}
}

func NewHub(repo item.Repository) *Hub {
	return &Hub{
		repo: repo,
		subs: make(map[string]map[*Subscription]struct{}),
	}
}

// Subscribe opens a live view over token. The current item set is queried
// and delivered as the first snapshot before Subscribe returns, so the
// subscriber can tell "still loading" (no snapshot yet) from "empty list"
// (a snapshot with zero items).
func (h *Hub) Subscribe(ctx context.Context, token string) (*Subscription, error) {
	items, err := h.repo.ListByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	sub := &Subscription{
		hub:   h,
		token: token,
		ch:    make(chan Snapshot, 1),
	}

	h.mu.Lock()
	if h.subs[token] == nil {
		h.subs[token] = make(map[*Subscription]struct{})
	}
	h.subs[token][sub] = struct{}{}
	h.mu.Unlock()

	activeSubs.Add(ctx, 1)
	sub.push(ctx, Snapshot{Token: token, Items: items})
	return sub, nil
}

// Invalidate re-queries the full item set for token and pushes it to every
// active subscriber. A token nobody watches is a no-op without a query.
func (h *Hub) Invalidate(ctx context.Context, token string) {
	h.mu.Lock()
	targets := make([]*Subscription, 0, len(h.subs[token]))
	for sub := range h.subs[token] {
		targets = append(targets, sub)
	}
	h.mu.Unlock()

	if len(targets) == 0 {
		return
	}

	items, err := h.repo.ListByToken(ctx, token)
	if err != nil {
		log.Printf("Failed to refresh snapshot for token %s: %v", token, err)
		return
	}

	snap := Snapshot{Token: token, Items: items}
	for _, sub := range targets {
		sub.push(ctx, snap)
	}
}

// SubscriberCount reports how many live views are open for token.
func (h *Hub) SubscriberCount(token string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[token])
}

func (h *Hub) remove(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if set, ok := h.subs[sub.token]; ok {
		if _, present := set[sub]; present {
			delete(set, sub)
			activeSubs.Add(context.Background(), -1)
		}
		if len(set) == 0 {
			delete(h.subs, sub.token)
		}
	}
}
