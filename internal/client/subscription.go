package client

import (
	"context"
	"encoding/json"
	"log"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	reconnectBaseDelay = time.Second
	reconnectMaxDelay  = 30 * time.Second
)

type snapshotMessage struct {
	Items []Item `json:"items"`
}

// Subscription is the client end of a live view: it holds a WebSocket to
// the watch endpoint and delivers every full snapshot the server pushes.
// Until the first snapshot arrives the list is "loading", which is not the
// same as empty. The connection is re-dialed with backoff until Close.
type Subscription struct {
	snapshots chan []Item

	cancel    context.CancelFunc
	closeOnce sync.Once
	done      chan struct{}
}

// Watch opens a live view over token. Snapshots are delivered on the
// returned subscription's channel; the latest snapshot wins when the
// consumer lags.
func (c *Client) Watch(ctx context.Context, token string) *Subscription {
	ctx, cancel := context.WithCancel(ctx)
	sub := &Subscription{
		snapshots: make(chan []Item, 1),
		cancel:    cancel,
		done:      make(chan struct{}),
	}

	wsURL := c.baseURL.JoinPath("api", "lists", token, "watch")
	switch wsURL.Scheme {
	case "https":
		wsURL.Scheme = "wss"
	default:
		wsURL.Scheme = "ws"
	}

	go sub.run(ctx, wsURL)
	return sub
}

// Snapshots delivers full item sets; the channel closes after Close.
func (s *Subscription) Snapshots() <-chan []Item {
	return s.snapshots
}

// Close tears down the live view.
func (s *Subscription) Close() {
	s.closeOnce.Do(func() {
		s.cancel()
		<-s.done
		close(s.snapshots)
	})
}

func (s *Subscription) run(ctx context.Context, wsURL *url.URL) {
	defer close(s.done)

	delay := reconnectBaseDelay
	for {
		if err := s.connectAndRead(ctx, wsURL); err != nil && ctx.Err() == nil {
			log.Printf("Live view disconnected: %v", err)
		}
		if ctx.Err() != nil {
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}
		if delay *= 2; delay > reconnectMaxDelay {
			delay = reconnectMaxDelay
		}
	}
}

func (s *Subscription) connectAndRead(ctx context.Context, wsURL *url.URL) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL.String(), nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	// Unblock the read loop when the subscription is closed.
	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		var msg snapshotMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			return err
		}
		if msg.Items == nil {
			msg.Items = []Item{}
		}
		s.deliver(msg.Items)
	}
}

func (s *Subscription) deliver(items []Item) {
	// Keep only the latest snapshot queued; never block on a slow consumer.
	select {
	case <-s.snapshots:
	default:
	}
	s.snapshots <- items
}
