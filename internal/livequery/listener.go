package livequery

import (
	"context"
	"log"
	"time"

	"github.com/lib/pq"
)

const reconnectInterval = 5 * time.Second

// Listener holds a dedicated PostgreSQL connection on the item-change
// NOTIFY channel and invalidates the hub for every token that mutates.
// It reconnects forever until stopped.
type Listener struct {
	connStr    string
	channel    string
	hub        *Hub
	shutdownCh chan struct{}
	done       chan struct{}
}

func NewListener(connStr, channel string, hub *Hub) *Listener {
	return &Listener{
		connStr:    connStr,
		channel:    channel,
		hub:        hub,
		shutdownCh: make(chan struct{}),
		done:       make(chan struct{}),
	}
}

// Start begins listening for notifications in a background goroutine.
func (l *Listener) Start(ctx context.Context) {
	go l.listen(ctx)
	log.Println("List change listener started")
}

// Stop gracefully shuts down the listener.
func (l *Listener) Stop() {
	close(l.shutdownCh)
	<-l.done
	log.Println("List change listener stopped")
}

func (l *Listener) listen(ctx context.Context) {
	defer close(l.done)

	for {
		select {
		case <-l.shutdownCh:
			return
		case <-ctx.Done():
			return
		default:
			l.connectAndListen(ctx)
		}

		// Wait before reconnecting
		select {
		case <-l.shutdownCh:
			return
		case <-ctx.Done():
			return
		case <-time.After(reconnectInterval):
			log.Println("Reconnecting to PostgreSQL for notifications...")
		}
	}
}

func (l *Listener) connectAndListen(ctx context.Context) {
	listener := pq.NewListener(l.connStr, 10*time.Second, time.Minute, func(ev pq.ListenerEventType, err error) {
		if err != nil {
			log.Printf("Listener error: %v", err)
		}
		switch ev {
		case pq.ListenerEventConnected:
			log.Println("Connected to PostgreSQL notification channel")
		case pq.ListenerEventDisconnected:
			log.Println("Disconnected from PostgreSQL notification channel")
		case pq.ListenerEventReconnected:
			log.Println("Reconnected to PostgreSQL notification channel")
		case pq.ListenerEventConnectionAttemptFailed:
			log.Printf("Connection attempt failed: %v", err)
		}
	})

	defer listener.Close()

	if err := listener.Listen(l.channel); err != nil {
		log.Printf("Failed to listen on channel %s: %v", l.channel, err)
		return
	}

	log.Printf("Listening on channel: %s", l.channel)

	for {
		select {
		case <-l.shutdownCh:
			return
		case <-ctx.Done():
			return
		case notification := <-listener.Notify:
			if notification == nil {
				// Connection lost, break to reconnect
				return
			}
			// The payload is the list token of the mutated item.
			l.hub.Invalidate(ctx, notification.Extra)
		case <-time.After(90 * time.Second):
			// Ping to keep connection alive
			go func() {
				if err := listener.Ping(); err != nil {
					log.Printf("Listener ping failed: %v", err)
				}
			}()
		}
	}
}
