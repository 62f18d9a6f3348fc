package http

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"lista/internal/livequery"
)

const snapshotWriteTimeout = 10 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// Possession of the list token is the whole access model, so any
	// origin may open a live view.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// SnapshotMessage is one full-list push on the watch socket. The first
// message after connect is the current item set; every mutation under the
// token triggers another complete snapshot, never a diff.
type SnapshotMessage struct {
	Items []ItemResponse `json:"items"`
}

type WatchHandler struct {
	hub *livequery.Hub
}

func NewWatchHandler(hub *livequery.Hub) *WatchHandler {
	return &WatchHandler{hub: hub}
}

// HandleWatch upgrades to a WebSocket and streams full snapshots for one
// list token until either side disconnects.
func (h *WatchHandler) HandleWatch(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")
	if token == "" {
		http.Error(w, "List token is required", http.StatusBadRequest)
		return
	}

	sub, err := h.hub.Subscribe(r.Context(), token)
	if err != nil {
		log.Printf("Error subscribing to token %s: %v", token, err)
		http.Error(w, "Failed to open live view", http.StatusInternalServerError)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the error response.
		sub.Close()
		return
	}
	defer conn.Close()
	defer sub.Close()

	// Reader goroutine: we never expect client messages, but reading is
	// how gorilla surfaces the peer closing the connection.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				sub.Close()
				return
			}
		}
	}()

	for snap := range sub.Snapshots() {
		conn.SetWriteDeadline(time.Now().Add(snapshotWriteTimeout))
		if err := conn.WriteJSON(SnapshotMessage{Items: toItemResponses(snap.Items)}); err != nil {
			return
		}
	}
}
