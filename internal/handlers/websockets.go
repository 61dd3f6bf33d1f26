package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"mission_awareness/internal/models"
	"mission_awareness/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Send/receive timing configuration and message size limits.
const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 1 << 16 // 64 KB, bounds the activity list per message
)

// Message types exchanged over the socket.
const (
	wsTypeChronological = "chronological"
	wsTypeStreaming     = "streaming"
	wsTypeWindow        = "window"
	wsTypeWindows       = "windows"
	wsTypeReady         = "ready"
	wsTypeError         = "error"
)

// Envelope used for outbound WebSocket messages.
type wsEnvelope struct {
	Type  string      `json:"type"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

// Inbound build request: which algorithm to run and on what.
type wsRequest struct {
	Type       string                  `json:"type"` // chronological | streaming
	Activities []models.ActivityRecord `json:"activities"`
}

// Upgrader for HTTP -> WebSocket. Consider tightening CheckOrigin in production.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true }, // TODO: restrict origins for production
}

func (h *Handler) wsConnect(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_upgrade_failed", "err", err)
		}
		return
	}
	defer func() { _ = conn.Close() }()

	// Configure read limits and pong handler to extend read deadline.
	conn.SetReadLimit(maxMsgSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	// Reader goroutine forwards client messages and detects disconnects.
	requests := make(chan []byte)
	done := make(chan struct{})
	quit := make(chan struct{})
	defer close(quit)
	go h.startReader(conn, requests, done, quit)

	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	// Announce readiness with the current usage snapshot.
	ready := wsEnvelope{Type: wsTypeReady, Data: h.services.Monitoring.Stats(c.Request.Context())}
	if err := h.writeEnvelope(conn, ready); err != nil {
		// If the initial send fails, log and close the connection.
		if h.log != nil {
			h.log.Infow("ws_write_failed_initial", "err", err)
		}
		return
	}

	// Writer/select loop: all writes happen here.
	for {
		select {
		case <-done:
			return
		case <-c.Request.Context().Done():
			return
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				if h.log != nil {
					h.log.Infow("ws_ping_failed", "err", err)
				}
				return
			}
		case raw := <-requests:
			if err := h.handleWindowMessage(c.Request.Context(), conn, raw); err != nil {
				if h.log != nil {
					h.log.Infow("ws_write_failed", "err", err)
				}
				return
			}
		}
	}
}

// Helper: startReader forwards incoming messages, handles control frames,
// and detects closure. quit unblocks a pending forward when the writer
// loop has already returned.
func (h *Handler) startReader(conn *websocket.Conn, requests chan<- []byte, done chan<- struct{}, quit <-chan struct{}) {
	defer close(done)
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if h.log != nil {
				h.log.Infow("ws_read_closed", "err", err)
			}
			return
		}
		select {
		case requests <- raw:
		case <-quit:
			return
		}
	}
}

// Helper: handleWindowMessage runs the requested algorithm and writes one
// reply envelope. A non-nil error means the write failed and the
// connection should close; client mistakes are answered with an error
// envelope instead.
func (h *Handler) handleWindowMessage(ctx context.Context, conn *websocket.Conn, raw []byte) error {
	var req wsRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return h.writeEnvelope(conn, wsEnvelope{Type: wsTypeError, Error: errInvalidBodyPref + err.Error()})
	}
	if req.Activities == nil {
		return h.writeEnvelope(conn, wsEnvelope{Type: wsTypeError, Error: errActivitiesRequired})
	}

	switch req.Type {
	case wsTypeChronological:
		window, err := h.services.Windows.BuildChronological(ctx, req.Activities)
		if err != nil {
			return h.writeEnvelope(conn, wsEnvelope{Type: wsTypeError, Error: h.wsUserMessage(err, errBuildChronological, "ws_chronological_failed")})
		}
		return h.writeEnvelope(conn, wsEnvelope{Type: wsTypeWindow, Data: ChronologicalWindowResponse{
			Window: window,
			Count:  len(window),
		}})
	case wsTypeStreaming:
		windows, err := h.services.Windows.BuildStreaming(ctx, req.Activities)
		if err != nil {
			return h.writeEnvelope(conn, wsEnvelope{Type: wsTypeError, Error: h.wsUserMessage(err, errBuildStreaming, "ws_streaming_failed")})
		}
		total := 0
		for _, w := range windows {
			total += len(w)
		}
		return h.writeEnvelope(conn, wsEnvelope{Type: wsTypeWindows, Data: StreamingWindowsResponse{
			Windows:         windows,
			WindowCount:     len(windows),
			TotalActivities: total,
		}})
	default:
		return h.writeEnvelope(conn, wsEnvelope{Type: wsTypeError, Error: fmt.Sprintf("unknown message type: %q", req.Type)})
	}
}

// Helper: wsUserMessage logs the failure and picks the client-facing
// message, mirroring the HTTP error mapping.
func (h *Handler) wsUserMessage(err error, userMsg, logKey string) string {
	if h.log != nil {
		h.log.Errorw(logKey, "err", err)
	}
	if errors.Is(err, service.ErrValidation) {
		return err.Error()
	}
	return userMsg
}

// Helper: writeEnvelope writes one envelope with a write deadline.
func (h *Handler) writeEnvelope(conn *websocket.Conn, env wsEnvelope) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(env)
}
