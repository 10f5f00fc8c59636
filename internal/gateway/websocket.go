package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	mdwerror "github.com/msto63/lexan/foundation/core/error"
	"github.com/msto63/lexan/foundation/lexan"
	"github.com/msto63/lexan/internal/analyzer/service"
	"github.com/msto63/lexan/pkg/core/logging"
)

// WebSocket upgrader with permissive settings for local editors
var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

const wsReadTimeout = 120 * time.Second

// WebSocketHandler serves live analysis over a WebSocket. Messages on one
// connection are answered in order.
type WebSocketHandler struct {
	analyzer Analyzer
	logger   *logging.Logger
	timeout  time.Duration
}

// NewWebSocketHandler creates a new WebSocket handler
func NewWebSocketHandler(analyzer Analyzer, logger *logging.Logger) *WebSocketHandler {
	if logger == nil {
		logger = logging.New("gateway-websocket")
	}
	return &WebSocketHandler{
		analyzer: analyzer,
		logger:   logger,
		timeout:  10 * time.Second,
	}
}

// WSMessage represents a WebSocket message
type WSMessage struct {
	Type    string          `json:"type"` // "analyze", "ping"
	ID      string          `json:"id,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// WSAnalyzePayload is the payload of an analyze message
type WSAnalyzePayload struct {
	Mode   string `json:"mode"`
	Text   string `json:"text"`
	Locale string `json:"locale,omitempty"`
}

// WSResponse represents a WebSocket response
type WSResponse struct {
	Type    string      `json:"type"` // "result", "error", "pong"
	ID      string      `json:"id,omitempty"`
	Payload interface{} `json:"payload,omitempty"`
}

// WSErrorPayload represents an error payload
type WSErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ServeHTTP handles WebSocket upgrade and connections
func (h *WebSocketHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed", "error", err)
		return
	}
	h.handleConnection(r.Context(), conn, r.Header.Get("Accept-Language"))
}

func (h *WebSocketHandler) handleConnection(ctx context.Context, conn *websocket.Conn, acceptLanguage string) {
	defer conn.Close()

	h.logger.Info("WebSocket connection established", "remote", conn.RemoteAddr().String())

	if limit := h.analyzer.MaxInputLength(); limit > 0 {
		conn.SetReadLimit(int64(limit)*6 + 4096)
	}
	_ = conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
	})

	for {
		var msg WSMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("WebSocket read error", "error", err)
			} else {
				h.logger.Debug("WebSocket connection closed")
			}
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(wsReadTimeout))

		switch msg.Type {
		case "ping":
			h.send(conn, WSResponse{Type: "pong", ID: msg.ID})

		case "analyze":
			var payload WSAnalyzePayload
			if err := json.Unmarshal(msg.Payload, &payload); err != nil {
				h.sendError(conn, msg.ID, "invalid_payload", "Invalid analyze payload")
				continue
			}
			if payload.Locale == "" {
				payload.Locale = acceptLanguage
			}
			h.analyze(ctx, conn, msg.ID, payload)

		default:
			h.sendError(conn, msg.ID, "unknown_type", "Unknown message type: "+msg.Type)
		}
	}
}

func (h *WebSocketHandler) analyze(ctx context.Context, conn *websocket.Conn, id string, payload WSAnalyzePayload) {
	mode, err := lexan.ParseMode(payload.Mode)
	if err != nil {
		h.sendError(conn, id, string(mdwerror.GetCode(err)), err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	resp, err := h.analyzer.Analyze(ctx, service.Request{Mode: mode, Text: payload.Text, Locale: payload.Locale})
	if err != nil {
		h.sendError(conn, id, string(mdwerror.GetCode(err)), h.analyzer.ErrorMessage(payload.Locale, err))
		return
	}

	h.send(conn, WSResponse{Type: "result", ID: id, Payload: resp})
}

func (h *WebSocketHandler) send(conn *websocket.Conn, resp WSResponse) {
	if err := conn.WriteJSON(resp); err != nil {
		h.logger.Warn("Failed to send WebSocket message", "error", err)
	}
}

func (h *WebSocketHandler) sendError(conn *websocket.Conn, id, code, message string) {
	h.send(conn, WSResponse{
		Type:    "error",
		ID:      id,
		Payload: WSErrorPayload{Code: code, Message: message},
	})
}
