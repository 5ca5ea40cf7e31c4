package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/LearnWithSuryaa/analyzer-app/internal/service"
	"github.com/LearnWithSuryaa/analyzer-app/pkg/core/logging"
)

const wsReadTimeout = 120 * time.Second

// WSMessage represents a WebSocket message
type WSMessage struct {
	Type    string          `json:"type"`    // "analyze", "ping"
	Payload json.RawMessage `json:"payload"` // Message-specific payload
}

// WSResponse represents a WebSocket response
type WSResponse struct {
	Type    string      `json:"type"`    // "result", "error", "pong"
	Payload interface{} `json:"payload"` // Response-specific payload
}

// WSErrorPayload represents an error payload
type WSErrorPayload struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// webSocketHandler analyzes sentences sent over a WebSocket connection
type webSocketHandler struct {
	service  *service.Service
	logger   *logging.Logger
	upgrader websocket.Upgrader
}

func newWebSocketHandler(svc *service.Service, logger *logging.Logger) *webSocketHandler {
	return &webSocketHandler{
		service: svc,
		logger:  logger.With("component", "websocket"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Origins are restricted by the CORS layer
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// ServeHTTP handles WebSocket upgrade and connections
func (h *webSocketHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("WebSocket upgrade failed", "error", err)
		return
	}
	h.handleConnection(r.Context(), conn)
}

// handleConnection handles a single WebSocket connection. Messages are
// answered in order.
func (h *webSocketHandler) handleConnection(ctx context.Context, conn *websocket.Conn) {
	defer conn.Close()

	h.logger.Info("WebSocket connection established", "remote", conn.RemoteAddr().String())

	send := func(resp WSResponse) {
		if err := conn.WriteJSON(resp); err != nil {
			h.logger.Error("WebSocket send error", "error", err)
		}
	}

	conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
	})

	for {
		var msg WSMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("WebSocket read error", "error", err)
			} else {
				h.logger.Info("WebSocket connection closed")
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(wsReadTimeout))

		switch msg.Type {
		case "ping":
			send(WSResponse{Type: "pong", Payload: nil})

		case "analyze":
			var req AnalyzeRequest
			if err := json.Unmarshal(msg.Payload, &req); err != nil {
				send(errorMessage("invalid_payload", "invalid analyze payload", nil))
				continue
			}
			if err := validateRequest(req); err != nil {
				send(wsError(err))
				continue
			}

			record, err := h.service.Analyze(ctx, req.Text)
			if err != nil {
				send(wsError(err))
				continue
			}
			send(WSResponse{Type: "result", Payload: record})

		default:
			send(errorMessage("unknown_type", "unknown message type: "+msg.Type, nil))
		}
	}
}

func wsError(err error) WSResponse {
	resp := errorResponse(err)
	return errorMessage(resp.Code, resp.Error, resp.Details)
}

func errorMessage(code, message string, details map[string]interface{}) WSResponse {
	return WSResponse{
		Type: "error",
		Payload: WSErrorPayload{
			Code:    code,
			Message: message,
			Details: details,
		},
	}
}
