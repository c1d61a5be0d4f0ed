package geminikit

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/mixaill76/geminikit/internal/dialect"
	"github.com/mixaill76/geminikit/internal/monitoring"
)

// Live opens bidirectional realtime sessions.
type Live struct {
	api *apiClient
}

// wsURL builds the dialect's bidi endpoint. A configured base URL overrides
// the host with its scheme switched to websocket.
func (l *Live) wsURL() string {
	if l.api.baseURL != "" {
		base := strings.TrimSuffix(l.api.baseURL, "/")
		base = strings.Replace(base, "http://", "ws://", 1)
		base = strings.Replace(base, "https://", "wss://", 1)
		if l.api.dialect == dialect.VertexAI {
			return base + "/ws/google.cloud.aiplatform.v1beta1.LlmBidiService/BidiGenerateContent"
		}
		return base + "/ws/google.ai.generativelanguage.v1beta.GenerativeService.BidiGenerateContent"
	}
	if l.api.dialect == dialect.VertexAI {
		host := fmt.Sprintf("%s-aiplatform.googleapis.com", l.api.location)
		if l.api.location == "global" {
			host = "aiplatform.googleapis.com"
		}
		return fmt.Sprintf("wss://%s/ws/google.cloud.aiplatform.v1beta1.LlmBidiService/BidiGenerateContent", host)
	}
	return "wss://generativelanguage.googleapis.com/ws/google.ai.generativelanguage.v1beta.GenerativeService.BidiGenerateContent"
}

// Connect dials the backend and sends the setup frame. The returned session
// is active; the first Receive on a healthy session yields the
// setup-completion acknowledgment.
func (l *Live) Connect(ctx context.Context, model string, config *LiveConnectConfig) (*Session, error) {
	header := http.Header{}
	if err := l.api.provider.Apply(ctx, header); err != nil {
		return nil, fmt.Errorf("failed to apply credentials: %w", err)
	}

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, l.wsURL(), header)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("live dial failed with status %d: %w", resp.StatusCode, err)
		}
		return nil, fmt.Errorf("live dial failed: %w", err)
	}

	session := &Session{
		conn:    conn,
		dialect: l.api.dialect,
		tc:      l.api.transformContext(nil),
		logger:  l.api.logger,
	}

	if err := session.sendSetup(model, config); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return session, nil
}

// Session is one live bidirectional conversation over a persistent
// WebSocket. Client content frames preserve turn order; realtime input is
// best-effort. Close is terminal.
type Session struct {
	conn    *websocket.Conn
	dialect dialect.Dialect
	tc      *dialect.Context
	logger  *slog.Logger
}

func (s *Session) sendSetup(model string, config *LiveConnectConfig) error {
	setup := map[string]any{"model": model}
	if config != nil {
		record, err := toRecord(config)
		if err != nil {
			return err
		}
		record["model"] = model
		setup = record
	}

	wire, err := dialect.ToWire(s.tc, dialect.LiveConnectConfigConcept, setup)
	if err != nil {
		return err
	}
	return s.writeFrame(map[string]any{"setup": wire})
}

func (s *Session) writeFrame(frame map[string]any) error {
	if err := s.conn.WriteJSON(frame); err != nil {
		return fmt.Errorf("live send failed: %w", err)
	}
	monitoring.LiveFramesTotal.WithLabelValues(s.dialect.String(), "sent").Inc()
	s.logger.Debug("Live frame sent", "dialect", s.dialect.String())
	return nil
}

// SendClientContent sends an ordered turn-based content frame.
func (s *Session) SendClientContent(content *LiveClientContent) error {
	record, err := toRecord(content)
	if err != nil {
		return err
	}
	wire, err := dialect.ToWire(s.tc, dialect.LiveClientContentConcept, record)
	if err != nil {
		return err
	}
	return s.writeFrame(map[string]any{"clientContent": wire})
}

// SendRealtimeInput sends a best-effort realtime media frame.
func (s *Session) SendRealtimeInput(input *LiveRealtimeInput) error {
	record, err := toRecord(input)
	if err != nil {
		return err
	}
	wire, err := dialect.ToWire(s.tc, dialect.LiveRealtimeInputConcept, record)
	if err != nil {
		return err
	}
	return s.writeFrame(map[string]any{"realtimeInput": wire})
}

// SendToolResponse replies to a server tool call. On the Gemini Developer
// API every function response must carry the id of the call it answers;
// Vertex AI does not use correlation ids.
func (s *Session) SendToolResponse(resp *LiveToolResponse) error {
	if s.dialect == dialect.GeminiAPI {
		for i, fr := range resp.FunctionResponses {
			if fr == nil || fr.ID == "" {
				return fmt.Errorf("geminikit: function response %d is missing the tool call id", i)
			}
		}
	}

	record, err := toRecord(resp)
	if err != nil {
		return err
	}
	wire, err := dialect.ToWire(s.tc, dialect.LiveToolResponseConcept, record)
	if err != nil {
		return err
	}
	return s.writeFrame(map[string]any{"toolResponse": wire})
}

// Receive blocks for the next server frame and decodes it into the
// canonical message shape. Text and binary frames both carry JSON.
func (s *Session) Receive() (*LiveServerMessage, error) {
	_, payload, err := s.conn.ReadMessage()
	if err != nil {
		return nil, fmt.Errorf("live receive failed: %w", err)
	}
	monitoring.LiveFramesTotal.WithLabelValues(s.dialect.String(), "received").Inc()

	var wire map[string]any
	if err := json.Unmarshal(payload, &wire); err != nil {
		return nil, fmt.Errorf("failed to decode live frame: %w", err)
	}

	canonical, err := dialect.FromWire(s.tc, dialect.LiveServerMessageConcept, wire)
	if err != nil {
		return nil, err
	}
	return fromRecord[LiveServerMessage](canonical)
}

// Close terminates the session.
func (s *Session) Close() error {
	return s.conn.Close()
}
