package signal

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/dkeye/aircast/internal/domain"
)

func (ctl *Controller) writePump(ctx context.Context, c *wsConn) {
	for {
		select {
		case <-ctx.Done():
			return
		case data, ok := <-c.send:
			if !ok {
				return
			}
			if err := c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second)); err != nil {
				log.Error().Err(err).Str("module", "signal").Msg("writePump set deadline")
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Error().Err(err).Str("module", "signal").Msg("writePump write error")
				return
			}
		}
	}
}

func (ctl *Controller) readPump(ctx context.Context, cancel context.CancelFunc, id domain.ConnectionID, c *wsConn) {
	defer func() {
		log.Info().Str("module", "signal").Str("id", string(id)).Msg("readPump closing")
		cancel()
		ctl.Registry.Disconnect(id)
		c.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			return
		default:
			_, data, err := c.conn.ReadMessage()
			if err != nil {
				log.Debug().Err(err).Str("module", "signal").Str("id", string(id)).Msg("readPump read error")
				return
			}
			ctl.handleSignal(id, c, data)
		}
	}
}

func (ctl *Controller) handleSignal(id domain.ConnectionID, c *wsConn, data []byte) {
	var env struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad json")
		return
	}

	switch env.Type {
	case "register-host":
		ctl.handleRegisterHost(id, c)
	case "announce-streaming":
		ctl.handleAnnounceStreaming(id)
	case "host-stopped-streaming":
		ctl.handleStopStreaming(id)
	case "viewer-join":
		ctl.handleViewerJoin(id, c)
	case "webrtc-offer":
		ctl.handleOffer(id, data)
	case "webrtc-answer":
		ctl.handleAnswer(id, data)
	case "webrtc-ice-candidate":
		ctl.handleCandidate(id, data)
	case "listener-stats":
		ctl.handleListenerStats(id, data)
	case "disconnect-viewer":
		ctl.handleDisconnectViewer(id, data)
	default:
		log.Warn().Str("module", "signal").Str("type", env.Type).Msg("unknown signal")
	}
}

func (ctl *Controller) sendJSON(c *wsConn, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("sendJSON marshal")
		return
	}
	_ = c.TrySend(b)
}
