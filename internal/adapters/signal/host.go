package signal

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/aircast/internal/domain"
)

func (ctl *Controller) handleRegisterHost(id domain.ConnectionID, conn *wsConn) {
	ctl.Registry.RegisterHost(id)
	ctl.sendJSON(conn, struct {
		Type   string              `json:"type"`
		HostID domain.ConnectionID `json:"hostId"`
	}{
		Type:   "host-confirmed",
		HostID: id,
	})
}

func (ctl *Controller) handleAnnounceStreaming(id domain.ConnectionID) {
	if err := ctl.Registry.AnnounceStreaming(id); err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("id", string(id)).Msg("announce-streaming rejected")
	}
}

func (ctl *Controller) handleStopStreaming(id domain.ConnectionID) {
	if err := ctl.Registry.StopStreaming(id); err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("id", string(id)).Msg("host-stopped-streaming rejected")
	}
}

func (ctl *Controller) handleOffer(id domain.ConnectionID, data []byte) {
	var p struct {
		Type     string          `json:"type"`
		ViewerID string          `json:"viewerId"`
		SDP      json.RawMessage `json:"sdp"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad offer payload")
		return
	}
	ctl.Relay.Offer(domain.ConnectionID(p.ViewerID), p.SDP, id)
}

func (ctl *Controller) handleDisconnectViewer(id domain.ConnectionID, data []byte) {
	var p struct {
		Type     string `json:"type"`
		ViewerID string `json:"viewerId"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad disconnect-viewer payload")
		return
	}
	ctl.Relay.DisconnectViewer(domain.ConnectionID(p.ViewerID), id)
}
