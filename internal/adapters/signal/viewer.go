package signal

import (
	"encoding/json"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/dkeye/aircast/internal/app"
	"github.com/dkeye/aircast/internal/domain"
)

func (ctl *Controller) handleViewerJoin(id domain.ConnectionID, conn *wsConn) {
	if err := ctl.Registry.ViewerJoin(id); err != nil {
		if errors.Is(err, app.ErrNoHost) {
			ctl.sendJSON(conn, struct {
				Type string `json:"type"`
			}{Type: "no-host"})
			return
		}
		log.Error().Err(err).Str("module", "signal").Str("id", string(id)).Msg("viewer-join")
	}
}

func (ctl *Controller) handleAnswer(id domain.ConnectionID, data []byte) {
	var p struct {
		Type   string          `json:"type"`
		HostID string          `json:"hostId"`
		SDP    json.RawMessage `json:"sdp"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad answer payload")
		return
	}
	ctl.Relay.Answer(domain.ConnectionID(p.HostID), p.SDP, id)
}

func (ctl *Controller) handleCandidate(id domain.ConnectionID, data []byte) {
	var p struct {
		Type      string          `json:"type"`
		TargetID  string          `json:"targetId"`
		Candidate json.RawMessage `json:"candidate"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad candidate payload")
		return
	}
	ctl.Relay.Candidate(domain.ConnectionID(p.TargetID), p.Candidate, id)
}

func (ctl *Controller) handleListenerStats(id domain.ConnectionID, data []byte) {
	var p struct {
		Type  string          `json:"type"`
		Stats json.RawMessage `json:"stats"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad listener-stats payload")
		return
	}

	var rep domain.QualityReport
	if err := json.Unmarshal(p.Stats, &rep); err == nil {
		ctl.Registry.ReportQuality(id, rep)
	}
	ctl.Relay.ListenerStats(id, p.Stats)
}
