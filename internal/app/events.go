package app

import (
	"encoding/json"

	"github.com/dkeye/aircast/internal/core"
	"github.com/dkeye/aircast/internal/domain"
	"github.com/rs/zerolog/log"
)

// Outbound signaling events. SDP and ICE payloads stay json.RawMessage so
// the server forwards them byte-identical, only routing metadata is added.

type viewerJoinedEvent struct {
	Type     string              `json:"type"`
	ViewerID domain.ConnectionID `json:"viewerId"`
}

type viewerLeftEvent struct {
	Type     string              `json:"type"`
	ViewerID domain.ConnectionID `json:"viewerId"`
}

type hostLeftEvent struct {
	Type string `json:"type"`
}

type hostStreamingEvent struct {
	Type string `json:"type"`
}

type hostStoppedEvent struct {
	Type string `json:"type"`
}

type offerEvent struct {
	Type   string              `json:"type"`
	SDP    json.RawMessage     `json:"sdp"`
	HostID domain.ConnectionID `json:"hostId"`
}

type answerEvent struct {
	Type     string              `json:"type"`
	SDP      json.RawMessage     `json:"sdp"`
	ViewerID domain.ConnectionID `json:"viewerId"`
}

type candidateEvent struct {
	Type      string              `json:"type"`
	Candidate json.RawMessage     `json:"candidate"`
	From      domain.ConnectionID `json:"from"`
}

type listenerStatsEvent struct {
	Type     string              `json:"type"`
	ViewerID domain.ConnectionID `json:"viewerId"`
	Stats    json.RawMessage     `json:"stats"`
}

type disconnectRequestEvent struct {
	Type string `json:"type"`
}

type statsEvent struct {
	Type        string   `json:"type"`
	ViewerCount int      `json:"viewerCount"`
	HostPresent bool     `json:"hostPresent"`
	ViewerIDs   []string `json:"viewerIds"`
}

// send marshals v and hands it to the connection. A full send queue
// drops the frame; nothing is surfaced to the sender.
func send(conn core.SignalConn, v any) {
	if conn == nil {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "app").Msg("event marshal")
		return
	}
	if err := conn.TrySend(b); err != nil {
		log.Debug().Err(err).Str("module", "app").Msg("event dropped")
	}
}
