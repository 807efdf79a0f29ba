package app

import (
	"encoding/json"

	"github.com/dkeye/aircast/internal/domain"
	"github.com/rs/zerolog/log"
)

// Relay forwards negotiation payloads between registry members by
// identifier. It never inspects or rewrites the payload itself; the only
// additions are routing fields naming the sender. Messages addressed to an
// identifier that is not a live connection are dropped silently: no error
// to the sender, no retry, no queuing.
type Relay struct {
	reg *Registry
}

func NewRelay(reg *Registry) *Relay {
	return &Relay{reg: reg}
}

// Offer forwards an SDP offer from the host to one viewer.
func (x *Relay) Offer(viewerID domain.ConnectionID, sdp json.RawMessage, from domain.ConnectionID) {
	conn, ok := x.reg.SignalOf(viewerID)
	if !ok {
		log.Debug().Str("module", "app.relay").Str("target", string(viewerID)).Msg("offer target gone, dropped")
		return
	}
	send(conn, offerEvent{Type: "webrtc-offer", SDP: sdp, HostID: from})
}

// Answer forwards an SDP answer from a viewer back to the host.
func (x *Relay) Answer(hostID domain.ConnectionID, sdp json.RawMessage, from domain.ConnectionID) {
	conn, ok := x.reg.SignalOf(hostID)
	if !ok {
		log.Debug().Str("module", "app.relay").Str("target", string(hostID)).Msg("answer target gone, dropped")
		return
	}
	send(conn, answerEvent{Type: "webrtc-answer", SDP: sdp, ViewerID: from})
}

// Candidate forwards an ICE candidate in either direction.
func (x *Relay) Candidate(targetID domain.ConnectionID, candidate json.RawMessage, from domain.ConnectionID) {
	conn, ok := x.reg.SignalOf(targetID)
	if !ok {
		log.Debug().Str("module", "app.relay").Str("target", string(targetID)).Msg("candidate target gone, dropped")
		return
	}
	send(conn, candidateEvent{Type: "webrtc-ice-candidate", Candidate: candidate, From: from})
}

// ListenerStats forwards a viewer's quality sample to the current host,
// tagged with the reporting viewer's id.
func (x *Relay) ListenerStats(from domain.ConnectionID, stats json.RawMessage) {
	hostID, ok := x.reg.Host()
	if !ok {
		return
	}
	conn, ok := x.reg.SignalOf(hostID)
	if !ok {
		return
	}
	send(conn, listenerStatsEvent{Type: "listener-stats", ViewerID: from, Stats: stats})
}

// DisconnectViewer delivers a disconnect request to one viewer. Only the
// current host may issue it.
func (x *Relay) DisconnectViewer(viewerID, from domain.ConnectionID) {
	if hostID, ok := x.reg.Host(); !ok || hostID != from {
		return
	}
	conn, ok := x.reg.SignalOf(viewerID)
	if !ok {
		return
	}
	send(conn, disconnectRequestEvent{Type: "disconnect-request"})
}
