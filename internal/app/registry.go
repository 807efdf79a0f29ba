package app

import (
	"errors"
	"sync"
	"time"

	"github.com/dkeye/aircast/internal/core"
	"github.com/dkeye/aircast/internal/domain"
	"github.com/rs/zerolog/log"
)

var (
	// ErrNoHost is returned when a viewer tries to join before any
	// host registered. Recoverable: the client retries later.
	ErrNoHost = errors.New("no host registered")

	// ErrNotHost is returned for host-only operations issued by a
	// connection that does not hold the host slot.
	ErrNotHost = errors.New("not the current host")
)

type peer struct {
	conn core.SignalConn
	role domain.Role
}

// Registry is the authoritative record of the current host (at most one)
// and the active viewer set. It owns all connection state; adapters only
// hand it transport endpoints and identifiers.
type Registry struct {
	mu      sync.RWMutex
	peers   map[domain.ConnectionID]*peer
	host    domain.ConnectionID
	viewers map[domain.ConnectionID]time.Time
	reports map[domain.ConnectionID]domain.QualityReport
	stats   *StatsBroadcaster
}

func NewRegistry(stats *StatsBroadcaster) *Registry {
	return &Registry{
		peers:   make(map[domain.ConnectionID]*peer),
		viewers: make(map[domain.ConnectionID]time.Time),
		reports: make(map[domain.ConnectionID]domain.QualityReport),
		stats:   stats,
	}
}

// Bind records a freshly connected transport endpoint with no role yet.
func (r *Registry) Bind(id domain.ConnectionID, conn core.SignalConn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.peers[id] = &peer{conn: conn}
	log.Info().Str("module", "app.registry").Str("id", string(id)).Msg("connection bound")
}

// RegisterHost unconditionally takes the host slot. A previous host is
// evicted without warning; its viewers get host-left and the viewer set
// clears, exactly as if the old host had disconnected.
func (r *Registry) RegisterHost(id domain.ConnectionID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.peers[id]
	if !ok {
		return
	}

	if r.host != "" && r.host != id {
		log.Warn().Str("module", "app.registry").
			Str("old", string(r.host)).Str("new", string(id)).
			Msg("host slot taken over")
		if old, ok := r.peers[r.host]; ok {
			old.role = domain.RoleUnset
		}
		r.evictViewersLocked()
	}

	r.host = id
	p.role = domain.RoleHost
	log.Info().Str("module", "app.registry").Str("id", string(id)).Msg("host registered")
	r.broadcastStatsLocked()
}

// ViewerJoin adds id to the viewer set and notifies the host.
// Fails with ErrNoHost when the host slot is empty; no state changes.
func (r *Registry) ViewerJoin(id domain.ConnectionID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.host == "" {
		return ErrNoHost
	}
	p, ok := r.peers[id]
	if !ok {
		return ErrNoHost
	}

	p.role = domain.RoleViewer
	r.viewers[id] = time.Now()
	log.Info().Str("module", "app.registry").Str("id", string(id)).Msg("viewer joined")

	if host, ok := r.peers[r.host]; ok {
		send(host.conn, viewerJoinedEvent{Type: "viewer-joined", ViewerID: id})
	}
	r.broadcastStatsLocked()
	return nil
}

// Disconnect removes id from the registry. A host disconnect cascades:
// every viewer gets host-left and the viewer set clears. A viewer
// disconnect notifies the host. Untracked ids are a no-op.
func (r *Registry) Disconnect(id domain.ConnectionID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.peers[id]
	if !ok {
		return
	}
	delete(r.peers, id)

	switch {
	case id == r.host:
		r.host = ""
		log.Info().Str("module", "app.registry").Str("id", string(id)).Msg("host left")
		r.evictViewersLocked()
		r.broadcastStatsLocked()
	case p.role == domain.RoleViewer:
		delete(r.viewers, id)
		delete(r.reports, id)
		log.Info().Str("module", "app.registry").Str("id", string(id)).Msg("viewer left")
		if host, ok := r.peers[r.host]; ok {
			send(host.conn, viewerLeftEvent{Type: "viewer-left", ViewerID: id})
		}
		r.broadcastStatsLocked()
	default:
		// Never registered a role; nothing to broadcast.
	}
}

// AnnounceStreaming re-sends viewer-joined for every current viewer so the
// host regenerates offers, then tells everyone the stream is live.
func (r *Registry) AnnounceStreaming(hostID domain.ConnectionID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if hostID != r.host || r.host == "" {
		return ErrNotHost
	}
	host := r.peers[r.host]
	for id := range r.viewers {
		send(host.conn, viewerJoinedEvent{Type: "viewer-joined", ViewerID: id})
	}
	log.Info().Str("module", "app.registry").Int("viewers", len(r.viewers)).Msg("host streaming")
	r.fanoutLocked(hostStreamingEvent{Type: "host-streaming"})
	return nil
}

// StopStreaming marks the stream inactive. The host stays registered and
// the viewer set is preserved; only viewers are notified.
func (r *Registry) StopStreaming(hostID domain.ConnectionID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if hostID != r.host || r.host == "" {
		return ErrNotHost
	}
	for id := range r.viewers {
		if p, ok := r.peers[id]; ok {
			send(p.conn, hostStoppedEvent{Type: "host-stopped"})
		}
	}
	log.Info().Str("module", "app.registry").Msg("host stopped streaming")
	return nil
}

// ReportQuality stores the latest quality sample for a viewer,
// overwriting any previous one. Reports from non-viewers are ignored.
func (r *Registry) ReportQuality(id domain.ConnectionID, rep domain.QualityReport) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.viewers[id]; !ok {
		return
	}
	r.reports[id] = rep
}

// Host returns the current host identifier, if any.
func (r *Registry) Host() (domain.ConnectionID, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.host, r.host != ""
}

// SignalOf resolves a live connection's transport endpoint.
func (r *Registry) SignalOf(id domain.ConnectionID) (core.SignalConn, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.peers[id]
	if !ok {
		return nil, false
	}
	return p.conn, true
}

// RoleOf reports the role currently held by id.
func (r *Registry) RoleOf(id domain.ConnectionID) domain.Role {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if p, ok := r.peers[id]; ok {
		return p.role
	}
	return domain.RoleUnset
}

// Snapshot computes the current stats view.
func (r *Registry) Snapshot() Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshotLocked()
}

// ListenerInfo is a read-only per-viewer view for the HTTP API.
type ListenerInfo struct {
	ViewerID domain.ConnectionID   `json:"viewerId"`
	JoinedAt time.Time             `json:"joinedAt"`
	Quality  *domain.QualityReport `json:"quality,omitempty"`
}

// Listeners returns the viewer set with each viewer's latest quality
// report, if it sent one.
func (r *Registry) Listeners() []ListenerInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]ListenerInfo, 0, len(r.viewers))
	for id, joined := range r.viewers {
		info := ListenerInfo{ViewerID: id, JoinedAt: joined}
		if rep, ok := r.reports[id]; ok {
			q := rep
			info.Quality = &q
		}
		out = append(out, info)
	}
	return out
}

func (r *Registry) snapshotLocked() Snapshot {
	ids := make([]string, 0, len(r.viewers))
	for id := range r.viewers {
		ids = append(ids, string(id))
	}
	return Snapshot{
		ViewerCount: len(r.viewers),
		HostPresent: r.host != "",
		ViewerIDs:   ids,
	}
}

// evictViewersLocked delivers host-left to every viewer and clears the
// viewer set. Callers hold the write lock.
func (r *Registry) evictViewersLocked() {
	for id := range r.viewers {
		if p, ok := r.peers[id]; ok {
			send(p.conn, hostLeftEvent{Type: "host-left"})
			p.role = domain.RoleUnset
		}
	}
	r.viewers = make(map[domain.ConnectionID]time.Time)
	r.reports = make(map[domain.ConnectionID]domain.QualityReport)
}

// fanoutLocked sends v to every live connection. Global broadcasts
// (stats, host-streaming) reach parties that just lost their role too,
// so an evicted viewer still sees the final counts.
func (r *Registry) fanoutLocked(v any) {
	for _, p := range r.peers {
		send(p.conn, v)
	}
}

func (r *Registry) broadcastStatsLocked() {
	if r.stats == nil {
		return
	}
	r.stats.publish(r.snapshotLocked(), r)
}
