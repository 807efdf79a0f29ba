package app

import (
	"github.com/rs/zerolog/log"
)

// Snapshot is the stats view derived from the registry after every
// mutation. It replaces whatever a subscriber held before; never a delta.
type Snapshot struct {
	ViewerCount int
	HostPresent bool
	ViewerIDs   []string
}

// StatsBroadcaster publishes registry snapshots to all connected parties
// (the host and every viewer). It keeps no state of its own.
type StatsBroadcaster struct{}

func NewStatsBroadcaster() *StatsBroadcaster {
	return &StatsBroadcaster{}
}

// publish is invoked by the registry with its lock held; it must only
// enqueue frames, never call back into locking registry methods.
func (b *StatsBroadcaster) publish(snap Snapshot, reg *Registry) {
	log.Debug().Str("module", "app.stats").
		Int("viewers", snap.ViewerCount).Bool("host", snap.HostPresent).
		Msg("stats broadcast")
	reg.fanoutLocked(statsEvent{
		Type:        "stats",
		ViewerCount: snap.ViewerCount,
		HostPresent: snap.HostPresent,
		ViewerIDs:   snap.ViewerIDs,
	})
}
