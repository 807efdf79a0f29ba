// Package domain contains entity without logic, just meta-data
package domain

// ConnectionID wraps the transport-assigned identifier so the core
// never depends on how the adapter mints it.
type ConnectionID string

type Role string

const (
	RoleUnset  Role = ""
	RoleHost   Role = "host"
	RoleViewer Role = "viewer"
)

// QualityReport is the latest link-quality sample a viewer sent.
// Overwritten on every report, never aggregated.
type QualityReport struct {
	RTTMs       float64 `json:"rttMs"`
	JitterMs    float64 `json:"jitterMs"`
	BitrateKbps float64 `json:"bitrateKbps"`
	LossPct     float64 `json:"lossPct"`
	Timestamp   int64   `json:"timestamp"`
}
