package app_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkeye/aircast/internal/app"
)

func TestOfferPayloadForwardedByteIdentical(t *testing.T) {
	reg := newRegistry()
	bind(reg, "A")
	viewerConn := bind(reg, "V")
	reg.RegisterHost("A")
	require.NoError(t, reg.ViewerJoin("V"))

	relay := app.NewRelay(reg)

	// Field order and content must survive the relay untouched.
	sdp := json.RawMessage(`{"type":"offer","sdp":"v=0\r\no=- 42 2 IN IP4 127.0.0.1"}`)
	relay.Offer("V", sdp, "A")

	ev := viewerConn.lastOfType(t, "webrtc-offer")
	assert.Equal(t, "A", ev["hostId"])

	// Decode the raw frame, not the generic map, to compare bytes.
	var got struct {
		SDP json.RawMessage `json:"sdp"`
	}
	viewerConn.mu.Lock()
	last := viewerConn.frames[len(viewerConn.frames)-1]
	viewerConn.mu.Unlock()
	require.NoError(t, json.Unmarshal(last, &got))
	assert.Equal(t, []byte(sdp), []byte(got.SDP))
}

func TestAnswerForwardedToHost(t *testing.T) {
	reg := newRegistry()
	hostConn := bind(reg, "A")
	bind(reg, "V")
	reg.RegisterHost("A")
	require.NoError(t, reg.ViewerJoin("V"))

	relay := app.NewRelay(reg)
	relay.Answer("A", json.RawMessage(`"Y"`), "V")

	ev := hostConn.lastOfType(t, "webrtc-answer")
	assert.Equal(t, "V", ev["viewerId"])
	assert.Equal(t, "Y", ev["sdp"])
}

func TestCandidateForwardedWithSender(t *testing.T) {
	reg := newRegistry()
	hostConn := bind(reg, "A")
	bind(reg, "V")
	reg.RegisterHost("A")
	require.NoError(t, reg.ViewerJoin("V"))

	relay := app.NewRelay(reg)
	cand := json.RawMessage(`{"candidate":"candidate:1 1 UDP 2122252543 192.168.1.7 51234 typ host","sdpMid":"0"}`)
	relay.Candidate("A", cand, "V")

	ev := hostConn.lastOfType(t, "webrtc-ice-candidate")
	assert.Equal(t, "V", ev["from"])
	require.Contains(t, ev, "candidate")
}

func TestRelayToUnknownTargetIsSilentlyDropped(t *testing.T) {
	reg := newRegistry()
	hostConn := bind(reg, "A")
	reg.RegisterHost("A")
	before := len(hostConn.events(t))

	relay := app.NewRelay(reg)
	relay.Offer("nobody", json.RawMessage(`"X"`), "A")
	relay.Answer("nobody", json.RawMessage(`"Y"`), "A")
	relay.Candidate("nobody", json.RawMessage(`"c"`), "A")

	// Nothing delivered anywhere, nothing surfaced to the sender.
	assert.Len(t, hostConn.events(t), before)
}

func TestListenerStatsForwardedToHost(t *testing.T) {
	reg := newRegistry()
	hostConn := bind(reg, "A")
	bind(reg, "V")
	reg.RegisterHost("A")
	require.NoError(t, reg.ViewerJoin("V"))

	relay := app.NewRelay(reg)
	relay.ListenerStats("V", json.RawMessage(`{"rttMs":12.5,"jitterMs":1.2,"bitrateKbps":96,"lossPct":0.1,"timestamp":1700000000}`))

	ev := hostConn.lastOfType(t, "listener-stats")
	assert.Equal(t, "V", ev["viewerId"])
	stats, ok := ev["stats"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 12.5, stats["rttMs"])
}

func TestDisconnectViewerOnlyFromHost(t *testing.T) {
	reg := newRegistry()
	bind(reg, "A")
	v1 := bind(reg, "V1")
	bind(reg, "V2")
	reg.RegisterHost("A")
	require.NoError(t, reg.ViewerJoin("V1"))
	require.NoError(t, reg.ViewerJoin("V2"))

	relay := app.NewRelay(reg)

	relay.DisconnectViewer("V1", "V2")
	assert.Empty(t, v1.ofType(t, "disconnect-request"))

	relay.DisconnectViewer("V1", "A")
	assert.Len(t, v1.ofType(t, "disconnect-request"), 1)
}

// The full host/viewer negotiation round-trip.
func TestBroadcastScenario(t *testing.T) {
	reg := newRegistry()
	hostConn := bind(reg, "A")
	viewerConn := bind(reg, "B")
	relay := app.NewRelay(reg)

	reg.RegisterHost("A")
	require.NoError(t, reg.ViewerJoin("B"))

	stats := viewerConn.lastOfType(t, "stats")
	assert.Equal(t, float64(1), stats["viewerCount"])
	assert.Equal(t, true, stats["hostPresent"])

	relay.Offer("B", json.RawMessage(`"X"`), "A")
	offer := viewerConn.lastOfType(t, "webrtc-offer")
	assert.Equal(t, "X", offer["sdp"])
	assert.Equal(t, "A", offer["hostId"])

	relay.Answer("A", json.RawMessage(`"Y"`), "B")
	answer := hostConn.lastOfType(t, "webrtc-answer")
	assert.Equal(t, "Y", answer["sdp"])
	assert.Equal(t, "B", answer["viewerId"])

	reg.Disconnect("A")
	require.Len(t, viewerConn.ofType(t, "host-left"), 1)

	stats = viewerConn.lastOfType(t, "stats")
	assert.Equal(t, float64(0), stats["viewerCount"])
	assert.Equal(t, false, stats["hostPresent"])
}
