package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pion/webrtc/v4"

	"github.com/dkeye/aircast/internal/app"
	"github.com/dkeye/aircast/internal/domain"
)

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().Unix(),
	})
}

func statsHandler(reg *app.Registry, startedAt time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		snap := reg.Snapshot()
		c.JSON(http.StatusOK, gin.H{
			"viewerCount": snap.ViewerCount,
			"hostPresent": snap.HostPresent,
			"uptime":      int64(time.Since(startedAt).Seconds()),
		})
	}
}

func networkInfoHandler(port int) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, networkInfo(port))
	}
}

func listenersHandler(reg *app.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"listeners": reg.Listeners()})
	}
}

// webrtcConfigHandler hands clients the ICE servers they should dial
// through. Media never touches this server; this is the only knob it
// controls on the peer connections.
func webrtcConfigHandler(stunServers []string) gin.HandlerFunc {
	ice := make([]webrtc.ICEServer, 0, len(stunServers))
	for _, u := range stunServers {
		ice = append(ice, webrtc.ICEServer{URLs: []string{u}})
	}
	cfg := webrtc.Configuration{ICEServers: ice}
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"iceServers": cfg.ICEServers})
	}
}

// hostSessionHandler mints host-page access tokens for non-loopback
// devices. Only a loopback client may mint one; that keeps the grant
// out-of-band from the signaling flow.
func hostSessionHandler(store *app.SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !isLoopbackRequest(c) {
			c.JSON(http.StatusForbidden, gin.H{"error": "host sessions are minted from the host machine"})
			return
		}
		sess := store.Create(domain.RoleHost)
		c.JSON(http.StatusOK, gin.H{
			"sessionId": sess.ID,
			"expiresAt": sess.CreatedAt.Add(store.MaxAge()).Unix(),
		})
	}
}
