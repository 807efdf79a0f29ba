package http

import (
	"net"
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/dkeye/aircast/internal/app"
	"github.com/dkeye/aircast/internal/domain"
)

const sessionKey = "aircast_session"

// AccessGate decides whether a request may see the host control surface.
// Loopback origins always may; anyone else needs a token that resolves in
// the store to a host session. Everything else is redirected to the
// public viewer surface. This is a coarse origin/token check, not
// authentication.
func AccessGate(store *app.SessionStore, viewerPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if isLoopbackRequest(c) {
			c.Next()
			return
		}

		sess := sessions.Default(c)

		token := c.Query("session")
		if token == "" {
			if v, ok := sess.Get(sessionKey).(string); ok {
				token = v
			}
		}

		if token != "" {
			if rec, ok := store.Get(domain.SessionID(token)); ok && rec.Role == domain.RoleHost {
				// Persist so follow-up requests don't need ?session=.
				sess.Set(sessionKey, token)
				_ = sess.Save()
				c.Next()
				return
			}
		}

		log.Info().Str("module", "http.gate").Str("remote", c.ClientIP()).Msg("host page denied, redirecting")
		c.Redirect(http.StatusFound, viewerPath)
		c.Abort()
	}
}

func isLoopbackRequest(c *gin.Context) bool {
	host := c.Request.Host
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	if strings.EqualFold(host, "localhost") {
		return true
	}
	if ip := net.ParseIP(strings.Trim(host, "[]")); ip != nil && ip.IsLoopback() {
		return true
	}
	if ip := net.ParseIP(c.RemoteIP()); ip != nil && ip.IsLoopback() {
		return true
	}
	return false
}
