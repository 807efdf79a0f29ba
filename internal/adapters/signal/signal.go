package signal

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/dkeye/aircast/internal/app"
	"github.com/dkeye/aircast/internal/core"
	"github.com/dkeye/aircast/internal/domain"
)

var ErrBackpressure = errors.New("backpressure")

// Controller owns the WebSocket signaling endpoint. Each accepted
// connection gets an opaque server-assigned id; the registry and relay
// only ever see that id, never the socket.
type Controller struct {
	Registry *app.Registry
	Relay    *app.Relay

	ReadLimit  int64
	SendBuffer int
}

func NewController(reg *app.Registry, relay *app.Relay, readLimit int64, sendBuffer int) *Controller {
	if sendBuffer <= 0 {
		sendBuffer = 32
	}
	return &Controller{
		Registry:   reg,
		Relay:      relay,
		ReadLimit:  readLimit,
		SendBuffer: sendBuffer,
	}
}

type wsConn struct {
	conn *websocket.Conn
	send chan core.Frame

	mu     sync.RWMutex
	closed bool
}

func (c *wsConn) TrySend(f core.Frame) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return errors.New("connection closed")
	}
	select {
	case c.send <- f:
	default:
		return ErrBackpressure
	}
	return nil
}

func (c *wsConn) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.send)
	_ = c.conn.Close()
	c.mu.Unlock()
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleSignal upgrades the request and runs the connection's pumps.
func (ctl *Controller) HandleSignal(ctx context.Context, c *gin.Context) {
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("ws upgrade")
		return
	}
	if ctl.ReadLimit > 0 {
		ws.SetReadLimit(ctl.ReadLimit)
	}

	id := domain.ConnectionID(uuid.NewString())
	log.Info().Str("module", "signal").Str("id", string(id)).Msg("new WS connection")

	conn := &wsConn{
		conn: ws,
		send: make(chan core.Frame, ctl.SendBuffer),
	}
	ctl.Registry.Bind(id, conn)

	ctx, cancel := context.WithCancel(ctx)
	go ctl.writePump(ctx, conn)
	go ctl.readPump(ctx, cancel, id, conn)
}
