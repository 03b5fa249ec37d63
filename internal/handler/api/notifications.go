package api

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"SignalDash/internal/domain/models"
	mid "SignalDash/internal/middleware"
	"SignalDash/internal/usecase"
	xhttp "SignalDash/pkg/http"
	applogger "SignalDash/pkg/logger"
	"SignalDash/pkg/util"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = wsPongWait * 9 / 10
)

type NotificationsHandler struct {
	feed     *usecase.NotificationFeed
	session  *usecase.SessionStore
	upgrader websocket.Upgrader
	l        *applogger.Logger
}

// NewNotificationsHandler accepts websocket upgrades from origins, or from
// anywhere when origins is empty or holds "*".
func NewNotificationsHandler(feed *usecase.NotificationFeed, session *usecase.SessionStore, origins []string, l *applogger.Logger) *NotificationsHandler {
	return &NotificationsHandler{
		feed:    feed,
		session: session,
		l:       l,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(origins),
		},
	}
}

func originChecker(origins []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if len(origins) == 0 || origin == "" {
			return true
		}
		for _, o := range origins {
			if o == "*" || o == origin {
				return true
			}
		}
		return false
	}
}

func (h *NotificationsHandler) RegisterRoutes(e *echo.Echo) {
	auth := mid.RequireUser(h.session)
	g := e.Group("/api/notifications")
	g.GET("", h.List, auth)
	g.GET("/ws", h.Stream, auth)
}

func (h *NotificationsHandler) List(c echo.Context) error {
	req := &models.NotificationsQuery{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	var since time.Time
	if req.Since != "" {
		t, ok := util.ParseTime(req.Since)
		if !ok {
			return xhttp.AppErrorResponse(c, xhttp.FieldError("ERR_TIME", "since", "since must be RFC3339 or unix seconds"))
		}
		since = t
	}
	rows := h.feed.List(mid.ClientID(c), since, req.Limit)
	return xhttp.ListResponse(c, rows, int64(len(rows)))
}

// Stream pushes new notifications for the client over a websocket until
// either side closes it.
func (h *NotificationsHandler) Stream(c echo.Context) error {
	client := mid.ClientID(c)
	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.l.Warn("notifications upgrade failed", applogger.String("client", client), applogger.Error(err))
		return nil
	}
	defer conn.Close()

	updates, cancel := h.feed.Subscribe(client)
	defer cancel()

	// read loop: only control frames are expected; it ends on close.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		conn.SetReadLimit(512)
		_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(wsPongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(wsPingPeriod)
	defer ticker.Stop()
	ctx := c.Request().Context()

	h.l.Debug("notifications stream opened", applogger.String("client", client))
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-closed:
			h.l.Debug("notifications stream closed", applogger.String("client", client))
			return nil
		case n := <-updates:
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteJSON(n); err != nil {
				h.l.Warn("notifications write failed", applogger.String("client", client), applogger.Error(err))
				return nil
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return nil
			}
		}
	}
}
