package events

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/GlebRadaev/jobverify/internal/events"
	"github.com/GlebRadaev/jobverify/pkg/auth"
	"github.com/GlebRadaev/jobverify/pkg/utils"
)

//go:generate mockgen -source=events.go -destination=mock.go -package=events

const (
	pingInterval = 30 * time.Second
	writeTimeout = 5 * time.Second
)

type Subscriber interface {
	Subscribe(accountID int) (<-chan events.Event, func())
}

type EventHandler struct {
	bus      Subscriber
	upgrader websocket.Upgrader
}

func New(bus Subscriber) *EventHandler {
	return &EventHandler{
		bus: bus,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// Stream godoc
//
//	@Summary		Account event stream
//	@Description	Upgrades to a websocket and pushes credits_changed, analysis_completed and payment_completed events of the account as JSON text frames.
//	@Description	Browsers may pass the token in the access_token query parameter.
//	@Tags			Events
//	@Security		BearerAuth
//	@Param			access_token	query	string	false	"JWT when the Authorization header cannot be set"
//	@Success		101
//	@Failure		401	{object}	utils.Response	"Account not authorized"
//	@Router			/api/user/events [get]
func (h *EventHandler) Stream(w http.ResponseWriter, r *http.Request) {
	accountID, ok := auth.AccountID(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ch, unsubscribe := h.bus.Subscribe(accountID)
	defer unsubscribe()

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		zap.L().Warn("can't upgrade websocket", zap.Int("account_id", accountID), zap.Error(err))
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	go readLoop(conn, cancel)

	log := zap.L().With(zap.Int("account_id", accountID))
	log.Debug("event stream opened")

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Debug("event stream closed by client")
			return
		case ev, ok := <-ch:
			if !ok {
				writeClose(conn, websocket.CloseGoingAway, "server shutting down")
				return
			}
			conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteJSON(ev); err != nil {
				log.Debug("can't write event", zap.String("type", string(ev.Type)), zap.Error(err))
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeTimeout)); err != nil {
				log.Debug("can't write ping", zap.Error(err))
				return
			}
		}
	}
}

// readLoop drains client frames so control messages are processed and a
// closed connection is noticed.
func readLoop(conn *websocket.Conn, cancel context.CancelFunc) {
	defer cancel()
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func writeClose(conn *websocket.Conn, code int, text string) {
	_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, text), time.Now().Add(writeTimeout))
}
