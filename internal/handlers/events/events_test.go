package events

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/GlebRadaev/jobverify/internal/events"
	"github.com/GlebRadaev/jobverify/pkg/auth"
)

func withAccount(accountID int, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), auth.AccountIDKey, accountID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusSwitchingProtocols, resp.StatusCode)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestStreamDeliversOwnEvents(t *testing.T) {
	bus := events.NewBus(8)
	handler := New(bus)
	srv := httptest.NewServer(withAccount(1, http.HandlerFunc(handler.Stream)))
	defer srv.Close()

	conn := dial(t, srv)

	bus.Publish(events.NewCreditsChanged(2, 10, 10, "purchase"))
	bus.Publish(events.NewCreditsChanged(1, 8, -2, "job analysis"))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var ev events.Event
	require.NoError(t, conn.ReadJSON(&ev))
	assert.Equal(t, events.TypeCreditsChanged, ev.Type)
	assert.Equal(t, 1, ev.AccountID)
	payload, ok := ev.Payload.(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 8, payload["balance"])
	assert.EqualValues(t, -2, payload["delta"])
}

func TestStreamClosesWithBus(t *testing.T) {
	bus := events.NewBus(8)
	handler := New(bus)
	srv := httptest.NewServer(withAccount(1, http.HandlerFunc(handler.Stream)))
	defer srv.Close()

	conn := dial(t, srv)
	bus.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway), "unexpected error: %v", err)
}

func TestStreamUnsubscribesOnDisconnect(t *testing.T) {
	ctrl := gomock.NewController(t)
	bus := NewMockSubscriber(ctrl)
	handler := New(bus)

	unsubscribed := make(chan struct{})
	var ch <-chan events.Event = make(chan events.Event)
	bus.EXPECT().Subscribe(1).Return(ch, func() { close(unsubscribed) })

	srv := httptest.NewServer(withAccount(1, http.HandlerFunc(handler.Stream)))
	defer srv.Close()

	conn := dial(t, srv)
	require.NoError(t, conn.Close())

	select {
	case <-unsubscribed:
	case <-time.After(2 * time.Second):
		t.Fatal("subscription was not cancelled")
	}
}

func TestStreamUnauthorized(t *testing.T) {
	ctrl := gomock.NewController(t)
	handler := New(NewMockSubscriber(ctrl))

	w := httptest.NewRecorder()
	handler.Stream(w, httptest.NewRequest(http.MethodGet, "/api/user/events", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
