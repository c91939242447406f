package hub

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/scavhunt/backend/config"
	"github.com/scavhunt/backend/internal/domain/realtime/event"
	"github.com/scavhunt/backend/internal/entity"
	"github.com/scavhunt/backend/pkg/router"
	"github.com/scavhunt/backend/pkg/testutil"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

func dial(t *testing.T, url string) *websocket.Conn {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) event.EventResponse {
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)

	var resp event.EventResponse
	require.NoError(t, json.Unmarshal(msg, &resp))
	return resp
}

func Test_Server_ServeWS(t *testing.T) {
	ctx, h, server := newTestServer(t)

	r := router.New(ctx)
	router.Websocket(r, "/ws", server.ServeWS)
	httpSrv := httptest.NewServer(r.Handler(config.ServerConfigs{AllowedOrigins: []string{"*"}}))
	defer httpSrv.Close()

	url := "ws" + strings.TrimPrefix(httpSrv.URL, "http") + "/ws"
	connA := dial(t, url)
	connB := dial(t, url)

	for _, conn := range []*websocket.Conn{connA, connB} {
		welcome := readEvent(t, conn)
		require.Equal(t, "message", welcome.Event)
		require.Equal(t, "Welcome", decode[event.MessageEvent](t, welcome).Text)
	}

	require.NoError(t, connB.WriteMessage(websocket.TextMessage, []byte(`{"event":"join-hunt","data":"hunt1"}`)))
	// Messages of one connection are handled in order, the leaderboard
	// answer proves that the join was processed.
	require.NoError(t, connB.WriteMessage(websocket.TextMessage, []byte(`{"event":"request-leaderboard","data":"hunt1"}`)))
	require.Equal(t, "leaderboard-update", readEvent(t, connB).Event)

	require.NoError(t, connA.WriteMessage(websocket.TextMessage, []byte(`{"event":"join-hunt","data":"hunt1"}`)))
	require.NoError(t, connA.WriteMessage(websocket.TextMessage,
		progressMsg(testutil.User1.ID, testutil.Hunt1.ID, 100, 300, entity.ProgressCompleted)))

	for _, conn := range []*websocket.Conn{connA, connB} {
		require.Equal(t, "progress-update", readEvent(t, conn).Event)
		require.Equal(t, "leaderboard-update", readEvent(t, conn).Event)

		completed := readEvent(t, conn)
		require.Equal(t, "hunt-completed", completed.Event)
		require.True(t, decode[event.HuntCompletedEvent](t, completed).PrizeClaimed)

		ended := readEvent(t, conn)
		require.Equal(t, "hunt-ended", ended.Event)
		require.Equal(t, testutil.User1.ID, decode[event.HuntEndedEvent](t, ended).WinnerID)
	}

	// Disconnecting removes the session from its rooms.
	require.Equal(t, 2, h.SessionCount())
	require.NoError(t, connA.Close())
	require.Eventually(t, func() bool { return h.SessionCount() == 1 }, 5*time.Second, 10*time.Millisecond)

	room, ok := h.Room(testutil.Hunt1.ID)
	require.True(t, ok)
	require.Equal(t, 1, room.Size())
}
