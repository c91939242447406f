package hub

import (
	"context"
	"testing"

	"github.com/scavhunt/backend/internal/domain/realtime/event"
	"github.com/scavhunt/backend/pkg/pubsub"
	"github.com/scavhunt/backend/pkg/testutil"

	"github.com/stretchr/testify/require"
)

func newTestHub(t *testing.T) (context.Context, *Hub) {
	ctx := testutil.MockContext()
	h, err := New(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = h.Close() })

	return ctx, h
}

func Test_Hub_JoinLeave(t *testing.T) {
	_, h := newTestHub(t)

	session, _ := connect(h)
	h.Join(session, "hunt1")
	h.Join(session, "hunt2")
	require.ElementsMatch(t, []string{"hunt1", "hunt2"}, session.HuntIDs())

	room, ok := h.Room("hunt1")
	require.True(t, ok)
	require.True(t, room.Has(session.ID()))

	h.Leave(session, "hunt1")
	require.False(t, room.Has(session.ID()))
	require.Equal(t, []string{"hunt2"}, session.HuntIDs())

	// Leaving a room twice or a room never joined is a no-op.
	h.Leave(session, "hunt1")
	h.Leave(session, "hunt3")
	require.Equal(t, []string{"hunt2"}, session.HuntIDs())
}

func Test_Hub_UnregisterLeavesAllRooms(t *testing.T) {
	_, h := newTestHub(t)

	session, _ := connect(h)
	other, _ := connect(h)
	h.Join(session, "hunt1")
	h.Join(session, "hunt2")
	h.Join(other, "hunt1")
	require.Equal(t, 2, h.SessionCount())

	h.Unregister(session)
	require.Equal(t, 1, h.SessionCount())
	require.Empty(t, session.HuntIDs())

	room1, ok := h.Room("hunt1")
	require.True(t, ok)
	require.False(t, room1.Has(session.ID()))
	require.True(t, room1.Has(other.ID()))

	if room2, ok := h.Room("hunt2"); ok {
		require.Equal(t, 0, room2.Size())
	}
}

func Test_Hub_Sweep(t *testing.T) {
	ctx, h := newTestHub(t)

	session, _ := connect(h)
	h.Join(session, "hunt1")
	h.Join(session, "hunt2")
	h.Leave(session, "hunt2")

	h.Sweep(ctx)
	_, ok := h.Room("hunt2")
	require.False(t, ok)
	_, ok = h.Room("hunt1")
	require.True(t, ok)

	// A swept room is recreated on the next join.
	h.Join(session, "hunt2")
	room, ok := h.Room("hunt2")
	require.True(t, ok)
	require.True(t, room.Has(session.ID()))
}

func Test_Hub_Deliver(t *testing.T) {
	ctx, h := newTestHub(t)

	sessionA, senderA := connect(h)
	sessionB, senderB := connect(h)
	_, senderC := connect(h)
	h.Join(sessionA, "hunt1")
	h.Join(sessionB, "hunt1")

	req, err := event.New(&event.ErrorEvent{Message: "room"}, event.Metadata{HuntID: "hunt1", Except: sessionB.ID()})
	require.NoError(t, err)
	h.Deliver(ctx, req)

	req, err = event.New(&event.ErrorEvent{Message: "global"}, event.Metadata{})
	require.NoError(t, err)
	h.Deliver(ctx, req)

	// Unknown rooms are ignored.
	req, err = event.New(&event.ErrorEvent{Message: "nobody"}, event.Metadata{HuntID: "hunt9"})
	require.NoError(t, err)
	h.Deliver(ctx, req)

	require.Equal(t, []string{"error", "error"}, senderA.ops(t))
	require.Equal(t, []string{"error"}, senderB.ops(t))
	require.Equal(t, []string{"error"}, senderC.ops(t))
}

func Test_KafkaBroadcaster_FanOutAcrossInstances(t *testing.T) {
	ctx, hub1 := newTestHub(t)
	_, hub2 := newTestHub(t)

	broker := testutil.NewLoopbackPubSub()
	broadcaster1 := NewKafkaBroadcaster(hub1, broker, "hunt-broadcast")
	broadcaster2 := NewKafkaBroadcaster(hub2, broker, "hunt-broadcast")
	broker.Handle("hunt-broadcast", broadcaster1.Subscribe)
	broker.Handle("hunt-broadcast", broadcaster2.Subscribe)

	session1, sender1 := connect(hub1)
	session2, sender2 := connect(hub2)
	_, sender3 := connect(hub2)
	hub1.Join(session1, "hunt1")
	hub2.Join(session2, "hunt1")

	req, err := event.New(&event.ChatMessageEvent{Message: "hi"}, event.Metadata{HuntID: "hunt1"})
	require.NoError(t, err)
	require.NoError(t, broadcaster1.Broadcast(ctx, req))

	req, err = event.New(&event.HuntEndedEvent{HuntID: "hunt1", WinnerID: "user1"}, event.Metadata{})
	require.NoError(t, err)
	require.NoError(t, broadcaster2.Broadcast(ctx, req))

	require.Equal(t, []string{"chat-message", "hunt-ended"}, sender1.ops(t))
	require.Equal(t, []string{"chat-message", "hunt-ended"}, sender2.ops(t))
	require.Equal(t, []string{"hunt-ended"}, sender3.ops(t))
}

func Test_KafkaBroadcaster_PublishFailure(t *testing.T) {
	ctx, h := newTestHub(t)

	broadcaster := NewKafkaBroadcaster(h, &testutil.MockPublisher{}, "hunt-broadcast")
	req, err := event.New(&event.ErrorEvent{Message: "x"}, event.Metadata{})
	require.NoError(t, err)
	require.Error(t, broadcaster.Broadcast(ctx, req))

	var published *pubsub.Pack
	broadcaster = NewKafkaBroadcaster(h, &testutil.MockPublisher{
		PublishFunc: func(ctx context.Context, topic string, pack *pubsub.Pack) error {
			published = pack
			return nil
		},
	}, "hunt-broadcast")

	req, err = event.New(&event.ErrorEvent{Message: "x"}, event.Metadata{HuntID: "hunt1"})
	require.NoError(t, err)
	require.NoError(t, broadcaster.Broadcast(ctx, req))
	require.Equal(t, []byte("hunt1"), published.Key)
}
