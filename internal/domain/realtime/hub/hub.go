package hub

import (
	"context"

	"github.com/scavhunt/backend/internal/common"
	"github.com/scavhunt/backend/internal/domain/realtime/event"
	"github.com/scavhunt/backend/pkg/xcontext"

	"github.com/go-co-op/gocron/v2"
	"github.com/puzpuzpuz/xsync"
)

// Hub is the registry of sessions and hunt rooms of this process.
type Hub struct {
	rooms    *xsync.MapOf[string, *Room]
	sessions *xsync.MapOf[string, *Session]

	scheduler gocron.Scheduler
}

// New creates a hub and starts the job which periodically drops empty rooms.
// Close must be called to stop it.
func New(ctx context.Context) (*Hub, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	h := &Hub{
		rooms:     xsync.NewMapOf[*Room](),
		sessions:  xsync.NewMapOf[*Session](),
		scheduler: scheduler,
	}

	period := xcontext.Configs(ctx).Realtime.CleanupPeriod
	if period > 0 {
		_, err = scheduler.NewJob(
			gocron.DurationJob(period),
			gocron.NewTask(func() { h.Sweep(ctx) }),
		)
		if err != nil {
			return nil, err
		}
	}

	scheduler.Start()
	return h, nil
}

func (h *Hub) Close() error {
	return h.scheduler.Shutdown()
}

func (h *Hub) Register(session *Session) {
	h.sessions.Store(session.id, session)
}

// Unregister removes the session from every room and from the hub.
func (h *Hub) Unregister(session *Session) {
	for _, huntID := range session.HuntIDs() {
		h.Leave(session, huntID)
	}

	h.sessions.Delete(session.id)
}

func (h *Hub) Join(session *Session, huntID string) {
	for {
		room, _ := h.rooms.LoadOrStore(huntID, NewRoom(huntID))
		if room.register(session) {
			session.addHunt(huntID)
			return
		}

		// The room was swept between the load and the register, the sweeper
		// is about to delete it from the map.
	}
}

func (h *Hub) Leave(session *Session, huntID string) {
	session.removeHunt(huntID)
	if room, ok := h.rooms.Load(huntID); ok {
		room.unregister(session)
	}
}

// Deliver sends req to the local sessions selected by its metadata.
func (h *Hub) Deliver(ctx context.Context, req *event.EventRequest) {
	if req.Metadata.HuntID == "" {
		h.sessions.Range(func(id string, session *Session) bool {
			if id != req.Metadata.Except {
				session.Send(ctx, req)
			}

			return true
		})

		return
	}

	room, ok := h.rooms.Load(req.Metadata.HuntID)
	if !ok {
		return
	}

	for _, session := range room.snapshot() {
		if session.id != req.Metadata.Except {
			session.Send(ctx, req)
		}
	}
}

// Sweep drops the rooms without sessions and refreshes the hub gauges.
func (h *Hub) Sweep(ctx context.Context) {
	removed := 0
	h.rooms.Range(func(huntID string, room *Room) bool {
		if room.closeIfEmpty() {
			h.rooms.Delete(huntID)
			removed++
		}

		return true
	})

	if removed > 0 {
		xcontext.Logger(ctx).Debugf("Swept %d empty rooms", removed)
	}

	common.PromGauges[common.RealtimeActiveRooms].WithLabelValues().Set(float64(h.rooms.Size()))
	common.PromGauges[common.RealtimeOpenSessions].WithLabelValues().Set(float64(h.sessions.Size()))
}

func (h *Hub) Room(huntID string) (*Room, bool) {
	return h.rooms.Load(huntID)
}

func (h *Hub) RoomCount() int {
	return h.rooms.Size()
}

func (h *Hub) SessionCount() int {
	return h.sessions.Size()
}
