package hub

import (
	"context"
	"errors"
	"sync"

	"github.com/scavhunt/backend/internal/common"
	"github.com/scavhunt/backend/internal/domain/realtime/event"
	"github.com/scavhunt/backend/pkg/ws"
	"github.com/scavhunt/backend/pkg/xcontext"

	"github.com/google/uuid"
)

// Sender writes an encoded message to a peer without blocking.
type Sender interface {
	Write(msg []byte) error
}

type Session struct {
	id     string
	sender Sender

	mutex   sync.Mutex
	huntIDs map[string]struct{}
}

func NewSession(sender Sender) *Session {
	return &Session{
		id:      uuid.NewString(),
		sender:  sender,
		huntIDs: make(map[string]struct{}),
	}
}

func (s *Session) ID() string {
	return s.id
}

// Send delivers req to the peer. A peer which does not drain its buffer loses
// the message, the caller is never blocked.
func (s *Session) Send(ctx context.Context, req *event.EventRequest) {
	msg, err := event.Format(req)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot format event %s: %v", req.Op, err)
		return
	}

	if err := s.sender.Write(msg); err != nil {
		if errors.Is(err, ws.ErrBufferFull) {
			common.PromCounters[common.RealtimeDroppedTotal].WithLabelValues(req.Op).Inc()
			xcontext.Logger(ctx).Warnf("Drop event %s to slow session %s", req.Op, s.id)
			return
		}

		if !errors.Is(err, ws.ErrClosed) {
			xcontext.Logger(ctx).Warnf("Cannot send event %s to session %s: %v", req.Op, s.id, err)
		}
	}
}

// SendEvent encodes ev and delivers it to this session only.
func (s *Session) SendEvent(ctx context.Context, ev event.Event) {
	req, err := event.New(ev, event.Metadata{})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot encode event %s: %v", ev.Op(), err)
		return
	}

	s.Send(ctx, req)
}

func (s *Session) HuntIDs() []string {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	result := make([]string, 0, len(s.huntIDs))
	for id := range s.huntIDs {
		result = append(result, id)
	}

	return result
}

func (s *Session) addHunt(huntID string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.huntIDs[huntID] = struct{}{}
}

func (s *Session) removeHunt(huntID string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.huntIDs, huntID)
}
