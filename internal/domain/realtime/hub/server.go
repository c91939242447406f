package hub

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/scavhunt/backend/internal/common"
	"github.com/scavhunt/backend/internal/domain"
	"github.com/scavhunt/backend/internal/domain/huntclaim"
	"github.com/scavhunt/backend/internal/domain/realtime/directive"
	"github.com/scavhunt/backend/internal/domain/realtime/event"
	"github.com/scavhunt/backend/internal/entity"
	"github.com/scavhunt/backend/internal/model"
	"github.com/scavhunt/backend/pkg/errorx"
	"github.com/scavhunt/backend/pkg/xcontext"
)

const (
	defaultHintTemplate = "Hint for clue %s: Look for something historical in this location."
	systemSenderID      = "system"
)

type Server struct {
	hub            *Hub
	broadcaster    Broadcaster
	progressDomain domain.ProgressDomain
	arbiter        *huntclaim.Arbiter
}

func NewServer(
	hub *Hub,
	broadcaster Broadcaster,
	progressDomain domain.ProgressDomain,
	arbiter *huntclaim.Arbiter,
) *Server {
	return &Server{
		hub:            hub,
		broadcaster:    broadcaster,
		progressDomain: progressDomain,
		arbiter:        arbiter,
	}
}

// ServeWS runs one websocket connection until the peer goes away. Messages
// of the connection are handled one at a time in arrival order.
func (s *Server) ServeWS(ctx context.Context, req *model.ServeRealtimeRequest) error {
	client := xcontext.WSClient(ctx)
	if client == nil {
		return errorx.New(errorx.BadRequest, "Not a websocket connection")
	}

	session := NewSession(client)
	s.hub.Register(session)
	defer s.hub.Unregister(session)

	ctx = xcontext.WithSessionID(ctx, session.ID())
	xcontext.Logger(ctx).Debugf("Session %s connected", session.ID())

	if welcome := xcontext.Configs(ctx).Realtime.WelcomeMessage; welcome != "" {
		session.SendEvent(ctx, &event.MessageEvent{
			Text:      welcome,
			SenderID:  systemSenderID,
			Timestamp: event.Now(),
		})
	}

	for msg := range client.R {
		s.Handle(ctx, session, msg)
	}

	xcontext.Logger(ctx).Debugf("Session %s disconnected", session.ID())
	return nil
}

// Handle processes one client message. Failures are reported to the session
// only, nothing is broadcast for a failed message.
func (s *Server) Handle(ctx context.Context, session *Session, msg []byte) {
	start := time.Now()

	d, err := directive.Parse(msg)
	if err != nil {
		common.PromCounters[common.RealtimeEventTotal].WithLabelValues("invalid", "error").Inc()
		s.sendError(ctx, session, err)
		return
	}

	if timeout := xcontext.Configs(ctx).Realtime.StorageTimeout; timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	err = s.dispatch(ctx, session, d)

	result := "ok"
	if err != nil {
		result = "error"
		s.sendError(ctx, session, err)
	}

	common.PromCounters[common.RealtimeEventTotal].WithLabelValues(d.Op(), result).Inc()
	common.PromHistograms[common.RealtimeEventDurations].WithLabelValues(d.Op()).Observe(time.Since(start).Seconds())
}

func (s *Server) dispatch(ctx context.Context, session *Session, d directive.Directive) error {
	switch d := d.(type) {
	case *directive.JoinHuntDirective:
		s.hub.Join(session, d.HuntID)
		return nil

	case *directive.LeaveHuntDirective:
		s.hub.Leave(session, d.HuntID)
		return nil

	case *directive.RequestLeaderboardDirective:
		return s.requestLeaderboard(ctx, session, d)

	case *directive.ProgressUpdateDirective:
		return s.updateProgress(ctx, d)

	case *directive.ChatMessageDirective:
		return s.chat(ctx, session, d)

	case *directive.RequestHintDirective:
		return s.requestHint(ctx, session, d)

	case *directive.LocationUpdateDirective:
		return s.updateLocation(ctx, session, d)

	case *directive.MessageDirective:
		session.SendEvent(ctx, &event.MessageEvent{
			Text:      "Echo: " + d.Text,
			SenderID:  systemSenderID,
			Timestamp: event.Now(),
		})
		return nil

	default:
		return errorx.New(errorx.BadRequest, "Unsupported event %s", d.Op())
	}
}

func (s *Server) requestLeaderboard(
	ctx context.Context, session *Session, d *directive.RequestLeaderboardDirective,
) error {
	leaderboard, err := s.progressDomain.GetLeaderboard(ctx, d.HuntID)
	if err != nil {
		return err
	}

	session.SendEvent(ctx, &event.LeaderboardUpdateEvent{
		HuntID:      d.HuntID,
		Leaderboard: leaderboard,
	})

	return nil
}

func (s *Server) updateProgress(ctx context.Context, d *directive.ProgressUpdateDirective) error {
	leaderboard, err := s.progressDomain.Update(ctx, &domain.ProgressUpdate{
		UserID:   d.UserID,
		HuntID:   d.HuntID,
		ClueID:   d.ClueID,
		Progress: d.Progress,
		Score:    uint64(d.Score),
		Status:   d.ProgressStatus(),
	})
	if err != nil {
		return err
	}

	room := event.Metadata{HuntID: d.HuntID}
	s.broadcast(ctx, &event.ProgressUpdateEvent{
		UserID:    d.UserID,
		HuntID:    d.HuntID,
		Progress:  d.Progress,
		Score:     uint64(d.Score),
		Timestamp: event.Now(),
	}, room)

	s.broadcast(ctx, &event.LeaderboardUpdateEvent{
		HuntID:      d.HuntID,
		Leaderboard: leaderboard,
	}, room)

	if d.Progress != domain.CompletedProgress {
		return nil
	}

	result, err := s.arbiter.Complete(ctx, d.UserID, d.HuntID)
	if err != nil {
		return errorx.New(errorx.Internal, "Failed to complete hunt")
	}

	now := event.Now()
	s.broadcast(ctx, &event.HuntCompletedEvent{
		UserID:       d.UserID,
		HuntID:       d.HuntID,
		UserName:     result.UserName,
		PrizeClaimed: result.Claimed,
		Timestamp:    now,
	}, room)

	if result.Claimed {
		common.PromCounters[common.RealtimePrizeClaimed].WithLabelValues().Inc()
		s.broadcast(ctx, &event.HuntEndedEvent{
			HuntID:     d.HuntID,
			WinnerID:   d.UserID,
			WinnerName: result.UserName,
			Timestamp:  now,
		}, event.Metadata{})
	}

	return nil
}

func (s *Server) chat(ctx context.Context, session *Session, d *directive.ChatMessageDirective) error {
	userName := d.UserName
	if userName == "" {
		userName = entity.AnonymousName
	}

	s.broadcast(ctx, &event.ChatMessageEvent{
		UserID:    session.ID(),
		UserName:  userName,
		Message:   d.Message,
		Timestamp: event.Now(),
	}, event.Metadata{HuntID: d.HuntID})

	return nil
}

func (s *Server) requestHint(ctx context.Context, session *Session, d *directive.RequestHintDirective) error {
	template := xcontext.Configs(ctx).Hunt.HintTemplate
	if template == "" {
		template = defaultHintTemplate
	}

	session.SendEvent(ctx, &event.HintResponseEvent{
		ClueID:    d.ClueID,
		Hint:      fmt.Sprintf(template, d.ClueID),
		Timestamp: event.Now(),
	})

	return nil
}

func (s *Server) updateLocation(ctx context.Context, session *Session, d *directive.LocationUpdateDirective) error {
	s.broadcast(ctx, &event.ParticipantLocationEvent{
		UserID:    d.UserID,
		Latitude:  d.Latitude,
		Longitude: d.Longitude,
		Timestamp: event.Now(),
	}, event.Metadata{HuntID: d.HuntID, Except: session.ID()})

	return nil
}

func (s *Server) broadcast(ctx context.Context, ev event.Event, metadata event.Metadata) {
	req, err := event.New(ev, metadata)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot encode event %s: %v", ev.Op(), err)
		return
	}

	if err := s.broadcaster.Broadcast(ctx, req); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot broadcast event %s: %v", ev.Op(), err)
	}
}

func (s *Server) sendError(ctx context.Context, session *Session, err error) {
	var errx errorx.Error
	if !errors.As(err, &errx) {
		xcontext.Logger(ctx).Errorf("Unexpected error of session %s: %v", xcontext.SessionID(ctx), err)
		errx = errorx.Unknown
	}

	session.SendEvent(ctx, &event.ErrorEvent{Message: errx.Message})
}
