package domain

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/scavhunt/backend/internal/domain/statistic"
	"github.com/scavhunt/backend/internal/entity"
	"github.com/scavhunt/backend/internal/model"
	"github.com/scavhunt/backend/internal/repository"
	"github.com/scavhunt/backend/pkg/errorx"
	"github.com/scavhunt/backend/pkg/xcontext"

	"gorm.io/gorm"
)

const CompletedProgress = 100

type ProgressUpdate struct {
	UserID   string
	HuntID   string
	ClueID   string
	Progress int
	Score    uint64
	Status   entity.ProgressStatus
}

type ProgressDomain interface {
	// Update persists the participant and clue progress atomically and
	// returns the refreshed leaderboard of the hunt.
	Update(ctx context.Context, req *ProgressUpdate) ([]model.LeaderboardEntry, error)
	GetLeaderboard(ctx context.Context, huntID string) ([]model.LeaderboardEntry, error)
}

type progressDomain struct {
	participantRepo repository.ParticipantRepository
	progressRepo    repository.ProgressRepository
}

func NewProgressDomain(
	participantRepo repository.ParticipantRepository,
	progressRepo repository.ProgressRepository,
) *progressDomain {
	return &progressDomain{
		participantRepo: participantRepo,
		progressRepo:    progressRepo,
	}
}

func (d *progressDomain) Update(ctx context.Context, req *ProgressUpdate) ([]model.LeaderboardEntry, error) {
	err := xcontext.Transaction(ctx, func(ctx context.Context) error {
		participant, err := d.participantRepo.Get(ctx, req.UserID, req.HuntID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errorx.New(errorx.NotFound, "Participant not found")
			}

			xcontext.Logger(ctx).Errorf("Cannot get participant: %v", err)
			return errorx.New(errorx.Internal, "Failed to update progress")
		}

		err = d.participantRepo.UpdateProgress(
			ctx, req.UserID, req.HuntID, req.Score, req.Progress, participantStatus(req.Progress))
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot update participant progress: %v", err)
			return errorx.New(errorx.Internal, "Failed to update progress")
		}

		progress := &entity.Progress{
			ParticipantID: participant.ID,
			ClueID:        req.ClueID,
			Status:        req.Status,
		}
		if req.Status == entity.ProgressCompleted {
			progress.CompletionTime = sql.NullTime{Valid: true, Time: time.Now()}
		}

		if err := d.progressRepo.Upsert(ctx, progress); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot upsert clue progress: %v", err)
			return errorx.New(errorx.Internal, "Failed to update progress")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return d.GetLeaderboard(ctx, req.HuntID)
}

func (d *progressDomain) GetLeaderboard(ctx context.Context, huntID string) ([]model.LeaderboardEntry, error) {
	limit := xcontext.Configs(ctx).Hunt.LeaderboardSize
	if limit <= 0 {
		limit = statistic.DefaultLeaderboardSize
	}

	standings, err := d.participantRepo.GetLeaderboard(ctx, huntID, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get leaderboard: %v", err)
		return nil, errorx.New(errorx.Internal, "Failed to fetch leaderboard")
	}

	return statistic.Rank(statistic.FromParticipantStandings(standings), limit), nil
}

func participantStatus(progress int) entity.ParticipantStatus {
	if progress == CompletedProgress {
		return entity.ParticipantCompleted
	}

	return entity.ParticipantActive
}
