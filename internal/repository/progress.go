package repository

import (
	"context"

	"github.com/scavhunt/backend/internal/entity"
	"github.com/scavhunt/backend/pkg/xcontext"

	"github.com/google/uuid"
	"gorm.io/gorm/clause"
)

type ProgressRepository interface {
	// Upsert creates the clue progress of a participant, or overwrites its
	// status and completion time if one already exists.
	Upsert(ctx context.Context, data *entity.Progress) error
	Get(ctx context.Context, participantID, clueID string) (*entity.Progress, error)
}

type progressRepository struct{}

func NewProgressRepository() *progressRepository {
	return &progressRepository{}
}

func (r *progressRepository) Upsert(ctx context.Context, data *entity.Progress) error {
	if data.ID == "" {
		data.ID = uuid.NewString()
	}

	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "participant_id"},
				{Name: "clue_id"},
			},
			DoUpdates: clause.AssignmentColumns([]string{"status", "completion_time", "updated_at"}),
		}).
		Create(data).Error
}

func (r *progressRepository) Get(ctx context.Context, participantID, clueID string) (*entity.Progress, error) {
	var result entity.Progress
	err := xcontext.DB(ctx).
		Where("participant_id=? AND clue_id=?", participantID, clueID).
		Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}
