package repository

import (
	"context"

	"github.com/scavhunt/backend/internal/entity"
	"github.com/scavhunt/backend/pkg/xcontext"

	"gorm.io/gorm"
)

type ParticipantRepository interface {
	Create(ctx context.Context, data *entity.Participant) error
	Get(ctx context.Context, userID, huntID string) (*entity.Participant, error)
	UpdateProgress(ctx context.Context, userID, huntID string, score uint64, progress int, status entity.ParticipantStatus) error

	// GetLeaderboard returns at most limit participants of the hunt ordered
	// by score then progress, both descending.
	GetLeaderboard(ctx context.Context, huntID string, limit int) ([]entity.ParticipantStanding, error)
}

type participantRepository struct{}

func NewParticipantRepository() *participantRepository {
	return &participantRepository{}
}

func (r *participantRepository) Create(ctx context.Context, data *entity.Participant) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *participantRepository) Get(ctx context.Context, userID, huntID string) (*entity.Participant, error) {
	var result entity.Participant
	err := xcontext.DB(ctx).
		Where("user_id=? AND hunt_id=?", userID, huntID).
		Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *participantRepository) UpdateProgress(
	ctx context.Context,
	userID, huntID string,
	score uint64,
	progress int,
	status entity.ParticipantStatus,
) error {
	tx := xcontext.DB(ctx).Model(&entity.Participant{}).
		Where("user_id=? AND hunt_id=?", userID, huntID).
		Updates(map[string]any{
			"score":    score,
			"progress": progress,
			"status":   status,
		})
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *participantRepository) GetLeaderboard(
	ctx context.Context,
	huntID string,
	limit int,
) ([]entity.ParticipantStanding, error) {
	result := []entity.ParticipantStanding{}
	err := xcontext.DB(ctx).Model(&entity.Participant{}).
		Select("participants.user_id, users.name AS user_name, users.email AS user_email, " +
			"participants.score, participants.progress").
		Joins("LEFT JOIN users ON users.id = participants.user_id").
		Where("participants.hunt_id=?", huntID).
		Order("participants.score DESC, participants.progress DESC, participants.created_at ASC").
		Limit(limit).
		Scan(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
