package repository

import (
	"context"

	"github.com/scavhunt/backend/internal/entity"
	"github.com/scavhunt/backend/pkg/xcontext"
)

type HuntRepository interface {
	Create(ctx context.Context, data *entity.Hunt) error
	GetByID(ctx context.Context, id string) (*entity.Hunt, error)
	GetActive(ctx context.Context) (*entity.Hunt, error)
	CountParticipants(ctx context.Context, huntID string) (int64, error)

	// ClaimPrize marks the prize of an unclaimed hunt as won by winnerID and
	// closes the hunt. It returns false without error if the prize had
	// already been claimed.
	ClaimPrize(ctx context.Context, huntID, winnerID string) (bool, error)
}

type huntRepository struct{}

func NewHuntRepository() *huntRepository {
	return &huntRepository{}
}

func (r *huntRepository) Create(ctx context.Context, data *entity.Hunt) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *huntRepository) GetByID(ctx context.Context, id string) (*entity.Hunt, error) {
	var result entity.Hunt
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *huntRepository) GetActive(ctx context.Context) (*entity.Hunt, error) {
	var result entity.Hunt
	err := xcontext.DB(ctx).
		Where("is_active=?", true).
		Order("created_at ASC").
		First(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *huntRepository) CountParticipants(ctx context.Context, huntID string) (int64, error) {
	var result int64
	err := xcontext.DB(ctx).Model(&entity.Participant{}).
		Where("hunt_id=?", huntID).
		Count(&result).Error
	if err != nil {
		return 0, err
	}

	return result, nil
}

func (r *huntRepository) ClaimPrize(ctx context.Context, huntID, winnerID string) (bool, error) {
	tx := xcontext.DB(ctx).Model(&entity.Hunt{}).
		Where("id=? AND prize_claimed=?", huntID, false).
		Updates(map[string]any{
			"prize_claimed": true,
			"is_active":     false,
			"winner_id":     winnerID,
		})
	if tx.Error != nil {
		return false, tx.Error
	}

	return tx.RowsAffected == 1, nil
}
