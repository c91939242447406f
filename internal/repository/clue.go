package repository

import (
	"context"

	"github.com/scavhunt/backend/internal/entity"
	"github.com/scavhunt/backend/pkg/xcontext"
)

type LocationRepository interface {
	Create(ctx context.Context, data *entity.Location) error
}

type locationRepository struct{}

func NewLocationRepository() *locationRepository {
	return &locationRepository{}
}

func (r *locationRepository) Create(ctx context.Context, data *entity.Location) error {
	return xcontext.DB(ctx).Create(data).Error
}

type ClueRepository interface {
	Create(ctx context.Context, data *entity.Clue) error
	GetByHuntID(ctx context.Context, huntID string) ([]entity.Clue, error)
}

type clueRepository struct{}

func NewClueRepository() *clueRepository {
	return &clueRepository{}
}

func (r *clueRepository) Create(ctx context.Context, data *entity.Clue) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *clueRepository) GetByHuntID(ctx context.Context, huntID string) ([]entity.Clue, error) {
	var result []entity.Clue
	err := xcontext.DB(ctx).
		Where("hunt_id=?", huntID).
		Order("sequence ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
