package repository

import (
	"context"
	"errors"

	"github.com/scavhunt/backend/internal/common"
	"github.com/scavhunt/backend/internal/entity"
	"github.com/scavhunt/backend/pkg/xcontext"
	"github.com/scavhunt/backend/pkg/xredis"
)

type UserRepository interface {
	Create(ctx context.Context, data *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)

	// GetPublicName returns the user's name, or entity.AnonymousName when
	// the user has none.
	GetPublicName(ctx context.Context, id string) (string, error)
}

type userRepository struct {
	redisClient xredis.Client
}

// NewUserRepository creates a user repository. The redis client is optional,
// public names are read from the database on every call without it.
func NewUserRepository(redisClient xredis.Client) *userRepository {
	return &userRepository{redisClient: redisClient}
}

func (r *userRepository) Create(ctx context.Context, data *entity.User) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var result entity.User
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *userRepository) GetPublicName(ctx context.Context, id string) (string, error) {
	key := common.RedisKeyUserPublicName(id)
	if r.redisClient != nil {
		name, err := r.redisClient.Get(ctx, key)
		if err == nil {
			return name, nil
		}

		if !errors.Is(err, xredis.ErrNotFound) {
			xcontext.Logger(ctx).Warnf("Cannot get public name from redis: %v", err)
		}
	}

	user, err := r.GetByID(ctx, id)
	if err != nil {
		return "", err
	}

	name := user.PublicName()
	if r.redisClient != nil {
		ttl := xcontext.Configs(ctx).Redis.UserCacheTTL
		if err := r.redisClient.Set(ctx, key, name, ttl); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot cache public name: %v", err)
		}
	}

	return name, nil
}
