package huntclaim

import (
	"context"
	"errors"

	"github.com/scavhunt/backend/internal/entity"
	"github.com/scavhunt/backend/internal/repository"
	"github.com/scavhunt/backend/pkg/errorx"
	"github.com/scavhunt/backend/pkg/xcontext"

	"gorm.io/gorm"
)

type Result struct {
	UserID   string
	HuntID   string
	UserName string

	// Claimed is true only for the single completion which won the prize.
	Claimed bool
}

// Arbiter decides which completion of a hunt wins its prize. The decision is
// made by HuntRepository.ClaimPrize alone, so any number of arbiters in any
// number of processes agree on exactly one winner.
type Arbiter struct {
	huntRepo repository.HuntRepository
	userRepo repository.UserRepository
}

func NewArbiter(huntRepo repository.HuntRepository, userRepo repository.UserRepository) *Arbiter {
	return &Arbiter{huntRepo: huntRepo, userRepo: userRepo}
}

// Complete records that userID finished huntID. Losing the race, completing
// an inactive hunt or an unknown hunt are all non-winning completions, not
// errors.
func (a *Arbiter) Complete(ctx context.Context, userID, huntID string) (*Result, error) {
	result := &Result{
		UserID:   userID,
		HuntID:   huntID,
		UserName: a.publicName(ctx, userID),
	}

	hunt, err := a.huntRepo.GetByID(ctx, huntID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return result, nil
		}

		xcontext.Logger(ctx).Errorf("Cannot get hunt: %v", err)
		return nil, errorx.Unknown
	}

	if !hunt.IsActive || hunt.PrizeClaimed {
		return result, nil
	}

	claimed, err := a.huntRepo.ClaimPrize(ctx, huntID, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot claim prize: %v", err)
		return nil, errorx.Unknown
	}

	if claimed {
		xcontext.Logger(ctx).Infof("User %s claimed the prize of hunt %s", userID, huntID)
	}

	result.Claimed = claimed
	return result, nil
}

func (a *Arbiter) publicName(ctx context.Context, userID string) string {
	name, err := a.userRepo.GetPublicName(ctx, userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Warnf("Cannot get public name: %v", err)
		}

		return entity.AnonymousName
	}

	return name
}
