package domain

import (
	"context"
	"errors"

	"github.com/scavhunt/backend/internal/entity"
	"github.com/scavhunt/backend/internal/model"
	"github.com/scavhunt/backend/internal/repository"
	"github.com/scavhunt/backend/pkg/errorx"
	"github.com/scavhunt/backend/pkg/xcontext"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type HuntDomain interface {
	GetActiveHunt(context.Context, *model.GetActiveHuntRequest) (*model.GetActiveHuntResponse, error)
	CreatePayment(context.Context, *model.CreatePaymentRequest) (*model.CreatePaymentResponse, error)
	GetLeaderboard(context.Context, *model.GetLeaderboardRequest) (*model.GetLeaderboardResponse, error)
}

type huntDomain struct {
	huntRepo        repository.HuntRepository
	userRepo        repository.UserRepository
	participantRepo repository.ParticipantRepository
	paymentRepo     repository.PaymentRepository
	progressDomain  ProgressDomain
}

func NewHuntDomain(
	huntRepo repository.HuntRepository,
	userRepo repository.UserRepository,
	participantRepo repository.ParticipantRepository,
	paymentRepo repository.PaymentRepository,
	progressDomain ProgressDomain,
) *huntDomain {
	return &huntDomain{
		huntRepo:        huntRepo,
		userRepo:        userRepo,
		participantRepo: participantRepo,
		paymentRepo:     paymentRepo,
		progressDomain:  progressDomain,
	}
}

func (d *huntDomain) GetActiveHunt(
	ctx context.Context, req *model.GetActiveHuntRequest,
) (*model.GetActiveHuntResponse, error) {
	hunt, err := d.huntRepo.GetActive(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "No active hunt found")
		}

		xcontext.Logger(ctx).Errorf("Cannot get active hunt: %v", err)
		return nil, errorx.Unknown
	}

	count, err := d.huntRepo.CountParticipants(ctx, hunt.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count participants: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetActiveHuntResponse{
		Hunt: model.Hunt{
			ID:                hunt.ID,
			Title:             hunt.Title,
			Description:       hunt.Description,
			EntryFee:          hunt.EntryFee,
			PrizePool:         hunt.PrizePool,
			PrizeClaimed:      hunt.PrizeClaimed,
			MaxParticipants:   hunt.MaxParticipants,
			ParticipantsCount: count,
		},
	}, nil
}

// CreatePayment records an entry fee payment and registers the user to the
// hunt. The payment is settled immediately, no payment provider is involved.
func (d *huntDomain) CreatePayment(
	ctx context.Context, req *model.CreatePaymentRequest,
) (*model.CreatePaymentResponse, error) {
	if req.UserID == "" || req.HuntID == "" {
		return nil, errorx.New(errorx.BadRequest, "Invalid input: userId and huntId are required")
	}

	if req.Amount <= 0 {
		return nil, errorx.New(errorx.BadRequest, "Invalid input: amount must be positive")
	}

	if _, err := d.userRepo.GetByID(ctx, req.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "User not found")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	hunt, err := d.huntRepo.GetByID(ctx, req.HuntID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get hunt: %v", err)
		return nil, errorx.Unknown
	}

	if hunt == nil || !hunt.IsActive {
		return nil, errorx.New(errorx.HuntInactive, "Hunt not found or not active")
	}

	_, err = d.participantRepo.Get(ctx, req.UserID, req.HuntID)
	if err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "User already registered for this hunt")
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get participant: %v", err)
		return nil, errorx.Unknown
	}

	payment := &entity.Payment{
		Base:   entity.Base{ID: uuid.NewString()},
		UserID: req.UserID,
		HuntID: req.HuntID,
		Amount: req.Amount,
		Status: entity.PaymentPending,
	}

	participant := &entity.Participant{
		Base:   entity.Base{ID: uuid.NewString()},
		UserID: req.UserID,
		HuntID: req.HuntID,
		Status: entity.ParticipantRegistered,
	}

	err = xcontext.Transaction(ctx, func(ctx context.Context) error {
		if err := d.paymentRepo.Create(ctx, payment); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot create payment: %v", err)
			return errorx.Unknown
		}

		if err := d.participantRepo.Create(ctx, participant); err != nil {
			// A concurrent registration of the same user got in first.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return errorx.New(errorx.AlreadyExists, "User already registered for this hunt")
			}

			xcontext.Logger(ctx).Errorf("Cannot create participant: %v", err)
			return errorx.Unknown
		}

		if err := d.paymentRepo.UpdateStatus(ctx, payment.ID, entity.PaymentCompleted); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot complete payment: %v", err)
			return errorx.Unknown
		}

		payment.Status = entity.PaymentCompleted
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &model.CreatePaymentResponse{
		Message: "Payment processed successfully",
		Payment: model.Payment{
			ID:     payment.ID,
			Amount: payment.Amount,
			Status: string(payment.Status),
		},
		Participant: model.Participant{
			ID:     participant.ID,
			Status: string(participant.Status),
		},
	}, nil
}

func (d *huntDomain) GetLeaderboard(
	ctx context.Context, req *model.GetLeaderboardRequest,
) (*model.GetLeaderboardResponse, error) {
	if req.HuntID == "" {
		return nil, errorx.New(errorx.BadRequest, "Invalid input: huntId is required")
	}

	leaderboard, err := d.progressDomain.GetLeaderboard(ctx, req.HuntID)
	if err != nil {
		return nil, err
	}

	return &model.GetLeaderboardResponse{
		HuntID:      req.HuntID,
		Leaderboard: leaderboard,
	}, nil
}
