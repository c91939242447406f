package domain

import (
	"context"
	"errors"
	"testing"

	"github.com/scavhunt/backend/internal/entity"
	"github.com/scavhunt/backend/internal/model"
	"github.com/scavhunt/backend/internal/repository"
	"github.com/scavhunt/backend/pkg/errorx"
	"github.com/scavhunt/backend/pkg/testutil"
	"github.com/scavhunt/backend/pkg/xcontext"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newHuntDomain() *huntDomain {
	participantRepo := repository.NewParticipantRepository()
	return NewHuntDomain(
		repository.NewHuntRepository(),
		repository.NewUserRepository(nil),
		participantRepo,
		repository.NewPaymentRepository(),
		NewProgressDomain(participantRepo, repository.NewProgressRepository()),
	)
}

func requireErrorCode(t *testing.T, err error, code errorx.Code) {
	t.Helper()

	var errx errorx.Error
	require.True(t, errors.As(err, &errx), "unexpected error %v", err)
	require.Equal(t, code, errx.Code)
}

func Test_huntDomain_GetActiveHunt(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	resp, err := newHuntDomain().GetActiveHunt(ctx, &model.GetActiveHuntRequest{})
	require.NoError(t, err)
	require.Equal(t, model.Hunt{
		ID:                testutil.Hunt1.ID,
		Title:             testutil.Hunt1.Title,
		Description:       testutil.Hunt1.Description,
		EntryFee:          testutil.Hunt1.EntryFee,
		PrizePool:         testutil.Hunt1.PrizePool,
		PrizeClaimed:      false,
		MaxParticipants:   testutil.Hunt1.MaxParticipants,
		ParticipantsCount: 3,
	}, resp.Hunt)
}

func Test_huntDomain_GetActiveHunt_NotFound(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.InsertUsers(ctx)

	_, err := newHuntDomain().GetActiveHunt(ctx, &model.GetActiveHuntRequest{})
	requireErrorCode(t, err, errorx.NotFound)
}

func Test_huntDomain_CreatePayment(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	resp, err := newHuntDomain().CreatePayment(ctx, &model.CreatePaymentRequest{
		UserID: testutil.User4.ID,
		HuntID: testutil.Hunt1.ID,
		Amount: 5,
	})
	require.NoError(t, err)
	require.Equal(t, "Payment processed successfully", resp.Message)
	require.Equal(t, string(entity.PaymentCompleted), resp.Payment.Status)
	require.Equal(t, float64(5), resp.Payment.Amount)
	require.Equal(t, string(entity.ParticipantRegistered), resp.Participant.Status)

	participant, err := repository.NewParticipantRepository().Get(ctx, testutil.User4.ID, testutil.Hunt1.ID)
	require.NoError(t, err)
	require.Equal(t, resp.Participant.ID, participant.ID)
}

func Test_huntDomain_CreatePayment_Failed(t *testing.T) {
	tests := []struct {
		name string
		req  *model.CreatePaymentRequest
		code errorx.Code
	}{
		{
			name: "non positive amount",
			req:  &model.CreatePaymentRequest{UserID: testutil.User4.ID, HuntID: testutil.Hunt1.ID, Amount: 0},
			code: errorx.BadRequest,
		},
		{
			name: "missing hunt id",
			req:  &model.CreatePaymentRequest{UserID: testutil.User4.ID, Amount: 5},
			code: errorx.BadRequest,
		},
		{
			name: "unknown user",
			req:  &model.CreatePaymentRequest{UserID: "invalid-user", HuntID: testutil.Hunt1.ID, Amount: 5},
			code: errorx.NotFound,
		},
		{
			name: "inactive hunt",
			req:  &model.CreatePaymentRequest{UserID: testutil.User4.ID, HuntID: testutil.Hunt2.ID, Amount: 5},
			code: errorx.HuntInactive,
		},
		{
			name: "unknown hunt",
			req:  &model.CreatePaymentRequest{UserID: testutil.User4.ID, HuntID: "invalid-hunt", Amount: 5},
			code: errorx.HuntInactive,
		},
		{
			name: "already registered",
			req:  &model.CreatePaymentRequest{UserID: testutil.User1.ID, HuntID: testutil.Hunt1.ID, Amount: 5},
			code: errorx.AlreadyExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testutil.MockContext()
			testutil.CreateFixtureDb(ctx)

			_, err := newHuntDomain().CreatePayment(ctx, tt.req)
			requireErrorCode(t, err, tt.code)
		})
	}
}

// staleParticipantRepository never sees an existing registration, like a
// request which checked before a concurrent registration committed.
type staleParticipantRepository struct {
	repository.ParticipantRepository
}

func (r *staleParticipantRepository) Get(context.Context, string, string) (*entity.Participant, error) {
	return nil, gorm.ErrRecordNotFound
}

func Test_huntDomain_CreatePayment_ConcurrentRegistration(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	participantRepo := &staleParticipantRepository{ParticipantRepository: repository.NewParticipantRepository()}
	domain := NewHuntDomain(
		repository.NewHuntRepository(),
		repository.NewUserRepository(nil),
		participantRepo,
		repository.NewPaymentRepository(),
		NewProgressDomain(participantRepo, repository.NewProgressRepository()),
	)

	_, err := domain.CreatePayment(ctx, &model.CreatePaymentRequest{
		UserID: testutil.User1.ID,
		HuntID: testutil.Hunt1.ID,
		Amount: 5,
	})
	requireErrorCode(t, err, errorx.AlreadyExists)

	// The payment of the refused registration is rolled back.
	var payments int64
	require.NoError(t, xcontext.DB(ctx).Model(&entity.Payment{}).Count(&payments).Error)
	require.Zero(t, payments)
}

func Test_huntDomain_GetLeaderboard(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := newHuntDomain()

	_, err := domain.progressDomain.Update(ctx, &ProgressUpdate{
		UserID:   testutil.User2.ID,
		HuntID:   testutil.Hunt1.ID,
		ClueID:   "clue1",
		Progress: 30,
		Score:    10,
		Status:   entity.ProgressInProgress,
	})
	require.NoError(t, err)

	resp, err := domain.GetLeaderboard(ctx, &model.GetLeaderboardRequest{HuntID: testutil.Hunt1.ID})
	require.NoError(t, err)
	require.Equal(t, testutil.Hunt1.ID, resp.HuntID)
	require.Len(t, resp.Leaderboard, 3)
	require.Equal(t, testutil.User2.ID, resp.Leaderboard[0].UserID)
	require.Equal(t, 1, resp.Leaderboard[0].Rank)

	_, err = domain.GetLeaderboard(ctx, &model.GetLeaderboardRequest{})
	requireErrorCode(t, err, errorx.BadRequest)
}
