package repository_test

import (
	"database/sql"
	"testing"
	"time"

	"github.com/scavhunt/backend/internal/entity"
	"github.com/scavhunt/backend/internal/repository"
	"github.com/scavhunt/backend/pkg/testutil"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func Test_participantRepository_UpdateProgress(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	participantRepo := repository.NewParticipantRepository()

	err := participantRepo.UpdateProgress(ctx, testutil.User1.ID, testutil.Hunt1.ID, 150, 50, entity.ParticipantActive)
	require.NoError(t, err)

	participant, err := participantRepo.Get(ctx, testutil.User1.ID, testutil.Hunt1.ID)
	require.NoError(t, err)
	require.Equal(t, uint64(150), participant.Score)
	require.Equal(t, 50, participant.Progress)
	require.Equal(t, entity.ParticipantActive, participant.Status)

	// The same user in another hunt is left untouched.
	other, err := participantRepo.Get(ctx, testutil.User1.ID, testutil.Hunt2.ID)
	require.NoError(t, err)
	require.Zero(t, other.Score)

	err = participantRepo.UpdateProgress(ctx, testutil.User4.ID, testutil.Hunt1.ID, 1, 1, entity.ParticipantActive)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func Test_participantRepository_Create_Duplicated(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	err := repository.NewParticipantRepository().Create(ctx, &entity.Participant{
		Base:   entity.Base{ID: "participant-dup"},
		UserID: testutil.User1.ID,
		HuntID: testutil.Hunt1.ID,
		Status: entity.ParticipantRegistered,
	})
	require.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func Test_participantRepository_GetLeaderboard(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	participantRepo := repository.NewParticipantRepository()

	require.NoError(t, participantRepo.UpdateProgress(ctx, testutil.User1.ID, testutil.Hunt1.ID, 100, 33, entity.ParticipantActive))
	require.NoError(t, participantRepo.UpdateProgress(ctx, testutil.User2.ID, testutil.Hunt1.ID, 250, 66, entity.ParticipantActive))
	require.NoError(t, participantRepo.UpdateProgress(ctx, testutil.User3.ID, testutil.Hunt1.ID, 250, 100, entity.ParticipantCompleted))

	standings, err := participantRepo.GetLeaderboard(ctx, testutil.Hunt1.ID, 10)
	require.NoError(t, err)
	require.Equal(t, []entity.ParticipantStanding{
		{UserID: "user3", UserName: "Carol", UserEmail: "carol@example.com", Score: 250, Progress: 100},
		{UserID: "user2", UserName: "", UserEmail: "bob@example.com", Score: 250, Progress: 66},
		{UserID: "user1", UserName: "Alice", UserEmail: "alice@example.com", Score: 100, Progress: 33},
	}, standings)

	standings, err = participantRepo.GetLeaderboard(ctx, testutil.Hunt1.ID, 2)
	require.NoError(t, err)
	require.Len(t, standings, 2)

	standings, err = participantRepo.GetLeaderboard(ctx, "unknown", 10)
	require.NoError(t, err)
	require.NotNil(t, standings)
	require.Empty(t, standings)
}

func Test_progressRepository_Upsert(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	progressRepo := repository.NewProgressRepository()

	err := progressRepo.Upsert(ctx, &entity.Progress{
		ParticipantID: testutil.Participant1.ID,
		ClueID:        "clue1",
		Status:        entity.ProgressInProgress,
	})
	require.NoError(t, err)

	progress, err := progressRepo.Get(ctx, testutil.Participant1.ID, "clue1")
	require.NoError(t, err)
	require.Equal(t, entity.ProgressInProgress, progress.Status)
	require.False(t, progress.CompletionTime.Valid)
	firstID := progress.ID

	completedAt := time.Now().UTC().Truncate(time.Second)
	err = progressRepo.Upsert(ctx, &entity.Progress{
		ParticipantID:  testutil.Participant1.ID,
		ClueID:         "clue1",
		Status:         entity.ProgressCompleted,
		CompletionTime: sql.NullTime{Valid: true, Time: completedAt},
	})
	require.NoError(t, err)

	progress, err = progressRepo.Get(ctx, testutil.Participant1.ID, "clue1")
	require.NoError(t, err)
	require.Equal(t, firstID, progress.ID)
	require.Equal(t, entity.ProgressCompleted, progress.Status)
	require.True(t, progress.CompletionTime.Valid)
	require.True(t, completedAt.Equal(progress.CompletionTime.Time))

	_, err = progressRepo.Get(ctx, testutil.Participant1.ID, "clue2")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
