package statistic

import (
	"fmt"
	"testing"

	"github.com/scavhunt/backend/internal/entity"
	"github.com/scavhunt/backend/internal/model"

	"github.com/stretchr/testify/require"
)

func Test_Rank(t *testing.T) {
	tests := []struct {
		name      string
		standings []Standing
		limit     int
		want      []model.LeaderboardEntry
	}{
		{
			name:      "empty",
			standings: nil,
			want:      []model.LeaderboardEntry{},
		},
		{
			name: "score then progress",
			standings: []Standing{
				{UserID: "u1", Score: 50, Progress: 40},
				{UserID: "u2", Score: 50, Progress: 60},
				{UserID: "u3", Score: 80, Progress: 20},
			},
			want: []model.LeaderboardEntry{
				{UserID: "u3", Score: 80, Progress: 20, Rank: 1},
				{UserID: "u2", Score: 50, Progress: 60, Rank: 2},
				{UserID: "u1", Score: 50, Progress: 40, Rank: 3},
			},
		},
		{
			name: "ties keep input order",
			standings: []Standing{
				{UserID: "u1", Score: 10, Progress: 10},
				{UserID: "u2", Score: 10, Progress: 10},
				{UserID: "u3", Score: 10, Progress: 10},
			},
			want: []model.LeaderboardEntry{
				{UserID: "u1", Score: 10, Progress: 10, Rank: 1},
				{UserID: "u2", Score: 10, Progress: 10, Rank: 2},
				{UserID: "u3", Score: 10, Progress: 10, Rank: 3},
			},
		},
		{
			name: "custom limit",
			standings: []Standing{
				{UserID: "u1", Score: 1},
				{UserID: "u2", Score: 2},
				{UserID: "u3", Score: 3},
			},
			limit: 2,
			want: []model.LeaderboardEntry{
				{UserID: "u3", Score: 3, Rank: 1},
				{UserID: "u2", Score: 2, Rank: 2},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Rank(tt.standings, tt.limit))
		})
	}
}

func Test_Rank_DefaultLimit(t *testing.T) {
	standings := []Standing{}
	for i := 0; i < 25; i++ {
		standings = append(standings, Standing{UserID: fmt.Sprintf("u%d", i), Score: uint64(i)})
	}

	got := Rank(standings, 0)
	require.Len(t, got, DefaultLeaderboardSize)
	for i, entry := range got {
		require.Equal(t, i+1, entry.Rank)
		require.Equal(t, uint64(24-i), entry.Score)
	}
}

func Test_Rank_DoesNotMutateInput(t *testing.T) {
	standings := []Standing{
		{UserID: "u1", Score: 1},
		{UserID: "u2", Score: 2},
	}

	Rank(standings, 0)
	require.Equal(t, "u1", standings[0].UserID)
	require.Equal(t, "u2", standings[1].UserID)
}

func Test_FromParticipantStandings(t *testing.T) {
	got := FromParticipantStandings([]entity.ParticipantStanding{
		{UserID: "u1", UserName: "Alice", UserEmail: "alice@example.com", Score: 5, Progress: 10},
		{UserID: "u2", UserEmail: "bob@example.com"},
		{UserID: "u3"},
	})

	require.Equal(t, []Standing{
		{UserID: "u1", UserName: "Alice", Score: 5, Progress: 10},
		{UserID: "u2", UserName: "bob@example.com"},
		{UserID: "u3", UserName: entity.AnonymousName},
	}, got)
}
