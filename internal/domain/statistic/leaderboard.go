package statistic

import (
	"cmp"
	"slices"

	"github.com/scavhunt/backend/internal/entity"
	"github.com/scavhunt/backend/internal/model"
)

const DefaultLeaderboardSize = 10

// Standing is the score state of one participant before ranking.
type Standing struct {
	UserID   string
	UserName string
	Score    uint64
	Progress int
}

func FromParticipantStandings(records []entity.ParticipantStanding) []Standing {
	result := make([]Standing, 0, len(records))
	for _, r := range records {
		user := entity.User{Name: r.UserName, Email: r.UserEmail}
		result = append(result, Standing{
			UserID:   r.UserID,
			UserName: user.DisplayName(),
			Score:    r.Score,
			Progress: r.Progress,
		})
	}

	return result
}

// Rank orders standings by score then progress, both descending, keeps at
// most limit of them and numbers them from 1. Equal standings keep their
// input order. A non-positive limit means DefaultLeaderboardSize.
func Rank(standings []Standing, limit int) []model.LeaderboardEntry {
	if limit <= 0 {
		limit = DefaultLeaderboardSize
	}

	sorted := slices.Clone(standings)
	slices.SortStableFunc(sorted, func(a, b Standing) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}

		return cmp.Compare(b.Progress, a.Progress)
	})

	if len(sorted) > limit {
		sorted = sorted[:limit]
	}

	result := make([]model.LeaderboardEntry, 0, len(sorted))
	for i, s := range sorted {
		result = append(result, model.LeaderboardEntry{
			UserID:   s.UserID,
			UserName: s.UserName,
			Score:    s.Score,
			Progress: s.Progress,
			Rank:     i + 1,
		})
	}

	return result
}
