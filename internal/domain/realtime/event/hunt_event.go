package event

import (
	"time"

	"github.com/scavhunt/backend/internal/model"
)

// LEADERBOARD UPDATE EVENT
type LeaderboardUpdateEvent struct {
	HuntID      string                   `json:"huntId"`
	Leaderboard []model.LeaderboardEntry `json:"leaderboard"`
}

func (*LeaderboardUpdateEvent) Op() string {
	return "leaderboard-update"
}

// PROGRESS UPDATE EVENT
type ProgressUpdateEvent struct {
	UserID    string    `json:"userId"`
	HuntID    string    `json:"huntId"`
	Progress  int       `json:"progress"`
	Score     uint64    `json:"score"`
	Timestamp time.Time `json:"timestamp"`
}

func (*ProgressUpdateEvent) Op() string {
	return "progress-update"
}

// HUNT COMPLETED EVENT
type HuntCompletedEvent struct {
	UserID       string    `json:"userId"`
	HuntID       string    `json:"huntId"`
	UserName     string    `json:"userName"`
	PrizeClaimed bool      `json:"prizeClaimed"`
	Timestamp    time.Time `json:"timestamp"`
}

func (*HuntCompletedEvent) Op() string {
	return "hunt-completed"
}

// HUNT ENDED EVENT
type HuntEndedEvent struct {
	HuntID     string    `json:"huntId"`
	WinnerID   string    `json:"winnerId"`
	WinnerName string    `json:"winnerName"`
	Timestamp  time.Time `json:"timestamp"`
}

func (*HuntEndedEvent) Op() string {
	return "hunt-ended"
}

// PARTICIPANT LOCATION EVENT
type ParticipantLocationEvent struct {
	UserID    string    `json:"userId"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Timestamp time.Time `json:"timestamp"`
}

func (*ParticipantLocationEvent) Op() string {
	return "participant-location"
}

// HINT RESPONSE EVENT
type HintResponseEvent struct {
	ClueID    string    `json:"clueId"`
	Hint      string    `json:"hint"`
	Timestamp time.Time `json:"timestamp"`
}

func (*HintResponseEvent) Op() string {
	return "hint-response"
}
