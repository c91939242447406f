package directive

import (
	"errors"
	"fmt"

	"github.com/scavhunt/backend/internal/entity"
	"github.com/scavhunt/backend/pkg/enum"
)

var errMissingHuntID = errors.New("huntId is required")

// JOIN HUNT
type JoinHuntDirective struct {
	huntRef
}

func (*JoinHuntDirective) Op() string { return JoinHuntDirectiveOp }

func (d *JoinHuntDirective) Validate() error {
	if d.HuntID == "" {
		return errMissingHuntID
	}

	return nil
}

// LEAVE HUNT
type LeaveHuntDirective struct {
	huntRef
}

func (*LeaveHuntDirective) Op() string { return LeaveHuntDirectiveOp }

func (d *LeaveHuntDirective) Validate() error {
	if d.HuntID == "" {
		return errMissingHuntID
	}

	return nil
}

// REQUEST LEADERBOARD
type RequestLeaderboardDirective struct {
	huntRef
}

func (*RequestLeaderboardDirective) Op() string { return RequestLeaderboardDirectiveOp }

func (d *RequestLeaderboardDirective) Validate() error {
	if d.HuntID == "" {
		return errMissingHuntID
	}

	return nil
}

// PROGRESS UPDATE
type ProgressUpdateDirective struct {
	UserID   string `json:"userId"`
	HuntID   string `json:"huntId"`
	ClueID   string `json:"clueId"`
	Progress int    `json:"progress"`
	Score    int64  `json:"score"`
	Status   string `json:"status"`

	status entity.ProgressStatus
}

func (*ProgressUpdateDirective) Op() string { return ProgressUpdateDirectiveOp }

func (d *ProgressUpdateDirective) Validate() error {
	if d.UserID == "" {
		return errors.New("userId is required")
	}

	if d.HuntID == "" {
		return errMissingHuntID
	}

	if d.ClueID == "" {
		return errors.New("clueId is required")
	}

	if d.Progress < 0 || d.Progress > 100 {
		return fmt.Errorf("progress must be within [0, 100], got %d", d.Progress)
	}

	if d.Score < 0 {
		return fmt.Errorf("score must not be negative, got %d", d.Score)
	}

	status, err := enum.ToEnum[entity.ProgressStatus](d.Status)
	if err != nil {
		return fmt.Errorf("unknown status %q", d.Status)
	}
	d.status = status

	return nil
}

// ProgressStatus is the validated status. It is only meaningful after
// Validate succeeded.
func (d *ProgressUpdateDirective) ProgressStatus() entity.ProgressStatus {
	return d.status
}

// REQUEST HINT
type RequestHintDirective struct {
	HuntID string `json:"huntId"`
	ClueID string `json:"clueId"`
	UserID string `json:"userId"`
}

func (*RequestHintDirective) Op() string { return RequestHintDirectiveOp }

func (d *RequestHintDirective) Validate() error {
	if d.HuntID == "" {
		return errMissingHuntID
	}

	if d.UserID == "" {
		return errors.New("userId is required")
	}

	if d.ClueID == "" {
		return errors.New("clueId is required")
	}

	return nil
}

// LOCATION UPDATE
type LocationUpdateDirective struct {
	HuntID    string  `json:"huntId"`
	UserID    string  `json:"userId"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (*LocationUpdateDirective) Op() string { return LocationUpdateDirectiveOp }

func (d *LocationUpdateDirective) Validate() error {
	if d.HuntID == "" {
		return errMissingHuntID
	}

	if d.UserID == "" {
		return errors.New("userId is required")
	}

	if d.Latitude < -90 || d.Latitude > 90 {
		return fmt.Errorf("latitude out of range: %v", d.Latitude)
	}

	if d.Longitude < -180 || d.Longitude > 180 {
		return fmt.Errorf("longitude out of range: %v", d.Longitude)
	}

	return nil
}
