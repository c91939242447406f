package entity

import (
	"database/sql"

	"github.com/scavhunt/backend/pkg/enum"
)

type ParticipantStatus string

var (
	ParticipantRegistered = enum.New(ParticipantStatus("REGISTERED"))
	ParticipantActive     = enum.New(ParticipantStatus("ACTIVE"))
	ParticipantCompleted  = enum.New(ParticipantStatus("COMPLETED"))
)

type Participant struct {
	Base

	UserID string `gorm:"uniqueIndex:idx_participant_user_hunt"`
	User   User   `gorm:"foreignKey:UserID"`

	HuntID string `gorm:"uniqueIndex:idx_participant_user_hunt"`
	Hunt   Hunt   `gorm:"foreignKey:HuntID"`

	Score    uint64
	Progress int
	Status   ParticipantStatus
}

// ParticipantStanding is a participant row joined with the user's display
// fields, as read for a leaderboard.
type ParticipantStanding struct {
	UserID    string
	UserName  string
	UserEmail string
	Score     uint64
	Progress  int
}

type ProgressStatus string

var (
	ProgressPending    = enum.New(ProgressStatus("PENDING"))
	ProgressInProgress = enum.New(ProgressStatus("IN_PROGRESS"))
	ProgressCompleted  = enum.New(ProgressStatus("COMPLETED"))
)

type Progress struct {
	Base

	ParticipantID string      `gorm:"uniqueIndex:idx_progress_participant_clue"`
	Participant   Participant `gorm:"foreignKey:ParticipantID"`

	ClueID string `gorm:"uniqueIndex:idx_progress_participant_clue"`

	Status         ProgressStatus
	CompletionTime sql.NullTime
}

type PaymentStatus string

var (
	PaymentPending   = enum.New(PaymentStatus("PENDING"))
	PaymentCompleted = enum.New(PaymentStatus("COMPLETED"))
	PaymentFailed    = enum.New(PaymentStatus("FAILED"))
)

type Payment struct {
	Base
	UserID string `gorm:"index"`
	User   User   `gorm:"foreignKey:UserID"`
	HuntID string
	Amount float64
	Status PaymentStatus
}
