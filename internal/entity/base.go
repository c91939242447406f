package entity

import (
	"context"
	"time"

	"github.com/scavhunt/backend/pkg/xcontext"

	"gorm.io/gorm"
)

type Base struct {
	ID        string         `redis:"id" gorm:"primarykey"`
	CreatedAt time.Time      `redis:"created_at"`
	UpdatedAt time.Time      `redis:"updated_at"`
	DeletedAt gorm.DeletedAt `redis:"deleted_at" gorm:"index"`
}

// MigrateTable creates or updates every table owned by this service.
func MigrateTable(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&User{},
		&Hunt{},
		&Location{},
		&Clue{},
		&Participant{},
		&Progress{},
		&Payment{},
	)
}
