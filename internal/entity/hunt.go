package entity

import "database/sql"

type Hunt struct {
	Base
	Title           string
	Description     string
	EntryFee        float64
	PrizePool       float64
	MaxParticipants int

	IsActive     bool `gorm:"index"`
	PrizeClaimed bool
	WinnerID     sql.NullString
}

type Location struct {
	Base
	HuntID      string `gorm:"index"`
	Hunt        Hunt   `gorm:"foreignKey:HuntID"`
	Name        string
	Address     string
	Latitude    float64
	Longitude   float64
	Description string
}

type Clue struct {
	Base
	HuntID      string   `gorm:"index"`
	Hunt        Hunt     `gorm:"foreignKey:HuntID"`
	LocationID  string
	Location    Location `gorm:"foreignKey:LocationID"`
	Title       string
	Description string
	Difficulty  int
	Points      int
	Sequence    int
}
