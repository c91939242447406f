package seed

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/scavhunt/backend/internal/entity"
	"github.com/scavhunt/backend/internal/repository"
	"github.com/scavhunt/backend/pkg/xcontext"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"
)

//go:embed default.toml
var defaultDefinition string

type Definition struct {
	Hunt      HuntDefinition       `toml:"hunt"`
	Locations []LocationDefinition `toml:"locations"`
	Clues     []ClueDefinition     `toml:"clues"`
}

type HuntDefinition struct {
	Title           string  `toml:"title"`
	Description     string  `toml:"description"`
	MaxParticipants int     `toml:"max_participants"`
	EntryFee        float64 `toml:"entry_fee"`
	PrizePool       float64 `toml:"prize_pool"`
}

type LocationDefinition struct {
	Name        string  `toml:"name"`
	Address     string  `toml:"address"`
	Latitude    float64 `toml:"latitude"`
	Longitude   float64 `toml:"longitude"`
	Description string  `toml:"description"`
}

type ClueDefinition struct {
	// Location is the name of one of the locations of the definition.
	Location    string `toml:"location"`
	Title       string `toml:"title"`
	Description string `toml:"description"`
	Difficulty  int    `toml:"difficulty"`
	Points      int    `toml:"points"`
	Sequence    int    `toml:"sequence"`
}

// Default returns the Victoria BC hunt.
func Default() (*Definition, error) {
	return Parse(defaultDefinition)
}

func Parse(data string) (*Definition, error) {
	var def Definition
	if _, err := toml.Decode(data, &def); err != nil {
		return nil, err
	}

	if err := def.validate(); err != nil {
		return nil, err
	}

	return &def, nil
}

func LoadFile(path string) (*Definition, error) {
	var def Definition
	if _, err := toml.DecodeFile(path, &def); err != nil {
		return nil, err
	}

	if err := def.validate(); err != nil {
		return nil, err
	}

	return &def, nil
}

func (d *Definition) validate() error {
	if d.Hunt.Title == "" {
		return fmt.Errorf("hunt title is required")
	}

	names := map[string]bool{}
	for _, l := range d.Locations {
		if names[l.Name] {
			return fmt.Errorf("duplicated location %q", l.Name)
		}
		names[l.Name] = true
	}

	for _, c := range d.Clues {
		if !names[c.Location] {
			return fmt.Errorf("clue %q refers to unknown location %q", c.Title, c.Location)
		}
	}

	return nil
}

type Result struct {
	Hunt      *entity.Hunt
	Locations []*entity.Location
	Clues     []entity.Clue
}

type Seeder struct {
	huntRepo     repository.HuntRepository
	locationRepo repository.LocationRepository
	clueRepo     repository.ClueRepository
}

func NewSeeder(
	huntRepo repository.HuntRepository,
	locationRepo repository.LocationRepository,
	clueRepo repository.ClueRepository,
) *Seeder {
	return &Seeder{
		huntRepo:     huntRepo,
		locationRepo: locationRepo,
		clueRepo:     clueRepo,
	}
}

// Run creates an active hunt with its locations and clues. Nothing is written
// if any insert fails.
func (s *Seeder) Run(ctx context.Context, def *Definition) (*Result, error) {
	result := &Result{}
	err := xcontext.Transaction(ctx, func(ctx context.Context) error {
		result.Hunt = &entity.Hunt{
			Base:            entity.Base{ID: uuid.NewString()},
			Title:           def.Hunt.Title,
			Description:     def.Hunt.Description,
			EntryFee:        def.Hunt.EntryFee,
			PrizePool:       def.Hunt.PrizePool,
			MaxParticipants: def.Hunt.MaxParticipants,
			IsActive:        true,
		}
		if err := s.huntRepo.Create(ctx, result.Hunt); err != nil {
			return fmt.Errorf("create hunt: %w", err)
		}

		locationIDs := map[string]string{}
		for _, l := range def.Locations {
			location := &entity.Location{
				Base:        entity.Base{ID: uuid.NewString()},
				HuntID:      result.Hunt.ID,
				Name:        l.Name,
				Address:     l.Address,
				Latitude:    l.Latitude,
				Longitude:   l.Longitude,
				Description: l.Description,
			}
			if err := s.locationRepo.Create(ctx, location); err != nil {
				return fmt.Errorf("create location %s: %w", l.Name, err)
			}

			locationIDs[l.Name] = location.ID
			result.Locations = append(result.Locations, location)
		}

		for _, c := range def.Clues {
			clue := &entity.Clue{
				Base:        entity.Base{ID: uuid.NewString()},
				HuntID:      result.Hunt.ID,
				LocationID:  locationIDs[c.Location],
				Title:       c.Title,
				Description: c.Description,
				Difficulty:  c.Difficulty,
				Points:      c.Points,
				Sequence:    c.Sequence,
			}
			if err := s.clueRepo.Create(ctx, clue); err != nil {
				return fmt.Errorf("create clue %s: %w", c.Title, err)
			}
		}

		clues, err := s.clueRepo.GetByHuntID(ctx, result.Hunt.ID)
		if err != nil {
			return fmt.Errorf("get clues: %w", err)
		}
		result.Clues = clues

		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
