package testutil

import (
	"context"
	"database/sql"

	"github.com/scavhunt/backend/internal/entity"
	"github.com/scavhunt/backend/internal/repository"
)

var (
	// Users
	User1 = &entity.User{Base: entity.Base{ID: "user1"}, Name: "Alice", Email: "alice@example.com"}
	User2 = &entity.User{Base: entity.Base{ID: "user2"}, Name: "", Email: "bob@example.com"}
	User3 = &entity.User{Base: entity.Base{ID: "user3"}, Name: "Carol", Email: "carol@example.com"}
	User4 = &entity.User{Base: entity.Base{ID: "user4"}, Name: "Dave", Email: "dave@example.com"}
	Users = []*entity.User{User1, User2, User3, User4}

	// Hunts
	Hunt1 = &entity.Hunt{
		Base:            entity.Base{ID: "hunt1"},
		Title:           "Victoria BC Scavenger Hunt",
		Description:     "Active hunt",
		EntryFee:        5,
		PrizePool:       1000,
		MaxParticipants: 1000,
		IsActive:        true,
	}

	Hunt2 = &entity.Hunt{
		Base:     entity.Base{ID: "hunt2"},
		Title:    "Inactive hunt",
		IsActive: false,
	}

	Hunt3 = &entity.Hunt{
		Base:         entity.Base{ID: "hunt3"},
		Title:        "Finished hunt",
		IsActive:     false,
		PrizeClaimed: true,
		WinnerID:     sql.NullString{Valid: true, String: "user3"},
	}

	Hunts = []*entity.Hunt{Hunt1, Hunt2, Hunt3}

	// Participants, user4 is not registered to any hunt.
	Participant1 = &entity.Participant{
		Base:   entity.Base{ID: "participant1"},
		UserID: User1.ID,
		HuntID: Hunt1.ID,
		Status: entity.ParticipantRegistered,
	}

	Participant2 = &entity.Participant{
		Base:   entity.Base{ID: "participant2"},
		UserID: User2.ID,
		HuntID: Hunt1.ID,
		Status: entity.ParticipantRegistered,
	}

	Participant3 = &entity.Participant{
		Base:   entity.Base{ID: "participant3"},
		UserID: User3.ID,
		HuntID: Hunt1.ID,
		Status: entity.ParticipantRegistered,
	}

	Participant4 = &entity.Participant{
		Base:   entity.Base{ID: "participant4"},
		UserID: User1.ID,
		HuntID: Hunt2.ID,
		Status: entity.ParticipantRegistered,
	}

	Participants = []*entity.Participant{Participant1, Participant2, Participant3, Participant4}
)

func CreateFixtureDb(ctx context.Context) {
	InsertUsers(ctx)
	InsertHunts(ctx)
	InsertParticipants(ctx)
}

func InsertUsers(ctx context.Context) {
	userRepo := repository.NewUserRepository(nil)
	for _, u := range Users {
		user := *u
		if err := userRepo.Create(ctx, &user); err != nil {
			panic(err)
		}
	}
}

func InsertHunts(ctx context.Context) {
	huntRepo := repository.NewHuntRepository()
	for _, h := range Hunts {
		hunt := *h
		if err := huntRepo.Create(ctx, &hunt); err != nil {
			panic(err)
		}
	}
}

func InsertParticipants(ctx context.Context) {
	participantRepo := repository.NewParticipantRepository()
	for _, p := range Participants {
		participant := *p
		if err := participantRepo.Create(ctx, &participant); err != nil {
			panic(err)
		}
	}
}
