package entity

type User struct {
	Base
	Name  string
	Email string `gorm:"unique"`
}

// DisplayName is the name shown on the leaderboard.
func (u User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}

	if u.Email != "" {
		return u.Email
	}

	return AnonymousName
}

// PublicName is the name announced when the user completes a hunt. Unlike
// DisplayName it never reveals the email.
func (u User) PublicName() string {
	if u.Name != "" {
		return u.Name
	}

	return AnonymousName
}

const AnonymousName = "Anonymous"
