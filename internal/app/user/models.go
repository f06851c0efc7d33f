/*
Package user contains the account and profile domain of the user service:
registration, login, and profile management with zodiac/horoscope derivation.
*/
package user

import "time"

// User is a registered account. The password hash never leaves this package.
type User struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	UserName     string     `json:"userName"`
	PasswordHash string     `json:"-"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
	DeletedAt    *time.Time `json:"deletedAt"`
}

// Gender values accepted on a profile.
const (
	GenderMale   = "MALE"
	GenderFemale = "FEMALE"
	GenderOther  = "OTHER"
)

// Profile holds the optional self-description of a user. At most one profile
// exists per user.
type Profile struct {
	ID          string     `json:"id"`
	UserID      string     `json:"userId"`
	DisplayName *string    `json:"displayName"`
	Gender      *string    `json:"gender"`
	Birthday    *time.Time `json:"birthday"`
	Height      *float64   `json:"height"`
	Weight      *float64   `json:"weight"`
	ImageURL    *string    `json:"imageUrl"`
	Interests   []string   `json:"interests"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	DeletedAt   *time.Time `json:"deletedAt"`
}

// ProfileView is a Profile enriched with the zodiac sign and horoscope animal
// derived from the birthday.
type ProfileView struct {
	Profile
	Zodiac    string `json:"zodiac,omitempty"`
	Horoscope string `json:"horoscope,omitempty"`
}
