/*
Package user contains the account and profile domain of the user service.

This file defines the Service: registration and login with bcrypt hashing and
JWT issuance, and profile create/find/update with zodiac and horoscope
derivation from the birthday.
*/
package user

import (
	"context"
	"errors"
	"net/mail"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"youapp/internal/app/db"
	"youapp/internal/pkg/auth/jwt"
	"youapp/internal/pkg/errs"
	"youapp/internal/pkg/logx"
)

// Credential length policies, counted in runes.
const (
	MinPasswordLen = 6
	MaxPasswordLen = 50

	MinUserNameLen = 3
	MaxUserNameLen = 30
)

// Service implements the user business rules over a Store.
type Service struct {
	store     Store
	jwtSecret string
	logger    zerolog.Logger
}

// NewService constructs a Service over the given store.
func NewService(store Store, jwtSecret string) *Service {
	return &Service{
		store:     store,
		jwtSecret: jwtSecret,
		logger:    logx.Logger().With().Str("component", "UserService").Logger(),
	}
}

// issueToken signs an identity token for the user.
func (s *Service) issueToken(u *User) (string, error) {
	payload := &jwt.Payload{
		ID:       u.ID,
		UserName: u.UserName,
	}

	return jwt.GenerateToken(payload, s.jwtSecret, jwt.UserIdentityExpiration)
}

// Register creates a new account and returns a signed identity token.
// Registering an email that already exists fails with UserAlreadyExists.
func (s *Service) Register(ctx context.Context, email, userName, password string) (string, error) {
	if _, err := mail.ParseAddress(email); err != nil {
		return "", errs.NewError(errs.ErrInvalidEmail)
	}

	userNameLen := utf8.RuneCountInString(userName)
	if userNameLen < MinUserNameLen || userNameLen > MaxUserNameLen {
		return "", errs.NewError(errs.ErrInvalidUserName)
	}

	passwordLen := utf8.RuneCountInString(password)
	if passwordLen < MinPasswordLen || passwordLen > MaxPasswordLen {
		return "", errs.NewError(errs.ErrInvalidPassword)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	now := time.Now().UTC()
	u := User{
		ID:           uuid.NewString(),
		Email:        email,
		UserName:     userName,
		PasswordHash: string(hashed),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.store.CreateUser(ctx, u); err != nil {
		if errors.Is(err, db.ErrDuplicate) {
			s.logger.Warn().Str("email", email).Msg("Registration conflict: user already exists.")
			return "", errs.NewError(errs.ErrUserAlreadyExists)
		}
		return "", err
	}

	s.logger.Info().Str("user_id", u.ID).Msg("User registered.")
	return s.issueToken(&u)
}

// Login verifies credentials by email or user name and returns a signed
// identity token. Unknown accounts and wrong passwords are indistinguishable
// to the caller.
func (s *Service) Login(ctx context.Context, email, userName, password string) (string, error) {
	var (
		u   *User
		err error
	)

	switch {
	case email != "":
		u, err = s.store.FindUserByEmail(ctx, email)
	case userName != "":
		u, err = s.store.FindUserByUserName(ctx, userName)
	default:
		return "", errs.NewError(errs.ErrInvalidParams)
	}

	if errors.Is(err, db.ErrNotFound) {
		return "", errs.NewError(errs.ErrInvalidCredentials)
	}
	if err != nil {
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		s.logger.Warn().Str("user_id", u.ID).Msg("Login: password mismatch.")
		return "", errs.NewError(errs.ErrInvalidCredentials)
	}

	return s.issueToken(u)
}

// ProfilePatch carries the optional profile fields of a create or update
// request. Nil fields are left untouched on update.
type ProfilePatch struct {
	DisplayName *string
	Gender      *string
	Birthday    *time.Time
	Height      *float64
	Weight      *float64
	ImageURL    *string
	Interests   []string
}

// enrich derives the zodiac sign and horoscope animal from the birthday.
func enrich(p Profile) *ProfileView {
	view := &ProfileView{Profile: p}

	if p.Birthday != nil {
		view.Zodiac = ZodiacSign(*p.Birthday)
		view.Horoscope = HoroscopeAnimal(view.Zodiac)
	}

	return view
}

// CreateProfile creates the user's profile. A user has at most one profile;
// a second create fails with ProfileAlreadyExists.
func (s *Service) CreateProfile(ctx context.Context, userID string, patch ProfilePatch) (*ProfileView, error) {
	now := time.Now().UTC()

	p := Profile{
		ID:          uuid.NewString(),
		UserID:      userID,
		DisplayName: patch.DisplayName,
		Gender:      patch.Gender,
		Birthday:    patch.Birthday,
		Height:      patch.Height,
		Weight:      patch.Weight,
		ImageURL:    patch.ImageURL,
		Interests:   patch.Interests,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if p.Interests == nil {
		p.Interests = []string{}
	}

	if err := s.store.CreateProfile(ctx, p); err != nil {
		if errors.Is(err, db.ErrDuplicate) {
			return nil, errs.NewError(errs.ErrProfileAlreadyExists)
		}
		return nil, err
	}

	s.logger.Info().Str("user_id", userID).Msg("Profile created.")
	return enrich(p), nil
}

// FindProfile returns the user's profile enriched with zodiac data, or
// ProfileNotFound when none exists.
func (s *Service) FindProfile(ctx context.Context, userID string) (*ProfileView, error) {
	p, err := s.store.FindProfileByUser(ctx, userID)
	if errors.Is(err, db.ErrNotFound) {
		return nil, errs.NewError(errs.ErrProfileNotFound)
	}
	if err != nil {
		return nil, err
	}

	return enrich(*p), nil
}

// UpdateProfile applies the non-nil patch fields to the existing profile and
// returns the enriched result. Updating a missing profile fails with
// ProfileNotFound.
func (s *Service) UpdateProfile(ctx context.Context, userID string, patch ProfilePatch) (*ProfileView, error) {
	p, err := s.store.FindProfileByUser(ctx, userID)
	if errors.Is(err, db.ErrNotFound) {
		return nil, errs.NewError(errs.ErrProfileNotFound)
	}
	if err != nil {
		return nil, err
	}

	if patch.DisplayName != nil {
		p.DisplayName = patch.DisplayName
	}
	if patch.Gender != nil {
		p.Gender = patch.Gender
	}
	if patch.Birthday != nil {
		p.Birthday = patch.Birthday
	}
	if patch.Height != nil {
		p.Height = patch.Height
	}
	if patch.Weight != nil {
		p.Weight = patch.Weight
	}
	if patch.ImageURL != nil {
		p.ImageURL = patch.ImageURL
	}
	if patch.Interests != nil {
		p.Interests = patch.Interests
	}
	p.UpdatedAt = time.Now().UTC()

	if err := s.store.SaveProfile(ctx, *p); err != nil {
		return nil, err
	}

	return enrich(*p), nil
}
