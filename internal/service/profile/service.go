// Package profile manages the local mock accounts and the signed-in user.
package profile

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/mekedron/daleeli/internal/domain"
)

var (
	// ErrDuplicateEmail indicates an account already exists for the email.
	ErrDuplicateEmail = errors.New("an account with this email already exists")
	// ErrPasswordMismatch indicates the confirmation does not match.
	ErrPasswordMismatch = errors.New("passwords do not match")
	// ErrInvalidCredentials indicates an unknown email or a wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrNotLoggedIn indicates no user is signed in.
	ErrNotLoggedIn = errors.New("no user is logged in")
	// ErrInvalidInput indicates a missing or malformed form field.
	ErrInvalidInput = errors.New("invalid input")
)

// Store loads and persists the local session.
type Store interface {
	LoadOrEmpty(ctx context.Context) (domain.Session, error)
	Save(ctx context.Context, session domain.Session) error
}

// SignUpInput is the registration form.
type SignUpInput struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
}

// Update changes profile fields. Nil fields are left untouched.
type Update struct {
	Name        *string
	Avatar      *string
	Preferences []string
}

// Service implements the account operations over the session store.
type Service struct {
	store Store
	cost  int
}

// NewService creates an account service.
func NewService(store Store) *Service {
	return &Service{store: store, cost: bcrypt.DefaultCost}
}

// SignUp registers an account and signs it in.
func (s *Service) SignUp(ctx context.Context, in SignUpInput) (domain.UserProfile, error) {
	name := strings.TrimSpace(in.Name)
	email := domain.NormalizeEmail(in.Email)
	if name == "" {
		return domain.UserProfile{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return domain.UserProfile{}, fmt.Errorf("%w: email %q", ErrInvalidInput, in.Email)
	}
	if in.Password == "" {
		return domain.UserProfile{}, fmt.Errorf("%w: password is required", ErrInvalidInput)
	}
	if in.Password != in.ConfirmPassword {
		return domain.UserProfile{}, ErrPasswordMismatch
	}

	session, err := s.store.LoadOrEmpty(ctx)
	if err != nil {
		return domain.UserProfile{}, err
	}
	if session.FindAccount(email) >= 0 {
		return domain.UserProfile{}, ErrDuplicateEmail
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return domain.UserProfile{}, fmt.Errorf("hash password: %w", err)
	}
	profile := domain.UserProfile{Name: name, Email: email, Preferences: []string{}}
	session.Accounts = append(session.Accounts, domain.Account{
		Email:        email,
		PasswordHash: string(hash),
		Profile:      profile,
	})
	signIn(&session, profile)
	if err := s.store.Save(ctx, session); err != nil {
		return domain.UserProfile{}, err
	}
	return profile, nil
}

// LogIn signs in an existing account.
func (s *Service) LogIn(ctx context.Context, email, password string) (domain.UserProfile, error) {
	session, err := s.store.LoadOrEmpty(ctx)
	if err != nil {
		return domain.UserProfile{}, err
	}
	idx := session.FindAccount(email)
	if idx < 0 {
		return domain.UserProfile{}, ErrInvalidCredentials
	}
	account := session.Accounts[idx]
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return domain.UserProfile{}, ErrInvalidCredentials
	}

	signIn(&session, account.Profile)
	if err := s.store.Save(ctx, session); err != nil {
		return domain.UserProfile{}, err
	}
	return account.Profile, nil
}

// LogOut clears the signed-in user. Accounts are kept.
func (s *Service) LogOut(ctx context.Context) error {
	session, err := s.store.LoadOrEmpty(ctx)
	if err != nil {
		return err
	}
	session.LoggedIn = false
	session.CurrentUser = nil
	return s.store.Save(ctx, session)
}

// Current returns the signed-in profile.
func (s *Service) Current(ctx context.Context) (domain.UserProfile, error) {
	session, err := s.store.LoadOrEmpty(ctx)
	if err != nil {
		return domain.UserProfile{}, err
	}
	if !session.LoggedIn || session.CurrentUser == nil {
		return domain.UserProfile{}, ErrNotLoggedIn
	}
	return *session.CurrentUser, nil
}

// UpdateCurrent applies update to the signed-in profile and its account.
func (s *Service) UpdateCurrent(ctx context.Context, update Update) (domain.UserProfile, error) {
	session, err := s.store.LoadOrEmpty(ctx)
	if err != nil {
		return domain.UserProfile{}, err
	}
	if !session.LoggedIn || session.CurrentUser == nil {
		return domain.UserProfile{}, ErrNotLoggedIn
	}

	profile := *session.CurrentUser
	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return domain.UserProfile{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
		}
		profile.Name = name
	}
	if update.Avatar != nil {
		if avatar := strings.TrimSpace(*update.Avatar); avatar == "" {
			profile.Avatar = nil
		} else {
			profile.Avatar = &avatar
		}
	}
	if update.Preferences != nil {
		profile.Preferences = normalizePreferences(update.Preferences)
	}

	if idx := session.FindAccount(profile.Email); idx >= 0 {
		session.Accounts[idx].Profile = profile
	}
	signIn(&session, profile)
	if err := s.store.Save(ctx, session); err != nil {
		return domain.UserProfile{}, err
	}
	return profile, nil
}

func signIn(session *domain.Session, profile domain.UserProfile) {
	p := profile
	session.LoggedIn = true
	session.CurrentUser = &p
}

func normalizePreferences(values []string) []string {
	out := make([]string, 0, len(values))
	seen := map[string]bool{}
	for _, value := range values {
		v := strings.TrimSpace(value)
		if v == "" || seen[strings.ToLower(v)] {
			continue
		}
		seen[strings.ToLower(v)] = true
		out = append(out, v)
	}
	return out
}
