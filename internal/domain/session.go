package domain

import "strings"

// UserProfile is the public part of a local account.
type UserProfile struct {
	Name        string   `json:"name" yaml:"name"`
	Email       string   `json:"email" yaml:"email"`
	Avatar      *string  `json:"avatar" yaml:"avatar"`
	Preferences []string `json:"preferences" yaml:"preferences"`
}

// Account is an entry of the local account list.
type Account struct {
	Email        string      `json:"email"`
	PasswordHash string      `json:"password_hash"`
	Profile      UserProfile `json:"profile"`
}

// Session stores all locally persisted state.
type Session struct {
	CountryCode  string       `json:"country_code,omitempty"`
	LastLocation *Location    `json:"last_location,omitempty"`
	LoggedIn     bool         `json:"logged_in"`
	CurrentUser  *UserProfile `json:"current_user,omitempty"`
	Accounts     []Account    `json:"accounts,omitempty"`
}

// FindAccount returns the index of the account registered under email,
// or -1. Emails compare case-insensitively.
func (s Session) FindAccount(email string) int {
	want := NormalizeEmail(email)
	for i, account := range s.Accounts {
		if NormalizeEmail(account.Email) == want {
			return i
		}
	}
	return -1
}

// NormalizeEmail lowercases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
