package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mekedron/daleeli/internal/domain"
	"github.com/mekedron/daleeli/internal/service/profile"
	"github.com/mekedron/daleeli/internal/service/recommend"
)

var unknownCommandPattern = regexp.MustCompile(`unknown command "([^"]+)"`)

// Recommender runs grounded searches.
type Recommender interface {
	Recommend(ctx context.Context, req recommend.Request) (domain.Recommendation, error)
}

// Suggester returns autocomplete entries.
type Suggester interface {
	Suggest(ctx context.Context, partial string, location *domain.Location, lang domain.Language, countryCode string) []domain.SearchSuggestion
}

// LocationResolver resolves addresses to coordinates.
type LocationResolver interface {
	Get(ctx context.Context, address string) (domain.Location, error)
}

// CountryDetector resolves and remembers the country of a location.
type CountryDetector interface {
	Detect(ctx context.Context, location domain.Location) string
}

// SessionStore stores the local session.
type SessionStore interface {
	Path() string
	LoadOrEmpty(ctx context.Context) (domain.Session, error)
	Save(ctx context.Context, session domain.Session) error
}

// AccountManager implements the local account operations.
type AccountManager interface {
	SignUp(ctx context.Context, in profile.SignUpInput) (domain.UserProfile, error)
	LogIn(ctx context.Context, email, password string) (domain.UserProfile, error)
	LogOut(ctx context.Context) error
	Current(ctx context.Context) (domain.UserProfile, error)
	UpdateCurrent(ctx context.Context, update profile.Update) (domain.UserProfile, error)
}

// Dependencies wires runtime services.
type Dependencies struct {
	Recommender Recommender
	Suggester   Suggester
	Location    LocationResolver
	Countries   CountryDetector
	Sessions    SessionStore
	Accounts    AccountManager
	Logger      *logrus.Logger
	// SuggestSettle is the debounce window of suggest --watch.
	SuggestSettle time.Duration
	Version       string
}

var errVersionShown = fmt.Errorf("version shown")

// Execute runs the CLI with injected dependencies.
func Execute(ctx context.Context, args []string, deps Dependencies, stdin io.Reader, stdout io.Writer, stderr io.Writer) int {
	cmd := NewRootCommand(deps)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	if err == nil || err == errVersionShown {
		return 0
	}
	var controlled *exitError
	if errors.As(err, &controlled) {
		return controlled.code
	}

	if matches := unknownCommandPattern.FindStringSubmatch(err.Error()); len(matches) > 1 {
		_, _ = fmt.Fprintf(stderr, "No such command '%s'\n", matches[1])
		return 2
	}

	if msg := err.Error(); msg != "" {
		_, _ = fmt.Fprintln(stderr, msg)
	}
	return 1
}
