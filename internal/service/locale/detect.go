package locale

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/mekedron/daleeli/internal/domain"
)

// CountryResolver reverse-geocodes a location into an ISO country code.
type CountryResolver interface {
	CountryCode(ctx context.Context, location domain.Location) (string, error)
}

// SessionStore persists the local session.
type SessionStore interface {
	LoadOrEmpty(ctx context.Context) (domain.Session, error)
	Save(ctx context.Context, session domain.Session) error
}

// Detector resolves and remembers the user's country.
type Detector struct {
	resolver CountryResolver
	store    SessionStore
	logger   logrus.FieldLogger
}

// NewDetector creates a country detector. A nil logger uses the standard
// logrus logger.
func NewDetector(resolver CountryResolver, store SessionStore, logger logrus.FieldLogger) *Detector {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Detector{resolver: resolver, store: store, logger: logger}
}

// Detect returns the country code for location and stores it with the
// location in the session. When lookup fails the previously stored code is
// returned and the failure is only logged.
func (d *Detector) Detect(ctx context.Context, location domain.Location) string {
	session, err := d.store.LoadOrEmpty(ctx)
	if err != nil {
		d.logger.WithError(err).Warn("load session for country detection")
		session = domain.Session{}
	}

	code, err := d.resolver.CountryCode(ctx, location)
	code = strings.ToUpper(strings.TrimSpace(code))
	if err != nil || code == "" {
		entry := d.logger.WithField("location", location.String())
		if err != nil {
			entry = entry.WithError(err)
		}
		entry.Warn("country detection failed")
		return session.CountryCode
	}

	loc := location
	session.CountryCode = code
	session.LastLocation = &loc
	if err := d.store.Save(ctx, session); err != nil {
		d.logger.WithError(err).Warn("persist detected country")
	}
	return code
}
