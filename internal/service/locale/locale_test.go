package locale

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"

	"github.com/mekedron/daleeli/internal/domain"
)

func TestContentCoversEveryTagAndErrorKind(t *testing.T) {
	for _, lang := range []domain.Language{domain.LanguageEnglish, domain.LanguageArabic} {
		content := For(lang)
		for _, tag := range []domain.Tag{domain.TagHiddenGem, domain.TagTrending, domain.TagPopular, domain.TagPersonalized} {
			if content.TagLabel(tag) == string(tag) {
				t.Fatalf("missing %s label for %s", lang, tag)
			}
		}
		for _, kind := range []domain.ErrorKind{domain.ErrorKindKeyNotFound, domain.ErrorKindGeneric} {
			if content.ErrorMessage(kind) == "" {
				t.Fatalf("missing %s message for %s", lang, kind)
			}
		}
		if content.ErrorMessage(domain.ErrorKindNone) != "" {
			t.Fatal("expected no message without an error")
		}
	}
	if For(domain.LanguageArabic).Title != "دليلي" || For("fr").Title != "Daleeli" {
		t.Fatal("unexpected localized titles")
	}
}

type fakeResolver struct {
	code string
	err  error
}

func (f fakeResolver) CountryCode(context.Context, domain.Location) (string, error) {
	return f.code, f.err
}

type memoryStore struct {
	session domain.Session
	saves   int
	loadErr error
}

func (m *memoryStore) LoadOrEmpty(context.Context) (domain.Session, error) {
	return m.session, m.loadErr
}

func (m *memoryStore) Save(_ context.Context, session domain.Session) error {
	m.saves++
	m.session = session
	return nil
}

func TestDetectPersistsCountry(t *testing.T) {
	store := &memoryStore{session: domain.Session{LoggedIn: true}}
	logger, _ := test.NewNullLogger()
	loc := domain.Location{Latitude: 24.71, Longitude: 46.67}

	code := NewDetector(fakeResolver{code: "sa"}, store, logger).Detect(context.Background(), loc)
	if code != "SA" {
		t.Fatalf("expected SA, got %q", code)
	}
	if store.saves != 1 || store.session.CountryCode != "SA" || !store.session.LoggedIn {
		t.Fatalf("unexpected stored session %+v", store.session)
	}
	if store.session.LastLocation == nil || *store.session.LastLocation != loc {
		t.Fatalf("expected last location stored, got %+v", store.session.LastLocation)
	}
}

func TestDetectFailureKeepsPreviousCode(t *testing.T) {
	store := &memoryStore{session: domain.Session{CountryCode: "KW"}}
	logger, hook := test.NewNullLogger()

	code := NewDetector(fakeResolver{err: errors.New("offline")}, store, logger).Detect(context.Background(), domain.Location{})
	if code != "KW" {
		t.Fatalf("expected stored KW, got %q", code)
	}
	if store.saves != 0 {
		t.Fatal("expected no save on failure")
	}
	if len(hook.Entries) != 1 {
		t.Fatalf("expected one warning, got %d", len(hook.Entries))
	}
}

func TestDetectEmptyCodeIsIgnored(t *testing.T) {
	store := &memoryStore{}
	logger, _ := test.NewNullLogger()
	if code := NewDetector(fakeResolver{}, store, logger).Detect(context.Background(), domain.Location{}); code != "" {
		t.Fatalf("expected empty code, got %q", code)
	}
	if store.saves != 0 {
		t.Fatal("expected no save for empty code")
	}
}
