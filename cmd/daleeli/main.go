package main

import (
	"context"
	"errors"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/mekedron/daleeli/internal/cli"
	"github.com/mekedron/daleeli/internal/config"
	"github.com/mekedron/daleeli/internal/gateway/gemini"
	locationgateway "github.com/mekedron/daleeli/internal/gateway/location"
	"github.com/mekedron/daleeli/internal/service/locale"
	"github.com/mekedron/daleeli/internal/service/profile"
	"github.com/mekedron/daleeli/internal/service/recommend"
	"github.com/mekedron/daleeli/internal/service/suggest"
)

var version = "dev"

func main() {
	settings, err := config.LoadSettings()
	if err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
	logger := newLogger(settings.LogLevel)

	store, err := config.NewStore()
	if err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}

	ctx := context.Background()
	location := locationgateway.NewClient(
		locationgateway.WithBaseURL(settings.GeocoderURL),
		locationgateway.WithReverseURL(settings.ReverseGeocoderURL),
	)
	deps := cli.Dependencies{
		Location:      location,
		Countries:     locale.NewDetector(location, store, logger),
		Sessions:      store,
		Accounts:      profile.NewService(store),
		Logger:        logger,
		SuggestSettle: settings.SuggestionSettle,
		Version:       version,
	}

	api, err := gemini.Dial(ctx, settings.APIKey,
		gemini.WithRecommendationModel(settings.RecommendationModel),
		gemini.WithSuggestionModel(settings.SuggestionModel),
		gemini.WithTimeout(settings.RequestTimeout),
		gemini.WithLogger(logger),
	)
	switch {
	case errors.Is(err, gemini.ErrMissingAPIKey):
		logger.Warn("no API key configured, search and suggest are disabled")
	case err != nil:
		logger.WithError(err).Error("couldn't create generative client")
	default:
		deps.Recommender = recommend.NewService(api, recommend.WithLogger(logger))
		deps.Suggester = suggest.NewFetcher(api,
			suggest.WithCacheTTL(settings.SuggestionCacheTTL),
			suggest.WithLogger(logger),
		)
	}

	exitCode := cli.Execute(ctx, os.Args[1:], deps, os.Stdin, os.Stdout, os.Stderr)
	os.Exit(exitCode)
}

func newLogger(level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		logger.WithField("level", level).Warn("unknown log level, using warning")
		parsed = logrus.WarnLevel
	}
	logger.SetLevel(parsed)
	return logger
}
