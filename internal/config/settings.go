package config

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const envPrefix = "DALEELI"

const (
	defaultRecommendationModel = "gemini-2.5-flash"
	defaultSuggestionModel     = "gemini-3-flash-preview"
	defaultRequestTimeout      = 15 * time.Second
	defaultSuggestionSettle    = 350 * time.Millisecond
	defaultSuggestionCacheTTL  = 5 * time.Minute
	defaultLogLevel            = "warning"
	defaultGeocoderURL         = "https://nominatim.openstreetmap.org/search"
	defaultReverseGeocoderURL  = "https://api.bigdatacloud.net/data/reverse-geocode-client"
)

// Settings holds runtime options resolved from env and an optional file.
type Settings struct {
	APIKey              string
	RecommendationModel string
	SuggestionModel     string
	RequestTimeout      time.Duration
	SuggestionSettle    time.Duration
	SuggestionCacheTTL  time.Duration
	LogLevel            string
	GeocoderURL         string
	ReverseGeocoderURL  string
}

// LoadSettings reads DALEELI_* env variables and, when
// DALEELI_CONFIG_FILE is set, the referenced yaml/json/toml file. Env
// values win over the file.
func LoadSettings() (Settings, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("recommendation_model", defaultRecommendationModel)
	v.SetDefault("suggestion_model", defaultSuggestionModel)
	v.SetDefault("request_timeout", defaultRequestTimeout)
	v.SetDefault("suggestion_settle", defaultSuggestionSettle)
	v.SetDefault("suggestion_cache_ttl", defaultSuggestionCacheTTL)
	v.SetDefault("log_level", defaultLogLevel)
	v.SetDefault("geocoder_url", defaultGeocoderURL)
	v.SetDefault("reverse_geocoder_url", defaultReverseGeocoderURL)

	if err := v.BindEnv("api_key", "DALEELI_API_KEY", "GEMINI_API_KEY", "API_KEY"); err != nil {
		return Settings{}, errors.Wrap(err, "couldn't bind api key env")
	}
	if err := v.BindEnv("config_file"); err != nil {
		return Settings{}, errors.Wrap(err, "couldn't bind config file env")
	}

	if configFile := strings.TrimSpace(v.GetString("config_file")); configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType(strings.TrimPrefix(filepath.Ext(configFile), "."))
		if err := v.ReadInConfig(); err != nil {
			return Settings{}, errors.Wrapf(err, "couldn't load config file %s", configFile)
		}
	}

	settings := Settings{
		APIKey:              strings.TrimSpace(v.GetString("api_key")),
		RecommendationModel: v.GetString("recommendation_model"),
		SuggestionModel:     v.GetString("suggestion_model"),
		RequestTimeout:      v.GetDuration("request_timeout"),
		SuggestionSettle:    v.GetDuration("suggestion_settle"),
		SuggestionCacheTTL:  v.GetDuration("suggestion_cache_ttl"),
		LogLevel:            v.GetString("log_level"),
		GeocoderURL:         v.GetString("geocoder_url"),
		ReverseGeocoderURL:  v.GetString("reverse_geocoder_url"),
	}
	if settings.RequestTimeout <= 0 {
		return Settings{}, errors.Errorf("request_timeout must be positive, got %s", settings.RequestTimeout)
	}
	if settings.SuggestionSettle < 0 {
		return Settings{}, errors.Errorf("suggestion_settle must not be negative, got %s", settings.SuggestionSettle)
	}
	return settings, nil
}
