package location

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/mekedron/daleeli/internal/domain"
)

const (
	defaultNominatimURL    = "https://nominatim.openstreetmap.org/search"
	defaultReverseURL      = "https://api.bigdatacloud.net/data/reverse-geocode-client"
	defaultCountryCacheTTL = 24 * time.Hour
	defaultGeocodeGap      = time.Second
	userAgent              = "daleeli-go/1.0"
)

var (
	// ErrLocationLookup is returned when geocoding fails.
	ErrLocationLookup = errors.New("error when trying to get location")
	// ErrCountryLookup is returned when reverse geocoding yields no country.
	ErrCountryLookup = errors.New("error when trying to detect country")
)

// Client resolves addresses to coordinates and coordinates to countries.
type Client struct {
	httpClient *http.Client
	baseURL    string
	reverseURL string
	countries  *cache.Cache

	minRequestGap  time.Duration
	requestWindowM sync.Mutex
	nextRequestAt  time.Time
}

// Option applies Client options.
type Option func(*Client)

// WithBaseURL replaces the forward geocoding endpoint.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if strings.TrimSpace(baseURL) != "" {
			c.baseURL = baseURL
		}
	}
}

// WithReverseURL replaces the reverse geocoding endpoint.
func WithReverseURL(reverseURL string) Option {
	return func(c *Client) {
		if strings.TrimSpace(reverseURL) != "" {
			c.reverseURL = reverseURL
		}
	}
}

// WithRequestMinInterval enforces a minimum delay between forward
// geocoding calls. Nominatim allows one request per second.
func WithRequestMinInterval(interval time.Duration) Option {
	return func(c *Client) {
		if interval < 0 {
			interval = 0
		}
		c.minRequestGap = interval
	}
}

type coordinate float64

func (c *coordinate) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		value, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
		if err != nil {
			return fmt.Errorf("parse coordinate %q: %w", text, err)
		}
		*c = coordinate(value)
		return nil
	}

	var value float64
	if err := json.Unmarshal(data, &value); err == nil {
		*c = coordinate(value)
		return nil
	}

	return fmt.Errorf("coordinate must be a string or number")
}

type nominatimResult struct {
	Lat coordinate `json:"lat"`
	Lon coordinate `json:"lon"`
}

type reverseResult struct {
	CountryCode string `json:"countryCode"`
}

// NewClient creates a location client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    defaultNominatimURL,
		reverseURL: defaultReverseURL,
		countries:  cache.New(defaultCountryCacheTTL, time.Hour),

		minRequestGap: defaultGeocodeGap,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get resolves an address using OSM Nominatim.
func (c *Client) Get(ctx context.Context, address string) (domain.Location, error) {
	query := url.Values{}
	query.Set("q", address)
	query.Set("format", "json")

	if err := c.waitForRequestSlot(ctx); err != nil {
		return domain.Location{}, fmt.Errorf("%w: %v", ErrLocationLookup, err)
	}
	var payload []nominatimResult
	if err := c.getJSON(ctx, c.baseURL+"?"+query.Encode(), &payload); err != nil {
		return domain.Location{}, fmt.Errorf("%w: %v", ErrLocationLookup, err)
	}
	if len(payload) == 0 {
		return domain.Location{}, ErrLocationLookup
	}
	return domain.Location{
		Latitude:  float64(payload[0].Lat),
		Longitude: float64(payload[0].Lon),
	}, nil
}

// CountryCode resolves the ISO country code for a location. Results are
// cached per coordinate pair rounded to ~100 m.
func (c *Client) CountryCode(ctx context.Context, location domain.Location) (string, error) {
	key := fmt.Sprintf("%.3f,%.3f", location.Latitude, location.Longitude)
	if cached, ok := c.countries.Get(key); ok {
		return cached.(string), nil
	}

	query := url.Values{}
	query.Set("latitude", strconv.FormatFloat(location.Latitude, 'f', -1, 64))
	query.Set("longitude", strconv.FormatFloat(location.Longitude, 'f', -1, 64))
	query.Set("localityLanguage", "en")

	var payload reverseResult
	if err := c.getJSON(ctx, c.reverseURL+"?"+query.Encode(), &payload); err != nil {
		return "", fmt.Errorf("%w: %v", ErrCountryLookup, err)
	}
	code := strings.ToUpper(strings.TrimSpace(payload.CountryCode))
	if code == "" {
		return "", ErrCountryLookup
	}
	c.countries.SetDefault(key, code)
	return code, nil
}

func (c *Client) waitForRequestSlot(ctx context.Context) error {
	interval := c.minRequestGap
	if interval <= 0 {
		return nil
	}
	for {
		c.requestWindowM.Lock()
		wait := time.Until(c.nextRequestAt)
		if wait <= 0 {
			c.nextRequestAt = time.Now().Add(interval)
			c.requestWindowM.Unlock()
			return nil
		}
		c.requestWindowM.Unlock()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}

func (c *Client) getJSON(ctx context.Context, uri string, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_ = res.Body.Close()
	}()
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d", res.StatusCode)
	}
	return json.NewDecoder(res.Body).Decode(target)
}
