package gemini

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"google.golang.org/genai"
)

// ErrUpstream indicates a generative backend failure.
var ErrUpstream = errors.New("[Gemini] error when trying to get response from generative api")

// ErrMissingAPIKey is returned when no API key is configured.
var ErrMissingAPIKey = errors.New("[Gemini] api key is not configured")

// UpstreamRequestError carries context for failed backend calls.
type UpstreamRequestError struct {
	Operation  string
	Model      string
	StatusCode int
	Cause      error
}

func (e *UpstreamRequestError) Error() string {
	parts := []string{ErrUpstream.Error()}
	if op := strings.TrimSpace(e.Operation); op != "" {
		parts = append(parts, "op="+op)
	}
	if model := strings.TrimSpace(e.Model); model != "" {
		parts = append(parts, "model="+model)
	}
	if e.StatusCode > 0 {
		parts = append(parts, fmt.Sprintf("status=%d", e.StatusCode))
	}
	if e.Cause != nil {
		parts = append(parts, fmt.Sprintf("cause=%v", e.Cause))
	}
	return strings.Join(parts, "; ")
}

func (e *UpstreamRequestError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrUpstream}
	}
	return []error{ErrUpstream, e.Cause}
}

func wrapUpstream(operation, model string, err error) error {
	if err == nil {
		return nil
	}
	wrapped := &UpstreamRequestError{Operation: operation, Model: model, Cause: err, StatusCode: statusCode(err)}
	return wrapped
}

var apiErrorStatusPattern = regexp.MustCompile(`\bError (\d{3}),`)

func statusCode(err error) int {
	var apiErr *genai.APIError
	if errors.As(err, &apiErr) && apiErr != nil {
		return apiErr.Code
	}
	matches := apiErrorStatusPattern.FindStringSubmatch(err.Error())
	if len(matches) < 2 {
		return 0
	}
	code, convErr := strconv.Atoi(matches[1])
	if convErr != nil {
		return 0
	}
	return code
}
