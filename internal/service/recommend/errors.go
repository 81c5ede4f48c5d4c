package recommend

import (
	"errors"
	"strings"

	"github.com/mekedron/daleeli/internal/domain"
	"github.com/mekedron/daleeli/internal/gateway/gemini"
)

const entityNotFoundMessage = "Requested entity was not found"

// ClassifyError maps a failed search to the kind shown to the user.
// A nil error is ErrorKindNone.
func ClassifyError(err error) domain.ErrorKind {
	if err == nil {
		return domain.ErrorKindNone
	}
	var upstream *gemini.UpstreamRequestError
	if errors.As(err, &upstream) && upstream.StatusCode == 404 {
		return domain.ErrorKindKeyNotFound
	}
	msg := err.Error()
	if strings.Contains(msg, entityNotFoundMessage) || strings.Contains(msg, "404") {
		return domain.ErrorKindKeyNotFound
	}
	return domain.ErrorKindGeneric
}
