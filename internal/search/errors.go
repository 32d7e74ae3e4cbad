package search

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/csheth/gyanam/internal/answer"
	"github.com/csheth/gyanam/internal/webhook"
)

// ErrEmptyQuery rejects blank queries. Submit ignores it silently.
var ErrEmptyQuery = errors.New("query is empty")

const bodyExcerptLimit = 200

const (
	msgNetwork   = "Could not reach the answer service. Check your connection and try again."
	msgMalformed = "The answer service returned an invalid response. Please try again."
	msgTooLarge  = "The answer was too large to display."
	msgUnknown   = "Something went wrong. Please try again."
)

// Validate trims query and rejects it when nothing is left.
func Validate(query string) (string, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return "", ErrEmptyQuery
	}
	return trimmed, nil
}

// UserMessage summarizes err for the result panel. Raw error text never
// leaves this function; the caller logs it separately.
func UserMessage(err error) string {
	var statusErr *webhook.StatusError
	var netErr *webhook.NetworkError
	var malformed *answer.MalformedError
	switch {
	case errors.As(err, &statusErr):
		msg := fmt.Sprintf("The answer service returned status %d.", statusErr.Code)
		if excerpt := excerpt(statusErr.Body, bodyExcerptLimit); excerpt != "" {
			msg += " " + excerpt
		}
		return msg
	case errors.As(err, &malformed):
		return msgMalformed
	case errors.Is(err, webhook.ErrBodyTooLarge):
		return msgTooLarge
	case errors.As(err, &netErr), errors.Is(err, context.DeadlineExceeded):
		return msgNetwork
	default:
		return msgUnknown
	}
}

func excerpt(value string, limit int) string {
	value = strings.Join(strings.Fields(value), " ")
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	return strings.TrimSpace(string(runes[:limit])) + "…"
}
