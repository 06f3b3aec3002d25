// Package apperr turns internal errors into messages that are safe to show
// to API clients.
package apperr

import (
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
)

// GenericMessage is returned for errors no rule or pattern recognizes.
const GenericMessage = "요청을 처리하지 못했습니다. 잠시 후 다시 시도해주세요."

// Rule maps errors matching Target (via errors.Is) or Match to a status
// and message.
type Rule struct {
	Target  error
	Match   func(error) bool
	Status  int
	Message string
}

func (r Rule) matches(err error) bool {
	if r.Target != nil && errors.Is(err, r.Target) {
		return true
	}
	return r.Match != nil && r.Match(err)
}

// Sanitizer classifies errors by its rules first, then by message patterns.
type Sanitizer struct {
	Rules []Rule
}

// patterns map error text fragments to client-safe messages.
var patterns = []struct {
	fragment string
	status   int
	message  string
}{
	{"rate limit", http.StatusTooManyRequests, "rate limit exceeded"},
	{"quota", http.StatusTooManyRequests, "quota exceeded"},
	{"timeout", http.StatusGatewayTimeout, "request timed out"},
	{"deadline exceeded", http.StatusGatewayTimeout, "request timed out"},
	{"context canceled", http.StatusServiceUnavailable, "request cancelled"},
	{"unauthorized", http.StatusBadGateway, "authentication failed with provider"},
	{"forbidden", http.StatusBadGateway, "access denied by provider"},
}

// Classify returns the HTTP status and client message for err. The full
// error is logged; it never reaches the client.
func (s *Sanitizer) Classify(err error) (int, string) {
	if err == nil {
		return http.StatusOK, ""
	}
	for _, r := range s.Rules {
		if r.matches(err) {
			log.Debug().Err(err).Str("sanitized", r.Message).Msg("sanitizing error for client")
			return r.Status, r.Message
		}
	}
	lower := strings.ToLower(err.Error())
	for _, p := range patterns {
		if strings.Contains(lower, p.fragment) {
			log.Debug().Err(err).Str("sanitized", p.message).Msg("sanitizing error for client")
			return p.status, p.message
		}
	}
	log.Error().Err(err).Msg("internal error (sanitized for client)")
	return http.StatusInternalServerError, GenericMessage
}

// SanitizeForClient is Classify without the status.
func (s *Sanitizer) SanitizeForClient(err error) string {
	_, msg := s.Classify(err)
	return msg
}
