package apperr

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

var errQuota = errors.New("geocoder rate limited")

func TestClassify_Rules(t *testing.T) {
	s := &Sanitizer{Rules: []Rule{{Target: errQuota, Status: http.StatusTooManyRequests, Message: "잠시 후 다시 시도해주세요."}}}

	status, msg := s.Classify(fmt.Errorf("lookup: %w", errQuota))
	assert.Equal(t, http.StatusTooManyRequests, status)
	assert.Equal(t, "잠시 후 다시 시도해주세요.", msg)
}

type statusErr struct{ code int }

func (e *statusErr) Error() string { return fmt.Sprintf("status %d", e.code) }

func TestClassify_MatchFunc(t *testing.T) {
	s := &Sanitizer{Rules: []Rule{{
		Match: func(err error) bool {
			var se *statusErr
			return errors.As(err, &se)
		},
		Status:  http.StatusBadGateway,
		Message: "링크를 확인해주세요.",
	}}}
	status, msg := s.Classify(fmt.Errorf("fetch: %w", &statusErr{code: 404}))
	assert.Equal(t, http.StatusBadGateway, status)
	assert.Equal(t, "링크를 확인해주세요.", msg)
}

func TestClassify_Patterns(t *testing.T) {
	s := &Sanitizer{}
	tests := []struct {
		err    error
		status int
		msg    string
	}{
		{context.DeadlineExceeded, http.StatusGatewayTimeout, "request timed out"},
		{errors.New("upstream: Quota exceeded for key sk-123"), http.StatusTooManyRequests, "quota exceeded"},
		{errors.New("401 Unauthorized"), http.StatusBadGateway, "authentication failed with provider"},
	}
	for _, tt := range tests {
		status, msg := s.Classify(tt.err)
		assert.Equal(t, tt.status, status, tt.err.Error())
		assert.Equal(t, tt.msg, msg, tt.err.Error())
		assert.NotContains(t, msg, "sk-123")
	}
}

func TestClassify_Generic(t *testing.T) {
	s := &Sanitizer{}
	status, msg := s.Classify(errors.New("open /var/cache/placepin/abc: permission denied"))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, GenericMessage, msg)
	assert.Equal(t, GenericMessage, s.SanitizeForClient(errors.New("x")))
}

func TestClassify_Nil(t *testing.T) {
	status, msg := (&Sanitizer{}).Classify(nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Empty(t, msg)
}
