package cli

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gesan-dev/backoffice-cli/internal/client/api"
	"github.com/gesan-dev/backoffice-cli/internal/client/auth"
	"github.com/gesan-dev/backoffice-cli/internal/client/models"
)

func TestLoginOutcome_NetworkFailure(t *testing.T) {
	err := &api.Error{Kind: api.KindNetwork, Message: "dial tcp: refused"}
	ev := loginOutcome("ann@gesan.it", "secret123", nil, err)

	assert.Equal(t, auth.EventFailed, ev.Kind)
	assert.Equal(t, msgServerUnreachable, ev.Message)
}

func TestLoginOutcome_UserNotFoundRedirectsToSignup(t *testing.T) {
	err := &api.Error{
		Kind:    api.KindClassified,
		Status:  http.StatusNotFound,
		Type:    api.ErrorTypeUserNotFound,
		Message: "no such user",
	}
	ev := loginOutcome("ann@gesan.it", "secret123", nil, err)

	assert.Equal(t, auth.EventRedirectSignup, ev.Kind)
	assert.Equal(t, "ann@gesan.it", ev.Pending.Email)
	assert.Empty(t, ev.Pending.Password)
	assert.Contains(t, ev.Message, "ann@gesan.it")
}

func TestLoginOutcome_AccountPendingRedirectsToVerification(t *testing.T) {
	err := &api.Error{
		Kind:    api.KindClassified,
		Status:  http.StatusForbidden,
		Type:    api.ErrorTypeAccountPending,
		Message: "account pending verification",
	}
	ev := loginOutcome("ann@gesan.it", "secret123", nil, err)

	assert.Equal(t, auth.EventRedirectVerifySignup, ev.Kind)
	assert.Equal(t, "ann@gesan.it", ev.Pending.Email)
	assert.Empty(t, ev.Pending.Password)
}

func TestLoginOutcome_InvalidPasswordStaysOnLogin(t *testing.T) {
	err := &api.Error{
		Kind:    api.KindClassified,
		Status:  http.StatusUnauthorized,
		Type:    api.ErrorTypeInvalidPassword,
		Message: "invalid password",
	}
	ev := loginOutcome("ann@gesan.it", "wrong", nil, err)

	assert.Equal(t, auth.EventFailed, ev.Kind)
	assert.Equal(t, "invalid password", ev.Message)
}

func TestLoginOutcome_UnclassifiedStaysOnLogin(t *testing.T) {
	err := &api.Error{Kind: api.KindUnclassified, Status: http.StatusInternalServerError, Message: "HTTP 500"}
	ev := loginOutcome("ann@gesan.it", "secret123", nil, err)

	assert.Equal(t, auth.EventFailed, ev.Kind)
	assert.Equal(t, "HTTP 500", ev.Message)
}

func TestLoginOutcome_PlainErrorStaysOnLogin(t *testing.T) {
	ev := loginOutcome("ann@gesan.it", "secret123", nil, errors.New("boom"))

	assert.Equal(t, auth.EventFailed, ev.Kind)
	assert.Equal(t, "boom", ev.Message)
}

func TestLoginOutcome_VerificationRequiredCarriesCredentials(t *testing.T) {
	res := &api.LoginResult{VerificationRequired: true}
	ev := loginOutcome("ann@gesan.it", "secret123", res, nil)

	assert.Equal(t, auth.EventVerificationRequired, ev.Kind)
	assert.Equal(t, "ann@gesan.it", ev.Pending.Email)
	assert.Equal(t, "secret123", ev.Pending.Password)
}

func TestLoginOutcome_DirectSession(t *testing.T) {
	res := &api.LoginResult{Session: &models.Session{
		Token: "tok-1",
		User:  &models.UserProfile{Email: "ann@gesan.it", Username: "ann"},
	}}
	ev := loginOutcome("ann@gesan.it", "secret123", res, nil)

	assert.Equal(t, auth.EventAuthenticated, ev.Kind)
	assert.Equal(t, "tok-1", ev.Session.Token)
	assert.Empty(t, ev.Pending.Password)
}
