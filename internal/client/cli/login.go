package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/gesan-dev/backoffice-cli/internal/client/api"
	"github.com/gesan-dev/backoffice-cli/internal/client/auth"
	"github.com/gesan-dev/backoffice-cli/internal/client/models"
	"github.com/gesan-dev/backoffice-cli/internal/common"
)

const msgServerUnreachable = "cannot reach the server, check your connection and try again"

// loginView collects credentials, validates them locally, and submits a
// login request. The returned event routes the coordinator: a failed login
// is a routing decision, not a dead end.
func (a *App) loginView(ctx context.Context) (auth.Event, error) {
	pending := a.coord.Pending()

	fmt.Fprintln(a.out, "== Sign in ==  (type 'signup' to create an account)")

	email, err := promptDefault(a.reader, "Email", pending.Email, a.out)
	if err != nil {
		return auth.Event{}, err
	}
	if strings.EqualFold(email, "signup") {
		return auth.Event{Kind: auth.EventSwitchToSignup}, nil
	}

	password, err := getPassword(a.out)
	if err != nil {
		return auth.Event{}, err
	}
	defer common.WipeByteArray(password)

	payload := loginPayload{Email: email, Password: string(password), domain: a.config.EmailDomain}
	if err := payload.Validate(); err != nil {
		return auth.Event{Kind: auth.EventFailed, Message: err.Error()}, nil
	}

	res, err := a.identity.RequestLogin(ctx, email, string(password))
	return loginOutcome(email, string(password), res, err), nil
}

// loginOutcome maps the result of a login request to a coordinator event.
//
//   - user_not_found redirects to signup with the email prefilled;
//   - account_pending redirects to signup verification;
//   - verification_required=false with a session authenticates immediately;
//   - everything else stays on the login view with a message.
func loginOutcome(email, password string, res *api.LoginResult, err error) auth.Event {
	if err != nil {
		if api.IsNetwork(err) {
			return auth.Event{Kind: auth.EventFailed, Message: msgServerUnreachable}
		}
		switch api.TypeOf(err) {
		case api.ErrorTypeUserNotFound:
			return auth.Event{
				Kind:    auth.EventRedirectSignup,
				Pending: models.PendingAuthContext{Email: email},
				Message: fmt.Sprintf("no account exists for %s yet, you can create one below", email),
			}
		case api.ErrorTypeAccountPending:
			return auth.Event{
				Kind:    auth.EventRedirectVerifySignup,
				Pending: models.PendingAuthContext{Email: email},
				Message: "this account still needs email verification, enter the code we sent you",
			}
		}
		return auth.Event{Kind: auth.EventFailed, Message: err.Error()}
	}

	if res.VerificationRequired {
		// the password travels only inside the transient context, so the
		// verify-login view can complete the second factor
		return auth.Event{
			Kind:    auth.EventVerificationRequired,
			Pending: models.PendingAuthContext{Email: email, Password: password},
		}
	}

	return auth.Event{Kind: auth.EventAuthenticated, Session: res.Session}
}
