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

// signupView collects the new-account form. Any server failure is terminal
// for this submit: the user stays on the form with the message shown.
func (a *App) signupView(ctx context.Context) (auth.Event, error) {
	pending := a.coord.Pending()

	fmt.Fprintln(a.out, "== Create account ==  (type 'login' to go back to sign in)")

	givenName, err := promptDefault(a.reader, "Given name", pending.GivenName, a.out)
	if err != nil {
		return auth.Event{}, err
	}
	if strings.EqualFold(givenName, "login") {
		return auth.Event{Kind: auth.EventSwitchToLogin}, nil
	}

	familyName, err := promptDefault(a.reader, "Family name", pending.FamilyName, a.out)
	if err != nil {
		return auth.Event{}, err
	}
	username, err := getSimpleText(a.reader, "Username", a.out)
	if err != nil {
		return auth.Event{}, err
	}
	email, err := promptDefault(a.reader, "Email", pending.Email, a.out)
	if err != nil {
		return auth.Event{}, err
	}
	role, err := getSimpleText(a.reader, "Role (analyst/manager/admin)", a.out)
	if err != nil {
		return auth.Event{}, err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return auth.Event{}, err
	}
	defer common.WipeByteArray(password)

	payload := signupPayload{
		GivenName:  strings.TrimSpace(givenName),
		FamilyName: strings.TrimSpace(familyName),
		Username:   strings.TrimSpace(username),
		Email:      strings.TrimSpace(email),
		Password:   string(password),
		Role:       models.Role(strings.ToLower(strings.TrimSpace(role))),
		domain:     a.config.EmailDomain,
	}
	if err := payload.Validate(); err != nil {
		return auth.Event{Kind: auth.EventFailed, Message: err.Error()}, nil
	}

	req := api.CreateAccountRequest{
		GivenName:  payload.GivenName,
		FamilyName: payload.FamilyName,
		Username:   payload.Username,
		Email:      payload.Email,
		Password:   payload.Password,
		Role:       payload.Role,
	}
	return signupOutcome(req, a.identity.CreateAccount(ctx, req)), nil
}

// signupOutcome maps a create-account result to a coordinator event. Unlike
// login there is no structured redirect here: duplicate accounts, validation
// rejections, and server errors differ only by message.
func signupOutcome(req api.CreateAccountRequest, err error) auth.Event {
	if err != nil {
		if api.IsNetwork(err) {
			return auth.Event{Kind: auth.EventFailed, Message: msgServerUnreachable}
		}
		return auth.Event{Kind: auth.EventFailed, Message: err.Error()}
	}
	return auth.Event{
		Kind: auth.EventSignupAccepted,
		Pending: models.PendingAuthContext{
			Email:      req.Email,
			GivenName:  req.GivenName,
			FamilyName: req.FamilyName,
		},
	}
}
