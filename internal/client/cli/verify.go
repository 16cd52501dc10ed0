package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gesan-dev/backoffice-cli/internal/client/api"
	"github.com/gesan-dev/backoffice-cli/internal/client/auth"
	"github.com/gesan-dev/backoffice-cli/internal/client/models"
)

const codeLength = 6

// normalizeCode strips everything but digits and truncates to six
// characters, mirroring what the input field does as the user types.
func normalizeCode(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteByte(byte(r))
			if b.Len() == codeLength {
				break
			}
		}
	}
	return b.String()
}

// verifyForm holds the per-view verification state: the purpose fixed for
// the lifetime of the view, the attempt counter, and the resend cooldown.
// A fresh form is built every time the view is entered, which resets all of
// it.
type verifyForm struct {
	purpose        api.Purpose
	email          string
	attempts       int
	cooldown       cooldown
	defaultBackoff time.Duration
}

func newVerifyForm(purpose api.Purpose, email string, backoff time.Duration) *verifyForm {
	f := &verifyForm{purpose: purpose, email: email, defaultBackoff: backoff}
	// a code was just sent (or re-requested) when this view appears
	f.cooldown.start(backoff)
	return f
}

// resend asks the service for a fresh code. While the cooldown runs this is
// a no-op: no network call is made. A rate-limit rejection restarts the
// cooldown; any other failure leaves it untouched.
func (f *verifyForm) resend(ctx context.Context, identity api.Identity) string {
	if f.cooldown.active() {
		return fmt.Sprintf("please wait %d seconds before requesting another code", f.cooldown.remaining())
	}

	backoff, err := identity.ResendCode(ctx, f.email, f.purpose)
	if err != nil {
		if api.IsRateLimited(err) {
			f.cooldown.start(f.defaultBackoff)
			return "too many attempts, please wait before requesting another code"
		}
		if api.IsNetwork(err) {
			return msgServerUnreachable
		}
		return err.Error()
	}

	if backoff <= 0 {
		backoff = f.defaultBackoff
	}
	f.cooldown.start(backoff)
	return "a new code is on its way"
}

// submit checks the code against the endpoint selected by the form's
// purpose. ok=false means the attempt failed: the counter is bumped and the
// view stays with msg shown.
func (f *verifyForm) submit(ctx context.Context, identity api.Identity, code string) (ev auth.Event, ok bool, msg string) {
	switch f.purpose {
	case api.PurposeSignup:
		if err := identity.VerifyEmail(ctx, f.email, code); err != nil {
			f.attempts++
			return auth.Event{}, false, f.failureMessage(err)
		}
		return auth.Event{
			Kind:    auth.EventEmailVerified,
			Pending: models.PendingAuthContext{Email: f.email},
			Message: "email verified, you can sign in now",
		}, true, ""

	default: // api.PurposeLogin
		res, err := identity.CompleteLogin(ctx, f.email, code)
		if err != nil {
			f.attempts++
			return auth.Event{}, false, f.failureMessage(err)
		}
		return auth.Event{Kind: auth.EventAuthenticated, Session: res.Session}, true, ""
	}
}

func (f *verifyForm) failureMessage(err error) string {
	msg := err.Error()
	if api.IsNetwork(err) {
		msg = msgServerUnreachable
	}
	return fmt.Sprintf("%s (attempt %d)", msg, f.attempts)
}

// verifyView runs the verification prompt loop. It returns only when the
// view is left: code accepted, 'back', or input EOF. Failed attempts loop
// here so the form state survives them.
func (a *App) verifyView(ctx context.Context, purpose api.Purpose) (auth.Event, error) {
	pending := a.coord.Pending()
	form := newVerifyForm(purpose, pending.Email, a.config.ResendCooldown)

	fmt.Fprintln(a.out, "== Email verification ==")
	fmt.Fprintf(a.out, "A 6-digit code was sent to %s.\n", pending.Email)

	for {
		line, err := getSimpleText(a.reader, "Code ('resend' for a new one, 'back' to return)", a.out)
		if err != nil {
			return auth.Event{}, err
		}

		switch strings.ToLower(line) {
		case "back":
			return auth.Event{Kind: auth.EventBack}, nil
		case "resend":
			fmt.Fprintln(a.out, form.resend(ctx, a.identity))
			continue
		}

		code := normalizeCode(line)
		if len(code) != codeLength {
			// UX guard only, the server stays authoritative
			fmt.Fprintln(a.out, "the code must be exactly 6 digits")
			continue
		}

		ev, ok, msg := form.submit(ctx, a.identity, code)
		if ok {
			return ev, nil
		}
		fmt.Fprintln(a.out, msg)
	}
}
