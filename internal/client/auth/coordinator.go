// Package auth implements the authentication coordinator: an explicit state
// machine over the login, signup, and verification views. Forms translate
// service outcomes into Events; Transition maps (view, event) to the next
// view plus side effects, so the whole flow is testable without rendering
// anything.
package auth

import (
	"context"

	"github.com/gesan-dev/backoffice-cli/internal/client/models"
	"github.com/gesan-dev/backoffice-cli/internal/logging"
)

// View enumerates the authentication screens. Exactly one is active at a
// time; ViewAuthenticated is the terminal exit that hands control to the
// host application.
type View int

const (
	ViewLogin View = iota
	ViewSignup
	ViewVerifySignup
	ViewVerifyLogin
	ViewAuthenticated
)

func (v View) String() string {
	switch v {
	case ViewLogin:
		return "login"
	case ViewSignup:
		return "signup"
	case ViewVerifySignup:
		return "verify-signup"
	case ViewVerifyLogin:
		return "verify-login"
	case ViewAuthenticated:
		return "authenticated"
	}
	return "unknown"
}

// EventKind enumerates everything the forms can report back.
type EventKind int

const (
	// EventFailed is any blocking error: the view stays, the message is
	// shown. Zero value on purpose so a forgotten Kind never navigates.
	EventFailed EventKind = iota
	EventRestoreSucceeded
	EventSwitchToSignup
	EventSwitchToLogin
	EventVerificationRequired
	EventAuthenticated
	EventRedirectSignup
	EventRedirectVerifySignup
	EventSignupAccepted
	EventEmailVerified
	EventBack
)

// Event is one outcome reported by a form or the restore path.
type Event struct {
	Kind    EventKind
	Pending models.PendingAuthContext // context carried into the next view
	Session *models.Session           // EventAuthenticated only
	User    *models.UserProfile       // EventRestoreSucceeded only
	Message string                    // info or error text, depending on Kind
}

// Effects is what applying an event asks the owner to do besides changing
// the view. Info and Error are mutually exclusive: at most one is non-empty,
// and both replace whatever was shown before.
type Effects struct {
	Persist  *models.Session     // write to the session store before anything else
	Announce *models.UserProfile // signal the host application
	Info     string
	Error    string
}

// Transition is the pure state-transition function. A failed submit is not
// terminal: classified failures navigate, everything else stays put with a
// message.
func Transition(v View, e Event) (View, Effects) {
	switch e.Kind {
	case EventRestoreSucceeded:
		// session was persisted by a prior run, nothing to write
		return ViewAuthenticated, Effects{Announce: e.User}

	case EventAuthenticated:
		// never enter the authenticated state without a complete session
		if !e.Session.Valid() {
			return v, Effects{Error: "login response was incomplete, please try again"}
		}
		return ViewAuthenticated, Effects{Persist: e.Session, Announce: e.Session.User}

	case EventVerificationRequired:
		return ViewVerifyLogin, Effects{}

	case EventRedirectSignup:
		return ViewSignup, Effects{Info: e.Message}

	case EventRedirectVerifySignup:
		return ViewVerifySignup, Effects{Info: e.Message}

	case EventSwitchToSignup:
		return ViewSignup, Effects{}

	case EventSwitchToLogin:
		return ViewLogin, Effects{}

	case EventSignupAccepted:
		return ViewVerifySignup, Effects{}

	case EventEmailVerified:
		return ViewLogin, Effects{Info: e.Message}

	case EventBack:
		switch v {
		case ViewVerifySignup:
			return ViewSignup, Effects{}
		case ViewVerifyLogin:
			return ViewLogin, Effects{}
		}
		return v, Effects{}

	case EventFailed:
		return v, Effects{Error: e.Message}
	}

	return v, Effects{}
}

// nextPending decides what transient context survives a transition. Events
// that carry context overwrite it; navigation events keep the current one so
// the email stays prefilled. The password survives only into the
// verify-login view, and nothing survives authentication.
func nextPending(cur models.PendingAuthContext, next View, e Event) models.PendingAuthContext {
	if next == ViewAuthenticated {
		return models.PendingAuthContext{}
	}

	p := e.Pending
	if p == (models.PendingAuthContext{}) {
		p = cur
	}
	if next != ViewVerifyLogin {
		p.ScrubPassword()
	}
	return p
}

// SessionWriter is the slice of the session store the coordinator needs.
type SessionWriter interface {
	Set(ctx context.Context, s *models.Session)
}

// SessionChecker asks the server whether a previously persisted session is
// still good. (nil, nil) means "not authenticated".
type SessionChecker interface {
	CheckSession(ctx context.Context) (*models.UserProfile, error)
}

// Coordinator owns the current view, the pending context, and the single
// visible status message. All mutable state is confined to the goroutine
// driving the prompt loop.
type Coordinator struct {
	view     View
	pending  models.PendingAuthContext
	info     string
	errorMsg string

	sessions SessionWriter
	onAuth   func(*models.UserProfile)
	log      logging.Logger
}

// New returns a coordinator positioned on the login view. onAuth is the one
// outward signal: it fires with the final profile when authentication
// completes.
func New(sessions SessionWriter, log logging.Logger, onAuth func(*models.UserProfile)) *Coordinator {
	return &Coordinator{
		view:     ViewLogin,
		sessions: sessions,
		onAuth:   onAuth,
		log:      log.With("component", "auth"),
	}
}

// Restore performs the best-effort session check at startup. Any failure
// silently routes to the login view; only a server-confirmed session skips
// the forms.
func (c *Coordinator) Restore(ctx context.Context, checker SessionChecker) bool {
	user, err := checker.CheckSession(ctx)
	if err != nil {
		c.log.Warn(ctx, "session restore failed, continuing to login", "error", err)
		return false
	}
	if user == nil {
		return false
	}
	c.Apply(ctx, Event{Kind: EventRestoreSucceeded, User: user})
	return true
}

// Apply runs one transition and executes its effects. The session is
// persisted before the host application is signaled.
func (c *Coordinator) Apply(ctx context.Context, e Event) {
	next, fx := Transition(c.view, e)

	c.pending = nextPending(c.pending, next, e)
	c.info = fx.Info
	c.errorMsg = fx.Error

	if fx.Persist != nil {
		c.sessions.Set(ctx, fx.Persist)
	}
	if fx.Announce != nil && c.onAuth != nil {
		c.onAuth(fx.Announce)
	}

	if next != c.view {
		c.log.Info(ctx, "view transition", "from", c.view.String(), "to", next.String())
	}
	c.view = next
}

// Reset returns the coordinator to the login view with no pending context,
// e.g. after logout or a server-side session invalidation. The optional
// info message survives the reset.
func (c *Coordinator) Reset(info string) {
	c.view = ViewLogin
	c.pending = models.PendingAuthContext{}
	c.info = info
	c.errorMsg = ""
}

// View returns the active view.
func (c *Coordinator) View() View { return c.view }

// Pending returns the transient context for the active view.
func (c *Coordinator) Pending() models.PendingAuthContext { return c.pending }

// Info returns the informational message, empty when an error is shown.
func (c *Coordinator) Info() string { return c.info }

// Error returns the blocking error message, empty when info is shown.
func (c *Coordinator) Error() string { return c.errorMsg }
