package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gesan-dev/backoffice-cli/internal/client/api"
	"github.com/gesan-dev/backoffice-cli/internal/client/auth"
	"github.com/gesan-dev/backoffice-cli/internal/client/config"
	"github.com/gesan-dev/backoffice-cli/internal/client/models"
	"github.com/gesan-dev/backoffice-cli/internal/client/session"
	"github.com/gesan-dev/backoffice-cli/internal/logging"
)

// App wires the console together: config, the identity API client, the
// sqlite-backed session store, and the authentication coordinator.
type App struct {
	config   *config.Config
	identity api.Identity
	sessions *session.Store
	coord    *auth.Coordinator
	reader   *bufio.Reader
	out      io.Writer
	log      logging.Logger

	// user is set by the coordinator's announce signal; it is the host
	// application's view of "who is signed in".
	user *models.UserProfile
}

func NewApp(cfg *config.Config, log logging.Logger) (*App, error) {
	ctx := context.Background()

	db, err := session.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		log.Error(ctx, "error initializing local database", "error", err)
		return nil, err
	}

	store := session.NewStore(db, log)

	a := &App{
		config:   cfg,
		sessions: store,
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
		log:      log,
	}
	a.identity = api.New(cfg.ServerEndpointAddr, cfg.RequestTimeout, store, log)
	a.coord = auth.New(store, log, func(u *models.UserProfile) { a.user = u })
	return a, nil
}

// Run alternates between the authentication flow and the authenticated
// command loop until the user exits.
func (a *App) Run(ctx context.Context) error {
	// best-effort restore: a confirmed session skips the forms entirely
	a.coord.Restore(ctx, a.identity)

	for {
		user, err := a.runAuth(ctx)
		if err != nil {
			return err
		}
		if user == nil {
			return nil // input closed before signing in
		}

		fmt.Fprintf(a.out, "Welcome, %s!\n", user.DisplayName())
		if !runREPL(ctx, a, a.status, a.reader) {
			return nil
		}
	}
}

// runAuth renders the active view's form until the coordinator reaches the
// authenticated state. A nil profile with nil error means input was closed.
func (a *App) runAuth(ctx context.Context) (*models.UserProfile, error) {
	for a.coord.View() != auth.ViewAuthenticated {
		a.printMessages()

		var (
			ev  auth.Event
			err error
		)
		switch a.coord.View() {
		case auth.ViewLogin:
			ev, err = a.loginView(ctx)
		case auth.ViewSignup:
			ev, err = a.signupView(ctx)
		case auth.ViewVerifySignup:
			ev, err = a.verifyView(ctx, api.PurposeSignup)
		case auth.ViewVerifyLogin:
			ev, err = a.verifyView(ctx, api.PurposeLogin)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, nil
			}
			return nil, err
		}

		a.coord.Apply(ctx, ev)
	}
	return a.user, nil
}

// printMessages shows the single status message. The coordinator guarantees
// at most one of info/error is set.
func (a *App) printMessages() {
	if msg := a.coord.Error(); msg != "" {
		fmt.Fprintf(a.out, "! %s\n", msg)
		return
	}
	if msg := a.coord.Info(); msg != "" {
		fmt.Fprintf(a.out, "* %s\n", msg)
	}
}

func (a *App) status() string {
	if a.user == nil {
		return "-"
	}
	return fmt.Sprintf("%s, %s", a.user.Username, a.user.Role)
}

// WhoAmI prints the signed-in profile.
func (a *App) WhoAmI(ctx context.Context) error {
	if a.user == nil {
		printlnFn("not signed in")
		return nil
	}
	printlnFn(fmt.Sprintf("%s <%s> (role %s)", a.user.DisplayName(), a.user.Email, a.user.Role))
	return nil
}

// Refresh re-checks the session against the server. It returns false when
// the server no longer accepts it: the API client has already cleared the
// stored session, so control must drop back to the login flow.
func (a *App) Refresh(ctx context.Context) bool {
	user, err := a.identity.CheckSession(ctx)
	if err != nil {
		printlnFn(msgServerUnreachable)
		return true // keep the local session, the server may come back
	}
	if user == nil {
		printlnFn("your session has expired, please sign in again")
		a.user = nil
		a.coord.Reset("session expired, please sign in again")
		return false
	}
	a.user = user
	printlnFn("session is valid")
	return true
}

// Logout signs the user out. The server call is best-effort; the local
// session is always cleared.
func (a *App) Logout(ctx context.Context) error {
	if err := a.identity.Logout(ctx); err != nil {
		a.log.Warn(ctx, "server-side logout failed", "error", err)
	}
	a.sessions.Clear(ctx)
	a.user = nil
	a.coord.Reset("signed out")
	printlnFn("signed out")
	return nil
}
