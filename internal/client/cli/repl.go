package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with
// a stub.
var printlnFn = fmt.Println

// replExec defines the minimal command surface the authenticated loop needs.
// The real App type satisfies this interface; tests can provide a stub.
type replExec interface {
	WhoAmI(ctx context.Context) error
	Refresh(ctx context.Context) bool
	Logout(ctx context.Context) error
}

// runREPL drives the authenticated command loop.
//
// Commands:
//
//	help     — show available commands
//	whoami   — print the signed-in profile
//	refresh  — re-check the session against the server
//	logout   — sign out (server best-effort, local always)
//	exit     — leave the program
//
// It returns true when the user logged out or the session expired, meaning
// the authentication flow should run again, and false when the program
// should exit (EOF or an explicit exit command).
func runREPL(ctx context.Context, a replExec, statusFn func() string, reader *bufio.Reader) bool {
	for {
		printlnFn(fmt.Sprintf("console (%s)> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil {
			return false
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "help":
			printlnFn("Available commands: whoami, refresh, logout, exit")

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "refresh":
			if !a.Refresh(ctx) {
				return true
			}

		case "logout":
			_ = a.Logout(ctx)
			return true

		case "exit", "quit":
			printlnFn("Bye!")
			return false

		default:
			printlnFn("Unknown command:", parts[0])
		}
	}
}
