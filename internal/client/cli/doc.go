// Package cli implements the interactive surface of the back-office
// console: the login, signup, and email-verification forms driven by the
// authentication coordinator, and the small command loop available once the
// user is signed in.
//
// The whole package runs on a single goroutine. A form owns the terminal
// until it reports an outcome, so no two submissions can ever be in flight
// at once, and view-local state (verification attempts, resend cooldown) is
// dropped the moment its view is left.
package cli
