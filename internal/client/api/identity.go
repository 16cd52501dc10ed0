package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gesan-dev/backoffice-cli/internal/client/models"
)

// Identity service endpoints.
const (
	pathSignup      = "/api/v1/auth/signup"
	pathVerifyEmail = "/api/v1/auth/verify-email"
	pathLogin       = "/api/v1/auth/login"
	pathLoginVerify = "/api/v1/auth/login/verify"
	pathResendCode  = "/api/v1/auth/resend-code"
	pathSession     = "/api/v1/auth/me"
	pathLogout      = "/api/v1/auth/logout"
)

// Purpose selects which flow a 6-digit code is checked against.
type Purpose string

const (
	PurposeSignup Purpose = "signup"
	PurposeLogin  Purpose = "login"
)

// Identity is the logical surface of the remote identity service. The
// concrete implementation is *Client; forms and the coordinator depend on
// this interface so tests can substitute fakes.
type Identity interface {
	CreateAccount(ctx context.Context, req CreateAccountRequest) error
	VerifyEmail(ctx context.Context, email, code string) error
	RequestLogin(ctx context.Context, email, password string) (*LoginResult, error)
	CompleteLogin(ctx context.Context, email, code string) (*LoginResult, error)
	ResendCode(ctx context.Context, email string, purpose Purpose) (time.Duration, error)
	CheckSession(ctx context.Context) (*models.UserProfile, error)
	Logout(ctx context.Context) error
}

var _ Identity = (*Client)(nil)

// CreateAccountRequest is the signup payload.
type CreateAccountRequest struct {
	GivenName  string      `json:"given_name"`
	FamilyName string      `json:"family_name"`
	Username   string      `json:"username"`
	Email      string      `json:"email"`
	Password   string      `json:"password"`
	Role       models.Role `json:"role"`
}

// LoginResult is the outcome of a login request or completion. Exactly one
// of the two shapes occurs: verification still required (no session yet), or
// a ready session.
type LoginResult struct {
	VerificationRequired bool
	Session              *models.Session
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Success              bool                `json:"success"`
	VerificationRequired bool                `json:"verification_required"`
	Token                string              `json:"token"`
	User                 *models.UserProfile `json:"user"`
}

type verifyEmailRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type completeLoginRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type resendCodeRequest struct {
	Email   string  `json:"email"`
	Purpose Purpose `json:"purpose"`
}

type resendCodeResponse struct {
	Success    bool `json:"success"`
	RetryAfter int  `json:"retry_after"` // seconds; 0 when the server has no advice
}

type sessionResponse struct {
	Authenticated bool                `json:"authenticated"`
	User          *models.UserProfile `json:"user"`
}

type statusResponse struct {
	Success bool `json:"success"`
}

// CreateAccount registers a new back-office account. The account stays
// pending until the email is verified.
func (c *Client) CreateAccount(ctx context.Context, req CreateAccountRequest) error {
	var res statusResponse
	return c.do(ctx, http.MethodPost, pathSignup, req, &res)
}

// VerifyEmail confirms a pending account with the emailed 6-digit code.
func (c *Client) VerifyEmail(ctx context.Context, email, code string) error {
	var res statusResponse
	return c.do(ctx, http.MethodPost, pathVerifyEmail, verifyEmailRequest{Email: email, Code: code}, &res)
}

// RequestLogin starts a login. Depending on server policy the result either
// requires a second-factor email code or carries a ready session.
func (c *Client) RequestLogin(ctx context.Context, email, password string) (*LoginResult, error) {
	var res loginResponse
	if err := c.do(ctx, http.MethodPost, pathLogin, loginRequest{Email: email, Password: password}, &res); err != nil {
		return nil, err
	}
	if res.VerificationRequired {
		return &LoginResult{VerificationRequired: true}, nil
	}
	return &LoginResult{Session: &models.Session{Token: res.Token, User: res.User}}, nil
}

// CompleteLogin exchanges the second-factor code for a session.
func (c *Client) CompleteLogin(ctx context.Context, email, code string) (*LoginResult, error) {
	var res loginResponse
	if err := c.do(ctx, http.MethodPost, pathLoginVerify, completeLoginRequest{Email: email, Code: code}, &res); err != nil {
		return nil, err
	}
	return &LoginResult{Session: &models.Session{Token: res.Token, User: res.User}}, nil
}

// ResendCode asks the service to email a fresh code for the given purpose.
// The returned duration is the server-advised resend backoff (0 when the
// server gave none).
func (c *Client) ResendCode(ctx context.Context, email string, purpose Purpose) (time.Duration, error) {
	var res resendCodeResponse
	if err := c.do(ctx, http.MethodPost, pathResendCode, resendCodeRequest{Email: email, Purpose: purpose}, &res); err != nil {
		return 0, err
	}
	return time.Duration(res.RetryAfter) * time.Second, nil
}

// CheckSession asks the server whether the stored token is still good. An
// unauthenticated visitor is an expected state, not an error: a 401 (or an
// explicit authenticated=false) yields (nil, nil). Only transport and
// unexpected server failures are returned as errors.
func (c *Client) CheckSession(ctx context.Context) (*models.UserProfile, error) {
	var res sessionResponse
	if err := c.do(ctx, http.MethodGet, pathSession, nil, &res); err != nil {
		if IsUnauthorized(err) {
			return nil, nil
		}
		return nil, err
	}
	if !res.Authenticated {
		return nil, nil
	}
	return res.User, nil
}

// Logout invalidates the session server-side. Local cleanup is the caller's
// job; a dead server must not block logging out.
func (c *Client) Logout(ctx context.Context) error {
	var res statusResponse
	return c.do(ctx, http.MethodPost, pathLogout, struct{}{}, &res)
}
