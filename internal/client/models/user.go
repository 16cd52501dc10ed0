// Package models defines the client-side data model for the back-office
// console: the authenticated user profile, the persisted session, and the
// transient context carried between authentication views.
package models

// Role classifies what the user is allowed to do in the back office.
// Enforcement happens server-side; on the client the role is advisory.
type Role string

const (
	RoleAnalyst Role = "analyst"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
)

// Roles lists every role the signup form accepts.
var Roles = []Role{RoleAnalyst, RoleManager, RoleAdmin}

// UserProfile is the identity record returned by the identity service.
type UserProfile struct {
	Email      string `json:"email"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
	Role       Role   `json:"role"`
	Username   string `json:"username"`
}

// DisplayName returns "GivenName FamilyName", falling back to the username
// when both name parts are empty.
func (u *UserProfile) DisplayName() string {
	switch {
	case u.GivenName == "" && u.FamilyName == "":
		return u.Username
	case u.GivenName == "":
		return u.FamilyName
	case u.FamilyName == "":
		return u.GivenName
	}
	return u.GivenName + " " + u.FamilyName
}
