package models

import "strings"

// Role gates privileged UI affordances (edit/delete movies, "Add Movie").
type Role string

const (
	RoleOrdinary   Role = "ordinary"
	RoleSupervisor Role = "supervisor"
)

// IsSupervisor reports whether the role is [RoleSupervisor], ignoring case.
func (r Role) IsSupervisor() bool {
	return strings.EqualFold(strings.TrimSpace(string(r)), string(RoleSupervisor))
}

// Label returns the role for display, "N/A" when empty.
func (r Role) Label() string {
	if r == "" {
		return "N/A"
	}
	return string(r)
}

// User is the signed-in user's profile as returned by the API.
type User struct {
	ID                int    `json:"id,omitempty"`
	Name              string `json:"name"`
	Email             string `json:"email,omitempty"`
	Role              Role   `json:"role"`
	ProfilePictureURL string `json:"profile_picture_url,omitempty"`
}

// Privileged reports whether the user unlocks supervisor-only actions.
func (u *User) Privileged() bool {
	return u != nil && u.Role.IsSupervisor()
}

// DisplayName returns the user's name or "User" when unknown.
func (u *User) DisplayName() string {
	if u == nil || strings.TrimSpace(u.Name) == "" {
		return "User"
	}
	return u.Name
}

// UserEnvelope is the {user: {...}} wrapper used by the profile endpoint and the cached session copy.
type UserEnvelope struct {
	User User `json:"user"`
}

// SignInResult is the sign-in response: a bearer token and the user's profile.
type SignInResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
