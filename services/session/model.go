package session

import (
	"github.com/golang-jwt/jwt/v5"
)

// User is the profile the backend hands out at login.
type User struct {
	UID   string `json:"_id"`
	Name  string `json:"username,omitempty"`
	Email string `json:"email,omitempty"`
}

// Session is the persisted identity: the bearer token plus the profile that was
// issued with it. A zero Session means anonymous.
type Session struct {
	Token string `json:"authToken"`
	User  User   `json:"loginData"`
}

func (s Session) IsAnonymous() bool {
	return s.Token == ""
}

// UserUID resolves the identity owning this session. It prefers the stored
// profile and falls back to the id claim of the bearer token. The token is read
// unverified: signature checking is the backend's job, we only need the identity
// to scope locally cached state.
func (s Session) UserUID() string {
	if s.User.UID != "" {
		return s.User.UID
	}

	if s.Token == "" {
		return ""
	}

	claims := jwt.MapClaims{}
	_, _, err := jwt.NewParser().ParseUnverified(s.Token, claims)
	if err != nil {
		return ""
	}

	if id, ok := claims["id"].(string); ok {
		return id
	}

	return ""
}
