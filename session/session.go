// Package session holds the durable record of a successful authentication
// and the credential store that persists it across console runs.
package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session is the record created by a successful login. It is either wholly
// present with a non-empty access token, or absent; nothing in this package
// ever produces a partial record.
type Session struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	Username    string    `json:"username"`
	LoginTime   time.Time `json:"login_time"`
}

// Valid reports whether the session can authenticate requests.
func (s *Session) Valid() bool {
	return s != nil && s.AccessToken != ""
}

// AuthorizationHeader formats the session token as a bearer Authorization
// header value.
func (s *Session) AuthorizationHeader() string {
	return fmt.Sprintf("Bearer %s", s.AccessToken)
}

// ExpiresAt reports the token's expiry when the backend issued a JWT with an
// exp claim. The token is otherwise treated as opaque: a non-JWT token, or a
// JWT without exp, reports no expiry. The signature is never verified here;
// the backend is the authority and expiry is only surfaced for display.
func (s *Session) ExpiresAt() (time.Time, bool) {
	if !s.Valid() {
		return time.Time{}, false
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(s.AccessToken, claims); err != nil {
		return time.Time{}, false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
