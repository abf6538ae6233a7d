package taiga

import (
	"context"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionStatus describes the authenticated session as far as it can be
// determined locally. The auth token's lifecycle (obtaining, refreshing) is
// the caller's concern; this is read-only diagnostics.
type SessionStatus struct {
	// TokenPresent reports whether a token is configured at all.
	TokenPresent bool `json:"token_present"`

	// ExpiresAt is the token's expiry claim, when the token is a JWT
	// carrying one. Nil for opaque tokens.
	ExpiresAt *time.Time `json:"expires_at,omitempty"`

	// Expired is set when ExpiresAt is known and in the past.
	Expired bool `json:"expired"`
}

// Me fetches the authenticated user's account.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var user User
	if err := c.get(ctx, "/users/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Session inspects the configured auth token without any network call.
func (c *Client) Session() SessionStatus {
	return inspectToken(c.cfg.Auth.Token)
}

// inspectToken extracts the expiry claim from a JWT auth token. The token is
// parsed without signature verification: the claim is used for diagnostics
// only, never for authorization decisions.
func inspectToken(token string) SessionStatus {
	status := SessionStatus{TokenPresent: token != ""}
	if token == "" {
		return status
	}

	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		// Opaque (non-JWT) token: nothing more to report.
		return status
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return status
	}

	t := exp.Time
	status.ExpiresAt = &t
	status.Expired = time.Now().After(t)
	return status
}

// warnIfTokenExpiring logs when the configured token is already expired or
// close to it, so stale-token failures are diagnosable before the first 401.
func warnIfTokenExpiring(logger *slog.Logger, token string) {
	status := inspectToken(token)
	if status.ExpiresAt == nil {
		return
	}

	switch {
	case status.Expired:
		logger.Warn("auth token is expired", "expired_at", status.ExpiresAt)
	case time.Until(*status.ExpiresAt) < time.Hour:
		logger.Warn("auth token expires soon", "expires_at", status.ExpiresAt)
	}
}
