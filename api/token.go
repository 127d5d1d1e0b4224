package api

import (
	"context"
	"errors"
	"net"
	"net/http"

	"golang.org/x/oauth2"

	apperrors "github.com/rentdesk/rentdesk/internal/errors"
)

// Token submits credentials to the backend's token endpoint and returns the
// issued token. The endpoint is contract-fixed to the OAuth2 password grant
// over a form-encoded body, which is exactly what PasswordCredentialsToken
// sends. Failures map onto distinct error kinds so the login view can tell
// a bad password from a dead backend:
//
//   - HTTP 401            ErrInvalidCredentials
//   - HTTP >= 500         ErrServerError
//   - no response in time ErrTimeout
//   - anything else       ErrUnknown, carrying the backend detail if present
func (c *Client) Token(ctx context.Context, username, password string) (*oauth2.Token, error) {
	conf := &oauth2.Config{
		Endpoint: oauth2.Endpoint{
			TokenURL:  c.baseURL + "/auth/login",
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}

	// Route the grant through the pipeline's HTTP client so test doubles
	// and transport settings apply to the login call too.
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)

	token, err := conf.PasswordCredentialsToken(ctx, username, password)
	if err != nil {
		return nil, c.mapTokenError(ctx, err)
	}
	if token.AccessToken == "" {
		return nil, apperrors.Wrapf(apperrors.ErrUnknown, "token endpoint returned no access token")
	}
	return token, nil
}

// mapTokenError sorts a failed grant into the taxonomy. The bounded-wait
// check looks at the context as well as the error chain: the oauth2 package
// has not always wrapped transport errors.
func (c *Client) mapTokenError(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || isTimeout(err) {
		c.logger.Warn().Err(err).Msg("login timed out")
		return apperrors.Wrapf(apperrors.ErrTimeout, "login")
	}

	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		status := 0
		if retrieveErr.Response != nil {
			status = retrieveErr.Response.StatusCode
		}
		detail := errorDetail(retrieveErr.Body)
		switch {
		case status == http.StatusUnauthorized:
			return apperrors.Wrapf(apperrors.ErrInvalidCredentials, "login")
		case status >= 500:
			return apperrors.Wrapf(apperrors.ErrServerError, "login: status %d", status)
		default:
			if detail == "" {
				detail = retrieveErr.Error()
			}
			return apperrors.Wrapf(apperrors.ErrUnknown, "login: %s", detail)
		}
	}

	c.logger.Warn().Err(err).Msg("login failed")
	return apperrors.Wrapf(apperrors.ErrUnknown, "login: %v", err)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
