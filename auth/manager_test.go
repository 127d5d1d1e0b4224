package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/rentdesk/rentdesk/auth"
	apperrors "github.com/rentdesk/rentdesk/internal/errors"
	"github.com/rentdesk/rentdesk/session"
	fakestore "github.com/rentdesk/rentdesk/session/storefakes"
)

var testNow = time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)

// fakeTokenClient stands in for the pipeline's token call.
type fakeTokenClient struct {
	token        *oauth2.Token
	err          error
	calls        int
	lastUsername string
	lastPassword string
}

func (f *fakeTokenClient) Token(ctx context.Context, username, password string) (*oauth2.Token, error) {
	f.calls++
	f.lastUsername = username
	f.lastPassword = password
	if f.err != nil {
		return nil, f.err
	}
	return f.token, nil
}

type testFixture struct {
	store    *fakestore.FakeStore
	tokens   *fakeTokenClient
	manager  *auth.Manager
	notified []bool
}

func setupTestFixture(t *testing.T, store *fakestore.FakeStore, tokens *fakeTokenClient) *testFixture {
	t.Helper()

	f := &testFixture{store: store, tokens: tokens}
	f.manager = auth.NewManager(store, tokens, auth.WithNowTime(func() time.Time { return testNow }))
	f.manager.Subscribe(func(authenticated bool) {
		f.notified = append(f.notified, authenticated)
	})
	return f
}

func TestLoginSuccessPersistsSession(t *testing.T) {
	tokens := &fakeTokenClient{token: &oauth2.Token{AccessToken: "abc", TokenType: "bearer"}}
	f := setupTestFixture(t, fakestore.New(), tokens)

	require.False(t, f.manager.IsAuthenticated())

	got, err := f.manager.Login(context.Background(), "  operator  ", "hunter2")
	require.NoError(t, err)
	require.Equal(t, "operator", got.Username)
	require.Equal(t, "abc", got.AccessToken)
	require.Equal(t, testNow, got.LoginTime)

	stored, err := f.store.Read()
	require.NoError(t, err)
	require.Equal(t, got, stored)

	require.True(t, f.manager.IsAuthenticated())
	require.Equal(t, []bool{true}, f.notified)
	require.Equal(t, "operator", tokens.lastUsername)
}

func TestLoginFailureLeavesStoreUntouched(t *testing.T) {
	tokens := &fakeTokenClient{err: apperrors.ErrInvalidCredentials}
	f := setupTestFixture(t, fakestore.New(), tokens)

	_, err := f.manager.Login(context.Background(), "operator", "wrongpass")
	require.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	require.False(t, f.manager.IsAuthenticated())
	require.Zero(t, f.store.SaveCalls)
	require.Zero(t, f.store.ClearCalls)
	require.Empty(t, f.notified)
}

func TestLoginFailureKeepsExistingSession(t *testing.T) {
	existing := &session.Session{AccessToken: "still-good", Username: "operator", LoginTime: testNow}
	tokens := &fakeTokenClient{err: apperrors.ErrServerError}
	f := setupTestFixture(t, fakestore.NewWithSession(existing), tokens)

	_, err := f.manager.Login(context.Background(), "operator", "hunter2")
	require.ErrorIs(t, err, apperrors.ErrServerError)

	stored, readErr := f.store.Read()
	require.NoError(t, readErr)
	require.Equal(t, "still-good", stored.AccessToken)
	require.True(t, f.manager.IsAuthenticated())
}

func TestLoginRejectsBlankCredentials(t *testing.T) {
	tokens := &fakeTokenClient{token: &oauth2.Token{AccessToken: "abc"}}
	f := setupTestFixture(t, fakestore.New(), tokens)

	_, err := f.manager.Login(context.Background(), "   ", "hunter2")
	require.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = f.manager.Login(context.Background(), "operator", "")
	require.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	require.Zero(t, tokens.calls)
}

func TestLogoutClearsSessionAndNotifies(t *testing.T) {
	existing := &session.Session{AccessToken: "abc", Username: "operator", LoginTime: testNow}
	f := setupTestFixture(t, fakestore.NewWithSession(existing), &fakeTokenClient{})

	require.NoError(t, f.manager.Logout())
	require.False(t, f.manager.IsAuthenticated())
	require.Equal(t, []bool{false}, f.notified)
}

func TestLogoutIdempotent(t *testing.T) {
	f := setupTestFixture(t, fakestore.New(), &fakeTokenClient{})

	require.NoError(t, f.manager.Logout())
	require.NoError(t, f.manager.Logout())
	require.False(t, f.manager.IsAuthenticated())
}

func TestCurrentUserAnonymous(t *testing.T) {
	f := setupTestFixture(t, fakestore.New(), &fakeTokenClient{})

	_, ok := f.manager.CurrentUser()
	require.False(t, ok)
}

func TestCurrentUserAuthenticated(t *testing.T) {
	existing := &session.Session{
		AccessToken: "abc",
		TokenType:   "bearer",
		Username:    "operator",
		LoginTime:   testNow,
	}
	f := setupTestFixture(t, fakestore.NewWithSession(existing), &fakeTokenClient{})

	user, ok := f.manager.CurrentUser()
	require.True(t, ok)
	require.Equal(t, "operator", user.Username)
	require.Equal(t, "bearer", user.TokenType)
	require.Equal(t, testNow, user.LoginTime)
	require.Nil(t, user.ExpiresAt)
}

func TestAuthStateFollowsStore(t *testing.T) {
	// The manager derives state from the store on every read, so a session
	// cleared behind its back (the pipeline's 401 handling) is observed
	// immediately.
	existing := &session.Session{AccessToken: "abc", Username: "operator", LoginTime: testNow}
	store := fakestore.NewWithSession(existing)
	f := setupTestFixture(t, store, &fakeTokenClient{})

	require.True(t, f.manager.IsAuthenticated())
	require.NoError(t, store.Clear())
	require.False(t, f.manager.IsAuthenticated())
}
