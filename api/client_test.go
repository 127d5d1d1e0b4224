package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rentdesk/rentdesk/api"
	apperrors "github.com/rentdesk/rentdesk/internal/errors"
	"github.com/rentdesk/rentdesk/session"
	fakestore "github.com/rentdesk/rentdesk/session/storefakes"
)

const (
	testToken  = "token-t1"
	newerToken = "token-t2"
)

// recordingRedirector captures the pipeline's login redirects.
type recordingRedirector struct {
	lock  sync.Mutex
	calls []string
}

func (r *recordingRedirector) RedirectToLogin(from string) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.calls = append(r.calls, from)
}

func (r *recordingRedirector) redirects() []string {
	r.lock.Lock()
	defer r.lock.Unlock()
	return append([]string(nil), r.calls...)
}

func seededStore() *fakestore.FakeStore {
	return fakestore.NewWithSession(&session.Session{
		AccessToken: testToken,
		TokenType:   "bearer",
		Username:    "operator",
		LoginTime:   time.Now(),
	})
}

func TestBearerTokenAttached(t *testing.T) {
	var gotAuthorization string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuthorization = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := api.New(server.URL+"/api", seededStore())

	_, err := client.Vehicles(context.Background(), api.VehicleFilter{})
	require.NoError(t, err)
	require.Equal(t, "Bearer "+testToken, gotAuthorization)
}

func TestAnonymousRequestOmitsAuthorization(t *testing.T) {
	var gotAuthorization string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuthorization = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := api.New(server.URL+"/api", fakestore.New())

	_, err := client.Vehicles(context.Background(), api.VehicleFilter{})
	require.NoError(t, err)
	require.Empty(t, gotAuthorization)
}

func TestRedundantAPIPrefixDeduplicated(t *testing.T) {
	var gotPaths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPaths = append(gotPaths, r.URL.Path)
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := api.New(server.URL+"/api", seededStore())

	var out []api.Vehicle
	require.NoError(t, client.Get(context.Background(), "/vehicles/", &out))
	require.NoError(t, client.Get(context.Background(), "/api/vehicles/", &out))

	// Root-relative and prefixed spellings reach the same endpoint.
	require.Equal(t, []string{"/api/vehicles/", "/api/vehicles/"}, gotPaths)
}

func TestUnauthorizedClearsSessionAndRedirectsOnce(t *testing.T) {
	var hits int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	store := seededStore()
	redirector := &recordingRedirector{}
	client := api.New(server.URL+"/api", store, api.WithRedirector(redirector))

	_, err := client.Rentals(context.Background(), api.RentalFilter{Status: api.RentalOngoing})
	require.ErrorIs(t, err, apperrors.ErrSessionExpired)

	// The caller still observes the failure, the session is gone, the
	// navigator was told once, and there was no automatic retry.
	require.Equal(t, 1, hits)
	require.Equal(t, 1, store.ClearCalls)
	current, readErr := store.Read()
	require.NoError(t, readErr)
	require.Nil(t, current)
	require.Equal(t, []string{"/rentals/?status=ongoing"}, redirector.redirects())
}

func TestUnauthorizedKeepsSessionEstablishedConcurrently(t *testing.T) {
	store := seededStore()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// A fresh login completes while this request is in flight.
		require.NoError(t, store.Save(&session.Session{
			AccessToken: newerToken,
			TokenType:   "bearer",
			Username:    "operator",
			LoginTime:   time.Now(),
		}))
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	redirector := &recordingRedirector{}
	client := api.New(server.URL+"/api", store, api.WithRedirector(redirector))

	_, err := client.Vehicles(context.Background(), api.VehicleFilter{})
	require.ErrorIs(t, err, apperrors.ErrSessionExpired)

	// The stale 401 must not discard the newer session or force a detour.
	current, readErr := store.Read()
	require.NoError(t, readErr)
	require.NotNil(t, current)
	require.Equal(t, newerToken, current.AccessToken)
	require.Empty(t, redirector.redirects())
}

func TestNotFoundMapsToErrNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail":"Vehicle not found"}`))
	}))
	defer server.Close()

	client := api.New(server.URL+"/api", seededStore())

	err := client.DeleteVehicle(context.Background(), "NOPE")
	require.ErrorIs(t, err, apperrors.ErrNotFound)
	require.Contains(t, err.Error(), "Vehicle not found")
}

func TestServerFailureMapsToErrServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"detail":"boom"}`))
	}))
	defer server.Close()

	client := api.New(server.URL+"/api", seededStore())

	_, err := client.Customers(context.Background())
	require.ErrorIs(t, err, apperrors.ErrServerError)
}

func TestTypedEndpointEncodesBodyAndDecodesResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/rentals/42/return", r.URL.Path)

		var body api.RentalClose
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "2025-06-03T18:00:00", body.ActualReturnDatetime)
		require.Equal(t, 25.0, body.AdditionalCharges)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(api.Rental{RentalID: 42, Status: api.RentalCompleted})
	}))
	defer server.Close()

	client := api.New(server.URL+"/api", seededStore())

	closed, err := client.ReturnVehicle(context.Background(), 42, api.RentalClose{
		ActualReturnDatetime: "2025-06-03T18:00:00",
		AdditionalCharges:    25,
	})
	require.NoError(t, err)
	require.Equal(t, 42, closed.RentalID)
	require.Equal(t, api.RentalCompleted, closed.Status)
}
