package auth_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"github.com/vendaro/admin-console/api"
	"github.com/vendaro/admin-console/auth"
	"github.com/vendaro/admin-console/session"
	"github.com/vendaro/admin-console/session/storagefakes"
)

var testUser = session.User{
	ID:    "u1",
	Name:  "Ann",
	Email: "a@b.com",
	Role:  "admin",
}

// testFixture holds all test dependencies
type testFixture struct {
	storage  *storagefakes.FakeStorage
	store    *session.Store
	service  *auth.Service
	server   *httptest.Server
	requests []recordedRequest
}

type recordedRequest struct {
	Method string
	Path   string
	Body   map[string]any
}

// setupTestFixture wires a store, transport, and lifecycle service against
// the given backend handler, recording every request the backend sees.
func setupTestFixture(t *testing.T, handler http.HandlerFunc) *testFixture {
	t.Helper()

	f := &testFixture{storage: storagefakes.NewFakeStorage()}

	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recordedRequest{Method: r.Method, Path: r.URL.Path}
		if r.Body != nil {
			_ = json.NewDecoder(r.Body).Decode(&rec.Body)
		}
		f.requests = append(f.requests, rec)
		handler(w, r)
	}))
	t.Cleanup(f.server.Close)

	store, err := session.NewStore(f.storage)
	require.NoError(t, err)
	f.store = store

	client := api.New(f.server.URL, api.WithCredentials(store))
	service, err := auth.NewService(client, store)
	require.NoError(t, err)
	f.service = service

	return f
}

func (f *testFixture) seedSession(t *testing.T, accessToken, refreshToken string) {
	t.Helper()
	require.NoError(t, f.store.SaveSession(accessToken, refreshToken, &testUser))
}

func respondJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestNewService_RequiredDependencies(t *testing.T) {
	storage := storagefakes.NewFakeStorage()
	store, err := session.NewStore(storage)
	require.NoError(t, err)
	client := api.New("http://localhost")

	_, err = auth.NewService(nil, store)
	require.Error(t, err)

	_, err = auth.NewService(client, nil)
	require.Error(t, err)
}

func TestService_Login(t *testing.T) {
	t.Run("success persists the trio and emits the user", func(t *testing.T) {
		f := setupTestFixture(t, func(w http.ResponseWriter, r *http.Request) {
			respondJSON(t, w, auth.LoginResponse{
				AccessToken:  "T1",
				RefreshToken: "R1",
				User:         &testUser,
			})
		})

		var emittedUsers []*session.User
		var emittedAuth []bool
		f.store.SubscribeUser(func(u *session.User) { emittedUsers = append(emittedUsers, u) })
		f.store.SubscribeAuth(func(b bool) { emittedAuth = append(emittedAuth, b) })

		resp, err := f.service.Login(context.Background(), "a@b.com", "x")
		require.NoError(t, err)

		require.Equal(t, "T1", resp.AccessToken)
		require.Equal(t, testUser, *resp.User)

		token, _ := f.storage.Get(session.KeyAccessToken)
		require.Equal(t, "T1", token)
		refresh, _ := f.storage.Get(session.KeyRefreshToken)
		require.Equal(t, "R1", refresh)

		require.Equal(t, []*session.User{nil, &testUser}, emittedUsers)
		require.Equal(t, []bool{false, true}, emittedAuth)
		require.Equal(t, testUser, *f.store.CurrentUser())
	})

	t.Run("account type is always forced to admin", func(t *testing.T) {
		f := setupTestFixture(t, func(w http.ResponseWriter, r *http.Request) {
			respondJSON(t, w, auth.LoginResponse{AccessToken: "T1", RefreshToken: "R1", User: &testUser})
		})

		_, err := f.service.Login(context.Background(), "a@b.com", "x")
		require.NoError(t, err)

		require.Len(t, f.requests, 1)
		require.Equal(t, http.MethodPost, f.requests[0].Method)
		require.Equal(t, "/auth/login", f.requests[0].Path)
		require.Equal(t, "admin", f.requests[0].Body["type"])
	})

	t.Run("failure leaves the session untouched", func(t *testing.T) {
		f := setupTestFixture(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			respondJSON(t, w, map[string]string{"message": "invalid credentials"})
		})
		f.seedSession(t, "T-old", "R-old")

		_, err := f.service.Login(context.Background(), "a@b.com", "wrong")

		require.EqualError(t, err, "invalid credentials")
		token, _ := f.storage.Get(session.KeyAccessToken)
		require.Equal(t, "T-old", token)
		require.True(t, f.store.Authenticated())
	})

	t.Run("response without a token mutates nothing", func(t *testing.T) {
		f := setupTestFixture(t, func(w http.ResponseWriter, r *http.Request) {
			respondJSON(t, w, map[string]string{"status": "mfa_required"})
		})

		_, err := f.service.Login(context.Background(), "a@b.com", "x")
		require.NoError(t, err)
		require.False(t, f.store.Authenticated())
		require.Zero(t, f.storage.Len())
	})
}

func TestService_Logout(t *testing.T) {
	f := setupTestFixture(t, func(w http.ResponseWriter, r *http.Request) {})
	f.seedSession(t, "T1", "R1")

	f.service.Logout()
	f.service.Logout() // idempotent

	require.Zero(t, f.storage.Len())
	require.False(t, f.store.Authenticated())
	require.Nil(t, f.store.CurrentUser())
	require.Empty(t, f.requests, "logout is purely local")
}

func TestService_RefreshToken(t *testing.T) {
	t.Run("no refresh token fails locally and clears the session", func(t *testing.T) {
		f := setupTestFixture(t, func(w http.ResponseWriter, r *http.Request) {})

		_, err := f.service.RefreshToken(context.Background())

		require.EqualError(t, err, "No refresh token available")
		require.Zero(t, f.storage.Len())
		require.Empty(t, f.requests, "backend must not be called")
	})

	t.Run("success without a new refresh token keeps the old one", func(t *testing.T) {
		f := setupTestFixture(t, func(w http.ResponseWriter, r *http.Request) {
			respondJSON(t, w, map[string]string{"access_token": "T2"})
		})
		f.seedSession(t, "T1", "R1")

		resp, err := f.service.RefreshToken(context.Background())
		require.NoError(t, err)
		require.Equal(t, "T2", resp.AccessToken)

		token, _ := f.storage.Get(session.KeyAccessToken)
		require.Equal(t, "T2", token)
		refresh, _ := f.storage.Get(session.KeyRefreshToken)
		require.Equal(t, "R1", refresh, "old refresh token retained")
	})

	t.Run("success with a new refresh token replaces it", func(t *testing.T) {
		f := setupTestFixture(t, func(w http.ResponseWriter, r *http.Request) {
			respondJSON(t, w, map[string]string{"access_token": "T2", "refresh_token": "R2"})
		})
		f.seedSession(t, "T1", "R1")

		_, err := f.service.RefreshToken(context.Background())
		require.NoError(t, err)

		refresh, _ := f.storage.Get(session.KeyRefreshToken)
		require.Equal(t, "R2", refresh)
	})

	t.Run("sends the stored refresh token to the backend", func(t *testing.T) {
		f := setupTestFixture(t, func(w http.ResponseWriter, r *http.Request) {
			respondJSON(t, w, map[string]string{"access_token": "T2"})
		})
		f.seedSession(t, "T1", "R1")

		_, err := f.service.RefreshToken(context.Background())
		require.NoError(t, err)

		require.Len(t, f.requests, 1)
		require.Equal(t, "/auth/refresh", f.requests[0].Path)
		require.Equal(t, "R1", f.requests[0].Body["refresh_token"])
	})

	t.Run("backend failure logs out and propagates", func(t *testing.T) {
		f := setupTestFixture(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			respondJSON(t, w, map[string]string{"message": "refresh token revoked"})
		})
		f.seedSession(t, "T1", "R1")

		_, err := f.service.RefreshToken(context.Background())

		require.EqualError(t, err, "refresh token revoked")
		require.Zero(t, f.storage.Len())
		require.False(t, f.store.Authenticated())
	})
}

func TestService_ValidateToken(t *testing.T) {
	t.Run("no token fails locally and clears the session", func(t *testing.T) {
		f := setupTestFixture(t, func(w http.ResponseWriter, r *http.Request) {})

		ok, err := f.service.ValidateToken(context.Background())

		require.False(t, ok)
		require.EqualError(t, err, "No token available")
		require.Empty(t, f.requests, "backend must not be called")
	})

	t.Run("success resolves true with no mutation", func(t *testing.T) {
		f := setupTestFixture(t, func(w http.ResponseWriter, r *http.Request) {
			respondJSON(t, w, testUser)
		})
		f.seedSession(t, "T1", "R1")

		ok, err := f.service.ValidateToken(context.Background())

		require.NoError(t, err)
		require.True(t, ok)
		require.True(t, f.store.Authenticated())
		require.Len(t, f.requests, 1)
		require.Equal(t, http.MethodGet, f.requests[0].Method)
		require.Equal(t, "/auth/me", f.requests[0].Path)
	})

	t.Run("401 logs out and propagates the session-expired error", func(t *testing.T) {
		f := setupTestFixture(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})
		f.seedSession(t, "T1", "R1")

		var emittedAuth []bool
		f.store.SubscribeAuth(func(b bool) { emittedAuth = append(emittedAuth, b) })

		ok, err := f.service.ValidateToken(context.Background())

		require.False(t, ok)
		require.EqualError(t, err, "Session expired. Please login again.")
		require.Zero(t, f.storage.Len())
		require.Equal(t, []bool{true, false}, emittedAuth)
		require.Nil(t, f.store.CurrentUser())
	})

	t.Run("non-401 failure propagates without teardown", func(t *testing.T) {
		f := setupTestFixture(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
		f.seedSession(t, "T1", "R1")

		ok, err := f.service.ValidateToken(context.Background())

		require.False(t, ok)
		require.EqualError(t, err, "Error Code: 503")
		require.True(t, f.store.Authenticated())
		token, _ := f.storage.Get(session.KeyAccessToken)
		require.Equal(t, "T1", token)
	})
}

func TestService_IsTokenExpired(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("no stored token counts as expired", func(t *testing.T) {
		f := setupTestFixture(t, func(w http.ResponseWriter, r *http.Request) {})
		svc, err := auth.NewService(api.New(f.server.URL), f.store, auth.WithNowTime(func() time.Time { return now }))
		require.NoError(t, err)

		require.True(t, svc.IsTokenExpired())
	})

	t.Run("valid stored token", func(t *testing.T) {
		f := setupTestFixture(t, func(w http.ResponseWriter, r *http.Request) {})
		token := mintToken(t, jwtlib.MapClaims{"exp": now.Add(time.Hour).Unix()})
		f.seedSession(t, token, "R1")

		svc, err := auth.NewService(api.New(f.server.URL), f.store, auth.WithNowTime(func() time.Time { return now }))
		require.NoError(t, err)

		require.False(t, svc.IsTokenExpired())
	})

	t.Run("undecodable stored token counts as expired", func(t *testing.T) {
		f := setupTestFixture(t, func(w http.ResponseWriter, r *http.Request) {})
		f.seedSession(t, "not-a-jwt", "R1")

		require.True(t, f.service.IsTokenExpired())
	})
}

func TestService_UnauthorizedOnAnyCall(t *testing.T) {
	// A 401 from a feature endpoint, not just the auth probes, tears the
	// session down through the transport chain.
	f := setupTestFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	f.seedSession(t, "T1", "R1")

	var emittedUsers []*session.User
	f.store.SubscribeUser(func(u *session.User) { emittedUsers = append(emittedUsers, u) })

	client := api.New(f.server.URL, api.WithCredentials(f.store))
	err := client.Get(context.Background(), "/orders", nil, nil)

	require.EqualError(t, err, "Session expired. Please login again.")
	require.Equal(t, []*session.User{&testUser, nil}, emittedUsers)
	require.False(t, f.store.Authenticated())
	require.Zero(t, f.storage.Len())
}
