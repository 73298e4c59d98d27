// Package auth implements the session lifecycle: login, logout, token
// refresh, validation-by-probe, and the local token expiry check.
package auth

import (
	"context"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/vendaro/admin-console/api"
	apierrors "github.com/vendaro/admin-console/internal/errors"
	"github.com/vendaro/admin-console/session"
)

// accountType is forced on every login request: this console only ever
// authenticates administrators.
const accountType = "admin"

// LoginRequest carries the credentials sent to /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Type     string `json:"type"`
}

// LoginResponse is the raw shape returned by /auth/login and /auth/refresh.
// A refresh response may omit refresh_token, in which case the previously
// stored one stays valid.
type LoginResponse struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	User         *session.User `json:"user"`
}

// Service provides the operations that create, refresh, validate, and
// destroy a Session.
type Service struct {
	client  *api.Client
	store   *session.Store
	log     zerolog.Logger
	nowTime func() time.Time // nowTime function (injectable for testing)
}

// ServiceOption defines a function type to modify the Service instance.
type ServiceOption func(*Service)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) ServiceOption {
	return func(s *Service) {
		s.nowTime = nowFunc
	}
}

// WithLogger sets the service's logger. Default is a no-op logger.
func WithLogger(log zerolog.Logger) ServiceOption {
	return func(s *Service) {
		s.log = log
	}
}

// NewService initializes a Service with required dependencies.
func NewService(client *api.Client, store *session.Store, options ...ServiceOption) (*Service, error) {
	if client == nil {
		return nil, errors.New("[NewService] api client is required")
	}
	if store == nil {
		return nil, errors.New("[NewService] session store is required")
	}

	s := &Service{
		client:  client,
		store:   store,
		log:     zerolog.Nop(),
		nowTime: time.Now,
	}
	for _, opt := range options {
		opt(s)
	}
	return s, nil
}

// Login exchanges credentials for a session. The account type is always
// forced to "admin" regardless of caller input. On success the credential
// trio is persisted and the store emits the new user; on failure the
// existing session is left untouched.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	req := LoginRequest{Email: email, Password: password, Type: accountType}

	var resp LoginResponse
	if err := s.client.Post(ctx, "/auth/login", req, &resp); err != nil {
		s.log.Err(err).Str("email", email).Msg("Login failed")
		return nil, err
	}

	if resp.AccessToken != "" {
		if err := s.store.SaveSession(resp.AccessToken, resp.RefreshToken, resp.User); err != nil {
			return nil, errors.Wrap(err, "[Service.Login] persist session")
		}
	}
	return &resp, nil
}

// Logout clears the persisted credential trio and the in-memory session.
// Idempotent; never fails.
func (s *Service) Logout() {
	s.store.Clear()
}

// RefreshToken exchanges the persisted refresh token for a new access
// token. With no refresh token stored it logs out and fails locally without
// contacting the backend. A backend failure also logs out. On success the
// stored refresh token is only replaced when the response carries a new one.
func (s *Service) RefreshToken(ctx context.Context) (*LoginResponse, error) {
	refreshToken, ok := s.store.RefreshToken()
	if !ok {
		s.Logout()
		return nil, apierrors.ErrNoRefreshToken
	}

	var resp LoginResponse
	body := map[string]string{"refresh_token": refreshToken}
	if err := s.client.Post(ctx, "/auth/refresh", body, &resp); err != nil {
		s.log.Err(err).Msg("Token refresh failed")
		s.Logout()
		return nil, err
	}

	if resp.AccessToken != "" {
		if err := s.store.SaveTokens(resp.AccessToken, resp.RefreshToken); err != nil {
			return nil, errors.Wrap(err, "[Service.RefreshToken] persist tokens")
		}
	}
	return &resp, nil
}

// ValidateToken probes /auth/me with the current access token. With no
// token stored it logs out and fails locally. A 401 from the probe logs out
// in addition to propagating the error; any other failure propagates with
// the session left untouched.
func (s *Service) ValidateToken(ctx context.Context) (bool, error) {
	if _, ok := s.store.Token(); !ok {
		s.Logout()
		return false, apierrors.ErrNoAccessToken
	}

	if err := s.client.Get(ctx, "/auth/me", nil, nil); err != nil {
		if api.StatusCode(err) == http.StatusUnauthorized {
			s.log.Warn().Msg("Token validation failed - logging out")
			s.Logout()
		}
		return false, err
	}
	return true, nil
}

// IsTokenExpired checks the persisted access token's exp claim locally,
// without a network call. A missing or undecodable token counts as expired.
func (s *Service) IsTokenExpired() bool {
	token, ok := s.store.Token()
	if !ok {
		return true
	}
	return TokenExpired(token, s.nowTime())
}
