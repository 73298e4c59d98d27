package api

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// CredentialSource is the transport's view of the session: where bearer
// tokens come from, and what to tear down when the backend says the
// session is no longer valid.
type CredentialSource interface {
	// Token returns the current access token. The second return is false
	// when no token is held, in which case no Authorization header is sent.
	Token() (string, bool)

	// Clear destroys the whole persisted session. Must be idempotent and
	// safe to call concurrently.
	Clear()
}

// authTransport is the single choke point every outgoing request passes
// through. It attaches the bearer token and a request ID, and watches
// responses for authorization failures: a 401 tears the session down and
// fires the expiry hook exactly once per failing response, no matter which
// call site issued the request.
type authTransport struct {
	base      http.RoundTripper
	creds     CredentialSource
	onExpired func()
	log       zerolog.Logger
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("X-Request-ID", uuid.NewString())
	if t.creds != nil {
		if token, ok := t.creds.Token(); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		t.log.Warn().Str("path", req.URL.Path).Msg("401 Unauthorized - clearing session")
		if t.creds != nil {
			t.creds.Clear()
		}
		if t.onExpired != nil {
			t.onExpired()
		}
	}
	return resp, nil
}
