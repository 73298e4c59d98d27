package session

import (
	"encoding/json"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Store is the single process-wide holder of the current Session. It caches
// the logged-in user in memory, persists the credential trio through a
// Storage, and pushes state changes to registered observers.
//
// Observers are invoked synchronously under the store's lock: a subscriber
// that sees two emissions sees them in the order the mutations were applied. On subscribe the latest value is replayed
// immediately. Observer callbacks must not call back into the Store.
type Store struct {
	storage Storage
	log     zerolog.Logger

	lock       sync.Mutex
	user       *User
	authed     bool
	nextSubID  int
	userSubs   map[int]func(*User)
	authedSubs map[int]func(bool)
}

// StoreOption defines a function type to modify the Store instance.
type StoreOption func(*Store)

// WithLogger sets the store's logger. Default is a no-op logger.
func WithLogger(log zerolog.Logger) StoreOption {
	return func(s *Store) {
		s.log = log
	}
}

// NewStore creates a Store backed by the given Storage and hydrates it from
// any persisted session: when both a token and a parsable user record are
// present the store starts authenticated; a corrupt user record triggers a
// full logout so no partially-hydrated state survives.
func NewStore(storage Storage, options ...StoreOption) (*Store, error) {
	if storage == nil {
		return nil, errors.New("[NewStore] storage is required")
	}
	s := &Store{
		storage:    storage,
		log:        zerolog.Nop(),
		userSubs:   make(map[int]func(*User)),
		authedSubs: make(map[int]func(bool)),
	}
	for _, opt := range options {
		opt(s)
	}
	s.hydrate()
	return s, nil
}

func (s *Store) hydrate() {
	token, hasToken := s.storage.Get(KeyAccessToken)
	raw, hasUser := s.storage.Get(KeyUser)
	if !hasToken || token == "" || !hasUser {
		return
	}

	var user User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		s.log.Err(err).Msg("Failed to parse stored user record")
		s.Clear()
		return
	}

	s.lock.Lock()
	defer s.lock.Unlock()
	s.setLocked(&user, true)
}

// CurrentUser returns the last emitted user, or nil when logged out.
func (s *Store) CurrentUser() *User {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.user
}

// Authenticated returns the last emitted authentication state.
func (s *Store) Authenticated() bool {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.authed
}

// SubscribeUser registers an observer for the current-user stream. The
// latest value is replayed before SubscribeUser returns. The returned
// cancel func unregisters the observer.
func (s *Store) SubscribeUser(fn func(*User)) (cancel func()) {
	s.lock.Lock()
	defer s.lock.Unlock()
	id := s.nextSubID
	s.nextSubID++
	s.userSubs[id] = fn
	fn(s.user)
	return func() {
		s.lock.Lock()
		defer s.lock.Unlock()
		delete(s.userSubs, id)
	}
}

// SubscribeAuth registers an observer for the is-authenticated stream, with
// the same replay and ordering semantics as SubscribeUser.
func (s *Store) SubscribeAuth(fn func(bool)) (cancel func()) {
	s.lock.Lock()
	defer s.lock.Unlock()
	id := s.nextSubID
	s.nextSubID++
	s.authedSubs[id] = fn
	fn(s.authed)
	return func() {
		s.lock.Lock()
		defer s.lock.Unlock()
		delete(s.authedSubs, id)
	}
}

// Token returns the persisted access token.
func (s *Store) Token() (string, bool) {
	token, ok := s.storage.Get(KeyAccessToken)
	if !ok || token == "" {
		return "", false
	}
	return token, true
}

// RefreshToken returns the persisted refresh token.
func (s *Store) RefreshToken() (string, bool) {
	token, ok := s.storage.Get(KeyRefreshToken)
	if !ok || token == "" {
		return "", false
	}
	return token, true
}

// SaveSession persists the full credential trio and emits the new user and
// authenticated=true. A persistence failure clears everything before
// returning, so storage is never left holding a partial session.
func (s *Store) SaveSession(accessToken, refreshToken string, user *User) error {
	if user == nil {
		return errors.New("[Store.SaveSession] user is required")
	}
	raw, err := json.Marshal(user)
	if err != nil {
		return errors.Wrap(err, "[Store.SaveSession] marshal user")
	}

	if err := s.writeAll(accessToken, refreshToken, string(raw)); err != nil {
		s.Clear()
		return err
	}

	s.lock.Lock()
	defer s.lock.Unlock()
	s.setLocked(user, true)
	return nil
}

// SaveTokens overwrites the persisted access token and, only when the
// backend issued one, the refresh token. The in-memory user is untouched.
func (s *Store) SaveTokens(accessToken, refreshToken string) error {
	if err := s.storage.Set(KeyAccessToken, accessToken); err != nil {
		s.Clear()
		return errors.Wrap(err, "[Store.SaveTokens] persist access token")
	}
	if refreshToken != "" {
		if err := s.storage.Set(KeyRefreshToken, refreshToken); err != nil {
			s.Clear()
			return errors.Wrap(err, "[Store.SaveTokens] persist refresh token")
		}
	}
	return nil
}

// Clear removes the persisted credential trio and emits nil/false. It is
// idempotent and never fails: storage delete errors are logged and the
// in-memory state is cleared regardless.
func (s *Store) Clear() {
	for _, key := range []string{KeyAccessToken, KeyRefreshToken, KeyUser} {
		if err := s.storage.Delete(key); err != nil {
			s.log.Err(err).Str("key", key).Msg("Failed to delete credential")
		}
	}

	s.lock.Lock()
	defer s.lock.Unlock()
	s.setLocked(nil, false)
}

func (s *Store) writeAll(accessToken, refreshToken, user string) error {
	if err := s.storage.Set(KeyAccessToken, accessToken); err != nil {
		return errors.Wrap(err, "[Store.writeAll] persist access token")
	}
	if err := s.storage.Set(KeyRefreshToken, refreshToken); err != nil {
		return errors.Wrap(err, "[Store.writeAll] persist refresh token")
	}
	if err := s.storage.Set(KeyUser, user); err != nil {
		return errors.Wrap(err, "[Store.writeAll] persist user record")
	}
	return nil
}

// setLocked applies the mutation and notifies observers. Repeated clears
// (two concurrent 401s, a 401 followed by an explicit logout) settle on the
// same terminal state without re-emitting it. Callers hold s.lock.
func (s *Store) setLocked(user *User, authed bool) {
	userChanged := user != s.user
	authedChanged := authed != s.authed
	s.user = user
	s.authed = authed
	if userChanged {
		for _, fn := range s.userSubs {
			fn(user)
		}
	}
	if authedChanged {
		for _, fn := range s.authedSubs {
			fn(authed)
		}
	}
}
