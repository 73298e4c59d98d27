package storagefakes

import (
	"sync"

	"github.com/vendaro/admin-console/session"
)

var _ session.Storage = (*FakeStorage)(nil)

// FakeStorage is an in-memory Storage for tests.
type FakeStorage struct {
	values map[string]string
	lock   sync.RWMutex

	// SetErr, when non-nil, is returned by the next Set call. Used to
	// exercise partial-write rollback.
	SetErr error
}

func NewFakeStorage() *FakeStorage {
	return &FakeStorage{values: make(map[string]string)}
}

func (fs *FakeStorage) Get(key string) (string, bool) {
	fs.lock.RLock()
	defer fs.lock.RUnlock()
	v, ok := fs.values[key]
	return v, ok
}

func (fs *FakeStorage) Set(key, value string) error {
	fs.lock.Lock()
	defer fs.lock.Unlock()
	if fs.SetErr != nil {
		err := fs.SetErr
		fs.SetErr = nil
		return err
	}
	fs.values[key] = value
	return nil
}

func (fs *FakeStorage) Delete(key string) error {
	fs.lock.Lock()
	defer fs.lock.Unlock()
	delete(fs.values, key)
	return nil
}

// Len reports the number of stored keys.
func (fs *FakeStorage) Len() int {
	fs.lock.RLock()
	defer fs.lock.RUnlock()
	return len(fs.values)
}
