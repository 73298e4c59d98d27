package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
)

// FileStorage persists credentials as a JSON object in a single file,
// created with 0600 permissions. Writes go through a temp file and rename
// so a crash never leaves a torn credentials file behind.
type FileStorage struct {
	path   string
	lock   sync.Mutex
	values map[string]string
}

var _ Storage = (*FileStorage)(nil)

// NewFileStorage loads (or initialises) the credentials file at path.
// An unreadable or corrupt file starts empty rather than failing: the
// worst case is that the operator has to log in again.
func NewFileStorage(path string) (*FileStorage, error) {
	if path == "" {
		return nil, errors.New("[NewFileStorage] path is required")
	}
	fs := &FileStorage{path: path, values: make(map[string]string)}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fs, nil
		}
		return nil, errors.Wrap(err, "[NewFileStorage] read credentials file")
	}
	if err := json.Unmarshal(data, &fs.values); err != nil {
		fs.values = make(map[string]string)
	}
	return fs, nil
}

func (fs *FileStorage) Get(key string) (string, bool) {
	fs.lock.Lock()
	defer fs.lock.Unlock()
	v, ok := fs.values[key]
	return v, ok
}

func (fs *FileStorage) Set(key, value string) error {
	fs.lock.Lock()
	defer fs.lock.Unlock()
	fs.values[key] = value
	return fs.persist()
}

func (fs *FileStorage) Delete(key string) error {
	fs.lock.Lock()
	defer fs.lock.Unlock()
	if _, ok := fs.values[key]; !ok {
		return nil
	}
	delete(fs.values, key)
	return fs.persist()
}

func (fs *FileStorage) persist() error {
	if err := os.MkdirAll(filepath.Dir(fs.path), 0o700); err != nil {
		return errors.Wrap(err, "[FileStorage.persist] mkdir")
	}
	data, err := json.MarshalIndent(fs.values, "", "  ")
	if err != nil {
		return errors.Wrap(err, "[FileStorage.persist] marshal")
	}
	tmp := fs.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return errors.Wrap(err, "[FileStorage.persist] write temp file")
	}
	if err := os.Rename(tmp, fs.path); err != nil {
		return errors.Wrap(err, "[FileStorage.persist] rename")
	}
	return nil
}
