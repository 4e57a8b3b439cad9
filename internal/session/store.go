// Package session keeps the signed-in state of the terminal client: the
// bearer token and a little user info, persisted between runs.
package session

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
)

// Fixed store keys.
const (
	KeyToken = "token"
	KeyUser  = "user"
)

// ErrMissing is returned by Store.Load for a key that was never saved.
var ErrMissing = errors.New("session: key not found")

// Store persists small JSON values by key.
type Store interface {
	Load(key string, v any) error
	Save(key string, v any) error
	Delete(key string) error
}

// FileStore keeps one JSON file per key inside Dir.
type FileStore struct {
	Dir string
}

// DefaultDir is OSCAR_SESSION_DIR, else oscar-explorer under the user
// config dir.
func DefaultDir() (string, error) {
	if d := os.Getenv("OSCAR_SESSION_DIR"); d != "" {
		return d, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "oscar-explorer"), nil
}

func NewFileStore(dir string) *FileStore { return &FileStore{Dir: dir} }

func (s *FileStore) path(key string) string {
	return filepath.Join(s.Dir, key+".json")
}

func (s *FileStore) Load(key string, v any) error {
	bs, err := os.ReadFile(s.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return ErrMissing
	}
	if err != nil {
		return err
	}
	if err := json.Unmarshal(bs, v); err != nil {
		return fmt.Errorf("session: decode %s: %w", key, err)
	}
	return nil
}

// Save writes through a temp file so a crash never leaves half a token.
func (s *FileStore) Save(key string, v any) error {
	bs, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.Dir, 0o700); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(s.Dir, key+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(bs); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.path(key))
}

func (s *FileStore) Delete(key string) error {
	err := os.Remove(s.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
