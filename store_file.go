package auth

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/hashid/pkg/hashid"
)

// FileTokenStore keeps the raw token in a file under the user config
// directory. The file name is a deterministic UUID derived from the API
// origin so clients of different environments never clobber each other's
// credentials.
type FileTokenStore struct {
	path string
}

var _ TokenStore = (*FileTokenStore)(nil)

// FileTokenStoreOption customizes a FileTokenStore
type FileTokenStoreOption func(*FileTokenStore)

// WithStorePath overrides the resolved token file path (useful for tests)
func WithStorePath(path string) FileTokenStoreOption {
	return func(f *FileTokenStore) {
		f.path = path
	}
}

// NewFileTokenStore resolves the token file for the given API origin.
// When no durable location is available (no resolvable config dir) the
// store degrades to a no-op: writes are skipped and reads find no token.
func NewFileTokenStore(origin string, opts ...FileTokenStoreOption) *FileTokenStore {
	f := &FileTokenStore{
		path: resolveTokenPath(origin),
	}

	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}

	return f
}

func resolveTokenPath(origin string) string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}

	name := "default"
	if id, err := hashid.NewUUID(strings.TrimSpace(origin)); err == nil {
		name = id.String()
	}

	return filepath.Join(dir, "appquilar", name+".token")
}

func (f *FileTokenStore) Write(token string) error {
	if f.path == "" {
		return errors.New("no durable storage location available")
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(f.path, []byte(token), 0o600)
}

func (f *FileTokenStore) Read() (string, bool, error) {
	if f.path == "" {
		return "", false, nil
	}

	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, err
	}

	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", false, nil
	}

	return token, true, nil
}

func (f *FileTokenStore) Delete() error {
	if f.path == "" {
		return nil
	}
	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
