package speech

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// LocalStore writes audio into a directory served as static files.
// Files are never removed.
type LocalStore struct {
	dir       string
	urlPrefix string
	now       func() time.Time
	newID     func() string
}

// NewLocalStore creates a store writing to dir, served under urlPrefix.
func NewLocalStore(dir, urlPrefix string) *LocalStore {
	return &LocalStore{
		dir:       dir,
		urlPrefix: "/" + strings.Trim(urlPrefix, "/"),
		now:       time.Now,
		newID:     func() string { return uuid.NewString()[:8] },
	}
}

// EnsureDir creates the public directory.
func (s *LocalStore) EnsureDir() error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating audio directory %s: %w", s.dir, err)
	}
	return nil
}

// Save writes audio as response_<unix-ms>_<id>.mp3. The random suffix keeps
// names unique for calls landing in the same millisecond.
func (s *LocalStore) Save(audio []byte) (string, error) {
	if err := s.EnsureDir(); err != nil {
		return "", err
	}

	name := fmt.Sprintf("response_%d_%s.mp3", s.now().UnixMilli(), s.newID())
	if err := os.WriteFile(filepath.Join(s.dir, name), audio, 0o644); err != nil {
		return "", fmt.Errorf("writing audio file: %w", err)
	}
	return path.Join(s.urlPrefix, name), nil
}
