package localstore

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// FileKV implements the cart store's KV port on the local filesystem:
// one file per key under Dir. It is the server-side stand-in for the
// browser-profile storage the cart contract was written against.
//
// Writers are not coordinated; like the browser storage it mimics, the last
// writer wins.
type FileKV struct {
	Dir string
}

func NewFileKV(dir string) (*FileKV, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, errors.New("localstore: dir is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileKV{Dir: dir}, nil
}

// Get returns ("", false, nil) when the key is absent.
func (s *FileKV) Get(key string) (string, bool, error) {
	if s == nil || strings.TrimSpace(key) == "" {
		return "", false, errors.New("localstore: key is empty")
	}

	b, err := os.ReadFile(s.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, err
	}
	return string(b), true, nil
}

// Set writes value atomically (temp file + rename) so a crashed write never
// leaves a torn payload for the next rehydrate.
func (s *FileKV) Set(key, value string) error {
	if s == nil || strings.TrimSpace(key) == "" {
		return errors.New("localstore: key is empty")
	}

	dst := s.path(key)
	tmp := dst + ".tmp"
	if err := os.WriteFile(tmp, []byte(value), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, dst)
}

func (s *FileKV) path(key string) string {
	// keys are storage keys, not paths; flatten anything path-like
	safe := strings.NewReplacer("/", "_", "\\", "_", "..", "_").Replace(strings.TrimSpace(key))
	return filepath.Join(s.Dir, safe+".json")
}
