package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// PublicPrefix is the URL path local uploads are served under.
const PublicPrefix = "/uploads"

type Local struct {
	dir    string
	prefix string
}

func NewLocal(dir, prefix string) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Local{dir: dir, prefix: strings.TrimSuffix(prefix, "/")}, nil
}

func (l *Local) Dir() string {
	return l.dir
}

func (l *Local) Put(_ context.Context, key string, body []byte, _ string) (string, error) {
	if err := os.WriteFile(filepath.Join(l.dir, filepath.Base(key)), body, 0o644); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}
	return l.prefix + "/" + path.Base(key), nil
}

// Delete ignores URLs outside the upload prefix and files already gone.
func (l *Local) Delete(_ context.Context, url string) error {
	key, ok := strings.CutPrefix(url, l.prefix+"/")
	if !ok || key == "" {
		return nil
	}
	err := os.Remove(filepath.Join(l.dir, filepath.Base(key)))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
