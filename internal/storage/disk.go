package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// DiskStore keeps raw uploads under a local directory.
type DiskStore struct {
	dir string
}

func NewDiskStore(dir string) *DiskStore {
	return &DiskStore{dir: dir}
}

func (store *DiskStore) Save(ctx context.Context, filename string, content []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(store.dir, 0o755); err != nil {
		return "", errors.Wrap(err, "create upload directory")
	}

	path := filepath.Join(store.dir, objectName(filename))
	if err := os.WriteFile(path, content, 0o600); err != nil {
		return "", errors.Wrap(err, "write upload")
	}
	return path, nil
}

// objectName prefixes the sanitised client filename with a random id so
// repeated uploads of the same file never overwrite each other.
func objectName(filename string) string {
	base := filepath.Base(strings.ReplaceAll(filename, "\\", "/"))
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, base)
	if base == "" || base == "." || base == ".." {
		base = "upload"
	}
	return uuid.NewString() + "_" + base
}
