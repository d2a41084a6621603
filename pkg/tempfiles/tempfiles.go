// Package tempfiles supplies uniquely named temporary files to spillover
// buffers. The package only creates files; deleting them when a request or
// job finishes is the caller's responsibility, typically via RemoveAll on a
// per-scope directory.
package tempfiles

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/textbuf/textbuf/internal/common/uuid"
)

// TempFile is a handle to a created temporary file.
type TempFile struct {
	path string
}

// Path returns the file's path on disk.
func (t *TempFile) Path() string {
	return t.path
}

// String returns the path for diagnostics.
func (t *TempFile) String() string {
	return t.path
}

// Provider creates temporary files on demand.
type Provider interface {
	Create() (*TempFile, error)
}

// DirProvider creates uuid-named files under a fixed directory.
type DirProvider struct {
	dir    string
	prefix string
}

// NewDirProvider returns a provider rooted at dir. An empty dir means the
// system temp directory.
func NewDirProvider(dir string) *DirProvider {
	if dir == "" {
		dir = os.TempDir()
	}
	return &DirProvider{dir: dir, prefix: "textbuf-"}
}

// Create makes a new empty file and returns its handle.
func (p *DirProvider) Create() (*TempFile, error) {
	path := filepath.Join(p.dir, p.prefix+uuid.New().String()+".utf16")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
	if err != nil {
		return nil, errors.Wrap(err, "creating temp file")
	}
	if err := f.Close(); err != nil {
		return nil, errors.Wrap(err, "closing temp file")
	}
	return &TempFile{path: path}, nil
}
