package credentials

import (
	"errors"
	"io/fs"
	"sync"

	rigerrors "github.com/joeldee/rigup/pkg/errors"
	"github.com/joeldee/rigup/pkg/types"
)

// Guard owns the persisted vault passphrase file. The delegated automation
// tool reads the file during the run; the driver finalizer calls Remove on
// every exit path, so the file never outlives the process.
type Guard struct {
	fs   types.FS
	path string

	mu      sync.Mutex
	removed bool
}

// NewGuard creates a guard for an already-written passphrase file
func NewGuard(filesystem types.FS, path string) *Guard {
	return &Guard{fs: filesystem, path: path}
}

// Path returns the passphrase file location
func (g *Guard) Path() string {
	return g.path
}

// Remove deletes the passphrase file. It is idempotent and treats an
// already-missing file as success, so the finalizer can call it after an
// earlier cleanup without error.
func (g *Guard) Remove() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.removed {
		return nil
	}

	if err := g.fs.Remove(g.path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			g.removed = true
			return nil
		}
		return rigerrors.Wrapf(err, rigerrors.ErrFileAccess,
			"failed to remove vault passphrase file %s", g.path)
	}

	g.removed = true
	return nil
}

// Removed reports whether the passphrase file is gone
func (g *Guard) Removed() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.removed
}
