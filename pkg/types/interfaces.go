package types

import (
	"io/fs"
)

// FS is the filesystem interface required for rigup operations
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
	Chmod(name string, mode fs.FileMode) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)

	// Other operations
	Rename(oldpath, newpath string) error
	Remove(name string) error
	RemoveAll(path string) error
}

// Prompter collects secret input without echoing it back to the terminal
type Prompter interface {
	// PromptSecret displays the label and reads a line with echo suppressed.
	// The returned bytes are owned by the caller, which must zero them when
	// done.
	PromptSecret(label string) ([]byte, error)
}

// Confirmer asks the user a yes/no question
type Confirmer interface {
	Confirm(req ConfirmationRequest) (bool, error)
}
