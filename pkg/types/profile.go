package types

// ProfileMutation describes a single line that should be present in a shell
// profile file. Stages return mutations as data instead of editing profile
// files themselves; the driver applies them in one place and tests can assert
// on the produced set without touching a real profile.
type ProfileMutation struct {
	// File is the absolute path of the profile file to change
	File string

	// Line is the exact line that must be present in the file
	Line string

	// Reason is a short human explanation, written as a comment above the
	// line when it is added
	Reason string
}

// Key returns a stable identity for deduplication
func (m ProfileMutation) Key() string {
	return m.File + "\x00" + m.Line
}
