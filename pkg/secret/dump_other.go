//go:build !linux

package secret

// excludeFromDumps is a no-op here: only Linux offers per-mapping dump
// exclusion, and macOS does not write core dumps unless explicitly enabled.
func excludeFromDumps(data []byte) error {
	return nil
}
