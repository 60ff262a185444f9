package secret

import (
	"golang.org/x/sys/unix"
)

// excludeFromDumps marks the mapping so the kernel leaves it out of core
// dumps.
func excludeFromDumps(data []byte) error {
	return unix.Madvise(data, unix.MADV_DONTDUMP)
}
