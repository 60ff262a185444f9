// Package profile puts the lines the bootstrap needs into shell profile
// files. Stages describe what they need as ProfileMutation values; Apply
// makes each line present exactly once, so a re-run leaves an already
// configured profile untouched.
package profile

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	rigerrors "github.com/joeldee/rigup/pkg/errors"
	"github.com/joeldee/rigup/pkg/logging"
	"github.com/joeldee/rigup/pkg/types"
)

// ProfileMode is the mode for a profile file Apply has to create
const ProfileMode = 0o644

// Apply ensures every mutation's line is present in its profile file,
// creating the file when it does not exist. It returns the mutations that
// were actually added; lines already present are skipped.
func Apply(fsys types.FS, mutations []types.ProfileMutation) ([]types.ProfileMutation, error) {
	log := logging.GetLogger("profile")

	var applied []types.ProfileMutation
	for _, file := range fileOrder(mutations) {
		added, err := applyToFile(fsys, file, forFile(mutations, file))
		if err != nil {
			return applied, err
		}
		for _, mutation := range added {
			log.Info().Str("file", mutation.File).Str("line", mutation.Line).Msg("Added profile line")
		}
		applied = append(applied, added...)
	}
	return applied, nil
}

// applyToFile rewrites one profile file with the missing lines appended
func applyToFile(fsys types.FS, file string, mutations []types.ProfileMutation) ([]types.ProfileMutation, error) {
	content := ""
	data, err := fsys.ReadFile(file)
	switch {
	case err == nil:
		content = string(data)
	case errors.Is(err, fs.ErrNotExist):
		// First run, the file gets created below
	default:
		return nil, rigerrors.Wrapf(err, rigerrors.ErrFileAccess,
			"could not read profile file %s", file)
	}

	present := make(map[string]bool)
	for _, line := range strings.Split(content, "\n") {
		present[strings.TrimSpace(line)] = true
	}

	var added []types.ProfileMutation
	var block strings.Builder
	for _, mutation := range mutations {
		if present[strings.TrimSpace(mutation.Line)] {
			continue
		}
		if mutation.Reason != "" {
			fmt.Fprintf(&block, "# %s\n", mutation.Reason)
		}
		fmt.Fprintf(&block, "%s\n", mutation.Line)
		present[strings.TrimSpace(mutation.Line)] = true
		added = append(added, mutation)
	}
	if len(added) == 0 {
		return nil, nil
	}

	updated := content
	if updated != "" && !strings.HasSuffix(updated, "\n") {
		updated += "\n"
	}
	if updated != "" {
		updated += "\n"
	}
	updated += block.String()

	if dir := filepath.Dir(file); dir != "." {
		if err := fsys.MkdirAll(dir, 0o755); err != nil {
			return nil, rigerrors.Wrapf(err, rigerrors.ErrFileAccess,
				"could not create directory for %s", file)
		}
	}
	if err := fsys.WriteFile(file, []byte(updated), ProfileMode); err != nil {
		return nil, rigerrors.Wrapf(err, rigerrors.ErrFileAccess,
			"could not update profile file %s", file)
	}
	return added, nil
}

// fileOrder returns the distinct target files in first-seen order
func fileOrder(mutations []types.ProfileMutation) []string {
	seen := make(map[string]bool)
	var files []string
	for _, mutation := range mutations {
		if !seen[mutation.File] {
			seen[mutation.File] = true
			files = append(files, mutation.File)
		}
	}
	return files
}

// forFile returns the mutations targeting one file, deduplicated by key
func forFile(mutations []types.ProfileMutation, file string) []types.ProfileMutation {
	seen := make(map[string]bool)
	var out []types.ProfileMutation
	for _, mutation := range mutations {
		if mutation.File != file || seen[mutation.Key()] {
			continue
		}
		seen[mutation.Key()] = true
		out = append(out, mutation)
	}
	return out
}
