// Package materialize puts the dotfiles repository on disk. It creates the
// working directory, moves a pre-existing checkout aside after asking, and
// clones over authenticated HTTPS. The access token's lifetime ends here:
// whatever the clone outcome, the token buffer is closed before returning.
package materialize

import (
	"context"
	"fmt"
	"time"

	"github.com/go-git/go-git/v5"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"

	"github.com/joeldee/rigup/pkg/config"
	"github.com/joeldee/rigup/pkg/errors"
	"github.com/joeldee/rigup/pkg/logging"
	"github.com/joeldee/rigup/pkg/paths"
	"github.com/joeldee/rigup/pkg/secret"
	"github.com/joeldee/rigup/pkg/types"
)

// BackupTimeFormat stamps a checkout that gets moved aside
const BackupTimeFormat = "20060102-150405"

// DefaultRepoName is the repository directory name when none is configured
const DefaultRepoName = "joel-snips"

// tokenUsername is the HTTP basic auth username sent alongside an access
// token; the forge ignores it but rejects an empty one
const tokenUsername = "unused-when-using-access-tokens"

// Options defines the parameters for repository materialization
type Options struct {
	// Config describes the repository to clone
	Config config.RepoConfig

	// Token authenticates the HTTPS clone. Clone closes it on every return
	// path; it must not be used afterwards.
	Token *secret.Buffer

	// FS is the filesystem abstraction for the mkdir and backup steps. The
	// clone itself always writes through the real filesystem.
	FS types.FS

	// Paths resolves the working directory and the clone target
	Paths paths.Paths

	// Confirmer asks before a pre-existing checkout is moved aside
	Confirmer types.Confirmer

	// DryRun reports what would happen without touching the filesystem
	DryRun bool
}

// TargetDir returns where the repository lands under the work directory
func TargetDir(cfg config.RepoConfig, p paths.Paths) string {
	name := cfg.Name
	if name == "" {
		name = DefaultRepoName
	}
	return p.TargetPath(name)
}

// Clone materializes the repository at its target path. A pre-existing
// target is renamed to a timestamped backup first, but only with the user's
// consent; declining aborts with the directory untouched.
func Clone(ctx context.Context, opts Options) types.StageResult {
	log := logging.GetLogger("materialize")

	// The token must not outlive this stage, whichever path returns
	defer func() {
		if opts.Token != nil {
			_ = opts.Token.Close()
		}
	}()

	target := TargetDir(opts.Config, opts.Paths)
	url := opts.Config.CloneURL()

	if opts.DryRun {
		log.Info().Str("url", url).Str("target", target).Msg("Dry run, skipping clone")
		return types.Ok(types.StageMaterialize,
			fmt.Sprintf("dry run: would clone %s into %s", url, target))
	}

	workDir := opts.Paths.WorkDir()
	if err := opts.FS.MkdirAll(workDir, 0o755); err != nil {
		return types.Fatal(types.StageMaterialize,
			fmt.Sprintf("could not create the working directory %s", workDir),
			errors.Wrapf(err, errors.ErrDirCreate, "mkdir %s failed", workDir))
	}

	var backup string
	if _, err := opts.FS.Stat(target); err == nil {
		moved, fatal := backupExisting(opts, target)
		if fatal != nil {
			return *fatal
		}
		backup = moved
	}

	log.Info().Str("url", url).Str("target", target).Msg("Cloning repository")

	_, cloneErr := git.PlainCloneContext(ctx, target, false, &git.CloneOptions{
		URL: url,
		Auth: &githttp.BasicAuth{
			Username: tokenUsername,
			Password: opts.Token.String(),
		},
	})

	// Single use is over, drop the token now
	if err := opts.Token.Close(); err != nil {
		log.Warn().Err(err).Msg("Failed to release the token buffer")
	}

	if cloneErr != nil {
		log.Error().Err(cloneErr).Str("url", url).Msg("Clone failed")
		return types.Fatal(types.StageMaterialize,
			fmt.Sprintf("could not clone %s", url),
			errors.Wrapf(cloneErr, errors.ErrCloneFailed, "clone into %s failed", target)).
			WithNotices(
				"check that the access token is valid and not expired",
				"the token needs read access to the repository (Contents: read-only for fine-grained tokens)",
			)
	}

	result := types.Ok(types.StageMaterialize, fmt.Sprintf("cloned into %s", target))
	if backup != "" {
		result = result.WithNotices(fmt.Sprintf("previous checkout moved to %s", backup))
	}
	return result
}

// backupExisting asks for consent and renames the existing checkout to a
// timestamped name. Declining is fatal and leaves the directory untouched;
// a nil fatal result means the clone can proceed.
func backupExisting(opts Options, target string) (string, *types.StageResult) {
	log := logging.GetLogger("materialize")

	backup := fmt.Sprintf("%s.bak.%s", target, time.Now().Format(BackupTimeFormat))

	approved, err := opts.Confirmer.Confirm(types.ConfirmationRequest{
		ID:          "materialize-backup",
		Title:       fmt.Sprintf("%s already exists", target),
		Description: "Move the existing directory aside and clone fresh?",
		Items:       []string{fmt.Sprintf("%s -> %s", target, backup)},
		Default:     false,
	})
	if err != nil {
		fatal := types.Fatal(types.StageMaterialize,
			"could not read the backup answer",
			errors.Wrap(err, errors.ErrTargetBlocked, "backup confirmation failed"))
		return "", &fatal
	}
	if !approved {
		log.Info().Str("target", target).Msg("Backup declined, aborting")
		fatal := types.Fatal(types.StageMaterialize,
			fmt.Sprintf("%s left untouched; move it aside or remove it, then re-run", target),
			errors.New(errors.ErrUserDeclined, "backup of existing checkout declined"))
		return "", &fatal
	}

	if err := opts.FS.Rename(target, backup); err != nil {
		fatal := types.Fatal(types.StageMaterialize,
			fmt.Sprintf("could not move %s aside", target),
			errors.Wrapf(err, errors.ErrBackupFailed, "rename to %s failed", backup))
		return "", &fatal
	}

	log.Info().Str("from", target).Str("to", backup).Msg("Moved existing checkout aside")
	return backup, nil
}
