// Package credentials collects the two secrets the bootstrap needs: the
// source-control access token and the Ansible vault passphrase. Both are read
// with terminal echo suppressed. The token goes into protected memory and
// never touches disk; the passphrase goes to the owner-only vault passphrase
// file that the delegated run reads and the finalizer removes.
package credentials

import (
	"github.com/joeldee/rigup/pkg/errors"
	"github.com/joeldee/rigup/pkg/logging"
	"github.com/joeldee/rigup/pkg/paths"
	"github.com/joeldee/rigup/pkg/secret"
	"github.com/joeldee/rigup/pkg/types"
)

// Prompt labels for the two no-echo reads
const (
	TokenLabel      = "Access token: "
	PassphraseLabel = "Vault passphrase: "
)

// VaultPassMode is the permission set for the persisted passphrase file
const VaultPassMode = 0o600

// Options defines the parameters for credential collection
type Options struct {
	// Prompter performs the no-echo terminal reads
	Prompter types.Prompter

	// FS is the filesystem abstraction the passphrase file is written through
	FS types.FS

	// Paths resolves the vault passphrase file location
	Paths paths.Paths
}

// CollectResult carries the collected secrets out of the stage
type CollectResult struct {
	// Token is the access token in protected memory. The materialize stage
	// is its single consumer and closes it as soon as the clone finishes.
	Token *secret.Buffer

	// Vault owns the written passphrase file; its Remove hook must be
	// registered with the driver finalizer before anything else runs.
	Vault *Guard
}

// Collect prompts for the access token and the vault passphrase. Either
// prompt coming back empty is fatal. On success the passphrase file exists
// with owner-only permissions and the token is held in memory only.
func Collect(opts Options) (*CollectResult, types.StageResult) {
	log := logging.GetLogger("credentials")
	log.Debug().Msg("Collecting credentials")

	tokenInput, err := opts.Prompter.PromptSecret(TokenLabel)
	if err != nil {
		return nil, types.Fatal(types.StageCredentials,
			"could not read the access token",
			errors.Wrap(err, errors.ErrCredentialPrompt, "access token prompt failed"))
	}
	if len(tokenInput) == 0 {
		return nil, types.Fatal(types.StageCredentials,
			"the access token must not be empty",
			errors.New(errors.ErrCredentialEmpty, "empty access token"))
	}

	// NewFromBytes zeroes tokenInput, so from here the token lives only in
	// the protected buffer
	token, err := secret.NewFromBytes(tokenInput)
	if err != nil {
		secret.Zero(tokenInput)
		return nil, types.Fatal(types.StageCredentials,
			"could not hold the access token in protected memory",
			errors.Wrap(err, errors.ErrCredentialStore, "token buffer allocation failed"))
	}

	passphrase, err := opts.Prompter.PromptSecret(PassphraseLabel)
	if err != nil {
		_ = token.Close()
		return nil, types.Fatal(types.StageCredentials,
			"could not read the vault passphrase",
			errors.Wrap(err, errors.ErrCredentialPrompt, "vault passphrase prompt failed"))
	}
	if len(passphrase) == 0 {
		_ = token.Close()
		return nil, types.Fatal(types.StageCredentials,
			"the vault passphrase must not be empty",
			errors.New(errors.ErrCredentialEmpty, "empty vault passphrase"))
	}

	vault, err := writeVaultPass(opts, passphrase)
	secret.Zero(passphrase)
	if err != nil {
		_ = token.Close()
		return nil, types.Fatal(types.StageCredentials,
			"could not write the vault passphrase file", err)
	}

	log.Debug().Str("vault_pass_file", vault.Path()).Msg("Credentials collected")

	return &CollectResult{Token: token, Vault: vault},
		types.Ok(types.StageCredentials, "credentials collected")
}

// writeVaultPass persists the passphrase with a trailing newline, the format
// ansible-vault expects, and enforces owner-only permissions even when the
// file already existed with a looser mode from an earlier run.
func writeVaultPass(opts Options, passphrase []byte) (*Guard, error) {
	path := opts.Paths.VaultPassFile()

	content := make([]byte, len(passphrase)+1)
	copy(content, passphrase)
	content[len(passphrase)] = '\n'
	defer secret.Zero(content)

	if err := opts.FS.WriteFile(path, content, VaultPassMode); err != nil {
		return nil, errors.Wrapf(err, errors.ErrCredentialStore,
			"failed to write %s", path)
	}

	vault := NewGuard(opts.FS, path)

	// WriteFile only applies the mode on creation
	if err := opts.FS.Chmod(path, VaultPassMode); err != nil {
		if removeErr := vault.Remove(); removeErr != nil {
			log := logging.GetLogger("credentials")
			log.Warn().Err(removeErr).
				Msg("Failed to remove vault passphrase file after chmod error")
		}
		return nil, errors.Wrapf(err, errors.ErrCredentialStore,
			"failed to restrict permissions on %s", path)
	}

	return vault, nil
}
