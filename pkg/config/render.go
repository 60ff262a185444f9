package config

import (
	gotoml "github.com/pelletier/go-toml/v2"

	"github.com/joeldee/rigup/pkg/errors"
)

// RenderEffective marshals the merged configuration back to TOML so users
// can see what rigup will actually do after defaults, file, and environment
// are combined.
func RenderEffective(cfg *Config) (string, error) {
	out, err := gotoml.Marshal(cfg)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to render config")
	}
	return string(out), nil
}
