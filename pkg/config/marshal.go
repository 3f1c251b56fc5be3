package config

import (
	"github.com/arthur-debert/toolstrap/pkg/errors"
	gotoml "github.com/pelletier/go-toml/v2"
)

// Marshal renders cfg as TOML in the same layout as the config file.
func Marshal(cfg *Config) ([]byte, error) {
	data, err := gotoml.Marshal(cfg)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to marshal configuration")
	}
	return data, nil
}
