package config

import (
	_ "embed"
	stderrors "errors"
	"os"
	"strings"

	"github.com/arthur-debert/toolstrap/pkg/errors"
	"github.com/arthur-debert/toolstrap/pkg/logging"
	"github.com/arthur-debert/toolstrap/pkg/paths"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix marks environment variables that override configuration keys.
// A double underscore separates nesting levels:
// TOOLSTRAP_TOOLCHAIN__GIT_BACKEND sets toolchain.git_backend.
const EnvPrefix = "TOOLSTRAP_"

//go:embed embedded/defaults.toml
var defaultConfig []byte

// DefaultContent returns the embedded defaults file.
func DefaultContent() string {
	return string(defaultConfig)
}

// rawBytesProvider implements koanf provider for raw bytes
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, stderrors.New("not implemented")
}

// Options selects the sources layered over the embedded defaults.
type Options struct {
	// File is an explicit config file. It must exist when set. When empty,
	// TOOLSTRAP_CONFIG or the XDG location is used if present.
	File string

	// Overrides are flat dotted keys applied last, e.g. "toolchain.install_dir".
	Overrides map[string]interface{}
}

// Load builds the effective configuration.
func Load(opts Options) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	// 2. User file
	path, explicit := configFile(opts.File)
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", path).
				WithDetail("path", path)
		}
		logger.Debug().Str("path", path).Msg("Loaded user config")
	} else if explicit || !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "cannot read config file %s", path).
			WithDetail("path", path)
	}

	// 3. Environment
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment overrides")
	}

	// 4. Command-line overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load overrides")
		}
	}

	return decode(k)
}

// Default returns the embedded defaults only.
func Default() (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}
	return decode(k)
}

func decode(k *koanf.Koanf) (*Config, error) {
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.TextUnmarshallerHookFunc(),
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	if err := expandPaths(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func configFile(flag string) (string, bool) {
	if flag != "" {
		expanded, err := paths.ExpandHome(flag)
		if err != nil {
			return flag, true
		}
		return expanded, true
	}
	return paths.ConfigFilePath(), os.Getenv(paths.EnvConfigFile) != ""
}

// envKey maps TOOLSTRAP_A__B_C to a.b_c. The variables that locate the
// config file itself are not configuration keys.
func envKey(s string) string {
	if s == paths.EnvConfigFile || s == paths.EnvConfigDir {
		return ""
	}
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

func expandPaths(cfg *Config) error {
	for _, p := range []*string{&cfg.Toolchain.InstallDir, &cfg.Toolchain.StartupFile, &cfg.RuntimeEnv.Path} {
		expanded, err := paths.ExpandHome(*p)
		if err != nil {
			return errors.Wrap(err, errors.ErrConfigLoad, "cannot expand configured path")
		}
		*p = expanded
	}
	return nil
}
