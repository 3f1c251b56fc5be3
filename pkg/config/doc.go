// Package config handles configuration management for toolstrap.
// It layers the embedded defaults, the user's TOML file, TOOLSTRAP_*
// environment variables and command-line overrides, in that order.
package config
