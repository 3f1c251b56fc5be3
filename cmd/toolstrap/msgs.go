package toolstrap

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Bootstrap Homebrew and an R build toolchain on macOS"
	MsgConfigShort     = "Print the effective configuration"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Flag descriptions
	MsgFlagVerbose        = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig         = "Config file (default is $XDG_CONFIG_HOME/toolstrap/config.toml)"
	MsgFlagFormat         = "Output format: auto, term, text or json"
	MsgFlagInstallDir     = "Directory to install Homebrew into when none is on PATH"
	MsgFlagGitBackend     = "Git client used to install Homebrew: cli or go-git"
	MsgFlagStartupFile    = "Shell startup file that receives the activation line"
	MsgFlagRuntimeEnvFile = "File that receives the KEY=\"value\" build settings"
	MsgFlagPackages       = "Packages to install (replaces the configured list)"

	// Output
	MsgVersionFormat = "toolstrap version %s\n"
	MsgCommitFormat  = "  commit: %s\n"
	MsgBuiltFormat   = "  built:  %s\n"
	MsgInterrupted   = "Interrupted; no further changes were made."
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/root-example.txt
	msgRootExampleRaw string
	MsgRootExample    = strings.TrimRight(msgRootExampleRaw, "\n")

	//go:embed msgs/config-long.txt
	msgConfigLongRaw string
	MsgConfigLong    = strings.TrimSpace(msgConfigLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
