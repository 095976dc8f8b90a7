package application

import (
	"strings"

	"github.com/eugenenazirov/senzing-package/internal/config"
)

// Subcommand selects the action a process runs.
type Subcommand int

const (
	SubcommandUnknown Subcommand = iota
	SubcommandInstall
	SubcommandReplace
	SubcommandDelete
	SubcommandCurrentVersion
	SubcommandPackageVersion
	SubcommandSleep
	SubcommandVersion
	SubcommandDockerAcceptanceTest
)

type subcommandInfo struct {
	name    string
	aliases []string
	help    string
	keys    []string
}

var installKeys = []string{
	config.KeySenzingDir,
	config.KeySenzingPackage,
	config.KeySenzingSourceDir,
	config.KeyDebug,
	config.KeyLogLevel,
	config.KeyConfigFile,
}

var subcommandTable = map[Subcommand]subcommandInfo{
	SubcommandInstall: {
		name: "install",
		help: "Backup existing directories and install to a clean directory.",
		keys: installKeys,
	},
	SubcommandReplace: {
		name: "replace",
		help: "Remove the installation marker, backup existing directories and reinstall.",
		keys: installKeys,
	},
	SubcommandDelete: {
		name: "delete",
		help: "Delete the installed Senzing directories.",
		keys: []string{config.KeySenzingDir, config.KeyDebug, config.KeyLogLevel, config.KeyConfigFile},
	},
	SubcommandCurrentVersion: {
		name:    "current-version",
		aliases: []string{"installed-version"},
		help:    "Show the version of the currently installed Senzing package.",
		keys:    []string{config.KeySenzingDir, config.KeyDebug, config.KeyLogLevel, config.KeyConfigFile},
	},
	SubcommandPackageVersion: {
		name: "package-version",
		help: "Show the version of the Senzing_API.tgz package.",
		keys: []string{config.KeySenzingPackage, config.KeyDebug, config.KeyLogLevel, config.KeyConfigFile},
	},
	SubcommandSleep: {
		name: "sleep",
		help: "Do nothing but sleep. For Docker testing.",
		keys: []string{config.KeySleepTimeInSeconds, config.KeyDebug, config.KeyLogLevel, config.KeyConfigFile},
	},
	SubcommandVersion: {
		name: "version",
		help: "Print the version of senzing-package.",
	},
	SubcommandDockerAcceptanceTest: {
		name: "docker-acceptance-test",
		help: "For Docker acceptance testing.",
		keys: []string{config.KeyDockerLaunched, config.KeyDebug, config.KeyLogLevel},
	},
}

// Subcommands lists every known subcommand in declaration order.
func Subcommands() []Subcommand {
	out := make([]Subcommand, 0, len(subcommandTable))
	for s := SubcommandInstall; s <= SubcommandDockerAcceptanceTest; s++ {
		out = append(out, s)
	}
	return out
}

// ParseSubcommand resolves a name or alias.
func ParseSubcommand(name string) (Subcommand, bool) {
	name = strings.TrimSpace(name)
	for s, info := range subcommandTable {
		if info.name == name {
			return s, true
		}
		for _, alias := range info.aliases {
			if alias == name {
				return s, true
			}
		}
	}
	return SubcommandUnknown, false
}

func (s Subcommand) String() string {
	if info, ok := subcommandTable[s]; ok {
		return info.name
	}
	return "unknown"
}

// Aliases returns alternative names for s.
func (s Subcommand) Aliases() []string {
	return subcommandTable[s].aliases
}

// Help returns the one-line description of s.
func (s Subcommand) Help() string {
	return subcommandTable[s].help
}

// Keys returns the configuration keys s exposes as flags.
func (s Subcommand) Keys() []string {
	return subcommandTable[s].keys
}
