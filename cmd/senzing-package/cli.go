package main

import (
	"fmt"
	"io"

	"github.com/alecthomas/kingpin/v2"

	"github.com/eugenenazirov/senzing-package/internal/application"
	"github.com/eugenenazirov/senzing-package/internal/config"
)

const sleepTimeAlias = "sleep-time"

var flagHelp = map[string]string{
	config.KeyConfigFile:         "Path to a YAML configuration file.",
	config.KeyDebug:              "Enable debugging.",
	config.KeyDockerLaunched:     "Launched by docker.",
	config.KeyLogLevel:           "Log level: notset, debug, info, warning, error or critical.",
	config.KeySenzingDir:         "Location of Senzing.",
	config.KeySenzingPackage:     "Path to the Senzing_API.tgz package.",
	config.KeySenzingSourceDir:   "Copy the Senzing directories from here instead of extracting the package.",
	config.KeySleepTimeInSeconds: "Sleep time in seconds. 0 sleeps forever.",
}

// cli is the kingpin command tree. Flags carry no defaults so that an absent
// flag resolves to "" and yields to the environment and the config file.
type cli struct {
	app        *kingpin.Application
	getters    map[string]map[string]func() string
	terminated *int
}

func newCLI(out io.Writer) *cli {
	c := &cli{
		app:     kingpin.New("senzing-package", "Install, replace and delete the Senzing API package."),
		getters: make(map[string]map[string]func() string),
	}
	c.app.UsageWriter(out)
	c.app.ErrorWriter(out)
	c.app.Terminate(func(code int) {
		c.terminated = &code
	})

	for _, sub := range application.Subcommands() {
		cmd := c.app.Command(sub.String(), sub.Help())
		for _, alias := range sub.Aliases() {
			cmd.Alias(alias)
		}
		getters := make(map[string]func() string)
		for _, key := range sub.Keys() {
			getters[key] = c.flag(cmd, key)
		}
		c.getters[sub.String()] = getters
	}
	return c
}

func (c *cli) flag(cmd *kingpin.CmdClause, key string) func() string {
	entry, _ := config.Lookup(key)
	help := fmt.Sprintf("%s [%s]", flagHelp[key], entry.Env)

	if entry.Kind == config.KindBool {
		v := cmd.Flag(entry.Flag, help).Bool()
		return func() string {
			if *v {
				return "true"
			}
			return ""
		}
	}

	v := cmd.Flag(entry.Flag, help).String()
	if key != config.KeySleepTimeInSeconds {
		return func() string { return *v }
	}
	alias := cmd.Flag(sleepTimeAlias, help).Hidden().String()
	return func() string {
		if *v != "" {
			return *v
		}
		return *alias
	}
}

// parse returns the canonical subcommand name and the CLI values keyed by
// configuration key. A non-nil code means kingpin already answered the
// request (for example --help) and the process should exit with it.
func (c *cli) parse(args []string) (string, map[string]string, *int, error) {
	selected, err := c.app.Parse(args)
	if c.terminated != nil {
		return "", nil, c.terminated, nil
	}
	if err != nil {
		return "", nil, nil, err
	}

	values := map[string]string{config.KeySubcommand: selected}
	for key, get := range c.getters[selected] {
		values[key] = get()
	}
	return selected, values, nil, nil
}

func (c *cli) usage() {
	c.app.Usage(nil)
}
