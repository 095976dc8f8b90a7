package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/eugenenazirov/senzing-package/internal/application"
	"github.com/eugenenazirov/senzing-package/internal/config"
	"github.com/eugenenazirov/senzing-package/internal/logging"
)

var (
	exit      = os.Exit
	newLogger = logging.New
)

func main() {
	exit(run(os.Args[1:], os.LookupEnv, os.Stdout))
}

func run(args []string, lookupEnv config.LookupEnvFunc, out io.Writer) int {
	signals := handleSignals(exitOnSignal)
	defer signals.Stop()

	c := newCLI(out)

	if len(args) == 0 {
		if name, ok := lookupEnv("SENZING_SUBCOMMAND"); ok && strings.TrimSpace(name) != "" {
			args = []string{strings.TrimSpace(name)}
		}
	}
	if len(args) == 0 {
		c.usage()
		return 1
	}

	if name := args[0]; !strings.HasPrefix(name, "-") {
		if _, ok := application.ParseSubcommand(name); !ok {
			logger, err := bootstrapLogger(lookupEnv)
			if err != nil {
				fmt.Fprintf(out, "failed to initialize logger: %v\n", err)
				return 1
			}
			logging.NewMessages(logger).Warn(logging.MsgBadSubcommand, nil, name)
			_ = logger.Sync()
			c.usage()
			return 0
		}
	}

	name, values, code, err := c.parse(args)
	if code != nil {
		return *code
	}
	if err != nil {
		fmt.Fprintf(out, "senzing-package: error: %v\n", err)
		return 1
	}
	sub, _ := application.ParseSubcommand(name)

	cfg, err := config.Load(&config.CLIOverrides{Values: values}, lookupEnv)
	if err != nil {
		logger, logErr := bootstrapLogger(lookupEnv)
		if logErr != nil {
			fmt.Fprintf(out, "failed to load configuration: %v\n", err)
			return 1
		}
		msgs := logging.NewMessages(logger)
		msgs.Error(logging.MsgBadConfiguration, 1, err)
		msgs.Error(logging.MsgTerminated, 1, nil)
		_ = logger.Sync()
		return 1
	}

	level := cfg.LogLevel
	if cfg.Debug {
		level = "debug"
	}
	logger, err := newLogger(level)
	if err != nil {
		fmt.Fprintf(out, "failed to initialize logger: %v\n", err)
		return 1
	}
	defer func() {
		_ = logger.Sync()
	}()

	app := application.New(cfg, logger)

	signals.Rebind(logExitOnSignal(cfg, logging.NewMessages(logger), sub, time.Now()))

	if err := app.Run(context.Background(), sub); errors.Is(err, application.ErrUnknownSubcommand) {
		msgs := logging.NewMessages(logger)
		msgs.Error(logging.MsgError, 1, err, sub)
		msgs.Error(logging.MsgTerminated, 1, nil)
		return 1
	}
	return 0
}

// bootstrapLogger serves messages logged before the configuration resolves.
func bootstrapLogger(lookupEnv config.LookupEnvFunc) (*zap.Logger, error) {
	level, _ := lookupEnv("SENZING_LOG_LEVEL")
	return newLogger(level)
}
