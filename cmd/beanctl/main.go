// cmd/beanctl/main.go
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/sghaida/ioc/beans"
	"github.com/sghaida/ioc/internal/config"
	"github.com/sghaida/ioc/internal/logging"
	"github.com/sghaida/ioc/reader"
)

const usage = "usage: beanctl [-format xml|yaml|toml|hcl] [-check] [-env <file>] <definition files...>"

// run executes beanctl and returns an exit code.
// It exists separately from main to allow unit testing without os.Exit.
func run(args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("beanctl", flag.ContinueOnError)
	flags.SetOutput(stderr)

	formatName := flags.String("format", "yaml", "output format: xml, yaml, toml or hcl")
	checkOnly := flags.Bool("check", false, "validate only, print nothing on success")
	envFile := flags.String("env", ".env", "optional env file with IOC_* settings")
	logLevel := flags.String("log-level", "", "log level (overrides IOC_LOG_LEVEL)")
	logFormat := flags.String("log-format", "", "console or json (overrides IOC_LOG_FORMAT)")

	if err := flags.Parse(args); err != nil {
		return 2
	}

	format, err := reader.ParseFormat(*formatName)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		_, _ = fmt.Fprintln(stderr, usage)
		return 2
	}

	cfg, err := config.Load(*envFile)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "beanctl: config: %v\n", err)
		return 2
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if *logFormat != "" {
		cfg.LogFormat = *logFormat
	}
	log := logging.For(logging.New(cfg.LogLevel, cfg.LogFormat, stderr), "beanctl")

	paths := flags.Args()
	if len(paths) == 0 {
		paths = cfg.Definitions
	}
	if len(paths) == 0 {
		_, _ = fmt.Fprintln(stderr, usage)
		return 2
	}

	defs, err := load(log, paths)
	if err != nil {
		log.Error().Err(err).Strs("paths", paths).Msg("invalid definitions")
		return 1
	}
	log.Info().Int("beans", len(defs)).Strs("paths", paths).Msg("definitions valid")

	if *checkOnly {
		return 0
	}
	if err := reader.Encode(stdout, format, defs); err != nil {
		log.Error().Err(err).Str("format", string(format)).Msg("encode failed")
		return 1
	}
	return 0
}

// load reads every path and checks the combined definition graph.
func load(log zerolog.Logger, paths []string) ([]beans.Definition, error) {
	defs, err := reader.New(paths...).Definitions()
	if err != nil {
		return nil, err
	}
	for _, d := range defs {
		log.Debug().Str("bean", d.ID).Str("type", d.Type).Strs("refs", d.Refs()).Msg("definition read")
	}
	if err := beans.ValidateGraph(defs); err != nil {
		return nil, err
	}
	return defs, nil
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
