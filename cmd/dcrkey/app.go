package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/urfave/cli/v2"

	"github.com/bitfsorg/libdcr-go/config"
	"github.com/bitfsorg/libdcr-go/ecdsa"
	"github.com/bitfsorg/libdcr-go/logging"
	"github.com/bitfsorg/libdcr-go/network"
)

// env is the state shared by every command once flags and configuration
// have been resolved.
type env struct {
	cfg      config.Config
	registry *network.Registry
	net      *network.Params
	verifier ecdsa.Verifier
	log      *logging.Logger
	closers  []io.Closer
}

func newApp() *cli.App {
	e := &env{}

	return &cli.App{
		Name:  "dcrkey",
		Usage: "Decred key, signature and output toolkit",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "path to the configuration file",
			},
			&cli.StringFlag{
				Name:  "network",
				Usage: "network name or alias (mainnet, testnet3, simnet, regnet)",
			},
			&cli.StringFlag{
				Name:  "loglevel",
				Usage: "log level (trace, debug, info, warn, error)",
			},
			&cli.BoolFlag{
				Name:  "strict",
				Usage: "reject high-S signatures when verifying",
			},
		},
		Before: e.setup,
		After:  e.teardown,
		Commands: []*cli.Command{
			generateCommand(e),
			inspectCommand(e),
			signCommand(e),
			verifyCommand(e),
			scriptNumCommand(e),
			outputCommand(e),
			convertCommand(e),
		},
	}
}

// setup loads the configuration, applies flag overrides and builds the
// logger.
func (e *env) setup(c *cli.Context) error {
	path := c.String("config")
	explicit := path != ""
	if !explicit {
		path = config.ConfigPath(config.DefaultDataDir())
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		if explicit || !errors.Is(err, config.ErrConfigNotFound) {
			return err
		}
		cfg = config.DefaultConfig()
	}

	if c.IsSet("network") {
		cfg.Network = c.String("network")
	}
	if c.IsSet("loglevel") {
		cfg.LogLevel = c.String("loglevel")
	}
	if c.IsSet("strict") {
		cfg.StrictSignatures = c.Bool("strict")
	}
	if err := config.ValidateConfig(cfg); err != nil {
		return err
	}

	e.cfg = cfg
	if e.registry, err = cfg.Registry(); err != nil {
		return err
	}
	if e.net, err = cfg.Params(); err != nil {
		return err
	}
	e.verifier = ecdsa.Verifier{RequireLowS: cfg.StrictSignatures}

	logOut := c.App.ErrWriter
	if cfg.LogFile != "" {
		f, err := logging.OpenFile(cfg.LogFile)
		if err != nil {
			return err
		}
		e.closers = append(e.closers, f)
		logOut = f
	}
	e.log = logging.New("dcrkey", logging.WithWriter(logOut), logging.WithLevel(cfg.LogLevel))
	e.log.Debugf("using network %s, strict signatures %t", e.net, cfg.StrictSignatures)

	return nil
}

func (e *env) teardown(*cli.Context) error {
	var errs []error
	for _, c := range e.closers {
		errs = append(errs, c.Close())
	}
	e.closers = nil
	return errors.Join(errs...)
}

// emit writes one line of command output.
func emit(c *cli.Context, format string, args ...interface{}) {
	fmt.Fprintf(c.App.Writer, format+"\n", args...)
}
