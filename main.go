package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"

	"github.com/xmss-hw/wotsref/address"
	"github.com/xmss-hw/wotsref/config"
	"github.com/xmss-hw/wotsref/metrics"
	"github.com/xmss-hw/wotsref/parameters"
)

var app = cli.NewApp()

// environment is what every command runs against, built from the config
// file and the global flags before the command starts.
type environment struct {
	params  *parameters.Parameters
	vector  *config.Vector
	metrics *metrics.Metrics
}

var env *environment

func info() {
	app.Name = "wotsref"
	app.Usage = "WOTS+ reference model and test vector generator for hardware cores"
	app.Version = "0.1.0"
}

func initCommands() {
	app.Flags = globalFlags()
	app.Before = setup
	app.After = reportMetrics
	app.Commands = []*cli.Command{}
	addVectorCommands(app)
	addFaultCommands(app)
	addSoakCommand(app)
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg := config.Default()
	if path := c.String(ConfigFlag.Name); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return nil, err
		}
	}
	if c.IsSet(LogLevelFlag.Name) {
		cfg.Log.Level = c.String(LogLevelFlag.Name)
	}
	if c.IsSet(WFlag.Name) {
		cfg.Params.W = c.Int(WFlag.Name)
	}
	if c.IsSet(HashFlag.Name) {
		cfg.Params.Hash = c.String(HashFlag.Name)
	}
	if c.IsSet(WorkersFlag.Name) {
		cfg.Params.Workers = c.Int(WorkersFlag.Name)
	}
	if c.IsSet(SecretSeedFlag.Name) {
		cfg.Vector.SecretSeed = c.String(SecretSeedFlag.Name)
	}
	if c.IsSet(PubSeedFlag.Name) {
		cfg.Vector.PubSeed = c.String(PubSeedFlag.Name)
	}
	if c.IsSet(MessageFlag.Name) {
		cfg.Vector.Message = c.String(MessageFlag.Name)
	}
	if c.IsSet(AddressFlag.Name) {
		adrs, err := address.ParseHex(c.String(AddressFlag.Name))
		if err != nil {
			return nil, err
		}
		cfg.Vector.Address = adrs.Words()
	}
	return cfg, nil
}

func setup(c *cli.Context) error {
	env = nil
	log.SetOutput(os.Stderr)
	log.SetFormatter(&prefixed.TextFormatter{FullTimestamp: true})

	cfg, err := loadConfig(c)
	if err != nil {
		return cli.Exit(err, 1)
	}
	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		return cli.Exit(err, 1)
	}
	log.SetLevel(level)

	params, err := cfg.Parameters()
	if err != nil {
		return cli.Exit(err, 1)
	}
	vector, err := cfg.Vector.Decode(params.N)
	if err != nil {
		return cli.Exit(err, 1)
	}

	env = &environment{params: params, vector: vector}
	if c.Bool(MetricsFlag.Name) {
		env.metrics = metrics.NewMetrics()
		env.params = env.metrics.Instrument(params)
	}
	log.WithField("params", params.String()).Debug("Parameters loaded")
	return nil
}

func reportMetrics(c *cli.Context) error {
	if env == nil || env.metrics == nil {
		return nil
	}
	counts, err := env.metrics.Counts()
	if err != nil {
		return err
	}
	fmt.Printf("calls prf=%.0f f=%.0f h=%.0f\n", counts[metrics.PRF], counts[metrics.F], counts[metrics.H])
	return nil
}

func main() {
	info()
	initCommands()
	err := app.Run(os.Args)
	if err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
