package main

import "github.com/urfave/cli/v2"

// Global flags. Vector flags override the vector section of the config.

var ConfigFlag = &cli.StringFlag{
	Name:  "config",
	Usage: "YAML config file",
}

var LogLevelFlag = &cli.StringFlag{
	Name:  "log-level",
	Usage: "panic, fatal, error, warn, info, debug or trace",
}

var MetricsFlag = &cli.BoolFlag{
	Name:  "metrics",
	Usage: "print tweakable hash call counts when the command ends",
}

var WFlag = &cli.IntFlag{
	Name:  "w",
	Usage: "Winternitz parameter",
}

var HashFlag = &cli.StringFlag{
	Name:  "hash",
	Usage: "sha256 or shake256",
}

var WorkersFlag = &cli.IntFlag{
	Name:  "workers",
	Usage: "chains computed concurrently",
}

var SecretSeedFlag = &cli.StringFlag{
	Name:  "secret-seed",
	Usage: "secret seed, n bytes hex",
}

var PubSeedFlag = &cli.StringFlag{
	Name:  "pub-seed",
	Usage: "public seed, n bytes hex",
}

var AddressFlag = &cli.StringFlag{
	Name:  "address",
	Usage: "OTS address, 32 bytes hex",
}

var MessageFlag = &cli.StringFlag{
	Name:  "message",
	Usage: "message digest, n bytes hex",
}

var SignatureFlag = &cli.StringFlag{
	Name:     "signature",
	Usage:    "flat signature, len*n bytes hex",
	Required: true,
}

var RandSeedFlag = &cli.Int64Flag{
	Name:  "seed",
	Usage: "seed of the stimulus generator",
	Value: 1,
}

func globalFlags() []cli.Flag {
	return []cli.Flag{
		ConfigFlag,
		LogLevelFlag,
		MetricsFlag,
		WFlag,
		HashFlag,
		WorkersFlag,
		SecretSeedFlag,
		PubSeedFlag,
		AddressFlag,
		MessageFlag,
	}
}
