package main

import (
	"fmt"
	"math/rand"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/xmss-hw/wotsref/fault"
)

func soakAction(c *cli.Context) error {
	p, v := env.params, env.vector
	logVector()
	rng := rand.New(rand.NewSource(c.Int64(RandSeedFlag.Name)))

	oracle, err := fault.NewOracle(p, v.SecretSeed, v.PubSeed, v.Address.OTS(), rand.New(rand.NewSource(rng.Int63())))
	if err != nil {
		return cli.Exit(err, 1)
	}
	result, err := fault.Soak(oracle, c.Int("count"), rng)
	stats := oracle.Stop()
	if err != nil {
		return cli.Exit(err, 1)
	}
	log.WithField("signed", stats.Valid).Info("Oracle stopped")

	for _, m := range result.Failures {
		fmt.Printf("failed %x\n", m)
	}
	fmt.Printf("%d/%d signatures round-tripped\n", result.Verified, result.Signed)
	printVerdict(len(result.Failures) == 0)
	if len(result.Failures) != 0 {
		return cli.Exit(fmt.Sprintf("%d of %d signatures failed to round-trip", len(result.Failures), result.Signed), 1)
	}
	return nil
}

func addSoakCommand(app *cli.App) {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "soak",
		Usage: "Sign random digests through a signing oracle and round-trip every signature",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "count", Value: 100},
			RandSeedFlag,
		},
		Action: soakAction,
	})
}
