package main

import (
	"fmt"
	"math/rand"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/xmss-hw/wotsref/fault"
	"github.com/xmss-hw/wotsref/wots"
)

// faultAction flips one random bit of the vector signature per trial and
// checks that verification rejects it and that the recovered chain
// positions blame the chain holding the flipped bit.
func faultAction(c *cli.Context) error {
	p, v := env.params, env.vector
	logVector()
	rng := rand.New(rand.NewSource(c.Int64(RandSeedFlag.Name)))

	pk, _, err := wots.PkGen(p, v.SecretSeed, v.PubSeed, v.Address.OTS())
	if err != nil {
		return cli.Exit(err, 1)
	}
	sig, err := wots.Sign(p, v.Message, v.SecretSeed, v.PubSeed, v.Address.OTS())
	if err != nil {
		return cli.Exit(err, 1)
	}
	expected, err := wots.ChainLengths(p, v.Message)
	if err != nil {
		return cli.Exit(err, 1)
	}

	trials := c.Int("trials")
	caught := 0
	for i := 0; i < trials; i++ {
		faulty, chain, err := fault.FlipSignatureBit(p, sig, rng)
		if err != nil {
			return cli.Exit(err, 1)
		}
		ok, err := wots.Verify(p, v.Message, faulty, pk, v.PubSeed, v.Address.OTS())
		if err != nil {
			return cli.Exit(err, 1)
		}
		digits, _ := wots.DigitsFromSignature(p, faulty, pk, v.PubSeed, v.Address.OTS())
		blamed := wots.Mismatches(expected, digits)

		located := len(blamed) == 1 && blamed[0] == chain
		if !ok && located {
			caught++
		}
		fmt.Printf("trial %d: flipped chain %d, verify=%t, blamed %v\n", i, chain, ok, blamed)
		if log.IsLevelEnabled(log.DebugLevel) {
			printDigitsVsExpected(p, expected, digits)
		}
	}

	fmt.Printf("%d/%d faults rejected and located\n", caught, trials)
	printVerdict(caught == trials)
	if caught != trials {
		return cli.Exit(fmt.Sprintf("%d of %d faults not rejected and located", trials-caught, trials), 1)
	}
	return nil
}

// campaignAction runs fault campaigns against a signing oracle: each run
// draws a new key, a message and a target, and counts the faulty
// signatures of the message needed until the target can be forged.
func campaignAction(c *cli.Context) error {
	p := env.params
	rng := rand.New(rand.NewSource(c.Int64(RandSeedFlag.Name)))
	maxTrials := c.Int("trials")
	csv := c.String("csv")

	for run := 0; run < c.Int("runs"); run++ {
		skSeed, pkSeed := make([]byte, p.N), make([]byte, p.N)
		message, target := make([]byte, p.N), make([]byte, p.N)
		for _, b := range [][]byte{skSeed, pkSeed, message, target} {
			rng.Read(b)
		}

		oracle, err := fault.NewOracle(p, skSeed, pkSeed, env.vector.Address.OTS(), rand.New(rand.NewSource(rng.Int63())))
		if err != nil {
			return cli.Exit(err, 1)
		}
		required, tracker, err := fault.RequiredSignatures(oracle, message, target, maxTrials)
		stats := oracle.Stop()
		if err != nil {
			return cli.Exit(err, 1)
		}
		log.WithFields(log.Fields{
			"run":    run,
			"valid":  stats.Valid,
			"faulty": stats.Faulty,
		}).Info("Oracle stopped")

		_, lengths, err := tracker.Forgeable(target)
		if err != nil {
			return cli.Exit(err, 1)
		}
		printForgeable(p, lengths, tracker.Positions)

		if required < 0 {
			fmt.Printf("run %d: target not forgeable after %d faulty signatures\n", run, maxTrials)
		} else {
			forged, err := tracker.Forge(target)
			if err != nil {
				return cli.Exit(err, 1)
			}
			ok, err := wots.Verify(p, target, forged, oracle.PublicKey(), pkSeed, oracle.Address())
			if err != nil {
				return cli.Exit(err, 1)
			}
			fmt.Printf("run %d: %d faulty signatures required, forgery verifies: %t\n", run, required, ok)
		}

		if csv != "" {
			if err := appendToFile(csv, fmt.Sprintf("%d", required)); err != nil {
				return cli.Exit(err, 1)
			}
		}
	}
	return nil
}

func addFaultCommands(app *cli.App) {
	app.Commands = append(app.Commands,
		&cli.Command{
			Name:  "fault",
			Usage: "Flip random signature bits and check they are rejected and located",
			Flags: []cli.Flag{
				&cli.IntFlag{Name: "trials", Value: 16},
				RandSeedFlag,
			},
			Action: faultAction,
		},
		&cli.Command{
			Name:  "campaign",
			Usage: "Count the faulty signatures needed to forge a random target",
			Flags: []cli.Flag{
				&cli.IntFlag{Name: "trials", Value: 2000, Usage: "faulty signatures per run"},
				&cli.IntFlag{Name: "runs", Value: 1},
				&cli.StringFlag{Name: "csv", Usage: "append the required count of every run to this file"},
				RandSeedFlag,
			},
			Action: campaignAction,
		},
	)
}
