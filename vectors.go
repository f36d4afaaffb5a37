package main

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/xmss-hw/wotsref/util"
	"github.com/xmss-hw/wotsref/wots"
	"github.com/xmss-hw/wotsref/xmss"
)

func logVector() {
	v := env.vector
	log.WithFields(log.Fields{
		"secret_seed": hexString(v.SecretSeed),
		"pub_seed":    hexString(v.PubSeed),
		"address":     v.Address.String(),
	}).Info("Vector")
}

func leafAction(c *cli.Context) error {
	p, v := env.params, env.vector
	logVector()

	var leaf *xmss.Leaf
	var err error
	if c.Bool("from-secret") {
		leaf, err = xmss.GenLeafFromSecret(p, v.SecretSeed, v.PubSeed, v.Address.OTS(), v.Address.LTree())
	} else {
		leaf, err = xmss.GenLeaf(p, v.SecretSeed, v.PubSeed, v.Address.OTS(), v.Address.LTree())
	}
	if err != nil {
		return cli.Exit(err, 1)
	}
	for i, pk := range leaf.PK {
		log.WithField("chain", i).Debugf("pk %x", pk)
	}
	log.WithField("address", leaf.OTSAddress.String()).Debug("OTS address after key generation")
	fmt.Printf("%x\n", leaf.Value)
	return nil
}

func pkgenAction(c *cli.Context) error {
	p, v := env.params, env.vector
	logVector()

	pk, last, err := wots.PkGen(p, v.SecretSeed, v.PubSeed, v.Address.OTS())
	if err != nil {
		return cli.Exit(err, 1)
	}
	if c.Bool("flat") {
		fmt.Printf("%x\n", wots.Flatten(pk))
	} else {
		printChains(pk)
	}
	fmt.Printf("address %s\n", last.String())
	return nil
}

func signAction(c *cli.Context) error {
	p, v := env.params, env.vector
	logVector()
	log.WithField("message", hexString(v.Message)).Info("Signing")

	lengths, err := wots.ChainLengths(p, v.Message)
	if err != nil {
		return cli.Exit(err, 1)
	}
	log.Debugf("chain lengths %v", lengths)

	sig, sks, err := wots.SignDebug(p, v.Message, v.SecretSeed, v.PubSeed, v.Address.OTS())
	if err != nil {
		return cli.Exit(err, 1)
	}
	for i, sk := range sks {
		log.WithField("chain", i).Tracef("[Secret] sk %x", sk)
	}
	if c.Bool("flat") {
		fmt.Printf("%x\n", wots.Flatten(sig))
	} else {
		printChains(sig)
	}
	return nil
}

func verifyAction(c *cli.Context) error {
	p, v := env.params, env.vector
	logVector()

	sig, err := parseSignature(p, c.String(SignatureFlag.Name))
	if err != nil {
		return cli.Exit(err, 1)
	}
	pk, _, err := wots.PkGen(p, v.SecretSeed, v.PubSeed, v.Address.OTS())
	if err != nil {
		return cli.Exit(err, 1)
	}
	ok, err := wots.Verify(p, v.Message, sig, pk, v.PubSeed, v.Address.OTS())
	if err != nil {
		return cli.Exit(err, 1)
	}
	printVerdict(ok)
	if !ok {
		return cli.Exit("verification failed", 1)
	}
	return nil
}

func chainAction(c *cli.Context) error {
	p, v := env.params, env.vector
	logVector()

	index := c.Int("chain")
	if index < 0 || index >= p.Len {
		return cli.Exit(fmt.Sprintf("chain index %d out of range [0, %d)", index, p.Len), 1)
	}
	start := c.Int("start")
	if start < 0 || start >= p.W {
		return cli.Exit(fmt.Sprintf("start position %d out of range [0, %d)", start, p.W), 1)
	}
	steps := p.W - 1 - start
	if c.IsSet("steps") {
		steps = c.Int("steps")
	}

	var input []byte
	if c.IsSet("input") {
		var err error
		if input, err = util.HexToDigest(c.String("input"), p.N); err != nil {
			return cli.Exit(err, 1)
		}
	} else {
		input = wots.ExpandSeed(p, v.SecretSeed)[index]
	}

	adrs := v.Address.OTS()
	adrs.SetChainAddress(uint32(index))
	log.WithFields(log.Fields{"chain": index, "start": start, "steps": steps}).Info("Chaining")

	trace := wots.ChainTrace(p, input, start, steps, v.PubSeed, &adrs)
	for i, value := range trace {
		fmt.Printf("%3d %x\n", start+i, value)
	}
	log.WithField("address", adrs.String()).Debug("Address after chaining")
	return nil
}

func expandAction(c *cli.Context) error {
	p, v := env.params, env.vector
	count := p.Len
	if c.IsSet("count") {
		count = c.Int("count")
	}
	if count < 0 {
		return cli.Exit("count must not be negative", 1)
	}
	log.WithFields(log.Fields{"seed": hexString(v.SecretSeed), "count": count}).Info("Expanding seed")
	printChains(wots.ExpandSeedN(p, v.SecretSeed, count))
	return nil
}

func getSeedAction(c *cli.Context) error {
	p, v := env.params, env.vector
	logVector()
	fmt.Printf("%x\n", wots.GetSeed(p, v.SecretSeed, v.Address.OTS()))
	return nil
}

func lengthsAction(c *cli.Context) error {
	p, v := env.params, env.vector
	lengths, err := wots.ChainLengths(p, v.Message)
	if err != nil {
		return cli.Exit(err, 1)
	}
	log.WithField("message", hexString(v.Message)).Info("Chain lengths")
	printDigitsPadded(p, lengths[:p.Len1])
	printDigitsPadded(p, lengths[p.Len1:])
	return nil
}

func thashAction(c *cli.Context) error {
	p, v := env.params, env.vector

	input, err := util.HexToBytes(c.String("input"))
	if err != nil {
		return cli.Exit(err, 1)
	}
	adrs := v.Address.Copy()

	var out []byte
	switch kind := c.String("kind"); kind {
	case "f":
		if len(input) != p.N {
			return cli.Exit(fmt.Sprintf("%v: F input is %d bytes, want %d", util.ErrLength, len(input), p.N), 1)
		}
		out = p.Tweak.F(input, v.PubSeed, adrs)
	case "h":
		if len(input) != 2*p.N {
			return cli.Exit(fmt.Sprintf("%v: H input is %d bytes, want %d", util.ErrLength, len(input), 2*p.N), 1)
		}
		out = p.Tweak.H(input, v.PubSeed, adrs)
	default:
		return cli.Exit(fmt.Sprintf("unknown kind %q, want f or h", kind), 1)
	}
	fmt.Printf("%x\n", out)
	fmt.Printf("address %s\n", adrs.String())
	return nil
}

func diagnoseAction(c *cli.Context) error {
	p, v := env.params, env.vector
	logVector()

	sig, err := parseSignature(p, c.String(SignatureFlag.Name))
	if err != nil {
		return cli.Exit(err, 1)
	}
	expected, err := wots.ChainLengths(p, v.Message)
	if err != nil {
		return cli.Exit(err, 1)
	}
	pk, _, err := wots.PkGen(p, v.SecretSeed, v.PubSeed, v.Address.OTS())
	if err != nil {
		return cli.Exit(err, 1)
	}

	digits, recovered := wots.DigitsFromSignature(p, sig, pk, v.PubSeed, v.Address.OTS())
	mismatches := wots.Mismatches(expected, digits)
	printDigitsVsExpected(p, expected, digits)
	if len(mismatches) > 0 {
		log.WithFields(log.Fields{"chains": mismatches, "recovered": recovered}).Warn("Signature chains disagree with the message")
	}
	printVerdict(recovered && len(mismatches) == 0)
	return nil
}

func addVectorCommands(app *cli.App) {
	flat := &cli.BoolFlag{Name: "flat", Usage: "print the chains as one hex string"}
	app.Commands = append(app.Commands,
		&cli.Command{
			Name:   "leaf",
			Usage:  "Compute the L-tree leaf of the vector key pair",
			Flags:  []cli.Flag{&cli.BoolFlag{Name: "from-secret", Usage: "derive the leaf seed from the secret seed first"}},
			Action: leafAction,
		},
		&cli.Command{
			Name:   "pkgen",
			Usage:  "Generate the WOTS+ public key",
			Flags:  []cli.Flag{flat},
			Action: pkgenAction,
		},
		&cli.Command{
			Name:   "sign",
			Usage:  "Sign the vector message",
			Flags:  []cli.Flag{flat},
			Action: signAction,
		},
		&cli.Command{
			Name:   "verify",
			Usage:  "Verify a flat signature of the vector message",
			Flags:  []cli.Flag{SignatureFlag},
			Action: verifyAction,
		},
		&cli.Command{
			Name:  "chain",
			Usage: "Trace one hash chain",
			Flags: []cli.Flag{
				&cli.IntFlag{Name: "chain", Usage: "chain index"},
				&cli.IntFlag{Name: "start", Usage: "start position"},
				&cli.IntFlag{Name: "steps", Usage: "steps, defaults to the rest of the chain"},
				&cli.StringFlag{Name: "input", Usage: "chain input, defaults to the expanded secret"},
			},
			Action: chainAction,
		},
		&cli.Command{
			Name:   "expand",
			Usage:  "Expand the secret seed",
			Flags:  []cli.Flag{&cli.IntFlag{Name: "count", Usage: "values to derive, defaults to len"}},
			Action: expandAction,
		},
		&cli.Command{
			Name:   "getseed",
			Usage:  "Derive the per-leaf seed from the secret seed",
			Action: getSeedAction,
		},
		&cli.Command{
			Name:   "lengths",
			Usage:  "Print the message and checksum digits of the vector message",
			Action: lengthsAction,
		},
		&cli.Command{
			Name:  "thash",
			Usage: "Apply F or H once at the vector address",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "kind", Value: "f", Usage: "f or h"},
				&cli.StringFlag{Name: "input", Required: true, Usage: "n bytes hex for f, 2n for h"},
			},
			Action: thashAction,
		},
		&cli.Command{
			Name:   "diagnose",
			Usage:  "Recover the chain positions of a signature and compare with the message",
			Flags:  []cli.Flag{SignatureFlag},
			Action: diagnoseAction,
		},
	)
}
