package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/ghodss/yaml"

	"github.com/xmss-hw/wotsref/address"
	"github.com/xmss-hw/wotsref/parameters"
	"github.com/xmss-hw/wotsref/util"
)

var ErrVectorMissing = errors.New("vector field not set")

type Config struct {
	Params ParamsConfig `json:"params"`
	Log    LogConfig    `json:"log"`
	Vector VectorConfig `json:"vector"`
}

type ParamsConfig struct {
	N       int    `json:"n"`
	W       int    `json:"w"`
	Hash    string `json:"hash"`
	Workers int    `json:"workers"`
}

type LogConfig struct {
	Level string `json:"level"`
}

// VectorConfig holds a test vector as hex strings. Address is the eight
// address words in wire order.
type VectorConfig struct {
	SecretSeed string    `json:"secret_seed"`
	PubSeed    string    `json:"pub_seed"`
	Address    [8]uint32 `json:"address"`
	Message    string    `json:"message"`
}

// Vector is a decoded VectorConfig.
type Vector struct {
	SecretSeed []byte
	PubSeed    []byte
	Address    address.Address
	Message    []byte
}

// Default is the w=16 SHA-256 instance the hardware cores implement, with
// the seed pair used by the reference test vectors.
func Default() *Config {
	return &Config{
		Params: ParamsConfig{
			N:       32,
			W:       16,
			Hash:    parameters.SHA256.String(),
			Workers: 1,
		},
		Log: LogConfig{
			Level: "info",
		},
		Vector: VectorConfig{
			SecretSeed: "1c349f208e70b458958c754e2adc32f1828f5c7379e39b8239f972a0d05eeb5f",
			PubSeed:    "2072a1a266f236c93b46dfa9ce868e792981d0d0a047817446cb7c58698fd233",
			Address:    [8]uint32{0, 0, 0, 0, 1, 0, 0, 0},
			Message:    "e5e5e5e5e5e5e5e5e5e5e5e5e5e5e5e507070707070707070707070707070707",
		},
	}
}

// Load reads a YAML file on top of Default. Fields missing from the file
// keep their default value.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	c := Default()
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return c, nil
}

// Parameters builds validated WOTS+ parameters from the params section.
func (c *Config) Parameters() (*parameters.Parameters, error) {
	hash, err := parameters.ParseHashFunc(c.Params.Hash)
	if err != nil {
		return nil, err
	}
	params, err := parameters.MakeParameters(c.Params.N, c.Params.W, hash)
	if err != nil {
		return nil, err
	}
	if c.Params.Workers > 0 {
		params.Workers = c.Params.Workers
	}
	return params, nil
}

// Decode validates the hex fields of the vector against digest length n.
func (v *VectorConfig) Decode(n int) (*Vector, error) {
	secretSeed, err := decodeField("secret_seed", v.SecretSeed, n)
	if err != nil {
		return nil, err
	}
	pubSeed, err := decodeField("pub_seed", v.PubSeed, n)
	if err != nil {
		return nil, err
	}
	message, err := decodeField("message", v.Message, n)
	if err != nil {
		return nil, err
	}
	return &Vector{
		SecretSeed: secretSeed,
		PubSeed:    pubSeed,
		Address:    address.FromWords(v.Address),
		Message:    message,
	}, nil
}

func decodeField(name, value string, n int) ([]byte, error) {
	if value == "" {
		return nil, fmt.Errorf("%w: %s", ErrVectorMissing, name)
	}
	b, err := util.HexToDigest(value, n)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return b, nil
}
