package simulation

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"

	"github.com/sarchlab/netsim/network"
	"github.com/sarchlab/netsim/sim"
)

// Environment variables read by LoadConfig.
const (
	EnvDeliveryModel = "NETSIM_DELIVERY_MODEL"
	EnvSeed          = "NETSIM_SEED"
	EnvNetworkDelay  = "NETSIM_NETWORK_DELAY"
	EnvChannelDelay  = "NETSIM_CHANNEL_DELAY"
	EnvIDGenerator   = "NETSIM_ID_GENERATOR"
	EnvStopOnError   = "NETSIM_STOP_ON_ERROR"
)

// Config holds the parameters of a simulation.
type Config struct {
	DeliveryModel     network.DeliveryModel
	Seed              int64
	NetworkDelayBound sim.VTimeInSec
	ChannelDelayBound sim.VTimeInSec

	// ParallelIDs switches message IDs from sequential numbers to xids.
	ParallelIDs bool

	// StopOnError makes Run return the first failing event instead of
	// logging it and continuing.
	StopOnError bool
}

// DefaultConfig returns a Random network with seed 1001 and 200ms delay
// bounds.
func DefaultConfig() Config {
	return Config{
		DeliveryModel:     network.Random,
		Seed:              network.DefaultSeed,
		NetworkDelayBound: network.DefaultDelayBound,
		ChannelDelayBound: network.DefaultDelayBound,
	}
}

// Validate checks that the config can be used to build a simulation. All the
// problems found are reported together.
func (c Config) Validate() error {
	var result error

	if !(c.NetworkDelayBound >= 0) {
		result = multierror.Append(result, fmt.Errorf(
			"network delay bound %v is not a non-negative number",
			c.NetworkDelayBound))
	}

	if !(c.ChannelDelayBound >= 0) {
		result = multierror.Append(result, fmt.Errorf(
			"channel delay bound %v is not a non-negative number",
			c.ChannelDelayBound))
	}

	switch c.DeliveryModel {
	case network.Random, network.FIFO:
	default:
		result = multierror.Append(result,
			fmt.Errorf("unknown delivery model %s", c.DeliveryModel))
	}

	return result
}

// LoadConfig starts from DefaultConfig and overrides it with the NETSIM_*
// environment variables. The given .env files are loaded first; a missing
// file is not an error. Variables already set in the environment win over the
// files.
func LoadConfig(files ...string) (Config, error) {
	cfg := DefaultConfig()

	for _, f := range files {
		err := godotenv.Load(f)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return cfg, fmt.Errorf("loading %s: %w", f, err)
		}
	}

	if v, ok := lookup(EnvDeliveryModel); ok {
		m, err := network.ParseDeliveryModel(v)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvDeliveryModel, err)
		}
		cfg.DeliveryModel = m
	}

	if v, ok := lookup(EnvSeed); ok {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvSeed, err)
		}
		cfg.Seed = seed
	}

	if v, ok := lookup(EnvNetworkDelay); ok {
		d, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvNetworkDelay, err)
		}
		cfg.NetworkDelayBound = sim.VTimeInSec(d)
	}

	if v, ok := lookup(EnvChannelDelay); ok {
		d, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvChannelDelay, err)
		}
		cfg.ChannelDelayBound = sim.VTimeInSec(d)
	}

	if v, ok := lookup(EnvIDGenerator); ok {
		switch strings.ToLower(v) {
		case "sequential":
			cfg.ParallelIDs = false
		case "parallel":
			cfg.ParallelIDs = true
		default:
			return cfg, fmt.Errorf("%s: unknown id generator %q",
				EnvIDGenerator, v)
		}
	}

	if v, ok := lookup(EnvStopOnError); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvStopOnError, err)
		}
		cfg.StopOnError = b
	}

	return cfg, cfg.Validate()
}

func lookup(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return "", false
	}

	v = strings.TrimSpace(v)

	return v, v != ""
}
