package network

import (
	"log"
	"math/rand"

	"github.com/sarchlab/netsim/sim"
)

// DefaultSeed is the seed used when no seed or random source is given.
const DefaultSeed int64 = 1001

// DefaultDelayBound is the default upper bound of every sampled delay.
const DefaultDelayBound sim.VTimeInSec = 200e-3

// Builder can build networks.
type Builder struct {
	engine            sim.EventScheduler
	model             DeliveryModel
	seed              int64
	rng               *rand.Rand
	idGen             sim.IDGenerator
	networkDelayBound sim.VTimeInSec
	channelDelayBound sim.VTimeInSec
}

// MakeBuilder creates a builder with default parameters.
func MakeBuilder() Builder {
	return Builder{
		model:             Random,
		seed:              DefaultSeed,
		networkDelayBound: DefaultDelayBound,
		channelDelayBound: DefaultDelayBound,
	}
}

// WithEngine sets the engine that the network schedules events on.
func (b Builder) WithEngine(e sim.EventScheduler) Builder {
	b.engine = e
	return b
}

// WithDeliveryModel sets the delivery model. The model cannot be changed once
// the network is built.
func (b Builder) WithDeliveryModel(m DeliveryModel) Builder {
	b.model = m
	return b
}

// WithSeed sets the seed of the random source that samples delays.
func (b Builder) WithSeed(seed int64) Builder {
	b.seed = seed
	return b
}

// WithRand sets the random source that samples delays. It overrides the seed.
func (b Builder) WithRand(rng *rand.Rand) Builder {
	b.rng = rng
	return b
}

// WithIDGenerator sets the generator of message IDs.
func (b Builder) WithIDGenerator(g sim.IDGenerator) Builder {
	b.idGen = g
	return b
}

// WithNetworkDelayBound sets the upper bound of the per-message delay under
// the Random model.
func (b Builder) WithNetworkDelayBound(d sim.VTimeInSec) Builder {
	b.networkDelayBound = d
	return b
}

// WithChannelDelayBound sets the upper bound of the delay between two pops of
// a FIFO channel.
func (b Builder) WithChannelDelayBound(d sim.VTimeInSec) Builder {
	b.channelDelayBound = d
	return b
}

// Build creates a new network.
func (b Builder) Build(name string) *Network {
	if b.engine == nil {
		log.Panic("engine is not set")
	}

	if b.networkDelayBound < 0 || b.channelDelayBound < 0 {
		log.Panic("delay bounds must not be negative")
	}

	n := &Network{
		name:              name,
		engine:            b.engine,
		rng:               b.rng,
		idGen:             b.idGen,
		model:             b.model,
		networkDelayBound: b.networkDelayBound,
		channelDelayBound: b.channelDelayBound,
		nodes:             make(map[NodeID]*Node),
		channels:          make(map[link]*Channel),
	}

	if n.rng == nil {
		n.rng = rand.New(rand.NewSource(b.seed))
	}

	if n.idGen == nil {
		n.idGen = sim.NewSequentialIDGenerator()
	}

	return n
}
