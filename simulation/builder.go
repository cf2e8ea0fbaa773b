package simulation

import (
	"fmt"

	"github.com/sarchlab/netsim/datarecording"
	"github.com/sarchlab/netsim/network"
	"github.com/sarchlab/netsim/sim"
)

// Builder can be used to build a simulation.
type Builder struct {
	cfg            Config
	recordOn       bool
	outputFileName string
}

// MakeBuilder creates a new builder with the default config and without data
// recording.
func MakeBuilder() Builder {
	return Builder{
		cfg: DefaultConfig(),
	}
}

// WithConfig sets the config of the simulation.
func (b Builder) WithConfig(cfg Config) Builder {
	b.cfg = cfg
	return b
}

// WithDataRecording records deliveries and run information into a SQLite
// database. An empty file name lets the recorder pick a unique one.
func (b Builder) WithDataRecording(filename string) Builder {
	b.recordOn = true
	b.outputFileName = filename

	return b
}

func (b Builder) parametersMustBeValid() {
	err := b.cfg.Validate()
	if err != nil {
		panic(err)
	}
}

// Build builds the simulation.
func (b Builder) Build() *Simulation {
	b.parametersMustBeValid()

	s := &Simulation{cfg: b.cfg}

	engine := sim.NewSerialEngine()
	if b.cfg.StopOnError {
		engine.SetErrorPolicy(sim.StopOnError)
	}
	s.engine = engine

	s.idGen = sim.NewSequentialIDGenerator()
	if b.cfg.ParallelIDs {
		s.idGen = sim.NewParallelIDGenerator()
	}

	s.network = network.MakeBuilder().
		WithEngine(s.engine).
		WithDeliveryModel(b.cfg.DeliveryModel).
		WithSeed(b.cfg.Seed).
		WithIDGenerator(s.idGen).
		WithNetworkDelayBound(b.cfg.NetworkDelayBound).
		WithChannelDelayBound(b.cfg.ChannelDelayBound).
		Build("Network")

	if b.recordOn {
		b.buildRecording(s)
	}

	return s
}

func (b Builder) buildRecording(s *Simulation) {
	writer := datarecording.New(b.outputFileName)
	s.dataRecorder = writer
	s.outputFile = writer.Filename()

	s.deliveryRecorder = datarecording.NewDeliveryRecorder(writer)
	s.network.AcceptHook(s.deliveryRecorder)

	s.runRecorder = datarecording.NewRunRecorder(writer)
	s.runRecorder.Start()
	s.runRecorder.Params(map[string]any{
		"Delivery Model":      b.cfg.DeliveryModel,
		"Seed":                b.cfg.Seed,
		"Network Delay Bound": fmt.Sprintf("%g", b.cfg.NetworkDelayBound),
		"Channel Delay Bound": fmt.Sprintf("%g", b.cfg.ChannelDelayBound),
		"Parallel IDs":        b.cfg.ParallelIDs,
		"Stop On Error":       b.cfg.StopOnError,
	})
}
