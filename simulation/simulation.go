package simulation

import (
	"github.com/sarchlab/netsim/datarecording"
	"github.com/sarchlab/netsim/network"
	"github.com/sarchlab/netsim/sim"
)

// A Simulation bundles the engine, the network and the ID generator of one
// run. Simulations share no state, so a fresh Simulation is a fresh start.
type Simulation struct {
	cfg     Config
	engine  *sim.SerialEngine
	network *network.Network
	idGen   sim.IDGenerator

	dataRecorder     datarecording.DataRecorder
	deliveryRecorder *datarecording.DeliveryRecorder
	runRecorder      *datarecording.RunRecorder
	outputFile       string
	terminated       bool
}

// New builds a simulation from the config, without data recording.
func New(cfg Config) *Simulation {
	return MakeBuilder().WithConfig(cfg).Build()
}

// Config returns the config that the simulation is built with.
func (s *Simulation) Config() Config {
	return s.cfg
}

// Engine returns the engine used in the simulation.
func (s *Simulation) Engine() *sim.SerialEngine {
	return s.engine
}

// Network returns the network of the simulation.
func (s *Simulation) Network() *network.Network {
	return s.network
}

// IDGenerator returns the generator of message IDs.
func (s *Simulation) IDGenerator() sim.IDGenerator {
	return s.idGen
}

// DataRecorder returns the recorder, or nil if data recording is off.
func (s *Simulation) DataRecorder() datarecording.DataRecorder {
	return s.dataRecorder
}

// DeliveryRecorder returns the hook that records deliveries, or nil if data
// recording is off.
func (s *Simulation) DeliveryRecorder() *datarecording.DeliveryRecorder {
	return s.deliveryRecorder
}

// OutputFile returns the database file that the simulation records into.
func (s *Simulation) OutputFile() string {
	return s.outputFile
}

// NewNode creates a node on the network of the simulation.
func (s *Simulation) NewNode(id network.NodeID) *network.Node {
	return network.NewNode(id, s.network)
}

// Run drains the event queue and notifies the simulation end handlers.
func (s *Simulation) Run() error {
	err := s.engine.Run()

	s.engine.Finished()

	return err
}

// Terminate finishes recording. It is safe to call more than once.
func (s *Simulation) Terminate() {
	if s.terminated {
		return
	}

	s.terminated = true

	if s.dataRecorder == nil {
		return
	}

	s.runRecorder.End()
	s.dataRecorder.Close()
}
