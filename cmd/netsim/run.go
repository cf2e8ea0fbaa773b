package main

import (
	"fmt"
	"io"
	"log"

	"github.com/spf13/cobra"

	"github.com/sarchlab/netsim/network"
	"github.com/sarchlab/netsim/sim"
	"github.com/sarchlab/netsim/simulation"
)

type runOptions struct {
	cfg         simulation.Config
	record      bool
	recordFile  string
	logEvents   bool
	withFailure bool
}

type runSummary struct {
	endTime   sim.VTimeInSec
	delivered int
	dropped   int
}

func newRunCmd(out io.Writer) *cobra.Command {
	defaults := simulation.DefaultConfig()

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run the reference exchange between nodes 101 to 401.",
		Long: "Run builds nodes 101, 201, 301 and 401. Nodes 101 and 301 " +
			"each send three messages to 201 and to 401, and every " +
			"delivery is printed.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts, err := optionsFromFlags(cmd)
			if err != nil {
				return err
			}

			summary, err := runDriver(opts, out)
			if err != nil {
				return err
			}

			fmt.Fprintf(out,
				"Simulation finished at %f: %d delivered, %d dropped\n",
				summary.endTime, summary.delivered, summary.dropped)

			return nil
		},
	}

	flags := runCmd.Flags()
	flags.String("model", defaults.DeliveryModel.String(),
		"Delivery model, random or fifo.")
	flags.Int64("seed", defaults.Seed, "Seed of the delay sampler.")
	flags.Float64("network-delay", float64(defaults.NetworkDelayBound),
		"Upper bound of the delay of a message in the random model, "+
			"in seconds.")
	flags.Float64("channel-delay", float64(defaults.ChannelDelayBound),
		"Upper bound of the service time of a channel in the fifo model, "+
			"in seconds.")
	flags.Bool("stop-on-error", defaults.StopOnError,
		"Stop at the first failing event.")
	flags.String("record", "",
		"Record deliveries into the given SQLite file (without extension).")
	flags.Bool("log-events", false, "Print every event handled.")
	flags.Bool("with-failure", false,
		"Fail node 401 at the start and recover it at t=0.01.")

	return runCmd
}

// optionsFromFlags loads the config from .env and the environment, and lets
// the flags that are set explicitly override it.
func optionsFromFlags(cmd *cobra.Command) (runOptions, error) {
	var opts runOptions

	cfg, err := simulation.LoadConfig(".env")
	if err != nil {
		return opts, err
	}

	flags := cmd.Flags()

	if flags.Changed("model") {
		s, _ := flags.GetString("model")

		cfg.DeliveryModel, err = network.ParseDeliveryModel(s)
		if err != nil {
			return opts, err
		}
	}

	if flags.Changed("seed") {
		cfg.Seed, _ = flags.GetInt64("seed")
	}

	if flags.Changed("network-delay") {
		d, _ := flags.GetFloat64("network-delay")
		cfg.NetworkDelayBound = sim.VTimeInSec(d)
	}

	if flags.Changed("channel-delay") {
		d, _ := flags.GetFloat64("channel-delay")
		cfg.ChannelDelayBound = sim.VTimeInSec(d)
	}

	if flags.Changed("stop-on-error") {
		cfg.StopOnError, _ = flags.GetBool("stop-on-error")
	}

	err = cfg.Validate()
	if err != nil {
		return opts, err
	}

	opts.cfg = cfg
	opts.record = flags.Changed("record")
	opts.recordFile, _ = flags.GetString("record")
	opts.logEvents, _ = flags.GetBool("log-events")
	opts.withFailure, _ = flags.GetBool("with-failure")

	return opts, nil
}

func runDriver(opts runOptions, out io.Writer) (runSummary, error) {
	var summary runSummary

	builder := simulation.MakeBuilder().WithConfig(opts.cfg)
	if opts.record {
		builder = builder.WithDataRecording(opts.recordFile)
	}

	s := builder.Build()
	defer s.Terminate()

	logger := log.New(out, "", 0)

	if opts.logEvents {
		s.Engine().AcceptHook(sim.NewEventLogger(logger))
	}

	s.Network().AcceptHook(network.NewDeliveryLogger(logger))
	s.Network().AcceptHook(sim.HookFunc(func(ctx sim.HookCtx) {
		switch ctx.Pos {
		case network.HookPosMsgDeliver:
			summary.delivered++
		case network.HookPosMsgDrop:
			summary.dropped++
		}
	}))

	err := sendReferenceMessages(s, opts.withFailure)
	if err != nil {
		return summary, err
	}

	err = s.Run()
	summary.endTime = s.Engine().CurrentTime()

	if opts.record {
		fmt.Fprintf(out, "Recorded into %s\n", s.OutputFile())
	}

	return summary, err
}

func sendReferenceMessages(s *simulation.Simulation, withFailure bool) error {
	n1 := s.NewNode(101)
	n2 := s.NewNode(201)
	n3 := s.NewNode(301)
	n4 := s.NewNode(401)

	if withFailure {
		n4.Failed()

		err := n4.AddCallback(0.01, func(sim.VTimeInSec) error {
			n4.Recovered()
			return nil
		})
		if err != nil {
			return err
		}
	}

	sends := []struct {
		from   *network.Node
		to     *network.Node
		prefix string
	}{
		{n1, n2, "Hello"},
		{n1, n4, "Hello"},
		{n3, n2, "Aloha"},
		{n3, n4, "Aloha"},
	}

	for _, send := range sends {
		for i := 1; i <= 3; i++ {
			err := send.from.Send(send.to, fmt.Sprintf("%s%d", send.prefix, i))
			if err != nil {
				return err
			}
		}
	}

	return nil
}
