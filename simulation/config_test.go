package simulation

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-multierror"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/netsim/network"
	"github.com/sarchlab/netsim/sim"
)

var allEnvVars = []string{
	EnvDeliveryModel,
	EnvSeed,
	EnvNetworkDelay,
	EnvChannelDelay,
	EnvIDGenerator,
	EnvStopOnError,
}

func unsetEnvVars() {
	for _, key := range allEnvVars {
		os.Unsetenv(key)
	}
}

var _ = Describe("Config", func() {
	BeforeEach(func() {
		unsetEnvVars()
		DeferCleanup(unsetEnvVars)
	})

	It("should default to a random network", func() {
		cfg := DefaultConfig()

		Expect(cfg.DeliveryModel).To(Equal(network.Random))
		Expect(cfg.Seed).To(Equal(int64(1001)))
		Expect(cfg.NetworkDelayBound).To(Equal(sim.VTimeInSec(0.2)))
		Expect(cfg.ChannelDelayBound).To(Equal(sim.VTimeInSec(0.2)))
		Expect(cfg.ParallelIDs).To(BeFalse())
		Expect(cfg.StopOnError).To(BeFalse())
		Expect(cfg.Validate()).To(Succeed())
	})

	It("should reject negative delay bounds", func() {
		cfg := DefaultConfig()
		cfg.ChannelDelayBound = -0.1

		Expect(cfg.Validate()).NotTo(Succeed())
	})

	It("should report every problem of a config", func() {
		cfg := Config{
			DeliveryModel:     network.DeliveryModel(7),
			NetworkDelayBound: -1,
			ChannelDelayBound: -1,
		}

		err := cfg.Validate()

		var merr *multierror.Error
		Expect(errors.As(err, &merr)).To(BeTrue())
		Expect(merr.Errors).To(HaveLen(3))
	})

	It("should return the default config without environment", func() {
		cfg, err := LoadConfig()

		Expect(err).NotTo(HaveOccurred())
		Expect(cfg).To(Equal(DefaultConfig()))
	})

	It("should read the environment", func() {
		os.Setenv(EnvDeliveryModel, "FIFO")
		os.Setenv(EnvSeed, "42")
		os.Setenv(EnvNetworkDelay, "0.5")
		os.Setenv(EnvChannelDelay, "0.25")
		os.Setenv(EnvIDGenerator, "parallel")
		os.Setenv(EnvStopOnError, "true")

		cfg, err := LoadConfig()

		Expect(err).NotTo(HaveOccurred())
		Expect(cfg).To(Equal(Config{
			DeliveryModel:     network.FIFO,
			Seed:              42,
			NetworkDelayBound: 0.5,
			ChannelDelayBound: 0.25,
			ParallelIDs:       true,
			StopOnError:       true,
		}))
	})

	DescribeTable("should reject malformed values",
		func(key, value string) {
			os.Setenv(key, value)

			_, err := LoadConfig()

			Expect(err).To(HaveOccurred())
		},
		Entry("model", EnvDeliveryModel, "tcp"),
		Entry("seed", EnvSeed, "abc"),
		Entry("network delay", EnvNetworkDelay, "fast"),
		Entry("negative channel delay", EnvChannelDelay, "-1"),
		Entry("id generator", EnvIDGenerator, "random"),
		Entry("stop on error", EnvStopOnError, "maybe"),
	)

	Context("with .env files", func() {
		var envFile string

		BeforeEach(func() {
			dir, err := os.MkdirTemp("", "netsim")
			Expect(err).NotTo(HaveOccurred())
			DeferCleanup(os.RemoveAll, dir)

			envFile = filepath.Join(dir, ".env")
			err = os.WriteFile(envFile,
				[]byte("NETSIM_DELIVERY_MODEL=fifo\nNETSIM_SEED=7\n"), 0o644)
			Expect(err).NotTo(HaveOccurred())
		})

		It("should load the file", func() {
			cfg, err := LoadConfig(envFile)

			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.DeliveryModel).To(Equal(network.FIFO))
			Expect(cfg.Seed).To(Equal(int64(7)))
		})

		It("should prefer the environment over the file", func() {
			os.Setenv(EnvSeed, "9")

			cfg, err := LoadConfig(envFile)

			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Seed).To(Equal(int64(9)))
		})

		It("should ignore a missing file", func() {
			_, err := LoadConfig(filepath.Join(filepath.Dir(envFile), "none"))

			Expect(err).NotTo(HaveOccurred())
		})
	})
})
