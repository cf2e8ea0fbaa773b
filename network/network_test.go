package network

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	gomock "go.uber.org/mock/gomock"

	"github.com/sarchlab/netsim/sim"
)

type unknownEvent struct {
	*sim.EventBase
}

var _ = Describe("Network", func() {
	var (
		mockCtrl *gomock.Controller
		engine   *sim.SerialEngine
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		engine = sim.NewSerialEngine()
		engine.SetErrorPolicy(sim.StopOnError)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should panic without an engine", func() {
		Expect(func() { MakeBuilder().Build("Net") }).To(Panic())
	})

	It("should panic with a negative delay bound", func() {
		Expect(func() {
			MakeBuilder().
				WithEngine(engine).
				WithNetworkDelayBound(-1).
				Build("Net")
		}).To(Panic())
	})

	Context("when registering nodes", func() {
		It("should list nodes in id order", func() {
			net := MakeBuilder().WithEngine(engine).Build("Net")
			NewNode(301, net)
			NewNode(101, net)
			NewNode(201, net)

			ids := []NodeID{}
			for _, n := range net.Nodes() {
				ids = append(ids, n.ID())
			}

			Expect(ids).To(Equal([]NodeID{101, 201, 301}))
		})

		It("should ignore a node registered twice", func() {
			net := MakeBuilder().
				WithEngine(engine).
				WithDeliveryModel(FIFO).
				Build("Net")
			a := NewNode(1, net)
			NewNode(2, net)

			net.Register(a)
			dup := NewNode(1, net)

			Expect(net.Nodes()).To(HaveLen(2))
			Expect(net.NumChannels()).To(Equal(2))

			resolved, err := net.Resolve(dup)
			Expect(err).NotTo(HaveOccurred())
			Expect(resolved).To(BeIdenticalTo(a))
		})

		It("should panic when registering a node of another network", func() {
			net := MakeBuilder().WithEngine(engine).Build("Net")
			other := MakeBuilder().WithEngine(engine).Build("Other")
			n := NewNode(1, other)

			Expect(func() { net.Register(n) }).To(Panic())
		})

		It("should not allocate channels under Random", func() {
			net := MakeBuilder().WithEngine(engine).Build("Net")
			a := NewNode(1, net)
			b := NewNode(2, net)

			Expect(net.DeliveryModel()).To(Equal(Random))
			Expect(net.NumChannels()).To(Equal(0))
			Expect(net.Channel(a, b)).To(BeNil())
		})

		It("should grow the channel mesh under FIFO", func() {
			net := MakeBuilder().
				WithEngine(engine).
				WithDeliveryModel(FIFO).
				Build("Net")

			nodes := []*Node{}
			for i := 0; i < 5; i++ {
				nodes = append(nodes, NewNode(NodeID(i), net))
				Expect(net.NumChannels()).To(Equal((i + 1) * i))
			}

			for _, from := range nodes {
				for _, to := range nodes {
					ch := net.Channel(from, to)
					if from == to {
						Expect(ch).To(BeNil())
						continue
					}

					Expect(ch).NotTo(BeNil())
					Expect(ch.From()).To(BeIdenticalTo(from))
					Expect(ch.To()).To(BeIdenticalTo(to))
					Expect(ch.DelayBound()).To(Equal(DefaultDelayBound))
				}
			}
		})
	})

	Context("when resolving", func() {
		It("should fail on unknown ids", func() {
			net := MakeBuilder().WithEngine(engine).Build("Net")
			NewNode(1, net)

			_, err := net.Resolve(NodeID(2))
			Expect(errors.Is(err, ErrUnknownNode)).To(BeTrue())

			_, err = net.Resolve(nil)
			Expect(errors.Is(err, ErrUnknownNode)).To(BeTrue())
		})
	})

	Context("when delivering", func() {
		var (
			net      *Network
			a, b     *Node
			receiver *MockReceiver
		)

		BeforeEach(func() {
			net = MakeBuilder().WithEngine(engine).Build("Net")
			a = NewNode(1, net)
			b = NewNode(2, net)
			receiver = NewMockReceiver(mockCtrl)
			b.SetReceiver(receiver)
		})

		It("should deliver within the delay bound", func() {
			receiver.EXPECT().Recv(gomock.Any(), gomock.Any(), "x").
				Do(func(now sim.VTimeInSec, from *Node, msg any) {
					Expect(now).To(BeNumerically(">=", 0))
					Expect(now).To(BeNumerically("<", DefaultDelayBound))
					Expect(from).To(BeIdenticalTo(a))
				})

			Expect(a.Send(b, "x")).To(Succeed())
			Expect(engine.Run()).To(Succeed())
		})

		It("should drop messages to a failed node", func() {
			receiver.EXPECT().Recv(gomock.Any(), gomock.Any(), gomock.Any()).
				Times(0)

			dropped := 0
			net.AcceptHook(sim.HookFunc(func(ctx sim.HookCtx) {
				if ctx.Pos == HookPosMsgDrop {
					dropped++
				}
			}))

			Expect(a.Send(b, "x")).To(Succeed())
			b.Failed()

			Expect(engine.Run()).To(Succeed())
			Expect(dropped).To(Equal(1))
			Expect(engine.PendingEvents()).To(Equal(0))
		})

		It("should deliver again after recovery", func() {
			receiver.EXPECT().Recv(gomock.Any(), gomock.Any(), "second")

			b.Failed()
			Expect(a.Send(b, "first")).To(Succeed())
			Expect(b.AddCallback(1, func(sim.VTimeInSec) error {
				b.Recovered()
				return a.Send(b, "second")
			})).To(Succeed())

			Expect(engine.Run()).To(Succeed())
		})

		It("should let a node send to itself", func() {
			receiver.EXPECT().Recv(gomock.Any(), gomock.Any(), "self").
				Do(func(_ sim.VTimeInSec, from *Node, _ any) {
					Expect(from).To(BeIdenticalTo(b))
				})

			Expect(b.Send(b, "self")).To(Succeed())
			Expect(engine.Run()).To(Succeed())
		})

		It("should invoke hooks in order", func() {
			var positions []*sim.HookPos
			net.AcceptHook(sim.HookFunc(func(ctx sim.HookCtx) {
				Expect(ctx.Domain).To(BeIdenticalTo(net))
				positions = append(positions, ctx.Pos)
			}))
			receiver.EXPECT().Recv(gomock.Any(), gomock.Any(), gomock.Any())

			Expect(a.Send(b, "x")).To(Succeed())
			Expect(engine.Run()).To(Succeed())

			Expect(positions).To(Equal([]*sim.HookPos{
				HookPosMsgSend, HookPosMsgDeliver,
			}))
		})
	})

	It("should reject events it does not own", func() {
		net := MakeBuilder().WithEngine(engine).Build("Net")

		err := net.Handle(&unknownEvent{sim.NewEventBase(0, net)})

		Expect(err).To(HaveOccurred())
	})

	It("should refuse self sends under FIFO", func() {
		net := MakeBuilder().
			WithEngine(engine).
			WithDeliveryModel(FIFO).
			Build("Net")
		a := NewNode(1, net)

		err := a.Send(a, "x")

		Expect(errors.Is(err, ErrNoChannel)).To(BeTrue())
		Expect(engine.PendingEvents()).To(Equal(0))
	})

	It("should report callback failures to the engine", func() {
		net := MakeBuilder().WithEngine(engine).Build("Net")
		a := NewNode(1, net)
		cause := errors.New("callback failed")

		Expect(a.AddCallback(1, func(sim.VTimeInSec) error {
			return cause
		})).To(Succeed())

		Expect(errors.Is(engine.Run(), cause)).To(BeTrue())
	})
})

var _ = Describe("DeliveryModel", func() {
	It("should parse", func() {
		m, err := ParseDeliveryModel("FIFO")
		Expect(err).NotTo(HaveOccurred())
		Expect(m).To(Equal(FIFO))

		m, err = ParseDeliveryModel(" random ")
		Expect(err).NotTo(HaveOccurred())
		Expect(m).To(Equal(Random))

		_, err = ParseDeliveryModel("lifo")
		Expect(err).To(HaveOccurred())
	})

	It("should print", func() {
		Expect(FIFO.String()).To(Equal("fifo"))
		Expect(Random.String()).To(Equal("random"))
		Expect(DeliveryModel(7).String()).To(Equal("DeliveryModel(7)"))
	})
})
