package network

import (
	"fmt"
	"log"
	"math/rand"
	"sort"

	"github.com/sarchlab/netsim/sim"
)

type link struct {
	from, to NodeID
}

// Network is the registry of the nodes of one simulation. It decides how a
// message travels from its source to its destination and it handles all the
// events that nodes and channels schedule.
type Network struct {
	sim.HookableBase

	name   string
	engine sim.EventScheduler
	rng    *rand.Rand
	idGen  sim.IDGenerator
	model  DeliveryModel

	networkDelayBound sim.VTimeInSec
	channelDelayBound sim.VTimeInSec

	nodes    map[NodeID]*Node
	ordered  []*Node
	channels map[link]*Channel
}

// Name returns the name of the network.
func (n *Network) Name() string {
	return n.name
}

// DeliveryModel returns the delivery model that the network uses.
func (n *Network) DeliveryModel() DeliveryModel {
	return n.model
}

// Register adds a node to the network. Registering a node whose id is already
// known is a no-op. Under FIFO, the new node gets one channel to and one
// channel from every node that is already registered.
func (n *Network) Register(node *Node) {
	if node.net != n {
		log.Panicf("%s is not created for network %s", node, n.name)
	}

	if _, found := n.nodes[node.id]; found {
		return
	}

	if n.model == FIFO {
		for _, other := range n.ordered {
			n.channels[link{other.id, node.id}] =
				newChannel(n, other, node, n.channelDelayBound)
			n.channels[link{node.id, other.id}] =
				newChannel(n, node, other, n.channelDelayBound)
		}
	}

	n.nodes[node.id] = node

	i := sort.Search(len(n.ordered), func(i int) bool {
		return n.ordered[i].id > node.id
	})
	n.ordered = append(n.ordered, nil)
	copy(n.ordered[i+1:], n.ordered[i:])
	n.ordered[i] = node
}

// Resolve returns the registered node that the reference points to.
func (n *Network) Resolve(ref NodeRef) (*Node, error) {
	if ref == nil {
		return nil, fmt.Errorf("%w: nil reference", ErrUnknownNode)
	}

	node, found := n.nodes[ref.ID()]
	if !found {
		return nil, fmt.Errorf("%w: %d", ErrUnknownNode, ref.ID())
	}

	return node, nil
}

// Nodes returns the registered nodes in ascending id order.
func (n *Network) Nodes() []*Node {
	nodes := make([]*Node, len(n.ordered))
	copy(nodes, n.ordered)
	return nodes
}

// Channel returns the FIFO channel from one node to another, or nil if there
// is no such channel.
func (n *Network) Channel(from, to NodeRef) *Channel {
	return n.channels[link{from.ID(), to.ID()}]
}

// NumChannels returns the number of channels allocated.
func (n *Network) NumChannels() int {
	return len(n.channels)
}

// Route sends a message from one registered node to another according to the
// delivery model.
func (n *Network) Route(from, to *Node, msg any) error {
	now := n.engine.CurrentTime()
	d := &Delivery{
		ID:       n.idGen.Generate(),
		SendTime: now,
		From:     from,
		To:       to,
		Msg:      msg,
	}

	switch n.model {
	case Random:
		n.notifySend(d)

		delay := n.sampleDelay(n.networkDelayBound)
		evt := &DeliverEvent{
			EventBase: sim.NewEventBase(now+delay, n),
			Delivery:  d,
		}
		n.engine.Schedule(evt)
	case FIFO:
		ch := n.channels[link{from.id, to.id}]
		if ch == nil {
			return fmt.Errorf("%w: %s -> %s", ErrNoChannel, from, to)
		}

		n.notifySend(d)
		ch.Enqueue(d)
	default:
		log.Panicf("unknown delivery model %s", n.model)
	}

	return nil
}

func (n *Network) notifySend(d *Delivery) {
	n.InvokeHook(sim.HookCtx{
		Domain: n,
		Pos:    HookPosMsgSend,
		Item:   d,
	})
}

// DeliverNow hands the message to the destination at the current time. If the
// destination is not alive, the message is dropped.
func (n *Network) DeliverNow(d *Delivery) {
	now := n.engine.CurrentTime()
	d.RecvTime = now

	hookCtx := sim.HookCtx{
		Domain: n,
		Item:   d,
	}

	if !d.To.alive {
		hookCtx.Pos = HookPosMsgDrop
		n.InvokeHook(hookCtx)
		return
	}

	hookCtx.Pos = HookPosMsgDeliver
	n.InvokeHook(hookCtx)

	d.To.Recv(now, d.From, d.Msg)
}

// Handle carries out the events scheduled by the nodes and channels of the
// network.
func (n *Network) Handle(e sim.Event) error {
	switch e := e.(type) {
	case *DeliverEvent:
		n.DeliverNow(e.Delivery)
		return nil
	case *PopEvent:
		e.Channel.Pop()
		return nil
	case *SendEvent:
		return e.From.Send(e.To, e.Msg)
	case *CallbackEvent:
		return e.Action(e.Time())
	default:
		return fmt.Errorf("network %s cannot handle event of type %T",
			n.name, e)
	}
}

func (n *Network) sampleDelay(bound sim.VTimeInSec) sim.VTimeInSec {
	return bound * sim.VTimeInSec(n.rng.Float64())
}
