package network

import (
	"fmt"

	"github.com/sarchlab/netsim/sim"
)

// NodeID identifies a node within a network.
type NodeID int

// ID returns the id itself so that a bare NodeID can be used as a NodeRef.
func (id NodeID) ID() NodeID {
	return id
}

// A NodeRef refers to a node, either by the node itself or by its id.
type NodeRef interface {
	ID() NodeID
}

// A Receiver is the application logic that runs when a node receives a
// message.
type Receiver interface {
	Recv(now sim.VTimeInSec, from *Node, msg any)
}

// ReceiverFunc allows a plain function to be used as a Receiver.
type ReceiverFunc func(now sim.VTimeInSec, from *Node, msg any)

// Recv calls f(now, from, msg).
func (f ReceiverFunc) Recv(now sim.VTimeInSec, from *Node, msg any) {
	f(now, from, msg)
}

// A Node is an addressable endpoint of a network. Two nodes are equal if they
// have the same id.
type Node struct {
	id       NodeID
	alive    bool
	net      *Network
	receiver Receiver
}

// NewNode creates a live node and registers it with the network. Registering
// an id that the network already knows leaves the network unchanged.
func NewNode(id NodeID, net *Network) *Node {
	n := &Node{
		id:    id,
		alive: true,
		net:   net,
	}

	net.Register(n)

	return n
}

// ID returns the id of the node.
func (n *Node) ID() NodeID {
	return n.id
}

// Network returns the network that the node belongs to.
func (n *Node) Network() *Network {
	return n.net
}

func (n *Node) String() string {
	return fmt.Sprintf("Node-%d", n.id)
}

// Equal tells if two nodes have the same id.
func (n *Node) Equal(other *Node) bool {
	return other != nil && n.id == other.id
}

// Less orders nodes by id.
func (n *Node) Less(other *Node) bool {
	return n.id < other.id
}

// IsAlive tells if the node can receive messages.
func (n *Node) IsAlive() bool {
	return n.alive
}

// Failed marks the node as dead. Messages that reach a dead node are dropped.
func (n *Node) Failed() {
	n.alive = false
}

// Recovered marks the node as alive again.
func (n *Node) Recovered() {
	n.alive = true
}

// SetReceiver sets the application logic invoked for every message the node
// receives. A node without a receiver ignores its messages.
func (n *Node) SetReceiver(r Receiver) {
	n.receiver = r
}

// Send routes a message to the target. The call never advances time; the
// message arrives through events scheduled on the engine. A failed node can
// still send.
func (n *Node) Send(target NodeRef, msg any) error {
	to, err := n.net.Resolve(target)
	if err != nil {
		return err
	}

	return n.net.Route(n, to, msg)
}

// SendAfter schedules a Send that happens delay seconds from now. The target
// is resolved when the send happens.
func (n *Node) SendAfter(delay sim.VTimeInSec, target NodeRef, msg any) error {
	if err := delayMustBeValid(delay); err != nil {
		return err
	}

	now := n.net.engine.CurrentTime()
	evt := &SendEvent{
		EventBase: sim.NewEventBase(now+delay, n.net),
		From:      n,
		To:        target,
		Msg:       msg,
	}
	n.net.engine.Schedule(evt)

	return nil
}

// AddCallback schedules an action that runs delay seconds from now.
func (n *Node) AddCallback(delay sim.VTimeInSec, action Action) error {
	if err := delayMustBeValid(delay); err != nil {
		return err
	}

	now := n.net.engine.CurrentTime()
	evt := &CallbackEvent{
		EventBase: sim.NewEventBase(now+delay, n.net),
		Node:      n,
		Action:    action,
	}
	n.net.engine.Schedule(evt)

	return nil
}

// Recv hands a message to the node's receiver. The caller is responsible for
// checking that the node is alive.
func (n *Node) Recv(now sim.VTimeInSec, from *Node, msg any) {
	if n.receiver == nil {
		return
	}

	n.receiver.Recv(now, from, msg)
}

func delayMustBeValid(delay sim.VTimeInSec) error {
	if !(delay >= 0) {
		return fmt.Errorf("%w: %v", ErrInvalidDelay, delay)
	}

	return nil
}
