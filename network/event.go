package network

import "github.com/sarchlab/netsim/sim"

// DeliverEvent hands a message to its destination when it fires. The Random
// delivery model schedules one per message.
type DeliverEvent struct {
	*sim.EventBase
	Delivery *Delivery
}

// PopEvent releases the head message of a FIFO channel.
type PopEvent struct {
	*sim.EventBase
	Channel *Channel
}

// SendEvent performs a deferred Node.Send.
type SendEvent struct {
	*sim.EventBase
	From *Node
	To   NodeRef
	Msg  any
}

// An Action is arbitrary deferred work scheduled with Node.AddCallback.
type Action func(now sim.VTimeInSec) error

// CallbackEvent runs a deferred Action.
type CallbackEvent struct {
	*sim.EventBase
	Node   *Node
	Action Action
}
