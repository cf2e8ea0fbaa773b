package network

import (
	"fmt"

	"github.com/sarchlab/netsim/sim"
)

// A Delivery tracks one message from the moment it is routed until it is
// handed to the destination or dropped.
type Delivery struct {
	ID       string
	SendTime sim.VTimeInSec
	RecvTime sim.VTimeInSec
	From     *Node
	To       *Node
	Msg      any
}

func (d *Delivery) String() string {
	return fmt.Sprintf("%s %s->%s %v", d.ID, d.From, d.To, d.Msg)
}

// HookPosMsgSend marks that the network accepted a message for delivery.
var HookPosMsgSend = &sim.HookPos{Name: "Msg Send"}

// HookPosMsgDeliver marks that a message is about to be received by a live
// node.
var HookPosMsgDeliver = &sim.HookPos{Name: "Msg Deliver"}

// HookPosMsgDrop marks that a message reached a failed node and was dropped.
var HookPosMsgDrop = &sim.HookPos{Name: "Msg Drop"}
