package network

import (
	"log"

	"github.com/sarchlab/netsim/sim"
)

// DeliveryLogger is a hook that prints every message a node receives.
type DeliveryLogger struct {
	sim.LogHookBase

	// LogDrops also prints messages dropped at failed nodes.
	LogDrops bool
}

// NewDeliveryLogger creates a DeliveryLogger that writes into the logger.
func NewDeliveryLogger(logger *log.Logger) *DeliveryLogger {
	h := new(DeliveryLogger)
	h.Logger = logger
	return h
}

// Func prints the delivery.
func (h *DeliveryLogger) Func(ctx sim.HookCtx) {
	d, ok := ctx.Item.(*Delivery)
	if !ok {
		return
	}

	switch ctx.Pos {
	case HookPosMsgDeliver:
		h.Printf("Time %f %s Received from %s this message %v",
			d.RecvTime, d.To, d.From, d.Msg)
	case HookPosMsgDrop:
		if h.LogDrops {
			h.Printf("Time %f %s Dropped message from %s %v",
				d.RecvTime, d.To, d.From, d.Msg)
		}
	}
}
