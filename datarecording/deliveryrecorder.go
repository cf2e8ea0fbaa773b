package datarecording

import (
	"fmt"

	"github.com/sarchlab/netsim/network"
	"github.com/sarchlab/netsim/sim"
)

// DeliveriesTable is the table that DeliveryRecorder writes into.
const DeliveriesTable = "deliveries"

// Values of the Kind column.
const (
	KindDeliver = "deliver"
	KindDrop    = "drop"
)

// DeliveryEntry is one row of the deliveries table.
type DeliveryEntry struct {
	ID       string
	Kind     string
	SendTime float64
	RecvTime float64
	FromNode int
	ToNode   int
	Msg      string
}

// DeliveryRecorder is a network hook that records every message that reaches
// its destination, delivered or dropped.
type DeliveryRecorder struct {
	recorder  DataRecorder
	delivered int
	dropped   int
}

// NewDeliveryRecorder creates the deliveries table and returns the hook.
func NewDeliveryRecorder(recorder DataRecorder) *DeliveryRecorder {
	recorder.CreateTable(DeliveriesTable, DeliveryEntry{})

	return &DeliveryRecorder{recorder: recorder}
}

// Func records deliveries and drops.
func (h *DeliveryRecorder) Func(ctx sim.HookCtx) {
	d, ok := ctx.Item.(*network.Delivery)
	if !ok {
		return
	}

	var kind string

	switch ctx.Pos {
	case network.HookPosMsgDeliver:
		kind = KindDeliver
		h.delivered++
	case network.HookPosMsgDrop:
		kind = KindDrop
		h.dropped++
	default:
		return
	}

	h.recorder.InsertData(DeliveriesTable, DeliveryEntry{
		ID:       d.ID,
		Kind:     kind,
		SendTime: float64(d.SendTime),
		RecvTime: float64(d.RecvTime),
		FromNode: int(d.From.ID()),
		ToNode:   int(d.To.ID()),
		Msg:      fmt.Sprint(d.Msg),
	})
}

// Delivered returns the number of messages recorded as delivered.
func (h *DeliveryRecorder) Delivered() int {
	return h.delivered
}

// Dropped returns the number of messages recorded as dropped.
func (h *DeliveryRecorder) Dropped() int {
	return h.dropped
}
