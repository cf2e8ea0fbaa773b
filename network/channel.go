package network

import "github.com/sarchlab/netsim/sim"

// A Channel is the FIFO link from one node to another.
//
// At most one PopEvent of a channel is waiting in the engine at any time. The
// first message enqueued into an empty channel schedules it, and every pop
// that leaves messages behind schedules the next one.
type Channel struct {
	net        *Network
	from, to   *Node
	delayBound sim.VTimeInSec
	queue      []*Delivery
}

func newChannel(net *Network, from, to *Node, delayBound sim.VTimeInSec) *Channel {
	return &Channel{
		net:        net,
		from:       from,
		to:         to,
		delayBound: delayBound,
	}
}

// From returns the sending end of the channel.
func (c *Channel) From() *Node {
	return c.from
}

// To returns the receiving end of the channel.
func (c *Channel) To() *Node {
	return c.to
}

// DelayBound returns the upper bound of the delay between two pops.
func (c *Channel) DelayBound() sim.VTimeInSec {
	return c.delayBound
}

// Len returns the number of messages waiting in the channel.
func (c *Channel) Len() int {
	return len(c.queue)
}

// Enqueue appends a message to the tail of the channel.
func (c *Channel) Enqueue(d *Delivery) {
	c.queue = append(c.queue, d)

	if len(c.queue) == 1 {
		c.schedulePop()
	}
}

// Pop removes the head message and delivers it right away. Popping an empty
// channel does nothing.
func (c *Channel) Pop() {
	if len(c.queue) == 0 {
		return
	}

	head := c.queue[0]
	c.queue[0] = nil
	c.queue = c.queue[1:]

	// The next pop is scheduled before delivering, so that a message enqueued
	// by the receiver does not schedule a second pop.
	if len(c.queue) > 0 {
		c.schedulePop()
	}

	c.net.DeliverNow(head)
}

func (c *Channel) schedulePop() {
	now := c.net.engine.CurrentTime()
	delay := c.net.sampleDelay(c.delayBound)

	evt := &PopEvent{
		EventBase: sim.NewEventBase(now+delay, c.net),
		Channel:   c,
	}
	c.net.engine.Schedule(evt)
}
