package network

import "errors"

// ErrInvalidDelay is returned when a negative delay is used to defer a send
// or a callback.
var ErrInvalidDelay = errors.New("invalid delay value, should be non-negative")

// ErrUnknownNode is returned when a node identifier is not registered with
// the network.
var ErrUnknownNode = errors.New("unknown node")

// ErrNoChannel is returned when a FIFO network has no channel for a pair of
// nodes. A node never has a channel to itself.
var ErrNoChannel = errors.New("no channel between nodes")
