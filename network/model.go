package network

import (
	"fmt"
	"strings"
)

// DeliveryModel decides how a sent message turns into a receive at the
// destination.
type DeliveryModel int

const (
	// Random delivers every message after an independent uniformly sampled
	// delay. Messages may be reordered, even between the same pair of nodes.
	Random DeliveryModel = iota

	// FIFO delivers messages through one channel per ordered node pair.
	// Messages on the same channel arrive in the order they were sent.
	FIFO
)

func (m DeliveryModel) String() string {
	switch m {
	case Random:
		return "random"
	case FIFO:
		return "fifo"
	default:
		return fmt.Sprintf("DeliveryModel(%d)", int(m))
	}
}

// ParseDeliveryModel converts "random" or "fifo" (case insensitive) into a
// DeliveryModel.
func ParseDeliveryModel(s string) (DeliveryModel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "random":
		return Random, nil
	case "fifo":
		return FIFO, nil
	default:
		return Random, fmt.Errorf("unknown delivery model %q", s)
	}
}
