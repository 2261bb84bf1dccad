package blockchain

import (
	"time"

	"ledger-core/chaincfg"
)

// Behavior exposes the network-specific rules a chain derives from its
// parameters.
type Behavior interface {
	// CalculateProposingTimestamp returns the latest timestamp on the
	// network's stake timestamp grid that is not after t.
	CalculateProposingTimestamp(t time.Time) time.Time

	// CalculateProposingTimestampAfter returns the first grid timestamp
	// strictly after the grid slot containing t.
	CalculateProposingTimestampAfter(t time.Time) time.Time

	// Params returns the parameters the behavior was created from.
	Params() *chaincfg.Params
}

// gridBehavior quantizes timestamps to a fixed interval in whole seconds.
type gridBehavior struct {
	params   *chaincfg.Params
	interval int64
}

// NewBehaviorFromParams returns the behavior for the network described by
// params.  An interval below one second is treated as one second.
func NewBehaviorFromParams(params *chaincfg.Params) Behavior {
	interval := int64(params.BlockStakeTimestampInterval / time.Second)
	if interval < 1 {
		interval = 1
	}
	return &gridBehavior{
		params:   params,
		interval: interval,
	}
}

func (b *gridBehavior) CalculateProposingTimestamp(t time.Time) time.Time {
	secs := t.Unix()
	rem := secs % b.interval
	if rem < 0 {
		rem += b.interval
	}
	return time.Unix(secs-rem, 0).UTC()
}

func (b *gridBehavior) CalculateProposingTimestampAfter(t time.Time) time.Time {
	return b.CalculateProposingTimestamp(t).Add(time.Duration(b.interval) * time.Second)
}

func (b *gridBehavior) Params() *chaincfg.Params {
	return b.params
}
