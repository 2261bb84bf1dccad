package chaincfg

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrNonPositiveFund = errors.New("genesis fund amount must be positive")
	ErrExceedsMaxMoney = errors.New("genesis funds exceed max money")
)

// InitialSupply returns the sum of all genesis allocations, the supply at
// height 0.  It fails when an amount is not positive or the total does not
// fit below MaxMoney.
func (p *Params) InitialSupply() (int64, error) {
	var total int64
	for i, fund := range p.Genesis.Funds {
		if fund.Amount <= 0 {
			return 0, fmt.Errorf("%w: fund %d has amount %d", ErrNonPositiveFund, i, fund.Amount)
		}
		if total > math.MaxInt64-fund.Amount {
			return 0, fmt.Errorf("%w: fund %d overflows the total", ErrExceedsMaxMoney, i)
		}
		total += fund.Amount
	}

	if total > p.MaxMoney {
		return 0, fmt.Errorf("%w: %d > %d", ErrExceedsMaxMoney, total, p.MaxMoney)
	}
	return total, nil
}
