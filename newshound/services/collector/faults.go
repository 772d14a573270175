package collector

// FaultBudget is the patience counter of the crawl loop: every result
// node without a usable date, and every node outside the requested
// window, spends one fault; any accepted record refills the budget.
// Reaching zero is the signal that the tail of the listing is no longer
// relevant.
type FaultBudget struct {
	ceiling   int
	remaining int
}

func NewFaultBudget(ceiling int) *FaultBudget {
	if ceiling <= 0 {
		ceiling = 1
	}
	return &FaultBudget{ceiling: ceiling, remaining: ceiling}
}

// Spend consumes one fault. The counter clamps at zero.
func (b *FaultBudget) Spend() {
	if b.remaining > 0 {
		b.remaining--
	}
}

// Reset refills the budget to its ceiling.
func (b *FaultBudget) Reset() {
	b.remaining = b.ceiling
}

func (b *FaultBudget) Exhausted() bool {
	return b.remaining == 0
}

func (b *FaultBudget) Remaining() int {
	return b.remaining
}
