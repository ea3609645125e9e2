package paymentsvc

import "math/rand"

// Decider stands in for the payment network: it decides whether one
// authorization attempt is declined. Swappable so tests can pin the outcome
// without touching the retry loop.
type Decider interface {
	// DecideOutcome returns true when the attempt must be declined.
	DecideOutcome(probability float64) bool
}

type randomDecider struct{}

// NewRandomDecider returns the production decider: a random draw against the
// rejection probability. Probabilities at or beyond the [0,1] boundaries are
// deterministic and never touch the RNG.
func NewRandomDecider() Decider {
	return randomDecider{}
}

func (randomDecider) DecideOutcome(probability float64) bool {
	if probability <= 0.0 {
		return false
	}
	if probability >= 1.0 {
		return true
	}

	return rand.Float64() < probability
}
