package tender

import (
	"fmt"
	"math"

	"freightflow/internal/pkg/errs"
	"freightflow/internal/pkg/guard"
)

// ErrWeightsAreNotConstructed is returned when a CriteriaWeights value was not
// created via NewCriteriaWeights.
var ErrWeightsAreNotConstructed = errs.NewValueIsRequiredError("CriteriaWeights must be created via NewCriteriaWeights")

// weightSumTolerance absorbs float rounding when checking that weights sum to 1.
const weightSumTolerance = 1e-9

// CriteriaWeights is the value object holding the multi-criteria evaluation
// weights recorded on a tender. The weighted quote score is a linear
// combination of the price, speed, and reliability components, so the three
// weights must sum to exactly 1.0.
//
// Weights are frozen at tender creation: re-running an evaluation for the
// same tender always uses the same weights, which keeps comparisons
// reproducible.
type CriteriaWeights struct {
	price       float64
	speed       float64
	reliability float64

	guard guard.ConstructorGuard
}

// NewCriteriaWeights creates a validated weight set.
// Each weight must be in [0,1] and the three must sum to 1.0.
func NewCriteriaWeights(price, speed, reliability float64) (CriteriaWeights, error) {
	for name, w := range map[string]float64{
		"price weight":       price,
		"speed weight":       speed,
		"reliability weight": reliability,
	} {
		if w < 0 || w > 1 {
			return CriteriaWeights{}, errs.NewValueIsOutOfRangeError(name, w, 0, 1)
		}
	}

	if sum := price + speed + reliability; math.Abs(sum-1.0) > weightSumTolerance {
		return CriteriaWeights{}, errs.NewValueIsInvalidErrorWithCause(
			"criteria weights",
			fmt.Errorf("weights sum to %f, must sum to 1.0", sum),
		)
	}

	return CriteriaWeights{
		price:       price,
		speed:       speed,
		reliability: reliability,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// DefaultCriteriaWeights returns the standard evaluation policy:
// price 0.4, speed 0.3, reliability 0.3.
func DefaultCriteriaWeights() CriteriaWeights {
	weights, err := NewCriteriaWeights(0.4, 0.3, 0.3)
	if err != nil {
		// The defaults are compile-time constants that always satisfy validation.
		panic(err)
	}
	return weights
}

// Validate ensures the weights were created through NewCriteriaWeights.
func (w CriteriaWeights) Validate() error {
	return w.guard.Validate(ErrWeightsAreNotConstructed)
}

// Price returns the price criterion weight.
func (w CriteriaWeights) Price() float64 {
	return w.price
}

// Speed returns the transit-time criterion weight.
func (w CriteriaWeights) Speed() float64 {
	return w.speed
}

// Reliability returns the supplier-reliability criterion weight.
func (w CriteriaWeights) Reliability() float64 {
	return w.reliability
}
