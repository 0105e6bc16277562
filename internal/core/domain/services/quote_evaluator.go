package services

import (
	"errors"
	"fmt"
	"sort"

	"freightflow/internal/core/domain/model/comparison"
	"freightflow/internal/core/domain/model/kernel"
	"freightflow/internal/core/domain/model/quote"
	"freightflow/internal/core/domain/model/tender"
)

// ErrNoQuotesToEvaluate is returned when the evaluator is invoked with an
// empty quote set. Callers translate this into a non-error "waiting" outcome;
// the evaluator itself never decides on zero candidates.
var ErrNoQuotesToEvaluate = errors.New("no quotes to evaluate")

// Evaluation is the pure result of ranking a quote set: the full comparison
// matrix, the recommended winner, the confidence of the recommendation, and
// the generated explanation texts.
type Evaluation struct {
	Matrix         []comparison.MatrixRow
	Winner         *quote.TransportQuote
	Confidence     float64
	Recommendation string
	Reasoning      string
}

// QuoteEvaluator is the domain service that ranks submitted quotes using the
// multi-criteria scoring engine.
//
// Ranking algorithm:
//   - Each quote's price and transit time are min-max normalized against the set
//   - The supplier's reliability score (scaled to 0-100) is the third component
//   - The weighted score combines the three using the tender's frozen weights
//   - The winner is the arg-max; ties break by earliest submission timestamp,
//     rewarding responsiveness
//   - Confidence measures the winner's lead over the runner-up
//
// The evaluator is deterministic: evaluating the same quotes with the same
// weights always produces the same matrix and winner.
type QuoteEvaluator struct{}

// NewQuoteEvaluator creates a QuoteEvaluator instance.
func NewQuoteEvaluator() QuoteEvaluator {
	return QuoteEvaluator{}
}

// Evaluate ranks the given quotes with the tender's weights.
//
// Parameters:
//   - quotes: the submitted quotes for one tender (must be non-empty)
//   - reliabilityBySupplier: each quoting supplier's reliability score in [0,1]
//     (missing suppliers default to 0, scoring them last on that component)
//   - weights: the tender's frozen criteria weights
//
// Returns ErrNoQuotesToEvaluate for an empty set.
func (e QuoteEvaluator) Evaluate(
	quotes []*quote.TransportQuote,
	reliabilityBySupplier map[kernel.UUID]float64,
	weights tender.CriteriaWeights,
) (Evaluation, error) {
	if len(quotes) == 0 {
		return Evaluation{}, ErrNoQuotesToEvaluate
	}

	if err := weights.Validate(); err != nil {
		return Evaluation{}, err
	}

	matrix := make([]comparison.MatrixRow, 0, len(quotes))
	var winner *quote.TransportQuote
	var winnerScore float64

	for _, q := range quotes {
		if err := q.Validate(); err != nil {
			return Evaluation{}, err
		}

		components := QuoteComponentScores(q, quotes)
		reliability := reliabilityBySupplier[q.SupplierID()] * 100
		weighted := WeightedQuoteScore(components.PriceScore, components.SpeedScore, reliability, weights)

		matrix = append(matrix, comparison.MatrixRow{
			QuoteID:          q.ID(),
			SupplierID:       q.SupplierID(),
			PriceScore:       components.PriceScore,
			SpeedScore:       components.SpeedScore,
			ReliabilityScore: reliability,
			WeightedScore:    weighted,
		})

		if winner == nil || betterCandidate(weighted, q, winnerScore, winner) {
			winner = q
			winnerScore = weighted
		}
	}

	scores := make([]float64, len(matrix))
	for i, row := range matrix {
		scores[i] = row.WeightedScore
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(scores)))

	confidence := Confidence(scores)

	return Evaluation{
		Matrix:         matrix,
		Winner:         winner,
		Confidence:     confidence,
		Recommendation: buildRecommendation(winner, winnerScore, len(quotes)),
		Reasoning:      buildReasoning(winnerScore, confidence, weights),
	}, nil
}

// betterCandidate reports whether the challenger beats the incumbent winner:
// strictly higher weighted score, or equal score with an earlier submission.
func betterCandidate(challengerScore float64, challenger *quote.TransportQuote, incumbentScore float64, incumbent *quote.TransportQuote) bool {
	if challengerScore != incumbentScore {
		return challengerScore > incumbentScore
	}
	return challenger.SubmittedAt().Before(incumbent.SubmittedAt())
}

func buildRecommendation(winner *quote.TransportQuote, score float64, candidates int) string {
	return fmt.Sprintf(
		"Quote %s from supplier %s offers the best overall value at %s (weighted score %.1f of 100, %d quotes compared).",
		winner.ID(), winner.SupplierID(), winner.Price(), score, candidates,
	)
}

func buildReasoning(score float64, confidence float64, weights tender.CriteriaWeights) string {
	return fmt.Sprintf(
		"Scored on price (weight %.2f), transit time (weight %.2f), and supplier reliability (weight %.2f) "+
			"normalized against the full quote set. The leading quote scored %.1f with confidence %.2f.",
		weights.Price(), weights.Speed(), weights.Reliability(), score, confidence,
	)
}
