package services

import (
	"freightflow/internal/core/domain/model/quote"
	"freightflow/internal/core/domain/model/request"
	"freightflow/internal/core/domain/model/supplier"
	"freightflow/internal/core/domain/model/tender"
)

// The scoring engine is pure and deterministic: no I/O, no clock, no
// randomness. Repeated scoring of unchanged inputs always yields the same
// result, which is what makes automated selection auditable.

// Scoring formula constants. These encode a specific business policy and are
// preserved exactly; only the evaluation weights and the auto-selection
// threshold are tenant-configurable.
const (
	ratingWeight         = 20.0
	reliabilityWeight    = 30.0
	responseTimeFactor   = 0.1
	transportTypeCredit  = 20.0
	aiPerformanceWeight  = 20.0
	maxScore             = 100.0
	minConfidence        = 0.5
	defaultGeoCredit     = 10.0
)

// GeoCoverageScorer is the extension point for geographic matching. The
// default implementation grants a fixed credit to every supplier; a real
// geofencing implementation can replace it without touching the formula.
type GeoCoverageScorer interface {
	// GeoCoverageScore returns the geographic-coverage contribution in [0,100]
	// for the given supplier/request pair.
	GeoCoverageScore(s *supplier.LogisticsSupplier, r *request.TransportRequest) float64
}

// FixedGeoCoverage grants every supplier the same coverage credit.
type FixedGeoCoverage struct {
	credit float64
}

// NewFixedGeoCoverage creates the default geographic scorer with the standard
// 10-point credit.
func NewFixedGeoCoverage() FixedGeoCoverage {
	return FixedGeoCoverage{credit: defaultGeoCredit}
}

// GeoCoverageScore returns the fixed credit regardless of supplier or request.
func (g FixedGeoCoverage) GeoCoverageScore(_ *supplier.LogisticsSupplier, _ *request.TransportRequest) float64 {
	return g.credit
}

// SupplierFitScore computes how well a supplier fits a transport request,
// on a 0-100 scale.
//
// The score is a weighted sum of the supplier's performance profile:
//   - rating (0-5) contributes rating*20, capped to [0,100]
//   - reliability (0-1) contributes reliability*30
//   - response time contributes (100 - minutes)*0.1, clamped non-negative
//   - a 20-point credit if the supplier supports the request's transport type
//   - the geographic coverage contribution from geo
//   - AI performance (0-1) contributes aiPerformance*20
//
// The final result is clamped to [0,100].
func SupplierFitScore(s *supplier.LogisticsSupplier, r *request.TransportRequest, geo GeoCoverageScorer) float64 {
	profile := s.Profile()

	score := clamp(profile.Rating*ratingWeight, 0, maxScore)
	score += profile.ReliabilityScore * reliabilityWeight
	score += clamp(maxScore-float64(profile.ResponseTimeMinutes), 0, maxScore) * responseTimeFactor

	if s.Supports(r.Cargo().Type) {
		score += transportTypeCredit
	}

	score += geo.GeoCoverageScore(s, r)
	score += profile.AIPerformanceScore * aiPerformanceWeight

	return clamp(score, 0, maxScore)
}

// ComponentScores holds a quote's normalized price and speed scores.
type ComponentScores struct {
	// PriceScore is 100 for the cheapest quote in the set, 0 for the most
	// expensive.
	PriceScore float64

	// SpeedScore is 100 for the fastest quote in the set, 0 for the slowest.
	SpeedScore float64
}

// QuoteComponentScores min-max normalizes a quote's price and transit time
// against the full candidate set, producing scores on a 0-100 scale where
// higher is better.
//
// When every quote in the set shares the same price (or transit time), all
// quotes score 100 on that component: ties are not penalized, and the
// degenerate max==min case never divides by zero.
func QuoteComponentScores(q *quote.TransportQuote, allQuotes []*quote.TransportQuote) ComponentScores {
	minPrice, maxPrice := priceBounds(allQuotes)
	minTransit, maxTransit := transitBounds(allQuotes)

	return ComponentScores{
		PriceScore: invertedMinMax(q.Price().Amount(), minPrice, maxPrice),
		SpeedScore: invertedMinMax(float64(q.TransitHours()), minTransit, maxTransit),
	}
}

// WeightedQuoteScore combines the component scores into a single 0-100 score
// using the tender's criteria weights. The reliability component is the
// supplier's reliability score scaled to 0-100 by the caller.
//
// The weights sum to 1.0 by construction of CriteriaWeights, so the result
// stays on the 0-100 scale.
func WeightedQuoteScore(priceScore, speedScore, reliabilityScore float64, weights tender.CriteriaWeights) float64 {
	return priceScore*weights.Price() +
		speedScore*weights.Speed() +
		reliabilityScore*weights.Reliability()
}

// Confidence measures how decisively the top-ranked quote beats the runner-up,
// on a [0.5, 1.0] scale: 0.5 + (top - secondBest)/100 * 0.5.
//
// With fewer than two candidates the confidence is fixed at 0.5. A single
// option cannot be a conclusive comparison, so automation never auto-selects
// on a one-quote tender regardless of that quote's absolute score. This is a
// deliberate policy, not a numeric accident.
//
// The input must be sorted in descending order.
func Confidence(sortedScoresDescending []float64) float64 {
	if len(sortedScoresDescending) < 2 {
		return minConfidence
	}

	lead := sortedScoresDescending[0] - sortedScoresDescending[1]
	return clamp(minConfidence+lead/maxScore*minConfidence, minConfidence, 1.0)
}

func priceBounds(quotes []*quote.TransportQuote) (float64, float64) {
	minPrice, maxPrice := quotes[0].Price().Amount(), quotes[0].Price().Amount()
	for _, q := range quotes[1:] {
		amount := q.Price().Amount()
		if amount < minPrice {
			minPrice = amount
		}
		if amount > maxPrice {
			maxPrice = amount
		}
	}
	return minPrice, maxPrice
}

func transitBounds(quotes []*quote.TransportQuote) (float64, float64) {
	minTransit, maxTransit := float64(quotes[0].TransitHours()), float64(quotes[0].TransitHours())
	for _, q := range quotes[1:] {
		hours := float64(q.TransitHours())
		if hours < minTransit {
			minTransit = hours
		}
		if hours > maxTransit {
			maxTransit = hours
		}
	}
	return minTransit, maxTransit
}

// invertedMinMax maps value onto [0,100] where the minimum of the set scores
// 100 and the maximum scores 0. A degenerate set (max == min) scores 100.
func invertedMinMax(value, minValue, maxValue float64) float64 {
	if maxValue == minValue {
		return maxScore
	}
	return maxScore - ((value-minValue)/(maxValue-minValue))*maxScore
}

func clamp(value, low, high float64) float64 {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}
