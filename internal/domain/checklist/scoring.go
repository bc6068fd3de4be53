package checklist

import "math"

// Scoring weights. These are product constants and are not configurable.
const (
	FoundationalWeight = 0.7
	OngoingWeight      = 0.3
	CriticalBonus      = 0.1
)

// ScoreBreakdown carries the intermediate sub-scores behind an overall score
type ScoreBreakdown struct {
	FoundationalBase  float64 `json:"foundational_base"`
	CriticalScore     float64 `json:"critical_score"`
	FoundationalScore float64 `json:"foundational_score"`
	OngoingScore      float64 `json:"ongoing_score"`
	Total             float64 `json:"total"`
	OverallScore      int     `json:"overall_score"`
}

// ratio returns completed/max(total,1)*100. An empty set scores 0, not 100.
func ratio(completed, total int) float64 {
	return float64(completed) / float64(max(total, 1)) * 100
}

// Score computes the weighted health score with all intermediate values
func Score(foundational, ongoing TypeProgressResult) ScoreBreakdown {
	var b ScoreBreakdown

	b.FoundationalBase = ratio(foundational.CompletedItems, foundational.TotalItems)
	b.CriticalScore = ratio(foundational.CompletedCriticalItems, foundational.CriticalItems)
	b.FoundationalScore = b.FoundationalBase*(1-CriticalBonus) + b.CriticalScore*CriticalBonus
	b.OngoingScore = ratio(ongoing.CompletedItems, ongoing.TotalItems)

	b.Total = b.FoundationalScore*FoundationalWeight + b.OngoingScore*OngoingWeight
	b.OverallScore = int(math.Round(math.Max(0, math.Min(b.Total, 100))))
	return b
}

// OverallScore returns the weighted health score in [0, 100]
func OverallScore(foundational, ongoing TypeProgressResult) int {
	return Score(foundational, ongoing).OverallScore
}
