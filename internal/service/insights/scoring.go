package insights

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// ScoreResult is the composite priority score of one project, recomputed per
// request and never persisted.
type ScoreResult struct {
	ProjectID  int64    `json:"project_id"`
	Code       string   `json:"code"`
	Name       string   `json:"name"`
	Score      float64  `json:"score"`
	MarginPct  *float64 `json:"margin_pct"`
	DueDate    *string  `json:"due_date"`
	EffortDays *float64 `json:"effort_days"`
	Segment    string   `json:"segment"`
	Star       bool     `json:"star"`
}

// Fixed scoring weights. The two zero terms are placeholders for recency and
// strategic sub-scores whose data does not exist in this system; they stay as
// literal terms because the weights assume their presence.
const (
	weightClient  = 0.25
	weightMargin  = 0.35
	weightUrgency = 0.20
	weightRecency = 0.10
	weightStrat   = 0.10

	starMultiplier = 1.15
)

func scoreClient(segment string) float64 {
	switch segment {
	case "super":
		return 80
	case "pas":
		return 20
	default:
		return 50
	}
}

// scoreMargin maps a margin percentage to [0,100]. nil (unknown) is neutral.
// The two ramps meet at 60 for pct=20, so the curve is continuous and
// monotonically non-decreasing.
func scoreMargin(pct *float64) float64 {
	if pct == nil {
		return 50
	}
	p := *pct

	switch {
	case p <= 0:
		return 0
	case p < 20:
		return 20 + 2*p
	case p < 40:
		return 60 + 2*(p-20)
	default:
		return 100
	}
}

// scoreUrgency rates deadline pressure from the buffer ratio
// daysLeft/effortDays. Missing data is neutral.
func scoreUrgency(daysLeft *int, effortDays *float64) float64 {
	if daysLeft == nil || effortDays == nil || *effortDays <= 0 {
		return 50
	}

	buffer := float64(*daysLeft) / *effortDays
	switch {
	case buffer <= 0:
		return 100
	case buffer < 1:
		return 90
	case buffer < 3:
		return 60
	default:
		return 20
	}
}

// daysUntil returns (due - now) in whole days, floored, on UTC calendar days.
func daysUntil(due string, now time.Time) (*int, error) {
	dueDay, err := time.Parse(dateLayout, due)
	if err != nil {
		return nil, err
	}

	today := now.UTC().Truncate(24 * time.Hour)
	days := int(math.Floor(dueDay.Sub(today).Hours() / 24))
	return &days, nil
}

// computeScore runs the weighted sum and the star multiplier, clamped to
// [0,100]. Deterministic for identical inputs.
func computeScore(segment string, star bool, pct *float64, daysLeft *int, effortDays *float64) float64 {
	raw := weightClient*scoreClient(segment) +
		weightMargin*scoreMargin(pct) +
		weightUrgency*scoreUrgency(daysLeft, effortDays) +
		weightRecency*0 +
		weightStrat*0

	multiplier := 1.0
	if star {
		multiplier = starMultiplier
	}

	score := round2(raw * multiplier)
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// buildScores scores every project in scope, sorted score descending then by
// code.
func buildScores(snap *snapshot, projectIDs []int64, byProject map[int64]projectTotals, now time.Time) ([]ScoreResult, error) {
	const op = "insights.buildScores"

	results := make([]ScoreResult, 0, len(projectIDs))

	for _, id := range projectIDs {
		project, ok := snap.project(id)
		if !ok {
			continue
		}

		totals := byProject[id]
		sold := soldRevenue(project)
		pct := marginPct(sold, sold-totals.cost)

		var segment string
		var star bool
		if project.ClientID != nil {
			if client, ok := snap.client(*project.ClientID); ok {
				segment = client.Segment
				star = client.Star
			}
		}

		var daysLeft *int
		if project.DueDate != nil {
			var err error
			daysLeft, err = daysUntil(*project.DueDate, now)
			if err != nil {
				return nil, fmt.Errorf("%s: project %d: %w", op, id, err)
			}
		}

		result := ScoreResult{
			ProjectID:  project.ID,
			Code:       project.Code,
			Name:       project.Name,
			Score:      computeScore(segment, star, pct, daysLeft, project.EffortDays),
			DueDate:    project.DueDate,
			EffortDays: project.EffortDays,
			Segment:    segment,
			Star:       star,
		}
		if pct != nil {
			rounded := round2(*pct)
			result.MarginPct = &rounded
		}

		results = append(results, result)
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Code < results[j].Code
	})

	return results, nil
}
