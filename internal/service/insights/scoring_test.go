package insights

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vue-timetrack/internal/storage"
)

func TestScoreClient(t *testing.T) {
	assert.Equal(t, 80.0, scoreClient("super"))
	assert.Equal(t, 20.0, scoreClient("pas"))
	assert.Equal(t, 50.0, scoreClient("normal"))
	assert.Equal(t, 50.0, scoreClient(""))
}

func TestScoreMargin(t *testing.T) {
	assert.Equal(t, 50.0, scoreMargin(nil), "unknown margin is neutral")
	assert.Equal(t, 0.0, scoreMargin(float64Ptr(-10)))
	assert.Equal(t, 0.0, scoreMargin(float64Ptr(0)))
	assert.Equal(t, 22.0, scoreMargin(float64Ptr(1)))
	assert.Equal(t, 58.0, scoreMargin(float64Ptr(19)))
	assert.Equal(t, 60.0, scoreMargin(float64Ptr(20)))
	assert.Equal(t, 98.0, scoreMargin(float64Ptr(39)))
	assert.Equal(t, 100.0, scoreMargin(float64Ptr(40)))
	assert.Equal(t, 100.0, scoreMargin(float64Ptr(95)))
}

// The curve is monotonically non-decreasing, continuous at the ramp boundary
// and bounded in [0,100].
func TestScoreMargin_MonotoneAndBounded(t *testing.T) {
	prev := -1.0
	for p := -20.0; p <= 60; p += 0.25 {
		s := scoreMargin(&p)
		assert.GreaterOrEqual(t, s, prev, "at pct=%v", p)
		assert.GreaterOrEqual(t, s, 0.0)
		assert.LessOrEqual(t, s, 100.0)
		prev = s
	}

	below := 20 - 1e-9
	assert.InDelta(t, 60.0, scoreMargin(&below), 1e-6, "continuous at pct=20")
}

func TestScoreUrgency(t *testing.T) {
	assert.Equal(t, 50.0, scoreUrgency(nil, float64Ptr(5)), "no due date is neutral")
	assert.Equal(t, 50.0, scoreUrgency(intPtr(3), nil))
	assert.Equal(t, 50.0, scoreUrgency(intPtr(3), float64Ptr(0)))

	assert.Equal(t, 100.0, scoreUrgency(intPtr(0), float64Ptr(5)), "overdue is most urgent")
	assert.Equal(t, 100.0, scoreUrgency(intPtr(-4), float64Ptr(5)))
	assert.Equal(t, 90.0, scoreUrgency(intPtr(2), float64Ptr(5)))
	assert.Equal(t, 60.0, scoreUrgency(intPtr(10), float64Ptr(5)))
	assert.Equal(t, 20.0, scoreUrgency(intPtr(30), float64Ptr(5)))
}

func TestDaysUntil_UTCFloor(t *testing.T) {
	now := time.Date(2025, 6, 1, 23, 30, 0, 0, time.UTC)

	days, err := daysUntil("2025-06-03", now)
	require.NoError(t, err)
	assert.Equal(t, 2, *days, "computed on calendar days, not 24h periods")

	past, err := daysUntil("2025-05-30", now)
	require.NoError(t, err)
	assert.Equal(t, -2, *past)
}

func TestComputeScore_AllNeutralIsFifty(t *testing.T) {
	assert.Equal(t, 50.0, computeScore("", false, nil, nil, nil))
}

// Worked scenario: quote 10000, cost 6000 (40% margin), due in 2 days with 5
// effort days, normal client, no star.
func TestComputeScore_WorkedExample(t *testing.T) {
	score := computeScore("normal", false, float64Ptr(40), intPtr(2), float64Ptr(5))
	// 0.25*50 + 0.35*100 + 0.20*90 = 12.5 + 35 + 18 = 65.5
	assert.Equal(t, 65.5, score)
}

func TestComputeScore_StarMultiplierAndClamp(t *testing.T) {
	plain := computeScore("normal", false, float64Ptr(40), intPtr(2), float64Ptr(5))
	starred := computeScore("normal", true, float64Ptr(40), intPtr(2), float64Ptr(5))
	assert.Equal(t, round2(plain*1.15), starred)

	// best case: super client, full margin, overdue -> raw 75, starred 86.25
	max := computeScore("super", true, float64Ptr(50), intPtr(0), float64Ptr(5))
	assert.Equal(t, 86.25, max)
	assert.LessOrEqual(t, max, 100.0)
}

func TestBuildScores_SortedAndDeterministic(t *testing.T) {
	projects := []storage.Project{
		{ID: 1, Code: "ALPHA", Status: storage.StatusActive, QuoteAmount: 10000,
			ClientID: int64Ptr(5), DueDate: strPtr("2025-06-03"), EffortDays: float64Ptr(5)},
		{ID: 2, Code: "BETA", Status: storage.StatusActive},
	}
	clients := []storage.Client{{ID: 5, Segment: "normal"}}
	snap := newTestSnapshot(projects, clients, nil, nil, nil, nil)

	byProject := map[int64]projectTotals{1: {hours: 32, cost: 6000}}
	now := testNow()

	first, err := buildScores(snap, []int64{1, 2}, byProject, now)
	require.NoError(t, err)
	second, err := buildScores(snap, []int64{1, 2}, byProject, now)
	require.NoError(t, err)

	assert.Equal(t, first, second, "identical inputs give identical scores")

	require.Len(t, first, 2)
	assert.Equal(t, "ALPHA", first[0].Code)
	assert.Equal(t, 65.5, first[0].Score)
	assert.Equal(t, "BETA", first[1].Code)
	assert.Equal(t, 50.0, first[1].Score, "all-neutral project scores 50")
}
