package insights

import (
	"sort"
	"time"

	"vue-timetrack/internal/storage"
)

// HoursPerDay converts internal day-rates to hourly figures.
const HoursPerDay = 8.0

// Fallback internal day-rates, used when no internal-cost record exists.
const (
	defaultDayRateConception = 800.0
	defaultDayRateCrea       = 500.0
	defaultDayRateDev        = 800.0
)

// BillingRate returns the client-billing hourly rate of a project for a
// profile. A project without a tariff is unbilled and rates at 0.
func BillingRate(project storage.Project, tariffs map[int64]storage.Tariff, profile Profile) float64 {
	if project.TariffID == nil {
		return 0
	}

	tariff, ok := tariffs[*project.TariffID]
	if !ok {
		return 0
	}

	switch profile {
	case ProfileCrea:
		return tariff.RateCrea
	case ProfileDev:
		return tariff.RateDev
	default:
		return tariff.RateConception
	}
}

// CostRate returns the internal hourly cost for a profile, from the
// internal-cost record applicable at now.
func CostRate(records []storage.InternalCost, now time.Time, profile Profile) float64 {
	dayRate := map[Profile]float64{
		ProfileConception: defaultDayRateConception,
		ProfileCrea:       defaultDayRateCrea,
		ProfileDev:        defaultDayRateDev,
	}[profile]

	if rec := latestInternalCost(records, now); rec != nil {
		switch profile {
		case ProfileCrea:
			dayRate = rec.RateCrea
		case ProfileDev:
			dayRate = rec.RateDev
		default:
			dayRate = rec.RateConception
		}
	}

	return dayRate / HoursPerDay
}

// latestInternalCost selects the applicable record: among records not dated
// in the future, the one with the latest effective_from (nulls last),
// tie-broken by latest created_at. Returns nil when no record applies.
func latestInternalCost(records []storage.InternalCost, now time.Time) *storage.InternalCost {
	today := now.UTC().Format(dateLayout)

	applicable := make([]storage.InternalCost, 0, len(records))
	for _, r := range records {
		if r.EffectiveFrom != nil && *r.EffectiveFrom > today {
			continue
		}
		applicable = append(applicable, r)
	}
	if len(applicable) == 0 {
		return nil
	}

	sort.SliceStable(applicable, func(i, j int) bool {
		a, b := applicable[i], applicable[j]

		// effective_from desc, nulls last
		switch {
		case a.EffectiveFrom != nil && b.EffectiveFrom == nil:
			return true
		case a.EffectiveFrom == nil && b.EffectiveFrom != nil:
			return false
		case a.EffectiveFrom != nil && b.EffectiveFrom != nil && *a.EffectiveFrom != *b.EffectiveFrom:
			return *a.EffectiveFrom > *b.EffectiveFrom
		}

		return a.CreatedAt.After(b.CreatedAt)
	})

	return &applicable[0]
}
