package insights

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"vue-timetrack/internal/storage"
)

type SectionTotals struct {
	Hours float64 `json:"hours"`
	Cost  float64 `json:"cost"`
}

type SectionBreakdown struct {
	Conception SectionTotals `json:"conception"`
	Crea       SectionTotals `json:"créa"`
	Dev        SectionTotals `json:"dev"`
}

type MemberHours struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Team  string  `json:"team"`
	Hours float64 `json:"hours"`
}

type WeekBucket struct {
	Week  int     `json:"week"`
	Month int     `json:"month"`
	Hours float64 `json:"hours"`
}

type MonthBucket struct {
	Month int     `json:"month"`
	Hours float64 `json:"hours"`
}

// Dashboard is the aggregate emitted to the presentation layer. All numbers
// are rounded to 2 decimals here, at the boundary only; the accumulators keep
// full precision so rounding error does not compound.
type Dashboard struct {
	BySection SectionBreakdown `json:"by_section"`
	ByMember  []MemberHours    `json:"by_member"`
	ByWeek    []WeekBucket     `json:"by_week"`
	ByMonth   []MonthBucket    `json:"by_month"`
}

// projectTotals carries per-project accumulation at full precision. cost uses
// the internal cost rate; billable uses the client-billing rate. The two are
// never mixed.
type projectTotals struct {
	hours    float64
	cost     float64
	billable float64
}

func (t projectTotals) daysUsed() float64 {
	return t.hours / HoursPerDay
}

// buildAggregate folds ledger rows into the dashboard and per-project totals.
// rows must already reflect the fallback decision and the scope filter.
func buildAggregate(snap *snapshot, rows []storage.TimeRow, now time.Time) (*Dashboard, map[int64]projectTotals, error) {
	const op = "insights.buildAggregate"

	costRate := map[Profile]float64{
		ProfileConception: CostRate(snap.Costs, now, ProfileConception),
		ProfileCrea:       CostRate(snap.Costs, now, ProfileCrea),
		ProfileDev:        CostRate(snap.Costs, now, ProfileDev),
	}

	type weekKey struct {
		isoYear int
		week    int
	}
	type weekAcc struct {
		hours     float64
		firstDate string
	}

	sections := map[Profile]*SectionTotals{
		ProfileConception: {},
		ProfileCrea:       {},
		ProfileDev:        {},
	}
	memberHours := make(map[int64]float64)
	weeks := make(map[weekKey]*weekAcc)
	byProject := make(map[int64]projectTotals)

	for _, r := range rows {
		emp, _ := snap.employee(r.EmployeeID)
		profile := ResolveProfile(emp.Team)
		hours := float64(r.Minutes) / 60.0

		sec := sections[profile]
		sec.Hours += hours
		sec.Cost += hours * costRate[profile]

		memberHours[r.EmployeeID] += hours

		totals := byProject[r.ProjectID]
		totals.hours += hours
		totals.cost += hours * costRate[profile]
		if project, ok := snap.project(r.ProjectID); ok {
			totals.billable += hours * BillingRate(project, snap.Tariffs, profile)
		}
		byProject[r.ProjectID] = totals

		day, err := time.Parse(dateLayout, r.Date)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: malformed entry date %q: %w", op, r.Date, err)
		}

		isoYear, week := day.ISOWeek()
		key := weekKey{isoYear, week}
		acc, ok := weeks[key]
		if !ok {
			acc = &weekAcc{firstDate: r.Date}
			weeks[key] = acc
		}
		acc.hours += hours
		if r.Date < acc.firstDate {
			acc.firstDate = r.Date
		}
	}

	dash := &Dashboard{
		BySection: SectionBreakdown{
			Conception: roundSection(*sections[ProfileConception]),
			Crea:       roundSection(*sections[ProfileCrea]),
			Dev:        roundSection(*sections[ProfileDev]),
		},
	}

	for id, hours := range memberHours {
		emp, ok := snap.employee(id)
		dash.ByMember = append(dash.ByMember, MemberHours{
			ID:    id,
			Name:  memberName(emp, id, ok),
			Team:  emp.Team,
			Hours: round2(hours),
		})
	}
	sort.Slice(dash.ByMember, func(i, j int) bool {
		if dash.ByMember[i].Hours != dash.ByMember[j].Hours {
			return dash.ByMember[i].Hours > dash.ByMember[j].Hours
		}
		return dash.ByMember[i].Name < dash.ByMember[j].Name
	})

	type weekRow struct {
		key   weekKey
		acc   *weekAcc
		month int
	}
	var ordered []weekRow
	monthHours := make(map[int]float64)
	for key, acc := range weeks {
		first, err := time.Parse(dateLayout, acc.firstDate)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: malformed entry date %q: %w", op, acc.firstDate, err)
		}
		month := int(first.Month())
		ordered = append(ordered, weekRow{key, acc, month})
		monthHours[month] += acc.hours
	}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].acc.firstDate < ordered[j].acc.firstDate
	})

	for _, w := range ordered {
		dash.ByWeek = append(dash.ByWeek, WeekBucket{
			Week:  w.key.week,
			Month: w.month,
			Hours: round2(w.acc.hours),
		})
	}

	for month := 1; month <= 12; month++ {
		if hours, ok := monthHours[month]; ok {
			dash.ByMonth = append(dash.ByMonth, MonthBucket{Month: month, Hours: round2(hours)})
		}
	}

	return dash, byProject, nil
}

// memberName derives the display name: first+last if present, else the stored
// display name, else the raw identifier.
func memberName(e storage.Employee, id int64, found bool) string {
	if !found {
		return strconv.FormatInt(id, 10)
	}

	var first, last string
	if e.FirstName != nil {
		first = strings.TrimSpace(*e.FirstName)
	}
	if e.LastName != nil {
		last = strings.TrimSpace(*e.LastName)
	}
	if full := strings.TrimSpace(first + " " + last); full != "" {
		return full
	}

	if e.DisplayName != nil && strings.TrimSpace(*e.DisplayName) != "" {
		return strings.TrimSpace(*e.DisplayName)
	}

	return strconv.FormatInt(id, 10)
}

func roundSection(s SectionTotals) SectionTotals {
	return SectionTotals{Hours: round2(s.Hours), Cost: round2(s.Cost)}
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
