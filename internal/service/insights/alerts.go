package insights

import (
	"fmt"
	"sort"
	"time"
)

type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

type AlertKind string

const (
	AlertDeadline   AlertKind = "deadline"
	AlertBudgetDays AlertKind = "budget_days"
	AlertMargin     AlertKind = "margin"
)

// Alert is an ephemeral ticker entry. The ID is derived from kind and project
// so recomputed duplicates collapse.
type Alert struct {
	ID        string    `json:"id"`
	ProjectID int64     `json:"project_id"`
	Code      string    `json:"code"`
	Kind      AlertKind `json:"kind"`
	Severity  Severity  `json:"severity"`
	Message   string    `json:"message"`
}

const (
	DefaultAlertLimit = 20
	MinAlertLimit     = 1
	MaxAlertLimit     = 100
)

var severityRank = map[Severity]int{
	SeverityCritical: 0,
	SeverityWarning:  1,
	SeverityInfo:     2,
}

var kindRank = map[AlertKind]int{
	AlertDeadline:   0,
	AlertBudgetDays: 1,
	AlertMargin:     2,
}

// Alert thresholds.
const (
	deadlineWarnDays     = 7
	deadlineCriticalDays = 3

	budgetWarnPct     = 100.0
	budgetCriticalPct = 110.0

	marginWarnPct     = 15.0
	marginCriticalPct = 5.0
)

// buildAlerts evaluates the three alert categories for every project in
// scope and returns them ordered by severity, kind, then project code,
// truncated to limit.
func buildAlerts(snap *snapshot, projectIDs []int64, byProject map[int64]projectTotals, now time.Time, limit int) ([]Alert, error) {
	const op = "insights.buildAlerts"

	var alerts []Alert

	for _, id := range projectIDs {
		project, ok := snap.project(id)
		if !ok {
			continue
		}

		totals := byProject[id]

		if project.DueDate != nil {
			daysLeft, err := daysUntil(*project.DueDate, now)
			if err != nil {
				return nil, fmt.Errorf("%s: project %d: %w", op, id, err)
			}
			if *daysLeft <= deadlineWarnDays {
				severity := SeverityWarning
				if *daysLeft <= deadlineCriticalDays {
					severity = SeverityCritical
				}
				alerts = append(alerts, newAlert(project.ID, project.Code, AlertDeadline, severity,
					fmt.Sprintf("%s : échéance %s", project.Code, dayOffset(*daysLeft))))
			}
		}

		if project.EffortDays != nil && *project.EffortDays > 0 {
			usedPct := totals.daysUsed() / *project.EffortDays * 100
			if usedPct >= budgetWarnPct {
				severity := SeverityWarning
				if usedPct >= budgetCriticalPct {
					severity = SeverityCritical
				}
				alerts = append(alerts, newAlert(project.ID, project.Code, AlertBudgetDays, severity,
					fmt.Sprintf("%s : budget jours consommé à %.0f%%", project.Code, usedPct)))
			}
		}

		sold := soldRevenue(project)
		if pct := marginPct(sold, sold-totals.cost); pct != nil && *pct < marginWarnPct {
			severity := SeverityWarning
			if *pct < marginCriticalPct {
				severity = SeverityCritical
			}
			alerts = append(alerts, newAlert(project.ID, project.Code, AlertMargin, severity,
				fmt.Sprintf("%s : marge à %.1f%%", project.Code, *pct)))
		}
	}

	sort.Slice(alerts, func(i, j int) bool {
		a, b := alerts[i], alerts[j]
		if severityRank[a.Severity] != severityRank[b.Severity] {
			return severityRank[a.Severity] < severityRank[b.Severity]
		}
		if kindRank[a.Kind] != kindRank[b.Kind] {
			return kindRank[a.Kind] < kindRank[b.Kind]
		}
		return a.Code < b.Code
	})

	if len(alerts) > limit {
		alerts = alerts[:limit]
	}

	return alerts, nil
}

func newAlert(projectID int64, code string, kind AlertKind, severity Severity, message string) Alert {
	return Alert{
		ID:        fmt.Sprintf("%s-%d", kind, projectID),
		ProjectID: projectID,
		Code:      code,
		Kind:      kind,
		Severity:  severity,
		Message:   message,
	}
}

// dayOffset renders a signed day offset in "J-3" / "J+2" style. Negative
// daysLeft means the due date has passed.
func dayOffset(daysLeft int) string {
	if daysLeft >= 0 {
		return fmt.Sprintf("J-%d", daysLeft)
	}
	return fmt.Sprintf("J+%d", -daysLeft)
}
