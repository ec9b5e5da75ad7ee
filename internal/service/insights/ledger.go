package insights

import (
	"context"
	"fmt"

	"vue-timetrack/internal/storage"
)

// loadProjectTime reads the time ledger for a project set and a date window.
//
// The actual-vs-planned fallback is decided per project, never per entry: a
// project with a single actual row in the window uses only actual rows, even
// for dates or employees the actuals do not cover. The decision is taken on
// the unfiltered project population; the employee filter is applied last so
// the same project cannot flap between tables across scopes.
func (s *InsightsService) loadProjectTime(ctx context.Context, projectIDs []int64, from, to string, allowed map[int64]bool) ([]storage.TimeRow, error) {
	const op = "insights.loadProjectTime"

	if len(projectIDs) == 0 {
		return nil, nil
	}

	withActuals, err := s.storage.GetActualProjectIDs(ctx, projectIDs, from, to)
	if err != nil {
		return nil, fmt.Errorf("%s: probe: %w", op, err)
	}

	actualSet := make(map[int64]bool, len(withActuals))
	for _, id := range withActuals {
		actualSet[id] = true
	}

	var planned []int64
	for _, id := range projectIDs {
		if !actualSet[id] {
			planned = append(planned, id)
		}
	}

	var rows []storage.TimeRow

	if len(withActuals) > 0 {
		actualRows, err := s.storage.GetActualEntries(ctx, withActuals, from, to)
		if err != nil {
			return nil, fmt.Errorf("%s: actual: %w", op, err)
		}
		rows = append(rows, actualRows...)
	}

	if len(planned) > 0 {
		plannedRows, err := s.storage.GetPlannedEntries(ctx, planned, from, to)
		if err != nil {
			return nil, fmt.Errorf("%s: planned: %w", op, err)
		}
		rows = append(rows, plannedRows...)
	}

	if allowed == nil {
		return rows, nil
	}

	filtered := rows[:0]
	for _, r := range rows {
		if allowed[r.EmployeeID] {
			filtered = append(filtered, r)
		}
	}

	return filtered, nil
}
