package mysql

import (
	"context"
	"fmt"

	"vue-timetrack/internal/storage"
)

// GetActualProjectIDs is the cheap existence probe for the actual-vs-planned
// fallback: it returns the subset of projectIDs that have at least one actual
// row inside the window.
func (s *Storage) GetActualProjectIDs(ctx context.Context, projectIDs []int64, from, to string) ([]int64, error) {
	const op = "storage.mysql.GetActualProjectIDs"

	if len(projectIDs) == 0 {
		return nil, nil
	}

	stmt := fmt.Sprintf(`
		SELECT DISTINCT project_id
		FROM actual_items
		WHERE project_id IN (%s) AND d >= ? AND d <= ?
	`, placeholders(len(projectIDs)))

	args := append(toInterfaceSlice(projectIDs), from, to)

	rows, err := s.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		ids = append(ids, id)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}

	return ids, nil
}

func (s *Storage) GetActualEntries(ctx context.Context, projectIDs []int64, from, to string) ([]storage.TimeRow, error) {
	const op = "storage.mysql.GetActualEntries"
	return s.getEntries(ctx, op, "actual_items", projectIDs, from, to)
}

func (s *Storage) GetPlannedEntries(ctx context.Context, projectIDs []int64, from, to string) ([]storage.TimeRow, error) {
	const op = "storage.mysql.GetPlannedEntries"
	return s.getEntries(ctx, op, "plan_items", projectIDs, from, to)
}

// getEntries reads one of the two parallel time tables; they share a schema.
func (s *Storage) getEntries(ctx context.Context, op, table string, projectIDs []int64, from, to string) ([]storage.TimeRow, error) {
	if len(projectIDs) == 0 {
		return nil, nil
	}

	stmt := fmt.Sprintf(`
		SELECT project_id, employee_id, DATE_FORMAT(d, '%%Y-%%m-%%d'), hour, minutes
		FROM %s
		WHERE project_id IN (%s) AND d >= ? AND d <= ?
	`, table, placeholders(len(projectIDs)))

	args := append(toInterfaceSlice(projectIDs), from, to)

	rows, err := s.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var entries []storage.TimeRow
	for rows.Next() {
		var r storage.TimeRow
		if err := rows.Scan(&r.ProjectID, &r.EmployeeID, &r.Date, &r.Hour, &r.Minutes); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		entries = append(entries, r)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}

	return entries, nil
}
