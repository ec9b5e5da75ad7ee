package mysql

import (
	"context"
	"database/sql"
	"fmt"

	"vue-timetrack/internal/storage"
)

func (s *Storage) GetEmployees(ctx context.Context) ([]storage.Employee, error) {
	const op = "storage.mysql.GetEmployees"

	stmt := `
		SELECT id, first_name, last_name, display_name, COALESCE(team, '')
		FROM employees
		ORDER BY id ASC
	`

	rows, err := s.db.QueryContext(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var employees []storage.Employee
	for rows.Next() {
		var e storage.Employee
		var first, last, display sql.NullString

		if err := rows.Scan(&e.ID, &first, &last, &display, &e.Team); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}

		if first.Valid {
			e.FirstName = &first.String
		}
		if last.Valid {
			e.LastName = &last.String
		}
		if display.Valid {
			e.DisplayName = &display.String
		}

		employees = append(employees, e)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}

	return employees, nil
}

func (s *Storage) GetAssignments(ctx context.Context) ([]storage.Assignment, error) {
	const op = "storage.mysql.GetAssignments"

	stmt := `SELECT project_id, employee_id FROM project_employees`

	rows, err := s.db.QueryContext(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var assignments []storage.Assignment
	for rows.Next() {
		var a storage.Assignment
		if err := rows.Scan(&a.ProjectID, &a.EmployeeID); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		assignments = append(assignments, a)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}

	return assignments, nil
}
