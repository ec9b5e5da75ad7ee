package mysql

import (
	"context"
	"database/sql"
	"fmt"

	"vue-timetrack/internal/storage"
)

// GetProjects returns every non-archived project. Archived projects never
// take part in aggregation, so the filter is pushed into the query.
func (s *Storage) GetProjects(ctx context.Context) ([]storage.Project, error) {
	const op = "storage.mysql.GetProjects"

	stmt := `
		SELECT id, code, name, status, client_id, tariff_id,
		       COALESCE(quote_amount, 0),
		       COALESCE(budget_conception, 0),
		       COALESCE(budget_crea, 0),
		       COALESCE(budget_dev, 0),
		       DATE_FORMAT(due_date, '%Y-%m-%d'), effort_days
		FROM projects
		WHERE status <> ?
		ORDER BY code ASC
	`

	rows, err := s.db.QueryContext(ctx, stmt, storage.StatusArchived)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var projects []storage.Project
	for rows.Next() {
		var p storage.Project
		var clientID, tariffID sql.NullInt64
		var dueDate sql.NullString
		var effortDays sql.NullFloat64

		err := rows.Scan(&p.ID, &p.Code, &p.Name, &p.Status, &clientID, &tariffID,
			&p.QuoteAmount, &p.BudgetConception, &p.BudgetCrea, &p.BudgetDev,
			&dueDate, &effortDays)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}

		if clientID.Valid {
			p.ClientID = &clientID.Int64
		}
		if tariffID.Valid {
			p.TariffID = &tariffID.Int64
		}
		if dueDate.Valid {
			p.DueDate = &dueDate.String
		}
		if effortDays.Valid {
			p.EffortDays = &effortDays.Float64
		}

		projects = append(projects, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}

	return projects, nil
}

func (s *Storage) GetClients(ctx context.Context) ([]storage.Client, error) {
	const op = "storage.mysql.GetClients"

	stmt := `SELECT id, name, COALESCE(segment, ''), COALESCE(star, FALSE) FROM clients`

	rows, err := s.db.QueryContext(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var clients []storage.Client
	for rows.Next() {
		var c storage.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.Segment, &c.Star); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		clients = append(clients, c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}

	return clients, nil
}
