package mysql

import (
	"context"
	"database/sql"
	"fmt"

	"vue-timetrack/internal/storage"
)

func (s *Storage) GetTariffs(ctx context.Context) ([]storage.Tariff, error) {
	const op = "storage.mysql.GetTariffs"

	stmt := `
		SELECT id,
		       COALESCE(rate_conception, 0),
		       COALESCE(rate_crea, 0),
		       COALESCE(rate_dev, 0)
		FROM ref_tariffs
	`

	rows, err := s.db.QueryContext(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var tariffs []storage.Tariff
	for rows.Next() {
		var t storage.Tariff
		if err := rows.Scan(&t.ID, &t.RateConception, &t.RateCrea, &t.RateDev); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		tariffs = append(tariffs, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}

	return tariffs, nil
}

// GetInternalCosts returns every internal-cost record; picking the applicable
// one is done in the service layer so the rule stays testable.
func (s *Storage) GetInternalCosts(ctx context.Context) ([]storage.InternalCost, error) {
	const op = "storage.mysql.GetInternalCosts"

	stmt := `
		SELECT COALESCE(rate_conception, 0),
		       COALESCE(rate_crea, 0),
		       COALESCE(rate_dev, 0),
		       DATE_FORMAT(effective_from, '%Y-%m-%d'), created_at
		FROM ref_internal_costs
	`

	rows, err := s.db.QueryContext(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var costs []storage.InternalCost
	for rows.Next() {
		var c storage.InternalCost
		var effectiveFrom sql.NullString

		err := rows.Scan(&c.RateConception, &c.RateCrea, &c.RateDev, &effectiveFrom, &c.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}

		if effectiveFrom.Valid {
			c.EffectiveFrom = &effectiveFrom.String
		}

		costs = append(costs, c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}

	return costs, nil
}
