package insights

import (
	"sort"

	"vue-timetrack/internal/storage"
)

// ProjectFinance is the per-project financial summary. MarginPct is nil when
// the project has no sold revenue: unknown, not zero.
type ProjectFinance struct {
	ProjectID int64    `json:"project_id"`
	Code      string   `json:"code"`
	Name      string   `json:"name"`
	ClientID  *int64   `json:"client_id"`
	Sold      float64  `json:"sold"`
	Cost      float64  `json:"cost"`
	Billable  float64  `json:"billable"`
	Margin    float64  `json:"margin"`
	MarginPct *float64 `json:"margin_pct"`
	Hours     float64  `json:"hours"`
	DaysUsed  float64  `json:"days_used"`
}

type ClientFinance struct {
	ClientID  int64    `json:"client_id"`
	Name      string   `json:"name"`
	Sold      float64  `json:"sold"`
	Cost      float64  `json:"cost"`
	Margin    float64  `json:"margin"`
	MarginPct *float64 `json:"margin_pct"`
}

type FinanceRollup struct {
	Sold      float64  `json:"sold"`
	Cost      float64  `json:"cost"`
	Margin    float64  `json:"margin"`
	MarginPct *float64 `json:"margin_pct"`
}

type Overview struct {
	Projects  []ProjectFinance `json:"projects"`
	Clients   []ClientFinance  `json:"clients"`
	Portfolio FinanceRollup    `json:"portfolio"`
}

// soldRevenue is the contractual amount of a project: the quote when set,
// else the three section budgets.
func soldRevenue(p storage.Project) float64 {
	if p.QuoteAmount > 0 {
		return p.QuoteAmount
	}
	return p.BudgetConception + p.BudgetCrea + p.BudgetDev
}

// marginPct returns margin relative to sold, or nil when sold is not
// positive. Callers must carry the nil through: unknown is not bad.
func marginPct(sold, margin float64) *float64 {
	if sold <= 0 {
		return nil
	}
	pct := margin / sold * 100
	return &pct
}

// buildOverview combines per-project aggregation totals with sold-revenue
// figures. Client and portfolio rollups sum sold and cost across projects
// before computing a single margin percentage, never an average of
// per-project percentages.
func buildOverview(snap *snapshot, projectIDs []int64, byProject map[int64]projectTotals) *Overview {
	overview := &Overview{}

	type rollup struct {
		sold, cost float64
	}
	clientRollups := make(map[int64]*rollup)

	var portfolio rollup

	for _, id := range projectIDs {
		project, ok := snap.project(id)
		if !ok {
			continue
		}

		totals := byProject[id]
		sold := soldRevenue(project)
		margin := sold - totals.cost

		pf := ProjectFinance{
			ProjectID: project.ID,
			Code:      project.Code,
			Name:      project.Name,
			ClientID:  project.ClientID,
			Sold:      round2(sold),
			Cost:      round2(totals.cost),
			Billable:  round2(totals.billable),
			Margin:    round2(margin),
			Hours:     round2(totals.hours),
			DaysUsed:  round2(totals.daysUsed()),
		}
		if pct := marginPct(sold, margin); pct != nil {
			rounded := round2(*pct)
			pf.MarginPct = &rounded
		}
		overview.Projects = append(overview.Projects, pf)

		portfolio.sold += sold
		portfolio.cost += totals.cost

		if project.ClientID != nil {
			cr, ok := clientRollups[*project.ClientID]
			if !ok {
				cr = &rollup{}
				clientRollups[*project.ClientID] = cr
			}
			cr.sold += sold
			cr.cost += totals.cost
		}
	}

	for clientID, cr := range clientRollups {
		margin := cr.sold - cr.cost
		cf := ClientFinance{
			ClientID: clientID,
			Sold:     round2(cr.sold),
			Cost:     round2(cr.cost),
			Margin:   round2(margin),
		}
		if client, ok := snap.client(clientID); ok {
			cf.Name = client.Name
		}
		if pct := marginPct(cr.sold, margin); pct != nil {
			rounded := round2(*pct)
			cf.MarginPct = &rounded
		}
		overview.Clients = append(overview.Clients, cf)
	}
	sort.Slice(overview.Clients, func(i, j int) bool {
		return overview.Clients[i].ClientID < overview.Clients[j].ClientID
	})

	portfolioMargin := portfolio.sold - portfolio.cost
	overview.Portfolio = FinanceRollup{
		Sold:   round2(portfolio.sold),
		Cost:   round2(portfolio.cost),
		Margin: round2(portfolioMargin),
	}
	if pct := marginPct(portfolio.sold, portfolioMargin); pct != nil {
		rounded := round2(*pct)
		overview.Portfolio.MarginPct = &rounded
	}

	return overview
}
