package storage

// Project lifecycle statuses. Archived projects never take part in
// aggregation or scoring.
const (
	StatusActive   = "active"
	StatusOnHold   = "onhold"
	StatusArchived = "archived"
)

type Project struct {
	ID               int64    `json:"id"`
	Code             string   `json:"code"`
	Name             string   `json:"name"`
	Status           string   `json:"status"`
	ClientID         *int64   `json:"client_id"`
	TariffID         *int64   `json:"tariff_id"`
	QuoteAmount      float64  `json:"quote_amount"`
	BudgetConception float64  `json:"budget_conception"`
	BudgetCrea       float64  `json:"budget_crea"`
	BudgetDev        float64  `json:"budget_dev"`
	DueDate          *string  `json:"due_date"`
	EffortDays       *float64 `json:"effort_days"`
}

type Client struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Segment string `json:"segment"`
	Star    bool   `json:"star"`
}
