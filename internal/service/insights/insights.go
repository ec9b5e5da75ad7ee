package insights

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"vue-timetrack/internal/storage"
)

const dateLayout = "2006-01-02"

// ErrInvalidRequest marks parameter validation failures, rejected before any
// read happens.
var ErrInvalidRequest = errors.New("invalid request")

type InsightsStorage interface {
	GetProjects(ctx context.Context) ([]storage.Project, error)
	GetClients(ctx context.Context) ([]storage.Client, error)
	GetEmployees(ctx context.Context) ([]storage.Employee, error)
	GetAssignments(ctx context.Context) ([]storage.Assignment, error)
	GetTariffs(ctx context.Context) ([]storage.Tariff, error)
	GetInternalCosts(ctx context.Context) ([]storage.InternalCost, error)
	GetActualProjectIDs(ctx context.Context, projectIDs []int64, from, to string) ([]int64, error)
	GetActualEntries(ctx context.Context, projectIDs []int64, from, to string) ([]storage.TimeRow, error)
	GetPlannedEntries(ctx context.Context, projectIDs []int64, from, to string) ([]storage.TimeRow, error)
}

// InsightsService is the read path turning raw time entries into financial
// summaries, priority scores and alerts. It holds no mutable state: every
// call computes over a fresh snapshot, so concurrent requests are fully
// independent.
type InsightsService struct {
	storage InsightsStorage
	now     func() time.Time
}

func NewInsightsService(storage InsightsStorage) *InsightsService {
	return &InsightsService{storage: storage, now: time.Now}
}

// Request selects the audience scope and the date window of an aggregate.
// From/To override Year when both are set.
type Request struct {
	Scope      Scope  `json:"scope"`
	Year       int    `json:"year"`
	EmployeeID int64  `json:"employee_id"`
	From       string `json:"from,omitempty"`
	To         string `json:"to,omitempty"`
}

type AlertRequest struct {
	Request
	Limit int `json:"limit"`
}

func (r Request) validate() error {
	switch r.Scope {
	case ScopeGlobal, ScopeTeam, ScopeMe:
	default:
		return fmt.Errorf("%w: unknown scope %q", ErrInvalidRequest, r.Scope)
	}

	if (r.Scope == ScopeTeam || r.Scope == ScopeMe) && r.EmployeeID <= 0 {
		return fmt.Errorf("%w: scope %q requires an employee", ErrInvalidRequest, r.Scope)
	}

	if r.From != "" || r.To != "" {
		if r.From == "" || r.To == "" {
			return fmt.Errorf("%w: from and to must be set together", ErrInvalidRequest)
		}
		for _, d := range []string{r.From, r.To} {
			if _, err := time.Parse(dateLayout, d); err != nil {
				return fmt.Errorf("%w: bad date %q", ErrInvalidRequest, d)
			}
		}
		if r.From > r.To {
			return fmt.Errorf("%w: from after to", ErrInvalidRequest)
		}
		return nil
	}

	if r.Year < 2000 || r.Year > 2100 {
		return fmt.Errorf("%w: year %d out of range", ErrInvalidRequest, r.Year)
	}
	return nil
}

func (r Request) window() (string, string) {
	if r.From != "" && r.To != "" {
		return r.From, r.To
	}
	return fmt.Sprintf("%04d-01-01", r.Year), fmt.Sprintf("%04d-12-31", r.Year)
}

func (r AlertRequest) validate() error {
	if err := r.Request.validate(); err != nil {
		return err
	}
	if r.Limit != 0 && (r.Limit < MinAlertLimit || r.Limit > MaxAlertLimit) {
		return fmt.Errorf("%w: limit %d out of range [%d,%d]", ErrInvalidRequest, r.Limit, MinAlertLimit, MaxAlertLimit)
	}
	return nil
}

// snapshot holds one request's view of the reference data. The fallback and
// rate decisions are taken once per snapshot, so every consumer of the same
// request sees identical state.
type snapshot struct {
	Projects    []storage.Project
	Clients     []storage.Client
	Employees   []storage.Employee
	Assignments []storage.Assignment
	Tariffs     map[int64]storage.Tariff
	Costs       []storage.InternalCost

	projectsByID  map[int64]storage.Project
	employeesByID map[int64]storage.Employee
	clientsByID   map[int64]storage.Client
}

func (s *snapshot) project(id int64) (storage.Project, bool) {
	p, ok := s.projectsByID[id]
	return p, ok
}

func (s *snapshot) employee(id int64) (storage.Employee, bool) {
	e, ok := s.employeesByID[id]
	return e, ok
}

func (s *snapshot) client(id int64) (storage.Client, bool) {
	c, ok := s.clientsByID[id]
	return c, ok
}

// loadSnapshot issues the six reference reads concurrently; none depends on
// another's result. Any failure fails the whole request, no partial
// aggregate is ever returned.
func (s *InsightsService) loadSnapshot(ctx context.Context) (*snapshot, error) {
	const op = "insights.loadSnapshot"

	snap := &snapshot{}
	var tariffs []storage.Tariff

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		snap.Projects, err = s.storage.GetProjects(gCtx)
		if err != nil {
			return fmt.Errorf("projects: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		snap.Clients, err = s.storage.GetClients(gCtx)
		if err != nil {
			return fmt.Errorf("clients: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		snap.Employees, err = s.storage.GetEmployees(gCtx)
		if err != nil {
			return fmt.Errorf("employees: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		snap.Assignments, err = s.storage.GetAssignments(gCtx)
		if err != nil {
			return fmt.Errorf("assignments: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		tariffs, err = s.storage.GetTariffs(gCtx)
		if err != nil {
			return fmt.Errorf("tariffs: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		snap.Costs, err = s.storage.GetInternalCosts(gCtx)
		if err != nil {
			return fmt.Errorf("internal costs: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	snap.index(tariffs)

	return snap, nil
}

func (s *snapshot) index(tariffs []storage.Tariff) {
	s.Tariffs = make(map[int64]storage.Tariff, len(tariffs))
	for _, t := range tariffs {
		s.Tariffs[t.ID] = t
	}

	s.projectsByID = make(map[int64]storage.Project, len(s.Projects))
	for _, p := range s.Projects {
		s.projectsByID[p.ID] = p
	}

	s.employeesByID = make(map[int64]storage.Employee, len(s.Employees))
	for _, e := range s.Employees {
		s.employeesByID[e.ID] = e
	}

	s.clientsByID = make(map[int64]storage.Client, len(s.Clients))
	for _, c := range s.Clients {
		s.clientsByID[c.ID] = c
	}
}

// run performs the shared pipeline: validate, snapshot, scope, ledger,
// aggregate. Every operation goes through here so the fallback state stays
// consistent across all aggregates of one request.
func (s *InsightsService) run(ctx context.Context, req Request) (*snapshot, []int64, *Dashboard, map[int64]projectTotals, error) {
	if err := req.validate(); err != nil {
		return nil, nil, nil, nil, err
	}

	snap, err := s.loadSnapshot(ctx)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	projectIDs, allowed, err := resolveScope(req.Scope, req.EmployeeID, snap)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	from, to := req.window()
	rows, err := s.loadProjectTime(ctx, projectIDs, from, to, allowed)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	dash, byProject, err := buildAggregate(snap, rows, s.now())
	if err != nil {
		return nil, nil, nil, nil, err
	}

	return snap, projectIDs, dash, byProject, nil
}

// Dashboard returns hours and cost per section, member and ISO week for a
// scope and window.
func (s *InsightsService) Dashboard(ctx context.Context, req Request) (*Dashboard, error) {
	_, _, dash, _, err := s.run(ctx, req)
	if err != nil {
		return nil, err
	}
	return dash, nil
}

// FinanceOverview returns per-project margins plus client and portfolio
// rollups for a scope and window.
func (s *InsightsService) FinanceOverview(ctx context.Context, req Request) (*Overview, error) {
	snap, projectIDs, _, byProject, err := s.run(ctx, req)
	if err != nil {
		return nil, err
	}
	return buildOverview(snap, projectIDs, byProject), nil
}

// Scores returns the composite priority score of every project in scope.
func (s *InsightsService) Scores(ctx context.Context, req Request) ([]ScoreResult, error) {
	snap, projectIDs, _, byProject, err := s.run(ctx, req)
	if err != nil {
		return nil, err
	}
	return buildScores(snap, projectIDs, byProject, s.now())
}

// Alerts returns the severity-ordered alert ticker for a scope and window.
func (s *InsightsService) Alerts(ctx context.Context, req AlertRequest) ([]Alert, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	limit := req.Limit
	if limit == 0 {
		limit = DefaultAlertLimit
	}

	snap, projectIDs, _, byProject, err := s.run(ctx, req.Request)
	if err != nil {
		return nil, err
	}
	return buildAlerts(snap, projectIDs, byProject, s.now(), limit)
}
