package insights

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"vue-timetrack/internal/storage"
)

// MockStorage mocks the read-only snapshot source.
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) GetProjects(ctx context.Context) ([]storage.Project, error) {
	args := m.Called(ctx)
	return asProjects(args.Get(0)), args.Error(1)
}

func (m *MockStorage) GetClients(ctx context.Context) ([]storage.Client, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.Client), args.Error(1)
}

func (m *MockStorage) GetEmployees(ctx context.Context) ([]storage.Employee, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.Employee), args.Error(1)
}

func (m *MockStorage) GetAssignments(ctx context.Context) ([]storage.Assignment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.Assignment), args.Error(1)
}

func (m *MockStorage) GetTariffs(ctx context.Context) ([]storage.Tariff, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.Tariff), args.Error(1)
}

func (m *MockStorage) GetInternalCosts(ctx context.Context) ([]storage.InternalCost, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.InternalCost), args.Error(1)
}

func (m *MockStorage) GetActualProjectIDs(ctx context.Context, projectIDs []int64, from, to string) ([]int64, error) {
	args := m.Called(ctx, projectIDs, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockStorage) GetActualEntries(ctx context.Context, projectIDs []int64, from, to string) ([]storage.TimeRow, error) {
	args := m.Called(ctx, projectIDs, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.TimeRow), args.Error(1)
}

func (m *MockStorage) GetPlannedEntries(ctx context.Context, projectIDs []int64, from, to string) ([]storage.TimeRow, error) {
	args := m.Called(ctx, projectIDs, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.TimeRow), args.Error(1)
}

func asProjects(v interface{}) []storage.Project {
	if v == nil {
		return nil
	}
	return v.([]storage.Project)
}

// newTestSnapshot builds an indexed snapshot without touching storage.
func newTestSnapshot(projects []storage.Project, clients []storage.Client, employees []storage.Employee, assignments []storage.Assignment, tariffs []storage.Tariff, costs []storage.InternalCost) *snapshot {
	snap := &snapshot{
		Projects:    projects,
		Clients:     clients,
		Employees:   employees,
		Assignments: assignments,
		Costs:       costs,
	}
	snap.index(tariffs)
	return snap
}

func newTestService(st InsightsStorage, now time.Time) *InsightsService {
	return &InsightsService{storage: st, now: func() time.Time { return now }}
}

func testNow() time.Time {
	return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
}

func int64Ptr(v int64) *int64       { return &v }
func float64Ptr(v float64) *float64 { return &v }
func intPtr(v int) *int             { return &v }
