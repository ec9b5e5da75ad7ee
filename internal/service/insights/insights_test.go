package insights

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"vue-timetrack/internal/storage"
)

func TestRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     Request
		wantErr bool
	}{
		{"global with year", Request{Scope: ScopeGlobal, Year: 2025}, false},
		{"me with employee", Request{Scope: ScopeMe, Year: 2025, EmployeeID: 3}, false},
		{"explicit window", Request{Scope: ScopeGlobal, From: "2025-01-01", To: "2025-03-31"}, false},
		{"unknown scope", Request{Scope: "everyone", Year: 2025}, true},
		{"team without employee", Request{Scope: ScopeTeam, Year: 2025}, true},
		{"year out of range", Request{Scope: ScopeGlobal, Year: 12025}, true},
		{"zero year", Request{Scope: ScopeGlobal}, true},
		{"half window", Request{Scope: ScopeGlobal, From: "2025-01-01"}, true},
		{"reversed window", Request{Scope: ScopeGlobal, From: "2025-06-01", To: "2025-01-01"}, true},
		{"bad date", Request{Scope: ScopeGlobal, From: "01/01/2025", To: "2025-03-31"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidRequest)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAlertRequestValidate_LimitBounds(t *testing.T) {
	base := Request{Scope: ScopeGlobal, Year: 2025}

	assert.NoError(t, AlertRequest{Request: base}.validate(), "zero limit falls back to default")
	assert.NoError(t, AlertRequest{Request: base, Limit: 1}.validate())
	assert.NoError(t, AlertRequest{Request: base, Limit: 100}.validate())
	assert.ErrorIs(t, AlertRequest{Request: base, Limit: -1}.validate(), ErrInvalidRequest)
	assert.ErrorIs(t, AlertRequest{Request: base, Limit: 101}.validate(), ErrInvalidRequest)
}

// Invalid parameters are rejected before any read is issued.
func TestDashboard_RejectsBeforeReads(t *testing.T) {
	st := new(MockStorage)
	s := newTestService(st, testNow())

	_, err := s.Dashboard(context.Background(), Request{Scope: "nope", Year: 2025})
	assert.ErrorIs(t, err, ErrInvalidRequest)
	st.AssertNotCalled(t, "GetProjects", mock.Anything)
}

// A failing reference read fails the whole request; no partial aggregate.
func TestDashboard_UpstreamFailureIsAtomic(t *testing.T) {
	st := new(MockStorage)
	s := newTestService(st, testNow())

	st.On("GetProjects", mock.Anything).Return(nil, errors.New("storage down"))
	st.On("GetClients", mock.Anything).Return([]storage.Client{}, nil).Maybe()
	st.On("GetEmployees", mock.Anything).Return([]storage.Employee{}, nil).Maybe()
	st.On("GetAssignments", mock.Anything).Return([]storage.Assignment{}, nil).Maybe()
	st.On("GetTariffs", mock.Anything).Return([]storage.Tariff{}, nil).Maybe()
	st.On("GetInternalCosts", mock.Anything).Return([]storage.InternalCost{}, nil).Maybe()

	dash, err := s.Dashboard(context.Background(), Request{Scope: ScopeGlobal, Year: 2025})
	assert.Error(t, err)
	assert.Nil(t, dash)
}

func fullPipelineStorage() *MockStorage {
	st := new(MockStorage)

	projects := []storage.Project{
		{ID: 1, Code: "P1", Status: storage.StatusActive, QuoteAmount: 10000},
	}
	employees := []storage.Employee{
		{ID: 10, Team: "dev", DisplayName: strPtr("Nico")},
	}

	st.On("GetProjects", mock.Anything).Return(projects, nil)
	st.On("GetClients", mock.Anything).Return([]storage.Client{}, nil)
	st.On("GetEmployees", mock.Anything).Return(employees, nil)
	st.On("GetAssignments", mock.Anything).Return([]storage.Assignment{{ProjectID: 1, EmployeeID: 10}}, nil)
	st.On("GetTariffs", mock.Anything).Return([]storage.Tariff{}, nil)
	st.On("GetInternalCosts", mock.Anything).Return([]storage.InternalCost{}, nil)

	// no actual rows anywhere: planned entries win for every project
	st.On("GetActualProjectIDs", mock.Anything, []int64{1}, "2025-01-01", "2025-12-31").Return([]int64{}, nil)
	st.On("GetPlannedEntries", mock.Anything, []int64{1}, "2025-01-01", "2025-12-31").Return([]storage.TimeRow{
		{ProjectID: 1, EmployeeID: 10, Date: "2025-03-03", Minutes: 480}, // one day
	}, nil)

	return st
}

// Dashboard and FinanceOverview of the same request shape must agree: both
// run on the same fallback decision and the same cost rates.
func TestServiceOperationsShareFallbackState(t *testing.T) {
	req := Request{Scope: ScopeGlobal, Year: 2025}

	st := fullPipelineStorage()
	s := newTestService(st, testNow())

	dash, err := s.Dashboard(context.Background(), req)
	require.NoError(t, err)

	overview, err := s.FinanceOverview(context.Background(), req)
	require.NoError(t, err)

	// 8 planned hours of dev at the default 800/8 = 100 €/h
	assert.Equal(t, 8.0, dash.BySection.Dev.Hours)
	assert.Equal(t, 800.0, dash.BySection.Dev.Cost)

	require.Len(t, overview.Projects, 1)
	assert.Equal(t, 800.0, overview.Projects[0].Cost)
	assert.Equal(t, 9200.0, overview.Projects[0].Margin)
	require.NotNil(t, overview.Projects[0].MarginPct)
	assert.Equal(t, 92.0, *overview.Projects[0].MarginPct)
}

func TestScoresEndToEnd(t *testing.T) {
	st := fullPipelineStorage()
	s := newTestService(st, testNow())

	scores, err := s.Scores(context.Background(), Request{Scope: ScopeGlobal, Year: 2025})
	require.NoError(t, err)
	require.Len(t, scores, 1)

	// client unknown (50), margin 92% (100), no due date (50):
	// 0.25*50 + 0.35*100 + 0.20*50 = 57.5
	assert.Equal(t, 57.5, scores[0].Score)
}

func TestParseRequest(t *testing.T) {
	req, err := ParseRequest("team", "2025", "42", "", "")
	require.NoError(t, err)
	assert.Equal(t, ScopeTeam, req.Scope)
	assert.Equal(t, 2025, req.Year)
	assert.Equal(t, int64(42), req.EmployeeID)

	_, err = ParseRequest("global", "soon", "", "", "")
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, err = ParseRequest("global", "2025", "abc", "", "")
	assert.ErrorIs(t, err, ErrInvalidRequest)

	// empty scope defaults to global, empty year to the current year
	req, err = ParseRequest("", "", "", "", "")
	require.NoError(t, err)
	assert.Equal(t, ScopeGlobal, req.Scope)
	assert.NotZero(t, req.Year)
}

func TestParseAlertRequest(t *testing.T) {
	req, err := ParseAlertRequest("global", "2025", "", "", "", "5")
	require.NoError(t, err)
	assert.Equal(t, 5, req.Limit)

	_, err = ParseAlertRequest("global", "2025", "", "", "", "500")
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, err = ParseAlertRequest("global", "2025", "", "", "", "many")
	assert.ErrorIs(t, err, ErrInvalidRequest)
}
