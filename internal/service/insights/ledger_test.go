package insights

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"vue-timetrack/internal/storage"
)

func TestLoadProjectTime_PerProjectFallback(t *testing.T) {
	st := new(MockStorage)
	s := newTestService(st, time.Now())

	from, to := "2025-01-01", "2025-12-31"
	projectIDs := []int64{1, 2}

	// project 1 has actuals, project 2 has none
	st.On("GetActualProjectIDs", mock.Anything, projectIDs, from, to).Return([]int64{1}, nil)
	st.On("GetActualEntries", mock.Anything, []int64{1}, from, to).Return([]storage.TimeRow{
		{ProjectID: 1, EmployeeID: 10, Date: "2025-03-03", Minutes: 60},
	}, nil)
	st.On("GetPlannedEntries", mock.Anything, []int64{2}, from, to).Return([]storage.TimeRow{
		{ProjectID: 2, EmployeeID: 11, Date: "2025-03-04", Minutes: 120},
	}, nil)

	rows, err := s.loadProjectTime(context.Background(), projectIDs, from, to, nil)
	require.NoError(t, err)

	assert.Len(t, rows, 2)
	st.AssertExpectations(t)
}

// A project with even one actual row never reads planned rows, even when the
// actual coverage is sparse.
func TestLoadProjectTime_ActualsSuppressPlansEntirely(t *testing.T) {
	st := new(MockStorage)
	s := newTestService(st, time.Now())

	from, to := "2025-01-01", "2025-12-31"
	projectIDs := []int64{1}

	st.On("GetActualProjectIDs", mock.Anything, projectIDs, from, to).Return([]int64{1}, nil)
	st.On("GetActualEntries", mock.Anything, []int64{1}, from, to).Return([]storage.TimeRow{
		{ProjectID: 1, EmployeeID: 10, Date: "2025-01-06", Minutes: 30},
	}, nil)

	rows, err := s.loadProjectTime(context.Background(), projectIDs, from, to, nil)
	require.NoError(t, err)

	assert.Len(t, rows, 1)
	st.AssertNotCalled(t, "GetPlannedEntries", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// The employee filter is applied after the fallback decision; the decision
// itself runs on the unfiltered project population.
func TestLoadProjectTime_FilterAppliedAfterFallback(t *testing.T) {
	st := new(MockStorage)
	s := newTestService(st, time.Now())

	from, to := "2025-01-01", "2025-12-31"
	projectIDs := []int64{1}

	st.On("GetActualProjectIDs", mock.Anything, projectIDs, from, to).Return([]int64{1}, nil)
	st.On("GetActualEntries", mock.Anything, []int64{1}, from, to).Return([]storage.TimeRow{
		{ProjectID: 1, EmployeeID: 10, Date: "2025-01-06", Minutes: 30},
		{ProjectID: 1, EmployeeID: 11, Date: "2025-01-07", Minutes: 45},
	}, nil)

	rows, err := s.loadProjectTime(context.Background(), projectIDs, from, to, map[int64]bool{11: true})
	require.NoError(t, err)

	// the filter discards employee 10 but the project still used actuals
	require.Len(t, rows, 1)
	assert.Equal(t, int64(11), rows[0].EmployeeID)
	st.AssertNotCalled(t, "GetPlannedEntries", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestLoadProjectTime_EmptyProjectSet(t *testing.T) {
	st := new(MockStorage)
	s := newTestService(st, time.Now())

	rows, err := s.loadProjectTime(context.Background(), nil, "2025-01-01", "2025-12-31", nil)
	require.NoError(t, err)
	assert.Empty(t, rows)
	st.AssertNotCalled(t, "GetActualProjectIDs", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestLoadProjectTime_ProbeFailureIsFatal(t *testing.T) {
	st := new(MockStorage)
	s := newTestService(st, time.Now())

	st.On("GetActualProjectIDs", mock.Anything, []int64{1}, "2025-01-01", "2025-12-31").
		Return(nil, errors.New("connection refused"))

	rows, err := s.loadProjectTime(context.Background(), []int64{1}, "2025-01-01", "2025-12-31", nil)
	assert.Error(t, err)
	assert.Nil(t, rows)
}
