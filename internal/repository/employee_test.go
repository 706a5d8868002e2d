package repository_test

import (
	"context"
	"sync"
	"testing"

	"github.com/UnknownOlympus/hestia/internal/metrics"
	"github.com/UnknownOlympus/hestia/internal/models"
	"github.com/UnknownOlympus/hestia/internal/repository"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo(t *testing.T) (*repository.Repository, *metrics.Metrics) {
	t.Helper()

	appMetrics := metrics.NewMetrics(prometheus.NewRegistry())
	return repository.NewEmployeeRepository(appMetrics), appMetrics
}

func testEmployee(name string) models.Employee {
	return models.Employee{
		Name:    name,
		Dept:    models.DeptIT,
		Active:  true,
		Number:  "123",
		Email:   "test@test.com",
		Address: "Main st. 1",
		Photo:   "data:image/png;base64,AAA=",
	}
}

func TestListEmployees_Empty(t *testing.T) {
	t.Parallel()

	repo, _ := newRepo(t)

	list, err := repo.ListEmployees(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestSaveEmployee_AssignsMonotonicIDs(t *testing.T) {
	t.Parallel()

	repo, appMetrics := newRepo(t)
	ctx := context.Background()

	first, err := repo.SaveEmployee(ctx, testEmployee("First"))
	require.NoError(t, err)
	second, err := repo.SaveEmployee(ctx, models.Employee{ID: 99, Name: "Second"})
	require.NoError(t, err)

	assert.Equal(t, 1, first.ID)
	assert.Equal(t, 2, second.ID, "caller supplied id must be ignored")
	assert.Equal(t, 2, repo.Count())
	assert.InDelta(t, 2, testutil.ToFloat64(appMetrics.StoredEmployees), 0)
}

func TestSaveEmployee_IDsNotReusedAfterDelete(t *testing.T) {
	t.Parallel()

	repo, _ := newRepo(t)
	ctx := context.Background()

	_, err := repo.SaveEmployee(ctx, testEmployee("First"))
	require.NoError(t, err)
	second, err := repo.SaveEmployee(ctx, testEmployee("Second"))
	require.NoError(t, err)
	require.NoError(t, repo.DeleteEmployee(ctx, second.ID))

	third, err := repo.SaveEmployee(ctx, testEmployee("Third"))
	require.NoError(t, err)

	assert.Equal(t, 3, third.ID)
}

func TestSaveEmployee_ContextCanceled(t *testing.T) {
	t.Parallel()

	repo, _ := newRepo(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.SaveEmployee(ctx, testEmployee("First"))

	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, repo.Count())
}

func TestUpdateEmployee_KeepsIDAndPosition(t *testing.T) {
	t.Parallel()

	repo, _ := newRepo(t)
	ctx := context.Background()

	for _, name := range []string{"Alpha", "Beta", "Gamma"} {
		_, err := repo.SaveEmployee(ctx, testEmployee(name))
		require.NoError(t, err)
	}

	replacement := testEmployee("Beta Updated")
	replacement.ID = 42
	replacement.Dept = models.DeptSecurity

	updated, err := repo.UpdateEmployee(ctx, 2, replacement)
	require.NoError(t, err)

	assert.Equal(t, 2, updated.ID)
	assert.Equal(t, models.DeptSecurity, updated.Dept)

	list, err := repo.ListEmployees(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"Alpha", "Beta Updated", "Gamma"},
		[]string{list[0].Name, list[1].Name, list[2].Name})
}

func TestUpdateEmployee_NotFound(t *testing.T) {
	t.Parallel()

	repo, _ := newRepo(t)

	_, err := repo.UpdateEmployee(context.Background(), 99, testEmployee("Ghost"))

	require.ErrorIs(t, err, repository.ErrEmployeeNotFound)
	require.EqualError(t, err, "failed to update employee data: "+repository.ErrEmployeeNotFound.Error())
}

func TestDeleteEmployee(t *testing.T) {
	t.Parallel()

	repo, _ := newRepo(t)
	ctx := context.Background()

	emp, err := repo.SaveEmployee(ctx, testEmployee("First"))
	require.NoError(t, err)

	require.NoError(t, repo.DeleteEmployee(ctx, emp.ID))

	list, err := repo.ListEmployees(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	err = repo.DeleteEmployee(ctx, emp.ID)
	require.ErrorIs(t, err, repository.ErrEmployeeNotFound)
}

func TestGetEmployeeByID(t *testing.T) {
	t.Parallel()

	repo, _ := newRepo(t)
	ctx := context.Background()

	saved, err := repo.SaveEmployee(ctx, testEmployee("First"))
	require.NoError(t, err)

	got, err := repo.GetEmployeeByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved, got)

	_, err = repo.GetEmployeeByID(ctx, saved.ID+1)
	require.ErrorIs(t, err, repository.ErrEmployeeNotFound)
	require.EqualError(t, err, "failed to get employee by id: "+repository.ErrEmployeeNotFound.Error())
}

func TestListEmployees_ReturnsCopy(t *testing.T) {
	t.Parallel()

	repo, _ := newRepo(t)
	ctx := context.Background()

	_, err := repo.SaveEmployee(ctx, testEmployee("First"))
	require.NoError(t, err)

	list, err := repo.ListEmployees(ctx)
	require.NoError(t, err)
	list[0].Name = "Mutated"

	again, err := repo.ListEmployees(ctx)
	require.NoError(t, err)
	assert.Equal(t, "First", again[0].Name)
}

func TestSaveEmployee_Concurrent(t *testing.T) {
	t.Parallel()

	repo, _ := newRepo(t)
	ctx := context.Background()

	const workers = 50
	var wg sync.WaitGroup
	ids := make(chan int, workers)

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			emp, err := repo.SaveEmployee(ctx, testEmployee("Worker"))
			assert.NoError(t, err)
			ids <- emp.ID
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int]bool)
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
	assert.Len(t, seen, workers)
	assert.Equal(t, workers, repo.Count())
}
