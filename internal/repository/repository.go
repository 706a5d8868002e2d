package repository

import (
	"context"
	"errors"
	"sync"

	"github.com/UnknownOlympus/hestia/internal/metrics"
	"github.com/UnknownOlympus/hestia/internal/models"
)

// ErrEmployeeNotFound is returned when an identifier does not resolve to a stored record.
var ErrEmployeeNotFound = errors.New("employee not found")

// EmployeeRepoIface represents the interface for interacting with employee data in the repository.
type EmployeeRepoIface interface {
	ListEmployees(ctx context.Context) ([]models.Employee, error)
	SaveEmployee(ctx context.Context, employee models.Employee) (models.Employee, error)
	UpdateEmployee(ctx context.Context, identifier int, employee models.Employee) (models.Employee, error)
	DeleteEmployee(ctx context.Context, identifier int) error
	GetEmployeeByID(ctx context.Context, identifier int) (models.Employee, error)
	Count() int
}

// Repository is an ordered in-memory employee store. Identifiers are assigned from a
// monotonic counter and never reused, even after deletions.
type Repository struct {
	metrics *metrics.Metrics

	mu     sync.RWMutex
	order  []int
	byID   map[int]models.Employee
	nextID int
}

func NewEmployeeRepository(metrics *metrics.Metrics) *Repository {
	return &Repository{
		metrics: metrics,
		byID:    make(map[int]models.Employee),
		nextID:  1,
	}
}
