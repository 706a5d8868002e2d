package repository

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/UnknownOlympus/hestia/internal/models"
)

func (r *Repository) observe(op string, startTime time.Time) {
	duration := time.Since(startTime).Seconds()
	r.metrics.StoreOpDuration.WithLabelValues(op).Observe(duration)
	r.metrics.StoredEmployees.Set(float64(len(r.order)))
}

// ListEmployees returns a copy of every stored record in insertion order.
func (r *Repository) ListEmployees(_ context.Context) ([]models.Employee, error) {
	startTime := time.Now()
	r.mu.RLock()
	defer r.mu.RUnlock()
	defer r.observe("list", startTime)

	result := make([]models.Employee, 0, len(r.order))
	for _, id := range r.order {
		result = append(result, r.byID[id])
	}

	return result, nil
}

// SaveEmployee stores a new record under the next unused identifier and returns it.
// Any identifier carried by employee is ignored.
func (r *Repository) SaveEmployee(ctx context.Context, employee models.Employee) (models.Employee, error) {
	startTime := time.Now()
	r.mu.Lock()
	defer r.mu.Unlock()
	defer r.observe("create", startTime)

	if err := ctx.Err(); err != nil {
		return models.Employee{}, fmt.Errorf("failed to save employee: %w", err)
	}

	employee.ID = r.nextID
	r.nextID++

	r.byID[employee.ID] = employee
	r.order = append(r.order, employee.ID)

	return employee, nil
}

// UpdateEmployee replaces every field of the record except its identifier.
// The record keeps its position in the listing order.
func (r *Repository) UpdateEmployee(
	ctx context.Context,
	identifier int,
	employee models.Employee,
) (models.Employee, error) {
	startTime := time.Now()
	r.mu.Lock()
	defer r.mu.Unlock()
	defer r.observe("update", startTime)

	if err := ctx.Err(); err != nil {
		return models.Employee{}, fmt.Errorf("failed to update employee data: %w", err)
	}

	if _, ok := r.byID[identifier]; !ok {
		return models.Employee{}, fmt.Errorf("failed to update employee data: %w", ErrEmployeeNotFound)
	}

	employee.ID = identifier
	r.byID[identifier] = employee

	return employee, nil
}

// DeleteEmployee removes the record with the given identifier.
func (r *Repository) DeleteEmployee(ctx context.Context, identifier int) error {
	startTime := time.Now()
	r.mu.Lock()
	defer r.mu.Unlock()
	defer r.observe("delete", startTime)

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}

	if _, ok := r.byID[identifier]; !ok {
		return fmt.Errorf("failed to delete employee: %w", ErrEmployeeNotFound)
	}

	delete(r.byID, identifier)
	r.order = slices.DeleteFunc(r.order, func(id int) bool { return id == identifier })

	return nil
}

// GetEmployeeByID retrieves a stored record by its identifier.
func (r *Repository) GetEmployeeByID(_ context.Context, identifier int) (models.Employee, error) {
	startTime := time.Now()
	r.mu.RLock()
	defer r.mu.RUnlock()
	defer r.observe("get_by_id", startTime)

	employee, ok := r.byID[identifier]
	if !ok {
		return models.Employee{}, fmt.Errorf("failed to get employee by id: %w", ErrEmployeeNotFound)
	}

	return employee, nil
}

// Count returns the number of stored records.
func (r *Repository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.order)
}
