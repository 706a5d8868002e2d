package employees

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/UnknownOlympus/hestia/internal/lib/logger/sl"
	"github.com/UnknownOlympus/hestia/internal/metrics"
	"github.com/UnknownOlympus/hestia/internal/models"
	"github.com/UnknownOlympus/hestia/internal/repository"
	"github.com/UnknownOlympus/hestia/internal/validation"
)

type Staff struct {
	log     *slog.Logger
	repo    repository.EmployeeRepoIface
	metrics *metrics.Metrics
}

func NewStaff(log *slog.Logger, repo repository.EmployeeRepoIface, metrics *metrics.Metrics) *Staff {
	return &Staff{log: log, repo: repo, metrics: metrics}
}

func (s *Staff) initLogger(opn string) *slog.Logger {
	return s.log.With(
		slog.String("op", opn),
		slog.String("division", "employee"),
	)
}

// List returns every stored employee in store order.
func (s *Staff) List(ctx context.Context) ([]models.Employee, error) {
	employees, err := s.repo.ListEmployees(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	return employees, nil
}

// Create validates the candidate, normalizes it and stores it under a new identifier.
// A rejected candidate yields *validation.Errors and nothing is stored.
func (s *Staff) Create(ctx context.Context, input models.EmployeeInput) (models.Employee, error) {
	const opn = "Employee.Create"
	log := s.initLogger(opn)

	if errs := s.validate(ctx, log, input); errs != nil {
		return models.Employee{}, errs
	}

	employee, err := s.repo.SaveEmployee(ctx, Normalize(input))
	if err != nil {
		return models.Employee{}, fmt.Errorf("failed to save new employee %s: %w", input.Name, err)
	}

	log.InfoContext(ctx, "Employee created", sl.EmployeeID(employee.ID))

	return employee, nil
}

// Update replaces every field of an existing record except its identifier.
// The identifier is resolved before the payload is validated, so an unknown
// identifier always reports repository.ErrEmployeeNotFound.
func (s *Staff) Update(ctx context.Context, identifier int, input models.EmployeeInput) (models.Employee, error) {
	const opn = "Employee.Update"
	log := s.initLogger(opn)

	existed, _, err := IsEmployeeExists(ctx, identifier, s.repo)
	if err != nil {
		log.ErrorContext(ctx, "failed to look up employee", sl.EmployeeID(identifier), sl.Err(err))
		return models.Employee{}, fmt.Errorf("failed to update employee %d: %w", identifier, err)
	}
	if !existed {
		log.DebugContext(ctx, "employee does not exist", sl.EmployeeID(identifier))
		return models.Employee{}, fmt.Errorf("failed to update employee %d: %w",
			identifier, repository.ErrEmployeeNotFound)
	}

	if errs := s.validate(ctx, log, input); errs != nil {
		return models.Employee{}, errs
	}

	employee, err := s.repo.UpdateEmployee(ctx, identifier, Normalize(input))
	if err != nil {
		return models.Employee{}, fmt.Errorf("failed to update employee %d: %w", identifier, err)
	}

	log.InfoContext(ctx, "Employee updated", sl.EmployeeID(employee.ID))

	return employee, nil
}

// Delete removes the record with the given identifier.
func (s *Staff) Delete(ctx context.Context, identifier int) error {
	const opn = "Employee.Delete"
	log := s.initLogger(opn)

	if err := s.repo.DeleteEmployee(ctx, identifier); err != nil {
		if !errors.Is(err, repository.ErrEmployeeNotFound) {
			log.ErrorContext(ctx, "failed to delete employee", sl.EmployeeID(identifier), sl.Err(err))
		}
		return fmt.Errorf("failed to delete employee %d: %w", identifier, err)
	}

	log.InfoContext(ctx, "Employee deleted", sl.EmployeeID(identifier))

	return nil
}

func (s *Staff) validate(ctx context.Context, log *slog.Logger, input models.EmployeeInput) *validation.Errors {
	errs := validation.Validate(input)
	if errs == nil {
		return nil
	}

	for _, field := range errs.Fields() {
		s.metrics.ValidationFailures.WithLabelValues(string(field)).Inc()
	}
	log.DebugContext(ctx, "Employee rejected", "fields", errs.Fields())

	return errs
}

// Normalize converts a validated candidate into the stored record shape.
func Normalize(input models.EmployeeInput) models.Employee {
	return models.Employee{
		Name:    strings.TrimSpace(input.Name),
		Dept:    input.Dept,
		Active:  input.Active,
		Number:  input.Number,
		Email:   strings.ToLower(strings.TrimSpace(input.Email)),
		Address: strings.TrimSpace(input.Address),
		Photo:   input.Photo,
	}
}

// IsEmployeeExists checks if an employee with the given ID exists in the repository.
// Only a missing record reports false without an error.
func IsEmployeeExists(
	ctx context.Context,
	employeeID int,
	repo repository.EmployeeRepoIface,
) (bool, models.Employee, error) {
	employee, err := repo.GetEmployeeByID(ctx, employeeID)
	if errors.Is(err, repository.ErrEmployeeNotFound) {
		return false, models.Employee{}, nil
	}
	if err != nil {
		return false, models.Employee{}, fmt.Errorf("failed to check employee %d: %w", employeeID, err)
	}

	return true, employee, nil
}
