package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/UnknownOlympus/hestia/internal/models"
)

// ErrTransport marks failures where no HTTP response was received at all.
var ErrTransport = errors.New("employee API unreachable")

// APIError is a non-success response from the employee API.
type APIError struct {
	StatusCode int
	Message    string // Message is the server supplied `error` text; it may be empty.
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("employee API returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("employee API returned status %d: %s", e.StatusCode, e.Message)
}

// EmployeeAPI calls the /api/employees resource.
type EmployeeAPI struct {
	client  *http.Client
	baseURL string
	log     *slog.Logger
}

func NewEmployeeAPI(client *http.Client, baseURL string, log *slog.Logger) *EmployeeAPI {
	return &EmployeeAPI{client: client, baseURL: baseURL, log: log}
}

// List fetches every stored employee.
func (a *EmployeeAPI) List(ctx context.Context) ([]models.Employee, error) {
	var employees []models.Employee
	if err := a.do(ctx, http.MethodGet, "/api/employees", nil, &employees); err != nil {
		return nil, err
	}

	return employees, nil
}

// Create submits a new employee and returns the stored record.
func (a *EmployeeAPI) Create(ctx context.Context, input models.EmployeeInput) (models.Employee, error) {
	var employee models.Employee
	if err := a.do(ctx, http.MethodPost, "/api/employees", input, &employee); err != nil {
		return models.Employee{}, err
	}

	return employee, nil
}

// Update replaces the employee with the given identifier.
func (a *EmployeeAPI) Update(ctx context.Context, identifier int, input models.EmployeeInput) (models.Employee, error) {
	var employee models.Employee
	if err := a.do(ctx, http.MethodPut, employeePath(identifier), input, &employee); err != nil {
		return models.Employee{}, err
	}

	return employee, nil
}

// Delete removes the employee with the given identifier.
func (a *EmployeeAPI) Delete(ctx context.Context, identifier int) error {
	return a.do(ctx, http.MethodDelete, employeePath(identifier), nil, nil)
}

func employeePath(identifier int) string {
	return "/api/employees/" + strconv.Itoa(identifier)
}

func (a *EmployeeAPI) do(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create new request %s %s: %w", method, path, err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %w", ErrTransport, method, path, err)
	}
	defer resp.Body.Close()

	a.log.DebugContext(ctx, "Employee API responded", "method", method, "path", path, "status", resp.StatusCode)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var errBody struct {
			Error string `json:"error"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&errBody); decodeErr == nil {
			apiErr.Message = errBody.Error
		}
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response body: %w", err)
	}

	return nil
}
