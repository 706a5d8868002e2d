package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/UnknownOlympus/hestia/internal/lib/logger/sl"
	"github.com/UnknownOlympus/hestia/internal/models"
	"github.com/UnknownOlympus/hestia/internal/repository"
	"github.com/UnknownOlympus/hestia/internal/validation"
)

const (
	msgNotFound      = "Employee not found"
	msgInvalidJSON   = "Invalid JSON body."
	msgBodyTooLarge  = "Request body too large."
	msgInternalError = "Internal server error."
)

var errTrailingData = errors.New("unexpected data after JSON body")

// EmployeeService is the record store exposed over HTTP.
type EmployeeService interface {
	List(ctx context.Context) ([]models.Employee, error)
	Create(ctx context.Context, input models.EmployeeInput) (models.Employee, error)
	Update(ctx context.Context, identifier int, input models.EmployeeInput) (models.Employee, error)
	Delete(ctx context.Context, identifier int) error
}

// ErrorResponse is the body of every failed API call.
type ErrorResponse struct {
	Error string `json:"error"`
}

// EmployeeHandler serves the /api/employees resource.
type EmployeeHandler struct {
	staff     EmployeeService
	bodyLimit int64
	log       *slog.Logger
}

func NewEmployeeHandler(staff EmployeeService, bodyLimit int64, log *slog.Logger) *EmployeeHandler {
	return &EmployeeHandler{staff: staff, bodyLimit: bodyLimit, log: log}
}

// Register mounts the employee routes on mux.
func (h *EmployeeHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/employees", h.List)
	mux.HandleFunc("POST /api/employees", h.Create)
	mux.HandleFunc("PUT /api/employees/{id}", h.Update)
	mux.HandleFunc("DELETE /api/employees/{id}", h.Delete)
}

// List handles GET /api/employees.
func (h *EmployeeHandler) List(writer http.ResponseWriter, req *http.Request) {
	employees, err := h.staff.List(req.Context())
	if err != nil {
		h.fail(writer, req, err)
		return
	}

	h.writeJSON(writer, req, http.StatusOK, employees)
}

// Create handles POST /api/employees.
func (h *EmployeeHandler) Create(writer http.ResponseWriter, req *http.Request) {
	input, ok := h.decodeInput(writer, req)
	if !ok {
		return
	}

	employee, err := h.staff.Create(req.Context(), input)
	if err != nil {
		h.fail(writer, req, err)
		return
	}

	h.writeJSON(writer, req, http.StatusCreated, employee)
}

// Update handles PUT /api/employees/{id}.
func (h *EmployeeHandler) Update(writer http.ResponseWriter, req *http.Request) {
	identifier, ok := h.pathID(writer, req)
	if !ok {
		return
	}

	input, ok := h.decodeInput(writer, req)
	if !ok {
		return
	}

	employee, err := h.staff.Update(req.Context(), identifier, input)
	if err != nil {
		h.fail(writer, req, err)
		return
	}

	h.writeJSON(writer, req, http.StatusOK, employee)
}

// Delete handles DELETE /api/employees/{id}.
func (h *EmployeeHandler) Delete(writer http.ResponseWriter, req *http.Request) {
	identifier, ok := h.pathID(writer, req)
	if !ok {
		return
	}

	if err := h.staff.Delete(req.Context(), identifier); err != nil {
		h.fail(writer, req, err)
		return
	}

	writer.WriteHeader(http.StatusNoContent)
}

// pathID resolves the {id} segment. Anything that is not an integer cannot name a record.
func (h *EmployeeHandler) pathID(writer http.ResponseWriter, req *http.Request) (int, bool) {
	identifier, err := strconv.Atoi(req.PathValue("id"))
	if err != nil {
		h.writeError(writer, req, http.StatusNotFound, msgNotFound)
		return 0, false
	}

	return identifier, true
}

// decodeInput reads the candidate record. An empty body decodes as an empty record so that it
// is reported through validation rather than as a syntax error.
func (h *EmployeeHandler) decodeInput(writer http.ResponseWriter, req *http.Request) (models.EmployeeInput, bool) {
	var input models.EmployeeInput

	body := http.MaxBytesReader(writer, req.Body, h.bodyLimit)
	dec := json.NewDecoder(body)
	err := dec.Decode(&input)
	if err == nil {
		err = expectEOF(dec)
	}

	var maxErr *http.MaxBytesError
	switch {
	case err == nil, errors.Is(err, io.EOF):
		return input, true
	case errors.As(err, &maxErr):
		h.log.WarnContext(req.Context(), "request body too large", "limit", maxErr.Limit)
		h.writeError(writer, req, http.StatusRequestEntityTooLarge, msgBodyTooLarge)
	default:
		h.log.DebugContext(req.Context(), "invalid json payload", sl.Err(err))
		h.writeError(writer, req, http.StatusBadRequest, msgInvalidJSON)
	}

	return models.EmployeeInput{}, false
}

// expectEOF rejects anything but whitespace after the first JSON value.
func expectEOF(dec *json.Decoder) error {
	var extra json.RawMessage
	switch err := dec.Decode(&extra); {
	case errors.Is(err, io.EOF):
		return nil
	case err != nil:
		return err
	default:
		return errTrailingData
	}
}

func (h *EmployeeHandler) fail(writer http.ResponseWriter, req *http.Request, err error) {
	var verrs *validation.Errors

	switch {
	case errors.As(err, &verrs):
		h.writeError(writer, req, http.StatusBadRequest, verrs.Error())
	case errors.Is(err, repository.ErrEmployeeNotFound):
		h.writeError(writer, req, http.StatusNotFound, msgNotFound)
	default:
		h.log.ErrorContext(req.Context(), "employee request failed", "path", req.URL.Path, sl.Err(err))
		h.writeError(writer, req, http.StatusInternalServerError, msgInternalError)
	}
}

func (h *EmployeeHandler) writeError(writer http.ResponseWriter, req *http.Request, status int, message string) {
	h.writeJSON(writer, req, status, ErrorResponse{Error: message})
}

func (h *EmployeeHandler) writeJSON(writer http.ResponseWriter, req *http.Request, status int, body any) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)
	if err := json.NewEncoder(writer).Encode(body); err != nil {
		h.log.ErrorContext(req.Context(), "Failed to write response", sl.Err(err))
	}
}
