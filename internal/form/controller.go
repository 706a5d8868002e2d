package form

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/UnknownOlympus/hestia/internal/client"
	"github.com/UnknownOlympus/hestia/internal/lib/logger/sl"
	"github.com/UnknownOlympus/hestia/internal/models"
	"github.com/UnknownOlympus/hestia/internal/validation"
)

const (
	defaultSubmitStatusTTL = 5 * time.Second
	defaultDeleteStatusTTL = 3 * time.Second
)

// EmployeeAPI is the remote side of the form.
type EmployeeAPI interface {
	List(ctx context.Context) ([]models.Employee, error)
	Create(ctx context.Context, input models.EmployeeInput) (models.Employee, error)
	Update(ctx context.Context, identifier int, input models.EmployeeInput) (models.Employee, error)
	Delete(ctx context.Context, identifier int) error
}

// Controller owns the form state and runs the effects behind each user action.
type Controller struct {
	mu    sync.Mutex
	state State

	api EmployeeAPI
	log *slog.Logger

	submitStatusTTL time.Duration
	deleteStatusTTL time.Duration
	onChange        func(State)

	decoding sync.WaitGroup
}

type Option func(*Controller)

// WithStatusTTL overrides how long success messages stay after a submit and after a delete.
func WithStatusTTL(submit, remove time.Duration) Option {
	return func(c *Controller) {
		c.submitStatusTTL = submit
		c.deleteStatusTTL = remove
	}
}

// WithOnChange registers a callback invoked with a copy of the state after every transition.
// It runs outside the controller lock and may call back into the controller.
func WithOnChange(fn func(State)) Option {
	return func(c *Controller) {
		c.onChange = fn
	}
}

func NewController(api EmployeeAPI, log *slog.Logger, opts ...Option) *Controller {
	c := &Controller{
		state:           NewState(),
		api:             api,
		log:             log.With(slog.String("division", "form")),
		submitStatusTTL: defaultSubmitStatusTTL,
		deleteStatusTTL: defaultDeleteStatusTTL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state.Clone()
}

func (c *Controller) dispatch(ev Event) State {
	c.mu.Lock()
	c.state = Reduce(c.state, ev)
	snapshot := c.state.Clone()
	c.mu.Unlock()

	if c.onChange != nil {
		c.onChange(snapshot)
	}

	return snapshot
}

func (c *Controller) ChangeField(field validation.Field, value string) {
	c.dispatch(FieldChanged{Field: field, Value: value})
}

// SelectPhoto checks the file at path and decodes it in the background. The draft photo changes
// only once decoding completes; Wait blocks until then.
func (c *Controller) SelectPhoto(path string) {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		c.log.Warn("Photo is not readable", "path", path, sl.Err(err))
		c.dispatch(PhotoRejected{Message: MsgPhotoReadFailed})
		return
	}

	mediaType, err := photoMediaType(path)
	if err != nil {
		c.log.Warn("Failed to detect photo type", "path", path, sl.Err(err))
		c.dispatch(PhotoRejected{Message: MsgPhotoReadFailed})
		return
	}

	if msg := validation.ValidatePhotoFile(mediaType, info.Size()); msg != "" {
		c.dispatch(PhotoRejected{Message: msg})
		return
	}

	c.dispatch(PhotoAccepted{})

	c.decoding.Add(1)
	go func() {
		defer c.decoding.Done()

		dataURL, decodeErr := encodePhoto(path, mediaType)
		if decodeErr != nil {
			c.log.Warn("Failed to decode photo", "path", path, sl.Err(decodeErr))
			c.dispatch(PhotoRejected{Message: MsgPhotoReadFailed})
			return
		}
		c.dispatch(PhotoDecoded{DataURL: dataURL})
	}()
}

// Wait blocks until every pending photo decode has finished.
func (c *Controller) Wait() {
	c.decoding.Wait()
}

// Submit validates the draft and creates or updates the record.
func (c *Controller) Submit(ctx context.Context) {
	state := c.dispatch(SubmitStarted{})

	if errs := validation.Validate(state.Draft); errs != nil {
		c.dispatch(ValidationFailed{Errors: errs.ByField()})
		return
	}

	var err error
	if state.Editing {
		_, err = c.api.Update(ctx, state.TargetID, state.Draft)
	} else {
		_, err = c.api.Create(ctx, state.Draft)
	}
	if err != nil {
		c.log.ErrorContext(ctx, "Failed to save employee", sl.Err(err))
		c.dispatch(SaveFailed{Message: saveFailureMessage(err)})
		return
	}

	saved := c.dispatch(Saved{Updated: state.Editing})
	c.Refresh(ctx)
	c.expireStatus(saved.Status.Seq, c.submitStatusTTL)
}

func saveFailureMessage(err error) string {
	if errors.Is(err, client.ErrTransport) {
		return MsgNetworkError
	}

	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}

	return MsgSomethingWrong
}

// Refresh replaces the cached list. On failure the previous list is kept.
func (c *Controller) Refresh(ctx context.Context) {
	employees, err := c.api.List(ctx)
	if err != nil {
		c.log.ErrorContext(ctx, "Failed to fetch employees", sl.Err(err))
		return
	}

	c.dispatch(EmployeesLoaded{Employees: employees})
}

// BeginEdit loads the cached record into the draft. Unknown ids are ignored.
func (c *Controller) BeginEdit(identifier int) {
	c.dispatch(EditBegan{ID: identifier})
}

func (c *Controller) RequestDelete(identifier int) {
	c.dispatch(DeleteRequested{ID: identifier})
}

func (c *Controller) CancelDelete() {
	c.dispatch(DeleteCancelled{})
}

// ConfirmDelete deletes the pending record, if any.
func (c *Controller) ConfirmDelete(ctx context.Context) {
	pending := c.State().PendingDelete
	if pending == 0 {
		return
	}

	if err := c.api.Delete(ctx, pending); err != nil {
		c.log.ErrorContext(ctx, "Failed to delete employee", sl.EmployeeID(pending), sl.Err(err))
		c.dispatch(DeleteFailed{})
		return
	}

	deleted := c.dispatch(Deleted{})
	c.Refresh(ctx)
	c.expireStatus(deleted.Status.Seq, c.deleteStatusTTL)
}

func (c *Controller) View(identifier int) {
	c.dispatch(ViewOpened{ID: identifier})
}

func (c *Controller) CloseView() {
	c.dispatch(ViewClosed{})
}

func (c *Controller) Reset() {
	c.dispatch(FormReset{})
}

func (c *Controller) expireStatus(seq uint64, after time.Duration) {
	time.AfterFunc(after, func() {
		c.dispatch(StatusExpired{Seq: seq})
	})
}
