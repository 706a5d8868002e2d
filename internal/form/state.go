// Package form drives the employee form of the client. Every transition goes through Reduce,
// a pure function of the current State and an Event; the Controller runs the side effects
// (HTTP calls, photo decoding, status timers) and feeds their outcomes back as events.
package form

import (
	"maps"
	"slices"
	"strconv"

	"github.com/UnknownOlympus/hestia/internal/models"
	"github.com/UnknownOlympus/hestia/internal/validation"
)

// Status messages shown by the form.
const (
	MsgCreated         = "Employee created successfully!"
	MsgUpdated         = "Employee updated successfully!"
	MsgSomethingWrong  = "Something went wrong."
	MsgNetworkError    = "Network error. Is backend running?"
	MsgDeleted         = "Employee deleted!"
	MsgDeleteFailed    = "Failed to delete employee"
	MsgPhotoReadFailed = "Could not read the selected file."
)

type Severity string

const (
	SeverityNone    Severity = ""
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Status is the banner message. Seq grows with every message set, so a timer scheduled for an
// older message can tell it has been superseded.
type Status struct {
	Text     string
	Severity Severity
	Seq      uint64
}

// State is everything the form renders.
type State struct {
	Draft     models.EmployeeInput
	Errors    map[validation.Field]string
	Employees []models.Employee

	Editing  bool
	TargetID int

	Status Status

	// PendingDelete is the id awaiting confirmation, 0 when none. Ids start at 1.
	PendingDelete int
	Viewing       *models.Employee

	statusSeq uint64
}

// DefaultDraft is the blank form: empty strings, department IT, inactive, no photo.
func DefaultDraft() models.EmployeeInput {
	return models.EmployeeInput{Dept: models.DeptIT}
}

// NewState returns the initial form state.
func NewState() State {
	return State{Draft: DefaultDraft(), Errors: map[validation.Field]string{}}
}

// Clone returns a deep copy that shares nothing mutable with s.
func (s State) Clone() State {
	s.Errors = maps.Clone(s.Errors)
	s.Employees = slices.Clone(s.Employees)
	if s.Viewing != nil {
		viewing := *s.Viewing
		s.Viewing = &viewing
	}
	return s
}

// Event is an input to Reduce.
type Event interface {
	isEvent()
}

type (
	// FieldChanged edits one draft field. Active takes a strconv.ParseBool value; anything
	// unparsable counts as false.
	FieldChanged struct {
		Field validation.Field
		Value string
	}
	// PhotoRejected reports a photo that failed selection checks or could not be read.
	PhotoRejected struct{ Message string }
	// PhotoAccepted reports a photo that passed selection checks and is being decoded.
	PhotoAccepted struct{}
	// PhotoDecoded carries the data URL of a decoded photo.
	PhotoDecoded struct{ DataURL string }

	SubmitStarted    struct{}
	ValidationFailed struct{ Errors map[validation.Field]string }
	// Saved reports a successful create, or an update when Updated is set.
	Saved      struct{ Updated bool }
	SaveFailed struct{ Message string }

	EmployeesLoaded struct{ Employees []models.Employee }
	EditBegan       struct{ ID int }

	DeleteRequested struct{ ID int }
	DeleteCancelled struct{}
	Deleted         struct{}
	DeleteFailed    struct{}

	ViewOpened struct{ ID int }
	ViewClosed struct{}

	FormReset struct{}
	// StatusExpired clears the status if it is still the message numbered Seq.
	StatusExpired struct{ Seq uint64 }
)

func (FieldChanged) isEvent()     {}
func (PhotoRejected) isEvent()    {}
func (PhotoAccepted) isEvent()    {}
func (PhotoDecoded) isEvent()     {}
func (SubmitStarted) isEvent()    {}
func (ValidationFailed) isEvent() {}
func (Saved) isEvent()            {}
func (SaveFailed) isEvent()       {}
func (EmployeesLoaded) isEvent()  {}
func (EditBegan) isEvent()        {}
func (DeleteRequested) isEvent()  {}
func (DeleteCancelled) isEvent()  {}
func (Deleted) isEvent()          {}
func (DeleteFailed) isEvent()     {}
func (ViewOpened) isEvent()       {}
func (ViewClosed) isEvent()       {}
func (FormReset) isEvent()        {}
func (StatusExpired) isEvent()    {}

// Reduce applies ev to s and returns the next state. s itself is never modified.
func Reduce(s State, ev Event) State {
	next := s.Clone()
	if next.Errors == nil {
		next.Errors = map[validation.Field]string{}
	}

	switch ev := ev.(type) {
	case FieldChanged:
		setField(&next.Draft, ev.Field, ev.Value)
		delete(next.Errors, ev.Field)

	case PhotoRejected:
		next.Errors[validation.FieldPhoto] = ev.Message
	case PhotoAccepted:
		delete(next.Errors, validation.FieldPhoto)
	case PhotoDecoded:
		next.Draft.Photo = ev.DataURL

	case SubmitStarted:
		next.Status = Status{}
	case ValidationFailed:
		next.Errors = maps.Clone(ev.Errors)
	case Saved:
		text := MsgCreated
		if ev.Updated {
			text = MsgUpdated
		}
		next.setStatus(text, SeveritySuccess)
		next.reset()
	case SaveFailed:
		next.setStatus(ev.Message, SeverityError)

	case EmployeesLoaded:
		next.Employees = slices.Clone(ev.Employees)
	case EditBegan:
		employee, ok := next.find(ev.ID)
		if !ok {
			return next
		}
		next.Draft = employee.Input()
		next.Editing = true
		next.TargetID = employee.ID
		next.Errors = map[validation.Field]string{}

	case DeleteRequested:
		next.PendingDelete = ev.ID
	case DeleteCancelled:
		next.PendingDelete = 0
	case Deleted:
		next.PendingDelete = 0
		next.setStatus(MsgDeleted, SeveritySuccess)
	case DeleteFailed:
		next.PendingDelete = 0
		next.setStatus(MsgDeleteFailed, SeverityError)

	case ViewOpened:
		next.Viewing = nil
		if employee, ok := next.find(ev.ID); ok {
			next.Viewing = &employee
		}
	case ViewClosed:
		next.Viewing = nil

	case FormReset:
		next.reset()
	case StatusExpired:
		if next.Status.Seq == ev.Seq {
			next.Status = Status{}
		}
	}

	return next
}

func (s *State) setStatus(text string, severity Severity) {
	s.statusSeq++
	s.Status = Status{Text: text, Severity: severity, Seq: s.statusSeq}
}

// reset restores the blank draft and leaves status and list alone.
func (s *State) reset() {
	s.Draft = DefaultDraft()
	s.Editing = false
	s.TargetID = 0
	s.Errors = map[validation.Field]string{}
}

func (s *State) find(identifier int) (models.Employee, bool) {
	for _, employee := range s.Employees {
		if employee.ID == identifier {
			return employee, true
		}
	}
	return models.Employee{}, false
}

func setField(draft *models.EmployeeInput, field validation.Field, value string) {
	switch field {
	case validation.FieldName:
		draft.Name = value
	case validation.FieldDept:
		draft.Dept = models.Department(value)
	case validation.FieldActive:
		active, _ := strconv.ParseBool(value)
		draft.Active = active
	case validation.FieldNumber:
		draft.Number = value
	case validation.FieldEmail:
		draft.Email = value
	case validation.FieldAddress:
		draft.Address = value
	case validation.FieldPhoto:
		draft.Photo = value
	}
}
