// Package validation holds the employee rule set evaluated by both the HTTP server and the client
// form controller. Each field owns an ordered list of checks; the first failing check of a field
// produces that field's only error.
package validation

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/UnknownOlympus/hestia/internal/models"
)

// Field names a validated employee attribute. Values match the JSON keys.
type Field string

const (
	FieldName    Field = "name"
	FieldDept    Field = "dept"
	FieldActive  Field = "active"
	FieldNumber  Field = "number"
	FieldEmail   Field = "email"
	FieldAddress Field = "address"
	FieldPhoto   Field = "photo"
)

const (
	// MaxPhotoBytes is the largest photo file accepted at selection time.
	MaxPhotoBytes = 2 * 1024 * 1024
	// MaxNumberLength is the longest accepted employee number.
	MaxNumberLength = 10
	// MinNameLength is the shortest accepted trimmed name.
	MinNameLength = 2

	inlineImagePrefix = "data:image/"
)

// Messages reported by the rule set.
const (
	MsgNameRequired    = "Employee name is required."
	MsgNameTooShort    = "Name must be at least 2 characters."
	MsgDeptInvalid     = "Department must be one of IT, Finance, Security."
	MsgEmailRequired   = "Email is required."
	MsgEmailInvalid    = "Please enter a valid email address."
	MsgNumberRequired  = "Employee number is required."
	MsgNumberDigits    = "Employee number must contain only digits."
	MsgNumberTooLong   = "Employee number too long (max 10 digits)."
	MsgAddressRequired = "Employee address is required."
	MsgPhotoRequired   = "Employee photo is required."
	MsgPhotoNotImage   = "Employee photo must be an inline image."
	MsgPhotoType       = "Only JPG or PNG images are allowed."
	MsgPhotoTooLarge   = "File too large (max 2MB)."
)

var (
	emailRegex     = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	digitsRegex    = regexp.MustCompile(`^\d+$`)
	photoTypeRegex = regexp.MustCompile(`^image/(jpeg|png|jpg)$`)
)

// isSpace reports Unicode white space and the byte order mark.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}

// check is one predicate of a field rule. It returns true when the value passes.
type check struct {
	ok      func(in models.EmployeeInput) bool
	message string
}

type rule struct {
	field  Field
	checks []check
}

// rules is the single source of truth for record validation, in evaluation order.
var rules = []rule{ //nolint:gochecknoglobals // immutable rule table
	{
		field: FieldName,
		checks: []check{
			{ok: func(in models.EmployeeInput) bool { return strings.TrimSpace(in.Name) != "" }, message: MsgNameRequired},
			{ok: func(in models.EmployeeInput) bool {
				return len([]rune(strings.TrimSpace(in.Name))) >= MinNameLength
			}, message: MsgNameTooShort},
		},
	},
	{
		field: FieldDept,
		checks: []check{
			{ok: func(in models.EmployeeInput) bool { return in.Dept.IsValid() }, message: MsgDeptInvalid},
		},
	},
	{
		field: FieldEmail,
		checks: []check{
			{ok: func(in models.EmployeeInput) bool { return strings.TrimSpace(in.Email) != "" }, message: MsgEmailRequired},
			{ok: func(in models.EmployeeInput) bool {
				email := strings.TrimSpace(in.Email)
				return !strings.ContainsFunc(email, isSpace) && emailRegex.MatchString(email)
			}, message: MsgEmailInvalid},
		},
	},
	{
		field: FieldNumber,
		checks: []check{
			{ok: func(in models.EmployeeInput) bool { return strings.TrimSpace(in.Number) != "" }, message: MsgNumberRequired},
			{ok: func(in models.EmployeeInput) bool { return digitsRegex.MatchString(in.Number) }, message: MsgNumberDigits},
			{ok: func(in models.EmployeeInput) bool { return len(in.Number) <= MaxNumberLength }, message: MsgNumberTooLong},
		},
	},
	{
		field: FieldAddress,
		checks: []check{
			{ok: func(in models.EmployeeInput) bool {
				return strings.TrimSpace(in.Address) != ""
			}, message: MsgAddressRequired},
		},
	},
	{
		field: FieldPhoto,
		checks: []check{
			{ok: func(in models.EmployeeInput) bool { return in.Photo != "" }, message: MsgPhotoRequired},
			{ok: func(in models.EmployeeInput) bool {
				return strings.HasPrefix(in.Photo, inlineImagePrefix)
			}, message: MsgPhotoNotImage},
		},
	},
}

// Validate evaluates the rule set against in. It returns nil when the record is eligible.
func Validate(in models.EmployeeInput) *Errors {
	var errs Errors

	for _, r := range rules {
		for _, c := range r.checks {
			if !c.ok(in) {
				errs = append(errs, FieldError{Field: r.field, Message: c.message})
				break
			}
		}
	}

	if len(errs) == 0 {
		return nil
	}

	return &errs
}

// ValidatePhotoFile checks a file chosen as a photo before it is read.
// It returns an empty string when the file is acceptable.
func ValidatePhotoFile(mediaType string, size int64) string {
	if !photoTypeRegex.MatchString(strings.ToLower(mediaType)) {
		return MsgPhotoType
	}
	if size > MaxPhotoBytes {
		return MsgPhotoTooLarge
	}
	return ""
}
