package validation

import "strings"

// FieldError is one failed rule.
type FieldError struct {
	Field   Field
	Message string
}

// Errors is the ordered validation error set of one record.
type Errors []FieldError

// Error joins all messages with a single space, the form used in HTTP error bodies.
func (e *Errors) Error() string {
	return strings.Join(e.Messages(), " ")
}

// Messages returns the messages in evaluation order.
func (e *Errors) Messages() []string {
	if e == nil {
		return nil
	}

	out := make([]string, 0, len(*e))
	for _, fe := range *e {
		out = append(out, fe.Message)
	}
	return out
}

// ByField returns the first message of every failing field.
func (e *Errors) ByField() map[Field]string {
	out := make(map[Field]string)
	if e == nil {
		return out
	}

	for _, fe := range *e {
		if _, seen := out[fe.Field]; !seen {
			out[fe.Field] = fe.Message
		}
	}
	return out
}

// Fields lists the failing fields in evaluation order.
func (e *Errors) Fields() []Field {
	if e == nil {
		return nil
	}

	out := make([]Field, 0, len(*e))
	for _, fe := range *e {
		out = append(out, fe.Field)
	}
	return out
}
