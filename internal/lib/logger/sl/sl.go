package sl

import (
	"log/slog"
)

// Err creates a slog.Attr with the given error. A nil error is logged as an empty string.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "")
	}

	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}

// EmployeeID creates a slog.Attr carrying an employee identifier.
func EmployeeID(id int) slog.Attr {
	return slog.Int("employee_id", id)
}
