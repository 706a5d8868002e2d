package models

import (
	"encoding/json"
)

// Department is one of the closed set of company departments.
type Department string

const (
	DeptIT       Department = "IT"
	DeptFinance  Department = "Finance"
	DeptSecurity Department = "Security"
)

// Departments lists every valid department. The first one is the form default.
var Departments = []Department{DeptIT, DeptFinance, DeptSecurity} //nolint:gochecknoglobals // closed enum

// IsValid reports whether d belongs to Departments.
func (d Department) IsValid() bool {
	for _, known := range Departments {
		if d == known {
			return true
		}
	}
	return false
}

// Employee represents a stored employee record.
type Employee struct {
	ID      int        `json:"id"`
	Name    string     `json:"name"`
	Dept    Department `json:"dept"`
	Active  bool       `json:"active"`
	Number  string     `json:"number"`
	Email   string     `json:"email"`
	Address string     `json:"address"`
	Photo   string     `json:"photo"`
}

// Input returns the record fields as a candidate payload.
func (e Employee) Input() EmployeeInput {
	return EmployeeInput{
		Name:    e.Name,
		Dept:    e.Dept,
		Active:  e.Active,
		Number:  e.Number,
		Email:   e.Email,
		Address: e.Address,
		Photo:   e.Photo,
	}
}

// EmployeeInput is the candidate payload of a create or update request.
// It is not trusted: it may be partial or carry wrongly typed values.
type EmployeeInput struct {
	Name    string     `json:"name"`
	Dept    Department `json:"dept"`
	Active  bool       `json:"active"`
	Number  string     `json:"number"`
	Email   string     `json:"email"`
	Address string     `json:"address"`
	Photo   string     `json:"photo"`
}

// UnmarshalJSON decodes the payload leniently. String fields carrying another JSON type decode
// as empty, so a numeric employee number fails validation as missing. Active follows truthiness.
func (in *EmployeeInput) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err //nolint:wrapcheck // surfaced as invalid body
	}

	*in = EmployeeInput{
		Name:    rawString(raw["name"]),
		Dept:    Department(rawString(raw["dept"])),
		Active:  rawTruthy(raw["active"]),
		Number:  rawString(raw["number"]),
		Email:   rawString(raw["email"]),
		Address: rawString(raw["address"]),
		Photo:   rawString(raw["photo"]),
	}

	return nil
}

func rawString(msg json.RawMessage) string {
	var str string
	if len(msg) == 0 || json.Unmarshal(msg, &str) != nil {
		return ""
	}
	return str
}

func rawTruthy(msg json.RawMessage) bool {
	if len(msg) == 0 {
		return false
	}

	var value any
	if err := json.Unmarshal(msg, &value); err != nil {
		return false
	}

	switch typed := value.(type) {
	case nil:
		return false
	case bool:
		return typed
	case float64:
		return typed != 0
	case string:
		return typed != ""
	default:
		return true
	}
}
