package contactform

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Field names one of the four form inputs.
type Field int

const (
	FirstName Field = iota
	LastName
	Email
	Message
)

// AllFields lists the inputs in display order.
var AllFields = []Field{FirstName, LastName, Email, Message}

// MinMessageLength is the shortest accepted message, counted after trimming.
const MinMessageLength = 10

// Validation messages shown next to the offending input.
const (
	MsgFirstNameRequired = "First name is required"
	MsgLastNameRequired  = "Last name is required"
	MsgEmailRequired     = "Email is required"
	MsgEmailInvalid      = "Please enter a valid email address"
	MsgMessageRequired   = "Message is required"
	MsgMessageTooShort   = "Message must be at least 10 characters"
)

// emailShape is a shape check only: something@something.something.
var emailShape = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// String returns the form input name.
func (f Field) String() string {
	switch f {
	case FirstName:
		return "firstName"
	case LastName:
		return "lastName"
	case Email:
		return "email"
	case Message:
		return "message"
	default:
		return fmt.Sprintf("Field(%d)", int(f))
	}
}

// Label is the human readable input label.
func (f Field) Label() string {
	switch f {
	case FirstName:
		return "First name"
	case LastName:
		return "Last name"
	case Email:
		return "Email"
	case Message:
		return "Message"
	default:
		return f.String()
	}
}

// ParseField maps a form input name back to its Field.
func ParseField(name string) (Field, error) {
	for _, f := range AllFields {
		if f.String() == name {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown form field %q", name)
}

// FormFields is the raw text of the four inputs.
type FormFields struct {
	FirstName string
	LastName  string
	Email     string
	Message   string
}

// Get returns the value of one field.
func (f FormFields) Get(field Field) string {
	switch field {
	case FirstName:
		return f.FirstName
	case LastName:
		return f.LastName
	case Email:
		return f.Email
	case Message:
		return f.Message
	}
	return ""
}

// Set overwrites one field.
func (f *FormFields) Set(field Field, value string) {
	switch field {
	case FirstName:
		f.FirstName = value
	case LastName:
		f.LastName = value
	case Email:
		f.Email = value
	case Message:
		f.Message = value
	}
}

// FieldErrors mirrors FormFields; an empty string means the field is fine.
type FieldErrors struct {
	FirstName string
	LastName  string
	Email     string
	Message   string
}

// Get returns the error message for one field.
func (e FieldErrors) Get(field Field) string {
	return FormFields(e).Get(field)
}

// Set stores the error message for one field.
func (e *FieldErrors) Set(field Field, msg string) {
	(*FormFields)(e).Set(field, msg)
}

// Any reports whether at least one field has an error.
func (e FieldErrors) Any() bool {
	return e != FieldErrors{}
}

// Map returns the non-empty errors keyed by input name.
func (e FieldErrors) Map() map[string]string {
	out := make(map[string]string)
	for _, f := range AllFields {
		if msg := e.Get(f); msg != "" {
			out[f.String()] = msg
		}
	}
	return out
}

// Validate checks every field independently and returns the complete set of
// errors together with overall validity. It has no side effects.
func Validate(fields FormFields) (FieldErrors, bool) {
	var errs FieldErrors

	if strings.TrimSpace(fields.FirstName) == "" {
		errs.FirstName = MsgFirstNameRequired
	}
	if strings.TrimSpace(fields.LastName) == "" {
		errs.LastName = MsgLastNameRequired
	}

	switch {
	case strings.TrimSpace(fields.Email) == "":
		errs.Email = MsgEmailRequired
	case !emailShape.MatchString(fields.Email):
		errs.Email = MsgEmailInvalid
	}

	message := strings.TrimSpace(fields.Message)
	switch {
	case message == "":
		errs.Message = MsgMessageRequired
	case utf8.RuneCountInString(message) < MinMessageLength:
		errs.Message = MsgMessageTooShort
	}

	return errs, !errs.Any()
}
