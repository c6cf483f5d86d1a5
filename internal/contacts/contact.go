// Package contacts stores messages sent through the contact form and lets the
// site owner triage them.
package contacts

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// Message triage states.
const (
	StatusNew     = "new"
	StatusRead    = "read"
	StatusReplied = "replied"
)

// Statuses lists the valid triage states.
var Statuses = []string{StatusNew, StatusRead, StatusReplied}

// ErrNotFound is returned when no contact has the requested id.
var ErrNotFound = errors.New("contact not found")

// Contact is a stored contact form submission.
type Contact struct {
	ID        int64     `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// FullName joins first and last name.
func (c Contact) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// CreateRequest is the public submission payload.
type CreateRequest struct {
	FirstName string `json:"first_name" validate:"required,max=100,singleline"`
	LastName  string `json:"last_name" validate:"required,max=100,singleline"`
	Email     string `json:"email" validate:"required,email,max=254"`
	Message   string `json:"message" validate:"required,min=10,max=5000"`
}

// Normalize trims surrounding whitespace from every field.
func (r *CreateRequest) Normalize() {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.Email = strings.TrimSpace(r.Email)
	r.Message = strings.TrimSpace(r.Message)
}

// StatusUpdate changes the triage state of a message.
type StatusUpdate struct {
	Status string `json:"status" validate:"required,oneof=new read replied"`
}

// ValidationError lists invalid request fields by their JSON name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation error: " + strings.Join(parts, "; ")
}

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		// Names end up in mail headers.
		_ = v.RegisterValidation("singleline", func(fl validator.FieldLevel) bool {
			return !strings.ContainsFunc(fl.Field().String(), unicode.IsControl)
		})
		validateInst = v
	})
	return validateInst
}

// Validate checks a request struct and returns a *ValidationError describing
// every failing field.
func Validate(req any) error {
	err := validatorInstance().Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &ValidationError{Fields: make(map[string]string, len(verrs))}
	for _, fe := range verrs {
		out.Fields[fe.Field()] = describe(fe)
	}
	return out
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "singleline":
		return "must not contain line breaks or control characters"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
