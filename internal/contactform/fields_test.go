package contactform

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validFields() FormFields {
	return FormFields{
		FirstName: "John",
		LastName:  "Doe",
		Email:     "john@example.com",
		Message:   "Hello, this is a test.",
	}
}

func TestValidateAcceptsValidInput(t *testing.T) {
	errs, ok := Validate(validFields())
	require.True(t, ok)
	require.False(t, errs.Any())
}

func TestValidateReportsEveryEmptyField(t *testing.T) {
	errs, ok := Validate(FormFields{FirstName: "  ", LastName: "\t", Email: " ", Message: "\n"})
	require.False(t, ok)
	assert.Equal(t, MsgFirstNameRequired, errs.FirstName)
	assert.Equal(t, MsgLastNameRequired, errs.LastName)
	assert.Equal(t, MsgEmailRequired, errs.Email)
	assert.Equal(t, MsgMessageRequired, errs.Message)
}

func TestValidateSingleEmptyField(t *testing.T) {
	for _, field := range AllFields {
		t.Run(field.String(), func(t *testing.T) {
			fields := validFields()
			fields.Set(field, "   ")
			errs, ok := Validate(fields)
			require.False(t, ok)
			for _, other := range AllFields {
				if other == field {
					assert.NotEmpty(t, errs.Get(other))
				} else {
					assert.Empty(t, errs.Get(other))
				}
			}
		})
	}
}

func TestValidateEmailShape(t *testing.T) {
	invalid := []string{
		"plain",
		"missing-at.example.com",
		"@example.com",
		"john@",
		"john@example",
		"john@@example.com",
		"john doe@example.com",
		" john@example.com",
		"john@exa mple.com",
		"john@example.",
	}
	for _, email := range invalid {
		fields := validFields()
		fields.Email = email
		errs, ok := Validate(fields)
		assert.False(t, ok, email)
		assert.Equal(t, MsgEmailInvalid, errs.Email, email)
	}

	valid := []string{"a@b.c", "john.doe+tag@mail.example.co.uk", "x@localhost.localdomain", "weird!#@b.c"}
	for _, email := range valid {
		fields := validFields()
		fields.Email = email
		errs, _ := Validate(fields)
		assert.Empty(t, errs.Email, email)
	}
}

func TestValidateMessageLength(t *testing.T) {
	for n := 1; n <= 9; n++ {
		fields := validFields()
		fields.Message = "  " + strings.Repeat("x", n) + "  "
		errs, ok := Validate(fields)
		assert.False(t, ok)
		assert.Equal(t, MsgMessageTooShort, errs.Message, n)
	}
	for _, n := range []int{10, 11, 500} {
		fields := validFields()
		fields.Message = strings.Repeat("x", n)
		errs, ok := Validate(fields)
		assert.True(t, ok)
		assert.Empty(t, errs.Message, n)
	}
}

func TestValidateCountsCharactersNotBytes(t *testing.T) {
	fields := validFields()
	fields.Message = strings.Repeat("é", 10)
	_, ok := Validate(fields)
	assert.True(t, ok)

	fields.Message = strings.Repeat("é", 5)
	errs, _ := Validate(fields)
	assert.Equal(t, MsgMessageTooShort, errs.Message)
}

func TestValidateIsIdempotent(t *testing.T) {
	fields := FormFields{FirstName: "Ann", Email: "nope", Message: "short"}
	first, ok1 := Validate(fields)
	second, ok2 := Validate(fields)
	assert.Equal(t, first, second)
	assert.Equal(t, ok1, ok2)
}

func TestParseField(t *testing.T) {
	for _, f := range AllFields {
		parsed, err := ParseField(f.String())
		require.NoError(t, err)
		assert.Equal(t, f, parsed)
	}
	_, err := ParseField("phone")
	require.Error(t, err)
}

func TestFieldErrorsMap(t *testing.T) {
	errs := FieldErrors{Email: MsgEmailInvalid}
	assert.Equal(t, map[string]string{"email": MsgEmailInvalid}, errs.Map())
	assert.True(t, errs.Any())
	assert.False(t, FieldErrors{}.Any())
}
