package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestValidatorInit ensures all custom validations are registered
func TestValidatorInit(t *testing.T) {
	validate := validator.New()

	assert.NotPanics(t, func() {
		err := validate.RegisterValidation("personname", validatePersonName)
		assert.NoError(t, err)
	})
	assert.NotPanics(t, func() {
		err := validate.RegisterValidation("password", validatePassword)
		assert.NoError(t, err)
	})
	assert.NotPanics(t, func() {
		err := validate.RegisterValidation("notblank", validateNotBlank)
		assert.NoError(t, err)
	})
}

func TestValidatePersonName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"Simple", "Ada", false},
		{"Hyphenated", "Jean-Luc", false},
		{"Apostrophe", "O'Brien", false},
		{"With space", "Mary Ann", false},
		{"Unicode letters", "Zoë", false},
		{"Empty", "", true},
		{"Starts with hyphen", "-Ada", true},
		{"Digits", "Ada1", true},
		{"Too long", strings.Repeat("a", 51), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePersonName(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"Valid password", "TestPass1!", false},
		{"Too short", "Test1!", true},
		{"Too long", "Aa1!" + strings.Repeat("x", 69), true},
		{"No uppercase", "testpass1!", true},
		{"No lowercase", "TESTPASS1!", true},
		{"No number", "TestPass!", true},
		{"No special", "TestPass1", true},
		{"Valid complex", "Test1Pass!@#", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

type testRequest struct {
	FirstName string `json:"firstName" validate:"required,personname"`
	Email     string `json:"email" validate:"required,email"`
	Title     string `json:"title" validate:"notblank,max=10"`
}

func TestFormatError(t *testing.T) {
	tests := []struct {
		name      string
		req       testRequest
		wantField string
		wantMsg   string
	}{
		{
			name:      "missing first name",
			req:       testRequest{Email: "a@example.com", Title: "hi"},
			wantField: "firstName",
			wantMsg:   "firstName is required",
		},
		{
			name:      "bad email",
			req:       testRequest{FirstName: "Ada", Email: "nope", Title: "hi"},
			wantField: "email",
			wantMsg:   "Invalid email format",
		},
		{
			name:      "blank title",
			req:       testRequest{FirstName: "Ada", Email: "a@example.com", Title: "   "},
			wantField: "title",
			wantMsg:   "title is required",
		},
		{
			name:      "title too long",
			req:       testRequest{FirstName: "Ada", Email: "a@example.com", Title: strings.Repeat("x", 11)},
			wantField: "title",
			wantMsg:   "title must be at most 10 characters long",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(&tt.req)
			require.Error(t, err)

			errs := FormatError(err)
			require.Len(t, errs, 1)
			assert.Equal(t, tt.wantField, errs[0].Field)
			assert.Equal(t, tt.wantMsg, errs[0].Error)
			assert.Equal(t, tt.wantMsg, Message(err))
		})
	}
}

func TestFormatError_NotValidationError(t *testing.T) {
	assert.Empty(t, FormatError(nil))
	assert.Empty(t, FormatError(errors.New("boom")))
	assert.Equal(t, "Invalid request", Message(errors.New("boom")))
}
