package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signup struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"min=6"`
}

func TestStructValid(t *testing.T) {
	assert.NoError(t, Struct(signup{Username: "greta", Email: "greta@example.com", Password: "secret1"}))
}

func TestStructReportsJSONFieldNames(t *testing.T) {
	err := Struct(signup{Email: "nope", Password: "123"})
	require.Error(t, err)

	var errs Errors
	require.ErrorAs(t, err, &errs)
	assert.Equal(t, Errors{
		{Field: "username", Message: "username is required"},
		{Field: "email", Message: "Must be a valid email address"},
		{Field: "password", Message: "password must be at least 6 characters long"},
	}, errs)
}

type profile struct {
	Name string `json:"name" validate:"notblank"`
}

func TestStructNotBlank(t *testing.T) {
	assert.NoError(t, Struct(profile{Name: " Ada "}))

	var errs Errors
	require.ErrorAs(t, Struct(profile{Name: "   "}), &errs)
	assert.Equal(t, Errors{{Field: "name", Message: "name is required"}}, errs)
}
