package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateStruct(t *testing.T) {
	type input struct {
		Name  string `json:"name" validate:"required,max=5"`
		Email string `json:"email" validate:"omitempty,email"`
		Role  string `json:"role" validate:"omitempty,oneof=sales developer admin"`
	}

	assert.NoError(t, ValidateStruct(input{Name: "Asha"}))
	assert.NoError(t, ValidateStruct(input{Name: "Asha", Email: "asha@example.com", Role: "admin"}))

	assert.Error(t, ValidateStruct(input{}))
	assert.Error(t, ValidateStruct(input{Name: "far too long a name"}))
	assert.Error(t, ValidateStruct(input{Name: "Asha", Email: "not-an-email"}))
	assert.Error(t, ValidateStruct(input{Name: "Asha", Role: "superadmin"}))
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail(""))
	assert.NoError(t, ValidateEmail("asha@example.com"))
	assert.Error(t, ValidateEmail("missing-at-sign"))
}
