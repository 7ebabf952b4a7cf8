package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type registerPayload struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,password"`
}

func TestPasswordRule(t *testing.T) {
	tests := []struct {
		name     string
		password string
		valid    bool
	}{
		{"strong", "Secret1pw", true},
		{"too short", "Ab1", false},
		{"no upper", "secret1pw", false},
		{"no lower", "SECRET1PW", false},
		{"no digit", "Secretpwd", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateStruct(&registerPayload{Email: "a@example.com", Password: tt.password})
			if tt.valid {
				assert.Empty(t, errs)
			} else {
				assert.NotEmpty(t, errs)
			}
		})
	}
}

func TestValidateStructReportsField(t *testing.T) {
	errs := ValidateStruct(&registerPayload{Email: "not-an-email", Password: "Secret1pw"})
	assert.Len(t, errs, 1)
	assert.Equal(t, "email", errs[0].Tag)
}
