package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-storefront-kv/internal/model"
)

func TestGenerateAndValidate(t *testing.T) {
	user := &model.User{
		ID:             2,
		Email:          "joao@email.com",
		Role:           model.RoleUser,
		SessionVersion: "v-abc",
	}

	signed, err := Generate(user)
	require.NoError(t, err)

	claims, err := Validate(signed)
	require.NoError(t, err)
	assert.Equal(t, 2, claims.UserID)
	assert.Equal(t, "joao@email.com", claims.Email)
	assert.Equal(t, model.RoleUser, claims.Role)
	assert.Equal(t, "v-abc", claims.SessionVersion)
	assert.NotEmpty(t, claims.ID)
}

func TestValidateRejectsGarbage(t *testing.T) {
	_, err := Validate("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsTampering(t *testing.T) {
	signed, err := Generate(&model.User{ID: 1, Email: "a@example.com", Role: model.RoleAdmin})
	require.NoError(t, err)

	_, err = Validate(signed + "x")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
