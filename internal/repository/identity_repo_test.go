package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-storefront-kv/internal/model"
)

func TestRegisterAssignsSequentialIDsAndUserRole(t *testing.T) {
	identity := NewIdentityRepo(newTestStore(t))

	first, err := identity.Register("alice", "alice@example.com", "Secret1pw")
	require.NoError(t, err)
	second, err := identity.Register("bob", "bob@example.com", "Secret1pw")
	require.NoError(t, err)

	assert.Equal(t, 1, first.ID)
	assert.Equal(t, 2, second.ID)
	assert.Equal(t, model.RoleUser, first.Role)
	assert.False(t, first.RegisteredAt.IsZero())
	assert.True(t, first.CheckPassword("Secret1pw"))
	assert.NotEqual(t, "Secret1pw", first.Password)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	identity := NewIdentityRepo(newTestStore(t))

	_, err := identity.Register("alice", "alice@example.com", "Secret1pw")
	require.NoError(t, err)

	_, err = identity.Register("other", "alice@example.com", "Another1pw")
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	users, err := identity.List()
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestRegisterEmailMatchIsCaseSensitive(t *testing.T) {
	identity := NewIdentityRepo(newTestStore(t))

	_, err := identity.Register("alice", "alice@example.com", "Secret1pw")
	require.NoError(t, err)

	// Exact-match semantics: a differently cased address is a new account.
	_, err = identity.Register("alice2", "Alice@example.com", "Secret1pw")
	assert.NoError(t, err)
}

func TestAuthenticate(t *testing.T) {
	identity := NewIdentityRepo(newTestStore(t))

	_, err := identity.Register("alice", "alice@example.com", "Secret1pw")
	require.NoError(t, err)

	user, err := identity.Authenticate("alice@example.com", "Secret1pw")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	_, err = identity.Authenticate("alice@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = identity.Authenticate("nobody@example.com", "Secret1pw")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSessionLifecycle(t *testing.T) {
	identity := NewIdentityRepo(newTestStore(t))

	session, err := identity.CurrentSession()
	require.NoError(t, err)
	assert.Nil(t, session)

	user, err := identity.Register("alice", "alice@example.com", "Secret1pw")
	require.NoError(t, err)

	logged, err := identity.Login(user)
	require.NoError(t, err)
	require.NotEmpty(t, logged.SessionVersion)

	session, err = identity.CurrentSession()
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, user.ID, session.ID)
	assert.Equal(t, logged.SessionVersion, session.SessionVersion)

	// A second login rotates the version, invalidating the first session.
	again, err := identity.Login(user)
	require.NoError(t, err)
	assert.NotEqual(t, logged.SessionVersion, again.SessionVersion)

	require.NoError(t, identity.Logout())
	session, err = identity.CurrentSession()
	require.NoError(t, err)
	assert.Nil(t, session)
}
