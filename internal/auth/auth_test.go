package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/hongminglow/attendance-be/internal/models"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("secret", "attendance-test", time.Hour)
	empID := int64(3)
	token, err := tm.Generate(models.User{ID: 42, Email: "a@x.com", Role: models.RoleEmployee, EmployeeID: &empID})
	require.NoError(t, err)

	claims, err := tm.Parse(token)
	require.NoError(t, err)
	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
	assert.Equal(t, models.RoleEmployee, claims.Role)
	require.NotNil(t, claims.EmployeeID)
	assert.Equal(t, empID, *claims.EmployeeID)
}

func TestTokenRejectsForeignAndExpired(t *testing.T) {
	tm := NewTokenManager("secret", "attendance-test", time.Minute)
	token, err := tm.Generate(models.User{ID: 1, Role: models.RoleAdmin})
	require.NoError(t, err)

	_, err = NewTokenManager("other", "attendance-test", time.Minute).Parse(token)
	require.ErrorIs(t, err, ErrInvalidToken)

	_, err = NewTokenManager("secret", "someone-else", time.Minute).Parse(token)
	require.ErrorIs(t, err, ErrInvalidToken)

	later := NewTokenManager("secret", "attendance-test", time.Minute)
	later.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = later.Parse(token)
	require.ErrorIs(t, err, ErrInvalidToken)

	_, err = tm.Parse("not-a-token")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenRejectsUnknownRole(t *testing.T) {
	tm := NewTokenManager("secret", "attendance-test", time.Hour)
	token, err := tm.Generate(models.User{ID: 9, Email: "x@x.com", Role: "superuser"})
	require.NoError(t, err)

	_, err = tm.Parse(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestBcryptHasher(t *testing.T) {
	h := NewHasher()
	h.SetCost(bcrypt.MinCost)
	stored, err := h.Hash("p@ss")
	require.NoError(t, err)
	assert.NotEqual(t, "p@ss", stored)
	assert.True(t, h.Check("p@ss", stored))
	assert.False(t, h.Check("wrong", stored))
	assert.False(t, h.Check("p@ss", "p@ss"))
}

func TestPlaintextHasher(t *testing.T) {
	h := NewPlaintextHasher()
	stored, err := h.Hash("p@ss")
	require.NoError(t, err)
	assert.Equal(t, "p@ss", stored)
	assert.True(t, h.Check("p@ss", stored))
	assert.False(t, h.Check("P@ss", stored))
}
