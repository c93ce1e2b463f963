package user

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/fitsphere/fitsphere-api/internal/domain/shared"
)

var testNow = time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)

func TestNew_Valid(t *testing.T) {
	u, err := New("Jane.Doe@Example.COM", "janedoe", "passw0rd1", testNow)
	assert.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "jane.doe@example.com", u.Email.String())
	assert.Equal(t, "janedoe", u.Username)
	assert.Equal(t, RoleUser, u.Role)
	assert.True(t, u.IsActive)
	assert.NotEqual(t, "passw0rd1", u.PasswordHash)
}

func TestNew_InvalidEmail(t *testing.T) {
	_, err := New("not-an-email", "janedoe", "passw0rd1", testNow)
	assert.ErrorIs(t, err, shared.ErrInvalidEmail)
}

func TestNew_UsernameLength(t *testing.T) {
	_, err := New("jane@example.com", "ab", "passw0rd1", testNow)
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestNew_WeakPassword(t *testing.T) {
	_, err := New("jane@example.com", "janedoe", "short1", testNow)
	assert.ErrorIs(t, err, shared.ErrWeakPassword)

	_, err = New("jane@example.com", "janedoe", "onlyletters", testNow)
	assert.ErrorIs(t, err, shared.ErrWeakPassword)

	_, err = New("jane@example.com", "janedoe", "12345678", testNow)
	assert.ErrorIs(t, err, shared.ErrWeakPassword)
}

func TestCheckPassword(t *testing.T) {
	u, err := New("jane@example.com", "janedoe", "passw0rd1", testNow)
	assert.NoError(t, err)

	assert.True(t, u.CheckPassword("passw0rd1"))
	assert.False(t, u.CheckPassword("wrong-password1"))
}

func TestChangePassword(t *testing.T) {
	u, err := New("jane@example.com", "janedoe", "passw0rd1", testNow)
	assert.NoError(t, err)

	later := testNow.Add(time.Hour)
	err = u.ChangePassword("newpassw0rd", later)
	assert.NoError(t, err)
	assert.True(t, u.CheckPassword("newpassw0rd"))
	assert.False(t, u.CheckPassword("passw0rd1"))
	assert.Equal(t, later, u.UpdatedAt)

	err = u.ChangePassword("weak", later)
	assert.ErrorIs(t, err, shared.ErrWeakPassword)
}

func TestEmail_Normalize(t *testing.T) {
	assert.Equal(t, Email("a@b.com"), Email("  A@B.COM ").Normalize())
}

func TestRole_IsValid(t *testing.T) {
	assert.True(t, RoleUser.IsValid())
	assert.True(t, RoleTrainer.IsValid())
	assert.True(t, RoleAdmin.IsValid())
	assert.False(t, Role("superuser").IsValid())
}
