package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-tracker-api/apperrors"
)

func validUser() User {
	return User{Name: "Ana", Email: "ana@example.com"}
}

func TestUserApplyDefaults(t *testing.T) {
	user := validUser()
	user.ApplyDefaults()

	assert.Equal(t, RoleDeveloper, user.Role)
	assert.True(t, user.IsActive)
}

func TestUserApplyDefaultsForcesActive(t *testing.T) {
	user := validUser()
	user.IsActive = false
	user.ApplyDefaults()

	assert.True(t, user.IsActive)
}

func TestUserNormalizeLowercasesEmail(t *testing.T) {
	user := User{Name: "  Ana ", Email: "  Ana@Example.COM "}
	user.Normalize()

	assert.Equal(t, "Ana", user.Name)
	assert.Equal(t, "ana@example.com", user.Email)
}

func TestUserValidate(t *testing.T) {
	user := validUser()
	user.ApplyDefaults()
	assert.NoError(t, user.Validate())
}

func TestUserValidateCollectsAllViolations(t *testing.T) {
	user := User{Email: "not-an-email", Role: "wizard"}

	err := user.Validate()
	require.Error(t, err)

	var vErr *apperrors.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Len(t, vErr.Violations, 3) // name, email shape, role
}

func TestUserValidateMissingEmail(t *testing.T) {
	user := User{Name: "Ana", Role: RoleAdmin}

	var vErr *apperrors.ValidationError
	require.ErrorAs(t, user.Validate(), &vErr)
	assert.Contains(t, vErr.Violations, "email is required")
}

func TestUserUpdateValidate(t *testing.T) {
	name := "New Name"
	email := "new@example.com"
	role := RoleManager
	update := UserUpdate{Name: &name, Email: &email, Role: &role}

	assert.NoError(t, update.Validate())
}

func TestUserUpdateValidateRejectsEmptyName(t *testing.T) {
	name := ""
	update := UserUpdate{Name: &name}

	var vErr *apperrors.ValidationError
	require.ErrorAs(t, update.Validate(), &vErr)
	assert.Contains(t, vErr.Violations, "name cannot be empty")
}

func TestUserUpdateValidateRejectsBadRole(t *testing.T) {
	role := UserRole("wizard")
	update := UserUpdate{Role: &role}

	assert.Error(t, update.Validate())
}

func TestUserUpdateNormalize(t *testing.T) {
	email := " Ana@Example.COM "
	update := UserUpdate{Email: &email}
	update.Normalize()

	assert.Equal(t, "ana@example.com", *update.Email)
}
