package models

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"task-tracker-api/apperrors"
)

type UserRole string

const (
	RoleAdmin     UserRole = "admin"
	RoleManager   UserRole = "manager"
	RoleDeveloper UserRole = "developer"
	RoleDesigner  UserRole = "designer"
	RoleTester    UserRole = "tester"
)

// UserRoles lists the accepted values for a user's role field.
var UserRoles = []string{
	string(RoleAdmin),
	string(RoleManager),
	string(RoleDeveloper),
	string(RoleDesigner),
	string(RoleTester),
}

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

type User struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name       string             `json:"name" bson:"name"`
	Email      string             `json:"email" bson:"email"`
	Role       UserRole           `json:"role" bson:"role"`
	Department string             `json:"department,omitempty" bson:"department,omitempty"`
	IsActive   bool               `json:"isActive" bson:"isActive"`
	CreatedAt  time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// Normalize trims free-text fields and lowercases the email so uniqueness
// is case-insensitive.
func (u *User) Normalize() {
	u.Name = strings.TrimSpace(u.Name)
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.Department = strings.TrimSpace(u.Department)
}

// ApplyDefaults fills the fields the client may omit. Activation state is
// always forced here: a user is created active and can only be removed
// through deactivation.
func (u *User) ApplyDefaults() {
	if u.Role == "" {
		u.Role = RoleDeveloper
	}
	u.IsActive = true
}

// Validate checks every field constraint and reports all violations at once.
func (u *User) Validate() error {
	v := &apperrors.ValidationError{}

	if u.Name == "" {
		v.Add("name is required")
	}
	if u.Email == "" {
		v.Add("email is required")
	} else if !emailPattern.MatchString(u.Email) {
		v.Add(fmt.Sprintf("email %q is not a valid email address", u.Email))
	}
	if !IsValidUserRole(string(u.Role)) {
		v.Add(fmt.Sprintf("role must be one of: %s", strings.Join(UserRoles, ", ")))
	}

	return v.OrNil()
}

// UserUpdate carries the fields a PUT request may change. Pointer fields
// distinguish "not provided" from a zero value; the activation flag is not
// representable here on purpose.
type UserUpdate struct {
	Name       *string   `json:"name"`
	Email      *string   `json:"email"`
	Role       *UserRole `json:"role"`
	Department *string   `json:"department"`
}

// Normalize applies the same trimming and lowercasing rules as User.Normalize
// to the provided fields.
func (u *UserUpdate) Normalize() {
	if u.Name != nil {
		*u.Name = strings.TrimSpace(*u.Name)
	}
	if u.Email != nil {
		*u.Email = strings.ToLower(strings.TrimSpace(*u.Email))
	}
	if u.Department != nil {
		*u.Department = strings.TrimSpace(*u.Department)
	}
}

// Validate re-checks the create-time rules for every provided field.
func (u *UserUpdate) Validate() error {
	v := &apperrors.ValidationError{}

	if u.Name != nil && *u.Name == "" {
		v.Add("name cannot be empty")
	}
	if u.Email != nil && !emailPattern.MatchString(*u.Email) {
		v.Add(fmt.Sprintf("email %q is not a valid email address", *u.Email))
	}
	if u.Role != nil && !IsValidUserRole(string(*u.Role)) {
		v.Add(fmt.Sprintf("role must be one of: %s", strings.Join(UserRoles, ", ")))
	}

	return v.OrNil()
}

func IsValidUserRole(role string) bool {
	for _, r := range UserRoles {
		if r == role {
			return true
		}
	}
	return false
}
