package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"task-tracker-api/apperrors"
)

func dateOf(value string) *Date {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return &Date{t}
}

func validProject() Project {
	return Project{Name: "Website Redesign", Owner: primitive.NewObjectID()}
}

func TestProjectApplyDefaults(t *testing.T) {
	project := validProject()
	project.IsDeleted = true
	project.ApplyDefaults()

	assert.Equal(t, ProjectPlanning, project.Status)
	assert.NotNil(t, project.TeamMembers)
	assert.False(t, project.IsDeleted, "create must never persist a pre-deleted project")
}

func TestProjectApplyDefaultsMemberRole(t *testing.T) {
	project := validProject()
	project.TeamMembers = []TeamMember{{User: primitive.NewObjectID()}}
	project.ApplyDefaults()

	assert.Equal(t, MemberDeveloper, project.TeamMembers[0].Role)
}

func TestProjectValidate(t *testing.T) {
	project := validProject()
	project.ApplyDefaults()
	assert.NoError(t, project.Validate())
}

func TestProjectValidateEndBeforeStart(t *testing.T) {
	project := validProject()
	project.ApplyDefaults()
	project.StartDate = dateOf("2024-06-01")
	project.EndDate = dateOf("2024-01-01")

	var vErr *apperrors.ValidationError
	require.ErrorAs(t, project.Validate(), &vErr)
	assert.Contains(t, vErr.Violations, "endDate cannot be earlier than startDate")
}

func TestProjectValidateEqualDatesAllowed(t *testing.T) {
	project := validProject()
	project.ApplyDefaults()
	project.StartDate = dateOf("2024-06-01")
	project.EndDate = dateOf("2024-06-01")

	assert.NoError(t, project.Validate())
}

func TestProjectValidateSingleDateAllowed(t *testing.T) {
	project := validProject()
	project.ApplyDefaults()
	project.EndDate = dateOf("2020-01-01")

	assert.NoError(t, project.Validate())
}

func TestProjectValidateNegativeBudget(t *testing.T) {
	budget := -100.0
	project := validProject()
	project.ApplyDefaults()
	project.Budget = &budget

	var vErr *apperrors.ValidationError
	require.ErrorAs(t, project.Validate(), &vErr)
	assert.Contains(t, vErr.Violations, "budget cannot be negative")
}

func TestProjectValidateMissingOwner(t *testing.T) {
	project := Project{Name: "No Owner", Status: ProjectPlanning}

	var vErr *apperrors.ValidationError
	require.ErrorAs(t, project.Validate(), &vErr)
	assert.Contains(t, vErr.Violations, "owner is required")
}

func TestProjectValidateBadStatus(t *testing.T) {
	project := validProject()
	project.Status = "archived"

	assert.Error(t, project.Validate())
}

func TestProjectValidateBadMemberRole(t *testing.T) {
	project := validProject()
	project.ApplyDefaults()
	project.TeamMembers = []TeamMember{{User: primitive.NewObjectID(), Role: "intern"}}

	assert.Error(t, project.Validate())
}

func TestProjectUpdateValidateDates(t *testing.T) {
	update := ProjectUpdate{StartDate: dateOf("2024-06-01"), EndDate: dateOf("2024-01-01")}

	var vErr *apperrors.ValidationError
	require.ErrorAs(t, update.Validate(), &vErr)
	assert.Contains(t, vErr.Violations, "endDate cannot be earlier than startDate")
}

func TestProjectUpdateValidateEmpty(t *testing.T) {
	assert.NoError(t, (&ProjectUpdate{}).Validate())
}

func TestProjectUpdateValidateBadStatus(t *testing.T) {
	status := ProjectStatus("archived")
	update := ProjectUpdate{Status: &status}

	assert.Error(t, update.Validate())
}

func TestProjectUpdateValidateNegativeBudget(t *testing.T) {
	budget := -1.0
	update := ProjectUpdate{Budget: &budget}

	assert.Error(t, update.Validate())
}
