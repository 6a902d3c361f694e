package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"task-tracker-api/models"
)

func TestUserUpdateDocOnlyProvidedFields(t *testing.T) {
	now := time.Now().UTC()
	name := "Ana"
	set := userUpdateDoc(models.UserUpdate{Name: &name}, now)

	assert.Equal(t, "Ana", set["name"])
	assert.Equal(t, now, set["updatedAt"])
	assert.NotContains(t, set, "email")
	assert.NotContains(t, set, "role")
	assert.NotContains(t, set, "isActive")
}

func TestProjectUpdateDocNeverTouchesSoftDelete(t *testing.T) {
	now := time.Now().UTC()
	status := models.ProjectActive
	budget := 2500.0
	set := projectUpdateDoc(models.ProjectUpdate{Status: &status, Budget: &budget}, now)

	assert.Equal(t, models.ProjectActive, set["status"])
	assert.Equal(t, 2500.0, set["budget"])
	assert.NotContains(t, set, "isDeleted")
}

func TestProjectUpdateDocDefaultsMemberRoles(t *testing.T) {
	members := []models.TeamMember{{User: primitive.NewObjectID()}}
	set := projectUpdateDoc(models.ProjectUpdate{TeamMembers: &members}, time.Now().UTC())

	stored := set["teamMembers"].([]models.TeamMember)
	assert.Equal(t, models.MemberDeveloper, stored[0].Role)
}

func TestTaskUpdateDocNeverTouchesSoftDelete(t *testing.T) {
	now := time.Now().UTC()
	title := "New title"
	tags := []string{"api"}
	set := taskUpdateDoc(models.TaskUpdate{Title: &title, Tags: &tags}, now)

	assert.Equal(t, "New title", set["title"])
	assert.Equal(t, []string{"api"}, set["tags"])
	assert.NotContains(t, set, "isDeleted")
	assert.NotContains(t, set, "status")
}

func TestTaskUpdateDocEmptyUpdateStillBumpsTimestamp(t *testing.T) {
	now := time.Now().UTC()
	set := taskUpdateDoc(models.TaskUpdate{}, now)

	assert.Len(t, set, 1)
	assert.Equal(t, now, set["updatedAt"])
}

func TestMergedDateViolationNewEndBeforeStoredStart(t *testing.T) {
	v := mergedDateViolation(datePtr("2024-06-01"), nil, nil, datePtr("2024-05-01"))
	assert.Equal(t, "endDate cannot be earlier than startDate", v)
}

func TestMergedDateViolationNewStartAfterStoredEnd(t *testing.T) {
	v := mergedDateViolation(datePtr("2024-01-01"), datePtr("2024-06-30"), datePtr("2024-07-01"), nil)
	assert.Equal(t, "endDate cannot be earlier than startDate", v)
}

func TestMergedDateViolationOrderedMergeAccepted(t *testing.T) {
	v := mergedDateViolation(datePtr("2024-01-01"), datePtr("2024-06-30"), nil, datePtr("2024-03-01"))
	assert.Empty(t, v)
}

func TestMergedDateViolationUnsetCounterpartAccepted(t *testing.T) {
	assert.Empty(t, mergedDateViolation(nil, nil, datePtr("2024-07-01"), nil))
	assert.Empty(t, mergedDateViolation(datePtr("2024-01-01"), nil, datePtr("2024-02-01"), nil))
}
