package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"task-tracker-api/models"
)

func boolPtr(b bool) *bool        { return &b }
func floatPtr(f float64) *float64 { return &f }
func datePtr(value string) *models.Date {
	d, err := models.ParseDate(value)
	if err != nil {
		panic(err)
	}
	return &d
}

func TestBuildUserFilterEmpty(t *testing.T) {
	assert.Equal(t, bson.M{}, buildUserFilter(UserFilter{}))
}

func TestBuildUserFilter(t *testing.T) {
	filter := buildUserFilter(UserFilter{
		Role:     "developer",
		IsActive: boolPtr(true),
		Search:   "ana",
	})

	assert.Equal(t, bson.M{
		"role":     "developer",
		"isActive": true,
		"$text":    bson.M{"$search": "ana"},
	}, filter)
}

func TestBuildProjectFilterAlwaysExcludesDeleted(t *testing.T) {
	filter := buildProjectFilter(ProjectFilter{})
	assert.Equal(t, bson.M{"isDeleted": false}, filter)
}

func TestBuildProjectFilterRanges(t *testing.T) {
	owner := primitive.NewObjectID()
	filter := buildProjectFilter(ProjectFilter{
		Status:        "active",
		Owner:         &owner,
		MinBudget:     floatPtr(1000),
		MaxBudget:     floatPtr(5000),
		StartDateFrom: datePtr("2024-01-01"),
		StartDateTo:   datePtr("2024-12-31"),
	})

	assert.Equal(t, false, filter["isDeleted"])
	assert.Equal(t, "active", filter["status"])
	assert.Equal(t, owner, filter["owner"])
	assert.Equal(t, bson.M{"$gte": 1000.0, "$lte": 5000.0}, filter["budget"])
	assert.Equal(t, bson.M{
		"$gte": datePtr("2024-01-01").Time,
		"$lte": datePtr("2024-12-31").Time,
	}, filter["startDate"])
}

func TestBuildProjectFilterOpenEndedBudget(t *testing.T) {
	filter := buildProjectFilter(ProjectFilter{MinBudget: floatPtr(1000)})
	assert.Equal(t, bson.M{"$gte": 1000.0}, filter["budget"])
}

func TestBuildTaskFilterAlwaysExcludesDeleted(t *testing.T) {
	filter := buildTaskFilter(TaskFilter{})
	assert.Equal(t, bson.M{"isDeleted": false}, filter)
}

func TestBuildTaskFilterFields(t *testing.T) {
	project := primitive.NewObjectID()
	assignee := primitive.NewObjectID()
	filter := buildTaskFilter(TaskFilter{
		Status:     "review",
		Priority:   "high",
		Project:    &project,
		AssignedTo: &assignee,
		Tags:       []string{"backend", "api"},
		Search:     "login",
	})

	assert.Equal(t, "review", filter["status"])
	assert.Equal(t, "high", filter["priority"])
	assert.Equal(t, project, filter["project"])
	assert.Equal(t, assignee, filter["assignedTo"])
	assert.Equal(t, bson.M{"$in": []string{"backend", "api"}}, filter["tags"])
	assert.Equal(t, bson.M{"$search": "login"}, filter["$text"])
}

func TestBuildTaskFilterDueDateRange(t *testing.T) {
	filter := buildTaskFilter(TaskFilter{
		DueDateFrom: datePtr("2024-01-01"),
		DueDateTo:   datePtr("2024-02-01"),
	})

	assert.Equal(t, bson.M{
		"$gte": datePtr("2024-01-01").Time,
		"$lte": datePtr("2024-02-01").Time,
	}, filter["dueDate"])
}

func TestBuildTaskFilterOverdueOverridesStatus(t *testing.T) {
	now := time.Now().UTC()
	filter := buildTaskFilter(TaskFilter{
		Status:      "todo",
		DueDateFrom: datePtr("2030-01-01"),
		Overdue:     true,
		Now:         now,
	})

	assert.Equal(t, bson.M{"$lt": now}, filter["dueDate"])
	assert.Equal(t, bson.M{"$ne": "completed"}, filter["status"])
}

func TestListOptionsNormalized(t *testing.T) {
	opts := ListOptions{}.Normalized()
	assert.Equal(t, int64(1), opts.Page)
	assert.Equal(t, int64(10), opts.Limit)
	assert.Equal(t, "createdAt", opts.SortBy)
	assert.Equal(t, "desc", opts.SortOrder)

	opts = ListOptions{Page: 0, Limit: 500}.Normalized()
	assert.Equal(t, int64(1), opts.Page)
	assert.Equal(t, int64(10), opts.Limit)
}

func TestListOptionsSkip(t *testing.T) {
	opts := ListOptions{Page: 2, Limit: 10}.Normalized()
	assert.Equal(t, int64(10), opts.Skip())

	opts = ListOptions{Page: 5, Limit: 25}.Normalized()
	assert.Equal(t, int64(100), opts.Skip())
}

func TestListOptionsSort(t *testing.T) {
	opts := ListOptions{SortBy: "dueDate", SortOrder: "asc"}.Normalized()
	assert.Equal(t, bson.D{{Key: "dueDate", Value: 1}}, opts.Sort())

	opts = ListOptions{}.Normalized()
	assert.Equal(t, bson.D{{Key: "createdAt", Value: -1}}, opts.Sort())
}
