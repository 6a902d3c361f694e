package services

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"task-tracker-api/models"
)

// Every read path goes through one of these builders, so the non-deleted
// predicate cannot be forgotten by a new caller.

// UserFilter holds the supported user list filters.
type UserFilter struct {
	Role     string
	IsActive *bool
	Search   string
}

func buildUserFilter(f UserFilter) bson.M {
	filter := bson.M{}
	if f.Role != "" {
		filter["role"] = f.Role
	}
	if f.IsActive != nil {
		filter["isActive"] = *f.IsActive
	}
	if f.Search != "" {
		filter["$text"] = bson.M{"$search": f.Search}
	}
	return filter
}

// ProjectFilter holds the supported project list filters. Ranges are
// inclusive on both ends.
type ProjectFilter struct {
	Status        string
	Owner         *primitive.ObjectID
	Search        string
	MinBudget     *float64
	MaxBudget     *float64
	StartDateFrom *models.Date
	StartDateTo   *models.Date
}

func buildProjectFilter(f ProjectFilter) bson.M {
	filter := bson.M{"isDeleted": false}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.Owner != nil {
		filter["owner"] = *f.Owner
	}
	if f.Search != "" {
		filter["$text"] = bson.M{"$search": f.Search}
	}
	if f.MinBudget != nil || f.MaxBudget != nil {
		budget := bson.M{}
		if f.MinBudget != nil {
			budget["$gte"] = *f.MinBudget
		}
		if f.MaxBudget != nil {
			budget["$lte"] = *f.MaxBudget
		}
		filter["budget"] = budget
	}
	if f.StartDateFrom != nil || f.StartDateTo != nil {
		start := bson.M{}
		if f.StartDateFrom != nil {
			start["$gte"] = f.StartDateFrom.Time
		}
		if f.StartDateTo != nil {
			start["$lte"] = f.StartDateTo.Time
		}
		filter["startDate"] = start
	}
	return filter
}

// TaskFilter holds the supported task list filters. When Overdue is set it
// overrides any status and due-date filters with "due before now and not
// completed".
type TaskFilter struct {
	Status      string
	Priority    string
	Project     *primitive.ObjectID
	AssignedTo  *primitive.ObjectID
	Tags        []string
	Search      string
	DueDateFrom *models.Date
	DueDateTo   *models.Date
	Overdue     bool
	Now         time.Time
}

func buildTaskFilter(f TaskFilter) bson.M {
	filter := bson.M{"isDeleted": false}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.Priority != "" {
		filter["priority"] = f.Priority
	}
	if f.Project != nil {
		filter["project"] = *f.Project
	}
	if f.AssignedTo != nil {
		filter["assignedTo"] = *f.AssignedTo
	}
	if len(f.Tags) > 0 {
		filter["tags"] = bson.M{"$in": f.Tags}
	}
	if f.Search != "" {
		filter["$text"] = bson.M{"$search": f.Search}
	}
	if f.DueDateFrom != nil || f.DueDateTo != nil {
		due := bson.M{}
		if f.DueDateFrom != nil {
			due["$gte"] = f.DueDateFrom.Time
		}
		if f.DueDateTo != nil {
			due["$lte"] = f.DueDateTo.Time
		}
		filter["dueDate"] = due
	}
	if f.Overdue {
		now := f.Now
		if now.IsZero() {
			now = time.Now().UTC()
		}
		filter["dueDate"] = bson.M{"$lt": now}
		filter["status"] = bson.M{"$ne": string(models.TaskCompleted)}
	}
	return filter
}
