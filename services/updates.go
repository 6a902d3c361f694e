package services

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"task-tracker-api/models"
)

// These builders turn partial update inputs into $set documents. The update
// structs cannot carry the soft-delete flags, so no builder can ever touch
// isDeleted or isActive.

func userUpdateDoc(u models.UserUpdate, now time.Time) bson.M {
	set := bson.M{"updatedAt": now}
	if u.Name != nil {
		set["name"] = *u.Name
	}
	if u.Email != nil {
		set["email"] = *u.Email
	}
	if u.Role != nil {
		set["role"] = *u.Role
	}
	if u.Department != nil {
		set["department"] = *u.Department
	}
	return set
}

func projectUpdateDoc(p models.ProjectUpdate, now time.Time) bson.M {
	set := bson.M{"updatedAt": now}
	if p.Name != nil {
		set["name"] = *p.Name
	}
	if p.Description != nil {
		set["description"] = *p.Description
	}
	if p.Owner != nil {
		set["owner"] = *p.Owner
	}
	if p.TeamMembers != nil {
		members := *p.TeamMembers
		for i := range members {
			if members[i].Role == "" {
				members[i].Role = models.MemberDeveloper
			}
		}
		set["teamMembers"] = members
	}
	if p.Status != nil {
		set["status"] = *p.Status
	}
	if p.StartDate != nil {
		set["startDate"] = p.StartDate.Time
	}
	if p.EndDate != nil {
		set["endDate"] = p.EndDate.Time
	}
	if p.Budget != nil {
		set["budget"] = *p.Budget
	}
	if p.Client != nil {
		set["client"] = *p.Client
	}
	return set
}

// mergedDateViolation overlays an update's dates onto the stored pair and
// re-checks ordering, so a one-sided update cannot invert the range.
// Returns the violation message, or "" when the merged pair is ordered.
func mergedDateViolation(storedStart, storedEnd, newStart, newEnd *models.Date) string {
	start, end := storedStart, storedEnd
	if newStart != nil {
		start = newStart
	}
	if newEnd != nil {
		end = newEnd
	}
	if start != nil && end != nil && end.Before(start.Time) {
		return "endDate cannot be earlier than startDate"
	}
	return ""
}

func taskUpdateDoc(t models.TaskUpdate, now time.Time) bson.M {
	set := bson.M{"updatedAt": now}
	if t.Title != nil {
		set["title"] = *t.Title
	}
	if t.Description != nil {
		set["description"] = *t.Description
	}
	if t.Project != nil {
		set["project"] = *t.Project
	}
	if t.AssignedTo != nil {
		set["assignedTo"] = *t.AssignedTo
	}
	if t.Status != nil {
		set["status"] = *t.Status
	}
	if t.Priority != nil {
		set["priority"] = *t.Priority
	}
	if t.DueDate != nil {
		set["dueDate"] = t.DueDate.Time
	}
	if t.EstimatedHours != nil {
		set["estimatedHours"] = *t.EstimatedHours
	}
	if t.ActualHours != nil {
		set["actualHours"] = *t.ActualHours
	}
	if t.Tags != nil {
		set["tags"] = *t.Tags
	}
	if t.Dependencies != nil {
		set["dependencies"] = *t.Dependencies
	}
	return set
}
