package models

import (
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"task-tracker-api/apperrors"
)

type TaskStatus string

const (
	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in-progress"
	TaskReview     TaskStatus = "review"
	TaskCompleted  TaskStatus = "completed"
)

var TaskStatuses = []string{
	string(TaskTodo),
	string(TaskInProgress),
	string(TaskReview),
	string(TaskCompleted),
}

type TaskPriority string

const (
	PriorityLow      TaskPriority = "low"
	PriorityMedium   TaskPriority = "medium"
	PriorityHigh     TaskPriority = "high"
	PriorityCritical TaskPriority = "critical"
)

var TaskPriorities = []string{
	string(PriorityLow),
	string(PriorityMedium),
	string(PriorityHigh),
	string(PriorityCritical),
}

// Attachment is an uploaded file reference; uploadedAt is always assigned by
// the server.
type Attachment struct {
	Filename   string    `json:"filename" bson:"filename"`
	URL        string    `json:"url" bson:"url"`
	UploadedAt time.Time `json:"uploadedAt" bson:"uploadedAt"`
}

type Task struct {
	ID             primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	Title          string               `json:"title" bson:"title"`
	Description    string               `json:"description,omitempty" bson:"description,omitempty"`
	Project        primitive.ObjectID   `json:"project" bson:"project"`
	AssignedTo     *primitive.ObjectID  `json:"assignedTo,omitempty" bson:"assignedTo,omitempty"`
	Status         TaskStatus           `json:"status" bson:"status"`
	Priority       TaskPriority         `json:"priority" bson:"priority"`
	DueDate        *Date                `json:"dueDate,omitempty" bson:"dueDate,omitempty"`
	EstimatedHours *float64             `json:"estimatedHours,omitempty" bson:"estimatedHours,omitempty"`
	ActualHours    *float64             `json:"actualHours,omitempty" bson:"actualHours,omitempty"`
	Tags           []string             `json:"tags" bson:"tags"`
	Dependencies   []primitive.ObjectID `json:"dependencies" bson:"dependencies"`
	Attachments    []Attachment         `json:"attachments" bson:"attachments"`
	IsDeleted      bool                 `json:"isDeleted" bson:"isDeleted"`
	CreatedAt      time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time            `json:"updatedAt" bson:"updatedAt"`
}

func (t *Task) Normalize() {
	t.Title = strings.TrimSpace(t.Title)
	t.Description = strings.TrimSpace(t.Description)
	t.Tags = NormalizeTags(t.Tags)
}

// ApplyDefaults fills omitted fields; the soft-delete flag is always forced
// to false on create.
func (t *Task) ApplyDefaults() {
	if t.Status == "" {
		t.Status = TaskTodo
	}
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}
	if t.Tags == nil {
		t.Tags = []string{}
	}
	if t.Dependencies == nil {
		t.Dependencies = []primitive.ObjectID{}
	}
	if t.Attachments == nil {
		t.Attachments = []Attachment{}
	}
	t.IsDeleted = false
}

// Validate checks every field constraint, including the rule that a task may
// not list itself as a dependency. The task's own ID must be assigned before
// calling it.
func (t *Task) Validate() error {
	v := &apperrors.ValidationError{}

	if t.Title == "" {
		v.Add("title is required")
	}
	if t.Project.IsZero() {
		v.Add("project is required")
	}
	if !IsValidTaskStatus(string(t.Status)) {
		v.Add(fmt.Sprintf("status must be one of: %s", strings.Join(TaskStatuses, ", ")))
	}
	if !IsValidTaskPriority(string(t.Priority)) {
		v.Add(fmt.Sprintf("priority must be one of: %s", strings.Join(TaskPriorities, ", ")))
	}
	if t.EstimatedHours != nil && *t.EstimatedHours < 0 {
		v.Add("estimatedHours cannot be negative")
	}
	if t.ActualHours != nil && *t.ActualHours < 0 {
		v.Add("actualHours cannot be negative")
	}
	if containsID(t.Dependencies, t.ID) {
		v.Add("a task cannot depend on itself")
	}

	return v.OrNil()
}

// IsOverdue reports whether the task's due date has passed without the task
// being completed. Computed per response, never stored.
func (t *Task) IsOverdue(now time.Time) bool {
	if t.DueDate == nil || t.Status == TaskCompleted {
		return false
	}
	return now.After(t.DueDate.Time)
}

// HoursDifference returns actualHours minus estimatedHours, or nil when
// either side is unset.
func (t *Task) HoursDifference() *float64 {
	if t.EstimatedHours == nil || t.ActualHours == nil {
		return nil
	}
	diff := *t.ActualHours - *t.EstimatedHours
	return &diff
}

// TaskUpdate carries the fields a PUT request may change. The soft-delete
// flag is deliberately absent.
type TaskUpdate struct {
	Title          *string               `json:"title"`
	Description    *string               `json:"description"`
	Project        *primitive.ObjectID   `json:"project"`
	AssignedTo     *primitive.ObjectID   `json:"assignedTo"`
	Status         *TaskStatus           `json:"status"`
	Priority       *TaskPriority         `json:"priority"`
	DueDate        *Date                 `json:"dueDate"`
	EstimatedHours *float64              `json:"estimatedHours"`
	ActualHours    *float64              `json:"actualHours"`
	Tags           *[]string             `json:"tags"`
	Dependencies   *[]primitive.ObjectID `json:"dependencies"`
}

func (t *TaskUpdate) Normalize() {
	if t.Title != nil {
		*t.Title = strings.TrimSpace(*t.Title)
	}
	if t.Description != nil {
		*t.Description = strings.TrimSpace(*t.Description)
	}
	if t.Tags != nil {
		*t.Tags = NormalizeTags(*t.Tags)
	}
}

// Validate re-checks the create-time rules for every provided field; taskID
// is the id of the task being updated so self-dependencies are still caught.
func (t *TaskUpdate) Validate(taskID primitive.ObjectID) error {
	v := &apperrors.ValidationError{}

	if t.Title != nil && *t.Title == "" {
		v.Add("title cannot be empty")
	}
	if t.Project != nil && t.Project.IsZero() {
		v.Add("project cannot be empty")
	}
	if t.Status != nil && !IsValidTaskStatus(string(*t.Status)) {
		v.Add(fmt.Sprintf("status must be one of: %s", strings.Join(TaskStatuses, ", ")))
	}
	if t.Priority != nil && !IsValidTaskPriority(string(*t.Priority)) {
		v.Add(fmt.Sprintf("priority must be one of: %s", strings.Join(TaskPriorities, ", ")))
	}
	if t.EstimatedHours != nil && *t.EstimatedHours < 0 {
		v.Add("estimatedHours cannot be negative")
	}
	if t.ActualHours != nil && *t.ActualHours < 0 {
		v.Add("actualHours cannot be negative")
	}
	if t.Dependencies != nil && containsID(*t.Dependencies, taskID) {
		v.Add("a task cannot depend on itself")
	}

	return v.OrNil()
}

// NormalizeTags trims entries and drops empties and duplicates, keeping the
// first occurrence order.
func NormalizeTags(tags []string) []string {
	if tags == nil {
		return nil
	}
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}

func containsID(ids []primitive.ObjectID, id primitive.ObjectID) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

func IsValidTaskStatus(status string) bool {
	for _, s := range TaskStatuses {
		if s == status {
			return true
		}
	}
	return false
}

func IsValidTaskPriority(priority string) bool {
	for _, p := range TaskPriorities {
		if p == priority {
			return true
		}
	}
	return false
}
