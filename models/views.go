package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Summary views are the reduced projections returned in place of referenced
// documents, mirroring what population selects for each entity.

type UserSummary struct {
	ID    primitive.ObjectID `json:"id"`
	Name  string             `json:"name"`
	Email string             `json:"email"`
	Role  UserRole           `json:"role"`
}

type ProjectSummary struct {
	ID     primitive.ObjectID `json:"id"`
	Name   string             `json:"name"`
	Status ProjectStatus      `json:"status"`
}

type TaskSummary struct {
	ID     primitive.ObjectID `json:"id"`
	Title  string             `json:"title"`
	Status TaskStatus         `json:"status"`
}

func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

func (p *Project) Summary() ProjectSummary {
	return ProjectSummary{ID: p.ID, Name: p.Name, Status: p.Status}
}

func (t *Task) Summary() TaskSummary {
	return TaskSummary{ID: t.ID, Title: t.Title, Status: t.Status}
}

// TeamMemberView is a team entry with the user reference resolved. The raw
// id is kept so membership survives population of a missing user.
type TeamMemberView struct {
	User *UserSummary       `json:"user"`
	ID   primitive.ObjectID `json:"userId"`
	Role MemberRole         `json:"role"`
}

// ProjectView is a project with its references resolved to summaries.
type ProjectView struct {
	ID          primitive.ObjectID `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	Owner       *UserSummary       `json:"owner"`
	TeamMembers []TeamMemberView   `json:"teamMembers"`
	Status      ProjectStatus      `json:"status"`
	StartDate   *Date              `json:"startDate,omitempty"`
	EndDate     *Date              `json:"endDate,omitempty"`
	Budget      *float64           `json:"budget,omitempty"`
	Client      string             `json:"client,omitempty"`
	IsDeleted   bool               `json:"isDeleted"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

// NewProjectView combines a stored project with resolved summaries.
func NewProjectView(p Project, owner *UserSummary, members []TeamMemberView) ProjectView {
	if members == nil {
		members = []TeamMemberView{}
	}
	return ProjectView{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Owner:       owner,
		TeamMembers: members,
		Status:      p.Status,
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
		Budget:      p.Budget,
		Client:      p.Client,
		IsDeleted:   p.IsDeleted,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// TaskView is a task with references resolved and derived fields computed.
type TaskView struct {
	ID              primitive.ObjectID `json:"id"`
	Title           string             `json:"title"`
	Description     string             `json:"description,omitempty"`
	Project         *ProjectSummary    `json:"project"`
	AssignedTo      *UserSummary       `json:"assignedTo,omitempty"`
	Status          TaskStatus         `json:"status"`
	Priority        TaskPriority       `json:"priority"`
	DueDate         *Date              `json:"dueDate,omitempty"`
	EstimatedHours  *float64           `json:"estimatedHours,omitempty"`
	ActualHours     *float64           `json:"actualHours,omitempty"`
	Tags            []string           `json:"tags"`
	Dependencies    []TaskSummary      `json:"dependencies"`
	Attachments     []Attachment       `json:"attachments"`
	IsDeleted       bool               `json:"isDeleted"`
	IsOverdue       bool               `json:"isOverdue"`
	HoursDifference *float64           `json:"hoursDifference,omitempty"`
	CreatedAt       time.Time          `json:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt"`
}

// NewTaskView combines a stored task with resolved summaries and computes the
// derived fields against the given clock.
func NewTaskView(t Task, project *ProjectSummary, assignee *UserSummary, deps []TaskSummary, now time.Time) TaskView {
	if deps == nil {
		deps = []TaskSummary{}
	}
	tags := t.Tags
	if tags == nil {
		tags = []string{}
	}
	attachments := t.Attachments
	if attachments == nil {
		attachments = []Attachment{}
	}
	return TaskView{
		ID:              t.ID,
		Title:           t.Title,
		Description:     t.Description,
		Project:         project,
		AssignedTo:      assignee,
		Status:          t.Status,
		Priority:        t.Priority,
		DueDate:         t.DueDate,
		EstimatedHours:  t.EstimatedHours,
		ActualHours:     t.ActualHours,
		Tags:            tags,
		Dependencies:    deps,
		Attachments:     attachments,
		IsDeleted:       t.IsDeleted,
		IsOverdue:       t.IsOverdue(now),
		HoursDifference: t.HoursDifference(),
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}
