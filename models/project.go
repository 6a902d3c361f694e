package models

import (
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"task-tracker-api/apperrors"
)

type ProjectStatus string

const (
	ProjectPlanning  ProjectStatus = "planning"
	ProjectActive    ProjectStatus = "active"
	ProjectOnHold    ProjectStatus = "on-hold"
	ProjectCompleted ProjectStatus = "completed"
	ProjectCancelled ProjectStatus = "cancelled"
)

var ProjectStatuses = []string{
	string(ProjectPlanning),
	string(ProjectActive),
	string(ProjectOnHold),
	string(ProjectCompleted),
	string(ProjectCancelled),
}

type MemberRole string

const (
	MemberManager   MemberRole = "manager"
	MemberDeveloper MemberRole = "developer"
	MemberDesigner  MemberRole = "designer"
	MemberTester    MemberRole = "tester"
)

var MemberRoles = []string{
	string(MemberManager),
	string(MemberDeveloper),
	string(MemberDesigner),
	string(MemberTester),
}

// TeamMember pairs a user reference with the role they hold on the project.
type TeamMember struct {
	User primitive.ObjectID `json:"user" bson:"user"`
	Role MemberRole         `json:"role" bson:"role"`
}

type Project struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	Owner       primitive.ObjectID `json:"owner" bson:"owner"`
	TeamMembers []TeamMember       `json:"teamMembers" bson:"teamMembers"`
	Status      ProjectStatus      `json:"status" bson:"status"`
	StartDate   *Date              `json:"startDate,omitempty" bson:"startDate,omitempty"`
	EndDate     *Date              `json:"endDate,omitempty" bson:"endDate,omitempty"`
	Budget      *float64           `json:"budget,omitempty" bson:"budget,omitempty"`
	Client      string             `json:"client,omitempty" bson:"client,omitempty"`
	IsDeleted   bool               `json:"isDeleted" bson:"isDeleted"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}

func (p *Project) Normalize() {
	p.Name = strings.TrimSpace(p.Name)
	p.Description = strings.TrimSpace(p.Description)
	p.Client = strings.TrimSpace(p.Client)
}

// ApplyDefaults fills omitted fields. The soft-delete flag is always forced
// to false on create; DELETE is the only path that sets it.
func (p *Project) ApplyDefaults() {
	if p.Status == "" {
		p.Status = ProjectPlanning
	}
	if p.TeamMembers == nil {
		p.TeamMembers = []TeamMember{}
	}
	for i := range p.TeamMembers {
		if p.TeamMembers[i].Role == "" {
			p.TeamMembers[i].Role = MemberDeveloper
		}
	}
	p.IsDeleted = false
}

func (p *Project) Validate() error {
	v := &apperrors.ValidationError{}

	if p.Name == "" {
		v.Add("name is required")
	}
	if p.Owner.IsZero() {
		v.Add("owner is required")
	}
	if !IsValidProjectStatus(string(p.Status)) {
		v.Add(fmt.Sprintf("status must be one of: %s", strings.Join(ProjectStatuses, ", ")))
	}
	if p.Budget != nil && *p.Budget < 0 {
		v.Add("budget cannot be negative")
	}
	if err := validateDateOrder(p.StartDate, p.EndDate); err != "" {
		v.Add(err)
	}
	for _, m := range p.TeamMembers {
		if m.User.IsZero() {
			v.Add("teamMembers entries require a user reference")
		}
		if !IsValidMemberRole(string(m.Role)) {
			v.Add(fmt.Sprintf("team member role must be one of: %s", strings.Join(MemberRoles, ", ")))
		}
	}

	return v.OrNil()
}

// ProjectUpdate carries the fields a PUT request may change. The soft-delete
// flag is deliberately absent.
type ProjectUpdate struct {
	Name        *string             `json:"name"`
	Description *string             `json:"description"`
	Owner       *primitive.ObjectID `json:"owner"`
	TeamMembers *[]TeamMember       `json:"teamMembers"`
	Status      *ProjectStatus      `json:"status"`
	StartDate   *Date               `json:"startDate"`
	EndDate     *Date               `json:"endDate"`
	Budget      *float64            `json:"budget"`
	Client      *string             `json:"client"`
}

func (p *ProjectUpdate) Normalize() {
	if p.Name != nil {
		*p.Name = strings.TrimSpace(*p.Name)
	}
	if p.Description != nil {
		*p.Description = strings.TrimSpace(*p.Description)
	}
	if p.Client != nil {
		*p.Client = strings.TrimSpace(*p.Client)
	}
}

// Validate re-checks the create-time rules for every provided field. Date
// ordering can only be checked here when both dates are in the request; the
// store re-checks the pair against the stored document.
func (p *ProjectUpdate) Validate() error {
	v := &apperrors.ValidationError{}

	if p.Name != nil && *p.Name == "" {
		v.Add("name cannot be empty")
	}
	if p.Owner != nil && p.Owner.IsZero() {
		v.Add("owner cannot be empty")
	}
	if p.Status != nil && !IsValidProjectStatus(string(*p.Status)) {
		v.Add(fmt.Sprintf("status must be one of: %s", strings.Join(ProjectStatuses, ", ")))
	}
	if p.Budget != nil && *p.Budget < 0 {
		v.Add("budget cannot be negative")
	}
	if err := validateDateOrder(p.StartDate, p.EndDate); err != "" {
		v.Add(err)
	}
	if p.TeamMembers != nil {
		for _, m := range *p.TeamMembers {
			if m.User.IsZero() {
				v.Add("teamMembers entries require a user reference")
			}
			if m.Role != "" && !IsValidMemberRole(string(m.Role)) {
				v.Add(fmt.Sprintf("team member role must be one of: %s", strings.Join(MemberRoles, ", ")))
			}
		}
	}

	return v.OrNil()
}

func validateDateOrder(start, end *Date) string {
	if start != nil && end != nil && end.Before(start.Time) {
		return "endDate cannot be earlier than startDate"
	}
	return ""
}

func IsValidProjectStatus(status string) bool {
	for _, s := range ProjectStatuses {
		if s == status {
			return true
		}
	}
	return false
}

func IsValidMemberRole(role string) bool {
	for _, r := range MemberRoles {
		if r == role {
			return true
		}
	}
	return false
}
