package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"task-tracker-api/apperrors"
	"task-tracker-api/models"
)

type ProjectService struct {
	ProjectsCollection *mongo.Collection
	UsersCollection    *mongo.Collection
}

func NewProjectService(projectsCollection, usersCollection *mongo.Collection) *ProjectService {
	return &ProjectService{
		ProjectsCollection: projectsCollection,
		UsersCollection:    usersCollection,
	}
}

// CreateProject validates and persists a new project, returning it with the
// owner and team references resolved.
func (s *ProjectService) CreateProject(ctx context.Context, project models.Project) (*models.ProjectView, error) {
	project.Normalize()
	project.ApplyDefaults()
	if err := project.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	project.ID = primitive.NewObjectID()
	project.CreatedAt = now
	project.UpdatedAt = now

	if _, err := s.ProjectsCollection.InsertOne(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	return s.populateOne(ctx, project)
}

// GetProjectByID returns a non-deleted project with references resolved.
func (s *ProjectService) GetProjectByID(ctx context.Context, id primitive.ObjectID) (*models.ProjectView, error) {
	project, err := s.findActive(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.populateOne(ctx, *project)
}

// UpdateProject applies a partial update after re-validating the provided
// fields. Date ordering is checked against the stored document when only one
// of the pair is in the request. The soft-delete flag cannot be changed here.
func (s *ProjectService) UpdateProject(ctx context.Context, id primitive.ObjectID, update models.ProjectUpdate) (*models.ProjectView, error) {
	update.Normalize()
	if err := update.Validate(); err != nil {
		return nil, err
	}

	if err := s.checkDateOrder(ctx, id, update); err != nil {
		return nil, err
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var project models.Project
	err := s.ProjectsCollection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id, "isDeleted": false},
		bson.M{"$set": projectUpdateDoc(update, time.Now().UTC())},
		opts,
	).Decode(&project)
	if err == mongo.ErrNoDocuments {
		return nil, apperrors.NewNotFound("project not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}
	return s.populateOne(ctx, project)
}

// checkDateOrder enforces endDate >= startDate when the update provides only
// one side of the pair, merging it with the stored value.
func (s *ProjectService) checkDateOrder(ctx context.Context, id primitive.ObjectID, update models.ProjectUpdate) error {
	if update.StartDate == nil && update.EndDate == nil {
		return nil
	}
	if update.StartDate != nil && update.EndDate != nil {
		return nil // both provided, already checked by Validate
	}

	current, err := s.findActive(ctx, id)
	if err != nil {
		return err
	}
	if v := mergedDateViolation(current.StartDate, current.EndDate, update.StartDate, update.EndDate); v != "" {
		return &apperrors.ValidationError{Violations: []string{v}}
	}
	return nil
}

// SoftDeleteProject marks the project deleted regardless of its current
// state. Idempotent; only a missing id fails.
func (s *ProjectService) SoftDeleteProject(ctx context.Context, id primitive.ObjectID) (*models.ProjectView, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var project models.Project
	err := s.ProjectsCollection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"isDeleted": true, "updatedAt": time.Now().UTC()}},
		opts,
	).Decode(&project)
	if err == mongo.ErrNoDocuments {
		return nil, apperrors.NewNotFound("project not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to delete project: %w", err)
	}
	return s.populateOne(ctx, project)
}

// ListProjects returns one page of non-deleted projects matching the filter
// plus the total match count, with references resolved.
func (s *ProjectService) ListProjects(ctx context.Context, filter ProjectFilter, listOpts ListOptions) ([]models.ProjectView, int64, error) {
	listOpts = listOpts.Normalized()
	query := buildProjectFilter(filter)

	findOpts := options.Find().
		SetSort(listOpts.Sort()).
		SetSkip(listOpts.Skip()).
		SetLimit(listOpts.Limit)

	cursor, err := s.ProjectsCollection.Find(ctx, query, findOpts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list projects: %w", err)
	}
	projects := []models.Project{}
	if err := cursor.All(ctx, &projects); err != nil {
		return nil, 0, fmt.Errorf("failed to decode projects: %w", err)
	}

	total, err := s.ProjectsCollection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count projects: %w", err)
	}

	views, err := s.populate(ctx, projects)
	if err != nil {
		return nil, 0, err
	}
	return views, total, nil
}

// AddTeamMember appends a user to the team unless they are already on it.
// Adding an existing member is a no-op, not an error.
func (s *ProjectService) AddTeamMember(ctx context.Context, projectID, userID primitive.ObjectID, role models.MemberRole) (*models.ProjectView, error) {
	if role == "" {
		role = models.MemberDeveloper
	}
	if !models.IsValidMemberRole(string(role)) {
		return nil, &apperrors.ValidationError{Violations: []string{
			fmt.Sprintf("role must be one of: %s", strings.Join(models.MemberRoles, ", ")),
		}}
	}

	project, err := s.findActive(ctx, projectID)
	if err != nil {
		return nil, err
	}

	members, changed := addMember(project.TeamMembers, userID, role)
	if changed {
		project.TeamMembers = members
		if err := s.save(ctx, project); err != nil {
			return nil, err
		}
	}
	return s.populateOne(ctx, *project)
}

// RemoveTeamMember removes every team entry for the user. Removing a
// non-member is a no-op, not an error.
func (s *ProjectService) RemoveTeamMember(ctx context.Context, projectID, userID primitive.ObjectID) (*models.ProjectView, error) {
	project, err := s.findActive(ctx, projectID)
	if err != nil {
		return nil, err
	}

	members, changed := removeMember(project.TeamMembers, userID)
	if changed {
		project.TeamMembers = members
		if err := s.save(ctx, project); err != nil {
			return nil, err
		}
	}
	return s.populateOne(ctx, *project)
}

// findActive fetches a non-deleted project document.
func (s *ProjectService) findActive(ctx context.Context, id primitive.ObjectID) (*models.Project, error) {
	var project models.Project
	err := s.ProjectsCollection.FindOne(ctx, bson.M{"_id": id, "isDeleted": false}).Decode(&project)
	if err == mongo.ErrNoDocuments {
		return nil, apperrors.NewNotFound("project not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch project: %w", err)
	}
	return &project, nil
}

// save persists the full document state read at fetch time; concurrent
// mutators race last-write-wins, matching single-document atomicity only.
func (s *ProjectService) save(ctx context.Context, project *models.Project) error {
	project.UpdatedAt = time.Now().UTC()
	_, err := s.ProjectsCollection.ReplaceOne(ctx, bson.M{"_id": project.ID}, project)
	if err != nil {
		return fmt.Errorf("failed to save project: %w", err)
	}
	return nil
}

func (s *ProjectService) populateOne(ctx context.Context, project models.Project) (*models.ProjectView, error) {
	views, err := s.populate(ctx, []models.Project{project})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *ProjectService) populate(ctx context.Context, projects []models.Project) ([]models.ProjectView, error) {
	var ids []primitive.ObjectID
	for i := range projects {
		ids = append(ids, projects[i].Owner)
		for _, m := range projects[i].TeamMembers {
			ids = append(ids, m.User)
		}
	}
	users, err := loadUserSummaries(ctx, s.UsersCollection, ids)
	if err != nil {
		return nil, err
	}
	return assembleProjectViews(projects, users), nil
}
