package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"task-tracker-api/models"
)

// Population is an explicit batch lookup: after the primary query, the
// referenced ids are collected, deduplicated and fetched with a single $in
// query per collection, then attached as summary views.

func loadUserSummaries(ctx context.Context, users *mongo.Collection, ids []primitive.ObjectID) (map[primitive.ObjectID]models.UserSummary, error) {
	out := make(map[primitive.ObjectID]models.UserSummary)
	ids = dedupeIDs(ids)
	if len(ids) == 0 {
		return out, nil
	}

	cursor, err := users.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to load referenced users: %w", err)
	}
	var docs []models.User
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode referenced users: %w", err)
	}
	for i := range docs {
		out[docs[i].ID] = docs[i].Summary()
	}
	return out, nil
}

func loadProjectSummaries(ctx context.Context, projects *mongo.Collection, ids []primitive.ObjectID) (map[primitive.ObjectID]models.ProjectSummary, error) {
	out := make(map[primitive.ObjectID]models.ProjectSummary)
	ids = dedupeIDs(ids)
	if len(ids) == 0 {
		return out, nil
	}

	cursor, err := projects.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to load referenced projects: %w", err)
	}
	var docs []models.Project
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode referenced projects: %w", err)
	}
	for i := range docs {
		out[docs[i].ID] = docs[i].Summary()
	}
	return out, nil
}

func loadTaskSummaries(ctx context.Context, tasks *mongo.Collection, ids []primitive.ObjectID) (map[primitive.ObjectID]models.TaskSummary, error) {
	out := make(map[primitive.ObjectID]models.TaskSummary)
	ids = dedupeIDs(ids)
	if len(ids) == 0 {
		return out, nil
	}

	cursor, err := tasks.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to load referenced tasks: %w", err)
	}
	var docs []models.Task
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode referenced tasks: %w", err)
	}
	for i := range docs {
		out[docs[i].ID] = docs[i].Summary()
	}
	return out, nil
}

// assembleProjectViews attaches owner and team member summaries from an
// already-loaded user map. Unresolvable references stay nil rather than
// failing the whole response.
func assembleProjectViews(projects []models.Project, users map[primitive.ObjectID]models.UserSummary) []models.ProjectView {
	views := make([]models.ProjectView, 0, len(projects))
	for i := range projects {
		p := projects[i]

		var owner *models.UserSummary
		if summary, ok := users[p.Owner]; ok {
			owner = &summary
		}

		members := make([]models.TeamMemberView, 0, len(p.TeamMembers))
		for _, m := range p.TeamMembers {
			view := models.TeamMemberView{ID: m.User, Role: m.Role}
			if summary, ok := users[m.User]; ok {
				view.User = &summary
			}
			members = append(members, view)
		}

		views = append(views, models.NewProjectView(p, owner, members))
	}
	return views
}

// assembleTaskViews attaches project, assignee and dependency summaries and
// computes the derived fields against the given clock.
func assembleTaskViews(tasks []models.Task, projects map[primitive.ObjectID]models.ProjectSummary, users map[primitive.ObjectID]models.UserSummary, deps map[primitive.ObjectID]models.TaskSummary, now time.Time) []models.TaskView {
	views := make([]models.TaskView, 0, len(tasks))
	for i := range tasks {
		t := tasks[i]

		var project *models.ProjectSummary
		if summary, ok := projects[t.Project]; ok {
			project = &summary
		}

		var assignee *models.UserSummary
		if t.AssignedTo != nil {
			if summary, ok := users[*t.AssignedTo]; ok {
				assignee = &summary
			}
		}

		dependencies := make([]models.TaskSummary, 0, len(t.Dependencies))
		for _, depID := range t.Dependencies {
			if summary, ok := deps[depID]; ok {
				dependencies = append(dependencies, summary)
			}
		}

		views = append(views, models.NewTaskView(t, project, assignee, dependencies, now))
	}
	return views
}

func dedupeIDs(ids []primitive.ObjectID) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(ids))
	seen := make(map[primitive.ObjectID]bool, len(ids))
	for _, id := range ids {
		if id.IsZero() || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
