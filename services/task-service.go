package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"task-tracker-api/apperrors"
	"task-tracker-api/models"
)

type TaskService struct {
	TasksCollection    *mongo.Collection
	ProjectsCollection *mongo.Collection
	UsersCollection    *mongo.Collection
}

func NewTaskService(tasksCollection, projectsCollection, usersCollection *mongo.Collection) *TaskService {
	return &TaskService{
		TasksCollection:    tasksCollection,
		ProjectsCollection: projectsCollection,
		UsersCollection:    usersCollection,
	}
}

// CreateTask validates and persists a new task, returning it with references
// resolved. The id is assigned before validation so a self-referential
// dependency list is caught at write time.
func (s *TaskService) CreateTask(ctx context.Context, task models.Task) (*models.TaskView, error) {
	task.Normalize()
	task.ApplyDefaults()
	task.ID = primitive.NewObjectID()
	if err := task.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	task.CreatedAt = now
	task.UpdatedAt = now

	if _, err := s.TasksCollection.InsertOne(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return s.populateOne(ctx, task)
}

// GetTaskByID returns a non-deleted task with references resolved.
func (s *TaskService) GetTaskByID(ctx context.Context, id primitive.ObjectID) (*models.TaskView, error) {
	task, err := s.findActive(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.populateOne(ctx, *task)
}

// UpdateTask applies a partial update after re-validating the provided
// fields. The soft-delete flag cannot be changed here.
func (s *TaskService) UpdateTask(ctx context.Context, id primitive.ObjectID, update models.TaskUpdate) (*models.TaskView, error) {
	update.Normalize()
	if err := update.Validate(id); err != nil {
		return nil, err
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var task models.Task
	err := s.TasksCollection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id, "isDeleted": false},
		bson.M{"$set": taskUpdateDoc(update, time.Now().UTC())},
		opts,
	).Decode(&task)
	if err == mongo.ErrNoDocuments {
		return nil, apperrors.NewNotFound("task not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return s.populateOne(ctx, task)
}

// SoftDeleteTask marks the task deleted regardless of its current state.
// Idempotent; only a missing id fails.
func (s *TaskService) SoftDeleteTask(ctx context.Context, id primitive.ObjectID) (*models.TaskView, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var task models.Task
	err := s.TasksCollection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"isDeleted": true, "updatedAt": time.Now().UTC()}},
		opts,
	).Decode(&task)
	if err == mongo.ErrNoDocuments {
		return nil, apperrors.NewNotFound("task not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to delete task: %w", err)
	}
	return s.populateOne(ctx, task)
}

// ListTasks returns one page of non-deleted tasks matching the filter plus
// the total match count, with references resolved.
func (s *TaskService) ListTasks(ctx context.Context, filter TaskFilter, listOpts ListOptions) ([]models.TaskView, int64, error) {
	listOpts = listOpts.Normalized()
	query := buildTaskFilter(filter)

	findOpts := options.Find().
		SetSort(listOpts.Sort()).
		SetSkip(listOpts.Skip()).
		SetLimit(listOpts.Limit)

	cursor, err := s.TasksCollection.Find(ctx, query, findOpts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}
	tasks := []models.Task{}
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, 0, fmt.Errorf("failed to decode tasks: %w", err)
	}

	total, err := s.TasksCollection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count tasks: %w", err)
	}

	views, err := s.populate(ctx, tasks)
	if err != nil {
		return nil, 0, err
	}
	return views, total, nil
}

// GetTasksByProject returns every non-deleted task of a project, unpaginated,
// ordered by priority descending then due date ascending, optionally narrowed
// by status and priority.
func (s *TaskService) GetTasksByProject(ctx context.Context, projectID primitive.ObjectID, status, priority string) ([]models.TaskView, error) {
	query := bson.M{"project": projectID, "isDeleted": false}
	if status != "" {
		query["status"] = status
	}
	if priority != "" {
		query["priority"] = priority
	}

	findOpts := options.Find().SetSort(bson.D{
		{Key: "priority", Value: -1},
		{Key: "dueDate", Value: 1},
	})

	cursor, err := s.TasksCollection.Find(ctx, query, findOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to list project tasks: %w", err)
	}
	tasks := []models.Task{}
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, fmt.Errorf("failed to decode project tasks: %w", err)
	}
	return s.populate(ctx, tasks)
}

// AddAttachment appends an attachment with a server-assigned timestamp.
// Every call appends; there is no dedup on filename or url.
func (s *TaskService) AddAttachment(ctx context.Context, id primitive.ObjectID, filename, url string) (*models.TaskView, error) {
	task, err := s.findActive(ctx, id)
	if err != nil {
		return nil, err
	}

	task.Attachments = append(task.Attachments, models.Attachment{
		Filename:   filename,
		URL:        url,
		UploadedAt: time.Now().UTC(),
	})

	if err := s.save(ctx, task); err != nil {
		return nil, err
	}
	return s.populateOne(ctx, *task)
}

// findActive fetches a non-deleted task document.
func (s *TaskService) findActive(ctx context.Context, id primitive.ObjectID) (*models.Task, error) {
	var task models.Task
	err := s.TasksCollection.FindOne(ctx, bson.M{"_id": id, "isDeleted": false}).Decode(&task)
	if err == mongo.ErrNoDocuments {
		return nil, apperrors.NewNotFound("task not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch task: %w", err)
	}
	return &task, nil
}

// save persists the full document state read at fetch time; concurrent
// mutators race last-write-wins, matching single-document atomicity only.
func (s *TaskService) save(ctx context.Context, task *models.Task) error {
	task.UpdatedAt = time.Now().UTC()
	_, err := s.TasksCollection.ReplaceOne(ctx, bson.M{"_id": task.ID}, task)
	if err != nil {
		return fmt.Errorf("failed to save task: %w", err)
	}
	return nil
}

func (s *TaskService) populateOne(ctx context.Context, task models.Task) (*models.TaskView, error) {
	views, err := s.populate(ctx, []models.Task{task})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *TaskService) populate(ctx context.Context, tasks []models.Task) ([]models.TaskView, error) {
	var projectIDs, userIDs, taskIDs []primitive.ObjectID
	for i := range tasks {
		projectIDs = append(projectIDs, tasks[i].Project)
		if tasks[i].AssignedTo != nil {
			userIDs = append(userIDs, *tasks[i].AssignedTo)
		}
		taskIDs = append(taskIDs, tasks[i].Dependencies...)
	}

	projects, err := loadProjectSummaries(ctx, s.ProjectsCollection, projectIDs)
	if err != nil {
		return nil, err
	}
	users, err := loadUserSummaries(ctx, s.UsersCollection, userIDs)
	if err != nil {
		return nil, err
	}
	deps, err := loadTaskSummaries(ctx, s.TasksCollection, taskIDs)
	if err != nil {
		return nil, err
	}
	return assembleTaskViews(tasks, projects, users, deps, time.Now().UTC()), nil
}
