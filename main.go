package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"task-tracker-api/db"
	"task-tracker-api/handlers"
	"task-tracker-api/logging"
	"task-tracker-api/models"
	"task-tracker-api/services"
	"task-tracker-api/validators"
)

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logging.Logger.Infof("Event ID: HTTP_REQUEST, Description: %s %s completed in %s", r.Method, r.URL.Path, time.Since(start))
	})
}

func main() {
	logging.InitLogger()
	logging.Logger.Info("Event ID: SERVICE_START, Description: Starting Task Tracker API...")

	if err := godotenv.Load(".env"); err != nil {
		logging.Logger.Warnf("Event ID: ENV_LOAD_WARNING, Description: No .env file loaded: %v", err)
	}

	mongoURI := os.Getenv("MONGO_URI")
	mongoDBName := os.Getenv("MONGO_DB_NAME")
	if mongoURI == "" || mongoDBName == "" {
		logging.Logger.Fatal("Event ID: CONFIG_ERROR, Description: MONGO_URI and MONGO_DB_NAME must be set.")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		logging.Logger.Fatalf("Event ID: DB_CONNECTION_FAILED, Description: Database connection for MongoDB failed: %v", err)
	}
	defer client.Disconnect(context.Background())

	if err := client.Ping(ctx, nil); err != nil {
		logging.Logger.Fatalf("Event ID: DB_PING_FAILED, Description: MongoDB connection ping error: %v", err)
	}
	logging.Logger.Infof("Event ID: DB_CONNECTED, Description: Successfully connected to MongoDB at %s.", mongoURI)

	database := client.Database(mongoDBName)
	if err := db.EnsureIndexes(ctx, database); err != nil {
		logging.Logger.Fatalf("Event ID: DB_INDEX_FAILED, Description: Index creation failed: %v", err)
	}
	logging.Logger.Info("Event ID: DB_INDEXES_READY, Description: Indexes are in place.")

	usersCollection := database.Collection("users")
	projectsCollection := database.Collection("projects")
	tasksCollection := database.Collection("tasks")

	userService := services.NewUserService(usersCollection)
	projectService := services.NewProjectService(projectsCollection, usersCollection)
	taskService := services.NewTaskService(tasksCollection, projectsCollection, usersCollection)

	userHandler := handlers.NewUserHandler(userService)
	projectHandler := handlers.NewProjectHandler(projectService)
	taskHandler := handlers.NewTaskHandler(taskService)

	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(handlers.RouteNotFound)

	r.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		handlers.RespondData(w, http.StatusOK, map[string]interface{}{
			"name":    "Task Tracker API",
			"version": "1.0.0",
			"endpoints": map[string]string{
				"users":    "/api/users",
				"projects": "/api/projects",
				"tasks":    "/api/tasks",
			},
		})
	}).Methods(http.MethodGet)

	// Users
	r.Handle("/api/users", validators.Chain(
		http.HandlerFunc(userHandler.CreateUser),
		validators.RequiredFields("name", "email"),
		validators.Enum("role", models.UserRoles),
	)).Methods(http.MethodPost)
	r.Handle("/api/users", validators.Chain(
		http.HandlerFunc(userHandler.ListUsers),
		validators.Pagination(),
	)).Methods(http.MethodGet)
	r.Handle("/api/users/{id}", validators.Chain(
		http.HandlerFunc(userHandler.GetUserByID),
		validators.ObjectID("id"),
	)).Methods(http.MethodGet)
	r.Handle("/api/users/{id}", validators.Chain(
		http.HandlerFunc(userHandler.UpdateUser),
		validators.ObjectID("id"),
		validators.Enum("role", models.UserRoles),
	)).Methods(http.MethodPut)
	r.Handle("/api/users/{id}", validators.Chain(
		http.HandlerFunc(userHandler.DeactivateUser),
		validators.ObjectID("id"),
	)).Methods(http.MethodDelete)

	// Projects
	r.Handle("/api/projects", validators.Chain(
		http.HandlerFunc(projectHandler.CreateProject),
		validators.RequiredFields("name", "owner"),
		validators.Enum("status", models.ProjectStatuses),
		validators.Dates(),
		validators.PositiveNumbers("budget"),
	)).Methods(http.MethodPost)
	r.Handle("/api/projects", validators.Chain(
		http.HandlerFunc(projectHandler.ListProjects),
		validators.Pagination(),
	)).Methods(http.MethodGet)
	r.Handle("/api/projects/{id}", validators.Chain(
		http.HandlerFunc(projectHandler.GetProjectByID),
		validators.ObjectID("id"),
	)).Methods(http.MethodGet)
	r.Handle("/api/projects/{id}", validators.Chain(
		http.HandlerFunc(projectHandler.UpdateProject),
		validators.ObjectID("id"),
		validators.Enum("status", models.ProjectStatuses),
		validators.Dates(),
		validators.PositiveNumbers("budget"),
	)).Methods(http.MethodPut)
	r.Handle("/api/projects/{id}", validators.Chain(
		http.HandlerFunc(projectHandler.DeleteProject),
		validators.ObjectID("id"),
	)).Methods(http.MethodDelete)
	r.Handle("/api/projects/{id}/members", validators.Chain(
		http.HandlerFunc(projectHandler.AddTeamMember),
		validators.ObjectID("id"),
		validators.RequiredFields("userId"),
		validators.Enum("role", models.MemberRoles),
	)).Methods(http.MethodPost)
	r.Handle("/api/projects/{id}/members/{userId}", validators.Chain(
		http.HandlerFunc(projectHandler.RemoveTeamMember),
		validators.ObjectID("id"),
		validators.ObjectID("userId"),
	)).Methods(http.MethodDelete)

	// Tasks
	r.Handle("/api/tasks", validators.Chain(
		http.HandlerFunc(taskHandler.CreateTask),
		validators.RequiredFields("title", "project"),
		validators.Enum("status", models.TaskStatuses),
		validators.Enum("priority", models.TaskPriorities),
		validators.Dates(),
		validators.PositiveNumbers("estimatedHours", "actualHours"),
	)).Methods(http.MethodPost)
	r.Handle("/api/tasks", validators.Chain(
		http.HandlerFunc(taskHandler.ListTasks),
		validators.Pagination(),
	)).Methods(http.MethodGet)
	r.Handle("/api/tasks/project/{projectId}", validators.Chain(
		http.HandlerFunc(taskHandler.GetTasksByProject),
		validators.ObjectID("projectId"),
	)).Methods(http.MethodGet)
	r.Handle("/api/tasks/{id}", validators.Chain(
		http.HandlerFunc(taskHandler.GetTaskByID),
		validators.ObjectID("id"),
	)).Methods(http.MethodGet)
	r.Handle("/api/tasks/{id}", validators.Chain(
		http.HandlerFunc(taskHandler.UpdateTask),
		validators.ObjectID("id"),
		validators.Enum("status", models.TaskStatuses),
		validators.Enum("priority", models.TaskPriorities),
		validators.Dates(),
		validators.PositiveNumbers("estimatedHours", "actualHours"),
	)).Methods(http.MethodPut)
	r.Handle("/api/tasks/{id}", validators.Chain(
		http.HandlerFunc(taskHandler.DeleteTask),
		validators.ObjectID("id"),
	)).Methods(http.MethodDelete)
	r.Handle("/api/tasks/{id}/attachments", validators.Chain(
		http.HandlerFunc(taskHandler.AddAttachment),
		validators.ObjectID("id"),
		validators.RequiredFields("filename", "url"),
	)).Methods(http.MethodPost)

	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		logging.Logger.Fatal("Event ID: CONFIG_ERROR, Description: SERVER_PORT is not set in the environment variables.")
	}

	serverAddress := fmt.Sprintf(":%s", serverPort)
	logging.Logger.Infof("Event ID: SERVER_START_INFO, Description: Server running on http://localhost%s", serverAddress)

	if err := http.ListenAndServe(serverAddress, enableCORS(logRequests(r))); err != nil {
		logging.Logger.Fatalf("Event ID: SERVER_FATAL_ERROR, Description: Server failed to start: %v", err)
	}
}
