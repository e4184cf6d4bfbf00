package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/planwell/dayplan/internal/models"
)

func TestCreateTask(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		body       string
		wantStatus int
		validate   func(*testing.T, *fakeTaskRepo)
	}{
		{
			name:       "valid task",
			body:       `{"description":"Write quarterly report","priority":"high","duration":"2h","type":"work"}`,
			wantStatus: http.StatusCreated,
			validate: func(t *testing.T, repo *fakeTaskRepo) {
				if repo.created == nil {
					t.Fatal("Expected task to be created")
				}
				if repo.created.Priority != models.TaskPriorityHigh {
					t.Errorf("Expected priority high, got %s", repo.created.Priority)
				}
				if repo.created.Status != models.TaskStatusPending {
					t.Errorf("Expected status pending, got %s", repo.created.Status)
				}
				if repo.created.AddedDate.IsZero() {
					t.Error("Expected added date to be set")
				}
			},
		},
		{
			name:       "missing priority defaults to medium",
			body:       `{"description":"Walk the dog"}`,
			wantStatus: http.StatusCreated,
			validate: func(t *testing.T, repo *fakeTaskRepo) {
				if repo.created.Priority != models.TaskPriorityMedium {
					t.Errorf("Expected priority medium, got %s", repo.created.Priority)
				}
			},
		},
		{
			name:       "invalid priority",
			body:       `{"description":"Walk the dog","priority":"urgent"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "empty description",
			body:       `{"description":""}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "whitespace-only description",
			body:       `{"description":"   "}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "invalid body",
			body:       `{not json`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := &fakeTaskRepo{}
			h := NewTaskHandler(repo, zap.NewNop())

			req := authedRequest("POST", "/api/v1/tasks", tt.body, testUser())
			w := httptest.NewRecorder()
			h.CreateTask(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("Expected status %d, got %d: %s", tt.wantStatus, w.Code, w.Body.String())
			}
			if tt.validate != nil {
				tt.validate(t, repo)
			}
		})
	}
}

func TestListTasks(t *testing.T) {
	t.Parallel()

	user := testUser()
	repo := &fakeTaskRepo{tasks: []models.Task{
		{ID: uuid.New(), UserID: user.ID, Description: "a", Status: models.TaskStatusPending},
		{ID: uuid.New(), UserID: user.ID, Description: "b", Status: models.TaskStatusCompleted},
		{ID: uuid.New(), UserID: uuid.New(), Description: "other user", Status: models.TaskStatusPending},
	}}
	h := NewTaskHandler(repo, zap.NewNop())

	t.Run("filters by status", func(t *testing.T) {
		t.Parallel()

		req := authedRequest("GET", "/api/v1/tasks?status=pending", "", user)
		w := httptest.NewRecorder()
		h.ListTasks(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", w.Code)
		}
		var body struct {
			Data []models.Task `json:"data"`
		}
		if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(body.Data) != 1 || body.Data[0].Description != "a" {
			t.Errorf("Expected only the user's pending task, got %v", body.Data)
		}
	})

	t.Run("invalid status filter", func(t *testing.T) {
		t.Parallel()

		req := authedRequest("GET", "/api/v1/tasks?status=done", "", user)
		w := httptest.NewRecorder()
		h.ListTasks(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})
}

func TestCompleteAndDeleteTask(t *testing.T) {
	t.Parallel()

	user := testUser()
	taskID := uuid.New()
	repo := &fakeTaskRepo{tasks: []models.Task{
		{ID: taskID, UserID: user.ID, Description: "finish slides", Status: models.TaskStatusPending},
	}}
	h := NewTaskHandler(repo, zap.NewNop())

	router := mux.NewRouter()
	h.RegisterRoutes(router.PathPrefix("/api/v1/tasks").Subrouter())

	t.Run("complete pending task", func(t *testing.T) {
		req := authedRequest("POST", "/api/v1/tasks/"+taskID.String()+"/complete", "", user)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}
		if repo.complete != taskID {
			t.Errorf("Expected task %s completed, got %s", taskID, repo.complete)
		}
	})

	t.Run("complete again is not found", func(t *testing.T) {
		req := authedRequest("POST", "/api/v1/tasks/"+taskID.String()+"/complete", "", user)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d", w.Code)
		}
	})

	t.Run("delete task", func(t *testing.T) {
		req := authedRequest("DELETE", "/api/v1/tasks/"+taskID.String(), "", user)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusNoContent {
			t.Errorf("Expected status 204, got %d", w.Code)
		}
	})

	t.Run("delete unknown task", func(t *testing.T) {
		req := authedRequest("DELETE", "/api/v1/tasks/"+uuid.NewString(), "", user)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d", w.Code)
		}
	})

	t.Run("invalid task id", func(t *testing.T) {
		req := authedRequest("DELETE", "/api/v1/tasks/not-a-uuid", "", user)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})
}
