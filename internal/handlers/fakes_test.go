package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/google/uuid"

	"github.com/planwell/dayplan/internal/database"
	"github.com/planwell/dayplan/internal/models"
	"github.com/planwell/dayplan/internal/queue"
	"github.com/planwell/dayplan/internal/request"
)

// fakeUserRepo is an in-memory UserRepositoryInterface
type fakeUserRepo struct {
	createFunc func(ctx context.Context, user *models.User) error
	users      map[uuid.UUID]*models.User
	updated    *models.Profile
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	if f.createFunc != nil {
		return f.createFunc(ctx, user)
	}
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, database.ErrNotFound
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, database.ErrNotFound
}

func (f *fakeUserRepo) UpdateProfile(ctx context.Context, userID uuid.UUID, profile *models.Profile) error {
	f.updated = profile
	return nil
}

func (f *fakeUserRepo) List(ctx context.Context) ([]*models.User, error) {
	out := make([]*models.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

var _ database.UserRepositoryInterface = (*fakeUserRepo)(nil)

// fakeTaskRepo is an in-memory TaskRepositoryInterface
type fakeTaskRepo struct {
	tasks    []models.Task
	listErr  error
	created  *models.Task
	deleted  uuid.UUID
	complete uuid.UUID
}

func (f *fakeTaskRepo) Create(ctx context.Context, task *models.Task) error {
	f.created = task
	f.tasks = append(f.tasks, *task)
	return nil
}

func (f *fakeTaskRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			return &f.tasks[i], nil
		}
	}
	return nil, database.ErrNotFound
}

func (f *fakeTaskRepo) ListByUser(ctx context.Context, userID uuid.UUID, status *models.TaskStatus) ([]models.Task, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []models.Task
	for _, task := range f.tasks {
		if task.UserID != userID {
			continue
		}
		if status != nil && task.Status != *status {
			continue
		}
		out = append(out, task)
	}
	return out, nil
}

func (f *fakeTaskRepo) Complete(ctx context.Context, id, userID uuid.UUID) error {
	for i := range f.tasks {
		if f.tasks[i].ID == id && f.tasks[i].UserID == userID && f.tasks[i].Status == models.TaskStatusPending {
			f.tasks[i].Status = models.TaskStatusCompleted
			f.complete = id
			return nil
		}
	}
	return database.ErrNotFound
}

func (f *fakeTaskRepo) Delete(ctx context.Context, id, userID uuid.UUID) error {
	for i := range f.tasks {
		if f.tasks[i].ID == id && f.tasks[i].UserID == userID {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			f.deleted = id
			return nil
		}
	}
	return database.ErrNotFound
}

var _ database.TaskRepositoryInterface = (*fakeTaskRepo)(nil)

// fakeScheduleRepo is an in-memory ScheduleRepositoryInterface
type fakeScheduleRepo struct {
	schedules map[uuid.UUID]*models.Schedule
	upserted  *models.Schedule
	rated     int
}

func newFakeScheduleRepo() *fakeScheduleRepo {
	return &fakeScheduleRepo{schedules: make(map[uuid.UUID]*models.Schedule)}
}

func (f *fakeScheduleRepo) Upsert(ctx context.Context, schedule *models.Schedule) error {
	f.upserted = schedule
	f.schedules[schedule.ID] = schedule
	return nil
}

func (f *fakeScheduleRepo) GetByUserAndDate(ctx context.Context, userID uuid.UUID, date string) (*models.Schedule, error) {
	for _, s := range f.schedules {
		if s.UserID == userID && s.Date == date {
			return s, nil
		}
	}
	return nil, database.ErrNotFound
}

func (f *fakeScheduleRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Schedule, error) {
	if s, ok := f.schedules[id]; ok {
		return s, nil
	}
	return nil, database.ErrNotFound
}

func (f *fakeScheduleRepo) UpdateRating(ctx context.Context, id uuid.UUID, rating int, feedbackText string) error {
	s, ok := f.schedules[id]
	if !ok {
		return database.ErrNotFound
	}
	s.UserRating = &rating
	s.UserFeedback = feedbackText
	f.rated = rating
	return nil
}

var _ database.ScheduleRepositoryInterface = (*fakeScheduleRepo)(nil)

// fakeFeedbackRepo records feedback submissions
type fakeFeedbackRepo struct {
	created []*models.ScheduleFeedback
}

func (f *fakeFeedbackRepo) Create(ctx context.Context, feedback *models.ScheduleFeedback) error {
	f.created = append(f.created, feedback)
	return nil
}

func (f *fakeFeedbackRepo) ListBySchedule(ctx context.Context, scheduleID uuid.UUID) ([]models.ScheduleFeedback, error) {
	var out []models.ScheduleFeedback
	for _, fb := range f.created {
		if fb.ScheduleID == scheduleID {
			out = append(out, *fb)
		}
	}
	return out, nil
}

func (f *fakeFeedbackRepo) AverageOverallRating(ctx context.Context, scheduleID uuid.UUID) (float64, int, error) {
	sum, count := 0, 0
	for _, fb := range f.created {
		if fb.ScheduleID == scheduleID {
			sum += fb.OverallRating
			count++
		}
	}
	if count == 0 {
		return 0, 0, nil
	}
	return float64(sum) / float64(count), count, nil
}

var _ database.FeedbackRepositoryInterface = (*fakeFeedbackRepo)(nil)

// fakeQueue records enqueued jobs
type fakeQueue struct {
	jobs []*queue.Job
}

func (f *fakeQueue) Enqueue(ctx context.Context, job *queue.Job) error {
	f.jobs = append(f.jobs, job)
	return nil
}

func (f *fakeQueue) Consume(ctx context.Context, prefetchCount int) (<-chan *queue.Message, <-chan error, error) {
	return nil, nil, nil
}

func (f *fakeQueue) Close() error { return nil }

func (f *fakeQueue) HealthCheck(ctx context.Context) error { return nil }

var _ queue.JobQueue = (*fakeQueue)(nil)

// authedRequest builds a request carrying the given user in its context
func authedRequest(method, target, body string, user *models.User) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	if user != nil {
		req = req.WithContext(request.WithUser(req.Context(), user))
	}
	return req
}
