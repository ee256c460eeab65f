package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"sync"

	"github.com/dmitrijs2005/taskdesk/internal/client/client"
	"github.com/dmitrijs2005/taskdesk/internal/client/models"
	"github.com/dmitrijs2005/taskdesk/internal/logging"
)

// DefaultUpcomingDays is the window used by UpcomingTasks when days <= 0.
const DefaultUpcomingDays = 7

var errEmptyResponse = errors.New("server returned no task")

// TaskService keeps a local copy of the user's tasks in step with the
// backend.
//
// Contract:
//   - LoadTasks/RefreshTasks replace the whole list on success and keep it
//     on failure.
//   - CreateTask prepends, UpdateTask replaces in place, DeleteTask
//     removes; each uses the server's response and leaves the list
//     untouched on failure.
//   - The query helpers return server-filtered views and never modify the
//     list.
//   - Failures are reported through Error(); no method returns an error.
type TaskService interface {
	LoadTasks(ctx context.Context)
	RefreshTasks(ctx context.Context)
	CreateTask(ctx context.Context, req models.TaskRequest) *models.Task
	UpdateTask(ctx context.Context, id int64, patch models.TaskUpdateRequest) *models.Task
	DeleteTask(ctx context.Context, id int64) bool

	TasksByStatus(ctx context.Context, status models.TaskStatus) []models.Task
	TasksByPriority(ctx context.Context, priority models.TaskPriority) []models.Task
	SearchTasks(ctx context.Context, query string) []models.Task
	UpcomingTasks(ctx context.Context, days int) []models.Task
	OverdueTasks(ctx context.Context) []models.Task

	Tasks() []models.Task
	Loading() bool
	Error() string
	ClearError()
}

type taskService struct {
	opStatus

	client client.Client
	log    logging.Logger

	mu    sync.RWMutex
	tasks []models.Task
}

func NewTaskService(c client.Client, log logging.Logger) TaskService {
	return &taskService{client: c, log: log}
}

func (s *taskService) LoadTasks(ctx context.Context) { s.RefreshTasks(ctx) }

func (s *taskService) RefreshTasks(ctx context.Context) {
	s.begin()
	defer s.end()

	res := client.RequestSafe[[]models.Task](ctx, s.client, http.MethodGet, "/tasks", nil)
	if !res.OK {
		s.failed(ctx, "load tasks", res.Err)
		return
	}

	s.mu.Lock()
	s.tasks = res.Data
	s.mu.Unlock()
}

func (s *taskService) CreateTask(ctx context.Context, req models.TaskRequest) *models.Task {
	s.begin()
	defer s.end()

	req = req.Normalize()
	if err := req.Validate(); err != nil {
		s.failed(ctx, "create task", err.Error())
		return nil
	}

	task, ok := s.mutate(ctx, "create task", http.MethodPost, "/tasks", req)
	if !ok {
		return nil
	}

	s.mu.Lock()
	s.tasks = append([]models.Task{*task}, s.tasks...)
	s.mu.Unlock()
	return task
}

func (s *taskService) UpdateTask(ctx context.Context, id int64, patch models.TaskUpdateRequest) *models.Task {
	s.begin()
	defer s.end()

	if err := patch.Validate(); err != nil {
		s.failed(ctx, "update task", err.Error())
		return nil
	}

	task, ok := s.mutate(ctx, "update task", http.MethodPut, taskPath(id), patch)
	if !ok {
		return nil
	}

	s.mu.Lock()
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks[i] = *task
		}
	}
	s.mu.Unlock()
	return task
}

func (s *taskService) DeleteTask(ctx context.Context, id int64) bool {
	s.begin()
	defer s.end()

	if err := s.client.Send(ctx, http.MethodDelete, taskPath(id), nil, nil); err != nil {
		s.failed(ctx, "delete task", err.Error())
		return false
	}

	s.mu.Lock()
	s.tasks = slices.DeleteFunc(slices.Clone(s.tasks), func(t models.Task) bool { return t.ID == id })
	s.mu.Unlock()
	return true
}

func (s *taskService) mutate(ctx context.Context, op, method, path string, body any) (*models.Task, bool) {
	res := client.RequestSafe[*models.Task](ctx, s.client, method, path, body)
	if !res.OK {
		s.failed(ctx, op, res.Err)
		return nil, false
	}
	if res.Data == nil {
		s.failed(ctx, op, errEmptyResponse.Error())
		return nil, false
	}
	return res.Data, true
}

func (s *taskService) TasksByStatus(ctx context.Context, status models.TaskStatus) []models.Task {
	if !status.Valid() {
		return s.rejectQuery(ctx, "tasks by status", fmt.Sprintf("unknown status %q", status))
	}
	return s.query(ctx, "tasks by status", "/tasks/status/"+url.PathEscape(string(status)))
}

func (s *taskService) TasksByPriority(ctx context.Context, priority models.TaskPriority) []models.Task {
	if !priority.Valid() {
		return s.rejectQuery(ctx, "tasks by priority", fmt.Sprintf("unknown priority %q", priority))
	}
	return s.query(ctx, "tasks by priority", "/tasks/priority/"+url.PathEscape(string(priority)))
}

func (s *taskService) SearchTasks(ctx context.Context, query string) []models.Task {
	return s.query(ctx, "search tasks", "/tasks/search?"+url.Values{"query": {query}}.Encode())
}

func (s *taskService) UpcomingTasks(ctx context.Context, days int) []models.Task {
	if days <= 0 {
		days = DefaultUpcomingDays
	}
	return s.query(ctx, "upcoming tasks", "/tasks/upcoming?days="+strconv.Itoa(days))
}

func (s *taskService) OverdueTasks(ctx context.Context) []models.Task {
	return s.query(ctx, "overdue tasks", "/tasks/overdue")
}

func (s *taskService) query(ctx context.Context, op, path string) []models.Task {
	s.begin()
	defer s.end()

	res := client.RequestSafe[[]models.Task](ctx, s.client, http.MethodGet, path, nil)
	if !res.OK {
		s.failed(ctx, op, res.Err)
		return []models.Task{}
	}
	if res.Data == nil {
		return []models.Task{}
	}
	return res.Data
}

func (s *taskService) rejectQuery(ctx context.Context, op, msg string) []models.Task {
	s.begin()
	defer s.end()
	s.failed(ctx, op, msg)
	return []models.Task{}
}

func (s *taskService) failed(ctx context.Context, op, msg string) {
	s.log.Warn(ctx, op+" failed", "error", msg)
	s.fail(msg)
}

// Tasks returns a copy of the cached list.
func (s *taskService) Tasks() []models.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.tasks)
}

func taskPath(id int64) string {
	return "/tasks/" + strconv.FormatInt(id, 10)
}
