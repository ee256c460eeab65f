package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/taskdesk/internal/client/models"
	"github.com/dmitrijs2005/taskdesk/internal/timex"
)

// errFailed is returned by commands whose service reported the failure
// through its error state; the message has already been printed.
var errFailed = errors.New("operation failed")

// errDueDateKept is returned when asked to remove a due date. The server
// keeps the stored date when an update omits it.
var errDueDateKept = errors.New("a due date cannot be removed, enter a new date instead")

// clearValue entered at an edit prompt empties an optional field.
const clearValue = "-"

func (a *App) List(ctx context.Context) error {
	tasks := a.tasks().Tasks()
	if len(tasks) == 0 {
		printlnFn("No tasks")
		return nil
	}
	fmt.Fprintln(a.out, renderTasks(tasks, now()))
	return nil
}

func (a *App) Refresh(ctx context.Context) error {
	a.tasks().LoadAll(ctx)
	if a.reportErrors() {
		return errFailed
	}
	return a.List(ctx)
}

// Add prompts for the task fields and creates the task.
func (a *App) Add(ctx context.Context) error {
	var req models.TaskRequest
	var err error

	if req.Title, err = getSimpleText(a.reader, "Title", a.out); err != nil {
		return err
	}
	desc, err := getSimpleText(a.reader, "Description (optional)", a.out)
	if err != nil {
		return err
	}
	if desc != "" {
		req.Description = &desc
	}

	prio, err := getSimpleText(a.reader, "Priority [LOW, MEDIUM, HIGH, URGENT] (default MEDIUM)", a.out)
	if err != nil {
		return err
	}
	if prio != "" {
		if req.Priority, err = models.ParseTaskPriority(prio); err != nil {
			return err
		}
	}

	if req.DueDate, err = a.promptDueDate(); err != nil {
		return err
	}

	board := a.tasks()
	task := board.CreateTask(ctx, req)
	if task == nil {
		return a.serviceError(board.Error())
	}
	printlnFn(fmt.Sprintf("Created task #%d", task.ID))
	a.reportStatsError()
	return nil
}

// Edit prompts for new values. Empty input keeps the current value and
// clearValue empties the description.
func (a *App) Edit(ctx context.Context, id int64) error {
	board := a.tasks()
	current, ok := findTask(board.Tasks(), id)
	if !ok {
		return fmt.Errorf("task #%d is not in the list, try 'refresh'", id)
	}

	var patch models.TaskUpdateRequest

	title, err := getSimpleText(a.reader, fmt.Sprintf("Title [%s]", current.Title), a.out)
	if err != nil {
		return err
	}
	if title != "" {
		patch.Title = &title
	}

	desc, err := getSimpleText(a.reader, fmt.Sprintf("Description [%s] ('%s' to clear)", deref(current.Description), clearValue), a.out)
	if err != nil {
		return err
	}
	switch desc {
	case "":
	case clearValue:
		empty := ""
		patch.Description = &empty
	default:
		patch.Description = &desc
	}

	prio, err := getSimpleText(a.reader, fmt.Sprintf("Priority [%s]", current.Priority), a.out)
	if err != nil {
		return err
	}
	if prio != "" {
		if patch.Priority, err = models.ParseTaskPriority(prio); err != nil {
			return err
		}
	}

	status, err := getSimpleText(a.reader, fmt.Sprintf("Status [%s]", current.Status), a.out)
	if err != nil {
		return err
	}
	if status != "" {
		if patch.Status, err = models.ParseTaskStatus(status); err != nil {
			return err
		}
	}

	due, err := getSimpleText(a.reader, fmt.Sprintf("Due date [%s] (YYYY-MM-DD or YYYY-MM-DDTHH:MM)", dueLabel(current.DueDate)), a.out)
	if err != nil {
		return err
	}
	if due == clearValue {
		return errDueDateKept
	}
	if patch.DueDate, err = parseDueDate(due); err != nil {
		return err
	}

	if patch == (models.TaskUpdateRequest{}) {
		printlnFn("Nothing to change")
		return nil
	}
	return a.update(ctx, id, patch)
}

func (a *App) SetStatus(ctx context.Context, id int64, status models.TaskStatus) error {
	return a.update(ctx, id, models.TaskUpdateRequest{Status: status})
}

func (a *App) update(ctx context.Context, id int64, patch models.TaskUpdateRequest) error {
	board := a.tasks()
	task := board.UpdateTask(ctx, id, patch)
	if task == nil {
		return a.serviceError(board.Error())
	}
	printlnFn(fmt.Sprintf("Updated task #%d (%s)", task.ID, task.Status.Label()))
	a.reportStatsError()
	return nil
}

func (a *App) Delete(ctx context.Context, id int64) error {
	board := a.tasks()
	if !board.DeleteTask(ctx, id) {
		return a.serviceError(board.Error())
	}
	printlnFn(fmt.Sprintf("Deleted task #%d", id))
	a.reportStatsError()
	return nil
}

func (a *App) ByStatus(ctx context.Context, status models.TaskStatus) error {
	board := a.tasks()
	return a.showQuery(board.TasksByStatus(ctx, status), board.Error())
}

func (a *App) ByPriority(ctx context.Context, priority models.TaskPriority) error {
	board := a.tasks()
	return a.showQuery(board.TasksByPriority(ctx, priority), board.Error())
}

func (a *App) Search(ctx context.Context, query string) error {
	board := a.tasks()
	return a.showQuery(board.SearchTasks(ctx, query), board.Error())
}

func (a *App) Upcoming(ctx context.Context, days int) error {
	board := a.tasks()
	return a.showQuery(board.UpcomingTasks(ctx, days), board.Error())
}

func (a *App) Overdue(ctx context.Context) error {
	board := a.tasks()
	return a.showQuery(board.OverdueTasks(ctx), board.Error())
}

func (a *App) showQuery(tasks []models.Task, errMsg string) error {
	if errMsg != "" {
		return a.serviceError(errMsg)
	}
	if len(tasks) == 0 {
		printlnFn("No matching tasks")
		return nil
	}
	fmt.Fprintln(a.out, renderTasks(tasks, now()))
	return nil
}

func (a *App) Stats(ctx context.Context) error {
	stats := a.tasks().Statistics()
	stats.RefreshStats(ctx)
	if msg := stats.Error(); msg != "" {
		stats.ClearError()
		return errors.New(msg)
	}
	if s := stats.Stats(); s != nil {
		fmt.Fprintln(a.out, renderStats(*s))
	}
	return nil
}

func (a *App) promptDueDate() (*timex.LocalTime, error) {
	s, err := getSimpleText(a.reader, "Due date (YYYY-MM-DD or YYYY-MM-DDTHH:MM, empty for none)", a.out)
	if err != nil {
		return nil, err
	}
	return parseDueDate(s)
}

// parseDueDate parses an entered due date; empty input means none.
func parseDueDate(s string) (*timex.LocalTime, error) {
	if s == "" {
		return nil, nil
	}
	t, err := timex.ParseLocalTime(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// serviceError turns a service's error state into a command error and
// clears it so it is shown once.
func (a *App) serviceError(msg string) error {
	a.tasks().ClearError()
	if msg == "" {
		return errFailed
	}
	return errors.New(msg)
}

// reportErrors prints and clears pending task and statistics errors. It
// reports whether there were any.
func (a *App) reportErrors() bool {
	board := a.tasks()
	failed := false
	if msg := board.Error(); msg != "" {
		printlnFn("Tasks:", msg)
		board.ClearError()
		failed = true
	}
	if a.reportStatsError() {
		failed = true
	}
	return failed
}

func (a *App) reportStatsError() bool {
	stats := a.tasks().Statistics()
	if msg := stats.Error(); msg != "" {
		printlnFn("Statistics:", msg)
		stats.ClearError()
		return true
	}
	return false
}

func findTask(tasks []models.Task, id int64) (models.Task, bool) {
	for _, t := range tasks {
		if t.ID == id {
			return t, true
		}
	}
	return models.Task{}, false
}

func dueLabel(d *timex.LocalTime) string {
	if d == nil {
		return "none"
	}
	return d.String()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
