package services

import (
	"context"

	"github.com/dmitrijs2005/taskdesk/internal/client/models"
	"golang.org/x/sync/errgroup"
)

// TaskBoard combines the task list and its statistics. Mutations that can
// change the counters refresh the statistics after they succeed.
type TaskBoard struct {
	TaskService
	stats StatsService
}

func NewTaskBoard(tasks TaskService, stats StatsService) *TaskBoard {
	return &TaskBoard{TaskService: tasks, stats: stats}
}

func (b *TaskBoard) Statistics() StatsService { return b.stats }

func (b *TaskBoard) CreateTask(ctx context.Context, req models.TaskRequest) *models.Task {
	task := b.TaskService.CreateTask(ctx, req)
	if task != nil {
		b.stats.RefreshStats(ctx)
	}
	return task
}

// UpdateTask refreshes statistics only when the patch changes the status.
func (b *TaskBoard) UpdateTask(ctx context.Context, id int64, patch models.TaskUpdateRequest) *models.Task {
	task := b.TaskService.UpdateTask(ctx, id, patch)
	if task != nil && patch.Status != "" {
		b.stats.RefreshStats(ctx)
	}
	return task
}

func (b *TaskBoard) DeleteTask(ctx context.Context, id int64) bool {
	ok := b.TaskService.DeleteTask(ctx, id)
	if ok {
		b.stats.RefreshStats(ctx)
	}
	return ok
}

// LoadAll fetches tasks and statistics concurrently and waits for both.
func (b *TaskBoard) LoadAll(ctx context.Context) {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		b.LoadTasks(ctx)
		return nil
	})
	g.Go(func() error {
		b.stats.RefreshStats(ctx)
		return nil
	})
	_ = g.Wait()
}
