package models

// TaskStats is the aggregate returned by GET /tasks/stats.
type TaskStats struct {
	TotalTasks      int64 `json:"totalTasks"`
	PendingTasks    int64 `json:"pendingTasks"`
	InProgressTasks int64 `json:"inProgressTasks"`
	CompletedTasks  int64 `json:"completedTasks"`
	CancelledTasks  int64 `json:"cancelledTasks"`
	OverdueTasks    int64 `json:"overdueTasks"`
}
