package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/taskdesk/internal/timex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestTask_DecodesBackendPayload(t *testing.T) {
	payload := `{
		"id": 7,
		"title": "A",
		"description": null,
		"status": "PENDING",
		"priority": "HIGH",
		"dueDate": "2025-02-01T09:00:00",
		"createdAt": "2025-01-01T10:00:00.123",
		"updatedAt": "2025-01-02T10:00:00",
		"completedAt": null,
		"userId": 3,
		"username": "alice"
	}`

	var task Task
	require.NoError(t, json.Unmarshal([]byte(payload), &task))

	assert.Equal(t, int64(7), task.ID)
	assert.Nil(t, task.Description)
	assert.Equal(t, StatusPending, task.Status)
	assert.Equal(t, PriorityHigh, task.Priority)
	require.NotNil(t, task.DueDate)
	assert.True(t, time.Date(2025, 2, 1, 9, 0, 0, 0, time.Local).Equal(task.DueDate.Time))
	assert.Nil(t, task.CompletedAt)
	assert.Equal(t, int64(3), task.OwnerID)
	assert.Equal(t, "alice", task.OwnerName)
}

func TestTask_IsOverdue(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.Local)
	due := func(d time.Time) *timex.LocalTime { return &timex.LocalTime{Time: d} }

	tests := []struct {
		name string
		task Task
		want bool
	}{
		{name: "no due date", task: Task{Status: StatusPending}},
		{name: "due earlier today is overdue", task: Task{Status: StatusPending, DueDate: due(now.Add(-time.Hour))}, want: true},
		{name: "due later today is not", task: Task{Status: StatusInProgress, DueDate: due(now.Add(time.Hour))}},
		{name: "exactly now is not", task: Task{Status: StatusPending, DueDate: due(now)}},
		{name: "completed never overdue", task: Task{Status: StatusCompleted, DueDate: due(now.AddDate(0, 0, -3))}},
		{name: "cancelled never overdue", task: Task{Status: StatusCancelled, DueDate: due(now.AddDate(0, 0, -3))}},
		{name: "in progress past due", task: Task{Status: StatusInProgress, DueDate: due(now.AddDate(0, 0, -1))}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.task.IsOverdue(now))
		})
	}
}

func TestTaskRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     TaskRequest
		wantErr string
	}{
		{name: "ok", req: TaskRequest{Title: "Write report", Priority: PriorityHigh}},
		{name: "blank title", req: TaskRequest{Title: "   "}, wantErr: "title: title is required"},
		{name: "title at limit", req: TaskRequest{Title: strings.Repeat("é", MaxTitleLength)}},
		{name: "title too long", req: TaskRequest{Title: strings.Repeat("x", MaxTitleLength+1)}, wantErr: "title must not exceed 255 characters"},
		{name: "description too long", req: TaskRequest{Title: "x", Description: ptr(strings.Repeat("d", MaxDescriptionLength+1))}, wantErr: "description must not exceed 1000 characters"},
		{name: "bad status", req: TaskRequest{Title: "x", Status: "DONE"}, wantErr: `unknown status "DONE"`},
		{name: "bad priority", req: TaskRequest{Title: "x", Priority: "LATER"}, wantErr: `unknown priority "LATER"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrValidation)
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestTaskUpdateRequest_Validate(t *testing.T) {
	require.NoError(t, TaskUpdateRequest{}.Validate())
	require.NoError(t, TaskUpdateRequest{Status: StatusCompleted}.Validate())
	require.ErrorIs(t, TaskUpdateRequest{Title: ptr(" ")}.Validate(), ErrValidation)
	require.ErrorIs(t, TaskUpdateRequest{Status: "later"}.Validate(), ErrValidation)
}

func TestTaskUpdateRequest_OmitsUnsetFields(t *testing.T) {
	b, err := json.Marshal(TaskUpdateRequest{Status: StatusCompleted})
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"COMPLETED"}`, string(b))
}

func TestParseEnums(t *testing.T) {
	st, err := ParseTaskStatus("in-progress")
	require.NoError(t, err)
	assert.Equal(t, StatusInProgress, st)

	_, err = ParseTaskStatus("done")
	require.Error(t, err)

	p, err := ParseTaskPriority(" urgent ")
	require.NoError(t, err)
	assert.Equal(t, PriorityUrgent, p)

	_, err = ParseTaskPriority("")
	require.Error(t, err)
}

func TestRegisterRequest_Validate(t *testing.T) {
	ok := RegisterRequest{Username: "bob", Email: "bob@example.com", Password: "pw", ConfirmPassword: "pw"}
	require.NoError(t, ok.Validate())

	mismatch := ok
	mismatch.ConfirmPassword = "other"
	require.ErrorIs(t, mismatch.Validate(), ErrPasswordMismatch)

	require.ErrorIs(t, RegisterRequest{}.Validate(), ErrValidation)
}

func TestRole_Elevated(t *testing.T) {
	assert.True(t, RoleAdmin.Elevated())
	assert.False(t, RoleUser.Elevated())
	assert.False(t, Role("").Elevated())
}

func TestAuthResponse_Profile(t *testing.T) {
	resp := AuthResponse{Token: "t", Type: "Bearer", ID: 5, Username: "u", Email: "e", Role: RoleAdmin}
	assert.Equal(t, UserProfile{ID: 5, Username: "u", Email: "e", Role: RoleAdmin}, resp.Profile())
}
