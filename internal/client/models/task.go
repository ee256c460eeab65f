package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/taskdesk/internal/timex"
)

const (
	MaxTitleLength       = 255
	MaxDescriptionLength = 1000
)

type TaskStatus string

const (
	StatusPending    TaskStatus = "PENDING"
	StatusInProgress TaskStatus = "IN_PROGRESS"
	StatusCompleted  TaskStatus = "COMPLETED"
	StatusCancelled  TaskStatus = "CANCELLED"
)

var TaskStatuses = []TaskStatus{StatusPending, StatusInProgress, StatusCompleted, StatusCancelled}

func (s TaskStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

func (s TaskStatus) Label() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusInProgress:
		return "In progress"
	case StatusCompleted:
		return "Completed"
	case StatusCancelled:
		return "Cancelled"
	default:
		return string(s)
	}
}

// ParseTaskStatus accepts any letter case and '-' or ' ' in place of '_'.
func ParseTaskStatus(s string) (TaskStatus, error) {
	st := TaskStatus(normalizeEnum(s))
	if !st.Valid() {
		return "", fmt.Errorf("unknown status %q", s)
	}
	return st, nil
}

type TaskPriority string

const (
	PriorityLow    TaskPriority = "LOW"
	PriorityMedium TaskPriority = "MEDIUM"
	PriorityHigh   TaskPriority = "HIGH"
	PriorityUrgent TaskPriority = "URGENT"
)

var TaskPriorities = []TaskPriority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

func (p TaskPriority) Label() string {
	switch p {
	case PriorityLow:
		return "Low"
	case PriorityMedium:
		return "Medium"
	case PriorityHigh:
		return "High"
	case PriorityUrgent:
		return "Urgent"
	default:
		return string(p)
	}
}

func ParseTaskPriority(s string) (TaskPriority, error) {
	p := TaskPriority(normalizeEnum(s))
	if !p.Valid() {
		return "", fmt.Errorf("unknown priority %q", s)
	}
	return p, nil
}

func normalizeEnum(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	return strings.NewReplacer("-", "_", " ", "_").Replace(s)
}

// Task is the client's working copy of a server-owned task record.
type Task struct {
	ID          int64            `json:"id"`
	Title       string           `json:"title"`
	Description *string          `json:"description,omitempty"`
	Status      TaskStatus       `json:"status"`
	Priority    TaskPriority     `json:"priority"`
	DueDate     *timex.LocalTime `json:"dueDate,omitempty"`
	CreatedAt   timex.LocalTime  `json:"createdAt"`
	UpdatedAt   timex.LocalTime  `json:"updatedAt"`
	CompletedAt *timex.LocalTime `json:"completedAt,omitempty"`
	OwnerID     int64            `json:"userId"`
	OwnerName   string           `json:"username"`
}

// IsOverdue reports whether the task has a due date strictly before now
// and is still open. The comparison uses the full date-time, matching the
// backend's overdue query, so it agrees with TaskStats.OverdueTasks.
func (t Task) IsOverdue(now time.Time) bool {
	if t.DueDate == nil || t.DueDate.IsZero() {
		return false
	}
	if t.Status == StatusCompleted || t.Status == StatusCancelled {
		return false
	}
	return t.DueDate.Before(now)
}

// TaskRequest is the create payload. Status and priority default on the
// server to PENDING and MEDIUM when omitted.
type TaskRequest struct {
	Title       string           `json:"title"`
	Description *string          `json:"description,omitempty"`
	Status      TaskStatus       `json:"status,omitempty"`
	Priority    TaskPriority     `json:"priority,omitempty"`
	DueDate     *timex.LocalTime `json:"dueDate,omitempty"`
}

// Normalize trims the title the way the task form does before sending.
func (r TaskRequest) Normalize() TaskRequest {
	r.Title = strings.TrimSpace(r.Title)
	return r
}

func (r TaskRequest) Validate() error {
	var errs []error
	if title := strings.TrimSpace(r.Title); title == "" {
		errs = append(errs, &ValidationError{Field: "title", Message: "title is required"})
	} else if utf8.RuneCountInString(title) > MaxTitleLength {
		errs = append(errs, &ValidationError{Field: "title", Message: fmt.Sprintf("title must not exceed %d characters", MaxTitleLength)})
	}
	errs = append(errs, validateCommon(r.Description, r.Status, r.Priority)...)
	return errors.Join(errs...)
}

// TaskUpdateRequest is a partial update; nil or empty fields are left
// unchanged by the server.
type TaskUpdateRequest struct {
	Title       *string          `json:"title,omitempty"`
	Description *string          `json:"description,omitempty"`
	Status      TaskStatus       `json:"status,omitempty"`
	Priority    TaskPriority     `json:"priority,omitempty"`
	DueDate     *timex.LocalTime `json:"dueDate,omitempty"`
}

func (r TaskUpdateRequest) Validate() error {
	var errs []error
	if r.Title != nil {
		title := strings.TrimSpace(*r.Title)
		switch {
		case title == "":
			errs = append(errs, &ValidationError{Field: "title", Message: "title must not be blank"})
		case utf8.RuneCountInString(title) > MaxTitleLength:
			errs = append(errs, &ValidationError{Field: "title", Message: fmt.Sprintf("title must not exceed %d characters", MaxTitleLength)})
		}
	}
	errs = append(errs, validateCommon(r.Description, r.Status, r.Priority)...)
	return errors.Join(errs...)
}

func validateCommon(description *string, status TaskStatus, priority TaskPriority) []error {
	var errs []error
	if description != nil && utf8.RuneCountInString(*description) > MaxDescriptionLength {
		errs = append(errs, &ValidationError{Field: "description", Message: fmt.Sprintf("description must not exceed %d characters", MaxDescriptionLength)})
	}
	if status != "" && !status.Valid() {
		errs = append(errs, &ValidationError{Field: "status", Message: fmt.Sprintf("unknown status %q", status)})
	}
	if priority != "" && !priority.Valid() {
		errs = append(errs, &ValidationError{Field: "priority", Message: fmt.Sprintf("unknown priority %q", priority)})
	}
	return errs
}
