package cli

import (
	"fmt"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dmitrijs2005/taskdesk/internal/client/client"
	"github.com/dmitrijs2005/taskdesk/internal/client/models"
)

// now is a test seam for the overdue marker.
var now = time.Now

const maxTitleWidth = 40

var (
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	overdueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)

	priorityStyles = map[models.TaskPriority]lipgloss.Style{
		models.PriorityLow:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		models.PriorityMedium: lipgloss.NewStyle(),
		models.PriorityHigh:   lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		models.PriorityUrgent: lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
	}
)

func renderTasks(tasks []models.Task, at time.Time) string {
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		due := "-"
		if t.DueDate != nil {
			due = t.DueDate.String()
			if t.IsOverdue(at) {
				due = overdueStyle.Render(due + " overdue")
			}
		}
		rows = append(rows, []string{
			strconv.FormatInt(t.ID, 10),
			truncate(t.Title, maxTitleWidth),
			t.Status.Label(),
			priorityStyles[t.Priority].Render(t.Priority.Label()),
			due,
		})
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "TITLE", "STATUS", "PRIORITY", "DUE").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		String()
}

func renderStats(s models.TaskStats) string {
	rows := [][]string{
		{"Total", strconv.FormatInt(s.TotalTasks, 10)},
		{models.StatusPending.Label(), strconv.FormatInt(s.PendingTasks, 10)},
		{models.StatusInProgress.Label(), strconv.FormatInt(s.InProgressTasks, 10)},
		{models.StatusCompleted.Label(), strconv.FormatInt(s.CompletedTasks, 10)},
		{models.StatusCancelled.Label(), strconv.FormatInt(s.CancelledTasks, 10)},
		{"Overdue", strconv.FormatInt(s.OverdueTasks, 10)},
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		Rows(rows...).
		StyleFunc(func(int, int) lipgloss.Style { return cellStyle }).
		String()
}

func renderProbe(path string, res client.Result[string]) string {
	if res.OK {
		return fmt.Sprintf("%s %-18s %s", okStyle.Render("OK  "), path, truncate(res.Data, 60))
	}
	return fmt.Sprintf("%s %-18s %s (%s)", failStyle.Render("FAIL"), path, res.Err, res.Kind)
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-1]) + "…"
}
