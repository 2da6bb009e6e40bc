package cli

import (
	"fmt"
	"strings"

	"github.com/taskdeck/taskdeck/internal/todo"
)

// formatTodoLine renders a todo as a single list row.
func formatTodoLine(t *todo.Todo) string {
	statusIcon := " "
	if t.Status == todo.StatusDone {
		statusIcon = "x"
	}

	line := fmt.Sprintf("[%s] (%s) %s  %s", statusIcon, priorityTag(t.Priority), t.Title, t.ID)
	if t.DueDate != nil {
		line += fmt.Sprintf("  due %s", t.DueDate.Format("2006-01-02"))
	}
	return line
}

// formatTodoDetail renders the full record of a todo.
func formatTodoDetail(t *todo.Todo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", t.Title)
	fmt.Fprintf(&b, "  id:       %s\n", t.ID)
	fmt.Fprintf(&b, "  status:   %s\n", t.Status)
	fmt.Fprintf(&b, "  priority: %s\n", t.Priority)
	if t.Description != "" {
		fmt.Fprintf(&b, "  notes:    %s\n", t.Description)
	}
	if t.DueDate != nil {
		fmt.Fprintf(&b, "  due:      %s\n", t.DueDate.Format("2006-01-02"))
	}
	fmt.Fprintf(&b, "  created:  %s\n", t.CreatedAt.Format("2006-01-02 15:04"))
	fmt.Fprintf(&b, "  updated:  %s\n", t.UpdatedAt.Format("2006-01-02 15:04"))
	if t.CompletedAt != nil {
		fmt.Fprintf(&b, "  done at:  %s\n", t.CompletedAt.Format("2006-01-02 15:04"))
	}
	return b.String()
}

// formatStats renders the aggregate counts.
func formatStats(s *todo.Stats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Total:   %d\n", s.Total)
	fmt.Fprintf(&b, "Pending: %d\n", s.Pending)
	fmt.Fprintf(&b, "Done:    %d\n", s.Done)
	return b.String()
}

func priorityTag(p todo.Priority) string {
	switch p {
	case todo.PriorityHigh:
		return "H"
	case todo.PriorityMedium:
		return "M"
	case todo.PriorityLow:
		return "L"
	}
	return "-"
}
