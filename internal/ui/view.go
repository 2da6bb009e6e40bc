package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/taskdeck/taskdeck/internal/todo"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	promptStyle = lipgloss.NewStyle().Bold(true)
	helpStyle   = lipgloss.NewStyle().Faint(true)
)

// renderBody renders the list area as plain text. Kept free of styling so
// the output is deterministic and testable.
func renderBody(items []todo.Todo, cursor int, filter todo.Status, lastErr error) string {
	var b strings.Builder

	writeOverview(&b, items, filter)

	if lastErr != nil {
		b.WriteString("error: " + lastErr.Error() + "\n\n")
	}

	if len(items) == 0 {
		b.WriteString("  nothing here\n")
		return b.String()
	}

	for i := range items {
		writeRow(&b, &items[i], i == cursor)
	}
	return b.String()
}

func writeOverview(b *strings.Builder, items []todo.Todo, filter todo.Status) {
	pending, done := 0, 0
	for _, t := range items {
		if t.Status == todo.StatusDone {
			done++
		} else {
			pending++
		}
	}
	label := "all"
	if filter != "" {
		label = string(filter)
	}
	fmt.Fprintf(b, "showing %s | pending: %d  done: %d\n\n", label, pending, done)
}

func writeRow(b *strings.Builder, t *todo.Todo, selected bool) {
	prefix := "  "
	if selected {
		prefix = "> "
	}

	check := "[ ]"
	if t.Status == todo.StatusDone {
		check = "[x]"
	}

	fmt.Fprintf(b, "%s%s %s %s", prefix, check, priorityMark(t.Priority), t.Title)
	if t.DueDate != nil {
		fmt.Fprintf(b, "  (due %s)", t.DueDate.Format("2006-01-02"))
	}
	b.WriteString("\n")
}

func priorityMark(p todo.Priority) string {
	switch p {
	case todo.PriorityHigh:
		return "!!!"
	case todo.PriorityMedium:
		return " !!"
	case todo.PriorityLow:
		return "  !"
	}
	return "   "
}

func renderHelp() string {
	var b strings.Builder
	b.WriteString("Keyboard Shortcuts\n\n")
	b.WriteString("  q, ctrl+c    Quit\n")
	b.WriteString("  j/k, arrows  Move selection\n")
	b.WriteString("  space, enter Toggle pending/done\n")
	b.WriteString("  a            Add a todo\n")
	b.WriteString("  d, x         Delete selection\n")
	b.WriteString("  1            Show pending only\n")
	b.WriteString("  2            Show done only\n")
	b.WriteString("  0            Show everything\n")
	b.WriteString("  r, F5        Refetch from server\n")
	b.WriteString("  h, ?         Toggle this help screen\n")
	return b.String()
}

func footer() string {
	return "\n" + helpStyle.Render("h help | r refresh | q quit") + "\n"
}
