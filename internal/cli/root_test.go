package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck/internal/todo"
)

func TestRootCommandHasSubcommands(t *testing.T) {
	cmd := NewRootCommand()

	want := []string{
		"register", "login", "logout", "whoami", "profile", "passwd",
		"list", "show", "add", "edit", "done", "rm", "stats", "tui",
	}
	names := make(map[string]bool)
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
	}
	for _, name := range want {
		assert.True(t, names[name], "missing subcommand %q", name)
	}
}

func TestRootCommandGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()
	for _, flag := range []string{"base-url", "state-dir", "log-level", "log-format"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), "missing flag %q", flag)
	}
}

func TestParseDueDate(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    time.Time
		wantErr bool
	}{
		{name: "date only", in: "2026-09-01", want: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)},
		{name: "rfc3339", in: "2026-09-01T17:30:00Z", want: time.Date(2026, 9, 1, 17, 30, 0, 0, time.UTC)},
		{name: "garbage", in: "next tuesday", wantErr: true},
		{name: "empty", in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDueDate(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "parseDueDate(%q) = %v, want %v", tt.in, got, tt.want)
		})
	}
}

func TestFormatTodoLine(t *testing.T) {
	due := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		td   todo.Todo
		want string
	}{
		{
			name: "pending with due date",
			td:   todo.Todo{ID: "t1", Title: "Buy milk", Status: todo.StatusPending, Priority: todo.PriorityHigh, DueDate: &due},
			want: "[ ] (H) Buy milk  t1  due 2026-09-01",
		},
		{
			name: "done",
			td:   todo.Todo{ID: "t2", Title: "Walk dog", Status: todo.StatusDone, Priority: todo.PriorityLow},
			want: "[x] (L) Walk dog  t2",
		},
		{
			name: "no priority",
			td:   todo.Todo{ID: "t3", Title: "Misc", Status: todo.StatusPending},
			want: "[ ] (-) Misc  t3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatTodoLine(&tt.td))
		})
	}
}

func TestFormatStats(t *testing.T) {
	out := formatStats(&todo.Stats{Total: 5, Pending: 3, Done: 2})
	assert.Equal(t, "Total:   5\nPending: 3\nDone:    2\n", out)
}
