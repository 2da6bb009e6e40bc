package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/taskdeck/taskdeck/internal/todo"
)

func newListCommand(opts *RootOptions) *cobra.Command {
	var (
		status, priority, search string
		sortBy, sortOrder        string
		page, limit              int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List todos",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(opts)
			if err != nil {
				return err
			}
			if err := app.requireAuth(cmd.Context()); err != nil {
				return err
			}

			filters := todo.Filters{
				Status:    todo.Status(status),
				Priority:  todo.Priority(priority),
				Search:    search,
				SortBy:    sortBy,
				SortOrder: todo.SortOrder(sortOrder),
				Page:      page,
				Limit:     limit,
			}
			if filters.Status != "" && !filters.Status.Valid() {
				return fmt.Errorf("invalid status %q, must be one of: pending, done", status)
			}
			if filters.Priority != "" && !filters.Priority.Valid() {
				return fmt.Errorf("invalid priority %q, must be one of: low, medium, high", priority)
			}

			todos, err := app.Todos.List(cmd.Context(), filters)
			if err != nil {
				return err
			}
			if len(todos) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No todos.")
				return nil
			}
			for _, t := range todos {
				fmt.Fprintln(cmd.OutOrStdout(), formatTodoLine(&t))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "filter by status (pending|done)")
	cmd.Flags().StringVar(&priority, "priority", "", "filter by priority (low|medium|high)")
	cmd.Flags().StringVar(&search, "search", "", "search in title and description")
	cmd.Flags().StringVar(&sortBy, "sort-by", "", "sort field (createdAt|dueDate|priority)")
	cmd.Flags().StringVar(&sortOrder, "sort-order", "", "sort direction (asc|desc)")
	cmd.Flags().IntVar(&page, "page", 0, "result page")
	cmd.Flags().IntVar(&limit, "limit", 0, "page size")

	return cmd
}

func newShowCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one todo in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(opts)
			if err != nil {
				return err
			}
			if err := app.requireAuth(cmd.Context()); err != nil {
				return err
			}
			t, err := app.Todos.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatTodoDetail(t))
			return nil
		},
	}
}

func newAddCommand(opts *RootOptions) *cobra.Command {
	var description, priority, due string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a todo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(opts)
			if err != nil {
				return err
			}
			if err := app.requireAuth(cmd.Context()); err != nil {
				return err
			}

			draft := todo.Draft{
				Title:       args[0],
				Description: description,
				Priority:    todo.Priority(priority),
			}
			if due != "" {
				d, err := parseDueDate(due)
				if err != nil {
					return err
				}
				draft.DueDate = d
			}

			created, err := app.Todos.Create(cmd.Context(), draft)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", formatTodoLine(created))
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "desc", "", "description")
	cmd.Flags().StringVar(&priority, "priority", "", "priority (low|medium|high)")
	cmd.Flags().StringVar(&due, "due", "", "due date (YYYY-MM-DD or RFC 3339)")

	return cmd
}

func newEditCommand(opts *RootOptions) *cobra.Command {
	var title, description, status, priority, due string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Update fields of a todo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(opts)
			if err != nil {
				return err
			}
			if err := app.requireAuth(cmd.Context()); err != nil {
				return err
			}

			var patch todo.Patch
			if cmd.Flags().Changed("title") {
				patch.Title = &title
			}
			if cmd.Flags().Changed("desc") {
				patch.Description = &description
			}
			if cmd.Flags().Changed("status") {
				s := todo.Status(status)
				patch.Status = &s
			}
			if cmd.Flags().Changed("priority") {
				p := todo.Priority(priority)
				patch.Priority = &p
			}
			if cmd.Flags().Changed("due") {
				d, err := parseDueDate(due)
				if err != nil {
					return err
				}
				patch.DueDate = d
			}
			if patch.IsEmpty() {
				return fmt.Errorf("nothing to change, pass at least one of --title, --desc, --status, --priority, --due")
			}

			updated, err := app.Todos.Update(cmd.Context(), args[0], patch)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", formatTodoLine(updated))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVar(&description, "desc", "", "new description")
	cmd.Flags().StringVar(&status, "status", "", "new status (pending|done)")
	cmd.Flags().StringVar(&priority, "priority", "", "new priority (low|medium|high)")
	cmd.Flags().StringVar(&due, "due", "", "new due date (YYYY-MM-DD or RFC 3339)")

	return cmd
}

func newDoneCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Toggle a todo between pending and done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(opts)
			if err != nil {
				return err
			}
			if err := app.requireAuth(cmd.Context()); err != nil {
				return err
			}
			toggled, err := app.Todos.Toggle(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Now %s: %s\n", toggled.Status, formatTodoLine(toggled))
			return nil
		},
	}
}

func newRemoveCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete a todo",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(opts)
			if err != nil {
				return err
			}
			if err := app.requireAuth(cmd.Context()); err != nil {
				return err
			}
			if err := app.Todos.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Deleted.")
			return nil
		},
	}
}

func newStatsCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show todo counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(opts)
			if err != nil {
				return err
			}
			if err := app.requireAuth(cmd.Context()); err != nil {
				return err
			}
			stats, err := app.Todos.Stats(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatStats(stats))
			return nil
		},
	}
}

// parseDueDate accepts a bare date or a full RFC 3339 timestamp.
func parseDueDate(s string) (*time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return &t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	return nil, fmt.Errorf("invalid due date %q, use YYYY-MM-DD or RFC 3339", s)
}
