// Package ui provides the interactive terminal view over the todo service.
//
// The TUI is a guarded view: callers run the auth guard before starting it,
// and quitting cancels the program context, which also cancels any
// revalidation delay still pending.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/taskdeck/taskdeck/internal/query"
	"github.com/taskdeck/taskdeck/internal/todo"
)

// Run starts the TUI over the given query layer. It blocks until the user
// quits or ctx is cancelled.
func Run(ctx context.Context, todos *query.Todos) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}
	model := newModel(ctx, todos)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

type todosMsg struct {
	items []todo.Todo
}

type mutatedMsg struct{}

type errMsg struct {
	err error
}

type model struct {
	ctx    context.Context
	todos  *query.Todos
	filter todo.Status

	items   []todo.Todo
	cursor  int
	loading bool
	lastErr error

	adding bool
	input  textinput.Model
	spin   spinner.Model

	showHelp bool
}

func newModel(ctx context.Context, todos *query.Todos) *model {
	input := textinput.New()
	input.Placeholder = "new todo title"
	input.CharLimit = 200

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	return &model{
		ctx:   ctx,
		todos: todos,
		input: input,
		spin:  spin,
	}
}

func (m *model) Init() tea.Cmd {
	m.loading = true
	return tea.Batch(m.spin.Tick, m.fetchCmd())
}

// fetchCmd loads the collection for the active filter. The query layer
// serves fresh cache entries without a request, so switching back and forth
// between filters is instant until a mutation invalidates them.
func (m *model) fetchCmd() tea.Cmd {
	filters := todo.Filters{Status: m.filter}
	return func() tea.Msg {
		items, err := m.todos.List(m.ctx, filters)
		if err != nil {
			return errMsg{err: err}
		}
		return todosMsg{items: items}
	}
}

func (m *model) toggleCmd(id string) tea.Cmd {
	return func() tea.Msg {
		if _, err := m.todos.Toggle(m.ctx, id); err != nil {
			return errMsg{err: err}
		}
		return mutatedMsg{}
	}
}

func (m *model) deleteCmd(id string) tea.Cmd {
	return func() tea.Msg {
		if err := m.todos.Delete(m.ctx, id); err != nil {
			return errMsg{err: err}
		}
		return mutatedMsg{}
	}
}

func (m *model) createCmd(title string) tea.Cmd {
	return func() tea.Msg {
		if _, err := m.todos.Create(m.ctx, todo.Draft{Title: title}); err != nil {
			return errMsg{err: err}
		}
		return mutatedMsg{}
	}
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.adding {
			return m.updateAdding(msg)
		}
		return m.updateBrowsing(msg)

	case todosMsg:
		m.loading = false
		m.lastErr = nil
		m.items = msg.items
		if m.cursor >= len(m.items) {
			m.cursor = len(m.items) - 1
		}
		if m.cursor < 0 {
			m.cursor = 0
		}
		return m, nil

	case mutatedMsg:
		// The mutation already invalidated the cache, so this fetch hits
		// the server and reflects its truth.
		m.loading = true
		return m, m.fetchCmd()

	case errMsg:
		m.loading = false
		m.lastErr = msg.err
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *model) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "h", "?":
		m.showHelp = !m.showHelp
		return m, nil
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down", "j":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
		return m, nil
	case "1":
		m.filter = todo.StatusPending
		m.loading = true
		return m, m.fetchCmd()
	case "2":
		m.filter = todo.StatusDone
		m.loading = true
		return m, m.fetchCmd()
	case "0":
		m.filter = ""
		m.loading = true
		return m, m.fetchCmd()
	case "r", "f5":
		m.todos.InvalidateAll()
		m.loading = true
		return m, m.fetchCmd()
	case " ", "enter":
		if t := m.selected(); t != nil {
			return m, m.toggleCmd(t.ID)
		}
		return m, nil
	case "d", "x":
		if t := m.selected(); t != nil {
			return m, m.deleteCmd(t.ID)
		}
		return m, nil
	case "a":
		m.adding = true
		m.input.SetValue("")
		return m, m.input.Focus()
	}
	return m, nil
}

func (m *model) updateAdding(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.adding = false
		m.input.Blur()
		return m, nil
	case "enter":
		title := m.input.Value()
		m.adding = false
		m.input.Blur()
		if title == "" {
			return m, nil
		}
		return m, m.createCmd(title)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *model) selected() *todo.Todo {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return nil
	}
	return &m.items[m.cursor]
}

func (m *model) View() string {
	if m.showHelp {
		return titleStyle.Render("taskdeck") + "\n\n" + renderHelp() + footer()
	}

	var body string
	switch {
	case m.loading:
		body = fmt.Sprintf("%s fetching...\n", m.spin.View())
	default:
		body = renderBody(m.items, m.cursor, m.filter, m.lastErr)
	}

	view := titleStyle.Render("taskdeck") + "\n\n" + body
	if m.adding {
		view += "\n" + promptStyle.Render("add: ") + m.input.View() + "\n"
	}
	return view + footer()
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
