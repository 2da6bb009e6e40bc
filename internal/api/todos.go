package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/taskdeck/taskdeck/internal/todo"
)

// ListTodos fetches the collection matching the given filters.
func (c *Client) ListTodos(ctx context.Context, filters todo.Filters) ([]todo.Todo, error) {
	path := "/todos"
	if q := filters.Key(); q != "" {
		path += "?" + q
	}
	var todos []todo.Todo
	if err := c.get(ctx, path, &todos); err != nil {
		return nil, err
	}
	return todos, nil
}

// GetTodo fetches a single todo by id.
func (c *Client) GetTodo(ctx context.Context, id string) (*todo.Todo, error) {
	if id == "" {
		return nil, fmt.Errorf("todo id is empty")
	}
	var t todo.Todo
	if err := c.get(ctx, "/todos/"+url.PathEscape(id), &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// CreateTodo creates a new todo and returns the server's copy of it.
func (c *Client) CreateTodo(ctx context.Context, draft todo.Draft) (*todo.Todo, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}
	var t todo.Todo
	if err := c.post(ctx, "/todos", draft, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// UpdateTodo applies a partial update and returns the resulting todo.
func (c *Client) UpdateTodo(ctx context.Context, id string, patch todo.Patch) (*todo.Todo, error) {
	if id == "" {
		return nil, fmt.Errorf("todo id is empty")
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	var t todo.Todo
	if err := c.put(ctx, "/todos/"+url.PathEscape(id), patch, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// DeleteTodo removes a todo.
func (c *Client) DeleteTodo(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("todo id is empty")
	}
	return c.delete(ctx, "/todos/"+url.PathEscape(id))
}

// ToggleTodo flips a todo between pending and done server-side and returns
// the result. The new status is whatever the server says it is; the client
// never computes the flip locally.
func (c *Client) ToggleTodo(ctx context.Context, id string) (*todo.Todo, error) {
	if id == "" {
		return nil, fmt.Errorf("todo id is empty")
	}
	var t todo.Todo
	if err := c.patch(ctx, "/todos/"+url.PathEscape(id)+"/toggle", nil, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// TodoStats fetches the server-computed aggregate counts.
func (c *Client) TodoStats(ctx context.Context) (*todo.Stats, error) {
	var s todo.Stats
	if err := c.get(ctx, "/todos/stats", &s); err != nil {
		return nil, err
	}
	return &s, nil
}
