package query

import (
	"context"
	"io"

	"github.com/charmbracelet/log"

	"github.com/taskdeck/taskdeck/internal/api"
	"github.com/taskdeck/taskdeck/internal/todo"
)

// Todos wraps the API client with the query cache. Reads serve fresh cache
// entries without a request; mutations go straight to the server and, on
// success only, invalidate. A failed mutation leaves every cache entry
// untouched and surfaces the error to the caller, who decides whether to
// retry.
type Todos struct {
	client *api.Client
	cache  *cache
	logger *log.Logger
}

// Option configures a Todos layer.
type Option func(*Todos)

// WithLogger sets the logger used for cache activity.
func WithLogger(logger *log.Logger) Option {
	return func(t *Todos) {
		t.logger = logger
	}
}

// New creates the query layer over the given API client.
func New(client *api.Client, opts ...Option) *Todos {
	t := &Todos{
		client: client,
		cache:  newCache(),
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// InvalidateAll marks every cached entry stale so the next read of any key
// refetches. This backs user-driven refresh; mutations use the narrower
// invalidation below.
func (t *Todos) InvalidateAll() {
	t.cache.invalidateAll()
}

// List returns the collection for the given filters, from cache when fresh.
func (t *Todos) List(ctx context.Context, filters todo.Filters) ([]todo.Todo, error) {
	key := collectionKey(filters.Key())
	if v, ok := t.cache.get(key); ok {
		t.logger.Debug("cache hit", "key", key)
		return v.([]todo.Todo), nil
	}

	todos, err := t.client.ListTodos(ctx, filters)
	if err != nil {
		return nil, err
	}
	t.cache.put(key, todos)
	return todos, nil
}

// Get returns a single todo by id, from cache when fresh.
func (t *Todos) Get(ctx context.Context, id string) (*todo.Todo, error) {
	key := itemKey(id)
	if v, ok := t.cache.get(key); ok {
		t.logger.Debug("cache hit", "key", key)
		return v.(*todo.Todo), nil
	}

	item, err := t.client.GetTodo(ctx, id)
	if err != nil {
		return nil, err
	}
	t.cache.put(key, item)
	return item, nil
}

// Stats returns the server-computed aggregate, from cache when fresh.
func (t *Todos) Stats(ctx context.Context) (*todo.Stats, error) {
	if v, ok := t.cache.get(statsKey); ok {
		t.logger.Debug("cache hit", "key", statsKey)
		return v.(*todo.Stats), nil
	}

	stats, err := t.client.TodoStats(ctx)
	if err != nil {
		return nil, err
	}
	t.cache.put(statsKey, stats)
	return stats, nil
}

// Create creates a todo and invalidates every cached collection.
func (t *Todos) Create(ctx context.Context, draft todo.Draft) (*todo.Todo, error) {
	created, err := t.client.CreateTodo(ctx, draft)
	if err != nil {
		return nil, err
	}
	t.cache.invalidateCollections()
	return created, nil
}

// Update applies a partial update, then invalidates the collections and the
// item's own entry.
func (t *Todos) Update(ctx context.Context, id string, patch todo.Patch) (*todo.Todo, error) {
	updated, err := t.client.UpdateTodo(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	t.cache.invalidateCollections()
	t.cache.invalidate(itemKey(id))
	return updated, nil
}

// Delete removes a todo, then invalidates the collections and the item's
// own entry.
func (t *Todos) Delete(ctx context.Context, id string) error {
	if err := t.client.DeleteTodo(ctx, id); err != nil {
		return err
	}
	t.cache.invalidateCollections()
	t.cache.invalidate(itemKey(id))
	return nil
}

// Toggle flips a todo's status server-side. The returned todo is exactly
// what the server sent back; the flip is never computed locally.
func (t *Todos) Toggle(ctx context.Context, id string) (*todo.Todo, error) {
	toggled, err := t.client.ToggleTodo(ctx, id)
	if err != nil {
		return nil, err
	}
	t.cache.invalidateCollections()
	t.cache.invalidate(itemKey(id))
	return toggled, nil
}
