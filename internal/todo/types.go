package todo

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// Status represents a todo completion status.
type Status string

const (
	StatusPending Status = "pending"
	StatusDone    Status = "done"
)

// Valid reports whether s is a status the server accepts.
func (s Status) Valid() bool {
	return s == StatusPending || s == StatusDone
}

// Priority represents a todo priority level.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether p is a priority the server accepts.
func (p Priority) Valid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// Todo is a single todo item as returned by the server.
type Todo struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      Status     `json:"status"`
	Priority    Priority   `json:"priority"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// UnmarshalJSON accepts both "id" and the Mongo-style "_id" the server emits.
func (t *Todo) UnmarshalJSON(data []byte) error {
	type alias Todo
	aux := struct {
		*alias
		MongoID string `json:"_id"`
	}{alias: (*alias)(t)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if t.ID == "" {
		t.ID = aux.MongoID
	}
	return nil
}

// IsZero returns true if the todo is empty (has no ID).
func (t *Todo) IsZero() bool {
	return t.ID == ""
}

// Draft holds the fields accepted by the create endpoint.
type Draft struct {
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Priority    Priority   `json:"priority,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
}

// Validate performs the client-side pre-flight checks. The server remains
// the authority; this only catches requests that cannot possibly succeed.
func (d *Draft) Validate() error {
	if d.Title == "" {
		return fmt.Errorf("title is required")
	}
	if d.Priority != "" && !d.Priority.Valid() {
		return fmt.Errorf("invalid priority %q, must be one of: low, medium, high", d.Priority)
	}
	return nil
}

// Patch holds a partial update. Nil fields are omitted from the request so
// the server leaves them untouched.
type Patch struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Status      *Status    `json:"status,omitempty"`
	Priority    *Priority  `json:"priority,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
}

// IsEmpty returns true if the patch changes nothing.
func (p *Patch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil &&
		p.Priority == nil && p.DueDate == nil
}

// Validate checks the patched values the same way Draft.Validate does.
func (p *Patch) Validate() error {
	if p.Title != nil && *p.Title == "" {
		return fmt.Errorf("title cannot be empty")
	}
	if p.Status != nil && !p.Status.Valid() {
		return fmt.Errorf("invalid status %q, must be one of: pending, done", *p.Status)
	}
	if p.Priority != nil && !p.Priority.Valid() {
		return fmt.Errorf("invalid priority %q, must be one of: low, medium, high", *p.Priority)
	}
	return nil
}

// SortOrder is the direction of a collection sort.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Filters holds the query parameters of the collection endpoint. The zero
// value means "no filtering" and is a valid query.
type Filters struct {
	Status    Status
	Priority  Priority
	Search    string
	SortBy    string
	SortOrder SortOrder
	Page      int
	Limit     int
}

// Values encodes the filters as URL query parameters. Zero-valued fields are
// omitted, matching what the server treats as "not filtered".
func (f Filters) Values() url.Values {
	q := url.Values{}
	if f.Status != "" {
		q.Set("status", string(f.Status))
	}
	if f.Priority != "" {
		q.Set("priority", string(f.Priority))
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.SortBy != "" {
		q.Set("sortBy", f.SortBy)
	}
	if f.SortOrder != "" {
		q.Set("sortOrder", string(f.SortOrder))
	}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	return q
}

// Key returns the canonical serialization of the filters. url.Values.Encode
// sorts by key, so any two Filters with the same effective parameters
// produce the same key regardless of how they were built.
func (f Filters) Key() string {
	return f.Values().Encode()
}

// Stats is the server-computed aggregate over the caller's todos.
type Stats struct {
	Total   int `json:"total"`
	Pending int `json:"pending"`
	Done    int `json:"done"`
}
