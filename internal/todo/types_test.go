package todo

import (
	"encoding/json"
	"testing"
	"time"
)

func TestFiltersKeyCanonical(t *testing.T) {
	tests := []struct {
		name string
		f    Filters
		want string
	}{
		{
			name: "empty filters",
			f:    Filters{},
			want: "",
		},
		{
			name: "status only",
			f:    Filters{Status: StatusPending},
			want: "status=pending",
		},
		{
			name: "all fields sorted by key",
			f: Filters{
				Status:    StatusDone,
				Priority:  PriorityHigh,
				Search:    "milk",
				SortBy:    "dueDate",
				SortOrder: SortDesc,
				Page:      2,
				Limit:     25,
			},
			want: "limit=25&page=2&priority=high&search=milk&sortBy=dueDate&sortOrder=desc&status=done",
		},
		{
			name: "search is escaped",
			f:    Filters{Search: "a b&c"},
			want: "search=a+b%26c",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.f.Key(); got != tt.want {
				t.Errorf("Key() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFiltersKeyIdentity(t *testing.T) {
	// Two filter values with the same effective parameters must cache under
	// the same key.
	a := Filters{Status: StatusPending, Limit: 10}
	b := Filters{Limit: 10, Status: StatusPending}
	if a.Key() != b.Key() {
		t.Errorf("equivalent filters produced different keys: %q vs %q", a.Key(), b.Key())
	}
}

func TestTodoUnmarshalMongoID(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain id", in: `{"id":"abc","title":"x","status":"pending","priority":"low"}`, want: "abc"},
		{name: "mongo id", in: `{"_id":"abc","title":"x","status":"pending","priority":"low"}`, want: "abc"},
		{name: "id wins over _id", in: `{"id":"abc","_id":"def","title":"x","status":"pending","priority":"low"}`, want: "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var td Todo
			if err := json.Unmarshal([]byte(tt.in), &td); err != nil {
				t.Fatalf("Unmarshal failed: %v", err)
			}
			if td.ID != tt.want {
				t.Errorf("ID = %q, want %q", td.ID, tt.want)
			}
		})
	}
}

func TestTodoUnmarshalFull(t *testing.T) {
	in := `{
		"_id": "66f2a9c1",
		"title": "Buy milk",
		"description": "2%",
		"status": "done",
		"priority": "high",
		"createdAt": "2026-08-20T09:12:44Z",
		"updatedAt": "2026-08-21T10:00:00Z",
		"completedAt": "2026-08-21T10:00:00Z"
	}`

	var td Todo
	if err := json.Unmarshal([]byte(in), &td); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if td.Status != StatusDone {
		t.Errorf("Status = %q, want done", td.Status)
	}
	if td.Priority != PriorityHigh {
		t.Errorf("Priority = %q, want high", td.Priority)
	}
	if td.CompletedAt == nil {
		t.Fatal("CompletedAt = nil, want set")
	}
	want := time.Date(2026, 8, 21, 10, 0, 0, 0, time.UTC)
	if !td.CompletedAt.Equal(want) {
		t.Errorf("CompletedAt = %v, want %v", td.CompletedAt, want)
	}
}

func TestDraftValidate(t *testing.T) {
	tests := []struct {
		name    string
		draft   Draft
		wantErr bool
	}{
		{name: "valid", draft: Draft{Title: "x", Priority: PriorityLow}, wantErr: false},
		{name: "no priority is fine", draft: Draft{Title: "x"}, wantErr: false},
		{name: "missing title", draft: Draft{Priority: PriorityLow}, wantErr: true},
		{name: "bad priority", draft: Draft{Title: "x", Priority: "urgent"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.draft.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestPatchValidate(t *testing.T) {
	empty := ""
	bad := Status("later")
	done := StatusDone

	tests := []struct {
		name    string
		patch   Patch
		wantErr bool
	}{
		{name: "empty patch is valid", patch: Patch{}, wantErr: false},
		{name: "status done", patch: Patch{Status: &done}, wantErr: false},
		{name: "empty title rejected", patch: Patch{Title: &empty}, wantErr: true},
		{name: "bad status rejected", patch: Patch{Status: &bad}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.patch.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestPatchIsEmpty(t *testing.T) {
	if !(&Patch{}).IsEmpty() {
		t.Error("zero patch should be empty")
	}
	title := "x"
	if (&Patch{Title: &title}).IsEmpty() {
		t.Error("patch with title should not be empty")
	}
}
