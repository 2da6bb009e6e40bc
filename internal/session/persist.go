package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// recordSchema is the shape of the persisted record. Records failing this
// check are treated as "no session" rather than raised as errors, so a
// corrupt or hand-edited file cannot wedge startup.
const recordSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["isAuthenticated", "user"],
  "properties": {
    "isAuthenticated": {"type": "boolean"},
    "user": {
      "type": ["object", "null"],
      "required": ["id", "email"],
      "properties": {
        "id": {"type": "string"},
        "name": {"type": "string"},
        "email": {"type": "string"},
        "isEmailVerified": {"type": "boolean"},
        "createdAt": {"type": "string"}
      }
    }
  }
}`

var compiledRecordSchema = jsonschema.MustCompileString("session-record.schema.json", recordSchema)

// FilePersister stores the session record as a single JSON file.
type FilePersister struct {
	path string
}

// NewFilePersister creates a persister writing to the given file path,
// conventionally <state_dir>/session.json.
func NewFilePersister(path string) *FilePersister {
	return &FilePersister{path: path}
}

// Path returns the file the record is stored at.
func (p *FilePersister) Path() string {
	return p.path
}

// Load reads and validates the persisted record. A missing file returns
// (nil, nil); any other failure returns an error the store downgrades to
// "no session".
func (p *FilePersister) Load() (*Record, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read session file: %w", err)
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse session file: %w", err)
	}
	if err := compiledRecordSchema.Validate(raw); err != nil {
		return nil, fmt.Errorf("validate session file: %w", err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("parse session record: %w", err)
	}
	return &rec, nil
}

// Save writes the record with owner-only permissions.
func (p *FilePersister) Save(rec Record) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal session record: %w", err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(p.path), 0700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	if err := os.WriteFile(p.path, data, 0600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	return nil
}

// Clear removes the persisted record. A missing file is not an error.
func (p *FilePersister) Clear() error {
	if err := os.Remove(p.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}
