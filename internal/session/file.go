package session

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// File is a recorded session ready to be imported.
type File struct {
	UserID   string    `json:"user_id"`
	Attempts []Attempt `json:"attempts"`
}

// InvalidFileError reports a session file that is not valid JSON or does
// not match the session file schema.
type InvalidFileError struct {
	Source string
	Err    error
}

func (e *InvalidFileError) Error() string {
	return fmt.Sprintf("invalid session file %s: %v", e.Source, e.Err)
}

func (e *InvalidFileError) Unwrap() error { return e.Err }

const fileSchemaURL = "schema://session-file.json"

const fileSchema = `{
  "type": "object",
  "required": ["user_id", "attempts"],
  "additionalProperties": false,
  "properties": {
    "user_id": {"type": "string", "minLength": 1},
    "attempts": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["operand1", "operand2", "is_correct", "response_time_ms"],
        "additionalProperties": false,
        "properties": {
          "operand1": {"type": "integer"},
          "operand2": {"type": "integer"},
          "user_answer": {"type": ["integer", "null"]},
          "is_correct": {"type": "boolean"},
          "response_time_ms": {"type": "integer", "minimum": 0},
          "incorrect_attempts": {"type": "integer", "minimum": 0},
          "attempted_at": {"type": "string"}
        }
      }
    }
  }
}`

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

func sessionSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		var def any
		if err := json.Unmarshal([]byte(fileSchema), &def); err != nil {
			compileErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(fileSchemaURL, def); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(fileSchemaURL)
	})
	return compiledSchema, compileErr
}

// Decode reads a session file from r, validating it against the session
// file schema before decoding. source names the input in errors.
func Decode(r io.Reader, source string) (*File, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", source, err)
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, &InvalidFileError{Source: source, Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	schema, err := sessionSchema()
	if err != nil {
		return nil, fmt.Errorf("compile session schema: %w", err)
	}
	if err := schema.Validate(parsed); err != nil {
		return nil, &InvalidFileError{Source: source, Err: fmt.Errorf("schema validation failed: %w", err)}
	}

	var f File
	if err := json.NewDecoder(bytes.NewReader(raw)).Decode(&f); err != nil {
		return nil, &InvalidFileError{Source: source, Err: err}
	}
	return &f, nil
}

// DecodeFile opens path and decodes it with Decode.
func DecodeFile(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open session file: %w", err)
	}
	defer fh.Close()
	return Decode(fh, path)
}
