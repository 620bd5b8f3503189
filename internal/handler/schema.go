package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 64 << 10

const createStudentSchema = `{
  "type": "object",
  "properties": {
    "name": {"type": "string", "maxLength": 64}
  },
  "additionalProperties": false
}`

const difficultySchema = `{
  "type": "object",
  "properties": {
    "difficulty": {"enum": ["easy", "medium", "hard"]}
  },
  "required": ["difficulty"],
  "additionalProperties": false
}`

const solveSchema = `{
  "type": "object",
  "properties": {
    "topic": {"enum": ["addition", "subtraction", "multiplication", "division"]},
    "num1": {"type": "integer", "minimum": 0, "maximum": 10000},
    "num2": {"type": "integer", "minimum": 0, "maximum": 10000},
    "answer": {"type": "string", "minLength": 1, "maxLength": 32},
    "correct": {"type": "boolean"},
    "responseMs": {"type": "integer", "minimum": 0},
    "hintsUsed": {"type": "integer", "minimum": 0, "maximum": 10},
    "difficulty": {"enum": ["easy", "medium", "hard"]}
  },
  "required": ["topic", "num1", "num2"],
  "anyOf": [{"required": ["answer"]}, {"required": ["correct"]}],
  "additionalProperties": false
}`

const drillSchema = `{
  "type": "object",
  "properties": {
    "topic": {"enum": ["addition", "subtraction", "multiplication", "division"]},
    "correct": {"type": "integer", "minimum": 0},
    "attempted": {"type": "integer", "minimum": 1},
    "durationMs": {"type": "integer", "minimum": 0}
  },
  "required": ["topic", "correct", "attempted"],
  "additionalProperties": false
}`

type schemas struct {
	createStudent *jsonschema.Schema
	difficulty    *jsonschema.Schema
	solve         *jsonschema.Schema
	drill         *jsonschema.Schema
}

func compileSchemas() (*schemas, error) {
	c := jsonschema.NewCompiler()
	compile := func(name, src string) (*jsonschema.Schema, error) {
		doc, err := jsonschema.UnmarshalJSON(strings.NewReader(src))
		if err != nil {
			return nil, fmt.Errorf("parse schema %s: %w", name, err)
		}
		url := fmt.Sprintf("schema://%s.json", name)
		if err := c.AddResource(url, doc); err != nil {
			return nil, fmt.Errorf("add schema %s: %w", name, err)
		}
		sch, err := c.Compile(url)
		if err != nil {
			return nil, fmt.Errorf("compile schema %s: %w", name, err)
		}
		return sch, nil
	}

	var (
		s   schemas
		err error
	)
	if s.createStudent, err = compile("create-student", createStudentSchema); err != nil {
		return nil, err
	}
	if s.difficulty, err = compile("difficulty", difficultySchema); err != nil {
		return nil, err
	}
	if s.solve, err = compile("solve", solveSchema); err != nil {
		return nil, err
	}
	if s.drill, err = compile("drill", drillSchema); err != nil {
		return nil, err
	}
	return &s, nil
}

// decodeBody validates the request body against sch and decodes it into
// dst. An empty body is validated as an empty object.
func decodeBody(w http.ResponseWriter, r *http.Request, sch *jsonschema.Schema, dst any) error {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("read body: %v: %w", err, errBadRequest)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		body = []byte("{}")
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("invalid JSON: %v: %w", err, errBadRequest)
	}
	if err := sch.Validate(inst); err != nil {
		return fmt.Errorf("invalid request: %s: %w", oneLine(err.Error()), errBadRequest)
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("decode body: %v: %w", err, errBadRequest)
	}
	return nil
}

// oneLine collapses the multi-line validation report.
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
