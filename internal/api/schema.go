package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/abhisek/thoughtchain/internal/cot"
)

// errInvalidRequest is wrapped by every request validation failure.
var errInvalidRequest = errors.New("invalid request")

// Request body schemas, keyed by name.
var requestSchemas = map[string]map[string]any{
	"classify": {
		"type":                 "object",
		"required":             []any{"problem"},
		"additionalProperties": false,
		"properties": map[string]any{
			"problem": map[string]any{"type": "string"},
		},
	},
	"segment": {
		"type":                 "object",
		"required":             []any{"text"},
		"additionalProperties": false,
		"properties": map[string]any{
			"text": map[string]any{"type": "string"},
		},
	},
	"solve": {
		"type":                 "object",
		"required":             []any{"problem"},
		"additionalProperties": false,
		"properties": map[string]any{
			"problem": map[string]any{"type": "string", "minLength": 1},
			"max_tokens": map[string]any{
				"type":    "integer",
				"minimum": cot.MinMaxTokens,
				"maximum": cot.MaxMaxTokens,
			},
			"temperature": map[string]any{"type": "number", "minimum": 0, "maximum": 1},
			"category": map[string]any{
				"type": "string",
				"enum": []any{"math", "logic", "riddle", "general"},
			},
		},
	},
}

var printer = message.NewPrinter(language.English)

// compiledSchemas caches compiled request schemas by name.
var compiledSchemas sync.Map // map[string]*jsonschema.Schema

// decodeRequest validates body against the named schema and then
// decodes it into dst.
func decodeRequest(name string, body []byte, dst any) error {
	var parsed any
	if err := json.Unmarshal(body, &parsed); err != nil {
		return fmt.Errorf("%w: malformed JSON: %v", errInvalidRequest, err)
	}

	schema, err := compiledSchema(name)
	if err != nil {
		return err
	}
	if err := schema.Validate(parsed); err != nil {
		return fmt.Errorf("%w: %s", errInvalidRequest, validationMessage(err))
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("%w: %v", errInvalidRequest, err)
	}
	return nil
}

func compiledSchema(name string) (*jsonschema.Schema, error) {
	if cached, ok := compiledSchemas.Load(name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	def, ok := requestSchemas[name]
	if !ok {
		return nil, fmt.Errorf("unknown request schema %q", name)
	}

	// The compiler wants plain JSON values, so round-trip the Go literal.
	raw, err := json.Marshal(def)
	if err != nil {
		return nil, fmt.Errorf("marshal schema %q: %w", name, err)
	}
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(string(raw)))
	if err != nil {
		return nil, fmt.Errorf("parse schema %q: %w", name, err)
	}

	c := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://%s.json", name)
	if err := c.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema %q: %w", name, err)
	}

	compiledSchemas.Store(name, compiled)
	return compiled, nil
}

// validationMessage flattens a validation error into a single line.
func validationMessage(err error) string {
	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return err.Error()
	}
	var msgs []string
	for _, cause := range leafCauses(verr) {
		loc := "/" + strings.Join(cause.InstanceLocation, "/")
		msgs = append(msgs, fmt.Sprintf("%s: %s", loc, cause.ErrorKind.LocalizedString(printer)))
	}
	if len(msgs) == 0 {
		return err.Error()
	}
	return strings.Join(msgs, "; ")
}

func leafCauses(v *jsonschema.ValidationError) []*jsonschema.ValidationError {
	if len(v.Causes) == 0 {
		return []*jsonschema.ValidationError{v}
	}
	var out []*jsonschema.ValidationError
	for _, c := range v.Causes {
		out = append(out, leafCauses(c)...)
	}
	return out
}
