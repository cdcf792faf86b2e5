// Package registry holds the process-wide collection of capabilities the
// server exposes: prompts, tools, and resources, each with a declared input
// contract and a handler. The registry is populated once at server
// construction and is read-only thereafter, so concurrent invocations need
// no coordination at this layer.
package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"mailgate/internal/metadata"
	"mailgate/pkg/logging"

	"github.com/google/uuid"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Kind identifies the capability class a name is unique within.
type Kind string

const (
	KindPrompt   Kind = "prompt"
	KindTool     Kind = "tool"
	KindResource Kind = "resource"
)

// Handler executes a capability with validated arguments and the ambient
// request metadata. Business failures are reported as error envelopes, not
// returned errors; a returned error is an internal fault surfaced at the
// protocol boundary.
type Handler func(ctx context.Context, args map[string]interface{}, md metadata.Metadata) (*Result, error)

// InputSchema is the structural contract for a capability's arguments,
// expressed as an object-typed JSON Schema.
type InputSchema struct {
	Properties map[string]interface{}
	Required   []string
}

// Document renders the schema as a full JSON Schema document.
func (s InputSchema) Document() map[string]interface{} {
	doc := map[string]interface{}{"type": "object"}
	if len(s.Properties) > 0 {
		doc["properties"] = s.Properties
	}
	if len(s.Required) > 0 {
		doc["required"] = s.Required
	}
	return doc
}

// Capability is one named, independently invocable unit of server
// functionality. URI and MIMEType are set for resources only.
type Capability struct {
	Kind        Kind
	Name        string
	Description string
	InputSchema InputSchema
	URI         string
	MIMEType    string
	Handler     Handler
}

type entry struct {
	cap    *Capability
	schema *jsonschema.Schema
}

// Registry maps (kind, name) to a capability. Registration is append-only
// during bootstrap; there is no runtime re-registration or removal.
type Registry struct {
	entries map[Kind]map[string]*entry
	order   map[Kind][]string
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		entries: make(map[Kind]map[string]*entry),
		order:   make(map[Kind][]string),
	}
}

// Register adds a capability. It fails with a RegistrationError if the
// (kind, name) pair is already taken, and with a plain error if the declared
// input schema does not compile. Both are bootstrap-time fatal.
func (r *Registry) Register(c *Capability) error {
	if c.Name == "" {
		return fmt.Errorf("capability name must not be empty")
	}
	if c.Handler == nil {
		return fmt.Errorf("capability %s %q has no handler", c.Kind, c.Name)
	}

	byName := r.entries[c.Kind]
	if byName == nil {
		byName = make(map[string]*entry)
		r.entries[c.Kind] = byName
	}
	if _, exists := byName[c.Name]; exists {
		return &RegistrationError{Kind: c.Kind, Name: c.Name}
	}

	schema, err := compileSchema(c)
	if err != nil {
		return fmt.Errorf("failed to compile input schema for %s %q: %w", c.Kind, c.Name, err)
	}

	byName[c.Name] = &entry{cap: c, schema: schema}
	r.order[c.Kind] = append(r.order[c.Kind], c.Name)

	logging.Debug("Registry", "Registered %s: %s", c.Kind, c.Name)
	return nil
}

// Info describes one capability for discovery.
type Info struct {
	Name        string
	Description string
	InputSchema InputSchema
}

// List returns (name, description, schema) for every capability of the given
// kind, in registration order.
func (r *Registry) List(kind Kind) []Info {
	names := r.order[kind]
	infos := make([]Info, 0, len(names))
	for _, name := range names {
		c := r.entries[kind][name].cap
		infos = append(infos, Info{Name: c.Name, Description: c.Description, InputSchema: c.InputSchema})
	}
	return infos
}

// Capabilities returns the full capability records of the given kind in
// registration order. Used by the transport adapter during bootstrap.
func (r *Registry) Capabilities(kind Kind) []*Capability {
	names := r.order[kind]
	caps := make([]*Capability, 0, len(names))
	for _, name := range names {
		caps = append(caps, r.entries[kind][name].cap)
	}
	return caps
}

// Invoke looks up the named capability, validates rawArgs against its input
// schema, and runs the handler. Unknown names yield a NotFoundError and
// contract mismatches a ValidationError; in both cases the handler never
// runs. Whatever envelope or internal error the handler produces is passed
// through untouched.
func (r *Registry) Invoke(ctx context.Context, kind Kind, name string, rawArgs map[string]interface{}, md metadata.Metadata) (*Result, error) {
	byName := r.entries[kind]
	e, ok := byName[name]
	if !ok {
		return nil, &NotFoundError{Kind: kind, Name: name}
	}

	args, err := normalizeArgs(rawArgs)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize arguments for %s %q: %w", kind, name, err)
	}

	if err := e.schema.Validate(map[string]interface{}(args)); err != nil {
		ve, ok := err.(*jsonschema.ValidationError)
		if !ok {
			return nil, fmt.Errorf("schema validation failed for %s %q: %w", kind, name, err)
		}
		return nil, &ValidationError{Kind: kind, Name: name, Violations: collectViolations(ve)}
	}

	invocationID := uuid.NewString()
	logging.Debug("Registry", "Invoking %s %s (invocation %s)", kind, name, invocationID)

	result, err := e.cap.Handler(ctx, args, md)
	if err != nil {
		logging.Error("Registry", err, "Invocation %s of %s %s failed", invocationID, kind, name)
		return nil, err
	}

	logging.Debug("Registry", "Invocation %s of %s %s completed (isError=%t)", invocationID, kind, name, result.IsError)
	return result, nil
}

// compileSchema turns the declared input contract into a validator.
func compileSchema(c *Capability) (*jsonschema.Schema, error) {
	doc, err := json.Marshal(c.InputSchema.Document())
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("mailgate://%s/%s/schema.json", c.Kind, c.Name)
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(url, bytes.NewReader(doc)); err != nil {
		return nil, err
	}
	return compiler.Compile(url)
}

// normalizeArgs round-trips the arguments through JSON so validation and
// handlers always see JSON-native values (map[string]interface{}, float64,
// []interface{}), regardless of how the transport decoded them.
func normalizeArgs(rawArgs map[string]interface{}) (map[string]interface{}, error) {
	if rawArgs == nil {
		return map[string]interface{}{}, nil
	}
	data, err := json.Marshal(rawArgs)
	if err != nil {
		return nil, err
	}
	var args map[string]interface{}
	if err := json.Unmarshal(data, &args); err != nil {
		return nil, err
	}
	return args, nil
}

// collectViolations flattens the validator's error tree into field-level
// violations, keeping only leaf causes.
func collectViolations(ve *jsonschema.ValidationError) []Violation {
	if len(ve.Causes) == 0 {
		return []Violation{{Field: ve.InstanceLocation, Message: ve.Message}}
	}
	var violations []Violation
	for _, cause := range ve.Causes {
		violations = append(violations, collectViolations(cause)...)
	}
	return violations
}
