// Package tools defines the tool registry and the built-in tools exposed by
// the agent.
//
// A tool is a named function taking a JSON payload and returning a Result
// envelope. Tools never panic and never return Go errors to the shell; every
// failure is folded into an error envelope so HTTP callers see one shape.
package tools

import (
	"context"
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// Handler executes a tool against its raw JSON input.
type Handler func(ctx context.Context, input json.RawMessage) *Result

// Definition describes a registered tool: its name, a human-readable
// description, the JSON schema of its input, and the handler.
type Definition struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	InputSchema *jsonschema.Schema `json:"input_schema"`
	Handler     Handler            `json:"-"`
}

// Registry maps tool names to definitions, preserving registration order
// for listings.
type Registry struct {
	defs  map[string]Definition
	order []string
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{defs: map[string]Definition{}}
}

// Register adds a tool definition. Re-registering a name replaces the
// previous definition.
func (r *Registry) Register(def Definition) {
	if _, exists := r.defs[def.Name]; !exists {
		r.order = append(r.order, def.Name)
	}
	r.defs[def.Name] = def
}

// Get returns a tool by name.
func (r *Registry) Get(name string) (Definition, bool) {
	def, ok := r.defs[name]
	return def, ok
}

// List returns all registered tools in registration order.
func (r *Registry) List() []Definition {
	list := make([]Definition, 0, len(r.order))
	for _, name := range r.order {
		list = append(list, r.defs[name])
	}
	return list
}

// GenerateSchema derives the JSON schema for a tool input struct.
func GenerateSchema[T any]() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	return reflector.Reflect(v)
}
