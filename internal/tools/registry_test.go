package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryRegisterAndGet(t *testing.T) {
	r := NewRegistry()

	for _, def := range DemoDefinitions() {
		r.Register(def)
	}

	def, ok := r.Get("echo")
	require.True(t, ok)
	assert.Equal(t, "echo", def.Name)

	_, ok = r.Get("no_such_tool")
	assert.False(t, ok)
}

func TestRegistryListPreservesOrder(t *testing.T) {
	r := NewRegistry()
	r.Register(Definition{Name: "b"})
	r.Register(Definition{Name: "a"})
	r.Register(Definition{Name: "c"})

	names := make([]string, 0, 3)
	for _, def := range r.List() {
		names = append(names, def.Name)
	}
	assert.Equal(t, []string{"b", "a", "c"}, names)
}

func TestRegistryReRegisterReplaces(t *testing.T) {
	r := NewRegistry()
	r.Register(Definition{Name: "x", Description: "old"})
	r.Register(Definition{Name: "x", Description: "new"})

	def, ok := r.Get("x")
	require.True(t, ok)
	assert.Equal(t, "new", def.Description)
	assert.Len(t, r.List(), 1)
}

func TestGenerateSchema(t *testing.T) {
	schema := GenerateSchema[FileInput]()
	require.NotNil(t, schema)

	_, ok := schema.Properties.Get("file_path")
	assert.True(t, ok, "schema should describe the file_path property")
}
