package ncio

import (
	"fmt"
	"sort"
)

// Memory is an in-process File backed by a variable map. Values use the same
// nested-slice representation the netCDF backend decodes to: scalars,
// strings, []float64, [][]int, and so on. Shapes derive from the values.
type Memory struct {
	path string
	vars map[string]any
}

// NewMemory builds a Memory file. The map is used as given, not copied.
func NewMemory(path string, vars map[string]any) *Memory {
	return &Memory{path: path, vars: vars}
}

// Path returns the pseudo-path the Memory was created with.
func (m *Memory) Path() string { return m.path }

// HasVar reports whether the named variable exists.
func (m *Memory) HasVar(name string) bool {
	_, ok := m.vars[name]

	return ok
}

// Var looks a variable up by name. Missing variables yield ErrNoVar.
func (m *Memory) Var(name string) (Var, error) {
	val, ok := m.vars[name]
	if !ok {
		return nil, fmt.Errorf("ncio: %s: %q: %w", m.path, name, ErrNoVar)
	}

	return &value{name: name, val: val}, nil
}

// VarNames returns the variable names in lexicographic order.
func (m *Memory) VarNames() []string {
	names := make([]string, 0, len(m.vars))
	for name := range m.vars {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// Close is a no-op for Memory files.
func (m *Memory) Close() error { return nil }
