package expression

// Arguments is a read-only view of parameter bindings.
type Arguments interface {
	// Names returns the bound parameter names in declaration order.
	Names() []string
	// Lookup returns the expression bound to name.
	Lookup(name string) (string, bool)
}

// Map is an Arguments backed by a Go map. Names are returned in no
// particular order.
type Map map[string]string

// Names implements Arguments.
func (m Map) Names() []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}

	return names
}

// Lookup implements Arguments.
func (m Map) Lookup(name string) (string, bool) {
	v, ok := m[name]

	return v, ok
}
