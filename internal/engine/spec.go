package engine

import "fmt"

// ProcessSpec is one named process template declared in a Procfile. It is
// immutable once parsed; the engine only reads it.
type ProcessSpec struct {
	Name     string
	Command  string
	Replicas int
}

// replicaCount normalises the declared replica count, treating anything
// non-positive as a single instance.
func (s ProcessSpec) replicaCount() int {
	if s.Replicas <= 0 {
		return 1
	}
	return s.Replicas
}

// replicaName derives the managed process name for replica index i. A spec
// with a single replica keeps its declared name unchanged.
func (s ProcessSpec) replicaName(i int) string {
	if s.replicaCount() == 1 {
		return s.Name
	}
	return fmt.Sprintf("%s.%d", s.Name, i)
}

// Filter restricts which declared process names are launched. A nil or empty
// filter allows every name.
type Filter map[string]struct{}

// NewFilter builds a filter from the provided names. Passing no names returns
// nil, which allows everything.
func NewFilter(names ...string) Filter {
	if len(names) == 0 {
		return nil
	}
	f := make(Filter, len(names))
	for _, name := range names {
		if name == "" {
			continue
		}
		f[name] = struct{}{}
	}
	if len(f) == 0 {
		return nil
	}
	return f
}

// Allows reports whether the named spec should be launched.
func (f Filter) Allows(name string) bool {
	if len(f) == 0 {
		return true
	}
	_, ok := f[name]
	return ok
}
