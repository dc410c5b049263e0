package experiment

import (
	"fmt"
	"sort"
)

type Registry struct {
	examples map[string]func() Example
}

func NewRegistry() *Registry {
	r := &Registry{examples: make(map[string]func() Example)}

	r.examples["dos"] = func() Example { return DOSExample{} }
	r.examples["density"] = func() Example { return DensityExample{} }
	r.examples["annulus"] = func() Example { return AnnulusExample{} }
	r.examples["hamiltonian"] = func() Example { return HamiltonianExample{} }
	r.examples["potentials"] = func() Example { return PotentialsExample{} }
	r.examples["graphene"] = func() Example { return GrapheneExample{} }

	return r
}

func (r *Registry) Get(name string) (Example, error) {
	fn, ok := r.examples[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownExample, name)
	}
	return fn(), nil
}

func (r *Registry) List() []string {
	names := make([]string, 0, len(r.examples))
	for name := range r.examples {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
