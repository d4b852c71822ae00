package e2etest

import (
	"fmt"
	"sort"
)

// Factory builds an Adapter for one test behaviour (e.g. exception_after_n).
type Factory func() Adapter

var registry = map[string]Factory{}

// Register is called from each driver's init().
func Register(name string, f Factory) {
	registry[name] = f
}

// NewAdapter returns a driver by name.
func NewAdapter(name string) (Adapter, error) {
	if f, ok := registry[name]; ok {
		return f(), nil
	}
	return nil, fmt.Errorf("e2e-test: unsupported driver %q (have %v)", name, Drivers())
}

func Drivers() []string {
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
