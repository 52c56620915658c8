// Package naming defines how simulated objects are named.
package naming

import (
	"log"
	"strings"
)

// Named describes an object that has a name.
type Named interface {
	// Name returns the name of the object.
	Name() string
}

// NamedBase is a base implementation of Named.
type NamedBase struct {
	name string
}

// Name returns the name.
func (b NamedBase) Name() string {
	return b.name
}

// MakeNamedBase creates a new NamedBase. The name must be valid.
func MakeNamedBase(name string) NamedBase {
	NameMustBeValid(name)

	return NamedBase{name: name}
}

// NameMustBeValid panics if the name is empty or contains whitespace.
// Hierarchical names use dots, for example "TB.RAM".
func NameMustBeValid(name string) {
	if name == "" {
		log.Panic("name cannot be empty")
	}

	if strings.ContainsAny(name, " \t\n") {
		log.Panicf("name %q cannot contain whitespace", name)
	}

	if strings.HasPrefix(name, ".") || strings.HasSuffix(name, ".") {
		log.Panicf("name %q cannot start or end with a dot", name)
	}
}
