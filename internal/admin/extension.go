package admin

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// ErrDuplicateExtension is returned by Extensions.Add when an extension with
// the same name is already attached.
var ErrDuplicateExtension = errors.New("duplicate extension")

// Extension is side data attached to an object. ExtensionName identifies the
// extension type; at most one extension per name is attached.
type Extension interface {
	ExtensionName() string
}

// Extensions is the set of extensions an object owns. The zero value is empty
// and ready to use. Extensions are not part of the JSON representation.
type Extensions struct {
	m     map[string]Extension
	order []string
}

func (e *Extensions) Add(ext Extension) error {
	if ext == nil {
		return errors.New("nil extension")
	}
	name := ext.ExtensionName()
	if _, ok := e.m[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateExtension, name)
	}
	if e.m == nil {
		e.m = map[string]Extension{}
	}
	e.m[name] = ext
	e.order = append(e.order, name)
	return nil
}

// First returns the extension registered under name.
func (e *Extensions) First(name string) (Extension, bool) {
	ext, ok := e.m[name]
	return ext, ok
}

func (e *Extensions) Remove(name string) bool {
	if _, ok := e.m[name]; !ok {
		return false
	}
	delete(e.m, name)
	e.order = slices.DeleteFunc(e.order, func(n string) bool { return n == name })
	return true
}

func (e *Extensions) Len() int { return len(e.m) }

// All returns a copy of the registry; changing it does not affect e.
func (e *Extensions) All() map[string]Extension {
	if e.m == nil {
		return map[string]Extension{}
	}
	return maps.Clone(e.m)
}

// Names returns extension names in registration order.
func (e *Extensions) Names() []string {
	return slices.Clone(e.order)
}

func (e *Extensions) String() string {
	if len(e.order) == 0 {
		return "[]"
	}
	parts := make([]string, 0, len(e.order))
	for _, name := range e.order {
		parts = append(parts, fmt.Sprintf("%s:%v", name, e.m[name]))
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// AttributeExtension carries free-form attributes under a namespace, e.g.
// values a provisioning plugin keeps next to a user.
type AttributeExtension struct {
	Namespace  string
	Attributes map[string]string
}

func (a *AttributeExtension) ExtensionName() string {
	return "attributes/" + a.Namespace
}

func (a *AttributeExtension) String() string {
	keys := slices.Sorted(maps.Keys(a.Attributes))
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+a.Attributes[k])
	}
	return "{" + strings.Join(parts, ",") + "}"
}
