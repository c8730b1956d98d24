// Package admin holds the provisioning data-transfer objects: contexts, users,
// groups, resources, databases, filestores and their helpers.
//
// Every attribute is an optional.Field so a sparse object can travel as a
// partial update: an unset field means "leave unchanged", a set-null field
// means "clear".
package admin

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/sonroyaalmerol/groupware/pkg/optional"
)

// Operation selects which mandatory member list applies.
type Operation int

const (
	OpCreate Operation = iota
	OpChange
	OpDelete
	OpRegister
)

func (op Operation) String() string {
	switch op {
	case OpCreate:
		return "create"
	case OpChange:
		return "change"
	case OpDelete:
		return "delete"
	case OpRegister:
		return "register"
	default:
		return fmt.Sprintf("operation(%d)", int(op))
	}
}

var (
	// ErrInvalidData is returned when an object declares a mandatory member it
	// does not have. It indicates a programming error.
	ErrInvalidData = errors.New("invalid data")
	// ErrMissingMembers is wrapped by MissingMembersError.
	ErrMissingMembers = errors.New("mandatory members not set")
)

// MissingMembersError lists the mandatory members an object lacks for an
// operation.
type MissingMembersError struct {
	Type    string
	Op      Operation
	Members []string
}

func (e *MissingMembersError) Error() string {
	return fmt.Sprintf("%s %s: mandatory members not set: %s", e.Type, e.Op, strings.Join(e.Members, ", "))
}

func (e *MissingMembersError) Unwrap() error { return ErrMissingMembers }

// Enforceable is implemented by objects that declare mandatory members.
type Enforceable interface {
	// MandatoryMembers returns the member names required for op, or nil.
	MandatoryMembers(op Operation) []string
	// memberFilled reports whether the named member is filled; known is false
	// for names the object does not have.
	memberFilled(name string) (filled, known bool)
}

// CheckMandatory returns the mandatory members of obj for op that are null, or
// empty strings.
func CheckMandatory(obj Enforceable, op Operation) ([]string, error) {
	var unset []string
	for _, name := range obj.MandatoryMembers(op) {
		ok, known := obj.memberFilled(name)
		if !known {
			return nil, fmt.Errorf("%w: %T has no member %q", ErrInvalidData, obj, name)
		}
		if !ok {
			unset = append(unset, name)
		}
	}
	return unset, nil
}

// MandatoryMembersSet reports whether every mandatory member for op is filled.
func MandatoryMembersSet(obj Enforceable, op Operation) (bool, error) {
	unset, err := CheckMandatory(obj, op)
	if err != nil {
		return false, err
	}
	return len(unset) == 0, nil
}

// Validate returns a *MissingMembersError when mandatory members are missing.
func Validate(obj Enforceable, op Operation) error {
	unset, err := CheckMandatory(obj, op)
	if err != nil {
		return err
	}
	if len(unset) > 0 {
		typ := strings.TrimPrefix(fmt.Sprintf("%T", obj), "*admin.")
		return &MissingMembersError{Type: typ, Op: op, Members: unset}
	}
	return nil
}

// LegacyAssign applies the presence rule older User and Publication peers used:
// the value is stored, but the field only counts as set when p is nil.
func LegacyAssign[T any](f *optional.Field[T], p *T) {
	f.AssignNullFlagged(p)
}

func filled[T any](f optional.Field[T]) bool {
	v, ok := f.Get()
	if !ok {
		return false
	}
	if s, isString := any(v).(string); isString {
		return s != ""
	}
	return true
}

// dumper renders set members as name=value pairs.
type dumper struct {
	b     strings.Builder
	first bool
}

func newDumper(typ string) *dumper {
	d := &dumper{first: true}
	d.b.WriteString(typ)
	d.b.WriteByte('{')
	return d
}

func (d *dumper) write(name, value string) {
	if !d.first {
		d.b.WriteByte(' ')
	}
	d.first = false
	d.b.WriteString(name)
	d.b.WriteByte('=')
	d.b.WriteString(value)
}

func dump[T any](d *dumper, name string, f optional.Field[T]) {
	if !f.IsSet() {
		return
	}
	d.write(name, f.String())
}

func (d *dumper) secret(name string, f optional.Field[string]) {
	if !f.IsSet() {
		return
	}
	if f.IsNull() {
		d.write(name, "<null>")
		return
	}
	d.write(name, "***")
}

func (d *dumper) String() string {
	d.b.WriteByte('}')
	return d.b.String()
}

func equalSlices[T comparable](a, b optional.Field[[]T]) bool {
	return optional.EqualFunc(a, b, func(x, y []T) bool { return slices.Equal(x, y) })
}

func equalNested(a, b optional.Field[map[string]map[string]string]) bool {
	return optional.EqualFunc(a, b, func(x, y map[string]map[string]string) bool {
		if len(x) != len(y) {
			return false
		}
		for ns, xm := range x {
			ym, ok := y[ns]
			if !ok || len(xm) != len(ym) {
				return false
			}
			for k, v := range xm {
				if w, ok := ym[k]; !ok || w != v {
					return false
				}
			}
		}
		return true
	})
}

func setAttribute(f *optional.Field[map[string]map[string]string], ns, key, value string) {
	attrs := f.Value()
	if attrs == nil {
		attrs = map[string]map[string]string{}
	}
	if attrs[ns] == nil {
		attrs[ns] = map[string]string{}
	}
	attrs[ns][key] = value
	f.Set(attrs)
}
