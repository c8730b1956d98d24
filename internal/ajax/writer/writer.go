// Package writer converts groupware objects into the JSON shapes of the AJAX
// interface.
//
// Every entity has one Table: an ordered list of columns, each pairing a
// column id and key with an accessor. List views write a JSON array with one
// position per requested column; detail views write a JSON object with a key
// for every column the object contains.
package writer

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/sonroyaalmerol/groupware/internal/ajax/fields"
	"github.com/sonroyaalmerol/groupware/internal/ajax/jsonw"
)

var (
	ErrUnknownField      = errors.New("unknown field")
	ErrUnknownRecurrence = errors.New("unknown recurrence type")
	ErrInvalidPermission = errors.New("invalid permission level")
)

// UnknownFieldError reports a column id the entity does not define.
type UnknownFieldError struct {
	Entity string
	Column int
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("%s: unknown field %d", e.Entity, e.Column)
}

func (e *UnknownFieldError) Unwrap() error { return ErrUnknownField }

// Options are the caller's policies.
type Options struct {
	// SkipUnknown writes null for unknown columns in list views and logs a
	// warning instead of failing.
	SkipUnknown bool
	// ImageURLPrefix is the path contact image URLs are built on.
	ImageURLPrefix string
}

const defaultImageURLPrefix = "/ajax/image/contact/picture"

// Env is what a write needs besides the object: the user's time zone, a
// logger and the caller's options.
type Env struct {
	Location *time.Location
	Logger   zerolog.Logger
	Options  Options
}

func NewEnv(loc *time.Location, logger zerolog.Logger, opts Options) *Env {
	if loc == nil {
		loc = time.UTC
	}
	if opts.ImageURLPrefix == "" {
		opts.ImageURLPrefix = defaultImageURLPrefix
	}
	return &Env{Location: loc, Logger: logger, Options: opts}
}

// localMillis is t in epoch milliseconds shifted by the zone offset in
// effect at ref.
func (e *Env) localMillis(t, ref time.Time) int64 {
	_, offset := ref.In(e.Location).Zone()
	return t.UnixMilli() + int64(offset)*1000
}

// ValueFunc returns a column's value and whether obj contains it. A value
// that is not contained is still written for primitive columns in list
// views, so it must be the column's zero value.
type ValueFunc[T any] func(obj T, env *Env) (v any, present bool, err error)

type Column[T any] struct {
	fields.Field
	Primitive bool
	Value     ValueFunc[T]
}

// Table is the column set of one entity.
type Table[T any] struct {
	entity string
	cols   []Column[T]
	byID   map[int]int
}

// NewTable builds a table from column groups in detail view order. A later
// column with the same id replaces an earlier one in place.
func NewTable[T any](entity string, groups ...[]Column[T]) *Table[T] {
	t := &Table[T]{entity: entity, byID: map[int]int{}}
	for _, g := range groups {
		for _, c := range g {
			if i, ok := t.byID[c.ID]; ok {
				t.cols[i] = c
				continue
			}
			t.byID[c.ID] = len(t.cols)
			t.cols = append(t.cols, c)
		}
	}
	return t
}

func (t *Table[T]) Entity() string { return t.entity }

// Column looks up a column by id.
func (t *Table[T]) Column(id int) (Column[T], bool) {
	i, ok := t.byID[id]
	if !ok {
		return Column[T]{}, false
	}
	return t.cols[i], true
}

// IDs returns all column ids in detail view order.
func (t *Table[T]) IDs() []int {
	ids := make([]int, len(t.cols))
	for i, c := range t.cols {
		ids[i] = c.ID
	}
	return ids
}

// WriteArray writes obj as a JSON array with one element per column.
func (t *Table[T]) WriteArray(jw *jsonw.Writer, obj T, columns []int, env *Env) error {
	if err := jw.Array(); err != nil {
		return err
	}
	for _, id := range columns {
		col, ok := t.Column(id)
		if !ok {
			if !env.Options.SkipUnknown {
				return &UnknownFieldError{Entity: t.entity, Column: id}
			}
			env.Logger.Warn().Str("entity", t.entity).Int("column", id).Msg("skipping unknown column")
			if err := jw.Null(); err != nil {
				return err
			}
			continue
		}
		v, present, err := col.Value(obj, env)
		if err != nil {
			return fmt.Errorf("%s %s: %w", t.entity, col.Key, err)
		}
		if present || col.Primitive {
			err = jw.Value(v)
		} else {
			err = jw.Null()
		}
		if err != nil {
			return err
		}
	}
	return jw.EndArray()
}

// WriteObject writes obj as a JSON object holding the columns obj contains.
func (t *Table[T]) WriteObject(jw *jsonw.Writer, obj T, env *Env) error {
	if err := jw.Object(); err != nil {
		return err
	}
	for _, col := range t.cols {
		v, present, err := col.Value(obj, env)
		if err != nil {
			return fmt.Errorf("%s %s: %w", t.entity, col.Key, err)
		}
		if !present {
			continue
		}
		if err := jw.Field(col.Key, v); err != nil {
			return err
		}
	}
	return jw.EndObject()
}

// Writer binds a table to an environment.
type Writer[T any] struct {
	table *Table[T]
	env   *Env
}

func NewWriter[T any](table *Table[T], env *Env) *Writer[T] {
	return &Writer[T]{table: table, env: env}
}

func (w *Writer[T]) Table() *Table[T] { return w.table }

func (w *Writer[T]) WriteArray(jw *jsonw.Writer, obj T, columns []int) error {
	return w.table.WriteArray(jw, obj, columns, w.env)
}

func (w *Writer[T]) WriteObject(jw *jsonw.Writer, obj T) error {
	return w.table.WriteObject(jw, obj, w.env)
}

// WriteList writes objs as an array of arrays.
func (w *Writer[T]) WriteList(jw *jsonw.Writer, objs []T, columns []int) error {
	if err := jw.Array(); err != nil {
		return err
	}
	for _, obj := range objs {
		if err := w.WriteArray(jw, obj, columns); err != nil {
			return err
		}
	}
	return jw.EndArray()
}

// WriteObjects writes objs as an array of detail objects.
func (w *Writer[T]) WriteObjects(jw *jsonw.Writer, objs []T) error {
	if err := jw.Array(); err != nil {
		return err
	}
	for _, obj := range objs {
		if err := w.WriteObject(jw, obj); err != nil {
			return err
		}
	}
	return jw.EndArray()
}
