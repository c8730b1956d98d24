package writer

import (
	"time"

	"github.com/sonroyaalmerol/groupware/internal/ajax/fields"
	"github.com/sonroyaalmerol/groupware/internal/groupware"
	"github.com/sonroyaalmerol/groupware/pkg/optional"
)

// Strings are contained only when set and non-empty.
func stringColumn[T any](f fields.Field, get func(T) optional.Field[string]) Column[T] {
	return Column[T]{Field: f, Value: func(obj T, _ *Env) (any, bool, error) {
		s, ok := get(obj).Get()
		if !ok || s == "" {
			return nil, false, nil
		}
		return s, true, nil
	}}
}

func primitiveColumn[T, V any](f fields.Field, get func(T) optional.Field[V]) Column[T] {
	return Column[T]{Field: f, Primitive: true, Value: func(obj T, _ *Env) (any, bool, error) {
		v, ok := get(obj).Get()
		return v, ok, nil
	}}
}

func rawDateColumn[T any](f fields.Field, get func(T) optional.Field[time.Time]) Column[T] {
	return Column[T]{Field: f, Value: func(obj T, _ *Env) (any, bool, error) {
		t, ok := get(obj).Get()
		if !ok {
			return nil, false, nil
		}
		return t.UnixMilli(), true, nil
	}}
}

// localDateColumn shifts the date by the offset in effect at the date itself.
func localDateColumn[T any](f fields.Field, get func(T) optional.Field[time.Time]) Column[T] {
	return Column[T]{Field: f, Value: func(obj T, env *Env) (any, bool, error) {
		t, ok := get(obj).Get()
		if !ok {
			return nil, false, nil
		}
		return env.localMillis(t, t), true, nil
	}}
}

func rawDates(ts []time.Time) []int64 {
	ms := make([]int64, len(ts))
	for i, t := range ts {
		ms[i] = t.UnixMilli()
	}
	return ms
}

// lift adapts columns of an embedded type to the embedding one.
func lift[S, T any](cols []Column[S], get func(T) S) []Column[T] {
	out := make([]Column[T], len(cols))
	for i, c := range cols {
		value := c.Value
		out[i] = Column[T]{Field: c.Field, Primitive: c.Primitive, Value: func(obj T, env *Env) (any, bool, error) {
			return value(get(obj), env)
		}}
	}
	return out
}

var dataColumns = []Column[*groupware.DataObject]{
	primitiveColumn(fields.ObjectID, func(d *groupware.DataObject) optional.Field[int] { return d.ObjectID }),
	primitiveColumn(fields.CreatedBy, func(d *groupware.DataObject) optional.Field[int] { return d.CreatedBy }),
	primitiveColumn(fields.ModifiedBy, func(d *groupware.DataObject) optional.Field[int] { return d.ModifiedBy }),
	localDateColumn(fields.CreationDate, func(d *groupware.DataObject) optional.Field[time.Time] { return d.CreationDate }),
	localDateColumn(fields.LastModified, func(d *groupware.DataObject) optional.Field[time.Time] { return d.LastModified }),
	rawDateColumn(fields.LastModifiedUTC, func(d *groupware.DataObject) optional.Field[time.Time] { return d.LastModified }),
	primitiveColumn(fields.FolderID, func(d *groupware.DataObject) optional.Field[int] { return d.ParentFolderID }),
}

var commonColumns = append(
	lift(dataColumns, func(c *groupware.CommonObject) *groupware.DataObject { return &c.DataObject }),
	stringColumn(fields.Categories, func(c *groupware.CommonObject) optional.Field[string] { return c.Categories }),
	primitiveColumn(fields.PrivateFlag, func(c *groupware.CommonObject) optional.Field[bool] { return c.PrivateFlag }),
	primitiveColumn(fields.ColorLabel, func(c *groupware.CommonObject) optional.Field[int] { return c.ColorLabel }),
	primitiveColumn(fields.NumberOfAttachments, func(c *groupware.CommonObject) optional.Field[int] { return c.NumberOfAttachments }),
)
