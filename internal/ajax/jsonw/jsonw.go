// Package jsonw is a streaming JSON writer. It checks nesting as it goes so
// callers can emit objects and arrays without building them in memory.
package jsonw

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrMisuse is returned for calls that would produce invalid JSON.
var ErrMisuse = errors.New("jsonw: misuse")

type frame struct {
	object bool
	n      int
	keyed  bool
}

// Writer writes one JSON value to an io.Writer. The first error is sticky:
// every later call returns it and writes nothing.
type Writer struct {
	w     io.Writer
	stack []frame
	done  bool
	err   error
	buf   bytes.Buffer
	enc   *json.Encoder
}

func New(w io.Writer) *Writer {
	jw := &Writer{w: w}
	jw.enc = json.NewEncoder(&jw.buf)
	jw.enc.SetEscapeHTML(false)
	return jw
}

// Err returns the first error encountered.
func (w *Writer) Err() error { return w.err }

// Depth is the number of open objects and arrays.
func (w *Writer) Depth() int { return len(w.stack) }

func (w *Writer) fail(format string, args ...any) error {
	w.err = fmt.Errorf("%w: "+format, append([]any{ErrMisuse}, args...)...)
	return w.err
}

func (w *Writer) write(s string) error {
	if _, err := io.WriteString(w.w, s); err != nil {
		w.err = fmt.Errorf("jsonw: write: %w", err)
	}
	return w.err
}

func (w *Writer) writeBytes(b []byte) error {
	if _, err := w.w.Write(b); err != nil {
		w.err = fmt.Errorf("jsonw: write: %w", err)
	}
	return w.err
}

// beforeValue checks that a value may start here and writes the separator.
func (w *Writer) beforeValue() error {
	if w.err != nil {
		return w.err
	}
	if len(w.stack) == 0 {
		if w.done {
			return w.fail("second top-level value")
		}
		return nil
	}
	top := &w.stack[len(w.stack)-1]
	if top.object {
		if !top.keyed {
			return w.fail("value in object without key")
		}
		top.keyed = false
		return nil
	}
	top.n++
	if top.n > 1 {
		return w.write(",")
	}
	return nil
}

func (w *Writer) afterValue() {
	if len(w.stack) == 0 {
		w.done = true
	}
}

func (w *Writer) open(object bool, delim string) error {
	if err := w.beforeValue(); err != nil {
		return err
	}
	if err := w.write(delim); err != nil {
		return err
	}
	w.stack = append(w.stack, frame{object: object})
	return nil
}

func (w *Writer) close(object bool, delim string) error {
	if w.err != nil {
		return w.err
	}
	if len(w.stack) == 0 {
		return w.fail("%s without open", delim)
	}
	top := w.stack[len(w.stack)-1]
	if top.object != object {
		return w.fail("%s closes the wrong container", delim)
	}
	if top.keyed {
		return w.fail("%s after key without value", delim)
	}
	if err := w.write(delim); err != nil {
		return err
	}
	w.stack = w.stack[:len(w.stack)-1]
	w.afterValue()
	return nil
}

// Object starts an object.
func (w *Writer) Object() error { return w.open(true, "{") }

func (w *Writer) EndObject() error { return w.close(true, "}") }

// Array starts an array.
func (w *Writer) Array() error { return w.open(false, "[") }

func (w *Writer) EndArray() error { return w.close(false, "]") }

// Key writes an object key. The next call must write its value.
func (w *Writer) Key(k string) error {
	if w.err != nil {
		return w.err
	}
	if len(w.stack) == 0 || !w.stack[len(w.stack)-1].object {
		return w.fail("key %q outside object", k)
	}
	top := &w.stack[len(w.stack)-1]
	if top.keyed {
		return w.fail("key %q after key", k)
	}
	if top.n > 0 {
		if err := w.write(","); err != nil {
			return err
		}
	}
	top.n++
	if err := w.encode(k); err != nil {
		return err
	}
	if err := w.write(":"); err != nil {
		return err
	}
	top.keyed = true
	return nil
}

// Value writes v encoded with encoding/json.
func (w *Writer) Value(v any) error {
	if err := w.beforeValue(); err != nil {
		return err
	}
	if err := w.encode(v); err != nil {
		return err
	}
	w.afterValue()
	return nil
}

func (w *Writer) Null() error { return w.Value(nil) }

// Field writes a key and its value.
func (w *Writer) Field(k string, v any) error {
	if err := w.Key(k); err != nil {
		return err
	}
	return w.Value(v)
}

// Close reports an error unless exactly one complete value was written.
func (w *Writer) Close() error {
	if w.err != nil {
		return w.err
	}
	if len(w.stack) > 0 {
		return w.fail("%d unclosed containers", len(w.stack))
	}
	if !w.done {
		return w.fail("nothing written")
	}
	return nil
}

func (w *Writer) encode(v any) error {
	w.buf.Reset()
	if err := w.enc.Encode(v); err != nil {
		w.err = fmt.Errorf("jsonw: encode: %w", err)
		return w.err
	}
	return w.writeBytes(bytes.TrimSuffix(w.buf.Bytes(), []byte("\n")))
}
