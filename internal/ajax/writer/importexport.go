package writer

import (
	"github.com/sonroyaalmerol/groupware/internal/ajax/fields"
	"github.com/sonroyaalmerol/groupware/internal/ajax/jsonw"
	"github.com/sonroyaalmerol/groupware/internal/groupware"
)

// ImportExportWriter writes the outcome of an import, one object per
// imported item.
type ImportExportWriter struct {
	env *Env
}

func NewImportExportWriter(env *Env) *ImportExportWriter {
	return &ImportExportWriter{env: env}
}

// WriteResult writes id, folder and modification time of r, and error,
// code and line when r failed.
func (w *ImportExportWriter) WriteResult(jw *jsonw.Writer, r *groupware.ImportResult) error {
	if err := jw.Object(); err != nil {
		return err
	}
	if r.ObjectID != "" {
		if err := jw.Field(fields.ObjectID.Key, r.ObjectID); err != nil {
			return err
		}
	}
	if r.FolderID != "" {
		if err := jw.Field(fields.FolderID.Key, r.FolderID); err != nil {
			return err
		}
	}
	if !r.LastModified.IsZero() {
		ms := w.env.localMillis(r.LastModified, r.LastModified)
		if err := jw.Field(fields.LastModified.Key, ms); err != nil {
			return err
		}
	}
	if r.Failed() {
		if err := jw.Field(fields.ImportError, r.Err.Error()); err != nil {
			return err
		}
		if err := jw.Field(fields.ImportCode, r.Code()); err != nil {
			return err
		}
		if err := jw.Field(fields.ImportLine, r.Line()); err != nil {
			return err
		}
	}
	return jw.EndObject()
}

func (w *ImportExportWriter) WriteResults(jw *jsonw.Writer, results []*groupware.ImportResult) error {
	if err := jw.Array(); err != nil {
		return err
	}
	for _, r := range results {
		if err := w.WriteResult(jw, r); err != nil {
			return err
		}
	}
	return jw.EndArray()
}
