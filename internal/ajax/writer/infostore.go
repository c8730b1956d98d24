package writer

import (
	"time"

	"github.com/sonroyaalmerol/groupware/internal/ajax/fields"
	"github.com/sonroyaalmerol/groupware/internal/groupware"
	"github.com/sonroyaalmerol/groupware/pkg/optional"
)

var Documents = NewTable("infostore",
	lift(dataColumns, func(d *groupware.DocumentMetadata) *groupware.DataObject { return &d.DataObject }),
	[]Column[*groupware.DocumentMetadata]{
		stringColumn(fields.Categories, func(d *groupware.DocumentMetadata) optional.Field[string] { return d.Categories }),
		primitiveColumn(fields.ColorLabel, func(d *groupware.DocumentMetadata) optional.Field[int] { return d.ColorLabel }),
		stringColumn(fields.DocumentTitle, func(d *groupware.DocumentMetadata) optional.Field[string] { return d.Title }),
		stringColumn(fields.DocumentURL, func(d *groupware.DocumentMetadata) optional.Field[string] { return d.URL }),
		stringColumn(fields.DocumentFileName, func(d *groupware.DocumentMetadata) optional.Field[string] { return d.FileName }),
		stringColumn(fields.DocumentFileMIMEType, func(d *groupware.DocumentMetadata) optional.Field[string] { return d.FileMIMEType }),
		primitiveColumn(fields.DocumentFileSize, func(d *groupware.DocumentMetadata) optional.Field[int64] { return d.FileSize }),
		primitiveColumn(fields.DocumentVersion, func(d *groupware.DocumentMetadata) optional.Field[int] { return d.Version }),
		stringColumn(fields.DocumentDescription, func(d *groupware.DocumentMetadata) optional.Field[string] { return d.Description }),
		rawDateColumn(fields.DocumentLockedUntil, func(d *groupware.DocumentMetadata) optional.Field[time.Time] { return d.LockedUntil }),
		stringColumn(fields.DocumentFileMD5Sum, func(d *groupware.DocumentMetadata) optional.Field[string] { return d.FileMD5Sum }),
		stringColumn(fields.DocumentVersionComment, func(d *groupware.DocumentMetadata) optional.Field[string] { return d.VersionComment }),
		primitiveColumn(fields.DocumentCurrentVersion, func(d *groupware.DocumentMetadata) optional.Field[bool] { return d.IsCurrentVersion }),
		primitiveColumn(fields.DocumentNumberOfVersions, func(d *groupware.DocumentMetadata) optional.Field[int] { return d.NumberOfVersions }),
	},
)

type InfostoreWriter = Writer[*groupware.DocumentMetadata]

func NewInfostoreWriter(env *Env) *InfostoreWriter {
	return NewWriter(Documents, env)
}
