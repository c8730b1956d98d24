package groupware

import (
	"time"

	"github.com/sonroyaalmerol/groupware/pkg/optional"
)

// DocumentMetadata describes one version of an infostore document.
type DocumentMetadata struct {
	DataObject

	Title            optional.Field[string]
	URL              optional.Field[string]
	FileName         optional.Field[string]
	FileMIMEType     optional.Field[string]
	FileSize         optional.Field[int64]
	Version          optional.Field[int]
	Description      optional.Field[string]
	LockedUntil      optional.Field[time.Time]
	FileMD5Sum       optional.Field[string]
	VersionComment   optional.Field[string]
	IsCurrentVersion optional.Field[bool]
	NumberOfVersions optional.Field[int]
	Categories       optional.Field[string]
	ColorLabel       optional.Field[int]
}

// Locked reports whether the document is locked at now.
func (d *DocumentMetadata) Locked(now time.Time) bool {
	until, ok := d.LockedUntil.Get()
	return ok && until.After(now)
}
