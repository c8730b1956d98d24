// Package groupware holds the domain objects the AJAX writers serialize:
// appointments, tasks, contacts, folders, mail messages and documents.
//
// A field that IsSet is "contained" by the object; writers emit only
// contained fields in detail views.
package groupware

import (
	"time"

	"github.com/sonroyaalmerol/groupware/pkg/optional"
)

// DataObject carries the identity and audit fields shared by all objects.
type DataObject struct {
	ObjectID       optional.Field[int]
	CreatedBy      optional.Field[int]
	ModifiedBy     optional.Field[int]
	CreationDate   optional.Field[time.Time]
	LastModified   optional.Field[time.Time]
	ParentFolderID optional.Field[int]
}

// CommonObject adds the fields shared by folder-stored groupware objects.
type CommonObject struct {
	DataObject

	Categories          optional.Field[string]
	PrivateFlag         optional.Field[bool]
	ColorLabel          optional.Field[int]
	NumberOfAttachments optional.Field[int]
}
