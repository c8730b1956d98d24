package groupware

import (
	"slices"

	"github.com/sonroyaalmerol/groupware/pkg/optional"
)

// Folder modules.
const (
	ModuleTask      = 1
	ModuleCalendar  = 2
	ModuleContact   = 3
	ModuleUnbound   = 4
	ModuleSystem    = 5
	ModuleMail      = 7
	ModuleInfostore = 8
)

// Folder types.
const (
	FolderPrivate = 1
	FolderPublic  = 2
	FolderShared  = 3
	FolderSystem  = 5
)

// Permission levels. Folder and object permissions share the numeric space;
// the names differ by position.
const (
	NoPermissions    = 0
	ReadFolder       = 2
	ReadOwnObjects   = 2
	WriteOwnObjects  = 2
	DeleteOwnObjects = 2
	CreateObjects    = 4
	ReadAllObjects   = 4
	WriteAllObjects  = 4
	DeleteAllObjects = 4
	CreateSubFolders = 8

	// AdminPermission is the "maximum" level on any position.
	AdminPermission = 128
)

// Permission grants an entity (user or group) rights on a folder.
type Permission struct {
	Entity           int
	Group            bool
	FolderPermission int
	ReadPermission   int
	WritePermission  int
	DeletePermission int
	FolderAdmin      bool
}

// Folder is a container of groupware objects. ID is a string so mail folders
// can use full names.
type Folder struct {
	DataObject

	ID                   optional.Field[string]
	ParentID             optional.Field[string]
	Title                optional.Field[string]
	Module               optional.Field[int]
	Type                 optional.Field[int]
	Subfolders           optional.Field[bool]
	OwnRights            optional.Field[Permission]
	Permissions          optional.Field[[]Permission]
	Summary              optional.Field[string]
	StandardFolder       optional.Field[bool]
	Total                optional.Field[int]
	New                  optional.Field[int]
	Unread               optional.Field[int]
	Deleted              optional.Field[int]
	Capabilities         optional.Field[int]
	Subscribed           optional.Field[bool]
	SubscribedSubfolders optional.Field[bool]
	StandardFolderType   optional.Field[int]
}

// Permission returns the permission entry for entity.
func (f *Folder) Permission(entity int, group bool) (Permission, bool) {
	perms := f.Permissions.Value()
	i := slices.IndexFunc(perms, func(p Permission) bool {
		return p.Entity == entity && p.Group == group
	})
	if i < 0 {
		return Permission{}, false
	}
	return perms[i], true
}

// AddPermission adds p, replacing an existing entry for the same entity.
func (f *Folder) AddPermission(p Permission) {
	perms := slices.Clone(f.Permissions.Value())
	i := slices.IndexFunc(perms, func(q Permission) bool {
		return q.Entity == p.Entity && q.Group == p.Group
	})
	if i >= 0 {
		perms[i] = p
	} else {
		perms = append(perms, p)
	}
	f.Permissions.Set(perms)
}
