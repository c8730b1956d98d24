package writer

import (
	"fmt"
	"strconv"

	"github.com/sonroyaalmerol/groupware/internal/ajax/fields"
	"github.com/sonroyaalmerol/groupware/internal/groupware"
	"github.com/sonroyaalmerol/groupware/pkg/optional"
)

const (
	permissionWidth = 7
	permissionMask  = 1<<permissionWidth - 1
	adminFlagShift  = 4 * permissionWidth
	// maxPermission is the wire value of groupware.AdminPermission.
	maxPermission = 64
)

// permissionMapping maps permission levels to wire values; -1 marks levels
// that do not exist.
var permissionMapping = [...]int{0, -1, 1, -1, 2, -1, -1, -1, 4}

func wirePermission(level int) (int, error) {
	if level == groupware.AdminPermission {
		return maxPermission, nil
	}
	if level < 0 || level >= len(permissionMapping) || permissionMapping[level] < 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidPermission, level)
	}
	return permissionMapping[level], nil
}

func permissionLevel(wire int) (int, error) {
	if wire == maxPermission {
		return groupware.AdminPermission, nil
	}
	for level, w := range permissionMapping {
		if w == wire && w >= 0 {
			return level, nil
		}
	}
	return 0, fmt.Errorf("%w: wire value %d", ErrInvalidPermission, wire)
}

// CreatePermissionBits packs folder, read, write and delete permission into
// 7 bits each, folder lowest, followed by the admin flag at bit 28.
func CreatePermissionBits(fp, rp, wp, dp int, admin bool) (int, error) {
	bits := 0
	for i, level := range [...]int{fp, rp, wp, dp} {
		w, err := wirePermission(level)
		if err != nil {
			return 0, err
		}
		bits |= w << (i * permissionWidth)
	}
	if admin {
		bits |= 1 << adminFlagShift
	}
	return bits, nil
}

// ParsePermissionBits is the inverse of CreatePermissionBits.
func ParsePermissionBits(bits int) (fp, rp, wp, dp int, admin bool, err error) {
	var levels [4]int
	for i := range levels {
		levels[i], err = permissionLevel(bits >> (i * permissionWidth) & permissionMask)
		if err != nil {
			return 0, 0, 0, 0, false, err
		}
	}
	admin = bits>>adminFlagShift&1 == 1
	return levels[0], levels[1], levels[2], levels[3], admin, nil
}

// PermissionBits packs p.
func PermissionBits(p groupware.Permission) (int, error) {
	return CreatePermissionBits(p.FolderPermission, p.ReadPermission, p.WritePermission, p.DeletePermission, p.FolderAdmin)
}

// ParsePermission unpacks bits into a permission for entity.
func ParsePermission(bits, entity int, group bool) (groupware.Permission, error) {
	fp, rp, wp, dp, admin, err := ParsePermissionBits(bits)
	if err != nil {
		return groupware.Permission{}, err
	}
	return groupware.Permission{
		Entity:           entity,
		Group:            group,
		FolderPermission: fp,
		ReadPermission:   rp,
		WritePermission:  wp,
		DeletePermission: dp,
		FolderAdmin:      admin,
	}, nil
}

type permissionJSON struct {
	Bits   int  `json:"bits"`
	Entity int  `json:"entity"`
	Group  bool `json:"group"`
}

func permissionList(f *groupware.Folder, _ *Env) (any, bool, error) {
	perms, ok := f.Permissions.Get()
	if !ok {
		return nil, false, nil
	}
	out := make([]permissionJSON, len(perms))
	for i, p := range perms {
		bits, err := PermissionBits(p)
		if err != nil {
			return nil, false, fmt.Errorf("entity %d: %w", p.Entity, err)
		}
		out[i] = permissionJSON{Bits: bits, Entity: p.Entity, Group: p.Group}
	}
	return out, true, nil
}

func ownRights(f *groupware.Folder, _ *Env) (any, bool, error) {
	p, ok := f.OwnRights.Get()
	if !ok {
		return 0, false, nil
	}
	bits, err := PermissionBits(p)
	if err != nil {
		return nil, false, err
	}
	return bits, true, nil
}

func moduleName(f *groupware.Folder, _ *Env) (any, bool, error) {
	m, ok := f.Module.Get()
	if !ok {
		return nil, false, nil
	}
	if name, ok := fields.ModuleNames[m]; ok {
		return name, true, nil
	}
	return strconv.Itoa(m), true, nil
}

// Folders write their ids as strings; ids 1 and 20 replace the numeric data
// object columns.
var Folders = NewTable("folder",
	lift(dataColumns, func(f *groupware.Folder) *groupware.DataObject { return &f.DataObject }),
	[]Column[*groupware.Folder]{
		stringColumn(fields.ObjectID, func(f *groupware.Folder) optional.Field[string] { return f.ID }),
		stringColumn(fields.FolderID, func(f *groupware.Folder) optional.Field[string] { return f.ParentID }),
		stringColumn(fields.FolderTitle, func(f *groupware.Folder) optional.Field[string] { return f.Title }),
		{Field: fields.FolderModule, Value: moduleName},
		primitiveColumn(fields.FolderType, func(f *groupware.Folder) optional.Field[int] { return f.Type }),
		primitiveColumn(fields.FolderSubfolders, func(f *groupware.Folder) optional.Field[bool] { return f.Subfolders }),
		{Field: fields.FolderOwnRights, Primitive: true, Value: ownRights},
		{Field: fields.FolderPermissions, Value: permissionList},
		stringColumn(fields.FolderSummary, func(f *groupware.Folder) optional.Field[string] { return f.Summary }),
		primitiveColumn(fields.FolderStandardFolder, func(f *groupware.Folder) optional.Field[bool] { return f.StandardFolder }),
		primitiveColumn(fields.FolderTotal, func(f *groupware.Folder) optional.Field[int] { return f.Total }),
		primitiveColumn(fields.FolderNew, func(f *groupware.Folder) optional.Field[int] { return f.New }),
		primitiveColumn(fields.FolderUnread, func(f *groupware.Folder) optional.Field[int] { return f.Unread }),
		primitiveColumn(fields.FolderDeleted, func(f *groupware.Folder) optional.Field[int] { return f.Deleted }),
		primitiveColumn(fields.FolderCapabilities, func(f *groupware.Folder) optional.Field[int] { return f.Capabilities }),
		primitiveColumn(fields.FolderSubscribed, func(f *groupware.Folder) optional.Field[bool] { return f.Subscribed }),
		primitiveColumn(fields.FolderSubscribedSubfolders, func(f *groupware.Folder) optional.Field[bool] { return f.SubscribedSubfolders }),
		primitiveColumn(fields.FolderStandardFolderType, func(f *groupware.Folder) optional.Field[int] { return f.StandardFolderType }),
	},
)

type FolderWriter = Writer[*groupware.Folder]

func NewFolderWriter(env *Env) *FolderWriter {
	return NewWriter(Folders, env)
}
