package fields

// Folder columns. Ids 1 to 6 and 20 are the data object columns.
var (
	FolderTitle                = Field{300, "title"}
	FolderModule               = Field{301, "module"}
	FolderType                 = Field{302, "type"}
	FolderSubfolders           = Field{304, "subfolders"}
	FolderOwnRights            = Field{305, "own_rights"}
	FolderPermissions          = Field{306, "permissions"}
	FolderSummary              = Field{307, "summary"}
	FolderStandardFolder       = Field{308, "standard_folder"}
	FolderTotal                = Field{309, "total"}
	FolderNew                  = Field{310, "new"}
	FolderUnread               = Field{311, "unread"}
	FolderDeleted              = Field{312, "deleted"}
	FolderCapabilities         = Field{313, "capabilities"}
	FolderSubscribed           = Field{314, "subscribed"}
	FolderSubscribedSubfolders = Field{315, "subscr_subflds"}
	FolderStandardFolderType   = Field{316, "standard_folder_type"}
)

// Permission member keys.
const (
	PermissionBits   = "bits"
	PermissionEntity = "entity"
	PermissionGroup  = "group"
)

// Module names as sent to clients.
var ModuleNames = map[int]string{
	1: "tasks",
	2: "calendar",
	3: "contacts",
	4: "unbound",
	5: "system",
	7: "mail",
	8: "infostore",
}
