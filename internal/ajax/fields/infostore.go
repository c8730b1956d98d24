package fields

// Infostore columns.
var (
	DocumentURL              = Field{700, "url"}
	DocumentTitle            = Field{701, "title"}
	DocumentFileName         = Field{702, "filename"}
	DocumentFileMIMEType     = Field{703, "file_mimetype"}
	DocumentFileSize         = Field{704, "file_size"}
	DocumentVersion          = Field{705, "version"}
	DocumentDescription      = Field{706, "description"}
	DocumentLockedUntil      = Field{707, "locked_until"}
	DocumentFileMD5Sum       = Field{708, "file_md5sum"}
	DocumentVersionComment   = Field{709, "version_comment"}
	DocumentCurrentVersion   = Field{710, "current_version"}
	DocumentNumberOfVersions = Field{711, "number_of_versions"}
)

// Import result keys.
const (
	ImportError = "error"
	ImportCode  = "code"
	ImportLine  = "line"
)
