// Package importer turns iCalendar, vCard and RFC 5322 data into groupware
// objects. Objects that fail to import become failed results; only input
// that cannot be read at all is an error.
package importer

import (
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/sonroyaalmerol/groupware/internal/groupware"
)

type Importer struct {
	logger zerolog.Logger
	now    func() time.Time
}

func New(logger zerolog.Logger) *Importer {
	return &Importer{
		logger: logger.With().Str("component", "importer").Logger(),
		now:    time.Now,
	}
}

func failed(folderID, position int, code string, err error) *groupware.ImportResult {
	return &groupware.ImportResult{
		FolderID: strconv.Itoa(folderID),
		Err:      &groupware.ImportError{Code: code, Line: position, Err: err},
	}
}

func succeeded(folderID int, uid string, modified time.Time) *groupware.ImportResult {
	return &groupware.ImportResult{
		ObjectID:     uid,
		FolderID:     strconv.Itoa(folderID),
		LastModified: modified,
	}
}
