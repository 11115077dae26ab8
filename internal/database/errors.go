package database

import (
	"errors"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// isIntegrityError reports whether err is a constraint violation (uniqueness,
// foreign key, not-null). These are reported distinctly from other execution
// failures so callers can tell a rejected write from a broken engine.
func isIntegrityError(err error) bool {
	var se *sqlite.Error
	if errors.As(err, &se) {
		return se.Code()&0xff == sqlite3.SQLITE_CONSTRAINT
	}
	return false
}
