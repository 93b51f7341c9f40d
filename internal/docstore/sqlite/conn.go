package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

// Open opens (or creates) a SQLite database at the given path and enables WAL
// journal mode. In-memory DSNs (file::memory:...) are passed through as-is.
func Open(path string) (*sql.DB, error) {
	dsn := path
	if !strings.HasPrefix(path, "file:") {
		// ensure parent directory exists to avoid SQLITE_CANTOPEN errors
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
		dsn = fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)", path)
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
