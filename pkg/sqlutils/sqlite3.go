package sqlutils

import (
	_ "github.com/mattn/go-sqlite3"

	"github.com/rowfs/rowfs/pkg/config"
)

// SQLiteDialect treats the configured database name as the path of the
// database file. Host, port, and credentials do not apply.
type SQLiteDialect struct{}

var _ Dialect = SQLiteDialect{}

func (SQLiteDialect) Name() string { return "sqlite3" }

func (SQLiteDialect) DSN(cfg config.Config) string {
	return cfg.Database
}

func (SQLiteDialect) QuoteIdentifier(ident string) string {
	return `"` + ident + `"`
}

// ByteLength relies on LENGTH counting bytes for BLOB values. Content
// belongs in a BLOB-affinity column; on TEXT values LENGTH counts
// characters instead.
func (SQLiteDialect) ByteLength(column string) string {
	return "LENGTH(" + column + ")"
}
