// Package sqlutils executes the read-only queries the filesystem needs
// against any supported SQL backend. One table, two columns: the name
// column supplies row keys, the data column supplies content. Keys are
// always bound as statement parameters; the only strings interpolated
// into SQL are identifiers that passed config validation.
package sqlutils

import (
	"sort"

	"github.com/rowfs/rowfs/pkg/config"
)

// Dialect captures what differs between the supported database servers:
// driver name, DSN construction, identifier quoting, and the expression
// that yields a column's byte length.
type Dialect interface {
	// Name is the registered database/sql driver name.
	Name() string
	// DSN renders the driver's connection string from cfg.
	DSN(cfg config.Config) string
	// QuoteIdentifier wraps an already-validated identifier in the
	// dialect's quoting style.
	QuoteIdentifier(ident string) string
	// ByteLength is a SQL expression evaluating to the byte length of
	// column, usable in a SELECT list.
	ByteLength(column string) string
}

// AvailableDialects registers every supported backend under the name
// used in configuration.
var AvailableDialects = map[string]Dialect{
	"mysql":    MySQLDialect{},
	"postgres": PostgresDialect{},
	"sqlite3":  SQLiteDialect{},
}

// BackendNames lists the registered backend names in sorted order, for
// help text and error messages.
func BackendNames() []string {
	names := make([]string, 0, len(AvailableDialects))
	for name := range AvailableDialects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
