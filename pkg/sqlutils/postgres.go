package sqlutils

import (
	"net"
	"net/url"
	"strconv"

	_ "github.com/lib/pq"

	"github.com/rowfs/rowfs/pkg/config"
)

// PostgresDialect speaks to PostgreSQL servers via lib/pq.
type PostgresDialect struct{}

var _ Dialect = PostgresDialect{}

func (PostgresDialect) Name() string { return "postgres" }

// DSN builds a postgres:// URL. sslmode=disable matches the common
// same-host or LAN arrangement this tool is pointed at; url.UserPassword
// keeps credentials with reserved characters intact.
func (PostgresDialect) DSN(cfg config.Config) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Path:     "/" + cfg.Database,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

func (PostgresDialect) QuoteIdentifier(ident string) string {
	return `"` + ident + `"`
}

func (PostgresDialect) ByteLength(column string) string {
	return "OCTET_LENGTH(" + column + ")"
}
