package sqlutils

import (
	"fmt"
	"net"
	"strconv"

	_ "github.com/go-sql-driver/mysql"

	"github.com/rowfs/rowfs/pkg/config"
)

// MySQLDialect speaks to MySQL and MariaDB servers.
type MySQLDialect struct{}

var _ Dialect = MySQLDialect{}

func (MySQLDialect) Name() string { return "mysql" }

func (MySQLDialect) DSN(cfg config.Config) string {
	addr := net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	return fmt.Sprintf("%s:%s@tcp(%s)/%s", cfg.User, cfg.Password, addr, cfg.Database)
}

func (MySQLDialect) QuoteIdentifier(ident string) string {
	return "`" + ident + "`"
}

// ByteLength uses OCTET_LENGTH: LENGTH counts bytes on MySQL too, but
// OCTET_LENGTH says what it means regardless of charset settings.
func (MySQLDialect) ByteLength(column string) string {
	return "OCTET_LENGTH(" + column + ")"
}
