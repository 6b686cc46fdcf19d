// Package config holds the run configuration: which database to reach
// and which table and columns back the filesystem. The configuration is
// an explicit value handed to the components that need it; nothing in
// this module reads settings from process-wide state.
package config

import (
	"os"
	"os/user"

	"gopkg.in/yaml.v3"

	"github.com/rowfs/rowfs/pkg/fserr"
)

// Defaults matching the tool's MySQL-first heritage.
const (
	DefaultBackend = "mysql"
	DefaultHost    = "localhost"
	DefaultPort    = 3306
)

// Config names the database and the two columns the filesystem serves.
// NameColumn values become filenames, DataColumn values become file
// content.
type Config struct {
	Backend string `yaml:"backend"`
	Host    string `yaml:"host"`
	Port    int    `yaml:"port"`
	User    string `yaml:"user"`
	// Password is excluded from the YAML schema on purpose: it is
	// supplied interactively or via a password file and must never be
	// serialized or logged.
	Password   string `yaml:"-"`
	Database   string `yaml:"database"`
	Table      string `yaml:"table"`
	NameColumn string `yaml:"name_column"`
	DataColumn string `yaml:"data_column"`
}

// Default returns a Config with the connection defaults filled in and
// everything table-specific left empty.
func Default() Config {
	return Config{
		Backend: DefaultBackend,
		Host:    DefaultHost,
		Port:    DefaultPort,
	}
}

// Load reads a YAML config file on top of the defaults. Fields absent
// from the file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fserr.Config("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fserr.Config("parsing %s: %w", path, err)
	}
	return cfg, nil
}

// Validate normalizes omitted settings and checks everything the
// queries will depend on. It must pass before any connection is opened:
// an identifier that fails here would otherwise be interpolated into
// SQL, so the process refuses to continue.
func (c *Config) Validate() error {
	if c.Backend == "" {
		c.Backend = DefaultBackend
	}
	if c.Host == "" {
		c.Host = DefaultHost
	}
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.Port < 0 || c.Port > 65535 {
		return fserr.Config("port %d out of range", c.Port)
	}
	if c.User == "" {
		if u, err := user.Current(); err == nil {
			c.User = u.Username
		}
	}
	if c.Database == "" {
		return fserr.Config("database name is required")
	}
	if c.Table == "" {
		return fserr.Config("table name is required")
	}
	if c.NameColumn == "" {
		return fserr.Config("name column is required")
	}
	if c.DataColumn == "" {
		return fserr.Config("data column is required")
	}
	for _, ident := range []struct{ what, value string }{
		{"table name", c.Table},
		{"name column", c.NameColumn},
		{"data column", c.DataColumn},
	} {
		if !ValidIdentifier(ident.value) {
			return fserr.Config("illegal characters in %s %q", ident.what, ident.value)
		}
	}
	return nil
}
