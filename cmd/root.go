// Package cmd wires the rowfs command tree: shared database and table
// flags on the root, with subcommands to mount the filesystem or query
// it without mounting.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rowfs/rowfs/pkg/config"
	"github.com/rowfs/rowfs/pkg/sqlutils"
)

// openTimeout bounds how long startup may spend connecting and pinging.
const openTimeout = 10 * time.Second

// rootFlags carries the persistent flag values for one command tree.
// Every NewRootCmd call gets its own instance; nothing about a run is
// kept in package globals.
type rootFlags struct {
	configFile     string
	backend        string
	host           string
	port           int
	user           string
	passwordPrompt bool
	passwordFile   string
	database       string
	table          string
	nameColumn     string
	dataColumn     string
	logLevel       string
}

// NewRootCmd builds the rowfs command tree.
func NewRootCmd() *cobra.Command {
	fl := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:   "rowfs",
		Short: "Serve one database table as a read-only filesystem",
		Long: `rowfs exposes the rows of one database table as a flat directory of
read-only files: the name column supplies decimal filenames, the data
column supplies content, and sizes always reflect live row state.`,
		Version:      buildVersion(),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(fl.logLevel)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&fl.configFile, "config", "", "YAML file supplying any setting not given as a flag")
	pf.StringVarP(&fl.backend, "backend", "b", config.DefaultBackend,
		fmt.Sprintf("database backend [%s]", strings.Join(sqlutils.BackendNames(), "|")))
	pf.StringVar(&fl.host, "host", config.DefaultHost, "database server host")
	pf.IntVar(&fl.port, "port", config.DefaultPort, "database server port")
	pf.StringVar(&fl.user, "user", "", "database user (default: current OS user)")
	pf.BoolVarP(&fl.passwordPrompt, "password-prompt", "p", false, "prompt for the database password")
	pf.StringVar(&fl.passwordFile, "password-file", "", `file holding the database password ("-" prompts)`)
	pf.StringVar(&fl.database, "database", "", "database name (sqlite3: path of the database file)")
	pf.StringVar(&fl.table, "table", "", "table to expose")
	pf.StringVar(&fl.nameColumn, "name-column", "", "column holding decimal row names")
	pf.StringVar(&fl.dataColumn, "data-column", "", "column holding file content")
	pf.StringVar(&fl.logLevel, "log-level", "info", "log level [debug|info|warn|error]")

	rootCmd.AddCommand(
		newMountCmd(fl),
		newLsCmd(fl),
		newCatCmd(fl),
		newVerifyCmd(fl),
	)

	return rootCmd
}

// Execute runs the command tree. This is called by main.main().
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func setupLogging(level string) error {
	var ll slog.Level
	switch level {
	case "debug":
		ll = slog.LevelDebug
	case "info":
		ll = slog.LevelInfo
	case "warn":
		ll = slog.LevelWarn
	case "error":
		ll = slog.LevelError
	default:
		return fmt.Errorf("unknown log level %q", level)
	}

	slog.SetDefault(slog.New(tint.NewHandler(colorable.NewColorable(os.Stderr), &tint.Options{
		Level:      ll,
		TimeFormat: "15:04:05.000",
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
	})))
	return nil
}

// loadConfig assembles the effective configuration: defaults, then the
// optional YAML file, then every flag set explicitly on the command
// line.
func (fl *rootFlags) loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if fl.configFile != "" {
		var err error
		if cfg, err = config.Load(fl.configFile); err != nil {
			return cfg, err
		}
	}

	set := cmd.Flags()
	if set.Changed("backend") {
		cfg.Backend = fl.backend
	}
	if set.Changed("host") {
		cfg.Host = fl.host
	}
	if set.Changed("port") {
		cfg.Port = fl.port
	}
	if set.Changed("user") {
		cfg.User = fl.user
	}
	if set.Changed("database") {
		cfg.Database = fl.database
	}
	if set.Changed("table") {
		cfg.Table = fl.table
	}
	if set.Changed("name-column") {
		cfg.NameColumn = fl.nameColumn
	}
	if set.Changed("data-column") {
		cfg.DataColumn = fl.dataColumn
	}
	return cfg, nil
}

// resolvePassword fills cfg.Password from the password file or an
// interactive prompt. The secret lives only in cfg from here on and is
// never logged or echoed.
func (fl *rootFlags) resolvePassword(cfg *config.Config) error {
	switch {
	case fl.passwordFile != "" && fl.passwordFile != "-":
		raw, err := os.ReadFile(fl.passwordFile)
		if err != nil {
			return fmt.Errorf("reading password file: %w", err)
		}
		cfg.Password = trimPasswordTail(string(raw))
	case fl.passwordPrompt || fl.passwordFile == "-":
		fd := int(os.Stdin.Fd())
		if !term.IsTerminal(fd) {
			return errors.New("standard input is not a terminal; use --password-file")
		}
		fmt.Fprint(os.Stderr, "Enter password: ")
		secret, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return fmt.Errorf("reading password: %w", err)
		}
		cfg.Password = string(secret)
	}
	return nil
}

// trimPasswordTail strips the trailing newline editors and shell
// redirection leave in password files.
func trimPasswordTail(s string) string {
	return strings.TrimRight(s, "\r\n")
}

// openStore runs the startup sequence shared by every subcommand:
// assemble the configuration, validate it before anything touches the
// network, resolve the password, and connect.
func openStore(cmd *cobra.Command, fl *rootFlags) (*sqlutils.Store, config.Config, error) {
	cfg, err := fl.loadConfig(cmd)
	if err != nil {
		return nil, cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, cfg, err
	}
	if err := fl.resolvePassword(&cfg); err != nil {
		return nil, cfg, err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), openTimeout)
	defer cancel()
	store, err := sqlutils.Open(ctx, cfg, slog.Default())
	if err != nil {
		return nil, cfg, err
	}
	return store, cfg, nil
}

// buildVersion reports the module version stamped by the toolchain.
func buildVersion() string {
	info, ok := debug.ReadBuildInfo()
	if !ok || info.Main.Version == "" || info.Main.Version == "(devel)" {
		return "dev"
	}
	return info.Main.Version
}
