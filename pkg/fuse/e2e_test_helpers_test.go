package fuse

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"bazil.org/fuse/fs/fstestutil"
	"github.com/docker/go-connections/nat"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/rowfs/rowfs/pkg/config"
	"github.com/rowfs/rowfs/pkg/sqlutils"
)

// fuseAvailable skips the test when the environment cannot mount FUSE
// filesystems (no /dev/fuse in minimal containers and CI sandboxes).
func fuseAvailable(t *testing.T) {
	t.Helper()
	if _, err := os.Stat("/dev/fuse"); err != nil {
		t.Skipf("fuse not available: %v", err)
	}
}

// mountEnv is a mounted filesystem over a seeded SQLite database. The
// database file stays reachable so tests can mutate rows behind the
// mount's back.
type mountEnv struct {
	mnt    *fstestutil.Mount
	dbPath string
}

// exec runs one statement against the backing database on a fresh
// connection, bypassing the mounted filesystem's store.
func (e *mountEnv) exec(t *testing.T, query string, args ...any) {
	t.Helper()

	db, err := sql.Open("sqlite3", e.dbPath)
	if err != nil {
		t.Fatalf("Couldn't open backing db: %v", err)
	}
	defer db.Close()
	if _, err := db.Exec(query, args...); err != nil {
		t.Fatalf("Couldn't exec %q: %v", query, err)
	}
}

// mountSQLite seeds a SQLite table with rows and mounts a filesystem
// over it. Keys are inserted as integers; nil bodies become NULL.
func mountSQLite(t *testing.T, rows map[int64][]byte) *mountEnv {
	t.Helper()
	fuseAvailable(t)

	dbPath := filepath.Join(t.TempDir(), "rows.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("Couldn't open sqlite db: %v", err)
	}
	if _, err := db.Exec(`CREATE TABLE attachments (file_id INTEGER PRIMARY KEY, body BLOB)`); err != nil {
		t.Fatalf("Couldn't create table: %v", err)
	}
	for id, body := range rows {
		if _, err := db.Exec(`INSERT INTO attachments (file_id, body) VALUES (?, ?)`, id, body); err != nil {
			t.Fatalf("Couldn't insert row %d: %v", id, err)
		}
	}
	if err := db.Close(); err != nil {
		t.Fatalf("Couldn't close seed db: %v", err)
	}

	cfg := config.Config{
		Backend:    "sqlite3",
		Database:   dbPath,
		Table:      "attachments",
		NameColumn: "file_id",
		DataColumn: "body",
	}
	store, err := sqlutils.Open(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("Couldn't open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	mnt, err := fstestutil.MountedT(t, New(store, nil), nil)
	if err != nil {
		t.Fatalf("Couldn't mount filesystem: %v", err)
	}
	t.Cleanup(mnt.Close)

	return &mountEnv{mnt: mnt, dbPath: dbPath}
}

// setupMariaDBContainer starts a MariaDB container and returns a Config
// pointing at it. The container is not terminated here; testcontainers'
// reaper collects it.
func setupMariaDBContainer(t *testing.T) config.Config {
	t.Helper()
	ctx := context.Background()

	const (
		user     = "reader"
		password = "password"
		dbname   = "archive"
	)

	req := testcontainers.ContainerRequest{
		Image:        "mariadb:latest",
		ExposedPorts: []string{"3306/tcp"},
		Env: map[string]string{
			"MARIADB_USER":                 user,
			"MARIADB_PASSWORD":             password,
			"MARIADB_DATABASE":             dbname,
			"MARIADB_RANDOM_ROOT_PASSWORD": "yes",
		},
		WaitingFor: wait.ForListeningPort(nat.Port("3306")),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("Couldn't start mariadb container: %v", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("Couldn't get host for mariadb container: %v", err)
	}
	mappedPort, err := container.MappedPort(ctx, "3306")
	if err != nil {
		t.Fatalf("Couldn't get mapped port for mariadb container: %v", err)
	}

	cfg := config.Default()
	cfg.Host = host
	cfg.Port = mappedPort.Int()
	cfg.User = user
	cfg.Password = password
	cfg.Database = dbname
	cfg.Table = "attachments"
	cfg.NameColumn = "file_id"
	cfg.DataColumn = "body"
	return cfg
}
