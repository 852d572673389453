package typlate

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/itsatony/go-cuserr"
	_ "github.com/lib/pq" // PostgreSQL driver
)

// SQLConfig configures a SQLStore.
type SQLConfig struct {
	// Driver is the database/sql driver name: StoreDriverPostgres or
	// StoreDriverSQLite. The postgres driver is linked in; programs using
	// sqlite3 import github.com/mattn/go-sqlite3 themselves.
	Driver string

	// ConnectionString is the DSN passed to sql.Open.
	ConnectionString string

	// TablePrefix prefixes the table name. Default: "typlate_"
	TablePrefix string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration

	// QueryTimeout bounds every statement. Default: 30 seconds
	QueryTimeout time.Duration

	// AutoMigrate creates the table on open.
	AutoMigrate bool
}

// SQLStore keeps template sources in a single table of a SQL database.
type SQLStore struct {
	db     *sql.DB
	config SQLConfig
	mu     sync.RWMutex
	closed bool
}

type sqlStoreDriver struct {
	driver string
}

func init() {
	RegisterStoreDriver(StoreDriverPostgres, sqlStoreDriver{driver: StoreDriverPostgres})
	RegisterStoreDriver(StoreDriverSQLite, sqlStoreDriver{driver: StoreDriverSQLite})
}

// Open connects and migrates.
func (d sqlStoreDriver) Open(connectionString string) (Store, error) {
	return NewSQLStore(SQLConfig{
		Driver:           d.driver,
		ConnectionString: connectionString,
		AutoMigrate:      true,
	})
}

// NewSQLStore opens the database, verifies the connection and optionally
// creates the template table.
func NewSQLStore(config SQLConfig) (*SQLStore, error) {
	if config.ConnectionString == "" {
		return nil, NewStoreError(ErrMsgEmptyConnString, nil)
	}
	if config.Driver == "" {
		config.Driver = StoreDriverPostgres
	}
	if config.TablePrefix == "" {
		config.TablePrefix = SQLTablePrefix
	}
	if config.MaxOpenConns == 0 {
		config.MaxOpenConns = SQLDefaultMaxOpenConns
	}
	if config.MaxIdleConns == 0 {
		config.MaxIdleConns = SQLDefaultMaxIdleConns
	}
	if config.ConnMaxLifetime == 0 {
		config.ConnMaxLifetime = SQLDefaultConnMaxLifetime
	}
	if config.QueryTimeout == 0 {
		config.QueryTimeout = SQLDefaultQueryTimeout
	}

	db, err := sql.Open(config.Driver, config.ConnectionString)
	if err != nil {
		return nil, withDriver(NewStoreError(ErrMsgStoreFailed, err), config.Driver)
	}
	db.SetMaxOpenConns(config.MaxOpenConns)
	db.SetMaxIdleConns(config.MaxIdleConns)
	db.SetConnMaxLifetime(config.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), config.QueryTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, withDriver(NewStoreError(ErrMsgStoreFailed, err), config.Driver)
	}

	store := &SQLStore{db: db, config: config}
	if config.AutoMigrate {
		if err := store.Migrate(ctx); err != nil {
			db.Close()
			return nil, err
		}
	}
	return store, nil
}

// Migrate creates the template table if it does not exist.
func (s *SQLStore) Migrate(ctx context.Context) error {
	ts := "TIMESTAMPTZ"
	if s.config.Driver == StoreDriverSQLite {
		ts = "TIMESTAMP"
	}
	stmt := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			name       TEXT PRIMARY KEY,
			source     TEXT NOT NULL,
			updated_at %s NOT NULL
		)`, s.tableName(), ts)

	if _, err := s.db.ExecContext(ctx, stmt); err != nil {
		return NewStoreError(ErrMsgStoreFailed, err)
	}
	return nil
}

func (s *SQLStore) Get(ctx context.Context, name string) (string, error) {
	ctx, cancel, err := s.begin(ctx)
	if err != nil {
		return "", err
	}
	defer cancel()
	defer s.mu.RUnlock()

	query := fmt.Sprintf("SELECT source FROM %s WHERE name = %s", s.tableName(), s.bind(1))
	var source string
	err = s.db.QueryRowContext(ctx, query, name).Scan(&source)
	if errors.Is(err, sql.ErrNoRows) {
		return "", NewEntryNotFoundError(name)
	}
	if err != nil {
		return "", withEntry(NewStoreError(ErrMsgStoreFailed, err), name)
	}
	return source, nil
}

func (s *SQLStore) Put(ctx context.Context, name, source string) error {
	if name == "" {
		return NewEmptyEntryNameError()
	}
	ctx, cancel, err := s.begin(ctx)
	if err != nil {
		return err
	}
	defer cancel()
	defer s.mu.RUnlock()

	stmt := fmt.Sprintf(`
		INSERT INTO %s (name, source, updated_at) VALUES (%s, %s, %s)
		ON CONFLICT (name) DO UPDATE SET source = excluded.source, updated_at = excluded.updated_at`,
		s.tableName(), s.bind(1), s.bind(2), s.bind(3))

	if _, err := s.db.ExecContext(ctx, stmt, name, source, time.Now().UTC()); err != nil {
		return withEntry(NewStoreError(ErrMsgStoreFailed, err), name)
	}
	return nil
}

func (s *SQLStore) Delete(ctx context.Context, name string) error {
	ctx, cancel, err := s.begin(ctx)
	if err != nil {
		return err
	}
	defer cancel()
	defer s.mu.RUnlock()

	stmt := fmt.Sprintf("DELETE FROM %s WHERE name = %s", s.tableName(), s.bind(1))
	result, err := s.db.ExecContext(ctx, stmt, name)
	if err != nil {
		return withEntry(NewStoreError(ErrMsgStoreFailed, err), name)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return withEntry(NewStoreError(ErrMsgStoreFailed, err), name)
	}
	if affected == 0 {
		return NewEntryNotFoundError(name)
	}
	return nil
}

func (s *SQLStore) List(ctx context.Context) ([]string, error) {
	ctx, cancel, err := s.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer cancel()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, fmt.Sprintf("SELECT name FROM %s ORDER BY name", s.tableName()))
	if err != nil {
		return nil, NewStoreError(ErrMsgStoreFailed, err)
	}
	defer rows.Close()

	names := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, NewStoreError(ErrMsgStoreFailed, err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, NewStoreError(ErrMsgStoreFailed, err)
	}
	return names, nil
}

func (s *SQLStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

// begin checks ctx, takes the read lock and applies the query timeout.
// On success the caller must release the lock and cancel the context.
func (s *SQLStore) begin(ctx context.Context) (context.Context, context.CancelFunc, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	s.mu.RLock()
	if s.closed {
		s.mu.RUnlock()
		return nil, nil, NewStoreClosedError()
	}
	ctx, cancel := context.WithTimeout(ctx, s.config.QueryTimeout)
	return ctx, cancel, nil
}

func (s *SQLStore) tableName() string {
	return s.config.TablePrefix + "templates"
}

// bind returns the n-th positional parameter in the driver's syntax.
func (s *SQLStore) bind(n int) string {
	if s.config.Driver == StoreDriverSQLite {
		return "?"
	}
	return "$" + strconv.Itoa(n)
}

func withDriver(err error, driver string) error {
	var customErr *cuserr.CustomError
	if errors.As(err, &customErr) {
		customErr.WithMetadata(MetaKeyDriver, driver)
	}
	return err
}
