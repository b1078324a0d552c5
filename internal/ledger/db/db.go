package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"github.com/pupbiru/humanitix-auto-codes/internal/ledger"
)

type Entry struct {
	bun.BaseModel `bun:"table:upload_ledger"`

	EventID   string    `bun:"event_id,pk"`
	Marker    string    `bun:"marker,notnull"`
	UpdatedAt time.Time `bun:"updated_at,notnull"`
}

// DB is the SQLite-backed ledger store.
type DB struct {
	Bun *bun.DB
}

// Open opens (or creates) the ledger database and ensures the table exists.
func Open(dsn string) (*DB, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open ledger database: %w", err)
	}
	if err := sqldb.Ping(); err != nil {
		return nil, fmt.Errorf("connect to ledger database: %w", err)
	}

	bunDB := bun.NewDB(sqldb, sqlitedialect.New())
	if _, err := bunDB.NewCreateTable().
		Model((*Entry)(nil)).
		IfNotExists().
		Exec(context.Background()); err != nil {
		return nil, fmt.Errorf("create ledger table: %w", err)
	}

	return &DB{Bun: bunDB}, nil
}

// Get fetches the marker recorded for an event, empty if none.
func (d *DB) Get(ctx context.Context, eventID string) (ledger.Marker, error) {
	var entry Entry
	err := d.Bun.NewSelect().
		Model(&entry).
		Where("event_id = ?", eventID).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return ledger.Marker(entry.Marker), nil
}

// Set upserts the marker for an event.
func (d *DB) Set(ctx context.Context, eventID string, marker ledger.Marker) error {
	entry := Entry{
		EventID:   eventID,
		Marker:    string(marker),
		UpdatedAt: time.Now(),
	}
	_, err := d.Bun.NewInsert().
		Model(&entry).
		On("CONFLICT (event_id) DO UPDATE").
		Set("marker = EXCLUDED.marker").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	return err
}

func (d *DB) Close() error {
	return d.Bun.Close()
}
