package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"github.com/guttosm/epq-service/internal/domain/model"
)

const (
	historyColumns = `timestamp, kind, label, request_id,
		demand, manufacturer_setup_cost, supplier_setup_cost, holding_cost,
		defect_rate, defect_penalty, production_rate,
		optimal_lot_size, total_cost, convex`

	insertHistorySQL = `INSERT INTO optimization_history (` + historyColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
)

// SQLiteHistoryRepository stores optimisation history in a local SQLite file.
type SQLiteHistoryRepository struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteHistoryRepository opens (or creates) the database and runs migrations.
func NewSQLiteHistoryRepository(path string) (*SQLiteHistoryRepository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}

	r := &SQLiteHistoryRepository{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Info().Str("path", path).Msg("SQLite history store opened")
	return r, nil
}

func (r *SQLiteHistoryRepository) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS optimization_history (
			id                      INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp               INTEGER NOT NULL,
			kind                    TEXT NOT NULL,
			label                   TEXT,
			request_id              TEXT,
			demand                  REAL NOT NULL,
			manufacturer_setup_cost REAL NOT NULL,
			supplier_setup_cost     REAL NOT NULL,
			holding_cost            REAL NOT NULL,
			defect_rate             REAL NOT NULL,
			defect_penalty          REAL NOT NULL,
			production_rate         REAL NOT NULL,
			optimal_lot_size        REAL NOT NULL,
			total_cost              REAL NOT NULL,
			convex                  INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_history_kind_ts ON optimization_history(kind, timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_history_ts ON optimization_history(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec migration: %w", err)
		}
	}
	return nil
}

// Append stores one record and sets its ID.
func (r *SQLiteHistoryRepository) Append(ctx context.Context, record *model.HistoryRecord) error {
	return r.AppendMany(ctx, []*model.HistoryRecord{record})
}

// AppendMany stores records in a single transaction.
func (r *SQLiteHistoryRepository) AppendMany(ctx context.Context, records []*model.HistoryRecord) error {
	if len(records) == 0 {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin history tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, insertHistorySQL)
	if err != nil {
		return fmt.Errorf("prepare history insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	ids := make([]int64, len(records))
	for i, rec := range records {
		if rec.Timestamp.IsZero() {
			rec.Timestamp = now
		}
		p := rec.Parameters
		res, err := stmt.ExecContext(ctx,
			rec.Timestamp.UnixNano(), rec.Kind, rec.Label, rec.RequestID,
			p.Demand, p.ManufacturerSetupCost, p.SupplierSetupCost, p.HoldingCost,
			p.DefectRate, p.DefectPenalty, p.ProductionRate,
			rec.OptimalLotSize, rec.TotalCost, rec.Convex,
		)
		if err != nil {
			return fmt.Errorf("insert history: %w", err)
		}
		if ids[i], err = res.LastInsertId(); err != nil {
			return fmt.Errorf("history insert id: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit history: %w", err)
	}
	for i, rec := range records {
		rec.ID = strconv.FormatInt(ids[i], 10)
	}
	return nil
}

// List returns the newest records first.
func (r *SQLiteHistoryRepository) List(ctx context.Context, opts model.HistoryQueryOptions) ([]*model.HistoryRecord, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	query := `SELECT id, ` + historyColumns + ` FROM optimization_history`
	args := []interface{}{}
	if opts.Kind != "" {
		query += ` WHERE kind = ?`
		args = append(args, opts.Kind)
	}
	query += ` ORDER BY timestamp DESC, id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var records []*model.HistoryRecord
	for rows.Next() {
		var (
			rec   model.HistoryRecord
			id    int64
			ts    int64
			label sql.NullString
			reqID sql.NullString
		)
		p := &rec.Parameters
		if err := rows.Scan(&id, &ts, &rec.Kind, &label, &reqID,
			&p.Demand, &p.ManufacturerSetupCost, &p.SupplierSetupCost, &p.HoldingCost,
			&p.DefectRate, &p.DefectPenalty, &p.ProductionRate,
			&rec.OptimalLotSize, &rec.TotalCost, &rec.Convex,
		); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		rec.ID = strconv.FormatInt(id, 10)
		rec.Timestamp = time.Unix(0, ts).UTC()
		rec.Label = label.String
		rec.RequestID = reqID.String
		records = append(records, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}
	return records, nil
}

// Count returns the number of records, optionally of one kind.
func (r *SQLiteHistoryRepository) Count(ctx context.Context, kind string) (int64, error) {
	query := `SELECT COUNT(*) FROM optimization_history`
	args := []interface{}{}
	if kind != "" {
		query += ` WHERE kind = ?`
		args = append(args, kind)
	}

	var n int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count history: %w", err)
	}
	return n, nil
}

// HealthCheck pings the database.
func (r *SQLiteHistoryRepository) HealthCheck(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Close closes the database.
func (r *SQLiteHistoryRepository) Close() error {
	return r.db.Close()
}
