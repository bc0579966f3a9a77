package lfpid

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/go-sql-driver/mysql"
	sqlx "github.com/jmoiron/sqlx" //make alias name the package to sqlx
)

func ConnectToDatabase(user string, pass string, host string, dbname string) (*sqlx.DB, error) {
	port := "3306"
	dbURI := fmt.Sprintf("%s:%s@(%s:%s)/%s?parseTime=true", user, pass, host, port, dbname)
	db, err := sqlx.Connect("mysql", dbURI)
	return db, err
}

// Schema of the parameter table. Each row is one labeled bin of the object
// stored under Path, valid for timestamps (ms) in [MinTimestamp, MaxTimestamp].
const CalibrationSchema = `CREATE TABLE IF NOT EXISTS BetheBlochParams (
	Path         VARCHAR(255) NOT NULL,
	Label        VARCHAR(64)  NOT NULL,
	Value        DOUBLE       NOT NULL,
	MinTimestamp BIGINT       NOT NULL,
	MaxTimestamp BIGINT       NOT NULL
)`

type ParameterBinEntry struct {
	Label string  `db:"Label"`
	Value float64 `db:"Value"`
}

// DBCalibrationStore serves parameter histograms from the BetheBlochParams
// table. Fetched objects are cached for the lifetime of the store.
type DBCalibrationStore struct {
	db        *sqlx.DB
	timestamp int64

	mu    sync.Mutex
	cache map[string]*Histogram
}

// NewDBCalibrationStore queries objects valid at timestamp (ms since epoch).
// A timestamp <= 0 selects the current time.
func NewDBCalibrationStore(db *sqlx.DB, timestamp int64) *DBCalibrationStore {
	if timestamp <= 0 {
		timestamp = time.Now().UnixMilli()
	}
	return &DBCalibrationStore{
		db:        db,
		timestamp: timestamp,
		cache:     make(map[string]*Histogram),
	}
}

func (s *DBCalibrationStore) Timestamp() int64 {
	return s.timestamp
}

func (s *DBCalibrationStore) Fetch(ctx context.Context, key string) (*Histogram, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if h, ok := s.cache[key]; ok {
		return h, nil
	}

	query := "SELECT Label, Value FROM BetheBlochParams WHERE Path = ? AND MinTimestamp <= ? AND MaxTimestamp >= ? ORDER BY Label"
	if configuration.Verbosity > 0 {
		message := fmt.Sprintf("Reading object %s valid at %d from database", key, s.timestamp)
		logger.Info(message, "database")
	}
	if configuration.Verbosity > 2 {
		message := fmt.Sprintf("Query: %s", query)
		logger.Info(message, "database")
	}
	rows, err := s.db.QueryxContext(ctx, query, key, s.timestamp, s.timestamp)
	if err != nil {
		return nil, fmt.Errorf("error querying database: %w", err)
	}
	defer rows.Close()

	h := &Histogram{Name: key}
	for rows.Next() {
		result := ParameterBinEntry{}
		if err := rows.StructScan(&result); err != nil {
			return nil, fmt.Errorf("error scanning DB row: %w", err)
		}
		h.Labels = append(h.Labels, result.Label)
		h.Contents = append(h.Contents, result.Value)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading DB rows: %w", err)
	}
	if h.NBins() == 0 {
		return nil, fmt.Errorf("%w: %s at timestamp %d", ErrNotFound, key, s.timestamp)
	}
	s.cache[key] = h
	return h, nil
}

// StoreParameters inserts a parameter set under path with the given validity.
func StoreParameters(ctx context.Context, db *sqlx.DB, path string, p ParameterSet, minTimestamp, maxTimestamp int64) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	query := "INSERT INTO BetheBlochParams (Path, Label, Value, MinTimestamp, MaxTimestamp) VALUES (?, ?, ?, ?, ?)"
	for i, v := range p.Values() {
		if _, err := tx.ExecContext(ctx, query, path, ParameterLabels[i], float64(v), minTimestamp, maxTimestamp); err != nil {
			err = fmt.Errorf("error inserting %s for %s: %w", ParameterLabels[i], path, err)
			return errors.Join(err, tx.Rollback())
		}
	}
	return tx.Commit()
}
