package db

import (
	"context"
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/antigravity/bumps/internal/bumps"
	"github.com/antigravity/bumps/internal/models"
)

// MemoryDSN keeps the session in process memory only.
const MemoryDSN = ":memory:"

// Store holds the golfer list and the course for one session. Holes keep the
// position they were seeded at; difficulty updates address that position.
type Store struct {
	db     *sql.DB
	logger zerolog.Logger
}

func Open(ctx context.Context, dsn string, logger zerolog.Logger) (*Store, error) {
	if dsn == "" {
		dsn = MemoryDSN
	}
	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "open sqlite")
	}
	// Every connection to :memory: is its own database.
	conn.SetMaxOpenConns(1)

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, errors.Wrap(err, "ping sqlite")
	}

	s := &Store{db: conn, logger: logger}
	if err := s.createTables(ctx); err != nil {
		conn.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createTables(ctx context.Context) error {
	createGolfersTable := `CREATE TABLE IF NOT EXISTS golfers (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		allowance INTEGER NOT NULL
	);`

	createHolesTable := `CREATE TABLE IF NOT EXISTS holes (
		position INTEGER PRIMARY KEY,
		hole_number INTEGER NOT NULL UNIQUE,
		difficulty INTEGER NOT NULL
	);`

	for _, stmt := range []string{createGolfersTable, createHolesTable} {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return errors.Wrap(err, "create tables")
		}
	}

	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM holes").Scan(&count); err != nil {
		return errors.Wrap(err, "count holes")
	}
	if count == 0 {
		return s.seedHoles(ctx, s.db)
	}
	return nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *Store) seedHoles(ctx context.Context, ex execer) error {
	for i, h := range bumps.DefaultHoles() {
		_, err := ex.ExecContext(ctx,
			"INSERT INTO holes (position, hole_number, difficulty) VALUES (?, ?, ?)",
			i, h.Number, h.Difficulty)
		if err != nil {
			return errors.Wrapf(err, "seed hole %d", h.Number)
		}
	}
	s.logger.Debug().Int("holes", 18).Msg("seeded default course")
	return nil
}

// Golfers returns golfers in the order they were added.
func (s *Store) Golfers(ctx context.Context) ([]models.Golfer, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT name, allowance FROM golfers ORDER BY id")
	if err != nil {
		return nil, errors.Wrap(err, "query golfers")
	}
	defer rows.Close()

	golfers := []models.Golfer{}
	for rows.Next() {
		var g models.Golfer
		if err := rows.Scan(&g.Name, &g.Allowance); err != nil {
			return nil, errors.Wrap(err, "scan golfer")
		}
		golfers = append(golfers, g)
	}
	return golfers, errors.Wrap(rows.Err(), "iterate golfers")
}

// AddGolfers appends golfers in one transaction.
func (s *Store) AddGolfers(ctx context.Context, golfers ...models.Golfer) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin")
	}

	for _, g := range golfers {
		_, err := tx.ExecContext(ctx, "INSERT INTO golfers (name, allowance) VALUES (?, ?)", g.Name, g.Allowance)
		if err != nil {
			tx.Rollback()
			return errors.Wrapf(err, "insert golfer %s", g.Name)
		}
	}

	return errors.Wrap(tx.Commit(), "commit golfers")
}

// Holes returns the course in storage order, which is not necessarily hole
// number order.
func (s *Store) Holes(ctx context.Context) ([]models.Hole, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT hole_number, difficulty FROM holes ORDER BY position")
	if err != nil {
		return nil, errors.Wrap(err, "query holes")
	}
	defer rows.Close()

	var holes []models.Hole
	for rows.Next() {
		var h models.Hole
		if err := rows.Scan(&h.Number, &h.Difficulty); err != nil {
			return nil, errors.Wrap(err, "scan hole")
		}
		holes = append(holes, h)
	}
	return holes, errors.Wrap(rows.Err(), "iterate holes")
}

// SaveDifficulties writes each hole's difficulty back to its position.
func (s *Store) SaveDifficulties(ctx context.Context, holes []models.Hole) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin")
	}

	for i, h := range holes {
		_, err := tx.ExecContext(ctx, "UPDATE holes SET difficulty = ? WHERE position = ?", h.Difficulty, i)
		if err != nil {
			tx.Rollback()
			return errors.Wrapf(err, "update hole at position %d", i)
		}
	}

	return errors.Wrap(tx.Commit(), "commit difficulties")
}

// Reset drops all golfers and restores the default course.
func (s *Store) Reset(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin")
	}

	for _, stmt := range []string{"DELETE FROM golfers", "DELETE FROM holes"} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			tx.Rollback()
			return errors.Wrap(err, "reset")
		}
	}
	if err := s.seedHoles(ctx, tx); err != nil {
		tx.Rollback()
		return err
	}

	return errors.Wrap(tx.Commit(), "commit reset")
}
