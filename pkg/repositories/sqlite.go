package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/cbodonnell/isozombie/pkg/repositories/models"
	_ "github.com/mattn/go-sqlite3"
)

type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository opens the database at path and applies the migrations.
func NewSQLiteRepository(ctx context.Context, path string) (Repository, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite database path is empty")
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %v", err)
	}
	// sqlite serializes writers anyway
	db.SetMaxOpenConns(1)

	scripts, err := migrationScripts("sqlite")
	if err != nil {
		db.Close()
		return nil, err
	}
	for i, migration := range scripts {
		if _, err := db.ExecContext(ctx, migration); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to execute migration %d: %v", i+1, err)
		}
	}

	return &SQLiteRepository{
		db: db,
	}, nil
}

func (r *SQLiteRepository) Close(ctx context.Context) error {
	return r.db.Close()
}

func (r *SQLiteRepository) SaveScore(ctx context.Context, score *models.Score) (*models.Score, error) {
	s := *score
	if s.CreatedAt == 0 {
		s.CreatedAt = time.Now().UnixMilli()
	}

	q := `
	INSERT INTO scores (name, points, kills, wave, duration_ms, created_at)
	VALUES (?, ?, ?, ?, ?, ?);
	`
	res, err := r.db.ExecContext(ctx, q, s.Name, s.Points, s.Kills, s.Wave, s.DurationMS, s.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert score: %v", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get score id: %v", err)
	}
	s.ID = id

	return &s, nil
}

func (r *SQLiteRepository) TopScores(ctx context.Context, limit int) ([]*models.Score, error) {
	q := `
	SELECT id, name, points, kills, wave, duration_ms, created_at FROM scores
	ORDER BY points DESC, created_at ASC, id ASC
	LIMIT ?;
	`
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query scores: %v", err)
	}
	defer rows.Close()

	scores := make([]*models.Score, 0, limit)
	for rows.Next() {
		s := &models.Score{}
		if err := rows.Scan(&s.ID, &s.Name, &s.Points, &s.Kills, &s.Wave, &s.DurationMS, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan score: %v", err)
		}
		scores = append(scores, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate scores: %v", err)
	}

	return scores, nil
}

func (r *SQLiteRepository) BestScore(ctx context.Context, name string) (*models.Score, error) {
	q := `
	SELECT id, name, points, kills, wave, duration_ms, created_at FROM scores
	WHERE name = ?
	ORDER BY points DESC, created_at ASC, id ASC
	LIMIT 1;
	`
	s := &models.Score{}
	if err := r.db.QueryRowContext(ctx, q, name).Scan(&s.ID, &s.Name, &s.Points, &s.Kills, &s.Wave, &s.DurationMS, &s.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, &ErrNotFound{Name: name}
		}
		return nil, fmt.Errorf("failed to scan score: %v", err)
	}

	return s, nil
}
