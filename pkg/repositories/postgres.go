package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cbodonnell/isozombie/pkg/log"
	"github.com/cbodonnell/isozombie/pkg/repositories/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository connects to the database and applies the migrations.
// The caller is responsible for calling Close() on the repository.
func NewPostgresRepository(ctx context.Context, connStr string) (Repository, error) {
	pool, err := connectDb(ctx, connStr)
	if err != nil {
		return nil, err
	}

	scripts, err := migrationScripts("postgres")
	if err != nil {
		pool.Close()
		return nil, err
	}
	for i, migration := range scripts {
		if _, err := pool.Exec(ctx, migration); err != nil {
			pool.Close()
			return nil, fmt.Errorf("failed to execute migration %d: %v", i+1, err)
		}
	}

	return &PostgresRepository{
		pool: pool,
	}, nil
}

func connectDb(ctx context.Context, connStr string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %v", err)
	}

	var username string
	var database string
	err = pool.QueryRow(ctx, "SELECT current_user, current_database()").Scan(&username, &database)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to query database: %v", err)
	}

	log.Info("Connected to %s as %s", database, username)

	return pool, nil
}

func (r *PostgresRepository) Close(ctx context.Context) error {
	r.pool.Close()
	return nil
}

func (r *PostgresRepository) SaveScore(ctx context.Context, score *models.Score) (*models.Score, error) {
	s := *score
	if s.CreatedAt == 0 {
		s.CreatedAt = time.Now().UnixMilli()
	}

	q := `
	INSERT INTO scores (name, points, kills, wave, duration_ms, created_at)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING id;
	`
	if err := r.pool.QueryRow(ctx, q, s.Name, s.Points, s.Kills, s.Wave, s.DurationMS, s.CreatedAt).Scan(&s.ID); err != nil {
		return nil, fmt.Errorf("failed to insert score: %v", err)
	}

	return &s, nil
}

func (r *PostgresRepository) TopScores(ctx context.Context, limit int) ([]*models.Score, error) {
	q := `
	SELECT id, name, points, kills, wave, duration_ms, created_at FROM scores
	ORDER BY points DESC, created_at ASC, id ASC
	LIMIT $1;
	`
	rows, err := r.pool.Query(ctx, q, limit)
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

func (r *PostgresRepository) BestScore(ctx context.Context, name string) (*models.Score, error) {
	q := `
	SELECT id, name, points, kills, wave, duration_ms, created_at FROM scores
	WHERE name = $1
	ORDER BY points DESC, created_at ASC, id ASC
	LIMIT 1;
	`
	s := &models.Score{}
	if err := r.pool.QueryRow(ctx, q, name).Scan(&s.ID, &s.Name, &s.Points, &s.Kills, &s.Wave, &s.DurationMS, &s.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &ErrNotFound{Name: name}
		}
		return nil, fmt.Errorf("failed to scan score: %v", err)
	}

	return s, nil
}
