package resumes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// PGRepo is the postgres implementation of Repo backed by the resumes table.
type PGRepo struct {
	DB *sql.DB
}

// Put appends a record.
func (r *PGRepo) Put(ctx context.Context, rec Record) error {
	const query = `
		INSERT INTO resumes (user_id, resume_version, resume_url, resume_name, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.DB.ExecContext(ctx, query,
		rec.UserID, rec.Version, rec.URL, rec.Name, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert resume user=%s version=%s: %w", rec.UserID, rec.Version, err)
	}
	return nil
}

// Latest returns the newest record for a key. Versions only increase, so
// insertion order (created_at) matches version order.
func (r *PGRepo) Latest(ctx context.Context, key string) (Record, error) {
	const query = `
		SELECT user_id, resume_version, resume_url, resume_name, created_at
		FROM resumes
		WHERE user_id = $1
		ORDER BY created_at DESC, resume_version DESC
		LIMIT 1`
	row := r.DB.QueryRowContext(ctx, query, key)

	var rec Record
	err := row.Scan(&rec.UserID, &rec.Version, &rec.URL, &rec.Name, &rec.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, fmt.Errorf("query latest resume user=%s: %w", key, err)
	}
	return rec, nil
}

// All returns every record for a key, newest first.
func (r *PGRepo) All(ctx context.Context, key string) ([]Record, error) {
	const query = `
		SELECT user_id, resume_version, resume_url, resume_name, created_at
		FROM resumes
		WHERE user_id = $1
		ORDER BY created_at DESC, resume_version DESC`
	rows, err := r.DB.QueryContext(ctx, query, key)
	if err != nil {
		return nil, fmt.Errorf("query resumes user=%s: %w", key, err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.UserID, &rec.Version, &rec.URL, &rec.Name, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan resume user=%s: %w", key, err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate resumes user=%s: %w", key, err)
	}
	return out, nil
}

// DeleteAll removes every record for a key.
func (r *PGRepo) DeleteAll(ctx context.Context, key string) (int, error) {
	const query = `DELETE FROM resumes WHERE user_id = $1`
	res, err := r.DB.ExecContext(ctx, query, key)
	if err != nil {
		return 0, fmt.Errorf("delete resumes user=%s: %w", key, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected user=%s: %w", key, err)
	}
	return int(n), nil
}

var _ Repo = (*PGRepo)(nil)
