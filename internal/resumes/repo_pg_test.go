package resumes

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoPut(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	created := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO resumes")).
		WithArgs("u1", "v1", "https://bucket/u1/1.pdf", "resume.pdf", created).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := &PGRepo{DB: db}
	err = repo.Put(context.Background(), Record{
		UserID:    "u1",
		Version:   "v1",
		URL:       "https://bucket/u1/1.pdf",
		Name:      "resume.pdf",
		CreatedAt: created,
	})
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestPGRepoLatest(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	created := time.Date(2026, 8, 2, 9, 30, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"user_id", "resume_version", "resume_url", "resume_name", "created_at"}).
		AddRow("u1", "v3", "https://bucket/u1/3.pdf", "resume.pdf", created)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT user_id, resume_version, resume_url, resume_name, created_at")).
		WithArgs("u1").
		WillReturnRows(rows)

	repo := &PGRepo{DB: db}
	rec, err := repo.Latest(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if rec.Version != "v3" || rec.URL != "https://bucket/u1/3.pdf" {
		t.Errorf("unexpected record %+v", rec)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestPGRepoLatestNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT user_id")).
		WithArgs("nobody").
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "resume_version", "resume_url", "resume_name", "created_at"}))

	repo := &PGRepo{DB: db}
	if _, err := repo.Latest(context.Background(), "nobody"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoDeleteAll(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM resumes WHERE user_id = $1")).
		WithArgs("u1").
		WillReturnResult(sqlmock.NewResult(0, 4))

	repo := &PGRepo{DB: db}
	n, err := repo.DeleteAll(context.Background(), "u1")
	if err != nil {
		t.Fatalf("DeleteAll: %v", err)
	}
	if n != 4 {
		t.Errorf("deleted = %d, want 4", n)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}
