package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/mkravchenko/receiptdrop/internal/core/domain"
)

type SubmissionRepository struct {
	db *sql.DB
}

func NewSubmissionRepository(db *sql.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

func OpenDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}

func (r *SubmissionRepository) EnsureSchema(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// Serialize bootstrap DDL across concurrent api startups.
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, int64(2026090101)); err != nil {
		return fmt.Errorf("acquire schema lock: %w", err)
	}

	const query = `
CREATE TABLE IF NOT EXISTS submissions (
	id TEXT PRIMARY KEY,
	email TEXT NOT NULL,
	category TEXT NOT NULL,
	description TEXT NOT NULL,
	file_name TEXT NOT NULL,
	file_size BIGINT NOT NULL,
	mime_type TEXT NOT NULL,
	folder TEXT NOT NULL,
	object_id TEXT NOT NULL,
	outcome TEXT NOT NULL,
	error_kind TEXT,
	error_message TEXT,
	result_url TEXT,
	asset_id TEXT,
	pdf_pages INT NOT NULL DEFAULT 0,
	config_source TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_submissions_email ON submissions(email);
CREATE INDEX IF NOT EXISTS idx_submissions_created_at ON submissions(created_at DESC);
`
	if _, err := tx.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("execute schema ddl: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema tx: %w", err)
	}
	return nil
}

func (r *SubmissionRepository) Record(ctx context.Context, rec *domain.SubmissionRecord) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO submissions (
	id, email, category, description, file_name, file_size, mime_type, folder, object_id,
	outcome, error_kind, error_message, result_url, asset_id, pdf_pages, config_source, created_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
`,
		rec.ID, rec.Email, rec.Category, rec.Description, rec.FileName, rec.FileSize, rec.MimeType,
		rec.Folder, rec.ObjectID, rec.Outcome, rec.ErrorKind, rec.ErrorMessage, rec.ResultURL,
		rec.AssetID, rec.PDFPages, string(rec.ConfigSource), rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert submission: %w", err)
	}
	return nil
}

const selectColumns = `
SELECT id, email, category, description, file_name, file_size, mime_type, folder, object_id,
	outcome, error_kind, error_message, result_url, asset_id, pdf_pages, config_source, created_at
FROM submissions
`

func (r *SubmissionRepository) GetByID(ctx context.Context, id string) (*domain.SubmissionRecord, error) {
	row := r.db.QueryRowContext(ctx, selectColumns+`WHERE id = $1`, id)

	rec, err := scanSubmission(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrSubmissionNotFound, "get submission", fmt.Errorf("id %s", id))
		}
		return nil, fmt.Errorf("scan submission: %w", err)
	}
	return rec, nil
}

func (r *SubmissionRepository) List(ctx context.Context, limit int) ([]domain.SubmissionRecord, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.db.QueryContext(ctx, selectColumns+`ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("query submissions: %w", err)
	}
	defer rows.Close()

	var records []domain.SubmissionRecord
	for rows.Next() {
		rec, err := scanSubmission(rows)
		if err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate submissions: %w", err)
	}
	return records, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSubmission(row rowScanner) (*domain.SubmissionRecord, error) {
	var rec domain.SubmissionRecord
	var errorKind, errorMessage, resultURL, assetID sql.NullString
	var configSource string

	err := row.Scan(
		&rec.ID, &rec.Email, &rec.Category, &rec.Description, &rec.FileName, &rec.FileSize,
		&rec.MimeType, &rec.Folder, &rec.ObjectID, &rec.Outcome, &errorKind, &errorMessage,
		&resultURL, &assetID, &rec.PDFPages, &configSource, &rec.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	rec.ErrorKind = errorKind.String
	rec.ErrorMessage = errorMessage.String
	rec.ResultURL = resultURL.String
	rec.AssetID = assetID.String
	rec.ConfigSource = domain.ConfigSource(configSource)
	return &rec, nil
}
