package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"secretariat/api/internal/models"
)

var ErrDocumentNotFound = errors.New("document not found")

type DocumentRepository struct {
	pool *pgxpool.Pool
}

func NewDocumentRepository(pool *pgxpool.Pool) *DocumentRepository {
	return &DocumentRepository{pool: pool}
}

func (r *DocumentRepository) Create(ctx context.Context, document models.Document) error {
	const query = `
		INSERT INTO documents (
			id, company_id, requester_id, kind, status, bucket, object_key, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, NOW(), NOW()
		)
	`

	_, err := r.pool.Exec(ctx, query,
		document.ID,
		document.CompanyID,
		document.RequesterID,
		document.Kind,
		document.Status,
		document.Bucket,
		document.ObjectKey,
	)
	return err
}

func (r *DocumentRepository) GetByID(ctx context.Context, id string) (models.Document, error) {
	const query = `
		SELECT id, company_id, requester_id, kind, status, bucket, object_key, created_at, updated_at
		FROM documents WHERE id = $1
	`
	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

func (r *DocumentRepository) ListByCompany(ctx context.Context, companyID string) ([]models.Document, error) {
	const query = `
		SELECT id, company_id, requester_id, kind, status, bucket, object_key, created_at, updated_at
		FROM documents
		WHERE company_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var documents []models.Document
	for rows.Next() {
		document, err := r.scanOne(rows)
		if err != nil {
			return nil, err
		}
		documents = append(documents, document)
	}
	return documents, rows.Err()
}

func (r *DocumentRepository) MarkReady(ctx context.Context, id, bucket, objectKey string) error {
	const query = `
		UPDATE documents
		SET status = $2, bucket = $3, object_key = $4, updated_at = NOW()
		WHERE id = $1
	`
	cmd, err := r.pool.Exec(ctx, query, id, models.DocumentStatusReady, bucket, objectKey)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrDocumentNotFound
	}
	return nil
}

func (r *DocumentRepository) MarkFailed(ctx context.Context, id string) error {
	const query = `
		UPDATE documents SET status = $2, updated_at = NOW() WHERE id = $1
	`
	cmd, err := r.pool.Exec(ctx, query, id, models.DocumentStatusFailed)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrDocumentNotFound
	}
	return nil
}

func (r *DocumentRepository) scanOne(row pgx.Row) (models.Document, error) {
	var document models.Document
	if err := row.Scan(
		&document.ID,
		&document.CompanyID,
		&document.RequesterID,
		&document.Kind,
		&document.Status,
		&document.Bucket,
		&document.ObjectKey,
		&document.CreatedAt,
		&document.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Document{}, ErrDocumentNotFound
		}
		return models.Document{}, err
	}
	return document, nil
}
