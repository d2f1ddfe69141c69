package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"secretariat/api/internal/models"
)

var ErrDimonaNotFound = errors.New("dimona not found")

type DimonaRepository struct {
	pool *pgxpool.Pool
}

func NewDimonaRepository(pool *pgxpool.Pool) *DimonaRepository {
	return &DimonaRepository{pool: pool}
}

func (r *DimonaRepository) Create(ctx context.Context, dimona models.Dimona) error {
	const query = `
		INSERT INTO dimonas (
			id, company_id, collaborator_id, type, status, period_start, period_end, onss_reference, status_reason, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW()
		)
	`

	_, err := r.pool.Exec(ctx, query,
		dimona.ID,
		dimona.CompanyID,
		dimona.CollaboratorID,
		dimona.Type,
		dimona.Status,
		dimona.PeriodStart,
		dimona.PeriodEnd,
		dimona.ONSSReference,
		dimona.StatusReason,
	)
	return err
}

func (r *DimonaRepository) GetByID(ctx context.Context, id string) (models.Dimona, error) {
	const query = `
		SELECT id, company_id, collaborator_id, type, status, period_start, period_end, onss_reference, status_reason, created_at, updated_at
		FROM dimonas WHERE id = $1
	`
	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

func (r *DimonaRepository) List(ctx context.Context, limit, offset int) ([]models.Dimona, error) {
	const query = `
		SELECT id, company_id, collaborator_id, type, status, period_start, period_end, onss_reference, status_reason, created_at, updated_at
		FROM dimonas
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	return r.list(ctx, query, limit, offset)
}

func (r *DimonaRepository) ListByCompany(ctx context.Context, companyID string) ([]models.Dimona, error) {
	const query = `
		SELECT id, company_id, collaborator_id, type, status, period_start, period_end, onss_reference, status_reason, created_at, updated_at
		FROM dimonas
		WHERE company_id = $1
		ORDER BY created_at DESC
	`
	return r.list(ctx, query, companyID)
}

func (r *DimonaRepository) ListByStatus(ctx context.Context, status models.DimonaStatus) ([]models.Dimona, error) {
	const query = `
		SELECT id, company_id, collaborator_id, type, status, period_start, period_end, onss_reference, status_reason, created_at, updated_at
		FROM dimonas
		WHERE status = $1
		ORDER BY created_at DESC
	`
	return r.list(ctx, query, status)
}

// UpdateStatus advances a declaration only when its stored status still
// matches the expected one, so two racing transitions cannot both apply
// against the same prior state.
func (r *DimonaRepository) UpdateStatus(ctx context.Context, id string, from, to models.DimonaStatus, reason string) error {
	const query = `
		UPDATE dimonas
		SET status = $3, status_reason = $4, updated_at = NOW()
		WHERE id = $1 AND status = $2
	`
	cmd, err := r.pool.Exec(ctx, query, id, from, to, reason)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrDimonaNotFound
	}
	return nil
}

func (r *DimonaRepository) SetONSSReference(ctx context.Context, id string, reference string) error {
	const query = `
		UPDATE dimonas SET onss_reference = $2, updated_at = NOW() WHERE id = $1
	`
	cmd, err := r.pool.Exec(ctx, query, id, reference)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrDimonaNotFound
	}
	return nil
}

func (r *DimonaRepository) list(ctx context.Context, query string, args ...any) ([]models.Dimona, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dimonas []models.Dimona
	for rows.Next() {
		dimona, err := r.scanOne(rows)
		if err != nil {
			return nil, err
		}
		dimonas = append(dimonas, dimona)
	}
	return dimonas, rows.Err()
}

func (r *DimonaRepository) scanOne(row pgx.Row) (models.Dimona, error) {
	var dimona models.Dimona
	if err := row.Scan(
		&dimona.ID,
		&dimona.CompanyID,
		&dimona.CollaboratorID,
		&dimona.Type,
		&dimona.Status,
		&dimona.PeriodStart,
		&dimona.PeriodEnd,
		&dimona.ONSSReference,
		&dimona.StatusReason,
		&dimona.CreatedAt,
		&dimona.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Dimona{}, ErrDimonaNotFound
		}
		return models.Dimona{}, err
	}
	return dimona, nil
}

func (r *DimonaRepository) ListAll(ctx context.Context) ([]models.Dimona, error) {
	const query = `
		SELECT id, company_id, collaborator_id, type, status, period_start, period_end, onss_reference, status_reason, created_at, updated_at
		FROM dimonas
		ORDER BY created_at DESC
	`
	return r.list(ctx, query)
}
