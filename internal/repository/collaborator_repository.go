package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"secretariat/api/internal/models"
)

var ErrCollaboratorNotFound = errors.New("collaborator not found")

type CollaboratorRepository struct {
	pool *pgxpool.Pool
}

func NewCollaboratorRepository(pool *pgxpool.Pool) *CollaboratorRepository {
	return &CollaboratorRepository{pool: pool}
}

func (r *CollaboratorRepository) Create(ctx context.Context, collaborator models.Collaborator) error {
	const query = `
		INSERT INTO collaborators (
			id, company_id, first_name, last_name, national_number, type, job_function, entry_date, exit_date, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW()
		)
	`

	_, err := r.pool.Exec(ctx, query,
		collaborator.ID,
		collaborator.CompanyID,
		collaborator.FirstName,
		collaborator.LastName,
		collaborator.NationalNumber,
		collaborator.Type,
		collaborator.JobFunction,
		collaborator.EntryDate,
		collaborator.ExitDate,
	)
	return err
}

func (r *CollaboratorRepository) GetByID(ctx context.Context, id string) (models.Collaborator, error) {
	const query = `
		SELECT id, company_id, first_name, last_name, national_number, type, job_function, entry_date, exit_date, created_at, updated_at
		FROM collaborators WHERE id = $1
	`
	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

func (r *CollaboratorRepository) List(ctx context.Context, limit, offset int) ([]models.Collaborator, error) {
	const query = `
		SELECT id, company_id, first_name, last_name, national_number, type, job_function, entry_date, exit_date, created_at, updated_at
		FROM collaborators
		ORDER BY last_name, first_name
		LIMIT $1 OFFSET $2
	`
	return r.list(ctx, query, limit, offset)
}

func (r *CollaboratorRepository) ListByCompany(ctx context.Context, companyID string) ([]models.Collaborator, error) {
	const query = `
		SELECT id, company_id, first_name, last_name, national_number, type, job_function, entry_date, exit_date, created_at, updated_at
		FROM collaborators
		WHERE company_id = $1
		ORDER BY last_name, first_name
	`
	return r.list(ctx, query, companyID)
}

func (r *CollaboratorRepository) Update(ctx context.Context, collaborator models.Collaborator) error {
	const query = `
		UPDATE collaborators
		SET first_name = $2, last_name = $3, national_number = $4, type = $5,
		    job_function = $6, entry_date = $7, exit_date = $8, updated_at = NOW()
		WHERE id = $1
	`
	cmd, err := r.pool.Exec(ctx, query,
		collaborator.ID,
		collaborator.FirstName,
		collaborator.LastName,
		collaborator.NationalNumber,
		collaborator.Type,
		collaborator.JobFunction,
		collaborator.EntryDate,
		collaborator.ExitDate,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrCollaboratorNotFound
	}
	return nil
}

func (r *CollaboratorRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM collaborators WHERE id = $1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrCollaboratorNotFound
	}
	return nil
}

func (r *CollaboratorRepository) list(ctx context.Context, query string, args ...any) ([]models.Collaborator, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var collaborators []models.Collaborator
	for rows.Next() {
		collaborator, err := r.scanOne(rows)
		if err != nil {
			return nil, err
		}
		collaborators = append(collaborators, collaborator)
	}
	return collaborators, rows.Err()
}

func (r *CollaboratorRepository) scanOne(row pgx.Row) (models.Collaborator, error) {
	var collaborator models.Collaborator
	if err := row.Scan(
		&collaborator.ID,
		&collaborator.CompanyID,
		&collaborator.FirstName,
		&collaborator.LastName,
		&collaborator.NationalNumber,
		&collaborator.Type,
		&collaborator.JobFunction,
		&collaborator.EntryDate,
		&collaborator.ExitDate,
		&collaborator.CreatedAt,
		&collaborator.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Collaborator{}, ErrCollaboratorNotFound
		}
		return models.Collaborator{}, err
	}
	return collaborator, nil
}

func (r *CollaboratorRepository) ListAll(ctx context.Context) ([]models.Collaborator, error) {
	const query = `
		SELECT id, company_id, first_name, last_name, national_number, type, job_function, entry_date, exit_date, created_at, updated_at
		FROM collaborators
		ORDER BY last_name, first_name
	`
	return r.list(ctx, query)
}
