package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"secretariat/api/internal/models"
)

var ErrCompanyNotFound = errors.New("company not found")

type CompanyRepository struct {
	pool *pgxpool.Pool
}

func NewCompanyRepository(pool *pgxpool.Pool) *CompanyRepository {
	return &CompanyRepository{pool: pool}
}

func (r *CompanyRepository) Create(ctx context.Context, company models.Company) error {
	const query = `
		INSERT INTO companies (
			id, name, bce_number, onss_number, vat_number, address, city, postal_code, confirmed, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW()
		)
	`

	_, err := r.pool.Exec(ctx, query,
		company.ID,
		company.Name,
		company.BCENumber,
		company.ONSSNumber,
		company.VATNumber,
		company.Address,
		company.City,
		company.PostalCode,
		company.Confirmed,
	)
	return err
}

func (r *CompanyRepository) GetByID(ctx context.Context, id string) (models.Company, error) {
	const query = `
		SELECT id, name, bce_number, onss_number, vat_number, address, city, postal_code, confirmed, created_at, updated_at
		FROM companies WHERE id = $1
	`
	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

func (r *CompanyRepository) List(ctx context.Context, limit, offset int) ([]models.Company, error) {
	const query = `
		SELECT id, name, bce_number, onss_number, vat_number, address, city, postal_code, confirmed, created_at, updated_at
		FROM companies
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var companies []models.Company
	for rows.Next() {
		company, err := r.scanOne(rows)
		if err != nil {
			return nil, err
		}
		companies = append(companies, company)
	}
	return companies, rows.Err()
}

func (r *CompanyRepository) Update(ctx context.Context, company models.Company) error {
	const query = `
		UPDATE companies
		SET name = $2, bce_number = $3, onss_number = $4, vat_number = $5,
		    address = $6, city = $7, postal_code = $8, updated_at = NOW()
		WHERE id = $1
	`
	cmd, err := r.pool.Exec(ctx, query,
		company.ID,
		company.Name,
		company.BCENumber,
		company.ONSSNumber,
		company.VATNumber,
		company.Address,
		company.City,
		company.PostalCode,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrCompanyNotFound
	}
	return nil
}

func (r *CompanyRepository) SetConfirmed(ctx context.Context, id string, confirmed bool) error {
	const query = `
		UPDATE companies SET confirmed = $2, updated_at = NOW() WHERE id = $1
	`
	cmd, err := r.pool.Exec(ctx, query, id, confirmed)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrCompanyNotFound
	}
	return nil
}

func (r *CompanyRepository) Count(ctx context.Context) (int, error) {
	const query = `SELECT COUNT(*) FROM companies`
	var count int
	if err := r.pool.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *CompanyRepository) scanOne(row pgx.Row) (models.Company, error) {
	var company models.Company
	if err := row.Scan(
		&company.ID,
		&company.Name,
		&company.BCENumber,
		&company.ONSSNumber,
		&company.VATNumber,
		&company.Address,
		&company.City,
		&company.PostalCode,
		&company.Confirmed,
		&company.CreatedAt,
		&company.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Company{}, ErrCompanyNotFound
		}
		return models.Company{}, err
	}
	return company, nil
}
