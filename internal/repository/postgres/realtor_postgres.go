package postgres

import (
	"context"
	"database/sql"

	"realtyapi/internal/model"
	"realtyapi/internal/repository"
)

// RealtorPostgres is a PostgreSQL implementation of repository.RealtorRepository.
type RealtorPostgres struct {
	db *sql.DB
}

func NewRealtorPostgres(db *sql.DB) *RealtorPostgres {
	return &RealtorPostgres{db: db}
}

var _ repository.RealtorRepository = (*RealtorPostgres)(nil)

const realtorColumns = `id, name, description, phone, email, is_mvp`

func scanRealtor(row rowScanner) (*model.Realtor, error) {
	var r model.Realtor
	if err := row.Scan(&r.ID, &r.Name, &r.Description, &r.Phone, &r.Email, &r.IsMVP); err != nil {
		return nil, err
	}
	return &r, nil
}

func (p *RealtorPostgres) Create(ctx context.Context, r *model.Realtor) (*model.Realtor, error) {
	q := `
		INSERT INTO realtors (name, description, phone, email, is_mvp)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + realtorColumns
	return scanRealtor(p.db.QueryRowContext(ctx, q, r.Name, r.Description, r.Phone, r.Email, r.IsMVP))
}

func (p *RealtorPostgres) FindByID(ctx context.Context, id int64) (*model.Realtor, error) {
	q := `SELECT ` + realtorColumns + ` FROM realtors WHERE id = $1`
	return scanRealtor(p.db.QueryRowContext(ctx, q, id))
}
