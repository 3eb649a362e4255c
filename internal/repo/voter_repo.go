package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shaiso/Election/internal/domain"
)

// VoterRepo — репозиторий для работы с voters.
type VoterRepo struct {
	db Querier
}

// NewVoterRepo создаёт новый VoterRepo.
func NewVoterRepo(db Querier) *VoterRepo {
	return &VoterRepo{db: db}
}

// List возвращает всех избирателей, отсортированных по фамилии.
func (r *VoterRepo) List(ctx context.Context) ([]domain.Voter, error) {
	query := `
		SELECT id, first_name, last_name, email, created_at
		FROM voters
		ORDER BY last_name, id
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list voters: %w", err)
	}
	defer rows.Close()

	voters := []domain.Voter{}
	for rows.Next() {
		v, err := scanVoter(rows)
		if err != nil {
			return nil, err
		}
		voters = append(voters, *v)
	}
	return voters, rows.Err()
}

// GetByID возвращает избирателя по ID.
func (r *VoterRepo) GetByID(ctx context.Context, id int64) (*domain.Voter, error) {
	query := `
		SELECT id, first_name, last_name, email, created_at
		FROM voters
		WHERE id = $1
	`
	return scanVoter(r.db.QueryRow(ctx, query, id))
}

// Create регистрирует избирателя. Email уникален: дубликат даёт ErrAlreadyExists.
func (r *VoterRepo) Create(ctx context.Context, v *domain.Voter) error {
	query := `
		INSERT INTO voters (first_name, last_name, email)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query, v.FirstName, v.LastName, v.Email).Scan(&v.ID, &v.CreatedAt)
	if err != nil {
		return wrapWriteErr("insert voter", err)
	}
	return nil
}

// UpdateEmail меняет email избирателя.
func (r *VoterRepo) UpdateEmail(ctx context.Context, id int64, email string) (int64, error) {
	result, err := r.db.Exec(ctx, `UPDATE voters SET email = $1 WHERE id = $2`, email, id)
	if err != nil {
		return 0, wrapWriteErr("update voter email", err)
	}
	if result.RowsAffected() == 0 {
		return 0, ErrNotFound
	}
	return result.RowsAffected(), nil
}

// Delete удаляет избирателя вместе с его голосом.
func (r *VoterRepo) Delete(ctx context.Context, id int64) (int64, error) {
	result, err := r.db.Exec(ctx, `DELETE FROM voters WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("delete voter: %w", err)
	}
	if result.RowsAffected() == 0 {
		return 0, ErrNotFound
	}
	return result.RowsAffected(), nil
}

func scanVoter(row pgx.Row) (*domain.Voter, error) {
	var v domain.Voter
	err := row.Scan(&v.ID, &v.FirstName, &v.LastName, &v.Email, &v.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan voter: %w", err)
	}
	return &v, nil
}
