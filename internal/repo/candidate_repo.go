package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shaiso/Election/internal/domain"
)

// CandidateRepo — репозиторий для работы с candidates.
type CandidateRepo struct {
	db Querier
}

// NewCandidateRepo создаёт новый CandidateRepo.
func NewCandidateRepo(db Querier) *CandidateRepo {
	return &CandidateRepo{db: db}
}

const candidateSelect = `
	SELECT candidates.id, candidates.first_name, candidates.last_name,
	       candidates.industry_connected, candidates.party_id,
	       parties.name AS party_name
	FROM candidates
	LEFT JOIN parties ON candidates.party_id = parties.id
`

// List возвращает всех кандидатов с именем партии.
func (r *CandidateRepo) List(ctx context.Context) ([]domain.Candidate, error) {
	rows, err := r.db.Query(ctx, candidateSelect+` ORDER BY candidates.id`)
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}
	defer rows.Close()

	candidates := []domain.Candidate{}
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, *c)
	}
	return candidates, rows.Err()
}

// GetByID возвращает кандидата по ID.
func (r *CandidateRepo) GetByID(ctx context.Context, id int64) (*domain.Candidate, error) {
	return scanCandidate(r.db.QueryRow(ctx, candidateSelect+` WHERE candidates.id = $1`, id))
}

// Create вставляет кандидата и заполняет назначенный БД ID.
func (r *CandidateRepo) Create(ctx context.Context, c *domain.Candidate) error {
	query := `
		INSERT INTO candidates (first_name, last_name, industry_connected, party_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := r.db.QueryRow(ctx, query,
		c.FirstName,
		c.LastName,
		c.IndustryConnected,
		c.PartyID,
	).Scan(&c.ID)
	if err != nil {
		return wrapWriteErr("insert candidate", err)
	}
	return nil
}

// UpdateParty меняет партию кандидата. Возвращает число изменённых строк.
func (r *CandidateRepo) UpdateParty(ctx context.Context, id, partyID int64) (int64, error) {
	query := `UPDATE candidates SET party_id = $1 WHERE id = $2`
	result, err := r.db.Exec(ctx, query, partyID, id)
	if err != nil {
		return 0, wrapWriteErr("update candidate party", err)
	}
	if result.RowsAffected() == 0 {
		return 0, ErrNotFound
	}
	return result.RowsAffected(), nil
}

// Delete удаляет кандидата (каскадно удалит его голоса).
func (r *CandidateRepo) Delete(ctx context.Context, id int64) (int64, error) {
	query := `DELETE FROM candidates WHERE id = $1`
	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("delete candidate: %w", err)
	}
	if result.RowsAffected() == 0 {
		return 0, ErrNotFound
	}
	return result.RowsAffected(), nil
}

func scanCandidate(row pgx.Row) (*domain.Candidate, error) {
	var c domain.Candidate
	err := row.Scan(
		&c.ID,
		&c.FirstName,
		&c.LastName,
		&c.IndustryConnected,
		&c.PartyID,
		&c.PartyName,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan candidate: %w", err)
	}
	return &c, nil
}
