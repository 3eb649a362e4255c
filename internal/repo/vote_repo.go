package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shaiso/Election/internal/domain"
)

// VoteRepo — репозиторий для работы с votes.
type VoteRepo struct {
	db Querier
}

// NewVoteRepo создаёт новый VoteRepo.
func NewVoteRepo(db Querier) *VoteRepo {
	return &VoteRepo{db: db}
}

const voteSelect = `
	SELECT votes.id, votes.voter_id, votes.candidate_id, votes.created_at,
	       CONCAT(voters.first_name, ' ', voters.last_name) AS voter_name,
	       CONCAT(candidates.first_name, ' ', candidates.last_name) AS candidate_name
	FROM votes
	JOIN voters ON votes.voter_id = voters.id
	JOIN candidates ON votes.candidate_id = candidates.id
`

// List возвращает все голоса с именами избирателя и кандидата.
func (r *VoteRepo) List(ctx context.Context) ([]domain.Vote, error) {
	rows, err := r.db.Query(ctx, voteSelect+` ORDER BY votes.id`)
	if err != nil {
		return nil, fmt.Errorf("list votes: %w", err)
	}
	defer rows.Close()

	votes := []domain.Vote{}
	for rows.Next() {
		v, err := scanVote(rows)
		if err != nil {
			return nil, err
		}
		votes = append(votes, *v)
	}
	return votes, rows.Err()
}

// GetByID возвращает голос по ID.
func (r *VoteRepo) GetByID(ctx context.Context, id int64) (*domain.Vote, error) {
	return scanVote(r.db.QueryRow(ctx, voteSelect+` WHERE votes.id = $1`, id))
}

// Create сохраняет голос.
//
// Повторный голос того же избирателя даёт ErrAlreadyExists,
// несуществующий избиратель или кандидат — ErrInvalidReference.
func (r *VoteRepo) Create(ctx context.Context, v *domain.Vote) error {
	query := `
		INSERT INTO votes (voter_id, candidate_id)
		VALUES ($1, $2)
		RETURNING id, created_at
	`
	err := r.db.QueryRow(ctx, query, v.VoterID, v.CandidateID).Scan(&v.ID, &v.CreatedAt)
	if err != nil {
		return wrapWriteErr("insert vote", err)
	}
	return nil
}

// UpdateCandidate переносит голос на другого кандидата.
func (r *VoteRepo) UpdateCandidate(ctx context.Context, id, candidateID int64) (int64, error) {
	result, err := r.db.Exec(ctx, `UPDATE votes SET candidate_id = $1 WHERE id = $2`, candidateID, id)
	if err != nil {
		return 0, wrapWriteErr("update vote candidate", err)
	}
	if result.RowsAffected() == 0 {
		return 0, ErrNotFound
	}
	return result.RowsAffected(), nil
}

// Delete отзывает голос.
func (r *VoteRepo) Delete(ctx context.Context, id int64) (int64, error) {
	result, err := r.db.Exec(ctx, `DELETE FROM votes WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("delete vote: %w", err)
	}
	if result.RowsAffected() == 0 {
		return 0, ErrNotFound
	}
	return result.RowsAffected(), nil
}

// Tally возвращает число голосов по каждому кандидату, от большего к меньшему.
// Кандидаты без голосов не попадают в результат.
func (r *VoteRepo) Tally(ctx context.Context) ([]domain.TallyRow, error) {
	query := `
		SELECT candidates.id, candidates.first_name, candidates.last_name,
		       parties.name AS party_name, COUNT(votes.id) AS count
		FROM votes
		JOIN candidates ON votes.candidate_id = candidates.id
		LEFT JOIN parties ON candidates.party_id = parties.id
		GROUP BY candidates.id, candidates.first_name, candidates.last_name, parties.name
		ORDER BY count DESC, candidates.id
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("tally votes: %w", err)
	}
	defer rows.Close()

	tally := []domain.TallyRow{}
	for rows.Next() {
		var t domain.TallyRow
		if err := rows.Scan(&t.CandidateID, &t.FirstName, &t.LastName, &t.PartyName, &t.Count); err != nil {
			return nil, fmt.Errorf("scan tally: %w", err)
		}
		tally = append(tally, t)
	}
	return tally, rows.Err()
}

func scanVote(row pgx.Row) (*domain.Vote, error) {
	var v domain.Vote
	err := row.Scan(&v.ID, &v.VoterID, &v.CandidateID, &v.CreatedAt, &v.VoterName, &v.CandidateName)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan vote: %w", err)
	}
	return &v, nil
}
