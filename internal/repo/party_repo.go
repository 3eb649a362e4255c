package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shaiso/Election/internal/domain"
)

// PartyRepo — репозиторий для работы с parties.
type PartyRepo struct {
	db Querier
}

// NewPartyRepo создаёт новый PartyRepo.
func NewPartyRepo(db Querier) *PartyRepo {
	return &PartyRepo{db: db}
}

// List возвращает все партии.
func (r *PartyRepo) List(ctx context.Context) ([]domain.Party, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, description FROM parties ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list parties: %w", err)
	}
	defer rows.Close()

	parties := []domain.Party{}
	for rows.Next() {
		p, err := scanParty(rows)
		if err != nil {
			return nil, err
		}
		parties = append(parties, *p)
	}
	return parties, rows.Err()
}

// GetByID возвращает партию по ID.
func (r *PartyRepo) GetByID(ctx context.Context, id int64) (*domain.Party, error) {
	query := `SELECT id, name, description FROM parties WHERE id = $1`
	return scanParty(r.db.QueryRow(ctx, query, id))
}

// Create вставляет партию и заполняет назначенный БД ID.
func (r *PartyRepo) Create(ctx context.Context, p *domain.Party) error {
	query := `
		INSERT INTO parties (name, description)
		VALUES ($1, $2)
		RETURNING id
	`
	if err := r.db.QueryRow(ctx, query, p.Name, p.Description).Scan(&p.ID); err != nil {
		return wrapWriteErr("insert party", err)
	}
	return nil
}

// Update переименовывает партию. Описание меняется, только если передано.
func (r *PartyRepo) Update(ctx context.Context, id int64, name string, description *string) (int64, error) {
	query := `
		UPDATE parties
		SET name = $1, description = COALESCE($2, description)
		WHERE id = $3
	`
	result, err := r.db.Exec(ctx, query, name, description, id)
	if err != nil {
		return 0, wrapWriteErr("update party", err)
	}
	if result.RowsAffected() == 0 {
		return 0, ErrNotFound
	}
	return result.RowsAffected(), nil
}

// Delete удаляет партию; у её кандидатов party_id становится NULL.
func (r *PartyRepo) Delete(ctx context.Context, id int64) (int64, error) {
	result, err := r.db.Exec(ctx, `DELETE FROM parties WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("delete party: %w", err)
	}
	if result.RowsAffected() == 0 {
		return 0, ErrNotFound
	}
	return result.RowsAffected(), nil
}

func scanParty(row pgx.Row) (*domain.Party, error) {
	var p domain.Party
	err := row.Scan(&p.ID, &p.Name, &p.Description)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan party: %w", err)
	}
	return &p, nil
}
