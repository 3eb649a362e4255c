package repo

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shaiso/Election/internal/domain"
)

// setupTestPool подключается к БД из DB_URL и пересоздаёт схему.
// Без DB_URL тест пропускается.
func setupTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("DB_URL")
	if dsn == "" {
		t.Skip("DB_URL not set, skipping integration test")
	}

	ctx := context.Background()
	pool, err := NewPool(ctx, PoolConfig{DSN: dsn, MaxConns: 2})
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	t.Cleanup(pool.Close)

	_, err = pool.Exec(ctx, `
		DROP TABLE IF EXISTS audit_events CASCADE;
		DROP TABLE IF EXISTS votes CASCADE;
		DROP TABLE IF EXISTS voters CASCADE;
		DROP TABLE IF EXISTS candidates CASCADE;
		DROP TABLE IF EXISTS parties CASCADE;
	`)
	if err != nil {
		t.Fatalf("failed to clean database: %v", err)
	}
	if err := Migrate(ctx, pool); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return pool
}

func TestIntegration_CandidateLifecycle(t *testing.T) {
	pool := setupTestPool(t)
	ctx := context.Background()

	parties := NewPartyRepo(pool)
	candidates := NewCandidateRepo(pool)

	party := &domain.Party{Name: "Git Gurus"}
	if err := parties.Create(ctx, party); err != nil {
		t.Fatalf("create party: %v", err)
	}

	c := &domain.Candidate{FirstName: "Ada", LastName: "Lovelace", IndustryConnected: true}
	if err := candidates.Create(ctx, c); err != nil {
		t.Fatalf("create candidate: %v", err)
	}

	got, err := candidates.GetByID(ctx, c.ID)
	if err != nil {
		t.Fatalf("get candidate: %v", err)
	}
	if got.FirstName != "Ada" || got.LastName != "Lovelace" || !got.IndustryConnected || got.PartyID != nil {
		t.Errorf("round trip mismatch: %+v", got)
	}

	changes, err := candidates.UpdateParty(ctx, c.ID, party.ID)
	if err != nil || changes != 1 {
		t.Fatalf("update party: changes=%d err=%v", changes, err)
	}
	got, _ = candidates.GetByID(ctx, c.ID)
	if got.PartyName == nil || *got.PartyName != "Git Gurus" {
		t.Errorf("expected joined party name, got %v", got.PartyName)
	}

	if _, err := candidates.UpdateParty(ctx, c.ID, party.ID+100); !errors.Is(err, ErrInvalidReference) {
		t.Errorf("expected ErrInvalidReference, got %v", err)
	}

	if _, err := candidates.Delete(ctx, c.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := candidates.GetByID(ctx, c.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if _, err := candidates.Delete(ctx, c.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete: expected ErrNotFound, got %v", err)
	}
}

func TestIntegration_InjectionStoredLiterally(t *testing.T) {
	pool := setupTestPool(t)
	ctx := context.Background()
	candidates := NewCandidateRepo(pool)

	other := &domain.Candidate{FirstName: "Virginia", LastName: "Woolf"}
	if err := candidates.Create(ctx, other); err != nil {
		t.Fatalf("create: %v", err)
	}

	const payload = `'); DROP TABLE candidates; --`
	c := &domain.Candidate{FirstName: payload, LastName: "x"}
	if err := candidates.Create(ctx, c); err != nil {
		t.Fatalf("create: %v", err)
	}

	list, err := candidates.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(list))
	}
	got, _ := candidates.GetByID(ctx, c.ID)
	if got.FirstName != payload {
		t.Errorf("expected literal payload, got %q", got.FirstName)
	}
}

func TestIntegration_OneVotePerVoter(t *testing.T) {
	pool := setupTestPool(t)
	ctx := context.Background()

	c := &domain.Candidate{FirstName: "Octavia", LastName: "Butler"}
	if err := NewCandidateRepo(pool).Create(ctx, c); err != nil {
		t.Fatalf("create candidate: %v", err)
	}
	v := &domain.Voter{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"}
	if err := NewVoterRepo(pool).Create(ctx, v); err != nil {
		t.Fatalf("create voter: %v", err)
	}

	votes := NewVoteRepo(pool)
	if err := votes.Create(ctx, &domain.Vote{VoterID: v.ID, CandidateID: c.ID}); err != nil {
		t.Fatalf("first vote: %v", err)
	}
	if err := votes.Create(ctx, &domain.Vote{VoterID: v.ID, CandidateID: c.ID}); !errors.Is(err, ErrAlreadyExists) {
		t.Errorf("second vote: expected ErrAlreadyExists, got %v", err)
	}

	tally, err := votes.Tally(ctx)
	if err != nil {
		t.Fatalf("tally: %v", err)
	}
	if len(tally) != 1 || tally[0].Count != 1 {
		t.Errorf("unexpected tally: %+v", tally)
	}
}
