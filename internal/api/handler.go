package api

import (
	"context"
	"log/slog"

	"github.com/shaiso/Election/internal/domain"
)

// CandidateStore — хранилище кандидатов (реализация: repo.CandidateRepo).
type CandidateStore interface {
	List(ctx context.Context) ([]domain.Candidate, error)
	GetByID(ctx context.Context, id int64) (*domain.Candidate, error)
	Create(ctx context.Context, c *domain.Candidate) error
	UpdateParty(ctx context.Context, id, partyID int64) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

// PartyStore — хранилище партий (реализация: repo.PartyRepo).
type PartyStore interface {
	List(ctx context.Context) ([]domain.Party, error)
	GetByID(ctx context.Context, id int64) (*domain.Party, error)
	Create(ctx context.Context, p *domain.Party) error
	Update(ctx context.Context, id int64, name string, description *string) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

// VoterStore — хранилище избирателей (реализация: repo.VoterRepo).
type VoterStore interface {
	List(ctx context.Context) ([]domain.Voter, error)
	GetByID(ctx context.Context, id int64) (*domain.Voter, error)
	Create(ctx context.Context, v *domain.Voter) error
	UpdateEmail(ctx context.Context, id int64, email string) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

// VoteStore — хранилище голосов (реализация: repo.VoteRepo).
type VoteStore interface {
	List(ctx context.Context) ([]domain.Vote, error)
	GetByID(ctx context.Context, id int64) (*domain.Vote, error)
	Create(ctx context.Context, v *domain.Vote) error
	UpdateCandidate(ctx context.Context, id, candidateID int64) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
	Tally(ctx context.Context) ([]domain.TallyRow, error)
}

// EventPublisher публикует события об изменениях (реализация: mq.Publisher).
type EventPublisher interface {
	PublishEntityChanged(ctx context.Context, change domain.EntityChange) error
}

// Handler — главный обработчик API с зависимостями.
type Handler struct {
	candidates CandidateStore
	parties    PartyStore
	voters     VoterStore
	votes      VoteStore
	publisher  EventPublisher
	health     func(ctx context.Context) error
	logger     *slog.Logger
}

// Config — конфигурация для создания Handler.
type Config struct {
	Candidates CandidateStore
	Parties    PartyStore
	Voters     VoterStore
	Votes      VoteStore

	// Publisher — необязателен; nil отключает публикацию событий.
	Publisher EventPublisher

	// Health — проверка зависимостей для /healthz (например, pool.Ping).
	Health func(ctx context.Context) error

	Logger *slog.Logger
}

// NewHandler создаёт новый Handler.
func NewHandler(cfg Config) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		candidates: cfg.Candidates,
		parties:    cfg.Parties,
		voters:     cfg.Voters,
		votes:      cfg.Votes,
		publisher:  cfg.Publisher,
		health:     cfg.Health,
		logger:     logger,
	}
}
