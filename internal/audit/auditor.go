package audit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/shaiso/Election/internal/domain"
	"github.com/shaiso/Election/internal/mq"
	"github.com/shaiso/Election/internal/telemetry"
)

const defaultPrefetch = 10

// Результаты обработки для метрики election_auditor_events_total.
const (
	resultStored    = "stored"
	resultDuplicate = "duplicate"
	resultInvalid   = "invalid"
	resultFailed    = "failed"
)

// EventStore сохраняет записи аудита (реализация: repo.AuditRepo).
// Insert возвращает false, если запись с таким ID уже есть.
type EventStore interface {
	Insert(ctx context.Context, ev *domain.AuditEvent) (bool, error)
}

// Auditor потребляет события об изменениях и сохраняет их.
type Auditor struct {
	store    EventStore
	conn     *mq.Connection
	prefetch int
	logger   *slog.Logger

	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
}

// Config — конфигурация Auditor.
type Config struct {
	Store EventStore
	Conn  *mq.Connection

	// Prefetch — неподтверждённых сообщений на consumer (default: 10).
	Prefetch int

	Logger *slog.Logger
}

// New создаёт новый Auditor.
func New(cfg Config) *Auditor {
	prefetch := cfg.Prefetch
	if prefetch <= 0 {
		prefetch = defaultPrefetch
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Auditor{
		store:    cfg.Store,
		conn:     cfg.Conn,
		prefetch: prefetch,
		logger:   logger,
	}
}

// Start запускает consumer очереди аудита в отдельной горутине.
func (a *Auditor) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	a.cancelFunc = cancel

	consumer := mq.NewConsumer(a.conn, a.logger, mq.ConsumerConfig{
		Queue:    mq.QueueAudit,
		Handler:  a.HandleMessage,
		Prefetch: a.prefetch,
	})

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			a.logger.Error("audit consumer error", "error", err)
		}
	}()

	a.logger.Info("auditor started", "queue", mq.QueueAudit, "prefetch", a.prefetch)
}

// Stop останавливает consumer и ждёт завершения обработки.
func (a *Auditor) Stop() {
	if a.cancelFunc != nil {
		a.cancelFunc()
	}
	a.wg.Wait()
	a.logger.Info("auditor stopped")
}

// HandleMessage сохраняет одно событие entity.changed.
func (a *Auditor) HandleMessage(ctx context.Context, msg *mq.Message) error {
	ev, err := toAuditEvent(msg)
	if err != nil {
		telemetry.AuditorEventsTotal.WithLabelValues("unknown", resultInvalid).Inc()
		return fmt.Errorf("%w: %w", mq.ErrPermanent, err)
	}

	inserted, err := a.store.Insert(ctx, ev)
	if err != nil {
		telemetry.AuditorEventsTotal.WithLabelValues(string(ev.Entity), resultFailed).Inc()
		return fmt.Errorf("store audit event %s: %w", ev.ID, err)
	}

	logger := a.logger.With(
		"message_id", ev.ID,
		"entity", ev.Entity,
		"action", ev.Action,
		"entity_id", ev.EntityID,
	)
	if !inserted {
		telemetry.AuditorEventsTotal.WithLabelValues(string(ev.Entity), resultDuplicate).Inc()
		logger.Debug("duplicate delivery ignored")
		return nil
	}

	telemetry.AuditorEventsTotal.WithLabelValues(string(ev.Entity), resultStored).Inc()
	logger.Info("audit event stored")
	return nil
}

// toAuditEvent проверяет конверт и payload сообщения.
func toAuditEvent(msg *mq.Message) (*domain.AuditEvent, error) {
	if msg.Type != mq.MessageTypeEntityChanged {
		return nil, fmt.Errorf("unexpected message type %q", msg.Type)
	}

	id, err := uuid.Parse(msg.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid message id %q: %w", msg.ID, err)
	}

	change, err := mq.ParsePayload[domain.EntityChange](msg)
	if err != nil {
		return nil, err
	}
	if !knownEntity(change.Entity) {
		return nil, fmt.Errorf("unknown entity %q", change.Entity)
	}
	if !knownAction(change.Action) {
		return nil, fmt.Errorf("unknown action %q", change.Action)
	}
	if change.EntityID <= 0 {
		return nil, fmt.Errorf("invalid entity id %d", change.EntityID)
	}

	return &domain.AuditEvent{
		ID:         id,
		Entity:     change.Entity,
		Action:     change.Action,
		EntityID:   change.EntityID,
		Payload:    change.Payload,
		OccurredAt: msg.Timestamp,
	}, nil
}

func knownEntity(e domain.Entity) bool {
	switch e {
	case domain.EntityCandidate, domain.EntityParty, domain.EntityVoter, domain.EntityVote:
		return true
	}
	return false
}

func knownAction(a domain.Action) bool {
	switch a {
	case domain.ActionCreated, domain.ActionUpdated, domain.ActionDeleted:
		return true
	}
	return false
}
