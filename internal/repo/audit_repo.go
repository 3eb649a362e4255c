package repo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/shaiso/Election/internal/domain"
)

// AuditRepo — репозиторий для журнала audit_events.
type AuditRepo struct {
	db Querier
}

// NewAuditRepo создаёт новый AuditRepo.
func NewAuditRepo(db Querier) *AuditRepo {
	return &AuditRepo{db: db}
}

// Insert сохраняет событие. Повторная вставка того же ID игнорируется,
// поэтому повторная доставка сообщения безопасна.
// Возвращает true, если запись действительно добавлена.
func (r *AuditRepo) Insert(ctx context.Context, ev *domain.AuditEvent) (bool, error) {
	payloadJSON, err := json.Marshal(ev.Payload)
	if err != nil {
		return false, fmt.Errorf("marshal payload: %w", err)
	}

	query := `
		INSERT INTO audit_events (id, entity, action, entity_id, payload, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO NOTHING
		RETURNING received_at
	`
	rows, err := r.db.Query(ctx, query,
		ev.ID,
		string(ev.Entity),
		string(ev.Action),
		ev.EntityID,
		payloadJSON,
		ev.OccurredAt,
	)
	if err != nil {
		return false, fmt.Errorf("insert audit event: %w", err)
	}
	defer rows.Close()

	inserted := false
	for rows.Next() {
		if err := rows.Scan(&ev.ReceivedAt); err != nil {
			return false, fmt.Errorf("scan audit event: %w", err)
		}
		inserted = true
	}
	return inserted, rows.Err()
}
