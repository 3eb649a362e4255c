package domain

import (
	"time"

	"github.com/google/uuid"
)

// Entity — имя сущности, над которой выполнена операция.
type Entity string

const (
	EntityCandidate Entity = "candidate"
	EntityParty     Entity = "party"
	EntityVoter     Entity = "voter"
	EntityVote      Entity = "vote"
)

// Action — тип изменения сущности.
type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
)

// EntityChange — событие об успешном изменении строки.
//
// Публикуется API после каждой успешной мутации и потребляется
// election-auditor, который сохраняет его в audit_events.
type EntityChange struct {
	Entity   Entity         `json:"entity"`
	Action   Action         `json:"action"`
	EntityID int64          `json:"entity_id"`
	Payload  map[string]any `json:"payload,omitempty"`
}

// AuditEvent — сохранённая запись аудита.
type AuditEvent struct {
	// ID — идентификатор сообщения из очереди; повторная доставка
	// того же сообщения не создаёт дубликат.
	ID uuid.UUID `json:"id"`

	Entity   Entity         `json:"entity"`
	Action   Action         `json:"action"`
	EntityID int64          `json:"entity_id"`
	Payload  map[string]any `json:"payload,omitempty"`

	// OccurredAt — время публикации события API.
	OccurredAt time.Time `json:"occurred_at"`

	// ReceivedAt — время сохранения записи auditor'ом.
	ReceivedAt time.Time `json:"received_at"`
}
