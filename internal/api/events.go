package api

import (
	"context"
	"net/http"
	"time"

	"github.com/shaiso/Election/internal/domain"
	"github.com/shaiso/Election/internal/telemetry"
)

const publishTimeout = 2 * time.Second

// publishChange отправляет событие об успешной мутации.
//
// Записанный ответ сначала сбрасывается клиенту, поэтому медленный брокер
// не задерживает ответ. Ошибка публикации только логируется и учитывается в метрике.
func (h *Handler) publishChange(w http.ResponseWriter, r *http.Request, entity domain.Entity, action domain.Action, id int64, payload map[string]any) {
	if h.publisher == nil {
		return
	}

	if err := http.NewResponseController(w).Flush(); err != nil {
		h.log(r).Debug("response flush before publish failed", "error", err)
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), publishTimeout)
	defer cancel()

	change := domain.EntityChange{
		Entity:   entity,
		Action:   action,
		EntityID: id,
		Payload:  payload,
	}
	if err := h.publisher.PublishEntityChanged(ctx, change); err != nil {
		telemetry.EventsPublishFailed.WithLabelValues(string(entity)).Inc()
		telemetry.FromContext(ctx).Warn("failed to publish entity change",
			"entity", entity,
			"action", action,
			"entity_id", id,
			"error", err,
		)
	}
}
