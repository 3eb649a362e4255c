// Package audit сохраняет журнал изменений сущностей.
//
// Auditor потребляет события entity.changed из очереди audit.entity_changes
// (exchange election.events, routing key "<entity>.<action>") и записывает
// каждое в таблицу audit_events.
//
// Идентификатор сообщения становится первичным ключом записи, поэтому
// повторная доставка того же сообщения не создаёт дубликат.
//
// Ошибки обработки:
//   - некорректное сообщение (не UUID, неизвестная сущность/действие) — в DLQ
//   - ошибка БД — сообщение возвращается в очередь
package audit
