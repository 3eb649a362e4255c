// Package mq предоставляет шину событий об изменениях сущностей через RabbitMQ.
//
// Структура:
//   - connection.go — соединение с RabbitMQ (reconnect, graceful shutdown)
//   - topology.go   — объявление exchanges, queues, bindings
//   - publisher.go  — публикация событий entity.changed
//   - consumer.go   — потребление сообщений из очередей
//
// API публикует событие после каждой успешной мутации
// (routing key "<entity>.<action>", например "candidate.created").
// election-auditor читает очередь audit.entity_changes и пишет журнал audit_events.
//
// Exchanges:
//   - election.events — topic, все события изменений
//   - election.dlq    — dead letter queue для сообщений, которые не удалось сохранить
package mq
