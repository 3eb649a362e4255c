// Package api содержит HTTP API сервер.
//
// Структура:
//   - handler.go           — Handler с DI (хранилища, publisher, logger)
//   - routes.go            — регистрация маршрутов под /api, /healthz, /metrics
//   - middleware.go        — middleware (request id, recovery, logging, metrics)
//   - response.go          — JSON-конверты и обработка ошибок репозитория
//   - dto.go               — разбор тела и id, payload → domain
//   - events.go            — публикация событий об изменениях
//   - candidate_handler.go — /candidates, /candidate/{id}
//   - party_handler.go     — /parties, /party/{id}
//   - voter_handler.go     — /voters, /voter/{id}
//   - vote_handler.go      — /votes, /vote/{id}, /votes/tally
//
// Успешный ответ: {"message": "success", "data": ...}; ошибка: {"error": "..."}.
// Значения из запроса попадают в SQL только как параметры $n.
package api
