// Package cli реализует инструмент командной строки election.
//
// # Обзор
//
// CLI — клиентская утилита для Election API. Работает через HTTP,
// не импортирует внутренние пакеты системы.
//
// # Ключевые компоненты
//
// ## Client
//
// HTTP-клиент для API. Разбирает конверты {message, data},
// {message, changes} и {error}; ответы 4xx/5xx возвращаются как *APIError.
//
//	client := cli.NewClient("http://localhost:8080")
//	candidates, err := client.ListCandidates()
//
// ## Output
//
// Форматирование вывода:
//   - Таблицы (text/tabwriter) — по умолчанию
//   - JSON — с флагом --json
//   - CSV (gocsv) — vote tally --csv
//
// Данные выводятся в stdout, сообщения (Success/Error) — в stderr:
// election vote tally --csv > tally.csv
//
// ## Commands
//
// Cobra-команды организованы по ресурсам:
//   - candidate: list, show, create, set-party, delete
//   - party: list, show, create, update, delete
//   - voter: list, show, register, set-email, delete, import
//   - vote: list, show, cast, move, delete, tally
//
// Каждая группа создаётся через фабричную функцию (NewCandidateCmd и т.д.),
// принимающую clientFn и outputFn — замыкания для ленивого создания
// Client и Output после парсинга PersistentFlags.
package cli
