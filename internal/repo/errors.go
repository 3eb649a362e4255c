package repo

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// Общие ошибки репозиториев.
var (
	// ErrNotFound — запись не найдена в БД.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists — запись уже существует (конфликт уникальности).
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidReference — внешний ключ ссылается на несуществующую запись.
	ErrInvalidReference = errors.New("invalid reference")

	// ErrInvalidValue — значение не помещается в колонку (слишком длинная строка,
	// переполнение числа и т.п.).
	ErrInvalidValue = errors.New("invalid value")
)

// Коды ошибок PostgreSQL (SQLSTATE).
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"

	// Класс 22 — data exception (22001 string_data_right_truncation, 22003 ...).
	pgDataExceptionClass = "22"
)

// wrapWriteErr оборачивает ошибку INSERT/UPDATE, переводя нарушения
// ограничений в общие ошибки репозитория. Исходная ошибка сохраняется в цепочке.
func wrapWriteErr(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == pgUniqueViolation:
			return fmt.Errorf("%s: %w: %w", op, ErrAlreadyExists, err)
		case pgErr.Code == pgForeignKeyViolation:
			return fmt.Errorf("%s: %w: %w", op, ErrInvalidReference, err)
		case strings.HasPrefix(pgErr.Code, pgDataExceptionClass):
			return fmt.Errorf("%s: %w: %w", op, ErrInvalidValue, err)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
