package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation проверяет, является ли ошибка нарушением уникального
// индекса PostgreSQL (SQLSTATE 23505). Используется для перевода нарушений
// ограничений в доменные ошибки вместо проверок "прочитай, потом вставь".
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
