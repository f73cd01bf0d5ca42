package repository

import (
	"errors"

	"backoffice-data/internal/domain"

	"github.com/lib/pq"
)

// Postgres 错误码
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// mapSQLError 把驱动错误翻译为领域错误
// 唯一约束冲突 → Conflict；外键失效 → NotFound；其余 → Storage
func mapSQLError(err error, op string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pgUniqueViolation:
			return &domain.Error{Kind: domain.KindConflict, Message: op + ": already exists", Cause: err}
		case pgForeignKeyViolation:
			return &domain.Error{Kind: domain.KindNotFound, Message: op + ": referenced row not found", Cause: err}
		}
	}
	return domain.NewStorage(err, "%s failed", op)
}
