package design

import (
	"fmt"
	"strings"

	apperrors "github.com/EJcoding/DataAngelo/core/shared/errors"
)

// DefaultDialect is used when a request omits database_type.
const DefaultDialect = "MySQL"

// SupportedDialects is the closed set of SQL dialects the service
// generates schemas for, in display order.
var SupportedDialects = []string{
	"MySQL",
	"PostgreSQL",
	"SQLite",
	"SQL Server",
	"Oracle",
	"MariaDB",
}

// NormalizeDialect maps a user-supplied database type onto the canonical
// dialect name, case-insensitively. An empty value yields DefaultDialect;
// anything outside the supported set is rejected.
func NormalizeDialect(value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return DefaultDialect, nil
	}
	for _, dialect := range SupportedDialects {
		if strings.EqualFold(trimmed, dialect) {
			return dialect, nil
		}
	}
	return "", apperrors.NewAppError(
		apperrors.ErrCodeUnknownDialect,
		fmt.Sprintf("unsupported database type %q, expected one of: %s", trimmed, strings.Join(SupportedDialects, ", ")),
		nil,
	)
}
