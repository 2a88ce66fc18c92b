package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// isForeignKeyViolation verifica si un error es una violación de llave foránea (23503).
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503" // foreign_key_violation
	}
	return strings.Contains(err.Error(), "23503")
}

// orderClause resuelve el ORDER BY a partir de un mapa de columnas permitidas.
// Claves desconocidas caen a la columna por defecto; la dirección solo admite ASC/DESC.
func orderClause(allowed map[string]string, orderBy, fallback, dir string) string {
	col, ok := allowed[strings.ToLower(orderBy)]
	if !ok {
		col = allowed[fallback]
	}
	if strings.EqualFold(dir, "ASC") {
		return col + " ASC"
	}
	return col + " DESC"
}
