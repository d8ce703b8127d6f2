package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// tenantID es el predicado de tenant que llevan TODAS las consultas sobre
// tablas de restaurante. La variable de sesión app.restaurant_id la fija el
// TenantRunner al adquirir la conexión; además las políticas row-level
// security de la base leen la misma variable, así que un repositorio que
// olvidara el predicado seguiría sin poder filtrar filas ajenas.
const tenantID = `current_setting('app.restaurant_id')::uuid`

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}
