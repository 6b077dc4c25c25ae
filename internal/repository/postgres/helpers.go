package postgres

import "github.com/lib/pq"

// isUniqueViolation reports whether err is a Postgres unique_violation (23505)
func isUniqueViolation(err error) bool {
	if pqErr, ok := err.(*pq.Error); ok {
		return pqErr.Code == "23505"
	}
	return false
}
