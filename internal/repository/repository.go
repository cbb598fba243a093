// Package repository holds the SQL persistence layer. Repositories take the
// shared *sqlx.DB; methods that must participate in a caller's transaction
// accept an sqlx.Ext, which both *sqlx.DB and *sqlx.Tx satisfy.
package repository

import "strconv"

func itoa(n int) string {
	return strconv.Itoa(n)
}
