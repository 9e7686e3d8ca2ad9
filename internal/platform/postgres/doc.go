// Package postgres implements the store interfaces using a PostgreSQL
// database accessed through database/sql with the pgx driver. Articles are
// persisted as JSONB alongside the task row so attachment replaces the
// whole sequence in one statement.
package postgres
