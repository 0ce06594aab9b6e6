// Package postgres provides PostgreSQL implementations of the store
// interfaces, the embedded schema migrations and the migration runner.
// Every store is bound to a store.DBTX handed in by the caller, normally
// the request's session handle.
package postgres
