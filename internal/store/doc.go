// Package store defines the persistence contracts for users and items, the
// errors every implementation maps to, and the request session scope that
// leases exactly one database handle per request.
package store
