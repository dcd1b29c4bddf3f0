package domain

import "context"

// SchemaRepository owns the node table lifecycle.
type SchemaRepository interface {
	// Ensure creates the node table and its (type, parent_id) index when
	// absent. Idempotent; safe to call before every load. Reports whether
	// anything was created.
	Ensure(ctx context.Context) (created bool, err error)
}

// NodeRepository is the store surface for the forest itself.
type NodeRepository interface {
	// BulkInsert streams src into the store inside one transaction. The
	// operation is all-or-nothing: any failure rolls back the whole batch.
	// Returns the number of rows written.
	BulkInsert(ctx context.Context, src NodeSource) (int64, error)

	// ColleagueNames returns the names of all staff working in the office
	// that encloses the node with the given id. An unknown id yields an
	// empty result, not an error.
	ColleagueNames(ctx context.Context, staffID int64) ([]string, error)

	// DeleteAll removes every node in one transaction.
	DeleteAll(ctx context.Context) (int64, error)
}
