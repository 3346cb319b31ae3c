package student

import "context"

// Repository is the record store boundary. Implementations must guarantee
// that List reflects all writes committed before the call returns; any
// failure must propagate as a store error, never be silently swallowed.
//
// The analytics and assistant layers depend on this interface only, which
// keeps them testable against an in-memory fake.
type Repository interface {
	// List returns the full record set as a point-in-time snapshot.
	List(ctx context.Context) ([]Record, error)

	// Get returns the record with the given ID, or a not-found error.
	Get(ctx context.Context, id int) (*Record, error)

	// Create inserts a new record with a store-assigned ID and returns it.
	Create(ctx context.Context, rec Record) (*Record, error)

	// Update applies a partial patch to an existing record and returns the
	// updated record, or a not-found error.
	Update(ctx context.Context, id int, patch UpdatePatch) (*Record, error)

	// Delete removes the record with the given ID. Deleting a record that
	// does not exist is not an error.
	Delete(ctx context.Context, id int) error
}
