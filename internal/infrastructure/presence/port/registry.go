package port

import "context"

// Registry is the shared record of which users are currently reachable by at
// least one active connection anywhere in the system. It is the single source
// of truth for "is this user online", as opposed to the process-local
// connection directory which only answers "is this user reachable from me".
//
// Implementations must make Add/Remove atomic under concurrent access from
// multiple processes. Add is idempotent; adding a member twice is a no-op.
type Registry interface {
	Add(ctx context.Context, userID string) error
	Remove(ctx context.Context, userID string) error
	Contains(ctx context.Context, userID string) (bool, error)
	Members(ctx context.Context) ([]string, error)

	// Ping verifies connectivity with the backing store.
	Ping(ctx context.Context) error

	// Close releases any resources held by the registry.
	Close() error
}
