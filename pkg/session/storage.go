package session

import "context"

// Storage persists the identity record under a single client-local key.
// Implementations must be safe for concurrent use, although the
// storefront's single logical thread means writes never race: the key
// is written by login/register/logout and read once at startup,
// last-write-wins.
type Storage interface {
	// Save overwrites the persisted identity record.
	Save(ctx context.Context, data []byte) error

	// Load retrieves the persisted identity record.
	// Returns (nil, nil) if no record exists.
	// Returns (nil, err) on backend errors.
	Load(ctx context.Context) ([]byte, error)

	// Delete removes the persisted identity record. Called on logout.
	// Should not return an error if no record exists.
	Delete(ctx context.Context) error

	// Close releases any resources held by the storage.
	Close() error
}

// ErrStorageClosed is returned when operations are attempted on a
// closed storage.
type ErrStorageClosed struct{}

func (e ErrStorageClosed) Error() string {
	return "session: storage is closed"
}
